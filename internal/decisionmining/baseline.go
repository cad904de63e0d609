package decisionmining

import (
	"github.com/ruizrica/drift-sub012/internal/gate"
	"github.com/ruizrica/drift-sub012/internal/types"
)

// ResolveBaseline implements SPEC_FULL §13's baseline chain for the
// regression-detection gate: try `branch-base` (merge-base against
// baseBranch) first, fall back to the last-scan snapshot already on disk,
// else return nil so the gate skips with a warning (SPEC_FULL §14's
// resolved open question).
func ResolveBaseline(root, baseBranch string, lastScan []*types.Pattern, loadAtCommit func(commit string) ([]*types.Pattern, error)) *gate.Baseline {
	if baseBranch != "" {
		if provider, err := Open(root); err == nil {
			if commit, err := provider.MergeBase(baseBranch); err == nil && loadAtCommit != nil {
				if patterns, err := loadAtCommit(commit); err == nil {
					return &gate.Baseline{Source: "branch-base", Patterns: patterns, Commit: commit}
				}
			}
		}
	}

	if len(lastScan) > 0 {
		return &gate.Baseline{Source: "last-scan", Patterns: lastScan}
	}

	return nil
}
