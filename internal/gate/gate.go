// Package gate implements Drift's quality-gate orchestrator (spec §4.7):
// six built-in gates run in parallel against a scan's patterns,
// constraints, and changed files, and their verdicts are aggregated into
// one QualityGateResult.
package gate

import (
	"context"

	"github.com/ruizrica/drift-sub012/internal/types"
)

// Baseline is the comparison snapshot a regression-detection gate diffs
// against (SPEC_FULL §13 "Health snapshots as git-aware baselines").
type Baseline struct {
	// Source identifies where the baseline came from: "branch-base",
	// "last-scan", or "" when none was resolvable.
	Source   string
	Patterns []*types.Pattern
	Commit   string
}

// GateContext is everything a single gate's Run needs: the current scan's
// classified patterns and constraints, any violations detectors already
// raised, the set of files touched by this run, and an optional baseline
// used only by regression-detection. DecisionRecords is carried along but
// no built-in gate reads it.
type GateContext struct {
	Patterns        []*types.Pattern
	Constraints     []*types.Constraint
	Contracts       []*types.Contract
	Violations      []types.Violation
	ChangedFiles    []string
	Baseline        *Baseline
	DecisionRecords []types.DecisionRecord
	CustomRules     []CustomRule
}

// CustomRule is one user-authored rule for the custom-rules gate (spec
// §4.7, `.drift/rules/*.yaml`).
type CustomRule struct {
	ID          string
	Description string
	Category    types.Category
	Severity    types.Severity
	// Match reports whether v violates this rule.
	Match func(v types.Violation) bool
}

// Gate is one quality check in the orchestrator's fixed set of six (spec
// §4.7). Run must not panic; the orchestrator recovers and marks the gate
// errored, which fails the whole run when the policy makes that gate
// blocking or required.
type Gate interface {
	Name() types.GateName
	Run(ctx context.Context, gctx *GateContext) types.GateResult
}
