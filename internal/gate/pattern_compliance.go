package gate

import (
	"context"

	"github.com/ruizrica/drift-sub012/internal/types"
)

// PatternComplianceGate fails when approved patterns have outliers in
// changed files: new or modified code diverging from an established,
// human-approved convention (spec §4.7 "pattern-compliance").
type PatternComplianceGate struct{}

// Name implements Gate.
func (PatternComplianceGate) Name() types.GateName { return types.GatePatternCompliance }

// Run implements Gate.
func (PatternComplianceGate) Run(_ context.Context, gctx *GateContext) types.GateResult {
	changed := toSet(gctx.ChangedFiles)

	var violations []types.Violation
	total, offending := 0, 0
	for _, p := range gctx.Patterns {
		if p.Status != types.StatusApproved {
			continue
		}
		for _, o := range p.Outliers {
			total++
			if len(changed) > 0 && !changed[o.File] {
				continue
			}
			offending++
			violations = append(violations, types.Violation{
				ID:          p.ID + ":" + o.File + ":" + itoa(o.StartLine),
				PatternID:   p.ID,
				Severity:    p.Severity,
				File:        o.File,
				StartLine:   o.StartLine,
				EndLine:     o.EndLine,
				Message:     "diverges from approved pattern " + p.Name,
				Explanation: o.Reason,
				Occurrences: 1,
			})
		}
	}

	ratio := 1.0
	if total > 0 {
		ratio = 1.0 - float64(offending)/float64(total)
	}

	status := types.GateStatusPassed
	if offending > 0 {
		status = types.GateStatusFailed
	}

	return types.GateResult{
		Name:       types.GatePatternCompliance,
		Status:     status,
		Score:      scorePercent(ratio),
		Violations: violations,
	}
}
