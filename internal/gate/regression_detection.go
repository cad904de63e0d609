package gate

import (
	"context"

	"github.com/ruizrica/drift-sub012/internal/types"
)

// RegressionDetectionGate compares the current pattern set's outlier
// counts against a resolved baseline (SPEC_FULL §13's branch-base / last-
// scan baseline chain) and warns when any pattern present in the baseline
// now has more outliers than it had there; the outliers past the baseline's
// count are reported as warning-severity violations. Per SPEC_FULL §14's resolved open question, a run with no
// resolvable baseline skips with a warning rather than failing or passing
// vacuously.
type RegressionDetectionGate struct{}

// Name implements Gate.
func (RegressionDetectionGate) Name() types.GateName { return types.GateRegressionDetection }

// Run implements Gate.
func (RegressionDetectionGate) Run(_ context.Context, gctx *GateContext) types.GateResult {
	if gctx.Baseline == nil || gctx.Baseline.Source == "" {
		return types.GateResult{
			Name:     types.GateRegressionDetection,
			Status:   types.GateStatusSkipped,
			Score:    scorePercent(1),
			Warnings: []string{"no baseline resolvable (no branch-base, no last-scan); skipping regression detection"},
			Reason:   "no baseline",
		}
	}

	baseOutliers := make(map[string]int)
	for _, p := range gctx.Baseline.Patterns {
		baseOutliers[p.ID] = len(p.Outliers)
	}

	var violations []types.Violation
	regressed := 0
	for _, p := range gctx.Patterns {
		prev, existed := baseOutliers[p.ID]
		if !existed {
			continue
		}
		if len(p.Outliers) <= prev {
			continue
		}
		regressed++
		for _, o := range p.Outliers[prev:] {
			violations = append(violations, types.Violation{
				ID:        "regression:" + p.ID + ":" + o.File + ":" + itoa(o.StartLine),
				PatternID: p.ID,
				Severity:  types.SeverityWarning,
				File:      o.File,
				StartLine: o.StartLine,
				EndLine:   o.EndLine,
				Message:   "new outlier against baseline (" + gctx.Baseline.Source + ")",
			})
		}
	}

	ratio := 1.0
	if len(gctx.Patterns) > 0 {
		ratio = 1.0 - float64(regressed)/float64(len(gctx.Patterns))
	}
	status := types.GateStatusPassed
	if regressed > 0 {
		status = types.GateStatusWarned
	}

	return types.GateResult{
		Name:       types.GateRegressionDetection,
		Status:     status,
		Score:      scorePercent(ratio),
		Violations: violations,
	}
}
