package gate

import (
	"context"

	"github.com/ruizrica/drift-sub012/internal/types"
)

// SecurityBoundaryGate fails on any outlier of a pattern in the security or
// auth categories: these are the two categories this gate treats as
// non-negotiable regardless of the policy's general threshold (spec §4.7
// "security-boundary"). It also fails on any error-severity violation
// already in the GateContext, whatever its pattern or category. Both checks
// are limited to the changed files when any are given.
type SecurityBoundaryGate struct{}

// Name implements Gate.
func (SecurityBoundaryGate) Name() types.GateName { return types.GateSecurityBoundary }

// Run implements Gate.
func (SecurityBoundaryGate) Run(_ context.Context, gctx *GateContext) types.GateResult {
	changed := toSet(gctx.ChangedFiles)

	var violations []types.Violation
	for _, p := range gctx.Patterns {
		if p.Category != types.CategorySecurity && p.Category != types.CategoryAuth {
			continue
		}
		for _, o := range p.Outliers {
			if len(changed) > 0 && !changed[o.File] {
				continue
			}
			violations = append(violations, types.Violation{
				ID:          "security:" + p.ID + ":" + o.File + ":" + itoa(o.StartLine),
				PatternID:   p.ID,
				Severity:    types.SeverityError,
				File:        o.File,
				StartLine:   o.StartLine,
				EndLine:     o.EndLine,
				Message:     "security/auth boundary pattern violated: " + p.Name,
				Explanation: o.Reason,
			})
		}
	}
	for _, v := range gctx.Violations {
		if v.Severity != types.SeverityError {
			continue
		}
		if changed != nil && !changed[v.File] {
			continue
		}
		violations = append(violations, v)
	}

	ratio := 1.0
	status := types.GateStatusPassed
	if len(violations) > 0 {
		ratio = 0
		status = types.GateStatusFailed
	}

	return types.GateResult{
		Name:       types.GateSecurityBoundary,
		Status:     status,
		Score:      scorePercent(ratio),
		Violations: violations,
	}
}
