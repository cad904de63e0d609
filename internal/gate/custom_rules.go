package gate

import (
	"context"

	"github.com/ruizrica/drift-sub012/internal/types"
)

// CustomRulesGate runs user-authored rules (`.drift/rules/*.yaml`,
// compiled into GateContext.CustomRules) against every violation the scan
// has already collected (spec §4.7 "custom-rules").
type CustomRulesGate struct{}

// Name implements Gate.
func (CustomRulesGate) Name() types.GateName { return types.GateCustomRules }

// Run implements Gate.
func (CustomRulesGate) Run(_ context.Context, gctx *GateContext) types.GateResult {
	if len(gctx.CustomRules) == 0 {
		return types.GateResult{Name: types.GateCustomRules, Status: types.GateStatusSkipped, Score: scorePercent(1), Reason: "no custom rules configured"}
	}

	var violations []types.Violation
	for _, rule := range gctx.CustomRules {
		for _, v := range gctx.Violations {
			if rule.Match == nil || !rule.Match(v) {
				continue
			}
			out := v
			out.ID = "custom:" + rule.ID + ":" + v.ID
			out.Severity = rule.Severity
			out.Explanation = rule.Description
			violations = append(violations, out)
		}
	}

	ratio := 1.0
	status := types.GateStatusPassed
	if len(violations) > 0 {
		ratio = 0.5
		status = types.GateStatusWarned
	}

	return types.GateResult{
		Name:       types.GateCustomRules,
		Status:     status,
		Score:      scorePercent(ratio),
		Violations: violations,
	}
}
