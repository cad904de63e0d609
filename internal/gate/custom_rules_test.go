package gate

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ruizrica/drift-sub012/internal/types"
)

func TestCustomRulesGateSkipsWithNoRules(t *testing.T) {
	res := CustomRulesGate{}.Run(context.Background(), &GateContext{})
	require.Equal(t, types.GateStatusSkipped, res.Status)
}

func TestCustomRulesGateWarnsWhenRuleMatches(t *testing.T) {
	rule := CustomRule{
		ID:       "no-raw-sql",
		Severity: types.SeverityWarning,
		Match:    func(v types.Violation) bool { return v.PatternID == "pattern.dataaccess.rawsql" },
	}
	v := types.Violation{ID: "v1", PatternID: "pattern.dataaccess.rawsql"}
	gctx := &GateContext{CustomRules: []CustomRule{rule}, Violations: []types.Violation{v}}

	res := CustomRulesGate{}.Run(context.Background(), gctx)
	require.Equal(t, types.GateStatusWarned, res.Status)
	require.Len(t, res.Violations, 1)
	require.Equal(t, "custom:no-raw-sql:v1", res.Violations[0].ID)
	require.Equal(t, types.SeverityWarning, res.Violations[0].Severity)
}

func TestCustomRulesGatePassesWhenNoMatch(t *testing.T) {
	rule := CustomRule{ID: "r1", Match: func(v types.Violation) bool { return false }}
	v := types.Violation{ID: "v1"}
	gctx := &GateContext{CustomRules: []CustomRule{rule}, Violations: []types.Violation{v}}

	res := CustomRulesGate{}.Run(context.Background(), gctx)
	require.Equal(t, types.GateStatusPassed, res.Status)
}
