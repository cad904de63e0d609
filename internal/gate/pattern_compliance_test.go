package gate

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ruizrica/drift-sub012/internal/types"
)

func approvedPatternWithOutlier(file string) *types.Pattern {
	return &types.Pattern{
		ID:       "pattern.logging.zap",
		Name:     "zap structured logging",
		Status:   types.StatusApproved,
		Severity: types.SeverityForStatus(types.StatusApproved),
		Outliers: []types.Outlier{
			{SemanticLocation: types.SemanticLocation{File: file, StartLine: 10}, Reason: "uses fmt.Println instead of zap"},
		},
	}
}

func TestPatternComplianceGatePassesWithNoOutliers(t *testing.T) {
	gctx := &GateContext{Patterns: []*types.Pattern{{ID: "p1", Status: types.StatusApproved}}}
	res := PatternComplianceGate{}.Run(context.Background(), gctx)
	require.Equal(t, types.GateStatusPassed, res.Status)
	require.Equal(t, float64(100), res.Score)
}

func TestPatternComplianceGateFailsOnOutlier(t *testing.T) {
	gctx := &GateContext{Patterns: []*types.Pattern{approvedPatternWithOutlier("main.go")}}
	res := PatternComplianceGate{}.Run(context.Background(), gctx)
	require.Equal(t, types.GateStatusFailed, res.Status)
	require.Len(t, res.Violations, 1)
	require.Equal(t, types.SeverityError, res.Violations[0].Severity, "an outlier against an approved pattern must surface as an error")
}

func TestPatternComplianceGateIgnoresOutliersOutsideChangedFiles(t *testing.T) {
	gctx := &GateContext{
		Patterns:     []*types.Pattern{approvedPatternWithOutlier("main.go")},
		ChangedFiles: []string{"other.go"},
	}
	res := PatternComplianceGate{}.Run(context.Background(), gctx)
	require.Equal(t, types.GateStatusPassed, res.Status, "an outlier outside the changed-file scope must not fail the gate")
	require.Empty(t, res.Violations)
}

func TestPatternComplianceGateIgnoresDiscoveredPatterns(t *testing.T) {
	p := approvedPatternWithOutlier("main.go")
	p.Status = types.StatusDiscovered
	gctx := &GateContext{Patterns: []*types.Pattern{p}}
	res := PatternComplianceGate{}.Run(context.Background(), gctx)
	require.Equal(t, types.GateStatusPassed, res.Status, "only approved patterns can fail this gate")
}
