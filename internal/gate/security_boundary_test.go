package gate

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ruizrica/drift-sub012/internal/types"
)

func TestSecurityBoundaryGatePassesWithNoSecurityOutliers(t *testing.T) {
	gctx := &GateContext{Patterns: []*types.Pattern{{ID: "p1", Category: types.CategoryLogging}}}
	res := SecurityBoundaryGate{}.Run(context.Background(), gctx)
	require.Equal(t, types.GateStatusPassed, res.Status)
}

func TestSecurityBoundaryGateFailsOnAuthOutlier(t *testing.T) {
	pattern := &types.Pattern{
		ID:       "pattern.auth.middleware",
		Category: types.CategoryAuth,
		Outliers: []types.Outlier{{SemanticLocation: types.SemanticLocation{File: "handler.go", StartLine: 1}}},
	}
	res := SecurityBoundaryGate{}.Run(context.Background(), &GateContext{Patterns: []*types.Pattern{pattern}})
	require.Equal(t, types.GateStatusFailed, res.Status)
	require.Equal(t, float64(0), res.Score)
}

func TestSecurityBoundaryGateFailsOnErrorSeverityViolation(t *testing.T) {
	v := types.Violation{ID: "v1", Severity: types.SeverityError, File: "handler.go"}
	res := SecurityBoundaryGate{}.Run(context.Background(), &GateContext{Violations: []types.Violation{v}})
	require.Equal(t, types.GateStatusFailed, res.Status)
	require.Len(t, res.Violations, 1)
}

func TestSecurityBoundaryGateIgnoresNonErrorViolations(t *testing.T) {
	v := types.Violation{ID: "v1", Severity: types.SeverityWarning, File: "handler.go"}
	res := SecurityBoundaryGate{}.Run(context.Background(), &GateContext{Violations: []types.Violation{v}})
	require.Equal(t, types.GateStatusPassed, res.Status)
}

func TestSecurityBoundaryGateScopesToChangedFiles(t *testing.T) {
	pattern := &types.Pattern{
		ID:       "pattern.security.csrf",
		Category: types.CategorySecurity,
		Outliers: []types.Outlier{{SemanticLocation: types.SemanticLocation{File: "handler.go", StartLine: 1}}},
	}
	gctx := &GateContext{Patterns: []*types.Pattern{pattern}, ChangedFiles: []string{"other.go"}}
	res := SecurityBoundaryGate{}.Run(context.Background(), gctx)
	require.Equal(t, types.GateStatusPassed, res.Status)
}
