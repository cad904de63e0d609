package gate

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ruizrica/drift-sub012/internal/types"
)

func TestRegressionDetectionGateSkipsWithNoBaseline(t *testing.T) {
	res := RegressionDetectionGate{}.Run(context.Background(), &GateContext{})
	require.Equal(t, types.GateStatusSkipped, res.Status)
	require.NotEmpty(t, res.Warnings)
}

func TestRegressionDetectionGateWarnsOnNewOutliers(t *testing.T) {
	baseline := &Baseline{
		Source: "last-scan",
		Patterns: []*types.Pattern{
			{ID: "p1", Outliers: nil},
		},
	}
	current := []*types.Pattern{
		{ID: "p1", Outliers: []types.Outlier{{SemanticLocation: types.SemanticLocation{File: "main.go", StartLine: 3}}}},
	}
	res := RegressionDetectionGate{}.Run(context.Background(), &GateContext{Patterns: current, Baseline: baseline})
	require.Equal(t, types.GateStatusWarned, res.Status)
	require.Len(t, res.Violations, 1)
}

func TestRegressionDetectionGatePassesWhenOutliersUnchanged(t *testing.T) {
	baseline := &Baseline{
		Source:   "branch-base",
		Patterns: []*types.Pattern{{ID: "p1", Outliers: []types.Outlier{{SemanticLocation: types.SemanticLocation{File: "main.go"}}}}},
	}
	current := []*types.Pattern{
		{ID: "p1", Outliers: []types.Outlier{{SemanticLocation: types.SemanticLocation{File: "main.go"}}}},
	}
	res := RegressionDetectionGate{}.Run(context.Background(), &GateContext{Patterns: current, Baseline: baseline})
	require.Equal(t, types.GateStatusPassed, res.Status)
}

func TestRegressionDetectionGateIgnoresPatternsNotInBaseline(t *testing.T) {
	baseline := &Baseline{Source: "last-scan", Patterns: nil}
	current := []*types.Pattern{
		{ID: "p.new", Outliers: []types.Outlier{{SemanticLocation: types.SemanticLocation{File: "main.go"}}}},
	}
	res := RegressionDetectionGate{}.Run(context.Background(), &GateContext{Patterns: current, Baseline: baseline})
	require.Equal(t, types.GateStatusPassed, res.Status, "a pattern absent from the baseline has nothing to regress against")
}
