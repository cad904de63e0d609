package gate

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ruizrica/drift-sub012/internal/types"
)

func TestImpactSimulationGateSkipsWithNoChangedFiles(t *testing.T) {
	res := ImpactSimulationGate{}.Run(context.Background(), &GateContext{})
	require.Equal(t, types.GateStatusSkipped, res.Status)
}

func TestImpactSimulationGateWarnsAboveFanoutThreshold(t *testing.T) {
	var contracts []*types.Contract
	var changed []string
	for i := 0; i < 6; i++ {
		file := "handler" + string(rune('a'+i)) + ".go"
		contracts = append(contracts, &types.Contract{Backend: types.BackendEndpoint{File: file}})
		changed = append(changed, file)
	}
	res := ImpactSimulationGate{}.Run(context.Background(), &GateContext{Contracts: contracts, ChangedFiles: changed})
	require.Equal(t, types.GateStatusWarned, res.Status)
	require.NotEmpty(t, res.Warnings)
}

func TestImpactSimulationGatePassesBelowThreshold(t *testing.T) {
	contracts := []*types.Contract{{Backend: types.BackendEndpoint{File: "a.go"}}}
	res := ImpactSimulationGate{}.Run(context.Background(), &GateContext{Contracts: contracts, ChangedFiles: []string{"a.go"}})
	require.Equal(t, types.GateStatusPassed, res.Status)
}
