package store

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ruizrica/drift-sub012/internal/types"
)

func TestReconcileContractWithNoFrontendIsPending(t *testing.T) {
	obs := []EndpointObservation{
		{Method: "GET", NormalizedPath: "/users/:id", Backend: &types.BackendEndpoint{File: "handlers.go", ResponseFields: []string{"id", "name"}}},
	}

	contracts := Reconcile(obs)
	require.Len(t, contracts, 1)
	require.Equal(t, types.ContractStatusPending, contracts[0].Status)
	require.Equal(t, 0.5, contracts[0].Confidence)
}

func TestReconcileMatchedContractIsVerified(t *testing.T) {
	obs := []EndpointObservation{
		{Method: "GET", NormalizedPath: "/users/:id", Backend: &types.BackendEndpoint{File: "handlers.go", ResponseFields: []string{"id", "name"}}},
		{Method: "GET", NormalizedPath: "/users/:id", Frontend: &types.FrontendCall{File: "api.ts", ExpectedResponseTy: "id"}},
		{Method: "GET", NormalizedPath: "/users/:id", Frontend: &types.FrontendCall{File: "api.ts", ExpectedResponseTy: "name"}},
	}

	contracts := Reconcile(obs)
	require.Len(t, contracts, 1)
	require.Equal(t, types.ContractStatusVerified, contracts[0].Status)
	require.Empty(t, contracts[0].Mismatches)
	require.Equal(t, 0.9, contracts[0].Confidence)
}

func TestReconcileMissingBackendFieldIsBroken(t *testing.T) {
	obs := []EndpointObservation{
		{Method: "GET", NormalizedPath: "/users/:id", Backend: &types.BackendEndpoint{File: "handlers.go", ResponseFields: []string{"id"}}},
		{Method: "GET", NormalizedPath: "/users/:id", Frontend: &types.FrontendCall{File: "api.ts", ExpectedResponseTy: "email"}},
	}

	contracts := Reconcile(obs)
	require.Len(t, contracts, 1)
	require.Equal(t, types.ContractStatusBroken, contracts[0].Status)
	require.Len(t, contracts[0].Mismatches, 1)
	require.Equal(t, types.MismatchMissingInBackend, contracts[0].Mismatches[0].Kind)
	require.Equal(t, 0.6, contracts[0].Confidence)
}

func TestReconcileDistinctEndpointsNeverMerge(t *testing.T) {
	obs := []EndpointObservation{
		{Method: "GET", NormalizedPath: "/users/:id", Backend: &types.BackendEndpoint{File: "h.go"}},
		{Method: "POST", NormalizedPath: "/users/:id", Backend: &types.BackendEndpoint{File: "h.go"}},
		{Method: "GET", NormalizedPath: "/orders/:id", Backend: &types.BackendEndpoint{File: "h.go"}},
	}

	contracts := Reconcile(obs)
	require.Len(t, contracts, 3)
}

func TestReconcileNoBackendObservedHasZeroConfidence(t *testing.T) {
	obs := []EndpointObservation{
		{Method: "GET", NormalizedPath: "/users/:id", Frontend: &types.FrontendCall{File: "api.ts", ExpectedResponseTy: "id"}},
	}

	contracts := Reconcile(obs)
	require.Len(t, contracts, 1)
	require.Equal(t, float64(0), contracts[0].Confidence)
}
