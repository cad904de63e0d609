package gate

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ruizrica/drift-sub012/internal/types"
)

func TestDefaultPolicyMarksPatternComplianceAndSecurityBlocking(t *testing.T) {
	p := DefaultPolicy()
	require.True(t, p.configFor(types.GatePatternCompliance).Blocking)
	require.True(t, p.configFor(types.GateSecurityBoundary).Blocking)
	require.False(t, p.configFor(types.GateImpactSimulation).Blocking)
}

func TestConfigForUnknownGateFallsBackToEnabled(t *testing.T) {
	p := &Policy{Gates: map[types.GateName]*GateConfig{}}
	cfg := p.configFor(types.GateName("not-a-real-gate"))
	require.True(t, cfg.Enabled)
	require.Equal(t, defaultTimeout, cfg.Timeout)
}

func TestConfigForNilPolicyFallsBackToEnabled(t *testing.T) {
	var p *Policy
	cfg := p.configFor(types.GatePatternCompliance)
	require.True(t, cfg.Enabled)
}

func TestConfigForZeroTimeoutBackfillsDefault(t *testing.T) {
	p := &Policy{Gates: map[types.GateName]*GateConfig{
		types.GatePatternCompliance: {Enabled: true},
	}}
	cfg := p.configFor(types.GatePatternCompliance)
	require.Equal(t, defaultTimeout, cfg.Timeout)
}
