package gate

import (
	"time"

	"github.com/ruizrica/drift-sub012/internal/types"
)

// defaultTimeout bounds a single gate's execution (spec §4.7 "per-gate
// timeout, default 60s").
const defaultTimeout = 60 * time.Second

// GateConfig is one gate's policy entry (`.drift/policies/*.yaml`,
// SPEC_FULL §10 "Configuration").
type GateConfig struct {
	Enabled   bool          `yaml:"enabled"`
	Blocking  bool          `yaml:"blocking"`
	Required  bool          `yaml:"required"`
	Threshold float64       `yaml:"threshold"`
	Timeout   time.Duration `yaml:"timeout"`
}

// Policy is the full set of per-gate configuration for one orchestrator
// run, keyed by gate name.
type Policy struct {
	ID    string                          `yaml:"id"`
	Name  string                          `yaml:"name"`
	Gates map[types.GateName]*GateConfig  `yaml:"gates"`
}

// DefaultPolicy returns the built-in policy: every gate enabled, pattern-
// compliance, constraint-verification and security-boundary blocking and
// required, the rest advisory (spec §4.7 "Default policy").
func DefaultPolicy() *Policy {
	return &Policy{
		ID:   "default",
		Name: "Default Drift policy",
		Gates: map[types.GateName]*GateConfig{
			types.GatePatternCompliance:      {Enabled: true, Blocking: true, Required: true, Threshold: 0.8, Timeout: defaultTimeout},
			types.GateConstraintVerification: {Enabled: true, Blocking: true, Required: true, Threshold: 1.0, Timeout: defaultTimeout},
			types.GateRegressionDetection:    {Enabled: true, Blocking: false, Required: false, Threshold: 0.9, Timeout: defaultTimeout},
			types.GateImpactSimulation:       {Enabled: true, Blocking: false, Required: false, Threshold: 0.7, Timeout: defaultTimeout},
			types.GateSecurityBoundary:       {Enabled: true, Blocking: true, Required: true, Threshold: 1.0, Timeout: defaultTimeout},
			types.GateCustomRules:            {Enabled: true, Blocking: false, Required: false, Threshold: 1.0, Timeout: defaultTimeout},
		},
	}
}

func (p *Policy) configFor(name types.GateName) *GateConfig {
	if p == nil || p.Gates == nil {
		return &GateConfig{Enabled: true, Timeout: defaultTimeout}
	}
	cfg, ok := p.Gates[name]
	if !ok {
		return &GateConfig{Enabled: true, Timeout: defaultTimeout}
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	return cfg
}
