package gate

import (
	"context"

	"github.com/ruizrica/drift-sub012/internal/types"
)

// ImpactSimulationGate estimates blast radius: how many contracts and
// patterns touch the changed files, surfacing a warning (never
// blocking by default) when a change sits at a high-fanout chokepoint
// (spec §4.7 "impact-simulation").
type ImpactSimulationGate struct{}

// Name implements Gate.
func (ImpactSimulationGate) Name() types.GateName { return types.GateImpactSimulation }

// Run implements Gate.
func (ImpactSimulationGate) Run(_ context.Context, gctx *GateContext) types.GateResult {
	changed := toSet(gctx.ChangedFiles)
	if len(changed) == 0 {
		return types.GateResult{Name: types.GateImpactSimulation, Status: types.GateStatusSkipped, Score: scorePercent(1), Reason: "no changed files supplied"}
	}

	affectedContracts := 0
	for _, c := range gctx.Contracts {
		if changed[c.Backend.File] {
			affectedContracts++
			continue
		}
		for _, fe := range c.Frontend {
			if changed[fe.File] {
				affectedContracts++
				break
			}
		}
	}

	affectedPatterns := 0
	var warnings []string
	for _, p := range gctx.Patterns {
		for _, loc := range p.Locations {
			if changed[loc.File] {
				affectedPatterns++
				break
			}
		}
	}

	if affectedContracts > 5 {
		warnings = append(warnings, "change touches a high-fanout contract surface ("+itoa(affectedContracts)+" contracts)")
	}

	ratio := 1.0
	status := types.GateStatusPassed
	if len(warnings) > 0 {
		status = types.GateStatusWarned
		ratio = 0.75
	}

	return types.GateResult{
		Name:     types.GateImpactSimulation,
		Status:   status,
		Score:    scorePercent(ratio),
		Warnings: warnings,
		Reason:   "affected contracts: " + itoa(affectedContracts) + ", affected patterns: " + itoa(affectedPatterns),
	}
}
