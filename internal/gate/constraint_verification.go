package gate

import (
	"context"

	"github.com/ruizrica/drift-sub012/internal/types"
)

// ConstraintVerificationGate fails when a pattern that a non-invalidated
// constraint of the same category was synthesized from has an outlier in
// a changed file (or anywhere, when no changed files are given) — i.e.
// code contradicts a synthesized rule (spec §4.7 "constraint-verification").
type ConstraintVerificationGate struct{}

// Name implements Gate.
func (ConstraintVerificationGate) Name() types.GateName { return types.GateConstraintVerification }

// Run implements Gate.
func (ConstraintVerificationGate) Run(_ context.Context, gctx *GateContext) types.GateResult {
	changed := toSet(gctx.ChangedFiles)

	sourceSet := make(map[string]bool)
	for _, c := range gctx.Constraints {
		if c.Invalidated {
			continue
		}
		for _, id := range c.SourcePatterns {
			sourceSet[id] = true
		}
	}

	var violations []types.Violation
	var warnings []string
	total, offending := 0, 0
	for _, p := range gctx.Patterns {
		if len(sourceSet) == 0 {
			break
		}
		matchesConstraint := false
		for _, c := range gctx.Constraints {
			if c.Invalidated {
				continue
			}
			if c.Category == p.Category && contains(c.SourcePatterns, p.ID) {
				matchesConstraint = true
			}
		}
		if !matchesConstraint {
			continue
		}
		for _, o := range p.Outliers {
			total++
			if len(changed) > 0 && !changed[o.File] {
				continue
			}
			offending++
			violations = append(violations, types.Violation{
				ID:          "constraint:" + p.ID + ":" + o.File + ":" + itoa(o.StartLine),
				PatternID:   p.ID,
				Severity:    types.SeverityError,
				File:        o.File,
				StartLine:   o.StartLine,
				EndLine:     o.EndLine,
				Message:     "violates constraint synthesized from " + p.Name,
				Explanation: o.Reason,
				Occurrences: 1,
			})
		}
	}

	if len(gctx.Constraints) == 0 {
		warnings = append(warnings, "no constraints synthesized yet; gate passes vacuously")
	}

	ratio := 1.0
	if total > 0 {
		ratio = 1.0 - float64(offending)/float64(total)
	}
	status := types.GateStatusPassed
	if offending > 0 {
		status = types.GateStatusFailed
	}

	return types.GateResult{
		Name:       types.GateConstraintVerification,
		Status:     status,
		Score:      scorePercent(ratio),
		Violations: violations,
		Warnings:   warnings,
	}
}

func contains(ss []string, s string) bool {
	for _, x := range ss {
		if x == s {
			return true
		}
	}
	return false
}
