package gate

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	drifterrors "github.com/ruizrica/drift-sub012/internal/errors"
	"github.com/ruizrica/drift-sub012/internal/types"
	"github.com/sourcegraph/conc/pool"
	"go.uber.org/zap"
)

// Orchestrator runs the fixed gate set against a GateContext under a
// Policy and aggregates their verdicts into one QualityGateResult (spec
// §4.7 "Quality-Gate Orchestrator").
type Orchestrator struct {
	logger *zap.Logger
	gates  []Gate
	policy *Policy
}

// NewOrchestrator builds an Orchestrator with the six built-in gates.
func NewOrchestrator(logger *zap.Logger, policy *Policy) *Orchestrator {
	if logger == nil {
		logger = zap.NewNop()
	}
	if policy == nil {
		policy = DefaultPolicy()
	}
	return &Orchestrator{
		logger: logger,
		policy: policy,
		gates: []Gate{
			PatternComplianceGate{},
			ConstraintVerificationGate{},
			RegressionDetectionGate{},
			ImpactSimulationGate{},
			SecurityBoundaryGate{},
			CustomRulesGate{},
		},
	}
}

// gateOutcome pairs a gate's name with its finished result.
type gateOutcome struct {
	name   types.GateName
	result types.GateResult
}

// Run executes every enabled gate concurrently (spec §4.7 "run gates in
// parallel"), enforcing each gate's own timeout, then aggregates: the
// overall run passes iff every blocking gate passed and every required
// gate ran to a non-errored conclusion (spec §4.7 "Aggregation rule").
func (o *Orchestrator) Run(ctx context.Context, gctx *GateContext, policyRef types.PolicyRef) types.QualityGateResult {
	start := time.Now()

	var mu sync.Mutex
	results := make(map[types.GateName]*types.GateResult)
	var skipped []types.GateName
	var ran []types.GateName

	p := pool.New().WithMaxGoroutines(len(o.gates))
	for _, g := range o.gates {
		g := g
		cfg := o.policy.configFor(g.Name())
		if !cfg.Enabled {
			mu.Lock()
			skipped = append(skipped, g.Name())
			results[g.Name()] = &types.GateResult{Name: g.Name(), Status: types.GateStatusSkipped, Score: scorePercent(1), Reason: "disabled by policy"}
			mu.Unlock()
			continue
		}
		p.Go(func() {
			res := o.runOne(ctx, g, cfg, gctx)
			mu.Lock()
			results[res.name] = &res.result
			ran = append(ran, res.name)
			mu.Unlock()
		})
	}
	p.Wait()

	sort.Slice(ran, func(i, j int) bool { return ran[i] < ran[j] })
	sort.Slice(skipped, func(i, j int) bool { return skipped[i] < skipped[j] })

	return o.aggregate(results, ran, skipped, policyRef, start)
}

func (o *Orchestrator) runOne(ctx context.Context, g Gate, cfg *GateConfig, gctx *GateContext) gateOutcome {
	gateStart := time.Now()
	runCtx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()

	done := make(chan types.GateResult, 1)
	go func() {
		res := o.safeRun(g, runCtx, gctx)
		done <- res
	}()

	select {
	case res := <-done:
		res.DurationMs = time.Since(gateStart).Milliseconds()
		res.Blocking = cfg.Blocking
		return gateOutcome{name: g.Name(), result: res}
	case <-runCtx.Done():
		err := drifterrors.NewGateError(string(g.Name()), runCtx.Err()).WithTimeout()
		o.logger.Warn("gate timed out", zap.String("gate", string(g.Name())), zap.Error(err))
		return gateOutcome{name: g.Name(), result: types.GateResult{
			Name:       g.Name(),
			Status:     types.GateStatusErrored,
			Blocking:   cfg.Blocking,
			Reason:     err.Error(),
			DurationMs: time.Since(gateStart).Milliseconds(),
		}}
	}
}

func (o *Orchestrator) safeRun(g Gate, ctx context.Context, gctx *GateContext) (result types.GateResult) {
	defer func() {
		if r := recover(); r != nil {
			err := drifterrors.NewGateError(string(g.Name()), fmt.Errorf("%v", r))
			o.logger.Error("gate panicked", zap.String("gate", string(g.Name())), zap.Error(err))
			result = types.GateResult{Name: g.Name(), Status: types.GateStatusErrored, Reason: err.Error()}
		}
	}()
	return g.Run(ctx, gctx)
}

// aggregate implements spec §4.7's pass/fail rule: the run passes iff
// every blocking gate passed (warned also counts as non-blocking-clean)
// and no blocking or required gate errored.
func (o *Orchestrator) aggregate(results map[types.GateName]*types.GateResult, ran, skipped []types.GateName, policyRef types.PolicyRef, start time.Time) types.QualityGateResult {
	passed := true
	worstStatus := types.RunPassed
	var allViolations []types.Violation
	var allWarnings []string
	var scoreSum float64
	var scored int

	names := make([]types.GateName, 0, len(results))
	for n := range results {
		names = append(names, n)
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })

	for _, name := range names {
		r := results[name]
		cfg := o.policy.configFor(name)

		if r.Status != types.GateStatusSkipped {
			scoreSum += r.Score
			scored++
		}

		allViolations = append(allViolations, r.Violations...)
		allWarnings = append(allWarnings, r.Warnings...)

		switch r.Status {
		case types.GateStatusFailed:
			if cfg.Blocking {
				passed = false
				worstStatus = types.RunFailed
			} else if worstStatus == types.RunPassed {
				worstStatus = types.RunWarned
			}
		case types.GateStatusErrored:
			if cfg.Blocking || cfg.Required {
				passed = false
				worstStatus = types.RunFailed
			} else if worstStatus == types.RunPassed {
				worstStatus = types.RunWarned
			}
		case types.GateStatusWarned:
			if worstStatus == types.RunPassed {
				worstStatus = types.RunWarned
			}
		}
	}

	sort.Slice(allViolations, func(i, j int) bool {
		if allViolations[i].File != allViolations[j].File {
			return allViolations[i].File < allViolations[j].File
		}
		return allViolations[i].StartLine < allViolations[j].StartLine
	})

	score := scorePercent(1)
	if scored > 0 {
		score = scoreSum / float64(scored)
	}

	exitCode := 0
	if !passed {
		exitCode = 1
	}

	summary := fmt.Sprintf("%d gate(s) run, %d skipped, %d violation(s)", len(ran), len(skipped), len(allViolations))

	return types.QualityGateResult{
		Passed:     passed,
		Status:     worstStatus,
		Score:      score,
		Summary:    summary,
		Gates:      results,
		Violations: allViolations,
		Warnings:   allWarnings,
		Policy:     policyRef,
		Metadata: types.ResultMetadata{
			ExecutionTimeMs: time.Since(start).Milliseconds(),
			GatesRun:        ran,
			GatesSkipped:    skipped,
			Timestamp:       start,
		},
		ExitCode: exitCode,
	}
}
