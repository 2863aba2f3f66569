// Package solveengine is the CP-SAT-contract driver: solve(model,
// time_budget) -> {status, objective, values}. No Go CP-SAT or MIP
// binding is available, so the contract is honored with a from-scratch
// bounded local-search driver: a most-constrained-first constructive
// pass seeds a feasible assignment, a DUD-list repair loop places
// courses the constructive pass missed by evicting conflicting
// electives, and simulated annealing refines the result against the
// weighted objective within the remaining time budget.
package solveengine

import (
	"context"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"github.com/varsity-sched/engine/internal/constraints"
	"github.com/varsity-sched/engine/internal/domain"
	"github.com/varsity-sched/engine/internal/objective"
	"github.com/varsity-sched/engine/internal/variables"
)

// Solve runs one invocation of the engine against model, honoring
// cfg.TimeBudgetSeconds and cfg.IterationBudget. electiveAssign is the
// allocator's fixed student->course binding, consumed as an input
// constraint (§9 design note: the allocator runs to completion first).
// seed controls the annealing RNG so two invocations with the same seed
// and inputs converge to the same result.
func Solve(ctx context.Context, model *variables.Model, cfg domain.OptimizationConfig, electiveAssign map[string][]string, seed int64, logger *zap.Logger) (*Result, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	budget := time.Duration(cfg.TimeBudgetSeconds * float64(time.Second))
	if budget <= 0 {
		budget = 30 * time.Second
	}
	deadline := time.Now().Add(budget)

	placed, dud := constructivePass(model, electiveAssign)
	logger.Debug("constructive pass complete", zap.Int("placed", len(placed)), zap.Int("dud", len(dud)))

	if len(dud) > 0 {
		placed, dud = repairDuds(model, placed, dud)
		logger.Debug("repair pass complete", zap.Int("placed", len(placed)), zap.Int("remaining_dud", len(dud)))
	}

	if len(dud) > 0 {
		return &Result{
			Status:      Infeasible,
			Assignments: placed,
			Violations:  len(dud),
		}, domain.NewError(domain.InfeasibleHard, "could not place required course(s): %v", dud)
	}

	annealed := placed
	converged := false
	if time.Now().Before(deadline) {
		rng := rand.New(rand.NewSource(seed))
		iterCfg := defaultAnnealConfig(cfg.IterationBudget)
		annealed, converged = runAnnealWithDeadline(ctx, model, placed, electiveAssign, iterCfg, rng, deadline)
	}

	snap := model.Snapshot
	schedule := &domain.Schedule{Assignments: annealed}
	state := &constraints.State{
		Snapshot:       snap,
		Assignments:    annealed,
		PrereqClosure:  model.Result.PrereqClosure,
		ElectiveAssign: electiveAssign,
	}
	violations := constraints.CheckAll(state)
	value, _ := objective.Evaluate(snap, schedule, electiveAssign)

	status := Feasible
	switch {
	case ctx.Err() != nil:
		status = Unknown
	case len(violations) == 0 && converged:
		status = Optimal
	}

	return &Result{
		Status:      status,
		Objective:   value,
		Assignments: annealed,
		Violations:  len(violations),
	}, nil
}

// runAnnealWithDeadline runs the annealing pass in short slices so a
// context cancellation or wall-clock deadline can interrupt it between
// slices rather than only after the whole iteration budget runs.
func runAnnealWithDeadline(ctx context.Context, model *variables.Model, placed []domain.Assignment, electiveAssign map[string][]string, cfg annealConfig, rng *rand.Rand, deadline time.Time) ([]domain.Assignment, bool) {
	const sliceSize = 200
	remainingIterations := cfg.Iterations
	current := placed
	for remainingIterations > 0 {
		if ctx.Err() != nil || time.Now().After(deadline) {
			return current, false
		}
		step := sliceSize
		if step > remainingIterations {
			step = remainingIterations
		}
		sliceCfg := cfg
		sliceCfg.Iterations = step
		current = anneal(model, current, electiveAssign, sliceCfg, rng)
		remainingIterations -= step
	}
	return current, true
}
