// Package pipeline orchestrates one end-to-end invocation: validate ->
// allocate electives -> build decision variables -> solve -> compute
// metrics -> return the ranked schedule(s). It is the single entry point
// both the HTTP and CLI front ends call into.
package pipeline

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/varsity-sched/engine/internal/allocator"
	"github.com/varsity-sched/engine/internal/domain"
	"github.com/varsity-sched/engine/internal/metrics"
	"github.com/varsity-sched/engine/internal/pareto"
	"github.com/varsity-sched/engine/internal/solveengine"
	"github.com/varsity-sched/engine/internal/validate"
	"github.com/varsity-sched/engine/internal/variables"
)

// Request is the caller-supplied snapshot plus the knobs that steer the
// invocation: NumOptions > 1 switches to the Pareto multi-schedule flow,
// Seed controls every RNG draw, History is read-only input and never
// mutated by the run itself.
type Request struct {
	Snapshot   *domain.Snapshot
	Config     domain.OptimizationConfig
	NumOptions int
	Seed       int64
	MaxWorkers int
	History    domain.FairnessHistory
}

// Outcome is the result of one invocation: the allocator's bindings, the
// updated FairnessHistory (applied only by the caller, once a schedule is
// selected), and one or more ranked schedules.
type Outcome struct {
	Schedules      []ScheduleResult
	ElectiveAssign map[string][]string
	History        domain.FairnessHistory
}

// ScheduleResult pairs one schedule with its evaluation and, in the
// multi-schedule case, the weight profile that produced it.
type ScheduleResult struct {
	Schedule *domain.Schedule
	Report   metrics.Report
	Quality  float64
	Profile  string
	Status   solveengine.Status
}

// Run executes the full control flow: input snapshot -> validate ->
// allocate electives -> build decision variables -> encode constraints ->
// solve (once, or K times under K weight profiles) -> extract assignments
// -> build schedule -> compute metrics -> return ranked schedule(s).
func Run(ctx context.Context, req Request, logger *zap.Logger) (*Outcome, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	start := time.Now()

	res, err := validate.Run(req.Snapshot)
	if err != nil {
		return nil, err
	}

	alloc := allocator.Run(res, req.History, req.Seed)
	logger.Debug("allocation complete", zap.Int("bound_students", len(alloc.Assign)))

	if req.NumOptions > 1 {
		variants, err := pareto.Run(ctx, res, req.Config, alloc.Assign, req.NumOptions, req.MaxWorkers, req.Seed, logger)
		if err != nil {
			return nil, err
		}
		schedules := make([]ScheduleResult, len(variants))
		for i, v := range variants {
			schedules[i] = ScheduleResult{Schedule: v.Schedule, Report: v.Report, Quality: v.Quality, Profile: v.Profile, Status: v.Status}
		}
		logger.Info("pareto sweep complete", zap.Int("variants", len(schedules)), zap.Duration("elapsed", time.Since(start)))
		return &Outcome{Schedules: schedules, ElectiveAssign: alloc.Assign, History: alloc.History}, nil
	}

	model := variables.Build(res)
	result, err := solveengine.Solve(ctx, model, req.Config, alloc.Assign, req.Seed, logger)
	if result == nil {
		return nil, err
	}
	if err != nil {
		logger.Warn("solve returned infeasible", zap.Error(err))
	}

	schedule := &domain.Schedule{
		ID:          uuid.NewString(),
		InstituteID: req.Snapshot.InstituteID,
		Semester:    req.Snapshot.Semester,
		Assignments: result.Assignments,
		Optimized:   result.Status == solveengine.Optimal,
		Score:       result.Objective,
	}
	report := metrics.Compute(res.Snapshot, schedule, satisfactionFromAssign(res, alloc.Assign))
	logger.Info("solve complete", zap.String("status", string(result.Status)), zap.Duration("elapsed", time.Since(start)))

	return &Outcome{
		Schedules: []ScheduleResult{{
			Schedule: schedule,
			Report:   report,
			Quality:  quality(report),
			Status:   result.Status,
		}},
		ElectiveAssign: alloc.Assign,
		History:        alloc.History,
	}, err
}

func quality(r metrics.Report) float64 {
	q := 0.3*r.StudentSatisfaction + 0.25*r.WorkloadBalance + 0.25*r.RoomUtilization + 0.2*r.ElectiveAllocationRate
	scale := 1 - 0.1*float64(r.ConstraintViolations)
	if scale < 0 {
		scale = 0
	}
	return q * scale
}

func satisfactionFromAssign(res *validate.Result, assign map[string][]string) map[string]float64 {
	out := make(map[string]float64, len(res.Snapshot.Students))
	for _, s := range res.Snapshot.Students {
		if len(s.Preferences) == 0 {
			continue
		}
		total := 0.0
		for _, courseID := range assign[s.ID] {
			for _, p := range s.Preferences {
				if p.CourseID == courseID {
					total += domain.RankWeight(p.Rank, domain.DefaultMaxPreferenceRank)
					break
				}
			}
		}
		out[s.ID] = total / float64(len(s.Preferences))
	}
	return out
}
