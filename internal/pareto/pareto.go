package pareto

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/varsity-sched/engine/internal/domain"
	"github.com/varsity-sched/engine/internal/metrics"
	"github.com/varsity-sched/engine/internal/solveengine"
	"github.com/varsity-sched/engine/internal/validate"
	"github.com/varsity-sched/engine/internal/variables"
)

// Variant is one schedule produced under a specific weight profile.
type Variant struct {
	OptionID string
	Profile  string
	Index    int
	Schedule *domain.Schedule
	Report   metrics.Report
	Quality  float64
	Status   solveengine.Status
}

// Run selects k profiles from Roster and solves the snapshot once per
// profile, concurrently, on a worker pool bounded to maxWorkers (a
// non-positive maxWorkers, or one above the profile count, gives one
// worker per profile). Every goroutine owns its own Model; res, history and
// electiveAssign are read-only and shared. Results are sorted by
// composite quality descending, stable by variant index. FairnessHistory
// is never updated here — callers apply history updates only for the
// schedule an administrator ultimately selects.
func Run(ctx context.Context, res *validate.Result, baseCfg domain.OptimizationConfig, electiveAssign map[string][]string, k, maxWorkers int, seed int64, logger *zap.Logger) ([]Variant, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	profiles := SelectProfiles(k)
	workers := maxWorkers
	if workers <= 0 || workers > len(profiles) {
		workers = len(profiles)
	}

	group, gctx := errgroup.WithContext(ctx)
	sem := make(chan struct{}, workers)
	results := make([]Variant, len(profiles))
	var mu sync.Mutex

	for i, profile := range profiles {
		i, profile := i, profile
		group.Go(func() error {
			select {
			case sem <- struct{}{}:
			case <-gctx.Done():
				return gctx.Err()
			}
			defer func() { <-sem }()

			model := variables.Build(res)
			variantCfg := withProfile(baseCfg, profile)
			variantSeed := seed + int64(i)

			// A per-variant INFEASIBLE is isolated, not fatal to the whole
			// sweep: Solve still returns a usable Result alongside the error
			// in that case. Only a nil Result (a genuinely unexpected
			// failure) aborts the group.
			result, err := solveengine.Solve(gctx, model, variantCfg, electiveAssign, variantSeed, logger.With(zap.String("profile", profile.Name)))
			if result == nil {
				return err
			}
			if err != nil {
				logger.Warn("pareto variant infeasible", zap.String("profile", profile.Name), zap.Error(err))
			}

			schedule := &domain.Schedule{
				ID:          uuid.NewString(),
				InstituteID: res.Snapshot.InstituteID,
				Semester:    res.Snapshot.Semester,
				Assignments: result.Assignments,
				Score:       result.Objective,
			}
			report := metrics.Compute(res.Snapshot, schedule, satisfactionFromAllocation(electiveAssign, res))
			quality := compositeQuality(report)

			mu.Lock()
			results[i] = Variant{
				OptionID: schedule.ID,
				Profile:  profile.Name,
				Index:    i,
				Schedule: schedule,
				Report:   report,
				Quality:  quality,
				Status:   result.Status,
			}
			mu.Unlock()
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Quality > results[j].Quality
	})
	return results, nil
}

// compositeQuality computes Q = 0.3*sat + 0.25*wl + 0.25*util + 0.2*elec_rate,
// scaled by max(0, 1 - 0.1*violations).
func compositeQuality(r metrics.Report) float64 {
	q := 0.3*r.StudentSatisfaction + 0.25*r.WorkloadBalance + 0.25*r.RoomUtilization + 0.2*r.ElectiveAllocationRate
	scale := 1 - 0.1*float64(r.ConstraintViolations)
	if scale < 0 {
		scale = 0
	}
	return q * scale
}

// satisfactionFromAllocation derives a per-student satisfaction score from
// the allocator's fixed bindings for use by the metrics evaluator.
func satisfactionFromAllocation(electiveAssign map[string][]string, res *validate.Result) map[string]float64 {
	out := make(map[string]float64, len(res.Snapshot.Students))
	for _, s := range res.Snapshot.Students {
		if len(s.Preferences) == 0 {
			continue
		}
		total := 0.0
		for _, courseID := range electiveAssign[s.ID] {
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
