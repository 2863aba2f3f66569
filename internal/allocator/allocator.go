// Package allocator implements the five-round priority elective
// allocator: a pure function from (snapshot, config, history) to
// (allocations, new history), with no shared mutable state between
// invocations or with the scheduler.
package allocator

import (
	"math/rand"
	"sort"

	"github.com/varsity-sched/engine/internal/domain"
	"github.com/varsity-sched/engine/internal/validate"
)

// Allocation is one invocation's elective binding result.
type Allocation struct {
	// Assign maps student id -> allocated elective course ids, one per
	// round that placed a preference, up to MaxElectivesPerStudent.
	// Students with no allocation this invocation are absent from the
	// map.
	Assign map[string][]string

	// Satisfaction maps student id -> this invocation's satisfaction
	// score, the input to FairnessHistory's carry-forward.
	Satisfaction map[string]float64

	// History is the updated FairnessHistory after appending this
	// invocation's scores, trimmed to the bounded ring.
	History domain.FairnessHistory
}

// Run executes the five-round allocation described in the elective
// allocator: students are ranked once by priority score, then for each
// round 1..5 each student (in that fixed order) is offered their
// rank-r preference if it still has capacity and a faculty/room/slot
// triple could in principle host it.
func Run(res *validate.Result, history domain.FairnessHistory, seed int64) Allocation {
	snap := res.Snapshot
	rng := rand.New(rand.NewSource(seed))

	capacity := make(map[string]int, len(snap.Courses))
	for _, c := range snap.Courses {
		if c.Elective {
			capacity[c.ID] = c.ElectiveCapacity
		}
	}

	order := priorityOrder(snap.Students, history, rng)
	maxPerStudent := snap.Config.MaxElectivesPerStudent
	if maxPerStudent <= 0 {
		maxPerStudent = 1
	}

	assign := make(map[string][]string, len(snap.Students))
	counts := make(map[string]int, len(snap.Students))

	for round := 1; round <= 5; round++ {
		for _, s := range order {
			if counts[s.ID] >= maxPerStudent {
				continue
			}
			pref, ok := s.PreferenceAt(round)
			if !ok {
				continue
			}
			if capacity[pref.CourseID] <= 0 {
				continue
			}
			if !hostable(res, pref.CourseID) {
				continue
			}
			assign[s.ID] = append(assign[s.ID], pref.CourseID)
			counts[s.ID]++
			capacity[pref.CourseID]--
		}
	}

	satisfaction := computeSatisfaction(snap.Students, assign)
	newHistory := domain.UpdateHistory(history, satisfaction)

	return Allocation{Assign: assign, Satisfaction: satisfaction, History: newHistory}
}

// hostable reports whether the derived indices show at least one
// faculty/room combination capable of hosting courseID at all — the
// §4.1 eligibility and suitability indices, not a concrete slot pick
// (that's the scheduler's job).
func hostable(res *validate.Result, courseID string) bool {
	return len(res.EligibleFaculty[courseID]) > 0 && len(res.SuitableRooms[courseID]) > 0
}

// priorityOrder ranks students by (1 - historical_satisfaction(s)) *
// U(0.8, 1.2), descending, so students whose past allocations fell short
// are offered seats first. The order is fully determined before any
// round begins.
func priorityOrder(students []domain.Student, history domain.FairnessHistory, rng *rand.Rand) []domain.Student {
	type scored struct {
		student domain.Student
		score   float64
	}
	scoredStudents := make([]scored, len(students))
	for i, s := range students {
		jitter := 0.8 + rng.Float64()*0.4
		scoredStudents[i] = scored{student: s, score: (1 - history.HistoricalSatisfaction(s.ID)) * jitter}
	}
	sort.SliceStable(scoredStudents, func(i, j int) bool {
		return scoredStudents[i].score > scoredStudents[j].score
	})
	ordered := make([]domain.Student, len(scoredStudents))
	for i, s := range scoredStudents {
		ordered[i] = s.student
	}
	return ordered
}

// computeSatisfaction scores each student with preferences as the sum of
// rank_weight over every allocated course, divided by the number of
// preferences they listed.
func computeSatisfaction(students []domain.Student, assign map[string][]string) map[string]float64 {
	out := make(map[string]float64, len(students))
	for _, s := range students {
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
