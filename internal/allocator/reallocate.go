package allocator

import (
	"github.com/varsity-sched/engine/internal/domain"
	"github.com/varsity-sched/engine/internal/validate"
)

// Delta is the output of ReallocateSubset: only the newly changed
// student->course bindings, not a full re-allocation.
type Delta struct {
	Assign       map[string][]string
	Satisfaction map[string]float64
	History      domain.FairnessHistory
}

// ReallocateSubset re-runs the five-round allocation restricted to
// students, against the current residual elective capacities (capacity
// already consumed by students outside the subset is not rolled back).
// It does not touch the scheduler or re-place any course. Used when a
// student drops a course and needs a fresh elective binding without
// re-solving the whole timetable.
func ReallocateSubset(res *validate.Result, residualCapacity map[string]int, students []string, history domain.FairnessHistory, seed int64) Delta {
	full := *res.Snapshot
	subset := make([]domain.Student, 0, len(students))
	wanted := make(map[string]bool, len(students))
	for _, id := range students {
		wanted[id] = true
	}
	for _, s := range full.Students {
		if wanted[s.ID] {
			subset = append(subset, s)
		}
	}
	full.Students = subset
	subsetResult := &validate.Result{
		Snapshot:        &full,
		EligibleFaculty: res.EligibleFaculty,
		SuitableRooms:   res.SuitableRooms,
		PrereqClosure:   res.PrereqClosure,
	}

	full.Courses = withResidualCapacity(full.Courses, residualCapacity)

	out := Run(subsetResult, history, seed)
	return Delta{Assign: out.Assign, Satisfaction: out.Satisfaction, History: out.History}
}

func withResidualCapacity(courses []domain.Course, residual map[string]int) []domain.Course {
	updated := make([]domain.Course, len(courses))
	copy(updated, courses)
	for i := range updated {
		if cap, ok := residual[updated[i].ID]; ok {
			updated[i].ElectiveCapacity = cap
		}
	}
	return updated
}
