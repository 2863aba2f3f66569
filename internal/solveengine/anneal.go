package solveengine

import (
	"math"
	"math/rand"

	"github.com/varsity-sched/engine/internal/domain"
	"github.com/varsity-sched/engine/internal/objective"
	"github.com/varsity-sched/engine/internal/variables"
)

// annealConfig tunes the Metropolis refinement pass.
type annealConfig struct {
	InitialTemp float64
	CoolingRate float64
	Iterations  int
}

func defaultAnnealConfig(iterationBudget int) annealConfig {
	if iterationBudget <= 0 {
		iterationBudget = 2000
	}
	return annealConfig{
		InitialTemp: 100,
		CoolingRate: 0.995,
		Iterations:  iterationBudget,
	}
}

// anneal refines a placed assignment set against the weighted objective
// using simulated annealing: at each step one assignment is proposed a
// different (faculty, room, slot) from its own domain, accepted
// unconditionally if it improves the objective and otherwise accepted
// with Metropolis probability e^(-delta/T), the same acceptance rule the
// teacher's coloring refinement pass uses.
func anneal(model *variables.Model, placed []domain.Assignment, electiveAssign map[string][]string, cfg annealConfig, rng *rand.Rand) []domain.Assignment {
	if len(placed) == 0 {
		return placed
	}
	current := make([]domain.Assignment, len(placed))
	copy(current, placed)

	snap := model.Snapshot
	schedule := &domain.Schedule{Assignments: current}
	currentValue, _ := objective.Evaluate(snap, schedule, electiveAssign)

	courseIndex := snap.CourseByID()
	facultyIndex := snap.FacultyByID()
	busy := rebuildBusyState(model, current)
	temperature := cfg.InitialTemp

	for i := 0; i < cfg.Iterations; i++ {
		idx := rng.Intn(len(current))
		a := current[idx]
		domainTuples := model.AssignDomain[a.CourseID]
		if len(domainTuples) < 2 {
			temperature *= cfg.CoolingRate
			continue
		}
		candidate := domainTuples[rng.Intn(len(domainTuples))]
		old := variables.AssignVar{FacultyID: a.FacultyID, CourseID: a.CourseID, RoomID: a.RoomID, TimeSlotID: a.TimeSlotID}
		if candidate == old {
			temperature *= cfg.CoolingRate
			continue
		}

		course := courseIndex[a.CourseID]
		faculty := facultyIndex[candidate.FacultyID]
		if course == nil || faculty == nil {
			continue
		}

		busy.unplace(old, course.HoursPerWeek)
		if !busy.fits(candidate, course.HoursPerWeek, faculty) {
			busy.place(old, course.HoursPerWeek)
			temperature *= cfg.CoolingRate
			continue
		}

		current[idx].FacultyID = candidate.FacultyID
		current[idx].RoomID = candidate.RoomID
		current[idx].TimeSlotID = candidate.TimeSlotID

		newValue, _ := objective.Evaluate(snap, schedule, electiveAssign)
		delta := currentValue - newValue // objective is maximized; delta>0 means worse

		accept := delta <= 0
		if !accept {
			probability := math.Exp(-delta / temperature)
			accept = rng.Float64() < probability
		}

		if accept {
			busy.place(candidate, course.HoursPerWeek)
			currentValue = newValue
		} else {
			current[idx].FacultyID = old.FacultyID
			current[idx].RoomID = old.RoomID
			current[idx].TimeSlotID = old.TimeSlotID
			busy.place(old, course.HoursPerWeek)
		}

		temperature *= cfg.CoolingRate
	}

	return current
}

func rebuildBusyState(model *variables.Model, assignments []domain.Assignment) *busyState {
	busy := newBusyState()
	courseIndex := model.Snapshot.CourseByID()
	for _, a := range assignments {
		course := courseIndex[a.CourseID]
		hours := 0
		if course != nil {
			hours = course.HoursPerWeek
		}
		busy.place(variables.AssignVar{FacultyID: a.FacultyID, RoomID: a.RoomID, TimeSlotID: a.TimeSlotID}, hours)
	}
	return busy
}
