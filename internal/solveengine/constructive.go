package solveengine

import (
	"sort"
	"strconv"

	"github.com/varsity-sched/engine/internal/domain"
	"github.com/varsity-sched/engine/internal/variables"
)

// busyState tracks which (faculty, slot) and (room, slot) pairs are
// already taken during the constructive pass, plus running weekly hours
// per faculty, so each placement decision is a cheap lookup instead of a
// full rescan of the assignment list.
type busyState struct {
	facultySlot map[string]bool
	roomSlot    map[string]bool
	weeklyHours map[string]int
}

func newBusyState() *busyState {
	return &busyState{
		facultySlot: make(map[string]bool),
		roomSlot:    make(map[string]bool),
		weeklyHours: make(map[string]int),
	}
}

func (b *busyState) fits(v variables.AssignVar, hoursPerWeek int, faculty *domain.Faculty) bool {
	fKey := v.FacultyID + "@" + strconv.Itoa(v.TimeSlotID)
	rKey := v.RoomID + "@" + strconv.Itoa(v.TimeSlotID)
	if b.facultySlot[fKey] || b.roomSlot[rKey] {
		return false
	}
	if faculty.MaxHoursPerWeek > 0 && b.weeklyHours[v.FacultyID]+hoursPerWeek > faculty.MaxHoursPerWeek {
		return false
	}
	return true
}

func (b *busyState) place(v variables.AssignVar, hoursPerWeek int) {
	b.facultySlot[v.FacultyID+"@"+strconv.Itoa(v.TimeSlotID)] = true
	b.roomSlot[v.RoomID+"@"+strconv.Itoa(v.TimeSlotID)] = true
	b.weeklyHours[v.FacultyID] += hoursPerWeek
}

func (b *busyState) unplace(v variables.AssignVar, hoursPerWeek int) {
	delete(b.facultySlot, v.FacultyID+"@"+strconv.Itoa(v.TimeSlotID))
	delete(b.roomSlot, v.RoomID+"@"+strconv.Itoa(v.TimeSlotID))
	b.weeklyHours[v.FacultyID] -= hoursPerWeek
}

// constructivePass seeds a feasible assignment set, one required course at
// a time, most-constrained-first (fewest domain options first — the
// same degree-ordering idea behind a max-degree-pivot graph coloring
// pass, adapted to pick courses instead of graph vertices). Electives
// bound by the allocator are placed the same way; electives the
// allocator left unbound are skipped. Courses that cannot be placed at
// all are returned in the dud list for the repair pass.
func constructivePass(model *variables.Model, electiveAssign map[string][]string) (placed []domain.Assignment, dud []string) {
	snap := model.Snapshot
	courseIndex := snap.CourseByID()
	facultyIndex := snap.FacultyByID()

	boundStudentsByCourse := make(map[string][]string)
	for studentID, courseIDs := range electiveAssign {
		for _, courseID := range courseIDs {
			boundStudentsByCourse[courseID] = append(boundStudentsByCourse[courseID], studentID)
		}
	}

	var required []string
	for _, c := range snap.Courses {
		if c.Elective {
			if len(boundStudentsByCourse[c.ID]) > 0 {
				required = append(required, c.ID)
			}
			continue
		}
		required = append(required, c.ID)
	}
	sort.Slice(required, func(i, j int) bool {
		return len(model.AssignDomain[required[i]]) < len(model.AssignDomain[required[j]])
	})

	busy := newBusyState()
	for _, courseID := range required {
		course := courseIndex[courseID]
		if course == nil {
			continue
		}
		domainTuples := model.AssignDomain[courseID]
		placedThis := false
		for _, v := range domainTuples {
			faculty := facultyIndex[v.FacultyID]
			if faculty == nil || !busy.fits(v, course.HoursPerWeek, faculty) {
				continue
			}
			busy.place(v, course.HoursPerWeek)
			studentCount := course.MaxStudentsPerSection
			if course.Elective {
				studentCount = len(boundStudentsByCourse[courseID])
			}
			placed = append(placed, domain.Assignment{
				CourseID:     courseID,
				FacultyID:    v.FacultyID,
				RoomID:       v.RoomID,
				TimeSlotID:   v.TimeSlotID,
				Section:      "1",
				StudentCount: studentCount,
				Elective:     course.Elective,
			})
			placedThis = true
			break
		}
		if !placedThis {
			dud = append(dud, courseID)
		}
	}
	return placed, dud
}
