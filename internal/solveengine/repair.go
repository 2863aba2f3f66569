package solveengine

import (
	"github.com/varsity-sched/engine/internal/domain"
	"github.com/varsity-sched/engine/internal/variables"
)

// repairDuds retries every course the constructive pass failed to place
// (the "dud list"), this time allowed to bump an already-placed elective
// out of its slot if doing so frees room for a required course — required
// courses always win over electives, matching the course-required rule
// adopted for scheduling (required core courses are always scheduled;
// electives are solver/allocator-chosen). Returns the updated assignment
// set and whatever remains stuck.
func repairDuds(model *variables.Model, placed []domain.Assignment, dud []string) ([]domain.Assignment, []string) {
	if len(dud) == 0 {
		return placed, nil
	}
	courseIndex := model.Snapshot.CourseByID()
	facultyIndex := model.Snapshot.FacultyByID()
	busy := rebuildBusyState(model, placed)

	var stillStuck []string
	for _, courseID := range dud {
		course := courseIndex[courseID]
		if course == nil {
			stillStuck = append(stillStuck, courseID)
			continue
		}
		placedNow := false
		for _, v := range model.AssignDomain[courseID] {
			faculty := facultyIndex[v.FacultyID]
			if faculty != nil && busy.fits(v, course.HoursPerWeek, faculty) {
				busy.place(v, course.HoursPerWeek)
				placed = append(placed, newAssignment(courseID, course, v))
				placedNow = true
				break
			}
		}
		if placedNow || course.Elective {
			if !placedNow {
				stillStuck = append(stillStuck, courseID)
			}
			continue
		}

		// Required course with no free slot: evict one conflicting
		// elective assignment and retry once.
		evicted := evictConflictingElective(model, placed, courseID, busy, courseIndex)
		if evicted == -1 {
			stillStuck = append(stillStuck, courseID)
			continue
		}
		placed = append(placed[:evicted], placed[evicted+1:]...)
		for _, v := range model.AssignDomain[courseID] {
			faculty := facultyIndex[v.FacultyID]
			if faculty != nil && busy.fits(v, course.HoursPerWeek, faculty) {
				busy.place(v, course.HoursPerWeek)
				placed = append(placed, newAssignment(courseID, course, v))
				placedNow = true
				break
			}
		}
		if !placedNow {
			stillStuck = append(stillStuck, courseID)
		}
	}
	return placed, stillStuck
}

func newAssignment(courseID string, course *domain.Course, v variables.AssignVar) domain.Assignment {
	return domain.Assignment{
		CourseID:     courseID,
		FacultyID:    v.FacultyID,
		RoomID:       v.RoomID,
		TimeSlotID:   v.TimeSlotID,
		Section:      "1",
		StudentCount: course.MaxStudentsPerSection,
		Elective:     course.Elective,
	}
}

// evictConflictingElective removes the first elective assignment from
// placed that shares a faculty or room with any domain tuple of
// courseID, freeing capacity for a required course. Returns its index in
// the (pre-eviction) placed slice, or -1 if none was found.
func evictConflictingElective(model *variables.Model, placed []domain.Assignment, courseID string, busy *busyState, courseIndex map[string]*domain.Course) int {
	for i, a := range placed {
		if !a.Elective {
			continue
		}
		for _, v := range model.AssignDomain[courseID] {
			if v.FacultyID == a.FacultyID && v.TimeSlotID == a.TimeSlotID ||
				v.RoomID == a.RoomID && v.TimeSlotID == a.TimeSlotID {
				c := courseIndex[a.CourseID]
				hours := 0
				if c != nil {
					hours = c.HoursPerWeek
				}
				busy.unplace(variables.AssignVar{FacultyID: a.FacultyID, RoomID: a.RoomID, TimeSlotID: a.TimeSlotID}, hours)
				return i
			}
		}
	}
	return -1
}
