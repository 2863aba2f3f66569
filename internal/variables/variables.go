// Package variables enumerates the sparse boolean decision variables the
// solver operates over: which (faculty, course, room, slot) placements are
// even possible, which (student, elective) bindings are legal, and the
// per-faculty and per-room available-slot lists used to filter them.
package variables

import (
	"github.com/varsity-sched/engine/internal/domain"
	"github.com/varsity-sched/engine/internal/validate"
)

// AssignVar is one candidate placement of a course into a faculty, room
// and time slot. Only tuples that already pass eligibility, suitability
// and availability filtering are materialized — infeasible combinations
// never become variables.
type AssignVar struct {
	FacultyID  string
	CourseID   string
	RoomID     string
	TimeSlotID int
}

// ElectiveVar is one candidate (student, elective course) binding. Only
// materialized for courses that appear in the student's preference list.
type ElectiveVar struct {
	StudentID string
	CourseID  string
}

// Model holds every decision variable domain plus the auxiliary indices
// the constraint encoder, objective builder and solve engine need.
type Model struct {
	Snapshot *domain.Snapshot
	Result   *validate.Result

	// AssignDomain[courseID] lists every feasible (f,r,t) placement for
	// that course.
	AssignDomain map[string][]AssignVar

	// ElectiveDomain[studentID] lists every elective course the student
	// ranked and could legally be assigned to.
	ElectiveDomain map[string][]ElectiveVar

	// FacultySlots[facultyID] lists every time slot that faculty member
	// is available at, used to drop placements outside that availability.
	FacultySlots map[string][]int

	// RoomSlots[roomID] lists every time slot that room is available at.
	RoomSlots map[string][]int
}

// Build enumerates the sparse decision variable domains for a validated
// snapshot.
func Build(res *validate.Result) *Model {
	snap := res.Snapshot
	m := &Model{
		Snapshot:       snap,
		Result:         res,
		AssignDomain:   make(map[string][]AssignVar, len(snap.Courses)),
		ElectiveDomain: make(map[string][]ElectiveVar, len(snap.Students)),
		FacultySlots:   make(map[string][]int, len(snap.Faculty)),
		RoomSlots:      make(map[string][]int, len(snap.Rooms)),
	}

	for i := range snap.Faculty {
		f := &snap.Faculty[i]
		for _, slot := range snap.Slots {
			if f.IsAvailable(slot.Day, slot.ID) {
				m.FacultySlots[f.ID] = append(m.FacultySlots[f.ID], slot.ID)
			}
		}
	}
	for i := range snap.Rooms {
		r := &snap.Rooms[i]
		for _, slot := range snap.Slots {
			if r.IsAvailableAt(slot.ID) {
				m.RoomSlots[r.ID] = append(m.RoomSlots[r.ID], slot.ID)
			}
		}
	}

	for _, c := range snap.Courses {
		var domainTuples []AssignVar
		for _, facultyID := range res.EligibleFaculty[c.ID] {
			facultyAvailable := make(map[int]bool, len(m.FacultySlots[facultyID]))
			for _, t := range m.FacultySlots[facultyID] {
				facultyAvailable[t] = true
			}
			for _, roomID := range res.SuitableRooms[c.ID] {
				for _, t := range m.RoomSlots[roomID] {
					if !facultyAvailable[t] {
						continue
					}
					domainTuples = append(domainTuples, AssignVar{
						FacultyID:  facultyID,
						CourseID:   c.ID,
						RoomID:     roomID,
						TimeSlotID: t,
					})
				}
			}
		}
		m.AssignDomain[c.ID] = domainTuples
	}

	courseIndex := snap.CourseByID()
	for _, s := range snap.Students {
		var electives []ElectiveVar
		for _, pref := range s.Preferences {
			if course, ok := courseIndex[pref.CourseID]; ok && course.Elective {
				electives = append(electives, ElectiveVar{StudentID: s.ID, CourseID: pref.CourseID})
			}
		}
		m.ElectiveDomain[s.ID] = electives
	}

	return m
}
