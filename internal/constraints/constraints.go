// Package constraints encodes the nine hard constraints of §4.4 as a
// closed set of tagged variants dispatched through a single check
// function (driven for every family by CheckAll), rather than a
// polymorphic constraint hierarchy.
package constraints

import (
	"strconv"

	"github.com/varsity-sched/engine/internal/domain"
)

// Kind names one of the nine hard constraint families.
type Kind int

const (
	FacultyNonOverlap Kind = iota
	RoomNonOverlap
	StudentNonOverlap
	FacultyAvailability
	RoomAvailability
	RoomCapacity
	Prerequisite
	FacultyWeeklyCap
	CourseSchedulingLink
)

func (k Kind) String() string {
	switch k {
	case FacultyNonOverlap:
		return "FacultyNonOverlap"
	case RoomNonOverlap:
		return "RoomNonOverlap"
	case StudentNonOverlap:
		return "StudentNonOverlap"
	case FacultyAvailability:
		return "FacultyAvailability"
	case RoomAvailability:
		return "RoomAvailability"
	case RoomCapacity:
		return "RoomCapacity"
	case Prerequisite:
		return "Prerequisite"
	case FacultyWeeklyCap:
		return "FacultyWeeklyCap"
	case CourseSchedulingLink:
		return "CourseSchedulingLink"
	default:
		return "Unknown"
	}
}

// Violation reports one broken instance of one constraint family.
type Violation struct {
	Kind   Kind
	Detail string
}

// State is the partial or complete candidate assignment set the solve
// engine checks constraints against, plus the supporting snapshot and
// derived closures needed to evaluate them.
type State struct {
	Snapshot      *domain.Snapshot
	Assignments   []domain.Assignment
	PrereqClosure map[string][]string

	// ElectiveAssign is the allocator's binding: student id -> elective
	// course ids. Consumed here as a fixed input (§9 design note).
	ElectiveAssign map[string][]string
}

// CheckAll runs every constraint family against state and returns every
// violation found. An empty result means state is hard-feasible.
func CheckAll(state *State) []Violation {
	var violations []Violation
	for _, k := range []Kind{
		FacultyNonOverlap, RoomNonOverlap, StudentNonOverlap,
		FacultyAvailability, RoomAvailability, RoomCapacity,
		Prerequisite, FacultyWeeklyCap, CourseSchedulingLink,
	} {
		violations = append(violations, check(k, state)...)
	}
	return violations
}

// check dispatches to the encoder for one constraint family. This is the
// single point of dynamic dispatch the constraint library exposes; there
// is no per-constraint type hierarchy.
func check(k Kind, state *State) []Violation {
	switch k {
	case FacultyNonOverlap:
		return checkFacultyNonOverlap(state)
	case RoomNonOverlap:
		return checkRoomNonOverlap(state)
	case StudentNonOverlap:
		return checkStudentNonOverlap(state)
	case FacultyAvailability:
		return checkFacultyAvailability(state)
	case RoomAvailability:
		return checkRoomAvailability(state)
	case RoomCapacity:
		return checkRoomCapacity(state)
	case Prerequisite:
		return checkPrerequisite(state)
	case FacultyWeeklyCap:
		return checkFacultyWeeklyCap(state)
	case CourseSchedulingLink:
		return checkCourseSchedulingLink(state)
	default:
		return nil
	}
}

func checkFacultyNonOverlap(state *State) []Violation {
	seen := make(map[string]bool)
	var violations []Violation
	for _, a := range state.Assignments {
		key := a.FacultyID + "@" + strconv.Itoa(a.TimeSlotID)
		if seen[key] {
			violations = append(violations, Violation{FacultyNonOverlap,
				"faculty " + a.FacultyID + " double-booked at slot"})
			continue
		}
		seen[key] = true
	}
	return violations
}

func checkRoomNonOverlap(state *State) []Violation {
	seen := make(map[string]bool)
	var violations []Violation
	for _, a := range state.Assignments {
		key := a.RoomID + "@" + strconv.Itoa(a.TimeSlotID)
		if seen[key] {
			violations = append(violations, Violation{RoomNonOverlap,
				"room " + a.RoomID + " double-booked at slot"})
			continue
		}
		seen[key] = true
	}
	return violations
}

// checkStudentNonOverlap enforces non-overlap only through elective
// bindings, per the open design note on student conflict encoding: core
// course overlap is not modeled here.
func checkStudentNonOverlap(state *State) []Violation {
	slotByCourse := make(map[string]int, len(state.Assignments))
	for _, a := range state.Assignments {
		if a.Elective {
			slotByCourse[a.CourseID] = a.TimeSlotID
		}
	}
	studentSlots := make(map[string]map[int]bool)
	var violations []Violation
	for studentID, courseIDs := range state.ElectiveAssign {
		for _, courseID := range courseIDs {
			slot, scheduled := slotByCourse[courseID]
			if !scheduled {
				continue
			}
			if studentSlots[studentID] == nil {
				studentSlots[studentID] = make(map[int]bool)
			}
			if studentSlots[studentID][slot] {
				violations = append(violations, Violation{StudentNonOverlap,
					"student " + studentID + " double-booked at slot by elective bindings"})
				continue
			}
			studentSlots[studentID][slot] = true
		}
	}
	return violations
}

func checkFacultyAvailability(state *State) []Violation {
	facultyIndex := state.Snapshot.FacultyByID()
	var violations []Violation
	for _, a := range state.Assignments {
		f, ok := facultyIndex[a.FacultyID]
		if !ok {
			continue
		}
		day := dayOfSlot(state.Snapshot, a.TimeSlotID)
		if !f.IsAvailable(day, a.TimeSlotID) {
			violations = append(violations, Violation{FacultyAvailability,
				"faculty " + a.FacultyID + " not available at slot"})
		}
	}
	return violations
}

func checkRoomAvailability(state *State) []Violation {
	roomIndex := state.Snapshot.RoomByID()
	var violations []Violation
	for _, a := range state.Assignments {
		r, ok := roomIndex[a.RoomID]
		if !ok {
			continue
		}
		if !r.IsAvailableAt(a.TimeSlotID) {
			violations = append(violations, Violation{RoomAvailability,
				"room " + a.RoomID + " not available at slot"})
		}
	}
	return violations
}

func checkRoomCapacity(state *State) []Violation {
	roomIndex := state.Snapshot.RoomByID()
	var violations []Violation
	for _, a := range state.Assignments {
		r, ok := roomIndex[a.RoomID]
		if !ok {
			continue
		}
		if !r.CanAccommodate(a.StudentCount) {
			violations = append(violations, Violation{RoomCapacity,
				"room " + a.RoomID + " too small for assignment"})
		}
	}
	return violations
}

func checkPrerequisite(state *State) []Violation {
	scheduled := make(map[string]bool, len(state.Assignments))
	for _, a := range state.Assignments {
		scheduled[a.CourseID] = true
	}
	var violations []Violation
	for courseID, prereqs := range state.PrereqClosure {
		if !scheduled[courseID] {
			continue
		}
		for _, p := range prereqs {
			if !scheduled[p] {
				violations = append(violations, Violation{Prerequisite,
					"course " + courseID + " scheduled without prerequisite " + p})
			}
		}
	}
	return violations
}

func checkFacultyWeeklyCap(state *State) []Violation {
	facultyIndex := state.Snapshot.FacultyByID()
	hours := make(map[string]int)
	courseIndex := state.Snapshot.CourseByID()
	for _, a := range state.Assignments {
		if c, ok := courseIndex[a.CourseID]; ok {
			hours[a.FacultyID] += c.HoursPerWeek
		}
	}
	var violations []Violation
	for facultyID, h := range hours {
		f, ok := facultyIndex[facultyID]
		if !ok || f.MaxHoursPerWeek <= 0 {
			continue
		}
		if h > f.MaxHoursPerWeek {
			violations = append(violations, Violation{FacultyWeeklyCap,
				"faculty " + facultyID + " exceeds weekly hour cap"})
		}
	}
	return violations
}

// checkCourseSchedulingLink enforces that every required (non-elective)
// course in the snapshot is actually scheduled; electives are
// solver/allocator-chosen and are not required here (§9 design note).
func checkCourseSchedulingLink(state *State) []Violation {
	scheduled := make(map[string]bool, len(state.Assignments))
	for _, a := range state.Assignments {
		scheduled[a.CourseID] = true
	}
	var violations []Violation
	for _, c := range state.Snapshot.Courses {
		if c.Elective {
			continue
		}
		if !scheduled[c.ID] {
			violations = append(violations, Violation{CourseSchedulingLink,
				"required course " + c.ID + " not scheduled"})
		}
	}
	return violations
}

func dayOfSlot(snap *domain.Snapshot, slotID int) int {
	for _, s := range snap.Slots {
		if s.ID == slotID {
			return s.Day
		}
	}
	return 0
}
