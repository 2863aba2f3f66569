package constraints_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/varsity-sched/engine/internal/constraints"
	"github.com/varsity-sched/engine/internal/domain"
)

func sampleState() *constraints.State {
	snap := &domain.Snapshot{
		Courses: []domain.Course{
			{ID: "cs101", HoursPerWeek: 3},
			{ID: "cs201", HoursPerWeek: 4, Prerequisites: []string{"cs101"}},
		},
		Faculty: []domain.Faculty{
			{ID: "f1", MaxHoursPerWeek: 10},
		},
		Rooms: []domain.Room{
			{ID: "r1", Capacity: 30},
		},
		Slots: []domain.TimeSlot{
			{ID: 1, Day: 1},
		},
	}
	return &constraints.State{
		Snapshot:      snap,
		PrereqClosure: map[string][]string{"cs201": {"cs101"}},
	}
}

func TestCheckAll_NoViolationsOnFeasibleState(t *testing.T) {
	state := sampleState()
	state.Snapshot.Slots = append(state.Snapshot.Slots, domain.TimeSlot{ID: 2, Day: 1})
	state.Assignments = []domain.Assignment{
		{CourseID: "cs101", FacultyID: "f1", RoomID: "r1", TimeSlotID: 1, StudentCount: 20},
		{CourseID: "cs201", FacultyID: "f1", RoomID: "r1", TimeSlotID: 2, StudentCount: 20},
	}
	violations := constraints.CheckAll(state)
	assert.Empty(t, violations)
}

func TestCheckAll_DetectsFacultyDoubleBooking(t *testing.T) {
	state := sampleState()
	state.Assignments = []domain.Assignment{
		{CourseID: "cs101", FacultyID: "f1", RoomID: "r1", TimeSlotID: 1, StudentCount: 10},
		{CourseID: "cs201", FacultyID: "f1", RoomID: "r1", TimeSlotID: 1, StudentCount: 10},
	}
	violations := constraints.CheckAll(state)
	assert.Contains(t, kinds(violations), constraints.FacultyNonOverlap)
}

func TestCheckAll_DetectsRoomCapacityViolation(t *testing.T) {
	state := sampleState()
	state.Assignments = []domain.Assignment{
		{CourseID: "cs101", FacultyID: "f1", RoomID: "r1", TimeSlotID: 1, StudentCount: 999},
	}
	violations := constraints.CheckAll(state)
	assert.Contains(t, kinds(violations), constraints.RoomCapacity)
}

func TestCheckAll_DetectsUnmetPrerequisite(t *testing.T) {
	state := sampleState()
	state.Assignments = []domain.Assignment{
		{CourseID: "cs201", FacultyID: "f1", RoomID: "r1", TimeSlotID: 1, StudentCount: 10},
	}
	violations := constraints.CheckAll(state)
	assert.Contains(t, kinds(violations), constraints.Prerequisite)
}

func TestCheckAll_DetectsMissingRequiredCourse(t *testing.T) {
	state := sampleState()
	state.Assignments = nil
	violations := constraints.CheckAll(state)
	assert.Contains(t, kinds(violations), constraints.CourseSchedulingLink)
}

func TestCheckAll_DetectsFacultyWeeklyCapExceeded(t *testing.T) {
	state := sampleState()
	state.Snapshot.Faculty[0].MaxHoursPerWeek = 2
	state.Assignments = []domain.Assignment{
		{CourseID: "cs101", FacultyID: "f1", RoomID: "r1", TimeSlotID: 1, StudentCount: 10},
	}
	violations := constraints.CheckAll(state)
	assert.Contains(t, kinds(violations), constraints.FacultyWeeklyCap)
}

func kinds(violations []constraints.Violation) []constraints.Kind {
	out := make([]constraints.Kind, len(violations))
	for i, v := range violations {
		out[i] = v.Kind
	}
	return out
}
