package exporter_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/varsity-sched/engine/internal/domain"
	"github.com/varsity-sched/engine/internal/exporter"
	"github.com/varsity-sched/engine/internal/metrics"
)

func TestBuild_GroupsAssignmentsBySlotAscending(t *testing.T) {
	schedule := &domain.Schedule{
		ID:          "sched-1",
		InstituteID: "inst-1",
		Semester:    2,
		Assignments: []domain.Assignment{
			{CourseID: "c2", FacultyID: "f1", RoomID: "r1", TimeSlotID: 2},
			{CourseID: "c1", FacultyID: "f1", RoomID: "r1", TimeSlotID: 1},
		},
	}
	export := exporter.Build(schedule, metrics.Report{StudentSatisfaction: 0.8}, "balanced", 0.7)

	assert.Equal(t, "sched-1", export.ScheduleID)
	assert.Equal(t, "balanced", export.Profile)
	assert.Len(t, export.BySlot, 2)
	assert.Equal(t, 1, export.BySlot[0].TimeSlotID)
	assert.Equal(t, 2, export.BySlot[1].TimeSlotID)
}

func TestBuild_AssignmentListSortedByCourseThenSlot(t *testing.T) {
	schedule := &domain.Schedule{
		Assignments: []domain.Assignment{
			{CourseID: "b", TimeSlotID: 2},
			{CourseID: "a", TimeSlotID: 1},
		},
	}
	export := exporter.Build(schedule, metrics.Report{}, "", 0)
	assert.Equal(t, "a", export.Assignments[0].CourseID)
	assert.Equal(t, "b", export.Assignments[1].CourseID)
}
