package metrics_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/varsity-sched/engine/internal/domain"
	"github.com/varsity-sched/engine/internal/metrics"
)

func TestCompute_PerfectBalanceWhenWorkloadsEqual(t *testing.T) {
	snap := &domain.Snapshot{
		Rooms: []domain.Room{{ID: "r1", Type: domain.RoomLecture}},
		Slots: []domain.TimeSlot{{ID: 1}, {ID: 2}},
	}
	schedule := &domain.Schedule{Assignments: []domain.Assignment{
		{FacultyID: "f1", RoomID: "r1", TimeSlotID: 1},
		{FacultyID: "f2", RoomID: "r1", TimeSlotID: 2},
	}}

	report := metrics.Compute(snap, schedule, nil)
	assert.Equal(t, 1.0, report.WorkloadBalance)
	assert.Equal(t, 0, report.ConstraintViolations)
}

func TestCompute_DetectsConflictViolations(t *testing.T) {
	snap := &domain.Snapshot{Slots: []domain.TimeSlot{{ID: 1}}}
	schedule := &domain.Schedule{Assignments: []domain.Assignment{
		{FacultyID: "f1", RoomID: "r1", TimeSlotID: 1},
		{FacultyID: "f1", RoomID: "r2", TimeSlotID: 1},
	}}

	report := metrics.Compute(snap, schedule, nil)
	assert.Equal(t, 1, report.ConstraintViolations)
}

func TestCompute_ElectiveAllocationRate(t *testing.T) {
	snap := &domain.Snapshot{
		Students: []domain.Student{
			{ID: "s1", Preferences: []domain.Preference{{CourseID: "e1", Rank: 1}, {CourseID: "e2", Rank: 2}}},
			{ID: "s2", Preferences: []domain.Preference{{CourseID: "e1", Rank: 1}}},
		},
	}
	satisfaction := map[string]float64{"s1": 1.0, "s2": 0}

	report := metrics.Compute(snap, &domain.Schedule{}, satisfaction)
	assert.InDelta(t, 1.0/3.0, report.ElectiveAllocationRate, 0.0001)
}

func TestCompute_ByDepartmentGroupsStudents(t *testing.T) {
	snap := &domain.Snapshot{
		Students: []domain.Student{
			{ID: "s1", Department: "cs"},
			{ID: "s2", Department: "cs"},
			{ID: "s3", Department: "math"},
		},
	}
	satisfaction := map[string]float64{"s1": 1.0, "s2": 0.5, "s3": 0.2}

	report := metrics.Compute(snap, &domain.Schedule{}, satisfaction)
	assert.InDelta(t, 0.75, report.ByDepartment["cs"], 0.0001)
	assert.InDelta(t, 0.2, report.ByDepartment["math"], 0.0001)
}
