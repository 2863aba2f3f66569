package pipeline_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/varsity-sched/engine/internal/domain"
	"github.com/varsity-sched/engine/internal/pipeline"
)

func baseSnapshot() *domain.Snapshot {
	return &domain.Snapshot{
		InstituteID: "inst-1",
		Semester:    2,
		Students: []domain.Student{
			{ID: "s1", Department: "cs", Preferences: []domain.Preference{{CourseID: "e1", Rank: 1}}},
		},
		Courses: []domain.Course{
			{ID: "c1", Type: domain.CourseTheory, HoursPerWeek: 2, MaxStudentsPerSection: 30},
			{ID: "e1", Type: domain.CourseElective, Elective: true, ElectiveCapacity: 1, HoursPerWeek: 2, MaxStudentsPerSection: 30},
		},
		Faculty: []domain.Faculty{
			{ID: "f1", TeachableCourses: map[string]bool{"c1": true, "e1": true}, MaxHoursPerWeek: 10},
		},
		Rooms: []domain.Room{
			{ID: "r1", Type: domain.RoomLecture, Capacity: 30},
		},
		Slots: []domain.TimeSlot{
			{ID: 1, Day: 1, Period: 1, Start: "08:00:00", End: "09:00:00"},
			{ID: 2, Day: 1, Period: 2, Start: "09:00:00", End: "10:00:00"},
		},
		Config: domain.DefaultOptimizationConfig(),
	}
}

func TestRun_SingleScheduleFlow(t *testing.T) {
	snap := baseSnapshot()
	outcome, err := pipeline.Run(context.Background(), pipeline.Request{
		Snapshot: snap,
		Config:   snap.Config,
		Seed:     1,
	}, nil)
	require.NoError(t, err)
	require.Len(t, outcome.Schedules, 1)
	assert.NotEmpty(t, outcome.Schedules[0].Schedule.ID)
	assert.Contains(t, outcome.ElectiveAssign, "s1")
}

func TestRun_MultiScheduleFlowReturnsKVariants(t *testing.T) {
	snap := baseSnapshot()
	outcome, err := pipeline.Run(context.Background(), pipeline.Request{
		Snapshot:   snap,
		Config:     snap.Config,
		NumOptions: 3,
		MaxWorkers: 2,
		Seed:       9,
	}, nil)
	require.NoError(t, err)
	assert.Len(t, outcome.Schedules, 3)
	for _, sr := range outcome.Schedules {
		assert.NotEmpty(t, sr.Profile)
	}
}

func TestRun_PropagatesValidationError(t *testing.T) {
	_, err := pipeline.Run(context.Background(), pipeline.Request{
		Snapshot: &domain.Snapshot{},
	}, nil)
	assert.Error(t, err)
}
