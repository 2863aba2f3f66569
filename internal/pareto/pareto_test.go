package pareto_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/varsity-sched/engine/internal/domain"
	"github.com/varsity-sched/engine/internal/pareto"
	"github.com/varsity-sched/engine/internal/validate"
)

func tensionSnapshot() *domain.Snapshot {
	return &domain.Snapshot{
		InstituteID: "inst-1",
		Semester:    3,
		Students: []domain.Student{
			{ID: "s1", Department: "cs", Preferences: []domain.Preference{{CourseID: "e1", Rank: 1}}},
			{ID: "s2", Department: "cs", Preferences: []domain.Preference{{CourseID: "e1", Rank: 1}}},
		},
		Courses: []domain.Course{
			{ID: "c1", Type: domain.CourseTheory, HoursPerWeek: 2, MaxStudentsPerSection: 30},
			{ID: "e1", Type: domain.CourseElective, Elective: true, ElectiveCapacity: 2, HoursPerWeek: 2, MaxStudentsPerSection: 30},
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

func TestRun_ReturnsVariantsSortedByQuality(t *testing.T) {
	snap := tensionSnapshot()
	res, err := validate.Run(snap)
	require.NoError(t, err)

	variants, err := pareto.Run(context.Background(), res, snap.Config, map[string][]string{"s1": {"e1"}}, 3, 2, 1, nil)
	require.NoError(t, err)
	require.Len(t, variants, 3)

	for i := 1; i < len(variants); i++ {
		assert.GreaterOrEqual(t, variants[i-1].Quality, variants[i].Quality)
	}
}

func TestRun_AssignsDistinctOptionIDs(t *testing.T) {
	snap := tensionSnapshot()
	res, err := validate.Run(snap)
	require.NoError(t, err)

	variants, err := pareto.Run(context.Background(), res, snap.Config, nil, 2, 2, 5, nil)
	require.NoError(t, err)

	seen := map[string]bool{}
	for _, v := range variants {
		assert.False(t, seen[v.OptionID], "option ids must be unique")
		seen[v.OptionID] = true
	}
}

func TestSelectProfiles_ClampsToRosterLength(t *testing.T) {
	assert.Len(t, pareto.SelectProfiles(100), len(pareto.Roster))
	assert.Len(t, pareto.SelectProfiles(0), 1)
}
