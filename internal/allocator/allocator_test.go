package allocator_test

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/varsity-sched/engine/internal/allocator"
	"github.com/varsity-sched/engine/internal/domain"
	"github.com/varsity-sched/engine/internal/validate"
)

func electiveSnapshot() *domain.Snapshot {
	return &domain.Snapshot{
		Semester: 3,
		Students: []domain.Student{
			{ID: "s1", Preferences: []domain.Preference{{CourseID: "elec1", Rank: 1}}},
			{ID: "s2", Preferences: []domain.Preference{{CourseID: "elec1", Rank: 1}}},
		},
		Courses: []domain.Course{
			{ID: "elec1", Type: domain.CourseElective, Elective: true, ElectiveCapacity: 1, HoursPerWeek: 2, MaxStudentsPerSection: 30},
		},
		Faculty: []domain.Faculty{
			{ID: "f1", TeachableCourses: map[string]bool{"elec1": true}},
		},
		Rooms: []domain.Room{
			{ID: "r1", Type: domain.RoomLecture, Capacity: 30},
		},
		Slots: []domain.TimeSlot{
			{ID: 1, Day: 1, Period: 1, Start: "08:00:00", End: "09:00:00"},
		},
		Config: domain.OptimizationConfig{MaxElectivesPerStudent: 1},
	}
}

func TestRun_RespectsElectiveCapacity(t *testing.T) {
	res, err := validate.Run(electiveSnapshot())
	require.NoError(t, err)

	out := allocator.Run(res, nil, 42)
	assert.Len(t, out.Assign, 1, "only one seat available")
}

func TestRun_PrioritizesLowerHistoricalSatisfaction(t *testing.T) {
	snap := electiveSnapshot()
	res, err := validate.Run(snap)
	require.NoError(t, err)

	history := domain.FairnessHistory{
		"s1": {0.1},
		"s2": {0.9},
	}
	// Run many seeds; s1 (lower history) should usually win the single seat.
	s1Wins := 0
	for seed := int64(0); seed < 30; seed++ {
		out := allocator.Run(res, history, seed)
		if slices.Contains(out.Assign["s1"], "elec1") {
			s1Wins++
		}
	}
	assert.Greater(t, s1Wins, 20)
}

func TestRun_UpdatesFairnessHistory(t *testing.T) {
	res, err := validate.Run(electiveSnapshot())
	require.NoError(t, err)

	out := allocator.Run(res, nil, 1)
	require.Contains(t, out.History, "s1")
	require.Contains(t, out.History, "s2")
}

func TestReallocateSubset_OnlyTouchesGivenStudents(t *testing.T) {
	snap := electiveSnapshot()
	snap.Students = append(snap.Students, domain.Student{
		ID: "s3", Preferences: []domain.Preference{{CourseID: "elec1", Rank: 1}},
	})
	res, err := validate.Run(snap)
	require.NoError(t, err)

	delta := allocator.ReallocateSubset(res, map[string]int{"elec1": 1}, []string{"s3"}, nil, 7)
	assert.Contains(t, delta.Assign, "s3")
	assert.NotContains(t, delta.Assign, "s1")
	assert.NotContains(t, delta.Assign, "s2")
}
