package objective_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/varsity-sched/engine/internal/domain"
	"github.com/varsity-sched/engine/internal/objective"
)

func TestEvaluate_RewardsHigherRankedElectives(t *testing.T) {
	snap := &domain.Snapshot{
		Students: []domain.Student{
			{ID: "s1", Preferences: []domain.Preference{{CourseID: "elec1", Rank: 1}}},
		},
		Config: domain.OptimizationConfig{
			Weights: map[string]float64{domain.WeightElectivePref: 1.0},
		},
	}
	schedule := &domain.Schedule{}

	bestRank, _ := objective.Evaluate(snap, schedule, map[string][]string{"s1": {"elec1"}})

	snap.Students[0].Preferences[0].Rank = 5
	worstRank, _ := objective.Evaluate(snap, schedule, map[string][]string{"s1": {"elec1"}})

	assert.Greater(t, bestRank, worstRank)
}

func TestEvaluate_PenalizesWorkloadVariance(t *testing.T) {
	snap := &domain.Snapshot{
		Config: domain.OptimizationConfig{
			Weights: map[string]float64{domain.WeightWorkload: 1.0},
		},
	}
	balanced := &domain.Schedule{Assignments: []domain.Assignment{
		{FacultyID: "f1"}, {FacultyID: "f2"},
	}}
	skewed := &domain.Schedule{Assignments: []domain.Assignment{
		{FacultyID: "f1"}, {FacultyID: "f1"}, {FacultyID: "f1"}, {FacultyID: "f2"},
	}}

	balancedScore, _ := objective.Evaluate(snap, balanced, nil)
	skewedScore, _ := objective.Evaluate(snap, skewed, nil)

	assert.Greater(t, balancedScore, skewedScore)
}

func TestEvaluate_UtilizationTermIsFractionOfCapacity(t *testing.T) {
	snap := &domain.Snapshot{
		Rooms: []domain.Room{{ID: "r1"}, {ID: "r2"}},
		Slots: []domain.TimeSlot{{ID: 1}, {ID: 2}},
		Config: domain.OptimizationConfig{
			Weights: map[string]float64{domain.WeightUtilization: 1.0},
		},
	}
	schedule := &domain.Schedule{Assignments: []domain.Assignment{
		{RoomID: "r1", TimeSlotID: 1},
	}}

	value, terms := objective.Evaluate(snap, schedule, nil)
	assert.Equal(t, 0.25, terms.Utilization)
	assert.Equal(t, 0.25, value)
}
