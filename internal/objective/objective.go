// Package objective scores a candidate schedule against the weighted
// soft-constraint formula the solve engine optimizes for.
package objective

import (
	"github.com/varsity-sched/engine/internal/domain"
)

// Terms holds the per-component contributions to one objective
// evaluation, before weighting, for diagnostics. The Pareto ranking
// formula does not read these; it works from metrics.Report.
type Terms struct {
	Satisfaction       float64
	WorkloadVariance   float64
	Utilization        float64
	ElectivePreference float64
	NEPCompliant       float64
	Interdisciplinary  float64
}

// Evaluate computes the weighted objective value for a schedule, plus the
// unweighted per-term breakdown.
func Evaluate(snap *domain.Snapshot, schedule *domain.Schedule, electiveAssign map[string][]string) (float64, Terms) {
	courseIndex := snap.CourseByID()
	rankWeightSum := satisfactionTerm(snap, electiveAssign)

	terms := Terms{
		Satisfaction:       rankWeightSum,
		WorkloadVariance:   workloadVarianceTerm(schedule),
		Utilization:        utilizationTerm(snap, schedule),
		ElectivePreference: rankWeightSum,
		NEPCompliant:       countScheduled(schedule, courseIndex, func(c *domain.Course) bool { return c.NEPCompliant }),
		Interdisciplinary:  countScheduled(schedule, courseIndex, func(c *domain.Course) bool { return c.IsInterdisciplinary() }),
	}

	cfg := snap.Config
	value := cfg.Weight(domain.WeightSatisfaction)*terms.Satisfaction -
		cfg.Weight(domain.WeightWorkload)*terms.WorkloadVariance +
		cfg.Weight(domain.WeightUtilization)*terms.Utilization +
		cfg.Weight(domain.WeightElectivePref)*terms.ElectivePreference +
		cfg.Weight(domain.WeightNEP)*terms.NEPCompliant +
		cfg.Weight(domain.WeightInterdisciplinary)*terms.Interdisciplinary

	return value, terms
}

func satisfactionTerm(snap *domain.Snapshot, electiveAssign map[string][]string) float64 {
	if len(snap.Students) == 0 {
		return 0
	}
	total := 0.0
	for _, s := range snap.Students {
		for _, courseID := range electiveAssign[s.ID] {
			for _, pref := range s.Preferences {
				if pref.CourseID == courseID {
					total += domain.RankWeight(pref.Rank, domain.DefaultMaxPreferenceRank)
					break
				}
			}
		}
	}
	return total
}

func workloadVarianceTerm(schedule *domain.Schedule) float64 {
	workload := make(map[string]int)
	for _, a := range schedule.Assignments {
		workload[a.FacultyID]++
	}
	if len(workload) == 0 {
		return 0
	}
	sum := 0
	for _, w := range workload {
		sum += w
	}
	mean := float64(sum) / float64(len(workload))
	variance := 0.0
	for _, w := range workload {
		d := float64(w) - mean
		variance += d * d
	}
	return variance / float64(len(workload))
}

func utilizationTerm(snap *domain.Snapshot, schedule *domain.Schedule) float64 {
	if len(snap.Rooms) == 0 || len(snap.Slots) == 0 {
		return 0
	}
	used := make(map[string]map[int]bool, len(snap.Rooms))
	for _, a := range schedule.Assignments {
		if used[a.RoomID] == nil {
			used[a.RoomID] = make(map[int]bool)
		}
		used[a.RoomID][a.TimeSlotID] = true
	}
	capacitySlots := float64(len(snap.Rooms) * len(snap.Slots))
	usedSlots := 0.0
	for _, slots := range used {
		usedSlots += float64(len(slots))
	}
	return usedSlots / capacitySlots
}

func countScheduled(schedule *domain.Schedule, courseIndex map[string]*domain.Course, pred func(*domain.Course) bool) float64 {
	scheduled := make(map[string]bool)
	for _, a := range schedule.Assignments {
		scheduled[a.CourseID] = true
	}
	count := 0.0
	for courseID := range scheduled {
		if c, ok := courseIndex[courseID]; ok && pred(c) {
			count++
		}
	}
	return count
}
