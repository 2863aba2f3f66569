// Package metrics computes the fairness and quality evaluation of a
// schedule plus the post-allocator state: student satisfaction, faculty
// workload balance, room utilization, elective allocation rate, and
// constraint violations, with per-department, per-room-type and
// per-slot breakdowns.
package metrics

import (
	"math"

	"github.com/varsity-sched/engine/internal/domain"
)

// Report is one invocation's full fairness/quality evaluation.
type Report struct {
	StudentSatisfaction    float64
	WorkloadBalance        float64
	RoomUtilization        float64
	ElectiveAllocationRate float64
	ConstraintViolations   int

	ByDepartment map[string]float64          // department -> mean student satisfaction
	ByRoomType   map[domain.RoomType]float64 // room type -> utilization
	BySlot       map[int]int                 // slot id -> assignment count
}

// Compute builds the full Report for schedule against snap, given the
// allocator's per-student satisfaction scores and preference counts.
func Compute(snap *domain.Snapshot, schedule *domain.Schedule, satisfaction map[string]float64) Report {
	return Report{
		StudentSatisfaction:    meanSatisfaction(satisfaction),
		WorkloadBalance:        workloadBalance(schedule),
		RoomUtilization:        roomUtilization(snap, schedule),
		ElectiveAllocationRate: electiveAllocationRate(snap, satisfaction),
		ConstraintViolations:   schedule.ConflictViolations(),
		ByDepartment:           byDepartment(snap, satisfaction),
		ByRoomType:             byRoomType(snap, schedule),
		BySlot:                 bySlot(schedule),
	}
}

func meanSatisfaction(satisfaction map[string]float64) float64 {
	if len(satisfaction) == 0 {
		return 0
	}
	total := 0.0
	for _, v := range satisfaction {
		total += v
	}
	return total / float64(len(satisfaction))
}

func workloadBalance(schedule *domain.Schedule) float64 {
	workload := make(map[string]int)
	for _, a := range schedule.Assignments {
		workload[a.FacultyID]++
	}
	if len(workload) == 0 {
		return 1.0
	}
	sum := 0
	for _, w := range workload {
		sum += w
	}
	mean := float64(sum) / float64(len(workload))
	if mean == 0 {
		return 1.0
	}
	variance := 0.0
	for _, w := range workload {
		d := float64(w) - mean
		variance += d * d
	}
	variance /= float64(len(workload))
	stddev := math.Sqrt(variance)
	balance := 1 - stddev/mean
	return clamp01(balance)
}

func roomUtilization(snap *domain.Snapshot, schedule *domain.Schedule) float64 {
	if len(snap.Rooms) == 0 {
		return 0
	}
	maxSlots := len(snap.Slots)
	if maxSlots == 0 {
		return 0
	}
	counts := make(map[string]int, len(snap.Rooms))
	for _, a := range schedule.Assignments {
		counts[a.RoomID]++
	}
	total := 0.0
	for _, r := range snap.Rooms {
		ratio := float64(counts[r.ID]) / float64(maxSlots)
		if ratio > 1 {
			ratio = 1
		}
		total += ratio
	}
	return total / float64(len(snap.Rooms))
}

func electiveAllocationRate(snap *domain.Snapshot, satisfaction map[string]float64) float64 {
	totalPreferences := 0
	totalAllocated := 0
	for _, s := range snap.Students {
		totalPreferences += len(s.Preferences)
	}
	if totalPreferences == 0 {
		return 0
	}
	// Allocated count is derived from non-zero satisfaction alongside a
	// preference list: satisfaction > 0 implies at least one allocation
	// because rank_weight is strictly positive for every valid rank.
	for _, s := range snap.Students {
		if len(s.Preferences) == 0 {
			continue
		}
		if satisfaction[s.ID] > 0 {
			totalAllocated++
		}
	}
	return float64(totalAllocated) / float64(totalPreferences)
}

func byDepartment(snap *domain.Snapshot, satisfaction map[string]float64) map[string]float64 {
	sums := make(map[string]float64)
	counts := make(map[string]int)
	for _, s := range snap.Students {
		sums[s.Department] += satisfaction[s.ID]
		counts[s.Department]++
	}
	out := make(map[string]float64, len(sums))
	for dept, sum := range sums {
		out[dept] = sum / float64(counts[dept])
	}
	return out
}

func byRoomType(snap *domain.Snapshot, schedule *domain.Schedule) map[domain.RoomType]float64 {
	roomType := make(map[string]domain.RoomType, len(snap.Rooms))
	for _, r := range snap.Rooms {
		roomType[r.ID] = r.Type
	}
	maxSlots := len(snap.Slots)
	if maxSlots == 0 {
		return nil
	}
	countsByType := make(map[domain.RoomType]int)
	roomsByType := make(map[domain.RoomType]int)
	for _, r := range snap.Rooms {
		roomsByType[r.Type]++
	}
	for _, a := range schedule.Assignments {
		countsByType[roomType[a.RoomID]]++
	}
	out := make(map[domain.RoomType]float64, len(roomsByType))
	for rt, roomCount := range roomsByType {
		capacity := float64(roomCount * maxSlots)
		if capacity == 0 {
			out[rt] = 0
			continue
		}
		out[rt] = float64(countsByType[rt]) / capacity
	}
	return out
}

func bySlot(schedule *domain.Schedule) map[int]int {
	out := make(map[int]int)
	for _, a := range schedule.Assignments {
		out[a.TimeSlotID]++
	}
	return out
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
