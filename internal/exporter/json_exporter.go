// Package exporter renders a Schedule and its evaluation report to the
// JSON shape external collaborators (persistence, notifications, the
// administrator UI) consume.
package exporter

import (
	"encoding/json"
	"os"
	"sort"

	"github.com/varsity-sched/engine/internal/domain"
	"github.com/varsity-sched/engine/internal/metrics"
)

// ScheduleExport is the full JSON export of one schedule.
type ScheduleExport struct {
	ScheduleID   string             `json:"schedule_id"`
	InstituteID  string             `json:"institute_id"`
	Semester     int                `json:"semester"`
	Profile      string             `json:"profile,omitempty"`
	Quality      float64            `json:"quality,omitempty"`
	Summary      Summary            `json:"summary"`
	BySlot       []SlotAssignments  `json:"by_slot"`
	Assignments  []AssignmentExport `json:"assignments"`
}

// Summary mirrors the fields of metrics.Report an external consumer
// cares about, plus the raw constraint violation count.
type Summary struct {
	StudentSatisfaction    float64 `json:"student_satisfaction"`
	WorkloadBalance        float64 `json:"faculty_workload_balance"`
	RoomUtilization        float64 `json:"room_utilization"`
	ElectiveAllocationRate float64 `json:"elective_allocation_rate"`
	ConstraintViolations   int     `json:"constraint_violations"`
}

// SlotAssignments groups every assignment placed in one time slot.
type SlotAssignments struct {
	TimeSlotID  int                `json:"time_slot_id"`
	Assignments []AssignmentExport `json:"assignments"`
}

// AssignmentExport is the wire shape of one domain.Assignment.
type AssignmentExport struct {
	CourseID   string `json:"course_id"`
	FacultyID  string `json:"faculty_id"`
	RoomID     string `json:"room_id"`
	TimeSlotID int    `json:"time_slot_id"`
	SectionID  string `json:"section_id,omitempty"`
}

// Build assembles a ScheduleExport from a schedule and its evaluation
// report. profile and quality are zero-valued for single-schedule runs.
func Build(schedule *domain.Schedule, report metrics.Report, profile string, quality float64) ScheduleExport {
	return ScheduleExport{
		ScheduleID:  schedule.ID,
		InstituteID: schedule.InstituteID,
		Semester:    schedule.Semester,
		Profile:     profile,
		Quality:     quality,
		Summary: Summary{
			StudentSatisfaction:    report.StudentSatisfaction,
			WorkloadBalance:        report.WorkloadBalance,
			RoomUtilization:        report.RoomUtilization,
			ElectiveAllocationRate: report.ElectiveAllocationRate,
			ConstraintViolations:   report.ConstraintViolations,
		},
		BySlot:      buildSlotGroups(schedule.Assignments),
		Assignments: buildAssignmentList(schedule.Assignments),
	}
}

// WriteFile marshals export as indented JSON and writes it to path.
func WriteFile(export ScheduleExport, path string) error {
	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func buildSlotGroups(assignments []domain.Assignment) []SlotAssignments {
	bySlot := make(map[int][]AssignmentExport)
	for _, a := range assignments {
		bySlot[a.TimeSlotID] = append(bySlot[a.TimeSlotID], assignmentToExport(a))
	}
	slotIDs := make([]int, 0, len(bySlot))
	for id := range bySlot {
		slotIDs = append(slotIDs, id)
	}
	sort.Ints(slotIDs)

	out := make([]SlotAssignments, 0, len(slotIDs))
	for _, id := range slotIDs {
		group := bySlot[id]
		sort.Slice(group, func(i, j int) bool { return group[i].CourseID < group[j].CourseID })
		out = append(out, SlotAssignments{TimeSlotID: id, Assignments: group})
	}
	return out
}

func buildAssignmentList(assignments []domain.Assignment) []AssignmentExport {
	out := make([]AssignmentExport, 0, len(assignments))
	for _, a := range assignments {
		out = append(out, assignmentToExport(a))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CourseID != out[j].CourseID {
			return out[i].CourseID < out[j].CourseID
		}
		return out[i].TimeSlotID < out[j].TimeSlotID
	})
	return out
}

func assignmentToExport(a domain.Assignment) AssignmentExport {
	return AssignmentExport{
		CourseID:   a.CourseID,
		FacultyID:  a.FacultyID,
		RoomID:     a.RoomID,
		TimeSlotID: a.TimeSlotID,
		SectionID:  a.Section,
	}
}
