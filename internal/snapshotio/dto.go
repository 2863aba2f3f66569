// Package snapshotio defines the wire shape of one invocation's input
// and converts it into the domain's internal Snapshot. Both the HTTP
// surface (request body decoding) and the CLI (JSON file loading) bind
// into these same types so the two front ends never drift apart.
package snapshotio

import "github.com/varsity-sched/engine/internal/domain"

// SnapshotRequest is the wire shape of one invocation's input: a single
// snapshot plus the knobs that steer it.
type SnapshotRequest struct {
	InstituteID string                 `json:"institute_id" binding:"required"`
	Semester    int                    `json:"semester" binding:"required,min=1,max=8"`
	Students    []StudentDTO           `json:"students" binding:"required,dive"`
	Courses     []CourseDTO            `json:"courses" binding:"required,dive"`
	Faculty     []FacultyDTO           `json:"faculty" binding:"required,dive"`
	Rooms       []RoomDTO              `json:"rooms" binding:"required,dive"`
	TimeSlots   []TimeSlotDTO          `json:"time_slots" binding:"required,dive"`
	Config      *OptimizationConfigDTO `json:"config"`
	NumOptions  int                    `json:"num_options" binding:"omitempty,min=1,max=5"`
	Seed        int64                  `json:"seed"`
}

// StudentDTO is one student and their ranked elective wishlist.
type StudentDTO struct {
	ID          string          `json:"id" binding:"required"`
	Department  string          `json:"department"`
	Semester    int             `json:"semester"`
	Section     string          `json:"section"`
	Preferences []PreferenceDTO `json:"preferences"`
}

// PreferenceDTO is one ranked elective choice.
type PreferenceDTO struct {
	CourseID string `json:"course_id" binding:"required"`
	Rank     int    `json:"rank" binding:"required,min=1"`
}

// CourseDTO is one course offering.
type CourseDTO struct {
	ID                    string   `json:"id" binding:"required"`
	Code                  string   `json:"code"`
	Type                  string   `json:"type" binding:"required,oneof=theory lab project elective interdisciplinary"`
	Credits               int      `json:"credits"`
	HoursPerWeek          int      `json:"hours_per_week" binding:"required,min=1,max=12"`
	MaxStudentsPerSection int      `json:"max_students_per_section"`
	Prerequisites         []string `json:"prerequisites"`
	Elective              bool     `json:"elective"`
	ElectiveCapacity      int      `json:"elective_capacity"`
	NEPCompliant          bool     `json:"nep_compliant"`
}

// FacultyDTO is one teaching staff member.
type FacultyDTO struct {
	ID               string            `json:"id" binding:"required"`
	Department       string            `json:"department"`
	TeachableCourses []string          `json:"teachable_courses"`
	Availability     []AvailabilityDTO `json:"availability"`
	MaxHoursPerDay   int               `json:"max_hours_per_day"`
	MaxHoursPerWeek  int               `json:"max_hours_per_week"`
}

// AvailabilityDTO marks one day/slot as available for a faculty member.
type AvailabilityDTO struct {
	Day    int `json:"day" binding:"required"`
	SlotID int `json:"slot_id" binding:"required"`
}

// RoomDTO is one physical teaching space.
type RoomDTO struct {
	ID       string `json:"id" binding:"required"`
	Type     string `json:"type" binding:"required,oneof=lecture lab seminar auditorium"`
	Capacity int    `json:"capacity" binding:"required,min=1"`
}

// TimeSlotDTO is one weekly recurring teaching block.
type TimeSlotDTO struct {
	ID     int    `json:"id" binding:"required"`
	Day    int    `json:"day" binding:"required,min=1,max=6"`
	Period int    `json:"period" binding:"required"`
	Start  string `json:"start" binding:"required"`
	End    string `json:"end" binding:"required"`
	Break  bool   `json:"break"`
	Lunch  bool   `json:"lunch"`
}

// OptimizationConfigDTO overrides the default objective weights and
// solve budget.
type OptimizationConfigDTO struct {
	Weights                map[string]float64 `json:"weights"`
	TimeBudgetSeconds      float64             `json:"time_budget_seconds"`
	IterationBudget        int                 `json:"iteration_budget"`
	MinElectivesPerStudent int                 `json:"min_electives_per_student"`
	MaxElectivesPerStudent int                 `json:"max_electives_per_student"`
}

// ToSnapshot converts the wire request into the domain's internal
// Snapshot shape.
func (r *SnapshotRequest) ToSnapshot() *domain.Snapshot {
	snap := &domain.Snapshot{
		InstituteID: r.InstituteID,
		Semester:    r.Semester,
		NumOptions:  r.NumOptions,
		Seed:        r.Seed,
		Config:      domain.DefaultOptimizationConfig(),
	}
	if r.Config != nil {
		snap.Config = r.Config.ToDomain()
	}

	for _, s := range r.Students {
		student := domain.Student{ID: s.ID, Department: s.Department, Semester: s.Semester, Section: s.Section}
		for _, p := range s.Preferences {
			student.Preferences = append(student.Preferences, domain.Preference{CourseID: p.CourseID, Rank: p.Rank})
		}
		snap.Students = append(snap.Students, student)
	}

	for _, c := range r.Courses {
		snap.Courses = append(snap.Courses, domain.Course{
			ID:                    c.ID,
			Code:                  c.Code,
			Type:                  domain.CourseType(c.Type),
			Credits:               c.Credits,
			HoursPerWeek:          c.HoursPerWeek,
			MaxStudentsPerSection: c.MaxStudentsPerSection,
			Prerequisites:         c.Prerequisites,
			Elective:              c.Elective,
			ElectiveCapacity:      c.ElectiveCapacity,
			NEPCompliant:          c.NEPCompliant,
		})
	}

	for _, f := range r.Faculty {
		faculty := domain.Faculty{
			ID:              f.ID,
			Department:      f.Department,
			MaxHoursPerDay:  f.MaxHoursPerDay,
			MaxHoursPerWeek: f.MaxHoursPerWeek,
		}
		if len(f.TeachableCourses) > 0 {
			faculty.TeachableCourses = make(map[string]bool, len(f.TeachableCourses))
			for _, courseID := range f.TeachableCourses {
				faculty.TeachableCourses[courseID] = true
			}
		}
		if len(f.Availability) > 0 {
			faculty.Availability = make(map[int]map[int]bool)
			for _, a := range f.Availability {
				if faculty.Availability[a.Day] == nil {
					faculty.Availability[a.Day] = make(map[int]bool)
				}
				faculty.Availability[a.Day][a.SlotID] = true
			}
		}
		snap.Faculty = append(snap.Faculty, faculty)
	}

	for _, rm := range r.Rooms {
		snap.Rooms = append(snap.Rooms, domain.Room{ID: rm.ID, Type: domain.RoomType(rm.Type), Capacity: rm.Capacity})
	}

	for _, t := range r.TimeSlots {
		snap.Slots = append(snap.Slots, domain.TimeSlot{
			ID: t.ID, Day: t.Day, Period: t.Period, Start: t.Start, End: t.End, Break: t.Break, Lunch: t.Lunch,
		})
	}

	return snap
}

// ToDomain converts the wire config override into a domain config,
// falling back to defaults for anything left zero-valued.
func (c *OptimizationConfigDTO) ToDomain() domain.OptimizationConfig {
	cfg := domain.DefaultOptimizationConfig()
	if len(c.Weights) > 0 {
		cfg.Weights = c.Weights
	}
	if c.TimeBudgetSeconds > 0 {
		cfg.TimeBudgetSeconds = c.TimeBudgetSeconds
	}
	if c.IterationBudget > 0 {
		cfg.IterationBudget = c.IterationBudget
	}
	cfg.MinElectivesPerStudent = c.MinElectivesPerStudent
	if c.MaxElectivesPerStudent > 0 {
		cfg.MaxElectivesPerStudent = c.MaxElectivesPerStudent
	}
	return cfg
}
