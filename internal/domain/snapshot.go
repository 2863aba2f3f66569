package domain

// Snapshot is the immutable input bundle for one invocation: everything
// the validator, variable builder, solver and allocator need, plus the
// knobs controlling how many schedule variants to produce. It is ingested
// once by the orchestrator; every downstream stage borrows read-only
// views of it.
type Snapshot struct {
	InstituteID string
	Semester    int

	Students []Student
	Courses  []Course
	Faculty  []Faculty
	Rooms    []Room
	Slots    []TimeSlot

	Config OptimizationConfig

	// NumOptions requests a Pareto sweep of this many schedule variants
	// instead of a single schedule. Zero or one means a single schedule.
	NumOptions int

	// Seed controls any randomized tie-breaking (priority-score jitter in
	// the allocator, simulated-annealing acceptance). Two invocations with
	// the same seed and inputs are reproducible.
	Seed int64
}

// CourseByID indexes s.Courses by id for O(1) lookup; callers that need
// repeated lookups should build this once.
func (s *Snapshot) CourseByID() map[string]*Course {
	idx := make(map[string]*Course, len(s.Courses))
	for i := range s.Courses {
		idx[s.Courses[i].ID] = &s.Courses[i]
	}
	return idx
}

// FacultyByID indexes s.Faculty by id.
func (s *Snapshot) FacultyByID() map[string]*Faculty {
	idx := make(map[string]*Faculty, len(s.Faculty))
	for i := range s.Faculty {
		idx[s.Faculty[i].ID] = &s.Faculty[i]
	}
	return idx
}

// RoomByID indexes s.Rooms by id.
func (s *Snapshot) RoomByID() map[string]*Room {
	idx := make(map[string]*Room, len(s.Rooms))
	for i := range s.Rooms {
		idx[s.Rooms[i].ID] = &s.Rooms[i]
	}
	return idx
}
