// Package validate checks a domain.Snapshot for structural and referential
// integrity and derives the indices the rest of the pipeline needs:
// which faculty can teach a course, which rooms suit it, and its
// transitive, cycle-checked prerequisite closure.
package validate

import (
	"github.com/hashicorp/go-multierror"

	"github.com/varsity-sched/engine/internal/domain"
)

// Result is a validated snapshot plus the derived indices. Every index is
// keyed by course ID.
type Result struct {
	Snapshot *domain.Snapshot

	EligibleFaculty map[string][]string
	SuitableRooms   map[string][]string
	PrereqClosure   map[string][]string

	// Warnings holds non-fatal findings: empty preference lists, faculty
	// with zero teachable courses, rooms with no availability window.
	Warnings []string
}

const (
	minSemester     = 1
	maxSemester     = 8
	minHoursPerWeek = 1
	maxHoursPerWeek = 12
)

// Run validates snapshot and builds the derived indices. It returns every
// fatal problem found, aggregated with multierror, rather than stopping
// at the first one.
func Run(snapshot *domain.Snapshot) (*Result, error) {
	var errs *multierror.Error

	if len(snapshot.Students) == 0 {
		errs = multierror.Append(errs, domain.NewError(domain.EmptyDomain, "no students in snapshot"))
	}
	if len(snapshot.Courses) == 0 {
		errs = multierror.Append(errs, domain.NewError(domain.EmptyDomain, "no courses in snapshot"))
	}
	if len(snapshot.Faculty) == 0 {
		errs = multierror.Append(errs, domain.NewError(domain.EmptyDomain, "no faculty in snapshot"))
	}
	if len(snapshot.Rooms) == 0 {
		errs = multierror.Append(errs, domain.NewError(domain.EmptyDomain, "no rooms in snapshot"))
	}
	if len(snapshot.Slots) == 0 {
		errs = multierror.Append(errs, domain.NewError(domain.EmptyDomain, "no time slots in snapshot"))
	}
	if errs.ErrorOrNil() != nil {
		// Without the basic domains nothing below can run meaningfully.
		return nil, errs.ErrorOrNil()
	}

	courseIndex := snapshot.CourseByID()

	res := &Result{
		Snapshot:        snapshot,
		EligibleFaculty: make(map[string][]string, len(snapshot.Courses)),
		SuitableRooms:   make(map[string][]string, len(snapshot.Courses)),
		PrereqClosure:   make(map[string][]string, len(snapshot.Courses)),
	}

	checkSemesterAndBounds(snapshot, courseIndex, &errs)
	checkOrphanTeachables(snapshot, courseIndex, &errs)
	buildEligibleFaculty(snapshot, res)
	buildSuitableRooms(snapshot, res)
	checkUnteachableAndUnhousable(snapshot, res, &errs)
	buildPrereqClosure(snapshot, courseIndex, res, &errs)
	collectWarnings(snapshot, res)

	if err := errs.ErrorOrNil(); err != nil {
		return nil, err
	}
	return res, nil
}

func checkSemesterAndBounds(s *domain.Snapshot, courseIndex map[string]*domain.Course, errs **multierror.Error) {
	if s.Semester < minSemester || s.Semester > maxSemester {
		*errs = multierror.Append(*errs, domain.NewError(domain.OutOfRange,
			"semester %d outside %d..%d", s.Semester, minSemester, maxSemester))
	}
	for _, c := range s.Courses {
		if c.HoursPerWeek < minHoursPerWeek || c.HoursPerWeek > maxHoursPerWeek {
			*errs = multierror.Append(*errs, domain.NewError(domain.OutOfRange,
				"course %s: hours-per-week %d outside %d..%d", c.ID, c.HoursPerWeek, minHoursPerWeek, maxHoursPerWeek))
		}
		if c.MaxStudentsPerSection < 1 {
			*errs = multierror.Append(*errs, domain.NewError(domain.OutOfRange,
				"course %s: max-students-per-section must be >= 1", c.ID))
		}
		if c.Elective && c.ElectiveCapacity <= 0 {
			*errs = multierror.Append(*errs, domain.NewError(domain.OutOfRange,
				"course %s: elective capacity must be positive", c.ID))
		}
		for _, prereq := range c.Prerequisites {
			if _, ok := courseIndex[prereq]; !ok {
				*errs = multierror.Append(*errs, domain.NewError(domain.OutOfRange,
					"course %s: prerequisite %s does not exist in snapshot", c.ID, prereq))
			}
		}
	}
	for _, r := range s.Rooms {
		if r.Capacity < 1 {
			*errs = multierror.Append(*errs, domain.NewError(domain.OutOfRange,
				"room %s: capacity must be >= 1", r.ID))
		}
	}
	seenSlots := make(map[[2]int]bool, len(s.Slots))
	for _, t := range s.Slots {
		if t.Start >= t.End {
			*errs = multierror.Append(*errs, domain.NewError(domain.OutOfRange,
				"time slot %d: start %s is not before end %s", t.ID, t.Start, t.End))
		}
		key := [2]int{t.Day, t.Period}
		if seenSlots[key] {
			*errs = multierror.Append(*errs, domain.NewError(domain.OutOfRange,
				"time slot %d: (day %d, period %d) duplicates another slot", t.ID, t.Day, t.Period))
		}
		seenSlots[key] = true
	}
}

func checkOrphanTeachables(s *domain.Snapshot, courseIndex map[string]*domain.Course, errs **multierror.Error) {
	for _, f := range s.Faculty {
		for courseID, can := range f.TeachableCourses {
			if !can {
				continue
			}
			if _, ok := courseIndex[courseID]; !ok {
				*errs = multierror.Append(*errs, domain.NewError(domain.OrphanTeachable,
					"faculty %s lists unknown course %s", f.ID, courseID))
			}
		}
	}
}

func buildEligibleFaculty(s *domain.Snapshot, res *Result) {
	for _, c := range s.Courses {
		var eligible []string
		for i := range s.Faculty {
			if s.Faculty[i].CanTeach(c.ID) {
				eligible = append(eligible, s.Faculty[i].ID)
			}
		}
		res.EligibleFaculty[c.ID] = eligible
	}
}

func buildSuitableRooms(s *domain.Snapshot, res *Result) {
	for _, c := range s.Courses {
		var suitable []string
		for i := range s.Rooms {
			if s.Rooms[i].SuitableFor(&c) {
				suitable = append(suitable, s.Rooms[i].ID)
			}
		}
		res.SuitableRooms[c.ID] = suitable
	}
}

func checkUnteachableAndUnhousable(s *domain.Snapshot, res *Result, errs **multierror.Error) {
	for _, c := range s.Courses {
		if len(res.EligibleFaculty[c.ID]) == 0 {
			*errs = multierror.Append(*errs, domain.NewError(domain.UnteachableCourse,
				"course %s has no eligible faculty", c.ID))
		}
		if len(res.SuitableRooms[c.ID]) == 0 {
			*errs = multierror.Append(*errs, domain.NewError(domain.UnhousableCourse,
				"course %s has no suitable room", c.ID))
		}
	}
}

// buildPrereqClosure computes, for each course, the transitive set of
// prerequisites required to take it, detecting cycles along the way via
// a standard three-color DFS (white/gray/black).
func buildPrereqClosure(s *domain.Snapshot, courseIndex map[string]*domain.Course, res *Result, errs **multierror.Error) {
	const (
		white = 0
		gray  = 1
		black = 2
	)
	color := make(map[string]int, len(s.Courses))
	closure := make(map[string]map[string]bool, len(s.Courses))

	var visit func(id string) bool // returns false on cycle
	visit = func(id string) bool {
		if color[id] == black {
			return true
		}
		if color[id] == gray {
			return false
		}
		color[id] = gray
		set := make(map[string]bool)
		course := courseIndex[id]
		if course != nil {
			for _, prereq := range course.Prerequisites {
				if _, ok := courseIndex[prereq]; !ok {
					continue // already reported as OutOfRange
				}
				if !visit(prereq) {
					return false
				}
				set[prereq] = true
				for transitive := range closure[prereq] {
					set[transitive] = true
				}
			}
		}
		closure[id] = set
		color[id] = black
		return true
	}

	cyclic := make(map[string]bool)
	for _, c := range s.Courses {
		if color[c.ID] == white {
			if !visit(c.ID) {
				cyclic[c.ID] = true
			}
		}
	}
	if len(cyclic) > 0 {
		for id := range cyclic {
			*errs = multierror.Append(*errs, domain.NewError(domain.PrereqCycle,
				"course %s participates in a prerequisite cycle", id))
		}
		return
	}
	for id, set := range closure {
		list := make([]string, 0, len(set))
		for prereq := range set {
			list = append(list, prereq)
		}
		res.PrereqClosure[id] = list
	}
}

func collectWarnings(s *domain.Snapshot, res *Result) {
	for _, st := range s.Students {
		if len(st.Preferences) == 0 {
			res.Warnings = append(res.Warnings, "student "+st.ID+" has no elective preferences")
		}
	}
	for _, f := range s.Faculty {
		if len(f.TeachableCourses) == 0 {
			res.Warnings = append(res.Warnings, "faculty "+f.ID+" has no teachable courses")
		}
	}
	for _, r := range s.Rooms {
		if r.Availability == nil {
			res.Warnings = append(res.Warnings, "room "+r.ID+" has no declared availability window")
		}
	}
}
