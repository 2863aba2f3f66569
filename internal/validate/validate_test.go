package validate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/varsity-sched/engine/internal/domain"
	"github.com/varsity-sched/engine/internal/validate"
)

func baseSnapshot() *domain.Snapshot {
	return &domain.Snapshot{
		InstituteID: "udp",
		Semester:    3,
		Students: []domain.Student{
			{ID: "s1", Department: "cs", Semester: 3},
		},
		Courses: []domain.Course{
			{ID: "cs101", Code: "CS101", Type: domain.CourseTheory, Credits: 4, HoursPerWeek: 3, MaxStudentsPerSection: 40},
			{ID: "cs201", Code: "CS201", Type: domain.CourseLab, Credits: 3, HoursPerWeek: 4, MaxStudentsPerSection: 20, Prerequisites: []string{"cs101"}},
		},
		Faculty: []domain.Faculty{
			{ID: "f1", Department: "cs", TeachableCourses: map[string]bool{"cs101": true, "cs201": true}},
		},
		Rooms: []domain.Room{
			{ID: "r1", Type: domain.RoomLecture, Capacity: 50},
			{ID: "r2", Type: domain.RoomLab, Capacity: 25},
		},
		Slots: []domain.TimeSlot{
			{ID: 1, Day: 1, Period: 1, Start: "08:00:00", End: "09:00:00"},
		},
	}
}

func TestRun_ValidSnapshotBuildsIndices(t *testing.T) {
	res, err := validate.Run(baseSnapshot())
	require.NoError(t, err)
	require.NotNil(t, res)

	assert.ElementsMatch(t, []string{"f1"}, res.EligibleFaculty["cs101"])
	assert.ElementsMatch(t, []string{"r2"}, res.SuitableRooms["cs201"])
	assert.ElementsMatch(t, []string{"r1"}, res.SuitableRooms["cs101"])
	assert.ElementsMatch(t, []string{"cs101"}, res.PrereqClosure["cs201"])
	assert.Empty(t, res.PrereqClosure["cs101"])
}

func TestRun_EmptyDomainIsFatal(t *testing.T) {
	snap := baseSnapshot()
	snap.Rooms = nil

	_, err := validate.Run(snap)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no rooms in snapshot")
}

func TestRun_UnteachableCourse(t *testing.T) {
	snap := baseSnapshot()
	snap.Courses = append(snap.Courses, domain.Course{
		ID: "cs999", Code: "CS999", Type: domain.CourseTheory,
		HoursPerWeek: 2, MaxStudentsPerSection: 30,
	})

	_, err := validate.Run(snap)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cs999 has no eligible faculty")
}

func TestRun_UnhousableLabCourse(t *testing.T) {
	snap := baseSnapshot()
	snap.Rooms = []domain.Room{{ID: "r1", Type: domain.RoomLecture, Capacity: 50}}

	_, err := validate.Run(snap)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cs201 has no suitable room")
}

func TestRun_PrereqCycleIsDetected(t *testing.T) {
	snap := baseSnapshot()
	snap.Courses[0].Prerequisites = []string{"cs201"} // cs101 -> cs201 -> cs101

	_, err := validate.Run(snap)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "prerequisite cycle")
}

func TestRun_OutOfRangeHoursPerWeek(t *testing.T) {
	snap := baseSnapshot()
	snap.Courses[0].HoursPerWeek = 20

	_, err := validate.Run(snap)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "hours-per-week")
}

func TestRun_AggregatesMultipleFatalErrors(t *testing.T) {
	snap := baseSnapshot()
	snap.Courses[0].HoursPerWeek = 0
	snap.Courses[1].HoursPerWeek = 99
	snap.Rooms[0].Capacity = 0

	_, err := validate.Run(snap)
	require.Error(t, err)
	msg := err.Error()
	assert.Contains(t, msg, "hours-per-week")
	assert.Contains(t, msg, "capacity must be >= 1")
}

func TestRun_WarnsOnEmptyPreferencesWithoutFailing(t *testing.T) {
	snap := baseSnapshot()
	res, err := validate.Run(snap)
	require.NoError(t, err)
	require.Contains(t, res.Warnings, "student s1 has no elective preferences")
}
