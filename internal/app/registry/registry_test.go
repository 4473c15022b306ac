package registry

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emre/enrollhub/internal/app/store"
	"github.com/emre/enrollhub/internal/pkg/apperrors"
)

func newTestRegistry(t *testing.T) *Registry {
	t.Helper()
	st, err := store.NewCSVStore(t.TempDir())
	require.NoError(t, err)
	return New(st, zerolog.Nop())
}

func addCourse(t *testing.T, r *Registry, id, days, timeRange string, maxStudents int) {
	t.Helper()
	_, err := r.AddCourse(context.Background(), id, id+" name", "Dr. Test", days, timeRange, maxStudents)
	require.NoError(t, err)
}

func registerStudent(t *testing.T, r *Registry, id string) {
	t.Helper()
	_, err := r.RegisterStudent(context.Background(), id, id+" name", id+"@example.edu", "pw-"+id)
	require.NoError(t, err)
}

func TestRegisterStudent(t *testing.T) {
	r := newTestRegistry(t)
	ctx := context.Background()

	student, err := r.RegisterStudent(ctx, "s1", "Ada Lovelace", "ada@example.edu", "secret")
	require.NoError(t, err)
	assert.Equal(t, "s1", student.ID)
	assert.Empty(t, student.Courses)

	_, err = r.RegisterStudent(ctx, "s1", "Someone Else", "other@example.edu", "other")
	assert.ErrorIs(t, err, apperrors.ErrStudentIDExists)

	_, err = r.RegisterStudent(ctx, "", "No ID", "noid@example.edu", "pw")
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestAuthenticate(t *testing.T) {
	r := newTestRegistry(t)
	registerStudent(t, r, "s1")

	student, err := r.Authenticate("s1", "pw-s1")
	require.NoError(t, err)
	assert.Equal(t, "s1", student.ID)

	_, err = r.Authenticate("s1", "wrong")
	assert.ErrorIs(t, err, apperrors.ErrBadCredential)

	_, err = r.Authenticate("ghost", "pw")
	assert.ErrorIs(t, err, apperrors.ErrStudentNotFound)
}

func TestAddCourse(t *testing.T) {
	r := newTestRegistry(t)
	ctx := context.Background()

	course, err := r.AddCourse(ctx, "CS101", "Intro to Programming", "Prof. Turing", "MWF", "10:00–11:30", 0)
	require.NoError(t, err)
	assert.Equal(t, 30, course.MaxStudents, "non-positive capacity takes the default")

	_, err = r.AddCourse(ctx, "CS101", "Duplicate", "Prof. Turing", "MWF", "10:00–11:30", 10)
	assert.ErrorIs(t, err, apperrors.ErrCourseIDExists)

	_, err = r.AddCourse(ctx, "BAD1", "Bad Time", "Prof. X", "MWF", "10:00-11:30", 10)
	assert.ErrorIs(t, err, apperrors.ErrMalformedTimeRange, "ascii hyphen is not the separator")

	_, err = r.AddCourse(ctx, "BAD2", "No Days", "Prof. X", "", "10:00–11:30", 10)
	assert.ErrorIs(t, err, apperrors.ErrInvalidDays)
}

func TestEnrollUpdatesBothSides(t *testing.T) {
	r := newTestRegistry(t)
	ctx := context.Background()
	registerStudent(t, r, "s1")
	addCourse(t, r, "BIO101", "MWF", "08:00–09:30", 30)

	require.NoError(t, r.Enroll(ctx, "s1", "BIO101"))
	require.NoError(t, r.CheckInvariants())

	mine, err := r.StudentCourses("s1")
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "BIO101", mine[0].ID)
	assert.True(t, mine[0].HasStudent("s1"))
}

func TestEnrollCheckOrder(t *testing.T) {
	r := newTestRegistry(t)
	ctx := context.Background()
	registerStudent(t, r, "s1")
	registerStudent(t, r, "s2")
	addCourse(t, r, "X1", "MWF", "08:00–09:30", 1)
	addCourse(t, r, "Z1", "MW", "09:00–10:00", 30)

	// Unknown caller wins over everything, even an unknown course.
	assert.ErrorIs(t, r.Enroll(ctx, "ghost", "NOPE"), apperrors.ErrNotLoggedIn)

	// Unknown course.
	assert.ErrorIs(t, r.Enroll(ctx, "s1", "NOPE"), apperrors.ErrCourseNotFound)

	require.NoError(t, r.Enroll(ctx, "s1", "X1"))

	// Already enrolled beats course-full for the student holding the seat.
	assert.ErrorIs(t, r.Enroll(ctx, "s1", "X1"), apperrors.ErrAlreadyEnrolled)

	// Capacity 1 is exhausted for everyone else.
	assert.ErrorIs(t, r.Enroll(ctx, "s2", "X1"), apperrors.ErrCourseFull)

	// Conflict is the last check: s1 holds X1 (MWF 08:00–09:30), Z1 overlaps.
	assert.ErrorIs(t, r.Enroll(ctx, "s1", "Z1"), apperrors.ErrScheduleConflict)

	require.NoError(t, r.CheckInvariants())
}

func TestEnrollNoStateChangeOnFailure(t *testing.T) {
	r := newTestRegistry(t)
	ctx := context.Background()
	registerStudent(t, r, "s1")
	addCourse(t, r, "BIO101", "MWF", "08:00–09:30", 30)
	addCourse(t, r, "MATH101", "MWF", "09:00–10:30", 30)

	require.NoError(t, r.Enroll(ctx, "s1", "BIO101"))

	// A rejected enrollment leaves every set untouched.
	assert.ErrorIs(t, r.Enroll(ctx, "s1", "MATH101"), apperrors.ErrScheduleConflict)
	mine, err := r.StudentCourses("s1")
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "BIO101", mine[0].ID)
	require.NoError(t, r.CheckInvariants())
}

func TestConflictScenarios(t *testing.T) {
	tests := []struct {
		name         string
		days         string
		timeRange    string
		wantConflict bool
	}{
		{name: "same time different days", days: "TR", timeRange: "08:00–09:30", wantConflict: false},
		{name: "shared days overlapping time", days: "MW", timeRange: "09:00–10:00", wantConflict: true},
		{name: "shared days touching boundary", days: "WF", timeRange: "09:30–10:30", wantConflict: false},
		{name: "zero-length range on shared day", days: "M", timeRange: "08:30–08:30", wantConflict: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestRegistry(t)
			ctx := context.Background()
			registerStudent(t, r, "s1")
			addCourse(t, r, "X1", "MWF", "08:00–09:30", 30)
			_, err := r.AddCourse(ctx, "CAND", "Candidate", "Dr. C", tt.days, tt.timeRange, 30)
			require.NoError(t, err)

			require.NoError(t, r.Enroll(ctx, "s1", "X1"))

			err = r.Enroll(ctx, "s1", "CAND")
			if tt.wantConflict {
				assert.ErrorIs(t, err, apperrors.ErrScheduleConflict)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConflictSymmetry(t *testing.T) {
	// If A conflicts with B, enrolling in either order fails the same way.
	build := func() *Registry {
		r := newTestRegistry(t)
		registerStudent(t, r, "s1")
		addCourse(t, r, "A", "MWF", "08:00–09:30", 30)
		addCourse(t, r, "B", "MW", "09:00–10:00", 30)
		return r
	}
	ctx := context.Background()

	r := build()
	require.NoError(t, r.Enroll(ctx, "s1", "A"))
	assert.ErrorIs(t, r.Enroll(ctx, "s1", "B"), apperrors.ErrScheduleConflict)

	r = build()
	require.NoError(t, r.Enroll(ctx, "s1", "B"))
	assert.ErrorIs(t, r.Enroll(ctx, "s1", "A"), apperrors.ErrScheduleConflict)
}

func TestDropAndReEnroll(t *testing.T) {
	r := newTestRegistry(t)
	ctx := context.Background()
	registerStudent(t, r, "s1")
	addCourse(t, r, "BIO101", "MWF", "08:00–09:30", 30)

	assert.ErrorIs(t, r.Drop(ctx, "ghost", "BIO101"), apperrors.ErrNotLoggedIn)
	assert.ErrorIs(t, r.Drop(ctx, "s1", "BIO101"), apperrors.ErrNotEnrolled)

	require.NoError(t, r.Enroll(ctx, "s1", "BIO101"))
	require.NoError(t, r.Drop(ctx, "s1", "BIO101"))
	require.NoError(t, r.CheckInvariants())

	mine, err := r.StudentCourses("s1")
	require.NoError(t, err)
	assert.Empty(t, mine)

	// Drop then re-enroll round-trips to the pre-drop state.
	require.NoError(t, r.Enroll(ctx, "s1", "BIO101"))
	mine, err = r.StudentCourses("s1")
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "BIO101", mine[0].ID)
	require.NoError(t, r.CheckInvariants())
}

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	st, err := store.NewCSVStore(dir)
	require.NoError(t, err)

	ctx := context.Background()
	r := New(st, zerolog.Nop())
	registerStudent(t, r, "s1")
	registerStudent(t, r, "s2")
	addCourse(t, r, "BIO101", "MWF", "08:00–09:30", 30)
	addCourse(t, r, "CHEM101", "TR", "08:00–09:30", 30)
	require.NoError(t, r.Enroll(ctx, "s1", "BIO101"))
	require.NoError(t, r.Enroll(ctx, "s1", "CHEM101"))
	require.NoError(t, r.Enroll(ctx, "s2", "BIO101"))

	// A fresh registry over the same store sees identical state.
	fresh := New(st, zerolog.Nop())
	require.NoError(t, fresh.Load(ctx))
	require.NoError(t, fresh.CheckInvariants())

	mine, err := fresh.StudentCourses("s1")
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, "BIO101", mine[0].ID)
	assert.Equal(t, "CHEM101", mine[1].ID)

	courses := fresh.Courses()
	require.Len(t, courses, 2)
	assert.ElementsMatch(t, []string{"s1", "s2"}, courses[0].EnrolledIDs())

	student, err := fresh.Authenticate("s2", "pw-s2")
	require.NoError(t, err)
	assert.Equal(t, "s2 name", student.FullName)
}

func TestCoursesSnapshotIsDecoupled(t *testing.T) {
	r := newTestRegistry(t)
	registerStudent(t, r, "s1")
	addCourse(t, r, "BIO101", "MWF", "08:00–09:30", 30)

	snapshot := r.Courses()
	require.Len(t, snapshot, 1)
	snapshot[0].Enrolled["intruder"] = struct{}{}

	require.NoError(t, r.Enroll(context.Background(), "s1", "BIO101"))
	fresh := r.Courses()
	assert.ElementsMatch(t, []string{"s1"}, fresh[0].EnrolledIDs())
}

func TestStudentCoursesUnknownStudent(t *testing.T) {
	r := newTestRegistry(t)
	_, err := r.StudentCourses("nobody")
	assert.ErrorIs(t, err, apperrors.ErrNotLoggedIn)
}
