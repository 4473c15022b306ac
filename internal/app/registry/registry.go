// Package registry implements the enrollment decision engine: the in-memory
// coordinator that owns all student and course records and decides whether
// each enrollment or drop is legal.
package registry

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/rs/zerolog"

	"github.com/emre/enrollhub/internal/app/models"
	"github.com/emre/enrollhub/internal/app/schedule"
	"github.com/emre/enrollhub/internal/app/store"
	"github.com/emre/enrollhub/internal/pkg/apperrors"
)

// Registry owns the student and course mappings. One mutex guards both: the
// bidirectional membership invariant (student lists course iff course lists
// student) would not survive interleaved enroll/drop calls.
type Registry struct {
	mu       sync.Mutex
	students map[string]*models.Student
	courses  map[string]*models.Course
	store    store.Store
	logger   zerolog.Logger
}

// New creates an empty registry backed by the given store.
func New(st store.Store, logger zerolog.Logger) *Registry {
	return &Registry{
		students: make(map[string]*models.Student),
		courses:  make(map[string]*models.Course),
		store:    st,
		logger:   logger,
	}
}

// Load replaces the in-memory state with whatever the store holds.
func (r *Registry) Load(ctx context.Context) error {
	students, courses, err := r.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load registry state: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.students = make(map[string]*models.Student, len(students))
	for _, st := range students {
		r.students[st.ID] = st
	}
	r.courses = make(map[string]*models.Course, len(courses))
	for _, c := range courses {
		r.courses[c.ID] = c
	}

	r.logger.Info().
		Int("students", len(r.students)).
		Int("courses", len(r.courses)).
		Msg("Registry state loaded")
	return nil
}

// Save persists the current state through the store.
func (r *Registry) Save(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.saveLocked(ctx)
}

func (r *Registry) saveLocked(ctx context.Context) error {
	students := make([]*models.Student, 0, len(r.students))
	for _, st := range r.students {
		students = append(students, st)
	}
	sort.Slice(students, func(i, j int) bool { return students[i].ID < students[j].ID })

	courses := make([]*models.Course, 0, len(r.courses))
	for _, c := range r.courses {
		courses = append(courses, c)
	}
	sort.Slice(courses, func(i, j int) bool { return courses[i].ID < courses[j].ID })

	return r.store.Save(ctx, students, courses)
}

// RegisterStudent creates a new account with an empty course set.
func (r *Registry) RegisterStudent(ctx context.Context, id, fullName, email, password string) (*models.Student, error) {
	if id == "" {
		return nil, apperrors.NewCustomError(apperrors.ErrValidationFailed, "student ID cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.students[id]; exists {
		return nil, apperrors.ErrStudentIDExists
	}

	student := models.NewStudent(id, fullName, email, password)
	r.students[id] = student

	if err := r.saveLocked(ctx); err != nil {
		delete(r.students, id)
		return nil, fmt.Errorf("failed to persist registration: %w", err)
	}

	r.logger.Info().Str("studentId", id).Msg("Student registered")
	return student.Clone(), nil
}

// Authenticate checks the credential for the given student ID. The stored
// password is compared by exact string equality; the original system kept
// credentials in plain text and this contract is preserved.
func (r *Registry) Authenticate(id, password string) (*models.Student, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	student, ok := r.students[id]
	if !ok {
		return nil, apperrors.ErrStudentNotFound
	}
	if student.Password != password {
		return nil, apperrors.ErrBadCredential
	}
	return student.Clone(), nil
}

// AddCourse inserts a catalog entry with an empty roster. The day-token
// string and time range are validated up front so the catalog never holds a
// course that conflict detection cannot parse.
func (r *Registry) AddCourse(ctx context.Context, id, name, instructor, days, timeRange string, maxStudents int) (*models.Course, error) {
	if id == "" {
		return nil, apperrors.NewCustomError(apperrors.ErrValidationFailed, "course ID cannot be empty")
	}
	if days == "" {
		return nil, apperrors.ErrInvalidDays
	}
	if _, err := schedule.ParseTimeRange(timeRange); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.courses[id]; exists {
		return nil, apperrors.ErrCourseIDExists
	}

	course := models.NewCourse(id, name, instructor, days, timeRange, maxStudents)
	r.courses[id] = course

	if err := r.saveLocked(ctx); err != nil {
		delete(r.courses, id)
		return nil, fmt.Errorf("failed to persist course: %w", err)
	}

	r.logger.Info().Str("courseId", id).Str("name", name).Msg("Course added")
	return course.Clone(), nil
}

// Enroll adds the student to the course and the course to the student. The
// check order is part of the contract: each failure carries a distinct
// diagnosis and the first one found wins: unknown caller, unknown course,
// already enrolled, course full, schedule conflict. Both membership sides
// are updated under the same lock so no partial state is observable.
func (r *Registry) Enroll(ctx context.Context, studentID, courseID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	student, ok := r.students[studentID]
	if !ok {
		return apperrors.ErrNotLoggedIn
	}

	course, ok := r.courses[courseID]
	if !ok {
		return apperrors.ErrCourseNotFound
	}

	if student.IsEnrolledIn(courseID) {
		return apperrors.ErrAlreadyEnrolled
	}

	if course.IsFull() {
		return apperrors.ErrCourseFull
	}

	conflictID, err := r.findConflictLocked(course, student)
	if err != nil {
		return err
	}
	if conflictID != "" {
		conflicting := r.courses[conflictID]
		r.logger.Info().
			Str("studentId", studentID).
			Str("courseId", courseID).
			Str("conflictsWith", conflictID).
			Msg("Enrollment rejected: schedule conflict")
		return apperrors.NewCustomError(apperrors.ErrScheduleConflict,
			fmt.Sprintf("schedule conflict with %s (%s %s)", conflicting.ID, conflicting.Days, conflicting.Time)).
			WithDetails(map[string]interface{}{
				"conflictsWith": conflicting.ID,
				"days":          conflicting.Days,
				"time":          conflicting.Time,
			})
	}

	student.Courses[courseID] = struct{}{}
	course.Enrolled[studentID] = struct{}{}

	if err := r.saveLocked(ctx); err != nil {
		delete(student.Courses, courseID)
		delete(course.Enrolled, studentID)
		return fmt.Errorf("failed to persist enrollment: %w", err)
	}

	r.logger.Info().Str("studentId", studentID).Str("courseId", courseID).Msg("Enrolled")
	return nil
}

// Drop removes the course from the student and the student from the roster.
func (r *Registry) Drop(ctx context.Context, studentID, courseID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	student, ok := r.students[studentID]
	if !ok {
		return apperrors.ErrNotLoggedIn
	}

	if !student.IsEnrolledIn(courseID) {
		return apperrors.ErrNotEnrolled
	}

	delete(student.Courses, courseID)
	if course, ok := r.courses[courseID]; ok {
		delete(course.Enrolled, studentID)
	}

	if err := r.saveLocked(ctx); err != nil {
		student.Courses[courseID] = struct{}{}
		if course, ok := r.courses[courseID]; ok {
			course.Enrolled[studentID] = struct{}{}
		}
		return fmt.Errorf("failed to persist drop: %w", err)
	}

	r.logger.Info().Str("studentId", studentID).Str("courseId", courseID).Msg("Dropped")
	return nil
}

// findConflictLocked runs conflict detection for a candidate course against
// the student's confirmed courses. It returns the ID of the first
// conflicting course found, not every conflict. The caller has already
// rejected AlreadyEnrolled, so the candidate is never compared with itself.
func (r *Registry) findConflictLocked(candidate *models.Course, student *models.Student) (string, error) {
	candidateMeeting, err := schedule.ParseMeeting(candidate.Days, candidate.Time)
	if err != nil {
		return "", err
	}

	for courseID := range student.Courses {
		existing, ok := r.courses[courseID]
		if !ok {
			continue
		}

		existingMeeting, err := schedule.ParseMeeting(existing.Days, existing.Time)
		if err != nil {
			// A stored course with an unparseable schedule cannot conflict.
			r.logger.Warn().Err(err).Str("courseId", courseID).Msg("Skipping course with unparseable schedule")
			continue
		}

		if candidateMeeting.ConflictsWith(existingMeeting) {
			return courseID, nil
		}
	}

	return "", nil
}

// Courses returns a snapshot of the full catalog sorted by course ID. The
// snapshot is decoupled from the live mappings.
func (r *Registry) Courses() []*models.Course {
	r.mu.Lock()
	defer r.mu.Unlock()

	courses := make([]*models.Course, 0, len(r.courses))
	for _, c := range r.courses {
		courses = append(courses, c.Clone())
	}
	sort.Slice(courses, func(i, j int) bool { return courses[i].ID < courses[j].ID })
	return courses
}

// CourseCount returns the catalog size; the seeder uses it to decide
// whether the default catalog is needed.
func (r *Registry) CourseCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.courses)
}

// StudentCourses returns a snapshot of the courses the student is
// registered in, sorted by course ID.
func (r *Registry) StudentCourses(studentID string) ([]*models.Course, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	student, ok := r.students[studentID]
	if !ok {
		return nil, apperrors.ErrNotLoggedIn
	}

	courses := make([]*models.Course, 0, len(student.Courses))
	for courseID := range student.Courses {
		if c, ok := r.courses[courseID]; ok {
			courses = append(courses, c.Clone())
		}
	}
	sort.Slice(courses, func(i, j int) bool { return courses[i].ID < courses[j].ID })
	return courses, nil
}

// CheckInvariants verifies bidirectional membership and the capacity bound.
// Test helper; it is not part of any request path.
func (r *Registry) CheckInvariants() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, st := range r.students {
		for courseID := range st.Courses {
			course, ok := r.courses[courseID]
			if !ok {
				return fmt.Errorf("student %s registered in unknown course %s", st.ID, courseID)
			}
			if !course.HasStudent(st.ID) {
				return fmt.Errorf("student %s lists course %s but is not on its roster", st.ID, courseID)
			}
		}
	}
	for _, c := range r.courses {
		if len(c.Enrolled) > c.MaxStudents {
			return fmt.Errorf("course %s roster exceeds capacity: %d > %d", c.ID, len(c.Enrolled), c.MaxStudents)
		}
		for studentID := range c.Enrolled {
			student, ok := r.students[studentID]
			if !ok {
				return fmt.Errorf("course %s lists unknown student %s", c.ID, studentID)
			}
			if !student.IsEnrolledIn(c.ID) {
				return fmt.Errorf("course %s lists student %s who does not list it back", c.ID, studentID)
			}
		}
	}
	return nil
}

// IsEnrollmentError reports whether err is one of the expected user-facing
// enrollment diagnoses rather than an environment failure.
func IsEnrollmentError(err error) bool {
	return apperrors.Is(err, apperrors.ErrNotLoggedIn,
		apperrors.ErrCourseNotFound,
		apperrors.ErrAlreadyEnrolled,
		apperrors.ErrCourseFull,
		apperrors.ErrScheduleConflict,
		apperrors.ErrNotEnrolled,
		apperrors.ErrMalformedTimeRange,
	)
}
