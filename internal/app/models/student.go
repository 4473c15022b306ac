package models

import "sort"

// Student defines a student account. The ID is chosen by the student at
// registration and acts as the primary key; it is case-sensitive and
// non-empty. Passwords are opaque strings compared by exact equality, a
// contract inherited from the system this one replaces.
type Student struct {
	ID       string `json:"studentId"`
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Password string `json:"-"`

	// Courses is the set of course IDs the student is registered in.
	Courses map[string]struct{} `json:"-"`
}

// NewStudent creates a student with an empty course set.
func NewStudent(id, fullName, email, password string) *Student {
	return &Student{
		ID:       id,
		FullName: fullName,
		Email:    email,
		Password: password,
		Courses:  make(map[string]struct{}),
	}
}

// IsEnrolledIn reports whether the student holds the given course.
func (s *Student) IsEnrolledIn(courseID string) bool {
	_, ok := s.Courses[courseID]
	return ok
}

// CourseIDs returns the registered course IDs sorted for stable output.
func (s *Student) CourseIDs() []string {
	ids := make([]string, 0, len(s.Courses))
	for id := range s.Courses {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Clone returns a deep copy, used for snapshots handed outside the registry.
func (s *Student) Clone() *Student {
	c := *s
	c.Courses = make(map[string]struct{}, len(s.Courses))
	for id := range s.Courses {
		c.Courses[id] = struct{}{}
	}
	return &c
}
