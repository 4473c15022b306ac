package models

import "sort"

// DefaultMaxStudents is the course capacity used when none is given.
const DefaultMaxStudents = 30

// Course represents a catalog entry. Days is a day-token string ("MWF",
// "TR"); Time is a "HH:MM–HH:MM" range with an en-dash separator. Both are
// kept in their wire form and parsed by the schedule package on demand.
type Course struct {
	ID          string `json:"courseId"`
	Name        string `json:"name"`
	Instructor  string `json:"instructor"`
	Days        string `json:"days"`
	Time        string `json:"time"`
	MaxStudents int    `json:"maxStudents"`

	// Enrolled is the roster: the set of enrolled student IDs.
	Enrolled map[string]struct{} `json:"-"`
}

// NewCourse creates a course with an empty roster. A non-positive capacity
// falls back to DefaultMaxStudents.
func NewCourse(id, name, instructor, days, timeRange string, maxStudents int) *Course {
	if maxStudents <= 0 {
		maxStudents = DefaultMaxStudents
	}
	return &Course{
		ID:          id,
		Name:        name,
		Instructor:  instructor,
		Days:        days,
		Time:        timeRange,
		MaxStudents: maxStudents,
		Enrolled:    make(map[string]struct{}),
	}
}

// IsFull reports whether the roster has reached capacity.
func (c *Course) IsFull() bool {
	return len(c.Enrolled) >= c.MaxStudents
}

// HasStudent reports whether the given student is on the roster.
func (c *Course) HasStudent(studentID string) bool {
	_, ok := c.Enrolled[studentID]
	return ok
}

// EnrolledIDs returns the roster sorted for stable output.
func (c *Course) EnrolledIDs() []string {
	ids := make([]string, 0, len(c.Enrolled))
	for id := range c.Enrolled {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Clone returns a deep copy, used for snapshots handed outside the registry.
func (c *Course) Clone() *Course {
	cp := *c
	cp.Enrolled = make(map[string]struct{}, len(c.Enrolled))
	for id := range c.Enrolled {
		cp.Enrolled[id] = struct{}{}
	}
	return &cp
}
