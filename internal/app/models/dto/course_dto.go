package dto

import "github.com/emre/enrollhub/internal/app/models"

// AddCourseRequest carries a new catalog entry. MaxStudents is optional;
// zero means the default capacity.
type AddCourseRequest struct {
	CourseID    string `json:"courseId" binding:"required" example:"CS101"`
	Name        string `json:"name" binding:"required" example:"Intro to Programming"`
	Instructor  string `json:"instructor" binding:"required" example:"Prof. Turing"`
	Days        string `json:"days" binding:"required" example:"MWF"`
	Time        string `json:"time" binding:"required" example:"10:00–11:30"`
	MaxStudents int    `json:"maxStudents" binding:"omitempty,min=1" example:"30"`
}

// CourseSummary is the read-only projection of a catalog entry
type CourseSummary struct {
	CourseID    string `json:"courseId" example:"CS101"`
	Name        string `json:"name" example:"Intro to Programming"`
	Instructor  string `json:"instructor" example:"Prof. Turing"`
	Days        string `json:"days" example:"MWF"`
	Time        string `json:"time" example:"10:00–11:30"`
	Enrolled    int    `json:"enrolled" example:"12"`
	MaxStudents int    `json:"maxStudents" example:"30"`
}

// NewCourseSummary projects a course model
func NewCourseSummary(c *models.Course) CourseSummary {
	return CourseSummary{
		CourseID:    c.ID,
		Name:        c.Name,
		Instructor:  c.Instructor,
		Days:        c.Days,
		Time:        c.Time,
		Enrolled:    len(c.Enrolled),
		MaxStudents: c.MaxStudents,
	}
}

// NewCourseSummaries projects a course list
func NewCourseSummaries(courses []*models.Course) []CourseSummary {
	summaries := make([]CourseSummary, 0, len(courses))
	for _, c := range courses {
		summaries = append(summaries, NewCourseSummary(c))
	}
	return summaries
}
