package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/emre/enrollhub/internal/app/models/dto"
	"github.com/emre/enrollhub/internal/app/registry"
	"github.com/emre/enrollhub/internal/middleware"
)

// EnrollmentController handles enroll/drop and the student's own schedule
type EnrollmentController struct {
	registry *registry.Registry
	logger   zerolog.Logger
}

// NewEnrollmentController creates a new EnrollmentController
func NewEnrollmentController(reg *registry.Registry, logger zerolog.Logger) *EnrollmentController {
	return &EnrollmentController{
		registry: reg,
		logger:   logger,
	}
}

// Enroll adds the authenticated student to a course.
// POST /courses/:id/enroll
func (c *EnrollmentController) Enroll(ctx *gin.Context) {
	studentID := middleware.StudentID(ctx)
	courseID := ctx.Param("id")

	if err := c.registry.Enroll(ctx.Request.Context(), studentID, courseID); err != nil {
		if registry.IsEnrollmentError(err) {
			c.logger.Info().Err(err).Str("studentId", studentID).Str("courseId", courseID).Msg("Enrollment rejected")
		} else {
			c.logger.Error().Err(err).Str("studentId", studentID).Str("courseId", courseID).Msg("Enrollment failed")
		}
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("Enrolled in "+courseID, nil))
}

// Drop removes the authenticated student from a course.
// POST /courses/:id/drop
func (c *EnrollmentController) Drop(ctx *gin.Context) {
	studentID := middleware.StudentID(ctx)
	courseID := ctx.Param("id")

	if err := c.registry.Drop(ctx.Request.Context(), studentID, courseID); err != nil {
		if registry.IsEnrollmentError(err) {
			c.logger.Info().Err(err).Str("studentId", studentID).Str("courseId", courseID).Msg("Drop rejected")
		} else {
			c.logger.Error().Err(err).Str("studentId", studentID).Str("courseId", courseID).Msg("Drop failed")
		}
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("Dropped "+courseID, nil))
}

// MyCourses lists the authenticated student's registered courses.
// GET /me/courses
func (c *EnrollmentController) MyCourses(ctx *gin.Context) {
	studentID := middleware.StudentID(ctx)

	courses, err := c.registry.StudentCourses(studentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("", dto.NewCourseSummaries(courses)))
}
