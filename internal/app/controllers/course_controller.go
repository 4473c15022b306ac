package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/emre/enrollhub/internal/app/models/dto"
	"github.com/emre/enrollhub/internal/app/registry"
	"github.com/emre/enrollhub/internal/middleware"
)

// CourseController handles catalog operations
type CourseController struct {
	registry *registry.Registry
	logger   zerolog.Logger
}

// NewCourseController creates a new CourseController
func NewCourseController(reg *registry.Registry, logger zerolog.Logger) *CourseController {
	return &CourseController{
		registry: reg,
		logger:   logger,
	}
}

// ListCourses returns the full catalog with enrollment counts.
// GET /courses
func (c *CourseController) ListCourses(ctx *gin.Context) {
	courses := c.registry.Courses()
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("", dto.NewCourseSummaries(courses)))
}

// AddCourse inserts a new catalog entry. Any logged-in user may add
// courses; there is no richer authorization model.
// POST /courses
func (c *CourseController) AddCourse(ctx *gin.Context) {
	var req dto.AddCourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	course, err := c.registry.AddCourse(ctx.Request.Context(),
		req.CourseID, req.Name, req.Instructor, req.Days, req.Time, req.MaxStudents)
	if err != nil {
		c.logger.Warn().Err(err).Str("courseId", req.CourseID).Msg("Add course failed")
		middleware.HandleAPIError(ctx, err)
		return
	}

	summary := dto.NewCourseSummary(course)
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse("Course '"+course.Name+"' added", summary))
}
