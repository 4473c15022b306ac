package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/emre/enrollhub/internal/app/models/dto"
	"github.com/emre/enrollhub/internal/pkg/apperrors"
)

// HandleAPIError maps the error taxonomy to HTTP responses. Controllers
// funnel every non-validation failure through here so the status mapping
// lives in one place.
func HandleAPIError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrBadCredential), errors.Is(err, apperrors.ErrStudentNotFound):
		// Login failures share one response so probing for valid IDs
		// reveals nothing.
		respond(c, http.StatusUnauthorized, dto.ErrorCodeInvalidCredentials, "Invalid student ID or password", err)
	case errors.Is(err, apperrors.ErrNotLoggedIn):
		respond(c, http.StatusUnauthorized, dto.ErrorCodeUnauthorized, "Login required", err)
	case errors.Is(err, apperrors.ErrCourseNotFound):
		respond(c, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Course not found", err)
	case errors.Is(err, apperrors.ErrStudentIDExists):
		respond(c, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "Student ID already exists", err)
	case errors.Is(err, apperrors.ErrCourseIDExists):
		respond(c, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "Course already exists", err)
	case errors.Is(err, apperrors.ErrAlreadyEnrolled):
		respond(c, http.StatusConflict, dto.ErrorCodeAlreadyEnrolled, "Already enrolled in this course", err)
	case errors.Is(err, apperrors.ErrCourseFull):
		respond(c, http.StatusConflict, dto.ErrorCodeCourseFull, "Course is full", err)
	case errors.Is(err, apperrors.ErrScheduleConflict):
		respond(c, http.StatusConflict, dto.ErrorCodeScheduleConflict, "Schedule conflict", err)
	case errors.Is(err, apperrors.ErrNotEnrolled):
		respond(c, http.StatusConflict, dto.ErrorCodeNotEnrolled, "Not enrolled in this course", err)
	case errors.Is(err, apperrors.ErrMalformedTimeRange):
		respond(c, http.StatusBadRequest, dto.ErrorCodeMalformedSchedule, "Malformed time range", err)
	case errors.Is(err, apperrors.ErrInvalidDays):
		respond(c, http.StatusBadRequest, dto.ErrorCodeMalformedSchedule, "Invalid day tokens", err)
	case errors.Is(err, apperrors.ErrValidationFailed):
		respond(c, http.StatusBadRequest, dto.ErrorCodeValidationFailed, "Validation failed", err)
	default:
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error")))
	}
}

func respond(c *gin.Context, status int, code dto.ErrorCode, message string, err error) {
	detail := dto.NewErrorDetail(code, message)

	// CustomError carries the specific diagnosis (e.g. which course the
	// schedule conflicts with); surface it to the caller, preferring the
	// structured details over the message string.
	var custom *apperrors.CustomError
	if errors.As(err, &custom) {
		switch {
		case custom.Details != nil:
			detail = detail.WithDetails(custom.Details)
		case custom.Message != "":
			detail = detail.WithDetails(custom.Message)
		}
	}

	c.JSON(status, dto.NewErrorResponse(detail))
}
