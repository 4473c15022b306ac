package apperrors

import "errors"

// Enrollment errors. Every registry operation returns one of these (or nil);
// they are user-facing conditions, never fatal.
var (
	// Account errors
	ErrStudentIDExists = errors.New("student ID already exists")
	ErrStudentNotFound = errors.New("no account found with that student ID")
	ErrBadCredential   = errors.New("incorrect password")
	ErrNotLoggedIn     = errors.New("login required")

	// Catalog errors
	ErrCourseIDExists = errors.New("course already exists")
	ErrCourseNotFound = errors.New("course not found")
	ErrInvalidDays    = errors.New("invalid day tokens")

	// Enrollment errors
	ErrAlreadyEnrolled  = errors.New("already enrolled in this course")
	ErrCourseFull       = errors.New("course is full")
	ErrScheduleConflict = errors.New("schedule conflict")
	ErrNotEnrolled      = errors.New("not enrolled in this course")

	// Schedule errors
	ErrMalformedTimeRange = errors.New("malformed time range")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
)

// Session errors
var (
	ErrTokenExpired   = errors.New("token expired")
	ErrTokenInvalid   = errors.New("invalid token")
	ErrInvalidFormat  = errors.New("invalid token format")
	ErrSessionRevoked = errors.New("session has been revoked")
)

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
	Details map[string]interface{}
}

// Error implements the error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewCustomError creates a CustomError with an underlying sentinel
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{
		Err:     err,
		Message: message,
	}
}

// WithDetails adds context details to the error
func (e *CustomError) WithDetails(details map[string]interface{}) *CustomError {
	e.Details = details
	return e
}

// Is returns whether target matches err or any of the errors in errList
func Is(err, target error, errList ...error) bool {
	if errors.Is(err, target) {
		return true
	}
	for _, e := range errList {
		if errors.Is(err, e) {
			return true
		}
	}
	return false
}
