package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/emre/enrollhub/internal/app/models/dto"
	"github.com/emre/enrollhub/internal/pkg/apperrors"
	"github.com/emre/enrollhub/internal/pkg/auth"
)

// Context keys set by JWTAuth for downstream handlers
const (
	ContextStudentID = "studentID"
	ContextSessionID = "sessionID"
	ContextEmail     = "email"
)

// AuthMiddleware authenticates requests against the session layer
type AuthMiddleware struct {
	jwtService *auth.JWTService
	sessions   *auth.SessionRegistry
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(jwtService *auth.JWTService, sessions *auth.SessionRegistry) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
		sessions:   sessions,
	}
}

// JWTAuth validates the Bearer token and checks the session is still
// active, then exposes the student identity to handlers.
func (m *AuthMiddleware) JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortUnauthorized(c, dto.ErrorCodeUnauthorized, "Authentication required", "Authorization header missing")
			return
		}

		tokenString, err := auth.ExtractBearerToken(authHeader)
		if err != nil {
			abortUnauthorized(c, dto.ErrorCodeUnauthorized, "Authentication required", "Invalid token format")
			return
		}

		claims, err := m.jwtService.ValidateToken(tokenString)
		if err != nil {
			code := dto.ErrorCodeInvalidToken
			details := "Invalid token"
			if errors.Is(err, apperrors.ErrTokenExpired) {
				code = dto.ErrorCodeExpiredToken
				details = "Token has expired"
			}
			abortUnauthorized(c, code, "Authentication failed", details)
			return
		}

		if err := m.sessions.Validate(claims.ID); err != nil {
			abortUnauthorized(c, dto.ErrorCodeUnauthorized, "Authentication failed", "Session is no longer active")
			return
		}

		c.Set(ContextStudentID, claims.StudentID)
		c.Set(ContextSessionID, claims.ID)
		c.Set(ContextEmail, claims.Email)

		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, code dto.ErrorCode, message, details string) {
	errorDetail := dto.NewErrorDetail(code, message).WithDetails(details)
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
}

// StudentID returns the authenticated student ID set by JWTAuth
func StudentID(c *gin.Context) string {
	return c.GetString(ContextStudentID)
}

// SessionID returns the session ID set by JWTAuth
func SessionID(c *gin.Context) string {
	return c.GetString(ContextSessionID)
}
