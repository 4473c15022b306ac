// Package controllers handles HTTP request handling
package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/emre/enrollhub/internal/app/models/dto"
	"github.com/emre/enrollhub/internal/app/registry"
	"github.com/emre/enrollhub/internal/middleware"
	"github.com/emre/enrollhub/internal/pkg/auth"
)

// AuthController handles registration and session management
type AuthController struct {
	registry   *registry.Registry
	jwtService *auth.JWTService
	sessions   *auth.SessionRegistry
	logger     zerolog.Logger
}

// NewAuthController creates a new AuthController
func NewAuthController(reg *registry.Registry, jwtService *auth.JWTService, sessions *auth.SessionRegistry, logger zerolog.Logger) *AuthController {
	return &AuthController{
		registry:   reg,
		jwtService: jwtService,
		sessions:   sessions,
		logger:     logger,
	}
}

// Register creates a new student account.
// POST /auth/register
func (c *AuthController) Register(ctx *gin.Context) {
	var req dto.RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.logger.Warn().Err(err).Msg("Invalid registration request payload")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	student, err := c.registry.RegisterStudent(ctx.Request.Context(), req.StudentID, req.FullName, req.Email, req.Password)
	if err != nil {
		c.logger.Warn().Err(err).Str("studentId", req.StudentID).Msg("Registration failed")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse("Registered successfully", dto.RegisterResponse{
		StudentID: student.ID,
		FullName:  student.FullName,
		Email:     student.Email,
	}))
}

// Login authenticates a student and opens a session. The returned token is
// the explicit session handle the rest of the API expects.
// POST /auth/login
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	student, err := c.registry.Authenticate(req.StudentID, req.Password)
	if err != nil {
		c.logger.Warn().Str("studentId", req.StudentID).Msg("Login rejected")
		middleware.HandleAPIError(ctx, err)
		return
	}

	token, sessionID, expiresIn, err := c.jwtService.GenerateToken(student.ID, student.Email)
	if err != nil {
		c.logger.Error().Err(err).Msg("Failed to issue session token")
		middleware.HandleAPIError(ctx, err)
		return
	}
	c.sessions.Register(sessionID, student.ID)

	c.logger.Info().Str("studentId", student.ID).Msg("Student logged in")
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("Welcome back, "+student.FullName+"!", dto.TokenResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   expiresIn,
		FullName:    student.FullName,
	}))
}

// Logout revokes the current session. Revoking twice is harmless.
// POST /auth/logout
func (c *AuthController) Logout(ctx *gin.Context) {
	sessionID := middleware.SessionID(ctx)
	c.sessions.Revoke(sessionID)

	c.logger.Info().Str("studentId", middleware.StudentID(ctx)).Msg("Student logged out")
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("Logged out", nil))
}
