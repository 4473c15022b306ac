package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/emre/enrollhub/internal/app/controllers"
	"github.com/emre/enrollhub/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	courseController *controllers.CourseController,
	enrollmentController *controllers.EnrollmentController,
	authMiddleware *middleware.AuthMiddleware,
) {
	v1 := router.Group("/api/v1")

	// --- Public routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
	}

	// Browsing the catalog needs no session
	v1.GET("/courses", courseController.ListCourses)

	// --- Authenticated routes ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		authenticated.POST("/auth/logout", authController.Logout)

		authenticated.POST("/courses", courseController.AddCourse)
		authenticated.POST("/courses/:id/enroll", enrollmentController.Enroll)
		authenticated.POST("/courses/:id/drop", enrollmentController.Drop)

		authenticated.GET("/me/courses", enrollmentController.MyCourses)
	}
}
