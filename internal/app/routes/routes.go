package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/tharindu/examdesk/internal/app/controllers"
	"github.com/tharindu/examdesk/internal/app/models"
	"github.com/tharindu/examdesk/internal/app/models/dto"
	"github.com/tharindu/examdesk/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	entryController *controllers.EntryController,
	admissionController *controllers.AdmissionController,
	authMiddleware *middleware.AuthMiddleware,
) {
	// API version group
	v1 := router.Group("/api/v1")

	// --- Public Auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/login", authController.Login)
	}

	// --- Authenticated Routes Group ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())

	// Account creation is a manager task
	authManagerProtected := authenticated.Group("/auth")
	authManagerProtected.Use(authMiddleware.RoleRequired(models.RoleManager))
	{
		authManagerProtected.POST("/students/register", authController.RegisterStudent)
		authManagerProtected.POST("/managers/register", authController.RegisterManager)
	}

	entries := authenticated.Group("/entries")
	{
		// Students apply for their own entry
		entriesStudentProtected := entries.Group("")
		entriesStudentProtected.Use(authMiddleware.RoleRequired(models.RoleStudent))
		{
			entriesStudentProtected.POST("/apply", entryController.ApplyExam)
		}

		entries.POST("/subjects", entryController.GetStudentSubjects)
		entries.POST("/students", entryController.FetchStudentsWithSubjects)
		entries.POST("/students/me", entryController.StudentWithSubjects)

		// Intake and index allocation are manager tasks
		entriesManagerProtected := entries.Group("")
		entriesManagerProtected.Use(authMiddleware.RoleRequired(models.RoleManager))
		{
			entriesManagerProtected.POST("/medical-resit", entryController.AddMedicalResitStudents)
			entriesManagerProtected.POST("/index-numbers/missing", entryController.StudentsWithoutIndexNumber)
			entriesManagerProtected.POST("/index-numbers/generate", entryController.GenerateIndexNumbers)
			entriesManagerProtected.POST("/index-numbers/last", entryController.LastAssignedIndexNumber)
		}
	}

	admissions := authenticated.Group("/admissions")
	{
		admissions.POST("/latest", admissionController.LatestAdmissionTemplate)
		admissions.POST("/batch-details", admissionController.BatchAdmissionDetails)

		admissionsManagerProtected := admissions.Group("")
		admissionsManagerProtected.Use(authMiddleware.RoleRequired(models.RoleManager))
		{
			admissionsManagerProtected.POST("", admissionController.UpsertAdmission)
		}
	}

	// Health check endpoint (public)
	v1.GET("/health", func(c *gin.Context) {
		c.JSON(200, dto.APIResponse{
			Data: gin.H{"status": "ok"},
		})
	})
}
