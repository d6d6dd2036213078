package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"clinic-app-server/internal/config"
	"clinic-app-server/internal/handlers"
	"clinic-app-server/internal/middleware"
	"clinic-app-server/internal/models"
	"clinic-app-server/internal/scheduling"
	"clinic-app-server/internal/utils"
)

// SetupRoutes configures the application routes.
func SetupRoutes(router *gin.Engine, db *gorm.DB, cfg *config.Config) {
	// Initialize handlers
	scheduler := scheduling.NewService(db, cfg.Scheduling)
	authHandler := handlers.NewAuthHandler(db, cfg)
	userHandler := handlers.NewUserHandler(db)
	therapistHandler := handlers.NewTherapistHandler(db)
	patientHandler := handlers.NewPatientHandler(db)
	waitingListHandler := handlers.NewWaitingListHandler(db)
	appointmentHandler := handlers.NewAppointmentHandler(db, scheduler)
	reportHandler := handlers.NewReportHandler(db)

	// Public routes (no authentication required)
	public := router.Group("/api")
	{
		public.POST("/auth/google", authHandler.GoogleLogin)

		public.GET("/health", func(c *gin.Context) {
			sqlDB, err := db.DB()
			if err == nil {
				err = sqlDB.Ping()
			}
			if err != nil {
				utils.InternalServerError(c, "Database unreachable", err)
				return
			}
			utils.Success(c, "Connection successful", gin.H{"status": "UP"})
		})
	}

	// Authenticated routes
	private := router.Group("/api")
	private.Use(middleware.AuthMiddleware(cfg))
	{
		// User management (admin-only)
		userRoutes := private.Group("/users")
		userRoutes.Use(middleware.RoleAuthMiddleware(models.RoleAdmin))
		{
			userRoutes.POST("", userHandler.CreateUser)
			userRoutes.GET("", userHandler.GetUsers)
			userRoutes.GET("/:id", userHandler.GetUserByID)
			userRoutes.PUT("/:id", userHandler.UpdateUser)
			userRoutes.DELETE("/:id", userHandler.DeleteUser)
		}

		// Therapist routes
		therapistRoutes := private.Group("/therapists")
		{
			therapistRoutes.GET("", therapistHandler.GetTherapists)
			therapistRoutes.POST("", therapistHandler.CreateTherapist)
			therapistRoutes.GET("/:id", therapistHandler.GetTherapistByID)
			therapistRoutes.PATCH("/:id", therapistHandler.UpdateTherapist)
			therapistRoutes.DELETE("/:id", therapistHandler.DeleteTherapist)
		}

		// Patient routes
		patientRoutes := private.Group("/patients")
		{
			patientRoutes.GET("", patientHandler.GetPatients)
			patientRoutes.POST("", patientHandler.CreatePatient)
			patientRoutes.GET("/:id", patientHandler.GetPatientByID)
			patientRoutes.PATCH("/:id", patientHandler.UpdatePatient)
			patientRoutes.PUT("/:id/status", patientHandler.UpdatePatientStatus)
		}

		// Waiting list routes
		waitingListRoutes := private.Group("/waiting-list")
		{
			waitingListRoutes.GET("", waitingListHandler.GetWaitingList)
			waitingListRoutes.GET("/:id", waitingListHandler.GetWaitingListEntry)
			waitingListRoutes.DELETE("/:id", waitingListHandler.DeleteWaitingListEntry)
			waitingListRoutes.GET("/:id/appointments", waitingListHandler.GetEntryAppointments)
		}

		// Appointment routes
		appointmentRoutes := private.Group("/appointments")
		{
			appointmentRoutes.POST("", appointmentHandler.CreateAppointment)
			appointmentRoutes.GET("/completed", appointmentHandler.GetCompletedAppointments)
			appointmentRoutes.GET("/:id", appointmentHandler.GetAppointmentByID)
			appointmentRoutes.PATCH("/:id/complete", appointmentHandler.CompleteAppointment)
			appointmentRoutes.DELETE("/:id", appointmentHandler.DeleteAppointment)
		}

		// Report routes
		reportRoutes := private.Group("/reports")
		{
			reportRoutes.POST("/save", reportHandler.SaveReport)
			reportRoutes.GET("", reportHandler.GetReports)
			reportRoutes.GET("/appointment/:id", reportHandler.GetReportByAppointment)
			reportRoutes.GET("/patient/:id", reportHandler.GetReportsByPatient)
		}
	}
}
