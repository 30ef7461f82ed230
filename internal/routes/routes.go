package routes

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/schedula/clinic-scheduler/internal/config"
	domain "github.com/schedula/clinic-scheduler/internal/domain/scheduling"
	"github.com/schedula/clinic-scheduler/internal/handlers"
	infraRepo "github.com/schedula/clinic-scheduler/internal/infra/repository"
	"github.com/schedula/clinic-scheduler/internal/middleware"
	"github.com/schedula/clinic-scheduler/internal/notify"
)

func RegisterRoutes(
	r *gin.Engine,
	db *gorm.DB,
	cfg *config.Config,
	locker domain.Locker,
	logger *zap.Logger,
) {

	r.Use(middleware.CORSMiddleware())

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	repo := infraRepo.NewSchedulingGormRepository(db)

	outbox := notify.NewOutboxSink(db, logger)
	dispatcher := notify.NewDispatcher(outbox, logger)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	doctorHandler := handlers.NewDoctorHandler(repo)
	appointmentHandler := handlers.NewAppointmentHandler(repo, locker)
	availabilityHandler := handlers.NewAvailabilityHandler(repo)
	dayScheduleHandler := handlers.NewDayScheduleHandler(repo, dispatcher, logger, cfg)
	templateHandler := handlers.NewTemplateHandler(repo, logger, cfg)

	api := r.Group("/api")
	{
		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// PUBLIC READS
		// ------------------------------
		api.GET("/doctors", doctorHandler.List)
		api.GET("/doctors/:id", doctorHandler.Get)
		api.GET("/doctors/:id/available-slots", availabilityHandler.AvailableSlots)

		// ------------------------------
		// PRIVATE API
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me/patient", doctorHandler.Me)

			// ------------------------------
			// APPOINTMENTS
			// ------------------------------
			secured.POST("/appointments", appointmentHandler.Book)
			secured.GET("/me/appointments", appointmentHandler.ListMine)
			secured.GET("/doctors/:id/appointments", appointmentHandler.ListForDoctor)
			secured.PATCH("/appointments/:id/reschedule", appointmentHandler.Reschedule)
			secured.PATCH("/appointments/:id/cancel", appointmentHandler.Cancel)

			secured.GET("/day-schedules/:id", dayScheduleHandler.Get)
			secured.GET("/doctors/:id/day-schedules", dayScheduleHandler.List)
			secured.GET("/doctors/:id/templates", templateHandler.List)
			secured.GET("/doctors/:id/slots", availabilityHandler.ListSlots)
			secured.GET("/doctors/:id/fill-rate", dayScheduleHandler.FillRate)

			// ------------------------------
			// DOCTOR-ONLY MANAGEMENT
			// ------------------------------
			doctorOnly := secured.Group("/")
			doctorOnly.Use(middleware.RequireRole("doctor"))
			{
				doctorOnly.POST("/day-schedules", dayScheduleHandler.Create)
				doctorOnly.PATCH("/day-schedules/:id", dayScheduleHandler.Update)
				doctorOnly.DELETE("/day-schedules/:id", dayScheduleHandler.Delete)
				doctorOnly.POST("/day-schedules/:id/reconcile", dayScheduleHandler.Reconcile)
				doctorOnly.POST("/day-schedules/:id/overflow-preview", dayScheduleHandler.OverflowPreview)

				doctorOnly.POST("/templates", templateHandler.Create)
				doctorOnly.GET("/templates/:id", templateHandler.Get)
				doctorOnly.PATCH("/templates/:id", templateHandler.Update)
				doctorOnly.DELETE("/templates/:id", templateHandler.Delete)
				doctorOnly.POST("/templates/:id/generate", templateHandler.Generate)
				doctorOnly.POST("/templates/:id/override", templateHandler.Override)
				doctorOnly.POST("/templates/auto-generate", templateHandler.AutoGenerateAll)

				doctorOnly.POST("/slots", availabilityHandler.CreateSlot)
				doctorOnly.PATCH("/slots/:id", availabilityHandler.UpdateSlot)
				doctorOnly.DELETE("/slots/:id", availabilityHandler.DeleteSlot)
			}
		}
	}
}
