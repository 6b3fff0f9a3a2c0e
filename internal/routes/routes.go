package routes

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/topcardetailing/booking-api/internal/audit"
	"github.com/topcardetailing/booking-api/internal/blob"
	"github.com/topcardetailing/booking-api/internal/cache"
	"github.com/topcardetailing/booking-api/internal/config"
	"github.com/topcardetailing/booking-api/internal/handlers"
	infraRepo "github.com/topcardetailing/booking-api/internal/infra/repository"
	"github.com/topcardetailing/booking-api/internal/middleware"
	"github.com/topcardetailing/booking-api/internal/notify"
	"github.com/topcardetailing/booking-api/internal/payment"
	ucAppointment "github.com/topcardetailing/booking-api/internal/usecase/appointment"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config, log *zap.Logger) {

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	appointmentRepo := infraRepo.NewAppointmentGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger, log)

	catalogCache := cache.NewCatalog(cfg.RedisAddr, log)
	blobStore := blob.NewFromConfig(cfg, log)
	processor := payment.NewFromConfig(cfg, log)
	notifier := notify.NewLogNotifier(log)

	// ======================================================
	// USE CASES — APPOINTMENTS
	// ======================================================
	createAppointmentUC := ucAppointment.NewCreateAppointment(
		appointmentRepo,
		auditDispatcher,
		notifier,
		cfg.Timezone,
	)

	updateAppointmentUC := ucAppointment.NewUpdateAppointment(
		appointmentRepo,
		auditDispatcher,
		cfg.Timezone,
	)

	listAppointmentsUC := ucAppointment.NewListAppointments(
		appointmentRepo,
	)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	meHandler := handlers.NewMeHandler()

	serviceHandler := handlers.NewServiceHandler(db, catalogCache, auditDispatcher)

	appointmentHandler := handlers.NewAppointmentHandler(
		createAppointmentUC,
		updateAppointmentUC,
		listAppointmentsUC,
	)

	expenseHandler := handlers.NewExpenseHandler(db, auditDispatcher, cfg.Timezone)
	paymentHandler := handlers.NewPaymentHandler(db, processor, notifier, auditDispatcher, cfg.Timezone)
	uploadHandler := handlers.NewUploadHandler(db, blobStore, auditDispatcher, cfg.Timezone)
	salesHandler := handlers.NewSalesHandler(db, cfg.Timezone)
	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth", authHandler.Handle)

		// ------------------------------
		// CATALOG
		// ------------------------------
		api.GET("/services", serviceHandler.List)
		api.POST("/services", serviceHandler.Create)
		api.PUT("/services", serviceHandler.Update)
		api.DELETE("/services", serviceHandler.Delete)

		// ------------------------------
		// APPOINTMENTS
		// ------------------------------
		api.GET("/appointments", appointmentHandler.List)
		api.POST("/appointments", appointmentHandler.Create)
		api.PUT("/appointments", appointmentHandler.Update)

		// ------------------------------
		// EXPENSES
		// ------------------------------
		api.GET("/expenses", expenseHandler.List)
		api.POST("/expenses", expenseHandler.Create)
		api.PUT("/expenses", expenseHandler.Update)
		api.DELETE("/expenses", expenseHandler.Delete)

		// ------------------------------
		// PAYMENTS
		// ------------------------------
		api.GET("/payments", paymentHandler.List)
		api.POST("/payments", paymentHandler.Process)

		// ------------------------------
		// UPLOADS
		// ------------------------------
		api.GET("/uploads", uploadHandler.List)
		api.POST("/uploads", uploadHandler.Upload)

		// ------------------------------
		// SALES
		// ------------------------------
		api.GET("/sales/summary", salesHandler.Summary)

		// ------------------------------
		// AUTHENTICATED
		// ------------------------------
		secured := api.Group("/me")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("", meHandler.GetMe)

			admin := secured.Group("/")
			admin.Use(middleware.RequireRole("admin"))
			{
				admin.GET("/audit-logs", auditLogsHandler.List)
			}
		}
	}
}
