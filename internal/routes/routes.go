package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/pharma-scheduler/internal/audit"
	"github.com/BruksfildServices01/pharma-scheduler/internal/cancelflow"
	"github.com/BruksfildServices01/pharma-scheduler/internal/config"
	domain "github.com/BruksfildServices01/pharma-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/pharma-scheduler/internal/handlers"
	infraRepo "github.com/BruksfildServices01/pharma-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/pharma-scheduler/internal/middleware"
	ucAppointment "github.com/BruksfildServices01/pharma-scheduler/internal/usecase/appointment"
)

// Deps are the process-wide singletons the routes are built from.
type Deps struct {
	Config   *config.Config
	Store    domain.Store
	AuditDB  *gorm.DB // nil when AUDIT_DB_DRIVER=none
	Audit    *audit.Dispatcher
	Sessions cancelflow.SessionStore
	Exporter handlers.Exporter // nil when S3 is not configured
	Log      zerolog.Logger
	Now      ucAppointment.Clock
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	cfg := d.Config

	// ======================================================
	// GLOBAL MIDDLEWARE
	// ======================================================
	r.Use(middleware.Recovery(d.Log))
	r.Use(middleware.RequestLogger(d.Log))
	r.Use(middleware.CORSMiddleware())

	// ======================================================
	// USE CASES
	// ======================================================
	rules := ucAppointment.Rules{
		Schedule: cfg.Schedule,
		HighCost: cfg.HighCost,
	}

	createUC := ucAppointment.NewCreateAppointment(d.Store, d.Audit, rules, d.Now)
	queryUC := ucAppointment.NewQueryAppointments(d.Store)
	statusUC := ucAppointment.NewUpdateStatus(d.Store, d.Audit)
	cancelUC := ucAppointment.NewSoftCancel(d.Store, d.Audit)
	deleteUC := ucAppointment.NewHardDelete(d.Store, d.Audit, d.Log)
	availabilityUC := ucAppointment.NewGetAvailability(cfg.Schedule, d.Now)

	flow := cancelflow.NewController(queryUC, deleteUC, d.Sessions, d.Log)

	var auditRepo *infraRepo.AuditLogGormRepository
	if d.AuditDB != nil {
		auditRepo = infraRepo.NewAuditLogGormRepository(d.AuditDB)
	}

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(cfg)
	meHandler := handlers.NewMeHandler()
	serviceHandler := handlers.NewServiceHandler(createUC, queryUC, statusUC, cancelUC, d.Now)
	chatHandler := handlers.NewChatHandler(flow)
	exportHandler := handlers.NewExportHandler(d.Exporter)
	timeHandler := handlers.NewTimeHandler(availabilityUC, cfg.Schedule, d.Now)
	workingHoursHandler := handlers.NewWorkingHoursHandler(cfg.Schedule, cfg.HighCost)
	auditLogsHandler := handlers.NewAuditLogsHandler(auditRepo)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		api.POST("/auth/login", authHandler.Login)

		secured := api.Group("/")
		if cfg.JWTSecret != "" {
			secured.Use(middleware.AuthMiddleware(cfg.JWTSecret))
		} else {
			d.Log.Warn().Msg("JWT_SECRET not set, /api routes are unauthenticated")
		}
		{
			secured.GET("/me", meHandler.GetMe)
			secured.GET("/time", timeHandler.Now)
			secured.GET("/availability", timeHandler.Availability)
			secured.GET("/schedule", workingHoursHandler.Get)

			// ------------------------------
			// SERVICES
			// ------------------------------
			secured.POST("/services", serviceHandler.Create)
			secured.GET("/services", serviceHandler.List)
			secured.GET("/services/patient", serviceHandler.ByPatient)
			secured.GET("/services/search", serviceHandler.Search)
			secured.PATCH("/services/status", serviceHandler.UpdateStatusByKey)
			secured.PATCH("/services/:id/status", serviceHandler.UpdateStatusByID)
			secured.PATCH("/services/:id/cancel", serviceHandler.Cancel)

			secured.POST("/chat", chatHandler.Turn)
			secured.POST("/exports", exportHandler.Create)
			secured.GET("/audit-logs", auditLogsHandler.List)
		}
	}
}
