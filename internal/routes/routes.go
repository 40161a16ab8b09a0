package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/court-reservations/internal/audit"
	"github.com/BruksfildServices01/court-reservations/internal/auth"
	"github.com/BruksfildServices01/court-reservations/internal/cache"
	"github.com/BruksfildServices01/court-reservations/internal/config"
	"github.com/BruksfildServices01/court-reservations/internal/handlers"
	infraRepo "github.com/BruksfildServices01/court-reservations/internal/infra/repository"
	"github.com/BruksfildServices01/court-reservations/internal/middleware"
	"github.com/BruksfildServices01/court-reservations/internal/models"
	"github.com/BruksfildServices01/court-reservations/internal/notification"
	ucBooking "github.com/BruksfildServices01/court-reservations/internal/usecase/booking"
)

// Deps are the process-wide singletons built in main.
type Deps struct {
	DB           *gorm.DB
	Config       *config.Config
	Tokens       *auth.Tokens
	Audit        *audit.Dispatcher
	Notify       *notification.Dispatcher
	Availability cache.Availability
}

// RegisterRoutes wires the HTTP surface and returns the hold expiry use
// case for the background reaper.
func RegisterRoutes(r *gin.Engine, d Deps) *ucBooking.ReleaseExpiredHolds {

	// ======================================================
	// MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.RequestID())
	r.Use(middleware.CORSMiddleware(d.Config.Origins()))

	// ======================================================
	// INFRA
	// ======================================================
	bookingRepo := infraRepo.NewBookingGormRepository(d.DB)

	// ======================================================
	// USE CASES: BOOKING
	// ======================================================
	generateSlotsUC := ucBooking.NewGenerateSlots(bookingRepo, d.Availability, d.Audit)
	listAvailabilityUC := ucBooking.NewListAvailability(bookingRepo, d.Availability)
	holdSlotUC := ucBooking.NewHoldSlot(bookingRepo, d.Availability, d.Audit, d.Config.HoldTTL)
	releaseSlotUC := ucBooking.NewReleaseSlot(bookingRepo, d.Availability, d.Audit)
	confirmBookingUC := ucBooking.NewConfirmBooking(bookingRepo, d.Availability, d.Audit, d.Notify)
	listHistoryUC := ucBooking.NewListHistory(bookingRepo)
	listPendingUC := ucBooking.NewListPending(bookingRepo)
	confirmPaymentUC := ucBooking.NewConfirmPayment(bookingRepo, d.Audit)
	releaseExpiredUC := ucBooking.NewReleaseExpiredHolds(bookingRepo, d.Availability, d.Audit)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(d.DB, d.Tokens, d.Config.CheckEmailDomain)
	meHandler := handlers.NewMeHandler(d.DB)
	venueHandler := handlers.NewVenueHandler(d.DB)
	courtHandler := handlers.NewCourtHandler(d.DB)
	auditLogsHandler := handlers.NewAuditLogsHandler(d.DB)

	slotHandler := handlers.NewSlotHandler(listAvailabilityUC, generateSlotsUC)
	bookingHandler := handlers.NewBookingHandler(
		holdSlotUC,
		releaseSlotUC,
		confirmBookingUC,
		listHistoryUC,
		listPendingUC,
		confirmPaymentUC,
	)

	// ======================================================
	// OPS
	// ======================================================
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// PUBLIC
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		api.GET("/venues", venueHandler.List)
		api.GET("/courts", courtHandler.List)
		api.GET("/courts/:id", courtHandler.Get)
		api.GET("/availability", slotHandler.Availability)

		// ------------------------------
		// AUTHENTICATED
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(d.Tokens))
		{
			secured.GET("/me", meHandler.GetMe)

			secured.POST("/slots/:id/hold", bookingHandler.Hold)
			secured.POST("/slots/:id/release", bookingHandler.Release)

			secured.POST("/bookings", bookingHandler.Confirm)
			secured.GET("/bookings/history", bookingHandler.History)
		}

		// ------------------------------
		// ADMIN
		// ------------------------------
		admin := api.Group("/admin")
		admin.Use(middleware.AuthMiddleware(d.Tokens), middleware.RequireRole(models.RoleAdmin))
		{
			admin.POST("/slots/generate", slotHandler.Generate)

			admin.GET("/bookings/pending", bookingHandler.Pending)
			admin.POST("/bookings/:id/confirm-payment", bookingHandler.ConfirmPayment)

			admin.POST("/venues", venueHandler.Create)
			admin.POST("/courts", courtHandler.Create)
			admin.PATCH("/courts/:id", courtHandler.Update)

			admin.GET("/audit-logs", auditLogsHandler.List)
		}
	}

	return releaseExpiredUC
}
