package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-booking/internal/activity"
	"github.com/BruksfildServices01/barber-booking/internal/config"
	domainAvailability "github.com/BruksfildServices01/barber-booking/internal/domain/availability"
	domainBooking "github.com/BruksfildServices01/barber-booking/internal/domain/booking"
	"github.com/BruksfildServices01/barber-booking/internal/domain/catalog"
	"github.com/BruksfildServices01/barber-booking/internal/handlers"
	infraRepo "github.com/BruksfildServices01/barber-booking/internal/infra/repository"
	"github.com/BruksfildServices01/barber-booking/internal/metrics"
	"github.com/BruksfildServices01/barber-booking/internal/middleware"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
	ucAvailability "github.com/BruksfildServices01/barber-booking/internal/usecase/availability"
	ucBooking "github.com/BruksfildServices01/barber-booking/internal/usecase/booking"
)

// Deps are the process singletons main builds before registering routes.
// Cache and Archiver are optional.
type Deps struct {
	DB       *gorm.DB
	Config   *config.Config
	Log      *zap.Logger
	Clock    timezone.Clock
	Metrics  *metrics.Metrics
	Hook     activity.Hook
	Recorder *activity.Recorder
	Catalog  *catalog.Catalog

	// CachedAvailability serves slot and public reads. Nil means direct
	// repository reads.
	CachedAvailability domainAvailability.Reader
	Invalidator        ucAvailability.Invalidator
	Archiver           ucBooking.Archiver
}

func RegisterRoutes(r *gin.Engine, d Deps) {

	// ======================================================
	// MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(
		middleware.RequestLogger(d.Log),
		d.Metrics.Middleware(),
		middleware.CORSMiddleware(),
	)

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	bookingRepo := infraRepo.NewBookingGormRepository(d.DB)
	availabilityRepo := infraRepo.NewAvailabilityGormRepository(d.DB)

	var availabilityReader domainAvailability.Reader = availabilityRepo
	if d.CachedAvailability != nil {
		availabilityReader = d.CachedAvailability
	}

	invalidator := d.Invalidator
	if invalidator == nil {
		invalidator = ucAvailability.NopInvalidator{}
	}

	// ======================================================
	// USE CASES: BOOKINGS
	// ======================================================
	contactPhone := d.Config.ContactPhone

	createBookingUC := ucBooking.NewCreateBooking(
		bookingRepo, availabilityRepo, d.Catalog, d.Clock, d.Hook, d.Metrics, contactPhone,
	)
	updateStatusUC := ucBooking.NewUpdateStatus(bookingRepo, d.Clock, d.Hook, d.Metrics)
	rescheduleUC := ucBooking.NewReschedule(bookingRepo, availabilityRepo, d.Clock, d.Hook, d.Metrics)
	cancelUC := ucBooking.NewCancelBooking(bookingRepo, d.Clock, d.Hook, d.Metrics)
	slotsUC := ucBooking.NewGetSlots(
		bookingRepo, availabilityReader, d.Catalog, d.Clock, d.Metrics, contactPhone,
	)
	purgeUC := ucBooking.NewPurgeBookings(bookingRepo, d.Archiver, d.Clock, d.Hook, d.Metrics)

	// ======================================================
	// USE CASES: AVAILABILITY
	// ======================================================
	getAvailabilityUC := ucAvailability.NewGetAvailability(availabilityRepo)
	publicAvailabilityUC := ucAvailability.NewGetAvailability(availabilityReader)
	updateAvailabilityUC := ucAvailability.NewUpdateAvailability(availabilityRepo, invalidator, d.Log)
	provisionUC := ucAvailability.NewProvisionAvailability(availabilityRepo)
	deactivateUC := ucAvailability.NewDeactivateProvider(availabilityRepo, invalidator, d.Log)

	// ======================================================
	// HANDLERS
	// ======================================================
	bookingHandler := handlers.NewBookingHandler(
		createBookingUC,
		updateStatusUC,
		rescheduleUC,
		cancelUC,
		ucBooking.NewListBookingsByDate(bookingRepo),
		ucBooking.NewListBookingsByMonth(bookingRepo),
		ucBooking.NewListCustomerBookings(bookingRepo),
		d.Log,
	)
	availabilityHandler := handlers.NewAvailabilityHandler(
		getAvailabilityUC,
		publicAvailabilityUC,
		updateAvailabilityUC,
		provisionUC,
		deactivateUC,
		d.Log,
	)
	publicHandler := handlers.NewPublicHandler(d.Catalog, slotsUC, d.Log)
	activityHandler := handlers.NewActivityHandler(d.Recorder, d.Clock, d.Log)
	adminHandler := handlers.NewAdminHandler(purgeUC, d.Log)

	limiter := middleware.NewRateLimiter(d.Config.RateLimitRPS, d.Config.RateLimitBurst, d.Log)

	// ======================================================
	// OPS
	// ======================================================
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(d.Metrics.Handler()))

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// PUBLIC
		// ------------------------------
		api.GET("/services", publicHandler.ListServices)
		api.GET("/providers/:providerId/slots", limiter.Middleware(), publicHandler.Slots)
		api.GET("/providers/:providerId/availability", availabilityHandler.GetForProvider)

		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(d.Config.JWTSecret))

		// ------------------------------
		// CUSTOMER
		// ------------------------------
		customer := secured.Group("/bookings")
		customer.Use(middleware.RequireRole(domainBooking.RoleCustomer))
		{
			customer.POST("", bookingHandler.Create)
			customer.GET("", bookingHandler.ListMine)
			customer.PATCH("/:id/reschedule", bookingHandler.Reschedule)
			customer.PATCH("/:id/cancel", bookingHandler.Cancel)
		}

		// ------------------------------
		// PROVIDER / ADMIN
		// ------------------------------
		me := secured.Group("/me")
		me.Use(middleware.RequireRole(domainBooking.RoleProvider, domainBooking.RoleAdmin))
		{
			me.GET("/bookings", bookingHandler.ListByDate)
			me.GET("/bookings/month", bookingHandler.ListByMonth)
			me.POST("/bookings", bookingHandler.Create)
			me.PATCH("/bookings/:id/status", bookingHandler.UpdateStatus)

			me.GET("/availability", availabilityHandler.GetMine)
			me.PUT("/availability", availabilityHandler.UpdateMine)

			me.GET("/activities", activityHandler.List)
		}

		// ------------------------------
		// ADMIN
		// ------------------------------
		admin := secured.Group("/admin")
		admin.Use(middleware.RequireRole(domainBooking.RoleAdmin))
		{
			admin.POST("/providers/:providerId/availability", availabilityHandler.Provision)
			admin.PUT("/providers/:providerId/availability", availabilityHandler.UpdateForProvider)
			admin.POST("/providers/:providerId/deactivate", availabilityHandler.Deactivate)
			admin.POST("/bookings/purge", adminHandler.Purge)
		}
	}
}
