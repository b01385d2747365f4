package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/barber-booking/internal/domain/availability"
	"github.com/BruksfildServices01/barber-booking/internal/domain/calendar"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	ucAvailability "github.com/BruksfildServices01/barber-booking/internal/usecase/availability"
)

// AvailabilityHandler serves provider calendars. Public reads go through
// the cache, owner reads hit the store so the ETag is current.
type AvailabilityHandler struct {
	get        *ucAvailability.GetAvailability
	publicGet  *ucAvailability.GetAvailability
	update     *ucAvailability.UpdateAvailability
	provision  *ucAvailability.ProvisionAvailability
	deactivate *ucAvailability.DeactivateProvider
	log        *zap.Logger
}

func NewAvailabilityHandler(
	get *ucAvailability.GetAvailability,
	publicGet *ucAvailability.GetAvailability,
	update *ucAvailability.UpdateAvailability,
	provision *ucAvailability.ProvisionAvailability,
	deactivate *ucAvailability.DeactivateProvider,
	log *zap.Logger,
) *AvailabilityHandler {
	return &AvailabilityHandler{
		get:        get,
		publicGet:  publicGet,
		update:     update,
		provision:  provision,
		deactivate: deactivate,
		log:        log,
	}
}

type AvailabilityUpdateRequest struct {
	WorkingHours availability.WorkingHours `json:"working_hours"`
	LunchBreak   *calendar.Interval        `json:"lunch_break"`
	OffDays      []time.Weekday            `json:"off_days"`
	OffHours     []availability.OffHours   `json:"off_hours"`
	IsAvailable  *bool                     `json:"is_available"`
}

func (h *AvailabilityHandler) respond(c *gin.Context, status int, a *availability.Availability) {
	c.Header("ETag", etag(a.Version))
	c.JSON(status, a)
}

// GetMine returns the caller's calendar (or ?provider_id= for admins).
func (h *AvailabilityHandler) GetMine(c *gin.Context) {
	h.getFor(c, h.get, providerScope(c))
}

func (h *AvailabilityHandler) GetForProvider(c *gin.Context) {
	h.getFor(c, h.publicGet, c.Param("providerId"))
}

func (h *AvailabilityHandler) getFor(c *gin.Context, uc *ucAvailability.GetAvailability, providerID string) {
	a, err := uc.Execute(c.Request.Context(), providerID)
	if err != nil {
		httperr.Respond(c, h.log, err, "failed_to_get_availability")
		return
	}
	h.respond(c, http.StatusOK, a)
}

func (h *AvailabilityHandler) UpdateMine(c *gin.Context) {
	h.updateFor(c, providerScope(c))
}

func (h *AvailabilityHandler) UpdateForProvider(c *gin.Context) {
	h.updateFor(c, c.Param("providerId"))
}

func (h *AvailabilityHandler) updateFor(c *gin.Context, providerID string) {
	version, ok := expectedVersion(c)
	if !ok {
		httperr.BadRequest(c, "invalid_if_match", "If-Match must carry an availability version.")
		return
	}

	var req AvailabilityUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	a, err := h.update.Execute(c.Request.Context(), ucAvailability.UpdateAvailabilityInput{
		ProviderID:      providerID,
		ExpectedVersion: version,
		WorkingHours:    req.WorkingHours,
		LunchBreak:      req.LunchBreak,
		OffDays:         req.OffDays,
		OffHours:        req.OffHours,
		IsAvailable:     req.IsAvailable,
	})
	if err != nil {
		httperr.Respond(c, h.log, err, "failed_to_update_availability")
		return
	}

	h.respond(c, http.StatusOK, a)
}

// ======================================================
// ADMIN
// ======================================================

func (h *AvailabilityHandler) Provision(c *gin.Context) {
	a, created, err := h.provision.Execute(c.Request.Context(), c.Param("providerId"))
	if err != nil {
		httperr.Respond(c, h.log, err, "failed_to_provision_provider")
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	h.respond(c, status, a)
}

func (h *AvailabilityHandler) Deactivate(c *gin.Context) {
	a, err := h.deactivate.Execute(c.Request.Context(), c.Param("providerId"))
	if err != nil {
		httperr.Respond(c, h.log, err, "failed_to_deactivate_provider")
		return
	}

	h.respond(c, http.StatusOK, a)
}
