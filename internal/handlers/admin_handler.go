package handlers

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/httpresp"
	ucBooking "github.com/BruksfildServices01/barber-booking/internal/usecase/booking"
)

type AdminHandler struct {
	purge *ucBooking.PurgeBookings
	log   *zap.Logger
}

func NewAdminHandler(purge *ucBooking.PurgeBookings, log *zap.Logger) *AdminHandler {
	return &AdminHandler{purge: purge, log: log}
}

type PurgeRequest struct {
	Before string `json:"before" binding:"required"`
}

// Purge deletes cancelled and completed bookings dated before the cutoff.
func (h *AdminHandler) Purge(c *gin.Context) {
	var req PurgeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Field before (YYYY-MM-DD) is required.")
		return
	}

	res, err := h.purge.Execute(c.Request.Context(), req.Before)
	if err != nil {
		httperr.Respond(c, h.log, err, "purge_failed")
		return
	}

	httpresp.OK(c, res)
}
