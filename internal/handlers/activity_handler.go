package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/barber-booking/internal/activity"
	"github.com/BruksfildServices01/barber-booking/internal/domain/calendar"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/httpresp"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
)

// ======================================================
// HANDLER
// ======================================================

type ActivityHandler struct {
	recorder *activity.Recorder
	clock    timezone.Clock
	log      *zap.Logger
}

func NewActivityHandler(recorder *activity.Recorder, clock timezone.Clock, log *zap.Logger) *ActivityHandler {
	return &ActivityHandler{recorder: recorder, clock: clock, log: log}
}

// List is the provider inbox: ?action=&from=YYYY-MM-DD&to=YYYY-MM-DD&page=&limit=.
// Both dates are inclusive shop-local days.
func (h *ActivityHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	f := activity.Filter{
		ProviderID: providerScope(c),
		Action:     c.Query("action"),
		Page:       page,
		Limit:      limit,
	}

	loc := h.clock.Location()

	if raw := c.Query("from"); raw != "" {
		d, err := calendar.ParseDateKey(raw)
		if err != nil {
			httperr.BadRequest(c, "invalid_date", "Invalid from date.")
			return
		}
		from := d.Midnight(loc)
		f.From = &from
	}

	if raw := c.Query("to"); raw != "" {
		d, err := calendar.ParseDateKey(raw)
		if err != nil {
			httperr.BadRequest(c, "invalid_date", "Invalid to date.")
			return
		}
		to := d.AddDays(1).Midnight(loc)
		f.To = &to
	}

	// --------------------------------------------------
	// Listing
	// --------------------------------------------------

	res, err := h.recorder.List(c.Request.Context(), f)
	if err != nil {
		httperr.Respond(c, h.log, err, "activity_list_failed")
		return
	}

	httpresp.OK(c, res)
}

