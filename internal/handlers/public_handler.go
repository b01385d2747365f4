package handlers

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/barber-booking/internal/domain/catalog"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/httpresp"
	ucBooking "github.com/BruksfildServices01/barber-booking/internal/usecase/booking"
)

////////////////////////////////////////////////////////
// HANDLER
////////////////////////////////////////////////////////

// PublicHandler serves the unauthenticated booking page endpoints.
type PublicHandler struct {
	catalog *catalog.Catalog
	slots   *ucBooking.GetSlots
	log     *zap.Logger
}

func NewPublicHandler(
	services *catalog.Catalog,
	slots *ucBooking.GetSlots,
	log *zap.Logger,
) *PublicHandler {
	return &PublicHandler{
		catalog: services,
		slots:   slots,
		log:     log,
	}
}

////////////////////////////////////////////////////////
// SERVICES
////////////////////////////////////////////////////////

func (h *PublicHandler) ListServices(c *gin.Context) {
	httpresp.List(c, h.catalog.List())
}

////////////////////////////////////////////////////////
// SLOTS
////////////////////////////////////////////////////////

func (h *PublicHandler) Slots(c *gin.Context) {
	date := c.Query("date")
	services := splitServices(c.Query("services"))

	if len(services) == 0 {
		httperr.BadRequest(c, "missing_params", "Query parameter services is required.")
		return
	}

	res, err := h.slots.Execute(c.Request.Context(), ucBooking.GetSlotsInput{
		ProviderID: c.Param("providerId"),
		Date:       date,
		Services:   services,
	})
	if err != nil {
		httperr.Respond(c, h.log, err, "availability_failed")
		return
	}

	httpresp.OK(c, res)
}
