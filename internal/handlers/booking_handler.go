package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/booking"
	"github.com/BruksfildServices01/barber-booking/internal/dto"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/httpresp"
	ucBooking "github.com/BruksfildServices01/barber-booking/internal/usecase/booking"
)

// ======================================================
// HANDLER
// ======================================================

type BookingHandler struct {
	create         *ucBooking.CreateBooking
	updateStatus   *ucBooking.UpdateStatus
	reschedule     *ucBooking.Reschedule
	cancel         *ucBooking.CancelBooking
	listByDate     *ucBooking.ListBookingsByDate
	listByMonth    *ucBooking.ListBookingsByMonth
	listByCustomer *ucBooking.ListCustomerBookings
	log            *zap.Logger
}

func NewBookingHandler(
	create *ucBooking.CreateBooking,
	updateStatus *ucBooking.UpdateStatus,
	reschedule *ucBooking.Reschedule,
	cancel *ucBooking.CancelBooking,
	listByDate *ucBooking.ListBookingsByDate,
	listByMonth *ucBooking.ListBookingsByMonth,
	listByCustomer *ucBooking.ListCustomerBookings,
	log *zap.Logger,
) *BookingHandler {
	return &BookingHandler{
		create:         create,
		updateStatus:   updateStatus,
		reschedule:     reschedule,
		cancel:         cancel,
		listByDate:     listByDate,
		listByMonth:    listByMonth,
		listByCustomer: listByCustomer,
		log:            log,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateBookingRequest struct {
	ProviderID    string   `json:"provider_id"`
	CustomerID    string   `json:"customer_id"`
	CustomerName  string   `json:"customer_name" binding:"max=120"`
	CustomerPhone string   `json:"customer_phone" binding:"max=40"`
	Date          string   `json:"date"`
	Time          string   `json:"time"`
	Services      []string `json:"services"`
	Notes         string   `json:"notes" binding:"max=500"`
	Status        string   `json:"status"`
}

type UpdateStatusRequest struct {
	Status string  `json:"status" binding:"required"`
	Notes  *string `json:"notes"`
}

type RescheduleRequest struct {
	Date string `json:"date" binding:"required"`
	Time string `json:"time" binding:"required"`
}

// ======================================================
// CREATE
// ======================================================

// Create serves both the customer and the provider route; the actor decides
// which side of the booking is forced to the caller.
func (h *BookingHandler) Create(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	res, err := h.create.Execute(c.Request.Context(), ucBooking.CreateBookingInput{
		Actor:         actorFrom(c),
		ProviderID:    req.ProviderID,
		CustomerID:    req.CustomerID,
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		Date:          req.Date,
		Time:          req.Time,
		Services:      req.Services,
		Notes:         req.Notes,
		Status:        domain.Status(req.Status),
	})
	if err != nil {
		httperr.Respond(c, h.log, err, "failed_to_create_booking")
		return
	}

	if res.Contact != nil {
		httpresp.OK(c, gin.H{"contact": res.Contact})
		return
	}

	httpresp.Created(c, res.Booking)
}

// ======================================================
// LIST
// ======================================================

func (h *BookingHandler) ListByDate(c *gin.Context) {
	providerID := providerScope(c)

	date := c.Query("date")
	if date == "" {
		httperr.BadRequest(c, "missing_date", "Query parameter date is required.")
		return
	}

	bookings, err := h.listByDate.Execute(c.Request.Context(), providerID, date)
	if err != nil {
		httperr.Respond(c, h.log, err, "failed_to_list_bookings")
		return
	}

	httpresp.List(c, dto.ToBookingList(bookings))
}

func (h *BookingHandler) ListByMonth(c *gin.Context) {
	providerID := providerScope(c)

	yearStr := c.Query("year")
	monthStr := c.Query("month")
	if yearStr == "" || monthStr == "" {
		httperr.BadRequest(c, "missing_year_or_month", "Query parameters year and month are required.")
		return
	}

	year, err := strconv.Atoi(yearStr)
	if err != nil || year < 2000 || year > 2100 {
		httperr.BadRequest(c, "invalid_year", "Invalid year.")
		return
	}
	month, err := strconv.Atoi(monthStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_month", "Invalid month.")
		return
	}

	bookings, err := h.listByMonth.Execute(c.Request.Context(), providerID, year, month)
	if err != nil {
		httperr.Respond(c, h.log, err, "failed_to_list_bookings")
		return
	}

	httpresp.OK(c, gin.H{
		"year":     year,
		"month":    month,
		"bookings": dto.ToBookingList(bookings),
	})
}

func (h *BookingHandler) ListMine(c *gin.Context) {
	bookings, err := h.listByCustomer.Execute(c.Request.Context(), actorFrom(c).ID)
	if err != nil {
		httperr.Respond(c, h.log, err, "failed_to_list_bookings")
		return
	}

	httpresp.List(c, bookings)
}

// ======================================================
// STATUS
// ======================================================

func (h *BookingHandler) UpdateStatus(c *gin.Context) {
	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	b, err := h.updateStatus.Execute(c.Request.Context(), ucBooking.UpdateStatusInput{
		Actor:     actorFrom(c),
		BookingID: c.Param("id"),
		Status:    req.Status,
		Notes:     req.Notes,
	})
	if err != nil {
		httperr.Respond(c, h.log, err, "failed_to_update_booking")
		return
	}

	httpresp.OK(c, b)
}

// ======================================================
// RESCHEDULE / CANCEL
// ======================================================

func (h *BookingHandler) Reschedule(c *gin.Context) {
	var req RescheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	b, err := h.reschedule.Execute(c.Request.Context(), ucBooking.RescheduleInput{
		Actor:     actorFrom(c),
		BookingID: c.Param("id"),
		Date:      req.Date,
		Time:      req.Time,
	})
	if err != nil {
		httperr.Respond(c, h.log, err, "failed_to_reschedule_booking")
		return
	}

	httpresp.OK(c, b)
}

func (h *BookingHandler) Cancel(c *gin.Context) {
	b, err := h.cancel.Execute(c.Request.Context(), ucBooking.CancelBookingInput{
		Actor:     actorFrom(c),
		BookingID: c.Param("id"),
	})
	if err != nil {
		httperr.Respond(c, h.log, err, "failed_to_cancel_booking")
		return
	}

	httpresp.OK(c, b)
}
