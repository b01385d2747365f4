package booking

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/barber-booking/internal/activity"
	"github.com/BruksfildServices01/barber-booking/internal/domain/availability"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/booking"
	"github.com/BruksfildServices01/barber-booking/internal/domain/calendar"
	"github.com/BruksfildServices01/barber-booking/internal/domain/catalog"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
	"github.com/BruksfildServices01/barber-booking/internal/validators"
)

// ======================================================
// INPUT / OUTPUT
// ======================================================

type CreateBookingInput struct {
	Actor Actor

	ProviderID    string
	CustomerID    string
	CustomerName  string
	CustomerPhone string

	Date     string
	Time     string
	Services []string
	Notes    string

	// Status is honoured only for providers and admins.
	Status domain.Status
}

// CreateBookingResult carries either the booking or, for phone-only
// services, the contact instruction.
type CreateBookingResult struct {
	Booking *domain.Booking     `json:"booking,omitempty"`
	Contact *ContactInstruction `json:"contact,omitempty"`
}

// ======================================================
// USE CASE
// ======================================================

type CreateBooking struct {
	repo         domain.Repository
	availability availability.Reader
	catalog      *catalog.Catalog
	clock        timezone.Clock
	hook         activity.Hook
	metrics      Metrics
	contactPhone string
}

func NewCreateBooking(
	repo domain.Repository,
	avail availability.Reader,
	services *catalog.Catalog,
	clock timezone.Clock,
	hook activity.Hook,
	metrics Metrics,
	contactPhone string,
) *CreateBooking {
	return &CreateBooking{
		repo:         repo,
		availability: avail,
		catalog:      services,
		clock:        clock,
		hook:         hook,
		metrics:      metrics,
		contactPhone: contactPhone,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateBooking) Execute(
	ctx context.Context,
	in CreateBookingInput,
) (*CreateBookingResult, error) {

	// --------------------------------------------------
	// Caller and initial status
	// --------------------------------------------------
	if in.Actor.Role == domain.RoleCustomer {
		in.CustomerID = in.Actor.ID
	}
	if in.Actor.Role == domain.RoleProvider {
		in.ProviderID = in.Actor.ID
	}
	in.ProviderID = strings.TrimSpace(in.ProviderID)
	if in.ProviderID == "" {
		return nil, httperr.Validation("missing_provider_id")
	}
	if strings.TrimSpace(in.CustomerID) == "" {
		return nil, httperr.Validation("missing_customer_id")
	}
	if in.CustomerPhone != "" && !validators.IsPhoneValid(in.CustomerPhone) {
		return nil, httperr.Validation("invalid_phone")
	}

	status, err := domain.InitialStatus(in.Actor.Role, in.Status)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// Services
	// --------------------------------------------------
	sel, err := uc.catalog.Resolve(in.Services)
	if err != nil {
		return nil, err
	}
	if sel.PhoneOnly() {
		return &CreateBookingResult{Contact: contactFor(uc.contactPhone)}, nil
	}
	duration := sel.TotalDuration()

	// --------------------------------------------------
	// Date / time in the shop location
	// --------------------------------------------------
	date, err := parseDate(in.Date)
	if err != nil {
		return nil, err
	}
	start, err := parseTime(in.Time)
	if err != nil {
		return nil, err
	}

	now := uc.clock.Now()
	if date.At(start, uc.clock.Location()).Before(now.Add(domain.LeadTime)) {
		return nil, httperr.Validation("too_soon")
	}

	// --------------------------------------------------
	// Provider calendar
	// --------------------------------------------------
	avail, err := uc.availability.Get(ctx, in.ProviderID)
	if err != nil {
		return nil, err
	}
	if !avail.OpenOn(date) {
		return nil, httperr.Validation("provider_unavailable")
	}
	if !avail.Admits(date, calendar.NewInterval(start, duration)) {
		return nil, httperr.Validation("outside_working_hours")
	}

	// --------------------------------------------------
	// Authoritative conflict check + insert
	// --------------------------------------------------
	b := &domain.Booking{
		ID:            uuid.NewString(),
		ProviderID:    in.ProviderID,
		CustomerID:    in.CustomerID,
		CustomerName:  strings.TrimSpace(in.CustomerName),
		CustomerPhone: strings.TrimSpace(in.CustomerPhone),
		Date:          date,
		StartTime:     start,
		EndTime:       start.Add(duration),
		Services:      sel.Names(),
		TotalDuration: duration,
		Status:        status,
		Notes:         in.Notes,
	}

	err = commit(ctx, uc.repo, uc.metrics, b.ProviderID, func(tx domain.Repository) error {
		if err := assertFree(ctx, tx, b.ProviderID, b.Date, b.StartTime, b.TotalDuration, ""); err != nil {
			return err
		}
		return tx.Create(ctx, b)
	})
	if err != nil {
		return nil, err
	}

	emit(uc.hook, uc.metrics, b, activity.ActionCreated, now, map[string]string{
		"status": string(b.Status),
	})

	return &CreateBookingResult{Booking: b}, nil
}
