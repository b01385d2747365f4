package booking

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/booking"
	"github.com/BruksfildServices01/barber-booking/internal/domain/calendar"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
)

type ListBookingsByDate struct {
	repo domain.Repository
}

func NewListBookingsByDate(repo domain.Repository) *ListBookingsByDate {
	return &ListBookingsByDate{repo: repo}
}

func (uc *ListBookingsByDate) Execute(
	ctx context.Context,
	providerID string,
	date string,
) ([]domain.Booking, error) {

	day, err := parseDate(date)
	if err != nil {
		return nil, err
	}
	return uc.repo.ListForProvider(ctx, providerID, day, day)
}

type ListBookingsByMonth struct {
	repo domain.Repository
}

func NewListBookingsByMonth(repo domain.Repository) *ListBookingsByMonth {
	return &ListBookingsByMonth{repo: repo}
}

func (uc *ListBookingsByMonth) Execute(
	ctx context.Context,
	providerID string,
	year int,
	month int,
) ([]domain.Booking, error) {

	if year < 1 || month < 1 || month > 12 {
		return nil, httperr.Validation("invalid_month")
	}

	first := calendar.DateKey{Year: year, Month: time.Month(month), Day: 1}
	last := calendar.DateKeyOf(first.Midnight(time.UTC).AddDate(0, 1, -1))

	return uc.repo.ListForProvider(ctx, providerID, first, last)
}

type ListCustomerBookings struct {
	repo domain.Repository
}

func NewListCustomerBookings(repo domain.Repository) *ListCustomerBookings {
	return &ListCustomerBookings{repo: repo}
}

func (uc *ListCustomerBookings) Execute(
	ctx context.Context,
	customerID string,
) ([]domain.Booking, error) {
	return uc.repo.ListForCustomer(ctx, customerID)
}
