package booking

import (
	"context"

	"github.com/BruksfildServices01/barber-booking/internal/domain/calendar"
)

type Repository interface {
	// -------- Read --------
	GetByID(ctx context.Context, id string) (*Booking, error)

	// ListActiveForDay returns non-cancelled bookings ordered by start.
	ListActiveForDay(
		ctx context.Context,
		providerID string,
		date calendar.DateKey,
	) ([]Booking, error)

	ListForProvider(
		ctx context.Context,
		providerID string,
		from calendar.DateKey,
		to calendar.DateKey,
	) ([]Booking, error)

	ListForCustomer(ctx context.Context, customerID string) ([]Booking, error)

	// -------- Write --------
	Create(ctx context.Context, b *Booking) error
	Update(ctx context.Context, b *Booking) error

	// PurgeBefore deletes terminal bookings dated before cutoff and returns
	// them. A non-nil archive runs before the delete; its error aborts the
	// purge.
	PurgeBefore(
		ctx context.Context,
		cutoff calendar.DateKey,
		archive func([]Booking) error,
	) ([]Booking, error)

	// Atomic runs fn in one transaction serialized per provider. The
	// repository handed to fn is bound to that transaction.
	Atomic(ctx context.Context, providerID string, fn func(Repository) error) error
}
