package booking

import (
	"context"

	"github.com/BruksfildServices01/barber-booking/internal/activity"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/booking"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
)

type CancelBookingInput struct {
	Actor     Actor
	BookingID string
}

// CancelBooking is the customer path: it applies the modification window.
// Cancelling twice is an invalid transition and emits nothing.
type CancelBooking struct {
	repo    domain.Repository
	clock   timezone.Clock
	hook    activity.Hook
	metrics Metrics
}

func NewCancelBooking(
	repo domain.Repository,
	clock timezone.Clock,
	hook activity.Hook,
	metrics Metrics,
) *CancelBooking {
	return &CancelBooking{
		repo:    repo,
		clock:   clock,
		hook:    hook,
		metrics: metrics,
	}
}

func (uc *CancelBooking) Execute(
	ctx context.Context,
	in CancelBookingInput,
) (*domain.Booking, error) {

	current, err := loadVisible(ctx, uc.repo, in.BookingID, in.Actor)
	if err != nil {
		return nil, err
	}

	now := uc.clock.Now()
	var out *domain.Booking

	err = commit(ctx, uc.repo, uc.metrics, current.ProviderID, func(tx domain.Repository) error {
		b, err := tx.GetByID(ctx, in.BookingID)
		if err != nil {
			return err
		}
		if err := domain.Cancel(b, now); err != nil {
			return err
		}
		if err := tx.Update(ctx, b); err != nil {
			return err
		}
		out = b
		return nil
	})
	if err != nil {
		return nil, err
	}

	emit(uc.hook, uc.metrics, out, activity.ActionCancelled, now, nil)
	return out, nil
}
