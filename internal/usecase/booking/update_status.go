package booking

import (
	"context"

	"github.com/BruksfildServices01/barber-booking/internal/activity"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/booking"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
)

type UpdateStatusInput struct {
	Actor     Actor
	BookingID string
	Status    string
	Notes     *string
}

// UpdateStatus is the provider/admin path through the lifecycle table. It
// applies no modification window.
type UpdateStatus struct {
	repo    domain.Repository
	clock   timezone.Clock
	hook    activity.Hook
	metrics Metrics
}

func NewUpdateStatus(
	repo domain.Repository,
	clock timezone.Clock,
	hook activity.Hook,
	metrics Metrics,
) *UpdateStatus {
	return &UpdateStatus{
		repo:    repo,
		clock:   clock,
		hook:    hook,
		metrics: metrics,
	}
}

func (uc *UpdateStatus) Execute(
	ctx context.Context,
	in UpdateStatusInput,
) (*domain.Booking, error) {

	to, err := domain.ParseStatus(in.Status)
	if err != nil {
		return nil, err
	}
	if in.Actor.Role == domain.RoleCustomer {
		return nil, httperr.InvalidTransition("invalid_transition")
	}

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
		if err := domain.Transition(b, to, now); err != nil {
			return err
		}
		if in.Notes != nil {
			b.Notes = *in.Notes
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

	emit(uc.hook, uc.metrics, out, actionFor(out.Status), now, nil)
	return out, nil
}
