package booking

import (
	"context"

	"github.com/BruksfildServices01/barber-booking/internal/activity"
	"github.com/BruksfildServices01/barber-booking/internal/domain/availability"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/booking"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
)

type RescheduleInput struct {
	Actor     Actor
	BookingID string
	Date      string
	Time      string
}

type Reschedule struct {
	repo         domain.Repository
	availability availability.Reader
	clock        timezone.Clock
	hook         activity.Hook
	metrics      Metrics
}

func NewReschedule(
	repo domain.Repository,
	avail availability.Reader,
	clock timezone.Clock,
	hook activity.Hook,
	metrics Metrics,
) *Reschedule {
	return &Reschedule{
		repo:         repo,
		availability: avail,
		clock:        clock,
		hook:         hook,
		metrics:      metrics,
	}
}

// Execute moves a booking keeping its status and duration. The window is
// measured against the current start, the conflict check excludes the
// booking itself.
func (uc *Reschedule) Execute(
	ctx context.Context,
	in RescheduleInput,
) (*domain.Booking, error) {

	date, err := parseDate(in.Date)
	if err != nil {
		return nil, err
	}
	start, err := parseTime(in.Time)
	if err != nil {
		return nil, err
	}

	current, err := loadVisible(ctx, uc.repo, in.BookingID, in.Actor)
	if err != nil {
		return nil, err
	}

	now := uc.clock.Now()
	if err := domain.AssertModifiable(current, now); err != nil {
		return nil, err
	}
	if date.At(start, uc.clock.Location()).Before(now.Add(domain.LeadTime)) {
		return nil, httperr.Validation("too_soon")
	}

	avail, err := uc.availability.Get(ctx, current.ProviderID)
	if err != nil {
		return nil, err
	}

	from := map[string]string{
		"from_date": current.Date.String(),
		"from_time": current.StartTime.String(),
	}
	var out *domain.Booking

	err = commit(ctx, uc.repo, uc.metrics, current.ProviderID, func(tx domain.Repository) error {
		b, err := tx.GetByID(ctx, in.BookingID)
		if err != nil {
			return err
		}
		if err := domain.Reschedule(b, date, start, now); err != nil {
			return err
		}
		if !avail.Admits(b.Date, b.Interval()) {
			return httperr.Validation("outside_working_hours")
		}
		if err := assertFree(ctx, tx, b.ProviderID, b.Date, b.StartTime, b.TotalDuration, b.ID); err != nil {
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

	from["to_date"] = out.Date.String()
	from["to_time"] = out.StartTime.String()
	emit(uc.hook, uc.metrics, out, activity.ActionRescheduled, now, from)

	return out, nil
}
