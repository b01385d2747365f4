package booking

import (
	"context"
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/activity"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/booking"
	"github.com/BruksfildServices01/barber-booking/internal/domain/calendar"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
)

// Archiver stores purged bookings before they are deleted.
type Archiver interface {
	Archive(ctx context.Context, cutoff calendar.DateKey, purgedAt time.Time, bookings []domain.Booking) (string, error)
}

type PurgeResult struct {
	Cutoff     calendar.DateKey `json:"cutoff"`
	Purged     int              `json:"purged"`
	ArchiveKey string           `json:"archive_key,omitempty"`
}

// PurgeBookings deletes cancelled and completed bookings dated before a
// cutoff. Running it twice finds nothing the second time.
type PurgeBookings struct {
	repo     domain.Repository
	archiver Archiver
	clock    timezone.Clock
	hook     activity.Hook
	metrics  Metrics
}

// NewPurgeBookings accepts a nil archiver, which skips archiving.
func NewPurgeBookings(
	repo domain.Repository,
	archiver Archiver,
	clock timezone.Clock,
	hook activity.Hook,
	metrics Metrics,
) *PurgeBookings {
	return &PurgeBookings{
		repo:     repo,
		archiver: archiver,
		clock:    clock,
		hook:     hook,
		metrics:  metrics,
	}
}

func (uc *PurgeBookings) Execute(ctx context.Context, cutoff string) (*PurgeResult, error) {
	day, err := parseDate(cutoff)
	if err != nil {
		return nil, err
	}

	now := uc.clock.Now()
	if calendar.DateKeyOf(now).Before(day) {
		return nil, httperr.Validation("invalid_cutoff")
	}

	res := &PurgeResult{Cutoff: day}

	var archive func([]domain.Booking) error
	if uc.archiver != nil {
		archive = func(bs []domain.Booking) error {
			key, err := uc.archiver.Archive(ctx, day, now, bs)
			res.ArchiveKey = key
			return err
		}
	}

	purged, err := uc.repo.PurgeBefore(ctx, day, archive)
	if err != nil {
		return nil, err
	}
	res.Purged = len(purged)
	uc.metrics.Purged(res.Purged)

	perProvider := map[string]int{}
	for _, b := range purged {
		perProvider[b.ProviderID]++
	}
	for providerID, n := range perProvider {
		uc.hook.Emit(activity.Record{
			ProviderID: providerID,
			Action:     activity.ActionPurged,
			Timestamp:  now,
			Metadata:   map[string]any{"cutoff": day.String(), "count": n},
		})
	}

	return res, nil
}
