package booking

import (
	"context"

	"github.com/BruksfildServices01/barber-booking/internal/domain/calendar"
)

// Overlapping returns the active bookings whose interval intersects iv,
// skipping excludeID.
func Overlapping(existing []Booking, iv calendar.Interval, excludeID string) []Booking {
	var out []Booking
	for _, b := range existing {
		if !b.Status.Active() || (excludeID != "" && b.ID == excludeID) {
			continue
		}
		if b.Interval().Overlaps(iv) {
			out = append(out, b)
		}
	}
	return out
}

// ConflictDetector answers whether a candidate interval is already taken.
type ConflictDetector struct {
	repo Repository
}

func NewConflictDetector(repo Repository) *ConflictDetector {
	return &ConflictDetector{repo: repo}
}

func (d *ConflictDetector) HasConflict(
	ctx context.Context,
	providerID string,
	date calendar.DateKey,
	start calendar.TimeOfDay,
	duration int,
	excludeID string,
) (bool, error) {

	existing, err := d.repo.ListActiveForDay(ctx, providerID, date)
	if err != nil {
		return false, err
	}
	return len(Overlapping(existing, calendar.NewInterval(start, duration), excludeID)) > 0, nil
}
