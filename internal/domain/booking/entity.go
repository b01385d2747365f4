package booking

import (
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/domain/calendar"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
)

const (
	// ModificationWindow is how long before the start customers lose the
	// right to reschedule or cancel.
	ModificationWindow = time.Hour

	// LeadTime is the minimum distance between now and a new start.
	LeadTime = 30 * time.Minute
)

type Booking struct {
	ID            string             `json:"id"`
	ProviderID    string             `json:"provider_id"`
	CustomerID    string             `json:"customer_id"`
	CustomerName  string             `json:"customer_name"`
	CustomerPhone string             `json:"customer_phone"`
	Date          calendar.DateKey   `json:"date"`
	StartTime     calendar.TimeOfDay `json:"start_time"`
	EndTime       calendar.TimeOfDay `json:"end_time"`
	Services      []string           `json:"services"`
	TotalDuration int                `json:"total_duration"`
	Status        Status             `json:"status"`
	Notes         string             `json:"notes,omitempty"`
	UserModified  bool               `json:"user_modified"`
	CancelledAt   *time.Time         `json:"cancelled_at,omitempty"`
	CompletedAt   *time.Time         `json:"completed_at,omitempty"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`
}

func (b *Booking) Interval() calendar.Interval {
	return calendar.Interval{Start: b.StartTime, End: b.EndTime}
}

func (b *Booking) StartsAt(loc *time.Location) time.Time {
	return b.Date.At(b.StartTime, loc)
}

// ===============================
// Domain Actions
// ===============================

// Transition moves b along the lifecycle table and stamps the terminal
// timestamps.
func Transition(b *Booking, to Status, now time.Time) error {
	if err := CanTransition(b.Status, to); err != nil {
		return err
	}

	b.Status = to
	switch to {
	case StatusCancelled:
		b.CancelledAt = &now
	case StatusCompleted:
		b.CompletedAt = &now
	}
	return nil
}

// AssertModifiable applies the customer window: now must be strictly more
// than ModificationWindow before the current start.
func AssertModifiable(b *Booking, now time.Time) error {
	if b.Status.Terminal() {
		return httperr.InvalidTransition("invalid_transition")
	}
	start := b.StartsAt(now.Location())
	if !now.Add(ModificationWindow).Before(start) {
		return httperr.WindowClosed("modification_window_closed")
	}
	return nil
}

func Cancel(b *Booking, now time.Time) error {
	if err := AssertModifiable(b, now); err != nil {
		return err
	}
	return Transition(b, StatusCancelled, now)
}

// Reschedule moves b keeping its duration and status.
func Reschedule(b *Booking, date calendar.DateKey, start calendar.TimeOfDay, now time.Time) error {
	if err := AssertModifiable(b, now); err != nil {
		return err
	}

	b.Date = date
	b.StartTime = start
	b.EndTime = start.Add(b.TotalDuration)
	b.UserModified = true
	return nil
}
