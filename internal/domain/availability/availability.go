package availability

import (
	"context"
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/domain/calendar"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
)

// WorkingHours are whole-hour bounds, Start < End.
type WorkingHours struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

func (w WorkingHours) Interval() calendar.Interval {
	return calendar.Interval{
		Start: calendar.TimeOfDay(w.Start * 60),
		End:   calendar.TimeOfDay(w.End * 60),
	}
}

// OffHours blocks a range. With Date set it applies to that date only, with
// Weekday set it recurs weekly, with neither it recurs daily.
type OffHours struct {
	Start   calendar.TimeOfDay `json:"start"`
	End     calendar.TimeOfDay `json:"end"`
	Date    *calendar.DateKey  `json:"date,omitempty"`
	Weekday *time.Weekday      `json:"weekday,omitempty"`
}

func (o OffHours) Interval() calendar.Interval {
	return calendar.Interval{Start: o.Start, End: o.End}
}

func (o OffHours) AppliesTo(date calendar.DateKey) bool {
	if o.Date != nil {
		return *o.Date == date
	}
	if o.Weekday != nil {
		return *o.Weekday == date.Weekday()
	}
	return true
}

type Availability struct {
	ProviderID   string             `json:"provider_id"`
	WorkingHours WorkingHours       `json:"working_hours"`
	LunchBreak   *calendar.Interval `json:"lunch_break,omitempty"`
	OffDays      []time.Weekday     `json:"off_days"`
	OffHours     []OffHours         `json:"off_hours"`
	IsAvailable  bool               `json:"is_available"`
	Version      int64              `json:"version"`
	UpdatedAt    time.Time          `json:"updated_at"`
}

// Default is the record provisioned for a new provider account.
func Default(providerID string) Availability {
	return Availability{
		ProviderID:   providerID,
		WorkingHours: WorkingHours{Start: 10, End: 21},
		LunchBreak: &calendar.Interval{
			Start: calendar.TimeOfDay(14 * 60),
			End:   calendar.TimeOfDay(15 * 60),
		},
		OffDays:     []time.Weekday{},
		OffHours:    []OffHours{},
		IsAvailable: true,
	}
}

// Validate enforces the write-time invariants.
func (a Availability) Validate() error {
	if a.ProviderID == "" {
		return httperr.Validation("missing_provider_id")
	}

	wh := a.WorkingHours
	if wh.Start < 0 || wh.End > 24 || wh.Start >= wh.End {
		return httperr.Validation("invalid_working_hours")
	}

	if a.LunchBreak != nil {
		lb := *a.LunchBreak
		if lb.Start >= lb.End || !lb.Within(wh.Interval()) {
			return httperr.Validation("invalid_lunch_break")
		}
	}

	for _, d := range a.OffDays {
		if d < time.Sunday || d > time.Saturday {
			return httperr.Validation("invalid_off_day")
		}
	}

	for _, o := range a.OffHours {
		if !o.Start.Valid() || !o.End.Valid() || o.Start >= o.End {
			return httperr.Validation("invalid_off_hours")
		}
		if o.Date != nil && o.Weekday != nil {
			return httperr.Validation("invalid_off_hours")
		}
		if o.Weekday != nil && (*o.Weekday < time.Sunday || *o.Weekday > time.Saturday) {
			return httperr.Validation("invalid_off_hours")
		}
	}

	return nil
}

func (a Availability) IsOffDay(date calendar.DateKey) bool {
	wd := date.Weekday()
	for _, d := range a.OffDays {
		if d == wd {
			return true
		}
	}
	return false
}

// OpenOn reports whether the provider takes bookings at all on date.
func (a Availability) OpenOn(date calendar.DateKey) bool {
	return a.IsAvailable && !a.IsOffDay(date)
}

// Blocked returns lunch plus every off-hours range matching date.
func (a Availability) Blocked(date calendar.DateKey) []calendar.Interval {
	var out []calendar.Interval
	if a.LunchBreak != nil {
		out = append(out, *a.LunchBreak)
	}
	for _, o := range a.OffHours {
		if o.AppliesTo(date) {
			out = append(out, o.Interval())
		}
	}
	return out
}

// Admits reports whether iv on date fits the provider calendar: open day,
// inside working hours, clear of lunch and off hours.
func (a Availability) Admits(date calendar.DateKey, iv calendar.Interval) bool {
	if !a.OpenOn(date) {
		return false
	}
	if !iv.Within(a.WorkingHours.Interval()) {
		return false
	}
	for _, b := range a.Blocked(date) {
		if iv.Overlaps(b) {
			return false
		}
	}
	return true
}

type Repository interface {
	Get(ctx context.Context, providerID string) (*Availability, error)

	// Save persists a validated record. expectedVersion < 0 skips the
	// optimistic check; otherwise a mismatch returns a conflict.
	Save(ctx context.Context, a *Availability, expectedVersion int64) error

	// Create inserts a record only if none exists and reports whether it did.
	Create(ctx context.Context, a *Availability) (bool, error)
}

// Reader is the read side used by slot generation; it may be served from a
// cache and return a slightly stale snapshot.
type Reader interface {
	Get(ctx context.Context, providerID string) (*Availability, error)
}
