package slot

import (
	"sort"
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/domain/availability"
	"github.com/BruksfildServices01/barber-booking/internal/domain/booking"
	"github.com/BruksfildServices01/barber-booking/internal/domain/calendar"
)

const (
	gridStep = 30

	// Single short services start on the half hour, everything else on
	// the hour. Bookings ending on a quarter to the hour also reopen their
	// end time as a start. Both rules are business patches kept as-is.
	halfHourMinute = 30
	recoveryMinute = 45
)

type Request struct {
	Availability *availability.Availability
	Date         calendar.DateKey
	Duration     int
	// SingleShort selects the half-hour-only grid.
	SingleShort bool
	// Booked are the provider's bookings on Date; cancelled ones are ignored.
	Booked []booking.Booking
	// Now is the current instant in the shop location.
	Now time.Time
}

// Generate returns the ordered candidate start times for req.
func Generate(req Request) []calendar.TimeOfDay {
	a := req.Availability
	if a == nil || req.Duration <= 0 || !a.OpenOn(req.Date) {
		return []calendar.TimeOfDay{}
	}
	if req.Date.Before(calendar.DateKeyOf(req.Now)) {
		return []calendar.TimeOfDay{}
	}

	wantMinute := 0
	if req.SingleShort {
		wantMinute = halfHourMinute
	}

	work := a.WorkingHours.Interval()
	seen := make(map[calendar.TimeOfDay]bool)
	out := []calendar.TimeOfDay{}

	for cur := work.Start; cur < work.End; cur = cur.Add(gridStep) {
		if cur.Minute() != wantMinute {
			continue
		}
		if accept(req, cur) {
			seen[cur] = true
			out = append(out, cur)
		}
	}

	for _, b := range req.Booked {
		end := b.EndTime
		if !b.Status.Active() || end.Minute() != recoveryMinute || seen[end] {
			continue
		}
		if accept(req, end) {
			seen[end] = true
			out = append(out, end)
		}
	}

	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func accept(req Request, start calendar.TimeOfDay) bool {
	iv := calendar.NewInterval(start, req.Duration)

	// working hours, lunch, off hours
	if !req.Availability.Admits(req.Date, iv) {
		return false
	}

	if calendar.DateKeyOf(req.Now) == req.Date {
		floor := req.Now.Add(booking.LeadTime)
		if req.Date.At(start, req.Now.Location()).Before(floor) {
			return false
		}
	}

	return len(booking.Overlapping(req.Booked, iv, "")) == 0
}
