package slot

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/BruksfildServices01/barber-booking/internal/domain/availability"
	"github.com/BruksfildServices01/barber-booking/internal/domain/booking"
	"github.com/BruksfildServices01/barber-booking/internal/domain/calendar"
)

var (
	day       = calendar.MustDateKey("2026-10-20") // Tuesday
	yesterday = time.Date(2026, 10, 19, 8, 0, 0, 0, time.UTC)
)

func tod(s string) calendar.TimeOfDay { return calendar.MustTimeOfDay(s) }

func provider() *availability.Availability {
	a := availability.Default("p1")
	return &a
}

func times(ts ...string) []calendar.TimeOfDay {
	out := make([]calendar.TimeOfDay, len(ts))
	for i, s := range ts {
		out[i] = tod(s)
	}
	return out
}

func TestGenerate_ScenarioWithQuarterRecovery(t *testing.T) {
	booked := []booking.Booking{
		{ID: "x", StartTime: tod("11:00"), EndTime: tod("11:45"), Status: booking.StatusConfirmed},
	}

	got := Generate(Request{
		Availability: provider(),
		Date:         day,
		Duration:     60,
		Booked:       booked,
		Now:          yesterday,
	})

	assert.Equal(t, times("10:00", "11:45", "12:00", "13:00", "15:00", "16:00", "17:00", "18:00", "19:00", "20:00"), got)
	assert.NotContains(t, got, tod("11:00"))
	assert.NotContains(t, got, tod("14:00"))
}

func TestGenerate_UnavailableOrOffDayIsEmpty(t *testing.T) {
	a := provider()
	a.IsAvailable = false
	assert.Empty(t, Generate(Request{Availability: a, Date: day, Duration: 30, Now: yesterday}))

	a = provider()
	a.OffDays = []time.Weekday{time.Tuesday}
	got := Generate(Request{Availability: a, Date: day, Duration: 30, Now: yesterday})
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestGenerate_SingleShortServiceUsesHalfHours(t *testing.T) {
	a := provider()
	a.WorkingHours = availability.WorkingHours{Start: 10, End: 13}
	a.LunchBreak = nil

	got := Generate(Request{Availability: a, Date: day, Duration: 15, SingleShort: true, Now: yesterday})
	assert.Equal(t, times("10:30", "11:30", "12:30"), got)
}

func TestGenerate_RespectsWorkingHoursEnd(t *testing.T) {
	a := provider()
	got := Generate(Request{Availability: a, Date: day, Duration: 90, Now: yesterday})

	assert.Contains(t, got, tod("19:00"))
	assert.NotContains(t, got, tod("20:00"))
	assert.NotContains(t, got, tod("13:00"))
}

func TestGenerate_OffHoursDailyAndDated(t *testing.T) {
	a := provider()
	other := day.AddDays(1)
	a.OffHours = []availability.OffHours{
		{Start: tod("16:00"), End: tod("18:00")},
		{Start: tod("10:00"), End: tod("12:00"), Date: &day},
		{Start: tod("19:00"), End: tod("21:00"), Date: &other},
	}

	got := Generate(Request{Availability: a, Date: day, Duration: 60, Now: yesterday})
	assert.Equal(t, times("12:00", "13:00", "15:00", "18:00", "19:00", "20:00"), got)
}

func TestGenerate_LeadTimeOnToday(t *testing.T) {
	now := time.Date(2026, 10, 20, 12, 30, 0, 0, time.UTC)
	got := Generate(Request{Availability: provider(), Date: day, Duration: 60, Now: now})
	assert.Equal(t, times("13:00", "15:00", "16:00", "17:00", "18:00", "19:00", "20:00"), got)

	now = time.Date(2026, 10, 20, 12, 31, 0, 0, time.UTC)
	got = Generate(Request{Availability: provider(), Date: day, Duration: 60, Now: now})
	assert.NotContains(t, got, tod("13:00"))
}

func TestGenerate_PastDateIsEmpty(t *testing.T) {
	now := time.Date(2026, 10, 21, 8, 0, 0, 0, time.UTC)
	assert.Empty(t, Generate(Request{Availability: provider(), Date: day, Duration: 60, Now: now}))
}

func TestGenerate_CancelledBookingsFreeSlots(t *testing.T) {
	booked := []booking.Booking{
		{ID: "x", StartTime: tod("10:00"), EndTime: tod("10:45"), Status: booking.StatusCancelled},
	}
	got := Generate(Request{Availability: provider(), Date: day, Duration: 60, Booked: booked, Now: yesterday})
	assert.Contains(t, got, tod("10:00"))
	assert.NotContains(t, got, tod("10:45"))
}

func TestGenerate_SlotsNeverIntersectBlockedRanges(t *testing.T) {
	a := provider()
	a.OffHours = []availability.OffHours{{Start: tod("17:15"), End: tod("17:45")}}

	for _, d := range []int{15, 30, 45, 60, 90, 120} {
		for _, s := range Generate(Request{Availability: a, Date: day, Duration: d, Now: yesterday}) {
			iv := calendar.NewInterval(s, d)
			assert.True(t, iv.End <= a.WorkingHours.Interval().End)
			for _, b := range a.Blocked(day) {
				assert.False(t, iv.Overlaps(b), "%s overlaps %s", iv, b)
			}
		}
	}
}
