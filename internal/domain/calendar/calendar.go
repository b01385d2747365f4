package calendar

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	MinutesPerDay = 24 * 60

	dateLayout = "2006-01-02"
)

// ===============================
// TimeOfDay
// ===============================

// TimeOfDay is a wall-clock instant within a day, in minutes since midnight.
// 24:00 is representable so it can close a range.
type TimeOfDay int

func NewTimeOfDay(hour, minute int) (TimeOfDay, error) {
	if hour < 0 || minute < 0 || minute >= 60 {
		return 0, fmt.Errorf("invalid time %02d:%02d", hour, minute)
	}
	if hour > 24 || (hour == 24 && minute != 0) {
		return 0, fmt.Errorf("invalid time %02d:%02d", hour, minute)
	}
	return TimeOfDay(hour*60 + minute), nil
}

// ParseTimeOfDay parses "HH:MM".
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 || len(parts[1]) != 2 || len(parts[0]) == 0 || len(parts[0]) > 2 {
		return 0, fmt.Errorf("invalid time %q", s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("invalid time %q", s)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("invalid time %q", s)
	}
	return NewTimeOfDay(h, m)
}

func MustTimeOfDay(s string) TimeOfDay {
	t, err := ParseTimeOfDay(s)
	if err != nil {
		panic(err)
	}
	return t
}

func (t TimeOfDay) Hour() int   { return int(t) / 60 }
func (t TimeOfDay) Minute() int { return int(t) % 60 }

func (t TimeOfDay) Add(minutes int) TimeOfDay { return t + TimeOfDay(minutes) }

// Valid reports whether t lies in [00:00, 24:00].
func (t TimeOfDay) Valid() bool { return t >= 0 && int(t) <= MinutesPerDay }

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute())
}

func (t TimeOfDay) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *TimeOfDay) UnmarshalText(b []byte) error {
	v, err := ParseTimeOfDay(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// ===============================
// DateKey
// ===============================

// DateKey is a calendar date with no time component.
type DateKey struct {
	Year  int
	Month time.Month
	Day   int
}

func ParseDateKey(s string) (DateKey, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(s))
	if err != nil {
		return DateKey{}, fmt.Errorf("invalid date %q", s)
	}
	return DateKeyOf(t), nil
}

func MustDateKey(s string) DateKey {
	d, err := ParseDateKey(s)
	if err != nil {
		panic(err)
	}
	return d
}

// DateKeyOf takes the calendar date of t in t's own location.
func DateKeyOf(t time.Time) DateKey {
	y, m, d := t.Date()
	return DateKey{Year: y, Month: m, Day: d}
}

func (d DateKey) IsZero() bool { return d.Year == 0 && d.Month == 0 && d.Day == 0 }

func (d DateKey) Weekday() time.Weekday {
	return d.Midnight(time.UTC).Weekday()
}

func (d DateKey) Midnight(loc *time.Location) time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, loc)
}

// At resolves the wall-clock instant of t on this date in loc.
func (d DateKey) At(t TimeOfDay, loc *time.Location) time.Time {
	return time.Date(d.Year, d.Month, d.Day, t.Hour(), t.Minute(), 0, 0, loc)
}

func (d DateKey) AddDays(n int) DateKey {
	return DateKeyOf(d.Midnight(time.UTC).AddDate(0, 0, n))
}

func (d DateKey) Before(o DateKey) bool { return d.String() < o.String() }

func (d DateKey) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

func (d DateKey) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *DateKey) UnmarshalText(b []byte) error {
	v, err := ParseDateKey(string(b))
	if err != nil {
		return err
	}
	*d = v
	return nil
}

// ===============================
// Interval
// ===============================

// Interval is the half-open range [Start, End).
type Interval struct {
	Start TimeOfDay `json:"start"`
	End   TimeOfDay `json:"end"`
}

func NewInterval(start TimeOfDay, minutes int) Interval {
	return Interval{Start: start, End: start.Add(minutes)}
}

func (i Interval) Minutes() int { return int(i.End - i.Start) }

// Overlaps applies s1 < e2 AND s2 < e1.
func (i Interval) Overlaps(o Interval) bool {
	return i.Start < o.End && o.Start < i.End
}

// Within reports whether i is fully contained in o.
func (i Interval) Within(o Interval) bool {
	return i.Start >= o.Start && i.End <= o.End
}

func (i Interval) String() string {
	return i.Start.String() + "-" + i.End.String()
}
