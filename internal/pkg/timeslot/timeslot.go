// Package timeslot models half-open [start, end) time ranges within a single
// calendar day. All bookable slots, availability windows and blocked windows
// are expressed through it.
package timeslot

import (
	"errors"
	"fmt"
	"time"
)

// DateLayout is the wire format for calendar dates across the API.
const DateLayout = "2006-01-02"

var (
	ErrInvalidClock    = errors.New("invalid time of day")
	ErrInvalidInterval = errors.New("interval start must be before end")
)

// Clock is a time of day with minute resolution, stored as minutes since
// midnight. It survives a round-trip through any SQL integer column.
type Clock int

// ParseClock accepts "HH:MM" (request format) and "HH:MM:SS" (response
// format). Seconds, when present, must be zero. Anything beyond the exact
// shape, trailing characters included, is rejected.
func ParseClock(s string) (Clock, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		t, err = time.Parse("15:04:05", s)
		if err != nil || t.Second() != 0 {
			return 0, ErrInvalidClock
		}
	}
	return Clock(t.Hour()*60 + t.Minute()), nil
}

func (c Clock) Hour() int   { return int(c) / 60 }
func (c Clock) Minute() int { return int(c) % 60 }

// String renders the response wire format.
func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d:00", c.Hour(), c.Minute())
}

func (c Clock) MarshalJSON() ([]byte, error) {
	return []byte(`"` + c.String() + `"`), nil
}

func (c *Clock) UnmarshalJSON(b []byte) error {
	if len(b) < 2 || b[0] != '"' || b[len(b)-1] != '"' {
		return ErrInvalidClock
	}
	v, err := ParseClock(string(b[1 : len(b)-1]))
	if err != nil {
		return err
	}
	*c = v
	return nil
}

// At anchors the clock onto a calendar day in the given location.
func (c Clock) At(day time.Time, loc *time.Location) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), c.Hour(), c.Minute(), 0, 0, loc)
}

// Interval is a half-open [Start, End) range. Construct via New so the
// start < end invariant always holds.
type Interval struct {
	Start Clock
	End   Clock
}

func New(start, end Clock) (Interval, error) {
	if start >= end {
		return Interval{}, ErrInvalidInterval
	}
	return Interval{Start: start, End: end}, nil
}

// Overlaps reports whether two half-open intervals intersect. Touching
// endpoints ([09:00,10:00) vs [10:00,11:00)) do not count.
func (i Interval) Overlaps(o Interval) bool {
	return i.Start < o.End && o.Start < i.End
}

// Contains reports whether the point lies inside the interval. The end
// boundary is excluded.
func (i Interval) Contains(c Clock) bool {
	return i.Start <= c && c < i.End
}

// DurationHours is the interval length in hours, used for price computation.
func (i Interval) DurationHours() float64 {
	return float64(i.End-i.Start) / 60.0
}
