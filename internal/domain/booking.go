package domain

import (
	"time"

	"quickcourt/internal/pkg/timeslot"
)

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
	BookingCompleted BookingStatus = "completed"
)

// Active reports whether the status occupies its slot for conflict purposes.
func (s BookingStatus) Active() bool {
	return s == BookingPending || s == BookingConfirmed
}

// Booking is a ledger entry for one slot on one court. At most one
// non-cancelled booking may ever exist per (court, date, slot_start,
// slot_end); the storage layer enforces this with a partial unique index.
type Booking struct {
	ID        int64          `json:"id"`
	UserID    int64          `json:"user_id"`
	CourtID   int64          `json:"court_id"`
	Date      string         `json:"date"` // YYYY-MM-DD
	SlotStart timeslot.Clock `json:"slot_start"`
	SlotEnd   timeslot.Clock `json:"slot_end"`
	Status    BookingStatus  `json:"status"`
	Price     float64        `json:"price"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

func (b Booking) Interval() timeslot.Interval {
	return timeslot.Interval{Start: b.SlotStart, End: b.SlotEnd}
}

// StartsAt combines the calendar date with the slot start in loc. Used for
// the cancel-only-future rule.
func (b Booking) StartsAt(loc *time.Location) (time.Time, error) {
	day, err := time.ParseInLocation(timeslot.DateLayout, b.Date, loc)
	if err != nil {
		return time.Time{}, err
	}
	return b.SlotStart.At(day, loc), nil
}

// EndsAt combines the calendar date with the slot end in loc. Used for the
// past/upcoming partition of a user's bookings.
func (b Booking) EndsAt(loc *time.Location) (time.Time, error) {
	day, err := time.ParseInLocation(timeslot.DateLayout, b.Date, loc)
	if err != nil {
		return time.Time{}, err
	}
	return b.SlotEnd.At(day, loc), nil
}
