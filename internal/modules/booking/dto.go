package booking

import (
	"quickcourt/internal/domain"
	"quickcourt/internal/pkg/timeslot"
)

type CourtSlotRequest struct {
	CourtID   int64  `json:"court_id" binding:"required"`
	SlotStart string `json:"slot_start" binding:"required"`
	SlotEnd   string `json:"slot_end" binding:"required"`
}

type SubmitBookingRequest struct {
	Date       string             `json:"date" binding:"required"`
	CourtSlots []CourtSlotRequest `json:"court_slots" binding:"required"`
}

// BookingBatch is the result of one successful multi-slot submission.
type BookingBatch struct {
	TotalPrice float64          `json:"total_price"`
	Bookings   []domain.Booking `json:"bookings"`
}

// SlotView is one availability window of a court on a concrete date.
// Bookable is kept out of the wire format: the public endpoint only emits
// bookable slots.
type SlotView struct {
	SlotID       int64          `json:"slot_id"`
	StartTime    timeslot.Clock `json:"start_time"`
	EndTime      timeslot.Clock `json:"end_time"`
	PricePerHour float64        `json:"price_per_hour"`
	Bookable     bool           `json:"-"`
}

type SlotsResult struct {
	CourtID int64          `json:"court_id"`
	Date    string         `json:"date"`
	DayType domain.DayType `json:"day_type"`
	Slots   []SlotView     `json:"slots"`
}

// CourtSlots is one court's slot list inside a venue-level query.
type CourtSlots struct {
	CourtID   int64      `json:"court_id"`
	CourtName string     `json:"court_name"`
	SportID   int64      `json:"sport_id"`
	Slots     []SlotView `json:"slots"`
}

type VenueSlotsResult struct {
	VenueID int64          `json:"venue_id"`
	Date    string         `json:"date"`
	DayType domain.DayType `json:"day_type"`
	Courts  []CourtSlots   `json:"courts"`
}

type MyBookings struct {
	Past     []domain.Booking `json:"past"`
	Upcoming []domain.Booking `json:"upcoming"`
}
