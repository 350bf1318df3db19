package events

// BookingCreatedEvent is published once per booking after a batch commits.
// Consumers (notifications, analytics) live outside this system.
type BookingCreatedEvent struct {
	BookingID int64   `json:"booking_id"`
	UserID    int64   `json:"user_id"`
	CourtID   int64   `json:"court_id"`
	VenueID   int64   `json:"venue_id"`
	Date      string  `json:"date"`
	SlotStart string  `json:"slot_start"`
	SlotEnd   string  `json:"slot_end"`
	Price     float64 `json:"price"`
}
