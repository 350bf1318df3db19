package domain

// Court is a bookable physical resource. It belongs to exactly one venue and
// carries exactly one sport tag; its identity is immutable once bookings or
// availability windows reference it.
type Court struct {
	ID      int64  `json:"id"`
	VenueID int64  `json:"venue_id"`
	SportID int64  `json:"sport_id"`
	Name    string `json:"name" validate:"required"`

	Windows []AvailabilityWindow `json:"availability,omitempty" gorm:"-"`
}
