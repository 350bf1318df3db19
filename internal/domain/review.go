package domain

import "time"

// Review feeds the venue's derived rating and popularity aggregates. One per
// (user, venue), enforced by a unique index.
type Review struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	VenueID   int64     `json:"venue_id"`
	Rating    int       `json:"rating" validate:"required,gte=1,lte=5"`
	Comment   string    `json:"comment,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
