package domain

import "time"

type Sport struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type Venue struct {
	ID                   int64     `json:"id"`
	OwnerID              int64     `json:"owner_id"`
	Name                 string    `json:"name" validate:"required"`
	Description          string    `json:"description,omitempty"`
	City                 string    `json:"city"`
	Locality             string    `json:"locality,omitempty"`
	StartingPricePerHour float64   `json:"starting_price_per_hour"`
	Rating               *float64  `json:"rating,omitempty"`
	PopularityScore      float64   `json:"popularity_score"`
	IsApproved           bool      `json:"is_approved"`
	CreatedAt            time.Time `json:"created_at"`

	Courts []Court `json:"courts,omitempty" gorm:"-"`
}
