package review

import (
	"context"

	"quickcourt/internal/domain"
)

type ReviewRepository interface {
	Create(ctx context.Context, rv *domain.Review) error
	ListByVenue(ctx context.Context, venueID int64) ([]domain.Review, error)
}

// VenueAggregates is the venue lookup plus the derived-value refresh the
// review write path triggers.
type VenueAggregates interface {
	GetByID(ctx context.Context, id int64) (*domain.Venue, error)
	RecomputeRating(ctx context.Context, venueID int64) error
	RecomputePopularity(ctx context.Context, venueID int64) error
}
