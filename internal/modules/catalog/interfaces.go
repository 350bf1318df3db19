package catalog

import (
	"context"

	"quickcourt/internal/domain"
)

type VenueRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Venue, error)
	List(ctx context.Context) ([]domain.Venue, error)
}

type CourtRepository interface {
	Create(ctx context.Context, c *domain.Court) error
	GetByID(ctx context.Context, id int64) (*domain.Court, error)
	ListByVenue(ctx context.Context, venueID int64) ([]domain.Court, error)
	VenueOwnerID(ctx context.Context, courtID int64) (int64, error)
}

type AvailabilityRepository interface {
	Create(ctx context.Context, w *domain.AvailabilityWindow) error
	ListForCourt(ctx context.Context, courtID int64, dayType domain.DayType) ([]domain.AvailabilityWindow, error)
	ListAllForCourt(ctx context.Context, courtID int64) ([]domain.AvailabilityWindow, error)
}

type BlockedWindowRepository interface {
	Create(ctx context.Context, b *domain.BlockedWindow) error
}

type BookingRepository interface {
	ListByOwner(ctx context.Context, ownerID int64) ([]domain.Booking, error)
}
