package booking

import (
	"context"
	"time"

	"quickcourt/internal/domain"
	"quickcourt/internal/events"
	"quickcourt/internal/pkg/timeslot"
)

// BookingRepository is the booking ledger operations the service needs.
type BookingRepository interface {
	CreateBatch(ctx context.Context, bookings []*domain.Booking) error
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	ListActiveForDate(ctx context.Context, courtID int64, date string) ([]domain.Booking, error)
	Cancel(ctx context.Context, id int64) error
	ListByUser(ctx context.Context, userID int64) ([]domain.Booking, error)
}

type CourtRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Court, error)
	ListByVenue(ctx context.Context, venueID int64) ([]domain.Court, error)
	VenueOwnerID(ctx context.Context, courtID int64) (int64, error)
}

// AvailabilityRepository is the availability catalog.
type AvailabilityRepository interface {
	ListForCourt(ctx context.Context, courtID int64, dayType domain.DayType) ([]domain.AvailabilityWindow, error)
	ResolvePrice(ctx context.Context, courtID int64, dayType domain.DayType, start, end timeslot.Clock) (float64, error)
}

// BlockedWindowRepository is the blocked-window store.
type BlockedWindowRepository interface {
	ListForDate(ctx context.Context, courtID int64, date string) ([]domain.BlockedWindow, error)
}

// VenueAggregates is the venue lookup plus the derived-value refresh the
// booking write path triggers.
type VenueAggregates interface {
	GetByID(ctx context.Context, id int64) (*domain.Venue, error)
	RecomputePopularity(ctx context.Context, venueID int64) error
}

type EventPublisher interface {
	PublishBookingCreated(ctx context.Context, event events.BookingCreatedEvent) error
}

// DayTypeResolver classifies a calendar date for pricing. Date-to-day-type
// mapping is a calendar concern, kept swappable behind this interface.
type DayTypeResolver interface {
	Resolve(day time.Time) domain.DayType
}
