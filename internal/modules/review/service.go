package review

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"quickcourt/internal/domain"
)

type Service struct {
	reviews ReviewRepository
	venues  VenueAggregates
}

func NewService(reviews ReviewRepository, venues VenueAggregates) *Service {
	return &Service{reviews: reviews, venues: venues}
}

// Create stores one review per (user, venue) and refreshes the venue's
// rating and popularity. The unique index is the duplicate guard; the
// recomputes are best-effort once the review is committed.
func (s *Service) Create(ctx context.Context, userID, venueID int64, req CreateReviewRequest) (*domain.Review, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return nil, ErrInvalidRequest
	}

	if _, err := s.venues.GetByID(ctx, venueID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVenueNotFound
		}
		return nil, err
	}

	rv := &domain.Review{
		UserID:  userID,
		VenueID: venueID,
		Rating:  req.Rating,
		Comment: strings.TrimSpace(req.Comment),
	}
	if err := s.reviews.Create(ctx, rv); err != nil {
		if isUniqueViolation(err) {
			return nil, ErrAlreadyReviewed
		}
		return nil, err
	}

	_ = s.venues.RecomputeRating(ctx, venueID)
	_ = s.venues.RecomputePopularity(ctx, venueID)

	return rv, nil
}

func (s *Service) ListByVenue(ctx context.Context, venueID int64) ([]domain.Review, error) {
	if _, err := s.venues.GetByID(ctx, venueID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVenueNotFound
		}
		return nil, err
	}
	return s.reviews.ListByVenue(ctx, venueID)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return true
	}
	s := err.Error()
	return strings.Contains(s, "SQLSTATE 23505") ||
		strings.Contains(s, "UNIQUE constraint failed")
}
