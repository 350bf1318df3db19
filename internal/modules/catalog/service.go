package catalog

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"quickcourt/internal/domain"
	"quickcourt/internal/pkg/timeslot"
)

type Service struct {
	venues   VenueRepository
	courts   CourtRepository
	windows  AvailabilityRepository
	blocked  BlockedWindowRepository
	bookings BookingRepository
}

func NewService(
	venues VenueRepository,
	courts CourtRepository,
	windows AvailabilityRepository,
	blocked BlockedWindowRepository,
	bookings BookingRepository,
) *Service {
	return &Service{
		venues:   venues,
		courts:   courts,
		windows:  windows,
		blocked:  blocked,
		bookings: bookings,
	}
}

// ListVenues returns approved venues, most popular first.
func (s *Service) ListVenues(ctx context.Context) ([]domain.Venue, error) {
	return s.venues.List(ctx)
}

// GetVenue returns one venue with its courts and each court's availability
// windows embedded.
func (s *Service) GetVenue(ctx context.Context, venueID int64) (*domain.Venue, error) {
	v, err := s.venues.GetByID(ctx, venueID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	courts, err := s.courts.ListByVenue(ctx, v.ID)
	if err != nil {
		return nil, err
	}
	for i := range courts {
		windows, err := s.windows.ListAllForCourt(ctx, courts[i].ID)
		if err != nil {
			return nil, err
		}
		courts[i].Windows = windows
	}
	v.Courts = courts

	return v, nil
}

// CreateCourt adds a court to a venue the actor owns. Admins may add courts
// to any venue.
func (s *Service) CreateCourt(ctx context.Context, actorID int64, actorRole string, venueID int64, req CreateCourtRequest) (*domain.Court, error) {
	v, err := s.venues.GetByID(ctx, venueID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if v.OwnerID != actorID && actorRole != string(domain.RoleAdmin) {
		return nil, ErrForbidden
	}

	court := &domain.Court{
		VenueID: v.ID,
		SportID: req.SportID,
		Name:    strings.TrimSpace(req.Name),
	}
	if court.Name == "" {
		return nil, ErrInvalidRequest
	}
	if err := s.courts.Create(ctx, court); err != nil {
		return nil, err
	}
	return court, nil
}

// AddAvailability declares a recurring price window on a court. Windows for
// the same court and day-type must not overlap; prices per slot stay
// unambiguous that way.
func (s *Service) AddAvailability(ctx context.Context, actorID int64, actorRole string, courtID int64, req AddAvailabilityRequest) (*domain.AvailabilityWindow, error) {
	if err := s.authorizeCourt(ctx, actorID, actorRole, courtID); err != nil {
		return nil, err
	}

	dayType, ok := parseDayType(req.DayType)
	if !ok {
		return nil, ErrInvalidRequest
	}
	iv, err := parseInterval(req.StartTime, req.EndTime)
	if err != nil {
		return nil, ErrInvalidRequest
	}
	if req.PricePerHour <= 0 {
		return nil, ErrInvalidRequest
	}

	existing, err := s.windows.ListForCourt(ctx, courtID, dayType)
	if err != nil {
		return nil, err
	}
	for _, w := range existing {
		if iv.Overlaps(w.Interval()) {
			return nil, ErrWindowOverlap
		}
	}

	w := &domain.AvailabilityWindow{
		CourtID:      courtID,
		DayType:      dayType,
		StartTime:    iv.Start,
		EndTime:      iv.End,
		PricePerHour: req.PricePerHour,
	}
	if err := s.windows.Create(ctx, w); err != nil {
		return nil, err
	}
	return w, nil
}

// BlockSlot marks a concrete date/time range unbookable on a court. The
// store's unique index rejects an identical second block; overlapping but
// non-identical blocks are allowed.
func (s *Service) BlockSlot(ctx context.Context, actorID int64, actorRole string, courtID int64, req BlockSlotRequest) (*domain.BlockedWindow, error) {
	if err := s.authorizeCourt(ctx, actorID, actorRole, courtID); err != nil {
		return nil, err
	}

	if _, err := time.ParseInLocation(timeslot.DateLayout, req.Date, time.Local); err != nil {
		return nil, ErrInvalidRequest
	}
	iv, err := parseInterval(req.StartTime, req.EndTime)
	if err != nil {
		return nil, ErrInvalidRequest
	}

	b := &domain.BlockedWindow{
		CourtID:   courtID,
		Date:      req.Date,
		StartTime: iv.Start,
		EndTime:   iv.End,
		Reason:    strings.TrimSpace(req.Reason),
	}
	if err := s.blocked.Create(ctx, b); err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateBlock
		}
		return nil, err
	}
	return b, nil
}

// OwnerBookings lists every booking on courts belonging to the actor's
// venues, oldest date first.
func (s *Service) OwnerBookings(ctx context.Context, ownerID int64) ([]domain.Booking, error) {
	return s.bookings.ListByOwner(ctx, ownerID)
}

func (s *Service) authorizeCourt(ctx context.Context, actorID int64, actorRole string, courtID int64) error {
	if _, err := s.courts.GetByID(ctx, courtID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if actorRole == string(domain.RoleAdmin) {
		return nil
	}
	ownerID, err := s.courts.VenueOwnerID(ctx, courtID)
	if err != nil {
		return err
	}
	if ownerID != actorID {
		return ErrForbidden
	}
	return nil
}

func parseDayType(s string) (domain.DayType, bool) {
	switch domain.DayType(s) {
	case domain.DayWeekday, domain.DayWeekend, domain.DayHoliday:
		return domain.DayType(s), true
	}
	return "", false
}

func parseInterval(startStr, endStr string) (timeslot.Interval, error) {
	start, err := timeslot.ParseClock(startStr)
	if err != nil {
		return timeslot.Interval{}, err
	}
	end, err := timeslot.ParseClock(endStr)
	if err != nil {
		return timeslot.Interval{}, err
	}
	return timeslot.New(start, end)
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
