package booking

import (
	"context"
	"errors"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"quickcourt/internal/domain"
	"quickcourt/internal/events"
	"quickcourt/internal/pkg/timeslot"
)

type Service struct {
	bookings  BookingRepository
	courts    CourtRepository
	windows   AvailabilityRepository
	blocked   BlockedWindowRepository
	venues    VenueAggregates
	daytypes  DayTypeResolver
	publisher EventPublisher
}

func NewService(
	bookings BookingRepository,
	courts CourtRepository,
	windows AvailabilityRepository,
	blocked BlockedWindowRepository,
	venues VenueAggregates,
	daytypes DayTypeResolver,
	publisher EventPublisher,
) *Service {
	return &Service{
		bookings:  bookings,
		courts:    courts,
		windows:   windows,
		blocked:   blocked,
		venues:    venues,
		daytypes:  daytypes,
		publisher: publisher,
	}
}

// AvailableSlots lists the court's availability windows for the date's
// day-type, marking each window bookable unless a pending/confirmed booking
// or a blocked window overlaps it. Deterministic, no state between calls.
func (s *Service) AvailableSlots(ctx context.Context, courtID int64, dateStr string) (*SlotsResult, error) {
	day, err := time.ParseInLocation(timeslot.DateLayout, dateStr, time.Local)
	if err != nil {
		return nil, ErrInvalidRequest
	}

	if _, err := s.courts.GetByID(ctx, courtID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourtNotFound
		}
		return nil, err
	}

	dayType := s.daytypes.Resolve(day)

	slots, err := s.buildSlots(ctx, courtID, dateStr, dayType)
	if err != nil {
		return nil, err
	}

	return &SlotsResult{
		CourtID: courtID,
		Date:    dateStr,
		DayType: dayType,
		Slots:   slots,
	}, nil
}

// VenueSlots runs the slot query across every court of a venue, optionally
// narrowed to one sport. sportID <= 0 means all sports.
func (s *Service) VenueSlots(ctx context.Context, venueID, sportID int64, dateStr string) (*VenueSlotsResult, error) {
	day, err := time.ParseInLocation(timeslot.DateLayout, dateStr, time.Local)
	if err != nil {
		return nil, ErrInvalidRequest
	}

	if _, err := s.venues.GetByID(ctx, venueID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVenueNotFound
		}
		return nil, err
	}

	courts, err := s.courts.ListByVenue(ctx, venueID)
	if err != nil {
		return nil, err
	}

	dayType := s.daytypes.Resolve(day)

	out := make([]CourtSlots, 0, len(courts))
	for _, court := range courts {
		if sportID > 0 && court.SportID != sportID {
			continue
		}
		slots, err := s.buildSlots(ctx, court.ID, dateStr, dayType)
		if err != nil {
			return nil, err
		}
		out = append(out, CourtSlots{
			CourtID:   court.ID,
			CourtName: court.Name,
			SportID:   court.SportID,
			Slots:     slots,
		})
	}

	return &VenueSlotsResult{
		VenueID: venueID,
		Date:    dateStr,
		DayType: dayType,
		Courts:  out,
	}, nil
}

// buildSlots marks each declared window of the court bookable unless an
// active booking or blocked window overlaps it.
func (s *Service) buildSlots(ctx context.Context, courtID int64, date string, dayType domain.DayType) ([]SlotView, error) {
	windows, err := s.windows.ListForCourt(ctx, courtID, dayType)
	if err != nil {
		return nil, err
	}

	taken, err := s.unavailableIntervals(ctx, courtID, date)
	if err != nil {
		return nil, err
	}

	slots := make([]SlotView, 0, len(windows))
	for _, w := range windows {
		bookable := true
		for _, iv := range taken {
			if w.Interval().Overlaps(iv) {
				bookable = false
				break
			}
		}
		slots = append(slots, SlotView{
			SlotID:       w.ID,
			StartTime:    w.StartTime,
			EndTime:      w.EndTime,
			PricePerHour: w.PricePerHour,
			Bookable:     bookable,
		})
	}
	return slots, nil
}

// Submit validates and atomically commits a multi-slot booking request.
// Items are processed sequentially and fail-fast; nothing is persisted
// unless every item passes, and the final batch insert lands in a single
// transaction guarded by the ledger's unique index.
func (s *Service) Submit(ctx context.Context, userID int64, req SubmitBookingRequest) (*BookingBatch, error) {
	day, err := time.ParseInLocation(timeslot.DateLayout, req.Date, time.Local)
	if err != nil {
		return nil, ErrInvalidRequest
	}

	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)
	if day.Before(today) {
		return nil, ErrInvalidRequest
	}

	if len(req.CourtSlots) == 0 {
		return nil, ErrInvalidRequest
	}

	dayType := s.daytypes.Resolve(day)

	var total float64
	pending := make([]*domain.Booking, 0, len(req.CourtSlots))
	venueByCourt := make(map[int64]int64)

	for _, item := range req.CourtSlots {
		if item.CourtID <= 0 {
			return nil, ErrInvalidRequest
		}
		start, err := timeslot.ParseClock(item.SlotStart)
		if err != nil {
			return nil, ErrInvalidRequest
		}
		end, err := timeslot.ParseClock(item.SlotEnd)
		if err != nil {
			return nil, ErrInvalidRequest
		}
		iv, err := timeslot.New(start, end)
		if err != nil {
			return nil, ErrInvalidRequest
		}

		court, err := s.courts.GetByID(ctx, item.CourtID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrCourtNotFound
			}
			return nil, err
		}
		venueByCourt[court.ID] = court.VenueID

		blocked, err := s.blocked.ListForDate(ctx, court.ID, req.Date)
		if err != nil {
			return nil, err
		}
		for _, b := range blocked {
			if iv.Overlaps(b.Interval()) {
				return nil, ErrSlotBlocked
			}
		}

		active, err := s.bookings.ListActiveForDate(ctx, court.ID, req.Date)
		if err != nil {
			return nil, err
		}
		for _, b := range active {
			if iv.Overlaps(b.Interval()) {
				return nil, ErrSlotTaken
			}
		}
		// items inside the same request must not collide either
		for _, p := range pending {
			if p.CourtID == court.ID && iv.Overlaps(p.Interval()) {
				return nil, ErrSlotTaken
			}
		}

		price, err := s.windows.ResolvePrice(ctx, court.ID, dayType, iv.Start, iv.End)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrNoAvailabilityWindow
			}
			return nil, err
		}

		amount := roundCents(price * iv.DurationHours())
		total += amount

		pending = append(pending, &domain.Booking{
			UserID:    userID,
			CourtID:   court.ID,
			Date:      req.Date,
			SlotStart: iv.Start,
			SlotEnd:   iv.End,
			Status:    domain.BookingPending,
			Price:     amount,
		})
	}

	// The pre-checks above only produce friendly errors; the unique index
	// behind CreateBatch is what actually closes the concurrent-submit race.
	if err := s.bookings.CreateBatch(ctx, pending); err != nil {
		if isUniqueViolation(err) {
			return nil, ErrSlotTaken
		}
		return nil, err
	}

	s.afterCommit(ctx, pending, venueByCourt)

	out := make([]domain.Booking, 0, len(pending))
	for _, b := range pending {
		out = append(out, *b)
	}
	return &BookingBatch{TotalPrice: roundCents(total), Bookings: out}, nil
}

// afterCommit runs the best-effort side effects of a committed batch:
// booking.created events and venue popularity refresh.
func (s *Service) afterCommit(ctx context.Context, bookings []*domain.Booking, venueByCourt map[int64]int64) {
	if s.publisher != nil {
		for _, b := range bookings {
			_ = s.publisher.PublishBookingCreated(ctx, events.BookingCreatedEvent{
				BookingID: b.ID,
				UserID:    b.UserID,
				CourtID:   b.CourtID,
				VenueID:   venueByCourt[b.CourtID],
				Date:      b.Date,
				SlotStart: b.SlotStart.String(),
				SlotEnd:   b.SlotEnd.String(),
				Price:     b.Price,
			})
		}
	}

	if s.venues != nil {
		seen := make(map[int64]struct{})
		for _, venueID := range venueByCourt {
			if _, ok := seen[venueID]; ok {
				continue
			}
			seen[venueID] = struct{}{}
			_ = s.venues.RecomputePopularity(ctx, venueID)
		}
	}
}

// Cancel removes a future booking from the ledger. Allowed for the booking's
// user, the owning venue's owner, and administrators; bookings whose start
// has passed are immutable here.
func (s *Service) Cancel(ctx context.Context, actorID int64, actorRole string, bookingID int64, now time.Time) error {
	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if b.Status == domain.BookingCancelled {
		return ErrNotFound
	}

	if actorID != b.UserID && actorRole != string(domain.RoleAdmin) {
		ownerID, err := s.courts.VenueOwnerID(ctx, b.CourtID)
		if err != nil {
			return err
		}
		if ownerID != actorID {
			return ErrForbidden
		}
	}

	startsAt, err := b.StartsAt(time.Local)
	if err != nil {
		return err
	}
	if !startsAt.After(now) {
		return ErrAlreadyStarted
	}

	return s.bookings.Cancel(ctx, b.ID)
}

// MyBookings partitions the user's bookings into past and upcoming by
// comparing the slot end against now. Past is ordered most recent first,
// upcoming soonest first.
func (s *Service) MyBookings(ctx context.Context, userID int64, now time.Time) (*MyBookings, error) {
	all, err := s.bookings.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	past := make([]domain.Booking, 0)
	upcoming := make([]domain.Booking, 0)
	for _, b := range all {
		endsAt, err := b.EndsAt(time.Local)
		if err != nil {
			return nil, err
		}
		if !endsAt.After(now) {
			past = append(past, b)
		} else {
			upcoming = append(upcoming, b)
		}
	}

	// repo returns date/slot_start ascending; past flips to descending
	sort.Slice(past, func(i, j int) bool {
		if past[i].Date != past[j].Date {
			return past[i].Date > past[j].Date
		}
		return past[i].SlotStart > past[j].SlotStart
	})

	return &MyBookings{Past: past, Upcoming: upcoming}, nil
}

// unavailableIntervals unions active bookings and blocked windows for one
// court and date.
func (s *Service) unavailableIntervals(ctx context.Context, courtID int64, date string) ([]timeslot.Interval, error) {
	active, err := s.bookings.ListActiveForDate(ctx, courtID, date)
	if err != nil {
		return nil, err
	}
	blocked, err := s.blocked.ListForDate(ctx, courtID, date)
	if err != nil {
		return nil, err
	}

	out := make([]timeslot.Interval, 0, len(active)+len(blocked))
	for _, b := range active {
		out = append(out, b.Interval())
	}
	for _, b := range blocked {
		out = append(out, b.Interval())
	}
	return out, nil
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}

// isUniqueViolation recognizes the ledger's unique-index rejection on both
// backends: pgconn error code 23505 under PostgreSQL, error text under
// SQLite.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return true
	}
	s := err.Error()
	return strings.Contains(s, "SQLSTATE 23505") ||
		strings.Contains(s, "UNIQUE constraint failed")
}
