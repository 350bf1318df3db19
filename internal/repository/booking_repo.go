package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"quickcourt/internal/domain"
	"quickcourt/internal/pkg/timeslot"
)

// BookingRepository is the booking ledger. The partial unique index
// idx_no_double_booking (see database.Migrate) makes the batch insert the
// race-closing step for concurrent submissions of the same slot.
type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

type bookingModel struct {
	ID        int64     `gorm:"column:id;primaryKey"`
	UserID    int64     `gorm:"column:user_id"`
	CourtID   int64     `gorm:"column:court_id"`
	Date      string    `gorm:"column:date"`
	SlotStart int       `gorm:"column:slot_start"`
	SlotEnd   int       `gorm:"column:slot_end"`
	Status    string    `gorm:"column:status"`
	Price     float64   `gorm:"column:price"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (bookingModel) TableName() string { return "bookings" }

func toDomainBooking(m bookingModel) *domain.Booking {
	return &domain.Booking{
		ID:        m.ID,
		UserID:    m.UserID,
		CourtID:   m.CourtID,
		Date:      m.Date,
		SlotStart: timeslot.Clock(m.SlotStart),
		SlotEnd:   timeslot.Clock(m.SlotEnd),
		Status:    domain.BookingStatus(m.Status),
		Price:     m.Price,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func toBookingModel(b *domain.Booking) bookingModel {
	return bookingModel{
		ID:        b.ID,
		UserID:    b.UserID,
		CourtID:   b.CourtID,
		Date:      b.Date,
		SlotStart: int(b.SlotStart),
		SlotEnd:   int(b.SlotEnd),
		Status:    string(b.Status),
		Price:     b.Price,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}

// CreateBatch inserts all bookings in a single transaction: either the whole
// batch lands or nothing does. A unique violation on any row aborts the
// transaction and surfaces to the caller.
func (r *BookingRepository) CreateBatch(ctx context.Context, bookings []*domain.Booking) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, b := range bookings {
			m := toBookingModel(b)
			if err := tx.Create(&m).Error; err != nil {
				return err
			}
			*b = *toDomainBooking(m)
		}
		return nil
	})
}

func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	var m bookingModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainBooking(m), nil
}

// ListActiveForDate returns pending and confirmed bookings for one court and
// date, ordered by slot start.
func (r *BookingRepository) ListActiveForDate(ctx context.Context, courtID int64, date string) ([]domain.Booking, error) {
	var ms []bookingModel
	tx := r.db.WithContext(ctx).
		Where("court_id = ? AND date = ? AND status IN ?", courtID, date, []string{
			string(domain.BookingPending),
			string(domain.BookingConfirmed),
		}).
		Order("slot_start ASC").
		Find(&ms)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.Booking, 0, len(ms))
	for _, m := range ms {
		out = append(out, *toDomainBooking(m))
	}
	return out, nil
}

// Cancel transitions the booking to cancelled, which releases its slot from
// the partial unique index.
func (r *BookingRepository) Cancel(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).
		Model(&bookingModel{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":     string(domain.BookingCancelled),
			"updated_at": time.Now(),
		}).Error
}

func (r *BookingRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Booking, error) {
	var ms []bookingModel
	tx := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("date ASC, slot_start ASC").
		Find(&ms)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.Booking, 0, len(ms))
	for _, m := range ms {
		out = append(out, *toDomainBooking(m))
	}
	return out, nil
}

// ListByOwner returns bookings on any court whose venue belongs to ownerID.
func (r *BookingRepository) ListByOwner(ctx context.Context, ownerID int64) ([]domain.Booking, error) {
	var ms []bookingModel
	tx := r.db.WithContext(ctx).
		Joins("JOIN courts ON courts.id = bookings.court_id").
		Joins("JOIN venues ON venues.id = courts.venue_id").
		Where("venues.owner_id = ?", ownerID).
		Order("bookings.date DESC, bookings.slot_start DESC").
		Find(&ms)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.Booking, 0, len(ms))
	for _, m := range ms {
		out = append(out, *toDomainBooking(m))
	}
	return out, nil
}
