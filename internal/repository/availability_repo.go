package repository

import (
	"context"

	"gorm.io/gorm"

	"quickcourt/internal/domain"
	"quickcourt/internal/pkg/timeslot"
)

// AvailabilityRepository is the availability catalog: recurring price/time
// windows per court and day-type.
type AvailabilityRepository struct {
	db *gorm.DB
}

func NewAvailabilityRepository(db *gorm.DB) *AvailabilityRepository {
	return &AvailabilityRepository{db: db}
}

type availabilityModel struct {
	ID           int64   `gorm:"column:id;primaryKey"`
	CourtID      int64   `gorm:"column:court_id"`
	DayType      string  `gorm:"column:day_type"`
	StartTime    int     `gorm:"column:start_time"`
	EndTime      int     `gorm:"column:end_time"`
	PricePerHour float64 `gorm:"column:price_per_hour"`
}

func (availabilityModel) TableName() string { return "availability_windows" }

func toDomainWindow(m availabilityModel) domain.AvailabilityWindow {
	return domain.AvailabilityWindow{
		ID:           m.ID,
		CourtID:      m.CourtID,
		DayType:      domain.DayType(m.DayType),
		StartTime:    timeslot.Clock(m.StartTime),
		EndTime:      timeslot.Clock(m.EndTime),
		PricePerHour: m.PricePerHour,
	}
}

func (r *AvailabilityRepository) Create(ctx context.Context, w *domain.AvailabilityWindow) error {
	m := availabilityModel{
		CourtID:      w.CourtID,
		DayType:      string(w.DayType),
		StartTime:    int(w.StartTime),
		EndTime:      int(w.EndTime),
		PricePerHour: w.PricePerHour,
	}
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	w.ID = m.ID
	return nil
}

// ListForCourt returns the windows of one court and day-type, start ascending.
func (r *AvailabilityRepository) ListForCourt(ctx context.Context, courtID int64, dayType domain.DayType) ([]domain.AvailabilityWindow, error) {
	var ms []availabilityModel
	tx := r.db.WithContext(ctx).
		Where("court_id = ? AND day_type = ?", courtID, string(dayType)).
		Order("start_time ASC").
		Find(&ms)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.AvailabilityWindow, 0, len(ms))
	for _, m := range ms {
		out = append(out, toDomainWindow(m))
	}
	return out, nil
}

// ListAllForCourt returns every window of a court across day-types. Used by
// the catalog when embedding courts into venue detail responses.
func (r *AvailabilityRepository) ListAllForCourt(ctx context.Context, courtID int64) ([]domain.AvailabilityWindow, error) {
	var ms []availabilityModel
	tx := r.db.WithContext(ctx).
		Where("court_id = ?", courtID).
		Order("day_type ASC, start_time ASC").
		Find(&ms)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.AvailabilityWindow, 0, len(ms))
	for _, m := range ms {
		out = append(out, toDomainWindow(m))
	}
	return out, nil
}

// ResolvePrice finds the window whose boundaries exactly equal the requested
// slot. Prices are never prorated: no exact match means the slot is not
// priceable and the caller gets gorm.ErrRecordNotFound.
func (r *AvailabilityRepository) ResolvePrice(ctx context.Context, courtID int64, dayType domain.DayType, start, end timeslot.Clock) (float64, error) {
	var m availabilityModel
	tx := r.db.WithContext(ctx).
		Where("court_id = ? AND day_type = ? AND start_time = ? AND end_time = ?",
			courtID, string(dayType), int(start), int(end)).
		First(&m)
	if tx.Error != nil {
		return 0, tx.Error
	}
	return m.PricePerHour, nil
}
