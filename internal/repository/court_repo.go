package repository

import (
	"context"

	"gorm.io/gorm"

	"quickcourt/internal/domain"
)

type CourtRepository struct {
	db *gorm.DB
}

func NewCourtRepository(db *gorm.DB) *CourtRepository {
	return &CourtRepository{db: db}
}

type courtModel struct {
	ID      int64  `gorm:"column:id;primaryKey"`
	VenueID int64  `gorm:"column:venue_id"`
	SportID int64  `gorm:"column:sport_id"`
	Name    string `gorm:"column:name"`
}

func (courtModel) TableName() string { return "courts" }

func toDomainCourt(m courtModel) *domain.Court {
	return &domain.Court{
		ID:      m.ID,
		VenueID: m.VenueID,
		SportID: m.SportID,
		Name:    m.Name,
	}
}

func (r *CourtRepository) Create(ctx context.Context, c *domain.Court) error {
	m := courtModel{VenueID: c.VenueID, SportID: c.SportID, Name: c.Name}
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	c.ID = m.ID
	return nil
}

func (r *CourtRepository) GetByID(ctx context.Context, id int64) (*domain.Court, error) {
	var m courtModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainCourt(m), nil
}

func (r *CourtRepository) ListByVenue(ctx context.Context, venueID int64) ([]domain.Court, error) {
	var ms []courtModel
	tx := r.db.WithContext(ctx).Where("venue_id = ?", venueID).Order("id ASC").Find(&ms)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.Court, 0, len(ms))
	for _, m := range ms {
		out = append(out, *toDomainCourt(m))
	}
	return out, nil
}

// VenueOwnerID walks the ownership chain court -> venue -> owner.
func (r *CourtRepository) VenueOwnerID(ctx context.Context, courtID int64) (int64, error) {
	var ownerID int64
	tx := r.db.WithContext(ctx).
		Table("courts").
		Select("venues.owner_id").
		Joins("JOIN venues ON venues.id = courts.venue_id").
		Where("courts.id = ?", courtID).
		Scan(&ownerID)
	if tx.Error != nil {
		return 0, tx.Error
	}
	return ownerID, nil
}
