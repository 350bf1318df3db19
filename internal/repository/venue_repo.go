package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"quickcourt/internal/domain"
)

type VenueRepository struct {
	db *gorm.DB
}

func NewVenueRepository(db *gorm.DB) *VenueRepository {
	return &VenueRepository{db: db}
}

type venueModel struct {
	ID                   int64     `gorm:"column:id;primaryKey"`
	OwnerID              int64     `gorm:"column:owner_id"`
	Name                 string    `gorm:"column:name"`
	Description          string    `gorm:"column:description"`
	City                 string    `gorm:"column:city"`
	Locality             string    `gorm:"column:locality"`
	StartingPricePerHour float64   `gorm:"column:starting_price_per_hour"`
	Rating               *float64  `gorm:"column:rating"`
	PopularityScore      float64   `gorm:"column:popularity_score"`
	IsApproved           bool      `gorm:"column:is_approved"`
	CreatedAt            time.Time `gorm:"column:created_at"`
}

func (venueModel) TableName() string { return "venues" }

func toDomainVenue(m venueModel) *domain.Venue {
	return &domain.Venue{
		ID:                   m.ID,
		OwnerID:              m.OwnerID,
		Name:                 m.Name,
		Description:          m.Description,
		City:                 m.City,
		Locality:             m.Locality,
		StartingPricePerHour: m.StartingPricePerHour,
		Rating:               m.Rating,
		PopularityScore:      m.PopularityScore,
		IsApproved:           m.IsApproved,
		CreatedAt:            m.CreatedAt,
	}
}

func (r *VenueRepository) Create(ctx context.Context, v *domain.Venue) error {
	m := venueModel{
		OwnerID:              v.OwnerID,
		Name:                 v.Name,
		Description:          v.Description,
		City:                 v.City,
		Locality:             v.Locality,
		StartingPricePerHour: v.StartingPricePerHour,
		IsApproved:           v.IsApproved,
	}
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	v.ID = m.ID
	v.CreatedAt = m.CreatedAt
	return nil
}

func (r *VenueRepository) GetByID(ctx context.Context, id int64) (*domain.Venue, error) {
	var m venueModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainVenue(m), nil
}

func (r *VenueRepository) List(ctx context.Context) ([]domain.Venue, error) {
	var ms []venueModel
	tx := r.db.WithContext(ctx).
		Where("is_approved = ?", true).
		Order("popularity_score DESC").
		Find(&ms)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.Venue, 0, len(ms))
	for _, m := range ms {
		out = append(out, *toDomainVenue(m))
	}
	return out, nil
}

// RecomputeRating refreshes the venue's average review rating. Invoked
// explicitly from the review write path, never as a storage hook.
func (r *VenueRepository) RecomputeRating(ctx context.Context, venueID int64) error {
	return r.db.WithContext(ctx).Exec(`
UPDATE venues
SET rating = (SELECT AVG(rating) FROM reviews WHERE reviews.venue_id = venues.id)
WHERE id = ?`, venueID).Error
}

// RecomputePopularity refreshes popularity_score = bookings*0.7 + rating*0.3.
// Invoked from the booking and review write paths.
func (r *VenueRepository) RecomputePopularity(ctx context.Context, venueID int64) error {
	return r.db.WithContext(ctx).Exec(`
UPDATE venues
SET popularity_score =
      (SELECT COUNT(1) FROM bookings
        JOIN courts ON courts.id = bookings.court_id
       WHERE courts.venue_id = venues.id) * 0.7
    + COALESCE(rating, 0) * 0.3
WHERE id = ?`, venueID).Error
}
