package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"quickcourt/internal/domain"
)

type ReviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

type reviewModel struct {
	ID        int64     `gorm:"column:id;primaryKey"`
	UserID    int64     `gorm:"column:user_id"`
	VenueID   int64     `gorm:"column:venue_id"`
	Rating    int       `gorm:"column:rating"`
	Comment   string    `gorm:"column:comment"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (reviewModel) TableName() string { return "reviews" }

func (r *ReviewRepository) Create(ctx context.Context, rv *domain.Review) error {
	m := reviewModel{
		UserID:  rv.UserID,
		VenueID: rv.VenueID,
		Rating:  rv.Rating,
		Comment: rv.Comment,
	}
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	rv.ID = m.ID
	rv.CreatedAt = m.CreatedAt
	return nil
}

func (r *ReviewRepository) ListByVenue(ctx context.Context, venueID int64) ([]domain.Review, error) {
	var ms []reviewModel
	tx := r.db.WithContext(ctx).
		Where("venue_id = ?", venueID).
		Order("created_at DESC").
		Find(&ms)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.Review, 0, len(ms))
	for _, m := range ms {
		out = append(out, domain.Review{
			ID:        m.ID,
			UserID:    m.UserID,
			VenueID:   m.VenueID,
			Rating:    m.Rating,
			Comment:   m.Comment,
			CreatedAt: m.CreatedAt,
		})
	}
	return out, nil
}
