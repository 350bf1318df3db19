package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"quickcourt/internal/domain"
	"quickcourt/internal/pkg/timeslot"
)

// BlockedWindowRepository stores owner-declared unavailable ranges per court
// and concrete date. idx_unique_blocked_window rejects duplicate tuples.
type BlockedWindowRepository struct {
	db *gorm.DB
}

func NewBlockedWindowRepository(db *gorm.DB) *BlockedWindowRepository {
	return &BlockedWindowRepository{db: db}
}

type blockedWindowModel struct {
	ID        int64     `gorm:"column:id;primaryKey"`
	CourtID   int64     `gorm:"column:court_id"`
	Date      string    `gorm:"column:date"`
	StartTime int       `gorm:"column:start_time"`
	EndTime   int       `gorm:"column:end_time"`
	Reason    string    `gorm:"column:reason"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (blockedWindowModel) TableName() string { return "blocked_windows" }

func toDomainBlocked(m blockedWindowModel) domain.BlockedWindow {
	return domain.BlockedWindow{
		ID:        m.ID,
		CourtID:   m.CourtID,
		Date:      m.Date,
		StartTime: timeslot.Clock(m.StartTime),
		EndTime:   timeslot.Clock(m.EndTime),
		Reason:    m.Reason,
		CreatedAt: m.CreatedAt,
	}
}

func (r *BlockedWindowRepository) Create(ctx context.Context, b *domain.BlockedWindow) error {
	m := blockedWindowModel{
		CourtID:   b.CourtID,
		Date:      b.Date,
		StartTime: int(b.StartTime),
		EndTime:   int(b.EndTime),
		Reason:    b.Reason,
	}
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	b.ID = m.ID
	b.CreatedAt = m.CreatedAt
	return nil
}

func (r *BlockedWindowRepository) ListForDate(ctx context.Context, courtID int64, date string) ([]domain.BlockedWindow, error) {
	var ms []blockedWindowModel
	tx := r.db.WithContext(ctx).
		Where("court_id = ? AND date = ?", courtID, date).
		Order("start_time ASC").
		Find(&ms)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.BlockedWindow, 0, len(ms))
	for _, m := range ms {
		out = append(out, toDomainBlocked(m))
	}
	return out, nil
}
