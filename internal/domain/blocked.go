package domain

import (
	"time"

	"quickcourt/internal/pkg/timeslot"
)

// BlockedWindow removes bookability for a concrete date/time range on a
// court, regardless of declared availability windows. Unique per
// (court, date, start, end).
type BlockedWindow struct {
	ID        int64          `json:"id"`
	CourtID   int64          `json:"court_id"`
	Date      string         `json:"date"` // YYYY-MM-DD
	StartTime timeslot.Clock `json:"start_time"`
	EndTime   timeslot.Clock `json:"end_time"`
	Reason    string         `json:"reason,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}

func (b BlockedWindow) Interval() timeslot.Interval {
	return timeslot.Interval{Start: b.StartTime, End: b.EndTime}
}
