package domain

import "quickcourt/internal/pkg/timeslot"

// DayType selects which recurring price template applies to a calendar date.
type DayType string

const (
	DayWeekday DayType = "weekday"
	DayWeekend DayType = "weekend"
	DayHoliday DayType = "holiday"
)

// AvailabilityWindow is a recurring price/time template for a court, keyed by
// day-type rather than a concrete date. Slot prices are only resolvable from
// an exact window match.
type AvailabilityWindow struct {
	ID           int64          `json:"id"`
	CourtID      int64          `json:"court_id"`
	DayType      DayType        `json:"day_type"`
	StartTime    timeslot.Clock `json:"start_time"`
	EndTime      timeslot.Clock `json:"end_time"`
	PricePerHour float64        `json:"price_per_hour"`
}

func (w AvailabilityWindow) Interval() timeslot.Interval {
	return timeslot.Interval{Start: w.StartTime, End: w.EndTime}
}
