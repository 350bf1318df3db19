package booking

import (
	"time"

	"quickcourt/internal/domain"
	"quickcourt/internal/pkg/timeslot"
)

// CalendarResolver is the default DayTypeResolver: a configured holiday set,
// Saturday/Sunday as weekend, everything else weekday.
type CalendarResolver struct {
	holidays map[string]struct{}
}

func NewCalendarResolver(holidayDates []string) *CalendarResolver {
	holidays := make(map[string]struct{}, len(holidayDates))
	for _, d := range holidayDates {
		holidays[d] = struct{}{}
	}
	return &CalendarResolver{holidays: holidays}
}

func (r *CalendarResolver) Resolve(day time.Time) domain.DayType {
	if _, ok := r.holidays[day.Format(timeslot.DateLayout)]; ok {
		return domain.DayHoliday
	}
	switch day.Weekday() {
	case time.Saturday, time.Sunday:
		return domain.DayWeekend
	}
	return domain.DayWeekday
}
