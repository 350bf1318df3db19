package catalog

type CreateCourtRequest struct {
	Name    string `json:"name" binding:"required"`
	SportID int64  `json:"sport_id" binding:"required"`
}

type AddAvailabilityRequest struct {
	DayType      string  `json:"day_type" binding:"required"`
	StartTime    string  `json:"start_time" binding:"required"`
	EndTime      string  `json:"end_time" binding:"required"`
	PricePerHour float64 `json:"price_per_hour" binding:"required,gt=0"`
}

type BlockSlotRequest struct {
	Date      string `json:"date" binding:"required"`
	StartTime string `json:"start_time" binding:"required"`
	EndTime   string `json:"end_time" binding:"required"`
	Reason    string `json:"reason"`
}
