package booking

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"quickcourt/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterPublicRoutes mounts the unauthenticated slot query.
func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.GET("/courts/:id/slots", h.AvailableSlots)
	rg.GET("/venues/:id/slots", h.VenueSlots)
}

// RegisterRoutes mounts the authenticated booking endpoints.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/bookings", h.Submit)
	rg.DELETE("/bookings/:id", h.Cancel)
	rg.GET("/bookings/my", h.MyBookings)
}

func (h *Handler) AvailableSlots(c *gin.Context) {
	courtID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid court ID")
		return
	}

	res, err := h.service.AvailableSlots(c.Request.Context(), courtID, c.Query("date"))
	if err != nil {
		h.fail(c, err)
		return
	}

	bookable := make([]SlotView, 0, len(res.Slots))
	for _, s := range res.Slots {
		if s.Bookable {
			bookable = append(bookable, s)
		}
	}

	response.Success(c, http.StatusOK, gin.H{
		"court_id": res.CourtID,
		"date":     res.Date,
		"day_type": res.DayType,
		"slots":    bookable,
	})
}

func (h *Handler) VenueSlots(c *gin.Context) {
	venueID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid venue ID")
		return
	}

	var sportID int64
	if raw := c.Query("sport_id"); raw != "" {
		sportID, err = strconv.ParseInt(raw, 10, 64)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid sport ID")
			return
		}
	}

	res, err := h.service.VenueSlots(c.Request.Context(), venueID, sportID, c.Query("date"))
	if err != nil {
		h.fail(c, err)
		return
	}

	courts := make([]CourtSlots, 0, len(res.Courts))
	for _, cs := range res.Courts {
		bookable := make([]SlotView, 0, len(cs.Slots))
		for _, s := range cs.Slots {
			if s.Bookable {
				bookable = append(bookable, s)
			}
		}
		cs.Slots = bookable
		courts = append(courts, cs)
	}

	response.Success(c, http.StatusOK, gin.H{
		"venue_id": res.VenueID,
		"date":     res.Date,
		"day_type": res.DayType,
		"courts":   courts,
	})
}

func (h *Handler) Submit(c *gin.Context) {
	var req SubmitBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	batch, err := h.service.Submit(c.Request.Context(), c.GetInt64("user_id"), req)
	if err != nil {
		h.fail(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{
		"total_price": batch.TotalPrice,
		"bookings":    batch.Bookings,
	})
}

func (h *Handler) Cancel(c *gin.Context) {
	bookingID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid booking ID")
		return
	}

	actorID := c.GetInt64("user_id")
	actorRole := c.GetString("role")

	if err := h.service.Cancel(c.Request.Context(), actorID, actorRole, bookingID, time.Now()); err != nil {
		h.fail(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"cancelled": true})
}

func (h *Handler) MyBookings(c *gin.Context) {
	res, err := h.service.MyBookings(c.Request.Context(), c.GetInt64("user_id"), time.Now())
	if err != nil {
		h.fail(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"past":     res.Past,
		"upcoming": res.Upcoming,
	})
}

func (h *Handler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrInvalidRequest):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid date, time or request shape")
	case errors.Is(err, ErrCourtNotFound):
		response.Error(c, http.StatusNotFound, "COURT_NOT_FOUND", "Court not found")
	case errors.Is(err, ErrVenueNotFound):
		response.Error(c, http.StatusNotFound, "VENUE_NOT_FOUND", "Venue not found")
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "BOOKING_NOT_FOUND", "Booking not found")
	case errors.Is(err, ErrSlotBlocked):
		response.Error(c, http.StatusConflict, "SLOT_BLOCKED", "Slot overlaps a blocked window")
	case errors.Is(err, ErrSlotTaken):
		response.Error(c, http.StatusConflict, "SLOT_TAKEN", "Slot is already booked")
	case errors.Is(err, ErrNoAvailabilityWindow):
		response.Error(c, http.StatusUnprocessableEntity, "NO_AVAILABILITY_WINDOW", "No availability window matches the requested slot")
	case errors.Is(err, ErrForbidden):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "You cannot modify this booking")
	case errors.Is(err, ErrAlreadyStarted):
		response.Error(c, http.StatusConflict, "ALREADY_STARTED", "Booking has already started")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Unexpected error")
	}
}
