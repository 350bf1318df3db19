package catalog

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"quickcourt/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterPublicRoutes mounts the venue browse endpoints.
func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.GET("/venues", h.ListVenues)
	rg.GET("/venues/:id", h.GetVenue)
}

// RegisterOwnerRoutes mounts the venue-management endpoints. The group is
// expected to already carry JWTAuth plus the owner/admin role gate.
func (h *Handler) RegisterOwnerRoutes(rg *gin.RouterGroup) {
	rg.POST("/venues/:id/courts", h.CreateCourt)
	rg.POST("/courts/:id/availability", h.AddAvailability)
	rg.POST("/courts/:id/blocked", h.BlockSlot)
	rg.GET("/bookings", h.OwnerBookings)
}

func (h *Handler) ListVenues(c *gin.Context) {
	venues, err := h.service.ListVenues(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"venues": venues})
}

func (h *Handler) GetVenue(c *gin.Context) {
	venueID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid venue ID")
		return
	}

	v, err := h.service.GetVenue(c.Request.Context(), venueID)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, v)
}

func (h *Handler) CreateCourt(c *gin.Context) {
	venueID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid venue ID")
		return
	}

	var req CreateCourtRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	court, err := h.service.CreateCourt(c.Request.Context(), c.GetInt64("user_id"), c.GetString("role"), venueID, req)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, court)
}

func (h *Handler) AddAvailability(c *gin.Context) {
	courtID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid court ID")
		return
	}

	var req AddAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	w, err := h.service.AddAvailability(c.Request.Context(), c.GetInt64("user_id"), c.GetString("role"), courtID, req)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, w)
}

func (h *Handler) BlockSlot(c *gin.Context) {
	courtID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid court ID")
		return
	}

	var req BlockSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	b, err := h.service.BlockSlot(c.Request.Context(), c.GetInt64("user_id"), c.GetString("role"), courtID, req)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, b)
}

func (h *Handler) OwnerBookings(c *gin.Context) {
	bookings, err := h.service.OwnerBookings(c.Request.Context(), c.GetInt64("user_id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"bookings": bookings})
}

func (h *Handler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrInvalidRequest):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid date, time or request shape")
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Venue or court not found")
	case errors.Is(err, ErrForbidden):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "You do not manage this venue")
	case errors.Is(err, ErrWindowOverlap):
		response.Error(c, http.StatusConflict, "WINDOW_OVERLAP", "Availability window overlaps an existing one")
	case errors.Is(err, ErrDuplicateBlock):
		response.Error(c, http.StatusConflict, "DUPLICATE_BLOCK", "Identical blocked window already exists")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Unexpected error")
	}
}
