package booking

import "errors"

var (
	ErrInvalidRequest       = errors.New("invalid booking request")
	ErrNotFound             = errors.New("booking not found")
	ErrCourtNotFound        = errors.New("court not found")
	ErrVenueNotFound        = errors.New("venue not found")
	ErrSlotBlocked          = errors.New("slot overlaps a blocked window")
	ErrSlotTaken            = errors.New("slot already booked")
	ErrNoAvailabilityWindow = errors.New("no availability window matches the slot")
	ErrForbidden            = errors.New("forbidden")
	ErrAlreadyStarted       = errors.New("booking has already started")
)
