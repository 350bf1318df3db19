package review

import "errors"

var (
	ErrInvalidRequest  = errors.New("invalid review request")
	ErrVenueNotFound   = errors.New("venue not found")
	ErrAlreadyReviewed = errors.New("user already reviewed this venue")
)
