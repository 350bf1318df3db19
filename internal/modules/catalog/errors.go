package catalog

import "errors"

var (
	ErrInvalidRequest = errors.New("invalid catalog request")
	ErrNotFound       = errors.New("not found")
	ErrForbidden      = errors.New("forbidden")
	ErrWindowOverlap  = errors.New("availability window overlaps an existing one")
	ErrDuplicateBlock = errors.New("identical blocked window already exists")
)
