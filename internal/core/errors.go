package core

import "errors"

// Error kinds the transport layer maps onto HTTP status codes. Services
// wrap these with context via fmt.Errorf("%w: ...", ...); handlers match
// with errors.Is.
var (
	ErrValidation = errors.New("invalid request")
	ErrNotFound   = errors.New("not found")
	ErrUpstream   = errors.New("upstream provider failure")
	ErrStorage    = errors.New("storage failure")
)
