package usecase

import "errors"

// Zero-result queries are normal answers, not errors, so there is no
// not-found sentinel.
var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrStoreUnavailable = errors.New("store unavailable")
)
