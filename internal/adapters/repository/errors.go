package repository

import "errors"

// Sentinel kinds for match log errors.
var (
	ErrClosed = errors.New("match log closed")
)
