package repository

import "errors"

// ErrNotFound is returned when a lookup or a targeted delete matches no rows.
var ErrNotFound = errors.New("not found")
