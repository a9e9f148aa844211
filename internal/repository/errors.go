package repository

import "errors"

// ErrNotFound is returned when no save record exists yet.
var ErrNotFound = errors.New("not found")
