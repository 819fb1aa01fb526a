package repository

import "errors"

var (
	// ErrNotFound is returned when a lookup matches no row.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateName is returned when a map name is already taken.
	ErrDuplicateName = errors.New("name already in use")
)
