package store

import "errors"

var (
	// ErrDuplicateKey is returned when inserting an item whose id is already stored.
	ErrDuplicateKey = errors.New("store: item with this id already exists")

	// ErrNotFound is returned when no item is stored under the requested id.
	ErrNotFound = errors.New("store: item not found")

	// ErrInvalidQuantity is returned when a quantity update is negative.
	ErrInvalidQuantity = errors.New("store: quantity cannot be negative")
)
