package domain

import "errors"

var (
	// ErrNotFound is returned when a flight, passenger or reservation id does not resolve.
	ErrNotFound = errors.New("not found")

	// ErrSeatsUnavailable is returned when a booking targets a flight with no seats left.
	ErrSeatsUnavailable = errors.New("no seats available")

	// ErrInvalidInput wraps request validation failures raised before any state is read.
	ErrInvalidInput = errors.New("invalid input")
)
