package domain

import "errors"

var (
	// ErrInvalidRaw indicates the raw sample value is invalid
	ErrInvalidRaw = errors.New("raw value cannot be negative")

	// ErrReadingNotFound indicates requested reading doesn't exist
	ErrReadingNotFound = errors.New("reading not found")

	// ErrSensorUnavailable indicates sensor cannot be read
	ErrSensorUnavailable = errors.New("sensor unavailable")
)
