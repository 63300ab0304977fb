package ports

import (
	"context"
)

// DistanceSensor defines the operations of a distance sensor unit
// This is a PORT - the device layer implements it over Hardware
type DistanceSensor interface {
	// ReadRaw returns the current raw distance sample
	ReadRaw(ctx context.Context) (int, error)

	// PrintData writes a diagnostic line with the pin and current reading
	PrintData(ctx context.Context) error

	// Blink pulses the indicator LED when the current reading is near
	Blink(ctx context.Context) error

	// Close releases any resources
	Close() error
}
