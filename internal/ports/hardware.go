package ports

import (
	"context"
)

// AnalogReader samples an analog input channel
type AnalogReader interface {
	// ReadAnalog returns the raw sample for the given pin
	ReadAnalog(ctx context.Context, pin int) (int, error)
}

// DigitalWriter drives a digital output line high or low
type DigitalWriter interface {
	WriteDigital(pin int, high bool) error
}

// Hardware groups the capabilities the device layer needs
// This is a PORT - adapters (periph, mock) will implement it
type Hardware interface {
	AnalogReader
	DigitalWriter

	// Close releases any resources
	Close() error
}
