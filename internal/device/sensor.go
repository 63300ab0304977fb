// Package device implements the distance sensor unit on top of the
// hardware port, so the logic runs unchanged against real GPIO or a fake.
package device

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/quentinrf/distance-monitor/internal/domain"
	"github.com/quentinrf/distance-monitor/internal/ports"
)

const (
	// DefaultLEDPin is the built-in indicator LED line
	DefaultLEDPin = 13

	// DefaultBlinkDuration is how long the LED is held high, and then low
	DefaultBlinkDuration = 250 * time.Millisecond
)

// Config holds the tunable parts of a Sensor. Zero values fall back to
// the defaults above, the domain near threshold, stdout and time.Sleep.
type Config struct {
	LEDPin        int
	NearThreshold int
	BlinkDuration time.Duration
	Console       io.Writer
	Sleep         func(time.Duration)
}

// Sensor wraps a single analog distance sensor on a fixed pin
type Sensor struct {
	pin       int
	hw        ports.Hardware
	ledPin    int
	threshold int
	blinkDur  time.Duration
	console   io.Writer
	sleep     func(time.Duration)
}

// New creates a Sensor for the given analog pin. The pin is not
// validated; wiring a nonexistent channel is the caller's problem.
func New(pin int, hw ports.Hardware, cfg Config) *Sensor {
	if cfg.LEDPin == 0 {
		cfg.LEDPin = DefaultLEDPin
	}
	if cfg.NearThreshold == 0 {
		cfg.NearThreshold = domain.NearThreshold
	}
	if cfg.BlinkDuration == 0 {
		cfg.BlinkDuration = DefaultBlinkDuration
	}
	if cfg.Console == nil {
		cfg.Console = os.Stdout
	}
	if cfg.Sleep == nil {
		cfg.Sleep = time.Sleep
	}

	return &Sensor{
		pin:       pin,
		hw:        hw,
		ledPin:    cfg.LEDPin,
		threshold: cfg.NearThreshold,
		blinkDur:  cfg.BlinkDuration,
		console:   cfg.Console,
		sleep:     cfg.Sleep,
	}
}

// Pin returns the analog input pin this sensor samples
func (s *Sensor) Pin() int {
	return s.pin
}

// ReadRaw returns the raw sample for the sensor pin. No unit
// conversion, no averaging - a straight pass-through of the hardware read.
func (s *Sensor) ReadRaw(ctx context.Context) (int, error) {
	return s.hw.ReadAnalog(ctx, s.pin)
}

// PrintData writes a diagnostic line with the pin and the current reading
func (s *Sensor) PrintData(ctx context.Context) error {
	raw, err := s.ReadRaw(ctx)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintf(s.console, "The sensor pin %d distance is: %d\n", s.pin, raw)
	return err
}

// Blink reads the sensor and, if the reading is below the near
// threshold, pulses the LED high then low for the blink duration each.
// The call blocks for the full pulse. Readings at or above the
// threshold leave the LED line untouched.
func (s *Sensor) Blink(ctx context.Context) error {
	raw, err := s.ReadRaw(ctx)
	if err != nil {
		return err
	}

	if raw >= s.threshold {
		return nil
	}

	if err := s.hw.WriteDigital(s.ledPin, true); err != nil {
		return err
	}
	s.sleep(s.blinkDur)

	if err := s.hw.WriteDigital(s.ledPin, false); err != nil {
		return err
	}
	s.sleep(s.blinkDur)

	return nil
}

// Close releases the underlying hardware
func (s *Sensor) Close() error {
	return s.hw.Close()
}
