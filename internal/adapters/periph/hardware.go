// Package periph implements the hardware port on real boards using the
// periph.io host drivers. Analog sampling goes through whatever ADC the
// caller wires up; digital lines are resolved from the GPIO registry by
// their BCM-style names.
package periph

import (
	"context"
	"fmt"
	"sync"

	"periph.io/x/conn/v3/analog"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"
)

// Hardware implements ports.Hardware over periph.io
type Hardware struct {
	mu   sync.Mutex
	adcs map[int]analog.PinADC
	outs map[int]gpio.PinIO
}

// New initialises the periph host and returns hardware backed by the
// given ADC channels, keyed by the pin number the device layer uses.
// host.Init is safe to call more than once.
func New(adcs map[int]analog.PinADC) (*Hardware, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("failed to init periph host: %w", err)
	}

	if adcs == nil {
		adcs = make(map[int]analog.PinADC)
	}

	return &Hardware{
		adcs: adcs,
		outs: make(map[int]gpio.PinIO),
	}, nil
}

// ReadAnalog samples the ADC wired to the given pin
func (h *Hardware) ReadAnalog(ctx context.Context, pin int) (int, error) {
	h.mu.Lock()
	adc, ok := h.adcs[pin]
	h.mu.Unlock()

	if !ok {
		return 0, fmt.Errorf("no ADC wired to pin %d", pin)
	}

	sample, err := adc.Read()
	if err != nil {
		return 0, fmt.Errorf("failed to read %s: %w", adc.Name(), err)
	}

	return int(sample.Raw), nil
}

// WriteDigital drives a GPIO line high or low
func (h *Hardware) WriteDigital(pin int, high bool) error {
	p, err := h.out(pin)
	if err != nil {
		return err
	}

	level := gpio.Low
	if high {
		level = gpio.High
	}

	return p.Out(level)
}

// out resolves and caches a GPIO output line by its BCM number
func (h *Hardware) out(pin int) (gpio.PinIO, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if p, ok := h.outs[pin]; ok {
		return p, nil
	}

	p := gpioreg.ByName(fmt.Sprintf("GPIO%d", pin))
	if p == nil {
		return nil, fmt.Errorf("no GPIO pin named GPIO%d", pin)
	}

	h.outs[pin] = p
	return p, nil
}

// Close halts every ADC channel
func (h *Hardware) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	var firstErr error
	for _, adc := range h.adcs {
		if err := adc.Halt(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
