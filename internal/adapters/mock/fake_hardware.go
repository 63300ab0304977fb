package mock

import (
	"context"
	"math/rand"
	"sync"
)

// DigitalWrite records one transition of a digital output line
type DigitalWrite struct {
	Pin  int
	High bool
}

// FakeHardware simulates the analog input and digital output lines for
// development and tests. It implements the ports.Hardware interface.
//
// By default ReadAnalog returns jittered values around a base, like a
// real sensor would. Tests can queue exact readings per pin instead.
type FakeHardware struct {
	mu        sync.Mutex
	baseValue int
	variation int
	queued    map[int][]int
	readErr   error
	writes    []DigitalWrite
	levels    map[int]bool
}

// NewFakeHardware creates hardware that returns realistic samples
// baseValue: average raw reading (e.g. 200)
// variation: +/- range (e.g. 150 means 50-350)
func NewFakeHardware(baseValue, variation int) *FakeHardware {
	return &FakeHardware{
		baseValue: baseValue,
		variation: variation,
		queued:    make(map[int][]int),
		levels:    make(map[int]bool),
	}
}

// QueueReading scripts the next analog sample for a pin. Queued values
// are returned in FIFO order before any jittered value.
func (h *FakeHardware) QueueReading(pin, value int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.queued[pin] = append(h.queued[pin], value)
}

// SetReadError makes every subsequent ReadAnalog fail with err
func (h *FakeHardware) SetReadError(err error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.readErr = err
}

// ReadAnalog returns the next scripted value for the pin, or a
// simulated sample around base ± variation
func (h *FakeHardware) ReadAnalog(ctx context.Context, pin int) (int, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.readErr != nil {
		return 0, h.readErr
	}

	if q := h.queued[pin]; len(q) > 0 {
		v := q[0]
		h.queued[pin] = q[1:]
		return v, nil
	}

	v := h.baseValue
	if h.variation > 0 {
		v += rand.Intn(2*h.variation+1) - h.variation
	}
	if v < 0 {
		v = 0
	}

	return v, nil
}

// WriteDigital records the transition and the resulting line level
func (h *FakeHardware) WriteDigital(pin int, high bool) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.writes = append(h.writes, DigitalWrite{Pin: pin, High: high})
	h.levels[pin] = high
	return nil
}

// Writes returns every digital transition in order
func (h *FakeHardware) Writes() []DigitalWrite {
	h.mu.Lock()
	defer h.mu.Unlock()

	out := make([]DigitalWrite, len(h.writes))
	copy(out, h.writes)
	return out
}

// Level returns the current level of a digital line (false if never written)
func (h *FakeHardware) Level(pin int) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.levels[pin]
}

// Close is a no-op for fake hardware
func (h *FakeHardware) Close() error {
	return nil
}
