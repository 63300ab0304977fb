package domain

import (
	"time"
)

// NearThreshold is the raw reading below which an object counts as near
// the sensor. Raw sensor units, not a calibrated distance.
const NearThreshold = 30

// DistanceReading represents a single distance measurement
// This is pure domain logic - no database, no MQTT, just business concepts
type DistanceReading struct {
	ID        int64
	Raw       int
	Timestamp time.Time
}

// NewDistanceReading creates a new reading with validation
func NewDistanceReading(raw int) (*DistanceReading, error) {
	// Business rule: a raw sample cannot be negative
	if raw < 0 {
		return nil, ErrInvalidRaw
	}

	return &DistanceReading{
		Raw:       raw,
		Timestamp: time.Now(),
	}, nil
}

// IsNear returns true if the reading indicates an object close to the sensor
func (r *DistanceReading) IsNear() bool {
	return r.Raw < NearThreshold
}

// Proximity returns a human-readable category
func (r *DistanceReading) Proximity() string {
	if r.IsNear() {
		return "Near"
	}
	return "Far"
}
