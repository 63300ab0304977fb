package ports

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/quentinrf/distance-monitor/internal/domain"
)

// ReadingPublisher forwards readings to an external consumer
type ReadingPublisher interface {
	PublishReading(ctx context.Context, reading *domain.DistanceReading) error
}

// Monitor handles periodic sensor reading, storage and telemetry
type Monitor struct {
	sensor    DistanceSensor
	repo      domain.ReadingRepository
	publisher ReadingPublisher // optional, may be nil
	interval  time.Duration
}

// NewMonitor creates a new background monitor
func NewMonitor(sensor DistanceSensor, repo domain.ReadingRepository, publisher ReadingPublisher, interval time.Duration) *Monitor {
	return &Monitor{
		sensor:    sensor,
		repo:      repo,
		publisher: publisher,
		interval:  interval,
	}
}

// Start begins periodic sensor reading
// This runs in a goroutine until context is cancelled
func (m *Monitor) Start(ctx context.Context) {
	log.Info().
		Dur("interval", m.interval).
		Msg("starting background monitor")

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	cleanupTicker := time.NewTicker(24 * time.Hour)
	defer cleanupTicker.Stop()

	// Record immediately on start
	m.pollOnce(ctx)

	for {
		select {
		case <-ticker.C:
			m.pollOnce(ctx)

		case <-cleanupTicker.C:
			if err := m.repo.DeleteOldReadings(ctx, 30*24*time.Hour); err != nil {
				log.Error().Err(err).Msg("failed to delete old readings")
			} else {
				log.Info().Msg("deleted readings older than 30 days")
			}

		case <-ctx.Done():
			log.Info().Msg("stopping background monitor")
			return
		}
	}
}

// pollOnce reads the sensor, persists the reading and drives the outputs
func (m *Monitor) pollOnce(ctx context.Context) {
	log.Debug().Msg("reading sensor")

	raw, err := m.sensor.ReadRaw(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to read sensor")
		return
	}

	reading, err := domain.NewDistanceReading(raw)
	if err != nil {
		log.Error().Err(err).Msg("failed to create reading")
		return
	}

	if err := m.repo.SaveReading(ctx, reading); err != nil {
		log.Error().Err(err).Msg("failed to save reading")
		return
	}

	if err := m.sensor.PrintData(ctx); err != nil {
		log.Error().Err(err).Msg("failed to print sensor data")
	}

	if err := m.sensor.Blink(ctx); err != nil {
		log.Error().Err(err).Msg("failed to blink indicator")
	}

	if m.publisher != nil {
		if err := m.publisher.PublishReading(ctx, reading); err != nil {
			log.Error().Err(err).Msg("failed to publish reading")
			// Don't fail - the reading is already stored
		}
	}

	log.Info().
		Int("raw", raw).
		Str("proximity", reading.Proximity()).
		Msg("recorded distance reading")
}
