package ports_test

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/quentinrf/distance-monitor/internal/adapters/memory"
	"github.com/quentinrf/distance-monitor/internal/adapters/mock"
	"github.com/quentinrf/distance-monitor/internal/device"
	"github.com/quentinrf/distance-monitor/internal/domain"
	"github.com/quentinrf/distance-monitor/internal/ports"
)

type capturingPublisher struct {
	published chan *domain.DistanceReading
}

func (p *capturingPublisher) PublishReading(ctx context.Context, reading *domain.DistanceReading) error {
	p.published <- reading
	return nil
}

func TestMonitor_RecordsPublishesAndBlinks(t *testing.T) {
	hw := mock.NewFakeHardware(0, 0)
	// One poll reads the sensor three times: record, print, blink
	for i := 0; i < 3; i++ {
		hw.QueueReading(5, 10)
	}

	var console bytes.Buffer
	sensor := device.New(5, hw, device.Config{
		Console: &console,
		Sleep:   func(time.Duration) {},
	})

	repo := memory.NewReadingRepository()
	publisher := &capturingPublisher{published: make(chan *domain.DistanceReading, 1)}

	monitor := ports.NewMonitor(sensor, repo, publisher, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go monitor.Start(ctx)

	var published *domain.DistanceReading
	select {
	case published = <-publisher.published:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for published reading")
	}
	cancel()

	if published.Raw != 10 {
		t.Errorf("expected published raw 10, got %d", published.Raw)
	}
	if published.Proximity() != "Near" {
		t.Errorf("expected published proximity Near, got %s", published.Proximity())
	}

	latest, err := repo.GetLatestReading(context.Background())
	if err != nil {
		t.Fatalf("GetLatestReading failed: %v", err)
	}
	if latest.Raw != 10 {
		t.Errorf("expected stored raw 10, got %d", latest.Raw)
	}

	if got := console.String(); !strings.Contains(got, "The sensor pin 5 distance is: 10") {
		t.Errorf("expected diagnostic line on console, got %q", got)
	}

	writes := hw.Writes()
	if len(writes) != 2 || !writes[0].High || writes[1].High {
		t.Errorf("expected one high/low pulse for near reading, got %v", writes)
	}
}

func TestMonitor_NoPublisher(t *testing.T) {
	hw := mock.NewFakeHardware(50, 0) // far reading, no blink

	var console bytes.Buffer
	sensor := device.New(2, hw, device.Config{
		Console: &console,
		Sleep:   func(time.Duration) {},
	})

	repo := memory.NewReadingRepository()
	monitor := ports.NewMonitor(sensor, repo, nil, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go monitor.Start(ctx)

	deadline := time.Now().Add(2 * time.Second)
	var latest *domain.DistanceReading
	for time.Now().Before(deadline) {
		var err error
		latest, err = repo.GetLatestReading(context.Background())
		if err == nil {
			break
		}
		time.Sleep(5 * time.Millisecond)
	}
	cancel()

	if latest == nil {
		t.Fatal("timed out waiting for stored reading")
	}
	if latest.Raw != 50 {
		t.Errorf("expected stored raw 50, got %d", latest.Raw)
	}
	if writes := hw.Writes(); len(writes) != 0 {
		t.Errorf("expected no blink for far reading, got %v", writes)
	}
}
