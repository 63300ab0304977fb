package mqtt

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/rs/zerolog/log"

	"github.com/quentinrf/distance-monitor/internal/domain"
)

// publishTimeout bounds how long one publish may block the monitor loop
const publishTimeout = 5 * time.Second

// readingPayload is the JSON wire format consumers subscribe to
type readingPayload struct {
	SensorID  string    `json:"sensorId"`
	Timestamp time.Time `json:"timestamp"`
	Value     int       `json:"value"`
	Unit      string    `json:"unit"`
	Proximity string    `json:"proximity"`
}

// Publisher forwards readings to an MQTT broker
// This implements the ports.ReadingPublisher interface
type Publisher struct {
	client   mqtt.Client
	topic    string
	sensorID string
}

// NewPublisher connects to the broker and returns a ready publisher.
// brokerURL is a paho broker URL (e.g. tcp://localhost:1883 or
// ssl://broker:8883). tlsCfg may be nil for plaintext connections.
func NewPublisher(brokerURL, sensorID, topic string, tlsCfg *tls.Config) (*Publisher, error) {
	opts := mqtt.NewClientOptions()
	opts.AddBroker(brokerURL)
	opts.SetClientID(fmt.Sprintf("distance-sensor-%s", sensorID))
	opts.SetCleanSession(true)
	opts.SetAutoReconnect(true)
	if tlsCfg != nil {
		opts.SetTLSConfig(tlsCfg)
	}
	opts.SetOnConnectHandler(func(client mqtt.Client) {
		log.Info().Str("broker", brokerURL).Msg("connected to MQTT broker")
	})
	opts.SetConnectionLostHandler(func(client mqtt.Client, err error) {
		log.Warn().Err(err).Msg("lost connection to MQTT broker")
	})

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("failed to connect to MQTT broker: %w", token.Error())
	}

	return &Publisher{
		client:   client,
		topic:    topic,
		sensorID: sensorID,
	}, nil
}

// PublishReading sends one reading as JSON at QoS 1
func (p *Publisher) PublishReading(ctx context.Context, reading *domain.DistanceReading) error {
	payload, err := json.Marshal(readingPayload{
		SensorID:  p.sensorID,
		Timestamp: reading.Timestamp,
		Value:     reading.Raw,
		Unit:      "raw",
		Proximity: reading.Proximity(),
	})
	if err != nil {
		return fmt.Errorf("failed to marshal reading: %w", err)
	}

	token := p.client.Publish(p.topic, 1, false, payload)
	if !token.WaitTimeout(publishTimeout) {
		return fmt.Errorf("publish to %s timed out", p.topic)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("failed to publish to %s: %w", p.topic, err)
	}

	return nil
}

// Close disconnects from the broker, allowing 250ms for in-flight messages
func (p *Publisher) Close() {
	p.client.Disconnect(250)
}
