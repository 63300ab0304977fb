package mqtt

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/quentinrf/distance-monitor/internal/domain"
)

type fakeToken struct {
	err error
}

func (t *fakeToken) Wait() bool                     { return true }
func (t *fakeToken) WaitTimeout(time.Duration) bool { return true }
func (t *fakeToken) Error() error                   { return t.err }
func (t *fakeToken) Done() <-chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}

// fakeClient records the last publish and satisfies mqtt.Client
type fakeClient struct {
	topic    string
	qos      byte
	retained bool
	payload  []byte
	pubErr   error
}

func (c *fakeClient) IsConnected() bool      { return true }
func (c *fakeClient) IsConnectionOpen() bool { return true }
func (c *fakeClient) Connect() mqtt.Token    { return &fakeToken{} }
func (c *fakeClient) Disconnect(uint)        {}

func (c *fakeClient) Publish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token {
	c.topic = topic
	c.qos = qos
	c.retained = retained
	c.payload = payload.([]byte)
	return &fakeToken{err: c.pubErr}
}

func (c *fakeClient) Subscribe(string, byte, mqtt.MessageHandler) mqtt.Token { return &fakeToken{} }
func (c *fakeClient) SubscribeMultiple(map[string]byte, mqtt.MessageHandler) mqtt.Token {
	return &fakeToken{}
}
func (c *fakeClient) Unsubscribe(...string) mqtt.Token        { return &fakeToken{} }
func (c *fakeClient) AddRoute(string, mqtt.MessageHandler)    {}
func (c *fakeClient) OptionsReader() mqtt.ClientOptionsReader { return mqtt.ClientOptionsReader{} }

func TestPublishReading(t *testing.T) {
	client := &fakeClient{}
	publisher := &Publisher{
		client:   client,
		topic:    "sensors/distance/distance_1",
		sensorID: "distance_1",
	}

	reading := &domain.DistanceReading{
		ID:        1,
		Raw:       42,
		Timestamp: time.Now(),
	}

	if err := publisher.PublishReading(context.Background(), reading); err != nil {
		t.Fatalf("PublishReading failed: %v", err)
	}

	if client.topic != "sensors/distance/distance_1" {
		t.Errorf("expected topic sensors/distance/distance_1, got %s", client.topic)
	}
	if client.qos != 1 {
		t.Errorf("expected QoS 1, got %d", client.qos)
	}
	if client.retained {
		t.Error("expected message not retained")
	}

	var payload readingPayload
	if err := json.Unmarshal(client.payload, &payload); err != nil {
		t.Fatalf("payload is not valid JSON: %v", err)
	}
	if payload.SensorID != "distance_1" {
		t.Errorf("expected sensorId distance_1, got %s", payload.SensorID)
	}
	if payload.Value != 42 {
		t.Errorf("expected value 42, got %d", payload.Value)
	}
	if payload.Unit != "raw" {
		t.Errorf("expected unit raw, got %s", payload.Unit)
	}
	if payload.Proximity != "Far" {
		t.Errorf("expected proximity Far, got %s", payload.Proximity)
	}
}

func TestPublishReading_BrokerError(t *testing.T) {
	client := &fakeClient{pubErr: errors.New("broker gone")}
	publisher := &Publisher{
		client:   client,
		topic:    "sensors/distance/distance_1",
		sensorID: "distance_1",
	}

	reading := &domain.DistanceReading{Raw: 10, Timestamp: time.Now()}

	if err := publisher.PublishReading(context.Background(), reading); err == nil {
		t.Error("expected publish error to surface")
	}
}
