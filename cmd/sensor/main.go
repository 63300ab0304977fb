package main

import (
	"context"
	"crypto/tls"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/quentinrf/distance-monitor/internal/adapters/memory"
	"github.com/quentinrf/distance-monitor/internal/adapters/mock"
	mqttAdapter "github.com/quentinrf/distance-monitor/internal/adapters/mqtt"
	"github.com/quentinrf/distance-monitor/internal/adapters/sqlite"
	"github.com/quentinrf/distance-monitor/internal/device"
	"github.com/quentinrf/distance-monitor/internal/domain"
	"github.com/quentinrf/distance-monitor/internal/ports"
	"github.com/quentinrf/distance-monitor/pkg/tlsconfig"
)

func main() {
	// Initialize logger
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	log.Info().Msg("starting distance monitor")

	// Read configuration from environment
	config := loadConfig()

	// Initialize repository
	var repo domain.ReadingRepository
	switch config.RepoType {
	case "sqlite":
		r, err := sqlite.NewReadingRepository(config.DBPath)
		if err != nil {
			log.Fatal().Err(err).Str("db_path", config.DBPath).Msg("failed to open SQLite database")
		}
		defer r.Close()
		repo = r
		log.Info().Str("db_path", config.DBPath).Msg("initialized SQLite repository")
	default:
		repo = memory.NewReadingRepository()
		log.Info().Msg("initialized in-memory repository")
	}

	// Initialize hardware
	var hw ports.Hardware
	switch config.SensorType {
	case "periph":
		log.Fatal().Msg("no ADC driver wired for this board; set SENSOR_TYPE=mock")
	default:
		hw = mock.NewFakeHardware(200, 150) // 200±150 raw units
		log.Info().Msg("initialized mock hardware")
	}

	sensor := device.New(config.SensorPin, hw, device.Config{
		LEDPin:        config.LEDPin,
		NearThreshold: config.NearThreshold,
		BlinkDuration: config.BlinkDuration,
	})
	defer sensor.Close()

	log.Info().
		Int("sensor_pin", config.SensorPin).
		Int("led_pin", config.LEDPin).
		Int("near_threshold", config.NearThreshold).
		Msg("initialized sensor")

	// Initialize telemetry publisher
	var publisher ports.ReadingPublisher
	if config.MQTTBroker != "" {
		tlsCfg, err := loadBrokerTLS(config)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to load TLS config")
		}

		p, err := mqttAdapter.NewPublisher(config.MQTTBroker, config.SensorID, config.MQTTTopic, tlsCfg)
		if err != nil {
			log.Fatal().Err(err).Str("broker", config.MQTTBroker).Msg("failed to connect to MQTT broker")
		}
		defer p.Close()
		publisher = p
		log.Info().Str("topic", config.MQTTTopic).Msg("MQTT telemetry enabled")
	} else {
		log.Warn().Msg("MQTT_BROKER not set — telemetry disabled")
	}

	// Start background monitor
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	monitor := ports.NewMonitor(sensor, repo, publisher, config.RecordInterval)
	go monitor.Start(ctx)

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down...")

	// Graceful shutdown
	cancel() // Stop monitor

	log.Info().Msg("sensor stopped")
}

// Config holds application configuration
type Config struct {
	SensorID       string
	SensorPin      int
	LEDPin         int
	NearThreshold  int
	BlinkDuration  time.Duration
	RecordInterval time.Duration
	RepoType       string // "memory" | "sqlite"
	DBPath         string // SQLite database file path (used when RepoType=sqlite)
	SensorType     string // "mock" | "periph"
	MQTTBroker     string // broker URL; empty disables telemetry
	MQTTTopic      string
	TLSCert        string // path to this service's certificate
	TLSKey         string // path to this service's private key
	TLSCA          string // path to the CA certificate
}

// loadConfig reads configuration from environment variables
func loadConfig() Config {
	sensorID := os.Getenv("SENSOR_ID")
	if sensorID == "" {
		sensorID = "distance_1"
	}

	sensorPin := intEnv("SENSOR_PIN", 5)
	ledPin := intEnv("LED_PIN", device.DefaultLEDPin)
	nearThreshold := intEnv("NEAR_THRESHOLD", domain.NearThreshold)

	blinkDuration := device.DefaultBlinkDuration
	if durStr := os.Getenv("BLINK_DURATION"); durStr != "" {
		if d, err := time.ParseDuration(durStr); err == nil {
			blinkDuration = d
		}
	}

	recordInterval := 5 * time.Second
	if intervalStr := os.Getenv("RECORD_INTERVAL"); intervalStr != "" {
		if d, err := time.ParseDuration(intervalStr); err == nil {
			recordInterval = d
		}
	}

	repoType := os.Getenv("REPO_TYPE")
	if repoType == "" {
		repoType = "memory"
	}

	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = "./distance.db"
	}

	sensorType := os.Getenv("SENSOR_TYPE")
	if sensorType == "" {
		sensorType = "mock"
	}

	mqttTopic := os.Getenv("MQTT_TOPIC")
	if mqttTopic == "" {
		mqttTopic = "sensors/distance/" + sensorID
	}

	return Config{
		SensorID:       sensorID,
		SensorPin:      sensorPin,
		LEDPin:         ledPin,
		NearThreshold:  nearThreshold,
		BlinkDuration:  blinkDuration,
		RecordInterval: recordInterval,
		RepoType:       repoType,
		DBPath:         dbPath,
		SensorType:     sensorType,
		MQTTBroker:     os.Getenv("MQTT_BROKER"),
		MQTTTopic:      mqttTopic,
		TLSCert:        os.Getenv("TLS_CERT"),
		TLSKey:         os.Getenv("TLS_KEY"),
		TLSCA:          os.Getenv("TLS_CA"),
	}
}

// loadBrokerTLS builds the broker TLS config when certificates are configured
func loadBrokerTLS(config Config) (*tls.Config, error) {
	if config.TLSCert == "" {
		log.Warn().Msg("TLS_CERT not set — connecting to broker without TLS (dev mode only)")
		return nil, nil
	}
	return tlsconfig.LoadClientTLS(config.TLSCert, config.TLSKey, config.TLSCA)
}

// intEnv reads an integer environment variable with a fallback
func intEnv(key string, fallback int) int {
	if s := os.Getenv(key); s != "" {
		if n, err := strconv.Atoi(s); err == nil {
			return n
		}
	}
	return fallback
}
