package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const (
	StorageMemory = "memory"
	StorageMongo  = "mongo"
)

// Config aggregates application configuration loaded from environment
// variables, optionally seeded from a .env file.
type Config struct {
	Env      string `envconfig:"APP_ENV" default:"dev"`
	HTTPAddr string `envconfig:"HTTP_ADDR" default:":8080"`

	// StorageMode selects the persistence backend: "memory" runs without
	// external services, "mongo" requires MongoDB and Kafka.
	StorageMode string `envconfig:"STORAGE_MODE" default:"memory"`

	MongoURI string `envconfig:"MONGO_URI"`
	MongoDB  string `envconfig:"MONGO_DB" default:"turfmania"`

	KafkaBrokers     []string `envconfig:"KAFKA_BROKERS"`
	KafkaTopicPrefix string   `envconfig:"KAFKA_TOPIC_PREFIX"`

	OutboxPollInterval time.Duration   `envconfig:"OUTBOX_POLL_INTERVAL" default:"500ms"`
	RetryBackoff       []time.Duration `envconfig:"RETRY_BACKOFF" default:"1s,5s,30s"`
	IdempotencyTTL     time.Duration   `envconfig:"IDEMP_TTL" default:"168h"`

	JWTSecret string `envconfig:"JWT_SECRET"`

	// AdvancePercent is the share of a booking total collected upfront.
	AdvancePercent int64  `envconfig:"ADVANCE_PERCENT" default:"50"`
	Currency       string `envconfig:"CURRENCY" default:"BDT"`

	// TurfFixtures points at a JSON file of turfs loaded at boot.
	TurfFixtures string `envconfig:"TURF_FIXTURES"`
}

// Load parses configuration from the environment. A .env file in the working
// directory is applied first when present.
func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	cfg.StorageMode = strings.ToLower(cfg.StorageMode)
	cfg.Currency = strings.ToUpper(cfg.Currency)

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch c.StorageMode {
	case StorageMemory:
	case StorageMongo:
		if c.MongoURI == "" {
			return errors.New("config: MONGO_URI is required in mongo mode")
		}
		if len(c.KafkaBrokers) == 0 {
			return errors.New("config: KAFKA_BROKERS is required in mongo mode")
		}
	default:
		return fmt.Errorf("config: unknown STORAGE_MODE %q", c.StorageMode)
	}
	if c.JWTSecret == "" {
		return errors.New("config: JWT_SECRET is required")
	}
	if c.AdvancePercent < 1 || c.AdvancePercent > 100 {
		return fmt.Errorf("config: ADVANCE_PERCENT must be within 1..100, got %d", c.AdvancePercent)
	}
	if len(c.Currency) != 3 {
		return fmt.Errorf("config: CURRENCY must be a three letter code, got %q", c.Currency)
	}
	return nil
}
