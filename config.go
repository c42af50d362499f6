package main

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds every runtime knob, loaded from the environment.
type Config struct {
	ListenAddr        string        `env:"LISTEN_ADDR" envDefault:":3030"`
	BackendURL        string        `env:"BACKEND_URL" envDefault:"http://127.0.0.1:3030"`
	WebsocketURL      string        `env:"WEBSOCKET_URL" envDefault:"ws://127.0.0.1:3030/ws"`
	KafkaBrokers      []string      `env:"KAFKA_BROKERS" envDefault:"localhost:9092"`
	KafkaTopic        string        `env:"KAFKA_TOPIC" envDefault:"planet-positions"`
	TickRate          int           `env:"TICK_RATE" envDefault:"60"`
	BroadcastRate     int           `env:"BROADCAST_RATE" envDefault:"60"`
	TelemetryInterval time.Duration `env:"TELEMETRY_INTERVAL" envDefault:"1s"`
	TelemetryEnabled  bool          `env:"TELEMETRY_ENABLED" envDefault:"true"`
}

func loadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.TickRate <= 0 {
		return Config{}, fmt.Errorf("TICK_RATE must be positive, got %d", cfg.TickRate)
	}
	if cfg.BroadcastRate <= 0 {
		return Config{}, fmt.Errorf("BROADCAST_RATE must be positive, got %d", cfg.BroadcastRate)
	}
	if cfg.TelemetryInterval <= 0 {
		return Config{}, fmt.Errorf("TELEMETRY_INTERVAL must be positive, got %s", cfg.TelemetryInterval)
	}
	return cfg, nil
}
