package main

import (
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := loadConfig()
	if err != nil {
		t.Fatalf("loadConfig failed: %v", err)
	}

	if cfg.ListenAddr != ":3030" {
		t.Fatalf("listen addr = %s", cfg.ListenAddr)
	}
	if len(cfg.KafkaBrokers) != 1 || cfg.KafkaBrokers[0] != "localhost:9092" {
		t.Fatalf("brokers = %v", cfg.KafkaBrokers)
	}
	if cfg.KafkaTopic != "planet-positions" {
		t.Fatalf("topic = %s", cfg.KafkaTopic)
	}
	if cfg.TickRate != 60 || cfg.BroadcastRate != 60 {
		t.Fatalf("rates = %d/%d, want 60/60", cfg.TickRate, cfg.BroadcastRate)
	}
	if cfg.TelemetryInterval != time.Second {
		t.Fatalf("telemetry interval = %s", cfg.TelemetryInterval)
	}
	if !cfg.TelemetryEnabled {
		t.Fatal("telemetry should default on")
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("TICK_RATE", "30")
	t.Setenv("BROADCAST_RATE", "30")
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092,kafka-2:9092")
	t.Setenv("TELEMETRY_INTERVAL", "250ms")
	t.Setenv("TELEMETRY_ENABLED", "false")

	cfg, err := loadConfig()
	if err != nil {
		t.Fatalf("loadConfig failed: %v", err)
	}

	if cfg.TickRate != 30 || cfg.BroadcastRate != 30 {
		t.Fatalf("rates = %d/%d, want 30/30", cfg.TickRate, cfg.BroadcastRate)
	}
	if len(cfg.KafkaBrokers) != 2 {
		t.Fatalf("brokers = %v", cfg.KafkaBrokers)
	}
	if cfg.TelemetryInterval != 250*time.Millisecond {
		t.Fatalf("telemetry interval = %s", cfg.TelemetryInterval)
	}
	if cfg.TelemetryEnabled {
		t.Fatal("telemetry should be off")
	}
}

func TestLoadConfigRejectsNonPositiveRates(t *testing.T) {
	t.Setenv("TICK_RATE", "0")
	if _, err := loadConfig(); err == nil {
		t.Fatal("expected error for TICK_RATE=0")
	}
}
