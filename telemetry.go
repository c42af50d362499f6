package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/segmentio/kafka-go"
)

// PositionSink delivers one keyed telemetry record to an external bus.
type PositionSink interface {
	Publish(ctx context.Context, key string, payload []byte) error
}

// planetRecord is the document published per planet per telemetry tick.
type planetRecord struct {
	TypeObject string  `json:"type_object"`
	Name       string  `json:"name"`
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Z          float64 `json:"z"`
	Timestamp  int64   `json:"timestamp"`
}

// telemetryPublisher forwards planet positions to a sink at a low cadence,
// independent of the simulation tick. Delivery is best effort: a failed batch
// is dropped, and the next tick's fresh snapshot supersedes it.
type telemetryPublisher struct {
	world    *World
	sink     PositionSink
	interval time.Duration
	metrics  *Metrics
}

// Run publishes until ctx is cancelled. Failures are logged and counted,
// never fatal.
func (t *telemetryPublisher) Run(ctx context.Context) {
	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := t.publishOnce(ctx); err != nil {
				log.Printf("telemetry publish failed: %v", err)
				t.metrics.TelemetryError()
			}
		}
	}
}

// publishOnce snapshots the planets and publishes one record per planet, all
// stamped with the same capture time.
func (t *telemetryPublisher) publishOnce(ctx context.Context) error {
	positions := t.world.SnapshotPositions()
	timestamp := time.Now().Unix()

	for _, pos := range positions {
		record := planetRecord{
			TypeObject: "planet",
			Name:       pos.Name,
			X:          pos.X,
			Y:          pos.Y,
			Timestamp:  timestamp,
		}
		payload, err := json.Marshal(record)
		if err != nil {
			return fmt.Errorf("marshal record for %s: %w", pos.Name, err)
		}
		if err := t.sink.Publish(ctx, pos.Name, payload); err != nil {
			return fmt.Errorf("publish %s: %w", pos.Name, err)
		}
	}
	return nil
}

// kafkaSink writes records to a Kafka topic, hashed on the key so one planet
// always lands on the same partition.
type kafkaSink struct {
	writer *kafka.Writer
}

func newKafkaSink(brokers []string, topic string) *kafkaSink {
	return &kafkaSink{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireOne,
			WriteTimeout: 5 * time.Second,
		},
	}
}

func (k *kafkaSink) Publish(ctx context.Context, key string, payload []byte) error {
	return k.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(key),
		Value: payload,
	})
}

func (k *kafkaSink) Close() error {
	return k.writer.Close()
}
