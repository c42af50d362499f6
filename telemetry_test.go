package main

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
)

type fakeSink struct {
	records map[string][]byte
	order   []string
	fail    bool
}

func newFakeSink() *fakeSink {
	return &fakeSink{records: make(map[string][]byte)}
}

func (f *fakeSink) Publish(_ context.Context, key string, payload []byte) error {
	if f.fail {
		return errors.New("broker unavailable")
	}
	f.records[key] = payload
	f.order = append(f.order, key)
	return nil
}

func TestTelemetryBatchSharesOneTimestamp(t *testing.T) {
	world := newWorld(defaultPlanets())
	world.Update(12.5)

	sink := newFakeSink()
	publisher := &telemetryPublisher{world: world, sink: sink}

	if err := publisher.publishOnce(context.Background()); err != nil {
		t.Fatalf("publishOnce failed: %v", err)
	}

	if len(sink.records) != 5 {
		t.Fatalf("got %d records, want 5", len(sink.records))
	}

	var timestamps []int64
	for name, payload := range sink.records {
		var record planetRecord
		if err := json.Unmarshal(payload, &record); err != nil {
			t.Fatalf("unmarshal record for %s: %v", name, err)
		}
		if record.TypeObject != "planet" {
			t.Fatalf("type_object = %q", record.TypeObject)
		}
		if record.Name != name {
			t.Fatalf("record keyed %q carries name %q", name, record.Name)
		}
		if record.Z != 0 {
			t.Fatalf("z = %v, want 0", record.Z)
		}
		timestamps = append(timestamps, record.Timestamp)
	}
	for _, ts := range timestamps[1:] {
		if ts != timestamps[0] {
			t.Fatalf("timestamps differ within one batch: %v", timestamps)
		}
	}
}

func TestTelemetryRecordsMatchWorldPositions(t *testing.T) {
	world := newWorld(defaultPlanets())
	world.Update(7.25)

	sink := newFakeSink()
	publisher := &telemetryPublisher{world: world, sink: sink}
	if err := publisher.publishOnce(context.Background()); err != nil {
		t.Fatalf("publishOnce failed: %v", err)
	}

	for _, pos := range world.SnapshotPositions() {
		var record planetRecord
		if err := json.Unmarshal(sink.records[pos.Name], &record); err != nil {
			t.Fatalf("unmarshal %s: %v", pos.Name, err)
		}
		if record.X != pos.X || record.Y != pos.Y {
			t.Fatalf("%s record = (%v, %v), world = (%v, %v)", pos.Name, record.X, record.Y, pos.X, pos.Y)
		}
	}
}

func TestTelemetryFailureDropsBatchWithoutRetry(t *testing.T) {
	world := newWorld(defaultPlanets())

	sink := newFakeSink()
	sink.fail = true
	publisher := &telemetryPublisher{world: world, sink: sink}

	if err := publisher.publishOnce(context.Background()); err == nil {
		t.Fatal("expected publish failure")
	}
	if len(sink.records) != 0 {
		t.Fatalf("failed batch left %d records", len(sink.records))
	}

	// The next tick publishes a fresh snapshot; nothing from the failed
	// batch is replayed.
	sink.fail = false
	world.Update(1.0)
	if err := publisher.publishOnce(context.Background()); err != nil {
		t.Fatalf("second publish failed: %v", err)
	}
	if len(sink.order) != 5 {
		t.Fatalf("got %d publishes after recovery, want 5", len(sink.order))
	}
}
