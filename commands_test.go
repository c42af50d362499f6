package main

import (
	"errors"
	"testing"

	"helios/server/protocol"
)

func mustParse(t *testing.T, payload string) protocol.Command {
	t.Helper()
	cmd, err := protocol.ParseCommand([]byte(payload))
	if err != nil {
		t.Fatalf("ParseCommand(%s) failed: %v", payload, err)
	}
	return cmd
}

func TestApplyCommandSetsEngines(t *testing.T) {
	world := newWorld(nil)
	id, _ := world.AddShip()

	cmd := mustParse(t, `{"data":{"engines":{"front":false,"back":true,"left":false,"right":false,"up":false,"down":false}}}`)
	if err := applyCommand(world, id, cmd); err != nil {
		t.Fatalf("applyCommand failed: %v", err)
	}

	ship, _ := world.GetShip(id)
	if !ship.Engines.Back || ship.Engines.Front {
		t.Fatalf("engine flags = %+v", ship.Engines.EngineFlags)
	}
}

func TestApplyCommandSetsRotation(t *testing.T) {
	world := newWorld(nil)
	id, _ := world.AddShip()

	cmd := mustParse(t, `{"data":{"rotation":{"left":true,"right":false,"up":false,"down":true}}}`)
	if err := applyCommand(world, id, cmd); err != nil {
		t.Fatalf("applyCommand failed: %v", err)
	}

	ship, _ := world.GetShip(id)
	if !ship.Rotation.Left || !ship.Rotation.Down || ship.Rotation.Right || ship.Rotation.Up {
		t.Fatalf("rotation flags = %+v", ship.Rotation.RotationFlags)
	}
}

func TestApplyCommandRejectsMissingField(t *testing.T) {
	world := newWorld(nil)
	id, _ := world.AddShip()
	before, _ := world.GetShip(id)

	cmd := mustParse(t, `{"data":{"rotation":{"left":true,"up":false,"down":false}}}`)
	err := applyCommand(world, id, cmd)
	if !errors.Is(err, protocol.ErrMissingField) {
		t.Fatalf("expected ErrMissingField, got %v", err)
	}

	after, _ := world.GetShip(id)
	if after.Rotation.RotationFlags != before.Rotation.RotationFlags {
		t.Fatalf("rejected command mutated rotation: %+v", after.Rotation.RotationFlags)
	}
}

func TestApplyCommandRejectsWholeFrameWhenOneGroupIsBad(t *testing.T) {
	world := newWorld(nil)
	id, _ := world.AddShip()

	// Valid engines group, rotation missing "right": nothing may apply.
	cmd := mustParse(t, `{"data":{"engines":{"front":true,"back":false,"left":false,"right":false,"up":false,"down":false},"rotation":{"left":true,"up":false,"down":false}}}`)
	if err := applyCommand(world, id, cmd); err == nil {
		t.Fatal("expected rejection")
	}

	ship, _ := world.GetShip(id)
	if ship.Engines.Front {
		t.Fatal("engines applied despite rejected frame")
	}
	if ship.Rotation.Left {
		t.Fatal("rotation applied despite rejected frame")
	}
}

func TestApplyCommandIgnoresUnknownShape(t *testing.T) {
	world := newWorld(nil)
	id, _ := world.AddShip()

	for _, payload := range []string{`{}`, `{"other":1}`, `{"data":{}}`, `{"data":{"unknown":{"x":1}}}`} {
		cmd := mustParse(t, payload)
		if err := applyCommand(world, id, cmd); err != nil {
			t.Fatalf("payload %s: unexpected error %v", payload, err)
		}
	}

	ship, _ := world.GetShip(id)
	if ship.Engines.EngineFlags != (protocol.EngineFlags{}) {
		t.Fatalf("unknown shapes mutated engines: %+v", ship.Engines.EngineFlags)
	}
}

func TestApplyCommandVanishedShipIsNoop(t *testing.T) {
	world := newWorld(nil)

	cmd := mustParse(t, `{"data":{"engines":{"front":false,"back":true,"left":false,"right":false,"up":false,"down":false}}}`)
	if err := applyCommand(world, "already-gone", cmd); err != nil {
		t.Fatalf("expected silent no-op, got %v", err)
	}
}
