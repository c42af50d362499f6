package main

import "helios/server/protocol"

// applyCommand routes one decoded client frame to the session's ship. Both
// control groups are validated before either is applied, so a frame that
// fails validation mutates nothing. A frame whose ship already left the world
// is a silent no-op; the disconnect race is expected.
func applyCommand(world *World, shipID string, cmd protocol.Command) error {
	if cmd.Data == nil {
		// Unknown top-level shape is ignored, not an error.
		return nil
	}

	var (
		engines  *protocol.EngineFlags
		rotation *protocol.RotationFlags
	)

	if cmd.Data.Engines != nil {
		flags, err := cmd.Data.Engines.Flags()
		if err != nil {
			return err
		}
		engines = &flags
	}
	if cmd.Data.Rotation != nil {
		flags, err := cmd.Data.Rotation.Flags()
		if err != nil {
			return err
		}
		rotation = &flags
	}

	if engines != nil {
		world.SetEngines(shipID, *engines)
	}
	if rotation != nil {
		world.SetRotation(shipID, *rotation)
	}
	return nil
}
