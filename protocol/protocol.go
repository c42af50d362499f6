// Package protocol defines the JSON frames clients send over the websocket
// and the validation rules for inbound control commands. The types are shared
// with the schema generator under cmd/schema so client tooling can validate
// frames against a machine-readable document.
package protocol

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrMissingField reports a control group that arrived without one of its
// required boolean members. Such a command is rejected whole; it must never
// partially apply.
var ErrMissingField = errors.New("missing required field")

// EngineFlags are the translational thruster switches a client can toggle.
type EngineFlags struct {
	Front bool `json:"front"`
	Back  bool `json:"back"`
	Left  bool `json:"left"`
	Right bool `json:"right"`
	Up    bool `json:"up"`
	Down  bool `json:"down"`
}

// RotationFlags are the attitude thruster switches a client can toggle.
type RotationFlags struct {
	Left  bool `json:"left"`
	Right bool `json:"right"`
	Up    bool `json:"up"`
	Down  bool `json:"down"`
}

// Command is the envelope around every inbound frame. Frames whose top-level
// shape is not recognized decode to a Command with a nil Data and are
// ignored by the handler.
type Command struct {
	Data *CommandData `json:"data,omitempty" jsonschema:"description=Envelope holding at most one engines and one rotation group"`
}

// CommandData carries the optional control groups. Either may be present
// independently.
type CommandData struct {
	Engines  *EngineCommand   `json:"engines,omitempty" jsonschema:"description=Full replacement for the translational thruster flags"`
	Rotation *RotationCommand `json:"rotation,omitempty" jsonschema:"description=Full replacement for the attitude thruster flags"`
}

// EngineCommand mirrors EngineFlags with pointer fields so a missing member
// is distinguishable from an explicit false.
type EngineCommand struct {
	Front *bool `json:"front" jsonschema:"description=Thrust against the heading"`
	Back  *bool `json:"back" jsonschema:"description=Thrust along the heading"`
	Left  *bool `json:"left" jsonschema:"description=Lateral thrust to port"`
	Right *bool `json:"right" jsonschema:"description=Lateral thrust to starboard"`
	Up    *bool `json:"up" jsonschema:"description=Vertical thrust along the local up axis"`
	Down  *bool `json:"down" jsonschema:"description=Vertical thrust against the local up axis"`
}

// RotationCommand mirrors RotationFlags with pointer fields so a missing
// member is distinguishable from an explicit false.
type RotationCommand struct {
	Left  *bool `json:"left" jsonschema:"description=Yaw left"`
	Right *bool `json:"right" jsonschema:"description=Yaw right"`
	Up    *bool `json:"up" jsonschema:"description=Pitch down toward negative"`
	Down  *bool `json:"down" jsonschema:"description=Pitch up toward positive"`
}

// ParseCommand decodes one inbound frame. A frame that is not valid JSON, or
// that carries a wrongly typed member, is rejected as a whole.
func ParseCommand(payload []byte) (Command, error) {
	var cmd Command
	if err := json.Unmarshal(payload, &cmd); err != nil {
		return Command{}, fmt.Errorf("decode command: %w", err)
	}
	return cmd, nil
}

// Flags validates the group and expands it into a full flag set. Every member
// must be present.
func (c *EngineCommand) Flags() (EngineFlags, error) {
	required := []struct {
		name  string
		value *bool
	}{
		{"front", c.Front},
		{"back", c.Back},
		{"left", c.Left},
		{"right", c.Right},
		{"up", c.Up},
		{"down", c.Down},
	}
	for _, field := range required {
		if field.value == nil {
			return EngineFlags{}, fmt.Errorf("engines.%s: %w", field.name, ErrMissingField)
		}
	}
	return EngineFlags{
		Front: *c.Front,
		Back:  *c.Back,
		Left:  *c.Left,
		Right: *c.Right,
		Up:    *c.Up,
		Down:  *c.Down,
	}, nil
}

// Flags validates the group and expands it into a full flag set. Every member
// must be present.
func (c *RotationCommand) Flags() (RotationFlags, error) {
	required := []struct {
		name  string
		value *bool
	}{
		{"left", c.Left},
		{"right", c.Right},
		{"up", c.Up},
		{"down", c.Down},
	}
	for _, field := range required {
		if field.value == nil {
			return RotationFlags{}, fmt.Errorf("rotation.%s: %w", field.name, ErrMissingField)
		}
	}
	return RotationFlags{
		Left:  *c.Left,
		Right: *c.Right,
		Up:    *c.Up,
		Down:  *c.Down,
	}, nil
}
