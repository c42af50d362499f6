package main

import (
	"math"

	"github.com/google/uuid"

	"helios/server/protocol"
)

const (
	defaultEnginePower   = 1.0
	defaultRotationPower = 0.5
)

// Vec3 is a 3-vector serialized as a JSON array.
type Vec3 [3]float64

func (v Vec3) addScaled(o Vec3, k float64) Vec3 {
	return Vec3{v[0] + o[0]*k, v[1] + o[1]*k, v[2] + o[2]*k}
}

func (v Vec3) norm() float64 {
	return math.Sqrt(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])
}

func (v Vec3) normalized() Vec3 {
	n := v.norm()
	if n == 0 {
		return v
	}
	return Vec3{v[0] / n, v[1] / n, v[2] / n}
}

// EngineState pairs the translational thruster flags with their drive power.
type EngineState struct {
	Power float64 `json:"power"`
	protocol.EngineFlags
}

// RotationState pairs the attitude thruster flags with their drive power.
type RotationState struct {
	Power float64 `json:"power"`
	protocol.RotationFlags
}

// Ship is one player-controlled vessel. The struct doubles as the wire view;
// the world hands out copies, never pointers.
type Ship struct {
	ID       string        `json:"uuid"`
	Velocity Vec3          `json:"speed"`
	Position Vec3          `json:"position"`
	Heading  Vec3          `json:"direction"`
	Engines  EngineState   `json:"engines"`
	Rotation RotationState `json:"rotation_engines"`
	Yaw      float64       `json:"angle"`
	Pitch    float64       `json:"pitch"`
}

// NewShip builds a ship at the spawn point with all thrusters idle.
//
// The spawn heading is (1,0,0) while yaw starts at -π/2; the two disagree
// until the first tick recomputes heading from yaw and pitch. Clients were
// built against that first-frame value, so it is kept rather than derived.
func NewShip() *Ship {
	return &Ship{
		ID:       uuid.NewString(),
		Position: Vec3{0, 0, 450},
		Heading:  Vec3{1, 0, 0},
		Yaw:      -math.Pi / 2,
		Engines:  EngineState{Power: defaultEnginePower},
		Rotation: RotationState{Power: defaultRotationPower},
	}
}

// Update advances the ship by dt seconds: orientation first, then velocity,
// then position. Explicit Euler, no damping; velocity is unbounded while a
// thruster stays lit.
func (s *Ship) Update(dt float64) {
	s.rotate(dt)
	s.accelerate(dt)
	s.Position = s.Position.addScaled(s.Velocity, dt)
}

// rotate accumulates yaw and pitch from the active attitude thrusters and
// rebuilds the heading. Yaw and pitch run free; there is deliberately no
// guard at pitch = ±π/2.
func (s *Ship) rotate(dt float64) {
	step := dt * s.Rotation.Power

	if s.Rotation.Left {
		s.Yaw += step
	}
	if s.Rotation.Right {
		s.Yaw -= step
	}
	if s.Rotation.Up {
		s.Pitch -= step
	}
	if s.Rotation.Down {
		s.Pitch += step
	}

	s.Heading = Vec3{
		math.Cos(s.Yaw) * math.Cos(s.Pitch),
		math.Sin(s.Pitch),
		math.Sin(s.Yaw) * math.Cos(s.Pitch),
	}.normalized()
}

// accelerate adds thrust from every lit engine to the velocity. Opposing
// engines cancel additively.
func (s *Ship) accelerate(dt float64) {
	impulse := dt * s.Engines.Power

	if s.Engines.Front {
		s.Velocity = s.Velocity.addScaled(s.Heading, -impulse)
	}
	if s.Engines.Back {
		s.Velocity = s.Velocity.addScaled(s.Heading, impulse)
	}

	// Local vertical: the heading tilted back upright by the current pitch.
	vertical := Vec3{
		-s.Heading[0] * math.Sin(s.Pitch),
		math.Cos(s.Pitch),
		-s.Heading[2] * math.Sin(s.Pitch),
	}
	if s.Engines.Up {
		s.Velocity = s.Velocity.addScaled(vertical, -impulse)
	}
	if s.Engines.Down {
		s.Velocity = s.Velocity.addScaled(vertical, impulse)
	}

	// Local lateral: heading crossed with the world vertical axis.
	lateral := Vec3{-s.Heading[2], 0, s.Heading[0]}
	if s.Engines.Left {
		s.Velocity = s.Velocity.addScaled(lateral, impulse)
	}
	if s.Engines.Right {
		s.Velocity = s.Velocity.addScaled(lateral, -impulse)
	}
}
