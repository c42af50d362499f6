package main

import (
	"fmt"
	"sync"

	"helios/server/protocol"
)

// PlanetPosition pairs a planet name with its derived orbital coordinates.
// It serializes as [name, [x, y]], the shape the client renders from.
type PlanetPosition struct {
	Name string
	X    float64
	Y    float64
}

// World owns every planet and ship. All mutation and every read goes through
// its methods; nothing outside this type touches a Planet or Ship directly.
// The mutex is held only for the mutation or copy itself, never across a
// network send.
type World struct {
	mu      sync.Mutex
	planets []*Planet
	ships   map[string]*Ship
}

func newWorld(planets []*Planet) *World {
	return &World{
		planets: planets,
		ships:   make(map[string]*Ship),
	}
}

// Update advances every planet and ship by dt seconds as one atomic step. A
// snapshot taken before or after never observes a half-updated world.
func (w *World) Update(dt float64) {
	w.mu.Lock()
	defer w.mu.Unlock()

	for _, planet := range w.planets {
		planet.Update(dt)
	}
	for _, ship := range w.ships {
		ship.Update(dt)
	}
}

// AddShip inserts a freshly built ship and returns its id.
func (w *World) AddShip() (string, error) {
	ship := NewShip()

	w.mu.Lock()
	defer w.mu.Unlock()

	if _, exists := w.ships[ship.ID]; exists {
		return "", fmt.Errorf("ship id collision: %s", ship.ID)
	}
	w.ships[ship.ID] = ship
	return ship.ID, nil
}

// RemoveShip drops the ship if it is still present. Removing an id that
// already left is a no-op; disconnect races are expected.
func (w *World) RemoveShip(id string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.ships, id)
}

// ShipCount reports the number of live ships.
func (w *World) ShipCount() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.ships)
}

// SnapshotPositions copies out every planet's name and position in creation
// order.
func (w *World) SnapshotPositions() []PlanetPosition {
	w.mu.Lock()
	defer w.mu.Unlock()

	positions := make([]PlanetPosition, 0, len(w.planets))
	for _, planet := range w.planets {
		x, y := planet.Position()
		positions = append(positions, PlanetPosition{Name: planet.Name, X: x, Y: y})
	}
	return positions
}

// SnapshotShips copies out every ship for broadcasting.
func (w *World) SnapshotShips() []Ship {
	w.mu.Lock()
	defer w.mu.Unlock()

	ships := make([]Ship, 0, len(w.ships))
	for _, ship := range w.ships {
		ships = append(ships, *ship)
	}
	return ships
}

// GetShip returns a copy of one ship, reporting whether it still exists.
func (w *World) GetShip(id string) (Ship, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()

	ship, ok := w.ships[id]
	if !ok {
		return Ship{}, false
	}
	return *ship, true
}

// SetEngines replaces the whole translational flag group on one ship, keeping
// its power setting. Reports false when the ship is already gone, which
// callers treat as a benign no-op.
func (w *World) SetEngines(id string, flags protocol.EngineFlags) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	ship, ok := w.ships[id]
	if !ok {
		return false
	}
	ship.Engines.EngineFlags = flags
	return true
}

// SetRotation replaces the whole attitude flag group on one ship, keeping its
// power setting. Reports false when the ship is already gone.
func (w *World) SetRotation(id string, flags protocol.RotationFlags) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	ship, ok := w.ships[id]
	if !ok {
		return false
	}
	ship.Rotation.RotationFlags = flags
	return true
}
