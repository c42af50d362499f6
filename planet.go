package main

import "math"

// Planet models one body on a fixed circular orbit around the origin. Only
// the angle mutates after construction; position is derived on demand.
type Planet struct {
	Name            string
	OrbitalRadius   float64
	Angle           float64
	AngularVelocity float64 // radians per second
}

// NewPlanet derives the angular velocity once from the orbital period in
// seconds. The orbit starts at angle zero.
func NewPlanet(name string, orbitalRadius, orbitalPeriod float64) *Planet {
	return &Planet{
		Name:            name,
		OrbitalRadius:   orbitalRadius,
		AngularVelocity: 2 * math.Pi / orbitalPeriod,
	}
}

// Update advances the orbit by dt seconds. The angle stays in [0, 2π)
// regardless of how large dt is.
func (p *Planet) Update(dt float64) {
	p.Angle = normalizeAngle(p.Angle + p.AngularVelocity*dt)
}

// Position derives the current orbital coordinates.
func (p *Planet) Position() (x, y float64) {
	return p.OrbitalRadius * math.Cos(p.Angle), p.OrbitalRadius * math.Sin(p.Angle)
}

func normalizeAngle(angle float64) float64 {
	angle = math.Mod(angle, 2*math.Pi)
	if angle < 0 {
		angle += 2 * math.Pi
	}
	return angle
}

// defaultPlanets builds the stock solar system. Periods are scaled so Earth
// completes one orbit per minute.
func defaultPlanets() []*Planet {
	return []*Planet{
		NewPlanet("Mercury", 50, 0.24*60),
		NewPlanet("Venus", 70, 0.62*60),
		NewPlanet("Earth", 90, 1.0*60),
		NewPlanet("Mars", 110, 1.88*60),
		NewPlanet("Jupiter", 150, 11.86*60),
	}
}
