package physics

import "math"

// MassFromDiameter returns the mass in kg of a spherical impactor.
// A non-positive diameter yields zero mass.
func MassFromDiameter(diameterM, densityKgM3 float64) float64 {
	if diameterM <= 0 {
		return 0
	}
	r := diameterM / 2.0
	return (4.0 / 3.0) * math.Pi * r * r * r * densityKgM3
}

// KineticEnergy returns the impact energy in joules for a mass in kg and a
// velocity in km/s. Velocity enters squared, so its sign is irrelevant.
func KineticEnergy(massKg, velocityKms float64) float64 {
	v := velocityKms * 1000.0
	return 0.5 * massKg * v * v
}

// TNTTons converts energy in joules to TNT-equivalent tons.
func (c *Constants) TNTTons(energyJ float64) float64 {
	return energyJ / c.JoulesPerTonTNT
}
