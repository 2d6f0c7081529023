package physics

import "math"

// Atmospheric entry model. Dynamic pressure against material strength
// decides the fragmentation altitude; high-altitude fragmentation is
// reported as an airburst.

// AirburstThresholdM is the breakup altitude above which an event counts
// as an airburst rather than a ground impact.
const AirburstThresholdM = 10000.0

// karmanLineM caps the breakup altitude at the edge of the atmosphere.
const karmanLineM = 120000.0

// DynamicPressure returns the ram pressure in pascals at an altitude,
// q = ½·ρ₀·e^(−z/H)·v², with velocity in m/s.
func (c *Constants) DynamicPressure(velocityMs, altitudeM float64) float64 {
	rho := c.AirDensitySeaLevel * math.Exp(-altitudeM/c.AtmScaleHeightM)
	return 0.5 * rho * velocityMs * velocityMs
}

// BreakupAltitudeM returns the altitude in meters at which dynamic pressure
// first exceeds the material strength (Pa), clamped to [0, Kármán line].
// The second return is false when strength or velocity is non-positive and
// no breakup altitude is defined.
func (c *Constants) BreakupAltitudeM(velocityMs, strengthPa float64) (float64, bool) {
	if strengthPa <= 0 || velocityMs <= 0 {
		return 0, false
	}
	rhoNeeded := 2.0 * strengthPa / (velocityMs * velocityMs)
	if rhoNeeded > c.AirDensitySeaLevel {
		// Even sea-level air cannot supply the required pressure;
		// fragmentation happens at or below the ground.
		return 0, true
	}
	z := -c.AtmScaleHeightM * math.Log(rhoNeeded/c.AirDensitySeaLevel)
	if z < 0 {
		return 0, true
	}
	if z > karmanLineM {
		return karmanLineM, true
	}
	return z, true
}

// IsAirburst reports whether a breakup altitude counts as an airburst.
func IsAirburst(breakupAltitudeM float64, ok bool) bool {
	return ok && breakupAltitudeM > AirburstThresholdM
}

// StrengthDescription maps a material strength in Pa to a rough rock class.
func StrengthDescription(strengthPa float64) string {
	switch {
	case strengthPa < 5e5:
		return "very weak rubble pile"
	case strengthPa < 1e6:
		return "weak rubble pile"
	case strengthPa < 5e6:
		return "porous rock"
	case strengthPa < 1e7:
		return "fractured rock"
	case strengthPa < 5e7:
		return "solid rock"
	default:
		return "monolithic rock"
	}
}
