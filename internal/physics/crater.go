package physics

import "math"

// CraterDiameterM estimates the transient crater diameter in meters.
//
//	D = k · m^(1/3) · v^0.44 · (ρi/ρt)^(1/3) · sin(angle)^0.33
//
// with a fixed impactor density and k from the constant table. Velocity is
// in km/s and the angle in degrees (90 = vertical). This is an illustrative
// scaling approximation, not exact cratering physics. Non-positive mass,
// velocity, or target density yields zero.
func (c *Constants) CraterDiameterM(massKg, velocityKms, targetDensity, angleDeg float64) float64 {
	if massKg <= 0 || velocityKms <= 0 || targetDensity <= 0 {
		return 0
	}
	angleTerm := math.Pow(math.Abs(math.Sin(angleDeg*math.Pi/180.0)), 0.33)
	return c.CraterScaling *
		math.Cbrt(massKg) *
		math.Pow(velocityKms, 0.44) *
		math.Cbrt(c.CraterImpactorDensity/targetDensity) *
		angleTerm
}

// CraterDepthM estimates depth from diameter. Simple craters (< 2 km) run
// about a fifth of their diameter deep; larger complex craters flatten out
// to about a tenth.
func CraterDepthM(craterDiameterM float64) float64 {
	if craterDiameterM <= 0 {
		return 0
	}
	if craterDiameterM < 2000 {
		return craterDiameterM / 5.0
	}
	return craterDiameterM / 10.0
}

// EjectaVolumeM3 approximates the excavated volume as a paraboloid of
// revolution: V = π·D²·h/8.
func EjectaVolumeM3(craterDiameterM, craterDepthM float64) float64 {
	if craterDiameterM <= 0 || craterDepthM <= 0 {
		return 0
	}
	return math.Pi * craterDiameterM * craterDiameterM * craterDepthM / 8.0
}
