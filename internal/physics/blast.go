package physics

import "math"

// BlastRadii holds the tiered overpressure radii in kilometers. The
// moderate tier is always the widest and the severe tier the narrowest.
type BlastRadii struct {
	ModerateKm float64
	HeavyKm    float64
	SevereKm   float64
}

// OverpressureRadii computes the three damage tiers from TNT-equivalent
// tons using cube-root scaling. All radii are zero at zero tonnage and
// strictly increase with it.
func (c *Constants) OverpressureRadii(tntTons float64) BlastRadii {
	if tntTons <= 0 {
		return BlastRadii{}
	}
	cbrt := math.Cbrt(tntTons)
	return BlastRadii{
		ModerateKm: c.BlastModerateCoeff * cbrt / 1000.0,
		HeavyKm:    c.BlastHeavyCoeff * cbrt / 1000.0,
		SevereKm:   c.BlastSevereCoeff * cbrt / 1000.0,
	}
}

// ThermalRadiusKm is the thermal-radiation radius in km for a given
// TNT-equivalent tonnage.
func (c *Constants) ThermalRadiusKm(tntTons float64) float64 {
	if tntTons <= 0 {
		return 0
	}
	return c.ThermalCoeff * math.Cbrt(tntTons) / 1000.0
}

// FireballRadiusKm is half the thermal radius.
func (c *Constants) FireballRadiusKm(tntTons float64) float64 {
	return c.ThermalRadiusKm(tntTons) / 2.0
}
