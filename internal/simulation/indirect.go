package simulation

import (
	"math"

	"github.com/mr1hm/go-impact-sim/internal/geo"
	"github.com/mr1hm/go-impact-sim/internal/models"
)

// atmosphericThresholdTons gates the global-cooling effect. Impacts below a
// megaton of TNT equivalent do not loft enough dust to matter.
const atmosphericThresholdTons = 1_000_000.0

// indirectImpacts evaluates the secondary effects in fixed order: tsunami,
// seismic, wildfire, atmospheric. Consumers key off first-match by type, so
// both the order and the gating conditions are part of the contract.
func (e *Engine) indirectImpacts(s geo.Surroundings, tntTons, magnitude, thermalKm float64) []models.IndirectImpact {
	effects := make([]models.IndirectImpact, 0, 4)

	if s.Oceanic {
		radiusKm, heightM := tsunamiExtent(s, tntTons)
		effects = append(effects, models.IndirectImpact{
			Type:             models.IndirectTsunami,
			RadiusKm:         radiusKm,
			Intensity:        heightM,
			PopulationAtRisk: roundPopulation(geo.PopulationAtRisk(s, radiusKm)),
			Description:      "Ocean impact displaces water; wave reach scales with yield.",
		})
	}

	effects = append(effects, models.IndirectImpact{
		Type:        models.IndirectSeismic,
		RadiusKm:    math.Max(1, magnitude*10),
		Intensity:   magnitude,
		Description: "Ground shaking radiating from the impact point.",
	})

	if s.Class != geo.ClassCoastal {
		fireKm := 2 * thermalKm
		if fireKm > 5 {
			effects = append(effects, models.IndirectImpact{
				Type:        models.IndirectWildfire,
				RadiusKm:    fireKm,
				Intensity:   thermalKm,
				Description: "Thermal radiation ignites vegetation well beyond the fireball.",
			})
		}
	}

	if tntTons > atmosphericThresholdTons {
		kilotons := tntTons / 1000.0
		effects = append(effects, models.IndirectImpact{
			Type:         models.IndirectAtmospheric,
			RadiusKm:     500 + math.Sqrt(kilotons)*100,
			Intensity:    atmosphericTempDrop(tntTons),
			Description:  "Dust and aerosols loft into the stratosphere, cooling the surface.",
			DustMassKg:   math.Pow(tntTons, 0.7) * 1e6,
			TempDropC:    atmosphericTempDrop(tntTons),
			DurationDays: math.Min(3*365, math.Sqrt(kilotons)*30),
		})
	}

	return effects
}

func atmosphericTempDrop(tntTons float64) float64 {
	return math.Min(15, math.Log10(tntTons/atmosphericThresholdTons)*2)
}

// tsunamiExtent returns the tsunami radius in km and a wave-height proxy in
// meters. Both are zero unless the location is oceanic.
func tsunamiExtent(s geo.Surroundings, tntTons float64) (radiusKm, heightM float64) {
	if !s.Oceanic || tntTons <= 0 {
		return 0, 0
	}
	kilotons := tntTons / 1000.0
	return 5 * math.Sqrt(kilotons), math.Sqrt(kilotons)
}
