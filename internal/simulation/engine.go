package simulation

import (
	"math"

	"github.com/mr1hm/go-impact-sim/internal/geo"
	"github.com/mr1hm/go-impact-sim/internal/models"
	"github.com/mr1hm/go-impact-sim/internal/physics"
)

// Engine runs the impact estimation pipeline. It holds only immutable
// collaborators, so a single Engine is safe for concurrent use and
// identical inputs always produce identical estimates.
type Engine struct {
	consts     *physics.Constants
	classifier geo.Classifier
}

func NewEngine(consts *physics.Constants, classifier geo.Classifier) *Engine {
	return &Engine{consts: consts, classifier: classifier}
}

// Constants exposes the engine's constant table to collaborators that need
// the same values (trajectory, deflection).
func (e *Engine) Constants() *physics.Constants {
	return e.consts
}

// Estimate derives the full consolidated record for one impact. It is total
// over its numeric domain: nonsensical inputs saturate toward zero or
// degenerate values, they never produce an error. Validation is the
// caller's concern.
func (e *Engine) Estimate(in models.ImpactInput, params *models.SimulationParameters) models.ImpactEstimate {
	density := e.resolveDensity(in, params)
	targetDensity := override(params.GetTargetDensity(), e.consts.TargetDensity)
	efficiency := override(params.GetSeismicEfficiency(), e.consts.SeismicEfficiency)

	diameterM, massKg := resolveSize(in.Impactor, density)

	energyJ := physics.KineticEnergy(massKg, in.VelocityKms)
	tntTons := e.consts.TNTTons(energyJ)

	// Crater, seismic and blast/thermal are independent of each other.
	craterM := e.consts.CraterDiameterM(massKg, math.Abs(in.VelocityKms), targetDensity, in.AngleDeg)
	depthM := physics.CraterDepthM(craterM)

	magnitude := physics.SeismicMagnitude(energyJ, efficiency)

	blast := e.consts.OverpressureRadii(tntTons)
	thermalKm := e.consts.ThermalRadiusKm(tntTons)

	surroundings := e.classifier.Classify(in.Location)

	indirect := e.indirectImpacts(surroundings, tntTons, magnitude, thermalKm)

	tsunamiRadiusKm, tsunamiHeightM := tsunamiExtent(surroundings, tntTons)

	return models.ImpactEstimate{
		DiameterM:        diameterM,
		MassKg:           massKg,
		DensityKgM3:      density,
		VelocityKms:      in.VelocityKms,
		ImpactAngleDeg:   in.AngleDeg,
		Location:         in.Location,
		Surroundings:     surroundings,
		KineticEnergyJ:   energyJ,
		TNTTons:          tntTons,
		CraterDiameterKm: craterM / 1000.0,
		CraterDepthKm:    depthM / 1000.0,
		EjectaVolumeM3:   physics.EjectaVolumeM3(craterM, depthM),
		SeismicMagnitude: magnitude,
		SeismicIntensity: physics.SeismicIntensity(magnitude),
		BlastModerateKm:  blast.ModerateKm,
		BlastHeavyKm:     blast.HeavyKm,
		BlastSevereKm:    blast.SevereKm,
		ThermalRadiusKm:  thermalKm,
		FireballRadiusKm: thermalKm / 2.0,
		TsunamiRadiusKm:  tsunamiRadiusKm,
		TsunamiHeightM:   tsunamiHeightM,
		TsunamiRisk:      tsunamiRadiusKm > 0,
		PopulationAtRisk: roundPopulation(geo.PopulationAtRisk(surroundings, blast.SevereKm)),
		IndirectImpacts:  indirect,
	}
}

// resolveDensity picks, in order: explicit override, density embedded in a
// ByDiameter impactor, constant default.
func (e *Engine) resolveDensity(in models.ImpactInput, params *models.SimulationParameters) float64 {
	if d := params.GetDensity(); d > 0 {
		return d
	}
	if bd, ok := in.Impactor.(models.ByDiameter); ok && bd.DensityKgM3 > 0 {
		return bd.DensityKgM3
	}
	return e.consts.ImpactorDensity
}

// resolveSize turns the impactor variant into (diameter echo, mass).
// Negative mass saturates to zero; a nil impactor is a zero-mass body.
func resolveSize(imp models.Impactor, density float64) (diameterM, massKg float64) {
	switch v := imp.(type) {
	case models.ByDiameter:
		return v.DiameterM, physics.MassFromDiameter(v.DiameterM, density)
	case models.ByMass:
		return 0, math.Max(0, v.MassKg)
	default:
		return 0, 0
	}
}

func override(v, fallback float64) float64 {
	if v > 0 {
		return v
	}
	return fallback
}

func roundPopulation(p float64) int64 {
	if p <= 0 {
		return 0
	}
	return int64(math.Round(p))
}
