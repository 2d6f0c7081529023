package models

import "github.com/mr1hm/go-impact-sim/internal/geo"

// DefaultImpactAngleDeg is applied when a caller does not specify an angle.
// 90 is vertical.
const DefaultImpactAngleDeg = 45.0

// Impactor is the size specification of the incoming body: either a
// diameter (with optional density) or an explicit mass. The two variants
// make the diameter-or-mass ambiguity unrepresentable.
type Impactor interface {
	isImpactor()
}

// ByDiameter sizes the impactor by diameter in meters. DensityKgM3 of zero
// means "use the default stony density".
type ByDiameter struct {
	DiameterM   float64
	DensityKgM3 float64
}

// ByMass sizes the impactor by mass in kg directly.
type ByMass struct {
	MassKg float64
}

func (ByDiameter) isImpactor() {}
func (ByMass) isImpactor()     {}

// ImpactInput is the full input record for one estimate.
type ImpactInput struct {
	Impactor    Impactor
	VelocityKms float64
	Location    geo.Location
	AngleDeg    float64
}

// SimulationParameters are optional overrides resolved ahead of any input
// or default value. Nil fields fall through. Pure input, never mutated.
type SimulationParameters struct {
	Density           *float64 `json:"density,omitempty"`
	TargetDensity     *float64 `json:"target_density,omitempty"`
	SeismicEfficiency *float64 `json:"seismic_efficiency,omitempty"`
}

// GetDensity returns the density override or 0. Nil-safe.
func (p *SimulationParameters) GetDensity() float64 {
	if p == nil || p.Density == nil {
		return 0
	}
	return *p.Density
}

// GetTargetDensity returns the target-density override or 0. Nil-safe.
func (p *SimulationParameters) GetTargetDensity() float64 {
	if p == nil || p.TargetDensity == nil {
		return 0
	}
	return *p.TargetDensity
}

// GetSeismicEfficiency returns the efficiency override or 0. Nil-safe.
func (p *SimulationParameters) GetSeismicEfficiency() float64 {
	if p == nil || p.SeismicEfficiency == nil {
		return 0
	}
	return *p.SeismicEfficiency
}

// IndirectType tags a secondary-effect record.
type IndirectType string

const (
	IndirectTsunami     IndirectType = "tsunami"
	IndirectSeismic     IndirectType = "seismic"
	IndirectWildfire    IndirectType = "wildfire"
	IndirectAtmospheric IndirectType = "atmospheric"
)

// IndirectImpact is one secondary effect. The atmospheric variant carries
// the extra dust/cooling fields; they are omitted otherwise.
type IndirectImpact struct {
	Type             IndirectType `json:"type"`
	RadiusKm         float64      `json:"radius_km"`
	Intensity        float64      `json:"intensity"`
	PopulationAtRisk int64        `json:"population_at_risk,omitempty"`
	Description      string       `json:"description"`

	DustMassKg   float64 `json:"dust_mass_kg,omitempty"`
	TempDropC    float64 `json:"temperature_drop_c,omitempty"`
	DurationDays float64 `json:"duration_days,omitempty"`
}

// ImpactEstimate is the consolidated result record. Energy is in joules,
// TNT in tons, radii in kilometers, angles in degrees. Produced fresh per
// invocation; derived fields override any same-named input fields.
type ImpactEstimate struct {
	// Echoed input.
	DiameterM      float64          `json:"diameter_m,omitempty"`
	MassKg         float64          `json:"mass_kg"`
	DensityKgM3    float64          `json:"density_kg_m3"`
	VelocityKms    float64          `json:"velocity_kms"`
	ImpactAngleDeg float64          `json:"impact_angle_deg"`
	Location       geo.Location     `json:"impact_location"`
	Surroundings   geo.Surroundings `json:"surroundings"`

	// Energy.
	KineticEnergyJ float64 `json:"kinetic_energy_j"`
	TNTTons        float64 `json:"tnt_tons"`

	// Crater.
	CraterDiameterKm float64 `json:"crater_diameter_km"`
	CraterDepthKm    float64 `json:"crater_depth_km"`
	EjectaVolumeM3   float64 `json:"ejecta_volume_m3"`

	// Seismic.
	SeismicMagnitude float64 `json:"seismic_magnitude"`
	SeismicIntensity string  `json:"seismic_intensity"`

	// Blast and thermal.
	BlastModerateKm  float64 `json:"blast_radius_moderate_km"`
	BlastHeavyKm     float64 `json:"blast_radius_heavy_km"`
	BlastSevereKm    float64 `json:"blast_radius_severe_km"`
	ThermalRadiusKm  float64 `json:"thermal_radius_km"`
	FireballRadiusKm float64 `json:"fireball_radius_km"`

	// Tsunami. Radius is zero unless the location is oceanic.
	TsunamiRadiusKm float64 `json:"tsunami_radius_km"`
	TsunamiHeightM  float64 `json:"tsunami_height_m"`
	TsunamiRisk     bool    `json:"tsunami_risk"`

	// Population exposure at the severe-blast radius.
	PopulationAtRisk int64 `json:"population_at_risk"`

	// Secondary effects in fixed order: tsunami, seismic, wildfire,
	// atmospheric, each conditionally present.
	IndirectImpacts []IndirectImpact `json:"indirect_impacts"`
}
