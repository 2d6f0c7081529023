package physics

// Constants holds the fixed physical constants used across the estimation
// pipeline. Construct one with DefaultConstants and pass it by reference;
// it is never mutated after construction.
type Constants struct {
	// JoulesPerTonTNT converts kinetic energy to TNT-equivalent tons.
	JoulesPerTonTNT float64

	// ImpactorDensity is the default bulk density for a stony asteroid, kg/m³.
	ImpactorDensity float64

	// TargetDensity is the default density of crustal rock, kg/m³.
	TargetDensity float64

	// CraterImpactorDensity is the fixed impactor density used by the crater
	// scaling formula, independent of the resolved input density.
	CraterImpactorDensity float64

	// CraterScaling is the empirical k in the crater diameter formula.
	CraterScaling float64

	// SeismicEfficiency is the default fraction of impact energy converted
	// to ground-wave energy.
	SeismicEfficiency float64

	// Overpressure coefficients for cube-root TNT scaling, in meters per
	// cube-root ton. Moderate > Heavy > Severe by construction.
	BlastModerateCoeff float64
	BlastHeavyCoeff    float64
	BlastSevereCoeff   float64

	// ThermalCoeff scales the thermal radiation radius, meters per
	// cube-root ton.
	ThermalCoeff float64

	EarthRadiusM       float64 // mean Earth radius, m
	Gravity            float64 // standard gravity, m/s²
	AirDensitySeaLevel float64 // sea-level air density, kg/m³
	AtmScaleHeightM    float64 // atmospheric scale height, m
	KmPerDegree        float64 // planar degrees-to-km conversion
	SecondsPerYear     float64
}

// DefaultConstants returns the constant table used by the simulator.
func DefaultConstants() *Constants {
	return &Constants{
		JoulesPerTonTNT:       4.184e9,
		ImpactorDensity:       3000.0,
		TargetDensity:         2700.0,
		CraterImpactorDensity: 3000.0,
		CraterScaling:         1.3,
		SeismicEfficiency:     1e-4,
		BlastModerateCoeff:    280.0,
		BlastHeavyCoeff:       120.0,
		BlastSevereCoeff:      80.0,
		ThermalCoeff:          200.0,
		EarthRadiusM:          6.371e6,
		Gravity:               9.80665,
		AirDensitySeaLevel:    1.225,
		AtmScaleHeightM:       7640.0,
		KmPerDegree:           111.0,
		SecondsPerYear:        3.15576e7,
	}
}
