package physics

// Formula is a display-only record pairing a symbolic formula with a prose
// description. The catalog is static reference material for the UI; it is
// not derived from any computed state.
type Formula struct {
	Expression  string `json:"expression"`
	Description string `json:"description"`
}

// FormulaCatalog maps formula names to their display records.
var FormulaCatalog = map[string]Formula{
	"mass": {
		Expression:  "m = (4/3)·π·(d/2)³·ρ",
		Description: "Mass of a spherical impactor from diameter and bulk density.",
	},
	"kinetic_energy": {
		Expression:  "E = ½·m·v²",
		Description: "Kinetic energy released on impact, velocity in m/s.",
	},
	"tnt_equivalent": {
		Expression:  "W = E / 4.184×10⁹",
		Description: "Energy expressed in tons of TNT.",
	},
	"crater_diameter": {
		Expression:  "D = 1.3·m^(1/3)·v^0.44·(ρi/ρt)^(1/3)·sin(θ)^0.33",
		Description: "Transient crater diameter from mass, velocity, density contrast and impact angle. Illustrative scaling, not exact physics.",
	},
	"seismic_magnitude": {
		Expression:  "M = log₁₀(max(1, E·η)) − 4.8",
		Description: "Earthquake-magnitude equivalent of the seismically coupled energy fraction η.",
	},
	"blast_radius": {
		Expression:  "R = C·W^(1/3)",
		Description: "Overpressure radius by cube-root TNT scaling; C = 280/120/80 m for the moderate/heavy/severe tiers.",
	},
	"thermal_radius": {
		Expression:  "R_t = 200·W^(1/3)",
		Description: "Thermal radiation radius; the fireball is half of it.",
	},
	"tsunami_radius": {
		Expression:  "R_ts = 5·√(W/1000)",
		Description: "Tsunami reach in km for oceanic impacts, from kiloton-scaled yield.",
	},
	"breakup_altitude": {
		Expression:  "z = −H·ln(2S/(v²·ρ₀))",
		Description: "Altitude where dynamic pressure exceeds material strength S.",
	},
	"deflection_delta_v": {
		Expression:  "Δv = S / t_lead",
		Description: "Linear along-track approximation of the velocity change needed to shift the impact point by S.",
	},
}
