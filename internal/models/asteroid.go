package models

import "time"

// Asteroid is a catalog entry: a named body with the physical parameters
// the simulator needs. Catalog rows are static reference data (seeded
// presets or NASA NeoWs snapshots), not simulation state.
type Asteroid struct {
	ID           string    `json:"id"` // e.g. "impactor-2025", "neo_3542519"
	Name         string    `json:"name"`
	Source       string    `json:"source"` // "preset" or "neows"
	DiameterM    float64   `json:"diameter_m"`
	VelocityKms  float64   `json:"velocity_kms"`
	DensityKgM3  float64   `json:"density_kg_m3"`
	ApproachDate string    `json:"approach_date,omitempty"` // YYYY-MM-DD
	Hazardous    bool      `json:"hazardous"`
	CreatedAt    time.Time `json:"created_at"`
}

// TargetCity is a population center referenced by a scenario.
type TargetCity struct {
	Name       string  `json:"name"`
	Lat        float64 `json:"lat"`
	Lng        float64 `json:"lng"`
	Population int64   `json:"population"`
}

// Scenario is a narrative setup pairing an asteroid with stakes. Consumed
// by the presentation layer as-is.
type Scenario struct {
	ID               string       `json:"id"`
	Title            string       `json:"title"`
	Description      string       `json:"description"`
	AsteroidID       string       `json:"asteroid_id"`
	TimeToImpactDays int          `json:"time_to_impact_days"`
	PopulationAtRisk int64        `json:"population_at_risk"`
	TargetCities     []TargetCity `json:"target_cities"`
}
