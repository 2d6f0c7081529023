package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/mr1hm/go-impact-sim/internal/models"
)

// presetAsteroids are the built-in catalog bodies. Densities and approach
// parameters are round educational numbers, not authoritative ephemerides.
var presetAsteroids = []models.Asteroid{
	{
		ID:           "impactor-2025",
		Name:         "2025 Impactor",
		Source:       "preset",
		DiameterM:    100,
		VelocityKms:  17,
		DensityKgM3:  2600,
		ApproachDate: "2025-03-15",
		Hazardous:    true,
	},
	{
		ID:           "apophis",
		Name:         "99942 Apophis",
		Source:       "preset",
		DiameterM:    370,
		VelocityKms:  12,
		DensityKgM3:  2600,
		ApproachDate: "2029-04-13",
		Hazardous:    true,
	},
	{
		ID:           "bennu",
		Name:         "101955 Bennu",
		Source:       "preset",
		DiameterM:    500,
		VelocityKms:  10,
		DensityKgM3:  1200,
		ApproachDate: "2135-09-25",
		Hazardous:    false,
	},
}

var presetScenarios = []models.Scenario{
	{
		ID:               "scenario_1",
		Title:            "The Discovery",
		Description:      "A 100-meter asteroid has been detected on a collision course with Earth. Impact in 30 days.",
		AsteroidID:       "impactor-2025",
		TimeToImpactDays: 30,
		PopulationAtRisk: 2_500_000,
		TargetCities: []models.TargetCity{
			{Name: "Miami", Lat: 25.7617, Lng: -80.1918, Population: 500_000},
			{Name: "Tokyo", Lat: 35.6762, Lng: 139.6503, Population: 14_000_000},
			{Name: "New York", Lat: 40.7128, Lng: -74.0060, Population: 8_000_000},
		},
	},
	{
		ID:               "scenario_2",
		Title:            "The Big One",
		Description:      "A massive asteroid threatens global civilization. Impact in 60 days.",
		AsteroidID:       "apophis",
		TimeToImpactDays: 60,
		PopulationAtRisk: 50_000_000,
		TargetCities: []models.TargetCity{
			{Name: "Los Angeles", Lat: 34.0522, Lng: -118.2437, Population: 4_000_000},
			{Name: "London", Lat: 51.5074, Lng: -0.1278, Population: 9_000_000},
			{Name: "Shanghai", Lat: 31.2304, Lng: 121.4737, Population: 24_000_000},
		},
	},
}

// Seed writes the preset asteroids and scenarios. Safe to call on every
// startup; rows are upserted by ID.
func (s *SQLiteDB) Seed(ctx context.Context) error {
	now := time.Now()
	for i := range presetAsteroids {
		a := presetAsteroids[i]
		a.CreatedAt = now
		if err := s.Upsert(ctx, &a); err != nil {
			return fmt.Errorf("error seeding asteroid %s: %w", a.ID, err)
		}
	}
	for i := range presetScenarios {
		if err := s.putScenario(ctx, &presetScenarios[i]); err != nil {
			return fmt.Errorf("error seeding scenario %s: %w", presetScenarios[i].ID, err)
		}
	}
	return nil
}
