package repository

import (
	"context"

	"github.com/mr1hm/go-impact-sim/internal/models"
)

// Filter narrows asteroid catalog listings.
type Filter struct {
	Limit        int
	Offset       int
	Source       *string // "preset" or "neows"
	Hazardous    *bool
	MinDiameterM *float64
}

// AsteroidRepository is the read/write surface of the asteroid catalog.
// Only catalog reference data lives here; simulation results are never
// stored.
type AsteroidRepository interface {
	Upsert(ctx context.Context, a *models.Asteroid) error
	GetByID(ctx context.Context, id string) (*models.Asteroid, error)
	Exists(ctx context.Context, id string) (bool, error)
	List(ctx context.Context, opts Filter) ([]models.Asteroid, error)
}

// ScenarioRepository serves the read-only story scenarios.
type ScenarioRepository interface {
	GetScenario(ctx context.Context, id string) (*models.Scenario, error)
	ListScenarios(ctx context.Context) ([]models.Scenario, error)
}
