package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/mr1hm/go-impact-sim/internal/models"
)

// ErrNotFound is returned when a catalog row does not exist.
var ErrNotFound = errors.New("not found")

type SQLiteDB struct {
	db *sql.DB
}

func NewSQLiteDB(path string) (*SQLiteDB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("error while pinging database: %w", err)
	}

	s := &SQLiteDB{
		db: db,
	}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("error while migrating to database: %w", err)
	}

	return s, nil
}

func (s *SQLiteDB) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS asteroids (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			source TEXT NOT NULL,
			diameter_m REAL NOT NULL,
			velocity_kms REAL NOT NULL,
			density_kg_m3 REAL NOT NULL,
			approach_date TEXT,
			hazardous INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME NOT NULL
		);

		CREATE TABLE IF NOT EXISTS scenarios (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			description TEXT,
			asteroid_id TEXT NOT NULL,
			time_to_impact_days INTEGER NOT NULL,
			population_at_risk INTEGER NOT NULL,
			target_cities TEXT NOT NULL,
			FOREIGN KEY (asteroid_id) REFERENCES asteroids(id)
		);

		CREATE INDEX IF NOT EXISTS idx_asteroids_source ON asteroids(source);
		CREATE INDEX IF NOT EXISTS idx_asteroids_hazardous ON asteroids(hazardous);
  	`

	_, err := s.db.Exec(schema)
	return err
}

func (s *SQLiteDB) Close() error {
	return s.db.Close()
}

func (s *SQLiteDB) Upsert(ctx context.Context, a *models.Asteroid) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO asteroids (id, name, source, diameter_m, velocity_kms, density_kg_m3, approach_date, hazardous, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			source = excluded.source,
			diameter_m = excluded.diameter_m,
			velocity_kms = excluded.velocity_kms,
			density_kg_m3 = excluded.density_kg_m3,
			approach_date = excluded.approach_date,
			hazardous = excluded.hazardous`,
		a.ID, a.Name, a.Source, a.DiameterM, a.VelocityKms, a.DensityKgM3,
		a.ApproachDate, a.Hazardous, a.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("error upserting asteroid: %w", err)
	}
	return nil
}

func (s *SQLiteDB) GetByID(ctx context.Context, id string) (*models.Asteroid, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, source, diameter_m, velocity_kms, density_kg_m3, approach_date, hazardous, created_at
		FROM asteroids WHERE id = ?`, id)

	var a models.Asteroid
	err := row.Scan(&a.ID, &a.Name, &a.Source, &a.DiameterM, &a.VelocityKms,
		&a.DensityKgM3, &a.ApproachDate, &a.Hazardous, &a.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error scanning asteroid: %w", err)
	}
	return &a, nil
}

func (s *SQLiteDB) Exists(ctx context.Context, id string) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx, `SELECT 1 FROM asteroids WHERE id = ?`, id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("error checking asteroid existence: %w", err)
	}
	return true, nil
}

func (s *SQLiteDB) List(ctx context.Context, opts Filter) ([]models.Asteroid, error) {
	var (
		conds []string
		args  []any
	)
	if opts.Source != nil {
		conds = append(conds, "source = ?")
		args = append(args, *opts.Source)
	}
	if opts.Hazardous != nil {
		conds = append(conds, "hazardous = ?")
		args = append(args, *opts.Hazardous)
	}
	if opts.MinDiameterM != nil {
		conds = append(conds, "diameter_m >= ?")
		args = append(args, *opts.MinDiameterM)
	}

	query := `SELECT id, name, source, diameter_m, velocity_kms, density_kg_m3, approach_date, hazardous, created_at FROM asteroids`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY diameter_m DESC"
	if opts.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, opts.Limit)
		if opts.Offset > 0 {
			query += " OFFSET ?"
			args = append(args, opts.Offset)
		}
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing asteroids: %w", err)
	}
	defer rows.Close()

	var asteroids []models.Asteroid
	for rows.Next() {
		var a models.Asteroid
		if err := rows.Scan(&a.ID, &a.Name, &a.Source, &a.DiameterM, &a.VelocityKms,
			&a.DensityKgM3, &a.ApproachDate, &a.Hazardous, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning asteroid row: %w", err)
		}
		asteroids = append(asteroids, a)
	}
	return asteroids, rows.Err()
}

func (s *SQLiteDB) putScenario(ctx context.Context, sc *models.Scenario) error {
	cities, err := json.Marshal(sc.TargetCities)
	if err != nil {
		return fmt.Errorf("error encoding target cities: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO scenarios (id, title, description, asteroid_id, time_to_impact_days, population_at_risk, target_cities)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			description = excluded.description,
			asteroid_id = excluded.asteroid_id,
			time_to_impact_days = excluded.time_to_impact_days,
			population_at_risk = excluded.population_at_risk,
			target_cities = excluded.target_cities`,
		sc.ID, sc.Title, sc.Description, sc.AsteroidID,
		sc.TimeToImpactDays, sc.PopulationAtRisk, string(cities),
	)
	if err != nil {
		return fmt.Errorf("error upserting scenario: %w", err)
	}
	return nil
}

func (s *SQLiteDB) GetScenario(ctx context.Context, id string) (*models.Scenario, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, title, description, asteroid_id, time_to_impact_days, population_at_risk, target_cities
		FROM scenarios WHERE id = ?`, id)
	sc, err := scanScenario(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return sc, err
}

func (s *SQLiteDB) ListScenarios(ctx context.Context) ([]models.Scenario, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, description, asteroid_id, time_to_impact_days, population_at_risk, target_cities
		FROM scenarios ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("error listing scenarios: %w", err)
	}
	defer rows.Close()

	var scenarios []models.Scenario
	for rows.Next() {
		sc, err := scanScenario(rows.Scan)
		if err != nil {
			return nil, err
		}
		scenarios = append(scenarios, *sc)
	}
	return scenarios, rows.Err()
}

func scanScenario(scan func(dest ...any) error) (*models.Scenario, error) {
	var (
		sc     models.Scenario
		cities string
	)
	if err := scan(&sc.ID, &sc.Title, &sc.Description, &sc.AsteroidID,
		&sc.TimeToImpactDays, &sc.PopulationAtRisk, &cities); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(cities), &sc.TargetCities); err != nil {
		return nil, fmt.Errorf("error decoding target cities: %w", err)
	}
	return &sc, nil
}
