package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mr1hm/go-impact-sim/internal/geo"
	"github.com/mr1hm/go-impact-sim/internal/models"
	"github.com/mr1hm/go-impact-sim/internal/observability"
	"github.com/mr1hm/go-impact-sim/internal/physics"
	"github.com/mr1hm/go-impact-sim/internal/repository"
	"github.com/mr1hm/go-impact-sim/internal/simulation"
)

// mockAsteroidRepo implements repository.AsteroidRepository for testing
type mockAsteroidRepo struct {
	asteroids []models.Asteroid
}

func (m *mockAsteroidRepo) Upsert(ctx context.Context, a *models.Asteroid) error {
	m.asteroids = append(m.asteroids, *a)
	return nil
}

func (m *mockAsteroidRepo) GetByID(ctx context.Context, id string) (*models.Asteroid, error) {
	for _, a := range m.asteroids {
		if a.ID == id {
			return &a, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *mockAsteroidRepo) Exists(ctx context.Context, id string) (bool, error) {
	for _, a := range m.asteroids {
		if a.ID == id {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockAsteroidRepo) List(ctx context.Context, opts repository.Filter) ([]models.Asteroid, error) {
	results := m.asteroids

	if opts.Source != nil {
		var filtered []models.Asteroid
		for _, a := range results {
			if a.Source == *opts.Source {
				filtered = append(filtered, a)
			}
		}
		results = filtered
	}

	if opts.MinDiameterM != nil {
		var filtered []models.Asteroid
		for _, a := range results {
			if a.DiameterM >= *opts.MinDiameterM {
				filtered = append(filtered, a)
			}
		}
		results = filtered
	}

	if opts.Limit > 0 && len(results) > opts.Limit {
		results = results[:opts.Limit]
	}

	return results, nil
}

// mockScenarioRepo implements repository.ScenarioRepository for testing
type mockScenarioRepo struct {
	scenarios []models.Scenario
}

func (m *mockScenarioRepo) GetScenario(ctx context.Context, id string) (*models.Scenario, error) {
	for _, s := range m.scenarios {
		if s.ID == id {
			return &s, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *mockScenarioRepo) ListScenarios(ctx context.Context) ([]models.Scenario, error) {
	return m.scenarios, nil
}

func setupTestRouter(asteroids repository.AsteroidRepository, scenarios repository.ScenarioRepository) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	consts := physics.DefaultConstants()
	engine := simulation.NewEngine(consts, geo.NewHeuristicClassifier(consts.KmPerDegree))
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	handler := NewHandler(engine, asteroids, scenarios, observability.NewMetricsForTesting(), logger, 50, 2)
	handler.RegisterRoutes(router)
	return router
}

func postJSON(t *testing.T, router *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("failed to marshal request: %v", err)
	}
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

func TestSimulate_ReturnsEstimateAndZones(t *testing.T) {
	router := setupTestRouter(&mockAsteroidRepo{}, &mockScenarioRepo{})

	w := postJSON(t, router, "/api/simulate", map[string]any{
		"diameter_m":      100.0,
		"velocity_kms":    20.0,
		"impact_location": map[string]float64{"lat": 48.0, "lng": 95.0},
	})

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp simulateResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}

	if resp.Estimate.MassKg <= 0 {
		t.Errorf("expected positive mass, got %v", resp.Estimate.MassKg)
	}
	if resp.Estimate.ImpactAngleDeg != models.DefaultImpactAngleDeg {
		t.Errorf("expected default impact angle, got %v", resp.Estimate.ImpactAngleDeg)
	}
	if resp.DamageZones.Type != "FeatureCollection" {
		t.Errorf("expected FeatureCollection, got %s", resp.DamageZones.Type)
	}
	if len(resp.DamageZones.Features) == 0 {
		t.Error("expected at least one damage zone")
	}
}

func TestSimulate_SeparateLatLng(t *testing.T) {
	router := setupTestRouter(&mockAsteroidRepo{}, &mockScenarioRepo{})

	w := postJSON(t, router, "/api/simulate", map[string]any{
		"diameter_m":   100.0,
		"velocity_kms": 20.0,
		"lat":          48.0,
		"lng":          95.0,
	})

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}
}

func TestSimulate_MassBeatsDiameter(t *testing.T) {
	router := setupTestRouter(&mockAsteroidRepo{}, &mockScenarioRepo{})

	w := postJSON(t, router, "/api/simulate", map[string]any{
		"diameter_m":      100.0,
		"mass_kg":         5000.0,
		"velocity_kms":    20.0,
		"impact_location": map[string]float64{"lat": 48.0, "lng": 95.0},
	})

	var resp simulateResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}

	if resp.Estimate.MassKg != 5000.0 {
		t.Errorf("expected explicit mass 5000, got %v", resp.Estimate.MassKg)
	}
	if resp.Estimate.DiameterM != 0 {
		t.Errorf("expected no diameter with explicit mass, got %v", resp.Estimate.DiameterM)
	}
}

func TestSimulate_FromCatalogAsteroid(t *testing.T) {
	repo := &mockAsteroidRepo{
		asteroids: []models.Asteroid{
			{ID: "impactor-2025", Name: "Impactor-2025", Source: "preset", DiameterM: 100, VelocityKms: 17, DensityKgM3: 2600},
		},
	}
	router := setupTestRouter(repo, &mockScenarioRepo{})

	w := postJSON(t, router, "/api/simulate", map[string]any{
		"asteroid_id":     "impactor-2025",
		"impact_location": map[string]float64{"lat": 0.0, "lng": -140.0},
	})

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp simulateResponse
	json.Unmarshal(w.Body.Bytes(), &resp)

	if resp.Estimate.DiameterM != 100 {
		t.Errorf("expected catalog diameter 100, got %v", resp.Estimate.DiameterM)
	}
	if resp.Estimate.VelocityKms != 17 {
		t.Errorf("expected catalog velocity 17, got %v", resp.Estimate.VelocityKms)
	}
	if resp.Estimate.DensityKgM3 != 2600 {
		t.Errorf("expected catalog density 2600, got %v", resp.Estimate.DensityKgM3)
	}
	if !resp.Estimate.TsunamiRisk {
		t.Error("expected tsunami risk for ocean impact")
	}
}

func TestSimulate_UnknownAsteroid(t *testing.T) {
	router := setupTestRouter(&mockAsteroidRepo{}, &mockScenarioRepo{})

	w := postJSON(t, router, "/api/simulate", map[string]any{
		"asteroid_id":     "nope",
		"impact_location": map[string]float64{"lat": 0.0, "lng": 0.0},
	})

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", w.Code)
	}
}

func TestSimulate_MissingLocation(t *testing.T) {
	router := setupTestRouter(&mockAsteroidRepo{}, &mockScenarioRepo{})

	w := postJSON(t, router, "/api/simulate", map[string]any{
		"diameter_m":   100.0,
		"velocity_kms": 20.0,
	})

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", w.Code)
	}
}

func TestSimulate_MissingVelocity(t *testing.T) {
	router := setupTestRouter(&mockAsteroidRepo{}, &mockScenarioRepo{})

	w := postJSON(t, router, "/api/simulate", map[string]any{
		"diameter_m":      100.0,
		"impact_location": map[string]float64{"lat": 48.0, "lng": 95.0},
	})

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", w.Code)
	}
}

func TestSimulateBatch_ResultsInInputOrder(t *testing.T) {
	router := setupTestRouter(&mockAsteroidRepo{}, &mockScenarioRepo{})

	inputs := []map[string]any{
		{"diameter_m": 10.0, "velocity_kms": 20.0, "impact_location": map[string]float64{"lat": 48.0, "lng": 95.0}},
		{"diameter_m": 100.0, "velocity_kms": 20.0, "impact_location": map[string]float64{"lat": 48.0, "lng": 95.0}},
		{"diameter_m": 1000.0, "velocity_kms": 20.0, "impact_location": map[string]float64{"lat": 48.0, "lng": 95.0}},
	}
	w := postJSON(t, router, "/api/simulate/batch", map[string]any{"inputs": inputs})

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Results []batchResult `json:"results"`
		Count   int           `json:"count"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}

	if resp.Count != 3 {
		t.Fatalf("expected 3 results, got %d", resp.Count)
	}
	for i, r := range resp.Results {
		if r.Estimate == nil {
			t.Fatalf("result %d missing estimate: %s", i, r.Error)
		}
	}
	// Larger diameter means more energy; order must match inputs.
	if !(resp.Results[0].Estimate.TNTTons < resp.Results[1].Estimate.TNTTons &&
		resp.Results[1].Estimate.TNTTons < resp.Results[2].Estimate.TNTTons) {
		t.Error("expected results in input order with increasing energy")
	}
}

func TestSimulateBatch_BadInputFailsOnlyItsSlot(t *testing.T) {
	router := setupTestRouter(&mockAsteroidRepo{}, &mockScenarioRepo{})

	inputs := []map[string]any{
		{"diameter_m": 100.0, "velocity_kms": 20.0, "impact_location": map[string]float64{"lat": 48.0, "lng": 95.0}},
		{"velocity_kms": 20.0, "impact_location": map[string]float64{"lat": 48.0, "lng": 95.0}}, // no size
	}
	w := postJSON(t, router, "/api/simulate/batch", map[string]any{"inputs": inputs})

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Results []batchResult `json:"results"`
	}
	json.Unmarshal(w.Body.Bytes(), &resp)

	if resp.Results[0].Estimate == nil {
		t.Error("expected first result to succeed")
	}
	if resp.Results[1].Error == "" {
		t.Error("expected second result to carry an error")
	}
}

func TestSimulateBatch_CanceledRequestStillCompletes(t *testing.T) {
	router := setupTestRouter(&mockAsteroidRepo{}, &mockScenarioRepo{})

	inputs := make([]map[string]any, 50)
	for i := range inputs {
		inputs[i] = map[string]any{
			"diameter_m": 10.0, "velocity_kms": 20.0,
			"impact_location": map[string]float64{"lat": 48.0, "lng": 95.0},
		}
	}
	data, err := json.Marshal(map[string]any{"inputs": inputs})
	if err != nil {
		t.Fatalf("failed to marshal request: %v", err)
	}

	// A disconnected client cancels the request context; the handler must
	// still finish its queued jobs instead of blocking forever.
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	req, _ := http.NewRequestWithContext(ctx, "POST", "/api/simulate/batch", bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")

	done := make(chan struct{})
	go func() {
		router.ServeHTTP(httptest.NewRecorder(), req)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("batch handler blocked after request context cancellation")
	}
}

func TestSimulateBatch_TooManyInputs(t *testing.T) {
	router := setupTestRouter(&mockAsteroidRepo{}, &mockScenarioRepo{})

	inputs := make([]map[string]any, 51)
	for i := range inputs {
		inputs[i] = map[string]any{
			"diameter_m": 10.0, "velocity_kms": 20.0,
			"impact_location": map[string]float64{"lat": 48.0, "lng": 95.0},
		}
	}
	w := postJSON(t, router, "/api/simulate/batch", map[string]any{"inputs": inputs})

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", w.Code)
	}
}

func TestDeflect(t *testing.T) {
	router := setupTestRouter(&mockAsteroidRepo{}, &mockScenarioRepo{})

	w := postJSON(t, router, "/api/deflect", map[string]any{
		"delta_v_m_s":     1.0,
		"lead_time_days":  100.0,
		"impact_location": map[string]float64{"lat": 35.0, "lng": 139.0},
	})

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Result struct {
			ShiftM  float64 `json:"shift_m"`
			Success bool    `json:"success"`
		} `json:"result"`
		RequiredExamples []any `json:"required_examples"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}

	if resp.Result.ShiftM != 8.64e6 {
		t.Errorf("expected shift 8.64e6 m, got %v", resp.Result.ShiftM)
	}
	if !resp.Result.Success {
		t.Error("expected deflection success")
	}
	if len(resp.RequiredExamples) != 6 {
		t.Errorf("expected 6 examples, got %d", len(resp.RequiredExamples))
	}
}

func TestTrajectory_HeadOnHits(t *testing.T) {
	router := setupTestRouter(&mockAsteroidRepo{}, &mockScenarioRepo{})

	w := postJSON(t, router, "/api/trajectory", map[string]any{
		"az_deg":            0.0,
		"el_deg":            0.0,
		"speed_kms":         20.0,
		"start_distance_km": 20000.0,
	})

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		WillHit bool `json:"will_hit"`
	}
	json.Unmarshal(w.Body.Bytes(), &resp)

	if !resp.WillHit {
		t.Error("expected head-on trajectory to hit")
	}
}

func TestTrajectory_RequiresDistance(t *testing.T) {
	router := setupTestRouter(&mockAsteroidRepo{}, &mockScenarioRepo{})

	w := postJSON(t, router, "/api/trajectory", map[string]any{
		"az_deg": 0.0, "el_deg": 0.0, "speed_kms": 20.0,
	})

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", w.Code)
	}
}

func TestBreakup(t *testing.T) {
	router := setupTestRouter(&mockAsteroidRepo{}, &mockScenarioRepo{})

	w := postJSON(t, router, "/api/breakup", map[string]any{
		"velocity_kms": 17.0,
		"strength_pa":  1e5, // weak rubble pile, breaks up high
	})

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		BreaksUp         bool    `json:"breaks_up"`
		Airburst         bool    `json:"airburst"`
		BreakupAltitudeM float64 `json:"breakup_altitude_m"`
	}
	json.Unmarshal(w.Body.Bytes(), &resp)

	if !resp.BreaksUp {
		t.Error("expected weak body to break up")
	}
	if !resp.Airburst {
		t.Error("expected high-altitude breakup to be an airburst")
	}
	if resp.BreakupAltitudeM <= 0 {
		t.Errorf("expected positive breakup altitude, got %v", resp.BreakupAltitudeM)
	}
}

func TestListAsteroids_SourceFilter(t *testing.T) {
	repo := &mockAsteroidRepo{
		asteroids: []models.Asteroid{
			{ID: "a1", Source: "preset", DiameterM: 100},
			{ID: "a2", Source: "neows", DiameterM: 200},
			{ID: "a3", Source: "preset", DiameterM: 300},
		},
	}
	router := setupTestRouter(repo, &mockScenarioRepo{})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/asteroids?source=preset", nil)
	router.ServeHTTP(w, req)

	var resp struct {
		Count int `json:"count"`
	}
	json.Unmarshal(w.Body.Bytes(), &resp)

	if resp.Count != 2 {
		t.Errorf("expected 2 preset asteroids, got %d", resp.Count)
	}
}

func TestGetAsteroid_NotFound(t *testing.T) {
	router := setupTestRouter(&mockAsteroidRepo{}, &mockScenarioRepo{})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/asteroids/missing", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", w.Code)
	}
}

func TestListScenarios(t *testing.T) {
	repo := &mockScenarioRepo{
		scenarios: []models.Scenario{
			{ID: "scenario_1", Title: "The Discovery"},
			{ID: "scenario_2", Title: "The Big One"},
		},
	}
	router := setupTestRouter(&mockAsteroidRepo{}, repo)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/scenarios", nil)
	router.ServeHTTP(w, req)

	var resp struct {
		Count int `json:"count"`
	}
	json.Unmarshal(w.Body.Bytes(), &resp)

	if resp.Count != 2 {
		t.Errorf("expected 2 scenarios, got %d", resp.Count)
	}
}

func TestGetScenario(t *testing.T) {
	repo := &mockScenarioRepo{
		scenarios: []models.Scenario{
			{ID: "scenario_1", Title: "The Discovery", AsteroidID: "impactor-2025"},
		},
	}
	router := setupTestRouter(&mockAsteroidRepo{}, repo)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/scenarios/scenario_1", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	var s models.Scenario
	if err := json.Unmarshal(w.Body.Bytes(), &s); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if s.Title != "The Discovery" {
		t.Errorf("expected title The Discovery, got %s", s.Title)
	}
}

func TestGetScenario_NotFound(t *testing.T) {
	router := setupTestRouter(&mockAsteroidRepo{}, &mockScenarioRepo{})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/scenarios/missing", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", w.Code)
	}
}

func TestFormulas(t *testing.T) {
	router := setupTestRouter(&mockAsteroidRepo{}, &mockScenarioRepo{})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/formulas", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	var resp map[string]physics.Formula
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}

	if _, ok := resp["crater_diameter"]; !ok {
		t.Error("expected crater_diameter formula in catalog")
	}
}

func TestHealth(t *testing.T) {
	router := setupTestRouter(&mockAsteroidRepo{}, &mockScenarioRepo{})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/health", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", w.Code)
	}

	var resp map[string]string
	json.Unmarshal(w.Body.Bytes(), &resp)

	if resp["status"] != "ok" {
		t.Errorf("expected status ok, got %s", resp["status"])
	}
}

func TestRateLimitMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RateLimitMiddleware(2))
	router.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	limited := false
	for i := 0; i < 10; i++ {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/ping", nil)
		router.ServeHTTP(w, req)
		if w.Code == http.StatusTooManyRequests {
			limited = true
		}
	}

	if !limited {
		t.Error("expected some requests to be rate limited")
	}
}
