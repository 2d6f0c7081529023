package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mr1hm/go-impact-sim/internal/geo"
	"github.com/mr1hm/go-impact-sim/internal/models"
	"github.com/mr1hm/go-impact-sim/internal/observability"
	"github.com/mr1hm/go-impact-sim/internal/physics"
	"github.com/mr1hm/go-impact-sim/internal/repository"
	"github.com/mr1hm/go-impact-sim/internal/simulation"
	"github.com/mr1hm/go-impact-sim/internal/worker"
)

// Handler serves the simulation API.
type Handler struct {
	engine    *simulation.Engine
	asteroids repository.AsteroidRepository
	scenarios repository.ScenarioRepository
	metrics   *observability.Metrics
	logger    *slog.Logger

	batchMax int
	workers  int
}

func NewHandler(
	engine *simulation.Engine,
	asteroids repository.AsteroidRepository,
	scenarios repository.ScenarioRepository,
	metrics *observability.Metrics,
	logger *slog.Logger,
	batchMax, workers int,
) *Handler {
	return &Handler{
		engine:    engine,
		asteroids: asteroids,
		scenarios: scenarios,
		metrics:   metrics,
		logger:    logger,
		batchMax:  batchMax,
		workers:   workers,
	}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", h.health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	{
		api.POST("/simulate", h.simulate)
		api.POST("/simulate/batch", h.simulateBatch)
		api.POST("/deflect", h.deflect)
		api.POST("/trajectory", h.trajectory)
		api.POST("/breakup", h.breakup)
		api.GET("/asteroids", h.listAsteroids)
		api.GET("/asteroids/:id", h.getAsteroid)
		api.GET("/scenarios", h.listScenarios)
		api.GET("/scenarios/:id", h.getScenario)
		api.GET("/formulas", h.formulas)
	}
}

// MetricsMiddleware records per-route request durations.
func MetricsMiddleware(m *observability.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.RequestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	}
}

type simulateRequest struct {
	AsteroidID     string                       `json:"asteroid_id,omitempty"`
	DiameterM      *float64                     `json:"diameter_m,omitempty"`
	MassKg         *float64                     `json:"mass_kg,omitempty"`
	DensityKgM3    *float64                     `json:"density_kg_m3,omitempty"`
	VelocityKms    *float64                     `json:"velocity_kms,omitempty"`
	Location       *geo.Location                `json:"impact_location,omitempty"`
	Lat            *float64                     `json:"lat,omitempty"`
	Lng            *float64                     `json:"lng,omitempty"`
	ImpactAngleDeg *float64                     `json:"impact_angle_deg,omitempty"`
	Overrides      *models.SimulationParameters `json:"overrides,omitempty"`
}

type simulateResponse struct {
	Estimate    models.ImpactEstimate `json:"estimate"`
	DamageZones FeatureCollection     `json:"damage_zones"`
}

// toInput resolves a request into an engine input. A catalog asteroid fills
// in any physical parameters the request leaves unset; explicit mass beats
// diameter when both are present.
func (h *Handler) toInput(c *gin.Context, req simulateRequest) (models.ImpactInput, error) {
	var in models.ImpactInput

	switch {
	case req.Location != nil:
		in.Location = *req.Location
	case req.Lat != nil && req.Lng != nil:
		in.Location = geo.Location{Lat: *req.Lat, Lng: *req.Lng}
	default:
		return in, errors.New("impact_location (or lat/lng) is required")
	}

	var catalog *models.Asteroid
	if req.AsteroidID != "" {
		a, err := h.asteroids.GetByID(c.Request.Context(), req.AsteroidID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return in, errors.New("unknown asteroid_id: " + req.AsteroidID)
			}
			return in, err
		}
		catalog = a
	}

	switch {
	case req.MassKg != nil:
		in.Impactor = models.ByMass{MassKg: *req.MassKg}
	case req.DiameterM != nil:
		bd := models.ByDiameter{DiameterM: *req.DiameterM}
		if req.DensityKgM3 != nil {
			bd.DensityKgM3 = *req.DensityKgM3
		} else if catalog != nil {
			bd.DensityKgM3 = catalog.DensityKgM3
		}
		in.Impactor = bd
	case catalog != nil:
		in.Impactor = models.ByDiameter{
			DiameterM:   catalog.DiameterM,
			DensityKgM3: catalog.DensityKgM3,
		}
	default:
		return in, errors.New("diameter_m, mass_kg, or asteroid_id is required")
	}

	switch {
	case req.VelocityKms != nil:
		in.VelocityKms = *req.VelocityKms
	case catalog != nil:
		in.VelocityKms = catalog.VelocityKms
	default:
		return in, errors.New("velocity_kms is required")
	}

	in.AngleDeg = models.DefaultImpactAngleDeg
	if req.ImpactAngleDeg != nil {
		in.AngleDeg = *req.ImpactAngleDeg
	}
	return in, nil
}

func (h *Handler) simulate(c *gin.Context) {
	var req simulateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	in, err := h.toInput(c, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	est := h.engine.Estimate(in, req.Overrides)
	h.recordEstimate("single", est)

	c.JSON(http.StatusOK, simulateResponse{
		Estimate:    est,
		DamageZones: damageZones(est),
	})
}

func (h *Handler) recordEstimate(kind string, est models.ImpactEstimate) {
	h.metrics.Simulations.WithLabelValues(kind).Inc()
	h.metrics.ImpactEnergyTons.Observe(est.TNTTons)
	if est.TsunamiRisk {
		h.metrics.TsunamiTriggered.Inc()
	}
}

type batchRequest struct {
	Inputs []simulateRequest `json:"inputs"`
}

type batchResult struct {
	Estimate *models.ImpactEstimate `json:"estimate,omitempty"`
	Error    string                 `json:"error,omitempty"`
}

// simulateBatch fans the inputs out over a worker pool and returns results
// in input order. A bad input fails its own slot, not the batch.
func (h *Handler) simulateBatch(c *gin.Context) {
	var req batchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if len(req.Inputs) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "inputs must not be empty"})
		return
	}
	if len(req.Inputs) > h.batchMax {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "too many inputs: max is " + strconv.Itoa(h.batchMax),
		})
		return
	}

	results := make([]batchResult, len(req.Inputs))

	// The pool runs off the request context: jobs are short pure
	// computations, and a client disconnect must not strand queued jobs
	// before wg.Wait below.
	pool := worker.NewPool(h.workers, len(req.Inputs))
	pool.Start(context.Background())

	var wg sync.WaitGroup
	for i, r := range req.Inputs {
		i, r := i, r
		in, err := h.toInput(c, r)
		if err != nil {
			results[i] = batchResult{Error: err.Error()}
			continue
		}
		wg.Add(1)
		pool.Submit(func(_ context.Context) {
			defer wg.Done()
			est := h.engine.Estimate(in, r.Overrides)
			h.recordEstimate("batch", est)
			results[i] = batchResult{Estimate: &est}
		})
	}
	wg.Wait()
	pool.Stop()

	c.JSON(http.StatusOK, gin.H{"results": results, "count": len(results)})
}

type deflectRequest struct {
	DeltaVMs     float64       `json:"delta_v_m_s"`
	LeadTimeDays float64       `json:"lead_time_days"`
	Location     *geo.Location `json:"impact_location"`
}

func (h *Handler) deflect(c *gin.Context) {
	var req deflectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if req.Location == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "impact_location is required"})
		return
	}

	res := h.engine.Deflect(req.DeltaVMs, req.LeadTimeDays, *req.Location)
	c.JSON(http.StatusOK, gin.H{
		"result":            res,
		"required_examples": h.engine.Constants().DeflectionExamples(),
	})
}

type trajectoryRequest struct {
	AzDeg           float64            `json:"az_deg"`
	ElDeg           float64            `json:"el_deg"`
	SpeedKms        float64            `json:"speed_kms"`
	StartDistanceKm float64            `json:"start_distance_km"`
	DeltaV          *simulation.DeltaV `json:"delta_v,omitempty"`
}

func (h *Handler) trajectory(c *gin.Context) {
	var req trajectoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if req.StartDistanceKm <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "start_distance_km must be positive"})
		return
	}

	res := h.engine.Trajectory(req.AzDeg, req.ElDeg, req.SpeedKms, req.StartDistanceKm, req.DeltaV)
	c.JSON(http.StatusOK, res)
}

type breakupRequest struct {
	VelocityKms float64 `json:"velocity_kms"`
	StrengthPa  float64 `json:"strength_pa"`
}

func (h *Handler) breakup(c *gin.Context) {
	var req breakupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if req.VelocityKms <= 0 || req.StrengthPa <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "velocity_kms and strength_pa must be positive"})
		return
	}

	consts := h.engine.Constants()
	alt, breaksUp := consts.BreakupAltitudeM(req.VelocityKms*1000.0, req.StrengthPa)

	resp := gin.H{
		"breaks_up":            breaksUp,
		"airburst":             physics.IsAirburst(alt, breaksUp),
		"strength_description": physics.StrengthDescription(req.StrengthPa),
	}
	if breaksUp {
		resp["breakup_altitude_m"] = alt
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) listAsteroids(c *gin.Context) {
	var opts repository.Filter

	if s := c.Query("source"); s != "" {
		opts.Source = &s
	}
	if hz := c.Query("hazardous"); hz != "" {
		v, err := strconv.ParseBool(hz)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid hazardous value"})
			return
		}
		opts.Hazardous = &v
	}
	if md := c.Query("min_diameter_m"); md != "" {
		v, err := strconv.ParseFloat(md, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid min_diameter_m value"})
			return
		}
		opts.MinDiameterM = &v
	}
	if l := c.Query("limit"); l != "" {
		v, err := strconv.Atoi(l)
		if err != nil || v < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit value"})
			return
		}
		opts.Limit = v
	}
	if o := c.Query("offset"); o != "" {
		v, err := strconv.Atoi(o)
		if err != nil || v < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid offset value"})
			return
		}
		opts.Offset = v
	}

	asteroids, err := h.asteroids.List(c.Request.Context(), opts)
	if err != nil {
		h.logger.Error("failed to list asteroids", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list asteroids"})
		return
	}

	if opts == (repository.Filter{}) {
		h.metrics.CatalogSize.Set(float64(len(asteroids)))
	}

	c.JSON(http.StatusOK, gin.H{"asteroids": asteroids, "count": len(asteroids)})
}

func (h *Handler) getAsteroid(c *gin.Context) {
	id := c.Param("id")

	a, err := h.asteroids.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "asteroid not found"})
			return
		}
		h.logger.Error("failed to get asteroid", "id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get asteroid"})
		return
	}

	c.JSON(http.StatusOK, a)
}

func (h *Handler) listScenarios(c *gin.Context) {
	scenarios, err := h.scenarios.ListScenarios(c.Request.Context())
	if err != nil {
		h.logger.Error("failed to list scenarios", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list scenarios"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"scenarios": scenarios, "count": len(scenarios)})
}

func (h *Handler) getScenario(c *gin.Context) {
	id := c.Param("id")

	s, err := h.scenarios.GetScenario(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "scenario not found"})
			return
		}
		h.logger.Error("failed to get scenario", "id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get scenario"})
		return
	}

	c.JSON(http.StatusOK, s)
}

func (h *Handler) formulas(c *gin.Context) {
	c.JSON(http.StatusOK, physics.FormulaCatalog)
}

func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
