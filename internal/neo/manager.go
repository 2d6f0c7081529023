package neo

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/mr1hm/go-impact-sim/internal/config"
	"github.com/mr1hm/go-impact-sim/internal/models"
	"github.com/mr1hm/go-impact-sim/internal/repository"
	"github.com/mr1hm/go-impact-sim/internal/worker"
)

// Manager keeps the asteroid catalog topped up with near-Earth objects
// from the NASA NeoWs feed. Simulation never depends on it; with the
// poller disabled the catalog simply holds the seeded presets.
type Manager struct {
	cfg  *config.Config
	repo repository.AsteroidRepository
	pool *worker.Pool
	wg   sync.WaitGroup
}

func NewManager(cfg *config.Config, repo repository.AsteroidRepository) *Manager {
	return &Manager{
		cfg:  cfg,
		repo: repo,
	}
}

func (m *Manager) Start(ctx context.Context) {
	if !m.cfg.NeoWs.Enabled {
		slog.Info("neows poller disabled")
		return
	}

	m.pool = worker.NewPool(m.cfg.Worker.Count, m.cfg.Worker.BufferSize)
	m.pool.Start(ctx)

	m.wg.Add(1)
	go m.runPoller(ctx)
}

func (m *Manager) runPoller(ctx context.Context) {
	defer m.wg.Done()
	slog.Info("starting neows poller", "interval", m.cfg.NeoWs.PollInterval)

	ticker := time.NewTicker(m.cfg.NeoWs.PollInterval)
	defer ticker.Stop()

	m.poll(ctx)

	for {
		select {
		case <-ctx.Done():
			slog.Info("neows poller shutting down")
			return
		case <-ticker.C:
			m.poll(ctx)
		}
	}
}

func (m *Manager) poll(ctx context.Context) {
	slog.Debug("polling neows feed")

	asteroids, err := m.fetchFeed(ctx, m.cfg.NeoWs.URL, m.cfg.NeoWs.APIKey)
	if err != nil {
		slog.Error("neows poll failed", "error", err)
		return
	}

	for _, a := range asteroids {
		a := a
		m.pool.Submit(func(ctx context.Context) {
			m.ingest(ctx, a)
		})
	}

	slog.Debug("neows poll complete", "count", len(asteroids))
}

func (m *Manager) ingest(ctx context.Context, a *models.Asteroid) {
	exists, err := m.repo.Exists(ctx, a.ID)
	if err != nil {
		slog.Error("error checking existence", "id", a.ID, "error", err)
		return
	}
	if exists {
		return
	}

	if err := m.repo.Upsert(ctx, a); err != nil {
		slog.Error("error adding asteroid", "id", a.ID, "error", err)
		return
	}

	slog.Info("added asteroid", "id", a.ID, "name", a.Name, "hazardous", a.Hazardous)
}

func (m *Manager) Stop() {
	m.wg.Wait()
	if m.pool != nil {
		m.pool.Stop()
	}
	slog.Info("neows manager stopped")
}
