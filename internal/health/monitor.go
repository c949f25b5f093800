package health

import (
	"context"
	"sync"
	"time"

	"hagxwon/internal/models"
)

// DatabasePinger reports whether the datastore is reachable
type DatabasePinger interface {
	PingContext(ctx context.Context) error
}

// ServicePinger reports whether the upstream AI/word service is reachable
type ServicePinger interface {
	Ping(ctx context.Context) error
}

// Monitor polls the datastore and the upstream AI service on an
// interval and keeps the latest aggregated snapshot for cheap reads.
type Monitor struct {
	db       DatabasePinger
	ai       ServicePinger
	interval time.Duration

	mu   sync.RWMutex
	snap models.HealthSnapshot
}

// NewMonitor creates a monitor polling on the given interval
func NewMonitor(db DatabasePinger, ai ServicePinger, interval time.Duration) *Monitor {
	return &Monitor{
		db:       db,
		ai:       ai,
		interval: interval,
		snap: models.HealthSnapshot{
			Status:    models.HealthUnhealthy,
			Database:  models.HealthError,
			AIService: models.HealthError,
		},
	}
}

// Run polls until the context is cancelled. An immediate check runs
// before the first tick so the snapshot is never stale at startup.
func (m *Monitor) Run(ctx context.Context) {
	m.Check(ctx)

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.Check(ctx)
		case <-ctx.Done():
			return
		}
	}
}

// Check performs one health probe and updates the snapshot
func (m *Monitor) Check(ctx context.Context) models.HealthSnapshot {
	snap := models.HealthSnapshot{
		Status:    models.HealthHealthy,
		Database:  models.HealthOK,
		AIService: models.HealthOK,
	}

	if err := m.db.PingContext(ctx); err != nil {
		snap.Database = models.HealthError
		snap.Status = models.HealthUnhealthy
	}
	if err := m.ai.Ping(ctx); err != nil {
		snap.AIService = models.HealthError
		snap.Status = models.HealthUnhealthy
	}

	m.mu.Lock()
	m.snap = snap
	m.mu.Unlock()

	return snap
}

// Snapshot returns the latest health snapshot
func (m *Monitor) Snapshot() models.HealthSnapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.snap
}
