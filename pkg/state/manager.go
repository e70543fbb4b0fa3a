package state

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/technophil98/traefik-docker-http-provider-server/pkg/docker"
	"github.com/technophil98/traefik-docker-http-provider-server/pkg/provider"
)

// Manager composes the container source and the merger into the snapshot
// lifecycle: Initializing until the first successful build, then Ready, with
// rebuilds triggered by source notifications. The manager is the single
// writer of the published snapshot; any number of readers may call Current
// concurrently.
type Manager struct {
	source          docker.Source
	merger          *provider.Merger
	refreshInterval time.Duration

	current atomic.Pointer[Snapshot]
}

// NewManager creates a manager. refreshInterval adds a periodic rebuild as a
// safety net against missed events; zero disables it.
func NewManager(source docker.Source, merger *provider.Merger, refreshInterval time.Duration) *Manager {
	return &Manager{
		source:          source,
		merger:          merger,
		refreshInterval: refreshInterval,
	}
}

// Current returns the published snapshot, or nil before the first successful
// build. The read is lock-free and never blocks a rebuild in progress.
func (m *Manager) Current() *Snapshot {
	return m.current.Load()
}

// Ready reports whether a snapshot has been published.
func (m *Manager) Ready() bool {
	return m.current.Load() != nil
}

// Rebuild lists the container set, merges it, and publishes the result. On
// error the previously published snapshot remains authoritative.
func (m *Manager) Rebuild(ctx context.Context) error {
	start := time.Now()

	containers, err := m.source.List(ctx)
	if err != nil {
		rebuildTotal.WithLabelValues("error").Inc()
		return fmt.Errorf("failed to list containers: %w", err)
	}

	config, warnings := m.merger.Build(containers)
	for _, warning := range warnings {
		labelWarningsTotal.Inc()
		slog.Warn("configuration warning",
			"container", warning.ContainerID,
			"label", warning.Key,
			"reason", warning.Message,
		)
	}

	running := 0
	for _, ctr := range containers {
		if ctr.Running {
			running++
		}
	}

	previous := m.current.Load()
	snapshot := &Snapshot{
		Config:     config,
		Generation: 1,
		BuiltAt:    time.Now().UTC(),
		Containers: running,
	}
	if previous != nil {
		snapshot.Generation = previous.Generation + 1
	}

	// Publication is a single pointer swap: readers see either the old
	// snapshot or the new one, never a partially built document.
	m.current.Store(snapshot)

	rebuildTotal.WithLabelValues("success").Inc()
	rebuildDuration.Observe(time.Since(start).Seconds())
	snapshotGeneration.Set(float64(snapshot.Generation))
	snapshotContainers.Set(float64(running))

	slog.Debug("snapshot published",
		"generation", snapshot.Generation,
		"containers", running,
		"routers", len(config.HTTP.Routers),
		"services", len(config.HTTP.Services),
		"middlewares", len(config.HTTP.Middlewares),
		"warnings", len(warnings),
	)

	return nil
}

// Run drives the synchronization loop until ctx is canceled. Rebuilds are
// serialized: notifications arriving while one is in flight are coalesced by
// the source's buffered channel into at most one follow-up rebuild.
func (m *Manager) Run(ctx context.Context) error {
	notifications, err := m.source.Subscribe(ctx)
	if err != nil {
		return fmt.Errorf("failed to subscribe to container events: %w", err)
	}

	if err := m.Rebuild(ctx); err != nil {
		// Stay in the initializing state; the next notification or tick
		// retries the build.
		slog.Warn("initial snapshot build failed", "error", err)
	}

	var ticks <-chan time.Time
	if m.refreshInterval > 0 {
		ticker := time.NewTicker(m.refreshInterval)
		defer ticker.Stop()
		ticks = ticker.C
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case _, open := <-notifications:
			if !open {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				return fmt.Errorf("container event subscription closed")
			}
			if err := m.Rebuild(ctx); err != nil {
				slog.Warn("snapshot rebuild failed, serving previous snapshot", "error", err)
			}
		case <-ticks:
			if err := m.Rebuild(ctx); err != nil {
				slog.Warn("periodic snapshot refresh failed, serving previous snapshot", "error", err)
			}
		}
	}
}
