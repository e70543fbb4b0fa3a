package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/technophil98/traefik-docker-http-provider-server/pkg/docker"
	"github.com/technophil98/traefik-docker-http-provider-server/pkg/provider"
	"github.com/technophil98/traefik-docker-http-provider-server/pkg/server"
	"github.com/technophil98/traefik-docker-http-provider-server/pkg/state"
)

// Options configures the provider server assembly.
type Options struct {
	// Name and Version identify the process in logs and the default route.
	Name    string
	Version string

	// BaseURL is the default target address substituted into services that
	// do not declare one. Required.
	BaseURL *url.URL

	// Address and Port select the listen socket. A zero Port keeps the
	// server default (PORT env or 8080).
	Address string
	Port    int

	// DockerHost overrides the Docker daemon endpoint. Empty uses the
	// standard environment configuration.
	DockerHost string

	// PollInterval adds a periodic snapshot refresh as a safety net against
	// missed events. Zero disables it.
	PollInterval time.Duration
}

// Serve assembles the provider pipeline and blocks until ctx is canceled or
// a component fails fatally.
func Serve(ctx context.Context, opts Options) error {
	if opts.BaseURL == nil {
		return fmt.Errorf("base URL is required")
	}

	source, err := docker.NewClientSource(opts.DockerHost)
	if err != nil {
		return fmt.Errorf("failed to connect to docker: %w", err)
	}

	merger := provider.NewMerger(opts.BaseURL)
	snapshots := state.NewManager(source, merger, opts.PollInterval)

	cfg := server.NewConfig()
	cfg.Name = opts.Name
	cfg.Version = opts.Version
	cfg.Address = opts.Address
	if opts.Port != 0 {
		cfg.Port = opts.Port
	}
	cfg.ReadyCheck = snapshots.Ready

	configHandler := server.NewDynamicConfigurationHandler(snapshots)
	cfg.Handlers = map[string]http.HandlerFunc{
		"/dynamic-configuration": configHandler,
		// Route kept for clients configured against the original path.
		"/dynamic_configuration": configHandler,
	}

	srv := server.New(cfg)

	slog.Info("starting provider",
		"base_url", opts.BaseURL.String(),
		"docker_host", opts.DockerHost,
		"poll_interval", opts.PollInterval.String(),
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return snapshots.Run(gctx)
	})

	g.Go(func() error {
		return srv.Run(gctx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("server error: %w", err)
	}

	slog.Info("server stopped gracefully")
	return nil
}
