package cli

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"

	"github.com/urfave/cli/v3"

	"github.com/technophil98/traefik-docker-http-provider-server/pkg/api"
	"github.com/technophil98/traefik-docker-http-provider-server/pkg/logging"
)

func serveCmd() *cli.Command {
	return &cli.Command{
		Name:                  "serve",
		EnableShellCompletion: true,
		Usage:                 "Run the provider server",
		Description: `Serve the Traefik dynamic configuration derived from Docker container
labels.

The base URL is required: it is the address substituted into services
that do not declare an explicit load-balancer target, combined with the
container's declared or published port.

# Examples

Minimal invocation:
  providerd serve --base-url http://192.168.1.10

Against a remote daemon, with a periodic refresh:
  providerd serve --base-url http://edge.internal \
    --docker-host tcp://dockerhost:2375 \
    --poll-interval 30s`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "base-url",
				Usage:    "Default target address for services without an explicit one",
				Sources:  cli.EnvVars("BASE_URL"),
				Required: true,
			},
			&cli.StringFlag{
				Name:    "address",
				Usage:   "Listen address",
				Sources: cli.EnvVars("ADDRESS"),
			},
			&cli.IntFlag{
				Name:    "port",
				Usage:   "Listen port",
				Sources: cli.EnvVars("PORT"),
				Value:   8080,
			},
			&cli.StringFlag{
				Name:    "docker-host",
				Usage:   "Docker daemon endpoint (defaults to the environment configuration)",
				Sources: cli.EnvVars("DOCKER_HOST"),
			},
			&cli.DurationFlag{
				Name:    "poll-interval",
				Usage:   "Periodic snapshot refresh interval, 0 to rely on events only",
				Sources: cli.EnvVars("POLL_INTERVAL"),
				Value:   0,
			},
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "Log level (debug, info, warn, error)",
				Sources: cli.EnvVars("LOG_LEVEL"),
				Value:   "info",
			},
		},
		Action: runServe,
	}
}

func runServe(ctx context.Context, cmd *cli.Command) error {
	logging.SetDefaultStructuredLoggerWithLevel(name, version, cmd.String("log-level"))
	slog.Info("starting",
		"name", name,
		"version", version,
		"commit", commit,
		"date", date,
	)

	// A missing or unparseable base URL is a startup failure, never a
	// runtime one.
	baseURL, err := url.Parse(cmd.String("base-url"))
	if err != nil {
		return fmt.Errorf("invalid base URL %q: %w", cmd.String("base-url"), err)
	}
	if !baseURL.IsAbs() || baseURL.Host == "" {
		return fmt.Errorf("base URL %q must be absolute with a host", cmd.String("base-url"))
	}

	return api.Serve(ctx, api.Options{
		Name:         name,
		Version:      version,
		BaseURL:      baseURL,
		Address:      cmd.String("address"),
		Port:         int(cmd.Int("port")),
		DockerHost:   cmd.String("docker-host"),
		PollInterval: cmd.Duration("poll-interval"),
	})
}
