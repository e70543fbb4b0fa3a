package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"
)

const (
	name           = "providerd"
	versionDefault = "dev"
)

var (
	// overridden during build with ldflags
	version = versionDefault
	commit  = "unknown"
	date    = "unknown"
)

func rootCmd() *cli.Command {
	return &cli.Command{
		Name:    name,
		Usage:   "Traefik dynamic configuration provider for Docker containers",
		Version: fmt.Sprintf("%s (commit %s, built %s)", version, commit, date),
		Description: `providerd derives a Traefik dynamic configuration document from the
traefik.* labels of running Docker containers and serves it over the
HTTP provider endpoint. The document is rebuilt on container lifecycle
events and served as consistent, atomically published snapshots.`,
		Commands: []*cli.Command{
			serveCmd(),
		},
	}
}

// Execute runs the CLI. It is called by main.main() and installs signal
// handling for graceful shutdown.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd().Run(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
