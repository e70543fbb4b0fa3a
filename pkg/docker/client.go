package docker

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/distribution/reference"
	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/api/types/events"
	"github.com/docker/docker/api/types/filters"
	"github.com/docker/docker/client"

	"github.com/technophil98/traefik-docker-http-provider-server/pkg/defaults"
)

// lifecycleActions are the container events that can change the derived
// configuration. Anything else (exec, attach, health checks) is filtered out
// daemon-side to keep the stream quiet.
var lifecycleActions = []string{
	"create",
	"start",
	"stop",
	"die",
	"kill",
	"pause",
	"unpause",
	"update",
	"destroy",
	"rename",
}

// ClientSource observes containers through the Docker Engine API.
type ClientSource struct {
	client client.APIClient
}

// NewClientSource connects to the Docker daemon. An empty host uses the
// standard environment configuration (DOCKER_HOST, DOCKER_API_VERSION, ...).
func NewClientSource(host string) (*ClientSource, error) {
	opts := []client.Opt{
		client.FromEnv,
		client.WithAPIVersionNegotiation(),
	}
	if host != "" {
		opts = append(opts, client.WithHost(host))
	}

	c, err := client.NewClientWithOpts(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create docker client: %w", err)
	}

	return &ClientSource{client: c}, nil
}

// NewClientSourceWithClient wraps an existing API client. Used by tests.
func NewClientSourceWithClient(c client.APIClient) *ClientSource {
	return &ClientSource{client: c}
}

// List returns the full current container set. The call is bounded by
// defaults.DockerListTimeout so a stalled daemon cannot block a rebuild
// indefinitely.
func (s *ClientSource) List(ctx context.Context) ([]Container, error) {
	ctx, cancel := context.WithTimeout(ctx, defaults.DockerListTimeout)
	defer cancel()

	summaries, err := s.client.ContainerList(ctx, container.ListOptions{All: true})
	if err != nil {
		return nil, fmt.Errorf("failed to list containers: %w", err)
	}

	containers := make([]Container, 0, len(summaries))
	for _, summary := range summaries {
		containers = append(containers, fromSummary(summary))
	}

	return containers, nil
}

// Subscribe opens the daemon event stream and forwards one empty
// notification per relevant container lifecycle event. A lost stream is
// re-established with exponential backoff; no notifications are emitted
// during an outage so consumers keep serving their last good state.
func (s *ClientSource) Subscribe(ctx context.Context) (<-chan struct{}, error) {
	notifications := make(chan struct{}, 1)

	go func() {
		defer close(notifications)
		s.stream(ctx, notifications)
	}()

	return notifications, nil
}

func (s *ClientSource) stream(ctx context.Context, notifications chan<- struct{}) {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = defaults.DockerReconnectInitialInterval
	bo.MaxInterval = defaults.DockerReconnectMaxInterval
	bo.MaxElapsedTime = 0 // retry until the context ends

	filter := filters.NewArgs(filters.Arg("type", string(events.ContainerEventType)))
	for _, action := range lifecycleActions {
		filter.Add("event", action)
	}

	for {
		messages, errs := s.client.Events(ctx, events.ListOptions{Filters: filter})

		streamErr := s.consume(ctx, messages, errs, notifications, bo)
		if ctx.Err() != nil {
			return
		}

		wait := bo.NextBackOff()
		slog.Warn("docker event stream lost, reconnecting",
			"error", streamErr,
			"retry_in", wait.String(),
		)

		select {
		case <-ctx.Done():
			return
		case <-time.After(wait):
		}
	}
}

// consume forwards events until the stream fails or the context ends. The
// backoff is reset on the first delivered event, marking the stream healthy.
func (s *ClientSource) consume(
	ctx context.Context,
	messages <-chan events.Message,
	errs <-chan error,
	notifications chan<- struct{},
	bo *backoff.ExponentialBackOff,
) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg := <-messages:
			bo.Reset()
			slog.Debug("container lifecycle event",
				"action", msg.Action,
				"container", shortID(msg.Actor.ID),
			)
			select {
			case notifications <- struct{}{}:
			default: // a notification is already pending; coalesce
			}
		case err := <-errs:
			return err
		}
	}
}

func fromSummary(summary container.Summary) Container {
	name := ""
	if len(summary.Names) > 0 {
		// The engine reports names with a leading slash.
		name = strings.TrimPrefix(summary.Names[0], "/")
	}

	ports := make([]PortBinding, 0, len(summary.Ports))
	for _, port := range summary.Ports {
		ports = append(ports, PortBinding{
			HostIP:        port.IP,
			HostPort:      port.PublicPort,
			ContainerPort: port.PrivatePort,
			Protocol:      port.Type,
		})
	}

	return Container{
		ID:      summary.ID,
		Name:    name,
		Image:   normalizeImage(summary.Image),
		Running: summary.State == "running",
		Labels:  summary.Labels,
		Ports:   ports,
	}
}

// normalizeImage expands an image name to its canonical familiar form
// (e.g. "nginx" -> "nginx:latest") for stable logging. Unparseable names are
// kept verbatim.
func normalizeImage(image string) string {
	named, err := reference.ParseNormalizedNamed(image)
	if err != nil {
		return image
	}
	return reference.FamiliarString(reference.TagNameOnly(named))
}
