package docker

import (
	"context"
	"fmt"
)

// Source is the container runtime boundary. Implementations must treat the
// returned containers as immutable observations: a changed container is
// reported as a fresh value, never mutated in place.
type Source interface {
	// List returns the full current set of observed containers.
	List(ctx context.Context) ([]Container, error)

	// Subscribe returns a channel that receives a notification whenever a
	// container starts, stops, or changes. Notifications carry no payload;
	// consumers re-list the full set. The channel is closed when ctx is
	// canceled.
	Subscribe(ctx context.Context) (<-chan struct{}, error)
}

// PortBinding is one published host-to-container port mapping.
type PortBinding struct {
	HostIP        string
	HostPort      uint16
	ContainerPort uint16
	Protocol      string
}

// Container is an immutable snapshot of one container at one point in time.
type Container struct {
	ID      string
	Name    string
	Image   string
	Running bool
	Labels  map[string]string
	Ports   []PortBinding
}

// FirstPublishedPort returns the lowest published host port, which is the
// default target used when labels do not name an explicit port.
func (c Container) FirstPublishedPort() (uint16, bool) {
	var (
		lowest uint16
		found  bool
	)
	for _, port := range c.Ports {
		if port.HostPort == 0 {
			continue
		}
		if !found || port.HostPort < lowest {
			lowest = port.HostPort
			found = true
		}
	}
	return lowest, found
}

func (c Container) String() string {
	return fmt.Sprintf("%s (%s)", c.Name, shortID(c.ID))
}

func shortID(id string) string {
	if len(id) > 12 {
		return id[:12]
	}
	return id
}
