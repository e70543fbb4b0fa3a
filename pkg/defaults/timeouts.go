package defaults

import "time"

// Docker state source timeouts.
const (
	// DockerListTimeout bounds a single container list call against the
	// Docker Engine API. Rebuilds fall back to the previous snapshot when
	// the deadline is exceeded.
	DockerListTimeout = 10 * time.Second

	// DockerReconnectInitialInterval is the first delay before retrying a
	// lost Docker event stream.
	DockerReconnectInitialInterval = 500 * time.Millisecond

	// DockerReconnectMaxInterval caps the exponential reconnect backoff.
	DockerReconnectMaxInterval = 30 * time.Second
)

// Server timeouts for HTTP server configuration.
const (
	// ServerReadTimeout is the maximum duration for reading a request.
	ServerReadTimeout = 10 * time.Second

	// ServerWriteTimeout is the maximum duration for writing a response.
	ServerWriteTimeout = 30 * time.Second

	// ServerIdleTimeout is the maximum duration to wait for the next request.
	ServerIdleTimeout = 120 * time.Second

	// ServerShutdownTimeout is the maximum duration for graceful shutdown.
	ServerShutdownTimeout = 30 * time.Second
)
