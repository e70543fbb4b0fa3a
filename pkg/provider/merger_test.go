package provider

import (
	"encoding/json"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/technophil98/traefik-docker-http-provider-server/pkg/docker"
)

func newMerger(t *testing.T, base string) *Merger {
	t.Helper()
	baseURL, err := url.Parse(base)
	require.NoError(t, err)
	return NewMerger(baseURL)
}

func TestBuildEmptySetIsStructurallyTotal(t *testing.T) {
	merger := newMerger(t, "http://192.168.1.100")

	config, warnings := merger.Build(nil)
	assert.Empty(t, warnings)

	payload, err := json.Marshal(config)
	require.NoError(t, err)
	assert.JSONEq(t, `{"http":{"routers":{},"services":{},"middlewares":{}},"tls":{}}`, string(payload))
}

func TestBuildRoundTrip(t *testing.T) {
	merger := newMerger(t, "http://192.168.1.100")

	config, warnings := merger.Build([]docker.Container{{
		ID:      "c1",
		Name:    "web",
		Running: true,
		Labels: map[string]string{
			"traefik.http.routers.web.rule":                          "Host(`x`)",
			"traefik.http.routers.web.service":                       "web-svc",
			"traefik.http.services.web-svc.loadbalancer.server.port": "80",
		},
	}})
	assert.Empty(t, warnings)

	router := config.HTTP.Routers["web"]
	require.NotNil(t, router)
	assert.Equal(t, "Host(`x`)", router.Rule)
	assert.Equal(t, "web-svc", router.Service)

	service := config.HTTP.Services["web-svc"]
	require.NotNil(t, service)
	require.NotNil(t, service.LoadBalancer)
	require.NotNil(t, service.LoadBalancer.Server)
	assert.Equal(t, "80", service.LoadBalancer.Server.Port)

	// The declared port is folded into the substituted default address.
	require.Len(t, service.LoadBalancer.Servers, 1)
	assert.Equal(t, "http://192.168.1.100:80", service.LoadBalancer.Servers[0].URL)
}

func TestBuildIsIdempotent(t *testing.T) {
	merger := newMerger(t, "http://192.168.1.100")
	containers := []docker.Container{
		{
			ID:      "a",
			Name:    "one",
			Running: true,
			Labels: map[string]string{
				"traefik.http.routers.one.rule": "Host(`one`)",
			},
			Ports: []docker.PortBinding{{HostPort: 7001, ContainerPort: 80}},
		},
		{
			ID:      "b",
			Name:    "two",
			Running: true,
			Labels: map[string]string{
				"traefik.http.routers.two.rule": "Host(`two`)",
			},
			Ports: []docker.PortBinding{{HostPort: 7002, ContainerPort: 80}},
		},
	}

	first, _ := merger.Build(containers)
	second, _ := merger.Build(containers)

	firstJSON, err := json.Marshal(first)
	require.NoError(t, err)
	secondJSON, err := json.Marshal(second)
	require.NoError(t, err)
	assert.Equal(t, firstJSON, secondJSON)
}

func TestBuildMergeDeterminism(t *testing.T) {
	merger := newMerger(t, "http://192.168.1.100")

	a := docker.Container{
		ID:      "a",
		Name:    "alpha",
		Running: true,
		Labels: map[string]string{
			"traefik.http.routers.r.rule": "Host(`alpha`)",
		},
	}
	b := docker.Container{
		ID:      "b",
		Name:    "beta",
		Running: true,
		Labels: map[string]string{
			"traefik.http.routers.r.rule": "Host(`beta`)",
		},
	}

	forward, forwardWarnings := merger.Build([]docker.Container{a, b})
	reverse, reverseWarnings := merger.Build([]docker.Container{b, a})

	// Lowest container id wins regardless of observation order.
	assert.Equal(t, "Host(`alpha`)", forward.HTTP.Routers["r"].Rule)
	assert.Equal(t, "Host(`alpha`)", reverse.HTTP.Routers["r"].Rule)

	require.Len(t, forwardWarnings, 1)
	require.Len(t, reverseWarnings, 1)
	assert.Equal(t, "b", forwardWarnings[0].ContainerID)
	assert.Equal(t, forwardWarnings[0], reverseWarnings[0])
}

func TestBuildSkipsNonRunningContainers(t *testing.T) {
	merger := newMerger(t, "http://192.168.1.100")

	config, warnings := merger.Build([]docker.Container{{
		ID:      "c1",
		Name:    "stopped",
		Running: false,
		Labels: map[string]string{
			"traefik.http.routers.web.rule": "Host(`x`)",
		},
	}})

	assert.Empty(t, warnings)
	assert.Empty(t, config.HTTP.Routers)
}

func TestBuildDefaultAddressSubstitution(t *testing.T) {
	tests := []struct {
		name      string
		container docker.Container
		service   string
		expected  string
	}{
		{
			name: "declared port over published port",
			container: docker.Container{
				ID: "c1", Name: "web", Running: true,
				Labels: map[string]string{
					"traefik.http.services.s.loadbalancer.server.port": "8081",
				},
				Ports: []docker.PortBinding{{HostPort: 9999, ContainerPort: 8081}},
			},
			service:  "s",
			expected: "http://192.168.1.100:8081",
		},
		{
			name: "published port fallback",
			container: docker.Container{
				ID: "c1", Name: "web", Running: true,
				Labels: map[string]string{
					"traefik.http.services.s.loadbalancer.passhostheader": "true",
				},
				Ports: []docker.PortBinding{
					{HostPort: 7878, ContainerPort: 80},
					{HostPort: 9090, ContainerPort: 81},
				},
			},
			service:  "s",
			expected: "http://192.168.1.100:7878",
		},
		{
			name: "no port at all keeps the base address verbatim",
			container: docker.Container{
				ID: "c1", Name: "web", Running: true,
				Labels: map[string]string{
					"traefik.http.services.s.loadbalancer.passhostheader": "true",
				},
			},
			service:  "s",
			expected: "http://192.168.1.100",
		},
		{
			name: "declared scheme is honored",
			container: docker.Container{
				ID: "c1", Name: "web", Running: true,
				Labels: map[string]string{
					"traefik.http.services.s.loadbalancer.server.port":   "8443",
					"traefik.http.services.s.loadbalancer.server.scheme": "https",
				},
			},
			service:  "s",
			expected: "https://192.168.1.100:8443",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			merger := newMerger(t, "http://192.168.1.100")
			config, _ := merger.Build([]docker.Container{tt.container})

			service := config.HTTP.Services[tt.service]
			require.NotNil(t, service)
			require.NotNil(t, service.LoadBalancer)
			require.Len(t, service.LoadBalancer.Servers, 1)
			assert.Equal(t, tt.expected, service.LoadBalancer.Servers[0].URL)
		})
	}
}

func TestBuildExplicitServerURLUntouched(t *testing.T) {
	merger := newMerger(t, "http://192.168.1.100")

	config, warnings := merger.Build([]docker.Container{{
		ID: "c1", Name: "web", Running: true,
		Labels: map[string]string{
			"traefik.http.services.s.loadbalancer.servers[0].url": "http://10.0.0.5:3000",
		},
		Ports: []docker.PortBinding{{HostPort: 7878, ContainerPort: 80}},
	}})
	assert.Empty(t, warnings)

	service := config.HTTP.Services["s"]
	require.NotNil(t, service)
	require.Len(t, service.LoadBalancer.Servers, 1)
	assert.Equal(t, "http://10.0.0.5:3000", service.LoadBalancer.Servers[0].URL)
}

func TestBuildSynthesizesContainerService(t *testing.T) {
	merger := newMerger(t, "http://192.168.1.100")

	config, warnings := merger.Build([]docker.Container{{
		ID: "c1", Name: "my-service", Running: true,
		Labels: map[string]string{
			"traefik.http.routers.to-my-service.rule": "Host(`my-service.my-domain.com`)",
		},
		Ports: []docker.PortBinding{{HostPort: 7878, ContainerPort: 80}},
	}})
	assert.Empty(t, warnings)

	router := config.HTTP.Routers["to-my-service"]
	require.NotNil(t, router)
	assert.Equal(t, "my-service", router.Service)

	service := config.HTTP.Services["my-service"]
	require.NotNil(t, service)
	require.Len(t, service.LoadBalancer.Servers, 1)
	assert.Equal(t, "http://192.168.1.100:7878", service.LoadBalancer.Servers[0].URL)
}

func TestBuildRouterFallsBackToOnlyService(t *testing.T) {
	merger := newMerger(t, "http://192.168.1.100")

	config, _ := merger.Build([]docker.Container{{
		ID: "c1", Name: "web", Running: true,
		Labels: map[string]string{
			"traefik.http.routers.r.rule":                        "Host(`x`)",
			"traefik.http.services.api.loadbalancer.server.port": "3000",
		},
	}})

	assert.Equal(t, "api", config.HTTP.Routers["r"].Service)
}

func TestBuildMalformedLabelResilience(t *testing.T) {
	merger := newMerger(t, "http://192.168.1.100")

	config, warnings := merger.Build([]docker.Container{{
		ID: "c1", Name: "web", Running: true,
		Labels: map[string]string{
			"traefik.http.routers..rule":                             "x",
			"traefik.http.routers.web.rule":                          "Host(`x`)",
			"traefik.http.routers.web.service":                       "web-svc",
			"traefik.http.services.web-svc.loadbalancer.server.port": "80",
		},
	}})

	require.Len(t, warnings, 1)
	assert.Equal(t, "traefik.http.routers..rule", warnings[0].Key)

	require.NotNil(t, config.HTTP.Routers["web"])
	assert.Equal(t, "Host(`x`)", config.HTTP.Routers["web"].Rule)
	require.NotNil(t, config.HTTP.Services["web-svc"])
}

func TestBuildMergesTLSSection(t *testing.T) {
	merger := newMerger(t, "http://192.168.1.100")

	config, warnings := merger.Build([]docker.Container{{
		ID: "c1", Name: "web", Running: true,
		Labels: map[string]string{
			"traefik.tls.stores.default.defaultgeneratedcert.domain.main": "example.com",
		},
	}})
	assert.Empty(t, warnings)

	require.Contains(t, config.TLS, "stores")
}
