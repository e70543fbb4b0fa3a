package dynamic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func treeFromLabels(t *testing.T, labels map[string]string) *Node {
	t.Helper()
	tree, warnings := BuildTree("test", labels)
	require.Empty(t, warnings)
	return tree
}

func TestDecodeRouter(t *testing.T) {
	tree := treeFromLabels(t, map[string]string{
		"traefik.http.routers.web.rule":        "Host(`x`)",
		"traefik.http.routers.web.service":     "web-svc",
		"traefik.http.routers.web.entrypoints": "web,websecure",
		"traefik.http.routers.web.middlewares": "auth",
		"traefik.http.routers.web.priority":    "42",
		"traefik.http.routers.web.tls":         "true",
	})

	router, problems := DecodeRouter("web", tree.Child("http").Child("routers").Child("web"))
	assert.Empty(t, problems)

	assert.Equal(t, "Host(`x`)", router.Rule)
	assert.Equal(t, "web-svc", router.Service)
	assert.Equal(t, []string{"web", "websecure"}, router.EntryPoints)
	assert.Equal(t, []string{"auth"}, router.Middlewares)
	assert.Equal(t, 42, router.Priority)
	assert.NotNil(t, router.TLS)
}

func TestDecodeRouterBadPriority(t *testing.T) {
	tree := treeFromLabels(t, map[string]string{
		"traefik.http.routers.web.rule":     "Host(`x`)",
		"traefik.http.routers.web.priority": "high",
	})

	router, problems := DecodeRouter("web", tree.Child("http").Child("routers").Child("web"))

	require.Len(t, problems, 1)
	assert.Contains(t, problems[0], "priority")
	assert.Equal(t, "Host(`x`)", router.Rule)
	assert.Zero(t, router.Priority)
}

func TestDecodeRouterUnknownOption(t *testing.T) {
	tree := treeFromLabels(t, map[string]string{
		"traefik.http.routers.web.rule":    "Host(`x`)",
		"traefik.http.routers.web.unknown": "value",
	})

	router, problems := DecodeRouter("web", tree.Child("http").Child("routers").Child("web"))

	require.Len(t, problems, 1)
	assert.Contains(t, problems[0], "unknown")
	assert.Equal(t, "Host(`x`)", router.Rule)
}

func TestDecodeService(t *testing.T) {
	tree := treeFromLabels(t, map[string]string{
		"traefik.http.services.web-svc.loadbalancer.server.port":    "80",
		"traefik.http.services.web-svc.loadbalancer.passhostheader": "true",
	})

	service, problems := DecodeService("web-svc", tree.Child("http").Child("services").Child("web-svc"))
	assert.Empty(t, problems)

	require.NotNil(t, service.LoadBalancer)
	require.NotNil(t, service.LoadBalancer.Server)
	assert.Equal(t, "80", service.LoadBalancer.Server.Port)
	require.NotNil(t, service.LoadBalancer.PassHostHeader)
	assert.True(t, *service.LoadBalancer.PassHostHeader)
}

func TestDecodeServiceExplicitServers(t *testing.T) {
	tree := treeFromLabels(t, map[string]string{
		"traefik.http.services.s.loadbalancer.servers[0].url": "http://a:1",
		"traefik.http.services.s.loadbalancer.servers[1].url": "http://b:2",
	})

	service, problems := DecodeService("s", tree.Child("http").Child("services").Child("s"))
	assert.Empty(t, problems)

	require.NotNil(t, service.LoadBalancer)
	require.Len(t, service.LoadBalancer.Servers, 2)
	assert.Equal(t, "http://a:1", service.LoadBalancer.Servers[0].URL)
	assert.Equal(t, "http://b:2", service.LoadBalancer.Servers[1].URL)
}

func TestDecodeServiceUnsupportedType(t *testing.T) {
	tree := treeFromLabels(t, map[string]string{
		"traefik.http.services.s.weighted.services[0].name": "a",
	})

	service, problems := DecodeService("s", tree.Child("http").Child("services").Child("s"))

	require.Len(t, problems, 1)
	assert.Contains(t, problems[0], "weighted")
	assert.Nil(t, service.LoadBalancer)
}

func TestDecodeMiddlewareIsStructural(t *testing.T) {
	tree := treeFromLabels(t, map[string]string{
		"traefik.http.middlewares.m.headers.customresponseheaders[0]": "X-Custom: 1",
		"traefik.http.middlewares.m.headers.framedeny":                "true",
	})

	middleware, problems := DecodeMiddleware("m", tree.Child("http").Child("middlewares").Child("m"))
	assert.Empty(t, problems)

	headers, ok := middleware["headers"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, []any{"X-Custom: 1"}, headers["customresponseheaders"])
	assert.Equal(t, "true", headers["framedeny"])
}
