package provider

import (
	"fmt"
	"net"
	"net/url"
	"sort"
	"strconv"

	"github.com/technophil98/traefik-docker-http-provider-server/pkg/docker"
	"github.com/technophil98/traefik-docker-http-provider-server/pkg/dynamic"
)

// Merger combines the label trees of every running container into one
// dynamic configuration document. It holds no mutable state: Build is a pure
// function of its input, and the externally configured base URL.
type Merger struct {
	baseURL *url.URL
}

// NewMerger creates a merger that substitutes addresses derived from baseURL
// into services lacking an explicit target.
func NewMerger(baseURL *url.URL) *Merger {
	return &Merger{baseURL: baseURL}
}

// Build produces the merged document for the given container set. It never
// fails: recoverable problems (malformed labels, name conflicts, unusable
// values) are returned as warnings and the offending pieces are dropped,
// leaving a structurally valid, possibly smaller, document.
func (m *Merger) Build(containers []docker.Container) (*dynamic.Configuration, []dynamic.Warning) {
	config := dynamic.NewConfiguration()
	var warnings []dynamic.Warning

	running := make([]docker.Container, 0, len(containers))
	for _, ctr := range containers {
		if ctr.Running {
			running = append(running, ctr)
		}
	}

	// Ascending id order makes the merge deterministic regardless of the
	// order the runtime reported the containers in.
	sort.Slice(running, func(i, j int) bool { return running[i].ID < running[j].ID })

	owners := map[string]string{} // collection/name -> container id
	for _, ctr := range running {
		tree, treeWarnings := dynamic.BuildTree(ctr.ID, ctr.Labels)
		warnings = append(warnings, treeWarnings...)
		warnings = append(warnings, m.mergeContainer(config, ctr, tree, owners)...)
	}

	return config, warnings
}

func (m *Merger) mergeContainer(
	config *dynamic.Configuration,
	ctr docker.Container,
	tree *dynamic.Node,
	owners map[string]string,
) []dynamic.Warning {
	var warnings []dynamic.Warning

	claim := func(collection, name string) bool {
		key := collection + "/" + name
		if owner, taken := owners[key]; taken {
			warnings = append(warnings, dynamic.Warning{
				ContainerID: ctr.ID,
				Message: fmt.Sprintf("%s %q already defined by container %s, definition dropped",
					collection, name, owner),
			})
			return false
		}
		owners[key] = ctr.ID
		return true
	}

	record := func(problems []string) {
		for _, problem := range problems {
			warnings = append(warnings, dynamic.Warning{ContainerID: ctr.ID, Message: problem})
		}
	}

	httpNode := tree.Child("http")

	var (
		ownRouters  []*dynamic.Router
		ownServices []string
	)

	for name, node := range sortedChildren(httpNode.Child("routers")) {
		if !claim("router", name) {
			continue
		}
		router, problems := dynamic.DecodeRouter(name, node)
		record(problems)
		config.HTTP.Routers[name] = router
		ownRouters = append(ownRouters, router)
	}

	for name, node := range sortedChildren(httpNode.Child("services")) {
		if !claim("service", name) {
			continue
		}
		service, problems := dynamic.DecodeService(name, node)
		record(problems)
		warnings = append(warnings, m.applyDefaultAddress(service, ctr)...)
		config.HTTP.Services[name] = service
		ownServices = append(ownServices, name)
	}

	// A router that names no service falls back to the container's only
	// service, synthesizing one named after the container when it declared
	// none at all.
	if len(ownRouters) > 0 {
		fallback := ""
		switch len(ownServices) {
		case 1:
			fallback = ownServices[0]
		case 0:
			name := ctr.Name
			if name == "" {
				name = ctr.ID
			}
			if claim("service", name) {
				service := &dynamic.Service{}
				warnings = append(warnings, m.applyDefaultAddress(service, ctr)...)
				config.HTTP.Services[name] = service
				fallback = name
			}
		}
		if fallback != "" {
			for _, router := range ownRouters {
				if router.Service == "" {
					router.Service = fallback
				}
			}
		}
	}

	for name, node := range sortedChildren(httpNode.Child("middlewares")) {
		if !claim("middleware", name) {
			continue
		}
		middleware, problems := dynamic.DecodeMiddleware(name, node)
		record(problems)
		config.HTTP.Middlewares[name] = middleware
	}

	for name, node := range sortedChildren(tree.Child("tls")) {
		if !claim("tls", name) {
			continue
		}
		config.TLS[name] = node.Render()
	}

	return warnings
}

// applyDefaultAddress fills in a load-balancer target for services that do
// not declare one explicitly. The target is derived from the configured base
// URL plus the best known port: the label-declared server port when valid,
// otherwise the container's lowest published host port, otherwise the base
// URL verbatim. Services with an explicit URL are left untouched.
func (m *Merger) applyDefaultAddress(service *dynamic.Service, ctr docker.Container) []dynamic.Warning {
	if service.LoadBalancer == nil {
		service.LoadBalancer = &dynamic.ServersLoadBalancer{}
	}
	lb := service.LoadBalancer

	for _, server := range lb.Servers {
		if server.URL != "" {
			return nil
		}
	}

	if lb.Server != nil && lb.Server.URL != "" {
		lb.Servers = []dynamic.Server{{URL: lb.Server.URL}}
		return nil
	}

	var warnings []dynamic.Warning

	port, havePort := uint16(0), false
	if lb.Server != nil && lb.Server.Port != "" {
		parsed, err := parsePort(lb.Server.Port)
		if err != nil {
			warnings = append(warnings, dynamic.Warning{
				ContainerID: ctr.ID,
				Message:     fmt.Sprintf("declared server port %q unusable: %v", lb.Server.Port, err),
			})
		} else {
			port, havePort = parsed, true
		}
	}
	if !havePort {
		port, havePort = ctr.FirstPublishedPort()
	}

	target := *m.baseURL
	if lb.Server != nil && lb.Server.Scheme != "" {
		target.Scheme = lb.Server.Scheme
	}
	if havePort {
		target.Host = net.JoinHostPort(target.Hostname(), strconv.Itoa(int(port)))
	}

	lb.Servers = []dynamic.Server{{URL: target.String()}}
	return warnings
}

func parsePort(raw string) (uint16, error) {
	port, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("not an integer")
	}
	if port < 1 || port > 65535 {
		return 0, fmt.Errorf("out of range")
	}
	return uint16(port), nil
}

// sortedChildren iterates an object node's children in name order so merge
// warnings and conflict resolution are reproducible.
func sortedChildren(node *dynamic.Node) func(func(string, *dynamic.Node) bool) {
	return func(yield func(string, *dynamic.Node) bool) {
		if node == nil || node.Kind != dynamic.KindObject {
			return
		}
		names := make([]string, 0, len(node.Children))
		for name := range node.Children {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			if !yield(name, node.Children[name]) {
				return
			}
		}
	}
}
