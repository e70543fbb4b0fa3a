package dynamic

import (
	"fmt"
	"strconv"
	"strings"
)

// Decoding projects a container's object tree into the typed schema. Label
// values are strings at the boundary; typed interpretation (ints, bools,
// lists) happens here, explicitly, per field. Problems are returned as
// messages for the caller to turn into warnings: decoding never fails.

// DecodeRouter projects a router subtree into a typed Router.
func DecodeRouter(name string, node *Node) (*Router, []string) {
	router := &Router{}
	var problems []string

	if node.Kind != KindObject {
		return router, []string{fmt.Sprintf("router %q is not an object", name)}
	}

	for option, child := range node.Children {
		switch option {
		case "rule":
			router.Rule = leafOrProblem(child, "router", name, option, &problems)
		case "service":
			router.Service = leafOrProblem(child, "router", name, option, &problems)
		case "priority":
			raw := leafOrProblem(child, "router", name, option, &problems)
			if raw == "" {
				continue
			}
			priority, err := strconv.Atoi(raw)
			if err != nil {
				problems = append(problems, fmt.Sprintf("router %q: priority %q is not an integer", name, raw))
				continue
			}
			router.Priority = priority
		case "entrypoints":
			router.EntryPoints = decodeStringList(child)
		case "middlewares":
			router.Middlewares = decodeStringList(child)
		case "tls":
			tls, ok := decodeTLS(child)
			if !ok {
				problems = append(problems, fmt.Sprintf("router %q: tls must be a boolean or an object", name))
				continue
			}
			router.TLS = tls
		default:
			problems = append(problems, fmt.Sprintf("router %q: unrecognized option %q ignored", name, option))
		}
	}

	return router, problems
}

// DecodeService projects a service subtree into a typed Service.
func DecodeService(name string, node *Node) (*Service, []string) {
	service := &Service{}
	var problems []string

	if node.Kind != KindObject {
		return service, []string{fmt.Sprintf("service %q is not an object", name)}
	}

	for kind, child := range node.Children {
		if kind != "loadbalancer" {
			problems = append(problems, fmt.Sprintf("service %q: unsupported service type %q ignored", name, kind))
			continue
		}
		lb, lbProblems := decodeLoadBalancer(name, child)
		service.LoadBalancer = lb
		problems = append(problems, lbProblems...)
	}

	return service, problems
}

func decodeLoadBalancer(service string, node *Node) (*ServersLoadBalancer, []string) {
	lb := &ServersLoadBalancer{}
	var problems []string

	if node.Kind != KindObject {
		return lb, []string{fmt.Sprintf("service %q: loadbalancer is not an object", service)}
	}

	for option, child := range node.Children {
		switch option {
		case "server":
			url, _ := child.Child("url").Leaf()
			port, _ := child.Child("port").Leaf()
			scheme, _ := child.Child("scheme").Leaf()
			lb.Server = &ServerDefaults{URL: url, Port: port, Scheme: scheme}
		case "servers":
			if child.Kind != KindList {
				problems = append(problems, fmt.Sprintf("service %q: servers must be a list", service))
				continue
			}
			for _, item := range child.Items {
				url, _ := item.Child("url").Leaf()
				lb.Servers = append(lb.Servers, Server{URL: url})
			}
		case "passhostheader":
			raw, _ := child.Leaf()
			value, err := strconv.ParseBool(raw)
			if err != nil {
				problems = append(problems, fmt.Sprintf("service %q: passhostheader %q is not a boolean", service, raw))
				continue
			}
			lb.PassHostHeader = &value
		default:
			problems = append(problems, fmt.Sprintf("service %q: unrecognized loadbalancer option %q ignored", service, option))
		}
	}

	return lb, problems
}

// DecodeMiddleware keeps the middleware definition structural: middleware
// option grammars are the consuming proxy's concern.
func DecodeMiddleware(name string, node *Node) (Middleware, []string) {
	if node.Kind != KindObject {
		return Middleware{}, []string{fmt.Sprintf("middleware %q is not an object", name)}
	}
	rendered, _ := node.Render().(map[string]any)
	return Middleware(rendered), nil
}

func decodeTLS(node *Node) (map[string]any, bool) {
	if raw, isLeaf := node.Leaf(); isLeaf {
		enabled, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, false
		}
		if !enabled {
			return nil, true
		}
		return map[string]any{}, true
	}
	if node.Kind != KindObject {
		return nil, false
	}
	rendered, _ := node.Render().(map[string]any)
	return rendered, true
}

// decodeStringList accepts either a list of leaves or a single
// comma-separated leaf, the two shapes the label convention allows.
func decodeStringList(node *Node) []string {
	var values []string
	switch node.Kind {
	case KindLeaf:
		for _, part := range strings.Split(node.Value, ",") {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				values = append(values, trimmed)
			}
		}
	case KindList:
		for _, item := range node.Items {
			if value, ok := item.Leaf(); ok {
				values = append(values, value)
			}
		}
	case KindObject:
		// Not addressable as a list; callers treat nil as absent.
	}
	return values
}

func leafOrProblem(node *Node, entity, name, option string, problems *[]string) string {
	value, ok := node.Leaf()
	if !ok {
		*problems = append(*problems, fmt.Sprintf("%s %q: option %q is not a plain value", entity, name, option))
		return ""
	}
	return value
}
