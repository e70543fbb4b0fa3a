package dynamic

// Configuration is the document served to Traefik over the HTTP provider
// endpoint. All collection maps are always present and non-nil so the
// serialized document is structurally complete even when empty.
type Configuration struct {
	HTTP *HTTPConfiguration `json:"http" yaml:"http"`
	TLS  map[string]any     `json:"tls" yaml:"tls"`
}

// HTTPConfiguration groups the named HTTP entities of the document.
type HTTPConfiguration struct {
	Routers     map[string]*Router    `json:"routers" yaml:"routers"`
	Services    map[string]*Service   `json:"services" yaml:"services"`
	Middlewares map[string]Middleware `json:"middlewares" yaml:"middlewares"`
}

// Router describes how incoming traffic is matched and dispatched to a
// service by the consuming proxy.
type Router struct {
	EntryPoints []string       `json:"entryPoints,omitempty" yaml:"entryPoints,omitempty"`
	Middlewares []string       `json:"middlewares,omitempty" yaml:"middlewares,omitempty"`
	Rule        string         `json:"rule,omitempty" yaml:"rule,omitempty"`
	Service     string         `json:"service,omitempty" yaml:"service,omitempty"`
	Priority    int            `json:"priority,omitempty" yaml:"priority,omitempty"`
	TLS         map[string]any `json:"tls,omitempty" yaml:"tls,omitempty"`
}

// Service describes a forwarding target.
type Service struct {
	LoadBalancer *ServersLoadBalancer `json:"loadBalancer,omitempty" yaml:"loadBalancer,omitempty"`
}

// ServersLoadBalancer holds the load-balancer settings of a service. Server
// carries the per-container defaults declared through labels
// (loadbalancer.server.port etc.); Servers is the resolved target list.
type ServersLoadBalancer struct {
	Server         *ServerDefaults `json:"server,omitempty" yaml:"server,omitempty"`
	Servers        []Server        `json:"servers,omitempty" yaml:"servers,omitempty"`
	PassHostHeader *bool           `json:"passHostHeader,omitempty" yaml:"passHostHeader,omitempty"`
}

// ServerDefaults is the label-declared default endpoint of a service. Values
// stay strings at this boundary; numeric interpretation happens where the
// resolved URL is built.
type ServerDefaults struct {
	URL    string `json:"url,omitempty" yaml:"url,omitempty"`
	Port   string `json:"port,omitempty" yaml:"port,omitempty"`
	Scheme string `json:"scheme,omitempty" yaml:"scheme,omitempty"`
}

// Server is one resolved load-balancer target.
type Server struct {
	URL string `json:"url,omitempty" yaml:"url,omitempty"`
}

// Middleware is a structurally parsed middleware definition. Middleware
// option grammars belong to the consuming proxy and are not validated here.
type Middleware map[string]any

// NewConfiguration returns an empty but structurally valid document.
func NewConfiguration() *Configuration {
	return &Configuration{
		HTTP: &HTTPConfiguration{
			Routers:     map[string]*Router{},
			Services:    map[string]*Service{},
			Middlewares: map[string]Middleware{},
		},
		TLS: map[string]any{},
	}
}
