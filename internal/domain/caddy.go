package domain

// The types below model the subset of Caddy's JSON configuration tree that
// the compiler emits and the control-plane client manipulates. Field names
// follow Caddy's wire format; anything Caddy supports beyond this subset is
// preserved opaquely by the admin API and never touched here.

// CaddyConfig is the proxy's full configuration document.
type CaddyConfig struct {
	Apps CaddyApps `json:"apps"`
}

// CaddyApps holds the application modules of the document.
type CaddyApps struct {
	HTTP CaddyHTTP `json:"http"`
	TLS  *CaddyTLS `json:"tls,omitempty"`
}

// CaddyHTTP configures the HTTP app and its servers.
type CaddyHTTP struct {
	Servers map[string]*CaddyServer `json:"servers"`
}

// CaddyServer is one listener set with an ordered route table.
type CaddyServer struct {
	Listen []string     `json:"listen"`
	Routes []CaddyRoute `json:"routes"`
}

// CaddyRoute is one entry of a server's route table. Top-level routes are
// evaluated independently; routes nested inside a subroute handler are
// evaluated strictly in list order.
type CaddyRoute struct {
	Match    []CaddyMatch   `json:"match,omitempty"`
	Handle   []CaddyHandler `json:"handle,omitempty"`
	Terminal bool           `json:"terminal,omitempty"`
}

// CaddyMatch is a request matcher set.
type CaddyMatch struct {
	Host []string     `json:"host,omitempty"`
	Path []string     `json:"path,omitempty"`
	Not  []CaddyMatch `json:"not,omitempty"`
}

// CaddyHandler is a single handler module invocation. The populated fields
// depend on Handler: "reverse_proxy" uses Upstreams and HealthChecks,
// "subroute" uses Routes, "static_response" uses StatusCode and Body.
type CaddyHandler struct {
	Handler      string             `json:"handler"`
	Upstreams    []CaddyUpstream    `json:"upstreams,omitempty"`
	HealthChecks *CaddyHealthChecks `json:"health_checks,omitempty"`
	Routes       []CaddyRoute       `json:"routes,omitempty"`
	StatusCode   int                `json:"status_code,omitempty"`
	Body         string             `json:"body,omitempty"`
}

// CaddyUpstream is one reverse-proxy backend.
type CaddyUpstream struct {
	Dial string `json:"dial"`
}

// CaddyHealthChecks configures upstream health checking.
type CaddyHealthChecks struct {
	Active *CaddyActiveHealth `json:"active,omitempty"`
}

// CaddyActiveHealth is the active (probing) health check block.
type CaddyActiveHealth struct {
	Path string `json:"path,omitempty"`
}

// CaddyTLS configures the TLS app. Present iff at least one public domain
// appears among routed hosts.
type CaddyTLS struct {
	Automation *CaddyTLSAutomation `json:"automation,omitempty"`
}

// CaddyTLSAutomation holds certificate automation policies.
type CaddyTLSAutomation struct {
	Policies []CaddyTLSPolicy `json:"policies,omitempty"`
}

// CaddyTLSPolicy binds a subject list to certificate issuers.
type CaddyTLSPolicy struct {
	Subjects []string      `json:"subjects,omitempty"`
	Issuers  []CaddyIssuer `json:"issuers,omitempty"`
}

// CaddyIssuer configures one certificate issuer module.
type CaddyIssuer struct {
	Module string `json:"module,omitempty"`
	Email  string `json:"email,omitempty"`
	CA     string `json:"ca,omitempty"`
}

// ServerRoutes returns the route table of the named server, or nil when the
// document has no such server.
func (c *CaddyConfig) ServerRoutes(server string) []CaddyRoute {
	if c == nil || c.Apps.HTTP.Servers == nil {
		return nil
	}
	srv, ok := c.Apps.HTTP.Servers[server]
	if !ok {
		return nil
	}
	return srv.Routes
}

// Upstream returns the dial target of the first reverse_proxy handler bound
// directly to the route, or "" when the route forwards nothing itself.
func (r CaddyRoute) Upstream() string {
	for _, h := range r.Handle {
		if h.Handler == "reverse_proxy" && len(h.Upstreams) > 0 {
			return h.Upstreams[0].Dial
		}
	}
	return ""
}

// Subroutes returns the nested routes of the route's subroute handler, if any.
func (r CaddyRoute) Subroutes() []CaddyRoute {
	for _, h := range r.Handle {
		if h.Handler == "subroute" {
			return h.Routes
		}
	}
	return nil
}

// MatchedHosts returns the hosts of the route's first matcher set.
func (r CaddyRoute) MatchedHosts() []string {
	if len(r.Match) == 0 {
		return nil
	}
	return r.Match[0].Host
}

// MatchedPath returns the first path pattern of the route's first matcher
// set, or "" when the route has no path condition.
func (r CaddyRoute) MatchedPath() string {
	if len(r.Match) == 0 || len(r.Match[0].Path) == 0 {
		return ""
	}
	return r.Match[0].Path[0]
}
