package routing

import (
	"context"
	"fmt"
	"net/http"

	"github.com/bnema/zerowrap"

	"github.com/bnema/wharf/internal/domain"
)

// DefaultServerName is the HTTP server block the compiler emits and the
// control plane patches.
const DefaultServerName = "srv0"

const (
	httpListen  = ":80"
	httpsListen = ":443"
)

// placeholderBody is returned by the wildcard catch-all route.
const placeholderBody = "wharf: no route configured for this host\n"

// CompileOptions holds the externally supplied inputs of the compiler.
type CompileOptions struct {
	// ServerName names the emitted server block. Defaults to DefaultServerName.
	ServerName string

	// ACMEEmail is the certificate-authority contact email. When empty and a
	// public domain is routed, a constructed address is used instead.
	ACMEEmail string
}

// Compile renders a route table into the proxy's configuration document.
// The plain HTTP listener is always present; the TLS listener and the TLS
// automation policy are included iff at least one routed host is a public
// domain, with the policy's subject list equal to exactly those hosts.
func (s *Service) Compile(ctx context.Context, table domain.RouteTable, opts CompileOptions) *domain.CaddyConfig {
	ctx = zerowrap.CtxWithFields(ctx, map[string]any{
		zerowrap.FieldLayer:   "usecase",
		zerowrap.FieldUseCase: "Compile",
	})
	log := zerowrap.FromCtx(ctx)

	serverName := opts.ServerName
	if serverName == "" {
		serverName = DefaultServerName
	}

	var routes []domain.CaddyRoute
	for _, host := range table.Hosts() {
		routes = append(routes, compileHost(host, table.HostRules(host)))
	}

	// Wildcard catch-all: no matcher, static placeholder, always last.
	routes = append(routes, domain.CaddyRoute{
		Handle: []domain.CaddyHandler{{
			Handler:    "static_response",
			StatusCode: http.StatusNotFound,
			Body:       placeholderBody,
		}},
		Terminal: true,
	})

	listen := []string{httpListen}
	public := table.PublicHosts()

	var tlsApp *domain.CaddyTLS
	if len(public) > 0 {
		listen = append(listen, httpsListen)

		email := opts.ACMEEmail
		if email == "" {
			email = fmt.Sprintf("admin@%s", public[0])
			log.Warn().
				Str("email", email).
				Msg("no ACME contact email configured, using constructed address")
		}

		tlsApp = &domain.CaddyTLS{
			Automation: &domain.CaddyTLSAutomation{
				Policies: []domain.CaddyTLSPolicy{{
					Subjects: public,
					Issuers:  []domain.CaddyIssuer{{Module: "acme", Email: email}},
				}},
			},
		}
	}

	log.Debug().
		Str("server", serverName).
		Int(zerowrap.FieldCount, len(routes)).
		Int("public_hosts", len(public)).
		Msg("configuration document compiled")

	return &domain.CaddyConfig{
		Apps: domain.CaddyApps{
			HTTP: domain.CaddyHTTP{
				Servers: map[string]*domain.CaddyServer{
					serverName: {Listen: listen, Routes: routes},
				},
			},
			TLS: tlsApp,
		},
	}
}

// compileHost renders one host's rule group. A single rule becomes one
// host-matched route. Multiple rules nest inside a subroute handler under
// one host matcher: the proxy evaluates top-level routes independently but
// subroutes strictly in list order, and only the nested form gives per-path
// first-match semantics for a shared host.
func compileHost(host string, rules []domain.RouteRule) domain.CaddyRoute {
	if len(rules) == 1 {
		route := compileRule(rules[0], false)
		route.Match = []domain.CaddyMatch{{Host: []string{host}}}
		route.Terminal = true
		return route
	}

	sub := make([]domain.CaddyRoute, 0, len(rules))
	for _, r := range rules {
		sub = append(sub, compileRule(r, true))
	}

	return domain.CaddyRoute{
		Match: []domain.CaddyMatch{{Host: []string{host}}},
		Handle: []domain.CaddyHandler{{
			Handler: "subroute",
			Routes:  sub,
		}},
		Terminal: true,
	}
}

// compileRule renders one rule into a forwarding route. withPathMatch is set
// for nested subroutes, where the path condition carries the first-match
// semantics; top-level single-tenant routes carry no path condition.
func compileRule(rule domain.RouteRule, withPathMatch bool) domain.CaddyRoute {
	handler := domain.CaddyHandler{
		Handler:   "reverse_proxy",
		Upstreams: []domain.CaddyUpstream{{Dial: rule.Upstream}},
	}
	if rule.HealthPath != "" {
		handler.HealthChecks = &domain.CaddyHealthChecks{
			Active: &domain.CaddyActiveHealth{Path: rule.HealthPath},
		}
	}

	route := domain.CaddyRoute{Handle: []domain.CaddyHandler{handler}}

	if withPathMatch {
		switch {
		case rule.Path != "":
			route.Match = []domain.CaddyMatch{{Path: []string{rule.Path}}}
		case rule.PathExcept != "":
			route.Match = []domain.CaddyMatch{{
				Not: []domain.CaddyMatch{{Path: []string{rule.PathExcept}}},
			}}
		}
	}

	return route
}
