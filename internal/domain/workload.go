// Package domain contains the core business entities and rules.
// It has no dependencies on infrastructure or frameworks.
package domain

import (
	"net"
	"strings"
)

// Workload is an immutable snapshot of one running unit reported by the
// workload inventory (typically a Docker container). It is recomputed on
// every poll and never mutated in place.
type Workload struct {
	ID     string
	Name   string
	Labels map[string]string
}

// RoutingLabels is the routing view derived from a workload's labels.
type RoutingLabels struct {
	Domain     string // exposed host, from wharf.domain
	Upstream   string // host:port dial target
	Path       string // optional path prefix pattern, e.g. /api/*
	PathExcept string // optional path exception pattern
	HealthPath string // optional active health check path
}

// defaultUpstreamPort is assumed when a workload declares no upstream.
const defaultUpstreamPort = "8000"

// RoutingLabelsOf extracts the routing view from a workload. ok is false
// when the workload carries no routing label and must be excluded from
// routing entirely.
func RoutingLabelsOf(w Workload) (RoutingLabels, bool) {
	host := strings.TrimSpace(w.Labels[LabelDomain])
	if host == "" {
		return RoutingLabels{}, false
	}

	rl := RoutingLabels{
		Domain:     host,
		Upstream:   strings.TrimSpace(w.Labels[LabelUpstream]),
		Path:       strings.TrimSpace(w.Labels[LabelPath]),
		PathExcept: strings.TrimSpace(w.Labels[LabelPathExcept]),
		HealthPath: strings.TrimSpace(w.Labels[LabelHealth]),
	}

	if rl.Upstream == "" {
		rl.Upstream = net.JoinHostPort(w.Name, defaultUpstreamPort)
	}

	// A declared root path constrains nothing; treat it as the host
	// catch-all so it never shadows exception rules.
	if rl.Path == "/" {
		rl.Path = ""
	}

	return rl, true
}
