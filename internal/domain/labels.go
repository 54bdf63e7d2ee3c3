package domain

// Label keys recognized on workloads. The wharf.domain label marks a
// workload for routing and supplies the host it is exposed under.
const (
	// LabelDomain is the exposed host for the workload. Required for routing.
	LabelDomain = "wharf.domain"

	// LabelUpstream overrides the upstream dial target (host:port).
	// Defaults to <container-name>:8000 when absent.
	LabelUpstream = "wharf.upstream"

	// LabelPath restricts the route to a path prefix pattern, e.g. "/api/*".
	LabelPath = "wharf.path"

	// LabelPathExcept routes everything except the given path pattern.
	LabelPathExcept = "wharf.path.except"

	// LabelHealth enables an active health check on the given path.
	LabelHealth = "wharf.health"
)
