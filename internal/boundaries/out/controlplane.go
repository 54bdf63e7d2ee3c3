package out

import (
	"context"

	"github.com/bnema/wharf/internal/domain"
)

// ProxyControlPlane is the reverse proxy's administrative interface for
// loading and patching its configuration.
//
// Implementations wrap transport-level failures (connection refused,
// timeout) in domain.ErrControlPlaneUnreachable so callers can distinguish
// an unreachable control plane from a reachable-but-rejecting one.
type ProxyControlPlane interface {
	// GetConfig fetches the full live configuration document.
	GetConfig(ctx context.Context) (*domain.CaddyConfig, error)

	// LoadConfig replaces the full configuration document.
	LoadConfig(ctx context.Context, cfg *domain.CaddyConfig) error

	// AppendRoute appends one route to the server's route table.
	AppendRoute(ctx context.Context, route domain.CaddyRoute) error

	// DeleteRoutes clears the server's route table.
	DeleteRoutes(ctx context.Context) error

	// PatchRoute replaces the route at the given index in place.
	PatchRoute(ctx context.Context, index int, route domain.CaddyRoute) error

	// GetTLSPolicies fetches the live TLS automation policies. An absent
	// TLS app yields an empty slice, not an error.
	GetTLSPolicies(ctx context.Context) ([]domain.CaddyTLSPolicy, error)
}
