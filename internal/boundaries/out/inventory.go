// Package out defines output ports (interfaces) for infrastructure.
// These interfaces define the contract between use cases and driven adapters
// (Docker, the proxy admin API, etc.).
package out

import (
	"context"

	"github.com/bnema/wharf/internal/domain"
)

// WorkloadInventory lists running workloads carrying the routing label.
type WorkloadInventory interface {
	// ListWorkloads returns a snapshot of running workloads that carry the
	// routing label. The snapshot is immutable; callers never mutate it.
	ListWorkloads(ctx context.Context) ([]domain.Workload, error)

	// GetWorkloadLabels fetches the full label set of one workload by ID.
	// Returns domain.ErrWorkloadNotFound when the workload is gone.
	GetWorkloadLabels(ctx context.Context, id string) (map[string]string, error)
}
