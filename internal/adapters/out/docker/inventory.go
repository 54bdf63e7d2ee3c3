// Package docker implements the workload inventory and proxy log source
// adapters using the Docker Engine API.
package docker

import (
	"context"
	"sort"
	"strings"

	"github.com/bnema/zerowrap"
	cerrdefs "github.com/containerd/errdefs"
	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/api/types/filters"
	"github.com/docker/docker/client"

	"github.com/bnema/wharf/internal/domain"
)

// Inventory implements the WorkloadInventory interface over the Docker
// Engine API.
type Inventory struct {
	client *client.Client
}

// NewInventory creates a new Docker-backed inventory.
func NewInventory() (*Inventory, error) {
	cli, err := client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
	if err != nil {
		return nil, err
	}
	return &Inventory{client: cli}, nil
}

// NewInventoryWithClient creates an inventory with a custom client (for testing).
func NewInventoryWithClient(cli *client.Client) *Inventory {
	return &Inventory{client: cli}
}

// Ping verifies the Docker daemon is reachable.
func (i *Inventory) Ping(ctx context.Context) error {
	_, err := i.client.Ping(ctx)
	return err
}

// Client returns the underlying Docker client so other adapters can share
// the connection.
func (i *Inventory) Client() *client.Client {
	return i.client
}

// ListWorkloads returns running containers carrying the routing label,
// sorted by name so snapshots are stable.
func (i *Inventory) ListWorkloads(ctx context.Context) ([]domain.Workload, error) {
	ctx = zerowrap.CtxWithFields(ctx, map[string]any{
		zerowrap.FieldLayer:   "adapter",
		zerowrap.FieldAdapter: "docker",
		zerowrap.FieldAction:  "ListWorkloads",
	})
	log := zerowrap.FromCtx(ctx)

	f := filters.NewArgs(
		filters.Arg("label", domain.LabelDomain),
		filters.Arg("status", "running"),
	)

	containers, err := i.client.ContainerList(ctx, container.ListOptions{Filters: f})
	if err != nil {
		return nil, log.WrapErr(err, "failed to list containers")
	}

	workloads := make([]domain.Workload, 0, len(containers))
	for _, c := range containers {
		workloads = append(workloads, domain.Workload{
			ID:     c.ID,
			Name:   containerName(c.Names),
			Labels: c.Labels,
		})
	}

	sort.Slice(workloads, func(a, b int) bool {
		if workloads[a].Name != workloads[b].Name {
			return workloads[a].Name < workloads[b].Name
		}
		return workloads[a].ID < workloads[b].ID
	})

	log.Debug().Int(zerowrap.FieldCount, len(workloads)).Msg("workloads listed")
	return workloads, nil
}

// GetWorkloadLabels fetches the full label set of one container by ID.
func (i *Inventory) GetWorkloadLabels(ctx context.Context, id string) (map[string]string, error) {
	ctx = zerowrap.CtxWithFields(ctx, map[string]any{
		zerowrap.FieldLayer:    "adapter",
		zerowrap.FieldAdapter:  "docker",
		zerowrap.FieldAction:   "GetWorkloadLabels",
		zerowrap.FieldEntityID: id,
	})
	log := zerowrap.FromCtx(ctx)

	resp, err := i.client.ContainerInspect(ctx, id)
	if err != nil {
		if cerrdefs.IsNotFound(err) {
			return nil, domain.ErrWorkloadNotFound
		}
		return nil, log.WrapErr(err, "failed to inspect container")
	}

	if resp.Config == nil {
		return map[string]string{}, nil
	}
	return resp.Config.Labels, nil
}

// containerName strips the runtime's leading slash from the first name.
func containerName(names []string) string {
	if len(names) == 0 {
		return ""
	}
	return strings.TrimPrefix(names[0], "/")
}
