package reconcile

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/bnema/wharf/internal/boundaries/out/mocks"
	"github.com/bnema/wharf/internal/domain"
	"github.com/bnema/wharf/internal/usecase/routing"
)

// liveDoc builds a single-server document forwarding host → upstream.
func liveDoc(bindings map[string]string) *domain.CaddyConfig {
	var routes []domain.CaddyRoute
	for host, upstream := range bindings {
		routes = append(routes, domain.CaddyRoute{
			Match: []domain.CaddyMatch{{Host: []string{host}}},
			Handle: []domain.CaddyHandler{{
				Handler:   "reverse_proxy",
				Upstreams: []domain.CaddyUpstream{{Dial: upstream}},
			}},
			Terminal: true,
		})
	}
	return &domain.CaddyConfig{
		Apps: domain.CaddyApps{
			HTTP: domain.CaddyHTTP{
				Servers: map[string]*domain.CaddyServer{
					routing.DefaultServerName: {Listen: []string{":80"}, Routes: routes},
				},
			},
		},
	}
}

func TestDetectDrift_NoDrift(t *testing.T) {
	ctx := testContext()
	svc := NewService(nil, nil, routing.NewService(), nil)

	workloads := []domain.Workload{
		workload("w1", "web", map[string]string{domain.LabelDomain: "web.example.com"}),
	}
	live := liveDoc(map[string]string{"web.example.com": "web:8000"})

	assert.Empty(t, svc.DetectDrift(ctx, live, workloads))
}

func TestDetectDrift_StaleUpstream(t *testing.T) {
	ctx := testContext()
	svc := NewService(nil, nil, routing.NewService(), nil)

	workloads := []domain.Workload{
		workload("w1", "web", map[string]string{
			domain.LabelDomain:   "web.example.com",
			domain.LabelUpstream: "web-v2:8000",
		}),
	}
	live := liveDoc(map[string]string{"web.example.com": "web-v1:8000"})

	issues := svc.DetectDrift(ctx, live, workloads)
	require.Len(t, issues, 1)
	assert.Equal(t, "web.example.com", issues[0].Host)
	assert.Equal(t, "web-v1:8000", issues[0].Actual)
	assert.Equal(t, "web-v2:8000", issues[0].Expected)
}

func TestDetectDrift_IgnoresUntrackedHosts(t *testing.T) {
	ctx := testContext()
	svc := NewService(nil, nil, routing.NewService(), nil)

	workloads := []domain.Workload{
		workload("w1", "web", map[string]string{domain.LabelDomain: "web.example.com"}),
	}
	// The manual host has no workload expectation and must not be flagged.
	live := liveDoc(map[string]string{
		"web.example.com":    "web:8000",
		"manual.example.com": "manual:8080",
	})

	assert.Empty(t, svc.DetectDrift(ctx, live, workloads))
}

func TestRecover_RebuildAndApply(t *testing.T) {
	control := mocks.NewMockProxyControlPlane(t)
	ctx := testContext()

	workloads := []domain.Workload{
		workload("w1", "web", map[string]string{domain.LabelDomain: "web.example.com"}),
	}
	stale := liveDoc(map[string]string{"web.example.com": "stale:9999"})

	var applied *domain.CaddyConfig
	control.EXPECT().LoadConfig(mock.Anything, mock.Anything).
		Run(func(ctx context.Context, cfg *domain.CaddyConfig) {
			applied = cfg
		}).
		Return(nil)
	// Verification re-fetch returns the document just applied.
	control.EXPECT().GetConfig(mock.Anything).
		RunAndReturn(func(ctx context.Context) (*domain.CaddyConfig, error) {
			return applied, nil
		})

	svc := NewService(nil, control, routing.NewService(), nil)

	issues := svc.DetectDrift(ctx, stale, workloads)
	require.Len(t, issues, 1)

	remaining := svc.recover(ctx, workloads, issues)
	assert.Empty(t, remaining)
	require.NotNil(t, applied)
	assert.True(t, routing.NewService().Validate(ctx, applied, workloads))
}

func TestRecover_ForcedPatchWhenRebuildDoesNotStick(t *testing.T) {
	inventory := mocks.NewMockWorkloadInventory(t)
	control := mocks.NewMockProxyControlPlane(t)
	ctx := testContext()

	labels := map[string]string{domain.LabelDomain: "web.example.com"}
	workloads := []domain.Workload{workload("w1", "web", labels)}
	inventory.EXPECT().GetWorkloadLabels(mock.Anything, "w1").Return(labels, nil)
	stale := liveDoc(map[string]string{"web.example.com": "stale:9999"})
	fixed := liveDoc(map[string]string{"web.example.com": "web:8000"})

	// The apply succeeds but the live document keeps showing the stale
	// target, so verification fails and recovery falls through to the
	// forced patch.
	control.EXPECT().LoadConfig(mock.Anything, mock.Anything).Return(nil)

	calls := 0
	control.EXPECT().GetConfig(mock.Anything).
		RunAndReturn(func(ctx context.Context) (*domain.CaddyConfig, error) {
			calls++
			if calls <= 2 {
				// verification fetch, then the forced-patch fetch
				return stale, nil
			}
			return fixed, nil
		})
	control.EXPECT().PatchRoute(mock.Anything, 0, mock.Anything).Return(nil)

	svc := NewService(inventory, control, routing.NewService(), nil)

	issues := svc.DetectDrift(ctx, stale, workloads)
	require.Len(t, issues, 1)

	remaining := svc.recover(ctx, workloads, issues)
	assert.Empty(t, remaining)
}

func TestRefreshLabels_RereadsAndDropsGoneWorkloads(t *testing.T) {
	inventory := mocks.NewMockWorkloadInventory(t)
	ctx := testContext()

	workloads := []domain.Workload{
		workload("w1", "web", map[string]string{domain.LabelDomain: "web.example.com"}),
		workload("w2", "api", map[string]string{domain.LabelDomain: "api.example.com"}),
		workload("w3", "old", map[string]string{domain.LabelDomain: "old.example.com"}),
	}

	// w1 changed its upstream since the snapshot, w2 is unreadable, w3 is
	// gone entirely.
	inventory.EXPECT().GetWorkloadLabels(mock.Anything, "w1").Return(map[string]string{
		domain.LabelDomain:   "web.example.com",
		domain.LabelUpstream: "web-v2:9000",
	}, nil)
	inventory.EXPECT().GetWorkloadLabels(mock.Anything, "w2").
		Return(nil, errors.New("engine busy"))
	inventory.EXPECT().GetWorkloadLabels(mock.Anything, "w3").
		Return(nil, domain.ErrWorkloadNotFound)

	svc := NewService(inventory, mocks.NewMockProxyControlPlane(t), routing.NewService(), nil)
	fresh := svc.refreshLabels(ctx, workloads)

	require.Len(t, fresh, 2)
	assert.Equal(t, "web-v2:9000", fresh[0].Labels[domain.LabelUpstream])
	assert.Equal(t, "api.example.com", fresh[1].Labels[domain.LabelDomain])
}
