package routing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/wharf/internal/domain"
)

func TestValidate_CompiledDocumentPasses(t *testing.T) {
	svc := NewService()
	ctx := testContext()

	workloads := []domain.Workload{
		workload("w1", "web", map[string]string{domain.LabelDomain: "shop.example.com"}),
		workload("w2", "api", map[string]string{domain.LabelDomain: "shop.example.com", domain.LabelPath: "/api/*"}),
		workload("w3", "blog", map[string]string{domain.LabelDomain: "blog.example.com", domain.LabelUpstream: "blog:3000"}),
	}

	table := svc.BuildTable(ctx, workloads)
	doc := svc.Compile(ctx, table, CompileOptions{})

	assert.True(t, svc.Validate(ctx, doc, workloads))
}

func TestValidate_WrongUpstreamFails(t *testing.T) {
	svc := NewService()
	ctx := testContext()

	workloads := []domain.Workload{
		workload("w1", "web", map[string]string{domain.LabelDomain: "shop.example.com"}),
	}

	table := svc.BuildTable(ctx, workloads)
	doc := svc.Compile(ctx, table, CompileOptions{})

	// Corrupt the forwarded target after compilation.
	routes := doc.Apps.HTTP.Servers[DefaultServerName].Routes
	routes[0].Handle[0].Upstreams[0].Dial = "stale:9999"

	assert.False(t, svc.Validate(ctx, doc, workloads))
}

func TestValidate_ExtraUntrackedRoutesTolerated(t *testing.T) {
	svc := NewService()
	ctx := testContext()

	workloads := []domain.Workload{
		workload("w1", "web", map[string]string{domain.LabelDomain: "shop.example.com"}),
	}

	table := svc.BuildTable(ctx, workloads)
	doc := svc.Compile(ctx, table, CompileOptions{})

	// A manually added route for a host no workload declares.
	srv := doc.Apps.HTTP.Servers[DefaultServerName]
	srv.Routes = append([]domain.CaddyRoute{{
		Match: []domain.CaddyMatch{{Host: []string{"manual.example.com"}}},
		Handle: []domain.CaddyHandler{{
			Handler:   "reverse_proxy",
			Upstreams: []domain.CaddyUpstream{{Dial: "manual:8080"}},
		}},
	}}, srv.Routes...)

	assert.True(t, svc.Validate(ctx, doc, workloads))
}

func TestValidate_MissingExpectedRouteIsOnlyWarning(t *testing.T) {
	svc := NewService()
	ctx := testContext()

	workloads := []domain.Workload{
		workload("w1", "web", map[string]string{domain.LabelDomain: "shop.example.com"}),
		workload("w2", "api", map[string]string{domain.LabelDomain: "api.example.com"}),
	}

	// Document covers only one of the two expected hosts.
	doc := &domain.CaddyConfig{
		Apps: domain.CaddyApps{
			HTTP: domain.CaddyHTTP{
				Servers: map[string]*domain.CaddyServer{
					DefaultServerName: {
						Listen: []string{":80"},
						Routes: []domain.CaddyRoute{{
							Match: []domain.CaddyMatch{{Host: []string{"shop.example.com"}}},
							Handle: []domain.CaddyHandler{{
								Handler:   "reverse_proxy",
								Upstreams: []domain.CaddyUpstream{{Dial: "web:8000"}},
							}},
						}},
					},
				},
			},
		},
	}

	assert.True(t, svc.Validate(ctx, doc, workloads))
}

func TestExpectedTargets_PathKeyConvention(t *testing.T) {
	workloads := []domain.Workload{
		workload("w1", "web", map[string]string{domain.LabelDomain: "shop.example.com"}),
		workload("w2", "api", map[string]string{domain.LabelDomain: "shop.example.com", domain.LabelPath: "/api/*"}),
		workload("w3", "app", map[string]string{domain.LabelDomain: "shop.example.com", domain.LabelPathExcept: "/static/*"}),
	}

	expected := ExpectedTargets(workloads)
	require.Len(t, expected, 3)
	assert.Equal(t, "web:8000", expected[RoutePair{Host: "shop.example.com"}])
	assert.Equal(t, "api:8000", expected[RoutePair{Host: "shop.example.com", PathKey: "/api/*"}])
	assert.Equal(t, "app:8000", expected[RoutePair{Host: "shop.example.com", PathKey: "!/static/*"}])
}

func TestForwardedTargets_DescendsSubroutes(t *testing.T) {
	svc := NewService()
	ctx := testContext()

	workloads := []domain.Workload{
		workload("w1", "web", map[string]string{domain.LabelDomain: "shop.example.com"}),
		workload("w2", "api", map[string]string{domain.LabelDomain: "shop.example.com", domain.LabelPath: "/api/*"}),
	}

	table := svc.BuildTable(ctx, workloads)
	doc := svc.Compile(ctx, table, CompileOptions{})

	forwarded := ForwardedTargets(doc)
	require.Len(t, forwarded, 2)

	targets := make(map[RoutePair]string, len(forwarded))
	for _, fw := range forwarded {
		targets[fw.Pair] = fw.Upstream
	}
	assert.Equal(t, "api:8000", targets[RoutePair{Host: "shop.example.com", PathKey: "/api/*"}])
	assert.Equal(t, "web:8000", targets[RoutePair{Host: "shop.example.com"}])
}

func TestForwardedTargets_NilDocument(t *testing.T) {
	assert.Nil(t, ForwardedTargets(nil))
}
