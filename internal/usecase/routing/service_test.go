package routing

import (
	"context"
	"math/rand"
	"testing"

	"github.com/bnema/zerowrap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/wharf/internal/domain"
)

func testContext() context.Context {
	return zerowrap.WithCtx(context.Background(), zerowrap.Default())
}

func workload(id, name string, labels map[string]string) domain.Workload {
	return domain.Workload{ID: id, Name: name, Labels: labels}
}

func TestBuildTable_SkipsUnlabeledWorkloads(t *testing.T) {
	svc := NewService()
	ctx := testContext()

	table := svc.BuildTable(ctx, []domain.Workload{
		workload("w1", "db", map[string]string{"com.example.team": "infra"}),
		workload("w2", "web", map[string]string{domain.LabelDomain: "web.example.com"}),
	})

	assert.Equal(t, []string{"web.example.com"}, table.Hosts())
}

func TestBuildTable_EmptyInventoryYieldsWildcardOnly(t *testing.T) {
	svc := NewService()
	ctx := testContext()

	table := svc.BuildTable(ctx, nil)

	require.Len(t, table.Rules, 1)
	assert.True(t, table.Rules[0].IsWildcard())
}

func TestBuildTable_WildcardAlwaysLast(t *testing.T) {
	svc := NewService()
	ctx := testContext()

	table := svc.BuildTable(ctx, []domain.Workload{
		workload("w1", "a", map[string]string{domain.LabelDomain: "a.example.com"}),
		workload("w2", "b", map[string]string{domain.LabelDomain: "b.example.com"}),
	})

	require.NotEmpty(t, table.Rules)
	last := table.Rules[len(table.Rules)-1]
	assert.True(t, last.IsWildcard())
	for _, r := range table.Rules[:len(table.Rules)-1] {
		assert.False(t, r.IsWildcard())
	}
}

func TestBuildTable_SingleTenantHostHasNoPathConstraint(t *testing.T) {
	svc := NewService()
	ctx := testContext()

	// A lone path-scoped workload still owns its whole host.
	table := svc.BuildTable(ctx, []domain.Workload{
		workload("w1", "api", map[string]string{
			domain.LabelDomain: "api.example.com",
			domain.LabelPath:   "/api/*",
		}),
	})

	rules := table.HostRules("api.example.com")
	require.Len(t, rules, 1)
	assert.Empty(t, rules[0].Path)
	assert.Equal(t, "api:8000", rules[0].Upstream)
}

func TestBuildTable_PathOrderingWithinHost(t *testing.T) {
	svc := NewService()
	ctx := testContext()

	table := svc.BuildTable(ctx, []domain.Workload{
		workload("w1", "web", map[string]string{
			domain.LabelDomain: "shop.example.com",
		}),
		workload("w2", "api", map[string]string{
			domain.LabelDomain: "shop.example.com",
			domain.LabelPath:   "/api/*",
		}),
		workload("w3", "api-v2", map[string]string{
			domain.LabelDomain: "shop.example.com",
			domain.LabelPath:   "/api/v2/*",
		}),
		workload("w4", "legacy", map[string]string{
			domain.LabelDomain:     "shop.example.com",
			domain.LabelPathExcept: "/static/*",
		}),
	})

	rules := table.HostRules("shop.example.com")
	require.Len(t, rules, 4)

	// Longest specific path first, then exceptions, then catch-all.
	assert.Equal(t, "/api/v2/*", rules[0].Path)
	assert.Equal(t, "/api/*", rules[1].Path)
	assert.Equal(t, "/static/*", rules[2].PathExcept)
	assert.Empty(t, rules[3].Path)
	assert.Empty(t, rules[3].PathExcept)
	assert.Equal(t, "web:8000", rules[3].Upstream)
}

func TestBuildTable_RootPathDoesNotShadowExceptionRule(t *testing.T) {
	svc := NewService()
	ctx := testContext()

	table := svc.BuildTable(ctx, []domain.Workload{
		workload("w1", "web", map[string]string{
			domain.LabelDomain: "shop.example.com",
			domain.LabelPath:   "/",
		}),
		workload("w2", "cdn", map[string]string{
			domain.LabelDomain:     "shop.example.com",
			domain.LabelPathExcept: "/static/*",
		}),
	})

	rules := table.HostRules("shop.example.com")
	require.Len(t, rules, 2)

	// "/" constrains nothing, so it ranks as the host catch-all behind the
	// exception rule.
	assert.Equal(t, "/static/*", rules[0].PathExcept)
	assert.Empty(t, rules[1].Path)
	assert.Equal(t, "web:8000", rules[1].Upstream)
}

func TestBuildTable_DeterministicAcrossPermutations(t *testing.T) {
	svc := NewService()
	ctx := testContext()

	workloads := []domain.Workload{
		workload("w1", "web", map[string]string{domain.LabelDomain: "shop.example.com"}),
		workload("w2", "api", map[string]string{domain.LabelDomain: "shop.example.com", domain.LabelPath: "/api/*"}),
		workload("w3", "blog", map[string]string{domain.LabelDomain: "blog.example.com"}),
		workload("w4", "docs", map[string]string{domain.LabelDomain: "docs.example.com", domain.LabelUpstream: "docs:3000"}),
	}

	reference := svc.BuildTable(ctx, workloads)

	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 20; i++ {
		shuffled := make([]domain.Workload, len(workloads))
		copy(shuffled, workloads)
		rng.Shuffle(len(shuffled), func(a, b int) {
			shuffled[a], shuffled[b] = shuffled[b], shuffled[a]
		})

		table := svc.BuildTable(ctx, shuffled)
		assert.Equal(t, reference.Rules, table.Rules)
	}
}

func TestBuildTable_TwoServicesScenario(t *testing.T) {
	svc := NewService()
	ctx := testContext()

	table := svc.BuildTable(ctx, []domain.Workload{
		workload("w2", "svc-b", map[string]string{
			domain.LabelDomain:   "b.example.com",
			domain.LabelUpstream: "svc-b:9000",
		}),
		workload("w1", "svc-a", map[string]string{
			domain.LabelDomain: "a.example.com",
		}),
	})

	require.Len(t, table.Rules, 3)
	assert.Equal(t, "a.example.com", table.Rules[0].Host)
	assert.Equal(t, "svc-a:8000", table.Rules[0].Upstream)
	assert.Equal(t, "b.example.com", table.Rules[1].Host)
	assert.Equal(t, "svc-b:9000", table.Rules[1].Upstream)
	assert.True(t, table.Rules[2].IsWildcard())
}
