// Package routing implements the desired-state side of reconciliation:
// building an ordered route table from workload snapshots, compiling it into
// the proxy's configuration document, and validating the result.
package routing

import (
	"context"
	"sort"

	"github.com/bnema/zerowrap"

	"github.com/bnema/wharf/internal/domain"
)

// Service builds, compiles and validates route tables.
type Service struct{}

// NewService creates a new routing service.
func NewService() *Service {
	return &Service{}
}

// BuildTable converts a set of workload records into an ordered, declarative
// route table. Workloads without the routing label are skipped. The output
// is deterministic: for a fixed input multiset the table is rule-for-rule
// identical on repeated invocation regardless of input order.
func (s *Service) BuildTable(ctx context.Context, workloads []domain.Workload) domain.RouteTable {
	ctx = zerowrap.CtxWithFields(ctx, map[string]any{
		zerowrap.FieldLayer:   "usecase",
		zerowrap.FieldUseCase: "BuildTable",
	})
	log := zerowrap.FromCtx(ctx)

	groups := make(map[string][]domain.RoutingLabels)
	for _, w := range workloads {
		rl, ok := domain.RoutingLabelsOf(w)
		if !ok {
			log.Debug().Str("workload", w.Name).Msg("no routing label, skipping")
			continue
		}
		groups[rl.Domain] = append(groups[rl.Domain], rl)
	}

	hosts := make([]string, 0, len(groups))
	for host := range groups {
		hosts = append(hosts, host)
	}
	sort.Strings(hosts)

	var rules []domain.RouteRule
	for _, host := range hosts {
		rules = append(rules, hostRules(host, groups[host])...)
	}

	// Global wildcard catch-all, always last.
	rules = append(rules, domain.RouteRule{})

	log.Debug().
		Int(zerowrap.FieldCount, len(rules)).
		Int("hosts", len(hosts)).
		Msg("route table built")

	return domain.RouteTable{Rules: rules}
}

// hostRules emits the ordered rule group for one host.
func hostRules(host string, records []domain.RoutingLabels) []domain.RouteRule {
	if len(records) == 1 {
		// Single tenant: one catch-all rule, no path constraint.
		r := records[0]
		return []domain.RouteRule{{
			Host:       host,
			Upstream:   r.Upstream,
			HealthPath: r.HealthPath,
		}}
	}

	sortRecords(records)

	rules := make([]domain.RouteRule, 0, len(records))
	for _, r := range records {
		rules = append(rules, domain.RouteRule{
			Host:       host,
			Path:       r.Path,
			PathExcept: r.PathExcept,
			Upstream:   r.Upstream,
			HealthPath: r.HealthPath,
		})
	}
	return rules
}

// sortRecords orders a host's records for first-match evaluation: rules with
// a non-root path prefix first (longest path first), then path-exception
// rules, then the catch-all. Ties break on path, upstream and health path so
// the order never depends on input permutation.
func sortRecords(records []domain.RoutingLabels) {
	sort.SliceStable(records, func(i, j int) bool {
		a, b := records[i], records[j]
		ca, cb := recordClass(a), recordClass(b)
		if ca != cb {
			return ca < cb
		}
		if len(a.Path) != len(b.Path) {
			return len(a.Path) > len(b.Path)
		}
		if a.Path != b.Path {
			return a.Path < b.Path
		}
		if a.PathExcept != b.PathExcept {
			return a.PathExcept < b.PathExcept
		}
		if a.Upstream != b.Upstream {
			return a.Upstream < b.Upstream
		}
		return a.HealthPath < b.HealthPath
	})
}

func recordClass(r domain.RoutingLabels) int {
	switch {
	case r.Path != "":
		return 0
	case r.PathExcept != "":
		return 1
	default:
		return 2
	}
}
