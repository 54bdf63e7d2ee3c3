package routing

import (
	"context"
	"sort"

	"github.com/bnema/zerowrap"

	"github.com/bnema/wharf/internal/domain"
)

// RoutePair identifies one (host, path condition) slot of the route table.
// PathKey is the path prefix pattern, "!" + pattern for an exception rule,
// or "" for a catch-all.
type RoutePair struct {
	Host    string
	PathKey string
}

// Forwarded is one (host, path) → upstream binding extracted from a live or
// compiled configuration document.
type Forwarded struct {
	Pair     RoutePair
	Upstream string
}

// Validate cross-checks a compiled document against the workload records it
// was derived from. The expected mapping is reconstructed directly from
// labels, never from the document being checked. A wrong upstream target
// fails the validation on first mismatch; an expected pair absent from the
// document is only a warning, since rejecting a correct configuration costs
// more than missing a verification opportunity.
func (s *Service) Validate(ctx context.Context, doc *domain.CaddyConfig, workloads []domain.Workload) bool {
	ctx = zerowrap.CtxWithFields(ctx, map[string]any{
		zerowrap.FieldLayer:   "usecase",
		zerowrap.FieldUseCase: "Validate",
	})
	log := zerowrap.FromCtx(ctx)

	expected := ExpectedTargets(workloads)
	matched := make(map[RoutePair]bool, len(expected))

	for _, fw := range ForwardedTargets(doc) {
		want, ok := expected[fw.Pair]
		if !ok {
			// Untracked route; ordering or aggregation differences are fine.
			continue
		}
		if want != fw.Upstream {
			log.Error().
				Str("host", fw.Pair.Host).
				Str("path", fw.Pair.PathKey).
				Str("actual", fw.Upstream).
				Str("expected", want).
				Msg("validation failed: wrong upstream target")
			return false
		}
		matched[fw.Pair] = true
	}

	for pair, want := range expected {
		if !matched[pair] {
			log.Warn().
				Str("host", pair.Host).
				Str("path", pair.PathKey).
				Str("expected", want).
				Msg("expected route not present in document")
		}
	}

	return true
}

// ExpectedTargets reconstructs the (host, path) → upstream mapping directly
// from workload labels.
func ExpectedTargets(workloads []domain.Workload) map[RoutePair]string {
	expected := make(map[RoutePair]string)
	for _, w := range workloads {
		rl, ok := domain.RoutingLabelsOf(w)
		if !ok {
			continue
		}
		expected[RoutePair{Host: rl.Domain, PathKey: pathKey(rl.Path, rl.PathExcept)}] = rl.Upstream
	}
	return expected
}

// ForwardedTargets walks every route of the document, including nested
// subroutes, and extracts the forwarded upstream for each matched
// (host, path) pair. Server blocks are visited in name order so the output
// is deterministic.
func ForwardedTargets(doc *domain.CaddyConfig) []Forwarded {
	if doc == nil || doc.Apps.HTTP.Servers == nil {
		return nil
	}

	names := make([]string, 0, len(doc.Apps.HTTP.Servers))
	for name := range doc.Apps.HTTP.Servers {
		names = append(names, name)
	}
	sort.Strings(names)

	var out []Forwarded
	for _, name := range names {
		for _, route := range doc.Apps.HTTP.Servers[name].Routes {
			out = append(out, forwardedOf(route)...)
		}
	}
	return out
}

func forwardedOf(route domain.CaddyRoute) []Forwarded {
	hosts := route.MatchedHosts()
	if len(hosts) == 0 {
		// The wildcard placeholder forwards nothing.
		return nil
	}

	var out []Forwarded
	for _, host := range hosts {
		if sub := route.Subroutes(); sub != nil {
			for _, sr := range sub {
				if up := sr.Upstream(); up != "" {
					out = append(out, Forwarded{
						Pair:     RoutePair{Host: host, PathKey: matchPathKey(sr)},
						Upstream: up,
					})
				}
			}
			continue
		}
		if up := route.Upstream(); up != "" {
			out = append(out, Forwarded{
				Pair:     RoutePair{Host: host, PathKey: matchPathKey(route)},
				Upstream: up,
			})
		}
	}
	return out
}

func matchPathKey(route domain.CaddyRoute) string {
	if p := route.MatchedPath(); p != "" {
		return p
	}
	if len(route.Match) > 0 && len(route.Match[0].Not) > 0 && len(route.Match[0].Not[0].Path) > 0 {
		return "!" + route.Match[0].Not[0].Path[0]
	}
	return ""
}

func pathKey(path, except string) string {
	if path != "" {
		return path
	}
	if except != "" {
		return "!" + except
	}
	return ""
}
