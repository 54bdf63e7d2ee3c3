package reconcile

import (
	"context"
	"errors"
	"fmt"

	"github.com/bnema/zerowrap"

	"github.com/bnema/wharf/internal/domain"
	"github.com/bnema/wharf/internal/usecase/routing"
)

// ApplyOutcome classifies the result of an apply attempt.
type ApplyOutcome int

const (
	// OutcomeApplied means a tier installed the configuration.
	OutcomeApplied ApplyOutcome = iota

	// OutcomeFallbackRouting means the control plane was unreachable on
	// every tier. Not a success and not a failure: the deployment may
	// already route by other means, so the loop degrades instead of erroring.
	OutcomeFallbackRouting

	// OutcomeFailed means the control plane was reachable but no tier
	// succeeded.
	OutcomeFailed
)

func (o ApplyOutcome) String() string {
	switch o {
	case OutcomeApplied:
		return "applied"
	case OutcomeFallbackRouting:
		return "fallback-routing"
	case OutcomeFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// ApplyResult is the uniform result of the tiered apply strategy.
type ApplyResult struct {
	Outcome ApplyOutcome
	Tier    int // 1-based tier that produced the outcome; 0 when none ran
	// RouteErrors holds per-route failures from the incremental tier.
	// Partial success is accepted; these are informational.
	RouteErrors []error
}

// applyTier is one rung of the fallback ladder.
type applyTier struct {
	name string
	run  func(ctx context.Context, doc *domain.CaddyConfig) error
}

// Apply attempts to install a configuration document via a tiered fallback:
// whole-document replace, then per-route incremental patch, then per-route
// forced patch. Each tier runs only if the previous one failed; the first
// success short-circuits.
func (s *Service) Apply(ctx context.Context, doc *domain.CaddyConfig, workloads []domain.Workload) ApplyResult {
	ctx = zerowrap.CtxWithFields(ctx, map[string]any{
		zerowrap.FieldLayer:   "usecase",
		zerowrap.FieldUseCase: "Apply",
	})
	log := zerowrap.FromCtx(ctx)

	result := ApplyResult{}
	tiers := []applyTier{
		{name: "full-load", run: s.applyFull},
		{name: "route-patch", run: func(ctx context.Context, doc *domain.CaddyConfig) error {
			return s.applyRoutes(ctx, doc, &result)
		}},
		{name: "forced-patch", run: func(ctx context.Context, doc *domain.CaddyConfig) error {
			return s.applyForced(ctx, workloads)
		}},
	}

	unreachable := true
	for i, tier := range tiers {
		err := tier.run(ctx, doc)
		if err == nil {
			result.Outcome = OutcomeApplied
			result.Tier = i + 1
			log.Info().Str("tier", tier.name).Msg("configuration applied")
			return result
		}

		if !errors.Is(err, domain.ErrControlPlaneUnreachable) {
			unreachable = false
		}
		log.Warn().Err(err).Str("tier", tier.name).Msg("apply tier failed, falling back")
		result.Tier = i + 1
	}

	if unreachable {
		log.Warn().Msg("control plane unreachable on every tier, external fallback routing in effect")
		result.Outcome = OutcomeFallbackRouting
		return result
	}

	log.Error().Msg("all apply tiers failed")
	result.Outcome = OutcomeFailed
	return result
}

// applyFull sends the whole document to the control plane's load endpoint.
func (s *Service) applyFull(ctx context.Context, doc *domain.CaddyConfig) error {
	return s.control.LoadConfig(ctx, doc)
}

// applyRoutes clears the existing route collection and inserts each route
// individually in order, skipping routes that carry no upstream (the
// wildcard placeholder). Per-route failures are collected, not fatal.
func (s *Service) applyRoutes(ctx context.Context, doc *domain.CaddyConfig, result *ApplyResult) error {
	log := zerowrap.FromCtx(ctx)

	if err := s.control.DeleteRoutes(ctx); err != nil {
		return fmt.Errorf("clearing route collection: %w", err)
	}

	routes := doc.ServerRoutes(s.serverName)
	applied := 0
	var unreachableErr error

	for i, route := range routes {
		if !routeForwards(route) {
			continue
		}
		if err := s.control.AppendRoute(ctx, route); err != nil {
			if errors.Is(err, domain.ErrControlPlaneUnreachable) {
				unreachableErr = err
			}
			result.RouteErrors = append(result.RouteErrors, fmt.Errorf("route %d: %w", i, err))
			log.Warn().Err(err).Int("route_index", i).Msg("failed to insert route")
			continue
		}
		applied++
	}

	if applied == 0 {
		if unreachableErr != nil {
			return unreachableErr
		}
		return fmt.Errorf("no route could be inserted: %w", domain.ErrControlPlaneRejected)
	}

	log.Info().
		Int("applied", applied).
		Int("failed", len(result.RouteErrors)).
		Msg("route collection rebuilt incrementally")
	return nil
}

// applyForced fetches the live document and, for each host in the
// label-derived expectation, overwrites only the matching route's upstream
// target in place and patches just that route index.
func (s *Service) applyForced(ctx context.Context, workloads []domain.Workload) error {
	log := zerowrap.FromCtx(ctx)

	live, err := s.control.GetConfig(ctx)
	if err != nil {
		return fmt.Errorf("fetching live document: %w", err)
	}

	expected := hostTargets(workloads)
	routes := live.ServerRoutes(s.serverName)
	patched := 0
	var unreachableErr error

	for host, upstream := range expected {
		idx, route, ok := findHostRoute(routes, host)
		if !ok {
			log.Warn().Str("host", host).Msg("no live route for host, cannot force-patch")
			continue
		}
		if !rewriteUpstream(&route, upstream) {
			log.Warn().Str("host", host).Msg("live route forwards nothing, cannot force-patch")
			continue
		}
		if err := s.control.PatchRoute(ctx, idx, route); err != nil {
			if errors.Is(err, domain.ErrControlPlaneUnreachable) {
				unreachableErr = err
			}
			log.Warn().Err(err).Str("host", host).Int("route_index", idx).Msg("forced patch failed")
			continue
		}
		patched++
	}

	if patched == 0 {
		if unreachableErr != nil {
			return unreachableErr
		}
		return fmt.Errorf("no route could be force-patched: %w", domain.ErrRouteNotFound)
	}

	log.Info().Int("patched", patched).Msg("routes force-patched in place")
	return nil
}

// routeForwards reports whether the route carries an upstream, directly or
// through a subroute.
func routeForwards(route domain.CaddyRoute) bool {
	if route.Upstream() != "" {
		return true
	}
	for _, sr := range route.Subroutes() {
		if sr.Upstream() != "" {
			return true
		}
	}
	return false
}

// findHostRoute locates the first route whose matcher covers host.
func findHostRoute(routes []domain.CaddyRoute, host string) (int, domain.CaddyRoute, bool) {
	for i, route := range routes {
		for _, h := range route.MatchedHosts() {
			if h == host {
				return i, route, true
			}
		}
	}
	return 0, domain.CaddyRoute{}, false
}

// rewriteUpstream replaces the upstream dial target of the route's
// forwarding handlers in place, descending into subroutes. Only the
// catch-all slot of a subroute (no path condition) is rewritten, so
// path-specific tenants keep their own targets.
func rewriteUpstream(route *domain.CaddyRoute, upstream string) bool {
	rewritten := false
	for i := range route.Handle {
		h := &route.Handle[i]
		switch h.Handler {
		case "reverse_proxy":
			if len(h.Upstreams) > 0 {
				h.Upstreams[0].Dial = upstream
				rewritten = true
			}
		case "subroute":
			for j := range h.Routes {
				sr := &h.Routes[j]
				if sr.MatchedPath() != "" || len(sr.Match) > 0 {
					continue
				}
				if rewriteUpstream(sr, upstream) {
					rewritten = true
				}
			}
		}
	}
	return rewritten
}

// hostTargets derives the host → upstream expectation from labels. For a
// multi-tenant host the catch-all record wins, matching what the host's
// terminal rule forwards to.
func hostTargets(workloads []domain.Workload) map[string]string {
	targets := make(map[string]string)
	for pair, upstream := range routing.ExpectedTargets(workloads) {
		if pair.PathKey != "" {
			continue
		}
		targets[pair.Host] = upstream
	}
	return targets
}
