package reconcile

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/bnema/zerowrap"

	"github.com/bnema/wharf/internal/domain"
	"github.com/bnema/wharf/internal/usecase/routing"
)

// DetectDrift diffs a live configuration document against the expectation
// freshly derived from workload labels. One issue is reported per drifted
// host; hosts absent from either side are ignored.
func (s *Service) DetectDrift(ctx context.Context, live *domain.CaddyConfig, workloads []domain.Workload) []domain.DriftIssue {
	ctx = zerowrap.CtxWithFields(ctx, map[string]any{
		zerowrap.FieldLayer:   "usecase",
		zerowrap.FieldUseCase: "DetectDrift",
	})
	log := zerowrap.FromCtx(ctx)

	expected := routing.ExpectedTargets(workloads)
	flagged := make(map[string]bool)

	var issues []domain.DriftIssue
	for _, fw := range routing.ForwardedTargets(live) {
		want, ok := expected[fw.Pair]
		if !ok || flagged[fw.Pair.Host] {
			continue
		}
		if want != fw.Upstream {
			flagged[fw.Pair.Host] = true
			issues = append(issues, domain.DriftIssue{
				Host:     fw.Pair.Host,
				Actual:   fw.Upstream,
				Expected: want,
			})
			log.Warn().
				Str("host", fw.Pair.Host).
				Str("actual", fw.Upstream).
				Str("expected", want).
				Msg("configuration drift detected")
		}
	}

	return issues
}

// recover runs the recovery ladder for a set of drift issues: rebuild,
// validate and apply the desired document, then re-verify the live route
// table rule-by-rule; when verification fails, force-patch the drifted
// routes directly. Unresolved issues are returned for reporting; recovery
// never blocks the loop.
func (s *Service) recover(ctx context.Context, workloads []domain.Workload, issues []domain.DriftIssue) []domain.DriftIssue {
	log := zerowrap.FromCtx(ctx)

	log.Info().Int(zerowrap.FieldCount, len(issues)).Msg("starting drift recovery")

	table := s.routing.BuildTable(ctx, workloads)
	doc := s.routing.Compile(ctx, table, s.compileOptions())

	if s.routing.Validate(ctx, doc, workloads) {
		result := s.Apply(ctx, doc, workloads)
		if result.Outcome == OutcomeApplied && s.verifyApplied(ctx, doc) {
			log.Info().Msg("drift recovered by rebuild and apply")
			return nil
		}
	} else {
		log.Warn().Msg("rebuilt document failed validation, skipping apply tier of recovery")
	}

	// Rebuild did not stick; force-patch the drifted routes directly. The
	// cycle's snapshot may be stale by now, so patch from a fresh label
	// read.
	workloads = s.refreshLabels(ctx, workloads)
	if err := s.applyForced(ctx, workloads); err != nil {
		if errors.Is(err, domain.ErrControlPlaneUnreachable) {
			log.Warn().Err(err).Msg("control plane unreachable during forced recovery")
		} else {
			log.Error().Err(err).Msg("forced recovery failed")
		}
		return issues
	}

	// Re-check so resolved hosts drop out of the report.
	live, err := s.control.GetConfig(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("cannot re-check drift after forced recovery")
		return issues
	}
	remaining := s.DetectDrift(ctx, live, workloads)
	if len(remaining) == 0 {
		log.Info().Msg("drift recovered by forced patch")
	}
	return remaining
}

// refreshLabels re-reads each workload's labels from the inventory so the
// forced patch targets current declarations rather than the cycle's
// snapshot. A workload gone from the inventory is dropped; any other read
// error keeps the snapshot value.
func (s *Service) refreshLabels(ctx context.Context, workloads []domain.Workload) []domain.Workload {
	log := zerowrap.FromCtx(ctx)

	fresh := make([]domain.Workload, 0, len(workloads))
	for _, w := range workloads {
		labels, err := s.inventory.GetWorkloadLabels(ctx, w.ID)
		switch {
		case err == nil:
			w.Labels = labels
		case errors.Is(err, domain.ErrWorkloadNotFound):
			log.Debug().
				Str(zerowrap.FieldEntityID, w.ID).
				Msg("workload gone, dropped from forced patch")
			continue
		default:
			log.Warn().Err(err).
				Str(zerowrap.FieldEntityID, w.ID).
				Msg("cannot refresh workload labels, using snapshot")
		}
		fresh = append(fresh, w)
	}
	return fresh
}

// verifyApplied re-fetches the live document and compares its route table
// rule-by-rule against the freshly built one: same count, same order, same
// content.
func (s *Service) verifyApplied(ctx context.Context, desired *domain.CaddyConfig) bool {
	log := zerowrap.FromCtx(ctx)

	live, err := s.control.GetConfig(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("cannot fetch live document for verification")
		return false
	}

	want := desired.ServerRoutes(s.serverName)
	got := live.ServerRoutes(s.serverName)
	if len(want) != len(got) {
		log.Warn().
			Int("desired", len(want)).
			Int("live", len(got)).
			Msg("verification failed: route count mismatch")
		return false
	}

	for i := range want {
		if !routesEqual(want[i], got[i]) {
			log.Warn().Int("route_index", i).Msg("verification failed: route mismatch")
			return false
		}
	}
	return true
}

// routesEqual compares two routes by their canonical JSON encoding.
func routesEqual(a, b domain.CaddyRoute) bool {
	ja, err := json.Marshal(a)
	if err != nil {
		return false
	}
	jb, err := json.Marshal(b)
	if err != nil {
		return false
	}
	return string(ja) == string(jb)
}
