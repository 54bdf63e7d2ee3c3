// Package reconcile implements the reconciliation control loop: observe the
// workload inventory, compute the desired proxy configuration, apply it,
// verify the apply, and self-heal on divergence.
package reconcile

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bnema/zerowrap"
	"github.com/google/uuid"

	"github.com/bnema/wharf/internal/boundaries/in"
	"github.com/bnema/wharf/internal/boundaries/out"
	"github.com/bnema/wharf/internal/domain"
	"github.com/bnema/wharf/internal/usecase/certwatch"
	"github.com/bnema/wharf/internal/usecase/routing"
)

const (
	defaultInterval     = 30 * time.Second
	defaultReadTimeout  = 5 * time.Second
	defaultApplyTimeout = 10 * time.Second
)

// Service runs the reconciliation loop. The known-workload-ID set is owned
// exclusively by the loop, lives only in memory and is replaced wholesale
// after every successful apply; it is a struct field so multiple instances
// can run side by side in tests.
type Service struct {
	inventory  out.WorkloadInventory
	control    out.ProxyControlPlane
	routing    *routing.Service
	certs      *certwatch.Service
	prober     out.HTTPProber
	configSvc  in.ConfigService
	serverName string

	readTimeout time.Duration

	knownIDs map[string]struct{}

	stopCh  chan struct{}
	stopped chan struct{}
}

// Option configures the Service.
type Option func(*Service)

// WithServerName sets the proxy server block the loop manages.
func WithServerName(name string) Option {
	return func(s *Service) { s.serverName = name }
}

// WithReadTimeout bounds inventory and live-document reads.
func WithReadTimeout(d time.Duration) Option {
	return func(s *Service) { s.readTimeout = d }
}

// WithCertWatcher enables certificate health checks on no-change cycles.
func WithCertWatcher(certs *certwatch.Service) Option {
	return func(s *Service) { s.certs = certs }
}

// WithProber enables diagnostic upstream reachability probes on no-change
// cycles. Probe results are logged, never acted on.
func WithProber(p out.HTTPProber) Option {
	return func(s *Service) { s.prober = p }
}

// NewService creates a new reconciliation service.
func NewService(
	inventory out.WorkloadInventory,
	control out.ProxyControlPlane,
	routingSvc *routing.Service,
	configSvc in.ConfigService,
	opts ...Option,
) *Service {
	s := &Service{
		inventory:   inventory,
		control:     control,
		routing:     routingSvc,
		configSvc:   configSvc,
		serverName:  routing.DefaultServerName,
		readTimeout: defaultReadTimeout,
		knownIDs:    make(map[string]struct{}),
		stopCh:      make(chan struct{}),
		stopped:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start begins the reconciliation loop in the background.
func (s *Service) Start(ctx context.Context) {
	log := zerowrap.FromCtx(ctx)
	log.Info().Dur("interval", s.interval()).Msg("reconciliation loop started")

	go s.run(ctx)
}

// Stop signals the loop to stop and waits for the current cycle to finish.
// Cancellation is cooperative: checked at iteration boundaries, never
// mid-cycle.
func (s *Service) Stop() {
	close(s.stopCh)
	<-s.stopped
}

func (s *Service) run(ctx context.Context) {
	defer close(s.stopped)

	// First cycle runs immediately; the ticker paces the rest.
	s.cycle(ctx)

	ticker := time.NewTicker(s.interval())
	defer ticker.Stop()

	for {
		select {
		case <-s.stopCh:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.cycle(ctx)
			ticker.Reset(s.interval())
		}
	}
}

func (s *Service) interval() time.Duration {
	if s.configSvc != nil {
		if d := s.configSvc.PollInterval(); d > 0 {
			return d
		}
	}
	return defaultInterval
}

// cycle is one iteration of the loop: poll, change-check, then either
// rebuild+apply or drift-check+health-check. No condition raised inside a
// cycle terminates the loop.
func (s *Service) cycle(ctx context.Context) {
	ctx = zerowrap.CtxWithFields(ctx, map[string]any{
		zerowrap.FieldLayer:   "usecase",
		zerowrap.FieldUseCase: "reconcile",
		"cycle_id":            uuid.NewString(),
	})
	log := zerowrap.FromCtx(ctx)

	pollCtx, cancel := context.WithTimeout(ctx, s.readTimeout)
	workloads, err := s.inventory.ListWorkloads(pollCtx)
	cancel()
	if err != nil {
		log.Warn().Err(err).Msg("workload poll failed, retrying next cycle")
		return
	}

	ids := make(map[string]struct{}, len(workloads))
	for _, w := range workloads {
		ids[w.ID] = struct{}{}
	}

	if !sameIDs(ids, s.knownIDs) {
		s.converge(ctx, workloads, ids)
		return
	}

	log.Debug().Int(zerowrap.FieldCount, len(workloads)).Msg("topology unchanged")
	s.inspect(ctx, workloads)
}

// converge rebuilds the desired document and applies it. The known-ID set
// is replaced only after a successful apply so a failed cycle retries the
// same rebuild next time.
func (s *Service) converge(ctx context.Context, workloads []domain.Workload, ids map[string]struct{}) {
	log := zerowrap.FromCtx(ctx)

	table := s.routing.BuildTable(ctx, workloads)
	doc := s.routing.Compile(ctx, table, s.compileOptions())

	if !s.routing.Validate(ctx, doc, workloads) {
		log.Warn().Msg("compiled document failed validation, skipping apply this cycle")
		return
	}

	result := s.Apply(ctx, doc, workloads)
	switch result.Outcome {
	case OutcomeApplied:
		s.knownIDs = ids
		log.Info().
			Int("workloads", len(workloads)).
			Int("tier", result.Tier).
			Msg("topology change applied")
	case OutcomeFallbackRouting:
		log.Warn().Msg("external fallback routing in effect, will retry next cycle")
	case OutcomeFailed:
		log.Error().
			Int("route_errors", len(result.RouteErrors)).
			Msg("apply failed, will retry next cycle")
	}
}

// inspect runs the no-change path: drift detection with recovery, then
// certificate health checks. Neither mutates the known-ID set.
func (s *Service) inspect(ctx context.Context, workloads []domain.Workload) {
	log := zerowrap.FromCtx(ctx)

	readCtx, cancel := context.WithTimeout(ctx, s.readTimeout)
	live, err := s.control.GetConfig(readCtx)
	cancel()
	switch {
	case err == nil:
		if issues := s.DetectDrift(ctx, live, workloads); len(issues) > 0 {
			if unresolved := s.recover(ctx, workloads, issues); len(unresolved) > 0 {
				for _, issue := range unresolved {
					log.Error().
						Str("host", issue.Host).
						Str("actual", issue.Actual).
						Str("expected", issue.Expected).
						Msg("drift unresolved, waiting for next poll")
				}
			}
		}
	case errors.Is(err, domain.ErrControlPlaneUnreachable):
		// The log source and upstream probes use other collaborators, so an
		// unreachable admin API only costs this cycle's drift check.
		log.Debug().Msg("control plane unreachable, skipping drift check")
	default:
		log.Warn().Err(err).Msg("cannot fetch live document for drift check")
	}

	s.checkCertificates(ctx, workloads)
	s.probeUpstreams(ctx, workloads)
}

// checkCertificates inspects certificate health for every routed public
// domain.
func (s *Service) checkCertificates(ctx context.Context, workloads []domain.Workload) {
	if s.certs == nil {
		return
	}
	log := zerowrap.FromCtx(ctx)

	seen := make(map[string]struct{})
	for _, w := range workloads {
		rl, ok := domain.RoutingLabelsOf(w)
		if !ok || !domain.IsPublicDomain(rl.Domain) {
			continue
		}
		if _, dup := seen[rl.Domain]; dup {
			continue
		}
		seen[rl.Domain] = struct{}{}

		report := s.certs.CheckDomain(ctx, rl.Domain)
		if !report.HasErrors {
			log.Debug().
				Str("domain", report.Domain).
				Str("ca_mode", string(report.CAMode)).
				Msg("certificate health ok")
			continue
		}

		ev := log.Warn()
		if report.Issue != nil && report.Issue.Severity == domain.CertSeverityError {
			ev = log.Error()
		}
		ev.Str("domain", report.Domain).
			Str("ca_mode", string(report.CAMode)).
			Str("kind", report.Issue.Kind).
			Msg(report.Issue.Message)
	}
}

// probeUpstreams sends a diagnostic GET to the health path of every
// workload that declares one. Results never alter the applied
// configuration; an unreachable upstream is logged and nothing more.
func (s *Service) probeUpstreams(ctx context.Context, workloads []domain.Workload) {
	if s.prober == nil {
		return
	}
	log := zerowrap.FromCtx(ctx)

	for _, w := range workloads {
		rl, ok := domain.RoutingLabelsOf(w)
		if !ok || rl.HealthPath == "" {
			continue
		}

		url := fmt.Sprintf("http://%s%s", rl.Upstream, rl.HealthPath)
		status, elapsed, err := s.prober.Probe(ctx, url)
		if err != nil {
			log.Warn().
				Err(err).
				Str("upstream", rl.Upstream).
				Str("host", rl.Domain).
				Msg("upstream health probe failed")
			continue
		}

		ev := log.Debug()
		if status >= 500 {
			ev = log.Warn()
		}
		ev.Str("upstream", rl.Upstream).
			Int("status", status).
			Int64("elapsed_ms", elapsed).
			Msg("upstream health probe")
	}
}

func (s *Service) compileOptions() routing.CompileOptions {
	opts := routing.CompileOptions{ServerName: s.serverName}
	if s.configSvc != nil {
		opts.ACMEEmail = s.configSvc.ACMEEmail()
	}
	return opts
}

func sameIDs(a, b map[string]struct{}) bool {
	if len(a) != len(b) {
		return false
	}
	for id := range a {
		if _, ok := b[id]; !ok {
			return false
		}
	}
	return true
}
