// Package certwatch inspects proxy log output and TLS automation policies
// for certificate-issuance problems.
package certwatch

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bnema/zerowrap"

	"github.com/bnema/wharf/internal/boundaries/out"
	"github.com/bnema/wharf/internal/domain"
)

const (
	defaultWindowLines = 200
	defaultWindowAge   = 10 * time.Minute
)

// stagingCAMarker appears in the ACME endpoint URL of Let's Encrypt's
// staging environment.
const stagingCAMarker = "acme-staging"

// Service checks certificate health per domain.
type Service struct {
	logs     out.ProxyLogSource
	control  out.ProxyControlPlane
	families []PatternFamily

	windowLines int
	windowAge   time.Duration
}

// Option configures the Service.
type Option func(*Service)

// WithPatterns replaces the signature families, in match order.
func WithPatterns(families []PatternFamily) Option {
	return func(s *Service) { s.families = families }
}

// WithWindow bounds the inspected log window by line count and recency.
func WithWindow(lines int, age time.Duration) Option {
	return func(s *Service) {
		s.windowLines = lines
		s.windowAge = age
	}
}

// NewService creates a new certificate health service.
func NewService(logs out.ProxyLogSource, control out.ProxyControlPlane, opts ...Option) *Service {
	s := &Service{
		logs:        logs,
		control:     control,
		families:    DefaultPatterns(),
		windowLines: defaultWindowLines,
		windowAge:   defaultWindowAge,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CheckDomain inspects a recent window of proxy log output for issuance
// failure signatures and classifies the domain's certificate-authority mode
// from the live TLS automation policies. The two results are independent;
// both are returned even if one is absent.
func (s *Service) CheckDomain(ctx context.Context, domainName string) domain.CertHealthReport {
	ctx = zerowrap.CtxWithFields(ctx, map[string]any{
		zerowrap.FieldLayer:   "usecase",
		zerowrap.FieldUseCase: "CheckDomain",
		"domain":              domainName,
	})
	log := zerowrap.FromCtx(ctx)

	report := domain.CertHealthReport{
		Domain: domainName,
		CAMode: domain.CAModeUnknown,
	}

	if issue := s.scanLogs(ctx, domainName); issue != nil {
		report.HasErrors = true
		report.Issue = issue
	}

	report.CAMode = s.classifyCA(ctx, domainName)

	log.Debug().
		Bool("has_errors", report.HasErrors).
		Str("ca_mode", string(report.CAMode)).
		Msg("certificate health checked")

	return report
}

// scanLogs tests the log window against the signature families in order.
// A family only matches when the domain itself appears in the same window:
// the correlation is coarse, window-level rather than line-level.
func (s *Service) scanLogs(ctx context.Context, domainName string) *domain.CertIssue {
	log := zerowrap.FromCtx(ctx)

	blob, err := s.logs.Tail(ctx, s.windowLines, s.windowAge)
	if err != nil {
		log.Warn().Err(err).Msg("cannot retrieve proxy log window")
		return nil
	}

	window := strings.ToLower(blob)
	if !strings.Contains(window, strings.ToLower(domainName)) {
		return nil
	}

	for _, family := range s.families {
		for _, pattern := range family.Patterns {
			if strings.Contains(window, strings.ToLower(pattern)) {
				return &domain.CertIssue{
					Kind:     family.Kind,
					Severity: family.Severity,
					Message:  fmt.Sprintf("%s signature %q found in recent proxy logs", family.Kind, pattern),
				}
			}
		}
	}

	return nil
}

// classifyCA determines the certificate-authority mode from the live TLS
// automation policy covering the domain.
func (s *Service) classifyCA(ctx context.Context, domainName string) domain.CAMode {
	log := zerowrap.FromCtx(ctx)

	policies, err := s.control.GetTLSPolicies(ctx)
	if err != nil {
		log.Debug().Err(err).Msg("cannot fetch TLS automation policies")
		return domain.CAModeUnknown
	}

	for _, policy := range policies {
		if !containsSubject(policy.Subjects, domainName) {
			continue
		}
		for _, issuer := range policy.Issuers {
			if issuer.Module != "acme" {
				continue
			}
			if strings.Contains(issuer.CA, stagingCAMarker) {
				return domain.CAModeStaging
			}
			// Caddy defaults to the production endpoint when CA is unset.
			return domain.CAModeProduction
		}
	}

	return domain.CAModeUnknown
}

func containsSubject(subjects []string, domainName string) bool {
	for _, s := range subjects {
		if s == domainName {
			return true
		}
	}
	return false
}
