package certwatch

import "github.com/bnema/wharf/internal/domain"

// PatternFamily is one ordered group of log signatures. Families are tested
// in order and the first match wins; patterns are matched case-insensitively
// against the proxy's recent log output.
type PatternFamily struct {
	Kind     string
	Severity domain.CertIssueSeverity
	Patterns []string
}

// DefaultPatterns returns the built-in signature families: certificate
// authority rate limiting first, then generic issuance failure. Rate-limit
// hits are a warning since they resolve on their own; issuance failures are
// errors.
func DefaultPatterns() []PatternFamily {
	return []PatternFamily{
		{
			Kind:     "rate_limit",
			Severity: domain.CertSeverityWarning,
			Patterns: []string{
				"ratelimited",
				"rate limit",
				"too many certificates",
				"too many failed authorizations",
				"429",
			},
		},
		{
			Kind:     "cert_failure",
			Severity: domain.CertSeverityError,
			// Failure-shaped signatures only: routine issuance chatter also
			// mentions ACME endpoints, so bare "acme" or "obtaining
			// certificate" would flag healthy windows.
			Patterns: []string{
				"failed to get certificate",
				"could not get certificate",
				"failed to obtain certificate",
				"challenge failed",
				"acme: error",
			},
		},
	}
}
