package domain

import (
	"net"
	"strings"
)

// IsPublicDomain reports whether host is a public domain eligible for
// automated TLS. Loopback names, IP literals and bare words are not.
// Misclassifying a private host as public would send a doomed request to the
// certificate authority, so the predicate errs toward false when ambiguous.
func IsPublicDomain(host string) bool {
	host = strings.TrimSpace(host)
	if host == "" {
		return false
	}
	if host == "localhost" || strings.HasSuffix(host, ".localhost") {
		return false
	}
	// Covers IPv4 dotted-quads and plain IPv6 literals.
	if net.ParseIP(host) != nil {
		return false
	}
	// Bracketed or port-qualified IPv6-looking tokens.
	if strings.Contains(host, ":") {
		return false
	}
	if strings.HasPrefix(host, ".") {
		return false
	}
	return strings.Contains(host, ".")
}
