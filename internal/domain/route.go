package domain

// RouteRule is one ordered unit of a RouteTable.
//
// Within a host's rule group, rules with a non-root path prefix sort before
// path-exception rules, which sort before the catch-all (no path condition);
// among specific-path rules, longer path strings sort first. This models the
// proxy's first-match sequential evaluation.
type RouteRule struct {
	Host       string
	Path       string // path prefix pattern; empty means catch-all for the host
	PathExcept string // path exception pattern; route matches everything but this
	Upstream   string // host:port dial target; empty only on the wildcard rule
	HealthPath string
}

// IsWildcard reports whether the rule is the table-terminating wildcard,
// which matches any host and returns a static placeholder response.
func (r RouteRule) IsWildcard() bool {
	return r.Host == ""
}

// RouteTable is an ordered sequence of route rules grouped by host,
// terminated by one implicit wildcard catch-all rule. The wildcard rule is
// always last.
type RouteTable struct {
	Rules []RouteRule
}

// Hosts returns routed hosts in rule order, deduplicated, excluding the
// wildcard rule.
func (t RouteTable) Hosts() []string {
	seen := make(map[string]struct{}, len(t.Rules))
	var hosts []string
	for _, r := range t.Rules {
		if r.IsWildcard() {
			continue
		}
		if _, ok := seen[r.Host]; ok {
			continue
		}
		seen[r.Host] = struct{}{}
		hosts = append(hosts, r.Host)
	}
	return hosts
}

// PublicHosts returns the routed hosts eligible for automated TLS.
func (t RouteTable) PublicHosts() []string {
	var hosts []string
	for _, h := range t.Hosts() {
		if IsPublicDomain(h) {
			hosts = append(hosts, h)
		}
	}
	return hosts
}

// HostRules returns the rules for one host, preserving table order.
func (t RouteTable) HostRules(host string) []RouteRule {
	var rules []RouteRule
	for _, r := range t.Rules {
		if r.Host == host {
			rules = append(rules, r)
		}
	}
	return rules
}
