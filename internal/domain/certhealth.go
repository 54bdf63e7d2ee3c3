package domain

// CAMode classifies which ACME endpoint a domain's automation policy uses.
type CAMode string

const (
	CAModeProduction CAMode = "production"
	CAModeStaging    CAMode = "staging"
	CAModeUnknown    CAMode = "unknown"
)

// CertIssueSeverity grades a certificate issue found in proxy logs.
type CertIssueSeverity string

const (
	CertSeverityWarning CertIssueSeverity = "warning"
	CertSeverityError   CertIssueSeverity = "error"
)

// CertIssue is one certificate-issuance failure signature matched in the
// proxy's recent log output.
type CertIssue struct {
	Kind     string
	Message  string
	Severity CertIssueSeverity
}

// CertHealthReport is the result of inspecting one domain's certificate
// health. CAMode and Issue are independently determined; either may be
// absent without invalidating the other.
type CertHealthReport struct {
	Domain    string
	CAMode    CAMode
	HasErrors bool
	Issue     *CertIssue
}
