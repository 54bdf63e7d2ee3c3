package domain

// DriftIssue records one divergence between the proxy's live configuration
// and the configuration derivable from current workload labels. Issues are
// purely advisory; producing one never mutates state.
type DriftIssue struct {
	Host     string
	Actual   string // upstream the live document forwards to
	Expected string // upstream the labels say it should forward to
}
