package out

import "context"

// HTTPProber checks upstream reachability. Strictly diagnostic: probe
// results never alter an applied configuration.
type HTTPProber interface {
	// Probe sends an HTTP GET and returns the status code and response
	// time in milliseconds.
	Probe(ctx context.Context, url string) (int, int64, error)
}
