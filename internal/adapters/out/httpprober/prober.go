// Package httpprober provides HTTP probing of upstream reachability.
// Probing is strictly diagnostic: results never alter an applied
// configuration.
package httpprober

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/http"
	"time"
)

const (
	// DefaultTimeout is the per-attempt timeout for HTTP probes.
	DefaultTimeout = 5 * time.Second

	// DefaultAttempts is the number of probe attempts per call.
	DefaultAttempts = 3

	// DefaultBackoffStep spaces retries linearly: 0, step, 2*step.
	DefaultBackoffStep = 2 * time.Second
)

// Prober implements the HTTPProber interface with bounded linear-backoff
// retries.
type Prober struct {
	client   *http.Client
	timeout  time.Duration
	attempts int
	step     time.Duration
}

// Option configures the Prober.
type Option func(*Prober)

// WithTimeout sets the per-attempt timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(p *Prober) { p.timeout = timeout }
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(p *Prober) { p.client = client }
}

// WithRetry sets the attempt count and the linear backoff step.
func WithRetry(attempts int, step time.Duration) Option {
	return func(p *Prober) {
		if attempts > 0 {
			p.attempts = attempts
		}
		p.step = step
	}
}

// New creates a new HTTP prober.
func New(opts ...Option) *Prober {
	p := &Prober{
		timeout:  DefaultTimeout,
		attempts: DefaultAttempts,
		step:     DefaultBackoffStep,
	}

	for _, opt := range opts {
		opt(p)
	}

	if p.client == nil {
		p.client = &http.Client{
			Timeout: p.timeout,
			Transport: &http.Transport{
				// #nosec G402 - InsecureSkipVerify is intentional: the prober
				// only checks reachability of internal upstreams that may use
				// self-signed certificates.
				TLSClientConfig: &tls.Config{
					InsecureSkipVerify: true,
				},
				DisableKeepAlives: true,
			},
			// Don't follow redirects - the actual response matters.
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				return http.ErrUseLastResponse
			},
		}
	}

	return p
}

// Probe sends HTTP GET requests with linearly increasing backoff between
// attempts (0, step, 2*step) and returns the status code and response time
// of the first attempt that gets a response, or the last error.
func (p *Prober) Probe(ctx context.Context, url string) (int, int64, error) {
	var lastErr error
	var elapsed int64

	for attempt := 0; attempt < p.attempts; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(attempt) * p.step
			select {
			case <-ctx.Done():
				return 0, elapsed, ctx.Err()
			case <-time.After(backoff):
			}
		}

		var status int
		status, elapsed, lastErr = p.probeOnce(ctx, url)
		if lastErr == nil {
			return status, elapsed, nil
		}
	}

	return 0, elapsed, lastErr
}

func (p *Prober) probeOnce(ctx context.Context, url string) (int, int64, error) {
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", "Wharf-Probe/1.0")

	resp, err := p.client.Do(req)
	if err != nil {
		elapsed := time.Since(start).Milliseconds()
		return 0, elapsed, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	elapsed := time.Since(start).Milliseconds()
	return resp.StatusCode, elapsed, nil
}
