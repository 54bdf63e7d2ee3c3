// Package caddyadmin implements the proxy control-plane client over Caddy's
// admin API.
package caddyadmin

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/bnema/zerowrap"

	"github.com/bnema/wharf/internal/domain"
)

// DefaultAddr is the admin API address Caddy listens on by default.
const DefaultAddr = "http://127.0.0.1:2019"

const (
	// DefaultReadTimeout bounds configuration reads.
	DefaultReadTimeout = 5 * time.Second
	// DefaultApplyTimeout bounds whole-document loads, which are slower
	// because Caddy provisions the new config before answering.
	DefaultApplyTimeout = 10 * time.Second
)

// Client implements the ProxyControlPlane interface.
type Client struct {
	base   string
	server string
	http   *http.Client

	readTimeout  time.Duration
	applyTimeout time.Duration
}

// Option configures the Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) { cl.http = c }
}

// WithTimeouts sets the read and apply timeouts.
func WithTimeouts(read, apply time.Duration) Option {
	return func(cl *Client) {
		if read > 0 {
			cl.readTimeout = read
		}
		if apply > 0 {
			cl.applyTimeout = apply
		}
	}
}

// WithServerName sets the server block the route operations target.
func WithServerName(name string) Option {
	return func(cl *Client) { cl.server = name }
}

// NewClient creates a control-plane client for the admin API at base.
func NewClient(base string, opts ...Option) *Client {
	if base == "" {
		base = DefaultAddr
	}
	cl := &Client{
		base:         strings.TrimRight(base, "/"),
		server:       "srv0",
		readTimeout:  DefaultReadTimeout,
		applyTimeout: DefaultApplyTimeout,
	}
	for _, opt := range opts {
		opt(cl)
	}
	if cl.http == nil {
		cl.http = &http.Client{}
	}
	return cl
}

func (c *Client) routesPath() string {
	return fmt.Sprintf("/config/apps/http/servers/%s/routes", c.server)
}

// GetConfig fetches the full live configuration document.
func (c *Client) GetConfig(ctx context.Context) (*domain.CaddyConfig, error) {
	body, err := c.do(ctx, http.MethodGet, "/config/", nil, c.readTimeout)
	if err != nil {
		return nil, err
	}

	cfg := &domain.CaddyConfig{}
	if len(body) == 0 || string(body) == "null" || string(body) == "null\n" {
		return cfg, nil
	}
	if err := json.Unmarshal(body, cfg); err != nil {
		return nil, fmt.Errorf("decoding live configuration: %w", err)
	}
	return cfg, nil
}

// LoadConfig replaces the full configuration document.
func (c *Client) LoadConfig(ctx context.Context, cfg *domain.CaddyConfig) error {
	payload, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding configuration: %w", err)
	}
	_, err = c.do(ctx, http.MethodPost, "/load", payload, c.applyTimeout)
	return err
}

// AppendRoute appends one route to the server's route table.
func (c *Client) AppendRoute(ctx context.Context, route domain.CaddyRoute) error {
	payload, err := json.Marshal(route)
	if err != nil {
		return fmt.Errorf("encoding route: %w", err)
	}
	_, err = c.do(ctx, http.MethodPost, c.routesPath(), payload, c.readTimeout)
	return err
}

// DeleteRoutes clears the server's route table. An absent table is treated
// as already cleared.
func (c *Client) DeleteRoutes(ctx context.Context) error {
	_, err := c.do(ctx, http.MethodDelete, c.routesPath(), nil, c.readTimeout)
	if err != nil && isNotFound(err) {
		return nil
	}
	return err
}

// PatchRoute replaces the route at the given index in place.
func (c *Client) PatchRoute(ctx context.Context, index int, route domain.CaddyRoute) error {
	payload, err := json.Marshal(route)
	if err != nil {
		return fmt.Errorf("encoding route: %w", err)
	}
	path := fmt.Sprintf("%s/%d", c.routesPath(), index)
	_, err = c.do(ctx, http.MethodPatch, path, payload, c.readTimeout)
	return err
}

// GetTLSPolicies fetches the live TLS automation policies. An absent TLS
// app yields an empty slice.
func (c *Client) GetTLSPolicies(ctx context.Context) ([]domain.CaddyTLSPolicy, error) {
	body, err := c.do(ctx, http.MethodGet, "/config/apps/tls/automation/policies", nil, c.readTimeout)
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	if len(body) == 0 || string(body) == "null" || string(body) == "null\n" {
		return nil, nil
	}

	var policies []domain.CaddyTLSPolicy
	if err := json.Unmarshal(body, &policies); err != nil {
		return nil, fmt.Errorf("decoding TLS policies: %w", err)
	}
	return policies, nil
}

// statusError is a reachable-but-rejecting control-plane response.
type statusError struct {
	status int
	body   string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("control plane returned %d: %s", e.status, e.body)
}

func (e *statusError) Unwrap() error {
	return domain.ErrControlPlaneRejected
}

func isNotFound(err error) bool {
	var se *statusError
	return errors.As(err, &se) && se.status == http.StatusNotFound
}

// do performs one admin API call with a bounded timeout. Transport-level
// failures (connection refused, timeout) wrap ErrControlPlaneUnreachable;
// an HTTP response with a non-2xx status is a rejection, which callers must
// treat differently.
func (c *Client) do(ctx context.Context, method, path string, payload []byte, timeout time.Duration) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	log := zerowrap.FromCtx(ctx)

	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, reader)
	if err != nil {
		return nil, fmt.Errorf("building admin request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s %s: %v", domain.ErrControlPlaneUnreachable, method, path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("%w: reading response: %v", domain.ErrControlPlaneUnreachable, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Debug().
			Int("status", resp.StatusCode).
			Str("method", method).
			Str("path", path).
			Msg("admin API rejected request")
		return nil, fmt.Errorf("%s %s: %w", method, path, &statusError{
			status: resp.StatusCode,
			body:   strings.TrimSpace(string(body)),
		})
	}

	return body, nil
}
