// Package api is the typed client for the storefront REST API. Every call is
// a single context-scoped round trip; the bearer credential is attached by an
// injected request-decorating transport rather than read from global state.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultTimeout = 10 * time.Second

// TokenSource supplies the bearer credential for an outgoing request. The
// request context is the one the caller issued the operation with, so
// session-scoped sources can read the credential from it.
type TokenSource interface {
	Token(ctx context.Context) (string, bool)
}

// TokenSourceFunc adapts ordinary functions to TokenSource.
type TokenSourceFunc func(ctx context.Context) (string, bool)

// Token implements TokenSource.
func (f TokenSourceFunc) Token(ctx context.Context) (string, bool) { return f(ctx) }

// StaticToken is a TokenSource yielding a fixed credential. An empty value
// attaches nothing.
type StaticToken string

// Token implements TokenSource.
func (t StaticToken) Token(context.Context) (string, bool) { return string(t), t != "" }

// Client issues REST calls against the storefront API.
type Client struct {
	baseURL string
	http    *http.Client
}

// Option customises client construction.
type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.http = httpClient
		}
	}
}

// WithTokenSource wraps the client transport so every request carries the
// bearer credential the source yields for its context.
func WithTokenSource(source TokenSource) Option {
	return func(c *Client) {
		if source == nil {
			return
		}
		base := c.http.Transport
		c.http.Transport = &bearerTransport{base: base, source: source}
	}
}

// NewClient constructs a client rooted at baseURL (the host part; the "/api"
// prefix is appended per request).
func NewClient(baseURL string, opts ...Option) *Client {
	client := &Client{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		http:    &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

// bearerTransport decorates outgoing requests with the Authorization header.
type bearerTransport struct {
	base   http.RoundTripper
	source TokenSource
}

func (t *bearerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if token, ok := t.source.Token(req.Context()); ok {
		clone := req.Clone(req.Context())
		clone.Header.Set("Authorization", "Bearer "+token)
		req = clone
	}
	base := t.base
	if base == nil {
		base = http.DefaultTransport
	}
	return base.RoundTrip(req)
}

// do performs one API round trip. body is JSON-encoded when non-nil; the
// response is decoded into out when non-nil. Non-success responses map onto
// the package error taxonomy.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	endpoint, err := url.JoinPath(c.baseURL, "api", path)
	if err != nil {
		return fmt.Errorf("api: invalid endpoint %q: %w", path, err)
	}
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("api: encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("api: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		detail := drainDetail(resp.Body)
		if resp.StatusCode == http.StatusUnauthorized {
			if detail == "" {
				return ErrUnauthenticated
			}
			return fmt.Errorf("%w: %s", ErrUnauthenticated, detail)
		}
		return &RemoteError{Status: resp.StatusCode, Detail: detail}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("api: decode response: %w", err)
	}
	return nil
}

// drainDetail extracts the backend's error message. The API wraps failures
// as {"detail": "..."}; anything else falls back to the raw body, capped.
func drainDetail(r io.Reader) string {
	raw, _ := io.ReadAll(io.LimitReader(r, 2048))
	var envelope struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(raw, &envelope); err == nil && envelope.Detail != "" {
		return envelope.Detail
	}
	text := strings.TrimSpace(string(raw))
	if len(text) > 256 {
		text = text[:256]
	}
	return text
}
