// Package http implements the retry-aware transport client behind every API
// call. One Do invocation performs a bounded sequence of attempts, refreshes
// the auth header on authorization failures, honors the array's rate-limit
// headers, and classifies terminal failures into flasharray.ErrorResponse
// values.
package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	nethttp "net/http"
	"net/url"
	"time"

	"github.com/arraykit-io/flasharray-client/internal/auth"
	"github.com/arraykit-io/flasharray-client/internal/constants"
	"github.com/arraykit-io/flasharray-client/pkg/flasharray"
)

// Request represents an API request.
type Request struct {
	Method  string
	Path    string
	Query   url.Values
	Body    interface{}
	Headers map[string]string
}

// Response represents an API response.
type Response struct {
	StatusCode int
	Headers    nethttp.Header
	Body       []byte

	// RequestID is the correlation id echoed or generated by the array.
	RequestID string
}

// Option configures the client.
type Option func(*Client)

// WithLogger sets the logger.
func WithLogger(logger flasharray.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithDebug enables request/response logging.
func WithDebug(debug bool) Option {
	return func(c *Client) {
		c.debug = debug
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		c.userAgent = userAgent
	}
}

// WithRetryLimit sets the total number of attempts per call, including the
// first.
func WithRetryLimit(limit int) Option {
	return func(c *Client) {
		if limit > 0 {
			c.retryLimit = limit
		}
	}
}

// WithTimeout bounds each transport invocation individually, retries
// included.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.timeout = timeout
		}
	}
}

// WithSleep replaces the backoff sleep function. Tests use this to observe
// which backoff branch fired without waiting.
func WithSleep(sleep func(time.Duration)) Option {
	return func(c *Client) {
		c.sleep = sleep
	}
}

// WithCache serves GET responses from the given cache and invalidates it on
// writes.
func WithCache(cache flasharray.Cache, ttl time.Duration) Option {
	return func(c *Client) {
		c.cache = cache
		c.cacheTTL = ttl
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(httpClient *nethttp.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// Client executes API calls against one array.
type Client struct {
	baseURL    string
	httpClient *nethttp.Client
	tokens     auth.TokenManager
	userAgent  string
	retryLimit int
	timeout    time.Duration
	logger     flasharray.Logger
	debug      bool
	sleep      func(time.Duration)
	cache      flasharray.Cache
	cacheTTL   time.Duration
}

// NewClient creates a transport client for the given base URL. tokens may be
// nil, in which case requests are sent unauthenticated.
func NewClient(baseURL string, tokens auth.TokenManager, opts ...Option) *Client {
	client := &Client{
		baseURL:    baseURL,
		httpClient: &nethttp.Client{},
		tokens:     tokens,
		userAgent:  constants.DefaultUserAgent,
		retryLimit: constants.DefaultRetryLimit,
		timeout:    constants.DefaultHTTPTimeout,
		sleep:      time.Sleep,
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

// Do executes the request with the bounded retry loop. Terminal API-level
// failures are returned as a *flasharray.ErrorResponse error value together
// with the raw response; errors that indicate the call could never have been
// made correctly (transport construction failures, credential-exchange
// failures, statuses outside the known taxonomy) are returned as plain
// errors with a nil response.
func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	if resp, ok := c.cacheLookup(ctx, req); ok {
		return resp, nil
	}

	attempts := c.retryLimit
	force := false

	for {
		resp, err := c.attempt(ctx, req, force)
		if err != nil {
			return nil, err
		}

		force = false

		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			c.cacheStore(ctx, req, resp)

			return resp, nil
		}

		attempts--
		if attempts <= 0 {
			return resp, flasharray.NewErrorResponse(resp.StatusCode, resp.Headers, resp.Body)
		}

		switch {
		case resp.StatusCode == nethttp.StatusBadRequest || resp.StatusCode == nethttp.StatusNotFound:
			// The request can never succeed as given.
			return resp, flasharray.NewErrorResponse(resp.StatusCode, resp.Headers, resp.Body)

		case resp.StatusCode == nethttp.StatusUnauthorized || resp.StatusCode == nethttp.StatusForbidden:
			force = true

		case resp.StatusCode == nethttp.StatusTooManyRequests:
			c.rateLimitBackoff(resp.Headers)

		case resp.StatusCode == nethttp.StatusInternalServerError:
			// A definitive 500 is an application error, not a transient
			// gateway condition; only statuses above 500 are retried.
			return resp, flasharray.NewErrorResponse(resp.StatusCode, resp.Headers, resp.Body)

		case resp.StatusCode > nethttp.StatusInternalServerError:
			// Transient gateway/timeout condition; retry with no delay.

		default:
			return nil, fmt.Errorf("unexpected status %d from %s %s", resp.StatusCode, req.Method, req.Path)
		}
	}
}

// rateLimitBackoff sleeps according to the array's per-minute quota headers.
// When the minute bucket is fully exhausted the long sleep runs first and
// then falls through to the short sleep, matching the array's documented
// throttling behavior.
func (c *Client) rateLimitBackoff(headers nethttp.Header) {
	remaining := headers.Get(constants.HeaderRateLimitRemainingMin)
	limit := headers.Get(constants.HeaderRateLimitMin)

	if remaining != "" && remaining == limit {
		c.sleep(constants.RateLimitMinuteSleep)
	}

	c.sleep(constants.RateLimitSecondSleep)
}

// attempt performs a single transport invocation with its own timeout.
func (c *Client) attempt(ctx context.Context, req *Request, forceAuth bool) (*Response, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)

		defer cancel()
	}

	fullURL := c.baseURL + req.Path
	if len(req.Query) > 0 {
		fullURL += "?" + req.Query.Encode()
	}

	var bodyReader io.Reader

	if req.Body != nil {
		encoded, err := json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("encoding request body: %w", err)
		}

		bodyReader = bytes.NewReader(encoded)
	}

	httpReq, err := nethttp.NewRequestWithContext(ctx, req.Method, fullURL, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	httpReq.Header.Set("Accept", "application/json")

	if req.Body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	if c.userAgent != "" {
		httpReq.Header.Set("User-Agent", c.userAgent)
	}

	for key, value := range req.Headers {
		httpReq.Header.Set(key, value)
	}

	if c.tokens != nil {
		name, value, err := c.tokens.Header(ctx, forceAuth)
		if err != nil {
			return nil, err
		}

		httpReq.Header.Set(name, value)
	}

	if c.debug && c.logger != nil {
		c.logger.Debug("HTTP Request", map[string]interface{}{
			"method": req.Method,
			"url":    fullURL,
		})
	}

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}

	defer func() { _ = httpResp.Body.Close() }()

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	resp := &Response{
		StatusCode: httpResp.StatusCode,
		Headers:    httpResp.Header,
		Body:       body,
		RequestID:  httpResp.Header.Get(constants.HeaderRequestID),
	}

	if c.debug && c.logger != nil {
		c.logger.Debug("HTTP Response", map[string]interface{}{
			"method":      req.Method,
			"url":         fullURL,
			"status_code": resp.StatusCode,
			"request_id":  resp.RequestID,
		})
	}

	return resp, nil
}

// cacheKey identifies a GET response in the cache.
func cacheKey(req *Request) string {
	return req.Method + " " + req.Path + "?" + req.Query.Encode()
}

func (c *Client) cacheLookup(ctx context.Context, req *Request) (*Response, bool) {
	if c.cache == nil || req.Method != nethttp.MethodGet {
		return nil, false
	}

	entry, err := c.cache.Get(ctx, cacheKey(req))
	if err != nil {
		return nil, false
	}

	return &Response{
		StatusCode: nethttp.StatusOK,
		Headers:    nethttp.Header{},
		Body:       entry.Value,
	}, true
}

func (c *Client) cacheStore(ctx context.Context, req *Request, resp *Response) {
	if c.cache == nil {
		return
	}

	if req.Method == nethttp.MethodGet {
		if err := c.cache.Set(ctx, cacheKey(req), resp.Body, c.cacheTTL); err != nil && c.logger != nil {
			c.logger.Warn("failed to cache response", map[string]interface{}{"error": err.Error()})
		}

		return
	}

	// A write may invalidate any number of cached listings.
	if err := c.cache.Clear(ctx); err != nil && c.logger != nil {
		c.logger.Warn("failed to invalidate cache", map[string]interface{}{"error": err.Error()})
	}
}

// Get performs a GET request.
func (c *Client) Get(ctx context.Context, path string, query url.Values) (*Response, error) {
	return c.Do(ctx, &Request{Method: nethttp.MethodGet, Path: path, Query: query})
}

// Post performs a POST request.
func (c *Client) Post(ctx context.Context, path string, query url.Values, body interface{}) (*Response, error) {
	return c.Do(ctx, &Request{Method: nethttp.MethodPost, Path: path, Query: query, Body: body})
}

// Patch performs a PATCH request.
func (c *Client) Patch(ctx context.Context, path string, query url.Values, body interface{}) (*Response, error) {
	return c.Do(ctx, &Request{Method: nethttp.MethodPatch, Path: path, Query: query, Body: body})
}

// Delete performs a DELETE request.
func (c *Client) Delete(ctx context.Context, path string, query url.Values) (*Response, error) {
	return c.Do(ctx, &Request{Method: nethttp.MethodDelete, Path: path, Query: query})
}
