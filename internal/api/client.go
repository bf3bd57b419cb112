package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/tidwall/gjson"
	"golang.org/x/time/rate"

	"github.com/five82/foodbites/internal/metrics"
)

// Backend defines the endpoints foodbites uses.
// This interface is implemented by *Client and can be used for testing.
type Backend interface {
	FetchFoods(ctx context.Context, query FoodQuery) ([]Food, error)
	FetchProfile(ctx context.Context) (Profile, error)
	FetchMyOrders(ctx context.Context) ([]Order, error)
	SearchRestaurants(ctx context.Context, term string) ([]Restaurant, error)
	ImageURL(path string) string
}

// Ensure Client implements Backend at compile time.
var _ Backend = (*Client)(nil)

// SessionGuard supplies the bearer token and is told when the backend
// rejects it.
type SessionGuard interface {
	Token() string
	Invalidate(reason string)
}

// RequestOptions tune a single Request call.
type RequestOptions struct {
	Query   url.Values
	Auth    bool
	Timeout time.Duration
	NoCache bool
}

// Client talks to the food-ordering backend.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
	session   SessionGuard
	limiter   *rate.Limiter
	log       zerolog.Logger
}

// Option customises a Client.
type Option func(*Client)

// WithSession wires the credential store used for bearer auth and
// invalid-token handling.
func WithSession(g SessionGuard) Option { return func(c *Client) { c.session = g } }

// WithLogger sets the request logger.
func WithLogger(l zerolog.Logger) Option { return func(c *Client) { c.log = l } }

// WithRateLimit paces outgoing requests. rps <= 0 disables pacing.
func WithRateLimit(rps float64, burst int) Option {
	return func(c *Client) {
		if rps <= 0 {
			c.limiter = nil
			return
		}
		if burst <= 0 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(h *http.Client) Option { return func(c *Client) { c.http = h } }

const (
	defaultAPIBase   = "localhost:5000"
	defaultUserAgent = "foodbites/0.1"
	foodsTimeout     = 10 * time.Second
	maxBodyBytes     = 10 << 20
)

// NewClient builds a Client for the backend rooted at baseURL.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	base, err := parseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	// No client-wide timeout: only calls that set RequestOptions.Timeout
	// are bounded.
	c := &Client{
		baseURL:   base,
		http:      &http.Client{},
		userAgent: defaultUserAgent,
		log:       zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the normalized backend root.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// FetchFoods retrieves the menu, filtered server-side by the present fields.
func (c *Client) FetchFoods(ctx context.Context, query FoodQuery) ([]Food, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	values := url.Values{}
	if query.Cuisine != "" {
		values.Set("cuisine", query.Cuisine)
	}
	if query.Search != "" {
		values.Set("search", query.Search)
	}
	var payload []Food
	err := c.Request(ctx, http.MethodGet, "/api/foods", RequestOptions{
		Query:   values,
		Timeout: foodsTimeout,
		NoCache: true,
	}, &payload)
	if err != nil {
		return nil, err
	}
	return payload, nil
}

// FetchProfile retrieves the signed-in user's profile.
func (c *Client) FetchProfile(ctx context.Context) (Profile, error) {
	if c == nil {
		return Profile{}, fmt.Errorf("client is nil")
	}
	var payload Profile
	if err := c.Request(ctx, http.MethodGet, "/api/users/profile", RequestOptions{Auth: true}, &payload); err != nil {
		return Profile{}, err
	}
	return payload, nil
}

// FetchMyOrders retrieves the signed-in user's orders.
func (c *Client) FetchMyOrders(ctx context.Context) ([]Order, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	var payload []Order
	if err := c.Request(ctx, http.MethodGet, "/api/orders/my-orders", RequestOptions{Auth: true}, &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// SearchRestaurants retrieves restaurants matching term.
func (c *Client) SearchRestaurants(ctx context.Context, term string) ([]Restaurant, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	values := url.Values{}
	values.Set("search", term)
	var payload []Restaurant
	if err := c.Request(ctx, http.MethodGet, "/api/restaurants", RequestOptions{Query: values}, &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// ImageURL resolves an image path from the backend against the base URL.
// Absolute URLs pass through; an empty path stays empty.
func (c *Client) ImageURL(path string) string {
	path = strings.TrimSpace(path)
	if path == "" {
		return ""
	}
	ref, err := url.Parse(path)
	if err != nil {
		return ""
	}
	if ref.IsAbs() {
		return ref.String()
	}
	if !strings.HasPrefix(ref.Path, "/") {
		ref.Path = "/" + ref.Path
	}
	return c.baseURL.ResolveReference(ref).String()
}

// Request issues one call against the backend and decodes the JSON body into
// dest (when non-nil). Non-2xx responses return *APIError. A response that
// matches the invalid-token signature also invalidates the session, whoever
// the caller is.
func (c *Client) Request(ctx context.Context, method, path string, opts RequestOptions, dest any) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("wait for rate limiter: %w", err)
		}
	}

	rel := &url.URL{Path: path}
	if len(opts.Query) > 0 {
		rel.RawQuery = opts.Query.Encode()
	}
	reqURL := c.baseURL.ResolveReference(rel)
	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-ID", requestID)
	if opts.NoCache {
		req.Header.Set("Cache-Control", "no-cache")
		req.Header.Set("Pragma", "no-cache")
		req.Header.Set("Expires", "0")
	}
	if opts.Auth && c.session != nil {
		if token := c.session.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		metrics.ObserveRequest(path, 0, time.Since(start))
		c.log.Warn().Err(err).
			Str("method", method).
			Str("path", path).
			Str("request_id", requestID).
			Msg("request failed")
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	elapsed := time.Since(start)
	metrics.ObserveRequest(path, resp.StatusCode, elapsed)
	c.log.Info().
		Str("method", method).
		Str("path", path).
		Str("query", rel.RawQuery).
		Int("status", resp.StatusCode).
		Dur("elapsed", elapsed).
		Str("request_id", requestID).
		Msg("api request")
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{
			Status:  resp.StatusCode,
			Message: gjson.GetBytes(body, "message").String(),
			Path:    rel.Path,
		}
		c.intercept(apiErr)
		return apiErr
	}
	if dest == nil {
		return nil
	}
	if err := json.Unmarshal(body, dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *Client) intercept(apiErr *APIError) {
	if !apiErr.InvalidSession() || c.session == nil {
		return
	}
	metrics.RecordInvalidation()
	c.log.Warn().Int("status", apiErr.Status).Str("path", apiErr.Path).Msg("session invalidated by backend")
	c.session.Invalidate(apiErr.Message)
}

func parseBaseURL(baseURL string) (*url.URL, error) {
	trimmed := strings.TrimSpace(baseURL)
	if trimmed == "" {
		trimmed = defaultAPIBase
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api_base %q: %w", baseURL, err)
	}
	u.Path = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
