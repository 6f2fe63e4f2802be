package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/HarshalRajendraPatil/wcommerce-client/config"
	"github.com/HarshalRajendraPatil/wcommerce-client/internal/domain"
	"github.com/HarshalRajendraPatil/wcommerce-client/internal/session"
	"github.com/HarshalRajendraPatil/wcommerce-client/pkg/images"
	"github.com/HarshalRajendraPatil/wcommerce-client/pkg/logger"
)

// Hooks are the notification side effects of the transport. Both are optional
// and both are side effects only: the original error always propagates to the
// caller.
type Hooks struct {
	// OnSessionExpired fires once per teardown when a 401 arrives from any
	// endpoint other than login/register.
	OnSessionExpired func()
	// OnError surfaces a toast-worthy message for failed requests, unless the
	// request opted out via Silent().
	OnError func(message string)
}

// Client is the single point of egress for all server communication.
type Client struct {
	baseURL  string
	http     *http.Client
	session  *session.Store
	limiter  *rate.Limiter
	hooks    Hooks
	imageOpt images.Options

	// Resource services
	Auth       *AuthService
	Cart       *CartService
	Wishlist   *WishlistService
	Reviews    *ReviewService
	Coupons    *CouponService
	Categories *CategoryService
	Dashboard  *DashboardService
	Orders     *OrderService
}

func New(cfg *config.Config, sess *session.Store, hooks Hooks) *Client {
	c := &Client{
		baseURL: strings.TrimRight(cfg.APIBaseURL, "/"),
		http: &http.Client{
			Timeout: cfg.HTTPTimeout,
		},
		session: sess,
		limiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerSec), cfg.RequestBurst),
		hooks:   hooks,
		imageOpt: images.Options{
			MaxWidth: cfg.MaxImageWidth,
			Quality:  cfg.ImageQuality,
		},
	}

	c.Auth = &AuthService{client: c}
	c.Cart = &CartService{client: c}
	c.Wishlist = &WishlistService{client: c}
	c.Reviews = &ReviewService{client: c}
	c.Coupons = &CouponService{client: c}
	c.Categories = &CategoryService{client: c}
	c.Dashboard = &DashboardService{client: c}
	c.Orders = &OrderService{client: c}

	return c
}

// Session exposes the session store to callers above the transport.
func (c *Client) Session() *session.Store {
	return c.session
}

// --- Per-request options ---

type requestOptions struct {
	silent bool
}

type Option func(*requestOptions)

// Silent suppresses the OnError notification for this request. The error
// still propagates to the caller.
func Silent() Option {
	return func(o *requestOptions) { o.silent = true }
}

// authExemptPaths are the endpoints where a 401 means "bad credentials", not
// "session expired"; they must not trigger the global teardown.
var authExemptPaths = []string{"/auth/login", "/auth/register"}

func authExempt(path string) bool {
	for _, p := range authExemptPaths {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}

// do issues one JSON request and decodes the standard response envelope.
// body may be nil; the returned Response carries the raw data payload plus
// any pagination meta.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body interface{}, opts ...Option) (*domain.Response, error) {
	var reader io.Reader
	contentType := ""
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(raw)
		contentType = "application/json"
	}
	return c.roundTrip(ctx, method, path, query, reader, contentType, opts...)
}

// roundTrip is the shared request path for JSON and multipart calls.
func (c *Client) roundTrip(ctx context.Context, method, path string, query url.Values, body io.Reader, contentType string, opts ...Option) (*domain.Response, error) {
	options := requestOptions{}
	for _, opt := range opts {
		opt(&options)
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")

	requestID := uuid.NewString()
	req.Header.Set("X-Request-ID", requestID)

	// Attach bearer token once a session exists
	if token := c.session.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		logger.WithContext(ctx).Warn().Err(err).Str("path", path).Str("request_id", requestID).Msg("Request failed")
		c.notify(&options, FallbackMessage)
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	logger.APIRequest(method, path, resp.StatusCode, time.Since(start), requestID)

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		c.notify(&options, FallbackMessage)
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode == http.StatusUnauthorized && !authExempt(path) {
		// Global session teardown. The notification is a side effect; the
		// error still reaches the caller.
		if err := c.session.Clear(); err != nil {
			l := logger.WithRequestID(requestID)
			l.Error().Err(err).Msg("Failed to clear session after 401")
		}
		if c.hooks.OnSessionExpired != nil {
			c.hooks.OnSessionExpired()
		}
		return nil, &Error{Status: resp.StatusCode, Message: extractMessage(raw), Path: path}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &Error{Status: resp.StatusCode, Message: extractMessage(raw), Path: path}
		c.notify(&options, apiErr.Message)
		return nil, apiErr
	}

	envelope := &domain.Response{}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, envelope); err != nil {
			return nil, fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return envelope, nil
}

func (c *Client) notify(o *requestOptions, message string) {
	if o.silent || c.hooks.OnError == nil {
		return
	}
	c.hooks.OnError(message)
}

// extractMessage pulls the human-readable message out of an error body,
// falling back to the generic one.
func extractMessage(raw []byte) string {
	var envelope struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(raw, &envelope); err == nil {
		if envelope.Message != "" {
			return envelope.Message
		}
		if envelope.Error != "" {
			return envelope.Error
		}
	}
	return FallbackMessage
}

// decodeData unmarshals the envelope's data payload into out.
func decodeData(resp *domain.Response, out interface{}) error {
	if out == nil {
		return nil
	}
	if len(resp.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(resp.Data, out); err != nil {
		return fmt.Errorf("failed to decode response data: %w", err)
	}
	return nil
}
