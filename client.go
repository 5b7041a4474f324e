package breeze

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/buger/jsonparser"

	"github.com/gobreeze/breeze/cache"
	"github.com/gobreeze/breeze/profile"
)

// DefaultTimeout bounds each API request.
const DefaultTimeout = 60 * time.Second

// Client is a typed wrapper for the Breeze ChMS REST API. All methods
// issue a single GET request; there is no retry or rate limiting.
// A Client is safe for concurrent use.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	userAgent  string
	log        *slog.Logger
	metrics    *Metrics

	// detailsCache memoizes PersonDetails responses when configured
	// via WithDetailsCache.
	detailsCache *cache.Cache[string, *profile.Raw]
}

// Option configures the Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client, typically for tests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// WithLogger sets the logger used for request tracing. Requests log
// at debug level.
func WithLogger(log *slog.Logger) Option {
	return func(c *Client) {
		c.log = log
	}
}

// WithDetailsCache enables an LRU cache for PersonDetails lookups,
// holding at most capacity entries.
func WithDetailsCache(capacity int) Option {
	return func(c *Client) {
		c.detailsCache = cache.New[string, *profile.Raw](capacity)
	}
}

// New creates a Client for the given Breeze subdomain URL and API key.
// The URL must be the account's https://<subdomain>.breezechms.com
// address.
func New(baseURL, apiKey string, opts ...Option) (*Client, error) {
	if !strings.HasPrefix(baseURL, "https://") || !strings.Contains(baseURL, ".breezechms.") {
		return nil, badRequest("breeze_url must look like https://subdomain.breezechms.com, got %q", baseURL)
	}
	if apiKey == "" {
		return nil, badRequest("an api_key is required")
	}

	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: DefaultTimeout},
		userAgent:  defaultUserAgent,
		log:        slog.Default(),
		metrics:    NewMetrics(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// NewFromConfig creates a Client from a loaded configuration.
func NewFromConfig(cfg *Config, opts ...Option) (*Client, error) {
	if cfg == nil {
		return nil, badRequest("nil config")
	}
	return New(cfg.BreezeURL, cfg.APIKey, opts...)
}

// Metrics returns the client's request counters.
func (c *Client) Metrics() *Metrics {
	return c.metrics
}

// get issues one API request and decodes the response body into out
// (skipped when out is nil). The response envelope is checked first:
// Breeze flags most failures inside a 200 body.
func (c *Client) get(ctx context.Context, endpoint, command string, p params, out any) error {
	u := c.baseURL + "/api/" + endpoint
	if command != "" {
		u += "/" + command
	}
	query, err := p.encode()
	if err != nil {
		return err
	}
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("breeze: building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Api-Key", c.apiKey)
	req.Header.Set("User-Agent", c.userAgent)

	c.log.Debug("breeze request", "endpoint", endpoint, "command", command)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.metrics.RecordRequest(endpoint, time.Since(start), false)
		return fmt.Errorf("breeze: %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.metrics.RecordRequest(endpoint, time.Since(start), false)
		return fmt.Errorf("breeze: %s: reading response: %w", endpoint, err)
	}

	ok := resp.StatusCode == http.StatusOK && requestSucceeded(body)
	c.metrics.RecordRequest(endpoint, time.Since(start), ok)
	if !ok {
		return &APIError{
			Endpoint: endpoint,
			Command:  command,
			Status:   resp.StatusCode,
			Message:  errorMessage(body),
		}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("breeze: %s: decoding response: %w", endpoint, err)
	}
	return nil
}

// requestSucceeded inspects a response body for Breeze's failure
// markers without committing to a shape: objects fail when they carry
// errors or an errorCode and no success flag; bare false fails;
// anything else is data.
func requestSucceeded(body []byte) bool {
	body = []byte(strings.TrimSpace(string(body)))
	if len(body) == 0 {
		return false
	}
	switch body[0] {
	case '{':
		if success, err := jsonparser.GetBoolean(body, "success"); err == nil {
			return success
		}
		if s, err := jsonparser.GetString(body, "success"); err == nil {
			return s != "" && s != "0" && s != "false"
		}
		if _, _, _, err := jsonparser.Get(body, "errors"); err == nil {
			return false
		}
		if _, _, _, err := jsonparser.Get(body, "errorCode"); err == nil {
			return false
		}
		return true
	case 'f': // bare false
		return false
	default:
		return true
	}
}

// errorMessage digs a human-readable failure reason out of a response
// body, best effort.
func errorMessage(body []byte) string {
	if msg, err := jsonparser.GetString(body, "errors"); err == nil {
		return msg
	}
	if raw, _, _, err := jsonparser.Get(body, "errors"); err == nil {
		return string(raw)
	}
	if msg, err := jsonparser.GetString(body, "errorCode"); err == nil {
		return msg
	}
	const limit = 200
	s := strings.TrimSpace(string(body))
	if len(s) > limit {
		s = s[:limit] + "..."
	}
	return s
}
