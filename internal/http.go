package internal

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"sync"
	"time"

	pkgerrs "github.com/jamesprial/go-stackexchange-api-wrapper/pkg/errors"
	"golang.org/x/time/rate"
)

// Client performs GET requests against the StackExchange API.
// Throttling is off unless a RateLimitConfig is supplied.
type Client struct {
	client    *http.Client
	UserAgent string
	logger    *slog.Logger
	parser    *Parser
	maxBody   int64

	limiter        *rate.Limiter
	mu             sync.Mutex
	forceWaitUntil time.Time
}

// RateLimitConfig controls how requests are throttled before reaching the API.
type RateLimitConfig struct {
	// RequestsPerSecond caps steady-state throughput. Defaults to 30 if zero.
	RequestsPerSecond float64
	// Burst allows short spikes above the steady-state rate. Defaults to 10 if zero.
	Burst int
}

// Response is a fully read HTTP response.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
	// URL is the URL of the request that produced the response, after redirects.
	URL string
}

const (
	DefaultRequestsPerSecond = 30
	DefaultRateLimitBurst    = 10

	// MaxResponseBytes bounds how much of a response body is read.
	MaxResponseBytes = 32 << 20

	logPreviewLength = 500
)

// ErrResponseTooLarge is reported when a body exceeds MaxResponseBytes.
var ErrResponseTooLarge = errors.New("response body exceeds size limit")

// NewClient returns a new StackExchange API client.
// If a nil httpClient is provided, http.DefaultClient will be used.
func NewClient(httpClient *http.Client, userAgent string, rateCfg *RateLimitConfig, logger *slog.Logger) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	c := &Client{
		client:    httpClient,
		UserAgent: userAgent,
		logger:    logger,
		parser:    NewParser(),
		maxBody:   MaxResponseBytes,
	}
	if rateCfg != nil {
		c.limiter = buildLimiter(*rateCfg)
	}

	return c
}

// SetMaxResponseBytes changes the body size limit. Non-positive values
// restore MaxResponseBytes.
func (c *Client) SetMaxResponseBytes(n int64) {
	if n <= 0 {
		n = MaxResponseBytes
	}
	c.maxBody = n
}

// NewRequest creates a GET request for rawURL with params merged into its query.
func (c *Client) NewRequest(ctx context.Context, rawURL string, params url.Values) (*http.Request, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, &pkgerrs.RequestError{Operation: "parse url", URL: rawURL, Err: err}
	}

	if len(params) > 0 {
		q := u.Query()
		for k, vs := range params {
			q[k] = append([]string(nil), vs...)
		}
		u.RawQuery = q.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, &pkgerrs.RequestError{Operation: "build request", URL: rawURL, Err: err}
	}

	req.Header.Set("Accept", "application/json")
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}

	return req, nil
}

// Get sends a GET request and reads the whole response. Errors from the
// underlying http.Client are returned unchanged. Non-2xx responses yield
// an *errors.APIError together with the response.
func (c *Client) Get(ctx context.Context, rawURL string, params url.Values) (*Response, error) {
	req, err := c.NewRequest(ctx, rawURL, params)
	if err != nil {
		return nil, err
	}

	if err := c.waitForRateLimit(ctx); err != nil {
		return nil, &pkgerrs.RequestError{Operation: "rate limit wait", URL: req.URL.String(), Err: err}
	}

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBody+1))
	if err != nil {
		return nil, err
	}
	if int64(len(body)) > c.maxBody {
		return nil, &pkgerrs.RequestError{Operation: "read body", URL: req.URL.String(), Err: ErrResponseTooLarge}
	}

	out := &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       body,
		URL:        req.URL.String(),
	}
	if resp.Request != nil && resp.Request.URL != nil {
		out.URL = resp.Request.URL.String()
	}

	if c.logger != nil {
		previewLen := len(body)
		if previewLen > logPreviewLength {
			previewLen = logPreviewLength
		}
		c.logger.Debug("stackexchange API response",
			"url", out.URL,
			"status", resp.StatusCode,
			"duration", time.Since(start),
			"response_preview", string(body[:previewLen]),
		)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &pkgerrs.APIError{StatusCode: resp.StatusCode, Message: http.StatusText(resp.StatusCode), URL: out.URL}
		if id, name, msg, ok := c.parser.ParseError(body); ok {
			apiErr.ErrorID, apiErr.ErrorName, apiErr.Message = id, name, msg
		}
		return out, apiErr
	}

	c.applyBackoff(body)

	return out, nil
}

func buildLimiter(cfg RateLimitConfig) *rate.Limiter {
	perSecond := cfg.RequestsPerSecond
	if perSecond <= 0 {
		perSecond = DefaultRequestsPerSecond
	}

	burst := cfg.Burst
	if burst <= 0 {
		burst = DefaultRateLimitBurst
	}

	return rate.NewLimiter(rate.Limit(perSecond), burst)
}

func (c *Client) waitForRateLimit(ctx context.Context) error {
	if c.limiter == nil {
		return nil
	}

	if err := c.waitForForcedDelay(ctx); err != nil {
		return err
	}

	return c.limiter.Wait(ctx)
}

func (c *Client) waitForForcedDelay(ctx context.Context) error {
	for {
		c.mu.Lock()
		waitUntil := c.forceWaitUntil
		c.mu.Unlock()

		if waitUntil.IsZero() {
			return nil
		}

		now := time.Now()
		if !now.Before(waitUntil) {
			c.clearForcedDelay(waitUntil)
			return nil
		}

		timer := time.NewTimer(waitUntil.Sub(now))
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
			c.clearForcedDelay(waitUntil)
		}
	}
}

func (c *Client) clearForcedDelay(previous time.Time) {
	c.mu.Lock()
	if previous.Equal(c.forceWaitUntil) {
		c.forceWaitUntil = time.Time{}
	}
	c.mu.Unlock()
}

// applyBackoff honours the "backoff" field of the response wrapper. Only
// active when throttling is configured.
func (c *Client) applyBackoff(body []byte) {
	if c.limiter == nil {
		return
	}

	w, err := c.parser.ParseWrapper(body)
	if err != nil || w.Backoff <= 0 {
		return
	}

	if c.logger != nil {
		c.logger.Debug("stackexchange API requested backoff", "seconds", w.Backoff)
	}
	c.deferRequests(time.Duration(w.Backoff) * time.Second)
}

func (c *Client) deferRequests(d time.Duration) {
	if d <= 0 {
		return
	}

	until := time.Now().Add(d)

	c.mu.Lock()
	if until.After(c.forceWaitUntil) {
		c.forceWaitUntil = until
	}
	c.mu.Unlock()
}
