package allowlist

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/qudata/gatekeeper/internal/domain"
)

// DefaultMaxBodyBytes caps how much of the allow-list body is read.
const DefaultMaxBodyBytes int64 = 1 << 20

// Config configures a Client. Zero values fall back to the defaults
// documented on each field.
type Config struct {
	// URL is fetched with an unauthenticated GET.
	URL string

	// Timeout bounds each attempt. Default 10s.
	Timeout time.Duration

	// MaxRetries is the total number of attempts. Default 3.
	MaxRetries int

	// RetryDelay is the fixed pause between attempts. Zero retries immediately.
	RetryDelay time.Duration

	// Strict drops lines that are not SHA-256 hex digests.
	Strict bool

	// MaxBodyBytes caps the response size. Default DefaultMaxBodyBytes.
	MaxBodyBytes int64
}

func (c Config) withDefaults() Config {
	if c.Timeout <= 0 {
		c.Timeout = 10 * time.Second
	}
	if c.MaxRetries < 1 {
		c.MaxRetries = 3
	}
	if c.RetryDelay < 0 {
		c.RetryDelay = 0
	}
	if c.MaxBodyBytes <= 0 {
		c.MaxBodyBytes = DefaultMaxBodyBytes
	}
	return c
}

// Client fetches the allow-list with bounded, fixed-delay retries.
type Client struct {
	cfg    Config
	http   *retryablehttp.Client
	logger *slog.Logger
}

// NewClient creates an allow-list client for cfg.
func NewClient(cfg Config, logger *slog.Logger) *Client {
	cfg = cfg.withDefaults()
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	c := &Client{cfg: cfg, logger: logger}

	retryClient := retryablehttp.NewClient()
	retryClient.HTTPClient.Timeout = cfg.Timeout
	retryClient.RetryMax = cfg.MaxRetries - 1
	retryClient.RetryWaitMin = cfg.RetryDelay
	retryClient.RetryWaitMax = cfg.RetryDelay
	retryClient.Logger = logger
	retryClient.CheckRetry = checkRetry
	retryClient.Backoff = func(_, _ time.Duration, _ int, _ *http.Response) time.Duration {
		return cfg.RetryDelay
	}
	retryClient.RequestLogHook = func(_ retryablehttp.Logger, req *http.Request, attempt int) {
		logger.Debug("fetching allow-list", "url", req.URL.String(), "attempt", attempt+1, "max_attempts", cfg.MaxRetries)
	}
	retryClient.ErrorHandler = c.giveUp

	c.http = retryClient
	return c
}

// URL returns the allow-list location.
func (c *Client) URL() string {
	return c.cfg.URL
}

// Fetch downloads and parses the allow-list. Every failure is reported as
// *domain.NetworkUnavailableError; a failed fetch never yields a list.
func (c *Client) Fetch(ctx context.Context) (domain.AllowList, error) {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, c.cfg.URL, nil)
	if err != nil {
		return nil, &domain.NetworkUnavailableError{URL: c.cfg.URL, Err: fmt.Errorf("create request: %w", err)}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		var unavailable *domain.NetworkUnavailableError
		if errors.As(err, &unavailable) {
			return nil, unavailable
		}
		// Cancellation while waiting between attempts bypasses ErrorHandler.
		return nil, &domain.NetworkUnavailableError{URL: c.cfg.URL, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.cfg.MaxBodyBytes+1))
	if err != nil {
		return nil, &domain.NetworkUnavailableError{URL: c.cfg.URL, Err: fmt.Errorf("read response body: %w", err)}
	}
	if int64(len(body)) > c.cfg.MaxBodyBytes {
		return nil, &domain.NetworkUnavailableError{URL: c.cfg.URL, Err: fmt.Errorf("response body exceeds %d bytes", c.cfg.MaxBodyBytes)}
	}

	list, dropped := Parse(body, c.cfg.Strict)
	if dropped > 0 {
		c.logger.Warn("discarded malformed allow-list lines", "url", c.cfg.URL, "dropped", dropped)
	}
	c.logger.Info("allow-list loaded", "url", c.cfg.URL, "tokens", len(list))
	return list, nil
}

// checkRetry treats every transport error and every non-200 status as a
// failed attempt. Only cancellation of the caller's context stops early.
func checkRetry(ctx context.Context, resp *http.Response, err error) (bool, error) {
	if ctx.Err() != nil {
		return false, ctx.Err()
	}
	if err != nil {
		return true, nil
	}
	return resp.StatusCode != http.StatusOK, nil
}

func (c *Client) giveUp(resp *http.Response, err error, numTries int) (*http.Response, error) {
	if resp != nil {
		if err == nil && resp.StatusCode != http.StatusOK {
			err = &domain.StatusError{Code: resp.StatusCode}
		}
		resp.Body.Close()
	}
	if err == nil {
		err = errors.New("no response")
	}

	c.logger.Error("allow-list unavailable", "url", c.cfg.URL, "attempts", numTries, "err", err)
	return nil, &domain.NetworkUnavailableError{URL: c.cfg.URL, Attempts: numTries, Err: err}
}
