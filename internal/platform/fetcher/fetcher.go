package fetcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/league-stats/internal/platform/logging"
	"github.com/riskibarqy/league-stats/internal/platform/resilience"
	"github.com/valyala/bytebufferpool"
)

const defaultMaxBodyBytes = 8 << 20

var (
	errStatus       = crerr.New("unexpected response status")
	errBodyTooLarge = crerr.New("response body exceeds limit")
)

type Config struct {
	Timeout        time.Duration
	MaxRetries     int
	RetryDelay     time.Duration
	RateLimitDelay time.Duration
	UserAgent      string
	MaxBodyBytes   int64
	CircuitBreaker resilience.CircuitBreakerConfig
}

func DefaultConfig() Config {
	return Config{
		Timeout:        30 * time.Second,
		MaxRetries:     3,
		RetryDelay:     5 * time.Second,
		RateLimitDelay: time.Second,
		UserAgent:      "league-stats/1.0",
		MaxBodyBytes:   defaultMaxBodyBytes,
		CircuitBreaker: resilience.DefaultCircuitBreakerConfig(),
	}
}

// Fetcher retrieves external documents for adapters. It never returns an
// error: exhausted retries yield a nil document and the caller decides.
type Fetcher struct {
	client  *http.Client
	cfg     Config
	breaker *resilience.CircuitBreaker
	logger  *logging.Logger
	sleep   func(ctx context.Context, d time.Duration) error
}

func New(cfg Config, client *http.Client, logger *logging.Logger) *Fetcher {
	defaults := DefaultConfig()
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaults.Timeout
	}
	if cfg.MaxRetries < 1 {
		cfg.MaxRetries = defaults.MaxRetries
	}
	if cfg.RetryDelay < 0 {
		cfg.RetryDelay = 0
	}
	if cfg.RateLimitDelay < 0 {
		cfg.RateLimitDelay = 0
	}
	if strings.TrimSpace(cfg.UserAgent) == "" {
		cfg.UserAgent = defaults.UserAgent
	}
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = defaults.MaxBodyBytes
	}
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}
	if logger == nil {
		logger = logging.Default()
	}
	logger = logger.Component("fetcher")

	breaker := resilience.NewCircuitBreakerFromConfig(cfg.CircuitBreaker)
	if breaker != nil {
		breaker.OnStateChange(func(from, to resilience.CircuitState) {
			logger.Warn("fetch circuit breaker state changed", "from", from, "to", to)
		})
	}

	return &Fetcher{
		client:  client,
		cfg:     cfg,
		breaker: breaker,
		logger:  logger,
		sleep:   sleepContext,
	}
}

// Fetch retrieves an HTML document. Returns nil once every attempt has failed.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string, params url.Values) *Document {
	fullURL, body, ok := f.retrieve(ctx, rawURL, params, "text/html,application/xhtml+xml")
	if !ok {
		return nil
	}

	doc, err := NewDocumentFromBytes(fullURL, body)
	if err != nil {
		f.logger.ErrorContext(ctx, "parse fetched document failed", "url", fullURL, "error", err)
		return nil
	}
	return doc
}

// FetchJSON decodes a JSON response into target and reports success.
func (f *Fetcher) FetchJSON(ctx context.Context, rawURL string, params url.Values, target any) bool {
	fullURL, body, ok := f.retrieve(ctx, rawURL, params, "application/json")
	if !ok {
		return false
	}

	if err := sonic.Unmarshal(body, target); err != nil {
		f.logger.ErrorContext(ctx, "decode fetched json failed", "url", fullURL, "error", err)
		return false
	}
	return true
}

func (f *Fetcher) retrieve(ctx context.Context, rawURL string, params url.Values, accept string) (string, []byte, bool) {
	fullURL, err := buildURL(rawURL, params)
	if err != nil {
		f.logger.ErrorContext(ctx, "invalid fetch url", "url", rawURL, "error", err)
		return rawURL, nil, false
	}

	maxAttempts := f.cfg.MaxRetries
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err := f.sleep(ctx, f.cfg.RateLimitDelay); err != nil {
			f.logger.WarnContext(ctx, "fetch cancelled", "url", fullURL, "attempt", attempt, "error", err)
			return fullURL, nil, false
		}

		var body []byte
		started := time.Now()
		err := f.breaker.Execute(func() error {
			var callErr error
			body, callErr = f.do(ctx, fullURL, accept)
			return callErr
		})
		if err == nil {
			f.logger.InfoContext(ctx, "fetch succeeded",
				"url", fullURL,
				"attempt", attempt,
				"bytes", len(body),
				"duration_ms", time.Since(started).Milliseconds(),
			)
			return fullURL, body, true
		}
		if errors.Is(err, resilience.ErrCircuitOpen) {
			f.logger.WarnContext(ctx, "fetch rejected by circuit breaker", "url", fullURL, "attempt", attempt)
			return fullURL, nil, false
		}
		if errors.Is(err, errBodyTooLarge) {
			f.logger.ErrorContext(ctx, "fetch rejected oversized body",
				"url", fullURL,
				"attempt", attempt,
				"max_body_bytes", f.cfg.MaxBodyBytes,
			)
			return fullURL, nil, false
		}

		f.logger.WarnContext(ctx, "fetch attempt failed",
			"url", fullURL,
			"attempt", attempt,
			"max_attempts", maxAttempts,
			"error", err,
		)
		if attempt == maxAttempts {
			break
		}
		backoff := f.cfg.RetryDelay * time.Duration(attempt)
		if err := f.sleep(ctx, backoff); err != nil {
			f.logger.WarnContext(ctx, "fetch cancelled", "url", fullURL, "attempt", attempt, "error", err)
			return fullURL, nil, false
		}
	}

	f.logger.ErrorContext(ctx, "fetch failed after retries", "url", fullURL, "attempts", maxAttempts)
	return fullURL, nil, false
}

func (f *Fetcher) do(ctx context.Context, fullURL, accept string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, crerr.Wrap(err, "build request")
	}
	req.Header.Set("User-Agent", f.cfg.UserAgent)
	req.Header.Set("Accept", accept)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, crerr.Wrap(err, "send request")
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, crerr.Wrapf(errStatus, "status=%d", resp.StatusCode)
	}

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)
	// One byte past the limit tells a full body apart from a truncated one.
	if _, err := buf.ReadFrom(io.LimitReader(resp.Body, f.cfg.MaxBodyBytes+1)); err != nil {
		return nil, crerr.Wrap(err, "read response body")
	}
	if int64(buf.Len()) > f.cfg.MaxBodyBytes {
		return nil, crerr.Wrapf(errBodyTooLarge, "limit=%d", f.cfg.MaxBodyBytes)
	}

	return append([]byte(nil), buf.B...), nil
}

func buildURL(rawURL string, params url.Values) (string, error) {
	parsed, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return "", err
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", fmt.Errorf("unsupported scheme %q", parsed.Scheme)
	}
	if parsed.Host == "" {
		return "", fmt.Errorf("empty host")
	}
	if len(params) > 0 {
		query := parsed.Query()
		for key, values := range params {
			for _, v := range values {
				query.Add(key, v)
			}
		}
		parsed.RawQuery = query.Encode()
	}
	return parsed.String(), nil
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
