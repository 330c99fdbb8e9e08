package adapter

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/riskibarqy/league-stats/internal/platform/fetcher"
	"github.com/riskibarqy/league-stats/internal/platform/logging"
)

// Base carries what every concrete adapter needs: its platform name, the
// site root relative links resolve against, and the shared fetcher.
// Platform adapters embed it and implement the Scrape* methods.
type Base struct {
	platform string
	baseURL  *url.URL
	fetcher  *fetcher.Fetcher
	logger   *logging.Logger
}

func NewBase(platform, baseURL string, f *fetcher.Fetcher, logger *logging.Logger) (Base, error) {
	name := normalizePlatform(platform)
	if name == "" {
		return Base{}, ErrInvalidPlatform
	}
	if f == nil {
		return Base{}, fmt.Errorf("adapter %q: fetcher is required", name)
	}
	parsed, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return Base{}, fmt.Errorf("adapter %q: invalid base url %q", name, baseURL)
	}
	if logger == nil {
		logger = logging.Default()
	}

	return Base{
		platform: name,
		baseURL:  parsed,
		fetcher:  f,
		logger:   logger.Component("adapter").With("platform", name),
	}, nil
}

func (b Base) Platform() string {
	return b.platform
}

func (b Base) Logger() *logging.Logger {
	return b.logger
}

// ResolveURL turns a link found in a page into an absolute URL. Absolute
// refs are returned unchanged.
func (b Base) ResolveURL(ref string) string {
	ref = strings.TrimSpace(ref)
	if ref == "" || b.baseURL == nil {
		return ref
	}
	parsed, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	return b.baseURL.ResolveReference(parsed).String()
}

// FetchPage returns nil when the page could not be retrieved.
func (b Base) FetchPage(ctx context.Context, ref string, params url.Values) *fetcher.Document {
	return b.fetcher.Fetch(ctx, b.ResolveURL(ref), params)
}

func (b Base) FetchJSON(ctx context.Context, ref string, params url.Values, target any) bool {
	return b.fetcher.FetchJSON(ctx, b.ResolveURL(ref), params, target)
}

// Unusable reports a structurally unusable source document.
func (b Base) Unusable(format string, args ...any) error {
	return fmt.Errorf("%s: %s: %w", b.platform, fmt.Sprintf(format, args...), ErrUnusableSource)
}
