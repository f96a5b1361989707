package wakatime

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/matzehuels/wakacards/pkg/cache"
	"github.com/matzehuels/wakacards/pkg/errors"
)

// DefaultBaseURL is the WakaTime API base.
const DefaultBaseURL = "https://wakatime.com/api/v1"

// requestTimeout is the fixed per-request timeout.
const requestTimeout = 30 * time.Second

// Cache keys for the two payloads.
const (
	statsCacheKey  = "wakatime:stats:last_7_days"
	colorsCacheKey = "wakatime:program_languages"
)

// Client fetches stats and language metadata from the WakaTime API.
// Responses are cached through the provided cache; pass a NullCache to
// disable caching entirely.
type Client struct {
	http    *http.Client
	cache   cache.Cache
	baseURL string
	apiKey  string
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API base URL. Used by tests.
func WithBaseURL(url string) Option {
	return func(c *Client) { c.baseURL = url }
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// NewClient creates a WakaTime API client authenticated with the raw key.
// Pass nil for ca to disable response caching.
func NewClient(apiKey string, ca cache.Cache, opts ...Option) *Client {
	if ca == nil {
		ca = cache.NewNullCache()
	}
	c := &Client{
		http:    &http.Client{Timeout: requestTimeout},
		cache:   ca,
		baseURL: DefaultBaseURL,
		apiKey:  apiKey,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Stats fetches the last-7-days aggregate stats.
// If refresh is true, the cache is bypassed.
func (c *Client) Stats(ctx context.Context, refresh bool) (*StatsResponse, error) {
	stats, _, err := c.StatsWithCacheInfo(ctx, refresh)
	return stats, err
}

// StatsWithCacheInfo fetches the last-7-days aggregate stats and reports
// whether the payload came from cache.
func (c *Client) StatsWithCacheInfo(ctx context.Context, refresh bool) (*StatsResponse, bool, error) {
	var env statsEnvelope
	hit, err := c.cached(ctx, statsCacheKey, cache.TTLStats, refresh, &env, func() error {
		return c.get(ctx, c.baseURL+"/users/current/stats/last_7_days", &env)
	})
	if err != nil {
		return nil, false, err
	}
	return &env.Data, hit, nil
}

// LanguageColors fetches the language color catalog as a name→color map.
// If refresh is true, the cache is bypassed.
func (c *Client) LanguageColors(ctx context.Context, refresh bool) (ColorMap, error) {
	colors, _, err := c.LanguageColorsWithCacheInfo(ctx, refresh)
	return colors, err
}

// LanguageColorsWithCacheInfo fetches the language color catalog and reports
// whether the payload came from cache.
func (c *Client) LanguageColorsWithCacheInfo(ctx context.Context, refresh bool) (ColorMap, bool, error) {
	var env languagesEnvelope
	hit, err := c.cached(ctx, colorsCacheKey, cache.TTLColors, refresh, &env, func() error {
		return c.get(ctx, c.baseURL+"/program_languages", &env)
	})
	if err != nil {
		return nil, false, err
	}
	return toColorMap(env.Data), hit, nil
}

// cached retrieves a value from cache or executes fetch and caches the result.
// The fetch function should populate v; on success, v is stored in the cache.
// The returned bool reports a cache hit.
func (c *Client) cached(ctx context.Context, key string, ttl time.Duration, refresh bool, v any, fetch func() error) (bool, error) {
	if !refresh {
		if data, hit, err := c.cache.Get(ctx, key); err == nil && hit {
			if json.Unmarshal(data, v) == nil {
				return true, nil
			}
		}
	}
	if err := fetch(); err != nil {
		return false, err
	}
	if data, err := json.Marshal(v); err == nil {
		_ = c.cache.Set(ctx, key, data, ttl)
	}
	return false, nil
}

// get performs an authenticated GET and JSON-decodes the response into v.
func (c *Client) get(ctx context.Context, url string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Basic "+c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		if isTimeout(err) {
			return errors.Wrap(errors.ErrCodeTimeout, err, "request to %s timed out", url)
		}
		return errors.Wrap(errors.ErrCodeNetwork, err, "request to %s failed", url)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp.StatusCode); err != nil {
		return err
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "decode response from %s", url)
	}
	return nil
}

// checkStatus maps non-2xx responses to structured errors.
// Every failure is fatal to the run: there is no retry policy.
func checkStatus(code int) error {
	switch {
	case code >= 200 && code < 300:
		return nil
	case code == http.StatusUnauthorized:
		return errors.New(errors.ErrCodeUnauthorized, "invalid API key (status %d)", code)
	case code == http.StatusForbidden:
		return errors.New(errors.ErrCodeForbidden, "access denied (status %d)", code)
	case code == http.StatusNotFound:
		return errors.New(errors.ErrCodeNotFound, "endpoint not found (status %d)", code)
	default:
		return errors.New(errors.ErrCodeNetwork, "unexpected status %d", code)
	}
}

// isTimeout reports whether err represents a timeout.
func isTimeout(err error) bool {
	var ne net.Error
	if stderrors.As(err, &ne) && ne.Timeout() {
		return true
	}
	return stderrors.Is(err, context.DeadlineExceeded)
}

// WriteJSON saves a JSON payload to path, creating parent directories.
// Used by the fetch command to dump payloads for offline rendering.
func WriteJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}

// ReadStats loads a previously dumped stats payload from disk.
// Accepts either the bare data object or the full {"data": ...} envelope.
func ReadStats(path string) (*StatsResponse, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "stats file %s", path)
		}
		return nil, err
	}

	var env statsEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "decode stats file %s", path)
	}
	if len(env.Data.Languages) > 0 || len(env.Data.Projects) > 0 || env.Data.HumanReadableTotal != "" {
		return &env.Data, nil
	}

	var stats StatsResponse
	if err := json.Unmarshal(data, &stats); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "decode stats file %s", path)
	}
	return &stats, nil
}
