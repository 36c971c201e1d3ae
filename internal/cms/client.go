package cms

import (
	"errors"
	"net/http"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

// ErrNotFound is returned when a CMS resource cannot be located.
var ErrNotFound = errors.New("cms: not found")

const (
	defaultContentDir   = "content"
	defaultFallbackLang = "en"
	defaultCacheTTL     = 5 * time.Minute
)

// Client provides read-only access to content pages, from a remote CMS when configured and
// from local markdown otherwise.
type Client struct {
	baseURL    string
	http       *http.Client
	contentDir string
	fallback   string
	ttl        time.Duration
	logger     *zap.Logger
	now        func() time.Time

	mu    sync.RWMutex
	cache map[string]cacheEntry
}

type cacheEntry struct {
	page    ContentPage
	expires time.Time
}

// Option configures a Client.
type Option func(*Client)

// WithContentDir sets the directory holding <kind>/<lang>/<slug>.md files.
func WithContentDir(dir string) Option {
	return func(c *Client) {
		if dir = strings.TrimSpace(dir); dir != "" {
			c.contentDir = dir
		}
	}
}

// WithFallbackLang sets the language tried when a page is missing in the requested one.
func WithFallbackLang(lang string) Option {
	return func(c *Client) {
		if lang = strings.ToLower(strings.TrimSpace(lang)); lang != "" {
			c.fallback = lang
		}
	}
}

// WithCacheTTL overrides how long fetched pages are kept in memory. Zero disables caching.
func WithCacheTTL(ttl time.Duration) Option {
	return func(c *Client) {
		if ttl >= 0 {
			c.ttl = ttl
		}
	}
}

// WithHTTPClient replaces the client used for remote fetches.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.http = h
		}
	}
}

// WithLogger attaches a logger for remote fetch failures.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewClient constructs a Client. An empty baseURL means local markdown only.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		http:       &http.Client{Timeout: 5 * time.Second},
		contentDir: defaultContentDir,
		fallback:   defaultFallbackLang,
		ttl:        defaultCacheTTL,
		logger:     zap.NewNop(),
		now:        time.Now,
		cache:      map[string]cacheEntry{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ContentDir returns the configured local content directory.
func (c *Client) ContentDir() string { return c.contentDir }

func (c *Client) cached(key string) (ContentPage, bool) {
	if c.ttl == 0 {
		return ContentPage{}, false
	}
	c.mu.RLock()
	entry, ok := c.cache[key]
	c.mu.RUnlock()
	if !ok || c.now().After(entry.expires) {
		return ContentPage{}, false
	}
	return entry.page, true
}

func (c *Client) store(key string, page ContentPage) {
	if c.ttl == 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cache[key] = cacheEntry{page: page, expires: c.now().Add(c.ttl)}
}

// Purge drops every cached page.
func (c *Client) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cache = map[string]cacheEntry{}
}
