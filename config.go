package spacetraveling

import "time"

// SiteConfig holds all configuration for a spacetraveling site.
type SiteConfig struct {
	Name        string // Site name (default "spacetraveling")
	URL         string // Canonical URL (default "http://localhost:3000")
	Description string // Site description for RSS and meta tags
	Author      string // Author name for structured data
	Locale      string // BCP 47 tag for dates (default "pt-BR")

	Addr string // Listen address (default ":3000")

	Endpoint     string        // Required: Prismic API endpoint, e.g. https://repo.cdn.prismic.io/api/v2
	AccessToken  string        // Prismic access token for private repositories
	Ref          string        // Pin queries to a release/preview ref instead of master
	DocumentType string        // Custom type holding posts (default "posts")
	PageSize     int           // Posts per listing page (default 5)
	FeedPageSize int           // Page size used when collecting the full feed (default 100)
	FetchTimeout time.Duration // Per-request CMS timeout (default 10s)

	// FeedCacheTTL keeps the collected feed between requests. Zero disables
	// the cache and every post page re-reads the feed.
	FeedCacheTTL time.Duration

	LoadMoreLimit int // Load-more requests per IP per minute (default 30)
}

func (c *SiteConfig) setDefaults() {
	if c.Name == "" {
		c.Name = "spacetraveling"
	}
	if c.URL == "" {
		c.URL = "http://localhost:3000"
	}
	if c.Locale == "" {
		c.Locale = "pt-BR"
	}
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.DocumentType == "" {
		c.DocumentType = "posts"
	}
	if c.PageSize <= 0 {
		c.PageSize = 5
	}
	if c.FeedPageSize <= 0 || c.FeedPageSize > 100 {
		c.FeedPageSize = 100
	}
	if c.FetchTimeout <= 0 {
		c.FetchTimeout = 10 * time.Second
	}
	if c.LoadMoreLimit <= 0 {
		c.LoadMoreLimit = 30
	}
}

// Option configures additional App behavior.
type Option func(*App)

// WithCustomRoutes registers additional routes on the Echo instance.
// The callback receives the App before the server starts.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}

// WithStaticDir sets the directory for user-owned static assets (default "public").
func WithStaticDir(dir string) Option {
	return func(a *App) {
		a.staticDir = dir
	}
}

// WithFetcher replaces the Prismic client, e.g. with a fake in tests.
func WithFetcher(f ContentFetcher) Option {
	return func(a *App) {
		a.Fetcher = f
	}
}
