package postshelf

import (
	"time"

	"github.com/eringen/postshelf/catalog"
)

// SiteConfig holds all configuration for a postshelf server.
type SiteConfig struct {
	Name        string // Site name for feeds (default "Blog")
	URL         string // Canonical URL (default "http://localhost:8000")
	Description string // Feed description

	Addr     string // Listen address (default ":8000")
	PostsDir string // Required: directory whose subdirectories are posts

	MetaFile    string // Metadata file per post (default "meta.json")
	ContentFile string // Content file per post (default "post.md")

	PostCacheTTL time.Duration // Catalog cache TTL (default 5min)

	RateLimit   int      // Requests per IP per minute, 0 disables (default 0)
	CORSOrigins []string // Allowed origins for the JSON API, empty disables CORS
}

func (c *SiteConfig) setDefaults() {
	if c.Name == "" {
		c.Name = "Blog"
	}
	if c.URL == "" {
		c.URL = "http://localhost:8000"
	}
	if c.Addr == "" {
		c.Addr = ":8000"
	}
	if c.MetaFile == "" {
		c.MetaFile = catalog.DefaultMetaFile
	}
	if c.ContentFile == "" {
		c.ContentFile = catalog.DefaultContentFile
	}
	if c.PostCacheTTL == 0 {
		c.PostCacheTTL = catalog.DefaultTTL
	}
}

// Option configures additional App behavior.
type Option func(*App)

// WithCustomRoutes registers additional routes on the Echo instance.
// The callback runs after the built-in routes are registered.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}

// WithStaticDir serves files under dir at the site root. Post routes take
// precedence over files with the same path.
func WithStaticDir(dir string) Option {
	return func(a *App) {
		a.staticDir = dir
	}
}

// WithScanner replaces the filesystem scanner, mainly for tests.
func WithScanner(s catalog.Scanner) Option {
	return func(a *App) {
		a.scanner = s
	}
}
