// Package postshelf serves a directory of blog posts over HTTP with Echo.
// Post metadata is scanned from disk and cached in memory for a fixed TTL;
// see the catalog package for the cache itself.
package postshelf

import (
	"errors"
	"fmt"
	"net/http"
	"os"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"

	"github.com/eringen/postshelf/catalog"
)

// App is the central postshelf application. It wires together the catalog,
// handlers and middleware.
type App struct {
	Config  SiteConfig
	Echo    *echo.Echo
	Posts   *catalog.Catalogue
	limiter *RateLimiter

	scanner      catalog.Scanner
	customRoutes []func(*App)
	staticDir    string
}

// New creates a new App with the given configuration. Routes are registered
// immediately so the App can be used as an http.Handler before Start.
func New(cfg SiteConfig, opts ...Option) *App {
	cfg.setDefaults()

	e := echo.New()
	e.HideBanner = true
	e.Logger.SetLevel(log.INFO)

	a := &App{
		Config: cfg,
		Echo:   e,
	}
	for _, opt := range opts {
		opt(a)
	}

	if a.scanner == nil {
		s := catalog.NewDirScanner(cfg.PostsDir)
		s.MetaFile = cfg.MetaFile
		s.ContentFile = cfg.ContentFile
		s.Logger = e.Logger
		a.scanner = s
	}
	a.Posts = catalog.NewCatalogue(catalog.NewCache(a.scanner, cfg.PostCacheTTL))
	if cfg.RateLimit > 0 {
		a.limiter = NewRateLimiter(cfg.RateLimit, rateLimitWindow)
	}

	a.setupMiddleware()
	a.setupRoutes()
	for _, fn := range a.customRoutes {
		fn(a)
	}
	return a
}

// Warm runs the first catalog scan. An unreadable posts directory is
// reported here rather than on the first request.
func (a *App) Warm() error {
	posts, err := a.Posts.List()
	if err != nil {
		return fmt.Errorf("postshelf: initial scan: %w", err)
	}
	a.Echo.Logger.Infof("catalog loaded: %d posts from %s", len(posts), a.Config.PostsDir)
	return nil
}

// Start validates the configuration, warms the catalog and starts the server.
func (a *App) Start() error {
	if a.Config.PostsDir == "" {
		return fmt.Errorf("postshelf: PostsDir is required")
	}
	if fi, err := os.Stat(a.Config.PostsDir); err != nil {
		return fmt.Errorf("postshelf: posts dir: %w", &catalog.FatalError{Root: a.Config.PostsDir, Err: err})
	} else if !fi.IsDir() {
		return fmt.Errorf("postshelf: posts dir %s is not a directory", a.Config.PostsDir)
	}
	if err := a.Warm(); err != nil {
		return err
	}
	if err := a.Echo.Start(a.Config.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (a *App) setupRoutes() {
	e := a.Echo

	var limit []echo.MiddlewareFunc
	if a.limiter != nil {
		limit = append(limit, a.limiter.Middleware)
	}
	e.GET("/blogs", a.handleList, limit...)
	e.GET("/blog/:id", a.handleContent, limit...)
	e.GET("/blogdata/:id", a.handleMetadata, limit...)
	e.GET("/blogview/:id", a.handleView, limit...)
	e.GET("/blogimage/:id", a.handleImage, limit...)

	e.GET("/feed.xml", a.handleFeed)
	e.GET("/sitemap.xml", a.handleSitemap)
	e.GET("/healthz", a.handleHealth)

	if a.staticDir != "" {
		e.Static("/", a.staticDir)
	}
}

// Close stops background work. Call this when the app is shutting down.
func (a *App) Close() error {
	if a.limiter != nil {
		a.limiter.Stop()
	}
	return a.Echo.Close()
}

// EnvOr returns the value of the environment variable key, or fallback if empty.
func EnvOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
