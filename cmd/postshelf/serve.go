package main

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/eringen/postshelf"
	"github.com/eringen/postshelf/catalog"
)

var serveCfg postshelf.SiteConfig

var (
	staticDir   string
	corsOrigins []string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long: `Start the HTTP server. The posts directory is scanned once at startup;
an unreadable posts directory is a startup error.

Routes:
  GET /blogs            all post metadata keyed by id
  GET /blogdata/:id     metadata of one post
  GET /blog/:id         raw post content
  GET /blogview/:id     post content rendered as HTML
  GET /blogimage/:id    post cover image as JPEG (?w= to shrink)
  GET /feed.xml         RSS feed
  GET /sitemap.xml      sitemap
  GET /healthz          catalog status`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := serveCfg
		cfg.PostsDir = postsDir
		cfg.CORSOrigins = corsOrigins

		var opts []postshelf.Option
		if staticDir != "" {
			opts = append(opts, postshelf.WithStaticDir(staticDir))
		}
		app := postshelf.New(cfg, opts...)
		defer app.Close()

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		go func() {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			_ = app.Echo.Shutdown(shutdownCtx)
		}()

		err := app.Start()
		if errors.Is(err, catalog.ErrFatalConfig) {
			return fmt.Errorf("%w (does the posts directory exist?)", err)
		}
		return err
	},
}

func init() {
	f := serveCmd.Flags()
	f.StringVar(&serveCfg.Addr, "addr", postshelf.EnvOr("ADDR", ":8000"), "listen address")
	f.StringVar(&serveCfg.URL, "url", postshelf.EnvOr("SITE_URL", "http://localhost:8000"), "canonical site URL used in feeds")
	f.StringVar(&serveCfg.Name, "name", postshelf.EnvOr("SITE_NAME", "Blog"), "site name used in feeds")
	f.StringVar(&serveCfg.Description, "description", postshelf.EnvOr("SITE_DESCRIPTION", ""), "site description used in feeds")
	f.DurationVar(&serveCfg.PostCacheTTL, "ttl", envDuration("POST_CACHE_TTL", catalog.DefaultTTL), "how long a scanned catalog is served before rescanning")
	f.IntVar(&serveCfg.RateLimit, "rate-limit", envInt("RATE_LIMIT", 0), "requests per IP per minute on post routes, 0 disables")
	f.StringVar(&staticDir, "static", postshelf.EnvOr("STATIC_DIR", ""), "directory of static files served at /")
	f.StringSliceVar(&corsOrigins, "cors-origin", nil, "origin allowed to call the API (repeatable)")
}
