// Package spacetraveling serves a Prismic-backed blog with Go, Echo, and templ.
// It renders the paginated listing, single posts with reading time and
// previous/next navigation, RSS, and a sitemap, and can export the whole
// site as static files.
//
// Templates are supplied through ViewFuncs; DefaultViews returns the
// bundled html/template set.
package spacetraveling

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"time"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/eringen/spacetraveling/content"
	"github.com/eringen/spacetraveling/feed"
	"github.com/eringen/spacetraveling/logger"
	"github.com/eringen/spacetraveling/prismic"
	"github.com/eringen/spacetraveling/views"
)

// ViewFuncs holds the components the handlers render. Any nil entry falls
// back to the bundled view of the same name.
type ViewFuncs struct {
	Home        func(p views.HomePage) templ.Component
	MorePosts   func(p views.MorePostsPage) templ.Component
	Post        func(p views.PostPage) templ.Component
	Loading     func(site views.SiteConfig) templ.Component
	NotFound    func(site views.SiteConfig) templ.Component
	ServerError func(site views.SiteConfig) templ.Component
}

// DefaultViews returns the bundled templates.
func DefaultViews() ViewFuncs {
	return ViewFuncs{
		Home:        views.Home,
		MorePosts:   views.MorePosts,
		Post:        views.Post,
		Loading:     views.Loading,
		NotFound:    views.NotFound,
		ServerError: views.ServerError,
	}
}

func (v *ViewFuncs) fillDefaults() {
	d := DefaultViews()
	if v.Home == nil {
		v.Home = d.Home
	}
	if v.MorePosts == nil {
		v.MorePosts = d.MorePosts
	}
	if v.Post == nil {
		v.Post = d.Post
	}
	if v.Loading == nil {
		v.Loading = d.Loading
	}
	if v.NotFound == nil {
		v.NotFound = d.NotFound
	}
	if v.ServerError == nil {
		v.ServerError = d.ServerError
	}
}

// App is the central spacetraveling application. It wires together the CMS
// client, feed cache, handlers, middleware, and templates.
type App struct {
	Config  SiteConfig
	Echo    *echo.Echo
	Fetcher ContentFetcher
	Cache   *FeedCache
	Views   ViewFuncs
	Log     *zap.SugaredLogger

	moreLimiter  *RateLimiter
	customRoutes []func(*App)
	staticDir    string
	ready        bool
}

// New creates a new App with the given configuration and view functions.
func New(cfg SiteConfig, v ViewFuncs, opts ...Option) *App {
	cfg.setDefaults()
	v.fillDefaults()

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	a := &App{
		Config:    cfg,
		Echo:      e,
		Views:     v,
		Log:       logger.L,
		staticDir: "public",
	}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// WithLogger sets the logger used by the app and its Prismic client.
func WithLogger(l *zap.SugaredLogger) Option {
	return func(a *App) {
		a.Log = l
	}
}

// Setup creates the CMS client, cache, middleware, and routes. Start and
// Build call it; tests call it to drive a.Echo through httptest.
func (a *App) Setup() error {
	if a.ready {
		return nil
	}
	if a.Fetcher == nil {
		if a.Config.Endpoint == "" {
			return errors.New("spacetraveling: Endpoint is required")
		}
		client, err := prismic.New(a.Config.Endpoint,
			prismic.WithAccessToken(a.Config.AccessToken),
			prismic.WithRef(a.Config.Ref),
			prismic.WithHTTPClient(&http.Client{Timeout: a.Config.FetchTimeout}),
			prismic.WithLogger(a.Log),
		)
		if err != nil {
			return fmt.Errorf("spacetraveling: init prismic: %w", err)
		}
		a.Fetcher = client
	}

	a.Cache = NewFeedCache(a.collectFeed, a.Config.FeedCacheTTL)
	a.moreLimiter = NewRateLimiter(a.Config.LoadMoreLimit, time.Minute)

	a.setupMiddleware()
	a.setupRoutes()

	for _, fn := range a.customRoutes {
		fn(a)
	}

	a.ready = true
	return nil
}

// Start sets the app up and serves until Shutdown is called.
func (a *App) Start() error {
	if err := a.Setup(); err != nil {
		return err
	}
	a.Log.Infow("listening", "addr", a.Config.Addr, "endpoint", a.Config.Endpoint)
	if err := a.Echo.Start(a.Config.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops the HTTP server, waiting for in-flight requests until ctx ends.
func (a *App) Shutdown(ctx context.Context) error {
	return a.Echo.Shutdown(ctx)
}

func (a *App) setupRoutes() {
	e := a.Echo

	// Bundled assets are served under /public/ and fall through to the
	// user's static dir for anything else.
	embeddedFS, _ := fs.Sub(EmbeddedAssets, "embedded")
	embeddedHandler := echo.WrapHandler(http.StripPrefix("/public/", http.FileServer(http.FS(embeddedFS))))
	for _, name := range embeddedAssetNames() {
		e.GET("/public/"+name, embeddedHandler)
	}

	e.Static("/public", a.staticDir)
	e.GET("/favicon.svg", handleFavicon)
	e.GET("/robots.txt", a.handleRobots)

	e.GET("/sitemap.xml", a.handleSitemap)
	e.GET("/feed.xml", a.handleFeed)
	e.GET("/", a.handleHome)
	e.GET("/posts/", a.handleMorePosts)
	e.GET("/post/:uid/", a.handlePost)
}

// Close releases background resources. Call this when the app is shutting down.
func (a *App) Close() error {
	if a.moreLimiter != nil {
		a.moreLimiter.Close()
	}
	return nil
}

// collectFeed walks every listing page, newest first.
func (a *App) collectFeed(ctx context.Context) ([]content.Post, error) {
	first, err := a.Fetcher.QueryByType(ctx, a.Config.DocumentType, content.QueryOptions{PageSize: a.Config.FeedPageSize})
	if err != nil {
		return nil, err
	}
	return feed.Collect(ctx, a.Fetcher, first)
}

func (a *App) site() views.SiteConfig {
	return views.SiteConfig{
		Name:        a.Config.Name,
		URL:         a.Config.URL,
		Description: a.Config.Description,
		Author:      a.Config.Author,
		Locale:      a.Config.Locale,
	}
}
