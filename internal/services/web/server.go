// Package web hosts the browser-facing site.
package web

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/louisbranch/storyfront/internal/platform/analytics"
	"github.com/louisbranch/storyfront/internal/platform/kvstore"
	"github.com/louisbranch/storyfront/internal/platform/otel"
	"github.com/louisbranch/storyfront/internal/platform/timeouts"
	webapp "github.com/louisbranch/storyfront/internal/services/web/app"
	"github.com/louisbranch/storyfront/internal/services/web/content"
	module "github.com/louisbranch/storyfront/internal/services/web/module"
	"github.com/louisbranch/storyfront/internal/services/web/modules/authors"
	"github.com/louisbranch/storyfront/internal/services/web/modules/blog"
	"github.com/louisbranch/storyfront/internal/services/web/modules/categories"
	consentmodule "github.com/louisbranch/storyfront/internal/services/web/modules/consent"
	"github.com/louisbranch/storyfront/internal/services/web/modules/home"
	"github.com/louisbranch/storyfront/internal/services/web/modules/pages"
	"github.com/louisbranch/storyfront/internal/services/web/platform/consentgate"
	"github.com/louisbranch/storyfront/internal/services/web/platform/httpx"
	"github.com/louisbranch/storyfront/internal/services/web/platform/observability"
	"github.com/louisbranch/storyfront/internal/services/web/platform/pagerender"
	"github.com/louisbranch/storyfront/internal/services/web/platform/requestmeta"
	"github.com/louisbranch/storyfront/internal/services/web/routepath"
	webstatic "github.com/louisbranch/storyfront/internal/services/web/static"
)

// Config defines startup inputs for the web service.
type Config struct {
	HTTPAddr    string
	SiteURL     string
	GoogleTagID string
	Content     content.Source
	// Origin holds consent choices. Nil keeps them in memory.
	Origin       *kvstore.Origin
	Analytics    *analytics.Client
	Metrics      *observability.Metrics
	Logger       *slog.Logger
	SchemePolicy requestmeta.SchemePolicy
	PromptDelay  time.Duration
	Development  bool
}

// Server hosts the web HTTP surface and lifecycle.
type Server struct {
	httpAddr   string
	httpServer *http.Server
}

// DefaultModules returns the site's feature modules. The pages module owns
// the root subtree and answers every path the others leave unclaimed.
func DefaultModules(deps module.Dependencies) []module.Module {
	return []module.Module{
		home.New(deps),
		blog.New(deps),
		authors.New(deps),
		categories.New(deps),
		consentmodule.New(deps),
		pages.New(deps),
	}
}

// NewHandler builds the root handler from the default modules.
func NewHandler(cfg Config) (http.Handler, error) {
	return newHandler(cfg, nil)
}

func newHandler(cfg Config, shutdown <-chan struct{}) (http.Handler, error) {
	if cfg.Content == nil {
		return nil, errors.New("content source is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	gate := consentgate.New(consentgate.Config{
		Origin:       cfg.Origin,
		Analytics:    cfg.Analytics,
		SiteURL:      cfg.SiteURL,
		SchemePolicy: cfg.SchemePolicy,
		PromptDelay:  cfg.PromptDelay,
		Development:  cfg.Development,
		Logger:       logger,
	})
	deps := module.Dependencies{
		Content: cfg.Content,
		Gate:    gate,
		Metrics: cfg.Metrics,
		Logger:  logger,
		Pages: pagerender.New(pagerender.Config{
			Gate:        gate,
			Metrics:     cfg.Metrics,
			Logger:      logger,
			GoogleTagID: strings.TrimSpace(cfg.GoogleTagID),
		}),
		SchemePolicy: cfg.SchemePolicy,
		Shutdown:     shutdown,
	}
	h, err := webapp.Compose(webapp.ComposeInput{Modules: DefaultModules(deps)})
	if err != nil {
		return nil, err
	}

	rootMux := http.NewServeMux()
	rootMux.Handle(routepath.StaticPrefix, http.StripPrefix(routepath.StaticPrefix, http.FileServer(http.FS(webstatic.FS))))
	rootMux.HandleFunc(routepath.Health, handleHealth)
	if cfg.Metrics != nil {
		rootMux.Handle(routepath.Metrics, cfg.Metrics.Handler())
	}
	rootMux.Handle(routepath.Root, h)
	return httpx.Chain(rootMux,
		httpx.RecoverPanic(logger),
		httpx.RequestID(),
		otel.Middleware("web"),
		observability.RequestLogger(logger),
		cfg.Metrics.Middleware(),
	), nil
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		httpx.MethodNotAllowed("GET, HEAD")(w, r)
		return
	}
	_ = httpx.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// NewServer validates config and constructs a web server. Event streams
// stay open, so the server sets no write timeout and instead ends them when
// shutdown begins.
func NewServer(_ context.Context, cfg Config) (*Server, error) {
	httpAddr := strings.TrimSpace(cfg.HTTPAddr)
	if httpAddr == "" {
		return nil, errors.New("http address is required")
	}
	shutdown := make(chan struct{})
	handler, err := newHandler(cfg, shutdown)
	if err != nil {
		return nil, fmt.Errorf("compose web handler: %w", err)
	}
	httpServer := &http.Server{
		Addr:              httpAddr,
		Handler:           handler,
		ReadHeaderTimeout: timeouts.ReadHeader,
	}
	httpServer.RegisterOnShutdown(sync.OnceFunc(func() { close(shutdown) }))
	return &Server{
		httpAddr:   httpAddr,
		httpServer: httpServer,
	}, nil
}

// Addr returns the configured listen address.
func (s *Server) Addr() string {
	if s == nil {
		return ""
	}
	return s.httpAddr
}

// ListenAndServe serves HTTP traffic until context cancellation or server stop.
func (s *Server) ListenAndServe(ctx context.Context) error {
	if s == nil {
		return errors.New("web server is nil")
	}
	if ctx == nil {
		return errors.New("context is required")
	}

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- s.httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeouts.Shutdown)
		err := s.httpServer.Shutdown(shutdownCtx)
		cancel()
		if err != nil {
			return fmt.Errorf("shutdown web http server: %w", err)
		}
		return nil
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve web http: %w", err)
	}
}

// Close closes open server resources.
func (s *Server) Close() {
	if s == nil || s.httpServer == nil {
		return
	}
	_ = s.httpServer.Close()
}
