// Package web parses configuration for and runs the browser-facing site.
package web

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/louisbranch/storyfront/internal/platform/analytics"
	entrypoint "github.com/louisbranch/storyfront/internal/platform/cmd"
	"github.com/louisbranch/storyfront/internal/platform/kvstore"
	kvsqlite "github.com/louisbranch/storyfront/internal/platform/kvstore/sqlite"
	"github.com/louisbranch/storyfront/internal/platform/logging"
	"github.com/louisbranch/storyfront/internal/platform/otel"
	"github.com/louisbranch/storyfront/internal/services/web"
	"github.com/louisbranch/storyfront/internal/services/web/content"
	contentsqlite "github.com/louisbranch/storyfront/internal/services/web/content/sqlite"
	"github.com/louisbranch/storyfront/internal/services/web/platform/observability"
	"github.com/louisbranch/storyfront/internal/services/web/platform/requestmeta"
)

// Config holds the web command configuration.
type Config struct {
	HTTPAddr            string `env:"STORYFRONT_WEB_HTTP_ADDR" envDefault:"localhost:8080"`
	SiteURL             string `env:"STORYFRONT_SITE_URL"`
	ContentDB           string `env:"STORYFRONT_CONTENT_DB" envDefault:"data/content.db"`
	ContentFixtures     string `env:"STORYFRONT_CONTENT_FIXTURES"`
	ConsentDB           string `env:"STORYFRONT_CONSENT_DB" envDefault:"data/consent.db"`
	GoogleTagID         string `env:"STORYFRONT_GOOGLE_TAG_ID"`
	Env                 string `env:"STORYFRONT_ENV" envDefault:"production"`
	TrustForwardedProto bool   `env:"STORYFRONT_TRUST_FORWARDED_PROTO"`

	Analytics analytics.Config
	Logging   logging.Config
	Tracing   otel.Config
}

// Development reports whether the process runs with development diagnostics.
func (c Config) Development() bool {
	return strings.EqualFold(strings.TrimSpace(c.Env), "development")
}

// ParseConfig loads env values from environ and then applies flags.
func ParseConfig(fs *flag.FlagSet, args []string, environ []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg, environ); err != nil {
		return Config{}, err
	}

	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP listen address")
	fs.StringVar(&cfg.SiteURL, "site-url", cfg.SiteURL, "Public site URL used for captured page URLs")
	fs.StringVar(&cfg.ContentDB, "content-db", cfg.ContentDB, "SQLite content database path")
	fs.StringVar(&cfg.ContentFixtures, "content-fixtures", cfg.ContentFixtures, "YAML content fixtures to seed (embedded sample when empty)")
	fs.StringVar(&cfg.ConsentDB, "consent-db", cfg.ConsentDB, "SQLite consent database path")
	fs.StringVar(&cfg.GoogleTagID, "google-tag-id", cfg.GoogleTagID, "Google tag id for gtag consent mode")
	fs.StringVar(&cfg.Env, "env", cfg.Env, "Deployment environment")
	fs.StringVar(&cfg.Logging.Level, "log-level", cfg.Logging.Level, "Log level")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run starts the web server and blocks until ctx is canceled.
func Run(ctx context.Context, cfg Config) error {
	logger, err := logging.New(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceWeb, cfg.Tracing, entrypoint.RunOptions{Logger: logger}, func(ctx context.Context) error {
		return serve(ctx, cfg, logger)
	})
}

func serve(ctx context.Context, cfg Config, logger *slog.Logger) error {
	store, err := openContent(ctx, cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := ensureDir(cfg.ConsentDB); err != nil {
		return err
	}
	consentStore, err := kvsqlite.Open(ctx, cfg.ConsentDB)
	if err != nil {
		return fmt.Errorf("open consent store: %w", err)
	}
	defer consentStore.Close()

	client, err := analytics.NewClient(cfg.Analytics, analytics.WithLogger(logger))
	if err != nil {
		return fmt.Errorf("init analytics: %w", err)
	}
	defer func() {
		if err := client.Close(); err != nil {
			logger.Warn("close analytics", "error", err)
		}
	}()

	server, err := web.NewServer(ctx, web.Config{
		HTTPAddr:     cfg.HTTPAddr,
		SiteURL:      cfg.SiteURL,
		GoogleTagID:  cfg.GoogleTagID,
		Content:      store,
		Origin:       kvstore.NewOrigin(consentStore),
		Analytics:    client,
		Metrics:      observability.NewMetrics(),
		Logger:       logger,
		SchemePolicy: requestmeta.SchemePolicy{TrustForwardedProto: cfg.TrustForwardedProto},
		Development:  cfg.Development(),
	})
	if err != nil {
		return fmt.Errorf("init web server: %w", err)
	}
	defer server.Close()

	logger.Info("web listening", "addr", server.Addr(), "analytics", cfg.Analytics.Enabled())
	if err := server.ListenAndServe(ctx); err != nil {
		return fmt.Errorf("serve web: %w", err)
	}
	return nil
}

func openContent(ctx context.Context, cfg Config) (*contentsqlite.Store, error) {
	fixtures, err := loadFixtures(cfg.ContentFixtures)
	if err != nil {
		return nil, err
	}
	if err := ensureDir(cfg.ContentDB); err != nil {
		return nil, err
	}
	store, err := contentsqlite.Open(ctx, cfg.ContentDB)
	if err != nil {
		return nil, fmt.Errorf("open content store: %w", err)
	}
	if err := store.Seed(ctx, fixtures); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("seed content: %w", err)
	}
	return store, nil
}

func loadFixtures(path string) (content.Fixtures, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		fixtures, err := content.SampleFixtures()
		if err != nil {
			return content.Fixtures{}, fmt.Errorf("load sample fixtures: %w", err)
		}
		return fixtures, nil
	}
	fixtures, err := content.LoadFixtures(path)
	if err != nil {
		return content.Fixtures{}, fmt.Errorf("load fixtures %s: %w", path, err)
	}
	return fixtures, nil
}

func ensureDir(dbPath string) error {
	dir := filepath.Dir(strings.TrimSpace(dbPath))
	if dir == "" || dir == "." {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	return nil
}
