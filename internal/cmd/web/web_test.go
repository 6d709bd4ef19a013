package web

import (
	"context"
	"flag"
	"io"
	"path/filepath"
	"testing"
	"time"

	"github.com/louisbranch/storyfront/internal/platform/logging"
)

func TestParseConfigDefaults(t *testing.T) {
	t.Parallel()

	fs := flag.NewFlagSet("web", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, nil, []string{})
	if err != nil {
		t.Fatalf("ParseConfig() error = %v", err)
	}
	if cfg.HTTPAddr != "localhost:8080" {
		t.Fatalf("HTTPAddr = %q, want %q", cfg.HTTPAddr, "localhost:8080")
	}
	if cfg.ContentDB != "data/content.db" {
		t.Fatalf("ContentDB = %q, want %q", cfg.ContentDB, "data/content.db")
	}
	if cfg.ConsentDB != "data/consent.db" {
		t.Fatalf("ConsentDB = %q, want %q", cfg.ConsentDB, "data/consent.db")
	}
	if cfg.Analytics.Host != "https://us.i.posthog.com" {
		t.Fatalf("Analytics.Host = %q, want %q", cfg.Analytics.Host, "https://us.i.posthog.com")
	}
	if cfg.Analytics.Enabled() {
		t.Fatal("expected analytics disabled without a key")
	}
	if cfg.Logging.Level != "info" {
		t.Fatalf("Logging.Level = %q, want %q", cfg.Logging.Level, "info")
	}
	if cfg.Development() {
		t.Fatal("expected production by default")
	}
}

func TestParseConfigReadsEnviron(t *testing.T) {
	t.Parallel()

	fs := flag.NewFlagSet("web", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, nil, []string{
		"STORYFRONT_WEB_HTTP_ADDR=0.0.0.0:9000",
		"STORYFRONT_POSTHOG_KEY=phc_test",
		"STORYFRONT_GOOGLE_TAG_ID=G-TEST",
		"STORYFRONT_ENV=development",
		"STORYFRONT_TRUST_FORWARDED_PROTO=true",
		"STORYFRONT_LOG_FORMAT=json",
	})
	if err != nil {
		t.Fatalf("ParseConfig() error = %v", err)
	}
	if cfg.HTTPAddr != "0.0.0.0:9000" {
		t.Fatalf("HTTPAddr = %q, want %q", cfg.HTTPAddr, "0.0.0.0:9000")
	}
	if cfg.Analytics.APIKey != "phc_test" {
		t.Fatalf("Analytics.APIKey = %q, want %q", cfg.Analytics.APIKey, "phc_test")
	}
	if cfg.GoogleTagID != "G-TEST" {
		t.Fatalf("GoogleTagID = %q, want %q", cfg.GoogleTagID, "G-TEST")
	}
	if !cfg.Development() {
		t.Fatal("expected development environment")
	}
	if !cfg.TrustForwardedProto {
		t.Fatal("expected forwarded proto to be trusted")
	}
	if cfg.Logging.Format != "json" {
		t.Fatalf("Logging.Format = %q, want %q", cfg.Logging.Format, "json")
	}
}

func TestParseConfigFlagsOverrideEnviron(t *testing.T) {
	t.Parallel()

	fs := flag.NewFlagSet("web", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, []string{"-http-addr", "127.0.0.1:9002"}, []string{"STORYFRONT_WEB_HTTP_ADDR=0.0.0.0:9000"})
	if err != nil {
		t.Fatalf("ParseConfig() error = %v", err)
	}
	if cfg.HTTPAddr != "127.0.0.1:9002" {
		t.Fatalf("HTTPAddr = %q, want %q", cfg.HTTPAddr, "127.0.0.1:9002")
	}
}

func TestParseConfigRejectsUnknownFlag(t *testing.T) {
	t.Parallel()

	fs := flag.NewFlagSet("web", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	if _, err := ParseConfig(fs, []string{"-nope"}, []string{}); err == nil {
		t.Fatal("expected unknown flag error")
	}
}

func TestRunRejectsInvalidLogLevel(t *testing.T) {
	t.Parallel()

	err := Run(context.Background(), Config{Logging: logging.Config{Level: "loud"}})
	if err == nil {
		t.Fatal("expected invalid log level error")
	}
}

func TestRunServesUntilCanceled(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	err := Run(ctx, Config{
		HTTPAddr:  "127.0.0.1:0",
		ContentDB: filepath.Join(dir, "content", "content.db"),
		ConsentDB: filepath.Join(dir, "consent", "consent.db"),
		Logging:   logging.Config{Level: "error"},
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
}

func TestRunReportsMissingFixtures(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	err := Run(context.Background(), Config{
		HTTPAddr:        "127.0.0.1:0",
		ContentDB:       filepath.Join(dir, "content.db"),
		ContentFixtures: filepath.Join(dir, "missing.yaml"),
		ConsentDB:       filepath.Join(dir, "consent.db"),
		Logging:         logging.Config{Level: "error"},
	})
	if err == nil {
		t.Fatal("expected missing fixtures error")
	}
}
