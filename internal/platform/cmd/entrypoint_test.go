package cmd

import (
	"context"
	"errors"
	"flag"
	"testing"

	"github.com/louisbranch/storyfront/internal/platform/otel"
)

type testConfig struct {
	Address string `env:"CMD_TEST_ADDRESS" envDefault:"127.0.0.1:8080"`
	Mode    string `env:"CMD_TEST_MODE" envDefault:"server"`
}

func TestParseConfigReadsEnvironAndFlags(t *testing.T) {
	t.Parallel()

	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	cfgRef := testConfig{}
	if err := ParseConfig(&cfgRef, []string{"CMD_TEST_ADDRESS=env:9000", "CMD_TEST_MODE=env-mode"}); err != nil {
		t.Fatalf("load config defaults: %v", err)
	}
	fs.StringVar(&cfgRef.Address, "address", cfgRef.Address, "address")
	fs.StringVar(&cfgRef.Mode, "mode", cfgRef.Mode, "mode")

	if err := ParseArgs(fs, []string{"-address", "flag:9001"}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	if cfgRef.Address != "flag:9001" {
		t.Fatalf("Address = %q, want %q", cfgRef.Address, "flag:9001")
	}
	if cfgRef.Mode != "env-mode" {
		t.Fatalf("Mode = %q, want %q", cfgRef.Mode, "env-mode")
	}
}

func TestParseConfigDefaultsWithEmptyEnviron(t *testing.T) {
	t.Parallel()

	cfgRef := testConfig{}
	if err := ParseConfig(&cfgRef, []string{}); err != nil {
		t.Fatalf("ParseConfig() error = %v", err)
	}
	if cfgRef.Address != "127.0.0.1:8080" {
		t.Fatalf("Address = %q, want %q", cfgRef.Address, "127.0.0.1:8080")
	}
}

func TestParseConfigRejectsNilTarget(t *testing.T) {
	t.Parallel()

	if err := ParseConfig[testConfig](nil, nil); err == nil {
		t.Fatal("expected nil target error")
	}
}

func TestParseArgsRejectsNilParser(t *testing.T) {
	t.Parallel()

	if err := ParseArgs(nil, []string{}); err == nil {
		t.Fatal("expected parse args to reject nil parser")
	}
}

func TestRunWithTelemetryRejectsMissingInputs(t *testing.T) {
	t.Parallel()

	if err := RunWithTelemetry(context.Background(), "", otel.Config{}, RunOptions{}, func(context.Context) error { return nil }); err == nil {
		t.Fatal("expected missing service error")
	}
	if err := RunWithTelemetry(context.Background(), ServiceWeb, otel.Config{}, RunOptions{}, nil); err == nil {
		t.Fatal("expected missing run function error")
	}
}

func TestRunWithTelemetryReturnsRunError(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	err := RunWithTelemetry(context.Background(), ServiceWeb, otel.Config{}, RunOptions{}, func(context.Context) error { return boom })
	if !errors.Is(err, boom) {
		t.Fatalf("RunWithTelemetry() error = %v, want %v", err, boom)
	}
}
