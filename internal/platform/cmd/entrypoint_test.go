package cmd

import (
	"context"
	"errors"
	"flag"
	"testing"
)

type testConfig struct {
	DBPath string `env:"INVOICING_CMD_TEST_DB_PATH" envDefault:"data/test.db"`
	Addr   string `env:"INVOICING_CMD_TEST_ADDR" envDefault:"127.0.0.1:8080"`
}

func TestParseConfigReadsEnvThenFlagsOverride(t *testing.T) {
	t.Setenv("INVOICING_CMD_TEST_DB_PATH", "env.db")
	t.Setenv("INVOICING_CMD_TEST_ADDR", "env:9000")

	var cfg testConfig
	if err := ParseConfig(&cfg); err != nil {
		t.Fatalf("load config defaults: %v", err)
	}
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	fs.StringVar(&cfg.DBPath, "db-path", cfg.DBPath, "db path")
	fs.StringVar(&cfg.Addr, "http-addr", cfg.Addr, "address")

	if err := ParseArgs(fs, []string{"-http-addr", "flag:9001"}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	if cfg.Addr != "flag:9001" {
		t.Fatalf("addr = %q, want flag value", cfg.Addr)
	}
	if cfg.DBPath != "env.db" {
		t.Fatalf("db path = %q, want env value", cfg.DBPath)
	}
}

func TestParseConfigRejectsNilTarget(t *testing.T) {
	if err := ParseConfig[testConfig](nil); err == nil {
		t.Fatal("expected nil target error")
	}
}

func TestParseArgsRejectsNilParser(t *testing.T) {
	if err := ParseArgs(nil, []string{}); err == nil {
		t.Fatal("expected parse args to reject nil parser")
	}
}

func TestRunWithTelemetryRejectsMissingInputs(t *testing.T) {
	if err := RunWithTelemetry(context.Background(), "", func(context.Context) error { return nil }); err == nil {
		t.Fatal("expected missing service error")
	}
	if err := RunWithTelemetry(context.Background(), ServiceWeb, nil); err == nil {
		t.Fatal("expected missing run function error")
	}
}

func TestRunWithTelemetryReturnsRunError(t *testing.T) {
	t.Setenv("INVOICING_OTEL_ENDPOINT", "")

	want := errors.New("boom")
	called := false
	err := RunWithTelemetry(context.Background(), ServiceSeed, func(context.Context) error {
		called = true
		return want
	})
	if !called {
		t.Fatal("expected run function to be called")
	}
	if !errors.Is(err, want) {
		t.Fatalf("err = %v, want %v", err, want)
	}
}
