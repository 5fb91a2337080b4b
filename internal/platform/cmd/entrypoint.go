// Package cmd holds the startup steps shared by the invoicing commands:
// environment then flag parsing, and a telemetry-wrapped run loop.
package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/louisbranch/invoicing/internal/platform/config"
	"github.com/louisbranch/invoicing/internal/platform/otel"
	"github.com/louisbranch/invoicing/internal/platform/timeouts"
)

// Service names reported to tracing and logs.
const (
	ServiceSeed = "seed"
	ServiceWeb  = "web"
)

// RunOptions tunes RunWithTelemetryAndOptions.
type RunOptions struct {
	// ShutdownTimeout bounds the tracer flush; zero uses timeouts.Shutdown.
	ShutdownTimeout time.Duration
}

// ParseConfig fills cfg from its env tags. Call it before registering flags
// so flag defaults show the environment values.
func ParseConfig[T any](cfg *T) error {
	if cfg == nil {
		return errors.New("config target is required")
	}
	return config.ParseEnv(cfg)
}

// ParseArgs parses args into fs. A nil args slice parses as empty.
func ParseArgs(fs *flag.FlagSet, args []string) error {
	if fs == nil {
		return errors.New("flag parser is required")
	}
	if args == nil {
		args = []string{}
	}
	return fs.Parse(args)
}

// RunWithTelemetry runs fn with tracing configured for service.
func RunWithTelemetry(ctx context.Context, service string, run func(context.Context) error) error {
	return RunWithTelemetryAndOptions(ctx, service, RunOptions{}, run)
}

// RunWithTelemetryAndOptions runs fn with tracing configured for service and
// flushes pending spans once fn returns.
func RunWithTelemetryAndOptions(ctx context.Context, service string, options RunOptions, run func(context.Context) error) error {
	service = strings.TrimSpace(service)
	if service == "" {
		return errors.New("service name is required")
	}
	if run == nil {
		return errors.New("run function is required")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	shutdown, err := otel.Setup(ctx, service)
	if err != nil {
		return fmt.Errorf("setup telemetry: %w", err)
	}
	defer func() {
		timeout := options.ShutdownTimeout
		if timeout <= 0 {
			timeout = timeouts.Shutdown
		}
		flushCtx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		if err := shutdown(flushCtx); err != nil {
			log.Printf("service=%s otel shutdown: %v", service, err)
		}
	}()

	return run(ctx)
}
