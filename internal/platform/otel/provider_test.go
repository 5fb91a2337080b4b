package otel_test

import (
	"context"
	"testing"

	"github.com/louisbranch/invoicing/internal/platform/otel"
)

func TestSetupFromEnv(t *testing.T) {
	tests := []struct {
		name     string
		endpoint string
		enabled  string
	}{
		{name: "noop without endpoint", endpoint: "", enabled: "true"},
		{name: "noop when disabled", endpoint: "http://localhost:4318", enabled: "false"},
		// Non-routable address so nothing is exported.
		{name: "provider with endpoint", endpoint: "http://192.0.2.1:4318", enabled: "true"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv("INVOICING_OTEL_ENDPOINT", tc.endpoint)
			t.Setenv("INVOICING_OTEL_ENABLED", tc.enabled)

			shutdown, err := otel.Setup(context.Background(), "test")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if err := shutdown(context.Background()); err != nil {
				t.Fatalf("shutdown error: %v", err)
			}
		})
	}
}

func TestSetupRejectsMalformedEnabled(t *testing.T) {
	t.Setenv("INVOICING_OTEL_ENABLED", "sometimes")

	if _, err := otel.Setup(context.Background(), "test"); err == nil {
		t.Fatal("expected settings error")
	}
}

func TestSettingsActive(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		settings otel.Settings
		want     bool
	}{
		{name: "enabled with endpoint", settings: otel.Settings{Endpoint: "http://collector:4318", Enabled: true}, want: true},
		{name: "blank endpoint", settings: otel.Settings{Endpoint: "  ", Enabled: true}},
		{name: "disabled", settings: otel.Settings{Endpoint: "http://collector:4318"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := tc.settings.Active(); got != tc.want {
				t.Fatalf("Active() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestSetupWithSampleRatio(t *testing.T) {
	shutdown, err := otel.SetupWith(context.Background(), "ratio", otel.Settings{
		Endpoint: "http://192.0.2.1:4318",
		Enabled:  true,
		Ratio:    0.25,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown error: %v", err)
	}
}
