package config

import (
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"
)

func TestNewFromReaderOverridesDefaults(t *testing.T) {
	cfg, err := NewFromReader(strings.NewReader(`
endpoint: https://tinyhouse.example.com/api
stripePublishableKey: pk_test_123
stripeClientID: ca_123
requestTimeout: 5s
breaker:
  maxRequests: 2
  timeout: 30s
  consecutiveFailures: 5
`))
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Endpoint != "https://tinyhouse.example.com/api" {
		t.Fatalf("unexpected endpoint %s", cfg.Endpoint)
	}
	if cfg.RequestTimeout != 5*time.Second {
		t.Fatalf("unexpected request timeout %s", cfg.RequestTimeout)
	}
	if cfg.Breaker.MaxRequests != 2 || cfg.Breaker.ConsecutiveFailures != 5 {
		t.Fatalf("unexpected breaker settings %+v", cfg.Breaker)
	}
	if cfg.StripeClientID != "ca_123" {
		t.Fatalf("unexpected stripe client id %s", cfg.StripeClientID)
	}
	if cfg.LogLevel != Default.LogLevel {
		t.Fatalf("expected default log level to survive, got %s", cfg.LogLevel)
	}
}

func TestNewFromReaderValidates(t *testing.T) {
	testcases := map[string]string{
		"bad endpoint":  "endpoint: not a url\n",
		"bad log level": "logLevel: chatty\n",
		"not yaml":      "endpoint: [\n",
	}
	for name, input := range testcases {
		if _, err := NewFromReader(strings.NewReader(input)); err == nil {
			t.Fatalf("%s: expected an error", name)
		}
	}
}

func TestNewFromFileMissing(t *testing.T) {
	cfg, err := NewFromFile(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Endpoint != Default.Endpoint {
		t.Fatalf("expected default endpoint but got %s", cfg.Endpoint)
	}
}

func TestDefaultBrowserFollowsPlatform(t *testing.T) {
	expected := map[string]string{"darwin": "open", "windows": "explorer"}[runtime.GOOS]
	if expected == "" {
		expected = "xdg-open"
	}
	if b := defaultBrowser(); b != expected {
		t.Fatalf("expected %s on %s but got %s", expected, runtime.GOOS, b)
	}
}
