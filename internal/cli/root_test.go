package cli

import (
	"strings"
	"testing"

	"github.com/bigbrotr/sitenav/internal/config"
)

func TestRootCommandNoArgsPrintsUsage(t *testing.T) {
	out, _, err := runRoot(t)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !strings.Contains(out, "Usage:") {
		t.Fatalf("expected usage output, got: %s", out)
	}
	for _, sub := range []string{"check", "build", "index", "diff", "config", "icons", "version"} {
		if !strings.Contains(out, sub) {
			t.Fatalf("expected help output to include %q", sub)
		}
	}
}

func TestRootRejectsInvalidLogLevel(t *testing.T) {
	_, _, err := runRoot(t, "--log-level", "verbose", "version")
	if err == nil || !strings.Contains(err.Error(), "invalid log level") {
		t.Fatalf("expected invalid log level error, got %v", err)
	}
}

func TestRootSiteFlagRequiresConfig(t *testing.T) {
	_, _, err := runRoot(t, "--site", "bigbrotr", "icons")
	if err == nil || !strings.Contains(err.Error(), "config file not found") {
		t.Fatalf("expected missing config error, got %v", err)
	}
}

func TestRootDebugLoggingGoesToStderr(t *testing.T) {
	_, configPath := writeWorkspace(t, "bigbrotr")
	t.Setenv(config.EnvConfigPath, configPath)

	out, errOut, err := runRoot(t, "--log-level", "debug", "check")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if strings.Contains(out, "level=DEBUG") {
		t.Fatalf("expected logs kept off stdout, got: %s", out)
	}
	if !strings.Contains(errOut, "level=DEBUG") || !strings.Contains(errOut, "site configuration built") {
		t.Fatalf("expected debug logs on stderr, got: %s", errOut)
	}
}

func TestParseLogLevel(t *testing.T) {
	for _, level := range []string{"", "debug", "INFO", "warn", "warning", "error"} {
		if _, err := parseLogLevel(level); err != nil {
			t.Fatalf("parseLogLevel(%q) error = %v", level, err)
		}
	}
	if _, err := parseLogLevel("trace"); err == nil {
		t.Fatalf("expected error for unknown level")
	}
}
