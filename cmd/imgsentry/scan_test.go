package main

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/nao1215/imgsentry/internal/config"
	"github.com/nao1215/imgsentry/internal/log"
)

// TestNewScanCmd tests the scan command creation.
func TestNewScanCmd(t *testing.T) {
	t.Parallel()

	cmd := NewScanCmd()

	t.Run("has correct use", func(t *testing.T) {
		t.Parallel()
		if cmd.Use != "scan" {
			t.Errorf("expected use 'scan', got %q", cmd.Use)
		}
	})

	t.Run("has expected flags", func(t *testing.T) {
		t.Parallel()
		for _, name := range []string{
			"base-url", "path", "target-ip",
			"sender", "recipient", "region", "dry-run",
			"page-timeout", "image-timeout", "concurrency", "user-agent",
			"config", "json", "markdown", "output",
		} {
			if cmd.Flags().Lookup(name) == nil {
				t.Errorf("expected flag %q", name)
			}
		}
	})

	t.Run("default timeouts match config defaults", func(t *testing.T) {
		t.Parallel()
		flag := cmd.Flags().Lookup("page-timeout")
		if flag == nil {
			t.Fatal("expected page-timeout flag")
		}
		if flag.DefValue != config.DefaultPageTimeout.String() {
			t.Errorf("expected default %q, got %q", config.DefaultPageTimeout, flag.DefValue)
		}
	})
}

// TestBuildConfig tests config assembly from flags.
func TestBuildConfig(t *testing.T) {
	t.Parallel()

	t.Run("flags populate config", func(t *testing.T) {
		t.Parallel()

		cmd := NewScanCmd()
		for flag, value := range map[string]string{
			"base-url":      "https://www.example.com",
			"path":          "/,/about",
			"target-ip":     "203.0.113.7",
			"sender":        "alerts@example.com",
			"recipient":     "ops@example.com",
			"region":        "us-east-2",
			"page-timeout":  "15s",
			"image-timeout": "3s",
			"concurrency":   "4",
		} {
			if err := cmd.Flags().Set(flag, value); err != nil {
				t.Fatalf("failed to set flag %s: %v", flag, err)
			}
		}

		cfg, err := buildConfig(cmd)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if cfg.BaseURL != "https://www.example.com" {
			t.Errorf("got base URL %q", cfg.BaseURL)
		}
		if len(cfg.PagePaths) != 2 || cfg.PagePaths[0] != "/" || cfg.PagePaths[1] != "/about" {
			t.Errorf("got page paths %v", cfg.PagePaths)
		}
		if cfg.TargetIP != "203.0.113.7" {
			t.Errorf("got target IP %q", cfg.TargetIP)
		}
		if cfg.PageTimeout != 15*time.Second {
			t.Errorf("got page timeout %v", cfg.PageTimeout)
		}
		if cfg.ImageTimeout != 3*time.Second {
			t.Errorf("got image timeout %v", cfg.ImageTimeout)
		}
		if cfg.Concurrency != 4 {
			t.Errorf("got concurrency %d", cfg.Concurrency)
		}
		if err := cfg.Validate(); err != nil {
			t.Errorf("assembled config should validate, got %v", err)
		}
	})

	t.Run("unset flags keep defaults", func(t *testing.T) {
		t.Parallel()

		cfg, err := buildConfig(NewScanCmd())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if cfg.PageTimeout != config.DefaultPageTimeout {
			t.Errorf("got page timeout %v, expected default", cfg.PageTimeout)
		}
		if cfg.Concurrency != config.DefaultConcurrency {
			t.Errorf("got concurrency %d, expected default", cfg.Concurrency)
		}
		if cfg.UserAgent != config.DefaultUserAgent {
			t.Errorf("got user agent %q, expected default", cfg.UserAgent)
		}
	})

	t.Run("explicit missing config file errors", func(t *testing.T) {
		t.Parallel()

		cmd := NewScanCmd()
		if err := cmd.Flags().Set("config", filepath.Join(t.TempDir(), "nope.yaml")); err != nil {
			t.Fatal(err)
		}

		if _, err := buildConfig(cmd); err == nil {
			t.Error("expected error for missing explicit config file")
		}
	})

	t.Run("config file fills unset values and flags win", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := filepath.Join(dir, "config.yaml")
		content := `target_ip: "198.51.100.9"
base_url: "https://file.example.com"
page_paths:
  - /
sender: "file@example.com"
recipient: "file-ops@example.com"
region: "eu-west-1"
`
		if err := os.WriteFile(path, []byte(content), 0600); err != nil {
			t.Fatal(err)
		}

		cmd := NewScanCmd()
		if err := cmd.Flags().Set("config", path); err != nil {
			t.Fatal(err)
		}
		if err := cmd.Flags().Set("base-url", "https://flag.example.com"); err != nil {
			t.Fatal(err)
		}

		cfg, err := buildConfig(cmd)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if cfg.BaseURL != "https://flag.example.com" {
			t.Errorf("flag should override file, got %q", cfg.BaseURL)
		}
		if cfg.TargetIP != "198.51.100.9" {
			t.Errorf("file value should apply, got %q", cfg.TargetIP)
		}
		if cfg.Region != "eu-west-1" {
			t.Errorf("file value should apply, got %q", cfg.Region)
		}
	})
}

// TestBuildConfigEnv tests environment overrides.
func TestBuildConfigEnv(t *testing.T) { //nolint:paralleltest // mutates process env
	t.Setenv(config.EnvTargetIP, "192.0.2.33")
	t.Setenv(config.EnvDryRun, "true")

	cfg, err := buildConfig(NewScanCmd())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.TargetIP != "192.0.2.33" {
		t.Errorf("got target IP %q, expected env value", cfg.TargetIP)
	}
	if !cfg.DryRun {
		t.Error("expected dry run from env")
	}
}

// TestBuildReportWriter tests report writer selection.
func TestBuildReportWriter(t *testing.T) {
	t.Parallel()

	t.Run("no report requested", func(t *testing.T) {
		t.Parallel()

		writer, cleanup, err := buildReportWriter(config.NewConfig())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		defer cleanup()

		if writer != nil {
			t.Error("expected nil writer when no report was requested")
		}
	})

	t.Run("json report to stdout", func(t *testing.T) {
		t.Parallel()

		cfg := config.NewConfig()
		cfg.JSONReport = true

		writer, cleanup, err := buildReportWriter(cfg)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		defer cleanup()

		if writer == nil {
			t.Error("expected a writer for --json")
		}
	})

	t.Run("report file creates directories", func(t *testing.T) {
		t.Parallel()

		cfg := config.NewConfig()
		cfg.ReportFile = filepath.Join(t.TempDir(), "nested", "report.txt")

		writer, cleanup, err := buildReportWriter(cfg)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		defer cleanup()

		if writer == nil {
			t.Error("expected a writer for --output")
		}
		if _, err := os.Stat(cfg.ReportFile); err != nil {
			t.Errorf("expected report file to exist: %v", err)
		}
	})
}

// TestRunScanDryRun tests a full dry run against a local site.
func TestRunScanDryRun(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("/img/ok.png", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `<body><img src="/img/ok.png"></body>`)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	cfg := config.NewConfig()
	cfg.BaseURL = srv.URL
	cfg.PagePaths = []string{"/"}
	cfg.TargetIP = "203.0.113.7"
	cfg.DryRun = true
	cfg.ReportFile = filepath.Join(t.TempDir(), "report.txt")

	logger := log.NewSecureLogger(os.Stderr, false)

	if err := runScan(context.Background(), cfg, logger); err != nil {
		t.Fatalf("dry run failed: %v", err)
	}

	data, err := os.ReadFile(cfg.ReportFile)
	if err != nil {
		t.Fatalf("failed to read report file: %v", err)
	}
	if !strings.Contains(string(data), "=== Image Scan Report ===") {
		t.Errorf("report file missing summary:\n%s", data)
	}
}
