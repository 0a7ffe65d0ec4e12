package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// TestLoadConfigFile tests YAML configuration file loading.
func TestLoadConfigFile(t *testing.T) {
	t.Parallel()

	t.Run("loads all fields", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), DefaultConfigFile)
		content := `target_ip: "203.0.113.7"
base_url: "https://www.example.com"
page_paths:
  - /
  - /about
sender: "alerts@example.com"
recipient: "ops@example.com"
region: "us-east-2"
page_timeout: 15s
image_timeout: 3s
concurrency: 4
user_agent: "custom-agent/1.0"
`
		if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
			t.Fatal(err)
		}

		cf, err := LoadConfigFile(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if cf.TargetIP != "203.0.113.7" {
			t.Errorf("got target IP %q", cf.TargetIP)
		}
		if cf.BaseURL != "https://www.example.com" {
			t.Errorf("got base URL %q", cf.BaseURL)
		}
		if len(cf.PagePaths) != 2 {
			t.Errorf("got %d page paths, expected 2", len(cf.PagePaths))
		}
		if cf.PageTimeout != 15*time.Second {
			t.Errorf("got page timeout %v", cf.PageTimeout)
		}
		if cf.ImageTimeout != 3*time.Second {
			t.Errorf("got image timeout %v", cf.ImageTimeout)
		}
		if cf.Concurrency != 4 {
			t.Errorf("got concurrency %d", cf.Concurrency)
		}
	})

	t.Run("missing file returns ErrConfigNotFound", func(t *testing.T) {
		t.Parallel()

		_, err := LoadConfigFile(filepath.Join(t.TempDir(), "nope.yaml"))
		if !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("got error %v, expected ErrConfigNotFound", err)
		}
	})

	t.Run("malformed YAML returns an error", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), DefaultConfigFile)
		if err := os.WriteFile(path, []byte("page_paths: [unclosed"), 0o600); err != nil {
			t.Fatal(err)
		}

		if _, err := LoadConfigFile(path); err == nil {
			t.Error("expected a parse error")
		}
	})
}

// TestConfigApplyFile tests merging file values into the config.
func TestConfigApplyFile(t *testing.T) {
	t.Parallel()

	t.Run("file values override defaults", func(t *testing.T) {
		t.Parallel()

		cfg := NewConfig()
		cfg.ApplyFile(&File{
			TargetIP:    "203.0.113.7",
			BaseURL:     "https://www.example.com",
			PagePaths:   []string{"/"},
			PageTimeout: 20 * time.Second,
		})

		if cfg.TargetIP != "203.0.113.7" {
			t.Errorf("got target IP %q", cfg.TargetIP)
		}
		if cfg.PageTimeout != 20*time.Second {
			t.Errorf("got page timeout %v", cfg.PageTimeout)
		}
		// Fields absent from the file keep their defaults.
		if cfg.ImageTimeout != DefaultImageTimeout {
			t.Errorf("got image timeout %v, expected default", cfg.ImageTimeout)
		}
		if cfg.UserAgent != DefaultUserAgent {
			t.Errorf("got user agent %q, expected default", cfg.UserAgent)
		}
	})

	t.Run("nil file is a no-op", func(t *testing.T) {
		t.Parallel()

		cfg := NewConfig()
		cfg.ApplyFile(nil)

		if cfg.PageTimeout != DefaultPageTimeout {
			t.Error("nil file must not change defaults")
		}
	})
}

// TestConfigApplyEnv tests environment variable overrides.
// Not parallel: environment variables are process-wide state.
func TestConfigApplyEnv(t *testing.T) { //nolint:paralleltest // mutates process env
	t.Setenv(EnvTargetIP, "198.51.100.4")
	t.Setenv(EnvBaseURL, "https://env.example.com")
	t.Setenv(EnvDryRun, "true")
	t.Setenv(EnvImageTimeout, "2s")
	t.Setenv(EnvPageTimeout, "not-a-duration")

	cfg := NewConfig()
	cfg.ApplyEnv()

	if cfg.TargetIP != "198.51.100.4" {
		t.Errorf("got target IP %q", cfg.TargetIP)
	}
	if cfg.BaseURL != "https://env.example.com" {
		t.Errorf("got base URL %q", cfg.BaseURL)
	}
	if !cfg.DryRun {
		t.Error("expected dry run to be enabled")
	}
	if cfg.ImageTimeout != 2*time.Second {
		t.Errorf("got image timeout %v", cfg.ImageTimeout)
	}
	// A malformed duration leaves the default untouched.
	if cfg.PageTimeout != DefaultPageTimeout {
		t.Errorf("got page timeout %v, expected default", cfg.PageTimeout)
	}
}

// TestFindConfigFile tests configuration file discovery.
func TestFindConfigFile(t *testing.T) {
	t.Parallel()

	t.Run("explicit existing path wins", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "custom.yaml")
		if err := os.WriteFile(path, []byte("{}"), 0o600); err != nil {
			t.Fatal(err)
		}

		if got := FindConfigFile(path); got != path {
			t.Errorf("got %q, expected %q", got, path)
		}
	})

	t.Run("explicit missing path returns empty", func(t *testing.T) {
		t.Parallel()

		if got := FindConfigFile(filepath.Join(t.TempDir(), "missing.yaml")); got != "" {
			t.Errorf("got %q, expected empty", got)
		}
	})
}
