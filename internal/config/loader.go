package config

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the default configuration file name.
const DefaultConfigFile = ".imgsentry"

// ErrConfigNotFound is returned when the configuration file does not exist.
var ErrConfigNotFound = errors.New("configuration file not found")

// File is the YAML configuration file format.
//
// Example:
//
//	target_ip: "203.0.113.7"
//	base_url: "https://www.example.com"
//	page_paths:
//	  - /
//	  - /about
//	  - /gallery
//	sender: "alerts@example.com"
//	recipient: "ops@example.com"
//	region: "us-east-2"
//	page_timeout: 10s
//	image_timeout: 5s
type File struct {
	TargetIP         string        `yaml:"target_ip"`
	BaseURL          string        `yaml:"base_url"`
	PagePaths        []string      `yaml:"page_paths"`
	SenderAddress    string        `yaml:"sender"`
	RecipientAddress string        `yaml:"recipient"`
	Region           string        `yaml:"region"`
	PageTimeout      time.Duration `yaml:"page_timeout"`
	ImageTimeout     time.Duration `yaml:"image_timeout"`
	Concurrency      int           `yaml:"concurrency"`
	UserAgent        string        `yaml:"user_agent"`
}

// LoadConfigFile loads scan settings from a YAML file.
// If the file does not exist, it returns ErrConfigNotFound. Callers should
// handle this error based on whether the path was explicitly specified.
func LoadConfigFile(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided config path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cf File
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, err
	}

	return &cf, nil
}

// FindConfigFile searches for the configuration file in the following order:
//  1. If configPath is specified, use it directly
//  2. Look for .imgsentry in the current directory
//  3. Look for .imgsentry in the user's home directory
//  4. Look for config.yaml in the XDG config directory
//
// Returns the path to the configuration file if found, or empty string if
// not found.
func FindConfigFile(configPath string) string {
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
		return ""
	}

	if cwd, err := os.Getwd(); err == nil {
		cwdConfig := filepath.Join(cwd, DefaultConfigFile)
		if _, err := os.Stat(cwdConfig); err == nil {
			return cwdConfig
		}
	}

	if home, err := os.UserHomeDir(); err == nil {
		homeConfig := filepath.Join(home, DefaultConfigFile)
		if _, err := os.Stat(homeConfig); err == nil {
			return homeConfig
		}
	}

	xdgConfig := filepath.Join(XDGConfigDir(), "config.yaml")
	if _, err := os.Stat(xdgConfig); err == nil {
		return xdgConfig
	}

	return ""
}

// ApplyFile copies values from a loaded file into the config.
// Only values actually present in the file are applied, so flags and
// defaults survive for everything the file leaves out.
func (c *Config) ApplyFile(f *File) {
	if f == nil {
		return
	}
	if f.TargetIP != "" {
		c.TargetIP = f.TargetIP
	}
	if f.BaseURL != "" {
		c.BaseURL = f.BaseURL
	}
	if len(f.PagePaths) > 0 {
		c.PagePaths = f.PagePaths
	}
	if f.SenderAddress != "" {
		c.SenderAddress = f.SenderAddress
	}
	if f.RecipientAddress != "" {
		c.RecipientAddress = f.RecipientAddress
	}
	if f.Region != "" {
		c.Region = f.Region
	}
	if f.PageTimeout > 0 {
		c.PageTimeout = f.PageTimeout
	}
	if f.ImageTimeout > 0 {
		c.ImageTimeout = f.ImageTimeout
	}
	if f.Concurrency > 0 {
		c.Concurrency = f.Concurrency
	}
	if f.UserAgent != "" {
		c.UserAgent = f.UserAgent
	}
}

// Environment variable names recognized by ApplyEnv.
// These allow the job to run in environments where the schedule trigger
// injects settings (container cron, serverless runtime) without flags
// or a config file.
const (
	EnvTargetIP     = "IMGSENTRY_TARGET_IP"
	EnvBaseURL      = "IMGSENTRY_BASE_URL"
	EnvSender       = "IMGSENTRY_SENDER"
	EnvRecipient    = "IMGSENTRY_RECIPIENT"
	EnvRegion       = "IMGSENTRY_REGION"
	EnvDryRun       = "IMGSENTRY_DRY_RUN"
	EnvPageTimeout  = "IMGSENTRY_PAGE_TIMEOUT"
	EnvImageTimeout = "IMGSENTRY_IMAGE_TIMEOUT"
)

// ApplyEnv overrides config values from IMGSENTRY_* environment variables.
// Unset variables leave the current value untouched. Malformed durations
// and booleans are ignored rather than failing the run; Validate catches
// genuinely unusable configurations afterwards.
func (c *Config) ApplyEnv() {
	if v := os.Getenv(EnvTargetIP); v != "" {
		c.TargetIP = v
	}
	if v := os.Getenv(EnvBaseURL); v != "" {
		c.BaseURL = v
	}
	if v := os.Getenv(EnvSender); v != "" {
		c.SenderAddress = v
	}
	if v := os.Getenv(EnvRecipient); v != "" {
		c.RecipientAddress = v
	}
	if v := os.Getenv(EnvRegion); v != "" {
		c.Region = v
	}
	if v := os.Getenv(EnvDryRun); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.DryRun = b
		}
	}
	if v := os.Getenv(EnvPageTimeout); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			c.PageTimeout = d
		}
	}
	if v := os.Getenv(EnvImageTimeout); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			c.ImageTimeout = d
		}
	}
}
