package config

import (
	"net/url"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
)

// Default configuration values.
// The timeouts mirror the behavior of the original monitoring job: pages get
// a generous budget because they carry full HTML, while image checks are
// cheap HEAD requests that should answer quickly or be counted broken.
const (
	// DefaultPageTimeout is the per-page fetch timeout.
	DefaultPageTimeout = 10 * time.Second

	// DefaultImageTimeout is the per-image reachability check timeout.
	// A single attempt within this window is authoritative for the run.
	DefaultImageTimeout = 5 * time.Second

	// DefaultConcurrency is the maximum number of pages scanned in
	// parallel. The effective worker count is capped at the page count.
	DefaultConcurrency = 8

	// DefaultUserAgent identifies imgsentry in HTTP requests so site
	// operators can tell monitoring traffic from visitors in their logs.
	DefaultUserAgent = "imgsentry/1.0 (+https://github.com/nao1215/imgsentry)"

	// DefaultMaxBodySize limits the page response body size to read.
	// 5MB is sufficient for HTML pages while preventing memory exhaustion
	// from unexpectedly large responses.
	DefaultMaxBodySize = 5 * 1024 * 1024 // 5MB

	// AppName is the application name used for XDG directory paths.
	AppName = "imgsentry"
)

// Config holds all configuration options for one monitoring run.
// It is populated once at startup from CLI flags, the optional YAML file,
// and environment variables, and is immutable for the invocation lifetime.
// Components receive it by reference; there is no ambient global state.
type Config struct {
	// TargetIP is the monitored IP address. An image whose URL host
	// equals this value exactly is reported as an IP-hosted image.
	TargetIP string

	// BaseURL is the site address each page path is joined against,
	// e.g. "https://www.example.com".
	BaseURL string

	// PagePaths is the ordered list of page paths to scan. The order
	// defines the order of per-page results in the report.
	PagePaths []string

	// SenderAddress is the From address for alert emails.
	SenderAddress string

	// RecipientAddress is the To address for alert emails.
	RecipientAddress string

	// Region selects the SES region used for notification delivery.
	Region string

	// DryRun suppresses actual email dispatch. The message is still
	// built and logged so the run can be verified locally.
	DryRun bool

	// PageTimeout is the per-page fetch timeout.
	PageTimeout time.Duration

	// ImageTimeout is the per-image reachability check timeout.
	ImageTimeout time.Duration

	// Concurrency is the maximum number of concurrent page scans.
	// Concurrency is a throughput choice only; the report content is
	// identical to a sequential run.
	Concurrency int

	// UserAgent is the User-Agent header sent with all HTTP requests.
	UserAgent string

	// MaxBodySize is the maximum page body size in bytes to read.
	// Set to 0 to use the default.
	MaxBodySize int64

	// Verbose enables detailed log output using slog.LevelDebug.
	// When false, only warnings and errors are logged.
	Verbose bool

	// JSONReport enables JSON report output on stdout.
	// Mutually exclusive with MarkdownReport.
	JSONReport bool

	// MarkdownReport enables Markdown report output on stdout.
	// Mutually exclusive with JSONReport.
	MarkdownReport bool

	// ReportFile is the output file path for the report. When set, the
	// report is written to this file instead of stdout. The file holds
	// only the current run; imgsentry keeps no history between runs.
	ReportFile string

	// ConfigFilePath is the path to the YAML configuration file.
	// If empty, the tool searches for .imgsentry in the current
	// directory, the home directory, and the XDG config directory.
	ConfigFilePath string
}

// NewConfig creates a new Config with default values.
// Scan targets and notification addresses have no safe defaults and must
// be provided by flags, the config file, or environment variables.
func NewConfig() *Config {
	return &Config{
		PageTimeout:  DefaultPageTimeout,
		ImageTimeout: DefaultImageTimeout,
		Concurrency:  DefaultConcurrency,
		UserAgent:    DefaultUserAgent,
		MaxBodySize:  DefaultMaxBodySize,
	}
}

// XDGConfigDir returns the XDG config directory for imgsentry.
// On Linux: ~/.config/imgsentry
// On macOS: ~/Library/Application Support/imgsentry
// On Windows: %APPDATA%\imgsentry
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks if the configuration is valid.
// It returns the first problem found as a sentinel error so callers can
// use errors.Is for programmatic handling. Validation runs once after
// flag and file parsing, before any scanning begins.
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return ErrNoBaseURL
	}
	u, err := url.Parse(c.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return ErrInvalidBaseURL
	}

	if len(c.PagePaths) == 0 {
		return ErrNoPagePaths
	}

	if c.TargetIP == "" {
		return ErrNoTargetIP
	}

	if c.PageTimeout <= 0 || c.ImageTimeout <= 0 {
		return ErrInvalidTimeout
	}

	if c.Concurrency <= 0 {
		return ErrInvalidConcurrency
	}

	if c.MaxBodySize < 0 {
		return ErrInvalidMaxBodySize
	}

	if c.JSONReport && c.MarkdownReport {
		return ErrConflictingReportFormats
	}

	// Notification addresses are only required when delivery can happen.
	if !c.DryRun {
		if c.SenderAddress == "" || c.RecipientAddress == "" {
			return ErrNoNotifyAddress
		}
		if c.Region == "" {
			return ErrNoRegion
		}
	}

	return nil
}
