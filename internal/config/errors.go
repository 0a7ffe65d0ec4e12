package config

import "errors"

// Configuration validation errors.
// These errors are returned by Config.Validate() and provide specific
// information about what is wrong with the configuration.
//
// Design decision: We use package-level sentinel errors rather than
// creating new error instances in Validate(). This allows callers to use
// errors.Is() for programmatic error handling while still providing
// human-readable messages.
var (
	// ErrNoBaseURL is returned when no site base URL is configured.
	ErrNoBaseURL = errors.New("no base URL specified: set --base-url, the config file, or IMGSENTRY_BASE_URL")

	// ErrInvalidBaseURL is returned when the base URL is not an absolute
	// http(s) URL. Relative page paths cannot be resolved against it.
	ErrInvalidBaseURL = errors.New("invalid base URL: must be absolute, e.g. https://www.example.com")

	// ErrNoPagePaths is returned when the scan set is empty.
	// A run with nothing to scan is almost certainly a deployment mistake.
	ErrNoPagePaths = errors.New("no page paths specified: provide at least one path to scan")

	// ErrNoTargetIP is returned when no monitored IP address is configured.
	ErrNoTargetIP = errors.New("no target IP specified: set --target-ip, the config file, or IMGSENTRY_TARGET_IP")

	// ErrInvalidTimeout is returned when a network timeout is not positive.
	// A zero timeout would cause immediate fetch failures on every page.
	ErrInvalidTimeout = errors.New("invalid timeout: page and image timeouts must be positive")

	// ErrInvalidConcurrency is returned when the worker bound is not positive.
	ErrInvalidConcurrency = errors.New("invalid concurrency: must be positive")

	// ErrInvalidMaxBodySize is returned when the max body size is negative.
	// Use 0 to fall back to the default limit.
	ErrInvalidMaxBodySize = errors.New("invalid max body size: must be non-negative")

	// ErrConflictingReportFormats is returned when both --json and
	// --markdown are specified. Only one output format can be used at a time.
	ErrConflictingReportFormats = errors.New("conflicting report formats: --json and --markdown cannot be used together")

	// ErrNoNotifyAddress is returned when sender or recipient is missing
	// and the run is not a dry run. Without both addresses no alert could
	// ever be delivered.
	ErrNoNotifyAddress = errors.New("no notification address: sender and recipient are required unless --dry-run is set")

	// ErrNoRegion is returned when no SES region is configured for a
	// run that may actually deliver email.
	ErrNoRegion = errors.New("no region specified: an SES region is required unless --dry-run is set")
)
