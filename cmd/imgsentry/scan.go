package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/nao1215/imgsentry/internal/classify"
	"github.com/nao1215/imgsentry/internal/config"
	"github.com/nao1215/imgsentry/internal/log"
	"github.com/nao1215/imgsentry/internal/monitor"
	"github.com/nao1215/imgsentry/internal/notify"
	"github.com/nao1215/imgsentry/internal/report"
	"github.com/nao1215/imgsentry/internal/scanner"
	"github.com/spf13/cobra"
)

// NewScanCmd creates the scan command.
func NewScanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Scan website pages for problem images",
		Long: `Scan fetches each configured page, extracts every image it references,
and classifies each image:

- Hosted on the monitored IP (the image URL host equals --target-ip)
- Broken (the image does not answer with a success status in time)

When any finding or page failure occurs, a single email alert summarizing
the whole run is sent via Amazon SES. A clean run sends nothing.

Examples:
  # Scan four pages and alert ops on findings
  imgsentry scan --base-url https://www.example.com --target-ip 203.0.113.7 \
    --path / --path /about --path /gallery --path /blog \
    --sender alerts@example.com --recipient ops@example.com --region us-east-2

  # Verify locally without sending email
  imgsentry scan --base-url https://www.example.com --target-ip 203.0.113.7 \
    --path / --dry-run

  # Use a configuration file
  imgsentry scan -c myconfig.yaml

Configuration file (.imgsentry) example:
  target_ip: "203.0.113.7"
  base_url: "https://www.example.com"
  page_paths:
    - /
    - /about
    - /gallery
  sender: "alerts@example.com"
  recipient: "ops@example.com"
  region: "us-east-2"`,
		Args: cobra.NoArgs,
		RunE: runScanCmd,
	}

	// Scan target flags
	cmd.Flags().StringP("base-url", "u", "",
		"Website base URL each page path is joined against")
	cmd.Flags().StringSliceP("path", "p", nil,
		"Page path to scan (repeatable; order defines report order)")
	cmd.Flags().StringP("target-ip", "i", "",
		"Monitored IP address; images hosted on it are reported")

	// Notification flags
	cmd.Flags().StringP("sender", "s", "",
		"From address for alert emails")
	cmd.Flags().StringP("recipient", "r", "",
		"To address for alert emails")
	cmd.Flags().String("region", "",
		"SES region for notification delivery (e.g., us-east-2)")
	cmd.Flags().BoolP("dry-run", "n", false,
		"Build and log the alert without sending email")

	// Scan behavior flags
	cmd.Flags().DurationP("page-timeout", "t", config.DefaultPageTimeout,
		"Timeout for each page fetch")
	cmd.Flags().DurationP("image-timeout", "T", config.DefaultImageTimeout,
		"Timeout for each image reachability check")
	cmd.Flags().IntP("concurrency", "b", config.DefaultConcurrency,
		"Number of pages scanned in parallel")
	cmd.Flags().String("user-agent", config.DefaultUserAgent,
		"User-Agent header sent with all requests")

	// Configuration file
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .imgsentry in current or home directory)")

	// Report flags
	cmd.Flags().BoolP("json", "j", false,
		"Output JSON report (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown report (mutually exclusive with --json)")
	cmd.Flags().StringP("output", "o", "",
		"Write report to specified file path (creates directories if needed)")

	return cmd
}

// runScanCmd executes the scan command.
func runScanCmd(cmd *cobra.Command, _ []string) error {
	// Build config from file, environment, and flags
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	// Set up structured logging with credential masking
	logger := log.NewSecureLogger(os.Stderr, cfg.Verbose)
	slog.SetDefault(logger)

	// Set up context with signal handling for graceful shutdown
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	// Handle interrupt signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		<-sigCh
		logger.Info("received shutdown signal, cancelling...")
		cancel()
	}()

	return runScan(ctx, cfg, logger)
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// buildConfig creates a Config from the config file, environment variables,
// and cobra command flags, in increasing order of precedence.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.NewConfig()

	configFilePath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}
	cfg.ConfigFilePath = configFilePath

	// Load scan settings from the config file.
	// If user explicitly specified a config file path, error if not found.
	// If no path specified, silently skip when no file is found.
	configPath := config.FindConfigFile(cfg.ConfigFilePath)
	if configPath != "" {
		file, err := config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
		cfg.ApplyFile(file)
	} else if cfg.ConfigFilePath != "" {
		return nil, fmt.Errorf("configuration file not found: %s", cfg.ConfigFilePath)
	}

	// Environment variables override the file
	cfg.ApplyEnv()

	// Explicitly set flags override everything
	if err := applyFlags(cmd, cfg); err != nil {
		return nil, err
	}

	cfg.Verbose = getVerboseFlag(cmd)

	return cfg, nil
}

// applyFlags copies flag values into the config. String and slice flags are
// applied only when the user set them, so file and environment values
// survive; flags with defaults always apply when changed.
func applyFlags(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()
	var err error

	if flags.Changed("base-url") {
		if cfg.BaseURL, err = flags.GetString("base-url"); err != nil {
			return err
		}
	}
	if flags.Changed("path") {
		if cfg.PagePaths, err = flags.GetStringSlice("path"); err != nil {
			return err
		}
	}
	if flags.Changed("target-ip") {
		if cfg.TargetIP, err = flags.GetString("target-ip"); err != nil {
			return err
		}
	}
	if flags.Changed("sender") {
		if cfg.SenderAddress, err = flags.GetString("sender"); err != nil {
			return err
		}
	}
	if flags.Changed("recipient") {
		if cfg.RecipientAddress, err = flags.GetString("recipient"); err != nil {
			return err
		}
	}
	if flags.Changed("region") {
		if cfg.Region, err = flags.GetString("region"); err != nil {
			return err
		}
	}
	if flags.Changed("dry-run") {
		if cfg.DryRun, err = flags.GetBool("dry-run"); err != nil {
			return err
		}
	}
	if flags.Changed("page-timeout") {
		if cfg.PageTimeout, err = flags.GetDuration("page-timeout"); err != nil {
			return err
		}
	}
	if flags.Changed("image-timeout") {
		if cfg.ImageTimeout, err = flags.GetDuration("image-timeout"); err != nil {
			return err
		}
	}
	if flags.Changed("concurrency") {
		if cfg.Concurrency, err = flags.GetInt("concurrency"); err != nil {
			return err
		}
	}
	if flags.Changed("user-agent") {
		if cfg.UserAgent, err = flags.GetString("user-agent"); err != nil {
			return err
		}
	}

	if cfg.JSONReport, err = flags.GetBool("json"); err != nil {
		return err
	}
	if cfg.MarkdownReport, err = flags.GetBool("markdown"); err != nil {
		return err
	}
	if cfg.ReportFile, err = flags.GetString("output"); err != nil {
		return err
	}

	return nil
}

// runScan wires the scan pipeline and executes one monitoring run.
func runScan(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	logger.Info("starting scan",
		"baseURL", cfg.BaseURL,
		"pages", len(cfg.PagePaths),
		"targetIP", cfg.TargetIP,
		"concurrency", cfg.Concurrency,
		"dryRun", cfg.DryRun,
	)

	// One HTTP client for pages and images; timeouts are per request.
	httpClient := &http.Client{}

	classifier := classify.NewClassifier(httpClient, cfg.TargetIP,
		classify.WithTimeout(cfg.ImageTimeout),
		classify.WithUserAgent(cfg.UserAgent),
		classify.WithLogger(logger),
	)
	pageScanner := scanner.NewPageScanner(httpClient, classifier,
		scanner.WithPageTimeout(cfg.PageTimeout),
		scanner.WithPageUserAgent(cfg.UserAgent),
		scanner.WithPageMaxBodySize(cfg.MaxBodySize),
		scanner.WithPageLogger(logger),
	)
	orchestrator := scanner.NewOrchestrator(pageScanner,
		scanner.WithConcurrency(cfg.Concurrency),
		scanner.WithOrchestratorLogger(logger),
	)

	// Dry runs never dispatch, so they need no SES client or credentials.
	var mailer notify.Mailer
	if !cfg.DryRun {
		var err error
		mailer, err = notify.NewSESMailer(ctx, cfg.Region)
		if err != nil {
			return fmt.Errorf("failed to create SES mailer: %w", err)
		}
	}
	notifier := notify.NewNotifier(mailer,
		cfg.SenderAddress, cfg.RecipientAddress, cfg.BaseURL, cfg.TargetIP,
		notify.WithDryRun(cfg.DryRun),
		notify.WithNotifierLogger(logger),
	)

	writer, cleanup, err := buildReportWriter(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	opts := []monitor.Option{monitor.WithLogger(logger)}
	if writer != nil {
		opts = append(opts, monitor.WithReportWriter(writer))
	}
	m := monitor.New(cfg, orchestrator, notifier, opts...)

	outcome := m.Run(ctx)

	// The outcome body always goes to stdout so schedulers can capture it.
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(outcome.Body); err != nil {
		return fmt.Errorf("failed to encode outcome: %w", err)
	}

	if outcome.StatusCode != 200 {
		return fmt.Errorf("scan failed: %s", outcome.Body.Message)
	}
	return nil
}

// buildReportWriter creates the report writer requested by the config.
// It returns a nil writer when no report output was requested; the returned
// cleanup closes the output file, if any.
func buildReportWriter(cfg *config.Config) (report.Writer, func(), error) {
	noop := func() {}

	if !cfg.JSONReport && !cfg.MarkdownReport && cfg.ReportFile == "" {
		return nil, noop, nil
	}

	// Determine output destination
	output := os.Stdout
	cleanup := noop
	if cfg.ReportFile != "" {
		// Create directories if they don't exist
		dir := filepath.Dir(cfg.ReportFile)
		if dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0750); err != nil {
				return nil, noop, fmt.Errorf("failed to create output directory: %w", err)
			}
		}

		f, err := os.OpenFile(cfg.ReportFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
		if err != nil {
			return nil, noop, fmt.Errorf("failed to create output file: %w", err)
		}
		output = f
		cleanup = func() {
			_ = f.Close() //nolint:errcheck // Best effort cleanup
		}
	}

	switch {
	case cfg.JSONReport:
		return report.NewJSONWriter(output, report.WithPrettyPrint()), cleanup, nil
	case cfg.MarkdownReport:
		return report.NewMarkdownWriter(output), cleanup, nil
	default:
		return report.NewSimpleWriter(output), cleanup, nil
	}
}
