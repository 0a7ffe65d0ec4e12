package monitor

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/nao1215/imgsentry/internal/config"
	"github.com/nao1215/imgsentry/internal/model"
	"github.com/nao1215/imgsentry/internal/report"
)

// Scanner runs the page scan over the whole page list.
// scanner.Orchestrator is the production implementation; per its
// contract it never returns an error.
type Scanner interface {
	ScanAll(ctx context.Context, baseURL string, pagePaths []string) []model.PageResult
}

// Notifier dispatches the aggregated alert and execution-failure messages.
// notify.Notifier is the production implementation.
type Notifier interface {
	NotifyIfNeeded(ctx context.Context, r *model.ScanReport) (bool, error)
	NotifyError(ctx context.Context, message string) (bool, error)
}

// Monitor runs one complete monitoring invocation.
type Monitor struct {
	// cfg is the immutable configuration for this invocation.
	cfg *config.Config

	// scanner produces the per-page results.
	scanner Scanner

	// notifier decides on and dispatches alerts.
	notifier Notifier

	// writer renders the report. Nil disables report output.
	writer report.Writer

	// logger records pipeline progress.
	logger *slog.Logger
}

// Option configures a Monitor.
type Option func(*Monitor)

// WithReportWriter sets the report writer. Nil disables report output.
func WithReportWriter(w report.Writer) Option {
	return func(m *Monitor) {
		m.writer = w
	}
}

// WithLogger sets the logger for pipeline progress.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Monitor) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// New creates a Monitor from its collaborators.
func New(cfg *config.Config, scanner Scanner, notifier Notifier, opts ...Option) *Monitor {
	m := &Monitor{
		cfg:      cfg,
		scanner:  scanner,
		notifier: notifier,
		logger:   slog.Default(),
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// Run executes one monitoring invocation and returns its Outcome.
// It never returns an error or panics: pipeline failures become a 500
// outcome, preceded by a best-effort execution-failure notification
// whose own failure is only logged.
func (m *Monitor) Run(ctx context.Context) model.Outcome {
	scanReport, err := m.run(ctx)
	if err == nil {
		return model.NewCompleteOutcome(scanReport)
	}

	m.logger.Error("pipeline failed", "error", err)

	if _, notifyErr := m.notifier.NotifyError(ctx, err.Error()); notifyErr != nil {
		// The failure notification is best-effort only.
		m.logger.Error("failed to send error notification", "error", notifyErr)
	}

	return model.NewErrorOutcome(err.Error())
}

// run executes the scan pipeline. Defects anywhere inside it, including
// panics, surface as a single error for Run to report.
func (m *Monitor) run(ctx context.Context) (scanReport *model.ScanReport, err error) {
	defer func() {
		if r := recover(); r != nil {
			scanReport = nil
			err = fmt.Errorf("pipeline panic: %v", r)
		}
	}()

	m.logger.Info("starting monitoring run",
		"base_url", m.cfg.BaseURL,
		"pages", len(m.cfg.PagePaths),
		"target_ip", m.cfg.TargetIP,
		"dry_run", m.cfg.DryRun,
	)

	results := m.scanner.ScanAll(ctx, m.cfg.BaseURL, m.cfg.PagePaths)

	scanReport = model.Aggregate(results)

	m.logger.Info("scan aggregated",
		"pages_checked", scanReport.PagesChecked,
		"pages_failed", scanReport.PagesFailed,
		"total_ip_images", scanReport.TotalIPImages,
		"total_broken_images", scanReport.TotalBrokenImages,
	)

	if m.writer != nil {
		if _, err := m.writer.Write(scanReport); err != nil {
			return nil, fmt.Errorf("write report: %w", err)
		}
	}

	sent, err := m.notifier.NotifyIfNeeded(ctx, scanReport)
	if err != nil {
		return nil, fmt.Errorf("notify: %w", err)
	}
	m.logger.Info("run complete", "notification_sent", sent)

	return scanReport, nil
}
