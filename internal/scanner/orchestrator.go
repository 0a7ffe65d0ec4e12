package scanner

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/nao1215/imgsentry/internal/model"
	"golang.org/x/sync/errgroup"
)

// PageScannerFunc is the unit of work the Orchestrator runs per page.
// *PageScanner satisfies it via ScanPage.
type PageScannerFunc interface {
	ScanPage(ctx context.Context, pageURL string) model.PageResult
}

// Orchestrator runs page scans over the whole configured page list.
//
// Design decision: We use errgroup.SetLimit rather than a hand-rolled
// worker pool because it keeps the concurrency bound declarative and the
// goroutine lifecycle correct. Each page gets its own goroutine, but only
// the configured number run simultaneously. Concurrency is a throughput
// choice: the result sequence is identical to a sequential run.
type Orchestrator struct {
	// scanner scans a single page.
	scanner PageScannerFunc

	// concurrency is the maximum number of concurrent page scans.
	// The effective bound is capped at the page count.
	concurrency int

	// logger is used for orchestration-level logging.
	logger *slog.Logger
}

// OrchestratorOption configures an Orchestrator.
type OrchestratorOption func(*Orchestrator)

// WithConcurrency sets the maximum number of concurrent page scans.
// Non-positive values keep the default.
func WithConcurrency(n int) OrchestratorOption {
	return func(o *Orchestrator) {
		if n > 0 {
			o.concurrency = n
		}
	}
}

// WithOrchestratorLogger sets the logger for orchestration-level output.
func WithOrchestratorLogger(logger *slog.Logger) OrchestratorOption {
	return func(o *Orchestrator) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// NewOrchestrator creates an Orchestrator around the given page scanner.
func NewOrchestrator(scanner PageScannerFunc, opts ...OrchestratorOption) *Orchestrator {
	o := &Orchestrator{
		scanner:     scanner,
		concurrency: 8,
		logger:      slog.Default(),
	}

	for _, opt := range opts {
		opt(o)
	}

	return o
}

// ScanAll scans every page path joined against baseURL and returns one
// PageResult per input path, in input order regardless of completion
// order. It waits for every page attempt to settle and never returns an
// error: paths that cannot be joined, pages that cannot be fetched, and
// even defects inside a worker all terminate in an error-status result
// for that page only.
func (o *Orchestrator) ScanAll(ctx context.Context, baseURL string, pagePaths []string) []model.PageResult {
	results := make([]model.PageResult, len(pagePaths))

	pageURLs, joinErrs := joinPaths(baseURL, pagePaths)

	limit := o.concurrency
	if len(pagePaths) < limit {
		limit = len(pagePaths)
	}
	if limit < 1 {
		limit = 1
	}

	o.logger.Info("starting scan",
		"pages", len(pagePaths),
		"concurrency", limit,
	)
	startTime := time.Now()

	// No errgroup.WithContext here: one page's failure must not cancel
	// sibling pages. Cancellation still flows in via the caller's ctx.
	var g errgroup.Group
	g.SetLimit(limit)

	for i := range pagePaths {
		i := i
		g.Go(func() error {
			results[i] = o.scanOne(ctx, pageURLs[i], joinErrs[i])
			return nil
		})
	}

	// Workers never return errors; Wait is purely a barrier.
	_ = g.Wait() //nolint:errcheck // workers always return nil

	o.logger.Info("scan complete",
		"pages", len(pagePaths),
		"elapsed", time.Since(startTime),
	)

	return results
}

// scanOne runs a single page scan with panic containment.
// The PageScanner already guarantees a populated result for every network
// and content condition; this wrapper additionally converts defects in
// the scanner itself into an error result so no panic can escape ScanAll.
func (o *Orchestrator) scanOne(ctx context.Context, pageURL string, joinErr error) (result model.PageResult) {
	defer func() {
		if r := recover(); r != nil {
			o.logger.Error("page scan panicked",
				"url", pageURL,
				"panic", r,
			)
			result = model.NewFailedPageResult(pageURL, fmt.Sprintf("internal error: %v", r))
		}
	}()

	if joinErr != nil {
		return model.NewFailedPageResult(pageURL, joinErr.Error())
	}

	return o.scanner.ScanPage(ctx, pageURL)
}

// joinPaths resolves each page path against the base URL, preserving
// order. A path that cannot be joined gets a per-index error and keeps
// the raw path as its URL so the failure is attributable in the report.
func joinPaths(baseURL string, pagePaths []string) ([]string, []error) {
	urls := make([]string, len(pagePaths))
	errs := make([]error, len(pagePaths))

	base, baseErr := url.Parse(baseURL)

	for i, p := range pagePaths {
		if baseErr != nil {
			urls[i] = p
			errs[i] = fmt.Errorf("invalid base URL %q: %w", baseURL, baseErr)
			continue
		}

		ref, err := url.Parse(p)
		if err != nil {
			urls[i] = p
			errs[i] = fmt.Errorf("invalid page path %q: %w", p, err)
			continue
		}

		urls[i] = base.ResolveReference(ref).String()
	}

	return urls, errs
}
