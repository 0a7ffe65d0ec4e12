package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/nao1215/imgsentry/internal/model"
)

// SimpleWriter outputs human-readable text reports.
// This format is designed for terminal display.
//
// Design decision: We use plain text with ASCII formatting rather than
// ANSI colors because:
// 1. It works in all terminals without compatibility issues
// 2. It's easier to pipe to files or other tools
// 3. Scheduled runs usually write into logs, not interactive terminals
type SimpleWriter struct {
	baseWriter

	// showClean controls whether pages without findings are listed.
	showClean bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithShowClean configures the writer to list pages without findings.
func WithShowClean(show bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.showClean = show
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{
		baseWriter: newBaseWriter(output),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write outputs the report in human-readable format.
func (w *SimpleWriter) Write(report *model.ScanReport) (int, error) {
	var sb strings.Builder

	sb.WriteString("=== Image Scan Report ===\n")
	fmt.Fprintf(&sb, "Scanned at:             %s\n", report.DateScanned.Format("2006-01-02 15:04:05 MST"))
	fmt.Fprintf(&sb, "Pages checked:          %d\n", report.PagesChecked)
	fmt.Fprintf(&sb, "Pages failed:           %d\n", report.PagesFailed)
	fmt.Fprintf(&sb, "Images on monitored IP: %d\n", report.TotalIPImages)
	fmt.Fprintf(&sb, "Broken images:          %d\n", report.TotalBrokenImages)
	sb.WriteString("\n")

	for _, page := range report.PerPage {
		if !page.HasFindings() && !w.showClean {
			continue
		}
		w.writePage(&sb, page)
	}

	if !report.HasIssues() {
		sb.WriteString("No issues found.\n")
	}

	return io.WriteString(w.output, sb.String())
}

// writePage renders one page section.
func (w *SimpleWriter) writePage(sb *strings.Builder, page model.PageResult) {
	fmt.Fprintf(sb, "Page: %s\n", page.URL)

	if page.Failed() {
		fmt.Fprintf(sb, "  SCAN FAILED: %s\n\n", page.Error)
		return
	}

	fmt.Fprintf(sb, "  images found: %d\n", page.TotalImages)
	for _, img := range page.IPImages {
		fmt.Fprintf(sb, "  [monitored IP] %s\n", img)
	}
	for _, img := range page.BrokenImages {
		fmt.Fprintf(sb, "  [broken]       %s\n", img)
	}
	sb.WriteString("\n")
}
