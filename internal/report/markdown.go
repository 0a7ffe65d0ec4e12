package report

import (
	"io"
	"strconv"

	"github.com/nao1215/imgsentry/internal/model"
	"github.com/nao1215/markdown"
)

// MarkdownWriter outputs reports in Markdown format.
// This format is designed for documentation and sharing.
//
// Design decision: We use the nao1215/markdown library for fluent markdown
// generation which provides:
// 1. Type-safe markdown generation
// 2. Support for tables, lists, and code blocks
// 3. GitHub-flavored markdown alerts
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs the report in Markdown format.
func (w *MarkdownWriter) Write(report *model.ScanReport) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, report)
	w.writeAlert(md, report)
	w.writeFindings(md, report)

	return len(md.String()), md.Build()
}

// writeHeader writes the report header with the summary table.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, report *model.ScanReport) {
	md.H1("Image Scan Report")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Scanned at", report.DateScanned.Format("2006-01-02 15:04:05 MST")},
			{"Pages checked", strconv.Itoa(report.PagesChecked)},
			{"Pages failed", strconv.Itoa(report.PagesFailed)},
			{"Images on monitored IP", strconv.Itoa(report.TotalIPImages)},
			{"Broken images", strconv.Itoa(report.TotalBrokenImages)},
		},
	})
	md.PlainText("")
}

// writeAlert writes a GitHub-flavored alert matching the report state.
func (w *MarkdownWriter) writeAlert(md *markdown.Markdown, report *model.ScanReport) {
	switch {
	case report.TotalBrokenImages > 0:
		md.Cautionf("%d broken image(s) detected.", report.TotalBrokenImages)
	case report.TotalIPImages > 0 || report.PagesFailed > 0:
		md.Warningf("%d image(s) on the monitored IP, %d page(s) failed.",
			report.TotalIPImages, report.PagesFailed)
	default:
		md.Tip("No issues found.")
	}
	md.PlainText("")
}

// writeFindings writes the per-page findings tables.
func (w *MarkdownWriter) writeFindings(md *markdown.Markdown, report *model.ScanReport) {
	if !report.HasIssues() {
		return
	}

	md.H2("Findings")
	md.PlainText("")

	rows := make([][]string, 0, len(report.PerPage))
	for _, page := range report.PerPage {
		if !page.HasFindings() {
			continue
		}
		for _, img := range page.IPImages {
			rows = append(rows, []string{page.URL, "monitored IP", img})
		}
		for _, img := range page.BrokenImages {
			rows = append(rows, []string{page.URL, "broken", img})
		}
		if page.Failed() {
			rows = append(rows, []string{page.URL, "scan failed", page.Error})
		}
	}

	md.Table(markdown.TableSet{
		Header: []string{"Page", "Finding", "Detail"},
		Rows:   rows,
	})
	md.PlainText("")
}
