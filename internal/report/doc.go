// Package report renders scan reports for terminal display, files, and
// tool integration.
//
// Three writers are available behind the Writer interface:
//   - SimpleWriter: human-readable text for terminal display
//   - JSONWriter: machine-readable output for tool integration
//   - MarkdownWriter: GitHub Flavored Markdown for sharing and docs
//
// Reports are ephemeral: they describe the current run only, and
// imgsentry keeps no history between runs.
package report
