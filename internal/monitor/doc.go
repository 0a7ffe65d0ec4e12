// Package monitor is the entry point of the scan pipeline.
//
// A Monitor wires the configured page list into the scan orchestrator,
// aggregates the per-page results into a report, optionally renders the
// report, and hands it to the notifier. It returns a structured Outcome
// to the host trigger instead of an error: a completed run is a 200 with
// summary counters even when the scan found problems, and only a failure
// of the pipeline itself (a defect, not a network condition) produces a
// 500 — after a best-effort execution-failure notification.
package monitor
