// Package model defines the core data structures used throughout imgsentry.
//
// This package contains the following main types:
//   - PageResult: Outcome of scanning a single page for image problems
//   - ScanReport: Aggregation of all PageResults from one invocation
//   - Outcome: The structured result returned to the host trigger
//
// Design decision: We separate models into their own package to avoid circular
// dependencies. Multiple packages (scanner, notify, report, monitor) need to
// use these types, so centralizing them prevents import cycles.
//
// The models are designed to be serializable to JSON for report output and
// the entry-point outcome body.
package model
