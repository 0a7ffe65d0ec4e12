// Package scanner fetches pages, extracts their image references, and
// turns each page into a PageResult.
//
// # Architecture
//
//   - Parser: HTML parser that extracts image sources from a page body
//   - PageScanner: fetches one page, classifies its images, never fails
//   - Orchestrator: runs the PageScanner over the whole page list with a
//     bounded worker pool, preserving input order in the results
//
// # Failure isolation
//
// Failures are data in this package. A page that cannot be fetched or
// parsed becomes a PageResult with an error status; an image whose check
// misbehaves is counted broken; a defect inside a worker is recovered and
// converted into an error result. Nothing below the orchestrator can
// abort a sibling page, and ScanAll itself never returns an error.
package scanner
