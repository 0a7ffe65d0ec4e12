package model

import "time"

// ScanReport is the aggregation of all PageResults from one invocation.
//
// Invariant: PagesChecked equals len(PerPage), and PagesFailed plus the
// number of successful results equals PagesChecked. TotalBrokenImages and
// TotalIPImages are the sums of the per-page slice lengths. The report is
// built once from the complete result sequence and never updated.
type ScanReport struct {
	// PagesChecked is the total number of pages attempted.
	PagesChecked int `json:"pages_checked"`

	// PagesFailed is the number of pages whose scan ended in a
	// page-level error.
	PagesFailed int `json:"pages_failed"`

	// TotalBrokenImages is the number of broken images across all pages.
	TotalBrokenImages int `json:"total_broken_images"`

	// TotalIPImages is the number of images hosted on the monitored IP
	// across all pages.
	TotalIPImages int `json:"total_ip_images"`

	// PerPage holds one result per input page path, in input order,
	// regardless of the order in which scans completed.
	PerPage []PageResult `json:"per_page"`

	// DateScanned is the timestamp when the report was built.
	DateScanned time.Time `json:"date_scanned"`
}

// Aggregate reduces a sequence of PageResults into a ScanReport.
// It is a pure function: no I/O, deterministic for the same input order.
// The input slice is referenced, not copied; callers must not mutate it
// after aggregation.
func Aggregate(results []PageResult) *ScanReport {
	report := &ScanReport{
		PagesChecked: len(results),
		PerPage:      results,
		DateScanned:  time.Now(),
	}
	if results == nil {
		report.PerPage = []PageResult{}
	}

	for _, r := range results {
		if r.Failed() {
			report.PagesFailed++
			continue
		}
		report.TotalBrokenImages += len(r.BrokenImages)
		report.TotalIPImages += len(r.IPImages)
	}

	return report
}

// HasIssues reports whether the scan found anything alert-worthy:
// at least one broken image, one image on the monitored IP, or one
// failed page.
func (r *ScanReport) HasIssues() bool {
	return r.TotalBrokenImages > 0 || r.TotalIPImages > 0 || r.PagesFailed > 0
}

// FailedPages returns the error-status results, in input order.
func (r *ScanReport) FailedPages() []PageResult {
	failed := make([]PageResult, 0, r.PagesFailed)
	for _, p := range r.PerPage {
		if p.Failed() {
			failed = append(failed, p)
		}
	}
	return failed
}
