package model

import "net/http"

// Outcome statuses reported to the host trigger.
const (
	// StatusComplete indicates the scan pipeline ran to completion.
	// The scan itself may still have found broken images or failed pages;
	// those are reported inside the body counters, not as an error.
	StatusComplete = "COMPLETE"

	// StatusError indicates the pipeline itself failed before a report
	// could be produced.
	StatusError = "ERROR"
)

// Outcome is the structured result returned to the host trigger
// (cron wrapper, serverless runtime, CI job). It mirrors an HTTP-style
// status code plus a small JSON body.
type Outcome struct {
	// StatusCode is 200 for a completed run and 500 for a pipeline failure.
	StatusCode int `json:"status_code"`

	// Body carries the run summary or the failure message.
	Body OutcomeBody `json:"body"`
}

// OutcomeBody is the payload of an Outcome.
type OutcomeBody struct {
	// Status is StatusComplete or StatusError.
	Status string `json:"status"`

	// Message describes the failure. Empty for completed runs.
	Message string `json:"message,omitempty"`

	// PagesChecked is copied from the ScanReport for completed runs.
	PagesChecked int `json:"pages_checked"`

	// PagesFailed is copied from the ScanReport for completed runs.
	PagesFailed int `json:"pages_failed"`

	// TotalBrokenImages is copied from the ScanReport for completed runs.
	TotalBrokenImages int `json:"total_broken_images"`

	// TotalIPImages is copied from the ScanReport for completed runs.
	TotalIPImages int `json:"total_ip_images"`
}

// NewCompleteOutcome builds the outcome for a run whose pipeline finished.
func NewCompleteOutcome(report *ScanReport) Outcome {
	return Outcome{
		StatusCode: http.StatusOK,
		Body: OutcomeBody{
			Status:            StatusComplete,
			PagesChecked:      report.PagesChecked,
			PagesFailed:       report.PagesFailed,
			TotalBrokenImages: report.TotalBrokenImages,
			TotalIPImages:     report.TotalIPImages,
		},
	}
}

// NewErrorOutcome builds the outcome for a pipeline-level failure.
func NewErrorOutcome(message string) Outcome {
	return Outcome{
		StatusCode: http.StatusInternalServerError,
		Body: OutcomeBody{
			Status:  StatusError,
			Message: message,
		},
	}
}

// Failed reports whether the outcome represents a pipeline failure.
func (o Outcome) Failed() bool {
	return o.StatusCode != http.StatusOK
}
