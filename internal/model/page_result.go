package model

// PageStatus is the page-level outcome of a single scan attempt.
type PageStatus string

const (
	// PageStatusSuccess means the page was fetched and parsed, and every
	// image on it was classified. Individual images may still be broken.
	PageStatusSuccess PageStatus = "success"

	// PageStatusError means the page itself could not be fetched or parsed.
	// No image data is available for such a page.
	PageStatusError PageStatus = "error"
)

// PageResult is the outcome of scanning one page.
// It is created once per scan attempt and never modified afterwards.
//
// Invariant: Status == PageStatusError implies TotalImages == 0, empty
// IPImages and BrokenImages, and a non-empty Error message. A successful
// result always has an empty Error. Use the constructors below rather than
// building the struct by hand so the invariant holds.
type PageResult struct {
	// URL is the absolute address of the page that was scanned.
	URL string `json:"url"`

	// Status is the page-level fetch/parse outcome.
	Status PageStatus `json:"status"`

	// TotalImages is the number of image references found on the page.
	// Zero when the page fetch failed.
	TotalImages int `json:"total_images"`

	// IPImages lists image URLs whose host matches the monitored IP,
	// in document order.
	IPImages []string `json:"ip_images"`

	// BrokenImages lists image URLs that failed the reachability check,
	// in document order.
	BrokenImages []string `json:"broken_images"`

	// Error is a short human-readable description of the page-level
	// failure. Empty for successful results.
	Error string `json:"error,omitempty"`
}

// NewPageResult creates a successful PageResult for the given page.
// Nil slices are normalized to empty slices so the JSON output is stable.
func NewPageResult(pageURL string, totalImages int, ipImages, brokenImages []string) PageResult {
	if ipImages == nil {
		ipImages = []string{}
	}
	if brokenImages == nil {
		brokenImages = []string{}
	}
	return PageResult{
		URL:          pageURL,
		Status:       PageStatusSuccess,
		TotalImages:  totalImages,
		IPImages:     ipImages,
		BrokenImages: brokenImages,
	}
}

// NewFailedPageResult creates an error PageResult for the given page.
// All image fields are zeroed regardless of how far the scan progressed;
// a page that could not be fetched contributes no image data.
func NewFailedPageResult(pageURL, errMsg string) PageResult {
	if errMsg == "" {
		errMsg = "unknown error"
	}
	return PageResult{
		URL:          pageURL,
		Status:       PageStatusError,
		IPImages:     []string{},
		BrokenImages: []string{},
		Error:        errMsg,
	}
}

// Failed reports whether the page-level scan failed.
func (r PageResult) Failed() bool {
	return r.Status == PageStatusError
}

// HasFindings reports whether this page contributes anything alert-worthy:
// a page-level failure, an image on the monitored IP, or a broken image.
func (r PageResult) HasFindings() bool {
	return r.Failed() || len(r.IPImages) > 0 || len(r.BrokenImages) > 0
}

// ImageClass is the classification of a single image URL.
type ImageClass struct {
	// IsMonitoredIP is true when the image URL's host equals the
	// monitored IP address exactly.
	IsMonitoredIP bool

	// IsBroken is true when the reachability check did not end in a
	// 2xx response. Transport failures count as broken.
	IsBroken bool
}
