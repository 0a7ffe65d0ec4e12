package scanner

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/nao1215/imgsentry/internal/model"
)

// ImageClassifier classifies one absolute image URL.
// It must never fail; every problem with an image is expressed in the
// returned class. classify.Classifier is the production implementation.
type ImageClassifier interface {
	Classify(ctx context.Context, imageURL string) model.ImageClass
}

// PageScanner scans a single page: fetch, extract images, classify each.
//
// Design decision: We require an external http.Client rather than creating
// one internally because:
//  1. The client is shared with the image classifier for connection pooling
//  2. Allows different transports in tests
type PageScanner struct {
	// client is the HTTP client used for page fetches.
	client *http.Client

	// classifier classifies extracted image URLs.
	classifier ImageClassifier

	// timeout is the per-page fetch timeout.
	timeout time.Duration

	// userAgent identifies the monitor in page requests.
	userAgent string

	// maxBodySize limits the response body size to read.
	maxBodySize int64

	// logger records per-page progress at debug level.
	logger *slog.Logger
}

// PageOption configures a PageScanner.
type PageOption func(*PageScanner)

// WithPageTimeout sets the per-page fetch timeout.
func WithPageTimeout(d time.Duration) PageOption {
	return func(s *PageScanner) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// WithPageUserAgent sets the User-Agent header for page fetches.
func WithPageUserAgent(ua string) PageOption {
	return func(s *PageScanner) {
		if ua != "" {
			s.userAgent = ua
		}
	}
}

// WithPageMaxBodySize sets the maximum response body size.
func WithPageMaxBodySize(size int64) PageOption {
	return func(s *PageScanner) {
		if size > 0 {
			s.maxBodySize = size
		}
	}
}

// WithPageLogger sets the logger for per-page debug output.
func WithPageLogger(logger *slog.Logger) PageOption {
	return func(s *PageScanner) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewPageScanner creates a PageScanner using the given client and
// classifier. Pass nil for client to use http.DefaultClient.
func NewPageScanner(client *http.Client, classifier ImageClassifier, opts ...PageOption) *PageScanner {
	if client == nil {
		client = http.DefaultClient
	}

	s := &PageScanner{
		client:      client,
		classifier:  classifier,
		timeout:     10 * time.Second,
		userAgent:   "imgsentry",
		maxBodySize: 5 * 1024 * 1024, // 5MB
		logger:      slog.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// ScanPage scans one page and always returns a populated PageResult.
// Fetch failures, non-2xx statuses, and parse failures terminate in an
// error-status result; they are never raised. A failure on one image
// never aborts the scan of the remaining images on the same page.
func (s *PageScanner) ScanPage(ctx context.Context, pageURL string) model.PageResult {
	s.logger.Debug("scanning page", "url", pageURL)

	body, err := s.fetch(ctx, pageURL)
	if err != nil {
		s.logger.Debug("page fetch failed", "url", pageURL, "reason", err)
		return model.NewFailedPageResult(pageURL, err.Error())
	}

	parser, err := NewParser(pageURL)
	if err != nil {
		return model.NewFailedPageResult(pageURL, fmt.Sprintf("invalid page URL: %v", err))
	}

	images, err := parser.ExtractImages(strings.NewReader(body))
	if err != nil {
		return model.NewFailedPageResult(pageURL, fmt.Sprintf("parse failed: %v", err))
	}

	var ipImages, brokenImages []string
	for _, img := range images {
		class := s.classifyImage(ctx, img)
		if class.IsMonitoredIP {
			ipImages = append(ipImages, img)
		}
		if class.IsBroken {
			brokenImages = append(brokenImages, img)
		}
	}

	s.logger.Debug("page scanned",
		"url", pageURL,
		"total_images", len(images),
		"ip_images", len(ipImages),
		"broken_images", len(brokenImages),
	)

	return model.NewPageResult(pageURL, len(images), ipImages, brokenImages)
}

// classifyImage invokes the classifier with panic containment.
// The classifier contract already forbids errors, but a defect there must
// cost us one image, not the rest of the page.
func (s *PageScanner) classifyImage(ctx context.Context, imageURL string) (class model.ImageClass) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Warn("image classification panicked, counting image as broken",
				"url", imageURL,
				"panic", r,
			)
			class.IsBroken = true
		}
	}()

	return s.classifier.Classify(ctx, imageURL)
}

// fetch retrieves the page body, enforcing the page timeout, the
// identifying User-Agent header, and the body size limit.
func (s *PageScanner) fetch(ctx context.Context, pageURL string) (string, error) {
	fetchCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(fetchCtx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", s.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return "", fmt.Errorf("status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, s.maxBodySize))
	if err != nil {
		return "", err
	}

	return string(body), nil
}
