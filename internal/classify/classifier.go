package classify

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/nao1215/imgsentry/internal/model"
)

// Classifier classifies image URLs against the monitored IP address and
// checks their reachability.
//
// Design decision: We use a struct with the http.Client rather than
// passing the client on each call because:
//  1. Client configuration (transport, redirect policy) should be consistent
//  2. Connection pooling works better with a shared client
//  3. Easier to test with httptest servers
type Classifier struct {
	// client is the HTTP client used for reachability checks.
	client *http.Client

	// targetIP is the monitored IP address. The comparison is against
	// the URL's full host component ("host" or "host:port") as written,
	// so the same IP on a non-default port does not match.
	targetIP string

	// timeout is the per-image check timeout. A single attempt within
	// this window is authoritative for the run.
	timeout time.Duration

	// userAgent is the User-Agent header sent with check requests.
	userAgent string

	// logger records per-image outcomes at debug level.
	logger *slog.Logger
}

// Option configures a Classifier.
type Option func(*Classifier)

// WithTimeout sets the per-image check timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Classifier) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithUserAgent sets the User-Agent header for check requests.
func WithUserAgent(ua string) Option {
	return func(c *Classifier) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// WithLogger sets the logger used for per-image debug output.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Classifier) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewClassifier creates a Classifier that matches image hosts against
// targetIP. The client should be shared with the rest of the scan so
// connections are pooled; pass nil to use http.DefaultClient.
func NewClassifier(client *http.Client, targetIP string, opts ...Option) *Classifier {
	if client == nil {
		client = http.DefaultClient
	}

	c := &Classifier{
		client:    client,
		targetIP:  targetIP,
		timeout:   5 * time.Second,
		userAgent: "imgsentry",
		logger:    slog.Default(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Classify inspects a single absolute image URL.
// It never returns an error: an unreachable or misbehaving image is data
// (IsBroken = true), not a failure of the scan. It issues exactly one
// network request per call.
func (c *Classifier) Classify(ctx context.Context, imageURL string) model.ImageClass {
	class := model.ImageClass{
		IsMonitoredIP: c.isMonitoredIP(imageURL),
		IsBroken:      c.isBroken(ctx, imageURL),
	}

	c.logger.Debug("image classified",
		"url", imageURL,
		"monitored_ip", class.IsMonitoredIP,
		"broken", class.IsBroken,
	)

	return class
}

// isMonitoredIP reports whether the URL's host equals the monitored IP
// exactly. This is a host comparison, not a substring search: an IP
// appearing in the path or query does not count, and neither does the
// same IP with an explicit port.
func (c *Classifier) isMonitoredIP(imageURL string) bool {
	u, err := url.Parse(imageURL)
	if err != nil {
		return false
	}
	return u.Host == c.targetIP
}

// isBroken checks the image with a single HEAD request.
// Anything other than a 2xx answer within the timeout (including DNS
// failures, refused connections, TLS errors, and malformed URLs) marks
// the image broken.
func (c *Classifier) isBroken(ctx context.Context, imageURL string) bool {
	checkCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(checkCtx, http.MethodHead, imageURL, nil)
	if err != nil {
		return true
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return true
	}
	defer resp.Body.Close()

	return resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices
}
