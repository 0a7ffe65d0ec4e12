package notify

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/nao1215/imgsentry/internal/model"
)

// Notifier turns scan reports into email alerts.
type Notifier struct {
	// mailer delivers messages. Nil is only valid in dry-run mode.
	mailer Mailer

	// sender is the From address for all messages.
	sender string

	// recipient is the To address for all messages.
	recipient string

	// baseURL names the monitored site in subjects and bodies.
	baseURL string

	// targetIP names the monitored IP in alert bodies.
	targetIP string

	// dryRun suppresses dispatch. The message is still built and logged.
	dryRun bool

	// logger records notification decisions.
	logger *slog.Logger
}

// NotifierOption configures a Notifier.
type NotifierOption func(*Notifier)

// WithDryRun enables or disables dry-run mode.
func WithDryRun(dryRun bool) NotifierOption {
	return func(n *Notifier) {
		n.dryRun = dryRun
	}
}

// WithNotifierLogger sets the logger for notification decisions.
func WithNotifierLogger(logger *slog.Logger) NotifierOption {
	return func(n *Notifier) {
		if logger != nil {
			n.logger = logger
		}
	}
}

// NewNotifier creates a Notifier that sends messages from sender to
// recipient about the site at baseURL.
func NewNotifier(mailer Mailer, sender, recipient, baseURL, targetIP string, opts ...NotifierOption) *Notifier {
	n := &Notifier{
		mailer:    mailer,
		sender:    sender,
		recipient: recipient,
		baseURL:   baseURL,
		targetIP:  targetIP,
		logger:    slog.Default(),
	}

	for _, opt := range opts {
		opt(n)
	}

	return n
}

// NotifyIfNeeded sends the aggregated alert when the report contains
// anything alert-worthy: a broken image, an image on the monitored IP,
// or a failed page. It reports whether a message was actually dispatched;
// dry-run builds and logs the message but always returns sent = false.
func (n *Notifier) NotifyIfNeeded(ctx context.Context, report *model.ScanReport) (bool, error) {
	if !report.HasIssues() {
		n.logger.Info("scan clean, no notification needed",
			"pages_checked", report.PagesChecked,
		)
		return false, nil
	}

	textBody, err := buildAlertText(n.baseURL, n.targetIP, report)
	if err != nil {
		return false, fmt.Errorf("build alert body: %w", err)
	}
	htmlBody, err := buildAlertHTML(n.baseURL, n.targetIP, report)
	if err != nil {
		return false, fmt.Errorf("build alert body: %w", err)
	}

	msg := Message{
		Sender:    n.sender,
		Recipient: n.recipient,
		Subject:   buildAlertSubject(n.baseURL, report),
		TextBody:  textBody,
		HTMLBody:  htmlBody,
	}

	return n.dispatch(ctx, msg)
}

// NotifyError sends the distinct execution-failure message.
// It is invoked by the entry point when the pipeline itself failed; the
// scan pipeline never calls it.
func (n *Notifier) NotifyError(ctx context.Context, message string) (bool, error) {
	textBody, err := buildErrorText(n.baseURL, message)
	if err != nil {
		return false, fmt.Errorf("build error body: %w", err)
	}

	msg := Message{
		Sender:    n.sender,
		Recipient: n.recipient,
		Subject:   buildErrorSubject(n.baseURL),
		TextBody:  textBody,
	}

	return n.dispatch(ctx, msg)
}

// dispatch hands the message to the mailer, honoring dry-run mode.
func (n *Notifier) dispatch(ctx context.Context, msg Message) (bool, error) {
	if n.dryRun {
		n.logger.Info("dry run, skipping dispatch",
			"subject", msg.Subject,
		)
		// The body goes through Debug so a verbose dry run shows the
		// full would-be message.
		n.logger.Debug("dry run message body", "body", msg.TextBody)
		return false, nil
	}

	if n.mailer == nil {
		return false, ErrNoMailer
	}

	if err := n.mailer.Send(ctx, msg); err != nil {
		return false, fmt.Errorf("dispatch notification: %w", err)
	}

	n.logger.Info("notification dispatched",
		"subject", msg.Subject,
		"recipient", n.recipient,
	)
	return true, nil
}
