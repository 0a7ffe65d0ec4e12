package notify

import "errors"

// ErrNoMailer is returned when dispatch is attempted without a configured
// mailer. This indicates a wiring bug: a non-dry-run Notifier must always
// be constructed with a Mailer.
var ErrNoMailer = errors.New("no mailer configured for a non-dry-run notifier")
