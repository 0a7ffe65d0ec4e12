// Package notify decides whether a scan report warrants an alert,
// formats the alert message, and dispatches it through the configured
// email provider.
//
// The Notifier sends at most one message per run: either the aggregated
// alert covering every finding, or a distinct execution-failure message
// when the pipeline itself broke. Clean runs send nothing. In dry-run
// mode the message is built and logged but never dispatched, so a run
// can be verified locally without emailing anyone.
//
// Delivery goes through the Mailer interface; SESMailer is the
// production implementation backed by Amazon SES.
package notify
