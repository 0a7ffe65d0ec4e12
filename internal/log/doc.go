// Package log provides secure logging functionality with automatic
// sanitization of sensitive information, built on top of the standard
// slog package.
//
// imgsentry typically runs unattended from cron, CI, or a serverless
// runtime, and its logs are often shipped to shared aggregators. The
// SecureHandler masks values that should not end up there:
//   - Notification provider credentials (AWS access keys, session tokens)
//   - HTTP authentication material (Authorization headers, bearer tokens)
//   - Personal email addresses used as alert sender and recipient
//
// # Usage
//
//	logger := log.NewSecureLogger(os.Stderr, verbose)
//	slog.SetDefault(logger)
//
//	logger.Info("alert dispatched",
//	    "recipient", "ops@example.com", // masked in output
//	    "pages", 4,
//	)
package log
