// Package log provides structured logging with automatic redaction of
// credentials, built on top of the standard slog package.
//
// The analysis pipeline logs page URLs, login attempts, and session
// tokens; the redacting handler masks attribute values that look like
// secrets before they reach the underlying text or JSON handler, so a
// verbose log can be shared without leaking credentials.
//
//	logger := log.NewLogger(os.Stderr, true) // verbose=true
//	logger.Info("login attempt",
//	    "email", "ana@example.com",
//	    "password", "hunter2",  // masked in output
//	)
package log
