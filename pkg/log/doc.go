// Package log provides structured capture of client activity.
//
// The Logger interface and Event types record what a session does:
// authentication phases, op calls with status and timing, state
// changes and errors. Capture is machine-readable first; it is how a
// misbehaving exchange with a server gets diagnosed after the fact.
//
// Secrets never enter an event. Passwords, nonces, proofs and auth
// tokens are deliberately absent from every event type.
//
// # Basic Usage
//
// Applications configure capture by providing a Logger implementation:
//
//	// For development: events on the console via slog
//	cfg.Logger = log.NewSlogAdapter(slog.Default())
//
//	// For production: a binary capture file
//	cfg.Logger, _ = log.NewFileLogger("/var/log/haystack/session.hlog")
//
//	// Both at once
//	cfg.Logger = log.NewMultiLogger(adapter, fileLogger)
//
// # File Format
//
// Capture files use CBOR with integer keys, extension .hlog. Reader
// streams them back with optional filtering.
package log
