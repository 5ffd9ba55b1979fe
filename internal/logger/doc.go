// Package logger wraps zap and carries a named, scoped logger through context.
//
// A global sugared logger with a console encoder is created at start-up.
// Services attach names and key-value pairs to a context (WithName, WithKV)
// and log through the package-level helpers (Info, InfoKV, Errorf, ...),
// which pick the logger out of the context.
package logger
