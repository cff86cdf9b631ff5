// Package log provides structured provisioning trace logging for passbridge.
//
// This package defines the Logger interface and Event types for capturing
// every step of a provisioning session: bridge calls, coordinator state
// changes, the certificate exchange and errors. It is separate from
// operational logging (slog) - the trace is a complete machine-readable
// record of a session for debugging and analysis.
//
// # Basic Usage
//
// Applications configure tracing by providing a Logger implementation:
//
//	// For development: log to console via slog
//	cfg.ProtocolLogger = log.NewSlogAdapter(slog.Default())
//
//	// For production: write to binary file
//	cfg.ProtocolLogger, _ = log.NewFileLogger("/var/log/passbridge/session.plog")
//
//	// Both: use MultiLogger
//	cfg.ProtocolLogger = log.NewMultiLogger(
//	    log.NewSlogAdapter(slog.Default()),
//	    fileLogger,
//	)
//
// # Event Types
//
// Events are captured at multiple layers:
//   - Bridge: calls arriving from the application shell (CallEvent)
//   - Coordinator: session state changes (StateChangeEvent)
//   - Platform: wallet UI exchange steps (ExchangeEvent)
//   - Issuer: requests to the issuer service
//
// Errors at any layer have a dedicated event type.
//
// # File Format
//
// Trace files use CBOR encoding with the .plog extension. The passbridge-log
// CLI tool provides viewing, export and statistics.
package log
