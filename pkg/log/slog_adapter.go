package log

import (
	"context"
	"log/slog"
)

// SlogAdapter writes trace events to an slog.Logger.
// Useful for development when you want to see provisioning steps in console.
type SlogAdapter struct {
	logger *slog.Logger
}

// NewSlogAdapter creates a new SlogAdapter that writes to the given slog.Logger.
func NewSlogAdapter(logger *slog.Logger) *SlogAdapter {
	return &SlogAdapter{logger: logger}
}

// Log writes the event to the slog logger at Debug level.
func (a *SlogAdapter) Log(event Event) {
	attrs := []slog.Attr{
		slog.String("session_id", event.SessionID),
		slog.String("direction", event.Direction.String()),
		slog.String("layer", event.Layer.String()),
		slog.String("category", event.Category.String()),
	}

	if event.CallbackID != "" {
		attrs = append(attrs, slog.String("callback_id", event.CallbackID))
	}
	if event.AccountSuffix != "" {
		attrs = append(attrs, slog.String("account_suffix", event.AccountSuffix))
	}

	switch {
	case event.Call != nil:
		attrs = append(attrs,
			slog.String("method", event.Call.Method),
			slog.String("outcome", event.Call.Outcome.String()),
		)
		if event.Call.Code != "" {
			attrs = append(attrs, slog.String("code", event.Call.Code))
		}
		if event.Call.Duration != nil {
			attrs = append(attrs, slog.Duration("duration", *event.Call.Duration))
		}
	case event.StateChange != nil:
		attrs = append(attrs,
			slog.String("old_state", event.StateChange.OldState),
			slog.String("new_state", event.StateChange.NewState),
		)
		if event.StateChange.Reason != "" {
			attrs = append(attrs, slog.String("reason", event.StateChange.Reason))
		}
	case event.Exchange != nil:
		attrs = append(attrs, slog.String("step", event.Exchange.Step.String()))
		if event.Exchange.CertificateCount > 0 {
			attrs = append(attrs, slog.Int("certificates", event.Exchange.CertificateCount))
		}
		if event.Exchange.NonceSize > 0 {
			attrs = append(attrs, slog.Int("nonce_size", event.Exchange.NonceSize))
		}
		if event.Exchange.Reason != "" {
			attrs = append(attrs, slog.String("reason", event.Exchange.Reason))
		}
	case event.Error != nil:
		attrs = append(attrs,
			slog.String("error_layer", event.Error.Layer.String()),
			slog.String("error_msg", event.Error.Message),
			slog.String("error_context", event.Error.Context),
		)
		if event.Error.Code != "" {
			attrs = append(attrs, slog.String("error_code", event.Error.Code))
		}
	}

	a.logger.LogAttrs(context.Background(), slog.LevelDebug, "trace", attrs...)
}

// Compile-time interface satisfaction check.
var _ Logger = (*SlogAdapter)(nil)
