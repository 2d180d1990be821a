package log

import (
	"context"
	"log/slog"
)

// SlogAdapter writes capture events to an slog.Logger. Useful during
// development to watch session activity on the console.
type SlogAdapter struct {
	logger *slog.Logger
}

// NewSlogAdapter creates a SlogAdapter writing to the given logger.
func NewSlogAdapter(logger *slog.Logger) *SlogAdapter {
	return &SlogAdapter{logger: logger}
}

// Log writes the event to the slog logger at Debug level.
func (a *SlogAdapter) Log(event Event) {
	attrs := []slog.Attr{
		slog.String("session_id", event.SessionID),
		slog.String("category", event.Category.String()),
	}
	if event.CallID != "" {
		attrs = append(attrs, slog.String("call_id", event.CallID))
	}
	if event.Project != "" {
		attrs = append(attrs, slog.String("project", event.Project))
	}

	switch {
	case event.Op != nil:
		attrs = append(attrs,
			slog.String("op", event.Op.Op),
			slog.Bool("response", event.Op.Response),
		)
		if event.Op.Status != 0 {
			attrs = append(attrs, slog.Int("status", event.Op.Status))
		}
		if event.Op.BodyBytes != 0 {
			attrs = append(attrs, slog.Int("body_bytes", event.Op.BodyBytes))
		}
		if event.Op.Duration != nil {
			attrs = append(attrs, slog.Duration("duration", *event.Op.Duration))
		}
	case event.Auth != nil:
		attrs = append(attrs,
			slog.String("phase", event.Auth.Phase.String()),
			slog.Bool("ok", event.Auth.OK),
		)
		if event.Auth.Renewal {
			attrs = append(attrs, slog.Bool("renewal", true))
		}
	case event.StateChange != nil:
		attrs = append(attrs,
			slog.String("old_state", event.StateChange.OldState),
			slog.String("new_state", event.StateChange.NewState),
		)
		if event.StateChange.Reason != "" {
			attrs = append(attrs, slog.String("reason", event.StateChange.Reason))
		}
	case event.Error != nil:
		attrs = append(attrs,
			slog.String("error_msg", event.Error.Message),
			slog.String("error_context", event.Error.Context),
		)
		if event.Error.Status != nil {
			attrs = append(attrs, slog.Int("error_status", *event.Error.Status))
		}
	}

	a.logger.LogAttrs(context.Background(), slog.LevelDebug, "haystack", attrs...)
}

// Compile-time interface satisfaction check.
var _ Logger = (*SlogAdapter)(nil)
