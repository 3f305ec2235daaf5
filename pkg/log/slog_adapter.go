package log

import (
	"context"
	"log/slog"
)

// SlogAdapter writes collection events to an slog.Logger.
// Useful for development when you want to see events in the console.
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
		slog.String("collection_id", event.CollectionID),
		slog.String("kind", event.Kind.String()),
		slog.Int("size", event.Size),
	}

	if event.Position >= 0 {
		attrs = append(attrs, slog.Int("position", event.Position))
	}
	if event.PayloadType != "" {
		attrs = append(attrs, slog.String("payload_type", event.PayloadType))
	}
	if event.SubscriberType != "" {
		attrs = append(attrs, slog.String("subscriber_type", event.SubscriberType))
	}
	if event.Kind == KindLookup {
		attrs = append(attrs, slog.Bool("matched", event.Matched))
	}

	a.logger.LogAttrs(context.Background(), slog.LevelDebug, "subscriber", attrs...)
}

// Compile-time interface satisfaction check.
var _ Logger = (*SlogAdapter)(nil)
