package subscriber

import (
	"errors"
	"log/slog"

	"github.com/mash-protocol/subscriber/pkg/log"
)

// ErrReentrantNotify is the panic value raised when Notify is called on a
// collection from inside one of its own subscriber callbacks.
var ErrReentrantNotify = errors.New("subscriber: re-entrant Notify on the same collection")

// Config holds collection configuration.
type Config struct {
	// ID identifies the collection in event logs. A UUID is generated when empty.
	ID string

	// Capacity presizes the entry sequence.
	Capacity int

	// Logger receives operational messages (pruning) at Debug level.
	// Nil disables operational logging.
	Logger *slog.Logger

	// EventLogger receives a structured event for every add, delivery,
	// prune and lookup. Nil disables event logging.
	EventLogger log.Logger
}

// DefaultConfig returns the default collection configuration.
func DefaultConfig() Config {
	return Config{
		Logger:      slog.New(slog.DiscardHandler),
		EventLogger: log.NoopLogger{},
	}
}
