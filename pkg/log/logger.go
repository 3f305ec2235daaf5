package log

// Logger is the interface applications implement to receive collection events.
// Pass nil or NoopLogger to disable event logging.
type Logger interface {
	// Log records an event. It is called synchronously from the collection's
	// goroutine, so it should return quickly.
	Log(event Event)
}

// NoopLogger discards all events. Use when logging is disabled.
// NoopLogger is usable as a zero value.
type NoopLogger struct{}

// Log discards the event.
func (NoopLogger) Log(Event) {}

// Compile-time interface satisfaction check.
var _ Logger = NoopLogger{}
