// Package log provides structured event logging for subscriber collections.
//
// This package defines the Logger interface and the Event type used to trace
// what a collection does: registrations, deliveries, pruning of reclaimed
// subscribers and identity lookups. It is separate from operational logging
// (slog) - event capture provides a complete machine-readable trace for
// debugging and analysis.
//
// # Basic Usage
//
// Collections receive a Logger through their configuration:
//
//	// For development: log to console via slog
//	cfg.EventLogger = log.NewSlogAdapter(slog.Default())
//
//	// For analysis: write to binary file
//	cfg.EventLogger, _ = log.NewFileLogger("/tmp/collection.slog")
//
//	// Both, plus Prometheus counters
//	metrics, _ := log.NewMetricsLogger(prometheus.DefaultRegisterer)
//	cfg.EventLogger = log.NewMultiLogger(
//	    log.NewSlogAdapter(slog.Default()),
//	    fileLogger,
//	    metrics,
//	)
//
// # Event Kinds
//
//   - ADD: a reference was appended
//   - DELIVER: a live subscriber received a notification
//   - PRUNE: an expired entry was removed during a notification pass
//   - LOOKUP: an identity lookup was performed (Matched holds the result)
//   - REENTRANT: a nested notification pass was rejected
//
// # File Format
//
// Event files are a plain sequence of CBOR-encoded events with integer keys.
// The subscriber-sim tool provides viewing and statistics.
package log
