package commands

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/mash-protocol/subscriber/pkg/log"
)

// ViewFilter specifies criteria for filtering events in the view command.
type ViewFilter struct {
	CollectionID string
	Kind         *log.Kind
	TimeStart    string
	TimeEnd      string
}

// ParseKindFlag parses an event kind given on the command line.
func ParseKindFlag(s string) (log.Kind, error) {
	return log.ParseKind(s)
}

// toLogFilter converts the command-line filter to a log.Filter.
func (f ViewFilter) toLogFilter() (log.Filter, error) {
	filter := log.Filter{
		CollectionID: f.CollectionID,
		Kind:         f.Kind,
	}
	if f.TimeStart != "" {
		t, err := time.Parse(time.RFC3339, f.TimeStart)
		if err != nil {
			return filter, fmt.Errorf("invalid time-start: %w", err)
		}
		filter.TimeStart = &t
	}
	if f.TimeEnd != "" {
		t, err := time.Parse(time.RFC3339, f.TimeEnd)
		if err != nil {
			return filter, fmt.Errorf("invalid time-end: %w", err)
		}
		filter.TimeEnd = &t
	}
	return filter, nil
}

// RunView reads the event log at path and writes matching events to w.
func RunView(path string, filter ViewFilter, w io.Writer) error {
	logFilter, err := filter.toLogFilter()
	if err != nil {
		return err
	}

	reader, err := log.NewFilteredReader(path, logFilter)
	if err != nil {
		return fmt.Errorf("failed to open event log: %w", err)
	}
	defer reader.Close()

	for {
		event, err := reader.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}
		formatEvent(w, event)
	}
}

// formatEvent writes a one-line representation of the event to w.
func formatEvent(w io.Writer, event log.Event) {
	ts := event.Timestamp.UTC().Format("2006-01-02T15:04:05.000000Z")
	fmt.Fprintf(w, "%s [coll:%s] %-9s", ts, shortenID(event.CollectionID), event.Kind)

	if event.Position >= 0 {
		fmt.Fprintf(w, " pos=%d", event.Position)
	}
	fmt.Fprintf(w, " size=%d", event.Size)
	if event.Kind == log.KindLookup {
		fmt.Fprintf(w, " matched=%t", event.Matched)
	}
	if event.SubscriberType != "" {
		fmt.Fprintf(w, " subscriber=%s", event.SubscriberType)
	}
	if event.PayloadType != "" {
		fmt.Fprintf(w, " payload=%s", event.PayloadType)
	}
	fmt.Fprintln(w)
}

// shortenID returns the first 8 characters of a collection ID.
func shortenID(id string) string {
	if len(id) >= 8 {
		return id[:8]
	}
	return id
}
