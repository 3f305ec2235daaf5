package commands

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/mash-protocol/subscriber/pkg/log"
)

// Stats holds aggregate statistics about an event log.
type Stats struct {
	TotalEvents  int
	EventsByKind map[log.Kind]int
	Collections  map[string]*CollectionStats
	LookupHits   int
	LookupMisses int
	TimeRange    struct {
		Start time.Time
		End   time.Time
	}
}

// CollectionStats holds statistics for a single collection.
type CollectionStats struct {
	FirstSeen   time.Time
	LastSeen    time.Time
	Events      int
	Deliveries  int
	Prunes      int
	PeakSize    int
	PayloadType string
}

// CollectStats reads every event in the log at path.
func CollectStats(path string) (*Stats, error) {
	reader, err := log.NewReader(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open event log: %w", err)
	}
	defer reader.Close()

	stats := &Stats{
		EventsByKind: make(map[log.Kind]int),
		Collections:  make(map[string]*CollectionStats),
	}

	for {
		event, err := reader.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read event: %w", err)
		}

		stats.TotalEvents++
		stats.EventsByKind[event.Kind]++

		if stats.TimeRange.Start.IsZero() || event.Timestamp.Before(stats.TimeRange.Start) {
			stats.TimeRange.Start = event.Timestamp
		}
		if event.Timestamp.After(stats.TimeRange.End) {
			stats.TimeRange.End = event.Timestamp
		}

		coll, ok := stats.Collections[event.CollectionID]
		if !ok {
			coll = &CollectionStats{
				FirstSeen:   event.Timestamp,
				LastSeen:    event.Timestamp,
				PayloadType: event.PayloadType,
			}
			stats.Collections[event.CollectionID] = coll
		}
		coll.Events++
		if event.Timestamp.After(coll.LastSeen) {
			coll.LastSeen = event.Timestamp
		}
		if event.Size > coll.PeakSize {
			coll.PeakSize = event.Size
		}

		switch event.Kind {
		case log.KindDeliver:
			coll.Deliveries++
		case log.KindPrune:
			coll.Prunes++
		case log.KindLookup:
			if event.Matched {
				stats.LookupHits++
			} else {
				stats.LookupMisses++
			}
		}
	}
	return stats, nil
}

// RunStats analyzes the event log and prints statistics.
func RunStats(path string, w io.Writer) error {
	stats, err := CollectStats(path)
	if err != nil {
		return err
	}
	printStats(w, stats)
	return nil
}

func printStats(w io.Writer, stats *Stats) {
	fmt.Fprintln(w, "=== Subscriber Event Statistics ===")
	fmt.Fprintln(w)

	if stats.TotalEvents > 0 {
		fmt.Fprintf(w, "Time Range: %s to %s\n",
			stats.TimeRange.Start.Format(time.RFC3339),
			stats.TimeRange.End.Format(time.RFC3339))
		fmt.Fprintf(w, "Duration:   %s\n", stats.TimeRange.End.Sub(stats.TimeRange.Start).Round(time.Millisecond))
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "Total Events: %d\n", stats.TotalEvents)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Events by Kind:")
	for _, kind := range log.Kinds {
		if count := stats.EventsByKind[kind]; count > 0 {
			fmt.Fprintf(w, "  %-11s %d\n", kind.String()+":", count)
		}
	}
	fmt.Fprintln(w)

	if lookups := stats.LookupHits + stats.LookupMisses; lookups > 0 {
		fmt.Fprintf(w, "Lookups: %d (%d hit, %d miss)\n", lookups, stats.LookupHits, stats.LookupMisses)
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "Collections: %d\n", len(stats.Collections))
	ids := make([]string, 0, len(stats.Collections))
	for id := range stats.Collections {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		coll := stats.Collections[id]
		fmt.Fprintf(w, "  %s: %d events, %d deliveries, %d prunes, peak size %d",
			shortenID(id), coll.Events, coll.Deliveries, coll.Prunes, coll.PeakSize)
		if coll.PayloadType != "" {
			fmt.Fprintf(w, " [%s]", coll.PayloadType)
		}
		fmt.Fprintln(w)
	}
}
