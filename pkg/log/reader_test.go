package log

import (
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestEventFile(t *testing.T, events []Event) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.slog")

	logger, err := NewFileLogger(path)
	require.NoError(t, err)

	for _, e := range events {
		logger.Log(e)
	}
	require.NoError(t, logger.Close())

	return path
}

func TestReaderIteratesEvents(t *testing.T) {
	events := []Event{
		{Timestamp: time.Now(), CollectionID: "coll-1", Kind: KindAdd},
		{Timestamp: time.Now(), CollectionID: "coll-2", Kind: KindDeliver},
		{Timestamp: time.Now(), CollectionID: "coll-3", Kind: KindPrune},
	}

	reader, err := NewReader(createTestEventFile(t, events))
	require.NoError(t, err)
	defer reader.Close()

	read, err := reader.ReadAll()
	require.NoError(t, err)
	require.Len(t, read, 3)

	assert.Equal(t, "coll-1", read[0].CollectionID)
	assert.Equal(t, "coll-3", read[2].CollectionID)
}

func TestReaderHandlesEmptyFile(t *testing.T) {
	path := createTestEventFile(t, nil)

	reader, err := NewReader(path)
	require.NoError(t, err)
	defer reader.Close()

	_, err = reader.Next()
	assert.Equal(t, io.EOF, err)
}

func TestReaderMissingFile(t *testing.T) {
	_, err := NewReader(filepath.Join(t.TempDir(), "missing.slog"))
	assert.Error(t, err)
}

func TestReaderTruncatedFile(t *testing.T) {
	data, err := EncodeEvent(Event{CollectionID: "coll-1", Kind: KindAdd, PayloadType: "string"})
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "truncated.slog")
	require.NoError(t, os.WriteFile(path, data[:len(data)-3], 0o644))

	reader, err := NewReader(path)
	require.NoError(t, err)
	defer reader.Close()

	_, err = reader.Next()
	assert.Error(t, err)
	assert.NotEqual(t, io.EOF, err)
}

func TestReaderFiltersByCollection(t *testing.T) {
	events := []Event{
		{CollectionID: "coll-1", Kind: KindAdd},
		{CollectionID: "coll-2", Kind: KindAdd},
		{CollectionID: "coll-1", Kind: KindDeliver},
	}

	reader, err := NewFilteredReader(createTestEventFile(t, events), Filter{CollectionID: "coll-1"})
	require.NoError(t, err)
	defer reader.Close()

	read, err := reader.ReadAll()
	require.NoError(t, err)
	require.Len(t, read, 2)
	for _, e := range read {
		assert.Equal(t, "coll-1", e.CollectionID)
	}
}

func TestReaderFiltersByKind(t *testing.T) {
	events := []Event{
		{CollectionID: "coll-1", Kind: KindAdd},
		{CollectionID: "coll-1", Kind: KindPrune, Position: 0},
		{CollectionID: "coll-1", Kind: KindDeliver},
		{CollectionID: "coll-1", Kind: KindPrune, Position: 3},
	}

	prune := KindPrune
	reader, err := NewFilteredReader(createTestEventFile(t, events), Filter{Kind: &prune})
	require.NoError(t, err)
	defer reader.Close()

	read, err := reader.ReadAll()
	require.NoError(t, err)
	require.Len(t, read, 2)
	assert.Equal(t, 0, read[0].Position)
	assert.Equal(t, 3, read[1].Position)
}

func TestFilterTimeRange(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	start := base
	end := base.Add(time.Minute)
	f := Filter{TimeStart: &start, TimeEnd: &end}

	tests := []struct {
		name string
		ts   time.Time
		want bool
	}{
		{"before start", base.Add(-time.Second), false},
		{"at start", base, true},
		{"inside", base.Add(30 * time.Second), true},
		{"at end", end, false},
		{"after end", end.Add(time.Second), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, f.Matches(Event{Timestamp: tt.ts}))
		})
	}
}
