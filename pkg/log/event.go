package log

import (
	"fmt"
	"strings"
	"time"
)

// Event represents a single collection event.
// CBOR encoding uses integer keys for compactness.
type Event struct {
	// Timestamp when the event occurred (nanosecond precision).
	Timestamp time.Time `cbor:"1,keyasint"`

	// CollectionID identifies the collection (UUID unless configured).
	CollectionID string `cbor:"2,keyasint"`

	// Kind classifies the event.
	Kind Kind `cbor:"3,keyasint"`

	// Position is the entry index the event refers to (-1 if none).
	Position int `cbor:"4,keyasint"`

	// Size is the number of stored entries after the event.
	Size int `cbor:"5,keyasint"`

	// Matched is the result of a lookup.
	Matched bool `cbor:"6,keyasint,omitempty"`

	// PayloadType is the Go type name of the notification payload.
	PayloadType string `cbor:"7,keyasint,omitempty"`

	// SubscriberType is the dynamic type of the subscriber involved, if any.
	SubscriberType string `cbor:"8,keyasint,omitempty"`
}

// Kind classifies collection events.
type Kind uint8

const (
	// KindAdd indicates a reference was appended.
	KindAdd Kind = 0
	// KindDeliver indicates a notification was delivered.
	KindDeliver Kind = 1
	// KindPrune indicates an expired entry was removed.
	KindPrune Kind = 2
	// KindLookup indicates an identity lookup.
	KindLookup Kind = 3
	// KindReentrant indicates a rejected nested notification pass.
	KindReentrant Kind = 4
)

// Kinds lists all event kinds in declaration order.
var Kinds = []Kind{KindAdd, KindDeliver, KindPrune, KindLookup, KindReentrant}

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindAdd:
		return "ADD"
	case KindDeliver:
		return "DELIVER"
	case KindPrune:
		return "PRUNE"
	case KindLookup:
		return "LOOKUP"
	case KindReentrant:
		return "REENTRANT"
	default:
		return "UNKNOWN"
	}
}

// ParseKind parses a kind name, case-insensitively.
func ParseKind(s string) (Kind, error) {
	for _, k := range Kinds {
		if strings.EqualFold(s, k.String()) {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown event kind %q (valid: add, deliver, prune, lookup, reentrant)", s)
}
