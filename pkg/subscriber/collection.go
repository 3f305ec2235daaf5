package subscriber

import (
	"fmt"
	"log/slog"
	"reflect"
	"time"

	"github.com/google/uuid"

	"github.com/mash-protocol/subscriber/pkg/log"
)

// Collection is an ordered set of weak subscriber references.
// The zero value is an empty collection ready to use.
type Collection[T any] struct {
	subscribers []WeakRef[T]

	// Entries added during a Notify pass, appended when the pass ends.
	pending   []WeakRef[T]
	notifying bool

	id          string
	payloadType string
	logger      *slog.Logger
	events      log.Logger
}

// New creates an empty collection with the default configuration.
func New[T any]() *Collection[T] {
	return NewWithConfig[T](DefaultConfig())
}

// NewWithConfig creates an empty collection with a custom configuration.
func NewWithConfig[T any](config Config) *Collection[T] {
	if config.ID == "" {
		config.ID = uuid.NewString()
	}

	c := &Collection[T]{
		id:          config.ID,
		payloadType: reflect.TypeFor[T]().String(),
		logger:      config.Logger,
		events:      config.EventLogger,
	}
	if config.Capacity > 0 {
		c.subscribers = make([]WeakRef[T], 0, config.Capacity)
	}
	return c
}

// ID returns the identifier used for this collection in event logs.
func (c *Collection[T]) ID() string {
	if c.id == "" {
		c.id = uuid.NewString()
	}
	return c.id
}

// Len returns the number of stored entries, including expired entries that
// have not been pruned yet.
func (c *Collection[T]) Len() int {
	return len(c.subscribers) + len(c.pending)
}

// Add appends a subscriber reference. Adding the same subscriber twice
// results in two deliveries per Notify.
func (c *Collection[T]) Add(ref WeakRef[T]) {
	if c.notifying {
		c.pending = append(c.pending, ref)
	} else {
		c.subscribers = append(c.subscribers, ref)
	}
	c.emit(log.KindAdd, c.Len()-1, c.Len(), nil, false)
}

// Notify delivers value to every live subscriber in insertion order and
// prunes entries whose subscriber has been reclaimed.
func (c *Collection[T]) Notify(value *T) {
	if c.notifying {
		c.emit(log.KindReentrant, -1, c.Len(), nil, false)
		panic(ErrReentrantNotify)
	}
	c.notifying = true

	// Stable in-place filter: [0:kept) holds retained entries, [next:) is unvisited.
	kept, next := 0, 0
	defer func() {
		n := copy(c.subscribers[kept:], c.subscribers[next:])
		clear(c.subscribers[kept+n:])
		c.subscribers = c.subscribers[:kept+n]

		c.subscribers = append(c.subscribers, c.pending...)
		clear(c.pending)
		c.pending = c.pending[:0]
		c.notifying = false
	}()

	for next < len(c.subscribers) {
		ref := c.subscribers[next]
		sub := ref.Upgrade()
		if sub == nil {
			next++
			c.pruned(next-1, c.Len()-(next-kept))
			continue
		}

		sub.Notify(value)
		c.emit(log.KindDeliver, next, c.Len()-(next-kept), sub, false)

		c.subscribers[kept] = ref
		kept++
		next++
	}
}

// HasSubscriber reports whether s is registered and still alive.
// Entries are matched by object identity. Expired entries are skipped, not
// pruned.
func (c *Collection[T]) HasSubscriber(s Subscriber[T]) bool {
	target := addressOf(s)
	found := target != 0 && (containsAddress(c.subscribers, target) || containsAddress(c.pending, target))
	c.emit(log.KindLookup, -1, c.Len(), s, found)
	return found
}

func containsAddress[T any](refs []WeakRef[T], target uintptr) bool {
	for _, ref := range refs {
		if sub := ref.Upgrade(); sub != nil && addressOf(sub) == target {
			return true
		}
	}
	return false
}

// pruned records the removal of the entry at position. size counts the
// entries still stored after the removal.
func (c *Collection[T]) pruned(position, size int) {
	if c.logger != nil {
		c.logger.Debug("subscriber pruned",
			slog.String("collection_id", c.ID()),
			slog.Int("position", position))
	}
	c.emit(log.KindPrune, position, size, nil, false)
}

func (c *Collection[T]) emit(kind log.Kind, position, size int, sub Subscriber[T], matched bool) {
	if c.events == nil {
		return
	}
	if _, noop := c.events.(log.NoopLogger); noop {
		return
	}

	event := log.Event{
		Timestamp:    time.Now(),
		CollectionID: c.ID(),
		Kind:         kind,
		Position:     position,
		Size:         size,
		Matched:      matched,
		PayloadType:  c.payloadType,
	}
	if sub != nil {
		event.SubscriberType = fmt.Sprintf("%T", sub)
	}
	c.events.Log(event)
}
