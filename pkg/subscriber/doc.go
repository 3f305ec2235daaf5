// Package subscriber implements a weak subscriber registry.
//
// A Collection holds weak references to objects implementing Subscriber and
// delivers notifications to every subscriber that is still alive. The
// collection never owns its subscribers: when the owner drops the last
// strong reference and the garbage collector reclaims the object, the entry
// expires and is pruned by the next Notify.
//
// # Basic Usage
//
//	type printer struct{ prefix string }
//
//	func (p *printer) Notify(value *string) { fmt.Println(p.prefix, *value) }
//
//	events := subscriber.New[string]()
//
//	p := &printer{prefix: ">"}
//	events.Add(subscriber.Downgrade[string](p))
//
//	msg := "hello"
//	events.Notify(&msg) // prints "> hello"
//
// # Entry Lifecycle
//
// Each entry is Live while its target is reachable, becomes Expired once the
// garbage collector has reclaimed the target, and is Pruned when the next
// Notify reaches it. Expiry is discovered lazily; HasSubscriber observes
// entries but never prunes them.
//
// Subscribers must be pointers to non-zero-sized types. Distinct zero-sized
// allocations may share an address, which breaks identity lookup.
//
// # Identity
//
// HasSubscriber compares the address of the underlying object, not interface
// values. An outer struct and its first embedded field share an address and
// therefore denote the same subscriber even though their dynamic types differ.
//
// # Concurrency
//
// A Collection is not safe for concurrent use. It must be owned and driven by
// a single goroutine. Within a Notify pass:
//   - Add queues the new entry; it is visited from the next pass on.
//   - A nested Notify on the same collection panics with ErrReentrantNotify.
//   - HasSubscriber may be called.
//
// If a subscriber panics, the collection is left consistent (no entry is lost
// or duplicated) and the panic propagates to the caller of Notify.
package subscriber
