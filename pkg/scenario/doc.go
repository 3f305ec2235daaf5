// Package scenario runs declarative YAML scenarios against subscriber
// collections.
//
// A scenario declares named subscribers, which the runner owns, and a list
// of steps:
//
//	id: SC-PRUNE-001
//	name: Dropped subscribers are skipped
//	subscribers: [a, b]
//	steps:
//	  - action: add
//	    subscriber: a
//	  - action: add
//	    subscriber: b
//	  - action: drop
//	    subscriber: a
//	  - action: notify
//	    value: hello
//	    expect:
//	      delivered: [b]
//	      size: 1
//
// A drop step releases the runner's reference and forces garbage collection
// until the subscriber is reclaimed. Unmet expectations are reported as step
// failures, not errors.
package scenario
