package scenario

import "fmt"

// Scenario is a declarative sequence of collection operations.
type Scenario struct {
	// ID uniquely identifies the scenario (e.g., "SC-PRUNE-001").
	ID string `yaml:"id"`

	// Name is a human-readable scenario name.
	Name string `yaml:"name"`

	// Description explains what the scenario checks.
	Description string `yaml:"description,omitempty"`

	// Subscribers declares the subscriber objects owned by the runner.
	Subscribers []string `yaml:"subscribers"`

	// Steps are executed in order.
	Steps []Step `yaml:"steps"`

	// Tags for filtering.
	Tags []string `yaml:"tags,omitempty"`
}

// Action names a step operation.
type Action string

const (
	// ActionAdd registers a weak reference to a subscriber.
	ActionAdd Action = "add"
	// ActionDrop releases the owner's reference and waits for reclamation.
	ActionDrop Action = "drop"
	// ActionNotify delivers a message to the collection.
	ActionNotify Action = "notify"
	// ActionHas looks a subscriber up by identity.
	ActionHas Action = "has"
	// ActionLen checks the number of stored entries.
	ActionLen Action = "len"
)

// needsSubscriber reports whether the action operates on a named subscriber.
func (a Action) needsSubscriber() bool {
	switch a {
	case ActionAdd, ActionDrop, ActionHas:
		return true
	default:
		return false
	}
}

func (a Action) valid() bool {
	switch a {
	case ActionAdd, ActionDrop, ActionNotify, ActionHas, ActionLen:
		return true
	default:
		return false
	}
}

// Step is a single operation with optional expectations.
type Step struct {
	// Action is the operation to perform.
	Action Action `yaml:"action"`

	// Subscriber names the target for add, drop and has.
	Subscriber string `yaml:"subscriber,omitempty"`

	// Value is the payload for notify.
	Value string `yaml:"value,omitempty"`

	// Expect holds the checks made after the step.
	Expect *Expect `yaml:"expect,omitempty"`

	// Description documents the step.
	Description string `yaml:"description,omitempty"`
}

// Expect lists the checks made after a step. Unset fields are not checked.
type Expect struct {
	// Delivered is the exact delivery order of a notify step.
	// An empty list asserts that nobody was notified.
	Delivered []string `yaml:"delivered,omitempty"`

	// Size is the number of stored entries after the step.
	Size *int `yaml:"size,omitempty"`

	// Found is the result of a has step.
	Found *bool `yaml:"found,omitempty"`
}

// Message is the payload type delivered by scenario collections.
type Message struct {
	// Seq numbers notify steps from 1.
	Seq int

	// Value is the step's value.
	Value string
}

// LoadError provides details about a scenario loading error.
type LoadError struct {
	// File is the path to the file that failed to load (empty for in-memory data).
	File string

	// Message describes the error.
	Message string

	// Cause is the underlying error, if any.
	Cause error
}

func (e *LoadError) Error() string {
	msg := e.Message
	if e.Cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	if e.File == "" {
		return msg
	}
	return e.File + ": " + msg
}

func (e *LoadError) Unwrap() error {
	return e.Cause
}
