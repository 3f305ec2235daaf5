package scenario

import (
	"fmt"
	"runtime"
	"slices"
	"time"

	"github.com/mash-protocol/subscriber/pkg/subscriber"
)

// DefaultReclaimAttempts is how many GC cycles a drop step waits for.
const DefaultReclaimAttempts = 10

// probe is the subscriber object behind a declared scenario name.
type probe struct {
	name     string
	received []Message
	trace    *[]string
}

func (p *probe) Notify(msg *Message) {
	p.received = append(p.received, *msg)
	*p.trace = append(*p.trace, p.name)
}

// StepResult is the outcome of one step.
type StepResult struct {
	// Index is the 1-based step number.
	Index int

	// Step is the executed step.
	Step Step

	// Delivered lists the subscribers notified by a notify step, in order.
	Delivered []string

	// Size is the number of stored entries after the step.
	Size int

	// Found is the result of a has step.
	Found *bool

	// Failures lists unmet expectations.
	Failures []string
}

// Passed reports whether every expectation of the step held.
func (s *StepResult) Passed() bool {
	return len(s.Failures) == 0
}

// Result is the outcome of a scenario run.
type Result struct {
	ScenarioID   string
	Name         string
	CollectionID string
	Steps        []StepResult
	Duration     time.Duration
}

// Passed reports whether every step passed.
func (r *Result) Passed() bool {
	for i := range r.Steps {
		if !r.Steps[i].Passed() {
			return false
		}
	}
	return true
}

// Runner executes scenarios, each against a fresh collection.
type Runner struct {
	config          subscriber.Config
	reclaimAttempts int
}

// NewRunner creates a runner whose collections use config.
// A non-empty config.ID is shared by every collection the runner creates.
func NewRunner(config subscriber.Config) *Runner {
	return &Runner{
		config:          config,
		reclaimAttempts: DefaultReclaimAttempts,
	}
}

// RunAll runs scenarios in order and stops at the first error.
func (r *Runner) RunAll(scenarios []*Scenario) ([]*Result, error) {
	results := make([]*Result, 0, len(scenarios))
	for _, sc := range scenarios {
		res, err := r.Run(sc)
		if err != nil {
			return results, err
		}
		results = append(results, res)
	}
	return results, nil
}

// Run executes a scenario. Unmet expectations are reported in the result;
// an error means the scenario itself is invalid.
func (r *Runner) Run(sc *Scenario) (*Result, error) {
	if err := Validate(sc); err != nil {
		return nil, fmt.Errorf("scenario %s: %w", sc.ID, err)
	}

	start := time.Now()
	c := subscriber.NewWithConfig[Message](r.config)
	result := &Result{
		ScenarioID:   sc.ID,
		Name:         sc.Name,
		CollectionID: c.ID(),
		Steps:        make([]StepResult, 0, len(sc.Steps)),
	}

	// The runner plays the owner: owned holds the only strong references.
	var trace []string
	owned := make(map[string]*probe, len(sc.Subscribers))
	refs := make(map[string]subscriber.WeakRef[Message], len(sc.Subscribers))
	for _, name := range sc.Subscribers {
		p := &probe{name: name, trace: &trace}
		owned[name] = p
		refs[name] = subscriber.Downgrade[Message](p)
	}

	seq := 0
	for i, step := range sc.Steps {
		res := StepResult{Index: i + 1, Step: step}

		switch step.Action {
		case ActionAdd:
			p, ok := owned[step.Subscriber]
			if !ok {
				res.fail("subscriber %q was already dropped", step.Subscriber)
				break
			}
			c.Add(subscriber.Downgrade[Message](p))

		case ActionDrop:
			if _, ok := owned[step.Subscriber]; !ok {
				res.fail("subscriber %q was already dropped", step.Subscriber)
				break
			}
			delete(owned, step.Subscriber)
			if !r.reclaim(refs[step.Subscriber]) {
				res.fail("subscriber %q was not reclaimed after %d GC cycles", step.Subscriber, r.reclaimAttempts)
			}

		case ActionNotify:
			seq++
			trace = trace[:0]
			msg := Message{Seq: seq, Value: step.Value}
			c.Notify(&msg)
			res.Delivered = slices.Clone(trace)

		case ActionHas:
			// Dropped subscribers yield a nil candidate.
			found := c.HasSubscriber(refs[step.Subscriber].Upgrade())
			res.Found = &found

		case ActionLen:
		}

		res.Size = c.Len()
		res.check(step.Expect)
		result.Steps = append(result.Steps, res)
	}
	runtime.KeepAlive(owned)

	result.Duration = time.Since(start)
	return result, nil
}

// reclaim runs GC cycles until ref has expired.
func (r *Runner) reclaim(ref subscriber.WeakRef[Message]) bool {
	for range r.reclaimAttempts {
		runtime.GC()
		if ref.Expired() {
			return true
		}
	}
	return false
}

func (s *StepResult) fail(format string, args ...any) {
	s.Failures = append(s.Failures, fmt.Sprintf(format, args...))
}

func (s *StepResult) check(exp *Expect) {
	if exp == nil {
		return
	}
	if exp.Delivered != nil && !slices.Equal(exp.Delivered, s.Delivered) {
		s.fail("delivered %v, want %v", s.Delivered, exp.Delivered)
	}
	if exp.Size != nil && *exp.Size != s.Size {
		s.fail("size %d, want %d", s.Size, *exp.Size)
	}
	if exp.Found != nil && (s.Found == nil || *s.Found != *exp.Found) {
		s.fail("found %v, want %v", formatFound(s.Found), *exp.Found)
	}
}

func formatFound(found *bool) string {
	if found == nil {
		return "<unset>"
	}
	return fmt.Sprint(*found)
}
