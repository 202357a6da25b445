package axon

import "time"

// Outcome classifies what happened when a handler was offered a request
type Outcome string

const (
	// OutcomeDispatched means every binding resolved and the result was sent
	OutcomeDispatched Outcome = "dispatched"
	// OutcomeUnsatisfied means a binding was absent or failed to parse and
	// the request fell through to the next candidate
	OutcomeUnsatisfied Outcome = "unsatisfied"
	// OutcomeFailed means the handler returned an error or sending failed
	OutcomeFailed Outcome = "failed"
)

// DispatchEvent describes one handler invocation attempt
type DispatchEvent struct {
	Controller string
	Handler    string
	Method     Verb
	Path       AxonPath
	Outcome    Outcome
	Duration   time.Duration
}

// Observer is notified after every dispatch attempt. Implementations must be
// safe for concurrent use.
type Observer interface {
	Observe(event DispatchEvent)
}

// ObserverFunc adapts a function to an Observer
type ObserverFunc func(event DispatchEvent)

// Observe calls f
func (f ObserverFunc) Observe(event DispatchEvent) { f(event) }

type nopObserver struct{}

func (nopObserver) Observe(DispatchEvent) {}
