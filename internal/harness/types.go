package harness

import "github.com/roach88/minidoc/internal/document"

// Event records the outcome of one executed step.
type Event struct {
	// Op is the step's operation name.
	Op string

	// Collection is the step's target collection.
	Collection string

	// Outcome is "ok" for success, or the error code of the failure.
	Outcome string

	// Count carries the numeric result of count and batch operations.
	// Nil for operations without one.
	Count *int

	// Docs carries the results of get and find operations, in result
	// order. Each entry pairs a document id with its (possibly partial)
	// body. A get miss produces an empty slice.
	Docs []EventDoc
}

// EventDoc is one returned document within an Event.
type EventDoc struct {
	ID  string
	Doc document.Object
}

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass indicates overall success: every step matched its
	// expectation.
	Pass bool

	// Events contains one entry per executed step, in order.
	Events []Event

	// Errors contains expectation mismatch messages. Empty if Pass.
	Errors []string

	// State is the final store content: collection name to documents
	// keyed by id.
	State map[string]map[string]document.Object
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Events: []Event{},
		State:  make(map[string]map[string]document.Object),
	}
}

// AddError adds an expectation mismatch and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}
