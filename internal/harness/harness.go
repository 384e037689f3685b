package harness

import (
	"errors"
	"fmt"
	"slices"

	"github.com/roach88/minidoc/internal/document"
	"github.com/roach88/minidoc/internal/memstore"
	"github.com/roach88/minidoc/internal/query"
	"github.com/roach88/minidoc/internal/store"
)

// Run executes a scenario against a fresh in-memory store.
//
// Every step produces one Event. A step whose outcome contradicts its
// expectation (an unexpected error, a missing expected error, or the
// wrong error code) records a Result error; execution continues so the
// full event sequence is always available for golden comparison.
func Run(scenario *Scenario) (*Result, error) {
	s := memstore.New()
	if err := scenario.Fixture.Apply(s); err != nil {
		return nil, fmt.Errorf("fixture: %w", err)
	}

	result := NewResult()
	for i, step := range scenario.Steps {
		event, err := runStep(s, &step)
		result.Events = append(result.Events, event)
		checkExpectation(result, i, &step, err)
	}

	if err := captureState(s, result); err != nil {
		return nil, err
	}
	return result, nil
}

// runStep dispatches one step and returns its event. The error is the
// operation's failure, if any; the event's Outcome already reflects it.
func runStep(s store.Store, step *Step) (Event, error) {
	event := Event{Op: step.Op, Collection: step.Collection, Outcome: "ok"}

	err := func() error {
		switch step.Op {
		case OpAdd, OpUpdate, OpUpsert, OpReplace:
			doc, err := document.ObjectFromAny(step.Doc)
			if err != nil {
				return err
			}
			switch step.Op {
			case OpAdd:
				return s.AddDoc(step.Collection, step.ID, doc)
			case OpUpdate:
				return s.UpdateDoc(step.Collection, step.ID, doc)
			case OpUpsert:
				return s.UpsertDoc(step.Collection, step.ID, doc)
			default:
				return s.ReplaceDoc(step.Collection, step.ID, doc)
			}

		case OpDelete:
			return s.DeleteDoc(step.Collection, step.ID)

		case OpGet:
			return runGet(s, step, &event)

		case OpFind:
			return runFind(s, step, &event)

		case OpCount:
			filter, err := whereFilter(step.Where)
			if err != nil {
				return err
			}
			n, err := s.CountDocs(step.Collection, filter)
			if err != nil {
				return err
			}
			event.Count = &n
			return nil

		case OpUpdateMany, OpReplaceMany:
			doc, err := document.ObjectFromAny(step.Doc)
			if err != nil {
				return err
			}
			filter, err := whereFilter(step.Where)
			if err != nil {
				return err
			}
			var n int
			if step.Op == OpUpdateMany {
				n, err = s.UpdateMany(step.Collection, filter, doc)
			} else {
				n, err = s.ReplaceMany(step.Collection, filter, doc)
			}
			event.Count = &n
			return err

		case OpDeleteMany:
			filter, err := whereFilter(step.Where)
			if err != nil {
				return err
			}
			n, err := s.DeleteMany(step.Collection, filter)
			event.Count = &n
			return err

		case OpAddIndex:
			idx, err := BuildIndex(*step.Index)
			if err != nil {
				return err
			}
			return s.AddCollectionIndex(step.Collection, idx)

		default:
			return fmt.Errorf("unknown op %q", step.Op)
		}
	}()

	if err != nil {
		event.Outcome = outcomeOf(err)
	}
	return event, err
}

func runGet(s store.Store, step *Step, event *Event) error {
	var (
		doc   document.Object
		found bool
		err   error
	)
	if len(step.Select) > 0 {
		doc, found, err = s.GetPartialDoc(step.Collection, step.ID, buildSelect(step.Select))
	} else {
		doc, found, err = s.GetDoc(step.Collection, step.ID)
	}
	if err != nil {
		return err
	}
	event.Docs = []EventDoc{}
	if found {
		event.Docs = append(event.Docs, EventDoc{ID: step.ID, Doc: doc})
	}
	return nil
}

func runFind(s store.Store, step *Step, event *Event) error {
	filter, err := whereFilter(step.Where)
	if err != nil {
		return err
	}
	opts := store.FindOptions{Skip: step.Skip, Limit: step.Limit}
	if step.OrderBy != "" {
		if step.Descending {
			opts.Order = &query.Desc{Path: step.OrderBy}
		} else {
			opts.Order = &query.Asc{Path: step.OrderBy}
		}
	}

	var entries []store.Entry
	if len(step.Select) > 0 {
		entries, err = s.FindPartialDocs(step.Collection, filter, buildSelect(step.Select), opts)
	} else {
		entries, err = s.FindDocs(step.Collection, filter, opts)
	}
	if err != nil {
		return err
	}

	event.Docs = make([]EventDoc, len(entries))
	for i, e := range entries {
		event.Docs[i] = EventDoc{ID: e.ID, Doc: e.Doc}
	}
	return nil
}

// whereFilter conjoins the where entries into an equality filter.
// Entries are sorted by path so the filter shape is deterministic.
func whereFilter(where map[string]any) (query.Filter, error) {
	if len(where) == 0 {
		return nil, nil
	}

	paths := make([]string, 0, len(where))
	for path := range where {
		paths = append(paths, path)
	}
	slices.Sort(paths)

	filters := make([]query.Filter, 0, len(paths))
	for _, path := range paths {
		v, err := document.FromAny(where[path])
		if err != nil {
			return nil, fmt.Errorf("where[%q]: %w", path, err)
		}
		filters = append(filters, &query.Eq{Path: path, Value: v})
	}
	if len(filters) == 1 {
		return filters[0], nil
	}
	return query.NewAnd(filters...)
}

func buildSelect(fields []ProjectionField) query.Select {
	selected := make([]query.SelectField, len(fields))
	for i, f := range fields {
		selected[i] = query.SelectField{Path: f.Path, Alias: f.Alias}
	}
	return query.NewSelect(selected...)
}

// outcomeOf maps an operation failure to its event outcome. Store
// errors surface their code; anything else is a generic failure.
func outcomeOf(err error) string {
	var storeErr *store.Error
	if errors.As(err, &storeErr) {
		return string(storeErr.Code)
	}
	return "ERROR"
}

// checkExpectation validates a step's outcome against its expect_error
// clause.
func checkExpectation(result *Result, index int, step *Step, err error) {
	switch {
	case step.ExpectError == "" && err != nil:
		result.AddError(fmt.Sprintf("steps[%d] (%s): unexpected error: %v", index, step.Op, err))
	case step.ExpectError != "" && err == nil:
		result.AddError(fmt.Sprintf("steps[%d] (%s): expected error %s, got success", index, step.Op, step.ExpectError))
	case step.ExpectError != "" && !store.IsCode(err, store.ErrCode(step.ExpectError)):
		result.AddError(fmt.Sprintf("steps[%d] (%s): expected error %s, got: %v", index, step.Op, step.ExpectError, err))
	}
}

// captureState snapshots every collection's documents into the result.
func captureState(s store.Store, result *Result) error {
	for _, name := range s.ListCollections() {
		entries, err := s.FindDocs(name, nil, store.FindOptions{})
		if err != nil {
			return err
		}
		docs := make(map[string]document.Object, len(entries))
		for _, e := range entries {
			docs[e.ID] = e.Doc
		}
		result.State[name] = docs
	}
	return nil
}
