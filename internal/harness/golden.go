package harness

import (
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/minidoc/internal/document"
)

// Snapshot converts a result into a document tree for canonical
// serialization: the scenario name, the per-step events, and the final
// store state. Canonical marshaling makes the encoding deterministic,
// so identical runs produce byte-identical snapshots.
func Snapshot(scenarioName string, result *Result) document.Object {
	events := make(document.Array, len(result.Events))
	for i, event := range result.Events {
		eventObj := document.Object{
			"op":         document.String(event.Op),
			"collection": document.String(event.Collection),
			"outcome":    document.String(event.Outcome),
		}
		if event.Count != nil {
			eventObj["count"] = document.Number(*event.Count)
		}
		if event.Docs != nil {
			docs := make(document.Array, len(event.Docs))
			for j, d := range event.Docs {
				docs[j] = document.Object{
					"id":  document.String(d.ID),
					"doc": d.Doc,
				}
			}
			eventObj["docs"] = docs
		}
		events[i] = eventObj
	}

	state := document.Object{}
	for name, docs := range result.State {
		collectionObj := make(document.Object, len(docs))
		for id, doc := range docs {
			collectionObj[id] = doc
		}
		state[name] = collectionObj
	}

	return document.Object{
		"scenario": document.String(scenarioName),
		"events":   events,
		"state":    state,
	}
}

// RunWithGolden executes a scenario and compares its snapshot against a
// golden file in testdata/golden/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
//
// The golden file is the source of truth for the scenario's expected
// behavior; any engine change that alters outcomes or final state shows
// up as a golden diff.
func RunWithGolden(t *testing.T, scenario *Scenario) error {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return err
	}
	for _, msg := range result.Errors {
		t.Error(msg)
	}

	snapshotJSON, err := document.MarshalCanonical(Snapshot(scenario.Name, result))
	if err != nil {
		return err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenario.Name, snapshotJSON)
	return nil
}
