// Package harness provides scenario-based conformance testing for the
// document store engine.
//
// The harness seeds a fresh in-memory store from a fixture, executes a
// sequence of operations, and snapshots both the per-step outcomes and
// the final store state for golden comparison.
//
// # Scenario Format
//
// Scenarios are defined in YAML files with the following structure:
//
//	name: scenario_name
//	description: "What this scenario validates"
//	fixture:
//	  collections:
//	    - name: players
//	      indexes:
//	        - fields: [name]
//	          unique: true
//	          name: uq_name
//	      docs:
//	        - id: p1
//	          doc: { name: alice, age: 30 }
//	steps:
//	  - op: add
//	    collection: players
//	    id: p2
//	    doc: { name: alice }
//	    expect_error: UNIQUE_CONSTRAINT_VIOLATION
//	  - op: find
//	    collection: players
//	    where: { age: 30 }
//	    order_by: name
//
// # Expectations
//
// Each step either succeeds or names the error code it must fail with
// via expect_error. Mismatches are recorded on the result but never
// stop the run, so the full event sequence stays comparable.
//
// # Deterministic Snapshots
//
// Snapshots serialize through canonical JSON (sorted keys, NFC strings,
// integral number formatting), so a scenario produces byte-identical
// golden output across runs. Fixture documents should carry explicit
// ids; generated ids are fresh per run and would break golden
// comparison.
package harness
