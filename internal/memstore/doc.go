// Package memstore implements the in-memory reference engine for the
// document store contract.
//
// The engine owns all collection state for its lifetime: documents,
// insertion order, and index declarations. It evaluates filter trees by
// scanning every document of a collection - indices drive uniqueness
// enforcement at write time, never access paths.
//
// ARCHITECTURE:
//
// One Writer, Many Readers:
// A single RWMutex guards the whole store. Index-checked writes must
// read (scan for conflicts) then write as one atomic step, otherwise
// two concurrent inserts could both pass the same uniqueness check.
// Read operations take the shared lock and return materialized deep
// copies, so callers can never mutate stored state and results are a
// stable snapshot of the moment the call ran.
//
// Write Pipeline:
// 1. Resolve the collection (absent -> UNKNOWN_COLLECTION)
// 2. Existence check (duplicate id / document not found)
// 3. Compute the would-be stored document (merge for updates)
// 4. Validate the result against every unique index
// 5. Commit
//
// Any failure before step 5 leaves the collection byte-for-byte
// unchanged. Batch operations (UpdateMany, ReplaceMany, DeleteMany)
// run the pipeline per matched document and stop at the first failure
// without rolling back earlier commits - there is no multi-document
// transaction.
//
// Scan Order:
// Each collection tracks document insertion order. Unordered queries
// and batch operations iterate in that order, which combined with
// stable sorting gives fully deterministic results.
package memstore
