// Package store defines the storage-agnostic document store contract.
//
// The contract is a pure interface: named collections of schemaless
// documents keyed by string ids, with declarative indices, predicate
// queries, ordering, and partial projection. Backends implement Store;
// the in-memory reference engine lives in internal/memstore.
//
// # Indices
//
// Index values are declarative metadata, not physical sorted structures.
// They exist to be enumerable by name and to drive uniqueness
// enforcement at write time. Index is a sealed interface with exactly
// two variants: FieldIndex (one dot path) and MultiFieldIndex (two or
// more).
//
// # Errors
//
// Every failure mode is a *store.Error carrying a stable ErrCode plus
// structured fields (collection, document id, offending index fields).
// Errors are fatal to the single operation that raised them; batch
// operations stop at the first failure and leave earlier mutations in
// place (no multi-document transaction).
//
// # Concurrency
//
// The contract itself is synchronous: every operation runs to
// completion and query results are materialized snapshots of the state
// at call time. Implementations that allow multi-goroutine access must
// use an exclusive-writer/many-readers discipline, because index-checked
// writes read then write and the uniqueness check must be atomic with
// the insert.
package store
