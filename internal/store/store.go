package store

import (
	"github.com/roach88/minidoc/internal/document"
	"github.com/roach88/minidoc/internal/query"
)

// Entry pairs a document with its id in query results, preserving both
// the association and the result order.
type Entry struct {
	ID  string
	Doc document.Object
}

// FindOptions controls ordering and windowing of query results.
type FindOptions struct {
	// Order sorts matches before windowing. Nil keeps insertion order.
	Order query.OrderBy

	// Skip drops the first N matches after ordering.
	Skip int

	// Limit caps the number of returned matches after Skip.
	// Zero means no limit.
	Limit int
}

// Store is the contract every document store backend implements.
//
// Documents are schemaless key-value trees addressed by an opaque
// string id within a named collection. Filter, OrderBy, and Select
// trees are caller-constructed, passed by reference for the duration of
// one call, and never retained by the store afterward.
type Store interface {
	// ListCollections returns the names of all collections.
	ListCollections() []string

	// FilterCollectionsByPrefix returns the names of collections whose
	// name starts with prefix.
	FilterCollectionsByPrefix(prefix string) []string

	// HasCollection reports whether a collection exists.
	HasCollection(name string) bool

	// AddCollection creates an empty collection with the given indices.
	// Errors with ErrCodeDuplicateCollection if the name already exists.
	AddCollection(name string, indices ...Index) error

	// DropCollection removes a collection and its indices.
	// Dropping an absent collection is a no-op.
	DropCollection(name string) error

	// HasCollectionIndex reports whether the collection declares an
	// index with the given name.
	HasCollectionIndex(collection, name string) (bool, error)

	// AddCollectionIndex declares an index on an existing collection.
	// A same-named existing index is replaced. A unique index is
	// validated against every stored document before it is committed;
	// any conflict aborts the whole operation, leaving the collection
	// unchanged.
	AddCollectionIndex(collection string, idx Index) error

	// DropCollectionIndex removes a specific index instance.
	// Removing an index that is not declared is a no-op.
	DropCollectionIndex(collection string, idx Index) error

	// DropCollectionIndexByName removes every index carrying the given
	// name. Removing an unknown name is a no-op.
	DropCollectionIndexByName(collection, name string) error

	// AddDoc inserts a new document. Errors with
	// ErrCodeDuplicateDocument if the id exists and with
	// ErrCodeUniqueViolation if the document conflicts with a unique
	// index.
	AddDoc(collection, id string, doc document.Object) error

	// UpdateDoc merges patch into the existing document (objects merge
	// recursively, arrays and scalars replace) after validating the
	// merged result against unique indices. Errors with
	// ErrCodeDocumentNotFound if the id is missing.
	UpdateDoc(collection, id string, patch document.Object) error

	// UpsertDoc updates when the id exists, inserts otherwise.
	UpsertDoc(collection, id string, doc document.Object) error

	// ReplaceDoc swaps the stored document wholesale (no merge) after
	// the same existence and uniqueness checks as UpdateDoc.
	ReplaceDoc(collection, id string, doc document.Object) error

	// DeleteDoc removes a document. Deleting an absent id is a no-op.
	DeleteDoc(collection, id string) error

	// GetDoc looks a document up by id. The boolean reports presence.
	GetDoc(collection, id string) (document.Object, bool, error)

	// GetPartialDoc looks a document up and applies a partial select.
	GetPartialDoc(collection, id string, sel query.Select) (document.Object, bool, error)

	// FindDocs returns matching documents with their ids, ordered and
	// windowed per opts.
	FindDocs(collection string, filter query.Filter, opts FindOptions) ([]Entry, error)

	// FindPartialDocs is FindDocs with a projection applied to each
	// result.
	FindPartialDocs(collection string, filter query.Filter, sel query.Select, opts FindOptions) ([]Entry, error)

	// FilterDocs returns matching documents without their ids.
	//
	// Deprecated: the id association is lost. Use FindDocs.
	FilterDocs(collection string, filter query.Filter, opts FindOptions) ([]document.Object, error)

	// FilterDocIDs returns only the ids of matching documents.
	FilterDocIDs(collection string, filter query.Filter, opts FindOptions) ([]string, error)

	// CountDocs returns the number of matching documents without
	// materializing them.
	CountDocs(collection string, filter query.Filter) (int, error)

	// UpdateMany applies UpdateDoc with the same patch to every
	// matching document. Each per-document update (including its
	// uniqueness re-validation) runs independently: the first failure
	// stops the batch but does not roll back earlier mutations.
	// Returns the number of documents updated.
	UpdateMany(collection string, filter query.Filter, patch document.Object) (int, error)

	// ReplaceMany applies ReplaceDoc with the same document to every
	// matching document, with the same batch semantics as UpdateMany.
	ReplaceMany(collection string, filter query.Filter, doc document.Object) (int, error)

	// DeleteMany removes every matching document and returns the
	// number removed.
	DeleteMany(collection string, filter query.Filter) (int, error)
}
