package memstore

import (
	"github.com/roach88/minidoc/internal/document"
	"github.com/roach88/minidoc/internal/query"
	"github.com/roach88/minidoc/internal/store"
)

// uniquenessFilter builds the composite predicate that detects a
// duplicate of candidate under one index.
//
// For each indexed field the candidate HAS, the duplicate must hold an
// equal value. For each indexed field the candidate LACKS, the
// duplicate must lack it too - two documents conflict only on the
// fields they actually share, and a missing field never equals a
// present one.
//
// When the candidate has none of the indexed fields there is nothing to
// violate; the second return value is false and the check is skipped
// entirely, so any number of documents may all lack a unique field set.
func uniquenessFilter(idx store.Index, candidate document.Object) (query.Filter, bool) {
	fields := store.IndexFields(idx)
	parts := make([]query.Filter, 0, len(fields))
	anyPresent := false
	for _, field := range fields {
		if v, ok := document.Resolve(candidate, field); ok {
			parts = append(parts, &query.Eq{Path: field, Value: v})
			anyPresent = true
		} else {
			parts = append(parts, &query.Not{Inner: &query.Exists{Path: field}})
		}
	}
	if !anyPresent {
		return nil, false
	}
	if len(parts) == 1 {
		return parts[0], true
	}
	return &query.And{Filters: parts}, true
}

// checkUnique validates that committing candidate under id would not
// leave two documents equal on any unique index's field set. The
// document being written is excluded from the scan so an update never
// conflicts with its own stored version.
func checkUnique(collectionName string, c *collection, id string, candidate document.Object) error {
	for _, idx := range c.indices {
		if !store.IndexUnique(idx) {
			continue
		}
		filter, ok := uniquenessFilter(idx, candidate)
		if !ok {
			continue
		}
		for _, otherID := range c.order {
			if otherID == id {
				continue
			}
			if query.Match(filter, c.docs[otherID], otherID) {
				return store.NewUniqueViolation(collectionName, id, store.IndexFields(idx))
			}
		}
	}
	return nil
}

// validateExistingDocs checks the stored documents against a unique
// index about to be declared. Every document is checked against all
// others (not half of them - a fixed static subset cannot prove the
// absence of a conflicting pair), stopping at the first conflict.
func validateExistingDocs(collectionName string, c *collection, idx store.Index) error {
	for _, id := range c.order {
		filter, ok := uniquenessFilter(idx, c.docs[id])
		if !ok {
			continue
		}
		for _, otherID := range c.order {
			if otherID == id {
				continue
			}
			if query.Match(filter, c.docs[otherID], otherID) {
				return store.NewUniqueViolation(collectionName, id, store.IndexFields(idx))
			}
		}
	}
	return nil
}
