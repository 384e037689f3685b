package memstore

import (
	"errors"
	"sort"

	"github.com/roach88/minidoc/internal/document"
	"github.com/roach88/minidoc/internal/query"
	"github.com/roach88/minidoc/internal/store"
)

// matchLocked scans the collection in insertion order and returns the
// ids of documents satisfying the filter. A nil filter matches
// everything.
func matchLocked(c *collection, filter query.Filter) []string {
	if filter == nil {
		filter = &query.Any{}
	}
	var ids []string
	for _, id := range c.order {
		if query.Match(filter, c.docs[id], id) {
			ids = append(ids, id)
		}
	}
	return ids
}

// applyOptionsLocked orders and windows a matched id set.
func applyOptionsLocked(c *collection, ids []string, opts store.FindOptions) []string {
	if opts.Order != nil {
		cmp := query.Comparator(opts.Order)
		sort.SliceStable(ids, func(i, j int) bool {
			return cmp(c.docs[ids[i]], c.docs[ids[j]]) < 0
		})
	}

	if opts.Skip > 0 {
		if opts.Skip >= len(ids) {
			return nil
		}
		ids = ids[opts.Skip:]
	}
	if opts.Limit > 0 && opts.Limit < len(ids) {
		ids = ids[:opts.Limit]
	}
	return ids
}

// FindDocs returns matching documents with their ids.
func (s *MemStore) FindDocs(collectionName string, filter query.Filter, opts store.FindOptions) ([]store.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.collections[collectionName]
	if !ok {
		return nil, store.NewUnknownCollection(collectionName)
	}

	ids := applyOptionsLocked(c, matchLocked(c, filter), opts)
	entries := make([]store.Entry, 0, len(ids))
	for _, id := range ids {
		entries = append(entries, store.Entry{
			ID:  id,
			Doc: document.Clone(c.docs[id]).(document.Object),
		})
	}
	return entries, nil
}

// FindPartialDocs returns matching documents projected through sel.
func (s *MemStore) FindPartialDocs(collectionName string, filter query.Filter, sel query.Select, opts store.FindOptions) ([]store.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.collections[collectionName]
	if !ok {
		return nil, store.NewUnknownCollection(collectionName)
	}

	ids := applyOptionsLocked(c, matchLocked(c, filter), opts)
	entries := make([]store.Entry, 0, len(ids))
	for _, id := range ids {
		partial, err := projectDoc(collectionName, id, c.docs[id], sel)
		if err != nil {
			return nil, err
		}
		entries = append(entries, store.Entry{ID: id, Doc: partial})
	}
	return entries, nil
}

// FilterDocs returns matching documents without ids.
//
// Deprecated: the id association is lost. Use FindDocs.
func (s *MemStore) FilterDocs(collectionName string, filter query.Filter, opts store.FindOptions) ([]document.Object, error) {
	entries, err := s.FindDocs(collectionName, filter, opts)
	if err != nil {
		return nil, err
	}
	docs := make([]document.Object, len(entries))
	for i, e := range entries {
		docs[i] = e.Doc
	}
	return docs, nil
}

// FilterDocIDs returns only the ids of matching documents.
func (s *MemStore) FilterDocIDs(collectionName string, filter query.Filter, opts store.FindOptions) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.collections[collectionName]
	if !ok {
		return nil, store.NewUnknownCollection(collectionName)
	}
	return applyOptionsLocked(c, matchLocked(c, filter), opts), nil
}

// CountDocs returns the number of matching documents.
func (s *MemStore) CountDocs(collectionName string, filter query.Filter) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.collections[collectionName]
	if !ok {
		return 0, store.NewUnknownCollection(collectionName)
	}
	return len(matchLocked(c, filter)), nil
}

// GetPartialDoc looks a document up by id and applies a partial select.
func (s *MemStore) GetPartialDoc(collectionName, id string, sel query.Select) (document.Object, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.collections[collectionName]
	if !ok {
		return nil, false, store.NewUnknownCollection(collectionName)
	}
	doc, exists := c.docs[id]
	if !exists {
		return nil, false, nil
	}
	partial, err := projectDoc(collectionName, id, doc, sel)
	if err != nil {
		return nil, false, err
	}
	return partial, true, nil
}

// projectDoc applies a projection and translates projection failures
// into the store error taxonomy.
func projectDoc(collectionName, id string, doc document.Object, sel query.Select) (document.Object, error) {
	partial, err := query.Project(doc, sel)
	if err != nil {
		var projErr *query.InvalidProjectionError
		if errors.As(err, &projErr) {
			return nil, store.NewInvalidProjection(collectionName, id, projErr.Error())
		}
		return nil, err
	}
	return partial, nil
}

// UpdateMany applies the patch to every matching document. The first
// per-document failure stops the batch; earlier updates stay committed.
func (s *MemStore) UpdateMany(collectionName string, filter query.Filter, patch document.Object) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.collections[collectionName]
	if !ok {
		return 0, store.NewUnknownCollection(collectionName)
	}

	updated := 0
	for _, id := range matchLocked(c, filter) {
		if err := s.updateDocLocked(collectionName, c, id, patch); err != nil {
			return updated, err
		}
		updated++
	}
	return updated, nil
}

// ReplaceMany replaces every matching document with doc, with the same
// batch semantics as UpdateMany.
func (s *MemStore) ReplaceMany(collectionName string, filter query.Filter, doc document.Object) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.collections[collectionName]
	if !ok {
		return 0, store.NewUnknownCollection(collectionName)
	}

	replaced := 0
	for _, id := range matchLocked(c, filter) {
		if err := s.replaceDocLocked(collectionName, c, id, doc); err != nil {
			return replaced, err
		}
		replaced++
	}
	return replaced, nil
}

// DeleteMany removes every matching document.
func (s *MemStore) DeleteMany(collectionName string, filter query.Filter) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.collections[collectionName]
	if !ok {
		return 0, store.NewUnknownCollection(collectionName)
	}

	ids := matchLocked(c, filter)
	for _, id := range ids {
		s.deleteDocLocked(c, id)
	}
	return len(ids), nil
}
