package memstore

import (
	"io"
	"log/slog"
	"reflect"
	"slices"
	"strings"
	"sync"

	"github.com/roach88/minidoc/internal/document"
	"github.com/roach88/minidoc/internal/store"
)

// MemStore is the in-memory implementation of store.Store.
type MemStore struct {
	mu          sync.RWMutex
	logger      *slog.Logger
	collections map[string]*collection
}

// collection holds the documents and index declarations of one named
// collection. order tracks insertion order for deterministic scans.
type collection struct {
	docs    map[string]document.Object
	order   []string
	indices []store.Index
}

// Option configures a MemStore.
type Option func(*MemStore)

// WithLogger sets the structured logger. The default discards logs.
func WithLogger(logger *slog.Logger) Option {
	return func(s *MemStore) {
		s.logger = logger
	}
}

// New creates an empty in-memory store.
func New(opts ...Option) *MemStore {
	s := &MemStore{
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		collections: make(map[string]*collection),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// compile-time interface check
var _ store.Store = (*MemStore)(nil)

// ListCollections returns all collection names, sorted.
func (s *MemStore) ListCollections() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.collections))
	for name := range s.collections {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// FilterCollectionsByPrefix returns the sorted names of collections
// starting with prefix.
func (s *MemStore) FilterCollectionsByPrefix(prefix string) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var names []string
	for name := range s.collections {
		if strings.HasPrefix(name, prefix) {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	return names
}

// HasCollection reports whether the named collection exists.
func (s *MemStore) HasCollection(name string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.collections[name]
	return ok
}

// AddCollection creates an empty collection with the given indices.
func (s *MemStore) AddCollection(name string, indices ...store.Index) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.collections[name]; exists {
		return store.NewDuplicateCollection(name)
	}
	for _, idx := range indices {
		if err := store.ValidateIndex(idx); err != nil {
			return err
		}
	}

	s.collections[name] = &collection{
		docs:    make(map[string]document.Object),
		indices: slices.Clone(indices),
	}
	s.logger.Info("collection added", "collection", name, "indices", len(indices))
	return nil
}

// DropCollection removes a collection and its indices.
// Dropping an absent collection is a no-op.
func (s *MemStore) DropCollection(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.collections[name]; !exists {
		return nil
	}
	delete(s.collections, name)
	s.logger.Info("collection dropped", "collection", name)
	return nil
}

// HasCollectionIndex reports whether the collection declares an index
// with the given name.
func (s *MemStore) HasCollectionIndex(collectionName, name string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.collections[collectionName]
	if !ok {
		return false, store.NewUnknownCollection(collectionName)
	}
	for _, idx := range c.indices {
		if store.IndexName(idx) == name {
			return true, nil
		}
	}
	return false, nil
}

// AddCollectionIndex declares an index on an existing collection.
//
// A same-named existing index is replaced (drop-then-add). A unique
// index is validated against the stored documents first: every document
// is checked against all others, stopping at the first conflict. Any
// conflict aborts the whole operation - the previous index set and all
// documents stay untouched.
func (s *MemStore) AddCollectionIndex(collectionName string, idx store.Index) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := store.ValidateIndex(idx); err != nil {
		return err
	}
	c, ok := s.collections[collectionName]
	if !ok {
		return store.NewUnknownCollection(collectionName)
	}

	if store.IndexUnique(idx) && len(c.docs) >= 2 {
		if err := validateExistingDocs(collectionName, c, idx); err != nil {
			return err
		}
	}

	if name := store.IndexName(idx); name != "" {
		c.indices = slices.DeleteFunc(c.indices, func(existing store.Index) bool {
			return store.IndexName(existing) == name
		})
	}
	c.indices = append(c.indices, idx)
	s.logger.Info("index added",
		"collection", collectionName,
		"fields", store.IndexFields(idx),
		"unique", store.IndexUnique(idx))
	return nil
}

// DropCollectionIndex removes a specific index instance, matched by
// definition equality. Removing an undeclared index is a no-op.
func (s *MemStore) DropCollectionIndex(collectionName string, idx store.Index) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.collections[collectionName]
	if !ok {
		return store.NewUnknownCollection(collectionName)
	}
	c.indices = slices.DeleteFunc(c.indices, func(existing store.Index) bool {
		return existing == idx || reflect.DeepEqual(existing, idx)
	})
	return nil
}

// DropCollectionIndexByName removes every index carrying the given
// name. Removing an unknown name is a no-op.
func (s *MemStore) DropCollectionIndexByName(collectionName, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.collections[collectionName]
	if !ok {
		return store.NewUnknownCollection(collectionName)
	}
	if name == "" {
		return nil
	}
	c.indices = slices.DeleteFunc(c.indices, func(existing store.Index) bool {
		return store.IndexName(existing) == name
	})
	return nil
}

// AddDoc inserts a new document.
func (s *MemStore) AddDoc(collectionName, id string, doc document.Object) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.collections[collectionName]
	if !ok {
		return store.NewUnknownCollection(collectionName)
	}
	return s.addDocLocked(collectionName, c, id, doc)
}

func (s *MemStore) addDocLocked(collectionName string, c *collection, id string, doc document.Object) error {
	if _, exists := c.docs[id]; exists {
		return store.NewDuplicateDocument(collectionName, id)
	}
	if err := checkUnique(collectionName, c, id, doc); err != nil {
		return err
	}
	c.docs[id] = document.Clone(doc).(document.Object)
	c.order = append(c.order, id)
	s.logger.Debug("document added", "collection", collectionName, "doc", id)
	return nil
}

// UpdateDoc merges patch into the stored document and commits the
// merged result after uniqueness validation.
func (s *MemStore) UpdateDoc(collectionName, id string, patch document.Object) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.collections[collectionName]
	if !ok {
		return store.NewUnknownCollection(collectionName)
	}
	return s.updateDocLocked(collectionName, c, id, patch)
}

func (s *MemStore) updateDocLocked(collectionName string, c *collection, id string, patch document.Object) error {
	existing, ok := c.docs[id]
	if !ok {
		return store.NewDocumentNotFound(collectionName, id)
	}
	merged := document.Merge(existing, patch)
	if err := checkUnique(collectionName, c, id, merged); err != nil {
		return err
	}
	c.docs[id] = merged
	s.logger.Debug("document updated", "collection", collectionName, "doc", id)
	return nil
}

// UpsertDoc updates when the id exists, inserts otherwise.
func (s *MemStore) UpsertDoc(collectionName, id string, doc document.Object) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.collections[collectionName]
	if !ok {
		return store.NewUnknownCollection(collectionName)
	}
	if _, exists := c.docs[id]; exists {
		return s.updateDocLocked(collectionName, c, id, doc)
	}
	return s.addDocLocked(collectionName, c, id, doc)
}

// ReplaceDoc swaps the stored document wholesale after existence and
// uniqueness checks.
func (s *MemStore) ReplaceDoc(collectionName, id string, doc document.Object) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.collections[collectionName]
	if !ok {
		return store.NewUnknownCollection(collectionName)
	}
	return s.replaceDocLocked(collectionName, c, id, doc)
}

func (s *MemStore) replaceDocLocked(collectionName string, c *collection, id string, doc document.Object) error {
	if _, ok := c.docs[id]; !ok {
		return store.NewDocumentNotFound(collectionName, id)
	}
	if err := checkUnique(collectionName, c, id, doc); err != nil {
		return err
	}
	c.docs[id] = document.Clone(doc).(document.Object)
	s.logger.Debug("document replaced", "collection", collectionName, "doc", id)
	return nil
}

// DeleteDoc removes a document. Deleting an absent id is a no-op.
func (s *MemStore) DeleteDoc(collectionName, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.collections[collectionName]
	if !ok {
		return store.NewUnknownCollection(collectionName)
	}
	s.deleteDocLocked(c, id)
	return nil
}

func (s *MemStore) deleteDocLocked(c *collection, id string) {
	if _, exists := c.docs[id]; !exists {
		return
	}
	delete(c.docs, id)
	c.order = slices.DeleteFunc(c.order, func(existing string) bool {
		return existing == id
	})
}

// GetDoc looks a document up by id and returns a detached copy.
func (s *MemStore) GetDoc(collectionName, id string) (document.Object, bool, error) {
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
	return document.Clone(doc).(document.Object), true, nil
}
