package memstore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/minidoc/internal/document"
	"github.com/roach88/minidoc/internal/query"
	"github.com/roach88/minidoc/internal/store"
)

// newAgeStore seeds players a (20), b (22), c (18) in that order.
func newAgeStore(t *testing.T) *MemStore {
	t.Helper()
	s := New()
	require.NoError(t, s.AddCollection("players"))
	require.NoError(t, s.AddDoc("players", "a", player("alice", 20)))
	require.NoError(t, s.AddDoc("players", "b", player("bob", 22)))
	require.NoError(t, s.AddDoc("players", "c", player("carol", 18)))
	return s
}

func entryIDs(entries []store.Entry) []string {
	ids := make([]string, len(entries))
	for i, e := range entries {
		ids[i] = e.ID
	}
	return ids
}

func TestFindDocs_FilterAndInsertionOrder(t *testing.T) {
	s := newAgeStore(t)

	filter, err := query.NewOr(
		&query.Gt{Path: "age", Value: document.Number(21)},
		&query.Lt{Path: "age", Value: document.Number(19)},
	)
	require.NoError(t, err)

	entries, err := s.FindDocs("players", filter, store.FindOptions{})
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "c"}, entryIDs(entries))
	assert.True(t, document.Equal(document.String("bob"), entries[0].Doc["name"]))
}

func TestFindDocs_NilFilterMatchesAll(t *testing.T) {
	s := newAgeStore(t)

	entries, err := s.FindDocs("players", nil, store.FindOptions{})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, entryIDs(entries))
}

func TestFindDocs_Ordering(t *testing.T) {
	s := newAgeStore(t)

	entries, err := s.FindDocs("players", nil, store.FindOptions{
		Order: &query.Asc{Path: "age"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "a", "b"}, entryIDs(entries))

	entries, err = s.FindDocs("players", nil, store.FindOptions{
		Order: &query.Desc{Path: "age"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "a", "c"}, entryIDs(entries))
}

func TestFindDocs_TieBreakOrdering(t *testing.T) {
	s := New()
	require.NoError(t, s.AddCollection("players"))
	require.NoError(t, s.AddDoc("players", "p1", document.Object{
		"team": document.String("red"), "name": document.String("zed"),
	}))
	require.NoError(t, s.AddDoc("players", "p2", document.Object{
		"team": document.String("blue"), "name": document.String("amy"),
	}))
	require.NoError(t, s.AddDoc("players", "p3", document.Object{
		"team": document.String("red"), "name": document.String("amy"),
	}))

	entries, err := s.FindDocs("players", nil, store.FindOptions{
		Order: &query.AndOrder{
			Primary:   &query.Asc{Path: "team"},
			Secondary: &query.Asc{Path: "name"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"p2", "p3", "p1"}, entryIDs(entries))
}

func TestFindDocs_StableOnMissingOrderField(t *testing.T) {
	s := New()
	require.NoError(t, s.AddCollection("players"))
	require.NoError(t, s.AddDoc("players", "p1", document.Object{"x": document.Number(1)}))
	require.NoError(t, s.AddDoc("players", "p2", document.Object{"x": document.Number(2)}))
	require.NoError(t, s.AddDoc("players", "p3", document.Object{"x": document.Number(3)}))

	// No document carries the field; insertion order survives the sort.
	entries, err := s.FindDocs("players", nil, store.FindOptions{
		Order: &query.Asc{Path: "missing"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"p1", "p2", "p3"}, entryIDs(entries))
}

func TestFindDocs_SkipAndLimit(t *testing.T) {
	s := newAgeStore(t)
	opts := store.FindOptions{Order: &query.Asc{Path: "age"}}

	opts.Skip, opts.Limit = 1, 0
	entries, err := s.FindDocs("players", nil, opts)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, entryIDs(entries))

	opts.Skip, opts.Limit = 0, 2
	entries, err = s.FindDocs("players", nil, opts)
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "a"}, entryIDs(entries))

	opts.Skip, opts.Limit = 1, 1
	entries, err = s.FindDocs("players", nil, opts)
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, entryIDs(entries))

	opts.Skip, opts.Limit = 10, 0
	entries, err = s.FindDocs("players", nil, opts)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestFilterDocIDs(t *testing.T) {
	s := newAgeStore(t)

	ids, err := s.FilterDocIDs("players", &query.Gte{Path: "age", Value: document.Number(20)}, store.FindOptions{})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, ids)

	ids, err = s.FilterDocIDs("players", query.NewAnyOfDoc("c", "ghost"), store.FindOptions{})
	require.NoError(t, err)
	assert.Equal(t, []string{"c"}, ids)
}

func TestCountDocs(t *testing.T) {
	s := newAgeStore(t)

	n, err := s.CountDocs("players", nil)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	n, err = s.CountDocs("players", &query.Eq{Path: "name", Value: document.String("bob")})
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	_, err = s.CountDocs("ghosts", nil)
	assert.True(t, store.IsCode(err, store.ErrCodeUnknownCollection))
}

func TestFilterDocs_DropsIDs(t *testing.T) {
	s := newAgeStore(t)

	docs, err := s.FilterDocs("players", &query.Eq{Path: "name", Value: document.String("carol")}, store.FindOptions{})
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.True(t, document.Equal(document.Number(18), docs[0]["age"]))
}

func TestGetPartialDoc(t *testing.T) {
	s := New()
	require.NoError(t, s.AddCollection("players"))
	require.NoError(t, s.AddDoc("players", "p1", document.Object{
		"name": document.String("alice"),
		"contact": document.Object{
			"email": document.String("a@b.c"),
			"phone": document.String("555"),
		},
	}))

	sel := query.NewSelect(
		query.SelectField{Path: "contact.email", Alias: "email"},
		query.SelectField{Path: "nickname", Alias: "nickname"},
	)
	partial, found, err := s.GetPartialDoc("players", "p1", sel)
	require.NoError(t, err)
	require.True(t, found)
	assert.True(t, document.Equal(document.Object{
		"email":    document.String("a@b.c"),
		"nickname": document.Null{},
	}, partial))

	_, found, err = s.GetPartialDoc("players", "ghost", sel)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestGetPartialDoc_InvalidMerge(t *testing.T) {
	s := New()
	require.NoError(t, s.AddCollection("players"))
	require.NoError(t, s.AddDoc("players", "p1", document.Object{
		"name": document.String("alice"),
	}))

	sel := query.NewSelect(query.SelectField{Path: "name", Alias: query.MergeRoot})
	_, _, err := s.GetPartialDoc("players", "p1", sel)
	require.Error(t, err)
	assert.True(t, store.IsCode(err, store.ErrCodeInvalidProjection))
}

func TestFindPartialDocs(t *testing.T) {
	s := newAgeStore(t)

	sel := query.NewSelect(query.SelectField{Path: "name", Alias: "who"})
	entries, err := s.FindPartialDocs("players",
		&query.Gt{Path: "age", Value: document.Number(19)},
		sel,
		store.FindOptions{Order: &query.Desc{Path: "age"}})
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, []string{"b", "a"}, entryIDs(entries))
	assert.True(t, document.Equal(document.Object{"who": document.String("bob")}, entries[0].Doc))
}

func TestUpdateMany(t *testing.T) {
	s := newAgeStore(t)

	n, err := s.UpdateMany("players",
		&query.Gte{Path: "age", Value: document.Number(20)},
		document.Object{"adult": document.Bool(true)})
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	got, _, err := s.GetDoc("players", "a")
	require.NoError(t, err)
	assert.True(t, document.Equal(document.Bool(true), got["adult"]))

	got, _, err = s.GetDoc("players", "c")
	require.NoError(t, err)
	_, touched := got["adult"]
	assert.False(t, touched)
}

func TestUpdateMany_StopsWithoutRollback(t *testing.T) {
	s := New()
	require.NoError(t, s.AddCollection("players",
		store.NewFieldIndex("nick", store.DirectionAsc, true, "uq_nick")))
	require.NoError(t, s.AddDoc("players", "p1", document.Object{
		"team": document.String("red"),
	}))
	require.NoError(t, s.AddDoc("players", "p2", document.Object{
		"team": document.String("red"),
	}))

	// Patching both to the same nick: the first commits, the second
	// violates uniqueness and stops the batch.
	n, err := s.UpdateMany("players",
		&query.Eq{Path: "team", Value: document.String("red")},
		document.Object{"nick": document.String("ace")})
	require.Error(t, err)
	assert.True(t, store.IsCode(err, store.ErrCodeUniqueViolation))
	assert.Equal(t, 1, n)

	// The first update stays committed.
	got, _, getErr := s.GetDoc("players", "p1")
	require.NoError(t, getErr)
	assert.True(t, document.Equal(document.String("ace"), got["nick"]))

	got, _, getErr = s.GetDoc("players", "p2")
	require.NoError(t, getErr)
	_, touched := got["nick"]
	assert.False(t, touched)
}

func TestReplaceMany(t *testing.T) {
	s := newAgeStore(t)

	n, err := s.ReplaceMany("players",
		&query.Lt{Path: "age", Value: document.Number(21)},
		document.Object{"retired": document.Bool(true)})
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	got, _, err := s.GetDoc("players", "a")
	require.NoError(t, err)
	_, hasName := got["name"]
	assert.False(t, hasName)
	assert.True(t, document.Equal(document.Bool(true), got["retired"]))

	// Non-matching document untouched.
	got, _, err = s.GetDoc("players", "b")
	require.NoError(t, err)
	assert.True(t, document.Equal(document.String("bob"), got["name"]))
}

func TestDeleteMany(t *testing.T) {
	s := newAgeStore(t)

	n, err := s.DeleteMany("players", &query.Gt{Path: "age", Value: document.Number(19)})
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	remaining, err := s.FilterDocIDs("players", nil, store.FindOptions{})
	require.NoError(t, err)
	assert.Equal(t, []string{"c"}, remaining)

	// A filter matching nothing deletes nothing.
	n, err = s.DeleteMany("players", &query.Eq{Path: "name", Value: document.String("nobody")})
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestQueryOps_UnknownCollection(t *testing.T) {
	s := New()

	_, err := s.FindDocs("nope", nil, store.FindOptions{})
	assert.True(t, store.IsCode(err, store.ErrCodeUnknownCollection))

	_, err = s.UpdateMany("nope", nil, document.Object{})
	assert.True(t, store.IsCode(err, store.ErrCodeUnknownCollection))

	_, err = s.DeleteMany("nope", nil)
	assert.True(t, store.IsCode(err, store.ErrCodeUnknownCollection))
}
