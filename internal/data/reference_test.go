// internal/data/reference_test.go
package data

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReferenceResolveIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	authors := ReferenceModel{DB: db, Table: "authors"}

	tx, err := db.Begin()
	require.NoError(t, err)
	defer tx.Rollback()

	first, err := authors.resolveTx(tx, "Frank Herbert")
	require.NoError(t, err)

	// Resolving the same name again in the same transaction must reuse the
	// row, not create a duplicate or surface a constraint error.
	second, err := authors.resolveTx(tx, "Frank Herbert")
	require.NoError(t, err)
	assert.Equal(t, first, second)

	require.NoError(t, tx.Commit())
	assert.Equal(t, 1, countRows(t, db, "authors"))
}

func TestReferenceResolveAcrossTransactions(t *testing.T) {
	db := newTestDB(t)
	genres := ReferenceModel{DB: db, Table: "genres"}

	resolve := func(name string) int64 {
		tx, err := db.Begin()
		require.NoError(t, err)
		id, err := genres.resolveTx(tx, name)
		require.NoError(t, err)
		require.NoError(t, tx.Commit())
		return id
	}

	first := resolve("Sci-Fi")
	second := resolve("Sci-Fi")
	assert.Equal(t, first, second)
	assert.Equal(t, 1, countRows(t, db, "genres"))

	other := resolve("Fantasy")
	assert.NotEqual(t, first, other)
	assert.Equal(t, 2, countRows(t, db, "genres"))
}

func TestReferenceInsertDuplicateName(t *testing.T) {
	db := newTestDB(t)
	authors := NewModels(db).Authors

	require.NoError(t, authors.Insert(&Reference{Name: "Ursula K. Le Guin"}))

	err := authors.Insert(&Reference{Name: "Ursula K. Le Guin"})
	assert.ErrorIs(t, err, ErrDuplicateEntry)
	assert.Equal(t, 1, countRows(t, db, "authors"))
}

func TestReferenceGetAllOrdersByName(t *testing.T) {
	db := newTestDB(t)
	genres := NewModels(db).Genres

	for _, name := range []string{"Western", "Fantasy", "Sci-Fi"} {
		require.NoError(t, genres.Insert(&Reference{Name: name}))
	}

	refs, err := genres.GetAll()
	require.NoError(t, err)
	require.Len(t, refs, 3)
	assert.Equal(t, "Fantasy", refs[0].Name)
	assert.Equal(t, "Sci-Fi", refs[1].Name)
	assert.Equal(t, "Western", refs[2].Name)
}

func TestReferenceGetNotFound(t *testing.T) {
	db := newTestDB(t)
	series := NewModels(db).Series

	_, err := series.Get(42)
	assert.ErrorIs(t, err, ErrRecordNotFound)
}
