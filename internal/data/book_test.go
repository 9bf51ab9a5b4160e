// internal/data/book_test.go
package data

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInsertFullCreatesEverything(t *testing.T) {
	db := newTestDB(t)
	models := NewModels(db)

	bookID, err := models.Books.InsertFull(duneInput())
	require.NoError(t, err)
	require.Positive(t, bookID)

	book, err := models.Books.Get(bookID)
	require.NoError(t, err)
	assert.Equal(t, "Dune", book.Title)
	require.NotNil(t, book.PublicationYear)
	assert.Equal(t, 1965, *book.PublicationYear)
	require.NotNil(t, book.SeriesID)

	assert.Equal(t, 1, countRows(t, db, "series"))
	assert.Equal(t, 1, countRows(t, db, "authors"))
	assert.Equal(t, 1, countRows(t, db, "genres"))
	assert.Equal(t, 1, countRows(t, db, "publishers"))
	assert.Equal(t, 1, countRows(t, db, "book_authors"))
	assert.Equal(t, 1, countRows(t, db, "book_genres"))
	assert.Equal(t, 1, countRows(t, db, "editions"))
	assert.Equal(t, 1, countRows(t, db, "copies"))

	// The copy's shelf is always unset on creation.
	var shelfID *int64
	require.NoError(t, db.QueryRow(`SELECT shelf_id FROM copies`).Scan(&shelfID))
	assert.Nil(t, shelfID)
}

func TestInsertFullReusesReferenceEntities(t *testing.T) {
	db := newTestDB(t)
	models := NewModels(db)

	_, err := models.Books.InsertFull(duneInput())
	require.NoError(t, err)

	// Same author, genre, publisher and series; different book and ISBN.
	second := duneInput()
	second.Title = "Dune Messiah"
	second.Edition.ISBN = "9780441172696"
	_, err = models.Books.InsertFull(second)
	require.NoError(t, err)

	assert.Equal(t, 2, countRows(t, db, "books"))
	assert.Equal(t, 1, countRows(t, db, "authors"))
	assert.Equal(t, 1, countRows(t, db, "genres"))
	assert.Equal(t, 1, countRows(t, db, "publishers"))
	assert.Equal(t, 1, countRows(t, db, "series"))
}

func TestInsertFullDuplicateISBNRollsBack(t *testing.T) {
	db := newTestDB(t)
	models := NewModels(db)

	_, err := models.Books.InsertFull(duneInput())
	require.NoError(t, err)

	// Same ISBN but a brand-new book, author and genre. The edition insert
	// fails, and nothing from the second call may survive.
	second := duneInput()
	second.Title = "Not Dune"
	second.Authors = []string{"Somebody Else"}
	second.Genres = []string{"Mystery"}
	_, err = models.Books.InsertFull(second)
	assert.ErrorIs(t, err, ErrDuplicateEntry)

	assert.Equal(t, 1, countRows(t, db, "books"))
	assert.Equal(t, 1, countRows(t, db, "authors"))
	assert.Equal(t, 1, countRows(t, db, "genres"))
	assert.Equal(t, 1, countRows(t, db, "book_authors"))
	assert.Equal(t, 1, countRows(t, db, "book_genres"))
	assert.Equal(t, 1, countRows(t, db, "editions"))
	assert.Equal(t, 1, countRows(t, db, "copies"))
}

func TestInsertFullWithoutAuthorsOrGenres(t *testing.T) {
	db := newTestDB(t)
	models := NewModels(db)

	input := duneInput()
	input.Authors = nil
	input.Genres = nil
	input.Series = nil

	bookID, err := models.Books.InsertFull(input)
	require.NoError(t, err)

	book, err := models.Books.Get(bookID)
	require.NoError(t, err)
	assert.Nil(t, book.SeriesID)
	assert.Equal(t, 0, countRows(t, db, "book_authors"))
	assert.Equal(t, 0, countRows(t, db, "book_genres"))
}

func TestBookGetNotFound(t *testing.T) {
	db := newTestDB(t)
	models := NewModels(db)

	_, err := models.Books.Get(99)
	assert.ErrorIs(t, err, ErrRecordNotFound)
}

func TestAddAuthorLink(t *testing.T) {
	db := newTestDB(t)
	models := NewModels(db)

	bookID, _ := createTestBook(t, db)

	author := &Reference{Name: "Brian Herbert"}
	require.NoError(t, models.Authors.Insert(author))

	require.NoError(t, models.Books.AddAuthor(bookID, author.ID))
	assert.Equal(t, 2, countRows(t, db, "book_authors"))

	// Linking twice is a conflict.
	err := models.Books.AddAuthor(bookID, author.ID)
	assert.ErrorIs(t, err, ErrDuplicateEntry)

	// Either side missing is a not-found.
	err = models.Books.AddAuthor(bookID, 9999)
	assert.ErrorIs(t, err, ErrRecordNotFound)
	err = models.Books.AddAuthor(9999, author.ID)
	assert.ErrorIs(t, err, ErrRecordNotFound)
}

func TestAddGenreLink(t *testing.T) {
	db := newTestDB(t)
	models := NewModels(db)

	bookID, _ := createTestBook(t, db)

	genre := &Reference{Name: "Adventure"}
	require.NoError(t, models.Genres.Insert(genre))

	require.NoError(t, models.Books.AddGenre(bookID, genre.ID))

	err := models.Books.AddGenre(bookID, genre.ID)
	assert.ErrorIs(t, err, ErrDuplicateEntry)
}

func TestUpdateCoverURL(t *testing.T) {
	db := newTestDB(t)
	models := NewModels(db)

	bookID, _ := createTestBook(t, db)

	require.NoError(t, models.Books.UpdateCoverURL(bookID, "/images/book_1_abc.png"))

	book, err := models.Books.Get(bookID)
	require.NoError(t, err)
	require.NotNil(t, book.CoverURL)
	assert.Equal(t, "/images/book_1_abc.png", *book.CoverURL)

	err = models.Books.UpdateCoverURL(9999, "/images/nope.png")
	assert.ErrorIs(t, err, ErrRecordNotFound)
}
