// Package data provides the data models and database interaction logic
// for the library management system.
package data

import (
	"database/sql"
	"errors"
	"time"
)

// Book represents a single book record stored in the database.
// It maps directly to a row in the "books" table. Nullable columns are
// pointers so a missing value round-trips as JSON null.
type Book struct {
	ID              int64     `json:"id"`
	Title           string    `json:"title"`
	Summary         *string   `json:"summary,omitempty"`
	PublicationYear *int      `json:"publication_year,omitempty"`
	SeriesID        *int64    `json:"series_id,omitempty"`
	CoverURL        *string   `json:"cover_url,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

// EditionInput describes the single edition created alongside a new book.
type EditionInput struct {
	Name      string `json:"name"`
	ISBN      string `json:"isbn"`
	Publisher string `json:"publisher"`
}

// CopyInput describes the single physical copy created alongside a new book.
// ShelfID is accepted for forward compatibility but the copy is always created
// with its shelf unset; shelving happens after the book physically arrives.
type CopyInput struct {
	Condition string `json:"condition"`
	ShelfID   *int64 `json:"shelf_id"`
}

// CreateBookInput holds everything a client supplies when creating a new book:
// the book fields themselves plus the names of its series, authors, genres and
// publisher (resolved or created on the fly), one edition, and one copy.
type CreateBookInput struct {
	Title           string       `json:"title"`
	Summary         *string      `json:"summary"`
	PublicationYear *int         `json:"publication_year"`
	Series          *string      `json:"series"`
	Authors         []string     `json:"authors"`
	Genres          []string     `json:"genres"`
	Edition         EditionInput `json:"edition"`
	Copy            CopyInput    `json:"copy"`
}

// BookModel wraps a *sql.DB connection and provides methods for creating and
// reading book records, including the composite create-book transaction.
type BookModel struct {
	DB *sql.DB // Shared database connection pool
}

// InsertFull creates a book together with its series link, author and genre
// links, one edition, and one physical copy, as a single transaction. Any
// failure at any step rolls the whole thing back, so no partial rows are ever
// visible. Returns the id of the new book.
//
// A duplicate ISBN surfaces as ErrDuplicateEntry. Empty author and genre
// lists are legal: the book is simply created without links.
func (m BookModel) InsertFull(input *CreateBookInput) (int64, error) {
	tx, err := m.DB.Begin()
	if err != nil {
		return 0, err
	}
	// Rollback is a no-op once the transaction has been committed.
	defer tx.Rollback()

	series := ReferenceModel{DB: m.DB, Table: "series"}
	authors := ReferenceModel{DB: m.DB, Table: "authors"}
	genres := ReferenceModel{DB: m.DB, Table: "genres"}
	publishers := ReferenceModel{DB: m.DB, Table: "publishers"}

	// Resolve the series first so the book row can reference it.
	var seriesID *int64
	if input.Series != nil && *input.Series != "" {
		id, err := series.resolveTx(tx, *input.Series)
		if err != nil {
			return 0, err
		}
		seriesID = &id
	}

	var bookID int64
	err = tx.QueryRow(`
		INSERT INTO books (title, summary, publication_year, series_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id`,
		input.Title, input.Summary, input.PublicationYear, seriesID,
	).Scan(&bookID)
	if err != nil {
		return 0, err
	}

	// One link row per resolved author and genre.
	for _, name := range input.Authors {
		authorID, err := authors.resolveTx(tx, name)
		if err != nil {
			return 0, err
		}
		_, err = tx.Exec(`INSERT INTO book_authors (book_id, author_id) VALUES ($1, $2)`, bookID, authorID)
		if err != nil {
			return 0, err
		}
	}
	for _, name := range input.Genres {
		genreID, err := genres.resolveTx(tx, name)
		if err != nil {
			return 0, err
		}
		_, err = tx.Exec(`INSERT INTO book_genres (book_id, genre_id) VALUES ($1, $2)`, bookID, genreID)
		if err != nil {
			return 0, err
		}
	}

	publisherID, err := publishers.resolveTx(tx, input.Edition.Publisher)
	if err != nil {
		return 0, err
	}

	var editionID int64
	err = tx.QueryRow(`
		INSERT INTO editions (name, isbn, book_id, publisher_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id`,
		input.Edition.Name, input.Edition.ISBN, bookID, publisherID,
	).Scan(&editionID)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, ErrDuplicateEntry
		}
		return 0, err
	}

	// Shelf is deliberately left unset on creation.
	_, err = tx.Exec(`INSERT INTO copies (condition, edition_id) VALUES ($1, $2)`,
		input.Copy.Condition, editionID)
	if err != nil {
		return 0, err
	}

	if err = tx.Commit(); err != nil {
		return 0, err
	}
	return bookID, nil
}

// Get retrieves a single book by its primary key.
// Returns ErrRecordNotFound if no book with the given id exists.
func (m BookModel) Get(id int64) (*Book, error) {
	if id < 1 {
		return nil, ErrRecordNotFound
	}

	query := `
		SELECT id, title, summary, publication_year, series_id, cover_url, created_at
		FROM books
		WHERE id = $1`

	var book Book
	err := m.DB.QueryRow(query, id).Scan(
		&book.ID,
		&book.Title,
		&book.Summary,
		&book.PublicationYear,
		&book.SeriesID,
		&book.CoverURL,
		&book.CreatedAt,
	)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	return &book, nil
}

// GetAll retrieves every book, newest first.
func (m BookModel) GetAll() ([]*Book, error) {
	query := `
		SELECT id, title, summary, publication_year, series_id, cover_url, created_at
		FROM books
		ORDER BY id DESC`

	rows, err := m.DB.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	books := []*Book{}
	for rows.Next() {
		var book Book
		err := rows.Scan(
			&book.ID,
			&book.Title,
			&book.Summary,
			&book.PublicationYear,
			&book.SeriesID,
			&book.CoverURL,
			&book.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		books = append(books, &book)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return books, nil
}

// AddAuthor links an existing author to an existing book.
// Returns ErrRecordNotFound if either side is absent and ErrDuplicateEntry if
// the link already exists.
func (m BookModel) AddAuthor(bookID, authorID int64) error {
	return m.addLink(`INSERT INTO book_authors (book_id, author_id) VALUES ($1, $2)`, bookID, authorID)
}

// AddGenre links an existing genre to an existing book, with the same error
// contract as AddAuthor.
func (m BookModel) AddGenre(bookID, genreID int64) error {
	return m.addLink(`INSERT INTO book_genres (book_id, genre_id) VALUES ($1, $2)`, bookID, genreID)
}

// addLink inserts one join-table row. A foreign-key violation means one of the
// referenced rows does not exist; a unique violation means the link is already
// there.
func (m BookModel) addLink(query string, bookID, otherID int64) error {
	if bookID < 1 || otherID < 1 {
		return ErrRecordNotFound
	}

	_, err := m.DB.Exec(query, bookID, otherID)
	if err != nil {
		switch {
		case isForeignKeyViolation(err):
			return ErrRecordNotFound
		case isUniqueViolation(err):
			return ErrDuplicateEntry
		default:
			return err
		}
	}
	return nil
}

// UpdateCoverURL stores the uploaded cover image URL on the book row.
// Returns ErrRecordNotFound if the book does not exist.
func (m BookModel) UpdateCoverURL(id int64, coverURL string) error {
	result, err := m.DB.Exec(`UPDATE books SET cover_url = $1 WHERE id = $2`, coverURL, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}
