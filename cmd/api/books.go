// cmd/api/books.go
// HTTP handlers for the books resource: the composite create transaction,
// reads, and the endpoints that link an existing author or genre to a book.
package main

import (
	"errors"
	"net/http"
	"time"

	"github.com/yacineKHA/library-api/internal/data"
	"github.com/yacineKHA/library-api/internal/validator"
)

// createBookHandler handles POST /v1/books.
// The request body carries a full book descriptor: the book fields, the names
// of its series/authors/genres/publisher, one edition, and one copy. The whole
// thing is inserted as a single transaction; on any failure nothing is kept.
func (app *applicationDependencies) createBookHandler(w http.ResponseWriter, r *http.Request) {
	var input data.CreateBookInput

	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	// The copy's condition defaults when the client leaves it out.
	if input.Copy.Condition == "" {
		input.Copy.Condition = "good"
	}

	v := validator.New()
	v.Check(input.Title != "", "title", "must be provided")
	v.Check(len(input.Title) <= 500, "title", "must not be more than 500 bytes long")
	if input.PublicationYear != nil {
		v.Check(*input.PublicationYear > 0, "publication_year", "must be a positive year")
		v.Check(*input.PublicationYear <= time.Now().Year()+1, "publication_year", "must not be in the future")
	}
	v.Check(validator.Unique(input.Authors), "authors", "must not contain duplicate names")
	v.Check(validator.Unique(input.Genres), "genres", "must not contain duplicate names")
	v.Check(input.Edition.Name != "", "edition.name", "must be provided")
	v.Check(input.Edition.ISBN != "", "edition.isbn", "must be provided")
	v.Check(input.Edition.Publisher != "", "edition.publisher", "must be provided")

	if !v.Valid() {
		app.failedValidationResponse(w, r, v.Errors)
		return
	}

	bookID, err := app.models.Books.InsertFull(&input)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrDuplicateEntry):
			app.conflictResponse(w, r, "an edition with this ISBN already exists")
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusCreated, envelope{"book_id": bookID}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// showBookHandler handles GET /v1/books/:id.
// Responds 404 if no book with that ID exists.
func (app *applicationDependencies) showBookHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "id")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	book, err := app.models.Books.Get(id)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"book": book}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// listBooksHandler handles GET /v1/books.
// It fetches every book from the database and returns them as a JSON array.
func (app *applicationDependencies) listBooksHandler(w http.ResponseWriter, r *http.Request) {
	books, err := app.models.Books.GetAll()
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"books": books}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// addBookAuthorHandler handles POST /v1/books/:id/authors/:author_id.
// It links an existing author to an existing book. Responds 404 if either
// does not exist, 409 if the link is already present.
func (app *applicationDependencies) addBookAuthorHandler(w http.ResponseWriter, r *http.Request) {
	bookID, err := app.readIDParam(r, "id")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	authorID, err := app.readIDParam(r, "author_id")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.models.Books.AddAuthor(bookID, authorID)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		case errors.Is(err, data.ErrDuplicateEntry):
			app.conflictResponse(w, r, "this author is already linked to the book")
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusCreated, envelope{"message": "author linked to book"}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// addBookGenreHandler handles POST /v1/books/:id/genres/:genre_id with the
// same contract as addBookAuthorHandler.
func (app *applicationDependencies) addBookGenreHandler(w http.ResponseWriter, r *http.Request) {
	bookID, err := app.readIDParam(r, "id")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	genreID, err := app.readIDParam(r, "genre_id")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.models.Books.AddGenre(bookID, genreID)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		case errors.Is(err, data.ErrDuplicateEntry):
			app.conflictResponse(w, r, "this genre is already linked to the book")
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusCreated, envelope{"message": "genre linked to book"}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
