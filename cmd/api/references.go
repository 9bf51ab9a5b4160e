// cmd/api/references.go
// HTTP handlers for the name-keyed reference entities that have their own
// endpoints: authors and genres. Publishers and series are only ever created
// implicitly through the composite book-create transaction.
package main

import (
	"errors"
	"net/http"

	"github.com/yacineKHA/library-api/internal/data"
	"github.com/yacineKHA/library-api/internal/validator"
)

// createReference decodes a {"name": ...} body, validates it, and inserts a
// row through the given model. Authors and genres share this exact flow; only
// the model and the envelope key differ.
func (app *applicationDependencies) createReference(w http.ResponseWriter, r *http.Request, model data.ReferenceModel, key string) {
	var input struct {
		Name string `json:"name"`
	}

	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	v := validator.New()
	v.Check(input.Name != "", "name", "must be provided")
	v.Check(len(input.Name) <= 500, "name", "must not be more than 500 bytes long")
	if !v.Valid() {
		app.failedValidationResponse(w, r, v.Errors)
		return
	}

	ref := &data.Reference{Name: input.Name}
	err = model.Insert(ref)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrDuplicateEntry):
			app.conflictResponse(w, r, key+" with this name already exists")
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusCreated, envelope{key: ref}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// listReference returns every row of the given reference table.
func (app *applicationDependencies) listReference(w http.ResponseWriter, r *http.Request, model data.ReferenceModel, key string) {
	refs, err := model.GetAll()
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{key: refs}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// createAuthorHandler handles POST /v1/authors.
func (app *applicationDependencies) createAuthorHandler(w http.ResponseWriter, r *http.Request) {
	app.createReference(w, r, app.models.Authors, "author")
}

// listAuthorsHandler handles GET /v1/authors.
func (app *applicationDependencies) listAuthorsHandler(w http.ResponseWriter, r *http.Request) {
	app.listReference(w, r, app.models.Authors, "authors")
}

// createGenreHandler handles POST /v1/genres.
func (app *applicationDependencies) createGenreHandler(w http.ResponseWriter, r *http.Request) {
	app.createReference(w, r, app.models.Genres, "genre")
}

// listGenresHandler handles GET /v1/genres.
func (app *applicationDependencies) listGenresHandler(w http.ResponseWriter, r *http.Request) {
	app.listReference(w, r, app.models.Genres, "genres")
}
