// cmd/api/friends.go
package main

import (
	"net/http"

	"github.com/yacineKHA/library-api/internal/data"
	"github.com/yacineKHA/library-api/internal/validator"
)

// createFriendHandler handles POST /v1/friends.
// A friend is a borrower identity: a name plus optional contact details.
// Friend names are not unique; two friends may share a name.
func (app *applicationDependencies) createFriendHandler(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Name  string  `json:"name"`
		Email *string `json:"email"`
		Phone *string `json:"phone"`
	}

	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	v := validator.New()
	v.Check(input.Name != "", "name", "must be provided")
	v.Check(len(input.Name) <= 500, "name", "must not be more than 500 bytes long")
	if input.Email != nil {
		v.Check(validator.Matches(*input.Email, validator.EmailRX), "email", "must be a valid email address")
	}
	if !v.Valid() {
		app.failedValidationResponse(w, r, v.Errors)
		return
	}

	friend := &data.Friend{
		Name:  input.Name,
		Email: input.Email,
		Phone: input.Phone,
	}

	err = app.models.Friends.Insert(friend)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusCreated, envelope{"friend": friend}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// listFriendsHandler handles GET /v1/friends.
func (app *applicationDependencies) listFriendsHandler(w http.ResponseWriter, r *http.Request) {
	friends, err := app.models.Friends.GetAll()
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"friends": friends}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
