// cmd/api/loans.go
// HTTP handlers for the loan lifecycle. The interesting rules live in
// data.LoanModel; here we just translate its sentinel errors to status codes:
// missing copy or friend → 404, copy already out → 409.
package main

import (
	"errors"
	"net/http"

	"github.com/yacineKHA/library-api/internal/data"
	"github.com/yacineKHA/library-api/internal/validator"
)

// createLoanHandler handles POST /v1/loans.
// The loan date is always the server's current date; clients cannot backdate.
func (app *applicationDependencies) createLoanHandler(w http.ResponseWriter, r *http.Request) {
	var input struct {
		CopyID   int64 `json:"copy_id"`
		FriendID int64 `json:"friend_id"`
	}

	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	v := validator.New()
	v.Check(input.CopyID > 0, "copy_id", "must be a positive integer")
	v.Check(input.FriendID > 0, "friend_id", "must be a positive integer")
	if !v.Valid() {
		app.failedValidationResponse(w, r, v.Errors)
		return
	}

	loan, err := app.models.Loans.Insert(input.CopyID, input.FriendID)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		case errors.Is(err, data.ErrCopyOnLoan):
			app.conflictResponse(w, r, "this copy is already on loan")
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusCreated, envelope{"loan": loan}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// closeLoanHandler handles DELETE /v1/loans/:id, i.e. the book coming back.
// The loan row is kept with its return date stamped. Responds 404 whether the
// loan never existed or was already returned; the two cases are not
// distinguished.
func (app *applicationDependencies) closeLoanHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "id")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.models.Loans.Close(id)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"message": "loan successfully returned"}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// listLoansHandler handles GET /v1/loans: the full history, open and closed.
func (app *applicationDependencies) listLoansHandler(w http.ResponseWriter, r *http.Request) {
	loans, err := app.models.Loans.GetAll()
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"loans": loans}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// listActiveLoansHandler handles GET /v1/loans/active.
// Each row carries the borrower's name and the book's title so a client can
// render the list without extra lookups.
func (app *applicationDependencies) listActiveLoansHandler(w http.ResponseWriter, r *http.Request) {
	loans, err := app.models.Loans.GetAllActive()
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"loans": loans}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
