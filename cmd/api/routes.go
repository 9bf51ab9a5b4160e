// cmd/api/routes.go
package main

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
)

// routes registers all HTTP endpoints and returns the configured router wrapped
// in the recoverPanic and rateLimit middlewares.
//
// Middleware chain (outermost → innermost):
//
//	recoverPanic → rateLimit → router
func (app *applicationDependencies) routes() http.Handler {
	router := httprouter.New()

	// Override the default httprouter error handlers to return JSON responses.
	router.NotFound = http.HandlerFunc(app.notFoundResponse)
	router.MethodNotAllowed = http.HandlerFunc(app.methodNotAllowedResponse)

	// Books: composite create, reads, link endpoints, cover upload.
	router.HandlerFunc(http.MethodPost, "/v1/books", app.createBookHandler)
	router.HandlerFunc(http.MethodGet, "/v1/books", app.listBooksHandler)
	router.HandlerFunc(http.MethodGet, "/v1/books/:id", app.showBookHandler)
	router.HandlerFunc(http.MethodPost, "/v1/books/:id/authors/:author_id", app.addBookAuthorHandler)
	router.HandlerFunc(http.MethodPost, "/v1/books/:id/genres/:genre_id", app.addBookGenreHandler)
	router.HandlerFunc(http.MethodPost, "/v1/books/:id/cover", app.uploadBookCoverHandler)

	// Reference entities and friends.
	router.HandlerFunc(http.MethodPost, "/v1/authors", app.createAuthorHandler)
	router.HandlerFunc(http.MethodGet, "/v1/authors", app.listAuthorsHandler)
	router.HandlerFunc(http.MethodPost, "/v1/genres", app.createGenreHandler)
	router.HandlerFunc(http.MethodGet, "/v1/genres", app.listGenresHandler)
	router.HandlerFunc(http.MethodPost, "/v1/friends", app.createFriendHandler)
	router.HandlerFunc(http.MethodGet, "/v1/friends", app.listFriendsHandler)

	// Loans. DELETE closes the loan (stamps the return date).
	router.HandlerFunc(http.MethodPost, "/v1/loans", app.createLoanHandler)
	router.HandlerFunc(http.MethodGet, "/v1/loans", app.listLoansHandler)
	router.HandlerFunc(http.MethodGet, "/v1/loans/active", app.listActiveLoansHandler)
	router.HandlerFunc(http.MethodDelete, "/v1/loans/:id", app.closeLoanHandler)

	// Uploaded cover images are served read-only straight from disk.
	router.ServeFiles("/images/*filepath", http.Dir(app.config.uploadDir))

	// Wrap with middleware: recoverPanic is outermost so it catches panics
	// from rateLimit and router alike.
	return app.recoverPanic(app.rateLimit(router))
}
