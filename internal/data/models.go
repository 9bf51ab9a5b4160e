// internal/data/models.go
package data

import (
	"database/sql"
	"errors"

	"github.com/lib/pq"
)

// Models is a top-level container that groups all database model types together.
// It is passed around the application via applicationDependencies so every handler
// has access to the database without importing sql directly.
type Models struct {
	Books      BookModel      // Books table plus the composite create transaction
	Authors    ReferenceModel // Name-keyed authors table
	Genres     ReferenceModel // Name-keyed genres table
	Publishers ReferenceModel // Name-keyed publishers table
	Series     ReferenceModel // Name-keyed series table
	Friends    FriendModel    // Borrower identities
	Loans      LoanModel      // Loan lifecycle
}

// NewModels constructs a Models value wired up to the given database connection pool.
// Call this once during application startup and store the result in applicationDependencies.
func NewModels(db *sql.DB) Models {
	return Models{
		Books:      BookModel{DB: db},
		Authors:    ReferenceModel{DB: db, Table: "authors"},
		Genres:     ReferenceModel{DB: db, Table: "genres"},
		Publishers: ReferenceModel{DB: db, Table: "publishers"},
		Series:     ReferenceModel{DB: db, Table: "series"},
		Friends:    FriendModel{DB: db},
		Loans:      LoanModel{DB: db},
	}
}

// Sentinel errors returned by the model layer. Handlers translate these into
// HTTP status codes; anything else is treated as an internal server error.
var (
	// ErrRecordNotFound is returned when a query finds no matching row.
	ErrRecordNotFound = errors.New("record not found")

	// ErrDuplicateEntry is returned when an insert violates a uniqueness
	// constraint (duplicate name, ISBN, or book link).
	ErrDuplicateEntry = errors.New("duplicate entry")

	// ErrCopyOnLoan is returned when a loan is requested for a copy that
	// already has an open loan.
	ErrCopyOnLoan = errors.New("copy already on loan")
)

// Postgres error codes we care about. See https://www.postgresql.org/docs/current/errcodes-appendix.html
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// isUniqueViolation reports whether err is a Postgres unique-constraint violation.
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == pgUniqueViolation
}

// isForeignKeyViolation reports whether err is a Postgres foreign-key violation,
// i.e. an insert referencing a row that does not exist.
func isForeignKeyViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == pgForeignKeyViolation
}
