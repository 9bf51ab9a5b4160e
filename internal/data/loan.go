// internal/data/loan.go
// Loan lifecycle: the one part of the system with a real business rule.
// A copy can have at most one loan with a null return date, and that rule has
// to hold under concurrent requests, not just sequential ones. Insert takes a
// row lock on the copy before checking, and the partial unique index created
// in schema.go rejects the race at commit time as a second line of defense.
package data

import (
	"database/sql"
	"errors"
	"time"
)

// Loan records a copy being lent to a friend. ReturnedAt is nil while the
// loan is open; closing a loan stamps the return date and keeps the row, so
// the loans table doubles as lending history.
type Loan struct {
	ID         int64      `json:"id"`
	CopyID     int64      `json:"copy_id"`
	FriendID   int64      `json:"friend_id"`
	LoanedAt   time.Time  `json:"loaned_at"`
	ReturnedAt *time.Time `json:"returned_at,omitempty"`
}

// ActiveLoan is a Loan joined with the borrower's name and the book's title
// for display, as returned by GetAllActive.
type ActiveLoan struct {
	ID         int64     `json:"id"`
	CopyID     int64     `json:"copy_id"`
	FriendID   int64     `json:"friend_id"`
	LoanedAt   time.Time `json:"loaned_at"`
	FriendName string    `json:"friend_name"`
	BookTitle  string    `json:"book_title"`
}

// LoanModel wraps a *sql.DB connection and provides methods for the loans table.
type LoanModel struct {
	DB *sql.DB // Shared database connection pool
}

// Insert creates a new open loan of the given copy to the given friend.
// Returns ErrRecordNotFound if the copy or the friend does not exist, and
// ErrCopyOnLoan if the copy already has an open loan.
//
// All checks and the insert run in one transaction. SELECT ... FOR UPDATE on
// the copy row serializes concurrent loan attempts for the same copy, so two
// simultaneous calls cannot both pass the open-loan check.
func (m LoanModel) Insert(copyID, friendID int64) (*Loan, error) {
	if copyID < 1 || friendID < 1 {
		return nil, ErrRecordNotFound
	}

	tx, err := m.DB.Begin()
	if err != nil {
		return nil, err
	}
	// Rollback is a no-op once the transaction has been committed.
	defer tx.Rollback()

	var id int64
	err = tx.QueryRow(`SELECT id FROM copies WHERE id = $1 FOR UPDATE`, copyID).Scan(&id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}

	err = tx.QueryRow(`SELECT id FROM friends WHERE id = $1`, friendID).Scan(&id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}

	var onLoan bool
	err = tx.QueryRow(
		`SELECT EXISTS (SELECT 1 FROM loans WHERE copy_id = $1 AND returned_at IS NULL)`,
		copyID,
	).Scan(&onLoan)
	if err != nil {
		return nil, err
	}
	if onLoan {
		return nil, ErrCopyOnLoan
	}

	loan := &Loan{CopyID: copyID, FriendID: friendID}
	err = tx.QueryRow(
		`INSERT INTO loans (copy_id, friend_id) VALUES ($1, $2) RETURNING id, loaned_at`,
		copyID, friendID,
	).Scan(&loan.ID, &loan.LoanedAt)
	if err != nil {
		// The partial unique index caught a race the check missed.
		if isUniqueViolation(err) {
			return nil, ErrCopyOnLoan
		}
		return nil, err
	}

	if err = tx.Commit(); err != nil {
		return nil, err
	}
	return loan, nil
}

// Close marks the loan with the given id as returned by stamping today's date.
// Only an open loan matches; Close returns ErrRecordNotFound whether the id
// never existed or the loan was already closed, with no distinction between
// the two. The row is retained as history.
func (m LoanModel) Close(id int64) error {
	if id < 1 {
		return ErrRecordNotFound
	}

	query := `
		UPDATE loans
		SET returned_at = CURRENT_DATE
		WHERE id = $1 AND returned_at IS NULL`

	result, err := m.DB.Exec(query, id)
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

// GetAll returns the full loan history, open and closed, newest first.
func (m LoanModel) GetAll() ([]*Loan, error) {
	query := `
		SELECT id, copy_id, friend_id, loaned_at, returned_at
		FROM loans
		ORDER BY id DESC`

	rows, err := m.DB.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	loans := []*Loan{}
	for rows.Next() {
		var loan Loan
		err := rows.Scan(&loan.ID, &loan.CopyID, &loan.FriendID, &loan.LoanedAt, &loan.ReturnedAt)
		if err != nil {
			return nil, err
		}
		loans = append(loans, &loan)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return loans, nil
}

// GetAllActive returns every open loan with the borrower's name and the book's
// title joined in. No pagination: the full open-loan set is returned.
func (m LoanModel) GetAllActive() ([]*ActiveLoan, error) {
	query := `
		SELECT loans.id, loans.copy_id, loans.friend_id, loans.loaned_at,
		       friends.name, books.title
		FROM loans
		JOIN friends ON loans.friend_id = friends.id
		JOIN copies ON loans.copy_id = copies.id
		JOIN editions ON copies.edition_id = editions.id
		JOIN books ON editions.book_id = books.id
		WHERE loans.returned_at IS NULL
		ORDER BY loans.id DESC`

	rows, err := m.DB.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	loans := []*ActiveLoan{}
	for rows.Next() {
		var loan ActiveLoan
		err := rows.Scan(
			&loan.ID,
			&loan.CopyID,
			&loan.FriendID,
			&loan.LoanedAt,
			&loan.FriendName,
			&loan.BookTitle,
		)
		if err != nil {
			return nil, err
		}
		loans = append(loans, &loan)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return loans, nil
}
