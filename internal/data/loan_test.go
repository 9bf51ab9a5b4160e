// internal/data/loan_test.go
package data

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func TestLoanLifecycle(t *testing.T) {
	db := newTestDB(t)
	models := NewModels(db)

	_, copyID := createTestBook(t, db)
	friendID := createTestFriend(t, db, "Paul")

	loan, err := models.Loans.Insert(copyID, friendID)
	require.NoError(t, err)
	assert.Equal(t, copyID, loan.CopyID)
	assert.Equal(t, friendID, loan.FriendID)
	assert.Nil(t, loan.ReturnedAt)
	assert.False(t, loan.LoanedAt.IsZero())

	// Second loan of the same copy without a return is a conflict.
	_, err = models.Loans.Insert(copyID, friendID)
	assert.ErrorIs(t, err, ErrCopyOnLoan)

	// Returning the copy closes the loan but keeps the row.
	require.NoError(t, models.Loans.Close(loan.ID))
	assert.Equal(t, 1, countRows(t, db, "loans"))

	history, err := models.Loans.GetAll()
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.NotNil(t, history[0].ReturnedAt)

	// Closing again reports not-found: an already-closed loan does not match.
	err = models.Loans.Close(loan.ID)
	assert.ErrorIs(t, err, ErrRecordNotFound)

	// With the loan closed, the copy can go out again.
	_, err = models.Loans.Insert(copyID, friendID)
	require.NoError(t, err)
}

func TestLoanInsertMissingCopyOrFriend(t *testing.T) {
	db := newTestDB(t)
	models := NewModels(db)

	_, copyID := createTestBook(t, db)
	friendID := createTestFriend(t, db, "Paul")

	_, err := models.Loans.Insert(9999, friendID)
	assert.ErrorIs(t, err, ErrRecordNotFound)

	_, err = models.Loans.Insert(copyID, 9999)
	assert.ErrorIs(t, err, ErrRecordNotFound)

	// Neither failed attempt left a row behind.
	assert.Equal(t, 0, countRows(t, db, "loans"))
}

func TestLoanSameFriendTwoCopies(t *testing.T) {
	db := newTestDB(t)
	models := NewModels(db)

	_, firstCopy := createTestBook(t, db)
	friendID := createTestFriend(t, db, "Paul")

	second := duneInput()
	second.Title = "Children of Dune"
	second.Edition.ISBN = "9780441104024"
	secondBookID, err := models.Books.InsertFull(second)
	require.NoError(t, err)

	var secondCopy int64
	require.NoError(t, db.QueryRow(`
		SELECT copies.id
		FROM copies
		JOIN editions ON copies.edition_id = editions.id
		WHERE editions.book_id = $1`, secondBookID).Scan(&secondCopy))

	// One friend may hold any number of different copies at once.
	_, err = models.Loans.Insert(firstCopy, friendID)
	require.NoError(t, err)
	_, err = models.Loans.Insert(secondCopy, friendID)
	require.NoError(t, err)
}

func TestLoanCloseUnknownID(t *testing.T) {
	db := newTestDB(t)
	models := NewModels(db)

	err := models.Loans.Close(12345)
	assert.ErrorIs(t, err, ErrRecordNotFound)
}

func TestGetAllActiveDenormalizes(t *testing.T) {
	db := newTestDB(t)
	models := NewModels(db)

	_, copyID := createTestBook(t, db)
	friendID := createTestFriend(t, db, "Paul")

	loan, err := models.Loans.Insert(copyID, friendID)
	require.NoError(t, err)

	active, err := models.Loans.GetAllActive()
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, loan.ID, active[0].ID)
	assert.Equal(t, "Paul", active[0].FriendName)
	assert.Equal(t, "Dune", active[0].BookTitle)

	// A closed loan drops out of the active set.
	require.NoError(t, models.Loans.Close(loan.ID))
	active, err = models.Loans.GetAllActive()
	require.NoError(t, err)
	assert.Empty(t, active)
}

// TestConcurrentLoanSingleWinner hammers Insert for one copy from many
// goroutines. Exactly one may win; every loser must see the conflict error,
// and afterwards exactly one open loan exists for the copy.
func TestConcurrentLoanSingleWinner(t *testing.T) {
	db := newTestDB(t)
	models := NewModels(db)

	_, copyID := createTestBook(t, db)
	friendID := createTestFriend(t, db, "Paul")

	const attempts = 8
	results := make(chan error, attempts)

	var g errgroup.Group
	for i := 0; i < attempts; i++ {
		g.Go(func() error {
			_, err := models.Loans.Insert(copyID, friendID)
			results <- err
			return nil
		})
	}
	require.NoError(t, g.Wait())
	close(results)

	var wins, conflicts int
	for err := range results {
		switch {
		case err == nil:
			wins++
		case assert.ErrorIs(t, err, ErrCopyOnLoan):
			conflicts++
		}
	}
	assert.Equal(t, 1, wins)
	assert.Equal(t, attempts-1, conflicts)

	var open int
	require.NoError(t, db.QueryRow(
		`SELECT count(*) FROM loans WHERE copy_id = $1 AND returned_at IS NULL`, copyID,
	).Scan(&open))
	assert.Equal(t, 1, open)
}
