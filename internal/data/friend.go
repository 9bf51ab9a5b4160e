// internal/data/friend.go
package data

import (
	"database/sql"
	"errors"
)

// Friend is a borrower identity: someone a copy can be loaned to.
type Friend struct {
	ID    int64   `json:"id"`
	Name  string  `json:"name"`
	Email *string `json:"email,omitempty"`
	Phone *string `json:"phone,omitempty"`
}

// FriendModel wraps a *sql.DB connection and provides methods for the friends table.
type FriendModel struct {
	DB *sql.DB // Shared database connection pool
}

// Insert adds a new friend record, writing the database-assigned id back into friend.
func (m FriendModel) Insert(friend *Friend) error {
	query := `
		INSERT INTO friends (name, email, phone)
		VALUES ($1, $2, $3)
		RETURNING id`

	return m.DB.QueryRow(query, friend.Name, friend.Email, friend.Phone).Scan(&friend.ID)
}

// Get retrieves a single friend by id.
// Returns ErrRecordNotFound if no friend with the given id exists.
func (m FriendModel) Get(id int64) (*Friend, error) {
	if id < 1 {
		return nil, ErrRecordNotFound
	}

	query := `SELECT id, name, email, phone FROM friends WHERE id = $1`

	var friend Friend
	err := m.DB.QueryRow(query, id).Scan(&friend.ID, &friend.Name, &friend.Email, &friend.Phone)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	return &friend, nil
}

// GetAll returns every friend, ordered by name.
func (m FriendModel) GetAll() ([]*Friend, error) {
	query := `SELECT id, name, email, phone FROM friends ORDER BY name`

	rows, err := m.DB.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	friends := []*Friend{}
	for rows.Next() {
		var friend Friend
		if err := rows.Scan(&friend.ID, &friend.Name, &friend.Email, &friend.Phone); err != nil {
			return nil, err
		}
		friends = append(friends, &friend)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return friends, nil
}
