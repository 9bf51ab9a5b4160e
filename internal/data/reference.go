// internal/data/reference.go
// A single generic model covers the four name-keyed lookup tables (authors,
// genres, publishers, series). They share the same shape: an id plus a unique
// name, created lazily on first use and never updated or deleted.
package data

import (
	"database/sql"
	"errors"
	"fmt"
)

// Reference is a shared lookup row identified by its unique name.
type Reference struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// ReferenceModel provides database operations for one name-keyed lookup table.
// Table is fixed at construction time in NewModels; it is never derived from
// user input, so interpolating it into queries is safe.
type ReferenceModel struct {
	DB    *sql.DB
	Table string
}

// Insert creates a new reference row with the given name.
// Returns ErrDuplicateEntry if a row with that name already exists.
func (m ReferenceModel) Insert(ref *Reference) error {
	query := fmt.Sprintf(`INSERT INTO %s (name) VALUES ($1) RETURNING id`, m.Table)

	err := m.DB.QueryRow(query, ref.Name).Scan(&ref.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateEntry
		}
		return err
	}
	return nil
}

// GetAll returns every row in the table, ordered by name.
func (m ReferenceModel) GetAll() ([]*Reference, error) {
	query := fmt.Sprintf(`SELECT id, name FROM %s ORDER BY name`, m.Table)

	rows, err := m.DB.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	refs := []*Reference{}
	for rows.Next() {
		var ref Reference
		if err := rows.Scan(&ref.ID, &ref.Name); err != nil {
			return nil, err
		}
		refs = append(refs, &ref)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return refs, nil
}

// Get retrieves a single reference row by id.
// Returns ErrRecordNotFound if no row with the given id exists.
func (m ReferenceModel) Get(id int64) (*Reference, error) {
	if id < 1 {
		return nil, ErrRecordNotFound
	}

	query := fmt.Sprintf(`SELECT id, name FROM %s WHERE id = $1`, m.Table)

	var ref Reference
	err := m.DB.QueryRow(query, id).Scan(&ref.ID, &ref.Name)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	return &ref, nil
}

// resolveTx returns the id of the row named name, inserting it first if it does
// not exist yet. It runs inside the caller's transaction so the composite
// book-create sees a consistent view. ON CONFLICT DO NOTHING means resolving
// the same name twice never errors and never creates a second row; when the
// insert is a no-op we fall back to a plain lookup for the existing id.
func (m ReferenceModel) resolveTx(tx *sql.Tx, name string) (int64, error) {
	insert := fmt.Sprintf(
		`INSERT INTO %s (name) VALUES ($1) ON CONFLICT (name) DO NOTHING RETURNING id`,
		m.Table,
	)

	var id int64
	err := tx.QueryRow(insert, name).Scan(&id)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, err
	}

	// The name already existed, so the insert returned no row. Look it up.
	lookup := fmt.Sprintf(`SELECT id FROM %s WHERE name = $1`, m.Table)
	err = tx.QueryRow(lookup, name).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}
