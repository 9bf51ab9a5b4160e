// internal/data/schema.go
// Schema bootstrap for the library database. Every statement is idempotent
// (IF NOT EXISTS) so EnsureSchema is safe to run on every startup and from tests.
package data

import "database/sql"

// schemaStatements are executed in order by EnsureSchema. Reference tables come
// first, then the tables that hold foreign keys into them.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS series (
		id   bigserial PRIMARY KEY,
		name text NOT NULL UNIQUE
	)`,
	`CREATE TABLE IF NOT EXISTS authors (
		id   bigserial PRIMARY KEY,
		name text NOT NULL UNIQUE
	)`,
	`CREATE TABLE IF NOT EXISTS genres (
		id   bigserial PRIMARY KEY,
		name text NOT NULL UNIQUE
	)`,
	`CREATE TABLE IF NOT EXISTS publishers (
		id   bigserial PRIMARY KEY,
		name text NOT NULL UNIQUE
	)`,
	`CREATE TABLE IF NOT EXISTS books (
		id               bigserial PRIMARY KEY,
		title            text NOT NULL,
		summary          text,
		publication_year integer,
		series_id        bigint REFERENCES series (id),
		cover_url        text,
		created_at       timestamptz NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS book_authors (
		book_id   bigint NOT NULL REFERENCES books (id),
		author_id bigint NOT NULL REFERENCES authors (id),
		PRIMARY KEY (book_id, author_id)
	)`,
	`CREATE TABLE IF NOT EXISTS book_genres (
		book_id  bigint NOT NULL REFERENCES books (id),
		genre_id bigint NOT NULL REFERENCES genres (id),
		PRIMARY KEY (book_id, genre_id)
	)`,
	`CREATE TABLE IF NOT EXISTS editions (
		id           bigserial PRIMARY KEY,
		name         text NOT NULL,
		isbn         text NOT NULL UNIQUE,
		book_id      bigint NOT NULL REFERENCES books (id),
		publisher_id bigint NOT NULL REFERENCES publishers (id)
	)`,
	`CREATE TABLE IF NOT EXISTS copies (
		id         bigserial PRIMARY KEY,
		condition  text NOT NULL DEFAULT 'good',
		shelf_id   bigint,
		edition_id bigint NOT NULL REFERENCES editions (id)
	)`,
	`CREATE TABLE IF NOT EXISTS friends (
		id    bigserial PRIMARY KEY,
		name  text NOT NULL,
		email text,
		phone text
	)`,
	`CREATE TABLE IF NOT EXISTS loans (
		id          bigserial PRIMARY KEY,
		copy_id     bigint NOT NULL REFERENCES copies (id),
		friend_id   bigint NOT NULL REFERENCES friends (id),
		loaned_at   date NOT NULL DEFAULT CURRENT_DATE,
		returned_at date
	)`,
	// The store-level guarantee behind the loan manager: at most one open loan
	// per copy, enforced even if two requests race past the existence check.
	`CREATE UNIQUE INDEX IF NOT EXISTS loans_one_open_per_copy
		ON loans (copy_id) WHERE returned_at IS NULL`,
}

// EnsureSchema creates all tables and indexes the application needs.
func EnsureSchema(db *sql.DB) error {
	for _, stmt := range schemaStatements {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}
