package data

import (
	"database/sql"
	"errors"
)

// Sentinel errors used for stable error mapping between the data layer
// and the HTTP handlers.
var (
	// ErrRecordNotFound is returned when a lookup finds no matching row.
	ErrRecordNotFound = errors.New("record not found")

	// ErrAlreadyTerminated is returned when a soft delete targets a book
	// that has already been terminated. It marks an idempotent repeat,
	// not a failure.
	ErrAlreadyTerminated = errors.New("book already terminated")
)

// Models is a top-level container that groups all database model types
// together. It is passed around the application via applicationDependencies
// so every handler has access to the database without importing sql
// directly.
type Models struct {
	Books BookStore
}

// NewModels constructs a Models value wired up to the given database
// connection pool. Call this once during application startup.
func NewModels(db *sql.DB) Models {
	return Models{
		Books: BookModel{DB: db},
	}
}
