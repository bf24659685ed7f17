// Package postgres implements the repository contracts over a pgx connection
// pool. Query semantics mirror the in-memory store.
package postgres

// Store implements repository.Store over Postgres.
type Store struct {
	db *DB
}

// NewStore creates a new Postgres-backed store.
func NewStore(db *DB) *Store {
	return &Store{db: db}
}
