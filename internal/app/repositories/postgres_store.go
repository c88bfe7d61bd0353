package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/AriaGT/sistema-libreria/internal/db"
)

// PostgresStore runs units of work as PostgreSQL transactions
type PostgresStore struct {
	db *db.PostgresDB
}

// NewPostgresStore creates a Store backed by the given connection pool
func NewPostgresStore(pg *db.PostgresDB) *PostgresStore {
	return &PostgresStore{db: pg}
}

// Atomic runs fn inside one transaction
func (s *PostgresStore) Atomic(ctx context.Context, fn AtomicFn) error {
	return s.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		return fn(ctx, NewRepositories(tx))
	})
}

// Close releases the pool
func (s *PostgresStore) Close() {
	s.db.Close()
}
