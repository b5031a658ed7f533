package storage

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// withTx runs fn inside a transaction. The transaction is committed when fn
// returns nil and rolled back on every other exit path, including panics;
// the deferred rollback is a no-op once Commit has succeeded. Begin/commit
// failures are wrapped in a PersistenceError named after op.
func (db *DB) withTx(ctx context.Context, op string, fn func(tx pgx.Tx) error) error {
	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return &PersistenceError{Op: op, Err: err}
	}
	defer tx.Rollback(ctx) //nolint:errcheck // no-op after commit

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return &PersistenceError{Op: op, Err: err}
	}
	return nil
}
