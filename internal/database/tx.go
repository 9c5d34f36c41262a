package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

var writeTxOptions = &sql.TxOptions{Isolation: sql.LevelReadCommitted}

// WithTransaction runs fn in a read-committed transaction. The transaction
// is rolled back if fn fails or panics; fn's error comes back unwrapped so
// order sentinels still match with errors.Is.
func WithTransaction(ctx context.Context, db TxBeginner, fn func(*sql.Tx) error) (err error) {
	tx, err := db.BeginTx(ctx, writeTxOptions)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	committed := false
	defer func() {
		if committed {
			return
		}
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			err = errors.Join(err, fmt.Errorf("rollback transaction: %w", rbErr))
		}
	}()

	if err = fn(tx); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	committed = true

	return nil
}
