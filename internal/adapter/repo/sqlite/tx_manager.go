package sqliterepo

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

type TxManager struct {
	db *sqlx.DB
}

func NewTxManager(db *sqlx.DB) TxManager {
	return TxManager{db: db}
}

// RunInTx joins an enclosing transaction; sqlite has no nested transactions.
func (t TxManager) RunInTx(ctx context.Context, fn func(ctx context.Context) error) (retErr error) {
	if _, ok := txFromCtx(ctx); ok {
		return fn(ctx)
	}
	tx, err := t.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if retErr != nil {
			_ = tx.Rollback()
		}
	}()
	if err := fn(withTx(ctx, tx)); err != nil {
		return err
	}
	return tx.Commit()
}
