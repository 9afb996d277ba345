package sqliterepo

import (
	"context"

	"github.com/jmoiron/sqlx"
)

type txKey struct{}

func withTx(ctx context.Context, tx *sqlx.Tx) context.Context {
	return context.WithValue(ctx, txKey{}, tx)
}

func txFromCtx(ctx context.Context) (*sqlx.Tx, bool) {
	tx, ok := ctx.Value(txKey{}).(*sqlx.Tx)
	return tx, ok && tx != nil
}

func extFromCtx(ctx context.Context, base *sqlx.DB) sqlx.ExtContext {
	if tx, ok := txFromCtx(ctx); ok {
		return tx
	}
	return base
}
