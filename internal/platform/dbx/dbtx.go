// Package dbx agrupa lo mínimo de database/sql que comparten los repos:
// una interfaz común a *sql.DB y *sql.Tx y un helper transaccional.
package dbx

import (
	"context"
	"database/sql"
)

// DBTX lo cumplen tanto *sql.DB como *sql.Tx.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// WithTx ejecuta fn dentro de una transacción: commit si fn devuelve nil,
// rollback si devuelve error o hace panic (el panic se relanza).
func WithTx(ctx context.Context, db *sql.DB, fn func(ctx context.Context, tx DBTX) error) (err error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback()
			return
		}
		err = tx.Commit()
	}()

	return fn(ctx, tx)
}
