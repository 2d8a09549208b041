package service

import (
	"context"
	"time"

	"basegraph.app/tenancy/core/db"
	"basegraph.app/tenancy/core/db/sqlc"
	"basegraph.app/tenancy/internal/store"
)

// StoreProvider exposes the stores bound to one unit of work.
type StoreProvider = store.Provider

// TxRunner runs functions within a transaction and provides stores bound to that transaction.
type TxRunner interface {
	WithTx(ctx context.Context, fn func(stores StoreProvider) error) error
}

type dbTxRunner struct {
	db *db.DB
}

// NewTxRunner builds a TxRunner backed by the core DB.
func NewTxRunner(db *db.DB) TxRunner {
	return &dbTxRunner{db: db}
}

func (r *dbTxRunner) WithTx(ctx context.Context, fn func(stores StoreProvider) error) error {
	return r.db.WithTx(ctx, func(q *sqlc.Queries) error {
		return fn(store.NewStores(q))
	})
}

// bounded derives a context for a single store call. A non-positive timeout leaves ctx alone.
func bounded(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, timeout)
}
