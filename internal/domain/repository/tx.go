package repository

import "context"

// TxManager scopes a unit of work. Every repository call made with the ctx
// passed to fn joins the same transaction; fn returning an error rolls the
// whole unit back. Nesting WithinTx inside an active scope opens a savepoint,
// so an inner failure can be retried without poisoning the outer transaction.
type TxManager interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}
