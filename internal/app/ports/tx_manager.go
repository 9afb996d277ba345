package ports

import "context"

// TxManager runs fn with a context carrying one journal transaction.
// Repositories called with that context join it; nested calls do too.
type TxManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}
