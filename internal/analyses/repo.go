package analyses

import "context"

// Repo defines persistence operations for analysis records. The collection
// is append-only: create and count are the only operations.
type Repo interface {
	Create(ctx context.Context, rec Record) error
	Count(ctx context.Context) (int64, error)
}
