package repository

import "context"

// recordStore is the storage primitive each entity repository sits on.
// Misses are reported with ok=false, never as errors.
type recordStore[R record] interface {
	scan(ctx context.Context) ([]R, error)
	// findBy returns the records whose field equals value.
	findBy(ctx context.Context, field, value string) ([]R, error)
	get(ctx context.Context, id string) (r R, ok bool, err error)
	// insert fails with interfaces.ErrAlreadyExists when the id is taken.
	insert(ctx context.Context, r R) error
	// replace overwrites an existing record; ok=false when it is missing.
	replace(ctx context.Context, r R) (ok bool, err error)
	remove(ctx context.Context, id string) (ok bool, err error)
	// swap sets field to `to` only while it still equals `from`.
	swap(ctx context.Context, id, field, from, to string) (r R, ok bool, err error)
}
