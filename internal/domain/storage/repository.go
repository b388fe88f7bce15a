package storage

import "context"

type Repository interface {
	// Put inserts or replaces the object at (bucket, path).
	Put(ctx context.Context, obj Object) error
	Get(ctx context.Context, bucket, objectPath string) (Object, bool, error)
	// LatestByPrefix returns the most recently created object under prefix.
	LatestByPrefix(ctx context.Context, bucket, prefix string) (Object, bool, error)
}
