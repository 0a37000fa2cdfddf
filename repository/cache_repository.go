package repository

import "context"

// CacheRepository stores serialized projections keyed by their inputs.
type CacheRepository interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key string, value string) error
}
