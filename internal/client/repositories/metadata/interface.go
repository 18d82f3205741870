package metadata

import (
	"context"
)

// Repository is a key/value store for client bookkeeping such as the feed
// checkpoint. Get returns (nil, nil) for an absent key.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context) (map[string][]byte, error)
	Clear(ctx context.Context) error

	// GetInt parses the value of key as a base-10 integer. ok is false when
	// the key is absent.
	GetInt(ctx context.Context, key string) (value int64, ok bool, err error)
	SetInt(ctx context.Context, key string, value int64) error
}
