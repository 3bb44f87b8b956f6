package store

import "context"

// KV is a durable key-value slot. Load reports ok=false when the key has
// never been saved or was removed.
type KV interface {
	Save(ctx context.Context, key, value string) error
	Load(ctx context.Context, key string) (value string, ok bool, err error)
	Remove(ctx context.Context, key string) error
}
