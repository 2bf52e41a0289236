// internal/kv/kv.go
//
// String key/value persistence used for best scores.
// Implementations:
//   - Memory: map guarded by RWMutex; lost on restart.
//   - SQLite: single table in a local database file.
//   - Redis:  plain GET/SET against a shared server.
//
// Prefixed scopes any KV to one browser so the same keys can be reused per visitor.

package kv

import "context"

// KV is the get/set contract the score store depends on.
type KV interface {
	// Get returns the stored value and whether the key exists.
	Get(ctx context.Context, key string) (string, bool, error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error
}

type prefixed struct {
	kv     KV
	prefix string
}

// Prefixed returns a view of kv whose keys are namespaced with prefix + ":".
func Prefixed(kv KV, prefix string) KV {
	return &prefixed{kv: kv, prefix: prefix + ":"}
}

func (p *prefixed) Get(ctx context.Context, key string) (string, bool, error) {
	return p.kv.Get(ctx, p.prefix+key)
}

func (p *prefixed) Set(ctx context.Context, key, value string) error {
	return p.kv.Set(ctx, p.prefix+key, value)
}
