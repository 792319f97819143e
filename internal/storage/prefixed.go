package storage

import "context"

// prefixedStore namespaces every key so several terminals can share one
// backing store.
type prefixedStore struct {
	inner  Store
	prefix string
}

// Prefixed wraps store so that keys are written as "<namespace>:<key>".
// An empty namespace returns store unchanged.
func Prefixed(store Store, namespace string) Store {
	if namespace == "" {
		return store
	}
	return &prefixedStore{inner: store, prefix: namespace + ":"}
}

func (p *prefixedStore) Get(ctx context.Context, key string) ([]byte, error) {
	return p.inner.Get(ctx, p.prefix+key)
}

func (p *prefixedStore) Set(ctx context.Context, key string, value []byte) error {
	return p.inner.Set(ctx, p.prefix+key, value)
}

func (p *prefixedStore) Delete(ctx context.Context, key string) error {
	return p.inner.Delete(ctx, p.prefix+key)
}
