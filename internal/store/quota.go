package store

import (
	"context"
	"fmt"
)

// quotaStore rejects entries whose key plus value exceed limit bytes, the way
// browser storage rejects oversized writes.
type quotaStore struct {
	Store
	limit int
}

func withQuota(s Store, limit int) Store {
	if limit <= 0 {
		return s
	}
	return &quotaStore{Store: s, limit: limit}
}

func (q *quotaStore) Set(ctx context.Context, key string, value []byte) error {
	if size := len(key) + len(value); size > q.limit {
		return fmt.Errorf("%w: %d bytes over a %d byte limit", ErrQuotaExceeded, size, q.limit)
	}
	return q.Store.Set(ctx, key, value)
}
