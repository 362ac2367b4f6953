package testsupport

import (
	"context"
	"encoding/json"
	"testing"

	"uxfomo/internal/config"
	"uxfomo/internal/profile"
	"uxfomo/internal/store"
)

// MustOpenStore opens the configured store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) store.Store {
	t.Helper()

	s, err := store.Open(cfg)
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	t.Cleanup(func() {
		_ = s.Close()
	})
	return s
}

// SeedRecord writes rec under the configured profile key.
func SeedRecord(t testing.TB, s store.Store, cfg *config.Config, rec profile.Record) {
	t.Helper()

	data, err := json.Marshal(rec)
	if err != nil {
		t.Fatalf("marshal record: %v", err)
	}
	if err := s.Set(context.Background(), cfg.Store.Key, data); err != nil {
		t.Fatalf("seed record: %v", err)
	}
}
