package store_test

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"uxfomo/internal/config"
	"uxfomo/internal/store"
)

type backendCase struct {
	name string
	open func(t *testing.T, dir string) store.Store
}

func backends() []backendCase {
	return []backendCase{
		{"sqlite", func(t *testing.T, dir string) store.Store {
			s, err := store.OpenSQLite(filepath.Join(dir, "test.db"))
			require.NoError(t, err)
			return s
		}},
		{"bolt", func(t *testing.T, dir string) store.Store {
			s, err := store.OpenBolt(filepath.Join(dir, "test.bolt"), store.WithNoSync(true))
			require.NoError(t, err)
			return s
		}},
		{"file", func(t *testing.T, dir string) store.Store {
			s, err := store.NewFileStore(filepath.Join(dir, "files"))
			require.NoError(t, err)
			return s
		}},
	}
}

func TestBackendContract(t *testing.T) {
	all := append(backends(), backendCase{"memory", func(*testing.T, string) store.Store {
		return store.NewMemoryStore()
	}})
	for _, bc := range all {
		t.Run(bc.name, func(t *testing.T) {
			ctx := context.Background()
			s := bc.open(t, t.TempDir())
			t.Cleanup(func() { _ = s.Close() })

			_, err := s.Get(ctx, "uxfomo_profile_data")
			require.ErrorIs(t, err, store.ErrNotFound)

			require.NoError(t, s.Set(ctx, "uxfomo_profile_data", []byte(`{"name":"Ana"}`)))
			got, err := s.Get(ctx, "uxfomo_profile_data")
			require.NoError(t, err)
			require.Equal(t, `{"name":"Ana"}`, string(got))

			got[0] = 'X'
			again, err := s.Get(ctx, "uxfomo_profile_data")
			require.NoError(t, err)
			require.Equal(t, `{"name":"Ana"}`, string(again), "returned bytes must not alias stored data")

			require.NoError(t, s.Set(ctx, "uxfomo_profile_data", []byte(`{"name":"Bea"}`)))
			got, err = s.Get(ctx, "uxfomo_profile_data")
			require.NoError(t, err)
			require.Equal(t, `{"name":"Bea"}`, string(got))

			require.NoError(t, s.Set(ctx, "other/key", []byte("x")))
			require.NoError(t, s.Delete(ctx, "uxfomo_profile_data"))
			_, err = s.Get(ctx, "uxfomo_profile_data")
			require.ErrorIs(t, err, store.ErrNotFound)

			other, err := s.Get(ctx, "other/key")
			require.NoError(t, err)
			require.Equal(t, "x", string(other))

			require.NoError(t, s.Delete(ctx, "never-set"))
		})
	}
}

func TestBackendsPersistAcrossReopen(t *testing.T) {
	for _, bc := range backends() {
		t.Run(bc.name, func(t *testing.T) {
			ctx := context.Background()
			dir := t.TempDir()

			s := bc.open(t, dir)
			require.NoError(t, s.Set(ctx, "k", []byte("persisted")))
			require.NoError(t, s.Close())

			reopened := bc.open(t, dir)
			t.Cleanup(func() { _ = reopened.Close() })
			got, err := reopened.Get(ctx, "k")
			require.NoError(t, err)
			require.Equal(t, "persisted", string(got))
		})
	}
}

func TestMemoryStoreClosed(t *testing.T) {
	s := store.NewMemoryStore()
	require.NoError(t, s.Close())
	_, err := s.Get(context.Background(), "k")
	require.ErrorIs(t, err, store.ErrClosed)
	require.ErrorIs(t, s.Set(context.Background(), "k", nil), store.ErrClosed)
}

func testConfig(t *testing.T, backend string) *config.Config {
	t.Helper()
	cfg := config.Default()
	base := t.TempDir()
	cfg.Paths.DataDir = filepath.Join(base, "data")
	cfg.Paths.ExportDir = filepath.Join(base, "exports")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Store.Backend = backend
	return &cfg
}

func TestOpenEachBackend(t *testing.T) {
	for _, backend := range []string{config.BackendSQLite, config.BackendBolt, config.BackendFile, config.BackendMemory} {
		t.Run(backend, func(t *testing.T) {
			cfg := testConfig(t, backend)
			s, err := store.Open(cfg)
			require.NoError(t, err)
			t.Cleanup(func() { _ = s.Close() })

			ctx := context.Background()
			require.NoError(t, s.Set(ctx, cfg.Store.Key, []byte("{}")))
			got, err := s.Get(ctx, cfg.Store.Key)
			require.NoError(t, err)
			require.Equal(t, "{}", string(got))
		})
	}
}

func TestOpenRejectsSecondWriter(t *testing.T) {
	cfg := testConfig(t, config.BackendSQLite)

	first, err := store.Open(cfg)
	require.NoError(t, err)

	_, err = store.Open(cfg)
	require.ErrorIs(t, err, store.ErrLocked)

	require.NoError(t, first.Close())
	require.NoError(t, first.Close(), "Close must be idempotent")

	second, err := store.Open(cfg)
	require.NoError(t, err)
	require.NoError(t, second.Close())
}

func TestQuotaRejectsOversizedEntries(t *testing.T) {
	cfg := testConfig(t, config.BackendMemory)
	cfg.Store.QuotaBytes = 64

	s, err := store.Open(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	ctx := context.Background()
	require.NoError(t, s.Set(ctx, "k", []byte(strings.Repeat("a", 63))))

	err = s.Set(ctx, "k", []byte(strings.Repeat("a", 64)))
	require.ErrorIs(t, err, store.ErrQuotaExceeded)

	got, err := s.Get(ctx, "k")
	require.NoError(t, err)
	require.Len(t, got, 63, "rejected write must leave the previous value")
}

func TestOpenRejectsUnknownBackend(t *testing.T) {
	cfg := testConfig(t, "redis")
	_, err := store.Open(cfg)
	require.Error(t, err)

	// The lock is released when opening fails.
	cfg.Store.Backend = config.BackendFile
	s, err := store.Open(cfg)
	require.NoError(t, err)
	require.NoError(t, s.Close())
}
