package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"uxfomo/internal/config"
	"uxfomo/internal/logging"
)

var (
	// ErrNotFound is returned by Get when the key has no value.
	ErrNotFound = errors.New("key not found")
	// ErrQuotaExceeded is returned by Set when the entry is larger than the quota.
	ErrQuotaExceeded = errors.New("storage quota exceeded")
	// ErrLocked is returned by Open when another process holds the data directory.
	ErrLocked = errors.New("data directory is locked by another uxfomo process")
	// ErrClosed is returned after Close.
	ErrClosed = errors.New("store is closed")
)

// Store is a key-value byte store.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}

const (
	sqliteFileName = "uxfomo.db"
	boltFileName   = "uxfomo.bolt"
	fileStoreDir   = "store"
	lockFileName   = "uxfomo.lock"
)

// Option configures Open.
type Option func(*openOptions)

type openOptions struct {
	logger *slog.Logger
}

// WithLogger sets the logger used by Open and the returned store.
func WithLogger(logger *slog.Logger) Option {
	return func(o *openOptions) {
		o.logger = logger
	}
}

// Open returns the configured backend, locked for exclusive use and wrapped
// with the configured quota. Closing the store releases the lock.
func Open(cfg *config.Config, opts ...Option) (Store, error) {
	if cfg == nil {
		return nil, errors.New("store: nil config")
	}
	o := openOptions{}
	for _, opt := range opts {
		opt(&o)
	}
	logger := logging.NewComponentLogger(o.logger, "store")

	if cfg.Store.Backend == config.BackendMemory {
		return withQuota(NewMemoryStore(), cfg.Store.QuotaBytes), nil
	}

	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}
	lock, err := acquireLock(filepath.Join(cfg.Paths.DataDir, lockFileName))
	if err != nil {
		return nil, err
	}

	var backend Store
	var path string
	switch cfg.Store.Backend {
	case config.BackendSQLite:
		path = filepath.Join(cfg.Paths.DataDir, sqliteFileName)
		backend, err = OpenSQLite(path)
	case config.BackendBolt:
		path = filepath.Join(cfg.Paths.DataDir, boltFileName)
		backend, err = OpenBolt(path)
	case config.BackendFile:
		path = filepath.Join(cfg.Paths.DataDir, fileStoreDir)
		backend, err = NewFileStore(path)
	default:
		err = fmt.Errorf("store: unsupported backend %q", cfg.Store.Backend)
	}
	if err != nil {
		_ = lock.Unlock()
		return nil, err
	}

	logger.Debug("store opened",
		logging.String(logging.FieldBackend, cfg.Store.Backend),
		logging.String(logging.FieldPath, path),
	)
	return &lockedStore{Store: withQuota(backend, cfg.Store.QuotaBytes), lock: lock}, nil
}
