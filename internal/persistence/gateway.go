package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"uxfomo/internal/logging"
	"uxfomo/internal/profile"
	"uxfomo/internal/store"
)

// Source tells where a loaded record came from.
type Source string

const (
	SourceStore    Source = "store"
	SourceDefaults Source = "defaults"
)

// LoadResult is the outcome of Gateway.Load. Record is always fully shaped.
// Err is set when the store could not be read; Issues lists the parts of the
// stored record that were replaced by defaults.
type LoadResult struct {
	Record profile.Record
	Source Source
	Err    error
	Issues profile.Issues
}

// Gateway reads and writes the profile record under one key.
type Gateway struct {
	store    store.Store
	key      string
	defaults func() profile.Record
	logger   *slog.Logger
}

// Option configures a Gateway.
type Option func(*Gateway)

// WithLogger sets the gateway logger.
func WithLogger(logger *slog.Logger) Option {
	return func(g *Gateway) {
		g.logger = logger
	}
}

// WithDefaults overrides the canonical defaults.
func WithDefaults(defaults func() profile.Record) Option {
	return func(g *Gateway) {
		if defaults != nil {
			g.defaults = defaults
		}
	}
}

// NewGateway returns a gateway over s for key.
func NewGateway(s store.Store, key string, opts ...Option) *Gateway {
	g := &Gateway{store: s, key: key, defaults: profile.Defaults}
	for _, opt := range opts {
		opt(g)
	}
	g.logger = logging.NewComponentLogger(g.logger, "persistence").With(logging.String(logging.FieldStoreKey, key))
	return g
}

// Key returns the store key.
func (g *Gateway) Key() string {
	return g.key
}

// Defaults returns a fresh copy of the gateway's canonical record.
func (g *Gateway) Defaults() profile.Record {
	return g.defaults()
}

// Load reads and reconciles the stored record.
func (g *Gateway) Load(ctx context.Context) LoadResult {
	defaults := g.defaults()
	data, err := g.store.Get(ctx, g.key)
	switch {
	case errors.Is(err, store.ErrNotFound):
		g.logger.Debug("no stored profile, using defaults")
		return LoadResult{Record: defaults, Source: SourceDefaults}
	case err != nil:
		logging.WarnWithContext(g.logger, "stored profile unreadable", "profile_load_failed",
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check the store backend and data directory permissions"),
			logging.String(logging.FieldImpact, "showing default profile; edits will overwrite the stored copy"),
		)
		return LoadResult{Record: defaults, Source: SourceDefaults, Err: err}
	}

	rec, issues := profile.Reconcile(data, defaults)
	result := LoadResult{Record: rec, Source: SourceStore, Issues: issues}
	if len(strings.TrimSpace(string(data))) == 0 {
		result.Source = SourceDefaults
	}
	if len(issues) > 0 {
		if len(issues) == 1 && issues[0].Field == "" {
			result.Source = SourceDefaults
		}
		logging.WarnWithContext(g.logger, "stored profile partially malformed", "profile_reconcile_issues",
			logging.Int("issue_count", len(issues)),
			logging.String("fields", strings.Join(issues.Fields(), ",")),
			logging.Error(issues.Err()),
			logging.String(logging.FieldErrorHint, "edit the affected fields to rewrite them"),
			logging.String(logging.FieldImpact, "affected fields fall back to defaults"),
		)
	}
	return result
}

// Save serializes rec and writes it under the gateway key.
func (g *Gateway) Save(ctx context.Context, rec profile.Record) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode profile: %w", err)
	}
	if err := g.store.Set(ctx, g.key, data); err != nil {
		logging.ErrorWithContext(g.logger, "profile save failed", "profile_save_failed",
			logging.Error(err),
			logging.Int("bytes", len(data)),
			logging.String(logging.FieldErrorHint, hintFor(err)),
		)
		return fmt.Errorf("save profile: %w", err)
	}
	g.logger.Debug("profile saved", logging.Int("bytes", len(data)))
	return nil
}

// Reset deletes the stored record and returns the defaults. The defaults are
// returned even when the delete fails.
func (g *Gateway) Reset(ctx context.Context) (profile.Record, error) {
	defaults := g.defaults()
	if err := g.store.Delete(ctx, g.key); err != nil {
		logging.ErrorWithContext(g.logger, "profile reset failed", "profile_reset_failed",
			logging.Error(err),
			logging.String(logging.FieldErrorHint, hintFor(err)),
		)
		return defaults, fmt.Errorf("reset profile: %w", err)
	}
	g.logger.Info("profile reset to defaults")
	return defaults, nil
}

func hintFor(err error) string {
	switch {
	case errors.Is(err, store.ErrQuotaExceeded):
		return "remove or shrink local images, or raise store.quota_bytes"
	case errors.Is(err, store.ErrClosed):
		return "the store was closed before the write"
	default:
		return "check the store backend and data directory permissions"
	}
}
