package persistence

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"uxfomo/internal/profile"
)

// SaveError reports that a mutation was applied in memory but could not be
// written.
type SaveError struct {
	Err error
}

func (e *SaveError) Error() string {
	return fmt.Sprintf("change kept in memory but not saved: %v", e.Err)
}

func (e *SaveError) Unwrap() error {
	return e.Err
}

// Session holds the record being edited. Methods are safe for concurrent use
// and apply in call order.
type Session struct {
	mu      sync.Mutex
	gateway *Gateway
	current profile.Record
}

// OpenSession loads the record and starts a session over it.
func OpenSession(ctx context.Context, gateway *Gateway) (*Session, LoadResult) {
	result := gateway.Load(ctx)
	return &Session{gateway: gateway, current: result.Record.Clone()}, result
}

// Record returns a copy of the current record.
func (s *Session) Record() profile.Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current.Clone()
}

// Apply runs mutations in order. Each successful mutation replaces the
// in-memory record and produces exactly one write. A rejected mutation stops
// the sequence and leaves the record as it was before that mutation. Failed
// writes do not stop the sequence; they are returned joined in a *SaveError.
func (s *Session) Apply(ctx context.Context, mutations ...profile.Mutation) (profile.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var saveErrs []error
	for _, m := range mutations {
		next, err := profile.Apply(s.current, m)
		if err != nil {
			return s.current.Clone(), joinSave(err, saveErrs)
		}
		s.current = next
		if err := s.gateway.Save(ctx, s.current); err != nil {
			saveErrs = append(saveErrs, err)
		}
	}
	return s.current.Clone(), joinSave(nil, saveErrs)
}

// Replace swaps in rec wholesale and writes it.
func (s *Session) Replace(ctx context.Context, rec profile.Record) (profile.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = rec.Clone()
	if err := s.gateway.Save(ctx, s.current); err != nil {
		return s.current.Clone(), &SaveError{Err: err}
	}
	return s.current.Clone(), nil
}

// Reset deletes the stored record and continues with the defaults.
func (s *Session) Reset(ctx context.Context) (profile.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, err := s.gateway.Reset(ctx)
	s.current = rec
	return rec.Clone(), err
}

func joinSave(mutationErr error, saveErrs []error) error {
	var saveErr error
	if len(saveErrs) > 0 {
		saveErr = &SaveError{Err: errors.Join(saveErrs...)}
	}
	if mutationErr == nil {
		return saveErr
	}
	if saveErr == nil {
		return mutationErr
	}
	return errors.Join(mutationErr, saveErr)
}
