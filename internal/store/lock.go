package store

import (
	"errors"
	"fmt"
	"sync"

	"github.com/gofrs/flock"
)

func acquireLock(path string) (*flock.Flock, error) {
	lock := flock.New(path)
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w (%s)", ErrLocked, path)
	}
	return lock, nil
}

// lockedStore releases the data directory lock once the backend is closed.
type lockedStore struct {
	Store
	lock *flock.Flock
	once sync.Once
	err  error
}

func (s *lockedStore) Close() error {
	s.once.Do(func() {
		closeErr := s.Store.Close()
		unlockErr := s.lock.Unlock()
		s.err = errors.Join(closeErr, unlockErr)
	})
	return s.err
}
