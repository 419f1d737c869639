package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/gofrs/flock"
)

// LockTimeout bounds how long Acquire waits for a busy store
const LockTimeout = 10 * time.Second

// Lock is an advisory lock on a store file. It only coordinates fa
// processes; anything else writing the store file is not excluded.
type Lock struct {
	fl *flock.Flock
}

// LockPath returns the lock file used for the store at storePath
func LockPath(storePath string) string {
	return storePath + ".lock"
}

// Acquire takes the lock for storePath, retrying with exponential backoff
// until timeout elapses.
func Acquire(ctx context.Context, storePath string, timeout time.Duration) (*Lock, error) {
	fl := flock.New(LockPath(storePath))

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 50 * time.Millisecond
	b.MaxInterval = time.Second
	b.MaxElapsedTime = timeout

	op := func() error {
		locked, err := fl.TryLock()
		if err != nil {
			return backoff.Permanent(fmt.Errorf("failed to acquire lock: %w", err))
		}
		if !locked {
			return ErrLocked
		}
		return nil
	}

	if err := backoff.Retry(op, backoff.WithContext(b, ctx)); err != nil {
		if errors.Is(err, ErrLocked) {
			return nil, fmt.Errorf("%w: %s", ErrLocked, fl.Path())
		}
		return nil, err
	}

	return &Lock{fl: fl}, nil
}

// Release drops the lock
func (l *Lock) Release() error {
	return l.fl.Unlock()
}
