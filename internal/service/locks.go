package service

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/semaphore"
)

// matchLocks serializes mutations per match. Entries are dropped once no
// caller holds or waits on them.
type matchLocks struct {
	mu    sync.Mutex
	locks map[uuid.UUID]*matchLock
}

type matchLock struct {
	sem  *semaphore.Weighted
	refs int
}

func newMatchLocks() *matchLocks {
	return &matchLocks{locks: make(map[uuid.UUID]*matchLock)}
}

// lock blocks until the match is free or ctx is done. The returned func
// releases the lock and must be called exactly once.
func (l *matchLocks) lock(ctx context.Context, id uuid.UUID) (func(), error) {
	l.mu.Lock()
	ml, ok := l.locks[id]
	if !ok {
		ml = &matchLock{sem: semaphore.NewWeighted(1)}
		l.locks[id] = ml
	}
	ml.refs++
	l.mu.Unlock()

	if err := ml.sem.Acquire(ctx, 1); err != nil {
		l.unref(id, ml)
		return nil, err
	}

	return func() {
		ml.sem.Release(1)
		l.unref(id, ml)
	}, nil
}

func (l *matchLocks) unref(id uuid.UUID, ml *matchLock) {
	l.mu.Lock()
	defer l.mu.Unlock()
	ml.refs--
	if ml.refs == 0 {
		delete(l.locks, id)
	}
}

func (l *matchLocks) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}
