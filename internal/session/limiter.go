package session

import (
	"sync"
	"time"
)

// FailureLimiter throttles clients that keep failing to log in. Failures for
// a key accumulate inside a fixed window starting at the first failure; once
// the limit is reached, the key is refused until the window expires. A
// successful login clears the key.
type FailureLimiter struct {
	mu     sync.Mutex
	limit  int
	window time.Duration
	seen   map[string]*failureRecord

	now func() time.Time
}

type failureRecord struct {
	count int
	first time.Time
}

func NewFailureLimiter(limit int, window time.Duration) *FailureLimiter {
	return &FailureLimiter{
		limit:  limit,
		window: window,
		seen:   make(map[string]*failureRecord),
		now:    time.Now,
	}
}

// Allow reports whether the key may attempt a login right now.
func (l *FailureLimiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	rec, ok := l.seen[key]
	if !ok {
		return true
	}
	if l.now().Sub(rec.first) >= l.window {
		delete(l.seen, key)
		return true
	}
	return rec.count < l.limit
}

// RecordFailure counts a failed attempt against the key.
func (l *FailureLimiter) RecordFailure(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	rec, ok := l.seen[key]
	if !ok || l.now().Sub(rec.first) >= l.window {
		l.seen[key] = &failureRecord{count: 1, first: l.now()}
		return
	}
	rec.count++
}

// Reset clears the key's failure history.
func (l *FailureLimiter) Reset(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.seen, key)
}
