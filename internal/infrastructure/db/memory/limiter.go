package memory

import (
	"context"
	"sync"
)

// LoginLimiter is a counter-only limiter without expiry.
type LoginLimiter struct {
	mu       sync.Mutex
	max      int
	failures map[string]int
}

func NewLoginLimiter(max int) *LoginLimiter {
	return &LoginLimiter{max: max, failures: make(map[string]int)}
}

func (l *LoginLimiter) Blocked(_ context.Context, email string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.max > 0 && l.failures[email] >= l.max, nil
}

func (l *LoginLimiter) RecordFailure(_ context.Context, email string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.failures[email]++
	return nil
}

func (l *LoginLimiter) Reset(_ context.Context, email string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.failures, email)
	return nil
}
