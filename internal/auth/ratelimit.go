package auth

import (
	"sync"
	"time"
)

// LoginLimiter locks a username out after repeated failed logins. Attempts
// are counted in a sliding window; a lockout expires on its own.
type LoginLimiter struct {
	mu              sync.Mutex
	attempts        map[string]*attemptRecord
	maxAttempts     int
	windowDuration  time.Duration
	lockoutDuration time.Duration
	now             func() time.Time
}

type attemptRecord struct {
	count        int
	firstAttempt time.Time
	lockedUntil  time.Time
}

// NewLoginLimiter creates a limiter. Non-positive values fall back to five
// attempts within fifteen minutes and a five minute lockout.
func NewLoginLimiter(maxAttempts int, lockout time.Duration) *LoginLimiter {
	if maxAttempts <= 0 {
		maxAttempts = 5
	}
	if lockout <= 0 {
		lockout = 5 * time.Minute
	}

	return &LoginLimiter{
		attempts:        make(map[string]*attemptRecord),
		maxAttempts:     maxAttempts,
		windowDuration:  15 * time.Minute,
		lockoutDuration: lockout,
		now:             time.Now,
	}
}

// Allow checks if a login attempt for username should proceed.
// If not, retryAfter indicates when the lockout expires.
func (l *LoginLimiter) Allow(username string) (bool, time.Duration) {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	record, exists := l.attempts[username]
	if !exists {
		return true, 0
	}

	if !record.lockedUntil.IsZero() {
		if now.Before(record.lockedUntil) {
			return false, record.lockedUntil.Sub(now)
		}
		delete(l.attempts, username)
		return true, 0
	}

	if now.Sub(record.firstAttempt) > l.windowDuration {
		delete(l.attempts, username)
	}
	return true, 0
}

// RecordFailure records a failed login and reports whether it triggered a
// lockout.
func (l *LoginLimiter) RecordFailure(username string) bool {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	record, exists := l.attempts[username]
	if !exists || now.Sub(record.firstAttempt) > l.windowDuration {
		record = &attemptRecord{firstAttempt: now}
		l.attempts[username] = record
	}

	record.count++

	if record.count >= l.maxAttempts {
		record.lockedUntil = now.Add(l.lockoutDuration)
		return true
	}
	return false
}

// RecordSuccess clears the failure record after a successful login.
func (l *LoginLimiter) RecordSuccess(username string) {
	l.mu.Lock()
	delete(l.attempts, username)
	l.mu.Unlock()
}
