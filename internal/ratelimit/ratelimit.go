// Package ratelimit hands out token-bucket limiters keyed by client address.
package ratelimit

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// defaultMaxKeys bounds the number of tracked clients.
const defaultMaxKeys = 10000

type entry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// KeyedLimiter keeps one rate.Limiter per client key. A nil *KeyedLimiter
// allows everything.
//
// When the table is full, clients whose bucket has refilled are evicted
// first since dropping them loses no budget; if none has, the least
// recently seen client goes.
type KeyedLimiter struct {
	mu       sync.Mutex
	limiters map[string]*entry
	r        rate.Limit
	b        int
	maxKeys  int
	now      func() time.Time
}

// New returns a limiter admitting rps requests per second per key with the
// given burst. rps <= 0 disables limiting and returns nil.
func New(rps float64, burst int) *KeyedLimiter {
	if rps <= 0 {
		return nil
	}
	if burst < 1 {
		burst = 1
	}
	return &KeyedLimiter{
		limiters: make(map[string]*entry),
		r:        rate.Limit(rps),
		b:        burst,
		maxKeys:  defaultMaxKeys,
		now:      time.Now,
	}
}

// Get returns the limiter for key, creating it on first use.
func (l *KeyedLimiter) Get(key string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	e, ok := l.limiters[key]
	if !ok {
		if len(l.limiters) >= l.maxKeys {
			l.evict(now)
		}
		e = &entry{limiter: rate.NewLimiter(l.r, l.b)}
		l.limiters[key] = e
	}
	e.lastSeen = now
	return e.limiter
}

// Allow reports whether one more request from key may proceed now.
func (l *KeyedLimiter) Allow(key string) bool {
	if l == nil {
		return true
	}
	return l.Get(key).AllowN(l.now(), 1)
}

// Len returns the number of tracked clients.
func (l *KeyedLimiter) Len() int {
	if l == nil {
		return 0
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.limiters)
}

// evict must be called with mu held.
func (l *KeyedLimiter) evict(now time.Time) {
	var (
		oldestKey string
		oldest    time.Time
	)
	for key, e := range l.limiters {
		if e.limiter.TokensAt(now) >= float64(l.b) {
			delete(l.limiters, key)
			continue
		}
		if oldestKey == "" || e.lastSeen.Before(oldest) {
			oldestKey, oldest = key, e.lastSeen
		}
	}
	if len(l.limiters) >= l.maxKeys && oldestKey != "" {
		delete(l.limiters, oldestKey)
	}
}
