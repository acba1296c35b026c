// Package ratelimiter keeps one token bucket per client key.
package ratelimiter

import (
	"sync"
	"time"
)

// bucket is a token bucket for a single key.
type bucket struct {
	mu         sync.Mutex
	tokens     float64
	lastRefill time.Time
	timer      *time.Timer
}

// Limiter hands out tokens per key. Buckets of idle keys are dropped after expiration.
type Limiter struct {
	mu         sync.RWMutex
	buckets    map[string]*bucket
	rate       float64 // tokens per second
	capacity   float64
	expiration time.Duration
	now        func() time.Time
}

func New(rate, capacity float64, expiration time.Duration) *Limiter {
	return &Limiter{
		buckets:    make(map[string]*bucket),
		rate:       rate,
		capacity:   capacity,
		expiration: expiration,
		now:        time.Now,
	}
}

// Allow takes a token from key's bucket and reports whether one was available.
func (l *Limiter) Allow(key string) bool {
	b := l.bucket(key)

	b.mu.Lock()
	defer b.mu.Unlock()

	now := l.now()
	b.tokens += now.Sub(b.lastRefill).Seconds() * l.rate
	if b.tokens > l.capacity {
		b.tokens = l.capacity
	}
	b.lastRefill = now

	if b.tokens >= 1 {
		b.tokens--
		return true
	}
	return false
}

// Len is the number of keys currently tracked.
func (l *Limiter) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.buckets)
}

// Stop cancels every pending expiration.
func (l *Limiter) Stop() {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, b := range l.buckets {
		b.mu.Lock()
		if b.timer != nil {
			b.timer.Stop()
		}
		b.mu.Unlock()
	}
}

func (l *Limiter) bucket(key string) *bucket {
	l.mu.RLock()
	b, ok := l.buckets[key]
	l.mu.RUnlock()
	if ok {
		l.touch(key, b)
		return b
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	// another request may have created it meanwhile
	if b, ok = l.buckets[key]; !ok {
		b = &bucket{tokens: l.capacity, lastRefill: l.now()}
		l.buckets[key] = b
	}
	l.touch(key, b)
	return b
}

// touch restarts key's expiration timer.
func (l *Limiter) touch(key string, b *bucket) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.timer != nil {
		b.timer.Stop()
	}
	b.timer = time.AfterFunc(l.expiration, func() {
		l.mu.Lock()
		if l.buckets[key] == b {
			delete(l.buckets, key)
		}
		l.mu.Unlock()
	})
}
