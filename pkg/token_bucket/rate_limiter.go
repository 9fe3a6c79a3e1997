package token_bucket

import (
	"sync"
	"time"
)

// TokenBucket - классический token bucket с дробным пополнением.
type TokenBucket struct {
	mu         sync.Mutex
	capacity   float64
	tokens     float64
	refillRate float64
	lastRefill time.Time
}

func NewTokenBucket(capacity int, refillRate float64) *TokenBucket {
	return &TokenBucket{
		capacity:   float64(capacity),
		tokens:     float64(capacity),
		refillRate: refillRate,
		lastRefill: time.Now(),
	}
}

func (t *TokenBucket) Allow() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.refill(time.Now())

	if t.tokens >= 1 {
		t.tokens--
		return true
	}
	return false
}

func (t *TokenBucket) refill(now time.Time) {
	elapsed := now.Sub(t.lastRefill).Seconds()
	if elapsed <= 0 {
		return
	}
	t.tokens += elapsed * t.refillRate
	if t.tokens > t.capacity {
		t.tokens = t.capacity
	}
	t.lastRefill = now
}

func (t *TokenBucket) full(now time.Time) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.refill(now)
	return t.tokens >= t.capacity
}

// KeyedLimiter держит отдельный bucket на каждый ключ (обычно адрес клиента).
// Полностью пополненные bucket'ы удаляются при Sweep, их состояние
// эквивалентно новому.
type KeyedLimiter struct {
	mu         sync.Mutex
	capacity   int
	refillRate float64
	buckets    map[string]*TokenBucket
}

func NewKeyedLimiter(capacity int, refillRate float64) *KeyedLimiter {
	return &KeyedLimiter{
		capacity:   capacity,
		refillRate: refillRate,
		buckets:    make(map[string]*TokenBucket),
	}
}

func (k *KeyedLimiter) Allow(key string) bool {
	k.mu.Lock()
	bucket, ok := k.buckets[key]
	if !ok {
		bucket = NewTokenBucket(k.capacity, k.refillRate)
		k.buckets[key] = bucket
	}
	k.mu.Unlock()

	return bucket.Allow()
}

// Sweep удаляет полные bucket'ы и возвращает их количество.
func (k *KeyedLimiter) Sweep() int {
	now := time.Now()

	k.mu.Lock()
	defer k.mu.Unlock()

	removed := 0
	for key, bucket := range k.buckets {
		if bucket.full(now) {
			delete(k.buckets, key)
			removed++
		}
	}
	return removed
}

func (k *KeyedLimiter) Len() int {
	k.mu.Lock()
	defer k.mu.Unlock()

	return len(k.buckets)
}
