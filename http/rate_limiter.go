package http

import (
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

const bucketCleanupThreshold = 1 * time.Hour

type clientBucket struct {
	tokens     int
	lastRefill time.Time
}

// RateLimiter is a per-client token bucket refilled in full every refillDur.
type RateLimiter struct {
	mu        sync.Mutex
	capacity  int
	refillDur time.Duration
	clients   map[string]*clientBucket
	now       func() time.Time
}

func NewRateLimiter(capacity int, refillDur time.Duration) *RateLimiter {
	return &RateLimiter{
		capacity:  capacity,
		refillDur: refillDur,
		clients:   make(map[string]*clientBucket),
		now:       time.Now,
	}
}

// ScheduleCleanup registers periodic removal of idle buckets on c.
func (r *RateLimiter) ScheduleCleanup(c *cron.Cron, spec string) error {
	if _, err := c.AddFunc(spec, func() { r.Cleanup() }); err != nil {
		return fmt.Errorf("register rate limiter cleanup: %w", err)
	}
	return nil
}

// Cleanup drops buckets idle for longer than an hour and returns how many.
func (r *RateLimiter) Cleanup() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	now := r.now()
	for ip, bucket := range r.clients {
		if now.Sub(bucket.lastRefill) > bucketCleanupThreshold {
			delete(r.clients, ip)
			removed++
		}
	}
	return removed
}

func (r *RateLimiter) Allow(ip string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	bucket, exists := r.clients[ip]

	if !exists {
		r.clients[ip] = &clientBucket{
			tokens:     r.capacity - 1,
			lastRefill: now,
		}
		return true
	}

	if now.Sub(bucket.lastRefill) >= r.refillDur {
		bucket.tokens = r.capacity
		bucket.lastRefill = now
	}

	if bucket.tokens <= 0 {
		return false
	}

	bucket.tokens--
	return true
}
