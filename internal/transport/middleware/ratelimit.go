package middleware

import (
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"
)

// bucketIdleTTL is how long an untouched bucket survives before the
// cleanup loop drops it.
const bucketIdleTTL = 10 * time.Minute

// RateLimiter hands out per-client token buckets. One limiter instance
// backs all Limit middlewares, so the cleanup loop covers every bucket.
type RateLimiter struct {
	buckets sync.Map // "client|limit" -> *bucket
	done    chan struct{}
}

type bucket struct {
	mu       sync.Mutex
	tokens   float64
	capacity float64
	perSec   float64
	touched  time.Time
}

// NewRateLimiter starts a limiter whose cleanup loop runs at the given
// interval. Call Stop on shutdown.
func NewRateLimiter(cleanupInterval time.Duration) *RateLimiter {
	rl := &RateLimiter{done: make(chan struct{})}
	go rl.reap(cleanupInterval)
	return rl
}

// Stop terminates the cleanup loop.
func (rl *RateLimiter) Stop() {
	close(rl.done)
}

// Limit returns middleware that allows maxPerMinute requests per client
// address and answers 429 with a Retry-After header above that.
func (rl *RateLimiter) Limit(maxPerMinute int) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			b := rl.bucketFor(clientKey(r), maxPerMinute)
			if !b.take() {
				retry := int(60.0/float64(maxPerMinute)) + 1
				w.Header().Set("Retry-After", strconv.Itoa(retry))
				http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// clientKey identifies the caller by IP, ignoring the ephemeral port.
func clientKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// bucketFor keys buckets by client and limit so stacked middlewares
// with different rates never share a bucket.
func (rl *RateLimiter) bucketFor(client string, maxPerMinute int) *bucket {
	capacity := float64(maxPerMinute)
	val, _ := rl.buckets.LoadOrStore(client+"|"+strconv.Itoa(maxPerMinute), &bucket{
		tokens:   capacity,
		capacity: capacity,
		perSec:   capacity / 60.0,
		touched:  time.Now(),
	})
	return val.(*bucket)
}

func (b *bucket) take() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := time.Now()
	b.tokens += now.Sub(b.touched).Seconds() * b.perSec
	if b.tokens > b.capacity {
		b.tokens = b.capacity
	}
	b.touched = now

	if b.tokens < 1 {
		return false
	}
	b.tokens--
	return true
}

func (rl *RateLimiter) reap(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-rl.done:
			return
		case <-ticker.C:
			cutoff := time.Now().Add(-bucketIdleTTL)
			rl.buckets.Range(func(key, value any) bool {
				b := value.(*bucket)
				b.mu.Lock()
				idle := b.touched.Before(cutoff)
				b.mu.Unlock()
				if idle {
					rl.buckets.Delete(key)
				}
				return true
			})
		}
	}
}
