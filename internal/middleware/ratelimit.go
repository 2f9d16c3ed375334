package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/pawmarket/api/internal/model"
)

// RateLimitConfig holds rate limiter configuration. Zero fields fall back
// to defaults suitable for the public API surface.
type RateLimitConfig struct {
	Rate    int           // requests per window (default 100)
	Window  time.Duration // refill window (default 1 minute)
	Burst   int           // extra headroom above Rate (default 20)
	Cleanup time.Duration // idle bucket sweep interval (default 5 minutes)
}

// RateLimiter is a token bucket limiter keyed per caller. Authenticated
// requests are keyed by user ID, anonymous ones by remote address.
type RateLimiter struct {
	mu       sync.Mutex
	buckets  map[string]*bucket
	rate     int
	window   time.Duration
	burst    int
	sweep    time.Duration
	stopChan chan struct{}

	// now is swappable in tests to avoid real sleeps
	now func() time.Time
}

type bucket struct {
	tokens    int
	lastReset time.Time
}

// NewRateLimiter creates a limiter and starts its idle-bucket sweeper.
// Call Stop when done.
func NewRateLimiter(cfg RateLimitConfig) *RateLimiter {
	if cfg.Rate == 0 {
		cfg.Rate = 100
	}
	if cfg.Window == 0 {
		cfg.Window = time.Minute
	}
	if cfg.Burst == 0 {
		cfg.Burst = 20
	}
	if cfg.Cleanup == 0 {
		cfg.Cleanup = 5 * time.Minute
	}

	rl := &RateLimiter{
		buckets:  make(map[string]*bucket),
		rate:     cfg.Rate,
		window:   cfg.Window,
		burst:    cfg.Burst,
		sweep:    cfg.Cleanup,
		stopChan: make(chan struct{}),
		now:      time.Now,
	}

	go rl.sweepLoop()

	return rl
}

// Stop terminates the sweeper goroutine
func (rl *RateLimiter) Stop() {
	close(rl.stopChan)
}

// capacity is the bucket ceiling: steady rate plus burst headroom
func (rl *RateLimiter) capacity() int {
	return rl.rate + rl.burst
}

func (rl *RateLimiter) sweepLoop() {
	ticker := time.NewTicker(rl.sweep)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.dropIdleBuckets()
		case <-rl.stopChan:
			return
		}
	}
}

// dropIdleBuckets removes buckets untouched for two full windows
func (rl *RateLimiter) dropIdleBuckets() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cutoff := rl.now().Add(-2 * rl.window)
	for key, b := range rl.buckets {
		if b.lastReset.Before(cutoff) {
			delete(rl.buckets, key)
		}
	}
}

// Allow consumes a token for key if one is available. It reports whether
// the request may proceed, how many tokens remain, and when the bucket
// next refills.
func (rl *RateLimiter) Allow(key string) (allowed bool, remaining int, resetTime time.Time) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()

	b, ok := rl.buckets[key]
	if !ok {
		// First sighting: start at capacity, minus this request
		b = &bucket{tokens: rl.capacity() - 1, lastReset: now}
		rl.buckets[key] = b
		return true, b.tokens, now.Add(rl.window)
	}

	switch elapsed := now.Sub(b.lastReset); {
	case elapsed >= rl.window:
		b.tokens = rl.capacity()
		b.lastReset = now
	default:
		// Pro-rata refill for partial windows
		refill := int(float64(rl.rate) * (float64(elapsed) / float64(rl.window)))
		if refill > 0 {
			b.tokens = min(b.tokens+refill, rl.capacity())
			b.lastReset = now
		}
	}

	reset := b.lastReset.Add(rl.window)
	if b.tokens <= 0 {
		return false, 0, reset
	}

	b.tokens--
	return true, b.tokens, reset
}

// RateLimit enforces the limiter and annotates every response with
// X-RateLimit headers. Rejections are 429 problem responses carrying
// Retry-After.
func RateLimit(limiter *RateLimiter) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := GetUserID(r.Context())
			if key == "" {
				key = r.RemoteAddr
			}

			allowed, remaining, resetTime := limiter.Allow(key)

			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(limiter.rate))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
			w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(resetTime.Unix(), 10))

			if !allowed {
				retryAfter := int(time.Until(resetTime).Seconds())
				if retryAfter < 1 {
					retryAfter = 1
				}
				w.Header().Set("Retry-After", strconv.Itoa(retryAfter))

				model.NewRateLimitError(retryAfter).WriteJSON(w)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
