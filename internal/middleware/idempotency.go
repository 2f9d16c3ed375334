package middleware

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"net/http"
	"sync"
	"time"
)

// IdempotencyStore caches responses for requests that carried an
// Idempotency-Key header, so client retries of unsafe operations (booking
// creation, payment) replay the first response instead of executing twice.
type IdempotencyStore struct {
	mu       sync.RWMutex
	entries  map[string]*idempotencyEntry
	ttl      time.Duration
	stopChan chan struct{}
}

type idempotencyEntry struct {
	status    int
	headers   http.Header
	body      []byte
	expiresAt time.Time
	inFlight  bool
	done      chan struct{}
}

// IdempotencyConfig holds configuration for idempotency middleware.
type IdempotencyConfig struct {
	TTL     time.Duration // how long replayed results stay valid (default 24h)
	Cleanup time.Duration // sweep interval for expired entries (default 1h)
}

// NewIdempotencyStore creates a store and starts its cleanup goroutine.
func NewIdempotencyStore(cfg IdempotencyConfig) *IdempotencyStore {
	if cfg.TTL == 0 {
		cfg.TTL = 24 * time.Hour
	}
	if cfg.Cleanup == 0 {
		cfg.Cleanup = time.Hour
	}

	store := &IdempotencyStore{
		entries:  make(map[string]*idempotencyEntry),
		ttl:      cfg.TTL,
		stopChan: make(chan struct{}),
	}

	go store.cleanupLoop(cfg.Cleanup)

	return store
}

// Stop stops the cleanup goroutine.
func (s *IdempotencyStore) Stop() {
	close(s.stopChan)
}

func (s *IdempotencyStore) cleanupLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.cleanup()
		case <-s.stopChan:
			return
		}
	}
}

func (s *IdempotencyStore) cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	for key, entry := range s.entries {
		if entry.expiresAt.Before(now) && !entry.inFlight {
			delete(s.entries, key)
		}
	}
}

// claim resolves what the caller should do for key: replay a finished
// cached entry, wait on a concurrent duplicate's done channel, or — when
// owned is true — execute the request itself. Claiming registers an
// in-flight entry under the lock so later duplicates block instead of
// executing.
func (s *IdempotencyStore) claim(key string) (cached *idempotencyEntry, wait chan struct{}, owned bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if entry, ok := s.entries[key]; ok {
		if entry.inFlight {
			return nil, entry.done, false
		}
		if time.Now().Before(entry.expiresAt) {
			return entry, nil, false
		}
	}

	s.entries[key] = &idempotencyEntry{inFlight: true, done: make(chan struct{})}
	return nil, nil, true
}

// finish records the response for a claimed key and wakes any waiters.
func (s *IdempotencyStore) finish(key string, status int, headers http.Header, body []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry := s.entries[key]
	entry.status = status
	entry.headers = headers
	entry.body = body
	entry.expiresAt = time.Now().Add(s.ttl)
	entry.inFlight = false
	close(entry.done)
}

// generateKey fingerprints the request: the same Idempotency-Key with a
// different body or path is a different operation, not a replay.
func generateKey(userID, idempotencyKey, method, path string, body []byte) string {
	h := sha256.New()
	h.Write([]byte(userID))
	h.Write([]byte(idempotencyKey))
	h.Write([]byte(method))
	h.Write([]byte(path))
	h.Write(body)
	return hex.EncodeToString(h.Sum(nil))
}

// idempotencyResponseWriter tees the response into a buffer for caching.
type idempotencyResponseWriter struct {
	http.ResponseWriter
	status int
	body   bytes.Buffer
}

func (w *idempotencyResponseWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

func (w *idempotencyResponseWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// writeReplay sends a cached entry with the replay marker header set.
func writeReplay(w http.ResponseWriter, entry *idempotencyEntry) {
	for k, v := range entry.headers {
		for _, val := range v {
			w.Header().Add(k, val)
		}
	}
	w.Header().Set("X-Idempotency-Replayed", "true")
	w.WriteHeader(entry.status)
	_, _ = w.Write(entry.body)
}

// Idempotency returns middleware that replays cached responses for POST and
// PATCH requests carrying an Idempotency-Key header. Requests without the
// header pass through untouched.
func Idempotency(store *IdempotencyStore) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			unsafeMethod := r.Method == http.MethodPost || r.Method == http.MethodPatch
			clientKey := r.Header.Get("Idempotency-Key")
			if !unsafeMethod || clientKey == "" {
				next.ServeHTTP(w, r)
				return
			}

			caller := GetUserID(r.Context())
			if caller == "" {
				caller = r.RemoteAddr // anonymous callers dedupe per client address
			}

			// The body is part of the fingerprint; restore it for the handler.
			body, err := io.ReadAll(r.Body)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}
			r.Body = io.NopCloser(bytes.NewReader(body))

			key := generateKey(caller, clientKey, r.Method, r.URL.Path, body)
			for {
				cached, wait, owned := store.claim(key)
				if cached != nil {
					writeReplay(w, cached)
					return
				}
				if owned {
					break
				}
				// A concurrent duplicate holds the key; wait for its result,
				// then re-claim so the finished entry replays.
				<-wait
			}

			rec := &idempotencyResponseWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r)
			store.finish(key, rec.status, rec.Header().Clone(), rec.body.Bytes())
		})
	}
}
