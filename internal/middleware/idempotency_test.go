package middleware

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func countingHandler(status int, body string) (http.Handler, *int32) {
	var calls int32
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}), &calls
}

func bookingPost(method, key, body string) *http.Request {
	req := httptest.NewRequest(method, "/api/v1/bookings", bytes.NewReader([]byte(body)))
	if key != "" {
		req.Header.Set("Idempotency-Key", key)
	}
	req.RemoteAddr = "203.0.113.9:50412"
	return req
}

func storeEntryCount(store *IdempotencyStore) int {
	store.mu.RLock()
	defer store.mu.RUnlock()
	return len(store.entries)
}

func TestNewIdempotencyStore_Config(t *testing.T) {
	t.Parallel()

	defaulted := NewIdempotencyStore(IdempotencyConfig{})
	defer defaulted.Stop()
	if defaulted.ttl != 24*time.Hour {
		t.Errorf("expected default TTL 24h, got %v", defaulted.ttl)
	}
	if defaulted.entries == nil {
		t.Error("entries map should be initialized")
	}

	custom := NewIdempotencyStore(IdempotencyConfig{TTL: time.Hour, Cleanup: 5 * time.Minute})
	defer custom.Stop()
	if custom.ttl != time.Hour {
		t.Errorf("expected TTL 1h, got %v", custom.ttl)
	}
}

func TestIdempotencyStore_StopReturnsPromptly(t *testing.T) {
	t.Parallel()
	store := NewIdempotencyStore(IdempotencyConfig{TTL: time.Hour, Cleanup: time.Millisecond})

	time.Sleep(10 * time.Millisecond) // let the cleanup loop tick at least once

	done := make(chan struct{})
	go func() {
		store.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Error("Stop() hung")
	}
}

func TestGenerateKey_Dimensions(t *testing.T) {
	t.Parallel()

	base := generateKey("user:owner1", "retry-1", "POST", "/api/v1/bookings", []byte(`{"pet_id":"pet:rex"}`))

	if len(base) != 64 {
		t.Fatalf("expected 64 hex chars (sha256), got %d", len(base))
	}
	if again := generateKey("user:owner1", "retry-1", "POST", "/api/v1/bookings", []byte(`{"pet_id":"pet:rex"}`)); again != base {
		t.Error("identical inputs must hash identically")
	}

	variants := map[string]string{
		"user":   generateKey("user:walker7", "retry-1", "POST", "/api/v1/bookings", []byte(`{"pet_id":"pet:rex"}`)),
		"key":    generateKey("user:owner1", "retry-2", "POST", "/api/v1/bookings", []byte(`{"pet_id":"pet:rex"}`)),
		"method": generateKey("user:owner1", "retry-1", "PATCH", "/api/v1/bookings", []byte(`{"pet_id":"pet:rex"}`)),
		"path":   generateKey("user:owner1", "retry-1", "POST", "/api/v1/reviews", []byte(`{"pet_id":"pet:rex"}`)),
		"body":   generateKey("user:owner1", "retry-1", "POST", "/api/v1/bookings", []byte(`{"pet_id":"pet:luna"}`)),
	}
	for dimension, key := range variants {
		if key == base {
			t.Errorf("changing the %s must change the cache key", dimension)
		}
	}

	if nilBody := generateKey("user:owner1", "retry-1", "POST", "/api/v1/bookings", nil); len(nilBody) != 64 {
		t.Errorf("nil body should still produce a 64 char key, got %d chars", len(nilBody))
	}
}

func TestIdempotency_OnlyGuardsPostAndPatch(t *testing.T) {
	t.Parallel()

	// Safe and naturally idempotent methods pass through twice even with a
	// key; POST and PATCH are deduplicated.
	cases := []struct {
		method    string
		wantCalls int32
	}{
		{http.MethodGet, 2},
		{http.MethodDelete, 2},
		{http.MethodPut, 2},
		{http.MethodPost, 1},
		{http.MethodPatch, 1},
	}

	for _, tc := range cases {
		t.Run(tc.method, func(t *testing.T) {
			t.Parallel()
			store := NewIdempotencyStore(IdempotencyConfig{TTL: time.Hour})
			defer store.Stop()

			handler, calls := countingHandler(http.StatusOK, "done")
			mw := Idempotency(store)

			for i := 0; i < 2; i++ {
				mw(handler).ServeHTTP(httptest.NewRecorder(), bookingPost(tc.method, "retry-1", `{}`))
			}

			if got := atomic.LoadInt32(calls); got != tc.wantCalls {
				t.Errorf("expected %d handler calls, got %d", tc.wantCalls, got)
			}
		})
	}
}

func TestIdempotency_NoKeyMeansNoDeduplication(t *testing.T) {
	t.Parallel()
	store := NewIdempotencyStore(IdempotencyConfig{TTL: time.Hour})
	defer store.Stop()

	handler, calls := countingHandler(http.StatusCreated, "created")
	mw := Idempotency(store)

	for i := 0; i < 2; i++ {
		mw(handler).ServeHTTP(httptest.NewRecorder(), bookingPost(http.MethodPost, "", `{}`))
	}

	if got := atomic.LoadInt32(calls); got != 2 {
		t.Errorf("keyless requests must each execute, got %d calls", got)
	}
}

func TestIdempotency_ReplaysCachedResponse(t *testing.T) {
	t.Parallel()
	store := NewIdempotencyStore(IdempotencyConfig{TTL: time.Hour})
	defer store.Stop()

	var calls int32
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Location", "/api/v1/bookings/booking:b1")
		w.Header().Add("X-Multi", "one")
		w.Header().Add("X-Multi", "two")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":"booking:b1"}`))
	})
	mw := Idempotency(store)

	first := httptest.NewRecorder()
	mw(handler).ServeHTTP(first, bookingPost(http.MethodPost, "retry-1", `{}`))

	if first.Header().Get("X-Idempotency-Replayed") != "" {
		t.Error("first execution must not be marked replayed")
	}

	second := httptest.NewRecorder()
	mw(handler).ServeHTTP(second, bookingPost(http.MethodPost, "retry-1", `{}`))

	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Fatalf("expected a single handler execution, got %d", got)
	}
	if second.Code != http.StatusCreated {
		t.Errorf("expected replayed status 201, got %d", second.Code)
	}
	if second.Body.String() != `{"id":"booking:b1"}` {
		t.Errorf("expected replayed body, got %q", second.Body.String())
	}
	if second.Header().Get("X-Idempotency-Replayed") != "true" {
		t.Error("replay must carry X-Idempotency-Replayed: true")
	}
	if second.Header().Get("Location") != "/api/v1/bookings/booking:b1" {
		t.Errorf("expected Location replayed, got %q", second.Header().Get("Location"))
	}
	if got := second.Header().Values("X-Multi"); len(got) != 2 {
		t.Errorf("expected both X-Multi values replayed, got %v", got)
	}
}

func TestIdempotency_ScopesCacheToCaller(t *testing.T) {
	t.Parallel()

	t.Run("authenticated callers by user ID", func(t *testing.T) {
		t.Parallel()
		store := NewIdempotencyStore(IdempotencyConfig{TTL: time.Hour})
		defer store.Stop()

		handler, calls := countingHandler(http.StatusOK, "ok")
		mw := Idempotency(store)

		for _, userID := range []string{"user:owner1", "user:owner2"} {
			req := bookingPost(http.MethodPost, "retry-1", `{}`)
			req = req.WithContext(context.WithValue(req.Context(), UserIDKey, userID))
			mw(handler).ServeHTTP(httptest.NewRecorder(), req)
		}

		if got := atomic.LoadInt32(calls); got != 2 {
			t.Errorf("different users sharing a key must not collide, got %d calls", got)
		}
	})

	t.Run("anonymous callers by remote address", func(t *testing.T) {
		t.Parallel()
		store := NewIdempotencyStore(IdempotencyConfig{TTL: time.Hour})
		defer store.Stop()

		handler, calls := countingHandler(http.StatusOK, "ok")
		mw := Idempotency(store)

		for _, addr := range []string{"203.0.113.9:50412", "198.51.100.4:44102"} {
			req := bookingPost(http.MethodPost, "retry-1", `{}`)
			req.RemoteAddr = addr
			mw(handler).ServeHTTP(httptest.NewRecorder(), req)
		}

		if got := atomic.LoadInt32(calls); got != 2 {
			t.Errorf("different IPs sharing a key must not collide, got %d calls", got)
		}
	})
}

func TestIdempotency_ConcurrentDuplicateWaitsForFirst(t *testing.T) {
	t.Parallel()
	store := NewIdempotencyStore(IdempotencyConfig{TTL: time.Hour})
	defer store.Stop()

	var calls int32
	started := make(chan struct{})
	release := make(chan struct{})

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		close(started)
		<-release
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"result":"done"}`))
	})
	mw := Idempotency(store)

	var wg sync.WaitGroup
	recorders := [2]*httptest.ResponseRecorder{httptest.NewRecorder(), httptest.NewRecorder()}

	wg.Add(1)
	go func() {
		defer wg.Done()
		mw(handler).ServeHTTP(recorders[0], bookingPost(http.MethodPost, "inflight", `{}`))
	}()

	<-started // first request is now inside the handler

	wg.Add(1)
	go func() {
		defer wg.Done()
		mw(handler).ServeHTTP(recorders[1], bookingPost(http.MethodPost, "inflight", `{}`))
	}()

	time.Sleep(50 * time.Millisecond) // let the duplicate reach the wait
	close(release)
	wg.Wait()

	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Errorf("expected one execution for concurrent duplicates, got %d", got)
	}
	for i, rec := range recorders {
		if rec.Code != http.StatusCreated {
			t.Errorf("request %d: expected 201, got %d", i, rec.Code)
		}
	}
	if recorders[1].Header().Get("X-Idempotency-Replayed") != "true" {
		t.Error("waiting duplicate should be marked replayed")
	}
}

func TestIdempotencyStore_CleanupHonorsTTL(t *testing.T) {
	t.Parallel()
	store := NewIdempotencyStore(IdempotencyConfig{TTL: 100 * time.Millisecond, Cleanup: time.Hour})
	defer store.Stop()

	handler, _ := countingHandler(http.StatusOK, "ok")
	mw := Idempotency(store)

	mw(handler).ServeHTTP(httptest.NewRecorder(), bookingPost(http.MethodPost, "sweep-me", `{}`))
	if got := storeEntryCount(store); got != 1 {
		t.Fatalf("expected 1 entry after request, got %d", got)
	}

	// Fresh entries survive a sweep
	store.cleanup()
	if got := storeEntryCount(store); got != 1 {
		t.Errorf("fresh entry must survive cleanup, got %d entries", got)
	}

	time.Sleep(150 * time.Millisecond)
	store.cleanup()
	if got := storeEntryCount(store); got != 0 {
		t.Errorf("expired entry must be swept, got %d entries", got)
	}
}

func TestIdempotency_ExpiredEntryExecutesAgain(t *testing.T) {
	t.Parallel()
	store := NewIdempotencyStore(IdempotencyConfig{TTL: 50 * time.Millisecond, Cleanup: time.Hour})
	defer store.Stop()

	handler, calls := countingHandler(http.StatusOK, "response")
	mw := Idempotency(store)

	mw(handler).ServeHTTP(httptest.NewRecorder(), bookingPost(http.MethodPost, "expire", `{}`))

	time.Sleep(100 * time.Millisecond)

	second := httptest.NewRecorder()
	mw(handler).ServeHTTP(second, bookingPost(http.MethodPost, "expire", `{}`))

	if got := atomic.LoadInt32(calls); got != 2 {
		t.Errorf("expected re-execution after TTL expiry, got %d calls", got)
	}
	if second.Header().Get("X-Idempotency-Replayed") != "" {
		t.Error("post-expiry execution is fresh, not a replay")
	}
}

func TestIdempotency_HandlerSeesFullBody(t *testing.T) {
	t.Parallel()
	store := NewIdempotencyStore(IdempotencyConfig{TTL: time.Hour})
	defer store.Stop()

	// The middleware reads the body to hash it; the handler must still be
	// able to read it in full.
	const payload = `{"pet_id":"pet:rex","service_type":"dog_walk","start":"2026-09-01T10:00:00Z"}`

	var seen []byte
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusOK)
	})

	Idempotency(store)(handler).ServeHTTP(httptest.NewRecorder(), bookingPost(http.MethodPost, "body-check", payload))

	if string(seen) != payload {
		t.Errorf("handler received %q, want %q", string(seen), payload)
	}
}

func TestIdempotencyResponseWriter_Capture(t *testing.T) {
	t.Parallel()

	rr := httptest.NewRecorder()
	irw := &idempotencyResponseWriter{ResponseWriter: rr, status: http.StatusOK}

	irw.WriteHeader(http.StatusCreated)
	_, _ = irw.Write([]byte("part1"))
	_, _ = irw.Write([]byte("part2"))

	if irw.status != http.StatusCreated {
		t.Errorf("expected recorded status 201, got %d", irw.status)
	}
	if rr.Code != http.StatusCreated {
		t.Errorf("expected forwarded status 201, got %d", rr.Code)
	}
	if irw.body.String() != "part1part2" {
		t.Errorf("expected accumulated body part1part2, got %q", irw.body.String())
	}
	if rr.Body.String() != "part1part2" {
		t.Errorf("expected forwarded body part1part2, got %q", rr.Body.String())
	}
}
