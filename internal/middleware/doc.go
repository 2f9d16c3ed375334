// Package middleware holds the HTTP cross-cutting layers of the PawMarket
// API. Each layer is a func(http.Handler) http.Handler and the Chain helper
// composes them outermost-first around the router:
//
//	handler := middleware.Chain(mux,
//	    middleware.Recovery,
//	    middleware.RequestID,
//	    middleware.Logger,
//	    middleware.Metrics,
//	    middleware.CORS(cfg.Server.AllowedOrigins),
//	    middleware.RateLimit(limiter),
//	)
//
// # Identity
//
// Auth verifies the Bearer token on every request and stores the caller's
// identity in the request context; OptionalAuth does the same but lets
// anonymous requests through for public listings. Downstream code reads
// the identity back through accessors rather than context keys:
//
//	userID := middleware.GetUserID(r.Context())
//	role := middleware.GetUserRole(r.Context())
//
// RequireRole and RequireAdmin sit behind Auth on route groups that are
// restricted to particular marketplace roles; an admin passes every gate.
//
// # Throttling and replay protection
//
// RateLimiter keeps a token bucket per authenticated user (per client IP
// for anonymous traffic) and RateLimit answers 429 with X-RateLimit-* and
// Retry-After headers once a bucket runs dry. IdempotencyStore caches the
// first response to a POST or PATCH carrying an Idempotency-Key header and
// replays it for duplicates, marking replays with X-Idempotency-Replayed.
//
// # Observability
//
// RequestID tags each request with a unique identifier, Logger emits one
// structured line per request, Metrics feeds the Prometheus counters and
// latency histograms, and Recovery converts panics into problem+json 500s
// instead of dropped connections. Compress gzips responses when the client
// asks for it.
package middleware
