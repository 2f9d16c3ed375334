// Package config reads the PawMarket API's runtime settings from the
// environment and validates them before the server starts.
//
// Load pulls every value with a sensible development default, reading an
// optional .env file in the working directory first:
//
//	cfg, err := config.Load()
//
// The Config struct groups settings by concern: ServerConfig (port,
// timeouts, CORS origins, docs toggle), DatabaseConfig (SurrealDB
// connection), JWTConfig (RS256 key paths and token lifetime),
// PlatformConfig (commission and payout policy), RedisConfig (optional
// cache) and RateLimitConfig (throttling).
//
// # Environment Variables
//
// The ones most deployments touch:
//
//	SERVER_PORT           - HTTP server port (default: 8080)
//	DOCS_ENABLED          - serve /api/schema and /api/docs (default: true)
//	DB_HOST               - SurrealDB host (default: localhost)
//	DB_PORT               - SurrealDB port (default: 8000)
//	DB_NAMESPACE          - Database namespace (default: pawmarket)
//	DB_DATABASE           - Database name (default: main)
//	JWT_PRIVATE_KEY_PATH  - RS256 private key for token signing
//	JWT_EXPIRATION_MINS   - Access token lifetime in minutes
//	PLATFORM_FEE_PERCENT  - Commission percentage retained on bookings,
//	                        must be within [0, 100] (default: 15)
//	PAYOUT_HOLD_DAYS      - Days completed earnings are held before payout
//	REDIS_ADDR            - Redis address; empty disables the Redis cache
//
// A malformed value falls back to its default at Load time; Validate is
// where an unacceptable final value stops the server.
//
// # Validation
//
// Validate reports every problem at once via errors.Join, so a
// misconfigured deployment sees the full list on the first failed start:
//
//	if err := cfg.Validate(); err != nil {
//	    log.Fatal(err)
//	}
package config
