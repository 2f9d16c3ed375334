package database

import (
	"context"
	"errors"
)

// Sentinel errors returned by Database implementations. Repositories and
// services match on these with errors.Is.
var (
	// ErrNotFound means the queried record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicate indicates a unique constraint violation, such as
	// registering an email twice.
	ErrDuplicate = errors.New("duplicate record")

	// ErrConnection indicates the database could not be reached.
	ErrConnection = errors.New("database connection error")

	// ErrQuery indicates the query itself failed to execute.
	ErrQuery = errors.New("query error")

	// ErrLimitExceeded means a result set grew past the allowed maximum.
	ErrLimitExceeded = errors.New("limit exceeded")
)

// Config holds connection settings for a SurrealDB instance.
type Config struct {
	Host      string
	Port      string
	User      string
	Password  string
	Namespace string
	Database  string
}

// Database is the storage interface repositories depend on. Multi-statement
// atomic writes go through TxBuilder and AtomicBatch, which compose a single
// BEGIN/COMMIT block and submit it via Query.
type Database interface {
	Connect(ctx context.Context) error
	Close() error
	Ping(ctx context.Context) error

	// Query runs a statement and returns every row of its result.
	Query(ctx context.Context, query string, vars map[string]interface{}) ([]interface{}, error)

	// QueryOne runs a statement expected to yield one row; it returns
	// ErrNotFound when the row is absent.
	QueryOne(ctx context.Context, query string, vars map[string]interface{}) (interface{}, error)

	// Execute runs a mutation whose result the caller does not need.
	Execute(ctx context.Context, query string, vars map[string]interface{}) error
}
