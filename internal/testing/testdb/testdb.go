package testdb

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/pawmarket/api/internal/database"
)

// TestDB is an isolated database environment scoped to one test.
type TestDB struct {
	DB        database.Database
	Namespace string
	Database  string
	t         *testing.T
}

var (
	migrationOnce sync.Once
	migrations    []string
	migrationErr  error

	namespaceSeq atomic.Int64
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func testConfig() database.Config {
	return database.Config{
		Host:     envOr("TEST_DB_HOST", "localhost"),
		Port:     envOr("TEST_DB_PORT", "8000"),
		User:     envOr("TEST_DB_USER", "root"),
		Password: envOr("TEST_DB_PASSWORD", "root"),
	}
}

// uniqueNamespace names a namespace no other running test will touch.
func uniqueNamespace() string {
	return fmt.Sprintf("test_%d_%d", time.Now().UnixNano(), namespaceSeq.Add(1))
}

// findMigrationDir locates the migrations directory relative to wherever the
// test binary runs, falling back to PAWMARKET_ROOT.
func findMigrationDir() string {
	dir := "migrations"
	for i := 0; i < 5; i++ {
		if _, err := os.Stat(dir); err == nil {
			return dir
		}
		dir = filepath.Join("..", dir)
	}
	if root := os.Getenv("PAWMARKET_ROOT"); root != "" {
		return filepath.Join(root, "migrations")
	}
	return ""
}

// loadMigrations reads the schema files once, in lexical order. seed.surql
// holds demo data, not schema, and is excluded.
func loadMigrations() ([]string, error) {
	migrationOnce.Do(func() {
		dir := findMigrationDir()
		if dir == "" {
			migrationErr = fmt.Errorf("could not find migrations directory")
			return
		}

		entries, err := os.ReadDir(dir)
		if err != nil {
			migrationErr = fmt.Errorf("reading migrations dir: %w", err)
			return
		}

		var names []string
		for _, e := range entries {
			if strings.HasSuffix(e.Name(), ".surql") && e.Name() != "seed.surql" {
				names = append(names, e.Name())
			}
		}
		sort.Strings(names)

		for _, name := range names {
			content, err := os.ReadFile(filepath.Join(dir, name))
			if err != nil {
				migrationErr = fmt.Errorf("reading %s: %w", name, err)
				return
			}
			migrations = append(migrations, string(content))
		}
	})

	return migrations, migrationErr
}

// New connects to the test SurrealDB instance, carves out a fresh namespace
// and applies every migration. Call Close when done to drop the namespace.
func New(t *testing.T) *TestDB {
	t.Helper()

	if os.Getenv("TEST_DB_SKIP") != "" {
		t.Skip("testdb: TEST_DB_SKIP is set, skipping database-backed test")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cfg := testConfig()
	cfg.Namespace = uniqueNamespace()
	cfg.Database = "test"

	db := database.NewSurrealDB(cfg)
	if err := db.Connect(ctx); err != nil {
		t.Fatalf("testdb: failed to connect: %v", err)
	}

	migs, err := loadMigrations()
	if err != nil {
		db.Close()
		t.Fatalf("testdb: failed to load migrations: %v", err)
	}
	for i, mig := range migs {
		if err := db.Execute(ctx, mig, nil); err != nil {
			db.Close()
			t.Fatalf("testdb: migration %d failed: %v", i+1, err)
		}
	}

	return &TestDB{
		DB:        db,
		Namespace: cfg.Namespace,
		Database:  cfg.Database,
		t:         t,
	}
}

// Close drops the test namespace and releases the connection. Cleanup errors
// are ignored; a leaked namespace in a throwaway test instance is harmless.
func (tdb *TestDB) Close() {
	if tdb.DB == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_ = tdb.DB.Execute(ctx, "REMOVE NAMESPACE "+tdb.Namespace, nil)
	tdb.DB.Close()
}

// Ctx returns a context with a timeout suited to a single test operation.
func (tdb *TestDB) Ctx() context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	_ = cancel // the timeout bounds the operation; tests finish well inside it
	return ctx
}

// MustQuery runs a query and fails the test on error.
func (tdb *TestDB) MustQuery(query string, vars map[string]interface{}) []interface{} {
	tdb.t.Helper()
	results, err := tdb.DB.Query(tdb.Ctx(), query, vars)
	if err != nil {
		tdb.t.Fatalf("testdb: query failed: %v\nQuery: %s", err, query)
	}
	return results
}
