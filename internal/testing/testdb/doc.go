// Package testdb spins up isolated SurrealDB environments for tests. Each
// TestDB gets its own namespace with the full migration set applied, so
// suites exercise real schema constraints and indexes instead of mocks.
//
// # Setup
//
// Create a database per test and clean up when done:
//
//	func TestSomething(t *testing.T) {
//	    tdb := testdb.New(t)
//	    defer tdb.Close()
//
//	    // Use tdb.DB for database operations
//	}
//
// New applies every file under migrations/ except seed.surql, in lexical
// order. Connection settings come from TEST_DB_HOST, TEST_DB_PORT,
// TEST_DB_USER and TEST_DB_PASSWORD, defaulting to a local root instance.
//
// # Skipping
//
// Set TEST_DB_SKIP to skip every database-backed test, for example in
// environments without a SurrealDB instance.
package testdb
