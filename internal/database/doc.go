// Package database is the SurrealDB access layer for PawMarket.
//
// Repositories talk to the Database interface rather than the driver, so
// query logic stays testable and the driver can be swapped in tests. Three
// query shapes cover everything the marketplace needs:
//
//   - Query for lists (directory searches, booking feeds, ledger entries)
//   - QueryOne for single-record lookups
//   - Execute for mutations with no interesting result
//
// # Transactions
//
// Transactions here are batch-based rather than connection-level. TxBuilder
// accumulates statements in memory, namespacing their variables so different
// repositories can contribute to one batch, and ExecuteTransaction wraps the
// lot in BEGIN TRANSACTION / COMMIT TRANSACTION. Consequences:
//
//   - statements cannot read state written earlier in the same batch
//   - the whole batch succeeds or fails together
//
// Multi-record writes that must land together (marking a booking paid and
// crediting the caregiver's ledger, rolling credits into a payout) go
// through AtomicBatch in transaction.go, which is the friendlier wrapper.
//
// # Errors
//
// Failures map onto the package's sentinel errors; match them with errors.Is:
//
//	if errors.Is(err, database.ErrNotFound) { ... }
package database
