// Package repository holds the SurrealQL data access layer. One repository
// per aggregate: users, profiles, pets, the service catalog, availability,
// bookings, walks, reviews, refresh tokens and the finance ledger.
//
// Every repository takes a database.Database in its constructor and exposes
// methods that run parameterized queries ($variable binding, type::record()
// for IDs, time::now() for server-side timestamps) and map the rows onto
// model structs with the accessor helpers in helpers.go.
//
// Writes that must land together never issue separate calls. Registration
// creates the user and its role profile through TxBuilder; payment and
// payout rollup credit the ledger through AtomicBatch. Either way the
// statements commit as one SurrealDB transaction.
//
// Lookups that miss return database.ErrNotFound:
//
//	booking, err := NewBookingRepository(db).GetByID(ctx, "booking:abc123")
//	if errors.Is(err, database.ErrNotFound) {
//	    // no such booking
//	}
package repository
