// Package fixtures builds marketplace test data directly in SurrealDB.
// A Factory wraps a database handle and seeds whatever graph a test needs,
// with unique usernames and emails generated per call:
//
//	f := fixtures.New(tdb.DB)
//	owner, _ := f.CreateOwner(t)
//	caregiver, _ := f.CreateCaregiver(t)
//	pet := f.CreatePet(t, owner)
//	st := f.CreateServiceType(t)
//	booking := f.CreateBooking(t, owner, caregiver, pet, st)
//
// Defaults are overridden with option functions on the Opts struct:
//
//	user := f.CreateUser(t, func(o *fixtures.UserOpts) {
//	    o.Email = "custom@test.local"
//	    o.Active = false
//	})
//
// Factories fail the test on any database error, so call sites stay free
// of error plumbing. Rows live in the test's own namespace and disappear
// when testdb closes it.
package fixtures
