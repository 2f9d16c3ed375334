// Package helpers carries the small utilities the test suites share.
//
// JWTHelper signs access tokens with a throwaway in-memory key, and
// NewTestJWTService builds a full jwt.Service the same way for tests that
// wire the real auth stack:
//
//	jwtHelper := helpers.NewJWTHelper(t)
//	token := jwtHelper.GenerateToken(user)
//
// AssertRecordExists and AssertRecordNotExists check row presence straight
// against SurrealDB, accepting either bare IDs or full table:id forms:
//
//	helpers.AssertRecordExists(t, db, "booking", booking.ID)
//
// StringPtr, IntPtr and BoolPtr produce pointers for optional request
// fields.
package helpers
