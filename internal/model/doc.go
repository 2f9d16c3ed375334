// Package model defines the domain types shared by every layer of the
// PawMarket API: entities, request/response payloads, enumerations, and
// the RFC 9457 error vocabulary.
//
// # Entities
//
// The marketplace revolves around a handful of aggregates:
//
//   - User: account with authentication credentials and a marketplace role
//   - OwnerProfile / CaregiverProfile: role-specific profile records
//   - Pet: an owner's registered animal
//   - ServiceType / CaregiverService: the care catalog and priced offerings
//   - Availability / TimeOff: a caregiver's bookable calendar
//   - Booking: owner, caregiver, pet and service type over a time window
//   - Walk: execution record of a booking, with photos
//   - Review: owner feedback on a completed booking
//   - Payout / TransactionLog: the earnings ledger
//
// Every type carries json struct tags; the handler layer marshals them
// directly. Money is always integer cents and rating averages are
// fixed-point x100, so no float ever crosses the wire for a financial or
// scoring value.
//
// # Limits
//
// Business limits live next to the type they bound:
//
//	const (
//	    MaxPetNameLength = 100
//	    MaxPetsPerOwner  = 20
//	    MaxRating        = 5
//	)
//
// # Errors
//
// errors.go defines ProblemDetails, the RFC 9457 problem+json body used
// for every non-2xx response, along with a constructor per failure class
// (NewNotFoundError, NewValidationError, NewLimitExceededError, and so
// on). Each carries a stable numeric Code grouped by family: 1xxx auth,
// 2xxx validation, 3xxx not-found, 4xxx conflict, 5xxx server.
package model
