// Package service carries the marketplace's business rules: registration
// and token rotation, pet limits, caregiver directory filters, availability
// windows, the booking state machine, walk tracking, review gating, and
// commission-based payouts.
//
// Services sit between handlers and repositories. Each one declares the
// repository interfaces it needs (so unit tests mock storage with a struct
// of function fields), validates inputs, enforces ownership and role rules,
// and returns sentinel errors the handler layer maps onto HTTP problems:
//
//	var (
//	    ErrBookingNotFound   = errors.New("booking not found")
//	    ErrInvalidTransition = errors.New("invalid booking status transition")
//	)
//
// Construction is config-struct based throughout:
//
//	svc := NewBookingService(BookingServiceConfig{
//	    BookingRepo: bookingRepo,
//	    PetRepo:     petRepo,
//	    ...
//	})
//	booking, err := svc.Create(ctx, ownerID, model.CreateBookingRequest{...})
//
// Every blocking operation takes a context.Context; services do not log or
// write HTTP responses.
package service
