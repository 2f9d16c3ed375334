// Package handler wires HTTP endpoints to the service layer. Handlers are
// grouped by feature area (auth, pets, caregivers, availability, bookings,
// walks, reviews, finance, admin) and registered on a net/http ServeMux
// with method-and-path patterns:
//
//	handler := NewBookingHandler(bookingService)
//	mux.HandleFunc("GET /api/v1/bookings", handler.List)
//	mux.HandleFunc("POST /api/v1/bookings", handler.Create)
//
// A handler's job is translation only: decode and validate the request
// shape (DecodeJSON rejects unknown fields), call one service method, and
// render the outcome. Success goes through WriteData, WriteCollection or
// WriteNoContent; failures go through WriteError, which renders RFC 9457
// problem+json. Service sentinel errors are mapped to problem responses by
// MapServiceError in error_mapper.go, so status codes stay consistent
// across endpoints.
//
// The caller's identity comes from the auth middleware via
// middleware.GetUserID and middleware.GetUserRole; handlers never parse
// tokens themselves.
package handler
