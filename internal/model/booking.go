package model

import "time"

// BookingStatus tracks the booking lifecycle
type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusAccepted  BookingStatus = "accepted"
	BookingStatusRejected  BookingStatus = "rejected"
	BookingStatusCancelled BookingStatus = "cancelled"
	BookingStatusCompleted BookingStatus = "completed"
)

// PaymentStatus tracks money movement for a booking
type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

// bookingTransitions is the allowed status machine. Rejected, cancelled and
// completed are terminal.
var bookingTransitions = map[BookingStatus][]BookingStatus{
	BookingStatusPending:  {BookingStatusAccepted, BookingStatusRejected, BookingStatusCancelled},
	BookingStatusAccepted: {BookingStatusCompleted, BookingStatusCancelled},
}

// CanTransition reports whether a booking may move from one status to another.
func CanTransition(from, to BookingStatus) bool {
	for _, allowed := range bookingTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// Booking links an owner, caregiver, pet and service type over a time window.
// Price, fee and payout are frozen at creation so later fee changes never
// rewrite history.
type Booking struct {
	ID              string        `json:"id"`
	OwnerID         string        `json:"owner_id"`
	CaregiverID     string        `json:"caregiver_id"`
	PetID           string        `json:"pet_id"`
	ServiceTypeID   string        `json:"service_type_id"`
	StartsOn        time.Time     `json:"starts_on"`
	EndsOn          time.Time     `json:"ends_on"`
	DurationMinutes int           `json:"duration_minutes"`
	Status          BookingStatus `json:"status"`
	OwnerNotes      string        `json:"owner_notes,omitempty"`
	CaregiverNotes  string        `json:"caregiver_notes,omitempty"`
	PriceCents      int64         `json:"price_cents"`
	FeeCents        int64         `json:"fee_cents"`
	PayoutCents     int64         `json:"payout_cents"`
	PaymentStatus   PaymentStatus `json:"payment_status"`
	CreatedOn       time.Time     `json:"created_on"`
	UpdatedOn       time.Time     `json:"updated_on"`
}

// IsTerminal reports whether no further status transitions are possible.
func (b *Booking) IsTerminal() bool {
	return len(bookingTransitions[b.Status]) == 0
}

// CreateBookingRequest is the owner's booking payload. The caregiver's
// current price for the service type is applied server-side.
type CreateBookingRequest struct {
	PetID           string `json:"pet_id"`
	CaregiverID     string `json:"caregiver_id"`
	ServiceTypeCode string `json:"service_type_code"`
	StartsOn        string `json:"starts_on"` // RFC 3339
	DurationMinutes int    `json:"duration_minutes"`
	OwnerNotes      string `json:"owner_notes,omitempty"`
}

// BookingListFilter narrows booking listings
type BookingListFilter struct {
	OwnerID     string
	CaregiverID string
	Status      BookingStatus
	Limit       int
	Offset      int
}

// Booking constraints
const (
	MaxBookingNotesLength = 2000
	// A booking may run at most this many times the service's base duration.
	MaxDurationMultiplier = 4
)
