package model

import (
	"testing"
	"time"
)

// ============================================================================
// Booking Status Machine Tests
// ============================================================================

func TestCanTransition_AllowedMoves(t *testing.T) {
	t.Parallel()

	allowed := []struct {
		from BookingStatus
		to   BookingStatus
	}{
		{BookingStatusPending, BookingStatusAccepted},
		{BookingStatusPending, BookingStatusRejected},
		{BookingStatusPending, BookingStatusCancelled},
		{BookingStatusAccepted, BookingStatusCompleted},
		{BookingStatusAccepted, BookingStatusCancelled},
	}

	for _, tc := range allowed {
		if !CanTransition(tc.from, tc.to) {
			t.Errorf("expected %s -> %s to be allowed", tc.from, tc.to)
		}
	}
}

func TestCanTransition_RejectedMoves(t *testing.T) {
	t.Parallel()

	rejected := []struct {
		from BookingStatus
		to   BookingStatus
	}{
		{BookingStatusPending, BookingStatusCompleted},
		{BookingStatusAccepted, BookingStatusPending},
		{BookingStatusAccepted, BookingStatusRejected},
		{BookingStatusRejected, BookingStatusAccepted},
		{BookingStatusCancelled, BookingStatusPending},
		{BookingStatusCompleted, BookingStatusCancelled},
		{BookingStatusCompleted, BookingStatusPending},
	}

	for _, tc := range rejected {
		if CanTransition(tc.from, tc.to) {
			t.Errorf("expected %s -> %s to be rejected", tc.from, tc.to)
		}
	}
}

func TestBooking_IsTerminal(t *testing.T) {
	t.Parallel()

	terminal := []BookingStatus{BookingStatusRejected, BookingStatusCancelled, BookingStatusCompleted}
	for _, status := range terminal {
		b := &Booking{Status: status}
		if !b.IsTerminal() {
			t.Errorf("expected %s to be terminal", status)
		}
	}

	open := []BookingStatus{BookingStatusPending, BookingStatusAccepted}
	for _, status := range open {
		b := &Booking{Status: status}
		if b.IsTerminal() {
			t.Errorf("expected %s to be non-terminal", status)
		}
	}
}

// ============================================================================
// Role Tests
// ============================================================================

func TestValidRole(t *testing.T) {
	t.Parallel()

	for _, role := range []UserRole{UserRoleOwner, UserRoleCaregiver, UserRoleAdmin} {
		if !ValidRole(role) {
			t.Errorf("expected role %q to be valid", role)
		}
	}

	for _, role := range []UserRole{"", "moderator", "superuser"} {
		if ValidRole(role) {
			t.Errorf("expected role %q to be invalid", role)
		}
	}
}

func TestMarketplaceWeekday(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		in   int // time.Weekday: Sunday = 0
		want int
	}{
		{"sunday", 0, 6},
		{"monday", 1, 0},
		{"wednesday", 3, 2},
		{"saturday", 6, 5},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := MarketplaceWeekday(time.Weekday(tc.in))
			if got != tc.want {
				t.Errorf("weekday %d: expected %d, got %d", tc.in, tc.want, got)
			}
		})
	}
}
