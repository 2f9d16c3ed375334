package model

import "time"

// TransactionDirection distinguishes money in from money out
type TransactionDirection string

const (
	TransactionCredit TransactionDirection = "credit"
	TransactionDebit  TransactionDirection = "debit"
)

// TransactionLog is an immutable ledger entry. Credits accrue when a booking
// is paid; a later payout rollup stamps PayoutID on every entry it covers so
// each credit is disbursed at most once.
type TransactionLog struct {
	ID          string               `json:"id"`
	BookingID   *string              `json:"booking_id,omitempty"`
	UserID      string               `json:"user_id"`
	Direction   TransactionDirection `json:"direction"`
	AmountCents int64                `json:"amount_cents"`
	Description string               `json:"description"`
	PayoutID    *string              `json:"payout_id,omitempty"`
	CreatedOn   time.Time            `json:"created_on"`
}

// PayoutStatus tracks disbursement state
type PayoutStatus string

const (
	PayoutStatusPending    PayoutStatus = "pending"
	PayoutStatusProcessing PayoutStatus = "processing"
	PayoutStatusPaid       PayoutStatus = "paid"
	PayoutStatusFailed     PayoutStatus = "failed"
)

// Payout is a rollup of ledger credits owed to a caregiver.
type Payout struct {
	ID          string       `json:"id"`
	CaregiverID string       `json:"caregiver_id"`
	AmountCents int64        `json:"amount_cents"`
	Currency    string       `json:"currency"`
	Status      PayoutStatus `json:"status"`
	PaidOn      *time.Time   `json:"paid_on,omitempty"`
	CreatedOn   time.Time    `json:"created_on"`
	UpdatedOn   time.Time    `json:"updated_on"`
}

// FinanceSummary is the caregiver earnings dashboard.
type FinanceSummary struct {
	TotalEarningsCents  int64 `json:"total_earnings_cents"`
	UpcomingPayoutCents int64 `json:"upcoming_payout_cents"`
	Last30DaysCents     int64 `json:"last_30_days_cents"`
}

// MarketplaceStats backs the public landing page.
type MarketplaceStats struct {
	Caregivers        int                 `json:"caregivers"`
	ServiceTypes      int                 `json:"service_types"`
	ActiveCities      int                 `json:"active_cities"`
	CompletedBookings int                 `json:"completed_bookings"`
	TopCaregivers     []*CaregiverProfile `json:"top_caregivers"`
}

// Ledger descriptions
const (
	DescriptionBookingPayout = "Booking payout"
	DefaultCurrency          = "USD"
)
