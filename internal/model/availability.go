package model

import "time"

// Availability is a recurring weekly window during which a caregiver accepts
// bookings. Times are minutes since midnight in the caregiver's local day;
// weekday follows time.Weekday shifted so Monday = 0, matching how providers
// think about their week.
type Availability struct {
	ID          string    `json:"id"`
	CaregiverID string    `json:"caregiver_id"`
	Weekday     int       `json:"weekday"` // 0 = Monday ... 6 = Sunday
	StartMinute int       `json:"start_minute"`
	EndMinute   int       `json:"end_minute"`
	Recurring   bool      `json:"recurring"`
	CreatedOn   time.Time `json:"created_on"`
	UpdatedOn   time.Time `json:"updated_on"`
}

// TimeOff blocks a caregiver's calendar for an inclusive date range.
type TimeOff struct {
	ID          string    `json:"id"`
	CaregiverID string    `json:"caregiver_id"`
	DateFrom    time.Time `json:"date_from"`
	DateTo      time.Time `json:"date_to"`
	Reason      string    `json:"reason,omitempty"`
	CreatedOn   time.Time `json:"created_on"`
}

// CreateAvailabilityRequest adds a weekly window
type CreateAvailabilityRequest struct {
	Weekday     int   `json:"weekday"`
	StartMinute int   `json:"start_minute"`
	EndMinute   int   `json:"end_minute"`
	Recurring   *bool `json:"recurring,omitempty"`
}

// CreateTimeOffRequest blocks dates (YYYY-MM-DD, inclusive)
type CreateTimeOffRequest struct {
	DateFrom string `json:"date_from"`
	DateTo   string `json:"date_to"`
	Reason   string `json:"reason,omitempty"`
}

// MarketplaceWeekday converts a time.Weekday (Sunday=0) to the
// Monday-based index stored on availability rows.
func MarketplaceWeekday(d time.Weekday) int {
	return (int(d) + 6) % 7
}

// Availability constraints
const (
	MinutesPerDay       = 24 * 60
	MaxTimeOffReasonLen = 500
	MaxAvailabilityRows = 50
)
