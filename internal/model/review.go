package model

import "time"

// Review is owner feedback on a completed booking. One review per booking;
// the target caregiver is derived from the booking, never client-supplied.
type Review struct {
	ID          string    `json:"id"`
	BookingID   string    `json:"booking_id"`
	AuthorID    string    `json:"author_id"` // user record of the booking's owner
	CaregiverID string    `json:"caregiver_id"`
	Rating      int       `json:"rating"` // 1..5
	Comment     string    `json:"comment,omitempty"`
	CreatedOn   time.Time `json:"created_on"`
	UpdatedOn   time.Time `json:"updated_on"`

	// Populated on reads that join the author record
	AuthorUsername *string `json:"author_username,omitempty"`
}

// CreateReviewRequest submits feedback for a completed booking
type CreateReviewRequest struct {
	BookingID string `json:"booking_id"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment,omitempty"`
}

// RatingAggregate is the recomputed caregiver reputation snapshot.
// Average is fixed-point x100.
type RatingAggregate struct {
	CaregiverID string `json:"caregiver_id"`
	Average     int    `json:"average"`
	Count       int    `json:"count"`
}

// Review constraints
const (
	MinRating           = 1
	MaxRating           = 5
	MaxCommentLength    = 2000
	RecentReviewsOnPage = 10
)
