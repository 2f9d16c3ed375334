package repository

import (
	"context"
	"errors"
	"math"

	"github.com/pawmarket/api/internal/database"
	"github.com/pawmarket/api/internal/model"
)

// ReviewRepository handles review data access
type ReviewRepository struct {
	db database.Database
}

// NewReviewRepository creates a new review repository
func NewReviewRepository(db database.Database) *ReviewRepository {
	return &ReviewRepository{db: db}
}

// Create creates a new review
func (r *ReviewRepository) Create(ctx context.Context, review *model.Review) error {
	query := `
		CREATE review CONTENT {
			booking: type::record($booking_id),
			author: type::record($author_id),
			caregiver: type::record($caregiver_id),
			rating: $rating,
			comment: $comment,
			created_on: time::now(),
			updated_on: time::now()
		}
	`

	vars := map[string]interface{}{
		"booking_id":   review.BookingID,
		"author_id":    review.AuthorID,
		"caregiver_id": review.CaregiverID,
		"rating":       review.Rating,
		"comment":      review.Comment,
	}

	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		if isUniqueConstraintError(err) {
			return database.ErrDuplicate
		}
		return err
	}

	created, err := extractCreatedRecord(result)
	if err != nil {
		return err
	}

	review.ID = created.ID
	review.CreatedOn = created.CreatedOn
	review.UpdatedOn = created.UpdatedOn
	return nil
}

// GetByID retrieves a review by ID
func (r *ReviewRepository) GetByID(ctx context.Context, id string) (*model.Review, error) {
	// Direct record access - more efficient than WHERE id =
	query := `SELECT *, author.username AS author_username FROM type::record($id)`
	vars := map[string]interface{}{"id": id}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return r.parseReviewResult(result)
}

// GetByBooking retrieves the review on a booking, or nil
func (r *ReviewRepository) GetByBooking(ctx context.Context, bookingID string) (*model.Review, error) {
	query := `SELECT *, author.username AS author_username FROM review WHERE booking = type::record($booking_id) LIMIT 1`
	vars := map[string]interface{}{"booking_id": bookingID}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	review, err := r.parseReviewResult(result)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return review, nil
}

// ListByCaregiver retrieves reviews received by a caregiver, newest first
func (r *ReviewRepository) ListByCaregiver(ctx context.Context, caregiverID string, limit, offset int) ([]*model.Review, error) {
	query := `
		SELECT *, author.username AS author_username FROM review
		WHERE caregiver = type::record($caregiver_id)
		ORDER BY created_on DESC
		LIMIT $limit START $offset
	`
	vars := map[string]interface{}{
		"caregiver_id": caregiverID,
		"limit":        limit,
		"offset":       offset,
	}

	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return nil, err
	}

	return r.parseReviewsResult(result)
}

// ComputeAggregate recomputes a caregiver's rating aggregate from reviews.
// The returned average is fixed-point x100 with standard rounding.
func (r *ReviewRepository) ComputeAggregate(ctx context.Context, caregiverID string) (*model.RatingAggregate, error) {
	query := `
		SELECT count() AS count, math::mean(rating) AS average FROM review
		WHERE caregiver = type::record($caregiver_id)
		GROUP ALL
	`
	vars := map[string]interface{}{"caregiver_id": caregiverID}

	agg := &model.RatingAggregate{CaregiverID: caregiverID}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return agg, nil
		}
		return nil, err
	}

	if data, ok := result.(map[string]interface{}); ok {
		agg.Count = getInt(data, "count")
		if agg.Count > 0 {
			agg.Average = int(math.Round(getFloat(data, "average") * 100))
		}
	}

	return agg, nil
}

// Helper functions

func (r *ReviewRepository) parseReviewResult(result interface{}) (*model.Review, error) {
	data, err := unwrapRecord(result)
	if err != nil {
		return nil, err
	}

	review := &model.Review{
		ID:          convertSurrealID(data["id"]),
		BookingID:   convertSurrealID(data["booking"]),
		AuthorID:    convertSurrealID(data["author"]),
		CaregiverID: convertSurrealID(data["caregiver"]),
		Rating:      getInt(data, "rating"),
		Comment:     getString(data, "comment"),
	}

	review.AuthorUsername = getStringPtr(data, "author_username")

	if t := getTime(data, "created_on"); t != nil {
		review.CreatedOn = *t
	}
	if t := getTime(data, "updated_on"); t != nil {
		review.UpdatedOn = *t
	}

	return review, nil
}

func (r *ReviewRepository) parseReviewsResult(result []interface{}) ([]*model.Review, error) {
	reviews := make([]*model.Review, 0)

	rows, ok := extractQueryResults(result)
	if !ok {
		return reviews, nil
	}

	for _, row := range rows {
		review, err := r.parseReviewResult(row)
		if err != nil {
			continue
		}
		reviews = append(reviews, review)
	}

	return reviews, nil
}
