package service

import (
	"context"
	"errors"

	"github.com/pawmarket/api/internal/database"
	"github.com/pawmarket/api/internal/model"
)

// ReviewRepository defines the interface for review storage
type ReviewRepository interface {
	Create(ctx context.Context, review *model.Review) error
	GetByID(ctx context.Context, id string) (*model.Review, error)
	GetByBooking(ctx context.Context, bookingID string) (*model.Review, error)
	ListByCaregiver(ctx context.Context, caregiverID string, limit, offset int) ([]*model.Review, error)
	ComputeAggregate(ctx context.Context, caregiverID string) (*model.RatingAggregate, error)
}

// ReviewService handles owner feedback on completed bookings. Each created
// review refreshes the caregiver's stored rating aggregate.
type ReviewService struct {
	reviewRepo       ReviewRepository
	bookingRepo      BookingRepository
	caregiverService *CaregiverService
}

// ReviewServiceConfig holds configuration for the review service
type ReviewServiceConfig struct {
	ReviewRepo       ReviewRepository
	BookingRepo      BookingRepository
	CaregiverService *CaregiverService
}

// NewReviewService creates a new review service
func NewReviewService(cfg ReviewServiceConfig) *ReviewService {
	return &ReviewService{
		reviewRepo:       cfg.ReviewRepo,
		bookingRepo:      cfg.BookingRepo,
		caregiverService: cfg.CaregiverService,
	}
}

// Create submits a review for a completed booking. Only the booking's owner
// may review, once per booking; the target caregiver comes from the booking
// record, never from the client.
func (s *ReviewService) Create(ctx context.Context, authorID string, req model.CreateReviewRequest) (*model.Review, error) {
	if req.Rating < model.MinRating || req.Rating > model.MaxRating {
		return nil, ErrInvalidRating
	}
	if len(req.Comment) > model.MaxCommentLength {
		return nil, ErrCommentTooLong
	}

	booking, err := s.bookingRepo.GetByID(ctx, req.BookingID)
	if err != nil {
		return nil, err
	}
	// Bookings belonging to someone else look like missing bookings
	if booking == nil || booking.OwnerID != authorID {
		return nil, ErrBookingNotFound
	}
	if booking.Status != model.BookingStatusCompleted {
		return nil, ErrBookingNotCompleted
	}

	existing, err := s.reviewRepo.GetByBooking(ctx, booking.ID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrAlreadyReviewed
	}

	review := &model.Review{
		BookingID:   booking.ID,
		AuthorID:    authorID,
		CaregiverID: booking.CaregiverID,
		Rating:      req.Rating,
		Comment:     req.Comment,
	}

	if err := s.reviewRepo.Create(ctx, review); err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			return nil, ErrAlreadyReviewed
		}
		return nil, err
	}

	// The stored aggregate must follow every review write
	if _, err := s.caregiverService.RecalcRating(ctx, booking.CaregiverID); err != nil {
		return nil, err
	}

	return review, nil
}

// ListByCaregiver returns a caregiver's reviews, newest first
func (s *ReviewService) ListByCaregiver(ctx context.Context, caregiverID string, limit, offset int) ([]*model.Review, error) {
	if limit <= 0 {
		limit = model.RecentReviewsOnPage
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	return s.reviewRepo.ListByCaregiver(ctx, caregiverID, limit, offset)
}
