package service

import (
	"context"

	"github.com/pawmarket/api/internal/model"
)

// WalkRepository defines the interface for walk storage
type WalkRepository interface {
	Create(ctx context.Context, w *model.Walk) error
	GetByID(ctx context.Context, id string) (*model.Walk, error)
	GetOpenByBooking(ctx context.Context, bookingID string) (*model.Walk, error)
	ListByCaregiver(ctx context.Context, caregiverID string, limit, offset int) ([]*model.Walk, error)
	ListByBooking(ctx context.Context, bookingID string) ([]*model.Walk, error)
	Update(ctx context.Context, id string, updates map[string]interface{}, finish bool) (*model.Walk, error)
	AddPhoto(ctx context.Context, p *model.WalkPhoto) error
	ListPhotos(ctx context.Context, walkID string) ([]*model.WalkPhoto, error)
	CountPhotos(ctx context.Context, walkID string) (int, error)
}

// WalkService manages walk execution records. Walks belong to the caregiver
// of an accepted booking; owners read them through their bookings.
type WalkService struct {
	walkRepo    WalkRepository
	bookingRepo BookingRepository
}

// WalkServiceConfig holds configuration for the walk service
type WalkServiceConfig struct {
	WalkRepo    WalkRepository
	BookingRepo BookingRepository
}

// NewWalkService creates a new walk service
func NewWalkService(cfg WalkServiceConfig) *WalkService {
	return &WalkService{
		walkRepo:    cfg.WalkRepo,
		bookingRepo: cfg.BookingRepo,
	}
}

// Start opens a walk for an accepted booking. A booking carries at most one
// open walk at a time.
func (s *WalkService) Start(ctx context.Context, caregiverID string, req model.StartWalkRequest) (*model.Walk, error) {
	if len(req.Notes) > model.MaxWalkNotesLength {
		return nil, ErrWalkNotesTooLong
	}

	booking, err := s.bookingRepo.GetByID(ctx, req.BookingID)
	if err != nil {
		return nil, err
	}
	if booking == nil || booking.CaregiverID != caregiverID {
		return nil, ErrBookingNotFound
	}
	if booking.Status != model.BookingStatusAccepted {
		return nil, ErrBookingNotAccepted
	}

	open, err := s.walkRepo.GetOpenByBooking(ctx, booking.ID)
	if err != nil {
		return nil, err
	}
	if open != nil {
		return nil, ErrWalkAlreadyOpen
	}

	walk := &model.Walk{
		BookingID:   booking.ID,
		CaregiverID: caregiverID,
		Notes:       req.Notes,
	}

	if err := s.walkRepo.Create(ctx, walk); err != nil {
		return nil, err
	}

	return walk, nil
}

// Get returns one of the caregiver's walks with its photos attached
func (s *WalkService) Get(ctx context.Context, caregiverID, walkID string) (*model.Walk, error) {
	walk, err := s.ownedWalk(ctx, caregiverID, walkID)
	if err != nil {
		return nil, err
	}

	photos, err := s.walkRepo.ListPhotos(ctx, walkID)
	if err != nil {
		return nil, err
	}
	walk.Photos = photos
	return walk, nil
}

// List returns the caregiver's walks, newest first
func (s *WalkService) List(ctx context.Context, caregiverID string, limit, offset int) ([]*model.Walk, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	return s.walkRepo.ListByCaregiver(ctx, caregiverID, limit, offset)
}

// ListForBooking returns every walk on a booking to either of its parties,
// so owners can follow the care their pet received.
func (s *WalkService) ListForBooking(ctx context.Context, userID, bookingID string) ([]*model.Walk, error) {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, ErrBookingNotFound
	}
	if booking.OwnerID != userID && booking.CaregiverID != userID {
		return nil, ErrNotBookingParty
	}
	return s.walkRepo.ListByBooking(ctx, bookingID)
}

// Update patches telemetry on an open walk. Setting Finish closes it.
func (s *WalkService) Update(ctx context.Context, caregiverID, walkID string, req model.UpdateWalkRequest) (*model.Walk, error) {
	walk, err := s.ownedWalk(ctx, caregiverID, walkID)
	if err != nil {
		return nil, err
	}
	if !walk.Open() {
		return nil, ErrWalkFinished
	}

	if len(req.Route) > model.MaxWalkRoutePoints {
		return nil, ErrRouteTooLong
	}
	if req.Notes != nil && len(*req.Notes) > model.MaxWalkNotesLength {
		return nil, ErrWalkNotesTooLong
	}

	updates := make(map[string]interface{})
	if req.DistanceMeters != nil {
		updates["distance_meters"] = *req.DistanceMeters
	}
	if req.Route != nil {
		updates["route"] = req.Route
	}
	if req.PeeCount != nil {
		updates["pee_count"] = *req.PeeCount
	}
	if req.PooCount != nil {
		updates["poo_count"] = *req.PooCount
	}
	if req.FoodGiven != nil {
		updates["food_given"] = *req.FoodGiven
	}
	if req.WaterGiven != nil {
		updates["water_given"] = *req.WaterGiven
	}
	if req.Notes != nil {
		updates["notes"] = *req.Notes
	}

	if len(updates) == 0 && !req.Finish {
		return walk, nil
	}

	return s.walkRepo.Update(ctx, walkID, updates, req.Finish)
}

// AddPhoto attaches a photo URL to one of the caregiver's walks
func (s *WalkService) AddPhoto(ctx context.Context, caregiverID, walkID string, req model.AddWalkPhotoRequest) (*model.WalkPhoto, error) {
	if _, err := s.ownedWalk(ctx, caregiverID, walkID); err != nil {
		return nil, err
	}

	if req.URL == "" {
		return nil, ErrInvalidPhotoURL
	}
	if len(req.Caption) > model.MaxWalkPhotoCaption {
		return nil, ErrCaptionTooLong
	}

	count, err := s.walkRepo.CountPhotos(ctx, walkID)
	if err != nil {
		return nil, err
	}
	if count >= model.MaxPhotosPerWalk {
		return nil, ErrPhotoLimitReached
	}

	photo := &model.WalkPhoto{
		WalkID:  walkID,
		URL:     req.URL,
		Caption: req.Caption,
	}

	if err := s.walkRepo.AddPhoto(ctx, photo); err != nil {
		return nil, err
	}

	return photo, nil
}

// ownedWalk loads a walk and verifies the caregiver owns it. Foreign walks
// surface as not found.
func (s *WalkService) ownedWalk(ctx context.Context, caregiverID, walkID string) (*model.Walk, error) {
	walk, err := s.walkRepo.GetByID(ctx, walkID)
	if err != nil {
		return nil, err
	}
	if walk == nil || walk.CaregiverID != caregiverID {
		return nil, ErrWalkNotFound
	}
	return walk, nil
}
