package service

import (
	"context"
	"strings"
	"time"

	"github.com/pawmarket/api/internal/model"
)

// BookingRepository defines the interface for booking storage
type BookingRepository interface {
	Create(ctx context.Context, b *model.Booking) error
	GetByID(ctx context.Context, id string) (*model.Booking, error)
	List(ctx context.Context, filter model.BookingListFilter) ([]*model.Booking, error)
	HasOverlap(ctx context.Context, caregiverID string, start, end time.Time) (bool, error)
	UpdateStatus(ctx context.Context, id string, status model.BookingStatus) error
	SetCaregiverNotes(ctx context.Context, id, notes string) error
	MarkPaid(ctx context.Context, b *model.Booking, description string) error
	CountByStatus(ctx context.Context, status model.BookingStatus) (int, error)
}

// BookingService drives the booking lifecycle: creation with full
// marketplace validation, the status machine, and payment marking.
type BookingService struct {
	bookingRepo         BookingRepository
	petRepo             PetRepository
	profileRepo         ProfileRepository
	catalogRepo         CatalogRepository
	availabilityService *AvailabilityService
	calculator          *CommissionCalculator
}

// BookingServiceConfig holds configuration for the booking service
type BookingServiceConfig struct {
	BookingRepo         BookingRepository
	PetRepo             PetRepository
	ProfileRepo         ProfileRepository
	CatalogRepo         CatalogRepository
	AvailabilityService *AvailabilityService
	Calculator          *CommissionCalculator
}

// NewBookingService creates a new booking service
func NewBookingService(cfg BookingServiceConfig) *BookingService {
	return &BookingService{
		bookingRepo:         cfg.BookingRepo,
		petRepo:             cfg.PetRepo,
		profileRepo:         cfg.ProfileRepo,
		catalogRepo:         cfg.CatalogRepo,
		availabilityService: cfg.AvailabilityService,
		calculator:          cfg.Calculator,
	}
}

// Create books a caregiver for one of the owner's pets. The price is the
// caregiver's current offering price; fee and payout are computed once here
// and frozen on the booking.
func (s *BookingService) Create(ctx context.Context, ownerID string, req model.CreateBookingRequest) (*model.Booking, error) {
	startsOn, err := time.Parse(time.RFC3339, req.StartsOn)
	if err != nil {
		return nil, ErrInvalidStartFormat
	}
	if !startsOn.After(time.Now()) {
		return nil, ErrStartInPast
	}
	if len(req.OwnerNotes) > model.MaxBookingNotesLength {
		return nil, ErrBookingNotesTooLong
	}
	if ownerID == req.CaregiverID {
		return nil, ErrCannotBookSelf
	}

	pet, err := s.petRepo.GetByID(ctx, req.PetID)
	if err != nil {
		return nil, err
	}
	if pet == nil || pet.OwnerID != ownerID {
		return nil, ErrPetNotFound
	}

	caregiver, err := s.profileRepo.GetCaregiverProfileByUserID(ctx, req.CaregiverID)
	if err != nil {
		return nil, err
	}
	if caregiver == nil {
		return nil, ErrProfileNotFound
	}

	offering, err := s.catalogRepo.GetActiveOffering(ctx, req.CaregiverID, strings.TrimSpace(req.ServiceTypeCode))
	if err != nil {
		return nil, err
	}
	if offering == nil || offering.ServiceType == nil {
		return nil, ErrOfferingNotFound
	}

	baseDuration := offering.ServiceType.BaseDurationMinutes
	duration := req.DurationMinutes
	if duration == 0 {
		duration = baseDuration
	}
	if duration <= 0 || duration > baseDuration*model.MaxDurationMultiplier {
		return nil, ErrInvalidDuration
	}

	endsOn := startsOn.Add(time.Duration(duration) * time.Minute)

	available, err := s.availabilityService.IsAvailable(ctx, req.CaregiverID, startsOn, endsOn)
	if err != nil {
		return nil, err
	}
	if !available {
		return nil, ErrCaregiverNotAvailable
	}

	price := offering.PriceCents
	fee, payout := s.calculator.Split(price)

	booking := &model.Booking{
		OwnerID:         ownerID,
		CaregiverID:     req.CaregiverID,
		PetID:           pet.ID,
		ServiceTypeID:   offering.ServiceTypeID,
		StartsOn:        startsOn,
		EndsOn:          endsOn,
		DurationMinutes: duration,
		Status:          model.BookingStatusPending,
		OwnerNotes:      req.OwnerNotes,
		PriceCents:      price,
		FeeCents:        fee,
		PayoutCents:     payout,
		PaymentStatus:   model.PaymentStatusPending,
	}

	if err := s.bookingRepo.Create(ctx, booking); err != nil {
		return nil, err
	}

	return booking, nil
}

// List returns bookings where the user is the given party, optionally
// filtered by status.
func (s *BookingService) List(ctx context.Context, userID, as string, status model.BookingStatus, limit, offset int) ([]*model.Booking, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}

	filter := model.BookingListFilter{
		Status: status,
		Limit:  limit,
		Offset: offset,
	}
	if as == "caregiver" {
		filter.CaregiverID = userID
	} else {
		filter.OwnerID = userID
	}

	return s.bookingRepo.List(ctx, filter)
}

// Get returns a booking to one of its parties
func (s *BookingService) Get(ctx context.Context, userID, bookingID string) (*model.Booking, error) {
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
	return booking, nil
}

// Accept moves a pending booking to accepted (caregiver only)
func (s *BookingService) Accept(ctx context.Context, caregiverID, bookingID, notes string) (*model.Booking, error) {
	return s.caregiverTransition(ctx, caregiverID, bookingID, notes, model.BookingStatusAccepted)
}

// Reject declines a pending booking (caregiver only)
func (s *BookingService) Reject(ctx context.Context, caregiverID, bookingID, notes string) (*model.Booking, error) {
	return s.caregiverTransition(ctx, caregiverID, bookingID, notes, model.BookingStatusRejected)
}

// Complete marks an accepted booking as done (caregiver only)
func (s *BookingService) Complete(ctx context.Context, caregiverID, bookingID, notes string) (*model.Booking, error) {
	return s.caregiverTransition(ctx, caregiverID, bookingID, notes, model.BookingStatusCompleted)
}

func (s *BookingService) caregiverTransition(ctx context.Context, caregiverID, bookingID, notes string, to model.BookingStatus) (*model.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, ErrBookingNotFound
	}
	if booking.CaregiverID != caregiverID {
		return nil, ErrNotBookingParty
	}
	if !model.CanTransition(booking.Status, to) {
		return nil, ErrInvalidTransition
	}
	if len(notes) > model.MaxBookingNotesLength {
		return nil, ErrBookingNotesTooLong
	}

	if err := s.bookingRepo.UpdateStatus(ctx, bookingID, to); err != nil {
		return nil, err
	}
	booking.Status = to

	if notes != "" {
		if err := s.bookingRepo.SetCaregiverNotes(ctx, bookingID, notes); err != nil {
			return nil, err
		}
		booking.CaregiverNotes = notes
	}

	return booking, nil
}

// Cancel cancels a booking. Either party may cancel while the status machine
// allows it.
func (s *BookingService) Cancel(ctx context.Context, userID, bookingID string) (*model.Booking, error) {
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
	if !model.CanTransition(booking.Status, model.BookingStatusCancelled) {
		return nil, ErrInvalidTransition
	}

	if err := s.bookingRepo.UpdateStatus(ctx, bookingID, model.BookingStatusCancelled); err != nil {
		return nil, err
	}
	booking.Status = model.BookingStatusCancelled
	return booking, nil
}

// MarkPaid records the owner's payment on an accepted or completed booking
// and writes the caregiver's ledger credit in the same transaction. The
// operation is idempotent: paying an already-paid booking succeeds without
// touching the ledger again.
func (s *BookingService) MarkPaid(ctx context.Context, ownerID, bookingID string) (*model.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, ErrBookingNotFound
	}
	if booking.OwnerID != ownerID {
		return nil, ErrNotBookingParty
	}
	if booking.PaymentStatus == model.PaymentStatusPaid {
		return booking, nil
	}
	if booking.Status != model.BookingStatusAccepted && booking.Status != model.BookingStatusCompleted {
		return nil, ErrPaymentNotAllowed
	}

	if err := s.bookingRepo.MarkPaid(ctx, booking, model.DescriptionBookingPayout); err != nil {
		return nil, err
	}
	booking.PaymentStatus = model.PaymentStatusPaid
	return booking, nil
}
