package service

import (
	"context"
	"time"

	"github.com/pawmarket/api/internal/model"
)

// AvailabilityRepository defines the interface for availability storage
type AvailabilityRepository interface {
	CreateWindow(ctx context.Context, a *model.Availability) error
	GetWindowByID(ctx context.Context, id string) (*model.Availability, error)
	ListWindows(ctx context.Context, caregiverID string) ([]*model.Availability, error)
	ListWindowsForWeekday(ctx context.Context, caregiverID string, weekday int) ([]*model.Availability, error)
	CountWindows(ctx context.Context, caregiverID string) (int, error)
	DeleteWindow(ctx context.Context, id string) error
	CreateTimeOff(ctx context.Context, t *model.TimeOff) error
	GetTimeOffByID(ctx context.Context, id string) (*model.TimeOff, error)
	ListTimeOff(ctx context.Context, caregiverID string) ([]*model.TimeOff, error)
	HasTimeOffOverlap(ctx context.Context, caregiverID string, from, to time.Time) (bool, error)
	DeleteTimeOff(ctx context.Context, id string) error
}

// BookingOverlapChecker reports whether a caregiver already has a pending or
// accepted booking crossing a window
type BookingOverlapChecker interface {
	HasOverlap(ctx context.Context, caregiverID string, start, end time.Time) (bool, error)
}

// AvailabilityService manages caregiver schedules and answers the
// availability question for booking creation.
type AvailabilityService struct {
	availabilityRepo AvailabilityRepository
	bookingRepo      BookingOverlapChecker
}

// AvailabilityServiceConfig holds configuration for the availability service
type AvailabilityServiceConfig struct {
	AvailabilityRepo AvailabilityRepository
	BookingRepo      BookingOverlapChecker
}

// NewAvailabilityService creates a new availability service
func NewAvailabilityService(cfg AvailabilityServiceConfig) *AvailabilityService {
	return &AvailabilityService{
		availabilityRepo: cfg.AvailabilityRepo,
		bookingRepo:      cfg.BookingRepo,
	}
}

// CreateWindow adds a weekly availability window for the caregiver
func (s *AvailabilityService) CreateWindow(ctx context.Context, caregiverID string, req model.CreateAvailabilityRequest) (*model.Availability, error) {
	if req.Weekday < 0 || req.Weekday > 6 {
		return nil, ErrInvalidWeekday
	}
	if req.StartMinute < 0 || req.EndMinute > model.MinutesPerDay || req.EndMinute <= req.StartMinute {
		return nil, ErrInvalidTimeWindow
	}

	count, err := s.availabilityRepo.CountWindows(ctx, caregiverID)
	if err != nil {
		return nil, err
	}
	if count >= model.MaxAvailabilityRows {
		return nil, ErrWindowLimitReached
	}

	recurring := true
	if req.Recurring != nil {
		recurring = *req.Recurring
	}

	window := &model.Availability{
		CaregiverID: caregiverID,
		Weekday:     req.Weekday,
		StartMinute: req.StartMinute,
		EndMinute:   req.EndMinute,
		Recurring:   recurring,
	}

	if err := s.availabilityRepo.CreateWindow(ctx, window); err != nil {
		return nil, err
	}

	return window, nil
}

// ListWindows returns the caregiver's availability windows
func (s *AvailabilityService) ListWindows(ctx context.Context, caregiverID string) ([]*model.Availability, error) {
	return s.availabilityRepo.ListWindows(ctx, caregiverID)
}

// DeleteWindow removes one of the caregiver's windows
func (s *AvailabilityService) DeleteWindow(ctx context.Context, caregiverID, windowID string) error {
	window, err := s.availabilityRepo.GetWindowByID(ctx, windowID)
	if err != nil {
		return err
	}
	if window == nil || window.CaregiverID != caregiverID {
		return ErrAvailabilityNotFound
	}
	return s.availabilityRepo.DeleteWindow(ctx, windowID)
}

// CreateTimeOff blocks an inclusive date range on the caregiver's calendar
func (s *AvailabilityService) CreateTimeOff(ctx context.Context, caregiverID string, req model.CreateTimeOffRequest) (*model.TimeOff, error) {
	from, err := time.Parse("2006-01-02", req.DateFrom)
	if err != nil {
		return nil, ErrInvalidDateFormat
	}
	to, err := time.Parse("2006-01-02", req.DateTo)
	if err != nil {
		return nil, ErrInvalidDateFormat
	}
	if to.Before(from) {
		return nil, ErrInvalidDateRange
	}
	if len(req.Reason) > model.MaxTimeOffReasonLen {
		return nil, ErrReasonTooLong
	}

	timeOff := &model.TimeOff{
		CaregiverID: caregiverID,
		DateFrom:    from,
		DateTo:      to,
		Reason:      req.Reason,
	}

	if err := s.availabilityRepo.CreateTimeOff(ctx, timeOff); err != nil {
		return nil, err
	}

	return timeOff, nil
}

// ListTimeOff returns the caregiver's blocked date ranges
func (s *AvailabilityService) ListTimeOff(ctx context.Context, caregiverID string) ([]*model.TimeOff, error) {
	return s.availabilityRepo.ListTimeOff(ctx, caregiverID)
}

// DeleteTimeOff removes one of the caregiver's blocked ranges
func (s *AvailabilityService) DeleteTimeOff(ctx context.Context, caregiverID, timeOffID string) error {
	timeOff, err := s.availabilityRepo.GetTimeOffByID(ctx, timeOffID)
	if err != nil {
		return err
	}
	if timeOff == nil || timeOff.CaregiverID != caregiverID {
		return ErrTimeOffNotFound
	}
	return s.availabilityRepo.DeleteTimeOff(ctx, timeOffID)
}

// IsAvailable reports whether the caregiver can take a booking over
// [start, end). Three conditions must hold: a recurring window on the start's
// weekday covers the whole span, no time off touches the dates, and no
// pending or accepted booking overlaps the span.
func (s *AvailabilityService) IsAvailable(ctx context.Context, caregiverID string, start, end time.Time) (bool, error) {
	if !end.After(start) {
		return false, nil
	}

	weekday := model.MarketplaceWeekday(start.Weekday())
	startMinute := start.Hour()*60 + start.Minute()
	// Minutes measured from the start's midnight; a span crossing midnight
	// exceeds every window and is unavailable by construction.
	dayStart := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location())
	endMinute := int(end.Sub(dayStart) / time.Minute)

	windows, err := s.availabilityRepo.ListWindowsForWeekday(ctx, caregiverID, weekday)
	if err != nil {
		return false, err
	}

	covered := false
	for _, w := range windows {
		if w.StartMinute <= startMinute && w.EndMinute >= endMinute {
			covered = true
			break
		}
	}
	if !covered {
		return false, nil
	}

	blocked, err := s.availabilityRepo.HasTimeOffOverlap(ctx, caregiverID, start, end)
	if err != nil {
		return false, err
	}
	if blocked {
		return false, nil
	}

	busy, err := s.bookingRepo.HasOverlap(ctx, caregiverID, start, end)
	if err != nil {
		return false, err
	}
	return !busy, nil
}
