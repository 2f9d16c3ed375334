package service

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"github.com/pawmarket/api/internal/database"
	"github.com/pawmarket/api/internal/model"
)

var serviceCodePattern = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

// CatalogRepository defines the interface for service type and offering
// storage
type CatalogRepository interface {
	UpsertServiceType(ctx context.Context, st *model.ServiceType) error
	GetServiceTypeByCode(ctx context.Context, code string) (*model.ServiceType, error)
	GetServiceTypeByID(ctx context.Context, id string) (*model.ServiceType, error)
	ListServiceTypes(ctx context.Context) ([]*model.ServiceType, error)
	CountServiceTypes(ctx context.Context) (int, error)
	CreateCaregiverService(ctx context.Context, cs *model.CaregiverService) error
	GetCaregiverServiceByID(ctx context.Context, id string) (*model.CaregiverService, error)
	ListCaregiverServices(ctx context.Context, caregiverID string, activeOnly bool) ([]*model.CaregiverService, error)
	GetActiveOffering(ctx context.Context, caregiverID, serviceTypeCode string) (*model.CaregiverService, error)
	UpdateCaregiverService(ctx context.Context, id string, updates map[string]interface{}) (*model.CaregiverService, error)
	DeleteCaregiverService(ctx context.Context, id string) error
}

// CatalogService manages the service type catalog and caregiver offerings
type CatalogService struct {
	catalogRepo CatalogRepository
}

// CatalogServiceConfig holds configuration for the catalog service
type CatalogServiceConfig struct {
	CatalogRepo CatalogRepository
}

// NewCatalogService creates a new catalog service
func NewCatalogService(cfg CatalogServiceConfig) *CatalogService {
	return &CatalogService{catalogRepo: cfg.CatalogRepo}
}

// ListServiceTypes returns the full catalog
func (s *CatalogService) ListServiceTypes(ctx context.Context) ([]*model.ServiceType, error) {
	return s.catalogRepo.ListServiceTypes(ctx)
}

// GetServiceTypeByCode looks up a catalog entry by its stable code
func (s *CatalogService) GetServiceTypeByCode(ctx context.Context, code string) (*model.ServiceType, error) {
	st, err := s.catalogRepo.GetServiceTypeByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if st == nil {
		return nil, ErrServiceTypeNotFound
	}
	return st, nil
}

// UpsertServiceType creates or replaces a catalog entry (admin only)
func (s *CatalogService) UpsertServiceType(ctx context.Context, req model.UpsertServiceTypeRequest) (*model.ServiceType, error) {
	code := strings.TrimSpace(strings.ToLower(req.Code))
	if code == "" || len(code) > model.MaxServiceCodeLength || !serviceCodePattern.MatchString(code) {
		return nil, ErrInvalidServiceCode
	}

	name := strings.TrimSpace(req.Name)
	if name == "" || len(name) > model.MaxServiceNameLength {
		return nil, ErrServiceNameRequired
	}

	duration := req.BaseDurationMinutes
	if duration == 0 {
		duration = model.DefaultBaseDuration
	}
	if duration < 0 {
		return nil, ErrInvalidBaseDuration
	}

	if req.DefaultPriceCents <= 0 {
		return nil, ErrInvalidPrice
	}

	st := &model.ServiceType{
		Code:                code,
		Name:                name,
		Description:         req.Description,
		BaseDurationMinutes: duration,
		DefaultPriceCents:   req.DefaultPriceCents,
	}

	if err := s.catalogRepo.UpsertServiceType(ctx, st); err != nil {
		return nil, err
	}

	return st, nil
}

// ListOfferings returns a caregiver's offerings. When activeOnly is set,
// paused offerings are skipped.
func (s *CatalogService) ListOfferings(ctx context.Context, caregiverID string, activeOnly bool) ([]*model.CaregiverService, error) {
	return s.catalogRepo.ListCaregiverServices(ctx, caregiverID, activeOnly)
}

// CreateOffering adds a priced service to the caregiver's listing. One
// offering per (caregiver, service type) pair.
func (s *CatalogService) CreateOffering(ctx context.Context, caregiverID string, req model.CreateCaregiverServiceRequest) (*model.CaregiverService, error) {
	st, err := s.catalogRepo.GetServiceTypeByCode(ctx, strings.TrimSpace(req.ServiceTypeCode))
	if err != nil {
		return nil, err
	}
	if st == nil {
		return nil, ErrServiceTypeNotFound
	}

	if req.PriceCents <= 0 {
		return nil, ErrInvalidPrice
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	cs := &model.CaregiverService{
		CaregiverID:   caregiverID,
		ServiceTypeID: st.ID,
		PriceCents:    req.PriceCents,
		Active:        active,
		ServiceType:   st,
	}

	if err := s.catalogRepo.CreateCaregiverService(ctx, cs); err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			return nil, ErrOfferingExists
		}
		return nil, err
	}

	return cs, nil
}

// UpdateOffering patches price or active flag on the caregiver's own offering
func (s *CatalogService) UpdateOffering(ctx context.Context, caregiverID, offeringID string, req model.UpdateCaregiverServiceRequest) (*model.CaregiverService, error) {
	if _, err := s.ownedOffering(ctx, caregiverID, offeringID); err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if req.PriceCents != nil {
		if *req.PriceCents <= 0 {
			return nil, ErrInvalidPrice
		}
		updates["price_cents"] = *req.PriceCents
	}
	if req.Active != nil {
		updates["active"] = *req.Active
	}

	if len(updates) == 0 {
		return s.ownedOffering(ctx, caregiverID, offeringID)
	}

	return s.catalogRepo.UpdateCaregiverService(ctx, offeringID, updates)
}

// DeleteOffering removes the caregiver's own offering
func (s *CatalogService) DeleteOffering(ctx context.Context, caregiverID, offeringID string) error {
	if _, err := s.ownedOffering(ctx, caregiverID, offeringID); err != nil {
		return err
	}
	return s.catalogRepo.DeleteCaregiverService(ctx, offeringID)
}

// ownedOffering loads an offering and verifies it belongs to the caregiver.
// Foreign offerings surface as not found.
func (s *CatalogService) ownedOffering(ctx context.Context, caregiverID, offeringID string) (*model.CaregiverService, error) {
	cs, err := s.catalogRepo.GetCaregiverServiceByID(ctx, offeringID)
	if err != nil {
		return nil, err
	}
	if cs == nil || cs.CaregiverID != caregiverID {
		return nil, ErrOfferingNotFound
	}
	return cs, nil
}
