package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/pawmarket/api/internal/database"
	"github.com/pawmarket/api/internal/model"
)

// Mock implementations

type mockCatalogRepo struct {
	serviceTypes map[string]*model.ServiceType      // by code
	offerings    map[string]*model.CaregiverService // by ID
	nextID       int
	repoErr      error
}

func newMockCatalogRepo() *mockCatalogRepo {
	return &mockCatalogRepo{
		serviceTypes: make(map[string]*model.ServiceType),
		offerings:    make(map[string]*model.CaregiverService),
	}
}

func (m *mockCatalogRepo) UpsertServiceType(ctx context.Context, st *model.ServiceType) error {
	if m.repoErr != nil {
		return m.repoErr
	}
	if existing, ok := m.serviceTypes[st.Code]; ok {
		st.ID = existing.ID
		st.CreatedOn = existing.CreatedOn
	} else {
		m.nextID++
		st.ID = fmt.Sprintf("service_type:%d", m.nextID)
		st.CreatedOn = time.Now()
	}
	st.UpdatedOn = time.Now()
	m.serviceTypes[st.Code] = st
	return nil
}

func (m *mockCatalogRepo) GetServiceTypeByCode(ctx context.Context, code string) (*model.ServiceType, error) {
	if m.repoErr != nil {
		return nil, m.repoErr
	}
	return m.serviceTypes[code], nil
}

func (m *mockCatalogRepo) GetServiceTypeByID(ctx context.Context, id string) (*model.ServiceType, error) {
	for _, st := range m.serviceTypes {
		if st.ID == id {
			return st, nil
		}
	}
	return nil, nil
}

func (m *mockCatalogRepo) ListServiceTypes(ctx context.Context) ([]*model.ServiceType, error) {
	if m.repoErr != nil {
		return nil, m.repoErr
	}
	var out []*model.ServiceType
	for _, st := range m.serviceTypes {
		out = append(out, st)
	}
	return out, nil
}

func (m *mockCatalogRepo) CountServiceTypes(ctx context.Context) (int, error) {
	return len(m.serviceTypes), nil
}

func (m *mockCatalogRepo) CreateCaregiverService(ctx context.Context, cs *model.CaregiverService) error {
	if m.repoErr != nil {
		return m.repoErr
	}
	for _, existing := range m.offerings {
		if existing.CaregiverID == cs.CaregiverID && existing.ServiceTypeID == cs.ServiceTypeID {
			return fmt.Errorf("%w: offering exists", database.ErrDuplicate)
		}
	}
	m.nextID++
	cs.ID = fmt.Sprintf("caregiver_service:%d", m.nextID)
	cs.CreatedOn = time.Now()
	cs.UpdatedOn = time.Now()
	m.offerings[cs.ID] = cs
	return nil
}

func (m *mockCatalogRepo) GetCaregiverServiceByID(ctx context.Context, id string) (*model.CaregiverService, error) {
	if m.repoErr != nil {
		return nil, m.repoErr
	}
	return m.offerings[id], nil
}

func (m *mockCatalogRepo) ListCaregiverServices(ctx context.Context, caregiverID string, activeOnly bool) ([]*model.CaregiverService, error) {
	if m.repoErr != nil {
		return nil, m.repoErr
	}
	var out []*model.CaregiverService
	for _, cs := range m.offerings {
		if cs.CaregiverID != caregiverID {
			continue
		}
		if activeOnly && !cs.Active {
			continue
		}
		out = append(out, cs)
	}
	return out, nil
}

func (m *mockCatalogRepo) GetActiveOffering(ctx context.Context, caregiverID, serviceTypeCode string) (*model.CaregiverService, error) {
	if m.repoErr != nil {
		return nil, m.repoErr
	}
	st := m.serviceTypes[serviceTypeCode]
	if st == nil {
		return nil, nil
	}
	for _, cs := range m.offerings {
		if cs.CaregiverID == caregiverID && cs.ServiceTypeID == st.ID && cs.Active {
			cs.ServiceType = st
			return cs, nil
		}
	}
	return nil, nil
}

func (m *mockCatalogRepo) UpdateCaregiverService(ctx context.Context, id string, updates map[string]interface{}) (*model.CaregiverService, error) {
	cs, ok := m.offerings[id]
	if !ok {
		return nil, nil
	}
	if price, ok := updates["price_cents"].(int64); ok {
		cs.PriceCents = price
	}
	if active, ok := updates["active"].(bool); ok {
		cs.Active = active
	}
	cs.UpdatedOn = time.Now()
	return cs, nil
}

func (m *mockCatalogRepo) DeleteCaregiverService(ctx context.Context, id string) error {
	delete(m.offerings, id)
	return nil
}

func (m *mockCatalogRepo) seedServiceType(code string, priceCents int64) *model.ServiceType {
	m.nextID++
	st := &model.ServiceType{
		ID:                  fmt.Sprintf("service_type:%d", m.nextID),
		Code:                code,
		Name:                strings.ReplaceAll(code, "_", " "),
		BaseDurationMinutes: 30,
		DefaultPriceCents:   priceCents,
	}
	m.serviceTypes[code] = st
	return st
}

func setupCatalogService(t *testing.T) (*CatalogService, *mockCatalogRepo) {
	t.Helper()
	repo := newMockCatalogRepo()
	svc := NewCatalogService(CatalogServiceConfig{CatalogRepo: repo})
	return svc, repo
}

// Tests

func TestCatalogService_UpsertServiceType_Success(t *testing.T) {
	svc, _ := setupCatalogService(t)
	ctx := context.Background()

	st, err := svc.UpsertServiceType(ctx, model.UpsertServiceTypeRequest{
		Code:              "dog_walk",
		Name:              "Dog Walking",
		DefaultPriceCents: 2000,
	})
	if err != nil {
		t.Fatalf("UpsertServiceType failed: %v", err)
	}
	if st.Code != "dog_walk" {
		t.Errorf("expected code dog_walk, got %s", st.Code)
	}
	if st.BaseDurationMinutes != model.DefaultBaseDuration {
		t.Errorf("expected default duration %d, got %d", model.DefaultBaseDuration, st.BaseDurationMinutes)
	}
}

func TestCatalogService_UpsertServiceType_NormalizesCode(t *testing.T) {
	svc, repo := setupCatalogService(t)
	ctx := context.Background()

	_, err := svc.UpsertServiceType(ctx, model.UpsertServiceTypeRequest{
		Code:              "  DOG_WALK  ",
		Name:              "Dog Walking",
		DefaultPriceCents: 2000,
	})
	if err != nil {
		t.Fatalf("UpsertServiceType failed: %v", err)
	}
	if repo.serviceTypes["dog_walk"] == nil {
		t.Error("expected code to be trimmed and lowercased")
	}
}

func TestCatalogService_UpsertServiceType_Replaces(t *testing.T) {
	svc, _ := setupCatalogService(t)
	ctx := context.Background()

	first, err := svc.UpsertServiceType(ctx, model.UpsertServiceTypeRequest{
		Code:              "grooming",
		Name:              "Grooming",
		DefaultPriceCents: 4000,
	})
	if err != nil {
		t.Fatalf("first upsert failed: %v", err)
	}

	second, err := svc.UpsertServiceType(ctx, model.UpsertServiceTypeRequest{
		Code:              "grooming",
		Name:              "Full Grooming",
		DefaultPriceCents: 4500,
	})
	if err != nil {
		t.Fatalf("second upsert failed: %v", err)
	}
	if second.ID != first.ID {
		t.Error("upsert on same code should keep the record identity")
	}
	if second.Name != "Full Grooming" {
		t.Errorf("expected replaced name, got %s", second.Name)
	}
}

func TestCatalogService_UpsertServiceType_Validation(t *testing.T) {
	svc, _ := setupCatalogService(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		req     model.UpsertServiceTypeRequest
		wantErr error
	}{
		{"empty code", model.UpsertServiceTypeRequest{Code: "", Name: "X", DefaultPriceCents: 100}, ErrInvalidServiceCode},
		{"uppercase after trim ok but digits first", model.UpsertServiceTypeRequest{Code: "1walk", Name: "X", DefaultPriceCents: 100}, ErrInvalidServiceCode},
		{"dashes", model.UpsertServiceTypeRequest{Code: "dog-walk", Name: "X", DefaultPriceCents: 100}, ErrInvalidServiceCode},
		{"code too long", model.UpsertServiceTypeRequest{Code: strings.Repeat("a", model.MaxServiceCodeLength+1), Name: "X", DefaultPriceCents: 100}, ErrInvalidServiceCode},
		{"empty name", model.UpsertServiceTypeRequest{Code: "walk", Name: " ", DefaultPriceCents: 100}, ErrServiceNameRequired},
		{"name too long", model.UpsertServiceTypeRequest{Code: "walk", Name: strings.Repeat("n", model.MaxServiceNameLength+1), DefaultPriceCents: 100}, ErrServiceNameRequired},
		{"negative duration", model.UpsertServiceTypeRequest{Code: "walk", Name: "Walk", BaseDurationMinutes: -10, DefaultPriceCents: 100}, ErrInvalidBaseDuration},
		{"zero price", model.UpsertServiceTypeRequest{Code: "walk", Name: "Walk", DefaultPriceCents: 0}, ErrInvalidPrice},
		{"negative price", model.UpsertServiceTypeRequest{Code: "walk", Name: "Walk", DefaultPriceCents: -50}, ErrInvalidPrice},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.UpsertServiceType(ctx, tt.req)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestCatalogService_GetServiceTypeByCode_NotFound(t *testing.T) {
	svc, _ := setupCatalogService(t)
	ctx := context.Background()

	_, err := svc.GetServiceTypeByCode(ctx, "nonexistent")
	if !errors.Is(err, ErrServiceTypeNotFound) {
		t.Errorf("expected ErrServiceTypeNotFound, got %v", err)
	}
}

func TestCatalogService_CreateOffering_Success(t *testing.T) {
	svc, repo := setupCatalogService(t)
	ctx := context.Background()
	st := repo.seedServiceType("dog_walk", 2000)

	cs, err := svc.CreateOffering(ctx, "user:walker", model.CreateCaregiverServiceRequest{
		ServiceTypeCode: "dog_walk",
		PriceCents:      2500,
	})
	if err != nil {
		t.Fatalf("CreateOffering failed: %v", err)
	}
	if cs.ServiceTypeID != st.ID {
		t.Errorf("expected service type %s, got %s", st.ID, cs.ServiceTypeID)
	}
	if !cs.Active {
		t.Error("offerings default to active")
	}
	if cs.PriceCents != 2500 {
		t.Errorf("expected caregiver price 2500, got %d", cs.PriceCents)
	}
}

func TestCatalogService_CreateOffering_InactiveOnRequest(t *testing.T) {
	svc, repo := setupCatalogService(t)
	ctx := context.Background()
	repo.seedServiceType("boarding", 6500)

	inactive := false
	cs, err := svc.CreateOffering(ctx, "user:walker", model.CreateCaregiverServiceRequest{
		ServiceTypeCode: "boarding",
		PriceCents:      7000,
		Active:          &inactive,
	})
	if err != nil {
		t.Fatalf("CreateOffering failed: %v", err)
	}
	if cs.Active {
		t.Error("expected offering created paused")
	}
}

func TestCatalogService_CreateOffering_UnknownServiceType(t *testing.T) {
	svc, _ := setupCatalogService(t)
	ctx := context.Background()

	_, err := svc.CreateOffering(ctx, "user:walker", model.CreateCaregiverServiceRequest{
		ServiceTypeCode: "unicorn_rides",
		PriceCents:      9900,
	})
	if !errors.Is(err, ErrServiceTypeNotFound) {
		t.Errorf("expected ErrServiceTypeNotFound, got %v", err)
	}
}

func TestCatalogService_CreateOffering_InvalidPrice(t *testing.T) {
	svc, repo := setupCatalogService(t)
	ctx := context.Background()
	repo.seedServiceType("dog_walk", 2000)

	_, err := svc.CreateOffering(ctx, "user:walker", model.CreateCaregiverServiceRequest{
		ServiceTypeCode: "dog_walk",
		PriceCents:      0,
	})
	if !errors.Is(err, ErrInvalidPrice) {
		t.Errorf("expected ErrInvalidPrice, got %v", err)
	}
}

func TestCatalogService_CreateOffering_Duplicate(t *testing.T) {
	svc, repo := setupCatalogService(t)
	ctx := context.Background()
	repo.seedServiceType("dog_walk", 2000)

	_, err := svc.CreateOffering(ctx, "user:walker", model.CreateCaregiverServiceRequest{
		ServiceTypeCode: "dog_walk",
		PriceCents:      2500,
	})
	if err != nil {
		t.Fatalf("first offering failed: %v", err)
	}

	_, err = svc.CreateOffering(ctx, "user:walker", model.CreateCaregiverServiceRequest{
		ServiceTypeCode: "dog_walk",
		PriceCents:      3000,
	})
	if !errors.Is(err, ErrOfferingExists) {
		t.Errorf("expected ErrOfferingExists, got %v", err)
	}

	// A different caregiver can offer the same service
	_, err = svc.CreateOffering(ctx, "user:other", model.CreateCaregiverServiceRequest{
		ServiceTypeCode: "dog_walk",
		PriceCents:      1800,
	})
	if err != nil {
		t.Errorf("other caregiver should be able to offer: %v", err)
	}
}

func TestCatalogService_ListOfferings_ActiveFilter(t *testing.T) {
	svc, repo := setupCatalogService(t)
	ctx := context.Background()
	repo.seedServiceType("dog_walk", 2000)
	repo.seedServiceType("grooming", 4500)

	if _, err := svc.CreateOffering(ctx, "user:walker", model.CreateCaregiverServiceRequest{ServiceTypeCode: "dog_walk", PriceCents: 2500}); err != nil {
		t.Fatalf("CreateOffering failed: %v", err)
	}
	paused := false
	if _, err := svc.CreateOffering(ctx, "user:walker", model.CreateCaregiverServiceRequest{ServiceTypeCode: "grooming", PriceCents: 5000, Active: &paused}); err != nil {
		t.Fatalf("CreateOffering failed: %v", err)
	}

	all, err := svc.ListOfferings(ctx, "user:walker", false)
	if err != nil {
		t.Fatalf("ListOfferings failed: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("expected 2 offerings, got %d", len(all))
	}

	active, err := svc.ListOfferings(ctx, "user:walker", true)
	if err != nil {
		t.Fatalf("ListOfferings failed: %v", err)
	}
	if len(active) != 1 {
		t.Errorf("expected 1 active offering, got %d", len(active))
	}
}

func TestCatalogService_UpdateOffering(t *testing.T) {
	svc, repo := setupCatalogService(t)
	ctx := context.Background()
	repo.seedServiceType("dog_walk", 2000)

	cs, err := svc.CreateOffering(ctx, "user:walker", model.CreateCaregiverServiceRequest{
		ServiceTypeCode: "dog_walk",
		PriceCents:      2500,
	})
	if err != nil {
		t.Fatalf("CreateOffering failed: %v", err)
	}

	newPrice := int64(3000)
	paused := false
	updated, err := svc.UpdateOffering(ctx, "user:walker", cs.ID, model.UpdateCaregiverServiceRequest{
		PriceCents: &newPrice,
		Active:     &paused,
	})
	if err != nil {
		t.Fatalf("UpdateOffering failed: %v", err)
	}
	if updated.PriceCents != 3000 {
		t.Errorf("expected price 3000, got %d", updated.PriceCents)
	}
	if updated.Active {
		t.Error("expected offering paused")
	}

	// Repricing to zero is rejected
	zero := int64(0)
	if _, err := svc.UpdateOffering(ctx, "user:walker", cs.ID, model.UpdateCaregiverServiceRequest{PriceCents: &zero}); !errors.Is(err, ErrInvalidPrice) {
		t.Errorf("expected ErrInvalidPrice, got %v", err)
	}

	// Foreign offerings are invisible
	if _, err := svc.UpdateOffering(ctx, "user:other", cs.ID, model.UpdateCaregiverServiceRequest{PriceCents: &newPrice}); !errors.Is(err, ErrOfferingNotFound) {
		t.Errorf("expected ErrOfferingNotFound, got %v", err)
	}
}

func TestCatalogService_DeleteOffering(t *testing.T) {
	svc, repo := setupCatalogService(t)
	ctx := context.Background()
	repo.seedServiceType("dog_walk", 2000)

	cs, err := svc.CreateOffering(ctx, "user:walker", model.CreateCaregiverServiceRequest{
		ServiceTypeCode: "dog_walk",
		PriceCents:      2500,
	})
	if err != nil {
		t.Fatalf("CreateOffering failed: %v", err)
	}

	if err := svc.DeleteOffering(ctx, "user:other", cs.ID); !errors.Is(err, ErrOfferingNotFound) {
		t.Errorf("expected ErrOfferingNotFound, got %v", err)
	}
	if err := svc.DeleteOffering(ctx, "user:walker", cs.ID); err != nil {
		t.Fatalf("DeleteOffering failed: %v", err)
	}
	if len(repo.offerings) != 0 {
		t.Error("expected offering removed")
	}
}
