package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/pawmarket/api/internal/model"
)

// Mock implementations

type mockPetRepo struct {
	pets    map[string]*model.Pet
	nextID  int
	repoErr error
}

func newMockPetRepo() *mockPetRepo {
	return &mockPetRepo{pets: make(map[string]*model.Pet)}
}

func (m *mockPetRepo) Create(ctx context.Context, pet *model.Pet) error {
	if m.repoErr != nil {
		return m.repoErr
	}
	m.nextID++
	pet.ID = fmt.Sprintf("pet:%d", m.nextID)
	pet.CreatedOn = time.Now()
	pet.UpdatedOn = time.Now()
	m.pets[pet.ID] = pet
	return nil
}

func (m *mockPetRepo) GetByID(ctx context.Context, id string) (*model.Pet, error) {
	if m.repoErr != nil {
		return nil, m.repoErr
	}
	return m.pets[id], nil
}

func (m *mockPetRepo) ListByOwner(ctx context.Context, ownerID string) ([]*model.Pet, error) {
	if m.repoErr != nil {
		return nil, m.repoErr
	}
	var out []*model.Pet
	for _, p := range m.pets {
		if p.OwnerID == ownerID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *mockPetRepo) CountByOwner(ctx context.Context, ownerID string) (int, error) {
	if m.repoErr != nil {
		return 0, m.repoErr
	}
	count := 0
	for _, p := range m.pets {
		if p.OwnerID == ownerID {
			count++
		}
	}
	return count, nil
}

func (m *mockPetRepo) Update(ctx context.Context, id string, updates map[string]interface{}) (*model.Pet, error) {
	if m.repoErr != nil {
		return nil, m.repoErr
	}
	pet, ok := m.pets[id]
	if !ok {
		return nil, nil
	}
	if name, ok := updates["name"].(string); ok {
		pet.Name = name
	}
	if breed, ok := updates["breed"].(string); ok {
		pet.Breed = breed
	}
	if weight, ok := updates["weight_grams"].(int); ok {
		pet.WeightGrams = weight
	}
	if neutered, ok := updates["neutered"].(bool); ok {
		pet.Neutered = neutered
	}
	if notes, ok := updates["medical_notes"].(string); ok {
		pet.MedicalNotes = notes
	}
	if notes, ok := updates["behavior_notes"].(string); ok {
		pet.BehaviorNotes = notes
	}
	pet.UpdatedOn = time.Now()
	return pet, nil
}

func (m *mockPetRepo) Delete(ctx context.Context, id string) error {
	if m.repoErr != nil {
		return m.repoErr
	}
	delete(m.pets, id)
	return nil
}

func setupPetService(t *testing.T) (*PetService, *mockPetRepo) {
	t.Helper()
	repo := newMockPetRepo()
	svc := NewPetService(PetServiceConfig{PetRepo: repo})
	return svc, repo
}

func validPetRequest() model.CreatePetRequest {
	return model.CreatePetRequest{
		Name:        "Rex",
		Species:     "dog",
		Breed:       "Labrador",
		Sex:         "m",
		WeightGrams: 28000,
		Neutered:    true,
	}
}

// Tests

func TestPetService_Create_Success(t *testing.T) {
	svc, repo := setupPetService(t)
	ctx := context.Background()

	pet, err := svc.Create(ctx, "user:owner", validPetRequest())
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if pet.ID == "" {
		t.Error("expected pet ID to be assigned")
	}
	if pet.OwnerID != "user:owner" {
		t.Errorf("expected owner user:owner, got %s", pet.OwnerID)
	}
	if pet.Species != model.PetSpeciesDog {
		t.Errorf("expected species dog, got %s", pet.Species)
	}
	if len(repo.pets) != 1 {
		t.Errorf("expected 1 stored pet, got %d", len(repo.pets))
	}
}

func TestPetService_Create_TrimsName(t *testing.T) {
	svc, _ := setupPetService(t)
	ctx := context.Background()

	req := validPetRequest()
	req.Name = "  Rex  "
	pet, err := svc.Create(ctx, "user:owner", req)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if pet.Name != "Rex" {
		t.Errorf("expected trimmed name, got %q", pet.Name)
	}
}

func TestPetService_Create_Validation(t *testing.T) {
	svc, _ := setupPetService(t)
	ctx := context.Background()

	future := time.Now().AddDate(1, 0, 0).Format("2006-01-02")
	badDate := "01/02/2020"
	longNotes := strings.Repeat("n", model.MaxPetNotesLength+1)

	tests := []struct {
		name    string
		mutate  func(*model.CreatePetRequest)
		wantErr error
	}{
		{"empty name", func(r *model.CreatePetRequest) { r.Name = "  " }, ErrPetNameRequired},
		{"name too long", func(r *model.CreatePetRequest) { r.Name = strings.Repeat("x", model.MaxPetNameLength+1) }, ErrPetNameTooLong},
		{"unknown species", func(r *model.CreatePetRequest) { r.Species = "hamster" }, ErrInvalidSpecies},
		{"empty species", func(r *model.CreatePetRequest) { r.Species = "" }, ErrInvalidSpecies},
		{"bad sex", func(r *model.CreatePetRequest) { r.Sex = "x" }, ErrInvalidPetSex},
		{"negative weight", func(r *model.CreatePetRequest) { r.WeightGrams = -1 }, ErrInvalidWeight},
		{"future birthdate", func(r *model.CreatePetRequest) { r.Birthdate = &future }, ErrInvalidBirthdate},
		{"malformed birthdate", func(r *model.CreatePetRequest) { r.Birthdate = &badDate }, ErrInvalidBirthdate},
		{"medical notes too long", func(r *model.CreatePetRequest) { r.MedicalNotes = longNotes }, ErrPetNotesTooLong},
		{"behavior notes too long", func(r *model.CreatePetRequest) { r.BehaviorNotes = longNotes }, ErrPetNotesTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validPetRequest()
			tt.mutate(&req)
			_, err := svc.Create(ctx, "user:owner", req)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestPetService_Create_ParsesBirthdate(t *testing.T) {
	svc, _ := setupPetService(t)
	ctx := context.Background()

	birthdate := "2020-06-15"
	req := validPetRequest()
	req.Birthdate = &birthdate

	pet, err := svc.Create(ctx, "user:owner", req)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if pet.Birthdate == nil {
		t.Fatal("expected birthdate to be set")
	}
	if pet.Birthdate.Format("2006-01-02") != birthdate {
		t.Errorf("expected birthdate %s, got %s", birthdate, pet.Birthdate.Format("2006-01-02"))
	}
}

func TestPetService_Create_LimitReached(t *testing.T) {
	svc, repo := setupPetService(t)
	ctx := context.Background()

	for i := 0; i < model.MaxPetsPerOwner; i++ {
		repo.nextID++
		id := fmt.Sprintf("pet:%d", repo.nextID)
		repo.pets[id] = &model.Pet{ID: id, OwnerID: "user:owner", Name: fmt.Sprintf("Pet %d", i)}
	}

	_, err := svc.Create(ctx, "user:owner", validPetRequest())
	if !errors.Is(err, ErrPetLimitReached) {
		t.Errorf("expected ErrPetLimitReached, got %v", err)
	}

	// A different owner is unaffected by the first owner's herd
	_, err = svc.Create(ctx, "user:other", validPetRequest())
	if err != nil {
		t.Errorf("other owner should still be able to add pets: %v", err)
	}
}

func TestPetService_Get_OwnershipScoping(t *testing.T) {
	svc, _ := setupPetService(t)
	ctx := context.Background()

	pet, err := svc.Create(ctx, "user:owner", validPetRequest())
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	// Owner sees the pet
	got, err := svc.Get(ctx, "user:owner", pet.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.ID != pet.ID {
		t.Errorf("expected pet %s, got %s", pet.ID, got.ID)
	}

	// Someone else gets not found, not forbidden
	_, err = svc.Get(ctx, "user:stranger", pet.ID)
	if !errors.Is(err, ErrPetNotFound) {
		t.Errorf("expected ErrPetNotFound for foreign pet, got %v", err)
	}

	// Missing pet is the same error
	_, err = svc.Get(ctx, "user:owner", "pet:missing")
	if !errors.Is(err, ErrPetNotFound) {
		t.Errorf("expected ErrPetNotFound for missing pet, got %v", err)
	}
}

func TestPetService_List_OnlyOwnPets(t *testing.T) {
	svc, _ := setupPetService(t)
	ctx := context.Background()

	if _, err := svc.Create(ctx, "user:alice", validPetRequest()); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	req := validPetRequest()
	req.Name = "Whiskers"
	req.Species = "cat"
	req.Sex = "f"
	if _, err := svc.Create(ctx, "user:bob", req); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	pets, err := svc.List(ctx, "user:alice")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(pets) != 1 {
		t.Fatalf("expected 1 pet, got %d", len(pets))
	}
	if pets[0].Name != "Rex" {
		t.Errorf("expected Rex, got %s", pets[0].Name)
	}
}

func TestPetService_Update_Success(t *testing.T) {
	svc, _ := setupPetService(t)
	ctx := context.Background()

	pet, err := svc.Create(ctx, "user:owner", validPetRequest())
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	newName := "Rexford"
	newWeight := 30000
	updated, err := svc.Update(ctx, "user:owner", pet.ID, model.UpdatePetRequest{
		Name:        &newName,
		WeightGrams: &newWeight,
	})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.Name != "Rexford" {
		t.Errorf("expected updated name, got %s", updated.Name)
	}
	if updated.WeightGrams != 30000 {
		t.Errorf("expected updated weight, got %d", updated.WeightGrams)
	}
	// Untouched fields survive
	if updated.Breed != "Labrador" {
		t.Errorf("breed should be unchanged, got %s", updated.Breed)
	}
}

func TestPetService_Update_Validation(t *testing.T) {
	svc, _ := setupPetService(t)
	ctx := context.Background()

	pet, err := svc.Create(ctx, "user:owner", validPetRequest())
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	empty := "  "
	if _, err := svc.Update(ctx, "user:owner", pet.ID, model.UpdatePetRequest{Name: &empty}); !errors.Is(err, ErrPetNameRequired) {
		t.Errorf("expected ErrPetNameRequired, got %v", err)
	}

	negative := -5
	if _, err := svc.Update(ctx, "user:owner", pet.ID, model.UpdatePetRequest{WeightGrams: &negative}); !errors.Is(err, ErrInvalidWeight) {
		t.Errorf("expected ErrInvalidWeight, got %v", err)
	}

	long := strings.Repeat("n", model.MaxPetNotesLength+1)
	if _, err := svc.Update(ctx, "user:owner", pet.ID, model.UpdatePetRequest{MedicalNotes: &long}); !errors.Is(err, ErrPetNotesTooLong) {
		t.Errorf("expected ErrPetNotesTooLong, got %v", err)
	}
}

func TestPetService_Update_EmptyPatchReturnsCurrent(t *testing.T) {
	svc, _ := setupPetService(t)
	ctx := context.Background()

	pet, err := svc.Create(ctx, "user:owner", validPetRequest())
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	got, err := svc.Update(ctx, "user:owner", pet.ID, model.UpdatePetRequest{})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if got.Name != pet.Name {
		t.Errorf("expected unchanged pet, got name %s", got.Name)
	}
}

func TestPetService_Update_ForeignPet(t *testing.T) {
	svc, _ := setupPetService(t)
	ctx := context.Background()

	pet, err := svc.Create(ctx, "user:owner", validPetRequest())
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	newName := "Stolen"
	_, err = svc.Update(ctx, "user:stranger", pet.ID, model.UpdatePetRequest{Name: &newName})
	if !errors.Is(err, ErrPetNotFound) {
		t.Errorf("expected ErrPetNotFound, got %v", err)
	}
}

func TestPetService_Delete(t *testing.T) {
	svc, repo := setupPetService(t)
	ctx := context.Background()

	pet, err := svc.Create(ctx, "user:owner", validPetRequest())
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	// Strangers cannot delete
	if err := svc.Delete(ctx, "user:stranger", pet.ID); !errors.Is(err, ErrPetNotFound) {
		t.Errorf("expected ErrPetNotFound, got %v", err)
	}
	if len(repo.pets) != 1 {
		t.Error("pet should survive a stranger's delete")
	}

	// The owner can
	if err := svc.Delete(ctx, "user:owner", pet.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if len(repo.pets) != 0 {
		t.Error("expected pet to be removed")
	}
}
