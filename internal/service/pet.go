package service

import (
	"context"
	"strings"
	"time"

	"github.com/pawmarket/api/internal/model"
)

// PetRepository defines the interface for pet storage
type PetRepository interface {
	Create(ctx context.Context, pet *model.Pet) error
	GetByID(ctx context.Context, id string) (*model.Pet, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*model.Pet, error)
	CountByOwner(ctx context.Context, ownerID string) (int, error)
	Update(ctx context.Context, id string, updates map[string]interface{}) (*model.Pet, error)
	Delete(ctx context.Context, id string) error
}

// PetService handles owner-scoped pet management.
// Every operation is scoped to the calling owner; a pet belonging to someone
// else is indistinguishable from a pet that does not exist.
type PetService struct {
	petRepo PetRepository
}

// PetServiceConfig holds configuration for the pet service
type PetServiceConfig struct {
	PetRepo PetRepository
}

// NewPetService creates a new pet service
func NewPetService(cfg PetServiceConfig) *PetService {
	return &PetService{petRepo: cfg.PetRepo}
}

// Create registers a pet for the owner
func (s *PetService) Create(ctx context.Context, ownerID string, req model.CreatePetRequest) (*model.Pet, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrPetNameRequired
	}
	if len(name) > model.MaxPetNameLength {
		return nil, ErrPetNameTooLong
	}

	species := model.PetSpecies(req.Species)
	if !model.ValidSpecies(species) {
		return nil, ErrInvalidSpecies
	}

	sex := model.PetSex(req.Sex)
	if !model.ValidPetSex(sex) {
		return nil, ErrInvalidPetSex
	}

	if req.WeightGrams < 0 {
		return nil, ErrInvalidWeight
	}
	if len(req.MedicalNotes) > model.MaxPetNotesLength || len(req.BehaviorNotes) > model.MaxPetNotesLength {
		return nil, ErrPetNotesTooLong
	}

	var birthdate *time.Time
	if req.Birthdate != nil && *req.Birthdate != "" {
		parsed, err := time.Parse("2006-01-02", *req.Birthdate)
		if err != nil || parsed.After(time.Now()) {
			return nil, ErrInvalidBirthdate
		}
		birthdate = &parsed
	}

	count, err := s.petRepo.CountByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if count >= model.MaxPetsPerOwner {
		return nil, ErrPetLimitReached
	}

	pet := &model.Pet{
		OwnerID:       ownerID,
		Name:          name,
		Species:       species,
		Breed:         strings.TrimSpace(req.Breed),
		Sex:           sex,
		Birthdate:     birthdate,
		WeightGrams:   req.WeightGrams,
		Neutered:      req.Neutered,
		MedicalNotes:  req.MedicalNotes,
		BehaviorNotes: req.BehaviorNotes,
	}

	if err := s.petRepo.Create(ctx, pet); err != nil {
		return nil, err
	}

	return pet, nil
}

// List returns the owner's pets
func (s *PetService) List(ctx context.Context, ownerID string) ([]*model.Pet, error) {
	return s.petRepo.ListByOwner(ctx, ownerID)
}

// Get returns one of the owner's pets
func (s *PetService) Get(ctx context.Context, ownerID, petID string) (*model.Pet, error) {
	return s.ownedPet(ctx, ownerID, petID)
}

// Update patches mutable fields on one of the owner's pets
func (s *PetService) Update(ctx context.Context, ownerID, petID string, req model.UpdatePetRequest) (*model.Pet, error) {
	if _, err := s.ownedPet(ctx, ownerID, petID); err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, ErrPetNameRequired
		}
		if len(name) > model.MaxPetNameLength {
			return nil, ErrPetNameTooLong
		}
		updates["name"] = name
	}
	if req.Breed != nil {
		updates["breed"] = strings.TrimSpace(*req.Breed)
	}
	if req.WeightGrams != nil {
		if *req.WeightGrams < 0 {
			return nil, ErrInvalidWeight
		}
		updates["weight_grams"] = *req.WeightGrams
	}
	if req.Neutered != nil {
		updates["neutered"] = *req.Neutered
	}
	if req.MedicalNotes != nil {
		if len(*req.MedicalNotes) > model.MaxPetNotesLength {
			return nil, ErrPetNotesTooLong
		}
		updates["medical_notes"] = *req.MedicalNotes
	}
	if req.BehaviorNotes != nil {
		if len(*req.BehaviorNotes) > model.MaxPetNotesLength {
			return nil, ErrPetNotesTooLong
		}
		updates["behavior_notes"] = *req.BehaviorNotes
	}

	if len(updates) == 0 {
		return s.ownedPet(ctx, ownerID, petID)
	}

	return s.petRepo.Update(ctx, petID, updates)
}

// Delete removes one of the owner's pets
func (s *PetService) Delete(ctx context.Context, ownerID, petID string) error {
	if _, err := s.ownedPet(ctx, ownerID, petID); err != nil {
		return err
	}
	return s.petRepo.Delete(ctx, petID)
}

// ownedPet loads a pet and verifies ownership. Pets owned by other users
// surface as not found so the endpoint never leaks their existence.
func (s *PetService) ownedPet(ctx context.Context, ownerID, petID string) (*model.Pet, error) {
	pet, err := s.petRepo.GetByID(ctx, petID)
	if err != nil {
		return nil, err
	}
	if pet == nil || pet.OwnerID != ownerID {
		return nil, ErrPetNotFound
	}
	return pet, nil
}
