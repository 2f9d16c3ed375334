package model

import "time"

// PetSpecies enumerates supported species
type PetSpecies string

const (
	PetSpeciesDog   PetSpecies = "dog"
	PetSpeciesCat   PetSpecies = "cat"
	PetSpeciesOther PetSpecies = "other"
)

// PetSex is recorded for caregiver matching and vet handoff
type PetSex string

const (
	PetSexMale   PetSex = "m"
	PetSexFemale PetSex = "f"
)

// Pet represents an animal registered by an owner
type Pet struct {
	ID            string     `json:"id"`
	OwnerID       string     `json:"owner_id"`
	Name          string     `json:"name"`
	Species       PetSpecies `json:"species"`
	Breed         string     `json:"breed,omitempty"`
	Sex           PetSex     `json:"sex"`
	Birthdate     *time.Time `json:"birthdate,omitempty"`
	WeightGrams   int        `json:"weight_grams,omitempty"`
	Neutered      bool       `json:"neutered"`
	MedicalNotes  string     `json:"medical_notes,omitempty"`
	BehaviorNotes string     `json:"behavior_notes,omitempty"`
	CreatedOn     time.Time  `json:"created_on"`
	UpdatedOn     time.Time  `json:"updated_on"`
}

// CreatePetRequest is the payload for registering a pet
type CreatePetRequest struct {
	Name          string  `json:"name"`
	Species       string  `json:"species"`
	Breed         string  `json:"breed,omitempty"`
	Sex           string  `json:"sex"`
	Birthdate     *string `json:"birthdate,omitempty"` // YYYY-MM-DD
	WeightGrams   int     `json:"weight_grams,omitempty"`
	Neutered      bool    `json:"neutered"`
	MedicalNotes  string  `json:"medical_notes,omitempty"`
	BehaviorNotes string  `json:"behavior_notes,omitempty"`
}

// UpdatePetRequest patches mutable pet fields
type UpdatePetRequest struct {
	Name          *string `json:"name,omitempty"`
	Breed         *string `json:"breed,omitempty"`
	WeightGrams   *int    `json:"weight_grams,omitempty"`
	Neutered      *bool   `json:"neutered,omitempty"`
	MedicalNotes  *string `json:"medical_notes,omitempty"`
	BehaviorNotes *string `json:"behavior_notes,omitempty"`
}

// ValidSpecies reports whether s is a known species
func ValidSpecies(s PetSpecies) bool {
	switch s {
	case PetSpeciesDog, PetSpeciesCat, PetSpeciesOther:
		return true
	}
	return false
}

// ValidPetSex reports whether s is a known sex marker
func ValidPetSex(s PetSex) bool {
	return s == PetSexMale || s == PetSexFemale
}

// Pet constraints
const (
	MaxPetNameLength  = 100
	MaxPetNotesLength = 2000
	MaxPetsPerOwner   = 20
)
