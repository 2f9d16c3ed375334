package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/pawmarket/api/internal/database"
	"github.com/pawmarket/api/internal/model"
)

// PetRepository handles pet data access
type PetRepository struct {
	db database.Database
}

// NewPetRepository creates a new pet repository
func NewPetRepository(db database.Database) *PetRepository {
	return &PetRepository{db: db}
}

// Create creates a new pet for an owner
func (r *PetRepository) Create(ctx context.Context, pet *model.Pet) error {
	query := `
		CREATE pet CONTENT {
			owner: type::record($owner_id),
			name: $name,
			species: $species,
			breed: $breed,
			sex: $sex,
			birthdate: IF $birthdate IS NOT NULL THEN <datetime>$birthdate ELSE NONE END,
			weight_grams: $weight_grams,
			neutered: $neutered,
			medical_notes: $medical_notes,
			behavior_notes: $behavior_notes,
			created_on: time::now(),
			updated_on: time::now()
		}
	`

	var birthdate interface{}
	if pet.Birthdate != nil {
		birthdate = pet.Birthdate.Format(time.RFC3339)
	}

	vars := map[string]interface{}{
		"owner_id":       pet.OwnerID,
		"name":           pet.Name,
		"species":        pet.Species,
		"breed":          pet.Breed,
		"sex":            pet.Sex,
		"birthdate":      birthdate,
		"weight_grams":   pet.WeightGrams,
		"neutered":       pet.Neutered,
		"medical_notes":  pet.MedicalNotes,
		"behavior_notes": pet.BehaviorNotes,
	}

	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return err
	}

	created, err := extractCreatedRecord(result)
	if err != nil {
		return err
	}

	pet.ID = created.ID
	pet.CreatedOn = created.CreatedOn
	pet.UpdatedOn = created.UpdatedOn
	return nil
}

// GetByID retrieves a pet by ID
func (r *PetRepository) GetByID(ctx context.Context, id string) (*model.Pet, error) {
	query := `SELECT * FROM type::record($id)`
	vars := map[string]interface{}{"id": id}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	pet, err := parsePetResult(result)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return pet, nil
}

// ListByOwner retrieves all pets belonging to an owner, newest first
func (r *PetRepository) ListByOwner(ctx context.Context, ownerID string) ([]*model.Pet, error) {
	query := `SELECT * FROM pet WHERE owner = type::record($owner_id) ORDER BY created_on DESC`
	vars := map[string]interface{}{"owner_id": ownerID}

	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return nil, err
	}

	rows, ok := extractQueryResults(result)
	if !ok {
		return []*model.Pet{}, nil
	}

	pets := make([]*model.Pet, 0, len(rows))
	for _, row := range rows {
		pet, err := parsePetResult(row)
		if err != nil {
			if errors.Is(err, database.ErrNotFound) {
				continue
			}
			return nil, err
		}
		pets = append(pets, pet)
	}
	return pets, nil
}

// CountByOwner returns the number of pets an owner has registered
func (r *PetRepository) CountByOwner(ctx context.Context, ownerID string) (int, error) {
	query := `SELECT count() AS count FROM pet WHERE owner = type::record($owner_id) GROUP ALL`
	vars := map[string]interface{}{"owner_id": ownerID}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return 0, nil
		}
		return 0, err
	}

	return extractCount(result), nil
}

// Update applies a partial update to a pet, returning the record after
func (r *PetRepository) Update(ctx context.Context, id string, updates map[string]interface{}) (*model.Pet, error) {
	query := `UPDATE type::record($id) SET updated_on = time::now()`
	vars := map[string]interface{}{"id": id}

	for _, field := range []string{
		"name", "breed", "weight_grams", "neutered", "medical_notes", "behavior_notes",
	} {
		if v, ok := updates[field]; ok {
			query += ", " + field + " = $" + field
			vars[field] = v
		}
	}

	query += ` RETURN AFTER`

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		return nil, err
	}

	return parsePetResult(result)
}

// Delete removes a pet
func (r *PetRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE type::record($id)`
	vars := map[string]interface{}{"id": id}

	return r.db.Execute(ctx, query, vars)
}

func parsePetResult(result interface{}) (*model.Pet, error) {
	data, err := unwrapRecord(result)
	if err != nil {
		return nil, err
	}

	// unwrapRecord maps "user" links; pets link via "owner"
	if ownerID, ok := data["owner"]; ok {
		data["owner_id"] = convertSurrealID(ownerID)
		delete(data, "owner")
	}

	jsonBytes, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	var pet model.Pet
	if err := json.Unmarshal(jsonBytes, &pet); err != nil {
		return nil, err
	}
	return &pet, nil
}
