package repository

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/pawmarket/api/internal/database"
	"github.com/pawmarket/api/internal/model"
)

// WalkRepository handles walk and walk photo data access
type WalkRepository struct {
	db database.Database
}

// NewWalkRepository creates a new walk repository
func NewWalkRepository(db database.Database) *WalkRepository {
	return &WalkRepository{db: db}
}

// Create opens a new walk on a booking
func (r *WalkRepository) Create(ctx context.Context, w *model.Walk) error {
	query := `
		CREATE walk CONTENT {
			booking: type::record($booking_id),
			caregiver: type::record($caregiver_id),
			started_on: time::now(),
			ended_on: NONE,
			distance_meters: 0,
			route: [],
			pee_count: 0,
			poo_count: 0,
			food_given: false,
			water_given: false,
			notes: $notes,
			created_on: time::now(),
			updated_on: time::now()
		}
	`
	vars := map[string]interface{}{
		"booking_id":   w.BookingID,
		"caregiver_id": w.CaregiverID,
		"notes":        w.Notes,
	}

	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return err
	}

	created, err := extractCreatedRecord(result)
	if err != nil {
		return err
	}

	w.ID = created.ID
	w.StartedOn = created.CreatedOn
	w.CreatedOn = created.CreatedOn
	w.UpdatedOn = created.UpdatedOn
	return nil
}

// GetByID retrieves a walk by ID
func (r *WalkRepository) GetByID(ctx context.Context, id string) (*model.Walk, error) {
	query := `SELECT * FROM type::record($id)`
	vars := map[string]interface{}{"id": id}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	walk, err := parseWalkResult(result)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return walk, nil
}

// GetOpenByBooking returns the booking's in-progress walk, or nil
func (r *WalkRepository) GetOpenByBooking(ctx context.Context, bookingID string) (*model.Walk, error) {
	query := `
		SELECT * FROM walk
		WHERE booking = type::record($booking_id) AND ended_on = NONE
		LIMIT 1
	`
	vars := map[string]interface{}{"booking_id": bookingID}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	walk, err := parseWalkResult(result)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return walk, nil
}

// ListByCaregiver returns a caregiver's walks, most recent first
func (r *WalkRepository) ListByCaregiver(ctx context.Context, caregiverID string, limit, offset int) ([]*model.Walk, error) {
	query := `
		SELECT * FROM walk
		WHERE caregiver = type::record($caregiver_id)
		ORDER BY started_on DESC
		LIMIT $limit START $offset
	`
	vars := map[string]interface{}{
		"caregiver_id": caregiverID,
		"limit":        limit,
		"offset":       offset,
	}

	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return nil, err
	}

	rows, ok := extractQueryResults(result)
	if !ok {
		return []*model.Walk{}, nil
	}

	walks := make([]*model.Walk, 0, len(rows))
	for _, row := range rows {
		walk, err := parseWalkResult(row)
		if err != nil {
			if errors.Is(err, database.ErrNotFound) {
				continue
			}
			return nil, err
		}
		walks = append(walks, walk)
	}
	return walks, nil
}

// ListByBooking returns all walks recorded against a booking, oldest first
func (r *WalkRepository) ListByBooking(ctx context.Context, bookingID string) ([]*model.Walk, error) {
	query := `
		SELECT * FROM walk
		WHERE booking = type::record($booking_id)
		ORDER BY started_on ASC
	`
	vars := map[string]interface{}{"booking_id": bookingID}

	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return nil, err
	}

	rows, ok := extractQueryResults(result)
	if !ok {
		return []*model.Walk{}, nil
	}

	walks := make([]*model.Walk, 0, len(rows))
	for _, row := range rows {
		walk, err := parseWalkResult(row)
		if err != nil {
			if errors.Is(err, database.ErrNotFound) {
				continue
			}
			return nil, err
		}
		walks = append(walks, walk)
	}
	return walks, nil
}

// Update patches walk telemetry, returning the record after.
// Setting finish stamps ended_on.
func (r *WalkRepository) Update(ctx context.Context, id string, updates map[string]interface{}, finish bool) (*model.Walk, error) {
	query := `UPDATE type::record($id) SET updated_on = time::now()`
	vars := map[string]interface{}{"id": id}

	for _, field := range []string{
		"distance_meters", "route", "pee_count", "poo_count",
		"food_given", "water_given", "notes",
	} {
		if v, ok := updates[field]; ok {
			query += ", " + field + " = $" + field
			vars[field] = v
		}
	}
	if finish {
		query += ", ended_on = time::now()"
	}

	query += ` RETURN AFTER`

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		return nil, err
	}

	return parseWalkResult(result)
}

// AddPhoto attaches a photo record to a walk
func (r *WalkRepository) AddPhoto(ctx context.Context, p *model.WalkPhoto) error {
	query := `
		CREATE walk_photo CONTENT {
			walk: type::record($walk_id),
			url: $url,
			caption: $caption,
			created_on: time::now()
		}
	`
	vars := map[string]interface{}{
		"walk_id": p.WalkID,
		"url":     p.URL,
		"caption": p.Caption,
	}

	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return err
	}

	created, err := extractCreatedRecord(result)
	if err != nil {
		return err
	}

	p.ID = created.ID
	p.CreatedOn = created.CreatedOn
	return nil
}

// ListPhotos returns a walk's photos, oldest first
func (r *WalkRepository) ListPhotos(ctx context.Context, walkID string) ([]*model.WalkPhoto, error) {
	query := `
		SELECT * FROM walk_photo
		WHERE walk = type::record($walk_id)
		ORDER BY created_on ASC
	`
	vars := map[string]interface{}{"walk_id": walkID}

	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return nil, err
	}

	rows, ok := extractQueryResults(result)
	if !ok {
		return []*model.WalkPhoto{}, nil
	}

	photos := make([]*model.WalkPhoto, 0, len(rows))
	for _, row := range rows {
		photo, err := parseWalkPhotoResult(row)
		if err != nil {
			if errors.Is(err, database.ErrNotFound) {
				continue
			}
			return nil, err
		}
		photos = append(photos, photo)
	}
	return photos, nil
}

// CountPhotos returns the number of photos on a walk
func (r *WalkRepository) CountPhotos(ctx context.Context, walkID string) (int, error) {
	query := `SELECT count() AS count FROM walk_photo WHERE walk = type::record($walk_id) GROUP ALL`
	vars := map[string]interface{}{"walk_id": walkID}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return 0, nil
		}
		return 0, err
	}

	return extractCount(result), nil
}

// Helper functions

func parseWalkResult(result interface{}) (*model.Walk, error) {
	data, err := unwrapRecord(result)
	if err != nil {
		return nil, err
	}

	if bookingID, ok := data["booking"]; ok {
		data["booking_id"] = convertSurrealID(bookingID)
		delete(data, "booking")
	}
	if caregiverID, ok := data["caregiver"]; ok {
		data["caregiver_id"] = convertSurrealID(caregiverID)
		delete(data, "caregiver")
	}

	// ended_on may be NONE for open walks; normalize so JSON parsing yields nil
	if ended, ok := data["ended_on"]; ok {
		if t := parseTime(ended); t.IsZero() {
			delete(data, "ended_on")
		}
	}

	jsonBytes, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	var walk model.Walk
	if err := json.Unmarshal(jsonBytes, &walk); err != nil {
		return nil, err
	}
	return &walk, nil
}

func parseWalkPhotoResult(result interface{}) (*model.WalkPhoto, error) {
	data, err := unwrapRecord(result)
	if err != nil {
		return nil, err
	}

	if walkID, ok := data["walk"]; ok {
		data["walk_id"] = convertSurrealID(walkID)
		delete(data, "walk")
	}

	jsonBytes, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	var photo model.WalkPhoto
	if err := json.Unmarshal(jsonBytes, &photo); err != nil {
		return nil, err
	}
	return &photo, nil
}
