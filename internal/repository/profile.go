package repository

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/pawmarket/api/internal/database"
	"github.com/pawmarket/api/internal/model"
)

// ProfileRepository handles owner and caregiver profile data access.
// Caregivers are referenced by their user record ID throughout the system;
// profile records link back to the user.
type ProfileRepository struct {
	db database.Database
}

// NewProfileRepository creates a new profile repository
func NewProfileRepository(db database.Database) *ProfileRepository {
	return &ProfileRepository{db: db}
}

// CreateOwnerProfile creates an owner profile linked to a user
func (r *ProfileRepository) CreateOwnerProfile(ctx context.Context, profile *model.OwnerProfile) error {
	query := `
		CREATE owner_profile CONTENT {
			user: type::record($user_id),
			phone: $phone,
			country: $country,
			city: $city,
			address_line1: $address_line1,
			address_line2: $address_line2,
			postal_code: $postal_code,
			created_on: time::now(),
			updated_on: time::now()
		}
	`

	vars := map[string]interface{}{
		"user_id":       profile.UserID,
		"phone":         profile.Phone,
		"country":       profile.Country,
		"city":          profile.City,
		"address_line1": profile.AddressLine1,
		"address_line2": profile.AddressLine2,
		"postal_code":   profile.PostalCode,
	}

	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		if isUniqueConstraintError(err) {
			return database.ErrDuplicate
		}
		return err
	}

	created, err := extractCreatedRecord(result)
	if err != nil {
		return err
	}

	profile.ID = created.ID
	profile.CreatedOn = created.CreatedOn
	profile.UpdatedOn = created.UpdatedOn
	return nil
}

// GetOwnerProfileByUserID retrieves an owner profile by user ID
func (r *ProfileRepository) GetOwnerProfileByUserID(ctx context.Context, userID string) (*model.OwnerProfile, error) {
	query := `SELECT *, user.username AS username FROM owner_profile WHERE user = type::record($user_id) LIMIT 1`
	vars := map[string]interface{}{"user_id": userID}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	profile, err := parseOwnerProfileResult(result)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return profile, nil
}

// CreateCaregiverProfile creates a caregiver profile linked to a user
func (r *ProfileRepository) CreateCaregiverProfile(ctx context.Context, profile *model.CaregiverProfile) error {
	query := `
		CREATE caregiver_profile CONTENT {
			user: type::record($user_id),
			phone: $phone,
			city: $city,
			bio: $bio,
			years_experience: $years_experience,
			hourly_rate_cents: $hourly_rate_cents,
			max_pets: $max_pets,
			accepts_large_dogs: $accepts_large_dogs,
			accepts_aggressive: $accepts_aggressive,
			verified: false,
			rating_average: 0,
			rating_count: 0,
			service_radius_km: $service_radius_km,
			created_on: time::now(),
			updated_on: time::now()
		}
	`

	vars := map[string]interface{}{
		"user_id":            profile.UserID,
		"phone":              profile.Phone,
		"city":               profile.City,
		"bio":                profile.Bio,
		"years_experience":   profile.YearsExperience,
		"hourly_rate_cents":  profile.HourlyRateCents,
		"max_pets":           profile.MaxPets,
		"accepts_large_dogs": profile.AcceptsLargeDogs,
		"accepts_aggressive": profile.AcceptsAggressive,
		"service_radius_km":  profile.ServiceRadiusKm,
	}

	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		if isUniqueConstraintError(err) {
			return database.ErrDuplicate
		}
		return err
	}

	created, err := extractCreatedRecord(result)
	if err != nil {
		return err
	}

	profile.ID = created.ID
	profile.CreatedOn = created.CreatedOn
	profile.UpdatedOn = created.UpdatedOn
	return nil
}

// GetCaregiverProfileByUserID retrieves a caregiver profile by user ID
func (r *ProfileRepository) GetCaregiverProfileByUserID(ctx context.Context, userID string) (*model.CaregiverProfile, error) {
	query := `SELECT *, user.username AS username FROM caregiver_profile WHERE user = type::record($user_id) LIMIT 1`
	vars := map[string]interface{}{"user_id": userID}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	profile, err := parseCaregiverProfileResult(result)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return profile, nil
}

// UpdateCaregiverProfile applies a partial update to a caregiver profile,
// returning the record after the update
func (r *ProfileRepository) UpdateCaregiverProfile(ctx context.Context, userID string, updates map[string]interface{}) (*model.CaregiverProfile, error) {
	// Build dynamic update query
	query := `UPDATE caregiver_profile SET updated_on = time::now()`

	vars := map[string]interface{}{
		"user_id": userID,
	}

	for _, field := range []string{
		"phone", "city", "bio", "years_experience", "hourly_rate_cents",
		"max_pets", "accepts_large_dogs", "accepts_aggressive", "service_radius_km",
	} {
		if v, ok := updates[field]; ok {
			query += ", " + field + " = $" + field
			vars[field] = v
		}
	}

	query += ` WHERE user = type::record($user_id) RETURN AFTER`

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		return nil, err
	}

	return parseCaregiverProfileResult(result)
}

// SetVerified marks a caregiver profile as verified
func (r *ProfileRepository) SetVerified(ctx context.Context, userID string, verified bool) error {
	query := `UPDATE caregiver_profile SET verified = $verified, updated_on = time::now() WHERE user = type::record($user_id)`
	vars := map[string]interface{}{
		"user_id":  userID,
		"verified": verified,
	}

	return r.db.Execute(ctx, query, vars)
}

// UpdateRatingAggregate stores recomputed review aggregates on the profile.
// The average is fixed-point x100.
func (r *ProfileRepository) UpdateRatingAggregate(ctx context.Context, userID string, average, count int) error {
	query := `
		UPDATE caregiver_profile SET
			rating_average = $average,
			rating_count = $count,
			updated_on = time::now()
		WHERE user = type::record($user_id)
	`
	vars := map[string]interface{}{
		"user_id": userID,
		"average": average,
		"count":   count,
	}

	return r.db.Execute(ctx, query, vars)
}

// Search finds caregiver profiles matching the directory filters,
// best rated first
func (r *ProfileRepository) Search(ctx context.Context, filter model.CaregiverSearchFilter) ([]*model.CaregiverProfile, error) {
	query := `SELECT *, user.username AS username FROM caregiver_profile`
	conditions := ""
	vars := map[string]interface{}{
		"limit":  filter.Limit,
		"offset": filter.Offset,
	}

	addCondition := func(cond string) {
		if conditions == "" {
			conditions = " WHERE " + cond
		} else {
			conditions += " AND " + cond
		}
	}

	if filter.City != "" {
		addCondition(`string::lowercase(city) = string::lowercase($city)`)
		vars["city"] = filter.City
	}
	if filter.MinRating > 0 {
		addCondition(`rating_average >= $min_rating`)
		vars["min_rating"] = filter.MinRating
	}
	if filter.PriceMinCents > 0 {
		addCondition(`hourly_rate_cents >= $price_min`)
		vars["price_min"] = filter.PriceMinCents
	}
	if filter.PriceMaxCents > 0 {
		addCondition(`hourly_rate_cents <= $price_max`)
		vars["price_max"] = filter.PriceMaxCents
	}
	if filter.AcceptsLargeDogs != nil {
		addCondition(`accepts_large_dogs = $accepts_large_dogs`)
		vars["accepts_large_dogs"] = *filter.AcceptsLargeDogs
	}
	if filter.ServiceTypeCode != "" {
		addCondition(`user IN (SELECT VALUE caregiver FROM caregiver_service WHERE active = true AND service_type.code = $service_code)`)
		vars["service_code"] = filter.ServiceTypeCode
	}

	query += conditions + ` ORDER BY rating_average DESC, rating_count DESC LIMIT $limit START $offset`

	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return nil, err
	}

	return parseCaregiverProfileList(result)
}

// TopRated returns the highest rated caregivers that have at least one review
func (r *ProfileRepository) TopRated(ctx context.Context, limit int) ([]*model.CaregiverProfile, error) {
	query := `
		SELECT *, user.username AS username FROM caregiver_profile
		WHERE rating_count > 0
		ORDER BY rating_average DESC, rating_count DESC
		LIMIT $limit
	`
	vars := map[string]interface{}{"limit": limit}

	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return nil, err
	}

	return parseCaregiverProfileList(result)
}

// CountCaregivers returns the number of caregiver profiles
func (r *ProfileRepository) CountCaregivers(ctx context.Context) (int, error) {
	query := `SELECT count() AS count FROM caregiver_profile GROUP ALL`

	result, err := r.db.QueryOne(ctx, query, nil)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return 0, nil
		}
		return 0, err
	}

	return extractCount(result), nil
}

// CountActiveCities returns the number of distinct cities with caregivers
func (r *ProfileRepository) CountActiveCities(ctx context.Context) (int, error) {
	query := `SELECT count() AS count FROM (SELECT city FROM caregiver_profile WHERE city != "" GROUP BY city) GROUP ALL`

	result, err := r.db.QueryOne(ctx, query, nil)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return 0, nil
		}
		return 0, err
	}

	return extractCount(result), nil
}

// ListCaregiverUserIDs returns the user IDs of all caregiver profiles,
// for bulk rating recalculation
func (r *ProfileRepository) ListCaregiverUserIDs(ctx context.Context) ([]string, error) {
	query := `SELECT VALUE user FROM caregiver_profile`

	result, err := r.db.Query(ctx, query, nil)
	if err != nil {
		return nil, err
	}

	rows, ok := extractQueryResults(result)
	if !ok {
		return []string{}, nil
	}

	ids := make([]string, 0, len(rows))
	for _, row := range rows {
		if id := convertSurrealID(row); id != "" {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

// DeleteByUserID removes both profile kinds for a user
func (r *ProfileRepository) DeleteByUserID(ctx context.Context, userID string) error {
	batch := database.NewAtomicBatch()
	batch.Add(`DELETE owner_profile WHERE user = type::record($user_id)`, map[string]interface{}{"user_id": userID})
	batch.Add(`DELETE caregiver_profile WHERE user = type::record($user_id)`, map[string]interface{}{"user_id": userID})
	return batch.Execute(ctx, r.db)
}

// Helper functions

func parseOwnerProfileResult(result interface{}) (*model.OwnerProfile, error) {
	data, err := unwrapRecord(result)
	if err != nil {
		return nil, err
	}

	jsonBytes, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	var profile model.OwnerProfile
	if err := json.Unmarshal(jsonBytes, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

func parseCaregiverProfileResult(result interface{}) (*model.CaregiverProfile, error) {
	data, err := unwrapRecord(result)
	if err != nil {
		return nil, err
	}

	jsonBytes, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	var profile model.CaregiverProfile
	if err := json.Unmarshal(jsonBytes, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

func parseCaregiverProfileList(result []interface{}) ([]*model.CaregiverProfile, error) {
	rows, ok := extractQueryResults(result)
	if !ok {
		return []*model.CaregiverProfile{}, nil
	}

	profiles := make([]*model.CaregiverProfile, 0, len(rows))
	for _, row := range rows {
		profile, err := parseCaregiverProfileResult(row)
		if err != nil {
			if errors.Is(err, database.ErrNotFound) {
				continue
			}
			return nil, err
		}
		profiles = append(profiles, profile)
	}
	return profiles, nil
}

// unwrapRecord navigates SurrealDB's response wrappers down to a single
// record map, converting record IDs and the user link to strings.
func unwrapRecord(result interface{}) (map[string]interface{}, error) {
	if result == nil {
		return nil, database.ErrNotFound
	}

	if resp, ok := result.(map[string]interface{}); ok {
		if status, ok := resp["status"].(string); ok && status == "OK" {
			if resultData, ok := resp["result"].([]interface{}); ok {
				if len(resultData) == 0 {
					return nil, database.ErrNotFound
				}
				result = resultData[0]
			}
		}
	}

	if arr, ok := result.([]interface{}); ok {
		if len(arr) == 0 {
			return nil, database.ErrNotFound
		}
		result = arr[0]
	}

	data, ok := result.(map[string]interface{})
	if !ok {
		return nil, errors.New("unexpected result format")
	}

	if id, ok := data["id"]; ok {
		data["id"] = convertSurrealID(id)
	}
	if userID, ok := data["user"]; ok {
		data["user_id"] = convertSurrealID(userID)
		delete(data, "user")
	}

	return data, nil
}
