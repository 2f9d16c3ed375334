package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/pawmarket/api/internal/database"
	"github.com/pawmarket/api/internal/model"
	"github.com/surrealdb/surrealdb.go/pkg/models"
)

// UserRepository handles user data access
type UserRepository struct {
	db database.Database
}

// NewUserRepository creates a new user repository
func NewUserRepository(db database.Database) *UserRepository {
	return &UserRepository{db: db}
}

// Create creates a new user
func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	// Default to owner role if not specified
	role := user.Role
	if role == "" {
		role = model.UserRoleOwner
	}

	query := `
		CREATE user CONTENT {
			email: $email,
			username: $username,
			hash: IF $hash IS NOT NULL THEN $hash ELSE NONE END,
			role: $role,
			active: $active,
			created_on: time::now(),
			updated_on: time::now()
		}
	`

	vars := map[string]interface{}{
		"email":    user.Email,
		"username": user.Username,
		"hash":     ptrToNone(user.Hash),
		"role":     role,
		"active":   user.Active,
	}

	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		if isUniqueConstraintError(err) {
			return fmt.Errorf("%w: email or username already exists", database.ErrDuplicate)
		}
		return err
	}

	// Extract created user ID
	created, err := extractCreatedRecord(result)
	if err != nil {
		return err
	}

	user.ID = created.ID
	user.CreatedOn = created.CreatedOn
	user.UpdatedOn = created.UpdatedOn
	return nil
}

// CreateOwnerAccount creates a user and its owner profile in a single
// transaction so a half-registered account can never exist.
func (r *UserRepository) CreateOwnerAccount(ctx context.Context, user *model.User, profile *model.OwnerProfile) error {
	tb := database.NewTxBuilder()
	tb.Add(`LET $account = (CREATE user CONTENT {
		email: $email,
		username: $username,
		hash: $hash,
		role: $role,
		active: true,
		created_on: time::now(),
		updated_on: time::now()
	})`, map[string]interface{}{
		"email":    user.Email,
		"username": user.Username,
		"hash":     ptrToNone(user.Hash),
		"role":     model.UserRoleOwner,
	})
	tb.Add(`CREATE owner_profile CONTENT {
		user: $account[0].id,
		phone: $phone,
		country: $country,
		city: $city,
		address_line1: $line1,
		address_line2: $line2,
		postal_code: $postal,
		created_on: time::now(),
		updated_on: time::now()
	}`, map[string]interface{}{
		"phone":   profile.Phone,
		"country": profile.Country,
		"city":    profile.City,
		"line1":   profile.AddressLine1,
		"line2":   profile.AddressLine2,
		"postal":  profile.PostalCode,
	})

	if _, err := database.ExecuteTransaction(ctx, r.db, tb); err != nil {
		if isUniqueConstraintError(err) {
			return fmt.Errorf("%w: email or username already exists", database.ErrDuplicate)
		}
		return err
	}

	return r.reloadAccount(ctx, user, func(userID string) error {
		created, err := r.loadOwnerProfile(ctx, userID)
		if err != nil {
			return err
		}
		*profile = *created
		return nil
	})
}

// CreateCaregiverAccount creates a user and its caregiver profile in a single
// transaction.
func (r *UserRepository) CreateCaregiverAccount(ctx context.Context, user *model.User, profile *model.CaregiverProfile) error {
	tb := database.NewTxBuilder()
	tb.Add(`LET $account = (CREATE user CONTENT {
		email: $email,
		username: $username,
		hash: $hash,
		role: $role,
		active: true,
		created_on: time::now(),
		updated_on: time::now()
	})`, map[string]interface{}{
		"email":    user.Email,
		"username": user.Username,
		"hash":     ptrToNone(user.Hash),
		"role":     model.UserRoleCaregiver,
	})
	tb.Add(`CREATE caregiver_profile CONTENT {
		user: $account[0].id,
		phone: $phone,
		city: $city,
		bio: $bio,
		years_experience: $years,
		hourly_rate_cents: $rate,
		max_pets: $pets,
		accepts_large_dogs: $large,
		accepts_aggressive: $aggressive,
		verified: false,
		rating_average: 0,
		rating_count: 0,
		service_radius_km: $radius,
		created_on: time::now(),
		updated_on: time::now()
	}`, map[string]interface{}{
		"phone":      profile.Phone,
		"city":       profile.City,
		"bio":        profile.Bio,
		"years":      profile.YearsExperience,
		"rate":       profile.HourlyRateCents,
		"pets":       profile.MaxPets,
		"large":      profile.AcceptsLargeDogs,
		"aggressive": profile.AcceptsAggressive,
		"radius":     profile.ServiceRadiusKm,
	})

	if _, err := database.ExecuteTransaction(ctx, r.db, tb); err != nil {
		if isUniqueConstraintError(err) {
			return fmt.Errorf("%w: email or username already exists", database.ErrDuplicate)
		}
		return err
	}

	return r.reloadAccount(ctx, user, func(userID string) error {
		created, err := r.loadCaregiverProfile(ctx, userID)
		if err != nil {
			return err
		}
		*profile = *created
		return nil
	})
}

// reloadAccount fetches the committed user row and hands its ID to the
// profile loader. Transaction results don't carry LET bindings back, so the
// created records are read after commit.
func (r *UserRepository) reloadAccount(ctx context.Context, user *model.User, loadProfile func(userID string) error) error {
	created, err := r.GetByEmail(ctx, user.Email)
	if err != nil {
		return err
	}
	if created == nil {
		return errors.New("account creation returned no user")
	}
	hash := user.Hash
	*user = *created
	user.Hash = hash
	return loadProfile(created.ID)
}

func (r *UserRepository) loadOwnerProfile(ctx context.Context, userID string) (*model.OwnerProfile, error) {
	query := `SELECT * FROM owner_profile WHERE user = type::record($user_id) LIMIT 1`
	result, err := r.db.QueryOne(ctx, query, map[string]interface{}{"user_id": userID})
	if err != nil {
		return nil, err
	}
	return parseOwnerProfileResult(result)
}

func (r *UserRepository) loadCaregiverProfile(ctx context.Context, userID string) (*model.CaregiverProfile, error) {
	query := `SELECT * FROM caregiver_profile WHERE user = type::record($user_id) LIMIT 1`
	result, err := r.db.QueryOne(ctx, query, map[string]interface{}{"user_id": userID})
	if err != nil {
		return nil, err
	}
	return parseCaregiverProfileResult(result)
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id string) (*model.User, error) {
	query := `SELECT * FROM type::record($id)`
	vars := map[string]interface{}{"id": id}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	user, err := parseUserResult(result)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return user, nil
}

// GetByEmail retrieves a user by email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	query := `SELECT * FROM user WHERE email = $email LIMIT 1`
	vars := map[string]interface{}{"email": email}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	user, err := parseUserResult(result)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return user, nil
}

// GetByUsername retrieves a user by username
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	query := `SELECT * FROM user WHERE username = $username LIMIT 1`
	vars := map[string]interface{}{"username": username}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	user, err := parseUserResult(result)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return user, nil
}

// List retrieves users with optional role filter and username/email search,
// most recent first
func (r *UserRepository) List(ctx context.Context, role model.UserRole, search string, limit, offset int) ([]*model.User, error) {
	query := `SELECT * FROM user`
	conditions := ""
	vars := map[string]interface{}{
		"limit":  limit,
		"offset": offset,
	}

	if role != "" {
		conditions = ` WHERE role = $role`
		vars["role"] = role
	}
	if search != "" {
		if conditions == "" {
			conditions = ` WHERE`
		} else {
			conditions += ` AND`
		}
		conditions += ` (string::contains(username, $search) OR string::contains(email, $search))`
		vars["search"] = search
	}

	query += conditions + ` ORDER BY created_on DESC LIMIT $limit START $offset`

	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return nil, err
	}

	return parseUserList(result)
}

// Count returns the number of users, optionally filtered by role
func (r *UserRepository) Count(ctx context.Context, role model.UserRole) (int, error) {
	query := `SELECT count() AS count FROM user`
	vars := map[string]interface{}{}
	if role != "" {
		query += ` WHERE role = $role`
		vars["role"] = role
	}
	query += ` GROUP ALL`

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return 0, nil
		}
		return 0, err
	}

	return extractCount(result), nil
}

// Update updates a user's mutable account fields
func (r *UserRepository) Update(ctx context.Context, user *model.User) error {
	query := `
		UPDATE type::record($id) SET
			email = $email,
			username = $username,
			active = $active,
			updated_on = time::now()
	`

	vars := map[string]interface{}{
		"id":       user.ID,
		"email":    user.Email,
		"username": user.Username,
		"active":   user.Active,
	}

	return r.db.Execute(ctx, query, vars)
}

// UpdatePassword updates a user's password hash
func (r *UserRepository) UpdatePassword(ctx context.Context, userID, hash string) error {
	query := `UPDATE type::record($id) SET hash = $hash, updated_on = time::now()`
	vars := map[string]interface{}{
		"id":   userID,
		"hash": hash,
	}

	return r.db.Execute(ctx, query, vars)
}

// RecordLogin stamps the user's last successful login time
func (r *UserRepository) RecordLogin(ctx context.Context, userID string) error {
	query := `UPDATE type::record($id) SET login_on = time::now()`
	vars := map[string]interface{}{"id": userID}

	return r.db.Execute(ctx, query, vars)
}

// SetActive enables or disables a user account
func (r *UserRepository) SetActive(ctx context.Context, userID string, active bool) error {
	query := `UPDATE type::record($id) SET active = $active, updated_on = time::now()`
	vars := map[string]interface{}{
		"id":     userID,
		"active": active,
	}

	return r.db.Execute(ctx, query, vars)
}

// SetRole updates a user's role
func (r *UserRepository) SetRole(ctx context.Context, userID string, role model.UserRole) error {
	query := `UPDATE type::record($id) SET role = $role, updated_on = time::now()`
	vars := map[string]interface{}{
		"id":   userID,
		"role": role,
	}

	return r.db.Execute(ctx, query, vars)
}

// Delete deletes a user
func (r *UserRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE type::record($id)`
	vars := map[string]interface{}{"id": id}

	return r.db.Execute(ctx, query, vars)
}

// Helper functions

type createdRecord struct {
	ID        string
	CreatedOn time.Time
	UpdatedOn time.Time
}

func extractCreatedRecord(result []interface{}) (*createdRecord, error) {
	if len(result) == 0 {
		return nil, errors.New("no result returned")
	}

	// Navigate through SurrealDB response structure
	first := result[0]
	if resp, ok := first.(map[string]interface{}); ok {
		if resultData, ok := resp["result"].([]interface{}); ok && len(resultData) > 0 {
			first = resultData[0]
		}
	}

	data, ok := first.(map[string]interface{})
	if !ok {
		return nil, errors.New("unexpected result format")
	}

	record := &createdRecord{}

	// Handle SurrealDB's complex ID format
	if id, ok := data["id"]; ok {
		record.ID = convertSurrealID(id)
	}
	if createdOn, ok := data["created_on"].(string); ok {
		if t, err := time.Parse(time.RFC3339, createdOn); err == nil {
			record.CreatedOn = t
		} else if t, err := time.Parse(time.RFC3339Nano, createdOn); err == nil {
			record.CreatedOn = t
		}
	} else if createdOn, ok := data["created_on"].(time.Time); ok {
		record.CreatedOn = createdOn
	} else if dt, ok := data["created_on"].(models.CustomDateTime); ok {
		record.CreatedOn = dt.Time
	} else if dt, ok := data["created_on"].(*models.CustomDateTime); ok && dt != nil {
		record.CreatedOn = dt.Time
	}
	if updatedOn, ok := data["updated_on"].(string); ok {
		if t, err := time.Parse(time.RFC3339, updatedOn); err == nil {
			record.UpdatedOn = t
		} else if t, err := time.Parse(time.RFC3339Nano, updatedOn); err == nil {
			record.UpdatedOn = t
		}
	} else if updatedOn, ok := data["updated_on"].(time.Time); ok {
		record.UpdatedOn = updatedOn
	} else if dt, ok := data["updated_on"].(models.CustomDateTime); ok {
		record.UpdatedOn = dt.Time
	} else if dt, ok := data["updated_on"].(*models.CustomDateTime); ok && dt != nil {
		record.UpdatedOn = dt.Time
	}

	return record, nil
}

func parseUserResult(result interface{}) (*model.User, error) {
	// Handle nil result
	if result == nil {
		return nil, database.ErrNotFound
	}

	// Navigate through SurrealDB response structure
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

	// Handle array wrapper
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

	// Handle SurrealDB's complex ID format (Thing type)
	// The Go client returns ID as an object, need to convert to string
	if id, ok := data["id"]; ok {
		data["id"] = convertSurrealID(id)
	}

	// Extract hash before JSON marshal/unmarshal (since User.Hash has json:"-")
	var hash *string
	if h, ok := data["hash"].(string); ok {
		hash = &h
	}

	// Convert to JSON and back to struct for proper parsing
	jsonBytes, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	var user model.User
	if err := json.Unmarshal(jsonBytes, &user); err != nil {
		return nil, err
	}

	// Set the hash field manually (skipped by json:"-")
	user.Hash = hash

	return &user, nil
}

func parseUserList(result []interface{}) ([]*model.User, error) {
	rows, ok := extractQueryResults(result)
	if !ok {
		return []*model.User{}, nil
	}

	users := make([]*model.User, 0, len(rows))
	for _, row := range rows {
		user, err := parseUserResult(row)
		if err != nil {
			if errors.Is(err, database.ErrNotFound) {
				continue
			}
			return nil, err
		}
		users = append(users, user)
	}
	return users, nil
}

// convertSurrealID converts a SurrealDB ID (which may be a complex object) to a string
func convertSurrealID(id interface{}) string {
	// Already a string
	if str, ok := id.(string); ok {
		return str
	}

	// Handle models.RecordID from SurrealDB Go client
	if rid, ok := id.(models.RecordID); ok {
		return fmt.Sprintf("%s:%v", rid.Table, rid.ID)
	}
	if rid, ok := id.(*models.RecordID); ok && rid != nil {
		return fmt.Sprintf("%s:%v", rid.Table, rid.ID)
	}

	// Handle map format: {"tb": "user", "id": {"String": "demo"}} or similar
	if m, ok := id.(map[string]interface{}); ok {
		tb := ""
		idPart := ""

		// Get table name
		if t, ok := m["tb"].(string); ok {
			tb = t
		} else if t, ok := m["TB"].(string); ok {
			tb = t
		} else if t, ok := m["Table"].(string); ok {
			tb = t
		}

		// Get ID part - could be nested
		if idVal, ok := m["id"]; ok {
			idPart = extractIDValue(idVal)
		} else if idVal, ok := m["ID"]; ok {
			idPart = extractIDValue(idVal)
		}

		if tb != "" && idPart != "" {
			return tb + ":" + idPart
		}
		if idPart != "" {
			return idPart
		}
	}

	// Fallback: use fmt.Sprintf
	return fmt.Sprintf("%v", id)
}

// extractIDValue extracts the ID value which may be nested
func extractIDValue(val interface{}) string {
	if str, ok := val.(string); ok {
		return str
	}
	if m, ok := val.(map[string]interface{}); ok {
		// Check for {"String": "value"} format
		if s, ok := m["String"].(string); ok {
			return s
		}
		// Check for other common formats
		if s, ok := m["string"].(string); ok {
			return s
		}
	}
	return fmt.Sprintf("%v", val)
}

// isUniqueConstraintError is defined in helpers.go

// ptrToNone converts a string pointer to either the string value or an empty string marker.
// When used with SurrealDB queries that check for NONE, this allows proper handling of optional fields.
func ptrToNone(s *string) interface{} {
	if s == nil {
		return nil // Will be checked with != NONE in query
	}
	return *s
}
