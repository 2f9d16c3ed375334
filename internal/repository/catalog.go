package repository

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/pawmarket/api/internal/database"
	"github.com/pawmarket/api/internal/model"
)

// CatalogRepository handles service type and caregiver offering data access
type CatalogRepository struct {
	db database.Database
}

// NewCatalogRepository creates a new catalog repository
func NewCatalogRepository(db database.Database) *CatalogRepository {
	return &CatalogRepository{db: db}
}

// UpsertServiceType creates a service type or updates the existing entry
// with the same code
func (r *CatalogRepository) UpsertServiceType(ctx context.Context, st *model.ServiceType) error {
	existing, err := r.GetServiceTypeByCode(ctx, st.Code)
	if err != nil {
		return err
	}

	if existing == nil {
		query := `
			CREATE service_type CONTENT {
				code: $code,
				name: $name,
				description: $description,
				base_duration_minutes: $base_duration_minutes,
				default_price_cents: $default_price_cents,
				created_on: time::now(),
				updated_on: time::now()
			}
		`
		vars := map[string]interface{}{
			"code":                  st.Code,
			"name":                  st.Name,
			"description":           st.Description,
			"base_duration_minutes": st.BaseDurationMinutes,
			"default_price_cents":   st.DefaultPriceCents,
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
		st.ID = created.ID
		st.CreatedOn = created.CreatedOn
		st.UpdatedOn = created.UpdatedOn
		return nil
	}

	query := `
		UPDATE type::record($id) SET
			name = $name,
			description = $description,
			base_duration_minutes = $base_duration_minutes,
			default_price_cents = $default_price_cents,
			updated_on = time::now()
	`
	vars := map[string]interface{}{
		"id":                    existing.ID,
		"name":                  st.Name,
		"description":           st.Description,
		"base_duration_minutes": st.BaseDurationMinutes,
		"default_price_cents":   st.DefaultPriceCents,
	}

	if err := r.db.Execute(ctx, query, vars); err != nil {
		return err
	}
	st.ID = existing.ID
	st.CreatedOn = existing.CreatedOn
	return nil
}

// GetServiceTypeByCode retrieves a service type by its slug
func (r *CatalogRepository) GetServiceTypeByCode(ctx context.Context, code string) (*model.ServiceType, error) {
	query := `SELECT * FROM service_type WHERE code = $code LIMIT 1`
	vars := map[string]interface{}{"code": code}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	st, err := parseServiceTypeResult(result)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return st, nil
}

// GetServiceTypeByID retrieves a service type by record ID
func (r *CatalogRepository) GetServiceTypeByID(ctx context.Context, id string) (*model.ServiceType, error) {
	query := `SELECT * FROM type::record($id)`
	vars := map[string]interface{}{"id": id}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	st, err := parseServiceTypeResult(result)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return st, nil
}

// ListServiceTypes returns the full catalog ordered by code
func (r *CatalogRepository) ListServiceTypes(ctx context.Context) ([]*model.ServiceType, error) {
	query := `SELECT * FROM service_type ORDER BY code ASC`

	result, err := r.db.Query(ctx, query, nil)
	if err != nil {
		return nil, err
	}

	rows, ok := extractQueryResults(result)
	if !ok {
		return []*model.ServiceType{}, nil
	}

	types := make([]*model.ServiceType, 0, len(rows))
	for _, row := range rows {
		st, err := parseServiceTypeResult(row)
		if err != nil {
			if errors.Is(err, database.ErrNotFound) {
				continue
			}
			return nil, err
		}
		types = append(types, st)
	}
	return types, nil
}

// CountServiceTypes returns the catalog size
func (r *CatalogRepository) CountServiceTypes(ctx context.Context) (int, error) {
	query := `SELECT count() AS count FROM service_type GROUP ALL`

	result, err := r.db.QueryOne(ctx, query, nil)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return 0, nil
		}
		return 0, err
	}

	return extractCount(result), nil
}

// CreateCaregiverService adds a caregiver's offering of a service type
func (r *CatalogRepository) CreateCaregiverService(ctx context.Context, cs *model.CaregiverService) error {
	query := `
		CREATE caregiver_service CONTENT {
			caregiver: type::record($caregiver_id),
			service_type: type::record($service_type_id),
			price_cents: $price_cents,
			active: $active,
			created_on: time::now(),
			updated_on: time::now()
		}
	`
	vars := map[string]interface{}{
		"caregiver_id":    cs.CaregiverID,
		"service_type_id": cs.ServiceTypeID,
		"price_cents":     cs.PriceCents,
		"active":          cs.Active,
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

	cs.ID = created.ID
	cs.CreatedOn = created.CreatedOn
	cs.UpdatedOn = created.UpdatedOn
	return nil
}

// GetCaregiverServiceByID retrieves an offering with its catalog entry
func (r *CatalogRepository) GetCaregiverServiceByID(ctx context.Context, id string) (*model.CaregiverService, error) {
	query := `SELECT * FROM type::record($id) FETCH service_type`
	vars := map[string]interface{}{"id": id}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	cs, err := parseCaregiverServiceResult(result)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return cs, nil
}

// ListCaregiverServices returns a caregiver's offerings with catalog entries.
// When activeOnly is set, inactive offerings are omitted.
func (r *CatalogRepository) ListCaregiverServices(ctx context.Context, caregiverID string, activeOnly bool) ([]*model.CaregiverService, error) {
	query := `SELECT * FROM caregiver_service WHERE caregiver = type::record($caregiver_id)`
	if activeOnly {
		query += ` AND active = true`
	}
	query += ` ORDER BY created_on ASC FETCH service_type`
	vars := map[string]interface{}{"caregiver_id": caregiverID}

	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return nil, err
	}

	rows, ok := extractQueryResults(result)
	if !ok {
		return []*model.CaregiverService{}, nil
	}

	services := make([]*model.CaregiverService, 0, len(rows))
	for _, row := range rows {
		cs, err := parseCaregiverServiceResult(row)
		if err != nil {
			if errors.Is(err, database.ErrNotFound) {
				continue
			}
			return nil, err
		}
		services = append(services, cs)
	}
	return services, nil
}

// GetActiveOffering returns a caregiver's active offering of a service type
// code, or nil when the caregiver does not offer it
func (r *CatalogRepository) GetActiveOffering(ctx context.Context, caregiverID, serviceTypeCode string) (*model.CaregiverService, error) {
	query := `
		SELECT * FROM caregiver_service
		WHERE caregiver = type::record($caregiver_id)
			AND active = true
			AND service_type.code = $code
		LIMIT 1
		FETCH service_type
	`
	vars := map[string]interface{}{
		"caregiver_id": caregiverID,
		"code":         serviceTypeCode,
	}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	cs, err := parseCaregiverServiceResult(result)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return cs, nil
}

// UpdateCaregiverService patches an offering, returning the record after
func (r *CatalogRepository) UpdateCaregiverService(ctx context.Context, id string, updates map[string]interface{}) (*model.CaregiverService, error) {
	query := `UPDATE type::record($id) SET updated_on = time::now()`
	vars := map[string]interface{}{"id": id}

	for _, field := range []string{"price_cents", "active"} {
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

	return parseCaregiverServiceResult(result)
}

// DeleteCaregiverService removes an offering
func (r *CatalogRepository) DeleteCaregiverService(ctx context.Context, id string) error {
	query := `DELETE type::record($id)`
	vars := map[string]interface{}{"id": id}

	return r.db.Execute(ctx, query, vars)
}

// Helper functions

func parseServiceTypeResult(result interface{}) (*model.ServiceType, error) {
	data, err := unwrapRecord(result)
	if err != nil {
		return nil, err
	}

	jsonBytes, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	var st model.ServiceType
	if err := json.Unmarshal(jsonBytes, &st); err != nil {
		return nil, err
	}
	return &st, nil
}

func parseCaregiverServiceResult(result interface{}) (*model.CaregiverService, error) {
	data, err := unwrapRecord(result)
	if err != nil {
		return nil, err
	}

	if caregiverID, ok := data["caregiver"]; ok {
		data["caregiver_id"] = convertSurrealID(caregiverID)
		delete(data, "caregiver")
	}

	// service_type may be a bare link or a fetched record
	var fetched *model.ServiceType
	switch st := data["service_type"].(type) {
	case map[string]interface{}:
		if id, ok := st["id"]; ok {
			st["id"] = convertSurrealID(id)
		}
		jsonBytes, err := json.Marshal(st)
		if err == nil {
			var parsed model.ServiceType
			if json.Unmarshal(jsonBytes, &parsed) == nil {
				fetched = &parsed
			}
		}
		if fetched != nil {
			data["service_type_id"] = fetched.ID
		}
		delete(data, "service_type")
	default:
		if st != nil {
			data["service_type_id"] = convertSurrealID(st)
			delete(data, "service_type")
		}
	}

	jsonBytes, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	var cs model.CaregiverService
	if err := json.Unmarshal(jsonBytes, &cs); err != nil {
		return nil, err
	}
	cs.ServiceType = fetched
	return &cs, nil
}
