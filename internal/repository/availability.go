package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/pawmarket/api/internal/database"
	"github.com/pawmarket/api/internal/model"
)

// AvailabilityRepository handles caregiver availability windows and time off
type AvailabilityRepository struct {
	db database.Database
}

// NewAvailabilityRepository creates a new availability repository
func NewAvailabilityRepository(db database.Database) *AvailabilityRepository {
	return &AvailabilityRepository{db: db}
}

// CreateWindow adds a weekly availability window
func (r *AvailabilityRepository) CreateWindow(ctx context.Context, a *model.Availability) error {
	query := `
		CREATE availability CONTENT {
			caregiver: type::record($caregiver_id),
			weekday: $weekday,
			start_minute: $start_minute,
			end_minute: $end_minute,
			recurring: $recurring,
			created_on: time::now(),
			updated_on: time::now()
		}
	`
	vars := map[string]interface{}{
		"caregiver_id": a.CaregiverID,
		"weekday":      a.Weekday,
		"start_minute": a.StartMinute,
		"end_minute":   a.EndMinute,
		"recurring":    a.Recurring,
	}

	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return err
	}

	created, err := extractCreatedRecord(result)
	if err != nil {
		return err
	}

	a.ID = created.ID
	a.CreatedOn = created.CreatedOn
	a.UpdatedOn = created.UpdatedOn
	return nil
}

// GetWindowByID retrieves one availability window
func (r *AvailabilityRepository) GetWindowByID(ctx context.Context, id string) (*model.Availability, error) {
	query := `SELECT * FROM type::record($id)`
	vars := map[string]interface{}{"id": id}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	window, err := parseAvailabilityResult(result)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return window, nil
}

// ListWindows returns a caregiver's availability windows ordered by weekday
// then start time
func (r *AvailabilityRepository) ListWindows(ctx context.Context, caregiverID string) ([]*model.Availability, error) {
	query := `
		SELECT * FROM availability
		WHERE caregiver = type::record($caregiver_id)
		ORDER BY weekday ASC, start_minute ASC
	`
	vars := map[string]interface{}{"caregiver_id": caregiverID}

	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return nil, err
	}

	rows, ok := extractQueryResults(result)
	if !ok {
		return []*model.Availability{}, nil
	}

	windows := make([]*model.Availability, 0, len(rows))
	for _, row := range rows {
		window, err := parseAvailabilityResult(row)
		if err != nil {
			if errors.Is(err, database.ErrNotFound) {
				continue
			}
			return nil, err
		}
		windows = append(windows, window)
	}
	return windows, nil
}

// ListWindowsForWeekday returns recurring windows on one weekday,
// for the availability check
func (r *AvailabilityRepository) ListWindowsForWeekday(ctx context.Context, caregiverID string, weekday int) ([]*model.Availability, error) {
	query := `
		SELECT * FROM availability
		WHERE caregiver = type::record($caregiver_id)
			AND weekday = $weekday
			AND recurring = true
		ORDER BY start_minute ASC
	`
	vars := map[string]interface{}{
		"caregiver_id": caregiverID,
		"weekday":      weekday,
	}

	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return nil, err
	}

	rows, ok := extractQueryResults(result)
	if !ok {
		return []*model.Availability{}, nil
	}

	windows := make([]*model.Availability, 0, len(rows))
	for _, row := range rows {
		window, err := parseAvailabilityResult(row)
		if err != nil {
			if errors.Is(err, database.ErrNotFound) {
				continue
			}
			return nil, err
		}
		windows = append(windows, window)
	}
	return windows, nil
}

// CountWindows returns the number of windows a caregiver has defined
func (r *AvailabilityRepository) CountWindows(ctx context.Context, caregiverID string) (int, error) {
	query := `SELECT count() AS count FROM availability WHERE caregiver = type::record($caregiver_id) GROUP ALL`
	vars := map[string]interface{}{"caregiver_id": caregiverID}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return 0, nil
		}
		return 0, err
	}

	return extractCount(result), nil
}

// DeleteWindow removes an availability window
func (r *AvailabilityRepository) DeleteWindow(ctx context.Context, id string) error {
	query := `DELETE type::record($id)`
	vars := map[string]interface{}{"id": id}

	return r.db.Execute(ctx, query, vars)
}

// CreateTimeOff blocks a caregiver's calendar for an inclusive date range
func (r *AvailabilityRepository) CreateTimeOff(ctx context.Context, t *model.TimeOff) error {
	query := `
		CREATE time_off CONTENT {
			caregiver: type::record($caregiver_id),
			date_from: <datetime>$date_from,
			date_to: <datetime>$date_to,
			reason: $reason,
			created_on: time::now()
		}
	`
	vars := map[string]interface{}{
		"caregiver_id": t.CaregiverID,
		"date_from":    t.DateFrom.Format(time.RFC3339),
		"date_to":      t.DateTo.Format(time.RFC3339),
		"reason":       t.Reason,
	}

	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return err
	}

	created, err := extractCreatedRecord(result)
	if err != nil {
		return err
	}

	t.ID = created.ID
	t.CreatedOn = created.CreatedOn
	return nil
}

// GetTimeOffByID retrieves one time off entry
func (r *AvailabilityRepository) GetTimeOffByID(ctx context.Context, id string) (*model.TimeOff, error) {
	query := `SELECT * FROM type::record($id)`
	vars := map[string]interface{}{"id": id}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	timeOff, err := parseTimeOffResult(result)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return timeOff, nil
}

// ListTimeOff returns a caregiver's time off entries, soonest first
func (r *AvailabilityRepository) ListTimeOff(ctx context.Context, caregiverID string) ([]*model.TimeOff, error) {
	query := `
		SELECT * FROM time_off
		WHERE caregiver = type::record($caregiver_id)
		ORDER BY date_from ASC
	`
	vars := map[string]interface{}{"caregiver_id": caregiverID}

	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return nil, err
	}

	rows, ok := extractQueryResults(result)
	if !ok {
		return []*model.TimeOff{}, nil
	}

	entries := make([]*model.TimeOff, 0, len(rows))
	for _, row := range rows {
		timeOff, err := parseTimeOffResult(row)
		if err != nil {
			if errors.Is(err, database.ErrNotFound) {
				continue
			}
			return nil, err
		}
		entries = append(entries, timeOff)
	}
	return entries, nil
}

// HasTimeOffOverlap reports whether any time off range touches [from, to].
// Ranges are inclusive on both ends.
func (r *AvailabilityRepository) HasTimeOffOverlap(ctx context.Context, caregiverID string, from, to time.Time) (bool, error) {
	query := `
		SELECT count() AS count FROM time_off
		WHERE caregiver = type::record($caregiver_id)
			AND date_from <= <datetime>$to
			AND date_to >= <datetime>$from
		GROUP ALL
	`
	vars := map[string]interface{}{
		"caregiver_id": caregiverID,
		"from":         from.Format(time.RFC3339),
		"to":           to.Format(time.RFC3339),
	}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return false, nil
		}
		return false, err
	}

	return extractCount(result) > 0, nil
}

// DeleteTimeOff removes a time off entry
func (r *AvailabilityRepository) DeleteTimeOff(ctx context.Context, id string) error {
	query := `DELETE type::record($id)`
	vars := map[string]interface{}{"id": id}

	return r.db.Execute(ctx, query, vars)
}

// Helper functions

func parseAvailabilityResult(result interface{}) (*model.Availability, error) {
	data, err := unwrapRecord(result)
	if err != nil {
		return nil, err
	}

	if caregiverID, ok := data["caregiver"]; ok {
		data["caregiver_id"] = convertSurrealID(caregiverID)
		delete(data, "caregiver")
	}

	jsonBytes, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	var window model.Availability
	if err := json.Unmarshal(jsonBytes, &window); err != nil {
		return nil, err
	}
	return &window, nil
}

func parseTimeOffResult(result interface{}) (*model.TimeOff, error) {
	data, err := unwrapRecord(result)
	if err != nil {
		return nil, err
	}

	if caregiverID, ok := data["caregiver"]; ok {
		data["caregiver_id"] = convertSurrealID(caregiverID)
		delete(data, "caregiver")
	}

	jsonBytes, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	var timeOff model.TimeOff
	if err := json.Unmarshal(jsonBytes, &timeOff); err != nil {
		return nil, err
	}
	return &timeOff, nil
}
