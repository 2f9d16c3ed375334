package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/pawmarket/api/internal/database"
	"github.com/pawmarket/api/internal/model"
)

// BookingRepository handles booking data access
type BookingRepository struct {
	db database.Database
}

// NewBookingRepository creates a new booking repository
func NewBookingRepository(db database.Database) *BookingRepository {
	return &BookingRepository{db: db}
}

// Create creates a new booking with the frozen price split
func (r *BookingRepository) Create(ctx context.Context, b *model.Booking) error {
	query := `
		CREATE booking CONTENT {
			owner: type::record($owner_id),
			caregiver: type::record($caregiver_id),
			pet: type::record($pet_id),
			service_type: type::record($service_type_id),
			starts_on: <datetime>$starts_on,
			ends_on: <datetime>$ends_on,
			duration_minutes: $duration_minutes,
			status: $status,
			owner_notes: $owner_notes,
			caregiver_notes: "",
			price_cents: $price_cents,
			fee_cents: $fee_cents,
			payout_cents: $payout_cents,
			payment_status: $payment_status,
			created_on: time::now(),
			updated_on: time::now()
		}
	`
	vars := map[string]interface{}{
		"owner_id":         b.OwnerID,
		"caregiver_id":     b.CaregiverID,
		"pet_id":           b.PetID,
		"service_type_id":  b.ServiceTypeID,
		"starts_on":        b.StartsOn.Format(time.RFC3339),
		"ends_on":          b.EndsOn.Format(time.RFC3339),
		"duration_minutes": b.DurationMinutes,
		"status":           b.Status,
		"owner_notes":      b.OwnerNotes,
		"price_cents":      b.PriceCents,
		"fee_cents":        b.FeeCents,
		"payout_cents":     b.PayoutCents,
		"payment_status":   b.PaymentStatus,
	}

	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return err
	}

	created, err := extractCreatedRecord(result)
	if err != nil {
		return err
	}

	b.ID = created.ID
	b.CreatedOn = created.CreatedOn
	b.UpdatedOn = created.UpdatedOn
	return nil
}

// GetByID retrieves a booking by ID
func (r *BookingRepository) GetByID(ctx context.Context, id string) (*model.Booking, error) {
	query := `SELECT * FROM type::record($id)`
	vars := map[string]interface{}{"id": id}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	booking, err := parseBookingResult(result)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return booking, nil
}

// List retrieves bookings matching the filter, newest first
func (r *BookingRepository) List(ctx context.Context, filter model.BookingListFilter) ([]*model.Booking, error) {
	query := `SELECT * FROM booking`
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

	if filter.OwnerID != "" {
		addCondition(`owner = type::record($owner_id)`)
		vars["owner_id"] = filter.OwnerID
	}
	if filter.CaregiverID != "" {
		addCondition(`caregiver = type::record($caregiver_id)`)
		vars["caregiver_id"] = filter.CaregiverID
	}
	if filter.Status != "" {
		addCondition(`status = $status`)
		vars["status"] = filter.Status
	}

	query += conditions + ` ORDER BY starts_on DESC LIMIT $limit START $offset`

	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return nil, err
	}

	return parseBookingList(result)
}

// HasOverlap reports whether the caregiver has a pending or accepted booking
// crossing [start, end)
func (r *BookingRepository) HasOverlap(ctx context.Context, caregiverID string, start, end time.Time) (bool, error) {
	query := `
		SELECT count() AS count FROM booking
		WHERE caregiver = type::record($caregiver_id)
			AND status IN ["pending", "accepted"]
			AND starts_on < <datetime>$end
			AND ends_on > <datetime>$start
		GROUP ALL
	`
	vars := map[string]interface{}{
		"caregiver_id": caregiverID,
		"start":        start.Format(time.RFC3339),
		"end":          end.Format(time.RFC3339),
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

// UpdateStatus moves a booking to a new status. Transition legality is the
// service's responsibility.
func (r *BookingRepository) UpdateStatus(ctx context.Context, id string, status model.BookingStatus) error {
	query := `UPDATE type::record($id) SET status = $status, updated_on = time::now()`
	vars := map[string]interface{}{
		"id":     id,
		"status": status,
	}

	return r.db.Execute(ctx, query, vars)
}

// SetCaregiverNotes stores the caregiver's notes on a booking
func (r *BookingRepository) SetCaregiverNotes(ctx context.Context, id, notes string) error {
	query := `UPDATE type::record($id) SET caregiver_notes = $notes, updated_on = time::now()`
	vars := map[string]interface{}{
		"id":    id,
		"notes": notes,
	}

	return r.db.Execute(ctx, query, vars)
}

// MarkPaid atomically flips payment status to paid and writes the matching
// ledger credit for the caregiver payout. The caller must have verified the
// booking is not already paid.
func (r *BookingRepository) MarkPaid(ctx context.Context, b *model.Booking, description string) error {
	batch := database.NewAtomicBatch()
	batch.Add(
		`UPDATE type::record($id) SET payment_status = "paid", updated_on = time::now()`,
		map[string]interface{}{"id": b.ID},
	)
	batch.Add(
		`CREATE transaction_log CONTENT {
			booking: type::record($booking_id),
			user: type::record($user_id),
			direction: "credit",
			amount_cents: $amount_cents,
			description: $description,
			payout: NONE,
			created_on: time::now()
		}`,
		map[string]interface{}{
			"booking_id":   b.ID,
			"user_id":      b.CaregiverID,
			"amount_cents": b.PayoutCents,
			"description":  description,
		},
	)
	return batch.Execute(ctx, r.db)
}

// CountByStatus returns the number of bookings in a status
func (r *BookingRepository) CountByStatus(ctx context.Context, status model.BookingStatus) (int, error) {
	query := `SELECT count() AS count FROM booking WHERE status = $status GROUP ALL`
	vars := map[string]interface{}{"status": status}

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

func parseBookingResult(result interface{}) (*model.Booking, error) {
	data, err := unwrapRecord(result)
	if err != nil {
		return nil, err
	}

	for from, to := range map[string]string{
		"owner":        "owner_id",
		"caregiver":    "caregiver_id",
		"pet":          "pet_id",
		"service_type": "service_type_id",
	} {
		if v, ok := data[from]; ok {
			data[to] = convertSurrealID(v)
			delete(data, from)
		}
	}

	jsonBytes, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	var booking model.Booking
	if err := json.Unmarshal(jsonBytes, &booking); err != nil {
		return nil, err
	}
	return &booking, nil
}

func parseBookingList(result []interface{}) ([]*model.Booking, error) {
	rows, ok := extractQueryResults(result)
	if !ok {
		return []*model.Booking{}, nil
	}

	bookings := make([]*model.Booking, 0, len(rows))
	for _, row := range rows {
		booking, err := parseBookingResult(row)
		if err != nil {
			if errors.Is(err, database.ErrNotFound) {
				continue
			}
			return nil, err
		}
		bookings = append(bookings, booking)
	}
	return bookings, nil
}
