package repository

import (
	"context"
	"errors"
	"time"

	"github.com/pawmarket/api/internal/database"
	"github.com/pawmarket/api/internal/model"
)

// FinanceRepository handles the transaction ledger and payouts
type FinanceRepository struct {
	db database.Database
}

// NewFinanceRepository creates a new finance repository
func NewFinanceRepository(db database.Database) *FinanceRepository {
	return &FinanceRepository{db: db}
}

// CreateTransaction appends a ledger entry
func (r *FinanceRepository) CreateTransaction(ctx context.Context, t *model.TransactionLog) error {
	query := `
		CREATE transaction_log CONTENT {
			booking: IF $booking_id IS NOT NULL THEN type::record($booking_id) ELSE NONE END,
			user: type::record($user_id),
			direction: $direction,
			amount_cents: $amount_cents,
			description: $description,
			payout: NONE,
			created_on: time::now()
		}
	`
	vars := map[string]interface{}{
		"booking_id":   ptrToNone(t.BookingID),
		"user_id":      t.UserID,
		"direction":    t.Direction,
		"amount_cents": t.AmountCents,
		"description":  t.Description,
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

// ListTransactions returns a user's ledger entries, newest first
func (r *FinanceRepository) ListTransactions(ctx context.Context, userID string, limit, offset int) ([]*model.TransactionLog, error) {
	query := `
		SELECT * FROM transaction_log
		WHERE user = type::record($user_id)
		ORDER BY created_on DESC
		LIMIT $limit START $offset
	`
	vars := map[string]interface{}{
		"user_id": userID,
		"limit":   limit,
		"offset":  offset,
	}

	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return nil, err
	}

	rows, ok := extractQueryResults(result)
	if !ok {
		return []*model.TransactionLog{}, nil
	}

	entries := make([]*model.TransactionLog, 0, len(rows))
	for _, row := range rows {
		entry, err := parseTransactionResult(row)
		if err != nil {
			if errors.Is(err, database.ErrNotFound) {
				continue
			}
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// ListUncoveredCredits returns credit entries not yet rolled into a payout,
// oldest first, for one user or all users when userID is empty
func (r *FinanceRepository) ListUncoveredCredits(ctx context.Context, userID string) ([]*model.TransactionLog, error) {
	query := `
		SELECT * FROM transaction_log
		WHERE direction = "credit" AND payout = NONE
	`
	vars := map[string]interface{}{}
	if userID != "" {
		query += ` AND user = type::record($user_id)`
		vars["user_id"] = userID
	}
	query += ` ORDER BY created_on ASC`

	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return nil, err
	}

	rows, ok := extractQueryResults(result)
	if !ok {
		return []*model.TransactionLog{}, nil
	}

	entries := make([]*model.TransactionLog, 0, len(rows))
	for _, row := range rows {
		entry, err := parseTransactionResult(row)
		if err != nil {
			if errors.Is(err, database.ErrNotFound) {
				continue
			}
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// SumCredits totals a user's ledger credits. When since is non-zero only
// entries on or after it count.
func (r *FinanceRepository) SumCredits(ctx context.Context, userID string, since time.Time) (int64, error) {
	query := `
		SELECT math::sum(amount_cents) AS total FROM transaction_log
		WHERE user = type::record($user_id) AND direction = "credit"
	`
	vars := map[string]interface{}{"user_id": userID}
	if !since.IsZero() {
		query += ` AND created_on >= <datetime>$since`
		vars["since"] = since.Format(time.RFC3339)
	}
	query += ` GROUP ALL`

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return 0, nil
		}
		return 0, err
	}

	if data, ok := result.(map[string]interface{}); ok {
		return int64(getFloat(data, "total")), nil
	}
	return 0, nil
}

// SumUncoveredCredits totals a user's credits not yet covered by a payout
func (r *FinanceRepository) SumUncoveredCredits(ctx context.Context, userID string) (int64, error) {
	query := `
		SELECT math::sum(amount_cents) AS total FROM transaction_log
		WHERE user = type::record($user_id) AND direction = "credit" AND payout = NONE
		GROUP ALL
	`
	vars := map[string]interface{}{"user_id": userID}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return 0, nil
		}
		return 0, err
	}

	if data, ok := result.(map[string]interface{}); ok {
		return int64(getFloat(data, "total")), nil
	}
	return 0, nil
}

// CreatePayoutCovering atomically creates a pending payout and stamps it on
// the covered ledger entries so each credit is disbursed at most once
func (r *FinanceRepository) CreatePayoutCovering(ctx context.Context, payout *model.Payout, transactionIDs []string) error {
	if len(transactionIDs) == 0 {
		return errors.New("payout must cover at least one transaction")
	}

	// The payout record ID is minted client-side so the same transaction can
	// both create it and back-reference it.
	payoutID := "payout:" + newRecordSuffix()

	batch := database.NewAtomicBatch()
	batch.Add(
		`CREATE type::record($payout_id) CONTENT {
			caregiver: type::record($caregiver_id),
			amount_cents: $amount_cents,
			currency: $currency,
			status: $status,
			paid_on: NONE,
			created_on: time::now(),
			updated_on: time::now()
		}`,
		map[string]interface{}{
			"payout_id":    payoutID,
			"caregiver_id": payout.CaregiverID,
			"amount_cents": payout.AmountCents,
			"currency":     payout.Currency,
			"status":       payout.Status,
		},
	)
	for _, txID := range transactionIDs {
		batch.Add(
			`UPDATE type::record($tx_id) SET payout = type::record($payout_ref)`,
			map[string]interface{}{
				"tx_id":      txID,
				"payout_ref": payoutID,
			},
		)
	}

	if err := batch.Execute(ctx, r.db); err != nil {
		return err
	}

	payout.ID = payoutID
	return nil
}

// GetPayoutByID retrieves a payout
func (r *FinanceRepository) GetPayoutByID(ctx context.Context, id string) (*model.Payout, error) {
	query := `SELECT * FROM type::record($id)`
	vars := map[string]interface{}{"id": id}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	payout, err := parsePayoutResult(result)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return payout, nil
}

// ListPayoutsByCaregiver returns a caregiver's payouts, newest first
func (r *FinanceRepository) ListPayoutsByCaregiver(ctx context.Context, caregiverID string, limit, offset int) ([]*model.Payout, error) {
	query := `
		SELECT * FROM payout
		WHERE caregiver = type::record($caregiver_id)
		ORDER BY created_on DESC
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

	return parsePayoutList(result)
}

// ListPayoutsByStatus returns payouts in a status, oldest first, for the
// processor to advance
func (r *FinanceRepository) ListPayoutsByStatus(ctx context.Context, status model.PayoutStatus, limit int) ([]*model.Payout, error) {
	query := `
		SELECT * FROM payout
		WHERE status = $status
		ORDER BY created_on ASC
		LIMIT $limit
	`
	vars := map[string]interface{}{
		"status": status,
		"limit":  limit,
	}

	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return nil, err
	}

	return parsePayoutList(result)
}

// ListAllPayouts returns payouts across caregivers, newest first, for the
// admin export
func (r *FinanceRepository) ListAllPayouts(ctx context.Context, limit, offset int) ([]*model.Payout, error) {
	query := `
		SELECT * FROM payout
		ORDER BY created_on DESC
		LIMIT $limit START $offset
	`
	vars := map[string]interface{}{
		"limit":  limit,
		"offset": offset,
	}

	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return nil, err
	}

	return parsePayoutList(result)
}

// UpdatePayoutStatus advances a payout's disbursement state. Moving to paid
// stamps paid_on.
func (r *FinanceRepository) UpdatePayoutStatus(ctx context.Context, id string, status model.PayoutStatus) error {
	query := `UPDATE type::record($id) SET status = $status, updated_on = time::now()`
	if status == model.PayoutStatusPaid {
		query = `UPDATE type::record($id) SET status = $status, paid_on = time::now(), updated_on = time::now()`
	}
	vars := map[string]interface{}{
		"id":     id,
		"status": status,
	}

	return r.db.Execute(ctx, query, vars)
}

// Helper functions

func parseTransactionResult(result interface{}) (*model.TransactionLog, error) {
	data, err := unwrapRecord(result)
	if err != nil {
		return nil, err
	}

	entry := &model.TransactionLog{
		ID:          convertSurrealID(data["id"]),
		UserID:      getString(data, "user_id"),
		Direction:   model.TransactionDirection(getString(data, "direction")),
		AmountCents: int64(getFloat(data, "amount_cents")),
		Description: getString(data, "description"),
	}
	if entry.AmountCents == 0 {
		entry.AmountCents = int64(getInt(data, "amount_cents"))
	}

	if booking, ok := data["booking"]; ok && booking != nil {
		if id := convertSurrealID(booking); id != "" && id != "<nil>" {
			entry.BookingID = &id
		}
	}
	if payout, ok := data["payout"]; ok && payout != nil {
		if id := convertSurrealID(payout); id != "" && id != "<nil>" {
			entry.PayoutID = &id
		}
	}
	if t := getTime(data, "created_on"); t != nil {
		entry.CreatedOn = *t
	}

	return entry, nil
}

func parsePayoutResult(result interface{}) (*model.Payout, error) {
	data, err := unwrapRecord(result)
	if err != nil {
		return nil, err
	}

	payout := &model.Payout{
		ID:          convertSurrealID(data["id"]),
		Currency:    getString(data, "currency"),
		Status:      model.PayoutStatus(getString(data, "status")),
		AmountCents: int64(getFloat(data, "amount_cents")),
	}
	if payout.AmountCents == 0 {
		payout.AmountCents = int64(getInt(data, "amount_cents"))
	}

	if caregiver, ok := data["caregiver"]; ok {
		payout.CaregiverID = convertSurrealID(caregiver)
	}
	payout.PaidOn = getTime(data, "paid_on")
	if t := getTime(data, "created_on"); t != nil {
		payout.CreatedOn = *t
	}
	if t := getTime(data, "updated_on"); t != nil {
		payout.UpdatedOn = *t
	}

	return payout, nil
}

func parsePayoutList(result []interface{}) ([]*model.Payout, error) {
	rows, ok := extractQueryResults(result)
	if !ok {
		return []*model.Payout{}, nil
	}

	payouts := make([]*model.Payout, 0, len(rows))
	for _, row := range rows {
		payout, err := parsePayoutResult(row)
		if err != nil {
			if errors.Is(err, database.ErrNotFound) {
				continue
			}
			return nil, err
		}
		payouts = append(payouts, payout)
	}
	return payouts, nil
}
