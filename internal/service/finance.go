package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"github.com/pawmarket/api/internal/model"
)

// FinanceRepository defines the interface for ledger and payout storage
type FinanceRepository interface {
	CreateTransaction(ctx context.Context, t *model.TransactionLog) error
	ListTransactions(ctx context.Context, userID string, limit, offset int) ([]*model.TransactionLog, error)
	ListUncoveredCredits(ctx context.Context, userID string) ([]*model.TransactionLog, error)
	SumCredits(ctx context.Context, userID string, since time.Time) (int64, error)
	SumUncoveredCredits(ctx context.Context, userID string) (int64, error)
	CreatePayoutCovering(ctx context.Context, payout *model.Payout, transactionIDs []string) error
	GetPayoutByID(ctx context.Context, id string) (*model.Payout, error)
	ListPayoutsByCaregiver(ctx context.Context, caregiverID string, limit, offset int) ([]*model.Payout, error)
	ListPayoutsByStatus(ctx context.Context, status model.PayoutStatus, limit int) ([]*model.Payout, error)
	ListAllPayouts(ctx context.Context, limit, offset int) ([]*model.Payout, error)
	UpdatePayoutStatus(ctx context.Context, id string, status model.PayoutStatus) error
}

// Payout processing limits per run
const (
	payoutBatchLimit = 500
	exportPageLimit  = 1000
)

// FinanceService owns the money side: the caregiver earnings ledger, payout
// rollups and disbursement state, and the admin export.
type FinanceService struct {
	financeRepo FinanceRepository
	currency    string
	holdDays    int
}

// FinanceServiceConfig holds configuration for the finance service
type FinanceServiceConfig struct {
	FinanceRepo FinanceRepository
	Currency    string // Default: USD
	HoldDays    int    // Days a payout stays pending before disbursement
}

// NewFinanceService creates a new finance service
func NewFinanceService(cfg FinanceServiceConfig) *FinanceService {
	if cfg.Currency == "" {
		cfg.Currency = model.DefaultCurrency
	}
	if cfg.HoldDays < 0 {
		cfg.HoldDays = 0
	}
	return &FinanceService{
		financeRepo: cfg.FinanceRepo,
		currency:    cfg.Currency,
		holdDays:    cfg.HoldDays,
	}
}

// ListPayouts returns the caregiver's payouts, newest first
func (s *FinanceService) ListPayouts(ctx context.Context, caregiverID string, limit, offset int) ([]*model.Payout, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	return s.financeRepo.ListPayoutsByCaregiver(ctx, caregiverID, limit, offset)
}

// Transactions returns the user's ledger history, newest first
func (s *FinanceService) Transactions(ctx context.Context, userID string, limit, offset int) ([]*model.TransactionLog, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	return s.financeRepo.ListTransactions(ctx, userID, limit, offset)
}

// Summary computes the caregiver earnings dashboard from the ledger:
// lifetime credits, everything earned but not yet disbursed, and the last 30
// days.
func (s *FinanceService) Summary(ctx context.Context, caregiverID string) (*model.FinanceSummary, error) {
	total, err := s.financeRepo.SumCredits(ctx, caregiverID, time.Time{})
	if err != nil {
		return nil, err
	}

	last30, err := s.financeRepo.SumCredits(ctx, caregiverID, time.Now().AddDate(0, 0, -30))
	if err != nil {
		return nil, err
	}

	// Upcoming = uncovered credits plus payouts still moving through
	// disbursement.
	upcoming, err := s.financeRepo.SumUncoveredCredits(ctx, caregiverID)
	if err != nil {
		return nil, err
	}
	payouts, err := s.financeRepo.ListPayoutsByCaregiver(ctx, caregiverID, payoutBatchLimit, 0)
	if err != nil {
		return nil, err
	}
	for _, p := range payouts {
		if p.Status == model.PayoutStatusPending || p.Status == model.PayoutStatusProcessing {
			upcoming += p.AmountCents
		}
	}

	return &model.FinanceSummary{
		TotalEarningsCents:  total,
		UpcomingPayoutCents: upcoming,
		Last30DaysCents:     last30,
	}, nil
}

// RollupPayouts folds one caregiver's uncovered ledger credits into a single
// pending payout. Each credit is covered at most once; the payout amount is
// exactly the sum of what it covers.
func (s *FinanceService) RollupPayouts(ctx context.Context, caregiverID string) (*model.Payout, error) {
	credits, err := s.financeRepo.ListUncoveredCredits(ctx, caregiverID)
	if err != nil {
		return nil, err
	}
	if len(credits) == 0 {
		return nil, ErrNothingToPayout
	}

	var total int64
	ids := make([]string, 0, len(credits))
	for _, credit := range credits {
		total += credit.AmountCents
		ids = append(ids, credit.ID)
	}

	payout := &model.Payout{
		CaregiverID: caregiverID,
		AmountCents: total,
		Currency:    s.currency,
		Status:      model.PayoutStatusPending,
	}

	if err := s.financeRepo.CreatePayoutCovering(ctx, payout, ids); err != nil {
		return nil, err
	}

	return payout, nil
}

// RollupAll folds uncovered credits across all caregivers into pending
// payouts, one per caregiver, returning the number created.
func (s *FinanceService) RollupAll(ctx context.Context) (int, error) {
	credits, err := s.financeRepo.ListUncoveredCredits(ctx, "")
	if err != nil {
		return 0, err
	}
	if len(credits) == 0 {
		return 0, nil
	}

	type rollup struct {
		total int64
		ids   []string
	}
	byCaregiver := make(map[string]*rollup)
	order := make([]string, 0)
	for _, credit := range credits {
		r, ok := byCaregiver[credit.UserID]
		if !ok {
			r = &rollup{}
			byCaregiver[credit.UserID] = r
			order = append(order, credit.UserID)
		}
		r.total += credit.AmountCents
		r.ids = append(r.ids, credit.ID)
	}

	created := 0
	for _, caregiverID := range order {
		r := byCaregiver[caregiverID]
		payout := &model.Payout{
			CaregiverID: caregiverID,
			AmountCents: r.total,
			Currency:    s.currency,
			Status:      model.PayoutStatusPending,
		}
		if err := s.financeRepo.CreatePayoutCovering(ctx, payout, r.ids); err != nil {
			return created, fmt.Errorf("rollup for %s: %w", caregiverID, err)
		}
		created++
	}
	return created, nil
}

// AdvancePayouts moves payouts along the disbursement pipeline: processing
// payouts are marked paid, then pending payouts older than the hold period
// enter processing. Processing drains first so every payout spends at least
// one run in processing.
func (s *FinanceService) AdvancePayouts(ctx context.Context) (int, error) {
	advanced := 0

	processing, err := s.financeRepo.ListPayoutsByStatus(ctx, model.PayoutStatusProcessing, payoutBatchLimit)
	if err != nil {
		return advanced, err
	}
	for _, p := range processing {
		if err := s.financeRepo.UpdatePayoutStatus(ctx, p.ID, model.PayoutStatusPaid); err != nil {
			return advanced, err
		}
		advanced++
	}

	cutoff := time.Now().AddDate(0, 0, -s.holdDays)
	pending, err := s.financeRepo.ListPayoutsByStatus(ctx, model.PayoutStatusPending, payoutBatchLimit)
	if err != nil {
		return advanced, err
	}
	for _, p := range pending {
		if p.CreatedOn.After(cutoff) {
			continue
		}
		if err := s.financeRepo.UpdatePayoutStatus(ctx, p.ID, model.PayoutStatusProcessing); err != nil {
			return advanced, err
		}
		advanced++
	}

	return advanced, nil
}

// ProcessPayouts runs one full payout cycle: roll up fresh credits, then
// advance the pipeline. Returns payouts created and state changes applied.
func (s *FinanceService) ProcessPayouts(ctx context.Context) (created, advanced int, err error) {
	created, err = s.RollupAll(ctx)
	if err != nil {
		return created, 0, err
	}
	advanced, err = s.AdvancePayouts(ctx)
	return created, advanced, err
}

// ExportPayouts renders every payout into an xlsx workbook for the admin
// download. Returns the suggested filename and the file contents.
func (s *FinanceService) ExportPayouts(ctx context.Context) (string, []byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Payouts"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return "", nil, fmt.Errorf("create sheet: %w", err)
	}
	f.SetActiveSheet(index)

	headers := []string{"Payout ID", "Caregiver", "Amount (cents)", "Currency", "Status", "Created On", "Paid On"}
	headerStyle, _ := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#DDEBF7"}, Pattern: 1},
		Font: &excelize.Font{Bold: true},
	})
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, header)
		_ = f.SetCellStyle(sheet, cell, cell, headerStyle)
	}

	row := 2
	for offset := 0; ; offset += exportPageLimit {
		payouts, err := s.financeRepo.ListAllPayouts(ctx, exportPageLimit, offset)
		if err != nil {
			return "", nil, err
		}
		for _, p := range payouts {
			paidOn := ""
			if p.PaidOn != nil {
				paidOn = p.PaidOn.Format(time.RFC3339)
			}
			values := []interface{}{
				p.ID, p.CaregiverID, p.AmountCents, p.Currency,
				string(p.Status), p.CreatedOn.Format(time.RFC3339), paidOn,
			}
			for i, v := range values {
				cell, _ := excelize.CoordinatesToCellName(i+1, row)
				_ = f.SetCellValue(sheet, cell, v)
			}
			row++
		}
		if len(payouts) < exportPageLimit {
			break
		}
	}

	_ = f.SetColWidth(sheet, "A", "B", 30)
	_ = f.SetColWidth(sheet, "C", "G", 18)
	_ = f.DeleteSheet("Sheet1")

	buf, err := f.WriteToBuffer()
	if err != nil {
		return "", nil, fmt.Errorf("write workbook: %w", err)
	}

	filename := fmt.Sprintf("payouts_export_%s_%s.xlsx",
		time.Now().Format("2006-01-02"), uuid.NewString()[:8])
	return filename, buf.Bytes(), nil
}
