package service

import "math"

// ComputeCommission splits a booking price into the platform fee and the
// caregiver payout. Prices are integer cents; the fee is rounded half away
// from zero so fee + payout always reconstructs the price exactly.
//
// The fee percent is validated at configuration load; this function assumes
// 0 <= feePercent <= 100.
func ComputeCommission(priceCents int64, feePercent float64) (feeCents, payoutCents int64) {
	feeCents = int64(math.Round(float64(priceCents) * feePercent / 100))
	payoutCents = priceCents - feeCents
	return feeCents, payoutCents
}

// CommissionCalculator binds the configured platform fee percent so services
// never read configuration directly.
type CommissionCalculator struct {
	feePercent float64
}

// NewCommissionCalculator creates a calculator for the given fee percent
func NewCommissionCalculator(feePercent float64) *CommissionCalculator {
	return &CommissionCalculator{feePercent: feePercent}
}

// Split returns the fee and payout for a price in cents
func (c *CommissionCalculator) Split(priceCents int64) (feeCents, payoutCents int64) {
	return ComputeCommission(priceCents, c.feePercent)
}

// FeePercent returns the configured platform fee percent
func (c *CommissionCalculator) FeePercent() float64 {
	return c.feePercent
}
