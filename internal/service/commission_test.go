package service

import (
	"math"
	"testing"
)

func TestComputeCommission_KnownSplits(t *testing.T) {
	tests := []struct {
		name       string
		priceCents int64
		feePercent float64
		wantFee    int64
		wantPayout int64
	}{
		{"typical_15_percent", 10000, 15, 1500, 8500},
		{"zero_fee", 10000, 0, 0, 10000},
		{"full_fee", 10000, 100, 10000, 0},
		{"zero_price", 0, 15, 0, 0},
		{"one_cent", 1, 15, 0, 1},
		{"rounds_half_up", 50, 5, 3, 47}, // 2.5 rounds away from zero
		{"rounds_down", 33, 10, 3, 30},   // 3.3
		{"rounds_up", 37, 10, 4, 33},     // 3.7
		{"fractional_percent", 10000, 12.5, 1250, 8750},
		{"large_price", 50_000_000, 20, 10_000_000, 40_000_000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fee, payout := ComputeCommission(tt.priceCents, tt.feePercent)
			if fee != tt.wantFee {
				t.Errorf("fee = %d, want %d", fee, tt.wantFee)
			}
			if payout != tt.wantPayout {
				t.Errorf("payout = %d, want %d", payout, tt.wantPayout)
			}
		})
	}
}

func TestComputeCommission_SumIsAlwaysPrice(t *testing.T) {
	fees := []float64{0, 0.01, 1, 2.5, 10, 12.5, 15, 33.33, 50, 99.99, 100}

	for price := int64(0); price <= 5000; price++ {
		for _, feePercent := range fees {
			fee, payout := ComputeCommission(price, feePercent)
			if fee+payout != price {
				t.Fatalf("fee %d + payout %d != price %d (fee percent %v)",
					fee, payout, price, feePercent)
			}
			if fee < 0 || payout < 0 {
				t.Fatalf("negative split for price %d fee percent %v: fee %d payout %d",
					price, feePercent, fee, payout)
			}
		}
	}
}

func TestComputeCommission_PayoutTracksFormula(t *testing.T) {
	// payout must stay within half a cent of price*(100-F)/100, the exact
	// value whenever the division is whole
	fees := []float64{0, 5, 10, 15, 25, 50, 75, 100}

	for price := int64(0); price <= 2000; price++ {
		for _, feePercent := range fees {
			_, payout := ComputeCommission(price, feePercent)
			exact := float64(price) * (100 - feePercent) / 100
			if diff := math.Abs(float64(payout) - exact); diff > 0.5 {
				t.Fatalf("payout %d deviates %v from %v (price %d, fee percent %v)",
					payout, diff, exact, price, feePercent)
			}
		}
	}
}

func TestComputeCommission_ExactWhenDivisible(t *testing.T) {
	// Whole-dollar prices with integer fee percents divide evenly
	for priceDollars := int64(1); priceDollars <= 500; priceDollars++ {
		price := priceDollars * 100
		for feePercent := 0; feePercent <= 100; feePercent++ {
			_, payout := ComputeCommission(price, float64(feePercent))
			want := price * int64(100-feePercent) / 100
			if payout != want {
				t.Fatalf("payout = %d, want %d (price %d, fee percent %d)",
					payout, want, price, feePercent)
			}
		}
	}
}

func TestCommissionCalculator_Split(t *testing.T) {
	calc := NewCommissionCalculator(15)

	fee, payout := calc.Split(10000)
	if fee != 1500 || payout != 8500 {
		t.Errorf("Split(10000) = (%d, %d), want (1500, 8500)", fee, payout)
	}
	if calc.FeePercent() != 15 {
		t.Errorf("FeePercent() = %v, want 15", calc.FeePercent())
	}
}
