package models

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeSplit(t *testing.T) {
	tests := []struct {
		name        string
		price       int64
		feePercent  int
		royaltyRate int
		want        Split
	}{
		{
			name:        "typical split",
			price:       1000,
			feePercent:  2,
			royaltyRate: 10,
			want:        Split{PlatformFee: 20, Royalty: 100, SellerProceeds: 880},
		},
		{
			name:        "zero fee zero royalty",
			price:       1000,
			feePercent:  0,
			royaltyRate: 0,
			want:        Split{PlatformFee: 0, Royalty: 0, SellerProceeds: 1000},
		},
		{
			name:        "remainder goes to the seller",
			price:       99,
			feePercent:  2,
			royaltyRate: 10,
			want:        Split{PlatformFee: 1, Royalty: 9, SellerProceeds: 89},
		},
		{
			name:        "price below one fee unit",
			price:       1,
			feePercent:  2,
			royaltyRate: 10,
			want:        Split{PlatformFee: 0, Royalty: 0, SellerProceeds: 1},
		},
		{
			name:        "full royalty",
			price:       500,
			feePercent:  0,
			royaltyRate: 100,
			want:        Split{PlatformFee: 0, Royalty: 500, SellerProceeds: 0},
		},
		{
			name:        "fee and royalty consume the full price",
			price:       100,
			feePercent:  40,
			royaltyRate: 60,
			want:        Split{PlatformFee: 40, Royalty: 60, SellerProceeds: 0},
		},
		{
			name:        "price near the int64 limit",
			price:       4_700_000_000_000_000_000,
			feePercent:  4,
			royaltyRate: 0,
			want: Split{
				PlatformFee:    188_000_000_000_000_000,
				Royalty:        0,
				SellerProceeds: 4_512_000_000_000_000_000,
			},
		},
		{
			name:        "maximum price",
			price:       math.MaxInt64,
			feePercent:  2,
			royaltyRate: 10,
			want: Split{
				PlatformFee:    math.MaxInt64 / 100 * 2,
				Royalty:        math.MaxInt64 / 100 * 10,
				SellerProceeds: math.MaxInt64 - math.MaxInt64/100*2 - math.MaxInt64/100*10,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ComputeSplit(tt.price, tt.feePercent, tt.royaltyRate)
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.price, got.Total())
		})
	}
}

func TestComputeSplitConservation(t *testing.T) {
	// Every leg is non-negative and the three legs always sum to the price
	prices := []int64{1, 7, 99, 100, 101, 12345, 99999999, math.MaxInt64 - 1, math.MaxInt64}
	for _, price := range prices {
		for fee := 0; fee <= 100; fee += 7 {
			for royalty := 0; royalty+fee <= 100; royalty += 13 {
				got, err := ComputeSplit(price, fee, royalty)
				assert.NoError(t, err)
				assert.Equal(t, price, got.Total())
				assert.GreaterOrEqual(t, got.PlatformFee, int64(0))
				assert.GreaterOrEqual(t, got.Royalty, int64(0))
				assert.GreaterOrEqual(t, got.SellerProceeds, int64(0))
			}
		}
	}
}

func TestComputeSplitErrors(t *testing.T) {
	_, err := ComputeSplit(0, 2, 10)
	assert.ErrorIs(t, err, ErrInvalidPrice)

	_, err = ComputeSplit(-100, 2, 10)
	assert.ErrorIs(t, err, ErrInvalidPrice)

	_, err = ComputeSplit(1000, -1, 10)
	assert.ErrorIs(t, err, ErrInvalidFeePercent)

	_, err = ComputeSplit(1000, 101, 10)
	assert.ErrorIs(t, err, ErrInvalidFeePercent)

	_, err = ComputeSplit(1000, 2, -1)
	assert.ErrorIs(t, err, ErrInvalidRoyalty)

	_, err = ComputeSplit(1000, 2, 101)
	assert.ErrorIs(t, err, ErrInvalidRoyalty)

	// Combined percentages above 100 drive the seller's proceeds negative
	_, err = ComputeSplit(1000, 60, 50)
	assert.ErrorIs(t, err, ErrFeeExceedsPrice)
}
