package models

// Split is the three-way division of a sale price. The invariant
// PlatformFee + Royalty + SellerProceeds == Price holds exactly for every
// committed sale; integer remainder from the percentage divisions accrues
// to the seller.
type Split struct {
	PlatformFee    int64 `json:"platform_fee"`
	Royalty        int64 `json:"royalty"`
	SellerProceeds int64 `json:"seller_proceeds"`
}

// ComputeSplit divides price into platform fee, creator royalty and seller
// proceeds using integer percentage division. It fails when the fee and
// royalty together exceed the price, which would drive the seller's
// proceeds negative.
func ComputeSplit(price int64, platformFeePercent, royaltyRate int) (Split, error) {
	if price <= 0 {
		return Split{}, ErrInvalidPrice
	}
	if platformFeePercent < 0 || platformFeePercent > 100 {
		return Split{}, ErrInvalidFeePercent
	}
	if royaltyRate < 0 || royaltyRate > 100 {
		return Split{}, ErrInvalidRoyalty
	}

	fee := percentOf(price, platformFeePercent)
	royalty := percentOf(price, royaltyRate)
	proceeds := price - fee - royalty
	if proceeds < 0 {
		return Split{}, ErrFeeExceedsPrice
	}

	return Split{PlatformFee: fee, Royalty: royalty, SellerProceeds: proceeds}, nil
}

// Total returns the sum of all three legs; always equal to the sale price
func (s Split) Total() int64 {
	return s.PlatformFee + s.Royalty + s.SellerProceeds
}

// percentOf computes amount*pct/100 with the same rounding as the naive
// product but without overflowing int64 for amounts near the type's limit.
func percentOf(amount int64, pct int) int64 {
	return amount/100*int64(pct) + amount%100*int64(pct)/100
}
