package models

import (
	"time"
)

// MarketConfig is the admin-mutable fee configuration. Sales always read the
// configuration current at sale time, not a snapshot taken at listing time.
type MarketConfig struct {
	PlatformFeePercent int       `json:"platform_fee_percent" db:"platform_fee_percent"`
	ListingFee         int64     `json:"listing_fee" db:"listing_fee"`
	MintFeePerUnit     int64     `json:"mint_fee_per_unit" db:"mint_fee_per_unit"`
	FeeRecipient       string    `json:"fee_recipient" db:"fee_recipient"`
	UpdatedAt          time.Time `json:"updated_at" db:"updated_at"`
	UpdatedBy          string    `json:"updated_by" db:"updated_by"`
}

// Validate checks the configuration invariants
func (c MarketConfig) Validate() error {
	if c.PlatformFeePercent < 0 || c.PlatformFeePercent > 100 {
		return ErrInvalidFeePercent
	}
	if c.ListingFee < 0 || c.MintFeePerUnit < 0 {
		return ErrInvalidAmount
	}
	if c.FeeRecipient == "" {
		return ErrInvalidAccount
	}
	return nil
}

// SetFeePercentRequest represents a request to change the platform fee percentage
type SetFeePercentRequest struct {
	Percent int `json:"percent"`
}

// SetFeeAmountRequest represents a request to change a flat fee amount
type SetFeeAmountRequest struct {
	Amount int64 `json:"amount"`
}

// SetFeeRecipientRequest represents a request to change the fee recipient
type SetFeeRecipientRequest struct {
	Account string `json:"account"`
}

// FeesResponse is the public view of the current fee configuration
type FeesResponse struct {
	PlatformFeePercent int    `json:"platform_fee_percent"`
	ListingFee         int64  `json:"listing_fee"`
	MintFeePerUnit     int64  `json:"mint_fee_per_unit"`
	ListingFeeDisplay  string `json:"listing_fee_display"`
	MintFeeDisplay     string `json:"mint_fee_display"`
}
