package models

import (
	"time"
)

// PendingBalance is a pull-payment ledger entry: value owed to an account
// that the account must actively withdraw
type PendingBalance struct {
	Account   string    `json:"account" db:"account"`
	Amount    int64     `json:"amount" db:"amount"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Withdrawal is the audit record of a completed withdrawal
type Withdrawal struct {
	ID        int64     `json:"id" db:"id"`
	Account   string    `json:"account" db:"account"`
	Amount    int64     `json:"amount" db:"amount"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// LedgerTotals are the running counters the ledger maintains for
// conservation checks and the earnings views
type LedgerTotals struct {
	SaleVolume       int64 `json:"sale_volume" db:"sale_volume"`
	PlatformEarnings int64 `json:"platform_earnings" db:"platform_earnings"`
	MintFees         int64 `json:"mint_fees" db:"mint_fees"`
	ListingFees      int64 `json:"listing_fees" db:"listing_fees"`
	Withdrawn        int64 `json:"withdrawn" db:"withdrawn"`
}

// EarningsResponse is the marketplace earnings view: platform fees accrued
// from sales plus the flat mint and listing fees collected
type EarningsResponse struct {
	SaleVolume       int64 `json:"sale_volume"`
	PlatformEarnings int64 `json:"platform_earnings"`
	MintFees         int64 `json:"mint_fees"`
	ListingFees      int64 `json:"listing_fees"`
	TotalEarnings    int64 `json:"total_earnings"`
}

// WithdrawResponse carries the result of a withdrawal
type WithdrawResponse struct {
	Account string `json:"account"`
	Amount  int64  `json:"amount"`
}
