package models

import (
	"time"
)

// Asset represents a minted asset with its immutable provenance metadata.
// The owner column is maintained by the asset registry; everything else is
// stamped once at mint time and never changes.
type Asset struct {
	ID              int64     `json:"id" db:"id"`
	BatchID         int64     `json:"batch_id" db:"batch_id"`
	SequenceInBatch int       `json:"sequence_in_batch" db:"sequence_in_batch"`
	Creator         string    `json:"creator" db:"creator"`
	Owner           string    `json:"owner" db:"owner"`
	RoyaltyRate     int       `json:"royalty_rate" db:"royalty_rate"` // percent, 0..100
	URI             string    `json:"uri" db:"uri"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
}

// Batch records one batch-mint invocation. All assets in a batch share
// creator, royalty rate and URI.
type Batch struct {
	ID          int64     `json:"id" db:"id"`
	Creator     string    `json:"creator" db:"creator"`
	Recipient   string    `json:"recipient" db:"recipient"`
	Quantity    int       `json:"quantity" db:"quantity"`
	RoyaltyRate int       `json:"royalty_rate" db:"royalty_rate"`
	URI         string    `json:"uri" db:"uri"`
	MintFeePaid int64     `json:"mint_fee_paid" db:"mint_fee_paid"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// AssetListResponse represents the response for listing assets
type AssetListResponse struct {
	Assets     []Asset `json:"assets"`
	TotalCount int     `json:"total_count"`
	Page       int     `json:"page"`
	PageSize   int     `json:"page_size"`
}

// AssetParams represents the parameters for filtering assets
type AssetParams struct {
	Owner    string `json:"owner"`
	Creator  string `json:"creator"`
	BatchID  int64  `json:"batch_id"`
	Page     int    `json:"page"`
	PageSize int    `json:"page_size"`
}

// MintBatchRequest represents a request to mint a batch of assets. To and
// Creator default to the authenticated caller when omitted.
type MintBatchRequest struct {
	To          string `json:"to"`
	Creator     string `json:"creator"`
	URI         string `json:"uri"`
	Quantity    int    `json:"quantity"`
	RoyaltyRate int    `json:"royalty_rate"`
	PaidValue   int64  `json:"paid_value"`
}

// MintBatchResponse carries the result of a batch mint
type MintBatchResponse struct {
	BatchID  int64   `json:"batch_id"`
	AssetIDs []int64 `json:"asset_ids"`
}

// MintAndListRequest represents a request to mint a batch and list every asset
type MintAndListRequest struct {
	URI         string `json:"uri"`
	Price       int64  `json:"price"`
	RoyaltyRate int    `json:"royalty_rate"`
	Quantity    int    `json:"quantity"`
	PaidValue   int64  `json:"paid_value"`
}

// MintAndListResponse carries the result of a combined mint-and-list
type MintAndListResponse struct {
	BatchID    int64   `json:"batch_id"`
	AssetIDs   []int64 `json:"asset_ids"`
	ListingIDs []int64 `json:"listing_ids"`
}
