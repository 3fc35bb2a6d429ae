package models

import (
	"time"
)

// ListingStatus represents the lifecycle state of a listing
type ListingStatus string

const (
	ListingStatusActive    ListingStatus = "active"
	ListingStatusSold      ListingStatus = "sold"
	ListingStatusCancelled ListingStatus = "cancelled"
)

// Listing represents an offer to sell one asset at a fixed price.
// Sold and cancelled listings are retained as terminal historical records.
type Listing struct {
	ID        int64         `json:"id" db:"id"`
	AssetID   int64         `json:"asset_id" db:"asset_id"`
	Seller    string        `json:"seller" db:"seller"`
	Price     int64         `json:"price" db:"price"`
	Status    ListingStatus `json:"status" db:"status"`
	Buyer     *string       `json:"buyer,omitempty" db:"buyer"`
	SoldAt    *time.Time    `json:"sold_at,omitempty" db:"sold_at"`
	CreatedAt time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt time.Time     `json:"updated_at" db:"updated_at"`
	Asset     *Asset        `json:"asset,omitempty"`
}

// Sale is the committed outcome of a fulfilled listing
type Sale struct {
	Listing   Listing   `json:"listing"`
	Buyer     string    `json:"buyer"`
	Split     Split     `json:"split"`
	Timestamp time.Time `json:"timestamp"`
}

// CreateListingRequest represents a request to list an asset for sale
type CreateListingRequest struct {
	AssetID   int64 `json:"asset_id"`
	Price     int64 `json:"price"`
	PaidValue int64 `json:"paid_value"`
}

// BuyRequest represents a request to purchase a listing for exact payment
type BuyRequest struct {
	PaidValue int64 `json:"paid_value"`
}

// ListingListResponse represents the response for listing listings
type ListingListResponse struct {
	Listings   []Listing `json:"listings"`
	TotalCount int       `json:"total_count"`
	Page       int       `json:"page"`
	PageSize   int       `json:"page_size"`
}

// ListingParams represents the parameters for filtering listings
type ListingParams struct {
	Status   ListingStatus `json:"status"`
	Seller   string        `json:"seller"`
	Buyer    string        `json:"buyer"`
	AssetID  int64         `json:"asset_id"`
	Page     int           `json:"page"`
	PageSize int           `json:"page_size"`
}

// ApprovalRequest represents a request to grant or revoke operator approval
// on the asset registry
type ApprovalRequest struct {
	Operator string `json:"operator"`
	Approved bool   `json:"approved"`
}
