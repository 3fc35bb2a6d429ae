package models

import (
	"time"

	"github.com/google/uuid"
)

// Event types emitted by the marketplace for downstream indexing
const (
	EventBatchMinted        = "batch_minted"
	EventBatchMintAndListed = "batch_mint_and_listed"
	EventListingCreated     = "listing_created"
	EventListingSold        = "listing_sold"
	EventListingCancelled   = "listing_cancelled"
	EventFundsWithdrawn     = "funds_withdrawn"
)

// Event is the envelope broadcast over the event feed
type Event struct {
	ID        string      `json:"id"`
	Type      string      `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// NewEvent wraps a payload in a fresh envelope
func NewEvent(eventType string, payload interface{}) Event {
	return Event{
		ID:        uuid.New().String(),
		Type:      eventType,
		Timestamp: time.Now().UTC(),
		Payload:   payload,
	}
}

// BatchMintedEvent announces a completed batch mint
type BatchMintedEvent struct {
	BatchID     int64     `json:"batch_id"`
	Creator     string    `json:"creator"`
	AssetIDs    []int64   `json:"asset_ids"`
	RoyaltyRate int       `json:"royalty_rate"`
	To          string    `json:"to"`
	CreatedAt   time.Time `json:"created_at"`
}

// BatchMintAndListedEvent announces a combined mint-and-list
type BatchMintAndListedEvent struct {
	BatchID    int64   `json:"batch_id"`
	Minter     string  `json:"minter"`
	AssetIDs   []int64 `json:"asset_ids"`
	ListingIDs []int64 `json:"listing_ids"`
	Price      int64   `json:"price"`
}

// ListingCreatedEvent announces a new active listing
type ListingCreatedEvent struct {
	ListingID int64  `json:"listing_id"`
	AssetID   int64  `json:"asset_id"`
	Seller    string `json:"seller"`
	Price     int64  `json:"price"`
}

// ListingSoldEvent announces a completed sale
type ListingSoldEvent struct {
	ListingID int64     `json:"listing_id"`
	AssetID   int64     `json:"asset_id"`
	Buyer     string    `json:"buyer"`
	Price     int64     `json:"price"`
	Timestamp time.Time `json:"timestamp"`
}

// ListingCancelledEvent announces a delisted listing
type ListingCancelledEvent struct {
	ListingID int64  `json:"listing_id"`
	Seller    string `json:"seller"`
}

// FundsWithdrawnEvent announces a completed withdrawal
type FundsWithdrawnEvent struct {
	Account string `json:"account"`
	Amount  int64  `json:"amount"`
}
