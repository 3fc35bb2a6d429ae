package services

import (
	"github.com/jmoiron/sqlx"
	"github.com/zhingPin/gsoe-contracts/internal/models"
)

// The service layer depends on the narrow store surfaces below rather than
// on concrete repositories, so that unit tests can substitute fakes.

// ListingStore is the listing persistence surface the services require
type ListingStore interface {
	GetByID(id int64) (*models.Listing, error)
	HasActiveForAsset(assetID int64) (bool, error)
	Create(listing *models.Listing, listingFee int64) error
	CreateBatch(assetIDs []int64, seller string, price, listingFee int64) ([]int64, error)
	Cancel(id int64) error
	Fulfill(listingID int64, buyer string, paidValue int64, transfer func(tx *sqlx.Tx, assetID int64, from, to string) error) (*models.Sale, error)
	List(params models.ListingParams) ([]models.Listing, int, error)
}

// AssetStore is the read-side asset metadata surface
type AssetStore interface {
	GetByID(id int64) (*models.Asset, error)
	GetBatch(id int64) (*models.Batch, error)
	List(params models.AssetParams) ([]models.Asset, int, error)
}

// PayoutStore is the pull-payment ledger surface. The mint and listing fee
// counters are not part of it: those commit inside the mint and listing
// transactions themselves.
type PayoutStore interface {
	Pending(account string) (int64, error)
	Withdraw(account string, pay func(account string, amount int64) error) (int64, error)
	Totals() (models.LedgerTotals, error)
	Withdrawals(account string) ([]models.Withdrawal, error)
}

// ConfigStore is the fee configuration surface
type ConfigStore interface {
	Get() (models.MarketConfig, error)
	SetPlatformFeePercent(percent int, updatedBy string) error
	SetListingFee(amount int64, updatedBy string) error
	SetMintFeePerUnit(amount int64, updatedBy string) error
	SetFeeRecipient(account string, updatedBy string) error
}

// RoleStore is the capability grant surface
type RoleStore interface {
	HasRole(role models.Role, account string) (bool, error)
	Grant(role models.Role, account, grantedBy string) error
	Revoke(role models.Role, account string) error
	GrantsByAccount(account string) ([]models.RoleGrant, error)
}

// Sink delivers outbound value to an account. It sits outside the ledger:
// once Pay returns nil the value has left the marketplace.
type Sink interface {
	Pay(account string, amount int64) error
}

// EventPublisher broadcasts marketplace events to subscribers
type EventPublisher interface {
	Publish(event models.Event)
}
