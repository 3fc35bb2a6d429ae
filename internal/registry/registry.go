// Package registry defines the boundary contract with the asset registry,
// the external ledger that holds custody of minted assets. The marketplace
// core depends only on the Registry interface; the Postgres-backed adapter
// in this package is the embedded deployment.
package registry

import (
	"github.com/jmoiron/sqlx"
	"github.com/zhingPin/gsoe-contracts/internal/models"
)

// MintMeta is the provenance metadata stamped onto every asset in a batch
// at mint time. It is immutable once recorded.
type MintMeta struct {
	Creator     string
	URI         string
	RoyaltyRate int
	MintFeePaid int64
}

// Registry is the minimum surface the marketplace core requires from the
// asset registry. MintBatch generalizes single-asset minting because the
// core's only mint path is the batch-minting protocol, which must assign
// all quantity assets or none.
type Registry interface {
	// MintBatch assigns the next batch id and mints quantity assets owned
	// by to, stamped with meta and sequence numbers 1..quantity.
	MintBatch(to string, meta MintMeta, quantity int) (*models.Batch, []int64, error)

	// OwnerOf returns the current owner of the asset, or ErrAssetNotFound.
	OwnerOf(assetID int64) (string, error)

	// Transfer moves custody from from to to within the caller's
	// transaction, so custody and the marketplace accounting that
	// triggered it commit or roll back together. It fails with
	// ErrTransferRejected when from is not the current owner or the
	// marketplace lacks operator approval from the owner.
	Transfer(tx *sqlx.Tx, from, to string, assetID int64) error

	// IsApprovedForAll reports whether owner has approved operator to
	// transfer on their behalf.
	IsApprovedForAll(owner, operator string) (bool, error)

	// SetApprovalForAll records or clears owner's approval of operator.
	SetApprovalForAll(owner, operator string, approved bool) error
}
