package registry

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/zhingPin/gsoe-contracts/internal/models"
	"github.com/zhingPin/gsoe-contracts/internal/store"
)

// PostgresRegistry is the embedded asset registry, backed by the same
// database as the marketplace ledger. Custody transfers invoked by the
// marketplace are authorized as the configured operator account, so owners
// must have granted it operator approval, mirroring how an on-chain
// marketplace operates under setApprovalForAll.
type PostgresRegistry struct {
	db       *store.Database
	operator string
}

// NewPostgresRegistry creates a registry adapter acting as operator
func NewPostgresRegistry(db *store.Database, operator string) *PostgresRegistry {
	return &PostgresRegistry{
		db:       db,
		operator: operator,
	}
}

// MintBatch mints quantity assets in one transaction: either the whole
// batch exists afterwards or none of it does
func (r *PostgresRegistry) MintBatch(to string, meta MintMeta, quantity int) (*models.Batch, []int64, error) {
	if quantity < 1 {
		return nil, nil, models.ErrInvalidQuantity
	}

	batch := &models.Batch{
		Creator:     meta.Creator,
		Recipient:   to,
		Quantity:    quantity,
		RoyaltyRate: meta.RoyaltyRate,
		URI:         meta.URI,
		MintFeePaid: meta.MintFeePaid,
		CreatedAt:   time.Now(),
	}
	assetIDs := make([]int64, 0, quantity)

	err := r.db.Transaction(func(tx *sqlx.Tx) error {
		query := `INSERT INTO batches (creator, recipient, quantity, royalty_rate, uri, mint_fee_paid, created_at)
				  VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
		err := tx.Get(&batch.ID, query,
			batch.Creator, batch.Recipient, batch.Quantity,
			batch.RoyaltyRate, batch.URI, batch.MintFeePaid, batch.CreatedAt)
		if err != nil {
			return err
		}

		query = `INSERT INTO assets (batch_id, sequence_in_batch, creator, owner, royalty_rate, uri, created_at)
				 VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
		for seq := 1; seq <= quantity; seq++ {
			var assetID int64
			err := tx.Get(&assetID, query,
				batch.ID, seq, meta.Creator, to, meta.RoyaltyRate, meta.URI, batch.CreatedAt)
			if err != nil {
				return err
			}
			assetIDs = append(assetIDs, assetID)
		}

		// The mint fee counter commits with the batch it was paid for
		if meta.MintFeePaid > 0 {
			query = `UPDATE ledger_totals SET mint_fees = mint_fees + $1 WHERE id = 1`
			if _, err := tx.Exec(query, meta.MintFeePaid); err != nil {
				return err
			}
		}

		return nil
	})

	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", models.ErrMintRejected, err)
	}

	return batch, assetIDs, nil
}

// OwnerOf returns the current owner of the asset
func (r *PostgresRegistry) OwnerOf(assetID int64) (string, error) {
	var owner string
	query := `SELECT owner FROM assets WHERE id = $1`
	err := r.db.GetDB().Get(&owner, query, assetID)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", models.ErrAssetNotFound
		}
		return "", err
	}
	return owner, nil
}

// Transfer moves custody of the asset from from to to on the caller's
// transaction. The ownership check and update commit with whatever
// marketplace accounting the caller performs on the same tx.
func (r *PostgresRegistry) Transfer(tx *sqlx.Tx, from, to string, assetID int64) error {
	var owner string
	query := `SELECT owner FROM assets WHERE id = $1 FOR UPDATE`
	err := tx.Get(&owner, query, assetID)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.ErrAssetNotFound
		}
		return err
	}

	if owner != from {
		return models.ErrTransferRejected
	}

	// The marketplace moves assets as an operator, so it needs the
	// owner's standing approval unless the owner is the operator itself
	if owner != r.operator {
		approved, err := r.isApprovedTx(tx, owner, r.operator)
		if err != nil {
			return err
		}
		if !approved {
			return models.ErrTransferRejected
		}
	}

	query = `UPDATE assets SET owner = $1 WHERE id = $2`
	_, err = tx.Exec(query, to, assetID)
	return err
}

// IsApprovedForAll reports whether owner has approved operator
func (r *PostgresRegistry) IsApprovedForAll(owner, operator string) (bool, error) {
	var approved bool
	query := `SELECT approved FROM operator_approvals WHERE owner = $1 AND operator = $2`
	err := r.db.GetDB().Get(&approved, query, owner, operator)
	if err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, err
	}
	return approved, nil
}

// SetApprovalForAll records or clears owner's approval of operator
func (r *PostgresRegistry) SetApprovalForAll(owner, operator string, approved bool) error {
	query := `INSERT INTO operator_approvals (owner, operator, approved, updated_at)
			  VALUES ($1, $2, $3, $4)
			  ON CONFLICT (owner, operator) DO UPDATE
			  SET approved = EXCLUDED.approved, updated_at = EXCLUDED.updated_at`
	_, err := r.db.GetDB().Exec(query, owner, operator, approved, time.Now())
	return err
}

func (r *PostgresRegistry) isApprovedTx(tx *sqlx.Tx, owner, operator string) (bool, error) {
	var approved bool
	query := `SELECT approved FROM operator_approvals WHERE owner = $1 AND operator = $2`
	err := tx.Get(&approved, query, owner, operator)
	if err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, err
	}
	return approved, nil
}
