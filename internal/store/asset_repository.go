package store

import (
	"database/sql"
	"fmt"

	"github.com/zhingPin/gsoe-contracts/internal/models"
)

// AssetRepository is the read side of the asset metadata store: provenance
// stamped at mint time, queried by the ledger to compute royalty splits and
// by the marketplace views
type AssetRepository struct {
	db *Database
}

// NewAssetRepository creates a new AssetRepository
func NewAssetRepository(db *Database) *AssetRepository {
	return &AssetRepository{
		db: db,
	}
}

// GetByID retrieves an asset with its provenance metadata
func (r *AssetRepository) GetByID(id int64) (*models.Asset, error) {
	asset := &models.Asset{}
	query := `SELECT id, batch_id, sequence_in_batch, creator, owner, royalty_rate, uri, created_at
			  FROM assets WHERE id = $1`

	err := r.db.GetDB().Get(asset, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	return asset, nil
}

// GetBatch retrieves a batch record
func (r *AssetRepository) GetBatch(id int64) (*models.Batch, error) {
	batch := &models.Batch{}
	query := `SELECT id, creator, recipient, quantity, royalty_rate, uri, mint_fee_paid, created_at
			  FROM batches WHERE id = $1`

	err := r.db.GetDB().Get(batch, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	return batch, nil
}

// List retrieves assets based on filter parameters
func (r *AssetRepository) List(params models.AssetParams) ([]models.Asset, int, error) {
	assets := []models.Asset{}

	// Default pagination values
	if params.Page <= 0 {
		params.Page = 1
	}
	if params.PageSize <= 0 {
		params.PageSize = 10
	}

	baseQuery := `FROM assets`
	whereClause := ``
	args := []interface{}{}
	argCount := 1

	if params.Owner != "" {
		whereClause = ` WHERE owner = ` + fmt.Sprintf("$%d", argCount)
		args = append(args, params.Owner)
		argCount++
	}

	if params.Creator != "" {
		if whereClause == "" {
			whereClause = ` WHERE`
		} else {
			whereClause += ` AND`
		}
		whereClause += fmt.Sprintf(` creator = $%d`, argCount)
		args = append(args, params.Creator)
		argCount++
	}

	if params.BatchID > 0 {
		if whereClause == "" {
			whereClause = ` WHERE`
		} else {
			whereClause += ` AND`
		}
		whereClause += fmt.Sprintf(` batch_id = $%d`, argCount)
		args = append(args, params.BatchID)
		argCount++
	}

	baseQuery += whereClause

	// Count total matching records
	var total int
	countQuery := `SELECT COUNT(*) ` + baseQuery
	err := r.db.GetDB().Get(&total, countQuery, args...)
	if err != nil {
		return nil, 0, err
	}

	// Get paginated results
	offset := (params.Page - 1) * params.PageSize
	selectQuery := `SELECT id, batch_id, sequence_in_batch, creator, owner, royalty_rate, uri, created_at ` +
		baseQuery + fmt.Sprintf(` ORDER BY id ASC LIMIT $%d OFFSET $%d`, argCount, argCount+1)
	args = append(args, params.PageSize, offset)

	err = r.db.GetDB().Select(&assets, selectQuery, args...)
	if err != nil {
		return nil, 0, err
	}

	return assets, total, nil
}
