package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/zhingPin/gsoe-contracts/internal/models"
)

// ListingRepository handles database operations related to listings.
// The listing lifecycle (active -> sold, active -> cancelled) is enforced
// here so that concurrent operations on the same listing serialize on the
// listing row.
type ListingRepository struct {
	db *Database
}

// NewListingRepository creates a new ListingRepository
func NewListingRepository(db *Database) *ListingRepository {
	return &ListingRepository{
		db: db,
	}
}

// GetByID retrieves a listing by ID with its associated asset
func (r *ListingRepository) GetByID(id int64) (*models.Listing, error) {
	listing := &models.Listing{}
	query := `SELECT id, asset_id, seller, price, status, buyer, sold_at, created_at, updated_at
			  FROM listings WHERE id = $1`

	err := r.db.GetDB().Get(listing, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	// Fetch associated asset
	asset := &models.Asset{}
	query = `SELECT id, batch_id, sequence_in_batch, creator, owner, royalty_rate, uri, created_at
			 FROM assets WHERE id = $1`
	err = r.db.GetDB().Get(asset, query, listing.AssetID)
	if err != nil && err != sql.ErrNoRows {
		return nil, err
	}
	listing.Asset = asset

	return listing, nil
}

// HasActiveForAsset reports whether the asset already has an active listing
func (r *ListingRepository) HasActiveForAsset(assetID int64) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM listings WHERE asset_id = $1 AND status = 'active')`
	err := r.db.GetDB().Get(&exists, query, assetID)
	return exists, err
}

// Create creates a new active listing and records the collected listing
// fee in the same transaction, so a failed insert leaves no fee counted
// and a counted fee always has its listing. The partial unique index on
// (asset_id) WHERE status = 'active' closes the race between two concurrent
// creates for the same asset.
func (r *ListingRepository) Create(listing *models.Listing, listingFee int64) error {
	now := time.Now()
	listing.Status = models.ListingStatusActive
	listing.CreatedAt = now
	listing.UpdatedAt = now

	err := r.db.Transaction(func(tx *sqlx.Tx) error {
		query := `INSERT INTO listings (asset_id, seller, price, status, created_at, updated_at)
				  VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
		err := tx.Get(&listing.ID, query,
			listing.AssetID, listing.Seller, listing.Price,
			listing.Status, listing.CreatedAt, listing.UpdatedAt)
		if err != nil {
			return err
		}

		return addListingFeesTx(tx, listingFee)
	})

	if pqErr, ok := err.(*pq.Error); ok && pqErr.Code.Name() == "unique_violation" {
		return models.ErrAlreadyListed
	}

	return err
}

// CreateBatch creates active listings for every asset in one transaction,
// together with the listing fees collected for the whole batch. Either all
// listings exist afterwards or none do.
func (r *ListingRepository) CreateBatch(assetIDs []int64, seller string, price, listingFee int64) ([]int64, error) {
	listingIDs := make([]int64, 0, len(assetIDs))
	now := time.Now()

	err := r.db.Transaction(func(tx *sqlx.Tx) error {
		query := `INSERT INTO listings (asset_id, seller, price, status, created_at, updated_at)
				  VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
		for _, assetID := range assetIDs {
			var listingID int64
			err := tx.Get(&listingID, query,
				assetID, seller, price, models.ListingStatusActive, now, now)
			if err != nil {
				return err
			}
			listingIDs = append(listingIDs, listingID)
		}

		return addListingFeesTx(tx, listingFee)
	})

	if pqErr, ok := err.(*pq.Error); ok && pqErr.Code.Name() == "unique_violation" {
		return nil, models.ErrAlreadyListed
	}
	if err != nil {
		return nil, err
	}

	return listingIDs, nil
}

func addListingFeesTx(tx *sqlx.Tx, amount int64) error {
	if amount == 0 {
		return nil
	}
	query := `UPDATE ledger_totals SET listing_fees = listing_fees + $1 WHERE id = 1`
	_, err := tx.Exec(query, amount)
	return err
}

// Cancel transitions an active listing to cancelled. Returns ErrInvalidState
// if the listing is no longer active.
func (r *ListingRepository) Cancel(id int64) error {
	query := `UPDATE listings SET status = 'cancelled', updated_at = $1
			  WHERE id = $2 AND status = 'active'`

	res, err := r.db.GetDB().Exec(query, time.Now(), id)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return models.ErrInvalidState
	}

	return nil
}

// Fulfill completes a sale atomically: it locks the listing row, validates
// state and payment, computes the fee/royalty/seller split against the
// current fee configuration, credits the pending-withdrawal balances,
// marks the listing sold and finally invokes the custody transfer. Any
// failure, including a rejected transfer, rolls the whole sale back.
func (r *ListingRepository) Fulfill(listingID int64, buyer string, paidValue int64, transfer func(tx *sqlx.Tx, assetID int64, from, to string) error) (*models.Sale, error) {
	var sale *models.Sale

	err := r.db.Transaction(func(tx *sqlx.Tx) error {
		listing := models.Listing{}
		query := `SELECT id, asset_id, seller, price, status, buyer, sold_at, created_at, updated_at
				  FROM listings WHERE id = $1 FOR UPDATE`
		err := tx.Get(&listing, query, listingID)
		if err != nil {
			if err == sql.ErrNoRows {
				return models.ErrItemNotAvailable
			}
			return err
		}

		if listing.Status != models.ListingStatusActive {
			return models.ErrItemNotAvailable
		}

		// Payment is validated before any balance is touched
		if paidValue != listing.Price {
			return models.ErrWrongPaymentAmount
		}

		asset := models.Asset{}
		query = `SELECT id, batch_id, sequence_in_batch, creator, owner, royalty_rate, uri, created_at
				 FROM assets WHERE id = $1`
		if err := tx.Get(&asset, query, listing.AssetID); err != nil {
			return err
		}

		// Fees are read at sale time, not snapshotted at listing time
		cfg := models.MarketConfig{}
		query = `SELECT platform_fee_percent, listing_fee, mint_fee_per_unit, fee_recipient, updated_at, updated_by
				 FROM market_config WHERE id = 1`
		if err := tx.Get(&cfg, query); err != nil {
			return err
		}

		split, err := models.ComputeSplit(listing.Price, cfg.PlatformFeePercent, asset.RoyaltyRate)
		if err != nil {
			return err
		}

		credits := saleCredits(cfg.FeeRecipient, asset.Creator, listing.Seller, split)

		creditQuery := `INSERT INTO pending_balances (account, amount, updated_at)
						VALUES ($1, $2, $3)
						ON CONFLICT (account) DO UPDATE
						SET amount = pending_balances.amount + EXCLUDED.amount, updated_at = EXCLUDED.updated_at`
		now := time.Now()
		for account, amount := range credits {
			if amount == 0 {
				continue
			}
			if _, err := tx.Exec(creditQuery, account, amount, now); err != nil {
				return err
			}
		}

		query = `UPDATE listings SET status = 'sold', buyer = $1, sold_at = $2, updated_at = $2
				 WHERE id = $3`
		if _, err := tx.Exec(query, buyer, now, listingID); err != nil {
			return err
		}

		query = `UPDATE ledger_totals SET sale_volume = sale_volume + $1,
				 platform_earnings = platform_earnings + $2 WHERE id = 1`
		if _, err := tx.Exec(query, listing.Price, split.PlatformFee); err != nil {
			return err
		}

		// Custody moves last, on the same transaction: a rejected transfer
		// aborts the accounting and a failed commit leaves custody untouched
		if err := transfer(tx, asset.ID, asset.Owner, buyer); err != nil {
			return err
		}

		listing.Status = models.ListingStatusSold
		listing.Buyer = &buyer
		listing.SoldAt = &now
		listing.UpdatedAt = now
		listing.Asset = &asset

		sale = &models.Sale{
			Listing:   listing,
			Buyer:     buyer,
			Split:     split,
			Timestamp: now,
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	return sale, nil
}

// saleCredits aggregates the three split legs into per-account credit
// amounts. Crediting is plain accumulation, so a seller who is also the
// creator simply receives both legs under one account.
func saleCredits(feeRecipient, creator, seller string, split models.Split) map[string]int64 {
	credits := map[string]int64{}
	credits[feeRecipient] += split.PlatformFee
	credits[creator] += split.Royalty
	credits[seller] += split.SellerProceeds
	return credits
}

// List retrieves listings based on filter parameters
func (r *ListingRepository) List(params models.ListingParams) ([]models.Listing, int, error) {
	listings := []models.Listing{}

	// Default pagination values
	if params.Page <= 0 {
		params.Page = 1
	}
	if params.PageSize <= 0 {
		params.PageSize = 10
	}

	baseQuery := `FROM listings l`
	whereClause := ``
	args := []interface{}{}
	argCount := 1

	addFilter := func(clause string, value interface{}) {
		if whereClause == "" {
			whereClause = ` WHERE`
		} else {
			whereClause += ` AND`
		}
		whereClause += fmt.Sprintf(clause, argCount)
		args = append(args, value)
		argCount++
	}

	if params.Status != "" {
		addFilter(` l.status = $%d`, params.Status)
	}
	if params.Seller != "" {
		addFilter(` l.seller = $%d`, params.Seller)
	}
	if params.Buyer != "" {
		addFilter(` l.buyer = $%d`, params.Buyer)
	}
	if params.AssetID > 0 {
		addFilter(` l.asset_id = $%d`, params.AssetID)
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
	selectQuery := `SELECT l.id, l.asset_id, l.seller, l.price, l.status, l.buyer, l.sold_at,
				   l.created_at, l.updated_at ` +
		baseQuery + fmt.Sprintf(` ORDER BY l.id DESC LIMIT $%d OFFSET $%d`, argCount, argCount+1)
	args = append(args, params.PageSize, offset)

	err = r.db.GetDB().Select(&listings, selectQuery, args...)
	if err != nil {
		return nil, 0, err
	}

	// Load the asset for each listing
	for i := range listings {
		asset := &models.Asset{}
		query := `SELECT id, batch_id, sequence_in_batch, creator, owner, royalty_rate, uri, created_at
				 FROM assets WHERE id = $1`
		err = r.db.GetDB().Get(asset, query, listings[i].AssetID)
		if err != nil {
			if err == sql.ErrNoRows {
				continue
			}
			return nil, 0, err
		}
		listings[i].Asset = asset
	}

	return listings, total, nil
}
