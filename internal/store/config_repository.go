package store

import (
	"time"

	"github.com/zhingPin/gsoe-contracts/internal/models"
)

// ConfigRepository handles the singleton fee configuration row
type ConfigRepository struct {
	db *Database
}

// NewConfigRepository creates a new ConfigRepository
func NewConfigRepository(db *Database) *ConfigRepository {
	return &ConfigRepository{
		db: db,
	}
}

// Get returns the current fee configuration
func (r *ConfigRepository) Get() (models.MarketConfig, error) {
	cfg := models.MarketConfig{}
	query := `SELECT platform_fee_percent, listing_fee, mint_fee_per_unit, fee_recipient, updated_at, updated_by
			  FROM market_config WHERE id = 1`
	err := r.db.GetDB().Get(&cfg, query)
	return cfg, err
}

// EnsureDefaults writes the initial configuration if none exists yet
func (r *ConfigRepository) EnsureDefaults(cfg models.MarketConfig) error {
	query := `INSERT INTO market_config (id, platform_fee_percent, listing_fee, mint_fee_per_unit, fee_recipient, updated_at, updated_by)
			  VALUES (1, $1, $2, $3, $4, $5, $6)
			  ON CONFLICT (id) DO NOTHING`
	_, err := r.db.GetDB().Exec(query,
		cfg.PlatformFeePercent, cfg.ListingFee, cfg.MintFeePerUnit,
		cfg.FeeRecipient, time.Now(), cfg.UpdatedBy)
	return err
}

// SetPlatformFeePercent updates the platform fee percentage
func (r *ConfigRepository) SetPlatformFeePercent(percent int, updatedBy string) error {
	query := `UPDATE market_config SET platform_fee_percent = $1, updated_at = $2, updated_by = $3 WHERE id = 1`
	_, err := r.db.GetDB().Exec(query, percent, time.Now(), updatedBy)
	return err
}

// SetListingFee updates the flat listing fee
func (r *ConfigRepository) SetListingFee(amount int64, updatedBy string) error {
	query := `UPDATE market_config SET listing_fee = $1, updated_at = $2, updated_by = $3 WHERE id = 1`
	_, err := r.db.GetDB().Exec(query, amount, time.Now(), updatedBy)
	return err
}

// SetMintFeePerUnit updates the per-unit mint fee
func (r *ConfigRepository) SetMintFeePerUnit(amount int64, updatedBy string) error {
	query := `UPDATE market_config SET mint_fee_per_unit = $1, updated_at = $2, updated_by = $3 WHERE id = 1`
	_, err := r.db.GetDB().Exec(query, amount, time.Now(), updatedBy)
	return err
}

// SetFeeRecipient updates the fee recipient account
func (r *ConfigRepository) SetFeeRecipient(account string, updatedBy string) error {
	query := `UPDATE market_config SET fee_recipient = $1, updated_at = $2, updated_by = $3 WHERE id = 1`
	_, err := r.db.GetDB().Exec(query, account, time.Now(), updatedBy)
	return err
}
