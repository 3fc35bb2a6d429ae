package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/zhingPin/gsoe-contracts/internal/models"
)

// PayoutRepository handles the pull-payment escrow ledger
type PayoutRepository struct {
	db *Database
}

// NewPayoutRepository creates a new PayoutRepository
func NewPayoutRepository(db *Database) *PayoutRepository {
	return &PayoutRepository{
		db: db,
	}
}

// Pending returns the account's pending balance
func (r *PayoutRepository) Pending(account string) (int64, error) {
	var amount int64
	query := `SELECT amount FROM pending_balances WHERE account = $1`
	err := r.db.GetDB().Get(&amount, query, account)
	if err != nil {
		if err == sql.ErrNoRows {
			return 0, nil
		}
		return 0, err
	}
	return amount, nil
}

// Withdraw zeroes the account's pending balance and then invokes the
// outbound payment. The debit strictly precedes the transfer: a reentrant
// withdrawal during the payout observes a zero balance. A rejected payout
// rolls the debit back.
func (r *PayoutRepository) Withdraw(account string, pay func(account string, amount int64) error) (int64, error) {
	var amount int64

	err := r.db.Transaction(func(tx *sqlx.Tx) error {
		query := `SELECT amount FROM pending_balances WHERE account = $1 FOR UPDATE`
		err := tx.Get(&amount, query, account)
		if err != nil {
			if err == sql.ErrNoRows {
				return models.ErrNothingToWithdraw
			}
			return err
		}
		if amount == 0 {
			return models.ErrNothingToWithdraw
		}
		if amount < 0 {
			return fmt.Errorf("%w: negative balance %d for %s", models.ErrAccountingBroken, amount, account)
		}

		now := time.Now()
		query = `UPDATE pending_balances SET amount = 0, updated_at = $1 WHERE account = $2`
		if _, err := tx.Exec(query, now, account); err != nil {
			return err
		}

		query = `INSERT INTO withdrawals (account, amount, created_at) VALUES ($1, $2, $3)`
		if _, err := tx.Exec(query, account, amount, now); err != nil {
			return err
		}

		query = `UPDATE ledger_totals SET withdrawn = withdrawn + $1 WHERE id = 1`
		if _, err := tx.Exec(query, amount); err != nil {
			return err
		}

		return pay(account, amount)
	})

	if err != nil {
		return 0, err
	}

	return amount, nil
}

// Totals returns the running ledger counters
func (r *PayoutRepository) Totals() (models.LedgerTotals, error) {
	totals := models.LedgerTotals{}
	query := `SELECT sale_volume, platform_earnings, mint_fees, listing_fees, withdrawn
			  FROM ledger_totals WHERE id = 1`
	err := r.db.GetDB().Get(&totals, query)
	return totals, err
}

// Withdrawals retrieves the withdrawal history for an account
func (r *PayoutRepository) Withdrawals(account string) ([]models.Withdrawal, error) {
	withdrawals := []models.Withdrawal{}
	query := `SELECT id, account, amount, created_at FROM withdrawals
			  WHERE account = $1 ORDER BY id DESC`
	err := r.db.GetDB().Select(&withdrawals, query, account)
	return withdrawals, err
}
