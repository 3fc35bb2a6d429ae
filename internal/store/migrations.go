package store

import (
	"database/sql"
	"fmt"
	"log"

	migrate "github.com/rubenv/sql-migrate"
)

// migrations are embedded so the binary carries its own schema
var migrations = &migrate.MemoryMigrationSource{
	Migrations: []*migrate.Migration{
		{
			Id: "001_initial",
			Up: []string{
				`CREATE TABLE batches (
					id BIGSERIAL PRIMARY KEY,
					creator TEXT NOT NULL,
					recipient TEXT NOT NULL,
					quantity INT NOT NULL CHECK (quantity >= 1),
					royalty_rate INT NOT NULL CHECK (royalty_rate BETWEEN 0 AND 100),
					uri TEXT NOT NULL,
					mint_fee_paid BIGINT NOT NULL CHECK (mint_fee_paid >= 0),
					created_at TIMESTAMPTZ NOT NULL DEFAULT now()
				)`,
				`CREATE TABLE assets (
					id BIGSERIAL PRIMARY KEY,
					batch_id BIGINT NOT NULL REFERENCES batches(id),
					sequence_in_batch INT NOT NULL CHECK (sequence_in_batch >= 1),
					creator TEXT NOT NULL,
					owner TEXT NOT NULL,
					royalty_rate INT NOT NULL CHECK (royalty_rate BETWEEN 0 AND 100),
					uri TEXT NOT NULL,
					created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
					UNIQUE (batch_id, sequence_in_batch)
				)`,
				`CREATE INDEX assets_owner_idx ON assets (owner)`,
				`CREATE TABLE operator_approvals (
					owner TEXT NOT NULL,
					operator TEXT NOT NULL,
					approved BOOLEAN NOT NULL,
					updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
					PRIMARY KEY (owner, operator)
				)`,
				`CREATE TABLE listings (
					id BIGSERIAL PRIMARY KEY,
					asset_id BIGINT NOT NULL REFERENCES assets(id),
					seller TEXT NOT NULL,
					price BIGINT NOT NULL CHECK (price > 0),
					status TEXT NOT NULL CHECK (status IN ('active', 'sold', 'cancelled')),
					buyer TEXT,
					sold_at TIMESTAMPTZ,
					created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
					updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
				)`,
				`CREATE UNIQUE INDEX listings_one_active_per_asset
					ON listings (asset_id) WHERE status = 'active'`,
				`CREATE INDEX listings_seller_idx ON listings (seller)`,
				`CREATE TABLE pending_balances (
					account TEXT PRIMARY KEY,
					amount BIGINT NOT NULL DEFAULT 0 CHECK (amount >= 0),
					updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
				)`,
				`CREATE TABLE withdrawals (
					id BIGSERIAL PRIMARY KEY,
					account TEXT NOT NULL,
					amount BIGINT NOT NULL CHECK (amount > 0),
					created_at TIMESTAMPTZ NOT NULL DEFAULT now()
				)`,
				`CREATE TABLE market_config (
					id INT PRIMARY KEY CHECK (id = 1),
					platform_fee_percent INT NOT NULL CHECK (platform_fee_percent BETWEEN 0 AND 100),
					listing_fee BIGINT NOT NULL CHECK (listing_fee >= 0),
					mint_fee_per_unit BIGINT NOT NULL CHECK (mint_fee_per_unit >= 0),
					fee_recipient TEXT NOT NULL,
					updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
					updated_by TEXT NOT NULL DEFAULT ''
				)`,
				`CREATE TABLE ledger_totals (
					id INT PRIMARY KEY CHECK (id = 1),
					sale_volume BIGINT NOT NULL DEFAULT 0,
					platform_earnings BIGINT NOT NULL DEFAULT 0,
					mint_fees BIGINT NOT NULL DEFAULT 0,
					listing_fees BIGINT NOT NULL DEFAULT 0,
					withdrawn BIGINT NOT NULL DEFAULT 0
				)`,
				`INSERT INTO ledger_totals (id) VALUES (1)`,
				`CREATE TABLE role_grants (
					account TEXT NOT NULL,
					role TEXT NOT NULL,
					granted_by TEXT NOT NULL,
					granted_at TIMESTAMPTZ NOT NULL DEFAULT now(),
					PRIMARY KEY (account, role)
				)`,
			},
			Down: []string{
				`DROP TABLE role_grants`,
				`DROP TABLE ledger_totals`,
				`DROP TABLE market_config`,
				`DROP TABLE withdrawals`,
				`DROP TABLE pending_balances`,
				`DROP TABLE listings`,
				`DROP TABLE operator_approvals`,
				`DROP TABLE assets`,
				`DROP TABLE batches`,
			},
		},
	},
}

// runMigrations applies pending migrations
func runMigrations(db *sql.DB) error {
	n, err := migrate.Exec(db, "postgres", migrations, migrate.Up)
	if err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	if n > 0 {
		log.Printf("applied %d database migrations", n)
	}
	return nil
}
