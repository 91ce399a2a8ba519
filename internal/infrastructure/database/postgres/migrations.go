package postgres

import (
	"context"
	"fmt"
	"log/slog"
)

// Versioned schema steps. Each runs in its own transaction and is
// recorded in schema_migrations, so startup can run Migrate
// unconditionally.
var migrations = []struct {
	version     int
	description string
	statements  []string
}{
	{
		version:     1,
		description: "create customers and payment_history tables",
		statements: []string{
			`CREATE TABLE IF NOT EXISTS customers (
                id              BIGSERIAL PRIMARY KEY,
                name            TEXT NOT NULL,
                mobile          TEXT NOT NULL DEFAULT '',
                address         TEXT NOT NULL DEFAULT '',
                plan_details    TEXT NOT NULL DEFAULT '',
                monthly_cost    NUMERIC(12,2) NOT NULL DEFAULT 0,
                renewal_date    DATE,
                pending_balance NUMERIC(12,2) NOT NULL DEFAULT 0,
                created_at      TIMESTAMPTZ NOT NULL DEFAULT NOW(),
                updated_at      TIMESTAMPTZ NOT NULL DEFAULT NOW()
            )`,
			`CREATE TABLE IF NOT EXISTS payment_history (
                id          BIGSERIAL PRIMARY KEY,
                customer_id BIGINT NOT NULL REFERENCES customers (id),
                amount_paid NUMERIC(12,2) NOT NULL,
                payment_date DATE NOT NULL,
                created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
            )`,
			`CREATE INDEX IF NOT EXISTS idx_payment_history_customer_id
                ON payment_history (customer_id)`,
		},
	},
	{
		version:     2,
		description: "drop legacy bill_date column from customers",
		statements: []string{
			// Older deployments tracked a single bill_date per customer.
			// renewal_date supersedes it; the column must not linger.
			`ALTER TABLE customers DROP COLUMN IF EXISTS bill_date`,
		},
	},
}

// Migrate brings the schema up to date. Safe to run on every startup;
// already-applied versions are skipped via schema_migrations.
func Migrate(ctx context.Context, db DBPool, logger *slog.Logger) error {
	logger = logger.With("component", "Migrate")

	_, err := db.Exec(ctx, `CREATE TABLE IF NOT EXISTS schema_migrations (
        version     INT PRIMARY KEY,
        description TEXT NOT NULL,
        applied_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
    )`)
	if err != nil {
		return fmt.Errorf("failed to ensure schema_migrations table: %w", err)
	}

	var current int
	err = db.QueryRow(ctx, `SELECT COALESCE(MAX(version), 0) FROM schema_migrations`).Scan(&current)
	if err != nil {
		return fmt.Errorf("failed to read current schema version: %w", err)
	}
	logger.InfoContext(ctx, "Current schema version", slog.Int("version", current))

	for _, m := range migrations {
		if m.version <= current {
			continue
		}
		logger.InfoContext(ctx, "Applying migration",
			slog.Int("version", m.version),
			slog.String("description", m.description))

		tx, err := db.Begin(ctx)
		if err != nil {
			return fmt.Errorf("failed to begin transaction for migration %d: %w", m.version, err)
		}

		for _, stmt := range m.statements {
			if _, err := tx.Exec(ctx, stmt); err != nil {
				_ = tx.Rollback(ctx)
				return fmt.Errorf("migration %d failed: %w", m.version, err)
			}
		}

		if _, err := tx.Exec(ctx,
			`INSERT INTO schema_migrations (version, description) VALUES ($1, $2)`,
			m.version, m.description); err != nil {
			_ = tx.Rollback(ctx)
			return fmt.Errorf("failed to record migration %d: %w", m.version, err)
		}

		if err := tx.Commit(ctx); err != nil {
			return fmt.Errorf("failed to commit migration %d: %w", m.version, err)
		}
		logger.InfoContext(ctx, "Migration applied", slog.Int("version", m.version))
	}

	return nil
}
