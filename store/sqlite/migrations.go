package sqlite

import (
	"context"

	"github.com/xraph/grove/migrate"
)

// Migrations is the grove migration group for the Vault store.
var Migrations = migrate.NewGroup("vault")

func init() {
	Migrations.MustRegister(
		&migrate.Migration{
			Name:    "create_vault_schedules",
			Version: "20250101000001",
			Up: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `
CREATE TABLE IF NOT EXISTS vault_schedules (
    id           TEXT PRIMARY KEY,
    beneficiary  TEXT NOT NULL,
    total        TEXT NOT NULL DEFAULT '0',
    start_time   INTEGER NOT NULL DEFAULT 0,
    cliff        INTEGER NOT NULL DEFAULT 0,
    duration     INTEGER NOT NULL DEFAULT 0,
    last_release INTEGER NOT NULL DEFAULT 0,
    released     TEXT NOT NULL DEFAULT '0',
    created_at   TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    updated_at   TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_vault_schedules_beneficiary ON vault_schedules (beneficiary);
`)
				return err
			},
			Down: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `DROP TABLE IF EXISTS vault_schedules`)
				return err
			},
		},
		&migrate.Migration{
			Name:    "create_vault_locks",
			Version: "20250101000002",
			Up: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `
CREATE TABLE IF NOT EXISTS vault_locks (
    id          TEXT PRIMARY KEY,
    holder      TEXT NOT NULL,
    asset       TEXT NOT NULL,
    position    INTEGER NOT NULL DEFAULT 0,
    amount      TEXT NOT NULL DEFAULT '0',
    unlock_time INTEGER NOT NULL DEFAULT 0,
    created_at  TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    updated_at  TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_vault_locks_sequence ON vault_locks (holder, asset, position);

CREATE TABLE IF NOT EXISTS vault_lock_assets (
    holder TEXT NOT NULL,
    asset  TEXT NOT NULL,
    seq    INTEGER NOT NULL DEFAULT 0,
    PRIMARY KEY (holder, asset)
);
`)
				return err
			},
			Down: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `
DROP TABLE IF EXISTS vault_locks;
DROP TABLE IF EXISTS vault_lock_assets;
`)
				return err
			},
		},
		&migrate.Migration{
			Name:    "create_vault_sales",
			Version: "20250101000003",
			Up: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `
CREATE TABLE IF NOT EXISTS vault_sales (
    id            TEXT PRIMARY KEY,
    asset         TEXT NOT NULL,
    payment_asset TEXT NOT NULL,
    capacity      TEXT NOT NULL DEFAULT '0',
    sold          TEXT NOT NULL DEFAULT '0',
    collected     TEXT NOT NULL DEFAULT '0',
    tier0         TEXT NOT NULL DEFAULT '0',
    tier1         TEXT NOT NULL DEFAULT '0',
    tier2         TEXT NOT NULL DEFAULT '0',
    tier3         TEXT NOT NULL DEFAULT '0',
    max_per_tx    TEXT NOT NULL DEFAULT '0',
    end_time      INTEGER NOT NULL DEFAULT 0,
    end_height    INTEGER NOT NULL DEFAULT 0,
    closed        BOOLEAN NOT NULL DEFAULT FALSE,
    created_at    TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    updated_at    TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`)
				return err
			},
			Down: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `DROP TABLE IF EXISTS vault_sales`)
				return err
			},
		},
	)
}
