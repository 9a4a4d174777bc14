// Package plugin provides an extensible plugin system for Vault.
// Plugins can hook into ledger lifecycle events to extend functionality.
package plugin

import (
	"context"

	"github.com/xraph/vault/sale"
	"github.com/xraph/vault/timelock"
	"github.com/xraph/vault/types"
	"github.com/xraph/vault/vesting"
)

// Plugin is the base interface that all plugins must implement.
type Plugin interface {
	Name() string
}

// ──────────────────────────────────────────────────
// Event payloads
// ──────────────────────────────────────────────────

// ReleaseEvent describes a successful vesting release.
type ReleaseEvent struct {
	Beneficiary types.Address
	Amount      types.Amount
	Released    types.Amount // cumulative after this release
	At          uint64
}

// WithdrawEvent describes a successful lock withdrawal.
type WithdrawEvent struct {
	Holder types.Address
	Asset  types.Address
	Index  int
	Amount types.Amount
	At     uint64
}

// PurchaseEvent describes a successful sale purchase.
type PurchaseEvent struct {
	Buyer   types.Address
	Amount  types.Amount
	Payment types.Amount
	At      uint64
}

// SaleClosedEvent describes the terminal sale withdraw.
type SaleClosedEvent struct {
	Burned types.Amount // unsold inventory destroyed
	Swept  types.Amount // collected payment transferred to the owner
	At     uint64
}

// ──────────────────────────────────────────────────
// Lifecycle hooks
// ──────────────────────────────────────────────────

// OnInit is called when the plugin is initialized.
type OnInit interface {
	Plugin
	OnInit(ctx context.Context, v interface{}) error
}

// OnShutdown is called when the plugin is shutting down.
type OnShutdown interface {
	Plugin
	OnShutdown(ctx context.Context) error
}

// ──────────────────────────────────────────────────
// Vesting hooks
// ──────────────────────────────────────────────────

// OnScheduleCreated is called when a new vesting schedule is created.
type OnScheduleCreated interface {
	Plugin
	OnScheduleCreated(ctx context.Context, s *vesting.Schedule) error
}

// OnReleased is called when a vesting release succeeds.
type OnReleased interface {
	Plugin
	OnReleased(ctx context.Context, ev ReleaseEvent) error
}

// ──────────────────────────────────────────────────
// Timelock hooks
// ──────────────────────────────────────────────────

// OnLocked is called when a new lock is created.
type OnLocked interface {
	Plugin
	OnLocked(ctx context.Context, l *timelock.Lock) error
}

// OnLockWithdrawn is called when a lock withdrawal succeeds.
type OnLockWithdrawn interface {
	Plugin
	OnLockWithdrawn(ctx context.Context, ev WithdrawEvent) error
}

// ──────────────────────────────────────────────────
// Sale hooks
// ──────────────────────────────────────────────────

// OnSaleInitialized is called when the sale singleton is created.
type OnSaleInitialized interface {
	Plugin
	OnSaleInitialized(ctx context.Context, s *sale.Sale) error
}

// OnPurchase is called when a sale purchase succeeds.
type OnPurchase interface {
	Plugin
	OnPurchase(ctx context.Context, ev PurchaseEvent) error
}

// OnSaleClosed is called when the terminal sale withdraw runs.
type OnSaleClosed interface {
	Plugin
	OnSaleClosed(ctx context.Context, ev SaleClosedEvent) error
}
