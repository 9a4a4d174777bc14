// Package store defines the unified persistence interface for all Vault
// ledgers. Three independent keyspaces with no cross-references: beneficiary
// to vesting schedule, (holder, asset) to ordered lock sequence, and the sale
// singleton.
package store

import (
	"context"

	"github.com/xraph/vault/sale"
	"github.com/xraph/vault/timelock"
	"github.com/xraph/vault/types"
	"github.com/xraph/vault/vesting"
)

// Store is the unified storage interface for all Vault entities.
// Instead of embedding sub-interfaces, all methods are declared explicitly
// to avoid naming conflicts.
type Store interface {
	// Schedule methods. At most one schedule per beneficiary: CreateSchedule
	// fails with vault.ErrDuplicateSchedule when one exists, GetSchedule and
	// UpdateSchedule fail with vault.ErrNoSchedule when none does.
	CreateSchedule(ctx context.Context, s *vesting.Schedule) error
	GetSchedule(ctx context.Context, beneficiary types.Address) (*vesting.Schedule, error)
	UpdateSchedule(ctx context.Context, s *vesting.Schedule) error

	// Lock methods. Locks form an ordered sequence per (holder, asset);
	// AppendLock registers the asset in the holder's index when newly seen,
	// PutLocks replaces the whole sequence and deregisters the asset when the
	// sequence becomes empty. ListAssets returns the holder's assets in
	// first-seen order.
	AppendLock(ctx context.Context, l *timelock.Lock) error
	GetLocks(ctx context.Context, holder, asset types.Address) ([]timelock.Lock, error)
	PutLocks(ctx context.Context, holder, asset types.Address, locks []timelock.Lock) error
	ListAssets(ctx context.Context, holder types.Address) ([]types.Address, error)

	// Sale methods. The sale is a singleton: CreateSale fails with
	// vault.ErrDuplicateSale when one exists, GetSale and UpdateSale fail
	// with vault.ErrNoSale when none does.
	CreateSale(ctx context.Context, s *sale.Sale) error
	GetSale(ctx context.Context) (*sale.Sale, error)
	UpdateSale(ctx context.Context, s *sale.Sale) error

	// Core methods
	Migrate(ctx context.Context) error
	Ping(ctx context.Context) error
	Close() error
}
