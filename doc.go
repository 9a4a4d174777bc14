// Package vault provides a deterministic time-and-capacity-gated value
// release engine for Go applications.
//
// Vault is designed as a library, not a service. Import it directly into your
// Go application and wire it against your own token ledger. It provides:
//
//   - Cliff-plus-linear vesting schedules with incremental tranche release
//   - Per-holder, per-asset timelocks with pluggable removal policies
//   - A tiered fixed-capacity sale whose price steps with percent sold
//   - Overflow-checked integer arithmetic for every counter
//   - Pluggable persistence (memory, PostgreSQL, SQLite, MongoDB)
//   - Lifecycle hooks for audit and metrics plugins
//
// # Quick Start
//
// Create a vault instance with your preferred store:
//
//	import (
//	    "github.com/xraph/vault"
//	    "github.com/xraph/vault/store/postgres"
//	    "github.com/xraph/vault/token/memory"
//	)
//
//	// Initialize store
//	store, err := postgres.New(databaseURL)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Token ledger moving the actual balances
//	tokens := memory.New("treasury")
//
//	// Create vault
//	v := vault.New(store, tokens,
//	    vault.WithOwner("admin"),
//	    vault.WithSelf("treasury"),
//	)
//
//	// Start the vault (runs store migrations, initializes plugins)
//	if err := v.Start(ctx); err != nil {
//	    log.Fatal(err)
//	}
//	defer v.Stop()
//
// # Core Concepts
//
// Vesting schedules promise a total amount to a beneficiary, release nothing
// before the cliff, then release tranches over the schedule window:
//
//	s, err := v.CreateSchedule(ctx, owner, beneficiary,
//	    vault.Tokens(1000), start, cliff, duration)
//
//	amount, err := v.Release(ctx, beneficiary)
//
// Timelocks hold a deposit until a fixed unlock time:
//
//	l, err := v.Lock(ctx, holder, asset, vault.Tokens(100), 86400)
//	amount, err := v.Withdraw(ctx, holder, asset, 0)
//
// The sale sells a fixed capacity in four price tiers, stepping up at 25%,
// 50% and 75% sold. Payment must match the quoted total exactly:
//
//	price, err := v.CurrentPrice(ctx)
//	err = v.Purchase(ctx, buyer, units, payment)
//
// # Determinism
//
// All value calculations use unsigned integer arithmetic with explicit
// overflow checks. The Amount type counts wad-scaled units (10^9 per whole
// token); no floating point is involved anywhere, so every operation produces
// the same result on every platform. Time is read through the clock package,
// which tests replace with a manual clock.
//
// # Persistence
//
// The store.Store interface has four implementations: memory (testing and
// single-process use), postgres, sqlite and mongo. The SQL stores are built
// on Grove; migrations run from Start.
package vault
