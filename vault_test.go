package vault_test

import (
	"context"
	"errors"
	"testing"

	vault "github.com/xraph/vault"
	"github.com/xraph/vault/clock"
	"github.com/xraph/vault/sale"
	memstore "github.com/xraph/vault/store/memory"
	"github.com/xraph/vault/timelock"
	tokmem "github.com/xraph/vault/token/memory"
	"github.com/xraph/vault/types"
)

const (
	owner    = types.Address("admin")
	treasury = types.Address("treasury")
	alice    = types.Address("alice")
	bob      = types.Address("bob")

	vestAsset = types.Address("vest")
	goldAsset = types.Address("gold")
	usdAsset  = types.Address("usd")
)

func newVault(t *testing.T, opts ...vault.Option) (*vault.Vault, *tokmem.Ledger, *clock.Manual) {
	t.Helper()

	tokens := tokmem.New(treasury)
	clk := clock.NewManual(0)

	opts = append([]vault.Option{
		vault.WithOwner(owner),
		vault.WithSelf(treasury),
		vault.WithVestingAsset(vestAsset),
		vault.WithClock(clk),
	}, opts...)

	v := vault.New(memstore.New(), tokens, opts...)
	if err := v.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	t.Cleanup(func() { _ = v.Stop() })

	return v, tokens, clk
}

// ──────────────────────────────────────────────────
// Vesting
// ──────────────────────────────────────────────────

func createSchedule(t *testing.T, v *vault.Vault) {
	t.Helper()
	_, err := v.CreateSchedule(context.Background(), owner, alice, vault.Tokens(1000), 0, 100, 900)
	if err != nil {
		t.Fatalf("CreateSchedule: %v", err)
	}
}

func TestCreateScheduleValidation(t *testing.T) {
	v, _, _ := newVault(t)
	ctx := context.Background()

	tests := []struct {
		name     string
		caller   types.Address
		benef    types.Address
		total    vault.Amount
		cliff    uint64
		duration uint64
		want     error
	}{
		{"NotOwner", alice, alice, vault.Tokens(1), 0, 100, vault.ErrUnauthorized},
		{"ZeroCaller", vault.ZeroAddress, alice, vault.Tokens(1), 0, 100, vault.ErrUnauthorized},
		{"ZeroBeneficiary", owner, vault.ZeroAddress, vault.Tokens(1), 0, 100, vault.ErrInvalidBeneficiary},
		{"ZeroTotal", owner, alice, 0, 0, 100, vault.ErrInvalidAmount},
		{"ZeroDuration", owner, alice, vault.Tokens(1), 0, 0, vault.ErrInvalidDuration},
		{"CliffPastDuration", owner, alice, vault.Tokens(1), 200, 100, vault.ErrInvalidDuration},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := v.CreateSchedule(ctx, tt.caller, tt.benef, tt.total, 0, tt.cliff, tt.duration)
			if !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestCreateScheduleOncePerBeneficiary(t *testing.T) {
	v, _, _ := newVault(t)
	ctx := context.Background()

	createSchedule(t, v)
	_, err := v.CreateSchedule(ctx, owner, alice, vault.Tokens(500), 0, 0, 100)
	if !errors.Is(err, vault.ErrDuplicateSchedule) {
		t.Errorf("err = %v, want ErrDuplicateSchedule", err)
	}
}

func TestReleaseFlow(t *testing.T) {
	v, tokens, clk := newVault(t)
	ctx := context.Background()

	tokens.Mint(vestAsset, treasury, vault.Tokens(1000))
	createSchedule(t, v)

	// Inside the cliff nothing is releasable.
	clk.Set(100)
	if _, err := v.Release(ctx, alice); !errors.Is(err, vault.ErrNothingToRelease) {
		t.Fatalf("release at cliff end err = %v, want ErrNothingToRelease", err)
	}

	// Halfway through the post-cliff window.
	clk.Set(550)
	got, err := v.Release(ctx, alice)
	if err != nil {
		t.Fatalf("Release: %v", err)
	}
	if want := vault.Tokens(250); got != want {
		t.Errorf("Release = %s, want %s", got, want)
	}
	if bal := tokens.Balance(vestAsset, alice); bal != vault.Tokens(250) {
		t.Errorf("alice balance = %s, want 250 tokens", bal)
	}

	// A second release at the same instant finds nothing.
	if _, err := v.Release(ctx, alice); !errors.Is(err, vault.ErrNothingToRelease) {
		t.Errorf("second release err = %v, want ErrNothingToRelease", err)
	}

	sched, err := v.Schedule(ctx, alice)
	if err != nil {
		t.Fatal(err)
	}
	if sched.Released != vault.Tokens(250) || sched.LastRelease != 550 {
		t.Errorf("schedule after release: Released=%s LastRelease=%d", sched.Released, sched.LastRelease)
	}
}

func TestReleaseWithoutSchedule(t *testing.T) {
	v, _, _ := newVault(t)

	if _, err := v.Release(context.Background(), bob); !errors.Is(err, vault.ErrNoSchedule) {
		t.Errorf("err = %v, want ErrNoSchedule", err)
	}
}

func TestReleaseTransferFailureRollsBack(t *testing.T) {
	v, _, clk := newVault(t)
	ctx := context.Background()

	// Treasury holds nothing, so the payout transfer must fail.
	createSchedule(t, v)
	clk.Set(550)

	if _, err := v.Release(ctx, alice); !errors.Is(err, vault.ErrInsufficientBalance) {
		t.Fatalf("err = %v, want ErrInsufficientBalance", err)
	}

	sched, err := v.Schedule(ctx, alice)
	if err != nil {
		t.Fatal(err)
	}
	if !sched.Released.IsZero() || sched.LastRelease != 0 {
		t.Errorf("failed release left counters mutated: Released=%s LastRelease=%d",
			sched.Released, sched.LastRelease)
	}
}

// ──────────────────────────────────────────────────
// Timelocks
// ──────────────────────────────────────────────────

func TestLockWithdrawFlow(t *testing.T) {
	v, tokens, clk := newVault(t)
	ctx := context.Background()

	tokens.Mint(goldAsset, alice, vault.Tokens(100))

	l, err := v.Lock(ctx, alice, goldAsset, vault.Tokens(100), 10)
	if err != nil {
		t.Fatalf("Lock: %v", err)
	}
	if l.UnlockTime != 10 {
		t.Errorf("UnlockTime = %d, want 10", l.UnlockTime)
	}
	if bal := tokens.Balance(goldAsset, treasury); bal != vault.Tokens(100) {
		t.Errorf("treasury balance after deposit = %s, want 100 tokens", bal)
	}

	clk.Set(5)
	if _, err := v.Withdraw(ctx, alice, goldAsset, 0); !errors.Is(err, vault.ErrStillLocked) {
		t.Fatalf("withdraw at 5 err = %v, want ErrStillLocked", err)
	}
	remaining, err := v.RemainingTime(ctx, alice, goldAsset, 0)
	if err != nil {
		t.Fatal(err)
	}
	if remaining != 5 {
		t.Errorf("RemainingTime = %d, want 5", remaining)
	}

	clk.Set(10)
	got, err := v.Withdraw(ctx, alice, goldAsset, 0)
	if err != nil {
		t.Fatalf("Withdraw: %v", err)
	}
	if got != vault.Tokens(100) {
		t.Errorf("Withdraw = %s, want 100 tokens", got)
	}
	if bal := tokens.Balance(goldAsset, alice); bal != vault.Tokens(100) {
		t.Errorf("alice balance = %s, want 100 tokens", bal)
	}

	// Default policy soft-deletes: the slot stays, emptied.
	locks, err := v.AssetLocks(ctx, alice, goldAsset)
	if err != nil {
		t.Fatal(err)
	}
	if len(locks) != 1 || !locks[0].Withdrawn() {
		t.Errorf("locks after withdraw = %v, want one zeroed slot", locks)
	}

	if _, err := v.Withdraw(ctx, alice, goldAsset, 0); !errors.Is(err, vault.ErrAlreadyWithdrawn) {
		t.Errorf("re-withdraw err = %v, want ErrAlreadyWithdrawn", err)
	}
}

func TestWithdrawCompactPolicy(t *testing.T) {
	v, tokens, clk := newVault(t, vault.WithRemovalPolicy(timelock.Compact))
	ctx := context.Background()

	tokens.Mint(goldAsset, alice, vault.Tokens(60))
	for _, amount := range []vault.Amount{vault.Tokens(10), vault.Tokens(20), vault.Tokens(30)} {
		if _, err := v.Lock(ctx, alice, goldAsset, amount, 10); err != nil {
			t.Fatalf("Lock: %v", err)
		}
	}

	clk.Set(10)
	if _, err := v.Withdraw(ctx, alice, goldAsset, 0); err != nil {
		t.Fatalf("Withdraw: %v", err)
	}

	// Compacting removal swapped the last lock into slot 0. Indices must be
	// re-fetched after every withdrawal.
	locks, err := v.AssetLocks(ctx, alice, goldAsset)
	if err != nil {
		t.Fatal(err)
	}
	if len(locks) != 2 {
		t.Fatalf("len(locks) = %d, want 2", len(locks))
	}
	if locks[0].Amount != vault.Tokens(30) || locks[1].Amount != vault.Tokens(20) {
		t.Errorf("locks = [%s %s], want [30 20] tokens", locks[0].Amount, locks[1].Amount)
	}

	// Draining the sequence deregisters the asset.
	if _, err := v.Withdraw(ctx, alice, goldAsset, 1); err != nil {
		t.Fatal(err)
	}
	if _, err := v.Withdraw(ctx, alice, goldAsset, 0); err != nil {
		t.Fatal(err)
	}
	all, err := v.Locks(ctx, alice)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 0 {
		t.Errorf("Locks after draining = %v, want none", all)
	}
}

func TestLockValidation(t *testing.T) {
	v, _, _ := newVault(t)
	ctx := context.Background()

	tests := []struct {
		name     string
		holder   types.Address
		asset    types.Address
		amount   vault.Amount
		duration uint64
		want     error
	}{
		{"ZeroHolder", vault.ZeroAddress, goldAsset, vault.Tokens(1), 10, vault.ErrInvalidHolder},
		{"ZeroAsset", alice, vault.ZeroAddress, vault.Tokens(1), 10, vault.ErrInvalidAsset},
		{"ZeroAmount", alice, goldAsset, 0, 10, vault.ErrInvalidAmount},
		{"ZeroDuration", alice, goldAsset, vault.Tokens(1), 0, vault.ErrInvalidDuration},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := v.Lock(ctx, tt.holder, tt.asset, tt.amount, tt.duration)
			if !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestLockDepositFailureLeavesNoLock(t *testing.T) {
	v, _, _ := newVault(t)
	ctx := context.Background()

	// Alice has no balance to deposit.
	if _, err := v.Lock(ctx, alice, goldAsset, vault.Tokens(100), 10); !errors.Is(err, vault.ErrInsufficientBalance) {
		t.Fatalf("err = %v, want ErrInsufficientBalance", err)
	}

	locks, err := v.Locks(ctx, alice)
	if err != nil {
		t.Fatal(err)
	}
	if len(locks) != 0 {
		t.Errorf("locks after failed deposit = %v, want none", locks)
	}
}

func TestWithdrawIndexOutOfRange(t *testing.T) {
	v, _, _ := newVault(t)
	ctx := context.Background()

	if _, err := v.Withdraw(ctx, alice, goldAsset, 0); !errors.Is(err, vault.ErrIndexOutOfRange) {
		t.Errorf("err = %v, want ErrIndexOutOfRange", err)
	}
	if _, err := v.RemainingTime(ctx, alice, goldAsset, 3); !errors.Is(err, vault.ErrIndexOutOfRange) {
		t.Errorf("RemainingTime err = %v, want ErrIndexOutOfRange", err)
	}
}

func TestWithdrawRejectsReentry(t *testing.T) {
	v, tokens, clk := newVault(t)
	ctx := context.Background()

	tokens.Mint(goldAsset, alice, vault.Tokens(100))
	if _, err := v.Lock(ctx, alice, goldAsset, vault.Tokens(100), 10); err != nil {
		t.Fatal(err)
	}
	clk.Set(10)

	// A token that calls back into Withdraw mid-payout must be rejected.
	var reentrant error
	fired := false
	tokens.SetTransferHook(func(asset, from, to types.Address, amount types.Amount) {
		if from == treasury && !fired {
			fired = true
			_, reentrant = v.Withdraw(ctx, alice, goldAsset, 0)
		}
	})

	if _, err := v.Withdraw(ctx, alice, goldAsset, 0); err != nil {
		t.Fatalf("outer Withdraw: %v", err)
	}
	if !fired {
		t.Fatal("transfer hook never fired")
	}
	if !errors.Is(reentrant, vault.ErrReentrantCall) {
		t.Errorf("inner Withdraw err = %v, want ErrReentrantCall", reentrant)
	}
}

// ──────────────────────────────────────────────────
// Sale
// ──────────────────────────────────────────────────

func initSale(t *testing.T, v *vault.Vault, tokens *tokmem.Ledger) *sale.Sale {
	t.Helper()

	tokens.Mint(goldAsset, treasury, vault.Tokens(1_000_000))
	s, err := v.InitSale(context.Background(), sale.Config{
		Asset:        goldAsset,
		PaymentAsset: usdAsset,
		Capacity:     vault.Tokens(1_000_000),
		Tiers:        [sale.TierCount]types.Amount{10, 20, 30, 40},
		EndTime:      1000,
	})
	if err != nil {
		t.Fatalf("InitSale: %v", err)
	}
	return s
}

func TestInitSaleValidation(t *testing.T) {
	v, _, _ := newVault(t)
	ctx := context.Background()

	valid := sale.Config{
		Asset:        goldAsset,
		PaymentAsset: usdAsset,
		Capacity:     vault.Tokens(1000),
		Tiers:        [sale.TierCount]types.Amount{10, 20, 30, 40},
		EndTime:      1000,
	}

	tests := []struct {
		name   string
		mutate func(*sale.Config)
		want   error
	}{
		{"ZeroAsset", func(c *sale.Config) { c.Asset = vault.ZeroAddress }, vault.ErrInvalidAsset},
		{"ZeroPaymentAsset", func(c *sale.Config) { c.PaymentAsset = vault.ZeroAddress }, vault.ErrInvalidAsset},
		{"ZeroCapacity", func(c *sale.Config) { c.Capacity = 0 }, vault.ErrInvalidAmount},
		{"ZeroTierPrice", func(c *sale.Config) { c.Tiers[2] = 0 }, vault.ErrInvalidAmount},
		{"NoBoundary", func(c *sale.Config) { c.EndTime = 0 }, vault.ErrInvalidDuration},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			if _, err := v.InitSale(ctx, cfg); !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}

	if _, err := v.InitSale(ctx, valid); err != nil {
		t.Fatalf("InitSale: %v", err)
	}
	if _, err := v.InitSale(ctx, valid); !errors.Is(err, vault.ErrDuplicateSale) {
		t.Errorf("second InitSale err = %v, want ErrDuplicateSale", err)
	}
}

func TestPurchaseFlow(t *testing.T) {
	v, tokens, _ := newVault(t)
	ctx := context.Background()

	initSale(t, v, tokens)
	tokens.Mint(usdAsset, bob, 10_000)

	price, err := v.CurrentPrice(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if price != 10 {
		t.Fatalf("CurrentPrice = %s, want 10", price)
	}

	units, err := v.Quote(ctx, 1000)
	if err != nil {
		t.Fatal(err)
	}
	if units != vault.Tokens(100) {
		t.Fatalf("Quote(1000) = %s, want 100 tokens", units)
	}

	if err := v.Purchase(ctx, bob, vault.Tokens(100), 1000); err != nil {
		t.Fatalf("Purchase: %v", err)
	}
	if bal := tokens.Balance(goldAsset, bob); bal != vault.Tokens(100) {
		t.Errorf("bob gold = %s, want 100 tokens", bal)
	}
	if bal := tokens.Balance(usdAsset, treasury); bal != 1000 {
		t.Errorf("treasury usd = %s, want 1000", bal)
	}

	s, err := v.Sale(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if s.Sold != vault.Tokens(100) || s.Collected != 1000 {
		t.Errorf("counters: Sold=%s Collected=%s", s.Sold, s.Collected)
	}
}

func TestPurchasePaymentMismatch(t *testing.T) {
	v, tokens, _ := newVault(t)
	ctx := context.Background()

	initSale(t, v, tokens)
	tokens.Mint(usdAsset, bob, 10_000)

	// Exact equality: off by one in either direction fails.
	for _, payment := range []vault.Amount{999, 1001} {
		if err := v.Purchase(ctx, bob, vault.Tokens(100), payment); !errors.Is(err, vault.ErrPaymentMismatch) {
			t.Errorf("Purchase with payment %s err = %v, want ErrPaymentMismatch", payment, err)
		}
	}
}

func TestPurchasePerTxCap(t *testing.T) {
	v, tokens, _ := newVault(t)
	ctx := context.Background()

	s := initSale(t, v, tokens)
	tokens.Mint(usdAsset, bob, 100_000)

	over := s.MaxPerTx + 1
	if err := v.Purchase(ctx, bob, over, 25_010); !errors.Is(err, vault.ErrPerTxCapExceeded) {
		t.Errorf("err = %v, want ErrPerTxCapExceeded", err)
	}
}

func TestPurchaseCapacityExceeded(t *testing.T) {
	v, tokens, _ := newVault(t)
	ctx := context.Background()

	initSale(t, v, tokens)
	tokens.Mint(usdAsset, bob, 100_000_000)

	// A request beyond the remaining capacity is rejected before the
	// inventory and per-transaction checks, so Sold can never overrun
	// Capacity.
	err := v.Purchase(ctx, bob, vault.Tokens(1_000_001), 10_000_010)
	if !errors.Is(err, vault.ErrCapacityExceeded) {
		t.Fatalf("err = %v, want ErrCapacityExceeded", err)
	}

	s, err := v.Sale(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if !s.Sold.IsZero() {
		t.Errorf("Sold = %s, want 0 after rejected purchase", s.Sold)
	}
	if bal := tokens.Balance(goldAsset, bob); !bal.IsZero() {
		t.Errorf("bob gold = %s, want 0", bal)
	}
}

func TestPurchaseInsufficientInventory(t *testing.T) {
	v, tokens, _ := newVault(t)
	ctx := context.Background()

	// Sale initialized with inventory smaller than the requested amount.
	tokens.Mint(goldAsset, treasury, vault.Tokens(10))
	_, err := v.InitSale(ctx, sale.Config{
		Asset:        goldAsset,
		PaymentAsset: usdAsset,
		Capacity:     vault.Tokens(1_000_000),
		Tiers:        [sale.TierCount]types.Amount{10, 20, 30, 40},
		EndTime:      1000,
	})
	if err != nil {
		t.Fatal(err)
	}
	tokens.Mint(usdAsset, bob, 10_000)

	if err := v.Purchase(ctx, bob, vault.Tokens(100), 1000); !errors.Is(err, vault.ErrInsufficientInventory) {
		t.Errorf("err = %v, want ErrInsufficientInventory", err)
	}
}

func TestPurchaseAfterEndTime(t *testing.T) {
	v, tokens, clk := newVault(t)
	ctx := context.Background()

	initSale(t, v, tokens)
	tokens.Mint(usdAsset, bob, 10_000)

	clk.Set(1000)
	if err := v.Purchase(ctx, bob, vault.Tokens(100), 1000); !errors.Is(err, vault.ErrSaleClosed) {
		t.Errorf("err = %v, want ErrSaleClosed", err)
	}
	if _, err := v.CurrentPrice(ctx); !errors.Is(err, vault.ErrSaleClosed) {
		t.Errorf("CurrentPrice err = %v, want ErrSaleClosed", err)
	}
}

func TestPurchaseRejectsReentry(t *testing.T) {
	v, tokens, _ := newVault(t)
	ctx := context.Background()

	initSale(t, v, tokens)
	tokens.Mint(usdAsset, bob, 10_000)

	var reentrant error
	fired := false
	tokens.SetTransferHook(func(asset, from, to types.Address, amount types.Amount) {
		if asset == goldAsset && !fired {
			fired = true
			reentrant = v.Purchase(ctx, bob, vault.Tokens(100), 1000)
		}
	})

	if err := v.Purchase(ctx, bob, vault.Tokens(100), 1000); err != nil {
		t.Fatalf("outer Purchase: %v", err)
	}
	if !fired {
		t.Fatal("transfer hook never fired")
	}
	if !errors.Is(reentrant, vault.ErrReentrantCall) {
		t.Errorf("inner Purchase err = %v, want ErrReentrantCall", reentrant)
	}
}

func TestCloseSale(t *testing.T) {
	v, tokens, clk := newVault(t)
	ctx := context.Background()

	initSale(t, v, tokens)
	tokens.Mint(usdAsset, bob, 10_000)

	if err := v.Purchase(ctx, bob, vault.Tokens(100), 1000); err != nil {
		t.Fatal(err)
	}

	if err := v.CloseSale(ctx, owner); !errors.Is(err, vault.ErrSaleOngoing) {
		t.Fatalf("close before boundary err = %v, want ErrSaleOngoing", err)
	}
	if err := v.CloseSale(ctx, bob); !errors.Is(err, vault.ErrUnauthorized) {
		t.Fatalf("close by non-owner err = %v, want ErrUnauthorized", err)
	}

	clk.Set(1000)
	if err := v.CloseSale(ctx, owner); err != nil {
		t.Fatalf("CloseSale: %v", err)
	}

	// Unsold inventory burned, proceeds swept to the owner.
	if bal := tokens.Balance(goldAsset, treasury); !bal.IsZero() {
		t.Errorf("unsold gold = %s, want 0", bal)
	}
	if bal := tokens.Balance(usdAsset, owner); bal != 1000 {
		t.Errorf("owner usd = %s, want 1000", bal)
	}

	// A second close finds the sale settled and moves nothing further.
	if err := v.CloseSale(ctx, owner); err != nil {
		t.Fatalf("second CloseSale: %v", err)
	}
	if bal := tokens.Balance(usdAsset, owner); bal != 1000 {
		t.Errorf("owner usd after second close = %s, want 1000", bal)
	}
}

func TestCloseSalePreservesLockDeposits(t *testing.T) {
	v, tokens, clk := newVault(t)
	ctx := context.Background()

	initSale(t, v, tokens)

	// Alice's timelock deposits share the vault address with the sale
	// inventory and proceeds, in both the sale asset and the payment asset.
	tokens.Mint(goldAsset, alice, vault.Tokens(100))
	tokens.Mint(usdAsset, alice, vault.Tokens(50))
	if _, err := v.Lock(ctx, alice, goldAsset, vault.Tokens(100), 2000); err != nil {
		t.Fatalf("Lock gold: %v", err)
	}
	if _, err := v.Lock(ctx, alice, usdAsset, vault.Tokens(50), 2000); err != nil {
		t.Fatalf("Lock usd: %v", err)
	}

	tokens.Mint(usdAsset, bob, 10_000)
	if err := v.Purchase(ctx, bob, vault.Tokens(100), 1000); err != nil {
		t.Fatalf("Purchase: %v", err)
	}

	clk.Set(1000)
	if err := v.CloseSale(ctx, owner); err != nil {
		t.Fatalf("CloseSale: %v", err)
	}

	// Settlement burned only the unsold capacity remainder and swept only
	// the collected payment; the deposits stay custodied by the vault.
	if bal := tokens.Balance(goldAsset, treasury); bal != vault.Tokens(100) {
		t.Errorf("vault gold after close = %s, want 100 tokens", bal)
	}
	if bal := tokens.Balance(usdAsset, treasury); bal != vault.Tokens(50) {
		t.Errorf("vault usd after close = %s, want 50 tokens", bal)
	}
	if bal := tokens.Balance(usdAsset, owner); bal != 1000 {
		t.Errorf("owner usd after close = %s, want 1000", bal)
	}

	// The deposits remain withdrawable once their locks open.
	clk.Set(2000)
	if got, err := v.Withdraw(ctx, alice, goldAsset, 0); err != nil || got != vault.Tokens(100) {
		t.Fatalf("Withdraw gold = %s, %v, want 100 tokens", got, err)
	}
	if got, err := v.Withdraw(ctx, alice, usdAsset, 0); err != nil || got != vault.Tokens(50) {
		t.Fatalf("Withdraw usd = %s, %v, want 50 tokens", got, err)
	}
	if bal := tokens.Balance(goldAsset, alice); bal != vault.Tokens(100) {
		t.Errorf("alice gold = %s, want 100 tokens", bal)
	}
}

func TestSaleOpsWithoutSale(t *testing.T) {
	v, _, _ := newVault(t)
	ctx := context.Background()

	if _, err := v.CurrentPrice(ctx); !errors.Is(err, vault.ErrNoSale) {
		t.Errorf("CurrentPrice err = %v, want ErrNoSale", err)
	}
	if err := v.Purchase(ctx, bob, vault.Tokens(1), 10); !errors.Is(err, vault.ErrNoSale) {
		t.Errorf("Purchase err = %v, want ErrNoSale", err)
	}
	if err := v.CloseSale(ctx, owner); !errors.Is(err, vault.ErrNoSale) {
		t.Errorf("CloseSale err = %v, want ErrNoSale", err)
	}
}
