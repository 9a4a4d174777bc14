package vault_test

import (
	"context"
	"log/slog"
	"testing"

	vault "github.com/xraph/vault"
	"github.com/xraph/vault/clock"
	"github.com/xraph/vault/sale"
	memstore "github.com/xraph/vault/store/memory"
	tokmem "github.com/xraph/vault/token/memory"
	"github.com/xraph/vault/types"
)

// TestDocumentationExamples verifies that the examples in the package
// documentation compile and run.
func TestDocumentationExamples(t *testing.T) {
	// Quick Start example from the package doc
	t.Run("QuickStartExample", func(t *testing.T) {
		// Create store (memory for demo, use PostgreSQL in production)
		store := memstore.New()

		// Token ledger moving the actual balances
		tokens := tokmem.New("treasury")

		// Initialize Vault
		v := vault.New(store, tokens,
			vault.WithLogger(slog.Default()),
			vault.WithOwner("admin"),
			vault.WithSelf("treasury"),
			vault.WithVestingAsset("vest"),
			vault.WithClock(clock.NewManual(0)),
		)

		// Start the engine
		ctx := context.Background()
		if err := v.Start(ctx); err != nil {
			t.Fatal(err)
		}
		defer v.Stop()

		// Create a vesting schedule
		s, err := v.CreateSchedule(ctx, "admin", "alice", vault.Tokens(1000), 0, 100, 900)
		if err != nil {
			t.Fatal(err)
		}
		if s.Beneficiary != "alice" {
			t.Errorf("beneficiary = %s, want alice", s.Beneficiary)
		}

		// Lock a deposit for a day
		tokens.Mint("gold", "alice", vault.Tokens(100))
		l, err := v.Lock(ctx, "alice", "gold", vault.Tokens(100), 86400)
		if err != nil {
			t.Fatal(err)
		}
		if l.Amount != vault.Tokens(100) {
			t.Errorf("lock amount = %s, want 100 tokens", l.Amount)
		}

		// Initialize the sale and read its opening price
		tokens.Mint("gold", "treasury", vault.Tokens(1_000_000))
		if _, err := v.InitSale(ctx, sale.Config{
			Asset:        "gold",
			PaymentAsset: "usd",
			Capacity:     vault.Tokens(1_000_000),
			Tiers:        [sale.TierCount]types.Amount{10, 20, 30, 40},
			EndTime:      86400,
		}); err != nil {
			t.Fatal(err)
		}
		price, err := v.CurrentPrice(ctx)
		if err != nil {
			t.Fatal(err)
		}
		if price != 10 {
			t.Errorf("opening price = %s, want 10", price)
		}
	})
}
