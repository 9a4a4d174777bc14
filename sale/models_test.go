package sale

import (
	"errors"
	"testing"

	"github.com/xraph/vault/types"
)

func testSale() *Sale {
	return New(Config{
		Asset:        "gold",
		PaymentAsset: "usd",
		Capacity:     types.Tokens(1_000_000),
		Tiers:        [TierCount]types.Amount{10, 20, 30, 40},
		EndTime:      1_000_000,
	})
}

func TestNewDerivesMaxPerTx(t *testing.T) {
	s := testSale()
	if want := types.Tokens(2500); s.MaxPerTx != want {
		t.Errorf("MaxPerTx = %s, want %s", s.MaxPerTx, want)
	}
}

func TestPriceAtTierSteps(t *testing.T) {
	tests := []struct {
		sold types.Amount
		want types.Amount
	}{
		{0, 10},
		{types.Tokens(1), 10},
		{types.Tokens(249_999), 10},
		{types.Tokens(250_000), 20},
		{types.Tokens(250_001), 20},
		{types.Tokens(499_999), 20},
		{types.Tokens(500_000), 30},
		{types.Tokens(749_999), 30},
		{types.Tokens(750_000), 40},
		{types.Tokens(999_999), 40},
	}
	for _, tt := range tests {
		s := testSale()
		s.Sold = tt.sold

		got, err := s.PriceAt(0, 0)
		if err != nil {
			t.Fatalf("PriceAt with sold=%s: %v", tt.sold, err)
		}
		if got != tt.want {
			t.Errorf("PriceAt with sold=%s = %s, want %s", tt.sold, got, tt.want)
		}
	}
}

func TestPriceIsNonDecreasing(t *testing.T) {
	s := testSale()

	var prev types.Amount
	for sold := types.Amount(0); sold < s.Capacity; sold += types.Tokens(50_000) {
		s.Sold = sold
		price, err := s.PriceAt(0, 0)
		if err != nil {
			t.Fatalf("PriceAt with sold=%s: %v", sold, err)
		}
		if price < prev {
			t.Fatalf("price %s decreased from %s at sold=%s", price, prev, sold)
		}
		prev = price
	}
}

func TestPriceAtClosedBoundaries(t *testing.T) {
	t.Run("SoldOut", func(t *testing.T) {
		s := testSale()
		s.Sold = s.Capacity
		if _, err := s.PriceAt(0, 0); !errors.Is(err, ErrClosed) {
			t.Errorf("err = %v, want ErrClosed", err)
		}
	})

	t.Run("PastEndTime", func(t *testing.T) {
		s := testSale()
		if _, err := s.PriceAt(s.EndTime, 0); !errors.Is(err, ErrClosed) {
			t.Errorf("err = %v, want ErrClosed", err)
		}
	})

	t.Run("PastEndHeight", func(t *testing.T) {
		s := testSale()
		s.EndHeight = 500
		if _, err := s.PriceAt(0, 500); !errors.Is(err, ErrClosed) {
			t.Errorf("err = %v, want ErrClosed", err)
		}
	})

	t.Run("TerminalFlag", func(t *testing.T) {
		s := testSale()
		s.Closed = true
		if _, err := s.PriceAt(0, 0); !errors.Is(err, ErrClosed) {
			t.Errorf("err = %v, want ErrClosed", err)
		}
	})
}

func TestQuote(t *testing.T) {
	s := testSale()

	// Ten payment units at price 10 per whole token buys one whole token.
	got, err := s.Quote(10, 0, 0)
	if err != nil {
		t.Fatal(err)
	}
	if want := types.Tokens(1); got != want {
		t.Errorf("Quote(10) = %s, want %s", got, want)
	}

	// A capacity-sized payment quotes proportionally; the wad-scaled result
	// must stay inside the Amount range.
	got, err = s.Quote(10_000_000, 0, 0)
	if err != nil {
		t.Fatal(err)
	}
	if want := types.Tokens(1_000_000); got != want {
		t.Errorf("Quote(10_000_000) = %s, want %s", got, want)
	}
}

func TestRequiredPayment(t *testing.T) {
	s := testSale()

	got, err := s.RequiredPayment(types.Tokens(100), 0, 0)
	if err != nil {
		t.Fatal(err)
	}
	if want := types.Amount(1000); got != want {
		t.Errorf("RequiredPayment(100 tokens) = %s, want %s", got, want)
	}

	// Second tier doubles the unit price.
	s.Sold = types.Tokens(250_000)
	got, err = s.RequiredPayment(types.Tokens(100), 0, 0)
	if err != nil {
		t.Fatal(err)
	}
	if want := types.Amount(2000); got != want {
		t.Errorf("RequiredPayment in tier 2 = %s, want %s", got, want)
	}
}

func TestRecord(t *testing.T) {
	s := testSale()

	if err := s.Record(types.Tokens(100), 1000); err != nil {
		t.Fatal(err)
	}
	if s.Sold != types.Tokens(100) {
		t.Errorf("Sold = %s, want %s", s.Sold, types.Tokens(100))
	}
	if s.Collected != 1000 {
		t.Errorf("Collected = %s, want 1000", s.Collected)
	}
}

func TestRecordOverflow(t *testing.T) {
	s := testSale()
	s.Sold = ^types.Amount(0)

	if err := s.Record(1, 1); !errors.Is(err, types.ErrOverflow) {
		t.Errorf("err = %v, want ErrOverflow", err)
	}
}
