package types

import (
	"errors"
	"math"
	"testing"
)

func TestAmountAdd(t *testing.T) {
	tests := []struct {
		name    string
		a, b    Amount
		want    Amount
		wantErr error
	}{
		{"Simple", 100, 200, 300, nil},
		{"Zero", 0, 0, 0, nil},
		{"MaxPlusZero", math.MaxUint64, 0, math.MaxUint64, nil},
		{"Overflow", math.MaxUint64, 1, 0, ErrOverflow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.a.Add(tt.b)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err: got %v, want %v", err, tt.wantErr)
			}
			if err == nil && got != tt.want {
				t.Errorf("got %d, want %d", got, tt.want)
			}
		})
	}
}

func TestAmountSub(t *testing.T) {
	tests := []struct {
		name    string
		a, b    Amount
		want    Amount
		wantErr error
	}{
		{"Simple", 500, 200, 300, nil},
		{"ToZero", 100, 100, 0, nil},
		{"Underflow", 100, 101, 0, ErrUnderflow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.a.Sub(tt.b)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err: got %v, want %v", err, tt.wantErr)
			}
			if err == nil && got != tt.want {
				t.Errorf("got %d, want %d", got, tt.want)
			}
		})
	}
}

func TestAmountMul(t *testing.T) {
	tests := []struct {
		name    string
		a, b    Amount
		want    Amount
		wantErr error
	}{
		{"Simple", 100, 3, 300, nil},
		{"ByZero", math.MaxUint64, 0, 0, nil},
		{"Overflow", math.MaxUint64, 2, 0, ErrOverflow},
		{"WadSquared", Wad, Wad, Wad * Wad, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.a.Mul(tt.b)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err: got %v, want %v", err, tt.wantErr)
			}
			if err == nil && got != tt.want {
				t.Errorf("got %d, want %d", got, tt.want)
			}
		})
	}
}

func TestAmountDiv(t *testing.T) {
	got, err := Amount(900).Div(300)
	if err != nil {
		t.Fatal(err)
	}
	if got != 3 {
		t.Errorf("got %d, want 3", got)
	}

	// Truncating division
	got, err = Amount(7).Div(2)
	if err != nil {
		t.Fatal(err)
	}
	if got != 3 {
		t.Errorf("got %d, want 3", got)
	}

	if _, err := Amount(1).Div(0); !errors.Is(err, ErrDivisionByZero) {
		t.Errorf("expected ErrDivisionByZero, got %v", err)
	}
}

func TestMulDiv(t *testing.T) {
	tests := []struct {
		name       string
		a, b, den  Amount
		want       Amount
		wantErr    error
	}{
		{"Simple", 1000, 450, 900, 500, nil},
		{"Truncates", 1000, 1, 3, 333, nil},
		// 128-bit intermediate: Wad*Wad/Wad must not overflow mid-computation.
		{"WideIntermediate", Wad, Wad, Wad, Wad, nil},
		{"QuotientOverflow", math.MaxUint64, math.MaxUint64, 1, 0, ErrOverflow},
		{"ZeroDenominator", 1, 1, 0, 0, ErrDivisionByZero},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := MulDiv(tt.a, tt.b, tt.den)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err: got %v, want %v", err, tt.wantErr)
			}
			if err == nil && got != tt.want {
				t.Errorf("got %d, want %d", got, tt.want)
			}
		})
	}
}

func TestTokensRange(t *testing.T) {
	// Large whole-token quantities must stay representable: a sale-sized
	// capacity and the documented maximum both fit a uint64 at the Wad
	// scale.
	if got := Tokens(1_000_000); got != 1_000_000*Wad {
		t.Errorf("Tokens(1_000_000) = %d, want %d", got, 1_000_000*Wad)
	}
	if got := Tokens(MaxWholeTokens); got != Amount(MaxWholeTokens)*Wad {
		t.Errorf("Tokens(MaxWholeTokens) = %d, want %d", got, Amount(MaxWholeTokens)*Wad)
	}

	defer func() {
		if recover() == nil {
			t.Error("Tokens beyond MaxWholeTokens should panic")
		}
	}()
	Tokens(MaxWholeTokens + 1)
}

func TestAmountString(t *testing.T) {
	tests := []struct {
		name string
		a    Amount
		want string
	}{
		{"Whole", Tokens(49), "49"},
		{"Half", Wad / 2, "0.5"},
		{"Zero", 0, "0"},
		{"BaseUnit", 1, "0.000000001"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.String(); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTimeMath(t *testing.T) {
	if _, err := SubUint64(100, 101); !errors.Is(err, ErrUnderflow) {
		t.Errorf("expected ErrUnderflow, got %v", err)
	}
	got, err := SubUint64(550, 100)
	if err != nil {
		t.Fatal(err)
	}
	if got != 450 {
		t.Errorf("got %d, want 450", got)
	}

	if _, err := AddUint64(math.MaxUint64, 1); !errors.Is(err, ErrOverflow) {
		t.Errorf("expected ErrOverflow, got %v", err)
	}
}

func TestAddressIsZero(t *testing.T) {
	if !ZeroAddress.IsZero() {
		t.Error("ZeroAddress should be zero")
	}
	if Address("0xabc").IsZero() {
		t.Error("non-empty address should not be zero")
	}
}
