// Package types provides common types used across Vault.
package types

import (
	"errors"
	"fmt"
	"math/bits"
	"strings"
)

// Amount represents a token quantity in base units (wad-scaled: 10^9 base
// units per whole token). All arithmetic is integer-only and overflow-checked —
// no floating point, no silent wrapping.
type Amount uint64

// Wad is the base-unit scale: one whole token. The 10^9 scale keeps nine
// decimal places of precision while leaving uint64 headroom for
// MaxWholeTokens whole tokens; an 18-decimal scale would cap the
// representable supply at 18 whole tokens.
const Wad Amount = 1_000_000_000

// MaxWholeTokens is the largest n for which Tokens(n) does not overflow.
const MaxWholeTokens uint64 = ^uint64(0) / uint64(Wad)

// Arithmetic failure sentinels. Re-exported from the root package so callers
// can match them without importing types directly.
var (
	ErrOverflow       = errors.New("vault: amount overflow")
	ErrUnderflow      = errors.New("vault: amount underflow")
	ErrDivisionByZero = errors.New("vault: division by zero")
)

// Tokens returns n whole tokens as a wad-scaled Amount.
// It panics on overflow (programming error in a constant context).
func Tokens(n uint64) Amount {
	a, err := Amount(n).Mul(Wad)
	if err != nil {
		panic(fmt.Sprintf("types: %d tokens overflows", n))
	}
	return a
}

// Add returns a+b, failing with ErrOverflow when the sum wraps.
func (a Amount) Add(b Amount) (Amount, error) {
	sum, carry := bits.Add64(uint64(a), uint64(b), 0)
	if carry != 0 {
		return 0, ErrOverflow
	}
	return Amount(sum), nil
}

// Sub returns a-b, failing with ErrUnderflow when b exceeds a.
func (a Amount) Sub(b Amount) (Amount, error) {
	if b > a {
		return 0, ErrUnderflow
	}
	return a - b, nil
}

// Mul returns a*b, failing with ErrOverflow when the product exceeds 64 bits.
func (a Amount) Mul(b Amount) (Amount, error) {
	hi, lo := bits.Mul64(uint64(a), uint64(b))
	if hi != 0 {
		return 0, ErrOverflow
	}
	return Amount(lo), nil
}

// Div returns a/b using truncating integer division.
func (a Amount) Div(b Amount) (Amount, error) {
	if b == 0 {
		return 0, ErrDivisionByZero
	}
	return a / b, nil
}

// MulDiv returns a*b/den with a full 128-bit intermediate product, so the
// multiplication cannot overflow before the division. Fails with
// ErrDivisionByZero when den is zero and ErrOverflow when the quotient itself
// does not fit in 64 bits.
func MulDiv(a, b, den Amount) (Amount, error) {
	if den == 0 {
		return 0, ErrDivisionByZero
	}
	hi, lo := bits.Mul64(uint64(a), uint64(b))
	if hi >= uint64(den) {
		return 0, ErrOverflow
	}
	quo, _ := bits.Div64(hi, lo, uint64(den))
	return Amount(quo), nil
}

// IsZero reports whether the amount is zero.
func (a Amount) IsZero() bool { return a == 0 }

// Min returns the smaller of two amounts.
func (a Amount) Min(b Amount) Amount {
	if a < b {
		return a
	}
	return b
}

// Max returns the larger of two amounts.
func (a Amount) Max(b Amount) Amount {
	if a > b {
		return a
	}
	return b
}

// String renders the amount in whole tokens with trailing zeros trimmed.
// Examples: Tokens(49) -> "49", Wad/2 -> "0.5".
func (a Amount) String() string {
	whole := a / Wad
	frac := a % Wad
	if frac == 0 {
		return fmt.Sprintf("%d", whole)
	}
	s := fmt.Sprintf("%d.%09d", whole, frac)
	return strings.TrimRight(s, "0")
}

// AddUint64 returns a+b for unsigned time values, failing with ErrOverflow
// when the sum wraps. Timestamps and durations share Amount's checked math.
func AddUint64(a, b uint64) (uint64, error) {
	sum, carry := bits.Add64(a, b, 0)
	if carry != 0 {
		return 0, ErrOverflow
	}
	return sum, nil
}

// SubUint64 returns a-b for unsigned time values, failing with ErrUnderflow
// when b exceeds a.
func SubUint64(a, b uint64) (uint64, error) {
	if b > a {
		return 0, ErrUnderflow
	}
	return a - b, nil
}
