// Package sale holds the tiered-price capacity sale model: a singleton
// aggregate of running counters against a fixed capacity and a monotone
// price curve indexed by percent sold.
package sale

import (
	"errors"

	"github.com/xraph/vault/id"
	"github.com/xraph/vault/types"
)

// TierCount is the number of price tiers. Tier i applies from i*25 percent
// sold (inclusive) to the next threshold (exclusive).
const TierCount = 4

// ErrClosed is returned by pricing reads once the sale boundary has been
// reached or capacity is exhausted.
var ErrClosed = errors.New("sale: closed")

// Sale is the singleton sale ledger entry. Created at initialization, mutated
// on every purchase, read-only after the terminal withdraw.
type Sale struct {
	types.Entity
	ID id.SaleID `json:"id"`

	// Asset is the token being sold; PaymentAsset is the token purchases are
	// paid in and collected value is denominated in.
	Asset        types.Address `json:"asset"`
	PaymentAsset types.Address `json:"payment_asset"`

	// Capacity is the maximum sellable quantity, fixed at initialization.
	Capacity types.Amount `json:"capacity"`

	// Sold and Collected are the running counters. Invariant:
	// Sold <= Capacity.
	Sold      types.Amount `json:"sold"`
	Collected types.Amount `json:"collected"`

	// Tiers holds the four unit prices (payment units per whole sold token,
	// i.e. per Wad base units) applied by ascending percent-sold thresholds
	// {0, 25, 50, 75}.
	Tiers [TierCount]types.Amount `json:"tiers"`

	// MaxPerTx is the per-transaction purchase cap, derived at construction
	// as Capacity/4/100.
	MaxPerTx types.Amount `json:"max_per_tx"`

	// EndTime (unix seconds) and EndHeight (monotone ordinal) bound the sale;
	// a zero value disables that boundary. The sale also closes when Sold
	// reaches Capacity.
	EndTime   uint64 `json:"end_time"`
	EndHeight uint64 `json:"end_height"`

	// Closed is set by the terminal withdraw. Once true the sale never
	// reopens.
	Closed bool `json:"closed"`
}

// Config carries the fixed parameters of a new sale.
type Config struct {
	Asset        types.Address
	PaymentAsset types.Address
	Capacity     types.Amount
	Tiers        [TierCount]types.Amount
	EndTime      uint64
	EndHeight    uint64
}

// New constructs a Sale from its fixed parameters, deriving the
// per-transaction cap.
func New(cfg Config) *Sale {
	return &Sale{
		Entity:       types.NewEntity(),
		ID:           id.NewSaleID(),
		Asset:        cfg.Asset,
		PaymentAsset: cfg.PaymentAsset,
		Capacity:     cfg.Capacity,
		Tiers:        cfg.Tiers,
		MaxPerTx:     cfg.Capacity / 4 / 100,
		EndTime:      cfg.EndTime,
		EndHeight:    cfg.EndHeight,
	}
}

// ClosedAt reports whether the sale has ended at the given instant: the time
// or height boundary has been reached, capacity is exhausted, or the terminal
// withdraw has run.
func (s *Sale) ClosedAt(now, height uint64) bool {
	if s.Closed {
		return true
	}
	if s.EndTime > 0 && now >= s.EndTime {
		return true
	}
	if s.EndHeight > 0 && height >= s.EndHeight {
		return true
	}
	return s.Sold == s.Capacity
}

// PercentSold returns Sold*100/Capacity using truncating division.
func (s *Sale) PercentSold() (types.Amount, error) {
	return types.MulDiv(s.Sold, 100, s.Capacity)
}

// PriceAt returns the unit price for the current percent-sold bracket.
// Boundaries are half-open on the low end, checked in ascending order —
// first match wins.
func (s *Sale) PriceAt(now, height uint64) (types.Amount, error) {
	if s.ClosedAt(now, height) {
		return 0, ErrClosed
	}

	pct, err := s.PercentSold()
	if err != nil {
		return 0, err
	}

	switch {
	case pct < 25:
		return s.Tiers[0], nil
	case pct < 50:
		return s.Tiers[1], nil
	case pct < 75:
		return s.Tiers[2], nil
	default:
		return s.Tiers[3], nil
	}
}

// Quote returns how many sold units the payment buys at the current price:
// payment * Wad / price.
func (s *Sale) Quote(payment types.Amount, now, height uint64) (types.Amount, error) {
	price, err := s.PriceAt(now, height)
	if err != nil {
		return 0, err
	}
	return types.MulDiv(payment, types.Wad, price)
}

// RequiredPayment returns the exact payment for the requested quantity at the
// current price: amount * price / Wad. Purchases must match this value
// exactly.
func (s *Sale) RequiredPayment(amount types.Amount, now, height uint64) (types.Amount, error) {
	price, err := s.PriceAt(now, height)
	if err != nil {
		return 0, err
	}
	return types.MulDiv(amount, price, types.Wad)
}

// Record applies a successful purchase to the running counters.
func (s *Sale) Record(amount, payment types.Amount) error {
	sold, err := s.Sold.Add(amount)
	if err != nil {
		return err
	}
	collected, err := s.Collected.Add(payment)
	if err != nil {
		return err
	}
	s.Sold = sold
	s.Collected = collected
	s.Touch()
	return nil
}
