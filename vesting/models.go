// Package vesting holds the linear vesting schedule model and its release
// arithmetic. All computation is pure: the engine owns persistence, transfer
// calls, and validation of caller identity.
package vesting

import (
	"github.com/xraph/vault/id"
	"github.com/xraph/vault/types"
)

// Schedule is the per-beneficiary vesting ledger entry. Created once, mutated
// on each release, never deleted. At most one schedule exists per beneficiary.
type Schedule struct {
	types.Entity
	ID          id.ScheduleID `json:"id"`
	Beneficiary types.Address `json:"beneficiary"`

	// Total is the full amount the schedule will ever release. Fixed at
	// creation, always > 0.
	Total types.Amount `json:"total"`

	// Start is the schedule origin in unix seconds.
	Start uint64 `json:"start"`

	// Cliff is the initial period (seconds past Start) during which nothing
	// vests. Invariant: Cliff <= Duration.
	Cliff uint64 `json:"cliff"`

	// Duration is the vesting period in seconds over which Total unlocks
	// linearly once the cliff has passed.
	Duration uint64 `json:"duration"`

	// LastRelease is the timestamp of the most recent release. Zero means the
	// schedule has never released; the value is monotonically non-decreasing.
	LastRelease uint64 `json:"last_release"`

	// Released is the cumulative amount ever released. Invariant:
	// Released <= Total.
	Released types.Amount `json:"released"`
}

// CliffEnd returns Start+Cliff, failing with ErrOverflow when the sum wraps.
func (s *Schedule) CliffEnd() (uint64, error) {
	return types.AddUint64(s.Start, s.Cliff)
}

// ReleasableAt computes the amount releasable at the given instant.
//
// The formula deliberately prorates the *currently unvested* remainder over
// the time since the last release, rather than subtracting the amount already
// released. Per-call granularity therefore depends on how often release is
// called; callers must not assume the per-call amounts sum to Total. Past
// the end of the vesting window the vested amount exceeds Total and the
// subtraction surfaces ErrUnderflow instead of wrapping — a beneficiary who
// first calls release after the window end can release nothing.
func (s *Schedule) ReleasableAt(now uint64) (types.Amount, error) {
	cliffEnd, err := s.CliffEnd()
	if err != nil {
		return 0, err
	}
	if now < cliffEnd {
		return 0, nil
	}

	elapsed := now - cliffEnd
	vested, err := types.MulDiv(s.Total, types.Amount(elapsed), types.Amount(s.Duration))
	if err != nil {
		return 0, err
	}

	unreleased, err := s.Total.Sub(vested)
	if err != nil {
		return 0, err
	}

	effectiveLast := cliffEnd
	if s.LastRelease > effectiveLast {
		effectiveLast = s.LastRelease
	}
	since, err := types.SubUint64(now, effectiveLast)
	if err != nil {
		return 0, err
	}

	return types.MulDiv(unreleased, types.Amount(since), types.Amount(s.Duration))
}

// MarkReleased records a successful release of amount at the given instant.
// LastRelease never moves backwards.
func (s *Schedule) MarkReleased(amount types.Amount, now uint64) error {
	released, err := s.Released.Add(amount)
	if err != nil {
		return err
	}
	s.Released = released
	if now > s.LastRelease {
		s.LastRelease = now
	}
	s.Touch()
	return nil
}
