// Package clock provides the injectable time source used by all Vault ledgers.
//
// Two readings are exposed: Now, a wall-clock timestamp in unix seconds, and
// Height, an independent monotone counter (block height on chain-backed
// deployments, a logical tick otherwise). The sale ledger uses Height for its
// end-of-sale boundary; everything else uses Now. Injecting a Manual clock
// makes every ledger computation deterministic in tests.
package clock

import (
	"sync"
	"sync/atomic"
	"time"
)

// Clock is a monotone time source.
type Clock interface {
	// Now returns the current wall-clock time in unix seconds.
	Now() uint64
	// Height returns the current value of the monotone ordinal counter.
	Height() uint64
}

// System reads wall-clock time from the host. Height is sourced from an
// optional provider; with none configured it stays at zero.
type System struct {
	heightFn func() uint64
}

// NewSystem creates a System clock.
func NewSystem() *System { return &System{} }

// NewSystemWithHeight creates a System clock whose Height readings come from fn.
func NewSystemWithHeight(fn func() uint64) *System {
	return &System{heightFn: fn}
}

// Now implements Clock.
func (s *System) Now() uint64 {
	return uint64(time.Now().Unix())
}

// Height implements Clock.
func (s *System) Height() uint64 {
	if s.heightFn == nil {
		return 0
	}
	return s.heightFn()
}

// Manual is a deterministic clock for tests. Readings only change through
// explicit Set/Advance calls. Safe for concurrent use.
type Manual struct {
	mu     sync.Mutex
	now    uint64
	height atomic.Uint64
}

// NewManual creates a Manual clock starting at the given unix-seconds time.
func NewManual(now uint64) *Manual {
	m := &Manual{now: now}
	return m
}

// Now implements Clock.
func (m *Manual) Now() uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// Set moves the clock to the given absolute time.
func (m *Manual) Set(now uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = now
}

// Advance moves the clock forward by d seconds.
func (m *Manual) Advance(d uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now += d
}

// Height implements Clock.
func (m *Manual) Height() uint64 {
	return m.height.Load()
}

// SetHeight moves the ordinal counter to the given value.
func (m *Manual) SetHeight(h uint64) {
	m.height.Store(h)
}

// Tick increments the ordinal counter by one.
func (m *Manual) Tick() {
	m.height.Add(1)
}
