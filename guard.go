package vault

import "sync/atomic"

// reentryGuard serializes reentrant entry into operations that hand control
// to the asset transfer collaborator and mutate shared counters. Acquisition
// fails instead of blocking: a nested call arriving from inside a transfer
// callback is a fault, not contention.
type reentryGuard struct {
	busy atomic.Bool
}

// acquire claims the guard and returns its release func. Fails with
// ErrReentrantCall when the guard is already held. The release func must run
// on every exit path, including early error returns.
func (g *reentryGuard) acquire() (func(), error) {
	if !g.busy.CompareAndSwap(false, true) {
		return nil, ErrReentrantCall
	}
	return func() { g.busy.Store(false) }, nil
}
