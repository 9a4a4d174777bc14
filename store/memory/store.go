package memory

import (
	"context"
	"sync"

	vault "github.com/xraph/vault"
	"github.com/xraph/vault/sale"
	"github.com/xraph/vault/timelock"
	"github.com/xraph/vault/types"
	"github.com/xraph/vault/vesting"
)

type Store struct {
	mu sync.RWMutex

	// Schedule storage, keyed by beneficiary
	schedules map[types.Address]*vesting.Schedule

	// Lock storage: (holder, asset) -> ordered sequence, plus the per-holder
	// asset index in first-seen order
	locks      map[types.Address]map[types.Address][]timelock.Lock
	assetIndex map[types.Address][]types.Address

	// Sale singleton
	sale *sale.Sale
}

func New() *Store {
	return &Store{
		schedules:  make(map[types.Address]*vesting.Schedule),
		locks:      make(map[types.Address]map[types.Address][]timelock.Lock),
		assetIndex: make(map[types.Address][]types.Address),
	}
}

// Schedule Store implementation

func (s *Store) CreateSchedule(_ context.Context, sched *vesting.Schedule) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.schedules[sched.Beneficiary]; exists {
		return vault.ErrDuplicateSchedule
	}
	cp := *sched
	s.schedules[sched.Beneficiary] = &cp
	return nil
}

func (s *Store) GetSchedule(_ context.Context, beneficiary types.Address) (*vesting.Schedule, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if sched, ok := s.schedules[beneficiary]; ok {
		cp := *sched
		return &cp, nil
	}
	return nil, vault.ErrNoSchedule
}

func (s *Store) UpdateSchedule(_ context.Context, sched *vesting.Schedule) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.schedules[sched.Beneficiary]; !exists {
		return vault.ErrNoSchedule
	}
	cp := *sched
	s.schedules[sched.Beneficiary] = &cp
	return nil
}

// Lock Store implementation

func (s *Store) AppendLock(_ context.Context, l *timelock.Lock) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	holderLocks, ok := s.locks[l.Holder]
	if !ok {
		holderLocks = make(map[types.Address][]timelock.Lock)
		s.locks[l.Holder] = holderLocks
	}
	if _, seen := holderLocks[l.Asset]; !seen {
		s.assetIndex[l.Holder] = append(s.assetIndex[l.Holder], l.Asset)
	}
	holderLocks[l.Asset] = append(holderLocks[l.Asset], *l)
	return nil
}

func (s *Store) GetLocks(_ context.Context, holder, asset types.Address) ([]timelock.Lock, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seq := s.locks[holder][asset]
	out := make([]timelock.Lock, len(seq))
	copy(out, seq)
	return out, nil
}

func (s *Store) PutLocks(_ context.Context, holder, asset types.Address, locks []timelock.Lock) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(locks) == 0 {
		delete(s.locks[holder], asset)
		s.assetIndex[holder] = removeAsset(s.assetIndex[holder], asset)
		if len(s.assetIndex[holder]) == 0 {
			delete(s.assetIndex, holder)
			delete(s.locks, holder)
		}
		return nil
	}

	holderLocks, ok := s.locks[holder]
	if !ok {
		holderLocks = make(map[types.Address][]timelock.Lock)
		s.locks[holder] = holderLocks
	}
	if _, seen := holderLocks[asset]; !seen {
		s.assetIndex[holder] = append(s.assetIndex[holder], asset)
	}
	cp := make([]timelock.Lock, len(locks))
	copy(cp, locks)
	holderLocks[asset] = cp
	return nil
}

func (s *Store) ListAssets(_ context.Context, holder types.Address) ([]types.Address, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx := s.assetIndex[holder]
	out := make([]types.Address, len(idx))
	copy(out, idx)
	return out, nil
}

// Sale Store implementation

func (s *Store) CreateSale(_ context.Context, sl *sale.Sale) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.sale != nil {
		return vault.ErrDuplicateSale
	}
	cp := *sl
	s.sale = &cp
	return nil
}

func (s *Store) GetSale(_ context.Context) (*sale.Sale, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.sale == nil {
		return nil, vault.ErrNoSale
	}
	cp := *s.sale
	return &cp, nil
}

func (s *Store) UpdateSale(_ context.Context, sl *sale.Sale) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.sale == nil {
		return vault.ErrNoSale
	}
	cp := *sl
	s.sale = &cp
	return nil
}

// Core methods

func (s *Store) Migrate(_ context.Context) error { return nil }

func (s *Store) Ping(_ context.Context) error { return nil }

func (s *Store) Close() error { return nil }

func removeAsset(assets []types.Address, asset types.Address) []types.Address {
	for i, a := range assets {
		if a == asset {
			return append(assets[:i], assets[i+1:]...)
		}
	}
	return assets
}
