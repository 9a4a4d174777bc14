package vault

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/xraph/vault/clock"
	"github.com/xraph/vault/id"
	"github.com/xraph/vault/plugin"
	"github.com/xraph/vault/sale"
	"github.com/xraph/vault/store"
	"github.com/xraph/vault/timelock"
	"github.com/xraph/vault/token"
	"github.com/xraph/vault/types"
	"github.com/xraph/vault/vesting"
)

// Vault is the main release engine. It coordinates the vesting, timelock and
// sale ledgers against a persistence store and the token registry that moves
// actual asset balances.
type Vault struct {
	store   store.Store
	tokens  token.Registry
	clock   clock.Clock
	plugins *plugin.Registry
	logger  *slog.Logger

	// Identity
	owner types.Address // gates schedule creation and sale settlement
	self  types.Address // holder of deposited and sale inventory balances

	// Configuration
	vestingAsset types.Address
	policy       timelock.RemovalPolicy

	// Reentrancy guards for operations that mutate counters around an
	// outbound transfer.
	purchaseGuard reentryGuard
	withdrawGuard reentryGuard
}

// New creates a new Vault instance.
func New(s store.Store, tokens token.Registry, opts ...Option) *Vault {
	v := &Vault{
		store:   s,
		tokens:  tokens,
		clock:   clock.NewSystem(),
		plugins: plugin.NewRegistry(),
		logger:  slog.Default(),
		policy:  timelock.SoftDelete,
	}

	for _, opt := range opts {
		opt(v)
	}

	return v
}

// Option configures a Vault instance.
type Option func(*Vault)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(v *Vault) {
		v.logger = logger
		v.plugins.WithLogger(logger)
	}
}

// WithClock sets the time source. Defaults to the system clock.
func WithClock(c clock.Clock) Option {
	return func(v *Vault) {
		v.clock = c
	}
}

// WithPlugin registers a plugin.
func WithPlugin(p plugin.Plugin) Option {
	return func(v *Vault) {
		_ = v.plugins.Register(p) //nolint:errcheck // best-effort plugin registration during init
	}
}

// WithOwner sets the address allowed to create schedules and settle sales.
// When unset, those operations reject every caller.
func WithOwner(owner types.Address) Option {
	return func(v *Vault) {
		v.owner = owner
	}
}

// WithSelf sets the vault's own address, the holder of deposited lock
// balances and sale inventory in the token ledger.
func WithSelf(self types.Address) Option {
	return func(v *Vault) {
		v.self = self
	}
}

// WithVestingAsset sets the asset released by vesting schedules.
func WithVestingAsset(asset types.Address) Option {
	return func(v *Vault) {
		v.vestingAsset = asset
	}
}

// WithRemovalPolicy sets how withdrawn locks are removed from a holder's
// sequence. Defaults to SoftDelete.
func WithRemovalPolicy(p timelock.RemovalPolicy) Option {
	return func(v *Vault) {
		if p.Valid() {
			v.policy = p
		}
	}
}

// Start migrates the store and initializes plugins.
func (v *Vault) Start(ctx context.Context) error {
	if err := v.store.Migrate(ctx); err != nil {
		return err
	}

	v.plugins.EmitInit(ctx, v)

	v.logger.Info("vault started",
		"removal_policy", v.policy,
		"plugins", v.plugins.Count(),
	)

	return nil
}

// Stop shuts down the Vault.
func (v *Vault) Stop() error {
	ctx := context.Background()
	v.plugins.EmitShutdown(ctx)

	return v.store.Close()
}

// RemovalPolicy returns the configured lock removal policy.
func (v *Vault) RemovalPolicy() timelock.RemovalPolicy {
	return v.policy
}

// ──────────────────────────────────────────────────
// Vesting
// ──────────────────────────────────────────────────

// CreateSchedule registers the vesting schedule for beneficiary. Only the
// owner may call it, and a beneficiary can hold at most one schedule. No
// tokens move here; the schedule only promises future releases.
func (v *Vault) CreateSchedule(ctx context.Context, caller, beneficiary types.Address, total types.Amount, start, cliff, duration uint64) (*vesting.Schedule, error) {
	if caller.IsZero() || caller != v.owner {
		return nil, ErrUnauthorized
	}
	if beneficiary.IsZero() {
		return nil, ErrInvalidBeneficiary
	}
	if total.IsZero() {
		return nil, ErrInvalidAmount
	}
	if duration == 0 || cliff > duration {
		return nil, ErrInvalidDuration
	}
	if _, err := types.AddUint64(start, duration); err != nil {
		return nil, fmt.Errorf("%w: start+duration overflows", ErrInvalidDuration)
	}

	s := &vesting.Schedule{
		Entity:      types.NewEntity(),
		ID:          id.NewScheduleID(),
		Beneficiary: beneficiary,
		Total:       total,
		Start:       start,
		Cliff:       cliff,
		Duration:    duration,
	}

	if err := v.store.CreateSchedule(ctx, s); err != nil {
		return nil, err
	}

	v.plugins.EmitScheduleCreated(ctx, s)

	v.logger.Info("schedule created",
		"schedule_id", s.ID,
		"beneficiary", beneficiary,
		"total", total,
		"duration", duration,
	)

	return s, nil
}

// Schedule retrieves the vesting schedule for beneficiary.
func (v *Vault) Schedule(ctx context.Context, beneficiary types.Address) (*vesting.Schedule, error) {
	return v.store.GetSchedule(ctx, beneficiary)
}

// Releasable reports how much beneficiary could release right now.
func (v *Vault) Releasable(ctx context.Context, beneficiary types.Address) (types.Amount, error) {
	s, err := v.store.GetSchedule(ctx, beneficiary)
	if err != nil {
		return 0, err
	}
	return s.ReleasableAt(v.clock.Now())
}

// Release pays out the currently releasable tranche to beneficiary. The
// schedule counters are persisted before the token transfer so a reentrant
// call observes the post-release state; if the transfer then fails the prior
// counters are written back.
func (v *Vault) Release(ctx context.Context, beneficiary types.Address) (types.Amount, error) {
	s, err := v.store.GetSchedule(ctx, beneficiary)
	if err != nil {
		return 0, err
	}

	now := v.clock.Now()

	amount, err := s.ReleasableAt(now)
	if err != nil {
		return 0, err
	}
	if amount.IsZero() {
		return 0, ErrNothingToRelease
	}

	tok, err := v.tokens.Token(v.vestingAsset)
	if err != nil {
		return 0, err
	}

	prev := *s
	if err := s.MarkReleased(amount, now); err != nil {
		return 0, err
	}
	if err := v.store.UpdateSchedule(ctx, s); err != nil {
		return 0, err
	}

	if err := tok.Transfer(ctx, beneficiary, amount); err != nil {
		if rbErr := v.store.UpdateSchedule(ctx, &prev); rbErr != nil {
			v.logger.Error("release rollback failed",
				"beneficiary", beneficiary,
				"error", rbErr,
			)
		}
		return 0, fmt.Errorf("vault: release transfer: %w", err)
	}

	v.plugins.EmitReleased(ctx, plugin.ReleaseEvent{
		Beneficiary: beneficiary,
		Amount:      amount,
		Released:    s.Released,
		At:          now,
	})

	v.logger.Info("tranche released",
		"beneficiary", beneficiary,
		"amount", amount,
		"released_total", s.Released,
	)

	return amount, nil
}

// ──────────────────────────────────────────────────
// Timelocks
// ──────────────────────────────────────────────────

// Lock deposits amount of asset from holder and appends a lock that opens
// after duration. The deposit runs first; if it fails, no lock is recorded.
func (v *Vault) Lock(ctx context.Context, holder, asset types.Address, amount types.Amount, duration uint64) (*timelock.Lock, error) {
	if holder.IsZero() {
		return nil, ErrInvalidHolder
	}
	if asset.IsZero() {
		return nil, ErrInvalidAsset
	}
	if amount.IsZero() {
		return nil, ErrInvalidAmount
	}
	if duration == 0 {
		return nil, ErrInvalidDuration
	}

	now := v.clock.Now()
	unlock, err := types.AddUint64(now, duration)
	if err != nil {
		return nil, fmt.Errorf("%w: unlock time overflows", ErrInvalidDuration)
	}

	tok, err := v.tokens.Token(asset)
	if err != nil {
		return nil, err
	}
	if err := tok.TransferFrom(ctx, holder, v.self, amount); err != nil {
		return nil, fmt.Errorf("vault: lock deposit: %w", err)
	}

	l := &timelock.Lock{
		Entity:     types.NewEntity(),
		ID:         id.NewLockID(),
		Holder:     holder,
		Asset:      asset,
		Amount:     amount,
		UnlockTime: unlock,
	}

	if err := v.store.AppendLock(ctx, l); err != nil {
		return nil, err
	}

	v.plugins.EmitLocked(ctx, l)

	v.logger.Info("lock created",
		"lock_id", l.ID,
		"holder", holder,
		"asset", asset,
		"amount", amount,
		"unlock_time", unlock,
	)

	return l, nil
}

// Withdraw pays out the lock at index in holder's sequence for asset, once
// its unlock time has passed. The sequence is persisted with the lock removed
// before the payout transfer runs.
func (v *Vault) Withdraw(ctx context.Context, holder, asset types.Address, index int) (types.Amount, error) {
	release, err := v.withdrawGuard.acquire()
	if err != nil {
		return 0, err
	}
	defer release()

	if holder.IsZero() {
		return 0, ErrInvalidHolder
	}
	if asset.IsZero() {
		return 0, ErrInvalidAsset
	}

	locks, err := v.store.GetLocks(ctx, holder, asset)
	if err != nil {
		return 0, err
	}
	if index < 0 || index >= len(locks) {
		return 0, ErrIndexOutOfRange
	}

	l := locks[index]
	if l.Withdrawn() {
		return 0, ErrAlreadyWithdrawn
	}

	now := v.clock.Now()
	if now < l.UnlockTime {
		return 0, ErrStillLocked
	}

	amount := l.Amount

	tok, err := v.tokens.Token(asset)
	if err != nil {
		return 0, err
	}

	prev := make([]timelock.Lock, len(locks))
	copy(prev, locks)

	updated := timelock.Remove(locks, index, v.policy)
	if err := v.store.PutLocks(ctx, holder, asset, updated); err != nil {
		return 0, err
	}

	if err := tok.Transfer(ctx, holder, amount); err != nil {
		if rbErr := v.store.PutLocks(ctx, holder, asset, prev); rbErr != nil {
			v.logger.Error("withdraw rollback failed",
				"holder", holder,
				"asset", asset,
				"error", rbErr,
			)
		}
		return 0, fmt.Errorf("vault: withdraw transfer: %w", err)
	}

	v.plugins.EmitLockWithdrawn(ctx, plugin.WithdrawEvent{
		Holder: holder,
		Asset:  asset,
		Index:  index,
		Amount: amount,
		At:     now,
	})

	v.logger.Info("lock withdrawn",
		"lock_id", l.ID,
		"holder", holder,
		"asset", asset,
		"amount", amount,
	)

	return amount, nil
}

// Locks returns every lock held for holder across all of its assets, in
// asset registration order.
func (v *Vault) Locks(ctx context.Context, holder types.Address) ([]timelock.Lock, error) {
	assets, err := v.store.ListAssets(ctx, holder)
	if err != nil {
		return nil, err
	}

	var all []timelock.Lock
	for _, asset := range assets {
		locks, err := v.store.GetLocks(ctx, holder, asset)
		if err != nil {
			return nil, err
		}
		all = append(all, locks...)
	}
	return all, nil
}

// AssetLocks returns holder's lock sequence for a single asset.
func (v *Vault) AssetLocks(ctx context.Context, holder, asset types.Address) ([]timelock.Lock, error) {
	return v.store.GetLocks(ctx, holder, asset)
}

// RemainingTime reports the seconds until the lock at index opens, zero if
// it is already open.
func (v *Vault) RemainingTime(ctx context.Context, holder, asset types.Address, index int) (uint64, error) {
	locks, err := v.store.GetLocks(ctx, holder, asset)
	if err != nil {
		return 0, err
	}
	if index < 0 || index >= len(locks) {
		return 0, ErrIndexOutOfRange
	}
	return locks[index].Remaining(v.clock.Now()), nil
}

// ──────────────────────────────────────────────────
// Tiered Sale
// ──────────────────────────────────────────────────

// InitSale registers the sale. Only one sale exists per vault.
func (v *Vault) InitSale(ctx context.Context, cfg sale.Config) (*sale.Sale, error) {
	if cfg.Asset.IsZero() || cfg.PaymentAsset.IsZero() {
		return nil, ErrInvalidAsset
	}
	if cfg.Capacity.IsZero() {
		return nil, ErrInvalidAmount
	}
	for _, price := range cfg.Tiers {
		if price.IsZero() {
			return nil, ErrInvalidAmount
		}
	}
	if cfg.EndTime == 0 && cfg.EndHeight == 0 {
		return nil, ErrInvalidDuration
	}

	s := sale.New(cfg)

	if err := v.store.CreateSale(ctx, s); err != nil {
		return nil, err
	}

	v.plugins.EmitSaleInitialized(ctx, s)

	v.logger.Info("sale initialized",
		"sale_id", s.ID,
		"asset", s.Asset,
		"capacity", s.Capacity,
		"max_per_tx", s.MaxPerTx,
	)

	return s, nil
}

// Sale retrieves the sale.
func (v *Vault) Sale(ctx context.Context) (*sale.Sale, error) {
	return v.store.GetSale(ctx)
}

// CurrentPrice returns the active tier price per whole unit sold.
func (v *Vault) CurrentPrice(ctx context.Context) (types.Amount, error) {
	s, err := v.store.GetSale(ctx)
	if err != nil {
		return 0, err
	}

	price, err := s.PriceAt(v.clock.Now(), v.clock.Height())
	if err != nil {
		return 0, v.saleErr(err)
	}
	return price, nil
}

// Quote reports how many units a payment would buy at the current tier
// price. It is a view: the sale may move to another tier before a purchase
// lands.
func (v *Vault) Quote(ctx context.Context, payment types.Amount) (types.Amount, error) {
	s, err := v.store.GetSale(ctx)
	if err != nil {
		return 0, err
	}

	units, err := s.Quote(payment, v.clock.Now(), v.clock.Height())
	if err != nil {
		return 0, v.saleErr(err)
	}
	return units, nil
}

// Purchase sells amount units to buyer at the current tier price. The
// payment must match the required total exactly. Payment is collected before
// counters move; inventory is delivered after counters are persisted.
func (v *Vault) Purchase(ctx context.Context, buyer types.Address, amount, payment types.Amount) error {
	release, err := v.purchaseGuard.acquire()
	if err != nil {
		return err
	}
	defer release()

	if buyer.IsZero() {
		return ErrInvalidBeneficiary
	}
	if amount.IsZero() {
		return ErrInvalidAmount
	}

	s, err := v.store.GetSale(ctx)
	if err != nil {
		return err
	}

	now := v.clock.Now()
	height := v.clock.Height()

	if s.ClosedAt(now, height) {
		return ErrSaleClosed
	}

	newSold, err := s.Sold.Add(amount)
	if err != nil {
		return err
	}
	if newSold > s.Capacity {
		return ErrCapacityExceeded
	}

	tok, err := v.tokens.Token(s.Asset)
	if err != nil {
		return err
	}
	inventory, err := tok.BalanceOf(ctx, v.self)
	if err != nil {
		return err
	}
	if inventory < amount {
		return ErrInsufficientInventory
	}

	if amount > s.MaxPerTx {
		return ErrPerTxCapExceeded
	}

	required, err := s.RequiredPayment(amount, now, height)
	if err != nil {
		return v.saleErr(err)
	}
	if payment != required {
		return fmt.Errorf("%w: need %s, got %s", ErrPaymentMismatch, required, payment)
	}

	payTok, err := v.tokens.Token(s.PaymentAsset)
	if err != nil {
		return err
	}
	if err := payTok.TransferFrom(ctx, buyer, v.self, required); err != nil {
		return fmt.Errorf("vault: purchase payment: %w", err)
	}

	prev := *s
	if err := s.Record(amount, required); err != nil {
		return err
	}
	if err := v.store.UpdateSale(ctx, s); err != nil {
		return err
	}

	if err := tok.Transfer(ctx, buyer, amount); err != nil {
		if rbErr := v.store.UpdateSale(ctx, &prev); rbErr != nil {
			v.logger.Error("purchase rollback failed", "buyer", buyer, "error", rbErr)
		}
		if rfErr := payTok.Transfer(ctx, buyer, required); rfErr != nil {
			v.logger.Error("purchase refund failed", "buyer", buyer, "error", rfErr)
		}
		return fmt.Errorf("vault: purchase delivery: %w", err)
	}

	v.plugins.EmitPurchase(ctx, plugin.PurchaseEvent{
		Buyer:   buyer,
		Amount:  amount,
		Payment: required,
		At:      now,
	})

	v.logger.Info("purchase recorded",
		"buyer", buyer,
		"amount", amount,
		"payment", required,
		"sold", s.Sold,
	)

	return nil
}

// CloseSale settles a finished sale: the unsold remainder of the capacity is
// burned and the collected payment is swept to the owner. Both amounts derive
// from the sale counters, never from raw vault balances — the vault address
// also custodies timelock deposits, which settlement must not touch. It fails
// while the sale can still accept purchases; once settled, further calls are
// no-ops.
func (v *Vault) CloseSale(ctx context.Context, caller types.Address) error {
	if caller.IsZero() || caller != v.owner {
		return ErrUnauthorized
	}

	s, err := v.store.GetSale(ctx)
	if err != nil {
		return err
	}
	if s.Closed {
		// Already settled.
		return nil
	}

	now := v.clock.Now()
	if !s.ClosedAt(now, v.clock.Height()) {
		return ErrSaleOngoing
	}

	unsold, err := s.Capacity.Sub(s.Sold)
	if err != nil {
		return err
	}
	proceeds := s.Collected

	tok, err := v.tokens.Token(s.Asset)
	if err != nil {
		return err
	}
	payTok, err := v.tokens.Token(s.PaymentAsset)
	if err != nil {
		return err
	}

	// Mark the sale settled before moving value, so a reentrant close or a
	// straggling purchase observes the terminal state.
	prev := *s
	s.Closed = true
	s.Touch()
	if err := v.store.UpdateSale(ctx, s); err != nil {
		return err
	}

	if !unsold.IsZero() {
		if err := tok.Burn(ctx, unsold); err != nil {
			if rbErr := v.store.UpdateSale(ctx, &prev); rbErr != nil {
				v.logger.Error("close rollback failed", "sale_id", s.ID, "error", rbErr)
			}
			return fmt.Errorf("vault: close burn: %w", err)
		}
	}

	if !proceeds.IsZero() {
		if err := payTok.Transfer(ctx, v.owner, proceeds); err != nil {
			// Burned inventory cannot be restored, so the sale stays closed;
			// the proceeds remain at the vault address.
			v.logger.Error("close sweep failed",
				"sale_id", s.ID,
				"proceeds", proceeds,
				"error", err,
			)
			return fmt.Errorf("vault: close sweep: %w", err)
		}
	}

	v.plugins.EmitSaleClosed(ctx, plugin.SaleClosedEvent{
		Burned: unsold,
		Swept:  proceeds,
		At:     now,
	})

	v.logger.Info("sale closed",
		"sale_id", s.ID,
		"sold", s.Sold,
		"burned", unsold,
		"swept", proceeds,
	)

	return nil
}

// saleErr maps model-level sale errors to the engine's sentinels.
func (v *Vault) saleErr(err error) error {
	if errors.Is(err, sale.ErrClosed) {
		return ErrSaleClosed
	}
	return err
}
