// Package observability provides a metrics extension for Vault that records
// lifecycle event counts via an injected MetricFactory.
package observability

import (
	"context"

	"github.com/xraph/vault/plugin"
	"github.com/xraph/vault/sale"
	"github.com/xraph/vault/timelock"
	"github.com/xraph/vault/types"
	"github.com/xraph/vault/vesting"
)

// Ensure MetricsExtension implements required interfaces.
var (
	_ plugin.Plugin            = (*MetricsExtension)(nil)
	_ plugin.OnInit            = (*MetricsExtension)(nil)
	_ plugin.OnScheduleCreated = (*MetricsExtension)(nil)
	_ plugin.OnReleased        = (*MetricsExtension)(nil)
	_ plugin.OnLocked          = (*MetricsExtension)(nil)
	_ plugin.OnLockWithdrawn   = (*MetricsExtension)(nil)
	_ plugin.OnSaleInitialized = (*MetricsExtension)(nil)
	_ plugin.OnPurchase        = (*MetricsExtension)(nil)
	_ plugin.OnSaleClosed      = (*MetricsExtension)(nil)
)

// Counter interface for metric counters.
type Counter interface {
	Inc()
	Add(float64)
}

// Histogram interface for metric histograms.
type Histogram interface {
	Observe(float64)
}

// MetricFactory creates metrics.
type MetricFactory interface {
	Counter(name string) Counter
	Histogram(name string) Histogram
}

// MetricsExtension records system-wide lifecycle metrics.
// Register it as a Vault plugin to automatically track release metrics.
type MetricsExtension struct {
	factory MetricFactory

	// Vesting metrics
	ScheduleCreated Counter
	ReleaseCount    Counter
	ReleaseAmount   Histogram

	// Timelock metrics
	LockCreated    Counter
	LockWithdrawn  Counter
	LockedAmount   Histogram
	WithdrawAmount Histogram

	// Sale metrics
	SaleInitialized Counter
	PurchaseCount   Counter
	PurchaseAmount  Histogram
	PurchasePayment Histogram
	SaleClosed      Counter

	// Error metrics
	StoreErrors  Counter
	PluginErrors Counter
}

// NewMetricsExtension creates a MetricsExtension with the provided MetricFactory.
// Use app.Metrics() in forge extensions.
func NewMetricsExtension(factory MetricFactory) *MetricsExtension {
	return &MetricsExtension{
		factory: factory,

		// Vesting metrics
		ScheduleCreated: factory.Counter("vault.schedule.created"),
		ReleaseCount:    factory.Counter("vault.schedule.releases"),
		ReleaseAmount:   factory.Histogram("vault.schedule.release_amount"),

		// Timelock metrics
		LockCreated:    factory.Counter("vault.lock.created"),
		LockWithdrawn:  factory.Counter("vault.lock.withdrawn"),
		LockedAmount:   factory.Histogram("vault.lock.locked_amount"),
		WithdrawAmount: factory.Histogram("vault.lock.withdraw_amount"),

		// Sale metrics
		SaleInitialized: factory.Counter("vault.sale.initialized"),
		PurchaseCount:   factory.Counter("vault.sale.purchases"),
		PurchaseAmount:  factory.Histogram("vault.sale.purchase_amount"),
		PurchasePayment: factory.Histogram("vault.sale.purchase_payment"),
		SaleClosed:      factory.Counter("vault.sale.closed"),

		// Error metrics
		StoreErrors:  factory.Counter("vault.store.errors"),
		PluginErrors: factory.Counter("vault.plugin.errors"),
	}
}

// Name implements plugin.Plugin.
func (m *MetricsExtension) Name() string { return "observability-metrics" }

// OnInit implements plugin.OnInit.
func (m *MetricsExtension) OnInit(_ context.Context, _ interface{}) error {
	// No initialization needed
	return nil
}

// ──────────────────────────────────────────────────
// Vesting lifecycle hooks
// ──────────────────────────────────────────────────

// OnScheduleCreated implements plugin.OnScheduleCreated.
func (m *MetricsExtension) OnScheduleCreated(_ context.Context, _ *vesting.Schedule) error {
	m.ScheduleCreated.Inc()
	return nil
}

// OnReleased implements plugin.OnReleased.
func (m *MetricsExtension) OnReleased(_ context.Context, ev plugin.ReleaseEvent) error {
	m.ReleaseCount.Inc()
	m.ReleaseAmount.Observe(wholeTokens(ev.Amount))
	return nil
}

// ──────────────────────────────────────────────────
// Timelock lifecycle hooks
// ──────────────────────────────────────────────────

// OnLocked implements plugin.OnLocked.
func (m *MetricsExtension) OnLocked(_ context.Context, l *timelock.Lock) error {
	m.LockCreated.Inc()
	m.LockedAmount.Observe(wholeTokens(l.Amount))
	return nil
}

// OnLockWithdrawn implements plugin.OnLockWithdrawn.
func (m *MetricsExtension) OnLockWithdrawn(_ context.Context, ev plugin.WithdrawEvent) error {
	m.LockWithdrawn.Inc()
	m.WithdrawAmount.Observe(wholeTokens(ev.Amount))
	return nil
}

// ──────────────────────────────────────────────────
// Sale lifecycle hooks
// ──────────────────────────────────────────────────

// OnSaleInitialized implements plugin.OnSaleInitialized.
func (m *MetricsExtension) OnSaleInitialized(_ context.Context, _ *sale.Sale) error {
	m.SaleInitialized.Inc()
	return nil
}

// OnPurchase implements plugin.OnPurchase.
func (m *MetricsExtension) OnPurchase(_ context.Context, ev plugin.PurchaseEvent) error {
	m.PurchaseCount.Inc()
	m.PurchaseAmount.Observe(wholeTokens(ev.Amount))
	m.PurchasePayment.Observe(wholeTokens(ev.Payment))
	return nil
}

// OnSaleClosed implements plugin.OnSaleClosed.
func (m *MetricsExtension) OnSaleClosed(_ context.Context, _ plugin.SaleClosedEvent) error {
	m.SaleClosed.Inc()
	return nil
}

// wholeTokens converts a wad-scaled amount to a float token count for
// histogram observation. Precision loss is acceptable for metrics.
func wholeTokens(a types.Amount) float64 {
	return float64(a) / float64(types.Wad)
}
