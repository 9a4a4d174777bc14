package plugin

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/xraph/vault/sale"
	"github.com/xraph/vault/timelock"
	"github.com/xraph/vault/vesting"
)

// Registry manages all registered plugins and provides efficient dispatch.
// Hook implementations are discovered once at registration time.
type Registry struct {
	mu      sync.RWMutex
	plugins []Plugin
	logger  *slog.Logger

	// Type-cached plugin lists for efficient dispatch
	onInit            []OnInit
	onShutdown        []OnShutdown
	onScheduleCreated []OnScheduleCreated
	onReleased        []OnReleased
	onLocked          []OnLocked
	onLockWithdrawn   []OnLockWithdrawn
	onSaleInitialized []OnSaleInitialized
	onPurchase        []OnPurchase
	onSaleClosed      []OnSaleClosed
}

// NewRegistry creates a new plugin registry.
func NewRegistry() *Registry {
	return &Registry{
		logger: slog.Default(),
	}
}

// WithLogger sets the logger for the registry.
func (r *Registry) WithLogger(logger *slog.Logger) *Registry {
	r.logger = logger
	return r
}

// Register adds a plugin to the registry and caches its hook interfaces.
func (r *Registry) Register(p Plugin) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Check for duplicate
	for _, existing := range r.plugins {
		if existing.Name() == p.Name() {
			return fmt.Errorf("plugin: duplicate registration: %s", p.Name())
		}
	}

	r.plugins = append(r.plugins, p)

	// Type-switch to cache interfaces
	if v, ok := p.(OnInit); ok {
		r.onInit = append(r.onInit, v)
	}
	if v, ok := p.(OnShutdown); ok {
		r.onShutdown = append(r.onShutdown, v)
	}
	if v, ok := p.(OnScheduleCreated); ok {
		r.onScheduleCreated = append(r.onScheduleCreated, v)
	}
	if v, ok := p.(OnReleased); ok {
		r.onReleased = append(r.onReleased, v)
	}
	if v, ok := p.(OnLocked); ok {
		r.onLocked = append(r.onLocked, v)
	}
	if v, ok := p.(OnLockWithdrawn); ok {
		r.onLockWithdrawn = append(r.onLockWithdrawn, v)
	}
	if v, ok := p.(OnSaleInitialized); ok {
		r.onSaleInitialized = append(r.onSaleInitialized, v)
	}
	if v, ok := p.(OnPurchase); ok {
		r.onPurchase = append(r.onPurchase, v)
	}
	if v, ok := p.(OnSaleClosed); ok {
		r.onSaleClosed = append(r.onSaleClosed, v)
	}

	r.logger.Info("plugin registered", "name", p.Name())

	return nil
}

// Get returns a plugin by name.
func (r *Registry) Get(name string) Plugin {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.plugins {
		if p.Name() == name {
			return p
		}
	}
	return nil
}

// List returns all registered plugins.
func (r *Registry) List() []Plugin {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]Plugin, len(r.plugins))
	copy(result, r.plugins)
	return result
}

// Count returns the number of registered plugins.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.plugins)
}

// ──────────────────────────────────────────────────
// Event emission methods
// ──────────────────────────────────────────────────

// EmitInit calls OnInit for all plugins that implement it.
func (r *Registry) EmitInit(ctx context.Context, v interface{}) {
	r.mu.RLock()
	plugins := r.onInit
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnInit(ctx, v)
		}); err != nil {
			r.logger.Warn("plugin OnInit failed", "plugin", p.Name(), "error", err)
		}
	}
}

// EmitShutdown calls OnShutdown for all plugins that implement it.
func (r *Registry) EmitShutdown(ctx context.Context) {
	r.mu.RLock()
	plugins := r.onShutdown
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnShutdown(ctx)
		}); err != nil {
			r.logger.Warn("plugin OnShutdown failed", "plugin", p.Name(), "error", err)
		}
	}
}

// EmitScheduleCreated emits a schedule created event.
func (r *Registry) EmitScheduleCreated(ctx context.Context, s *vesting.Schedule) {
	r.mu.RLock()
	plugins := r.onScheduleCreated
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnScheduleCreated(ctx, s)
		}); err != nil {
			r.logger.Warn("plugin OnScheduleCreated failed", "plugin", p.Name(), "error", err)
		}
	}
}

// EmitReleased emits a vesting release event.
func (r *Registry) EmitReleased(ctx context.Context, ev ReleaseEvent) {
	r.mu.RLock()
	plugins := r.onReleased
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnReleased(ctx, ev)
		}); err != nil {
			r.logger.Warn("plugin OnReleased failed", "plugin", p.Name(), "error", err)
		}
	}
}

// EmitLocked emits a lock created event.
func (r *Registry) EmitLocked(ctx context.Context, l *timelock.Lock) {
	r.mu.RLock()
	plugins := r.onLocked
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnLocked(ctx, l)
		}); err != nil {
			r.logger.Warn("plugin OnLocked failed", "plugin", p.Name(), "error", err)
		}
	}
}

// EmitLockWithdrawn emits a lock withdrawal event.
func (r *Registry) EmitLockWithdrawn(ctx context.Context, ev WithdrawEvent) {
	r.mu.RLock()
	plugins := r.onLockWithdrawn
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnLockWithdrawn(ctx, ev)
		}); err != nil {
			r.logger.Warn("plugin OnLockWithdrawn failed", "plugin", p.Name(), "error", err)
		}
	}
}

// EmitSaleInitialized emits a sale initialized event.
func (r *Registry) EmitSaleInitialized(ctx context.Context, s *sale.Sale) {
	r.mu.RLock()
	plugins := r.onSaleInitialized
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnSaleInitialized(ctx, s)
		}); err != nil {
			r.logger.Warn("plugin OnSaleInitialized failed", "plugin", p.Name(), "error", err)
		}
	}
}

// EmitPurchase emits a sale purchase event.
func (r *Registry) EmitPurchase(ctx context.Context, ev PurchaseEvent) {
	r.mu.RLock()
	plugins := r.onPurchase
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnPurchase(ctx, ev)
		}); err != nil {
			r.logger.Warn("plugin OnPurchase failed", "plugin", p.Name(), "error", err)
		}
	}
}

// EmitSaleClosed emits a sale closed event.
func (r *Registry) EmitSaleClosed(ctx context.Context, ev SaleClosedEvent) {
	r.mu.RLock()
	plugins := r.onSaleClosed
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnSaleClosed(ctx, ev)
		}); err != nil {
			r.logger.Warn("plugin OnSaleClosed failed", "plugin", p.Name(), "error", err)
		}
	}
}

// callWithTimeout calls a plugin function with a timeout.
// Plugins should never block a ledger operation.
func (r *Registry) callWithTimeout(ctx context.Context, pluginName string, fn func() error) error {
	done := make(chan error, 1)

	go func() {
		done <- fn()
	}()

	select {
	case err := <-done:
		return err
	case <-time.After(5 * time.Second):
		return fmt.Errorf("plugin timeout: %s", pluginName)
	case <-ctx.Done():
		return ctx.Err()
	}
}
