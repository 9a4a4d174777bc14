// Package audithook bridges Vault lifecycle events to an audit trail backend.
//
// It defines a local Recorder interface so the package does not import
// Chronicle directly. Callers inject a RecorderFunc adapter that bridges
// to Chronicle at wiring time.
package audithook

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/xraph/vault/plugin"
	"github.com/xraph/vault/sale"
	"github.com/xraph/vault/timelock"
	"github.com/xraph/vault/vesting"
)

// Compile-time interface checks.
var (
	_ plugin.Plugin            = (*Extension)(nil)
	_ plugin.OnScheduleCreated = (*Extension)(nil)
	_ plugin.OnReleased        = (*Extension)(nil)
	_ plugin.OnLocked          = (*Extension)(nil)
	_ plugin.OnLockWithdrawn   = (*Extension)(nil)
	_ plugin.OnSaleInitialized = (*Extension)(nil)
	_ plugin.OnPurchase        = (*Extension)(nil)
	_ plugin.OnSaleClosed      = (*Extension)(nil)
)

// Recorder is the interface that audit backends must implement.
// This matches chronicle.Emitter but is defined locally so that the
// audit_hook package does not import Chronicle directly — callers inject
// the concrete *chronicle.Chronicle at wiring time.
type Recorder interface {
	Record(ctx context.Context, event *AuditEvent) error
}

// AuditEvent is a local representation of an audit event.
// It mirrors chronicle/audit.Event but avoids a module dependency.
type AuditEvent struct {
	Action     string         `json:"action"`
	Resource   string         `json:"resource"`
	Category   string         `json:"category"`
	ResourceID string         `json:"resource_id,omitempty"`
	Metadata   map[string]any `json:"metadata,omitempty"`
	Outcome    string         `json:"outcome"`
	Severity   string         `json:"severity"`
	Reason     string         `json:"reason,omitempty"`
}

// RecorderFunc is an adapter to use a plain function as a Recorder.
type RecorderFunc func(ctx context.Context, event *AuditEvent) error

// Record implements Recorder.
func (f RecorderFunc) Record(ctx context.Context, event *AuditEvent) error {
	return f(ctx, event)
}

// Extension bridges Vault lifecycle events to an audit trail backend.
type Extension struct {
	recorder Recorder
	enabled  map[string]bool // nil = all enabled
	logger   *slog.Logger
}

// New creates an Extension that emits audit events through the provided Recorder.
func New(r Recorder, opts ...Option) *Extension {
	e := &Extension{
		recorder: r,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Name implements plugin.Plugin.
func (e *Extension) Name() string { return "audit-hook" }

// ──────────────────────────────────────────────────
// Vesting hooks
// ──────────────────────────────────────────────────

// OnScheduleCreated implements plugin.OnScheduleCreated.
func (e *Extension) OnScheduleCreated(ctx context.Context, s *vesting.Schedule) error {
	return e.record(ctx, ActionScheduleCreated, SeverityInfo, OutcomeSuccess,
		ResourceSchedule, s.ID.String(), CategoryVesting, nil,
		"beneficiary", s.Beneficiary.String(),
		"total", s.Total.String(),
		"start", s.Start,
		"cliff", s.Cliff,
		"duration", s.Duration,
	)
}

// OnReleased implements plugin.OnReleased.
func (e *Extension) OnReleased(ctx context.Context, ev plugin.ReleaseEvent) error {
	return e.record(ctx, ActionTrancheReleased, SeverityInfo, OutcomeSuccess,
		ResourceSchedule, ev.Beneficiary.String(), CategoryVesting, nil,
		"amount", ev.Amount.String(),
		"released_total", ev.Released.String(),
		"at", ev.At,
	)
}

// ──────────────────────────────────────────────────
// Timelock hooks
// ──────────────────────────────────────────────────

// OnLocked implements plugin.OnLocked.
func (e *Extension) OnLocked(ctx context.Context, l *timelock.Lock) error {
	return e.record(ctx, ActionLockCreated, SeverityInfo, OutcomeSuccess,
		ResourceLock, l.ID.String(), CategoryTimelock, nil,
		"holder", l.Holder.String(),
		"asset", l.Asset.String(),
		"amount", l.Amount.String(),
		"unlock_time", l.UnlockTime,
	)
}

// OnLockWithdrawn implements plugin.OnLockWithdrawn.
func (e *Extension) OnLockWithdrawn(ctx context.Context, ev plugin.WithdrawEvent) error {
	return e.record(ctx, ActionLockWithdrawn, SeverityInfo, OutcomeSuccess,
		ResourceLock, ev.Holder.String(), CategoryTimelock, nil,
		"asset", ev.Asset.String(),
		"index", ev.Index,
		"amount", ev.Amount.String(),
		"at", ev.At,
	)
}

// ──────────────────────────────────────────────────
// Sale hooks
// ──────────────────────────────────────────────────

// OnSaleInitialized implements plugin.OnSaleInitialized.
func (e *Extension) OnSaleInitialized(ctx context.Context, s *sale.Sale) error {
	return e.record(ctx, ActionSaleInitialized, SeverityInfo, OutcomeSuccess,
		ResourceSale, s.ID.String(), CategorySale, nil,
		"asset", s.Asset.String(),
		"payment_asset", s.PaymentAsset.String(),
		"capacity", s.Capacity.String(),
		"max_per_tx", s.MaxPerTx.String(),
	)
}

// OnPurchase implements plugin.OnPurchase.
func (e *Extension) OnPurchase(ctx context.Context, ev plugin.PurchaseEvent) error {
	return e.record(ctx, ActionSalePurchase, SeverityInfo, OutcomeSuccess,
		ResourceSale, ev.Buyer.String(), CategorySale, nil,
		"amount", ev.Amount.String(),
		"payment", ev.Payment.String(),
		"at", ev.At,
	)
}

// OnSaleClosed implements plugin.OnSaleClosed.
func (e *Extension) OnSaleClosed(ctx context.Context, ev plugin.SaleClosedEvent) error {
	return e.record(ctx, ActionSaleClosed, SeverityWarning, OutcomeSuccess,
		ResourceSale, "", CategorySale, nil,
		"burned", ev.Burned.String(),
		"swept", ev.Swept.String(),
		"at", ev.At,
	)
}

// ──────────────────────────────────────────────────
// Internal helpers
// ──────────────────────────────────────────────────

// record builds and sends an audit event if the action is enabled.
func (e *Extension) record(
	ctx context.Context,
	action, severity, outcome string,
	resource, resourceID, category string,
	err error,
	kvPairs ...any,
) error {
	if e.enabled != nil && !e.enabled[action] {
		return nil
	}

	meta := make(map[string]any, len(kvPairs)/2+1)
	for i := 0; i+1 < len(kvPairs); i += 2 {
		key, ok := kvPairs[i].(string)
		if !ok {
			key = fmt.Sprintf("%v", kvPairs[i])
		}
		meta[key] = kvPairs[i+1]
	}

	var reason string
	if err != nil {
		reason = err.Error()
		meta["error"] = err.Error()
	}

	evt := &AuditEvent{
		Action:     action,
		Resource:   resource,
		Category:   category,
		ResourceID: resourceID,
		Metadata:   meta,
		Outcome:    outcome,
		Severity:   severity,
		Reason:     reason,
	}

	if recErr := e.recorder.Record(ctx, evt); recErr != nil {
		e.logger.Warn("audit_hook: failed to record audit event",
			"action", action,
			"resource_id", resourceID,
			"error", recErr,
		)
	}
	return nil
}
