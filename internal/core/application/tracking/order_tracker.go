// Package tracking owns order status transitions and fans them out to
// observers.
package tracking

import (
	"context"
	"fmt"
	"reflect"
	"slices"
	"sync"
	"time"

	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"

	"go.uber.org/zap"
)

// OrderTracker is the only component that changes an order's status.
//
// Transitions of one order are serialized by a per-order lock that is held
// while observers run; transitions of different orders proceed in parallel.
type OrderTracker struct {
	mu        sync.RWMutex
	entries   map[order.ID]*entry
	observers []Observer

	eta    ETAEstimator
	now    func() time.Time
	logger *zap.Logger
}

type entry struct {
	mu    sync.Mutex
	order *order.Order
}

// Option configures an OrderTracker.
type Option func(*OrderTracker)

// WithETAEstimator replaces the default FixedLeadTime{DefaultLeadTime}.
func WithETAEstimator(e ETAEstimator) Option {
	return func(t *OrderTracker) {
		if e != nil {
			t.eta = e
		}
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(t *OrderTracker) {
		if now != nil {
			t.now = now
		}
	}
}

// NewOrderTracker creates a tracker with no observers. A nil logger is
// replaced by a no-op one. Options replace the ETA estimator or the clock.
//
// Example:
//
//	tracker := tracking.NewOrderTracker(logger,
//	    tracking.WithETAEstimator(tracking.DistanceAwareETA{Base: 20 * time.Minute, PerUnit: 2 * time.Minute}),
//	)
//	if err := tracker.Attach(tracking.NewHistoryRecorder(historyRepo, nil)); err != nil {
//	    return err
//	}
func NewOrderTracker(logger *zap.Logger, opts ...Option) *OrderTracker {
	if logger == nil {
		logger = zap.NewNop()
	}
	t := &OrderTracker{
		entries: make(map[order.ID]*entry),
		eta:     FixedLeadTime{LeadTime: DefaultLeadTime},
		now:     time.Now,
		logger:  logger.With(zap.String("component", "order_tracker")),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Register starts tracking an admitted order without notifying observers.
// Registering an already tracked order is a no-op.
func (t *OrderTracker) Register(o *order.Order) error {
	if o == nil || o.ID() == 0 {
		return errs.NewInvalidArgumentError("order id")
	}
	t.entryFor(o)
	return nil
}

// UpdateStatus moves o to next. Orders that were never registered start
// from their current status, which is Placed for fresh orders.
//
// d is the driver involved in the step. On Accepted its ID is recorded on
// the order; on InDelivery it feeds the ETA estimator. It may be nil.
//
// After the change is applied every attached observer is notified, in
// attachment order. Observer failures are logged and never undo the change.
func (t *OrderTracker) UpdateStatus(ctx context.Context, o *order.Order, next order.Status, d *driver.Driver) error {
	if o == nil || o.ID() == 0 {
		return errs.NewInvalidArgumentError("order id")
	}
	if err := next.Validate(); err != nil {
		return errs.NewInvalidArgumentErrorWithCause("status", err)
	}

	e := t.entryFor(o)
	e.mu.Lock()
	defer e.mu.Unlock()

	return t.step(ctx, e, next, d)
}

// AdvanceTo moves o forward to target through every intermediate status,
// notifying observers once per step. The walk holds the order's lock, so a
// concurrent UpdateStatus cannot land between two steps. An order already
// at or past target fails with an InvalidTransitionError.
func (t *OrderTracker) AdvanceTo(ctx context.Context, o *order.Order, target order.Status, d *driver.Driver) error {
	if o == nil || o.ID() == 0 {
		return errs.NewInvalidArgumentError("order id")
	}
	if err := target.Validate(); err != nil {
		return errs.NewInvalidArgumentErrorWithCause("status", err)
	}

	e := t.entryFor(o)
	e.mu.Lock()
	defer e.mu.Unlock()

	current := e.order.Status()
	if current >= target {
		return errs.NewInvalidTransitionError(current, target)
	}
	for current != target {
		next, err := current.Next()
		if err != nil {
			return err
		}
		if err = t.step(ctx, e, next, d); err != nil {
			return err
		}
		current = next
	}
	return nil
}

// step applies one transition; the caller holds e.mu.
func (t *OrderTracker) step(ctx context.Context, e *entry, next order.Status, d *driver.Driver) error {
	current := e.order.Status()
	if err := current.ValidateTransition(next); err != nil {
		return err
	}

	tr := order.Transition{To: next}
	if d != nil && next == order.Accepted {
		id := d.ID()
		tr.DriverID = &id
	}
	if next == order.InDelivery {
		eta := t.eta.Estimate(t.now(), e.order, d)
		tr.ETA = &eta
	}
	if err := e.order.Apply(tr); err != nil {
		return err
	}

	t.logger.Debug("order status changed",
		zap.Stringer("order_id", e.order.ID()),
		zap.Stringer("from", current),
		zap.Stringer("to", next),
	)

	t.notify(ctx, e.order, next)
	return nil
}

// Attach adds an observer. Attaching the same observer twice has no effect.
// Observers are matched with ==, so a nil observer or one whose dynamic type
// is not comparable (a func or map type, say) is rejected with an error.
func (t *OrderTracker) Attach(obs Observer) error {
	if obs == nil {
		return errs.NewValueIsRequiredError("observer")
	}
	if !isComparable(obs) {
		return errs.NewValueIsInvalidErrorWithCause("observer",
			fmt.Errorf("%T is not comparable; attach a pointer instead", obs))
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if slices.Contains(t.observers, obs) {
		return nil
	}
	t.observers = append(t.observers, obs)
	return nil
}

// Detach removes an observer. Detaching an unknown observer has no effect.
func (t *OrderTracker) Detach(obs Observer) {
	if obs == nil || !isComparable(obs) {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	t.observers = slices.DeleteFunc(t.observers, func(o Observer) bool { return o == obs })
}

func isComparable(obs Observer) bool {
	return reflect.TypeOf(obs).Comparable()
}

// Status returns the current status; ok is false for untracked orders.
func (t *OrderTracker) Status(id order.ID) (status order.Status, ok bool) {
	o, ok := t.Order(id)
	if !ok {
		return order.Unknown, false
	}
	return o.Status(), true
}

// EstimatedDeliveryTime returns the ETA set on InDelivery; ok is false for
// untracked orders and orders that have not gone out yet.
func (t *OrderTracker) EstimatedDeliveryTime(id order.ID) (eta time.Time, ok bool) {
	o, ok := t.Order(id)
	if !ok {
		return time.Time{}, false
	}
	return o.EstimatedDelivery()
}

// Order returns the tracked order.
func (t *OrderTracker) Order(id order.ID) (*order.Order, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	e, ok := t.entries[id]
	if !ok {
		return nil, false
	}
	return e.order, true
}

func (t *OrderTracker) entryFor(o *order.Order) *entry {
	id := o.ID()

	t.mu.RLock()
	e, ok := t.entries[id]
	t.mu.RUnlock()
	if ok {
		return e
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if e, ok = t.entries[id]; ok {
		return e
	}
	e = &entry{order: o}
	t.entries[id] = e
	return e
}

func (t *OrderTracker) notify(ctx context.Context, o *order.Order, status order.Status) {
	t.mu.RLock()
	observers := slices.Clone(t.observers)
	t.mu.RUnlock()

	for _, obs := range observers {
		t.notifyOne(ctx, obs, o, status)
	}
}

func (t *OrderTracker) notifyOne(ctx context.Context, obs Observer, o *order.Order, status order.Status) {
	defer func() {
		if r := recover(); r != nil {
			t.logger.Error("observer panicked",
				zap.String("observer", observerName(obs)),
				zap.Stringer("order_id", o.ID()),
				zap.Stringer("status", status),
				zap.Any("panic", r),
			)
		}
	}()

	if err := obs.OnStatusChanged(ctx, o, status); err != nil {
		t.logger.Warn("observer failed",
			zap.String("observer", observerName(obs)),
			zap.Stringer("order_id", o.ID()),
			zap.Stringer("status", status),
			zap.Error(err),
		)
	}
}

func observerName(obs Observer) string {
	if named, ok := obs.(interface{ Name() string }); ok {
		return named.Name()
	}
	return fmt.Sprintf("%T", obs)
}
