package tracking

import (
	"context"

	"dispatch/internal/core/domain/model/order"
)

// Observer is told about every successful status change.
//
// OnStatusChanged runs synchronously while the tracker holds the lock of the
// affected order, so it must not change the status of that same order. A
// returned error or a panic is logged and does not affect other observers
// or the status change itself.
//
// Observers are compared with == by Attach and Detach. Attach rejects
// implementations that are not comparable; pointer types are the usual choice.
type Observer interface {
	OnStatusChanged(ctx context.Context, o *order.Order, status order.Status) error
}

// ObserverFunc adapts a plain function to Observer.
type ObserverFunc struct {
	name string
	fn   func(ctx context.Context, o *order.Order, status order.Status) error
}

// NewObserverFunc wraps fn. The name shows up in logs when fn fails.
//
// Example:
//
//	audit := tracking.NewObserverFunc("audit", func(ctx context.Context, o *order.Order, s order.Status) error {
//	    log.Printf("order %s is now %s", o.ID(), s)
//	    return nil
//	})
//	if err := tracker.Attach(audit); err != nil {
//	    return err
//	}
func NewObserverFunc(name string, fn func(ctx context.Context, o *order.Order, status order.Status) error) *ObserverFunc {
	return &ObserverFunc{name: name, fn: fn}
}

func (f *ObserverFunc) OnStatusChanged(ctx context.Context, o *order.Order, status order.Status) error {
	return f.fn(ctx, o, status)
}

func (f *ObserverFunc) Name() string {
	return f.name
}
