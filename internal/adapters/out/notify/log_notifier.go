// Package notify delivers customer notifications as structured log entries.
package notify

import (
	"context"

	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/logger"

	"go.uber.org/zap"
)

// LogNotifier implements ports.Notifier. Nil arguments are logged and skipped.
type LogNotifier struct {
	logger *zap.Logger
}

// NewLogNotifier writes through l, or discards when l is nil.
func NewLogNotifier(l *zap.Logger) *LogNotifier {
	if l == nil {
		l = zap.NewNop()
	}
	return &LogNotifier{logger: l.With(zap.String("component", "notifier"))}
}

func (n *LogNotifier) NotifyOrderConfirmed(ctx context.Context, o *order.Order) {
	if o == nil {
		n.skip(ctx, "order_confirmed")
		return
	}
	logger.With(ctx, n.logger).Info("order confirmed",
		zap.String("event", "order_confirmed"),
		zap.String("to", o.Email()),
		zap.Uint64("order_id", uint64(o.ID())),
		zap.String("total", o.Total().StringFixed(2)),
	)
}

func (n *LogNotifier) NotifyDriverAssigned(ctx context.Context, o *order.Order, d *driver.Driver) {
	if o == nil || d == nil {
		n.skip(ctx, "driver_assigned")
		return
	}
	logger.With(ctx, n.logger).Info("driver assigned",
		zap.String("event", "driver_assigned"),
		zap.String("to", o.Email()),
		zap.Uint64("order_id", uint64(o.ID())),
		zap.Stringer("driver_id", d.ID()),
		zap.String("driver_name", d.Name()),
		zap.String("vehicle", d.Vehicle()),
	)
}

func (n *LogNotifier) NotifyStatusChanged(ctx context.Context, o *order.Order, status order.Status) {
	if o == nil {
		n.skip(ctx, "status_changed")
		return
	}
	fields := []zap.Field{
		zap.String("event", "status_changed"),
		zap.String("to", o.Email()),
		zap.Uint64("order_id", uint64(o.ID())),
		zap.Stringer("status", status),
	}
	if eta, ok := o.EstimatedDelivery(); ok {
		fields = append(fields, zap.Time("eta", eta))
	}
	logger.With(ctx, n.logger).Info("order status changed", fields...)
}

func (n *LogNotifier) NotifyDeliveryCompleted(ctx context.Context, o *order.Order) {
	if o == nil {
		n.skip(ctx, "delivery_completed")
		return
	}
	logger.With(ctx, n.logger).Info("delivery completed",
		zap.String("event", "delivery_completed"),
		zap.String("to", o.Email()),
		zap.Uint64("order_id", uint64(o.ID())),
	)
}

func (n *LogNotifier) skip(ctx context.Context, event string) {
	logger.With(ctx, n.logger).Warn("notification skipped", zap.String("event", event))
}
