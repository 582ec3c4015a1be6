package ports

import (
	"context"

	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/order"
)

// Notifier delivers customer-facing notifications.
//
// Calls are fire-and-forget from the core's perspective: implementations log
// their own failures and never report them back.
type Notifier interface {
	NotifyOrderConfirmed(ctx context.Context, o *order.Order)
	NotifyDriverAssigned(ctx context.Context, o *order.Order, d *driver.Driver)
	NotifyStatusChanged(ctx context.Context, o *order.Order, status order.Status)
	NotifyDeliveryCompleted(ctx context.Context, o *order.Order)
}
