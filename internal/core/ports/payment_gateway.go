// Package ports defines the contracts between the dispatch core and the
// collaborators it does not own: payment, notification delivery and status
// history storage.
package ports

import (
	"context"

	"dispatch/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
)

// PaymentGateway charges a customer for an admitted order.
// A non-nil error means the charge did not happen; the coordinator wraps it
// into an OrderProcessingFailed error.
type PaymentGateway interface {
	Charge(ctx context.Context, orderID order.ID, method order.PaymentMethod, amount decimal.Decimal) error
}
