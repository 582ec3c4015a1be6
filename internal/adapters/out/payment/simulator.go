// Package payment provides a stand-in payment gateway that approves or
// declines charges locally.
package payment

import (
	"context"
	"errors"
	"fmt"

	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ErrPaymentDeclined is returned when a charge exceeds the method limit.
var ErrPaymentDeclined = errors.New("payment declined")

// DefaultLimits caps a single charge per payment method.
func DefaultLimits() map[order.PaymentMethod]decimal.Decimal {
	return map[order.PaymentMethod]decimal.Decimal{
		order.PaymentCard:   decimal.NewFromInt(1000),
		order.PaymentWallet: decimal.NewFromInt(500),
		order.PaymentCash:   decimal.NewFromInt(200),
	}
}

// Simulator implements ports.PaymentGateway.
type Simulator struct {
	limits map[order.PaymentMethod]decimal.Decimal
	logger *zap.Logger
}

// NewSimulator copies limits; methods missing from the map are declined.
func NewSimulator(limits map[order.PaymentMethod]decimal.Decimal, logger *zap.Logger) (*Simulator, error) {
	if logger == nil {
		return nil, errs.NewValueIsRequiredError("logger")
	}

	copied := make(map[order.PaymentMethod]decimal.Decimal, len(limits))
	for method, limit := range limits {
		if err := method.Validate(); err != nil {
			return nil, err
		}
		if limit.IsNegative() {
			return nil, errs.NewValueIsOutOfRangeError("payment limit", limit.String(), "0", "unbounded")
		}
		copied[method] = limit
	}

	return &Simulator{
		limits: copied,
		logger: logger.With(zap.String("component", "payment_simulator")),
	}, nil
}

func (s *Simulator) Charge(ctx context.Context, orderID order.ID, method order.PaymentMethod, amount decimal.Decimal) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if orderID == 0 {
		return errs.NewInvalidArgumentError("order id")
	}
	if err := method.Validate(); err != nil {
		return err
	}
	if amount.IsNegative() {
		return errs.NewValueIsOutOfRangeError("amount", amount.String(), "0", "unbounded")
	}

	limit, ok := s.limits[method]
	if !ok {
		s.logger.Info("charge declined", zap.Uint64("order_id", uint64(orderID)),
			zap.Stringer("method", method), zap.String("reason", "method disabled"))
		return fmt.Errorf("%w: %s is not accepted", ErrPaymentDeclined, method)
	}
	if amount.GreaterThan(limit) {
		s.logger.Info("charge declined", zap.Uint64("order_id", uint64(orderID)),
			zap.Stringer("method", method), zap.String("amount", amount.StringFixed(2)),
			zap.String("limit", limit.StringFixed(2)))
		return fmt.Errorf("%w: %s exceeds %s limit of %s", ErrPaymentDeclined,
			amount.StringFixed(2), method, limit.StringFixed(2))
	}

	s.logger.Debug("charge approved", zap.Uint64("order_id", uint64(orderID)),
		zap.Stringer("method", method), zap.String("amount", amount.StringFixed(2)))
	return nil
}
