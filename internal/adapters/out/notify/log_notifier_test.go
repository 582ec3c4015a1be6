package notify_test

import (
	"context"
	"testing"
	"time"

	"dispatch/internal/adapters/out/notify"
	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/logger"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newAdmittedOrder(t *testing.T) *order.Order {
	t.Helper()
	addr, err := kernel.NewAddress("1 Harbour Rd", "02110", kernel.MustNewLocation(1, 2))
	require.NoError(t, err)
	item, err := order.NewLineItem("Ramen", decimal.RequireFromString("12.50"), 2)
	require.NoError(t, err)
	o := order.NewOrder(7, addr, "ana@example.com", order.PaymentCard, item)
	require.NoError(t, o.Admit(3))
	return o
}

func TestLogNotifier(t *testing.T) {
	t.Run("should log order confirmation with request id", func(t *testing.T) {
		core, logs := observer.New(zapcore.InfoLevel)
		n := notify.NewLogNotifier(zap.New(core))
		ctx := logger.WithRequestID(context.Background(), "req-1")

		n.NotifyOrderConfirmed(ctx, newAdmittedOrder(t))

		entries := logs.FilterMessage("order confirmed").All()
		require.Len(t, entries, 1)
		fields := entries[0].ContextMap()
		assert.Equal(t, "notifier", fields["component"])
		assert.Equal(t, "req-1", fields["request_id"])
		assert.Equal(t, "ana@example.com", fields["to"])
		assert.Equal(t, uint64(3), fields["order_id"])
		assert.Equal(t, "25.00", fields["total"])
	})

	t.Run("should log driver assignment", func(t *testing.T) {
		core, logs := observer.New(zapcore.InfoLevel)
		n := notify.NewLogNotifier(zap.New(core))
		d, err := driver.NewDriver(kernel.NewUUID(), "Rui", "scooter")
		require.NoError(t, err)

		n.NotifyDriverAssigned(context.Background(), newAdmittedOrder(t), d)

		entries := logs.FilterMessage("driver assigned").All()
		require.Len(t, entries, 1)
		assert.Equal(t, d.ID().String(), entries[0].ContextMap()["driver_id"])
		assert.Equal(t, "scooter", entries[0].ContextMap()["vehicle"])
	})

	t.Run("should include the eta once set", func(t *testing.T) {
		core, logs := observer.New(zapcore.InfoLevel)
		n := notify.NewLogNotifier(zap.New(core))
		o := newAdmittedOrder(t)
		driverID := kernel.NewUUID()
		eta := time.Now().Add(time.Hour)
		require.NoError(t, o.Apply(order.Transition{To: order.Accepted, DriverID: &driverID}))
		require.NoError(t, o.Apply(order.Transition{To: order.InDelivery, ETA: &eta}))

		n.NotifyStatusChanged(context.Background(), o, order.InDelivery)

		entries := logs.FilterMessage("order status changed").All()
		require.Len(t, entries, 1)
		assert.Equal(t, "in_delivery", entries[0].ContextMap()["status"])
		assert.Contains(t, entries[0].ContextMap(), "eta")
	})

	t.Run("should log completion", func(t *testing.T) {
		core, logs := observer.New(zapcore.InfoLevel)
		n := notify.NewLogNotifier(zap.New(core))

		n.NotifyDeliveryCompleted(context.Background(), newAdmittedOrder(t))

		assert.Equal(t, 1, logs.FilterMessage("delivery completed").Len())
	})

	t.Run("should skip nil arguments without panicking", func(t *testing.T) {
		core, logs := observer.New(zapcore.WarnLevel)
		n := notify.NewLogNotifier(zap.New(core))

		assert.NotPanics(t, func() {
			n.NotifyOrderConfirmed(context.Background(), nil)
			n.NotifyDriverAssigned(context.Background(), newAdmittedOrder(t), nil)
			n.NotifyStatusChanged(context.Background(), nil, order.Placed)
			n.NotifyDeliveryCompleted(context.Background(), nil)
		})
		assert.Equal(t, 4, logs.FilterMessage("notification skipped").Len())
	})

	t.Run("should fall back to a no-op logger", func(t *testing.T) {
		assert.NotPanics(t, func() {
			notify.NewLogNotifier(nil).NotifyDeliveryCompleted(context.Background(), newAdmittedOrder(t))
		})
	})
}
