// Package commands contains business operations that modify system state.
// Every command is built through a guarded constructor and executed by a
// handler that delegates to the dispatch coordinator.
package commands

import (
	"context"

	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
)

// Narrow views of the dispatch coordinator, one per handler, so each handler
// can be tested against a mock of exactly what it uses.
type (
	OrderSubmitter interface {
		SubmitOrder(ctx context.Context, o *order.Order) (order.ID, error)
	}

	DriverRegistrar interface {
		RegisterDriver(ctx context.Context, d *driver.Driver) error
	}

	OrderAssigner interface {
		Order(id order.ID) (*order.Order, bool)
		Driver(id kernel.UUID) (*driver.Driver, bool)
		AssignOrderToDriver(ctx context.Context, o *order.Order, d *driver.Driver) error
	}

	DeliveryStarter interface {
		StartDelivery(ctx context.Context, orderID order.ID, driverID kernel.UUID) error
	}

	DeliveryCompleter interface {
		CompleteDelivery(ctx context.Context, orderID order.ID, driverID kernel.UUID) error
	}

	PendingDispatcher interface {
		DispatchPending(ctx context.Context) int
	}

	DriverLocationUpdater interface {
		UpdateDriverLocation(ctx context.Context, driverID kernel.UUID, location kernel.Location) error
	}

	DriverRater interface {
		RateDriver(ctx context.Context, driverID kernel.UUID, rating int) error
	}
)
