// Package queries contains read operations over the dispatch state.
// Queries return flat read models so adapters never touch live aggregates.
package queries

import (
	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/order"
)

type (
	OrderReader interface {
		Order(id order.ID) (*order.Order, bool)
	}

	PendingOrderLister interface {
		PendingOrders() []*order.Order
	}

	DriverLister interface {
		AvailableDrivers() []*driver.Driver
		BusyDrivers() []*driver.Driver
	}
)
