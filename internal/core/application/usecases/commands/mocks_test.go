package commands_test

import (
	"context"

	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"

	"github.com/stretchr/testify/mock"
)

// MockCoordinator implements every narrow coordinator view used by the
// handlers.
type MockCoordinator struct {
	mock.Mock
}

func (m *MockCoordinator) SubmitOrder(ctx context.Context, o *order.Order) (order.ID, error) {
	args := m.Called(ctx, o)
	return args.Get(0).(order.ID), args.Error(1)
}

func (m *MockCoordinator) RegisterDriver(ctx context.Context, d *driver.Driver) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *MockCoordinator) Order(id order.ID) (*order.Order, bool) {
	args := m.Called(id)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Bool(1)
}

func (m *MockCoordinator) Driver(id kernel.UUID) (*driver.Driver, bool) {
	args := m.Called(id)
	d, _ := args.Get(0).(*driver.Driver)
	return d, args.Bool(1)
}

func (m *MockCoordinator) AssignOrderToDriver(ctx context.Context, o *order.Order, d *driver.Driver) error {
	args := m.Called(ctx, o, d)
	return args.Error(0)
}

func (m *MockCoordinator) StartDelivery(ctx context.Context, orderID order.ID, driverID kernel.UUID) error {
	args := m.Called(ctx, orderID, driverID)
	return args.Error(0)
}

func (m *MockCoordinator) CompleteDelivery(ctx context.Context, orderID order.ID, driverID kernel.UUID) error {
	args := m.Called(ctx, orderID, driverID)
	return args.Error(0)
}

func (m *MockCoordinator) DispatchPending(ctx context.Context) int {
	args := m.Called(ctx)
	return args.Int(0)
}

func (m *MockCoordinator) UpdateDriverLocation(ctx context.Context, driverID kernel.UUID, location kernel.Location) error {
	args := m.Called(ctx, driverID, location)
	return args.Error(0)
}

func (m *MockCoordinator) RateDriver(ctx context.Context, driverID kernel.UUID, rating int) error {
	args := m.Called(ctx, driverID, rating)
	return args.Error(0)
}
