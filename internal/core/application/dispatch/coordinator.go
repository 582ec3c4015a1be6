// Package dispatch orchestrates order submission, driver matching,
// assignment and completion, and owns the driver pool.
package dispatch

import (
	"cmp"
	"context"
	"slices"
	"sync"

	"dispatch/internal/core/application/intake"
	"dispatch/internal/core/application/tracking"
	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"

	"go.uber.org/zap"
)

const (
	opSubmit   = "submit order"
	opAssign   = "assign order"
	opStart    = "start delivery"
	opComplete = "complete delivery"
)

type orderState int

const (
	awaitingPayment orderState = iota + 1
	confirmed
)

// poolEntry is one registered driver. The driver is busy exactly when it
// has a current order, so available and busy are two views of one map and
// every membership change happens under Coordinator.mu.
type poolEntry struct {
	driver     *driver.Driver
	seq        uint64
	completing bool
}

// Coordinator is safe for concurrent use. Payment and notification calls
// are made outside the pool lock.
type Coordinator struct {
	queue    *intake.OrderQueue
	tracker  *tracking.OrderTracker
	matcher  services.DriverMatcher
	payments ports.PaymentGateway
	notifier ports.Notifier
	logger   *zap.Logger

	mu      sync.Mutex
	pool    map[kernel.UUID]*poolEntry
	nextSeq uint64
	orders  map[order.ID]orderState

	// dispatchMu keeps dispatch passes from interleaving, so earlier orders
	// always get the first pick.
	dispatchMu sync.Mutex
}

// NewCoordinator wires the dispatch core. queue, tracker, payments and
// notifier are required and return ValueIsRequired when nil; a nil logger
// is replaced by a no-op one. The driver pool starts empty.
//
// Example:
//
//	queue, _ := intake.NewOrderQueue(100, order.NewSequence())
//	tracker := tracking.NewOrderTracker(logger)
//	coordinator, err := dispatch.NewCoordinator(queue, tracker,
//	    services.NewDriverMatcher(), paymentGateway, notifier, logger)
//	if err != nil {
//	    return err
//	}
//	id, err := coordinator.SubmitOrder(ctx, o)
func NewCoordinator(
	queue *intake.OrderQueue,
	tracker *tracking.OrderTracker,
	matcher services.DriverMatcher,
	payments ports.PaymentGateway,
	notifier ports.Notifier,
	logger *zap.Logger,
) (*Coordinator, error) {
	if queue == nil {
		return nil, errs.NewValueIsRequiredError("queue")
	}
	if tracker == nil {
		return nil, errs.NewValueIsRequiredError("tracker")
	}
	if payments == nil {
		return nil, errs.NewValueIsRequiredError("payments")
	}
	if notifier == nil {
		return nil, errs.NewValueIsRequiredError("notifier")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Coordinator{
		queue:    queue,
		tracker:  tracker,
		matcher:  matcher,
		payments: payments,
		notifier: notifier,
		logger:   logger.With(zap.String("component", "dispatch_coordinator")),
		pool:     make(map[kernel.UUID]*poolEntry),
		orders:   make(map[order.ID]orderState),
	}, nil
}

// SubmitOrder admits o, charges the customer, confirms the order and tries
// to assign it right away. An order that finds no driver stays pending.
//
// Every failure is an *errs.ProcessingFailedError whose cause (QueueFull,
// OrderInvalid or the payment error) is reachable with errors.Is/As.
func (c *Coordinator) SubmitOrder(ctx context.Context, o *order.Order) (order.ID, error) {
	id, err := c.queue.Enqueue(o)
	if err != nil {
		return 0, errs.NewProcessingFailedErrorWithCause(opSubmit, err)
	}
	c.setState(id, awaitingPayment)

	if err = c.payments.Charge(ctx, id, o.PaymentMethod(), o.Total()); err != nil {
		c.queue.Remove(id)
		c.clearState(id)
		c.logger.Warn("payment declined", zap.Stringer("order_id", id), zap.Error(err))
		return 0, errs.NewProcessingFailedErrorWithCause(opSubmit, err)
	}

	if err = c.tracker.Register(o); err != nil {
		c.queue.Remove(id)
		c.clearState(id)
		return 0, errs.NewProcessingFailedErrorWithCause(opSubmit, err)
	}
	c.setState(id, confirmed)

	c.logger.Info("order confirmed",
		zap.Stringer("order_id", id),
		zap.Int64("customer_id", o.CustomerID()),
		zap.Stringer("total", o.Total()),
	)
	c.notifier.NotifyOrderConfirmed(ctx, o)

	c.DispatchPending(ctx)
	return id, nil
}

// AssignOrderToDriver commits d to o and moves o to Accepted.
//
// It fails with an *errs.ProcessingFailedError when d is nil, unknown or
// busy (the DriverBusy cause is kept), or when o is not Placed. Only orders
// that SubmitOrder confirmed can be assigned: one still awaiting payment,
// one whose charge was declined or one never submitted fails too.
func (c *Coordinator) AssignOrderToDriver(ctx context.Context, o *order.Order, d *driver.Driver) error {
	if o == nil || o.ID() == 0 {
		return errs.NewProcessingFailedErrorWithCause(opAssign, errs.NewInvalidArgumentError("order"))
	}
	if d == nil {
		return errs.NewProcessingFailedErrorWithCause(opAssign, errs.NewInvalidArgumentError("driver"))
	}
	if status := o.Status(); status != order.Placed {
		return errs.NewProcessingFailedErrorWithCause(opAssign, errs.NewInvalidTransitionError(status, order.Accepted))
	}

	orderID := o.ID()
	driverID := d.ID()

	c.mu.Lock()
	switch c.orders[orderID] {
	case confirmed:
	case awaitingPayment:
		c.mu.Unlock()
		return errs.NewProcessingFailedError(opAssign + ": payment pending")
	default:
		c.mu.Unlock()
		return errs.NewProcessingFailedErrorWithCause(opAssign, errs.NewObjectNotFoundError("order", orderID))
	}
	e, ok := c.pool[driverID]
	if !ok {
		c.mu.Unlock()
		return errs.NewProcessingFailedErrorWithCause(opAssign, errs.NewObjectNotFoundError("driver", driverID))
	}
	if err := e.driver.AssignOrder(orderID); err != nil {
		c.mu.Unlock()
		return errs.NewProcessingFailedErrorWithCause(opAssign, err)
	}
	assigned := e.driver.Clone()
	c.mu.Unlock()

	if err := c.tracker.UpdateStatus(ctx, o, order.Accepted, assigned); err != nil {
		c.mu.Lock()
		_ = e.driver.ReleaseOrder(orderID)
		c.mu.Unlock()
		return errs.NewProcessingFailedErrorWithCause(opAssign, err)
	}

	c.queue.Remove(orderID)
	c.clearState(orderID)

	c.logger.Info("driver assigned",
		zap.Stringer("order_id", orderID),
		zap.Stringer("driver_id", driverID),
	)
	c.notifier.NotifyDriverAssigned(ctx, o, assigned)
	return nil
}

// DispatchPending runs one matching pass over the confirmed pending orders,
// oldest first. Each order gets the first pick of the drivers still
// available at that moment; unmatched orders stay queued. It returns how
// many orders were assigned.
func (c *Coordinator) DispatchPending(ctx context.Context) int {
	c.dispatchMu.Lock()
	defer c.dispatchMu.Unlock()

	assigned := 0
	for _, o := range c.queue.PendingOrders() {
		if !c.isConfirmed(o.ID()) {
			continue
		}

		candidates := c.AvailableDrivers()
		if len(candidates) == 0 {
			break
		}

		best, ok := c.matcher.Match(o, candidates)
		if !ok {
			c.logger.Debug("no eligible driver", zap.Stringer("order_id", o.ID()))
			continue
		}

		if err := c.AssignOrderToDriver(ctx, o, best); err != nil {
			c.logger.Debug("assignment skipped",
				zap.Stringer("order_id", o.ID()),
				zap.Stringer("driver_id", best.ID()),
				zap.Error(err),
			)
			continue
		}
		assigned++
	}
	return assigned
}

// RegisterDriver adds d to the available pool, or replaces the record of an
// available driver with the same ID. Re-registering a driver that is busy
// fails with an *errs.DriverBusyError and leaves the assignment untouched.
func (c *Coordinator) RegisterDriver(ctx context.Context, d *driver.Driver) error {
	if err := d.Validate(); err != nil {
		return errs.NewInvalidArgumentErrorWithCause("driver", err)
	}
	if !d.IsAvailable() {
		return errs.NewDriverBusyError(d.ID())
	}

	c.mu.Lock()
	e, exists := c.pool[d.ID()]
	switch {
	case exists && !e.driver.IsAvailable():
		c.mu.Unlock()
		return errs.NewDriverBusyError(d.ID())
	case exists:
		e.driver = d.Clone()
	default:
		c.nextSeq++
		c.pool[d.ID()] = &poolEntry{driver: d.Clone(), seq: c.nextSeq}
	}
	c.mu.Unlock()

	c.logger.Info("driver registered",
		zap.Stringer("driver_id", d.ID()),
		zap.String("name", d.Name()),
		zap.Bool("replaced", exists),
	)

	c.DispatchPending(ctx)
	return nil
}

// StartDelivery moves an accepted order to InDelivery; the tracker sets the
// ETA. driverID must be the driver assigned to the order.
func (c *Coordinator) StartDelivery(ctx context.Context, orderID order.ID, driverID kernel.UUID) error {
	assigned, err := c.assignedDriver(opStart, orderID, driverID, false)
	if err != nil {
		return err
	}

	o, ok := c.tracker.Order(orderID)
	if !ok {
		return errs.NewProcessingFailedErrorWithCause(opStart, errs.NewObjectNotFoundError("order", orderID))
	}
	if err = c.tracker.UpdateStatus(ctx, o, order.InDelivery, assigned); err != nil {
		return errs.NewProcessingFailedErrorWithCause(opStart, err)
	}

	c.logger.Info("delivery started", zap.Stringer("order_id", orderID), zap.Stringer("driver_id", driverID))
	return nil
}

// CompleteDelivery marks the order Delivered and returns the driver to the
// available pool. An order that is still Accepted passes through InDelivery
// first. It fails with an *errs.ProcessingFailedError when the driver is not
// busy with exactly this order.
func (c *Coordinator) CompleteDelivery(ctx context.Context, orderID order.ID, driverID kernel.UUID) error {
	assigned, err := c.assignedDriver(opComplete, orderID, driverID, true)
	if err != nil {
		return err
	}

	o, err := c.finishDelivery(ctx, orderID, assigned)

	c.mu.Lock()
	e := c.pool[driverID]
	e.completing = false
	if err == nil {
		_ = e.driver.ReleaseOrder(orderID)
	}
	c.mu.Unlock()

	if err != nil {
		return errs.NewProcessingFailedErrorWithCause(opComplete, err)
	}

	c.logger.Info("delivery completed", zap.Stringer("order_id", orderID), zap.Stringer("driver_id", driverID))
	c.notifier.NotifyDeliveryCompleted(ctx, o)

	c.DispatchPending(ctx)
	return nil
}

// UpdateDriverLocation records a new position and retries pending orders.
func (c *Coordinator) UpdateDriverLocation(ctx context.Context, driverID kernel.UUID, location kernel.Location) error {
	if err := c.withDriver(driverID, func(d *driver.Driver) error {
		return d.UpdateLocation(location)
	}); err != nil {
		return err
	}
	c.DispatchPending(ctx)
	return nil
}

// RateDriver adds a rating and retries pending orders, since a better
// average may make the driver eligible.
func (c *Coordinator) RateDriver(ctx context.Context, driverID kernel.UUID, rating int) error {
	if err := c.withDriver(driverID, func(d *driver.Driver) error {
		return d.AddRating(rating)
	}); err != nil {
		return err
	}
	c.DispatchPending(ctx)
	return nil
}

// AvailableDrivers returns copies of the idle drivers in registration order.
func (c *Coordinator) AvailableDrivers() []*driver.Driver {
	return c.snapshot(func(d *driver.Driver) bool { return d.IsAvailable() })
}

// BusyDrivers returns copies of the drivers with an assigned order.
func (c *Coordinator) BusyDrivers() []*driver.Driver {
	return c.snapshot(func(d *driver.Driver) bool { return !d.IsAvailable() })
}

// Driver returns a copy of one registered driver.
func (c *Coordinator) Driver(id kernel.UUID) (*driver.Driver, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.pool[id]
	if !ok {
		return nil, false
	}
	return e.driver.Clone(), true
}

// PendingOrders returns the queued orders, oldest first.
func (c *Coordinator) PendingOrders() []*order.Order {
	return c.queue.PendingOrders()
}

// Order returns a confirmed order by ID.
func (c *Coordinator) Order(id order.ID) (*order.Order, bool) {
	return c.tracker.Order(id)
}

func (c *Coordinator) finishDelivery(ctx context.Context, orderID order.ID, d *driver.Driver) (*order.Order, error) {
	o, ok := c.tracker.Order(orderID)
	if !ok {
		return nil, errs.NewObjectNotFoundError("order", orderID)
	}
	if err := c.tracker.AdvanceTo(ctx, o, order.Delivered, d); err != nil {
		return nil, err
	}
	return o, nil
}

// assignedDriver checks that driverID is busy with orderID and returns a
// copy. With claim set the entry is marked as completing so a concurrent
// completion of the same delivery fails.
func (c *Coordinator) assignedDriver(op string, orderID order.ID, driverID kernel.UUID, claim bool) (*driver.Driver, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.pool[driverID]
	if !ok {
		return nil, errs.NewProcessingFailedErrorWithCause(op, errs.NewObjectNotFoundError("driver", driverID))
	}
	current, busy := e.driver.CurrentOrder()
	if !busy {
		return nil, errs.NewProcessingFailedError(op + ": driver is not busy")
	}
	if current != orderID {
		return nil, errs.NewProcessingFailedError(op + ": order is assigned to another driver")
	}
	if e.completing {
		return nil, errs.NewProcessingFailedError(op + ": delivery is already being completed")
	}
	if claim {
		e.completing = true
	}
	return e.driver.Clone(), nil
}

func (c *Coordinator) withDriver(id kernel.UUID, fn func(d *driver.Driver) error) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.pool[id]
	if !ok {
		return errs.NewObjectNotFoundError("driver", id)
	}
	return fn(e.driver)
}

func (c *Coordinator) snapshot(keep func(d *driver.Driver) bool) []*driver.Driver {
	c.mu.Lock()
	entries := make([]*poolEntry, 0, len(c.pool))
	for _, e := range c.pool {
		if keep(e.driver) {
			entries = append(entries, &poolEntry{driver: e.driver.Clone(), seq: e.seq})
		}
	}
	c.mu.Unlock()

	slices.SortFunc(entries, func(a, b *poolEntry) int { return cmp.Compare(a.seq, b.seq) })

	drivers := make([]*driver.Driver, len(entries))
	for i, e := range entries {
		drivers[i] = e.driver
	}
	return drivers
}

func (c *Coordinator) setState(id order.ID, s orderState) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.orders[id] = s
}

func (c *Coordinator) clearState(id order.ID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.orders, id)
}

func (c *Coordinator) isConfirmed(id order.ID) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.orders[id] == confirmed
}
