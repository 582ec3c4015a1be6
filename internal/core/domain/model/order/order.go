package order

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"sync"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var (
	// ErrOrderIsNotConstructed is reported for an Order not built by NewOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")
	// ErrOrderIsAdmitted is returned when changing items of an admitted order.
	ErrOrderIsAdmitted = errors.New("order has already been admitted")
)

// Order is a delivery order. Identity is assigned on admission; the status,
// driver and ETA fields are written only through Apply, which the order
// tracker calls while holding its per-order lock.
//
// Order is safe for concurrent use.
type Order struct {
	mu sync.RWMutex

	id            ID
	customerID    int64
	items         []LineItem
	total         decimal.Decimal
	address       kernel.Address
	email         string
	paymentMethod PaymentMethod

	status   Status
	driverID *kernel.UUID
	eta      *time.Time

	guard guard.ConstructorGuard
}

// Transition describes one lifecycle step. DriverID and ETA are optional and
// only overwrite the stored values when set.
type Transition struct {
	To       Status
	DriverID *kernel.UUID
	ETA      *time.Time
}

// NewOrder builds an order in Placed status. It does not enforce business
// rules: the order-building collaborator may hand over anything, and
// admission re-validates independently through Validate.
//
// Example:
//
//	addr, _ := kernel.NewAddress("12 Main St", "94107", kernel.MustNewLocation(3, 4))
//	pizza, _ := order.NewLineItem("Margherita", decimal.RequireFromString("9.50"), 2)
//	o := order.NewOrder(42, addr, "ann@example.com", order.PaymentCard, pizza)
//	if err := o.Validate(); err != nil {
//	    // err lists every violated rule
//	}
func NewOrder(
	customerID int64,
	address kernel.Address,
	email string,
	method PaymentMethod,
	items ...LineItem,
) *Order {
	o := &Order{
		customerID:    customerID,
		address:       address,
		email:         strings.TrimSpace(email),
		paymentMethod: method,
		items:         append([]LineItem(nil), items...),
		status:        Placed,
		guard:         guard.NewConstructorGuard(),
	}
	o.recalculateTotal()
	return o
}

// Validate checks every intake rule and returns an *errs.OrderInvalidError
// listing all violations, or nil.
func (o *Order) Validate() error {
	if o == nil {
		return errs.NewInvalidArgumentError("order")
	}
	if err := o.guard.Validate(ErrOrderIsNotConstructed); err != nil {
		return errs.NewOrderInvalidError(err)
	}

	o.mu.RLock()
	defer o.mu.RUnlock()

	var violations []error
	if o.customerID <= 0 {
		violations = append(violations,
			errs.NewValueIsInvalidErrorWithCause("customer id", fmt.Errorf("%d is not greater than 0", o.customerID)))
	}
	if len(o.items) == 0 {
		violations = append(violations, errs.NewValueIsRequiredError("items"))
	}
	if err := o.address.Validate(); err != nil {
		violations = append(violations, errs.NewValueIsRequiredErrorWithCause("delivery location", err))
	}
	if err := validateEmail(o.email); err != nil {
		violations = append(violations, err)
	}
	if err := o.paymentMethod.Validate(); err != nil {
		violations = append(violations, err)
	}

	if len(violations) > 0 {
		return errs.NewOrderInvalidError(violations...)
	}
	return nil
}

// Admit stamps the order with its identity. It succeeds once.
func (o *Order) Admit(id ID) error {
	if id == 0 {
		return errs.NewInvalidArgumentError("order id")
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	if o.id != 0 {
		return ErrOrderIsAdmitted
	}
	o.id = id
	return nil
}

// AddItem appends a line and recomputes the total.
func (o *Order) AddItem(item LineItem) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.id != 0 {
		return ErrOrderIsAdmitted
	}
	o.items = append(o.items, item)
	o.recalculateTotal()
	return nil
}

// RemoveItem drops the line at index and recomputes the total.
func (o *Order) RemoveItem(index int) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.id != 0 {
		return ErrOrderIsAdmitted
	}
	if index < 0 || index >= len(o.items) {
		return errs.NewValueIsOutOfRangeError("item index", index, 0, len(o.items)-1)
	}
	o.items = append(o.items[:index], o.items[index+1:]...)
	o.recalculateTotal()
	return nil
}

// Apply performs one lifecycle step. It fails with an InvalidTransitionError
// unless tr.To is the immediate successor of the current status.
func (o *Order) Apply(tr Transition) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if err := o.status.ValidateTransition(tr.To); err != nil {
		return err
	}

	o.status = tr.To
	if tr.DriverID != nil {
		id := *tr.DriverID
		o.driverID = &id
	}
	if tr.ETA != nil {
		eta := *tr.ETA
		o.eta = &eta
	}
	return nil
}

func (o *Order) ID() ID {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.id
}

func (o *Order) CustomerID() int64 {
	return o.customerID
}

// Items returns a copy of the order lines.
func (o *Order) Items() []LineItem {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return append([]LineItem(nil), o.items...)
}

// Total is the cached sum of the line subtotals.
func (o *Order) Total() decimal.Decimal {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.total
}

func (o *Order) Address() kernel.Address {
	return o.address
}

func (o *Order) Email() string {
	return o.email
}

func (o *Order) PaymentMethod() PaymentMethod {
	return o.paymentMethod
}

func (o *Order) Status() Status {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.status
}

// DriverID returns the assigned driver, or nil before acceptance.
func (o *Order) DriverID() *kernel.UUID {
	o.mu.RLock()
	defer o.mu.RUnlock()
	if o.driverID == nil {
		return nil
	}
	id := *o.driverID
	return &id
}

// EstimatedDelivery returns the ETA set when the order went out for delivery.
func (o *Order) EstimatedDelivery() (time.Time, bool) {
	o.mu.RLock()
	defer o.mu.RUnlock()
	if o.eta == nil {
		return time.Time{}, false
	}
	return *o.eta, true
}

func (o *Order) recalculateTotal() {
	total := decimal.Zero
	for _, item := range o.items {
		total = total.Add(item.Subtotal())
	}
	o.total = total
}

func validateEmail(email string) error {
	if email == "" {
		return errs.NewValueIsRequiredError("email")
	}
	addr, err := mail.ParseAddress(email)
	if err != nil {
		return errs.NewValueIsInvalidErrorWithCause("email", err)
	}
	at := strings.LastIndexByte(addr.Address, '@')
	if addr.Address != email || at < 0 || !strings.Contains(addr.Address[at+1:], ".") {
		return errs.NewValueIsInvalidErrorWithCause("email", fmt.Errorf("%q is not a plain address", email))
	}
	return nil
}
