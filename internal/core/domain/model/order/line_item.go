package order

import (
	"errors"
	"fmt"
	"strings"

	"dispatch/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// LineItem is one priced entry of an order. Only its subtotal matters to
// dispatch; catalog details live with the menu collaborator.
type LineItem struct {
	name      string
	unitPrice decimal.Decimal
	quantity  int
}

// NewLineItem validates a line: name is required, unit price must not be
// negative and quantity must be positive.
func NewLineItem(name string, unitPrice decimal.Decimal, quantity int) (LineItem, error) {
	item := LineItem{
		name:      strings.TrimSpace(name),
		unitPrice: unitPrice,
		quantity:  quantity,
	}

	var violations []error
	if item.name == "" {
		violations = append(violations, errs.NewValueIsRequiredError("item name"))
	}
	if unitPrice.IsNegative() {
		violations = append(violations,
			errs.NewValueIsInvalidErrorWithCause("unit price", fmt.Errorf("%s is negative", unitPrice)))
	}
	if quantity <= 0 {
		violations = append(violations,
			errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is not greater than 0", quantity)))
	}
	if err := errors.Join(violations...); err != nil {
		return LineItem{}, err
	}

	return item, nil
}

func (i LineItem) Name() string {
	return i.name
}

func (i LineItem) UnitPrice() decimal.Decimal {
	return i.unitPrice
}

func (i LineItem) Quantity() int {
	return i.quantity
}

// Subtotal is unit price times quantity.
func (i LineItem) Subtotal() decimal.Decimal {
	return i.unitPrice.Mul(decimal.NewFromInt(int64(i.quantity)))
}
