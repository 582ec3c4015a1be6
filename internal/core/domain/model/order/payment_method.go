package order

import (
	"fmt"

	"dispatch/internal/pkg/errs"
)

// PaymentMethod is forwarded to the payment collaborator on submission.
type PaymentMethod string

const (
	PaymentCard   PaymentMethod = "card"
	PaymentCash   PaymentMethod = "cash"
	PaymentWallet PaymentMethod = "wallet"
)

func (m PaymentMethod) Validate() error {
	switch m {
	case PaymentCard, PaymentCash, PaymentWallet:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("payment method", fmt.Errorf("%q is not supported", string(m)))
	}
}

func (m PaymentMethod) String() string {
	return string(m)
}
