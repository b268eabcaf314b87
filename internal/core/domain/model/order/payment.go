package order

import (
	"fmt"

	"parcel/internal/pkg/errs"
)

// Payer is the party responsible for the shipping fee.
type Payer int

const (
	PayerUnknown Payer = iota
	PayerCustomer
	PayerShop
)

func (p Payer) String() string {
	switch p {
	case PayerCustomer:
		return "CUSTOMER"
	case PayerShop:
		return "SHOP"
	default:
		return "UNKNOWN"
	}
}

func (p Payer) Validate() error {
	if p != PayerCustomer && p != PayerShop {
		return errs.NewValueIsInvalidErrorWithCause("payer", fmt.Errorf("%d is not a valid payer", p))
	}
	return nil
}

// PaymentStatus tracks whether the shipping fee has been settled.
type PaymentStatus int

const (
	PaymentUnknown PaymentStatus = iota
	PaymentPaid
	PaymentUnpaid
	PaymentRefunded
)

func (p PaymentStatus) String() string {
	switch p {
	case PaymentPaid:
		return "PAID"
	case PaymentUnpaid:
		return "UNPAID"
	case PaymentRefunded:
		return "REFUNDED"
	default:
		return "UNKNOWN"
	}
}

func (p PaymentStatus) Validate() error {
	if p < PaymentPaid || p > PaymentRefunded {
		return errs.NewValueIsInvalidErrorWithCause("paymentStatus", fmt.Errorf("%d is not a valid payment status", p))
	}
	return nil
}

// CODStatus follows the cash collected on the shop's behalf. Values are ordered: a status may
// only be replaced by itself or a later one. CODNone sits before the ladder so orders without
// cash can still be closed as transferred.
type CODStatus int

const (
	CODUnknown CODStatus = iota
	CODNone
	CODExpected
	CODPending
	CODSubmitted
	CODReceived
	CODTransferred
)

func (c CODStatus) String() string {
	switch c {
	case CODNone:
		return "NONE"
	case CODExpected:
		return "EXPECTED"
	case CODPending:
		return "PENDING"
	case CODSubmitted:
		return "SUBMITTED"
	case CODReceived:
		return "RECEIVED"
	case CODTransferred:
		return "TRANSFERRED"
	default:
		return "UNKNOWN"
	}
}

func (c CODStatus) Validate() error {
	if c < CODNone || c > CODTransferred {
		return errs.NewValueIsInvalidErrorWithCause("codStatus", fmt.Errorf("%d is not a valid cod status", c))
	}
	return nil
}

// Advance returns next if it does not move the ladder backwards.
func (c CODStatus) Advance(next CODStatus) (CODStatus, error) {
	if err := next.Validate(); err != nil {
		return CODUnknown, err
	}
	if next < c {
		return CODUnknown, fmt.Errorf("%w: %s -> %s", ErrCODStatusRegression, c, next)
	}
	return next, nil
}

// PickupType says how the parcel reaches the network.
type PickupType int

const (
	PickupUnknown PickupType = iota
	PickupByCourier
	PickupDropOff
)

func (p PickupType) String() string {
	switch p {
	case PickupByCourier:
		return "PICKUP_BY_COURIER"
	case PickupDropOff:
		return "DROP_OFF"
	default:
		return "UNKNOWN"
	}
}

func (p PickupType) Validate() error {
	if p != PickupByCourier && p != PickupDropOff {
		return errs.NewValueIsInvalidErrorWithCause("pickupType", fmt.Errorf("%d is not a valid pickup type", p))
	}
	return nil
}
