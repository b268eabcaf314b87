package order

import (
	"fmt"

	"parcel/internal/pkg/errs"
)

// Status is the lifecycle state of a parcel order.
//
// The part of the lifecycle this service drives:
//
//	CONFIRMED / PENDING / READY_FOR_PICKUP ──(pickup shipper attached, status kept)
//	AT_DEST_OFFICE ──(delivery shipper attached)──> READY_FOR_PICKUP
//	DELIVERED / RETURNED ──(settled)──> attached to a settlement batch
//
// Every other transition belongs to the order workflow outside this core.
type Status int

const (
	// Unknown catches uninitialized values.
	Unknown Status = iota
	Draft
	Pending
	Confirmed
	ReadyForPickup
	PickingUp
	PickedUp
	AtOriginOffice
	InTransit
	AtDestOffice
	Delivering
	Delivered
	FailedDelivery
	Returning
	Returned
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:        "UNKNOWN",
		Draft:          "DRAFT",
		Pending:        "PENDING",
		Confirmed:      "CONFIRMED",
		ReadyForPickup: "READY_FOR_PICKUP",
		PickingUp:      "PICKING_UP",
		PickedUp:       "PICKED_UP",
		AtOriginOffice: "AT_ORIGIN_OFFICE",
		InTransit:      "IN_TRANSIT",
		AtDestOffice:   "AT_DEST_OFFICE",
		Delivering:     "DELIVERING",
		Delivered:      "DELIVERED",
		FailedDelivery: "FAILED_DELIVERY",
		Returning:      "RETURNING",
		Returned:       "RETURNED",
		Cancelled:      "CANCELLED",
	}
}

func (s Status) Validate() error {
	if s <= Unknown || s > Cancelled {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// IsPickupAssignable reports whether a courier pickup shipper may be attached in this state.
func (s Status) IsPickupAssignable() bool {
	return s == Confirmed || s == Pending || s == ReadyForPickup
}

// IsSettleable reports whether the order's money flow is closed and can enter a batch.
func (s Status) IsSettleable() bool {
	return s == Delivered || s == Returned
}

// AssignForDelivery returns the state an order moves to once a final-mile shipper is bound.
func (s Status) AssignForDelivery() (Status, error) {
	if s != AtDestOffice {
		return Unknown, errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s is not a valid status to assign a delivery shipper", s),
		)
	}
	return ReadyForPickup, nil
}
