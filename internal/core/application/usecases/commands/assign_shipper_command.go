package commands

import (
	"errors"
	"time"

	"parcel/internal/core/domain/model/kernel"
	"parcel/internal/pkg/guard"
)

var (
	ErrAssignShipperForDeliveryCommandIsNotConstructed = errors.New(
		"AssignShipperForDeliveryCommand must be created via NewAssignShipperForDeliveryCommand constructor",
	)
	ErrAssignShipperForPickupCommandIsNotConstructed = errors.New(
		"AssignShipperForPickupCommand must be created via NewAssignShipperForPickupCommand constructor",
	)
)

type assignShipperCommand struct {
	orderID kernel.ID
	actorID kernel.ID
	at      time.Time
	guard   guard.ConstructorGuard
}

func newAssignShipperCommand(orderID, actorID kernel.ID, at time.Time) (assignShipperCommand, error) {
	if err := errors.Join(orderID.Validate(), validateActor(actorID), validateAt(at)); err != nil {
		return assignShipperCommand{}, err
	}
	return assignShipperCommand{
		orderID: orderID,
		actorID: actorID,
		at:      at,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c assignShipperCommand) OrderID() kernel.ID {
	return c.orderID
}

func (c assignShipperCommand) ActorID() kernel.ID {
	return c.actorID
}

// At is the instant roster windows are evaluated against.
func (c assignShipperCommand) At() time.Time {
	return c.at
}

// AssignShipperForDeliveryCommand binds a final-mile shipper to an order waiting at its
// destination office.
type AssignShipperForDeliveryCommand struct {
	assignShipperCommand
	retry bool
}

func NewAssignShipperForDeliveryCommand(orderID, actorID kernel.ID, at time.Time) (AssignShipperForDeliveryCommand, error) {
	c, err := newAssignShipperCommand(orderID, actorID, at)
	if err != nil {
		return AssignShipperForDeliveryCommand{}, err
	}
	return AssignShipperForDeliveryCommand{assignShipperCommand: c}, nil
}

// AsRetry marks the command as a repeated attempt. Operations were already alerted on the
// first miss, so a retry that finds nobody on duty stays quiet.
func (c AssignShipperForDeliveryCommand) AsRetry() AssignShipperForDeliveryCommand {
	c.retry = true
	return c
}

func (c AssignShipperForDeliveryCommand) IsRetry() bool {
	return c.retry
}

func (c AssignShipperForDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrAssignShipperForDeliveryCommandIsNotConstructed)
}

// AssignShipperForPickupCommand binds a courier to collect an order from its sender.
type AssignShipperForPickupCommand struct {
	assignShipperCommand
}

func NewAssignShipperForPickupCommand(orderID, actorID kernel.ID, at time.Time) (AssignShipperForPickupCommand, error) {
	c, err := newAssignShipperCommand(orderID, actorID, at)
	if err != nil {
		return AssignShipperForPickupCommand{}, err
	}
	return AssignShipperForPickupCommand{assignShipperCommand: c}, nil
}

func (c AssignShipperForPickupCommand) Validate() error {
	return c.guard.Validate(ErrAssignShipperForPickupCommandIsNotConstructed)
}

// AssignShipperResult is empty (Assigned == false) when no shipper was bound. That is a valid
// outcome, not an error: the order stays untouched and can be retried.
type AssignShipperResult struct {
	Assigned         bool
	ShipperAccountID kernel.ID
	ShipperProfileID kernel.ID
	TaskID           kernel.ID
}
