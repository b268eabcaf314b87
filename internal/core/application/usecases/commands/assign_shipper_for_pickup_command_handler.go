package commands

import (
	"context"
	"log/slog"

	"parcel/internal/core/domain/model/kernel"
	"parcel/internal/core/domain/model/notification"
	"parcel/internal/core/domain/model/order"
	"parcel/internal/core/domain/model/shipper"
	"parcel/internal/core/domain/services"
	"parcel/internal/core/ports"
)

// AssignShipperForPickupCommandHandler binds a courier to collect an order from the sender.
// The order status does not change: the pickup itself moves it forward.
type AssignShipperForPickupCommandHandler struct {
	uowFactory AssignmentUoWFactory
	notifier   ports.Notifier
	dispatcher services.ShipperDispatcher
	logger     *slog.Logger
}

func NewAssignShipperForPickupCommandHandler(
	uowFactory AssignmentUoWFactory, notifier ports.Notifier, logger *slog.Logger,
) AssignShipperForPickupCommandHandler {
	return AssignShipperForPickupCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		dispatcher: services.NewShipperDispatcher(),
		logger:     logger,
	}
}

// Handle returns an empty result when the order does not take courier pickup, is past the
// pickup stage, or nobody is on duty near the sender. None of these alert operations.
func (h AssignShipperForPickupCommandHandler) Handle(
	ctx context.Context, command AssignShipperForPickupCommand,
) (AssignShipperResult, error) {
	if err := command.Validate(); err != nil {
		return AssignShipperResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return AssignShipperResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	o, err := uow.OrderRepository().GetForUpdate(ctx, command.OrderID())
	if err != nil {
		return AssignShipperResult{}, err
	}

	if !o.CanAssignForPickup() {
		return AssignShipperResult{}, nil
	}

	zone, ok := o.PickupZone()
	if !ok {
		h.logger.WarnContext(ctx, "order has no pickup zone", "order_id", o.ID())
		return AssignShipperResult{}, nil
	}

	picked, profile, err := pickShipper(ctx, uow, h.dispatcher, zone, officeID(o.OriginOffice()), command.At())
	if err != nil {
		return AssignShipperResult{}, err
	}
	if picked == nil {
		h.logger.InfoContext(ctx, "no shipper on duty for pickup", "order_id", o.ID(), "zone", zone.String())
		return AssignShipperResult{}, nil
	}

	if err = o.AssignPickupShipper(profile.ID()); err != nil {
		return AssignShipperResult{}, err
	}

	task, err := ensureTask(ctx, uow.ShipperTaskRepository(), o.ID(), profile.ID(), shipper.TaskPickupReminder, command.At())
	if err != nil {
		return AssignShipperResult{}, err
	}

	if err = uow.OrderRepository().Update(ctx, o); err != nil {
		return AssignShipperResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return AssignShipperResult{}, err
	}

	h.announce(ctx, o, picked.ShipperID())

	return AssignShipperResult{
		Assigned:         true,
		ShipperAccountID: picked.ShipperID(),
		ShipperProfileID: profile.ID(),
		TaskID:           task.ID(),
	}, nil
}

func (h AssignShipperForPickupCommandHandler) announce(ctx context.Context, o *order.Order, shipperAccountID kernel.ID) {
	n, err := notification.PickupTaskAssigned(shipperAccountID, o.ID(), o.TrackingCode())
	notify(ctx, h.notifier, h.logger, n, err)

	if owner := o.OwnerAccountID(); owner != nil {
		n, err = notification.PickupScheduled(*owner, o.ID(), o.TrackingCode())
		notify(ctx, h.notifier, h.logger, n, err)
	}
}
