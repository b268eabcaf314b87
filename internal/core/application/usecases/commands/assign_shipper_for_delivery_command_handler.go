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

// AssignShipperForDeliveryCommandHandler binds a final-mile shipper to an order that reached its
// destination office. The order row is locked for the whole transaction so concurrent triggers
// for the same order produce exactly one binding.
//
// Example:
//
//	handler := NewAssignShipperForDeliveryCommandHandler(uowFactory, notifier, opsAccountID, logger)
//	cmd, _ := NewAssignShipperForDeliveryCommand(orderID, SystemActor, time.Now())
//	res, err := handler.Handle(ctx, cmd)
//	if err == nil && !res.Assigned {
//	    log.Println("order left for manual dispatch")
//	}
type AssignShipperForDeliveryCommandHandler struct {
	uowFactory          AssignmentUoWFactory
	notifier            ports.Notifier
	dispatcher          services.ShipperDispatcher
	operationsAccountID kernel.ID
	logger              *slog.Logger
}

func NewAssignShipperForDeliveryCommandHandler(
	uowFactory AssignmentUoWFactory, notifier ports.Notifier, operationsAccountID kernel.ID, logger *slog.Logger,
) AssignShipperForDeliveryCommandHandler {
	return AssignShipperForDeliveryCommandHandler{
		uowFactory:          uowFactory,
		notifier:            notifier,
		dispatcher:          services.NewShipperDispatcher(),
		operationsAccountID: operationsAccountID,
		logger:              logger,
	}
}

// Handle returns an empty result when the order is not waiting at the destination office, has
// no resolvable zone, or nobody is on duty. Only the last case alerts operations.
func (h AssignShipperForDeliveryCommandHandler) Handle(
	ctx context.Context, command AssignShipperForDeliveryCommand,
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

	if !o.CanAssignForDelivery() {
		h.logger.DebugContext(ctx, "order not waiting for delivery shipper",
			"order_id", o.ID(), "status", o.Status().String())
		return AssignShipperResult{}, nil
	}

	zone, ok := o.DeliveryZone()
	if !ok {
		h.logger.WarnContext(ctx, "order has no delivery zone", "order_id", o.ID())
		return AssignShipperResult{}, nil
	}

	picked, profile, err := pickShipper(ctx, uow, h.dispatcher, zone, officeID(o.DestinationOffice()), command.At())
	if err != nil {
		return AssignShipperResult{}, err
	}
	if picked == nil {
		h.logger.InfoContext(ctx, "no shipper on duty for delivery",
			"order_id", o.ID(), "zone", zone.String(), "retry", command.IsRetry())
		if !command.IsRetry() && !h.operationsAccountID.IsZero() {
			n, nErr := notification.NoShipperAvailable(h.operationsAccountID, o.ID(), o.TrackingCode(), zone)
			notify(ctx, h.notifier, h.logger, n, nErr)
		}
		return AssignShipperResult{}, nil
	}

	if err = o.AssignDeliveryShipper(profile.ID()); err != nil {
		return AssignShipperResult{}, err
	}

	task, err := ensureTask(ctx, uow.ShipperTaskRepository(), o.ID(), profile.ID(), shipper.TaskDeliveryReminder, command.At())
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

func (h AssignShipperForDeliveryCommandHandler) announce(ctx context.Context, o *order.Order, shipperAccountID kernel.ID) {
	n, err := notification.DeliveryTaskAssigned(shipperAccountID, o.ID(), o.TrackingCode())
	notify(ctx, h.notifier, h.logger, n, err)

	if owner := o.OwnerAccountID(); owner != nil {
		n, err = notification.OrderOutForDelivery(*owner, o.ID(), o.TrackingCode())
		notify(ctx, h.notifier, h.logger, n, err)
	}
}
