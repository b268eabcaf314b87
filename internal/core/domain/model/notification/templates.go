package notification

import (
	"fmt"

	"parcel/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
)

func DeliveryTaskAssigned(shipperAccountID, orderID kernel.ID, trackingCode string) (Notification, error) {
	return New(
		shipperAccountID,
		"New delivery task",
		fmt.Sprintf("Order %s is waiting for you at the destination office.", trackingCode),
		CategoryOrder, RelatedOrder, orderID,
	)
}

func PickupTaskAssigned(shipperAccountID, orderID kernel.ID, trackingCode string) (Notification, error) {
	return New(
		shipperAccountID,
		"New pickup task",
		fmt.Sprintf("Pick up order %s from the sender.", trackingCode),
		CategoryOrder, RelatedOrder, orderID,
	)
}

func OrderOutForDelivery(ownerAccountID, orderID kernel.ID, trackingCode string) (Notification, error) {
	return New(
		ownerAccountID,
		"Shipper assigned",
		fmt.Sprintf("A shipper has been assigned to deliver order %s.", trackingCode),
		CategoryOrder, RelatedOrder, orderID,
	)
}

func PickupScheduled(ownerAccountID, orderID kernel.ID, trackingCode string) (Notification, error) {
	return New(
		ownerAccountID,
		"Pickup scheduled",
		fmt.Sprintf("A shipper will pick up order %s.", trackingCode),
		CategoryOrder, RelatedOrder, orderID,
	)
}

// NoShipperAvailable goes to the operations account when automatic dispatch found nobody.
func NoShipperAvailable(operationsAccountID, orderID kernel.ID, trackingCode string, zone kernel.Zone) (Notification, error) {
	return New(
		operationsAccountID,
		"No shipper available",
		fmt.Sprintf("No active shipper covers %s for order %s. Assign one manually.", zone, trackingCode),
		CategorySystem, RelatedOrder, orderID,
	)
}

func BatchSettled(ownerAccountID, batchID kernel.ID, code string, balance decimal.Decimal) (Notification, error) {
	return New(
		ownerAccountID,
		"Settlement batch created",
		fmt.Sprintf("Settlement batch %s has been created with a balance of %s.", code, balance.StringFixed(2)),
		CategorySettlement, RelatedSettlementBatch, batchID,
	)
}

func BatchOverdueWarning(ownerAccountID, batchID kernel.ID, code string) (Notification, error) {
	return New(
		ownerAccountID,
		"Settlement overdue",
		fmt.Sprintf("Settlement batch %s is still unpaid. Your account will be locked if it stays unpaid.", code),
		CategorySettlement, RelatedSettlementBatch, batchID,
	)
}

func ShopLockedForBatch(ownerAccountID, batchID kernel.ID, code string) (Notification, error) {
	return New(
		ownerAccountID,
		"Account locked",
		fmt.Sprintf("Your shop is locked because settlement batch %s is unpaid. New orders are blocked.", code),
		CategorySettlement, RelatedSettlementBatch, batchID,
	)
}
