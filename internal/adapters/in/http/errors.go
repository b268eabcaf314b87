package http

import (
	"errors"

	"parcel/internal/core/application/usecases/commands"
	"parcel/internal/pkg/errs"
)

var notConstructed = []error{
	commands.ErrAssignShipperForDeliveryCommandIsNotConstructed,
	commands.ErrAssignShipperForPickupCommandIsNotConstructed,
	commands.ErrCreateShopSettlementBatchCommandIsNotConstructed,
	commands.ErrCreateSettlementBatchesCommandIsNotConstructed,
	commands.ErrEscalateOverdueBatchesCommandIsNotConstructed,
}

func isNotFound(err error) bool {
	return errors.Is(err, errs.ErrObjectNotFound)
}

func isInvalid(err error) bool {
	if errors.Is(err, errs.ErrValueIsRequired) ||
		errors.Is(err, errs.ErrValueIsOutOfRange) ||
		errors.Is(err, errs.ErrValueIsInvalid) {
		return true
	}
	for _, target := range notConstructed {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
