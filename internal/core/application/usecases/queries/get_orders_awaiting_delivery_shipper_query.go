package queries

import (
	"errors"

	"parcel/internal/core/domain/model/kernel"
	"parcel/internal/pkg/errs"
	"parcel/internal/pkg/guard"
)

const MaxAwaitingDeliveryShipperLimit = 500

var ErrGetOrdersAwaitingDeliveryShipperQueryIsNotConstructed = errors.New(
	"GetOrdersAwaitingDeliveryShipperQuery must be created via NewGetOrdersAwaitingDeliveryShipperQuery constructor",
)

// GetOrdersAwaitingDeliveryShipperQuery lists orders sitting at their destination office with no
// shipper bound, oldest ID first. The assignment sweep retries them.
type GetOrdersAwaitingDeliveryShipperQuery struct {
	limit int
	guard guard.ConstructorGuard
}

func NewGetOrdersAwaitingDeliveryShipperQuery(limit int) (GetOrdersAwaitingDeliveryShipperQuery, error) {
	if limit < 1 || limit > MaxAwaitingDeliveryShipperLimit {
		return GetOrdersAwaitingDeliveryShipperQuery{}, errs.NewValueIsOutOfRangeError(
			"limit", limit, 1, MaxAwaitingDeliveryShipperLimit,
		)
	}
	return GetOrdersAwaitingDeliveryShipperQuery{limit: limit, guard: guard.NewConstructorGuard()}, nil
}

func (q GetOrdersAwaitingDeliveryShipperQuery) Limit() int {
	return q.limit
}

func (q GetOrdersAwaitingDeliveryShipperQuery) Validate() error {
	return q.guard.Validate(ErrGetOrdersAwaitingDeliveryShipperQueryIsNotConstructed)
}

// GetOrdersAwaitingDeliveryShipperQueryResponse is one order waiting for dispatch.
type GetOrdersAwaitingDeliveryShipperQueryResponse struct {
	ID           kernel.ID
	TrackingCode string
}
