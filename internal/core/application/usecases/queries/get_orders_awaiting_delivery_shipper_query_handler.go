package queries

import (
	"context"

	"parcel/internal/core/domain/model/kernel"
	"parcel/internal/core/domain/model/order"

	"gorm.io/gorm"
)

type GetOrdersAwaitingDeliveryShipperQueryHandler struct {
	db *gorm.DB
}

func NewGetOrdersAwaitingDeliveryShipperQueryHandler(db *gorm.DB) GetOrdersAwaitingDeliveryShipperQueryHandler {
	return GetOrdersAwaitingDeliveryShipperQueryHandler{db: db}
}

func (h GetOrdersAwaitingDeliveryShipperQueryHandler) Handle(
	ctx context.Context,
	query GetOrdersAwaitingDeliveryShipperQuery,
) ([]GetOrdersAwaitingDeliveryShipperQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders := make([]GetOrdersAwaitingDeliveryShipperQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT id, tracking_code
		FROM orders
		WHERE status = ? AND shipper_profile_id IS NULL
		ORDER BY id
		LIMIT ?
	`, int(order.AtDestOffice), query.Limit()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			resp GetOrdersAwaitingDeliveryShipperQueryResponse
			id   int64
		)
		if err = rows.Scan(&id, &resp.TrackingCode); err != nil {
			return nil, err
		}
		resp.ID = kernel.ID(id)
		orders = append(orders, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
