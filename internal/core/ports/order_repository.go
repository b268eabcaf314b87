package ports

import (
	"context"

	"parcel/internal/core/domain/model/kernel"
	"parcel/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for the order aggregate.
type OrderRepository interface {
	// Add persists a new order. Order creation belongs to the order service; Add exists for
	// imports and fixtures.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists the fields this core mutates: status, shipper profile, settlement batch,
	// cod status, payment status and paid timestamp.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order with its origin and destination offices.
	Get(ctx context.Context, id kernel.ID) (*order.Order, error)

	// GetForUpdate retrieves an order and holds an exclusive row lock on it until the
	// surrounding transaction ends. Concurrent assignment triggers for the same order queue here.
	GetForUpdate(ctx context.Context, id kernel.ID) (*order.Order, error)

	// FindSettleableByShop returns the shop's DELIVERED or RETURNED orders that are not in any
	// settlement batch yet, ordered by ID. The returned rows stay locked until the transaction ends.
	FindSettleableByShop(ctx context.Context, shopID kernel.ID) ([]*order.Order, error)
}
