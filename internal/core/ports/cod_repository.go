package ports

import (
	"context"

	"parcel/internal/core/domain/model/cod"
	"parcel/internal/core/domain/model/kernel"
)

// CODCollectionRepository is the boundary to the COD collection store. Settlement only reads
// records; writes belong to the collection and reconciliation flows.
type CODCollectionRepository interface {
	Add(ctx context.Context, record *cod.Record) error
	Update(ctx context.Context, record *cod.Record) error

	// GetByOrder returns errs.ObjectNotFoundError when the order has no collection record.
	GetByOrder(ctx context.Context, orderID kernel.ID) (*cod.Record, error)
}
