package ports

import (
	"context"
	"time"

	"parcel/internal/core/domain/model/kernel"
	"parcel/internal/core/domain/model/settlement"
)

// SettlementBatchRepository defines the persistence contract for settlement batches.
type SettlementBatchRepository interface {
	// Add inserts the batch and sets its storage-assigned ID.
	Add(ctx context.Context, batch *settlement.Batch) error
	Update(ctx context.Context, batch *settlement.Batch) error
	Get(ctx context.Context, id kernel.ID) (*settlement.Batch, error)

	// FindUnpaidCreatedBefore returns PENDING, PARTIAL and FAILED batches created before the
	// cutoff, oldest first.
	FindUnpaidCreatedBefore(ctx context.Context, cutoff time.Time) ([]*settlement.Batch, error)
}

// SettlementTransactionRepository stores payouts.
type SettlementTransactionRepository interface {
	// Add inserts the transaction and sets its storage-assigned ID.
	Add(ctx context.Context, tx *settlement.Transaction) error
	FindByBatch(ctx context.Context, batchID kernel.ID) ([]*settlement.Transaction, error)
}

// SettlementScheduleRepository stores per-shop batch schedules.
type SettlementScheduleRepository interface {
	Save(ctx context.Context, schedule *settlement.Schedule) error

	// FindShopsDueOn returns the IDs of shops whose schedule includes day, ordered by ID.
	FindShopsDueOn(ctx context.Context, day time.Weekday) ([]kernel.ID, error)
}
