package settlementrepo

import (
	"context"
	"errors"
	"time"

	"parcel/internal/core/domain/model/kernel"
	"parcel/internal/core/domain/model/settlement"
	"parcel/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type aggregateTracker interface {
	TrackAggregate(id kernel.ID, aggregate any)
}

// GormBatchRepository implements ports.SettlementBatchRepository using GORM.
type GormBatchRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

func NewGormBatchRepository(db *gorm.DB, tracker aggregateTracker) *GormBatchRepository {
	return &GormBatchRepository{db: db, tracker: tracker}
}

func (r *GormBatchRepository) Add(ctx context.Context, batch *settlement.Batch) error {
	if err := batch.Validate(); err != nil {
		return err
	}

	dto := batchFromDomain(batch)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	batch.SetID(kernel.ID(dto.ID))
	r.tracker.TrackAggregate(batch.ID(), batch)
	return nil
}

func (r *GormBatchRepository) Update(ctx context.Context, batch *settlement.Batch) error {
	if err := errors.Join(batch.Validate(), batch.ID().Validate()); err != nil {
		return err
	}

	dto := batchFromDomain(batch)
	result := r.db.WithContext(ctx).
		Model(&BatchDTO{}).
		Where("id = ?", dto.ID).
		Select("balance", "status", "warning_sent", "locked_sent", "updated_at").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(batch.ID(), batch)
	return nil
}

func (r *GormBatchRepository) Get(ctx context.Context, id kernel.ID) (*settlement.Batch, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto BatchDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Int64()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("settlementBatch", id.Int64())
		}
		return nil, err
	}

	return batchToDomain(dto)
}

func (r *GormBatchRepository) FindUnpaidCreatedBefore(ctx context.Context, cutoff time.Time) ([]*settlement.Batch, error) {
	unpaid := settlement.UnpaidBatchStatuses()
	statuses := make([]int, 0, len(unpaid))
	for _, s := range unpaid {
		statuses = append(statuses, int(s))
	}

	var dtos []BatchDTO
	err := r.db.WithContext(ctx).
		Where("status IN ? AND created_at < ?", statuses, cutoff).
		Order("created_at, id").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	batches := make([]*settlement.Batch, 0, len(dtos))
	for _, dto := range dtos {
		b, err := batchToDomain(dto)
		if err != nil {
			return nil, err
		}
		batches = append(batches, b)
	}

	return batches, nil
}

// GormTransactionRepository implements ports.SettlementTransactionRepository using GORM.
type GormTransactionRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

func NewGormTransactionRepository(db *gorm.DB, tracker aggregateTracker) *GormTransactionRepository {
	return &GormTransactionRepository{db: db, tracker: tracker}
}

func (r *GormTransactionRepository) Add(ctx context.Context, tx *settlement.Transaction) error {
	dto := transactionFromDomain(tx)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	tx.SetID(kernel.ID(dto.ID))
	r.tracker.TrackAggregate(tx.ID(), tx)
	return nil
}

func (r *GormTransactionRepository) FindByBatch(ctx context.Context, batchID kernel.ID) ([]*settlement.Transaction, error) {
	var dtos []TransactionDTO
	if err := r.db.WithContext(ctx).Where("batch_id = ?", batchID.Int64()).Order("id").Find(&dtos).Error; err != nil {
		return nil, err
	}

	txs := make([]*settlement.Transaction, 0, len(dtos))
	for _, dto := range dtos {
		t, err := transactionToDomain(dto)
		if err != nil {
			return nil, err
		}
		txs = append(txs, t)
	}

	return txs, nil
}

// GormScheduleRepository implements ports.SettlementScheduleRepository using GORM.
type GormScheduleRepository struct {
	db *gorm.DB
}

func NewGormScheduleRepository(db *gorm.DB) *GormScheduleRepository {
	return &GormScheduleRepository{db: db}
}

// Save inserts the schedule or replaces the shop's weekdays.
func (r *GormScheduleRepository) Save(ctx context.Context, schedule *settlement.Schedule) error {
	dto := scheduleFromDomain(schedule)
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "shop_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"weekdays"}),
		}).
		Create(&dto).Error
}

func (r *GormScheduleRepository) FindShopsDueOn(ctx context.Context, day time.Weekday) ([]kernel.ID, error) {
	var shopIDs []int64
	err := r.db.WithContext(ctx).
		Model(&ScheduleDTO{}).
		Where("? = ANY(weekdays)", int64(day)).
		Order("shop_id").
		Pluck("shop_id", &shopIDs).Error
	if err != nil {
		return nil, err
	}

	ids := make([]kernel.ID, 0, len(shopIDs))
	for _, id := range shopIDs {
		ids = append(ids, kernel.ID(id))
	}
	return ids, nil
}
