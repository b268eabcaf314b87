package codrepo

import (
	"context"
	"errors"

	"parcel/internal/core/domain/model/cod"
	"parcel/internal/core/domain/model/kernel"
	"parcel/internal/pkg/errs"

	"gorm.io/gorm"
)

type aggregateTracker interface {
	TrackAggregate(id kernel.ID, aggregate any)
}

// GormCODCollectionRepository implements ports.CODCollectionRepository using GORM.
type GormCODCollectionRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

func NewGormCODCollectionRepository(db *gorm.DB, tracker aggregateTracker) *GormCODCollectionRepository {
	return &GormCODCollectionRepository{db: db, tracker: tracker}
}

func (r *GormCODCollectionRepository) Add(ctx context.Context, record *cod.Record) error {
	dto := fromDomain(record)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	record.SetID(kernel.ID(dto.ID))
	r.tracker.TrackAggregate(record.ID(), record)
	return nil
}

func (r *GormCODCollectionRepository) Update(ctx context.Context, record *cod.Record) error {
	if err := record.ID().Validate(); err != nil {
		return err
	}

	dto := fromDomain(record)
	result := r.db.WithContext(ctx).
		Model(&RecordDTO{}).
		Where("id = ?", dto.ID).
		Select("amount", "status").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(record.ID(), record)
	return nil
}

func (r *GormCODCollectionRepository) GetByOrder(ctx context.Context, orderID kernel.ID) (*cod.Record, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dto RecordDTO
	if err := r.db.WithContext(ctx).First(&dto, "order_id = ?", orderID.Int64()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("codCollection", orderID.Int64())
		}
		return nil, err
	}

	return toDomain(dto)
}
