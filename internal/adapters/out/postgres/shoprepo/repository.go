package shoprepo

import (
	"context"
	"errors"

	"parcel/internal/core/domain/model/kernel"
	"parcel/internal/core/domain/model/shop"
	"parcel/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type aggregateTracker interface {
	TrackAggregate(id kernel.ID, aggregate any)
}

// GormShopRepository implements ports.ShopRepository using GORM.
type GormShopRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

func NewGormShopRepository(db *gorm.DB, tracker aggregateTracker) *GormShopRepository {
	return &GormShopRepository{db: db, tracker: tracker}
}

func (r *GormShopRepository) Add(ctx context.Context, s *shop.Shop) error {
	dto := shopFromDomain(s)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(s.ID(), s)
	return nil
}

func (r *GormShopRepository) Get(ctx context.Context, id kernel.ID) (*shop.Shop, error) {
	return r.get(ctx, r.db, id)
}

func (r *GormShopRepository) GetForUpdate(ctx context.Context, id kernel.ID) (*shop.Shop, error) {
	return r.get(ctx, r.db.Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

func (r *GormShopRepository) get(ctx context.Context, db *gorm.DB, id kernel.ID) (*shop.Shop, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ShopDTO
	if err := db.WithContext(ctx).First(&dto, "id = ?", id.Int64()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("shop", id.Int64())
		}
		return nil, err
	}

	return shopToDomain(dto)
}

// Update persists the lock flag only.
func (r *GormShopRepository) Update(ctx context.Context, s *shop.Shop) error {
	result := r.db.WithContext(ctx).
		Model(&ShopDTO{}).
		Where("id = ?", s.ID().Int64()).
		Update("locked", s.IsLocked())
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(s.ID(), s)
	return nil
}

// GormBankAccountRepository implements ports.BankAccountRepository using GORM.
type GormBankAccountRepository struct {
	db *gorm.DB
}

func NewGormBankAccountRepository(db *gorm.DB) *GormBankAccountRepository {
	return &GormBankAccountRepository{db: db}
}

func (r *GormBankAccountRepository) Add(ctx context.Context, account *shop.BankAccount) error {
	dto := bankAccountFromDomain(account)
	return r.db.WithContext(ctx).Create(&dto).Error
}

func (r *GormBankAccountRepository) GetPayoutDefault(ctx context.Context, shopID kernel.ID) (*shop.BankAccount, error) {
	if err := shopID.Validate(); err != nil {
		return nil, err
	}

	var dto BankAccountDTO
	err := r.db.WithContext(ctx).First(&dto, "shop_id = ? AND payout_default", shopID.Int64()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("payoutBankAccount", shopID.Int64())
		}
		return nil, err
	}

	return bankAccountToDomain(dto)
}
