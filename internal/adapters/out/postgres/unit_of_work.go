// Package postgres provides the GORM implementation of the Unit of Work.
//
// A unit of work owns one transaction. Repositories obtained from it after Begin share that
// transaction; repositories obtained before Begin (or after Commit/Rollback) run directly on
// the pool. Handlers follow the same shape everywhere:
//
//	uow := factory.Create()
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() { _ = uow.Rollback(ctx) }()
//
//	o, err := uow.OrderRepository().GetForUpdate(ctx, id)
//	...
//	return uow.Commit(ctx)
//
// Rollback after a successful Commit returns gorm.ErrInvalidTransaction, which the deferred
// call ignores. Each UnitOfWork instance must be used by one goroutine.
package postgres

import (
	"context"

	"parcel/internal/adapters/out/postgres/codrepo"
	"parcel/internal/adapters/out/postgres/orderrepo"
	"parcel/internal/adapters/out/postgres/settlementrepo"
	"parcel/internal/adapters/out/postgres/shipperrepo"
	"parcel/internal/adapters/out/postgres/shoprepo"
	"parcel/internal/core/domain/model/kernel"
	"parcel/internal/core/ports"

	"gorm.io/gorm"
)

// trackedAggregate is an aggregate written during the unit of work.
type trackedAggregate struct {
	ID        kernel.ID
	Aggregate any
}

// GormUnitOfWorkFactory creates UnitOfWork instances sharing one connection pool.
type GormUnitOfWorkFactory struct {
	db *gorm.DB
}

func NewGormUnitOfWorkFactory(db *gorm.DB) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db}
}

// Create returns a fresh unit of work with its own transaction state.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:                f.db,
		trackedAggregates: make([]trackedAggregate, 0),
	}
}

// GormUnitOfWork coordinates one database transaction and records the aggregates written in it.
type GormUnitOfWork struct {
	db                *gorm.DB
	tx                *gorm.DB
	trackedAggregates []trackedAggregate
}

// Begin opens the transaction. Calling it twice is a no-op.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	tx := uow.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return tx.Error
	}

	uow.tx = tx
	return nil
}

func (uow *GormUnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	return err
}

func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	return err
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}

func (uow *GormUnitOfWork) OrderRepository() ports.OrderRepository {
	return orderrepo.NewGormOrderRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) ShipperAssignmentRepository() ports.ShipperAssignmentRepository {
	return shipperrepo.NewGormAssignmentRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) ShipperProfileRepository() ports.ShipperProfileRepository {
	return shipperrepo.NewGormProfileRepository(uow.conn())
}

func (uow *GormUnitOfWork) ShipperTaskRepository() ports.ShipperTaskRepository {
	return shipperrepo.NewGormTaskRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) CODCollectionRepository() ports.CODCollectionRepository {
	return codrepo.NewGormCODCollectionRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) SettlementBatchRepository() ports.SettlementBatchRepository {
	return settlementrepo.NewGormBatchRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) SettlementTransactionRepository() ports.SettlementTransactionRepository {
	return settlementrepo.NewGormTransactionRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) SettlementScheduleRepository() ports.SettlementScheduleRepository {
	return settlementrepo.NewGormScheduleRepository(uow.conn())
}

func (uow *GormUnitOfWork) ShopRepository() ports.ShopRepository {
	return shoprepo.NewGormShopRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) BankAccountRepository() ports.BankAccountRepository {
	return shoprepo.NewGormBankAccountRepository(uow.conn())
}

// TrackAggregate is called by repositories for every aggregate they add or update.
func (uow *GormUnitOfWork) TrackAggregate(id kernel.ID, aggregate any) {
	uow.trackedAggregates = append(uow.trackedAggregates, trackedAggregate{
		ID:        id,
		Aggregate: aggregate,
	})
}

// TrackedCount reports how many aggregate writes the unit of work has seen.
func (uow *GormUnitOfWork) TrackedCount() int {
	return len(uow.trackedAggregates)
}

// Models lists every table the adapters own, in migration order.
func Models() []any {
	return []any{
		&orderrepo.OfficeDTO{},
		&orderrepo.OrderDTO{},
		&shipperrepo.AssignmentDTO{},
		&shipperrepo.ProfileDTO{},
		&shipperrepo.TaskDTO{},
		&codrepo.RecordDTO{},
		&settlementrepo.BatchDTO{},
		&settlementrepo.TransactionDTO{},
		&settlementrepo.ScheduleDTO{},
		&shoprepo.ShopDTO{},
		&shoprepo.BankAccountDTO{},
	}
}
