package postgres_test

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	postgresadapter "parcel/internal/adapters/out/postgres"
	"parcel/internal/adapters/out/postgres/pgtest"
	"parcel/internal/adapters/out/postgres/settlementrepo"
	"parcel/internal/core/application/usecases/commands"
	"parcel/internal/core/domain/model/cod"
	"parcel/internal/core/domain/model/kernel"
	"parcel/internal/core/domain/model/notification"
	"parcel/internal/core/domain/model/order"
	"parcel/internal/core/domain/model/settlement"
	"parcel/internal/core/domain/model/shipper"
	"parcel/internal/core/domain/model/shop"
	"parcel/internal/core/domain/services"
	"parcel/internal/core/ports"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type recordingNotifier struct {
	mu   sync.Mutex
	sent []notification.Notification
}

func (n *recordingNotifier) Notify(_ context.Context, msg notification.Notification) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, msg)
}

func (n *recordingNotifier) recipients() []kernel.ID {
	n.mu.Lock()
	defer n.mu.Unlock()
	ids := make([]kernel.ID, 0, len(n.sent))
	for _, msg := range n.sent {
		ids = append(ids, msg.RecipientID)
	}
	return ids
}

// UnitOfWorkIntegrationTestSuite runs the unit of work and the command handlers against a real
// PostgreSQL database.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	pg      *pgtest.Database
	factory ports.UnitOfWorkFactory
	logger  *slog.Logger
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	pg, err := pgtest.Start(context.Background(), postgresadapter.Models()...)
	suite.Require().NoError(err)
	suite.pg = pg
	suite.factory = postgresadapter.NewGormUnitOfWorkFactory(pg.DB)
	suite.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.pg.Truncate())
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.pg != nil {
		suite.Require().NoError(suite.pg.Terminate(context.Background()))
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionLifecycle() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Begin(ctx), "second Begin is a no-op")
	suite.Require().NoError(uow.Commit(ctx))

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Rollback(ctx))

	suite.Error(uow.Commit(ctx), "commit without an open transaction")
	suite.Error(uow.Rollback(ctx), "rollback without an open transaction")
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_CommitPersistsAcrossRepositories() {
	ctx := context.Background()
	now := time.Date(2026, 5, 4, 10, 0, 0, 0, time.UTC)
	uow := suite.factory.Create()

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.ShopRepository().Add(ctx, suite.newShop(1, 100)))
	o := suite.newOrder(order.Snapshot{ID: 10, ShopID: 1, Status: order.Delivered, Payer: order.PayerCustomer,
		PaymentStatus: order.PaymentPaid, COD: decimal.NewFromInt(200)})
	suite.Require().NoError(uow.OrderRepository().Add(ctx, o))

	batch, err := settlement.NewBatch("SB-TEST-1", 1, now)
	suite.Require().NoError(err)
	suite.Require().NoError(uow.SettlementBatchRepository().Add(ctx, batch))
	suite.Positive(batch.ID().Int64())

	suite.Require().NoError(o.AttachToBatch(batch.ID(), decimal.NewFromInt(200)))
	suite.Require().NoError(uow.OrderRepository().Update(ctx, o))
	suite.Require().NoError(uow.Commit(ctx))

	gormUoW, ok := uow.(*postgresadapter.GormUnitOfWork)
	suite.Require().True(ok)
	suite.Equal(4, gormUoW.TrackedCount(), "shop, order, batch and the order update")

	stored, err := suite.factory.Create().OrderRepository().Get(ctx, 10)
	suite.Require().NoError(err)
	suite.Require().NotNil(stored.SettlementBatchID())
	suite.Equal(batch.ID(), *stored.SettlementBatchID())
	suite.True(decimal.NewFromInt(200).Equal(stored.SettlementAmount()))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_RollbackDiscardsChanges() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.ShopRepository().Add(ctx, suite.newShop(1, 100)))
	_, err := uow.ShopRepository().Get(ctx, 1)
	suite.Require().NoError(err, "visible inside the transaction")
	suite.Equal(1, uow.(*postgresadapter.GormUnitOfWork).TrackedCount(), "reads are not tracked")
	suite.Require().NoError(uow.Rollback(ctx))

	_, err = suite.factory.Create().ShopRepository().Get(ctx, 1)
	suite.Require().Error(err)
}

// Two concurrent delivery triggers for one order must bind exactly one shipper.
func (suite *UnitOfWorkIntegrationTestSuite) TestAssignShipperForDelivery_ConcurrentTriggersAssignOnce() {
	ctx := context.Background()
	now := time.Date(2026, 5, 4, 10, 0, 0, 0, time.UTC)
	zone := kernel.MustNewZone("Hanoi", "Ba Dinh")

	seed := suite.factory.Create()
	suite.Require().NoError(seed.OrderRepository().Add(ctx, suite.newOrder(order.Snapshot{
		ID: 10, ShopID: 1, OwnerAccountID: idPtr(100), Status: order.AtDestOffice, RecipientZone: zone,
	})))
	suite.seedShipper(seed, 7, 70, zone, now.Add(-time.Hour), now.Add(time.Hour), now.Add(-2*time.Hour))

	notifier := &recordingNotifier{}
	handler := commands.NewAssignShipperForDeliveryCommandHandler(
		suite.uowFactory(), notifier, 999, suite.logger)
	cmd, err := commands.NewAssignShipperForDeliveryCommand(10, commands.SystemActor, now)
	suite.Require().NoError(err)

	results := make([]commands.AssignShipperResult, 2)
	errList := make([]error, 2)
	var wg sync.WaitGroup
	for i := range 2 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i], errList[i] = handler.Handle(ctx, cmd)
		}()
	}
	wg.Wait()

	suite.Require().NoError(errList[0])
	suite.Require().NoError(errList[1])
	suite.NotEqual(results[0].Assigned, results[1].Assigned, "exactly one trigger binds a shipper")

	stored, err := suite.factory.Create().OrderRepository().Get(ctx, 10)
	suite.Require().NoError(err)
	suite.Equal(order.ReadyForPickup, stored.Status())
	suite.Equal([]kernel.ID{70, 100}, notifier.recipients())
}

// Shop with a delivered prepaid order, a returned unpaid order and a shop-paid zero-cod order.
func (suite *UnitOfWorkIntegrationTestSuite) TestCreateShopSettlementBatch_PersistsBatchAndPayout() {
	ctx := context.Background()
	now := time.Date(2026, 5, 4, 1, 0, 0, 0, time.UTC)

	seed := suite.factory.Create()
	suite.Require().NoError(seed.ShopRepository().Add(ctx, suite.newShop(1, 100)))
	account, err := shop.RestoreBankAccount(5, 1, "ACB", "0001", "Shop One", true)
	suite.Require().NoError(err)
	suite.Require().NoError(seed.BankAccountRepository().Add(ctx, account))

	orders := []order.Snapshot{
		{ID: 10, ShopID: 1, Status: order.Delivered, Payer: order.PayerCustomer, PaymentStatus: order.PaymentPaid,
			COD: decimal.NewFromInt(200000), TotalFee: decimal.NewFromInt(30000), CODStatus: order.CODPending},
		{ID: 11, ShopID: 1, Status: order.Returned, Payer: order.PayerCustomer, PaymentStatus: order.PaymentUnpaid,
			TotalFee: decimal.NewFromInt(25000)},
		{ID: 12, ShopID: 1, Status: order.Delivered, Payer: order.PayerShop, PaymentStatus: order.PaymentUnpaid,
			TotalFee: decimal.NewFromInt(20000)},
	}
	for _, s := range orders {
		suite.Require().NoError(seed.OrderRepository().Add(ctx, suite.newOrder(s)))
	}
	record, err := cod.NewRecord(10, 70, decimal.NewFromInt(200000), now.Add(-24*time.Hour))
	suite.Require().NoError(err)
	suite.Require().NoError(record.Resolve(cod.StatusMatched))
	suite.Require().NoError(seed.CODCollectionRepository().Add(ctx, record))

	notifier := &recordingNotifier{}
	handler := commands.NewCreateShopSettlementBatchCommandHandler(suite.settlementFactory(), notifier, suite.logger)
	cmd, err := commands.NewCreateShopSettlementBatchCommand(1, commands.SystemActor, now)
	suite.Require().NoError(err)

	res, err := handler.Handle(ctx, cmd)
	suite.Require().NoError(err)
	suite.Equal(2, res.Included)
	suite.Equal(1, res.Excluded)
	suite.True(decimal.NewFromInt(175000).Equal(res.Balance), "200000 - 25000")
	suite.Equal(settlement.BatchCompleted, res.Status)
	suite.Require().NotNil(res.PayoutID)

	reader := suite.factory.Create()
	batch, err := reader.SettlementBatchRepository().Get(ctx, res.BatchID)
	suite.Require().NoError(err)
	suite.Equal(settlement.BatchCompleted, batch.Status())

	txs, err := reader.SettlementTransactionRepository().FindByBatch(ctx, res.BatchID)
	suite.Require().NoError(err)
	suite.Require().Len(txs, 1)
	suite.Equal("0001", txs[0].Destination().AccountNumber)

	excluded, err := reader.OrderRepository().Get(ctx, 12)
	suite.Require().NoError(err)
	suite.Nil(excluded.SettlementBatchID())

	returned, err := reader.OrderRepository().Get(ctx, 11)
	suite.Require().NoError(err)
	suite.Equal(order.CODTransferred, returned.CODStatus())
	suite.Equal(order.PaymentPaid, returned.PaymentStatus())

	// same-day rerun finds nothing left to settle
	again, err := handler.Handle(ctx, cmd)
	suite.Require().NoError(err)
	suite.True(again.Skipped)
	suite.Equal([]kernel.ID{100}, notifier.recipients())
}

// Two settlement runs for one shop must attach every order once and pay out once.
func (suite *UnitOfWorkIntegrationTestSuite) TestCreateShopSettlementBatch_ConcurrentRunsSettleOnce() {
	ctx := context.Background()
	now := time.Date(2026, 5, 4, 1, 0, 0, 0, time.UTC)

	seed := suite.factory.Create()
	suite.Require().NoError(seed.ShopRepository().Add(ctx, suite.newShop(1, 100)))
	account, err := shop.RestoreBankAccount(5, 1, "ACB", "0001", "Shop One", true)
	suite.Require().NoError(err)
	suite.Require().NoError(seed.BankAccountRepository().Add(ctx, account))
	for _, id := range []kernel.ID{10, 11, 12} {
		suite.Require().NoError(seed.OrderRepository().Add(ctx, suite.newOrder(order.Snapshot{
			ID: id, ShopID: 1, Status: order.Delivered, Payer: order.PayerCustomer, PaymentStatus: order.PaymentPaid,
			COD: decimal.NewFromInt(100000), TotalFee: decimal.NewFromInt(20000), CODStatus: order.CODPending,
		})))
	}

	notifier := &recordingNotifier{}
	handler := commands.NewCreateShopSettlementBatchCommandHandler(suite.settlementFactory(), notifier, suite.logger)
	cmd, err := commands.NewCreateShopSettlementBatchCommand(1, commands.SystemActor, now)
	suite.Require().NoError(err)

	results := make([]commands.ShopSettlementResult, 2)
	errList := make([]error, 2)
	var wg sync.WaitGroup
	for i := range 2 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i], errList[i] = handler.Handle(ctx, cmd)
		}()
	}
	wg.Wait()

	suite.Require().NoError(errList[0])
	suite.Require().NoError(errList[1])
	suite.NotEqual(results[0].Skipped, results[1].Skipped, "exactly one run builds a batch")

	winner := results[0]
	if winner.Skipped {
		winner = results[1]
	}
	suite.Equal(3, winner.Included)
	suite.Require().NotNil(winner.PayoutID)

	var batches, payouts int64
	suite.Require().NoError(suite.pg.DB.Model(&settlementrepo.BatchDTO{}).Count(&batches).Error)
	suite.Require().NoError(suite.pg.DB.Model(&settlementrepo.TransactionDTO{}).Count(&payouts).Error)
	suite.Equal(int64(1), batches)
	suite.Equal(int64(1), payouts)

	reader := suite.factory.Create()
	for _, id := range []kernel.ID{10, 11, 12} {
		stored, err := reader.OrderRepository().Get(ctx, id)
		suite.Require().NoError(err)
		suite.Require().NotNil(stored.SettlementBatchID())
		suite.Equal(winner.BatchID, *stored.SettlementBatchID())
	}
	suite.Equal([]kernel.ID{100}, notifier.recipients())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestEscalateOverdueBatches_LocksShopOnce() {
	ctx := context.Background()
	created := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	now := created.Add(73 * time.Hour)

	seed := suite.factory.Create()
	suite.Require().NoError(seed.ShopRepository().Add(ctx, suite.newShop(1, 100)))
	batch, err := settlement.NewBatch("SB-TEST-2", 1, created)
	suite.Require().NoError(err)
	suite.Require().NoError(seed.SettlementBatchRepository().Add(ctx, batch))

	notifier := &recordingNotifier{}
	handler := commands.NewEscalateOverdueBatchesCommandHandler(
		suite.escalationFactory(), notifier, services.DefaultEscalationPolicy(), suite.logger)
	cmd, err := commands.NewEscalateOverdueBatchesCommand(commands.SystemActor, now)
	suite.Require().NoError(err)

	summary, err := handler.Handle(ctx, cmd)
	suite.Require().NoError(err)
	suite.Equal(1, summary.Warned)
	suite.Equal(1, summary.Locked)

	summary, err = handler.Handle(ctx, cmd)
	suite.Require().NoError(err)
	suite.Zero(summary.Warned)
	suite.Zero(summary.Locked)

	s, err := suite.factory.Create().ShopRepository().Get(ctx, 1)
	suite.Require().NoError(err)
	suite.True(s.IsLocked())
	suite.Len(notifier.recipients(), 2)
}

func (suite *UnitOfWorkIntegrationTestSuite) seedShipper(
	uow ports.UnitOfWork, profileID, accountID kernel.ID, zone kernel.Zone, start, end, created time.Time,
) {
	ctx := context.Background()
	profile, err := shipper.RestoreProfile(profileID, accountID, nil)
	suite.Require().NoError(err)
	suite.Require().NoError(uow.ShipperProfileRepository().Add(ctx, profile))

	assignment, err := shipper.NewAssignment(accountID, zone, start, end, created)
	suite.Require().NoError(err)
	suite.Require().NoError(uow.ShipperAssignmentRepository().Add(ctx, assignment))
}

func (suite *UnitOfWorkIntegrationTestSuite) newShop(id, owner kernel.ID) *shop.Shop {
	s, err := shop.RestoreShop(id, owner, false)
	suite.Require().NoError(err)
	return s
}

func (suite *UnitOfWorkIntegrationTestSuite) newOrder(s order.Snapshot) *order.Order {
	if s.TrackingCode == "" {
		s.TrackingCode = "TRK" + s.ID.String()
	}
	if s.PickupType == order.PickupUnknown {
		s.PickupType = order.PickupDropOff
	}
	if s.Payer == order.PayerUnknown {
		s.Payer = order.PayerCustomer
	}
	if s.PaymentStatus == order.PaymentUnknown {
		s.PaymentStatus = order.PaymentUnpaid
	}
	if s.CODStatus == order.CODUnknown {
		s.CODStatus = order.CODNone
	}
	o, err := order.RestoreOrder(s)
	suite.Require().NoError(err)
	return o
}

func (suite *UnitOfWorkIntegrationTestSuite) uowFactory() commands.AssignmentUoWFactory {
	return assignmentFactory{suite.factory}
}

func (suite *UnitOfWorkIntegrationTestSuite) settlementFactory() commands.SettlementUoWFactory {
	return settlementFactory{suite.factory}
}

func (suite *UnitOfWorkIntegrationTestSuite) escalationFactory() commands.EscalationUoWFactory {
	return escalationFactory{suite.factory}
}

type assignmentFactory struct{ f ports.UnitOfWorkFactory }

func (a assignmentFactory) Create() commands.AssignmentUoW { return a.f.Create() }

type settlementFactory struct{ f ports.UnitOfWorkFactory }

func (s settlementFactory) Create() commands.SettlementUoW { return s.f.Create() }

type escalationFactory struct{ f ports.UnitOfWorkFactory }

func (e escalationFactory) Create() commands.EscalationUoW { return e.f.Create() }

func idPtr(id kernel.ID) *kernel.ID {
	return &id
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
