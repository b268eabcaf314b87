package commands_test

import (
	"context"
	"io"
	"log/slog"
	"time"

	"parcel/internal/core/application/usecases/commands"
	"parcel/internal/core/domain/model/cod"
	"parcel/internal/core/domain/model/kernel"
	"parcel/internal/core/domain/model/notification"
	"parcel/internal/core/domain/model/order"
	"parcel/internal/core/domain/model/settlement"
	"parcel/internal/core/domain/model/shipper"
	"parcel/internal/core/domain/model/shop"
	"parcel/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// returnOrNil unwraps a typed mock return value that may have been registered as nil.
func returnOrNil[T any](args mock.Arguments, i int) T {
	var zero T
	if v, ok := args.Get(i).(T); ok {
		return v
	}
	return zero
}

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.ID) (*order.Order, error) {
	args := m.Called(ctx, id)
	return returnOrNil[*order.Order](args, 0), args.Error(1)
}

func (m *MockOrderRepository) GetForUpdate(ctx context.Context, id kernel.ID) (*order.Order, error) {
	args := m.Called(ctx, id)
	return returnOrNil[*order.Order](args, 0), args.Error(1)
}

func (m *MockOrderRepository) FindSettleableByShop(ctx context.Context, shopID kernel.ID) ([]*order.Order, error) {
	args := m.Called(ctx, shopID)
	return returnOrNil[[]*order.Order](args, 0), args.Error(1)
}

type MockAssignmentRepository struct{ mock.Mock }

func (m *MockAssignmentRepository) Add(ctx context.Context, a *shipper.Assignment) error {
	return m.Called(ctx, a).Error(0)
}

func (m *MockAssignmentRepository) FindActiveInZone(
	ctx context.Context, zone kernel.Zone, at time.Time,
) ([]*shipper.Assignment, error) {
	args := m.Called(ctx, zone, at)
	return returnOrNil[[]*shipper.Assignment](args, 0), args.Error(1)
}

func (m *MockAssignmentRepository) FindActiveInCity(
	ctx context.Context, city string, at time.Time,
) ([]*shipper.Assignment, error) {
	args := m.Called(ctx, city, at)
	return returnOrNil[[]*shipper.Assignment](args, 0), args.Error(1)
}

type MockProfileRepository struct{ mock.Mock }

func (m *MockProfileRepository) Add(ctx context.Context, p *shipper.Profile) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockProfileRepository) FindByAccount(ctx context.Context, accountID kernel.ID) ([]*shipper.Profile, error) {
	args := m.Called(ctx, accountID)
	return returnOrNil[[]*shipper.Profile](args, 0), args.Error(1)
}

type MockTaskRepository struct{ mock.Mock }

func (m *MockTaskRepository) Add(ctx context.Context, t *shipper.Task) error {
	return m.Called(ctx, t).Error(0)
}

func (m *MockTaskRepository) Update(ctx context.Context, t *shipper.Task) error {
	return m.Called(ctx, t).Error(0)
}

func (m *MockTaskRepository) GetByOrderAndType(
	ctx context.Context, orderID kernel.ID, taskType shipper.TaskType,
) (*shipper.Task, error) {
	args := m.Called(ctx, orderID, taskType)
	return returnOrNil[*shipper.Task](args, 0), args.Error(1)
}

type MockCODRepository struct{ mock.Mock }

func (m *MockCODRepository) Add(ctx context.Context, r *cod.Record) error {
	return m.Called(ctx, r).Error(0)
}

func (m *MockCODRepository) Update(ctx context.Context, r *cod.Record) error {
	return m.Called(ctx, r).Error(0)
}

func (m *MockCODRepository) GetByOrder(ctx context.Context, orderID kernel.ID) (*cod.Record, error) {
	args := m.Called(ctx, orderID)
	return returnOrNil[*cod.Record](args, 0), args.Error(1)
}

type MockBatchRepository struct{ mock.Mock }

func (m *MockBatchRepository) Add(ctx context.Context, b *settlement.Batch) error {
	return m.Called(ctx, b).Error(0)
}

func (m *MockBatchRepository) Update(ctx context.Context, b *settlement.Batch) error {
	return m.Called(ctx, b).Error(0)
}

func (m *MockBatchRepository) Get(ctx context.Context, id kernel.ID) (*settlement.Batch, error) {
	args := m.Called(ctx, id)
	return returnOrNil[*settlement.Batch](args, 0), args.Error(1)
}

func (m *MockBatchRepository) FindUnpaidCreatedBefore(ctx context.Context, cutoff time.Time) ([]*settlement.Batch, error) {
	args := m.Called(ctx, cutoff)
	return returnOrNil[[]*settlement.Batch](args, 0), args.Error(1)
}

type MockTransactionRepository struct{ mock.Mock }

func (m *MockTransactionRepository) Add(ctx context.Context, tx *settlement.Transaction) error {
	return m.Called(ctx, tx).Error(0)
}

func (m *MockTransactionRepository) FindByBatch(ctx context.Context, batchID kernel.ID) ([]*settlement.Transaction, error) {
	args := m.Called(ctx, batchID)
	return returnOrNil[[]*settlement.Transaction](args, 0), args.Error(1)
}

type MockScheduleRepository struct{ mock.Mock }

func (m *MockScheduleRepository) Save(ctx context.Context, s *settlement.Schedule) error {
	return m.Called(ctx, s).Error(0)
}

func (m *MockScheduleRepository) FindShopsDueOn(ctx context.Context, day time.Weekday) ([]kernel.ID, error) {
	args := m.Called(ctx, day)
	return returnOrNil[[]kernel.ID](args, 0), args.Error(1)
}

type MockShopRepository struct{ mock.Mock }

func (m *MockShopRepository) Add(ctx context.Context, s *shop.Shop) error {
	return m.Called(ctx, s).Error(0)
}

func (m *MockShopRepository) Get(ctx context.Context, id kernel.ID) (*shop.Shop, error) {
	args := m.Called(ctx, id)
	return returnOrNil[*shop.Shop](args, 0), args.Error(1)
}

func (m *MockShopRepository) GetForUpdate(ctx context.Context, id kernel.ID) (*shop.Shop, error) {
	args := m.Called(ctx, id)
	return returnOrNil[*shop.Shop](args, 0), args.Error(1)
}

func (m *MockShopRepository) Update(ctx context.Context, s *shop.Shop) error {
	return m.Called(ctx, s).Error(0)
}

type MockBankAccountRepository struct{ mock.Mock }

func (m *MockBankAccountRepository) Add(ctx context.Context, a *shop.BankAccount) error {
	return m.Called(ctx, a).Error(0)
}

func (m *MockBankAccountRepository) GetPayoutDefault(ctx context.Context, shopID kernel.ID) (*shop.BankAccount, error) {
	args := m.Called(ctx, shopID)
	return returnOrNil[*shop.BankAccount](args, 0), args.Error(1)
}

type MockNotifier struct{ mock.Mock }

func (m *MockNotifier) Notify(ctx context.Context, n notification.Notification) {
	m.Called(ctx, n)
}

// MockUoW satisfies every command-side unit of work interface. Repository getters are wired
// through real fields so tests only set expectations on the transaction calls.
type MockUoW struct {
	mock.Mock
	orders       *MockOrderRepository
	assignments  *MockAssignmentRepository
	profiles     *MockProfileRepository
	tasks        *MockTaskRepository
	records      *MockCODRepository
	batches      *MockBatchRepository
	transactions *MockTransactionRepository
	schedules    *MockScheduleRepository
	shops        *MockShopRepository
	accounts     *MockBankAccountRepository
}

func newMockUoW() *MockUoW {
	return &MockUoW{
		orders:       new(MockOrderRepository),
		assignments:  new(MockAssignmentRepository),
		profiles:     new(MockProfileRepository),
		tasks:        new(MockTaskRepository),
		records:      new(MockCODRepository),
		batches:      new(MockBatchRepository),
		transactions: new(MockTransactionRepository),
		schedules:    new(MockScheduleRepository),
		shops:        new(MockShopRepository),
		accounts:     new(MockBankAccountRepository),
	}
}

func (m *MockUoW) Begin(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository { return m.orders }

func (m *MockUoW) ShipperAssignmentRepository() ports.ShipperAssignmentRepository { return m.assignments }

func (m *MockUoW) ShipperProfileRepository() ports.ShipperProfileRepository { return m.profiles }

func (m *MockUoW) ShipperTaskRepository() ports.ShipperTaskRepository { return m.tasks }

func (m *MockUoW) CODCollectionRepository() ports.CODCollectionRepository { return m.records }

func (m *MockUoW) SettlementBatchRepository() ports.SettlementBatchRepository { return m.batches }

func (m *MockUoW) SettlementTransactionRepository() ports.SettlementTransactionRepository {
	return m.transactions
}

func (m *MockUoW) SettlementScheduleRepository() ports.SettlementScheduleRepository { return m.schedules }

func (m *MockUoW) ShopRepository() ports.ShopRepository { return m.shops }

func (m *MockUoW) BankAccountRepository() ports.BankAccountRepository { return m.accounts }

// expectTx registers Begin and the deferred Rollback, plus Commit when committed is true.
func (m *MockUoW) expectTx(committed bool) {
	m.On("Begin", mock.Anything).Return(nil)
	if committed {
		m.On("Commit", mock.Anything).Return(nil)
	}
	m.On("Rollback", mock.Anything).Return(nil)
}

func (m *MockUoW) assertRepos(t mock.TestingT) {
	m.AssertExpectations(t)
	for _, r := range []interface{ AssertExpectations(mock.TestingT) bool }{
		m.orders, m.assignments, m.profiles, m.tasks, m.records,
		m.batches, m.transactions, m.schedules, m.shops, m.accounts,
	} {
		r.AssertExpectations(t)
	}
}

type MockUoWFactory struct {
	mock.Mock
}

func (f *MockUoWFactory) next() *MockUoW {
	return f.MethodCalled("Create").Get(0).(*MockUoW)
}

type assignmentFactory struct{ *MockUoWFactory }

func (f assignmentFactory) Create() commands.AssignmentUoW { return f.next() }

type settlementFactory struct{ *MockUoWFactory }

func (f settlementFactory) Create() commands.SettlementUoW { return f.next() }

type scheduleFactory struct{ *MockUoWFactory }

func (f scheduleFactory) Create() commands.ScheduleUoW { return f.next() }

type escalationFactory struct{ *MockUoWFactory }

func (f escalationFactory) Create() commands.EscalationUoW { return f.next() }

type MockShopSettlementHandler struct{ mock.Mock }

func (m *MockShopSettlementHandler) Handle(
	ctx context.Context, command commands.CreateShopSettlementBatchCommand,
) (commands.ShopSettlementResult, error) {
	args := m.Called(ctx, command)
	return args.Get(0).(commands.ShopSettlementResult), args.Error(1)
}
