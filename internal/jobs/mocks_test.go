package jobs

import (
	"context"
	"io"
	"log/slog"
	"time"

	"parcel/internal/core/application/usecases/commands"
	"parcel/internal/core/application/usecases/queries"

	"github.com/stretchr/testify/mock"
)

var fixedNow = time.Date(2026, 5, 4, 1, 0, 0, 0, time.UTC)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type MockSettlementBatchesHandler struct{ mock.Mock }

func (m *MockSettlementBatchesHandler) Handle(
	ctx context.Context, command commands.CreateSettlementBatchesCommand,
) (commands.SettlementRunSummary, error) {
	args := m.Called(ctx, command)
	return args.Get(0).(commands.SettlementRunSummary), args.Error(1)
}

type MockEscalationHandler struct{ mock.Mock }

func (m *MockEscalationHandler) Handle(
	ctx context.Context, command commands.EscalateOverdueBatchesCommand,
) (commands.EscalationSummary, error) {
	args := m.Called(ctx, command)
	return args.Get(0).(commands.EscalationSummary), args.Error(1)
}

type MockDeliveryAssigner struct{ mock.Mock }

func (m *MockDeliveryAssigner) Handle(
	ctx context.Context, command commands.AssignShipperForDeliveryCommand,
) (commands.AssignShipperResult, error) {
	args := m.Called(ctx, command)
	return args.Get(0).(commands.AssignShipperResult), args.Error(1)
}

type MockAwaitingOrdersReader struct{ mock.Mock }

func (m *MockAwaitingOrdersReader) Handle(
	ctx context.Context, query queries.GetOrdersAwaitingDeliveryShipperQuery,
) ([]queries.GetOrdersAwaitingDeliveryShipperQueryResponse, error) {
	args := m.Called(ctx, query)
	res, _ := args.Get(0).([]queries.GetOrdersAwaitingDeliveryShipperQueryResponse)
	return res, args.Error(1)
}

type MockLock struct{ mock.Mock }

func (m *MockLock) Release(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

type MockLocker struct{ mock.Mock }

func (m *MockLocker) TryAcquire(ctx context.Context, name string, ttl time.Duration) (Lock, error) {
	args := m.Called(ctx, name, ttl)
	lock, _ := args.Get(0).(Lock)
	return lock, args.Error(1)
}
