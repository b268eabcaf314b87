package commands

import (
	"context"
	"errors"
	"log/slog"

	"parcel/internal/core/domain/model/kernel"
	"parcel/internal/core/domain/model/settlement"
)

// ShopFailure records why one shop's batch run did not finish.
type ShopFailure struct {
	ShopID kernel.ID
	Err    error
}

// SettlementRunSummary aggregates a scheduled batch run across shops.
type SettlementRunSummary struct {
	ShopsProcessed int
	BatchesCreated int
	Completed      int
	Failed         int
	Skipped        int
	Failures       []ShopFailure
}

// CreateSettlementBatchesCommandHandler runs the per-shop batch step for every shop scheduled on
// the command's weekday. Each shop gets its own unit of work; one shop failing does not stop the others.
type CreateSettlementBatchesCommandHandler struct {
	uowFactory ScheduleUoWFactory
	shops      ShopSettlementHandler
	logger     *slog.Logger
}

func NewCreateSettlementBatchesCommandHandler(
	uowFactory ScheduleUoWFactory, shops ShopSettlementHandler, logger *slog.Logger,
) CreateSettlementBatchesCommandHandler {
	return CreateSettlementBatchesCommandHandler{
		uowFactory: uowFactory,
		shops:      shops,
		logger:     logger,
	}
}

func (h CreateSettlementBatchesCommandHandler) Handle(
	ctx context.Context, command CreateSettlementBatchesCommand,
) (SettlementRunSummary, error) {
	if err := command.Validate(); err != nil {
		return SettlementRunSummary{}, err
	}

	shopIDs, err := h.dueShops(ctx, command)
	if err != nil {
		return SettlementRunSummary{}, err
	}

	var summary SettlementRunSummary
	for _, shopID := range shopIDs {
		if err = ctx.Err(); err != nil {
			return summary, err
		}
		summary.ShopsProcessed++

		res, err := h.runShop(ctx, shopID, command)
		if res.BatchID != 0 {
			summary.BatchesCreated++
		}
		if err != nil {
			h.logger.ErrorContext(ctx, "settlement batch failed",
				"shop_id", shopID, "actor_id", command.ActorID(), "error", err)
			summary.Failures = append(summary.Failures, ShopFailure{ShopID: shopID, Err: err})
			continue
		}

		switch {
		case res.Skipped:
			summary.Skipped++
		case res.Status == settlement.BatchCompleted:
			summary.Completed++
		case res.Status == settlement.BatchFailed:
			summary.Failed++
		}
	}

	return summary, nil
}

func (h CreateSettlementBatchesCommandHandler) dueShops(
	ctx context.Context, command CreateSettlementBatchesCommand,
) ([]kernel.ID, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	shopIDs, err := uow.SettlementScheduleRepository().FindShopsDueOn(ctx, command.At().Weekday())
	if err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}
	return shopIDs, nil
}

func (h CreateSettlementBatchesCommandHandler) runShop(
	ctx context.Context, shopID kernel.ID, command CreateSettlementBatchesCommand,
) (ShopSettlementResult, error) {
	cmd, err := NewCreateShopSettlementBatchCommand(shopID, command.ActorID(), command.At())
	if err != nil {
		return ShopSettlementResult{}, err
	}
	return h.shops.Handle(ctx, cmd)
}

// Err joins every per-shop failure, or returns nil when all shops finished.
func (s SettlementRunSummary) Err() error {
	errList := make([]error, 0, len(s.Failures))
	for _, f := range s.Failures {
		errList = append(errList, f.Err)
	}
	return errors.Join(errList...)
}
