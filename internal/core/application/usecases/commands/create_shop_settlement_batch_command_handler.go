package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"parcel/internal/core/domain/model/cod"
	"parcel/internal/core/domain/model/kernel"
	"parcel/internal/core/domain/model/notification"
	"parcel/internal/core/domain/model/order"
	"parcel/internal/core/domain/model/settlement"
	"parcel/internal/core/domain/services"
	"parcel/internal/core/ports"
	"parcel/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// ErrMissingPayoutDestination is returned when a batch owes the shop money but the shop has no
// payout bank account. The batch is kept PENDING with its orders attached so escalation picks it up.
var ErrMissingPayoutDestination = errors.New("shop has no payout bank account")

// ShopSettlementResult describes one shop's batch run. Skipped is set when nothing was persisted.
type ShopSettlementResult struct {
	Skipped  bool
	BatchID  kernel.ID
	Code     string
	Balance  decimal.Decimal
	Status   settlement.BatchStatus
	Included int
	Excluded int
	PayoutID *kernel.ID
}

// ShopSettlementHandler is the per-shop step of the batch run.
type ShopSettlementHandler interface {
	Handle(ctx context.Context, command CreateShopSettlementBatchCommand) (ShopSettlementResult, error)
}

// CreateShopSettlementBatchCommandHandler aggregates a shop's DELIVERED and RETURNED orders into
// one signed balance, pays a positive balance out and closes the cod ladder of every attached order.
type CreateShopSettlementBatchCommandHandler struct {
	uowFactory SettlementUoWFactory
	notifier   ports.Notifier
	calculator services.SettlementCalculator
	logger     *slog.Logger
}

func NewCreateShopSettlementBatchCommandHandler(
	uowFactory SettlementUoWFactory, notifier ports.Notifier, logger *slog.Logger,
) CreateShopSettlementBatchCommandHandler {
	return CreateShopSettlementBatchCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		calculator: services.NewSettlementCalculator(),
		logger:     logger,
	}
}

func (h CreateShopSettlementBatchCommandHandler) Handle(
	ctx context.Context, command CreateShopSettlementBatchCommand,
) (ShopSettlementResult, error) {
	if err := command.Validate(); err != nil {
		return ShopSettlementResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return ShopSettlementResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	s, err := uow.ShopRepository().GetForUpdate(ctx, command.ShopID())
	if err != nil {
		return ShopSettlementResult{}, err
	}

	candidates, err := uow.OrderRepository().FindSettleableByShop(ctx, s.ID())
	if err != nil {
		return ShopSettlementResult{}, err
	}

	included, excluded, err := h.classify(ctx, uow.CODCollectionRepository(), candidates)
	if err != nil {
		return ShopSettlementResult{}, err
	}
	if len(included) == 0 {
		return ShopSettlementResult{Skipped: true, Excluded: excluded}, nil
	}

	at := command.At()
	batch, err := settlement.NewBatch(settlement.NewBatchCode(at), s.ID(), at)
	if err != nil {
		return ShopSettlementResult{}, err
	}
	if err = uow.SettlementBatchRepository().Add(ctx, batch); err != nil {
		return ShopSettlementResult{}, err
	}

	for _, o := range included {
		amount := h.calculator.Contribution(o)
		if err = batch.AddContribution(amount, at); err != nil {
			return ShopSettlementResult{}, err
		}
		if err = o.AttachToBatch(batch.ID(), amount); err != nil {
			return ShopSettlementResult{}, err
		}
		if err = uow.OrderRepository().Update(ctx, o); err != nil {
			return ShopSettlementResult{}, err
		}
	}

	if err = uow.SettlementBatchRepository().Update(ctx, batch); err != nil {
		return ShopSettlementResult{}, err
	}

	result := ShopSettlementResult{
		BatchID:  batch.ID(),
		Code:     batch.Code(),
		Balance:  batch.Balance(),
		Status:   batch.Status(),
		Included: len(included),
		Excluded: excluded,
	}

	var payout *settlement.Transaction
	if batch.Balance().IsPositive() {
		payout, err = h.payOut(ctx, uow, batch, at)
		if errors.Is(err, ErrMissingPayoutDestination) {
			if cErr := uow.Commit(ctx); cErr != nil {
				return ShopSettlementResult{}, cErr
			}
			return result, fmt.Errorf("batch %s: %w", batch.Code(), err)
		}
		if err != nil {
			return ShopSettlementResult{}, err
		}
	} else if err = batch.Fail(at); err != nil {
		return ShopSettlementResult{}, err
	}

	if err = uow.SettlementBatchRepository().Update(ctx, batch); err != nil {
		return ShopSettlementResult{}, err
	}

	markPaid := payout != nil || !batch.Balance().IsNegative()
	for _, o := range included {
		if err = o.MarkTransferred(); err != nil {
			return ShopSettlementResult{}, err
		}
		if markPaid {
			o.MarkPaid(at)
		}
		if err = uow.OrderRepository().Update(ctx, o); err != nil {
			return ShopSettlementResult{}, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return ShopSettlementResult{}, err
	}

	n, nErr := notification.BatchSettled(s.OwnerAccountID(), batch.ID(), batch.Code(), batch.Balance())
	notify(ctx, h.notifier, h.logger, n, nErr)

	result.Status = batch.Status()
	if payout != nil {
		id := payout.ID()
		result.PayoutID = &id
	}
	return result, nil
}

// classify splits candidates into orders that enter the batch and a count of those left out.
func (h CreateShopSettlementBatchCommandHandler) classify(
	ctx context.Context, records ports.CODCollectionRepository, candidates []*order.Order,
) ([]*order.Order, int, error) {
	included := make([]*order.Order, 0, len(candidates))
	excluded := 0

	for _, o := range candidates {
		if !o.IsSettleable() {
			excluded++
			continue
		}

		var record *cod.Record
		r, err := records.GetByOrder(ctx, o.ID())
		switch {
		case err == nil:
			record = r
		case errors.Is(err, errs.ErrObjectNotFound):
			// no collection record
		default:
			return nil, 0, err
		}

		if reason := h.calculator.Exclusion(o, record); reason != services.NotExcluded {
			h.logger.DebugContext(ctx, "order left out of batch", "order_id", o.ID(), "reason", reason.String())
			excluded++
			continue
		}
		included = append(included, o)
	}

	return included, excluded, nil
}

func (h CreateShopSettlementBatchCommandHandler) payOut(
	ctx context.Context, uow SettlementUoW, batch *settlement.Batch, at time.Time,
) (*settlement.Transaction, error) {
	account, err := uow.BankAccountRepository().GetPayoutDefault(ctx, batch.ShopID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil, ErrMissingPayoutDestination
	}
	if err != nil {
		return nil, err
	}

	payout, err := settlement.NewPayout(batch, settlement.PayoutDestination{
		BankName:      account.BankName(),
		AccountNumber: account.AccountNumber(),
		AccountHolder: account.AccountHolder(),
	}, at)
	if err != nil {
		return nil, err
	}
	if err = uow.SettlementTransactionRepository().Add(ctx, payout); err != nil {
		return nil, err
	}
	if err = batch.Complete(at); err != nil {
		return nil, err
	}
	return payout, nil
}
