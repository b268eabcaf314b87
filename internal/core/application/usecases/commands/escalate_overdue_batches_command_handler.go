package commands

import (
	"context"
	"fmt"
	"log/slog"

	"parcel/internal/core/domain/model/kernel"
	"parcel/internal/core/domain/model/notification"
	"parcel/internal/core/domain/services"
	"parcel/internal/core/ports"
)

// BatchFailure records why escalation of one batch did not finish.
type BatchFailure struct {
	BatchID kernel.ID
	Err     error
}

// EscalationSummary aggregates one escalation scan.
type EscalationSummary struct {
	Scanned  int
	Warned   int
	Locked   int
	Failures []BatchFailure
}

// EscalateOverdueBatchesCommandHandler warns shops about unpaid batches older than the warning
// threshold and locks shops whose batches pass the lock threshold. Both actions are one-shot per
// batch, so rerunning the scan is harmless.
type EscalateOverdueBatchesCommandHandler struct {
	uowFactory EscalationUoWFactory
	notifier   ports.Notifier
	policy     services.EscalationPolicy
	logger     *slog.Logger
}

func NewEscalateOverdueBatchesCommandHandler(
	uowFactory EscalationUoWFactory, notifier ports.Notifier, policy services.EscalationPolicy, logger *slog.Logger,
) EscalateOverdueBatchesCommandHandler {
	return EscalateOverdueBatchesCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		policy:     policy,
		logger:     logger,
	}
}

func (h EscalateOverdueBatchesCommandHandler) Handle(
	ctx context.Context, command EscalateOverdueBatchesCommand,
) (EscalationSummary, error) {
	if err := command.Validate(); err != nil {
		return EscalationSummary{}, err
	}

	batchIDs, err := h.overdueBatches(ctx, command)
	if err != nil {
		return EscalationSummary{}, err
	}

	summary := EscalationSummary{Scanned: len(batchIDs)}
	for _, batchID := range batchIDs {
		if err = ctx.Err(); err != nil {
			return summary, err
		}

		decision, err := h.escalate(ctx, batchID, command)
		if err != nil {
			h.logger.ErrorContext(ctx, "batch escalation failed", "batch_id", batchID, "error", err)
			summary.Failures = append(summary.Failures, BatchFailure{BatchID: batchID, Err: err})
			continue
		}
		if decision.Warn {
			summary.Warned++
		}
		if decision.Lock {
			summary.Locked++
		}
	}

	return summary, nil
}

func (h EscalateOverdueBatchesCommandHandler) overdueBatches(
	ctx context.Context, command EscalateOverdueBatchesCommand,
) ([]kernel.ID, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	batches, err := uow.SettlementBatchRepository().FindUnpaidCreatedBefore(ctx, command.At().Add(-h.policy.WarnAfter()))
	if err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	ids := make([]kernel.ID, 0, len(batches))
	for _, b := range batches {
		ids = append(ids, b.ID())
	}
	return ids, nil
}

func (h EscalateOverdueBatchesCommandHandler) escalate(
	ctx context.Context, batchID kernel.ID, command EscalateOverdueBatchesCommand,
) (services.EscalationDecision, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return services.EscalationDecision{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	batch, err := uow.SettlementBatchRepository().Get(ctx, batchID)
	if err != nil {
		return services.EscalationDecision{}, err
	}

	at := command.At()
	decision := h.policy.Evaluate(batch, at)
	if decision.IsEmpty() {
		return decision, nil
	}

	s, err := uow.ShopRepository().Get(ctx, batch.ShopID())
	if err != nil {
		return services.EscalationDecision{}, err
	}

	var pending []notification.Notification
	if decision.Warn {
		batch.MarkWarningSent(at)
		n, err := notification.BatchOverdueWarning(s.OwnerAccountID(), batch.ID(), batch.Code())
		pending = h.collect(ctx, pending, n, err)
	}
	if decision.Lock {
		if s.Lock() {
			if err = uow.ShopRepository().Update(ctx, s); err != nil {
				return services.EscalationDecision{}, fmt.Errorf("lock shop %s: %w", s.ID(), err)
			}
		}
		batch.MarkLockedSent(at)
		n, err := notification.ShopLockedForBatch(s.OwnerAccountID(), batch.ID(), batch.Code())
		pending = h.collect(ctx, pending, n, err)
	}

	if err = uow.SettlementBatchRepository().Update(ctx, batch); err != nil {
		return services.EscalationDecision{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return services.EscalationDecision{}, err
	}

	for _, n := range pending {
		h.notifier.Notify(ctx, n)
	}

	h.logger.InfoContext(ctx, "batch escalated", "batch_id", batch.ID(), "code", batch.Code(),
		"warned", decision.Warn, "locked", decision.Lock, "actor_id", command.ActorID())
	return decision, nil
}

func (h EscalateOverdueBatchesCommandHandler) collect(
	ctx context.Context, pending []notification.Notification, n notification.Notification, err error,
) []notification.Notification {
	if err != nil {
		h.logger.WarnContext(ctx, "notification skipped", "error", err)
		return pending
	}
	return append(pending, n)
}
