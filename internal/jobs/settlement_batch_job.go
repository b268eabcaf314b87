package jobs

import (
	"context"
	"log/slog"
	"time"

	"parcel/internal/core/application/usecases/commands"
	"parcel/internal/metrics"
)

// SettlementBatchJob runs the nightly settlement batch cycle. The run lock is keyed by date and
// left to expire, so the cycle happens once per day across replicas.
type SettlementBatchJob struct {
	runner
	handler SettlementBatchesHandler
}

func NewSettlementBatchJob(
	handler SettlementBatchesHandler, schedule Schedule, locker Locker, m *metrics.Metrics, logger *slog.Logger,
) *SettlementBatchJob {
	return &SettlementBatchJob{
		runner:  newRunner("settlement_batch_job", schedule.SettlementSpec, locker, schedule.LockTTL, m, logger),
		handler: handler,
	}
}

func (j *SettlementBatchJob) Start() error {
	return j.start(j.RunOnce)
}

func (j *SettlementBatchJob) Stop() {
	j.stop()
}

// RunOnce processes every shop scheduled for today. Per-shop failures are reported through the
// returned error after all shops ran.
func (j *SettlementBatchJob) RunOnce(ctx context.Context) error {
	lockName := j.name + ":" + j.now().Format(time.DateOnly)

	return j.run(ctx, lockName, false, func(ctx context.Context, now time.Time) error {
		cmd, err := commands.NewCreateSettlementBatchesCommand(commands.SystemActor, now)
		if err != nil {
			return err
		}

		summary, err := j.handler.Handle(ctx, cmd)
		if err != nil {
			return err
		}

		j.metrics.ObserveSettlement(summary.Completed, summary.Failed, summary.Skipped, len(summary.Failures))
		j.logger.InfoContext(ctx, "settlement batch run finished",
			"shops", summary.ShopsProcessed,
			"batches", summary.BatchesCreated,
			"completed", summary.Completed,
			"failed", summary.Failed,
			"skipped", summary.Skipped,
			"shop_failures", len(summary.Failures),
		)
		return summary.Err()
	})
}
