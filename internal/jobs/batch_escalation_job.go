package jobs

import (
	"context"
	"log/slog"
	"time"

	"parcel/internal/core/application/usecases/commands"
	"parcel/internal/metrics"
)

// BatchEscalationJob scans unpaid settlement batches for overdue warnings and shop locks.
type BatchEscalationJob struct {
	runner
	handler EscalationHandler
}

func NewBatchEscalationJob(
	handler EscalationHandler, schedule Schedule, locker Locker, m *metrics.Metrics, logger *slog.Logger,
) *BatchEscalationJob {
	return &BatchEscalationJob{
		runner:  newRunner("batch_escalation_job", schedule.EscalationSpec, locker, schedule.LockTTL, m, logger),
		handler: handler,
	}
}

func (j *BatchEscalationJob) Start() error {
	return j.start(j.RunOnce)
}

func (j *BatchEscalationJob) Stop() {
	j.stop()
}

func (j *BatchEscalationJob) RunOnce(ctx context.Context) error {
	return j.run(ctx, j.name, true, func(ctx context.Context, now time.Time) error {
		cmd, err := commands.NewEscalateOverdueBatchesCommand(commands.SystemActor, now)
		if err != nil {
			return err
		}

		summary, err := j.handler.Handle(ctx, cmd)
		if err != nil {
			return err
		}

		j.metrics.ObserveEscalation(summary.Warned, summary.Locked)
		if summary.Warned > 0 || summary.Locked > 0 || len(summary.Failures) > 0 {
			j.logger.InfoContext(ctx, "escalation scan finished",
				"scanned", summary.Scanned,
				"warned", summary.Warned,
				"locked", summary.Locked,
				"failures", len(summary.Failures),
			)
		}
		return nil
	})
}
