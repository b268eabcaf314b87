package jobs

import (
	"context"
	"log/slog"
	"time"

	"parcel/internal/core/application/usecases/commands"
	"parcel/internal/core/application/usecases/queries"
	"parcel/internal/metrics"
)

// ShipperAssignmentSweepJob retries delivery assignment for orders that reached their destination
// office while nobody was on duty.
type ShipperAssignmentSweepJob struct {
	runner
	orders    AwaitingOrdersReader
	assigner  DeliveryAssigner
	batchSize int
}

func NewShipperAssignmentSweepJob(
	orders AwaitingOrdersReader,
	assigner DeliveryAssigner,
	schedule Schedule,
	locker Locker,
	m *metrics.Metrics,
	logger *slog.Logger,
) *ShipperAssignmentSweepJob {
	return &ShipperAssignmentSweepJob{
		runner:    newRunner("shipper_assignment_sweep_job", schedule.AssignmentSweepSpec, locker, schedule.LockTTL, m, logger),
		orders:    orders,
		assigner:  assigner,
		batchSize: schedule.SweepBatchSize,
	}
}

func (j *ShipperAssignmentSweepJob) Start() error {
	return j.start(j.RunOnce)
}

func (j *ShipperAssignmentSweepJob) Stop() {
	j.stop()
}

// RunOnce tries every waiting order once. A failing order is logged and the sweep moves on.
func (j *ShipperAssignmentSweepJob) RunOnce(ctx context.Context) error {
	return j.run(ctx, j.name, true, func(ctx context.Context, now time.Time) error {
		query, err := queries.NewGetOrdersAwaitingDeliveryShipperQuery(j.batchSize)
		if err != nil {
			return err
		}

		waiting, err := j.orders.Handle(ctx, query)
		if err != nil {
			return err
		}

		assigned := 0
		for _, o := range waiting {
			if err = ctx.Err(); err != nil {
				return err
			}

			cmd, err := commands.NewAssignShipperForDeliveryCommand(o.ID, commands.SystemActor, now)
			if err != nil {
				return err
			}

			res, err := j.assigner.Handle(ctx, cmd.AsRetry())
			j.metrics.ObserveAssignment("delivery", res.Assigned, err)
			if err != nil {
				j.logger.ErrorContext(ctx, "delivery assignment failed",
					"order_id", o.ID, "tracking_code", o.TrackingCode, "error", err)
				continue
			}
			if res.Assigned {
				assigned++
			}
		}

		if len(waiting) > 0 {
			j.logger.InfoContext(ctx, "assignment sweep finished", "waiting", len(waiting), "assigned", assigned)
		}
		return nil
	})
}
