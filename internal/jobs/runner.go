package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"parcel/internal/metrics"

	"github.com/robfig/cron/v3"
)

// runner is the part every job shares: its cron, the run lock and run metrics.
type runner struct {
	name    string
	spec    string
	cron    *cron.Cron
	locker  Locker
	lockTTL time.Duration
	metrics *metrics.Metrics
	logger  *slog.Logger
	now     func() time.Time
}

func newRunner(name, spec string, locker Locker, lockTTL time.Duration, m *metrics.Metrics, logger *slog.Logger) runner {
	if locker == nil {
		locker = LocalLocker{}
	}
	return runner{
		name:    name,
		spec:    spec,
		cron:    cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		locker:  locker,
		lockTTL: lockTTL,
		metrics: m,
		logger:  logger.With("component", name),
		now:     time.Now,
	}
}

// run executes fn under the lock named by lockName. When another replica holds the lock the run
// is skipped without error. Locks are released afterwards only if release is set; otherwise they
// expire, which keeps a once-per-slot job from running again in the same slot.
func (r runner) run(
	ctx context.Context, lockName string, release bool, fn func(ctx context.Context, now time.Time) error,
) error {
	start := r.now()

	lock, err := r.locker.TryAcquire(ctx, lockName, r.lockTTL)
	if err != nil {
		r.metrics.ObserveJob(r.name, metrics.JobFailed, time.Since(start))
		return fmt.Errorf("acquire run lock %s: %w", lockName, err)
	}
	if lock == nil {
		r.logger.InfoContext(ctx, "run skipped, lock held by another replica", "lock", lockName)
		r.metrics.ObserveJob(r.name, metrics.JobSkipped, time.Since(start))
		return nil
	}
	if release {
		defer func() {
			if rErr := lock.Release(ctx); rErr != nil {
				r.logger.WarnContext(ctx, "release run lock", "lock", lockName, "error", rErr)
			}
		}()
	}

	err = fn(ctx, start)
	result := metrics.JobOK
	if err != nil {
		result = metrics.JobFailed
	}
	r.metrics.ObserveJob(r.name, result, time.Since(start))
	return err
}

// start schedules tick on the runner's cron.
func (r runner) start(tick func(ctx context.Context) error) error {
	_, err := r.cron.AddFunc(r.spec, func() {
		ctx := context.Background()
		if err := tick(ctx); err != nil {
			r.logger.ErrorContext(ctx, "job run failed", "error", err)
		}
	})
	if err != nil {
		return err
	}

	r.cron.Start()
	r.logger.InfoContext(context.Background(), "job started", "spec", r.spec)
	return nil
}

// stop waits for a running tick to finish.
func (r runner) stop() {
	<-r.cron.Stop().Done()
	r.logger.InfoContext(context.Background(), "job stopped")
}
