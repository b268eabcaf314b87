// Package jobs provides the scheduled background work of the dispatch and settlement service.
//
// Jobs are cron-based (github.com/robfig/cron/v3, six-field specs with seconds) and run the same
// command handlers the HTTP API exposes, always as the system actor.
//
// # Available Jobs
//
//  1. SettlementBatchJob - nightly; creates settlement batches for every shop scheduled that weekday
//  2. BatchEscalationJob - periodic; warns and locks shops with overdue unpaid batches
//  3. ShipperAssignmentSweepJob - periodic; retries delivery assignment for orders still waiting
//     at their destination office
//
// # Usage
//
//	jobManager := jobs.NewJobManager(
//		jobs.NewSettlementBatchJob(batchesHandler, schedule, locker, m, logger),
//		jobs.NewBatchEscalationJob(escalationHandler, schedule, locker, m, logger),
//		jobs.NewShipperAssignmentSweepJob(awaitingReader, assigner, schedule, locker, m, logger),
//	)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Replicas
//
// Every run first takes a named run lock. With Redis configured the lock is shared by all
// replicas, so a nightly batch run happens once per day; LocalLocker grants every request.
// Within one process cron skips a run while the previous one is still going.
package jobs
