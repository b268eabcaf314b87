package jobs

import (
	"fmt"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	settlementBatchJob *SettlementBatchJob
	batchEscalationJob *BatchEscalationJob
	assignmentSweepJob *ShipperAssignmentSweepJob
}

func NewJobManager(
	settlementBatchJob *SettlementBatchJob,
	batchEscalationJob *BatchEscalationJob,
	assignmentSweepJob *ShipperAssignmentSweepJob,
) *JobManager {
	return &JobManager{
		settlementBatchJob: settlementBatchJob,
		batchEscalationJob: batchEscalationJob,
		assignmentSweepJob: assignmentSweepJob,
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start; jobs already started are stopped again.
func (jm *JobManager) StartAll() error {
	if err := jm.settlementBatchJob.Start(); err != nil {
		return fmt.Errorf("failed to start settlement batch job: %w", err)
	}

	if err := jm.batchEscalationJob.Start(); err != nil {
		jm.settlementBatchJob.Stop()
		return fmt.Errorf("failed to start batch escalation job: %w", err)
	}

	if err := jm.assignmentSweepJob.Start(); err != nil {
		jm.batchEscalationJob.Stop()
		jm.settlementBatchJob.Stop()
		return fmt.Errorf("failed to start shipper assignment sweep job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.assignmentSweepJob.Stop()
	jm.batchEscalationJob.Stop()
	jm.settlementBatchJob.Stop()
}
