package jobs

import "time"

// Schedule configures the cron specs and run-lock behaviour of all jobs.
type Schedule struct {
	SettlementSpec      string
	EscalationSpec      string
	AssignmentSweepSpec string
	SweepBatchSize      int
	LockTTL             time.Duration
}

// DefaultSchedule runs settlement at 01:00, escalation at 01:30 and the assignment sweep every five minutes.
func DefaultSchedule() Schedule {
	return Schedule{
		SettlementSpec:      "0 0 1 * * *",
		EscalationSpec:      "0 30 1 * * *",
		AssignmentSweepSpec: "0 */5 * * * *",
		SweepBatchSize:      100,
		LockTTL:             30 * time.Minute,
	}
}
