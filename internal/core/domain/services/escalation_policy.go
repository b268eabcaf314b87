package services

import (
	"time"

	"parcel/internal/core/domain/model/settlement"
)

const (
	DefaultWarnAfter = 48 * time.Hour
	DefaultLockAfter = 72 * time.Hour
)

// EscalationDecision lists what the scan must do for one batch.
type EscalationDecision struct {
	Warn bool
	Lock bool
}

func (d EscalationDecision) IsEmpty() bool {
	return !d.Warn && !d.Lock
}

// EscalationPolicy turns the age of an unpaid batch into one-shot warning and lock actions.
type EscalationPolicy struct {
	warnAfter time.Duration
	lockAfter time.Duration
}

func NewEscalationPolicy(warnAfter, lockAfter time.Duration) EscalationPolicy {
	return EscalationPolicy{warnAfter: warnAfter, lockAfter: lockAfter}
}

func DefaultEscalationPolicy() EscalationPolicy {
	return NewEscalationPolicy(DefaultWarnAfter, DefaultLockAfter)
}

func (p EscalationPolicy) WarnAfter() time.Duration {
	return p.warnAfter
}

// Evaluate checks both thresholds independently. A flag already set suppresses its action.
func (p EscalationPolicy) Evaluate(b *settlement.Batch, now time.Time) EscalationDecision {
	if b.Validate() != nil || !b.Status().IsUnpaid() {
		return EscalationDecision{}
	}

	age := b.Age(now)
	return EscalationDecision{
		Warn: age > p.warnAfter && !b.WarningSent(),
		Lock: age > p.lockAfter && !b.LockedSent(),
	}
}
