package services_test

import (
	"testing"
	"time"

	"parcel/internal/core/domain/model/settlement"
	"parcel/internal/core/domain/services"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEscalationPolicy_Evaluate(t *testing.T) {
	now := time.Date(2026, 5, 10, 2, 0, 0, 0, time.UTC)

	testCases := []struct {
		name        string
		age         time.Duration
		status      settlement.BatchStatus
		warningSent bool
		lockedSent  bool
		want        services.EscalationDecision
	}{
		{"fresh", 10 * time.Hour, settlement.BatchPending, false, false, services.EscalationDecision{}},
		{"exactly 48h is not overdue", 48 * time.Hour, settlement.BatchPending, false, false, services.EscalationDecision{}},
		{"50h pending", 50 * time.Hour, settlement.BatchPending, false, false, services.EscalationDecision{Warn: true}},
		{"50h already warned", 50 * time.Hour, settlement.BatchPending, true, false, services.EscalationDecision{}},
		{"80h failed", 80 * time.Hour, settlement.BatchFailed, false, false, services.EscalationDecision{Warn: true, Lock: true}},
		{"80h partial warned", 80 * time.Hour, settlement.BatchPartial, true, false, services.EscalationDecision{Lock: true}},
		{"80h both sent", 80 * time.Hour, settlement.BatchFailed, true, true, services.EscalationDecision{}},
		{"completed never escalates", 200 * time.Hour, settlement.BatchCompleted, false, false, services.EscalationDecision{}},
	}

	policy := services.DefaultEscalationPolicy()
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			b, err := settlement.RestoreBatch(settlement.BatchSnapshot{
				ID: 1, Code: "SB-1", ShopID: 2, Balance: decimal.Zero, Status: tc.status,
				WarningSent: tc.warningSent, LockedSent: tc.lockedSent,
				CreatedAt: now.Add(-tc.age), UpdatedAt: now.Add(-tc.age),
			})
			require.NoError(t, err)

			assert.Equal(t, tc.want, policy.Evaluate(b, now))
		})
	}
}
