package cod_test

import (
	"testing"
	"time"

	"parcel/internal/core/domain/model/cod"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecord_IsSettleable(t *testing.T) {
	testCases := []struct {
		status cod.Status
		want   bool
	}{
		{cod.StatusPending, false},
		{cod.StatusInBatch, false},
		{cod.StatusMismatched, false},
		{cod.StatusMatched, true},
		{cod.StatusAdjusted, true},
	}

	for _, tc := range testCases {
		t.Run(tc.status.String(), func(t *testing.T) {
			r, err := cod.RestoreRecord(1, 2, 3, decimal.NewFromInt(50), tc.status, time.Now())
			require.NoError(t, err)
			assert.Equal(t, tc.want, r.IsSettleable())
		})
	}
}

func TestNewRecord(t *testing.T) {
	r, err := cod.NewRecord(2, 3, decimal.RequireFromString("12.50"), time.Now())
	require.NoError(t, err)
	assert.Equal(t, cod.StatusPending, r.Status())

	_, err = cod.NewRecord(2, 3, decimal.NewFromInt(-1), time.Now())
	require.Error(t, err)

	require.NoError(t, r.Resolve(cod.StatusMatched))
	assert.True(t, r.IsSettleable())
	require.Error(t, r.Resolve(cod.StatusUnknown))
}
