package commands_test

import (
	"testing"
	"time"

	"parcel/internal/core/application/usecases/commands"
	"parcel/internal/core/domain/model/kernel"
	"parcel/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAssignShipperForDeliveryCommand(t *testing.T) {
	tests := []struct {
		name    string
		orderID kernel.ID
		actorID kernel.ID
		at      time.Time
		wantErr error
	}{
		{"valid system call", 1, commands.SystemActor, now, nil},
		{"valid user call", 1, 42, now, nil},
		{"zero order", 0, 42, now, errs.ErrValueIsOutOfRange},
		{"negative actor", 1, -1, now, errs.ErrValueIsOutOfRange},
		{"missing time", 1, 42, time.Time{}, errs.ErrValueIsRequired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, err := commands.NewAssignShipperForDeliveryCommand(tt.orderID, tt.actorID, tt.at)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.ErrorIs(t, cmd.Validate(), commands.ErrAssignShipperForDeliveryCommandIsNotConstructed)
				return
			}
			require.NoError(t, err)
			assert.NoError(t, cmd.Validate())
			assert.Equal(t, tt.orderID, cmd.OrderID())
			assert.Equal(t, tt.actorID, cmd.ActorID())
			assert.Equal(t, tt.at, cmd.At())
			assert.False(t, cmd.IsRetry())

			retry := cmd.AsRetry()
			assert.True(t, retry.IsRetry())
			assert.NoError(t, retry.Validate())
			assert.False(t, cmd.IsRetry(), "AsRetry returns a copy")
		})
	}
}

func TestNewAssignShipperForPickupCommand(t *testing.T) {
	cmd, err := commands.NewAssignShipperForPickupCommand(5, 42, now)
	require.NoError(t, err)
	assert.NoError(t, cmd.Validate())
	assert.Equal(t, kernel.ID(5), cmd.OrderID())

	_, err = commands.NewAssignShipperForPickupCommand(-5, 42, now)
	assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
}

func TestNewCreateShopSettlementBatchCommand(t *testing.T) {
	cmd, err := commands.NewCreateShopSettlementBatchCommand(10, commands.SystemActor, now)
	require.NoError(t, err)
	assert.NoError(t, cmd.Validate())
	assert.Equal(t, kernel.ID(10), cmd.ShopID())
	assert.Equal(t, commands.SystemActor, cmd.ActorID())

	_, err = commands.NewCreateShopSettlementBatchCommand(0, commands.SystemActor, time.Time{})
	assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	assert.ErrorIs(t, err, commands.ErrAtIsRequired)
}

func TestNewCreateSettlementBatchesCommand(t *testing.T) {
	cmd, err := commands.NewCreateSettlementBatchesCommand(commands.SystemActor, now)
	require.NoError(t, err)
	assert.NoError(t, cmd.Validate())
	assert.Equal(t, now, cmd.At())

	_, err = commands.NewCreateSettlementBatchesCommand(-3, now)
	assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	assert.ErrorIs(t, commands.CreateSettlementBatchesCommand{}.Validate(),
		commands.ErrCreateSettlementBatchesCommandIsNotConstructed)
}

func TestNewEscalateOverdueBatchesCommand(t *testing.T) {
	cmd, err := commands.NewEscalateOverdueBatchesCommand(7, now)
	require.NoError(t, err)
	assert.NoError(t, cmd.Validate())
	assert.Equal(t, kernel.ID(7), cmd.ActorID())

	_, err = commands.NewEscalateOverdueBatchesCommand(7, time.Time{})
	assert.ErrorIs(t, err, commands.ErrAtIsRequired)
}
