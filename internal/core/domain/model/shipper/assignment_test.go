package shipper_test

import (
	"testing"
	"time"

	"parcel/internal/core/domain/model/kernel"
	"parcel/internal/core/domain/model/shipper"
	"parcel/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAssignment(t *testing.T) {
	start := time.Date(2026, 5, 4, 8, 0, 0, 0, time.UTC)
	zone := kernel.MustNewZone("79", "001")

	t.Run("valid", func(t *testing.T) {
		a, err := shipper.NewAssignment(3, zone, start, start.Add(8*time.Hour), start)
		require.NoError(t, err)
		require.NoError(t, a.Validate())
		assert.True(t, a.ID().IsZero())
		assert.Equal(t, kernel.ID(3), a.ShipperID())
	})

	t.Run("empty_window", func(t *testing.T) {
		_, err := shipper.NewAssignment(3, zone, start, start, start)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("missing_zone", func(t *testing.T) {
		_, err := shipper.NewAssignment(3, kernel.Zone{}, start, start.Add(time.Hour), start)
		require.ErrorIs(t, err, kernel.ErrCityIsRequired)
	})
}

func TestAssignment_IsActiveAt(t *testing.T) {
	start := time.Date(2026, 5, 4, 8, 0, 0, 0, time.UTC)
	end := start.Add(4 * time.Hour)
	a, err := shipper.RestoreAssignment(1, 3, kernel.MustNewZone("79", "001"), start, end, start)
	require.NoError(t, err)

	assert.False(t, a.IsActiveAt(start.Add(-time.Nanosecond)))
	assert.True(t, a.IsActiveAt(start))
	assert.True(t, a.IsActiveAt(end.Add(-time.Nanosecond)))
	assert.False(t, a.IsActiveAt(end), "window end is exclusive")
}

func TestProfile_WorksAt(t *testing.T) {
	office := kernel.ID(12)
	p, err := shipper.RestoreProfile(1, 3, &office)
	require.NoError(t, err)

	assert.True(t, p.WorksAt(12))
	assert.False(t, p.WorksAt(13))

	floating, err := shipper.RestoreProfile(2, 3, nil)
	require.NoError(t, err)
	assert.False(t, floating.WorksAt(12))
}

func TestTask_Reassign(t *testing.T) {
	now := time.Now()
	task, err := shipper.RestoreTask(5, 100, 1, shipper.TaskDeliveryReminder, shipper.TaskCancelled, now)
	require.NoError(t, err)

	require.NoError(t, task.Reassign(2))

	assert.Equal(t, kernel.ID(2), task.ProfileID())
	assert.Equal(t, shipper.TaskProcessing, task.Status())
	assert.Equal(t, kernel.ID(5), task.ID())
}

func TestNewTask_RejectsUnknownType(t *testing.T) {
	_, err := shipper.NewTask(100, 1, shipper.TaskUnknown, time.Now())
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}
