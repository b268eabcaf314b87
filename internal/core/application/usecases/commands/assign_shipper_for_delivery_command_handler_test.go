package commands_test

import (
	"testing"
	"time"

	"parcel/internal/core/application/usecases/commands"
	"parcel/internal/core/domain/model/kernel"
	"parcel/internal/core/domain/model/notification"
	"parcel/internal/core/domain/model/order"
	"parcel/internal/core/domain/model/shipper"
	"parcel/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const opsAccountID kernel.ID = 999

func newDeliveryHandler(uow *MockUoW, notifier *MockNotifier) commands.AssignShipperForDeliveryCommandHandler {
	factory := &MockUoWFactory{}
	factory.On("Create").Return(uow)
	return commands.NewAssignShipperForDeliveryCommandHandler(
		assignmentFactory{factory}, notifier, opsAccountID, discardLogger(),
	)
}

func deliveryCommand(t *testing.T) commands.AssignShipperForDeliveryCommand {
	t.Helper()
	cmd, err := commands.NewAssignShipperForDeliveryCommand(1, commands.SystemActor, now)
	require.NoError(t, err)
	return cmd
}

func recipient(id kernel.ID) any {
	return mock.MatchedBy(func(n notification.Notification) bool { return n.RecipientID == id })
}

func taskNotFound() error {
	return errs.NewObjectNotFoundError("shipperTask", 1)
}

func TestAssignShipperForDeliveryCommandHandler_PicksEarliestRosterEntry(t *testing.T) {
	// Arrange
	ctx := t.Context()
	uow := newMockUoW()
	notifier := &MockNotifier{}
	o := restoreOrder(t, nil)

	later := assignment(t, 2, 80, now.Add(-time.Hour))
	earlier := assignment(t, 1, 70, now.Add(-2*time.Hour))

	uow.expectTx(true)
	uow.orders.On("GetForUpdate", ctx, kernel.ID(1)).Return(o, nil).Once()
	uow.assignments.On("FindActiveInZone", ctx, district, now).
		Return([]*shipper.Assignment{later, earlier}, nil).Once()
	uow.profiles.On("FindByAccount", ctx, kernel.ID(70)).
		Return([]*shipper.Profile{profile(t, 7, 70, nil)}, nil).Once()
	uow.tasks.On("GetByOrderAndType", ctx, kernel.ID(1), shipper.TaskDeliveryReminder).
		Return(nil, taskNotFound()).Once()
	uow.tasks.On("Add", ctx, mock.AnythingOfType("*shipper.Task")).
		Run(func(args mock.Arguments) { args.Get(1).(*shipper.Task).SetID(55) }).
		Return(nil).Once()
	uow.orders.On("Update", ctx, mock.MatchedBy(func(o *order.Order) bool {
		return o.Status() == order.ReadyForPickup && *o.ShipperProfileID() == 7
	})).Return(nil).Once()

	mock.InOrder(
		notifier.On("Notify", ctx, recipient(70)).Return().Once(),
		notifier.On("Notify", ctx, recipient(100)).Return().Once(),
	)

	handler := newDeliveryHandler(uow, notifier)

	// Act
	res, err := handler.Handle(ctx, deliveryCommand(t))

	// Assert
	require.NoError(t, err)
	assert.Equal(t, commands.AssignShipperResult{
		Assigned:         true,
		ShipperAccountID: 70,
		ShipperProfileID: 7,
		TaskID:           55,
	}, res)
	uow.assertRepos(t)
	notifier.AssertExpectations(t)
}

func TestAssignShipperForDeliveryCommandHandler_FallsBackToCity(t *testing.T) {
	// Arrange
	ctx := t.Context()
	uow := newMockUoW()
	notifier := &MockNotifier{}
	o := restoreOrder(t, func(s *order.Snapshot) { s.OwnerAccountID = nil })

	uow.expectTx(true)
	uow.orders.On("GetForUpdate", ctx, kernel.ID(1)).Return(o, nil).Once()
	uow.assignments.On("FindActiveInZone", ctx, district, now).Return([]*shipper.Assignment{}, nil).Once()
	uow.assignments.On("FindActiveInCity", ctx, "Hanoi", now).
		Return([]*shipper.Assignment{assignment(t, 3, 71, now.Add(-time.Hour))}, nil).Once()
	uow.profiles.On("FindByAccount", ctx, kernel.ID(71)).
		Return([]*shipper.Profile{profile(t, 8, 71, nil)}, nil).Once()
	uow.tasks.On("GetByOrderAndType", ctx, kernel.ID(1), shipper.TaskDeliveryReminder).
		Return(nil, taskNotFound()).Once()
	uow.tasks.On("Add", ctx, mock.Anything).Return(nil).Once()
	uow.orders.On("Update", ctx, o).Return(nil).Once()
	notifier.On("Notify", ctx, recipient(71)).Return().Once()

	handler := newDeliveryHandler(uow, notifier)

	// Act
	res, err := handler.Handle(ctx, deliveryCommand(t))

	// Assert
	require.NoError(t, err)
	assert.True(t, res.Assigned)
	assert.Equal(t, kernel.ID(8), res.ShipperProfileID)
	uow.assertRepos(t)
	notifier.AssertExpectations(t)
}

func TestAssignShipperForDeliveryCommandHandler_PrefersProfileAtDestinationOffice(t *testing.T) {
	// Arrange
	ctx := t.Context()
	uow := newMockUoW()
	notifier := &MockNotifier{}
	o := restoreOrder(t, func(s *order.Snapshot) {
		s.RecipientZone = kernel.Zone{}
		s.DestinationOffice = &order.Office{ID: 5, Zone: district}
	})

	uow.expectTx(true)
	uow.orders.On("GetForUpdate", ctx, kernel.ID(1)).Return(o, nil).Once()
	uow.assignments.On("FindActiveInZone", ctx, district, now).
		Return([]*shipper.Assignment{assignment(t, 1, 70, now.Add(-time.Hour))}, nil).Once()
	uow.profiles.On("FindByAccount", ctx, kernel.ID(70)).Return([]*shipper.Profile{
		profile(t, 6, 70, idPtr(4)),
		profile(t, 7, 70, idPtr(5)),
	}, nil).Once()
	uow.tasks.On("GetByOrderAndType", ctx, kernel.ID(1), shipper.TaskDeliveryReminder).
		Return(nil, taskNotFound()).Once()
	uow.tasks.On("Add", ctx, mock.Anything).Return(nil).Once()
	uow.orders.On("Update", ctx, o).Return(nil).Once()
	notifier.On("Notify", ctx, mock.Anything).Return().Twice()

	handler := newDeliveryHandler(uow, notifier)

	// Act
	res, err := handler.Handle(ctx, deliveryCommand(t))

	// Assert
	require.NoError(t, err)
	assert.Equal(t, kernel.ID(7), res.ShipperProfileID)
	uow.assertRepos(t)
}

func TestAssignShipperForDeliveryCommandHandler_ReusesExistingTask(t *testing.T) {
	// Arrange
	ctx := t.Context()
	uow := newMockUoW()
	notifier := &MockNotifier{}
	o := restoreOrder(t, nil)
	existing, err := shipper.RestoreTask(55, 1, 6, shipper.TaskDeliveryReminder, shipper.TaskDone, now.Add(-time.Hour))
	require.NoError(t, err)

	uow.expectTx(true)
	uow.orders.On("GetForUpdate", ctx, kernel.ID(1)).Return(o, nil).Once()
	uow.assignments.On("FindActiveInZone", ctx, district, now).
		Return([]*shipper.Assignment{assignment(t, 1, 70, now.Add(-time.Hour))}, nil).Once()
	uow.profiles.On("FindByAccount", ctx, kernel.ID(70)).
		Return([]*shipper.Profile{profile(t, 7, 70, nil)}, nil).Once()
	uow.tasks.On("GetByOrderAndType", ctx, kernel.ID(1), shipper.TaskDeliveryReminder).Return(existing, nil).Once()
	uow.tasks.On("Update", ctx, mock.MatchedBy(func(task *shipper.Task) bool {
		return task.ProfileID() == 7 && task.Status() == shipper.TaskProcessing
	})).Return(nil).Once()
	uow.orders.On("Update", ctx, o).Return(nil).Once()
	notifier.On("Notify", ctx, mock.Anything).Return().Twice()

	handler := newDeliveryHandler(uow, notifier)

	// Act
	res, err := handler.Handle(ctx, deliveryCommand(t))

	// Assert
	require.NoError(t, err)
	assert.Equal(t, kernel.ID(55), res.TaskID)
	uow.assertRepos(t)
}

func TestAssignShipperForDeliveryCommandHandler_NoShipperAlertsOperations(t *testing.T) {
	// Arrange
	ctx := t.Context()
	uow := newMockUoW()
	notifier := &MockNotifier{}
	o := restoreOrder(t, nil)

	uow.expectTx(false)
	uow.orders.On("GetForUpdate", ctx, kernel.ID(1)).Return(o, nil).Once()
	uow.assignments.On("FindActiveInZone", ctx, district, now).Return(nil, nil).Once()
	uow.assignments.On("FindActiveInCity", ctx, "Hanoi", now).Return(nil, nil).Once()
	notifier.On("Notify", ctx, mock.MatchedBy(func(n notification.Notification) bool {
		return n.RecipientID == opsAccountID && n.Category == notification.CategorySystem
	})).Return().Once()

	handler := newDeliveryHandler(uow, notifier)

	// Act
	res, err := handler.Handle(ctx, deliveryCommand(t))

	// Assert
	require.NoError(t, err)
	assert.False(t, res.Assigned)
	uow.assertRepos(t)
	notifier.AssertExpectations(t)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestAssignShipperForDeliveryCommandHandler_NoShipperStaysQuiet(t *testing.T) {
	tests := []struct {
		name         string
		opsAccountID kernel.ID
		retry        bool
	}{
		{"retry from sweep", opsAccountID, true},
		{"operations account not configured", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			ctx := t.Context()
			uow := newMockUoW()
			notifier := &MockNotifier{}

			uow.expectTx(false)
			uow.orders.On("GetForUpdate", ctx, kernel.ID(1)).Return(restoreOrder(t, nil), nil).Once()
			uow.assignments.On("FindActiveInZone", ctx, district, now).Return(nil, nil).Once()
			uow.assignments.On("FindActiveInCity", ctx, "Hanoi", now).Return(nil, nil).Once()

			factory := &MockUoWFactory{}
			factory.On("Create").Return(uow)
			handler := commands.NewAssignShipperForDeliveryCommandHandler(
				assignmentFactory{factory}, notifier, tt.opsAccountID, discardLogger(),
			)
			cmd := deliveryCommand(t)
			if tt.retry {
				cmd = cmd.AsRetry()
			}

			// Act
			res, err := handler.Handle(ctx, cmd)

			// Assert
			require.NoError(t, err)
			assert.False(t, res.Assigned)
			uow.assertRepos(t)
			notifier.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything)
		})
	}
}

func TestAssignShipperForDeliveryCommandHandler_SkipsOrderNotAtDestination(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(s *order.Snapshot)
	}{
		{"out for delivery", func(s *order.Snapshot) { s.Status = order.Delivering }},
		{"already delivered", func(s *order.Snapshot) { s.Status = order.Delivered }},
		{"no zone", func(s *order.Snapshot) { s.RecipientZone = kernel.Zone{} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			ctx := t.Context()
			uow := newMockUoW()
			notifier := &MockNotifier{}

			uow.expectTx(false)
			uow.orders.On("GetForUpdate", ctx, kernel.ID(1)).Return(restoreOrder(t, tt.mutate), nil).Once()

			handler := newDeliveryHandler(uow, notifier)

			// Act
			res, err := handler.Handle(ctx, deliveryCommand(t))

			// Assert
			require.NoError(t, err)
			assert.Equal(t, commands.AssignShipperResult{}, res)
			uow.assertRepos(t)
			notifier.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything)
		})
	}
}

func TestAssignShipperForDeliveryCommandHandler_AccountWithoutProfile(t *testing.T) {
	// Arrange
	ctx := t.Context()
	uow := newMockUoW()
	notifier := &MockNotifier{}

	uow.expectTx(false)
	uow.orders.On("GetForUpdate", ctx, kernel.ID(1)).Return(restoreOrder(t, nil), nil).Once()
	uow.assignments.On("FindActiveInZone", ctx, district, now).
		Return([]*shipper.Assignment{assignment(t, 1, 70, now.Add(-time.Hour))}, nil).Once()
	uow.profiles.On("FindByAccount", ctx, kernel.ID(70)).Return([]*shipper.Profile{}, nil).Once()

	handler := newDeliveryHandler(uow, notifier)

	// Act
	_, err := handler.Handle(ctx, deliveryCommand(t))

	// Assert
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	uow.assertRepos(t)
	notifier.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything)
}

func TestAssignShipperForDeliveryCommandHandler_OrderNotFound(t *testing.T) {
	// Arrange
	ctx := t.Context()
	uow := newMockUoW()

	uow.expectTx(false)
	uow.orders.On("GetForUpdate", ctx, kernel.ID(1)).Return(nil, errs.NewObjectNotFoundError("orderId", 1)).Once()

	handler := newDeliveryHandler(uow, &MockNotifier{})

	// Act
	_, err := handler.Handle(ctx, deliveryCommand(t))

	// Assert
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	uow.assertRepos(t)
}

func TestAssignShipperForDeliveryCommandHandler_RejectsUnconstructedCommand(t *testing.T) {
	handler := commands.NewAssignShipperForDeliveryCommandHandler(nil, nil, opsAccountID, discardLogger())

	_, err := handler.Handle(t.Context(), commands.AssignShipperForDeliveryCommand{})

	assert.ErrorIs(t, err, commands.ErrAssignShipperForDeliveryCommandIsNotConstructed)
}
