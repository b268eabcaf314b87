package shipper

import (
	"errors"
	"fmt"
	"time"

	"parcel/internal/core/domain/model/kernel"
	"parcel/internal/pkg/errs"
)

// TaskType is the kind of reminder a shipper receives for an order.
type TaskType int

const (
	TaskUnknown TaskType = iota
	TaskDeliveryReminder
	TaskPickupReminder
)

func (t TaskType) String() string {
	switch t {
	case TaskDeliveryReminder:
		return "DELIVERY_REMINDER"
	case TaskPickupReminder:
		return "PICKUP_REMINDER"
	default:
		return "UNKNOWN"
	}
}

func (t TaskType) Validate() error {
	if t != TaskDeliveryReminder && t != TaskPickupReminder {
		return errs.NewValueIsInvalidErrorWithCause("taskType", fmt.Errorf("%d is not a valid task type", t))
	}
	return nil
}

// TaskStatus is the progress of a shipper task.
type TaskStatus int

const (
	TaskStatusUnknown TaskStatus = iota
	TaskProcessing
	TaskDone
	TaskCancelled
)

func (s TaskStatus) String() string {
	switch s {
	case TaskProcessing:
		return "PROCESSING"
	case TaskDone:
		return "DONE"
	case TaskCancelled:
		return "CANCELLED"
	default:
		return "UNKNOWN"
	}
}

func (s TaskStatus) Validate() error {
	if s < TaskProcessing || s > TaskCancelled {
		return errs.NewValueIsInvalidErrorWithCause("taskStatus", fmt.Errorf("%d is not a valid task status", s))
	}
	return nil
}

// Task is the work item telling a shipper to deliver or pick up an order.
// There is at most one task per (order, type).
type Task struct {
	id        kernel.ID
	orderID   kernel.ID
	profileID kernel.ID
	taskType  TaskType
	status    TaskStatus
	createdAt time.Time
}

// NewTask opens a PROCESSING task for the given shipper profile.
func NewTask(orderID, profileID kernel.ID, taskType TaskType, createdAt time.Time) (*Task, error) {
	if err := errors.Join(orderID.Validate(), profileID.Validate(), taskType.Validate()); err != nil {
		return nil, err
	}
	return &Task{
		orderID:   orderID,
		profileID: profileID,
		taskType:  taskType,
		status:    TaskProcessing,
		createdAt: createdAt,
	}, nil
}

func RestoreTask(
	id, orderID, profileID kernel.ID, taskType TaskType, status TaskStatus, createdAt time.Time,
) (*Task, error) {
	t, err := NewTask(orderID, profileID, taskType, createdAt)
	if err != nil {
		return nil, err
	}
	if err = errors.Join(id.Validate(), status.Validate()); err != nil {
		return nil, err
	}
	t.id = id
	t.status = status
	return t, nil
}

func (t *Task) ID() kernel.ID {
	return t.id
}

func (t *Task) SetID(id kernel.ID) {
	t.id = id
}

func (t *Task) OrderID() kernel.ID {
	return t.orderID
}

func (t *Task) ProfileID() kernel.ID {
	return t.profileID
}

func (t *Task) Type() TaskType {
	return t.taskType
}

func (t *Task) Status() TaskStatus {
	return t.status
}

func (t *Task) CreatedAt() time.Time {
	return t.createdAt
}

// Reassign reuses the task for another (or the same) shipper profile and reopens it.
func (t *Task) Reassign(profileID kernel.ID) error {
	if err := profileID.Validate(); err != nil {
		return err
	}
	t.profileID = profileID
	t.status = TaskProcessing
	return nil
}
