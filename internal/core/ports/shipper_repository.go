package ports

import (
	"context"
	"time"

	"parcel/internal/core/domain/model/kernel"
	"parcel/internal/core/domain/model/shipper"
)

// ShipperAssignmentRepository reads and writes the duty roster.
type ShipperAssignmentRepository interface {
	Add(ctx context.Context, assignment *shipper.Assignment) error

	// FindActiveInZone returns entries for the exact zone whose window contains at,
	// ordered by creation time then ID.
	FindActiveInZone(ctx context.Context, zone kernel.Zone, at time.Time) ([]*shipper.Assignment, error)

	// FindActiveInCity is the city-only fallback of FindActiveInZone.
	FindActiveInCity(ctx context.Context, city string, at time.Time) ([]*shipper.Assignment, error)
}

// ShipperProfileRepository resolves shipper accounts to their working profiles.
type ShipperProfileRepository interface {
	Add(ctx context.Context, profile *shipper.Profile) error

	// FindByAccount returns every profile of a shipper account ordered by ID.
	FindByAccount(ctx context.Context, accountID kernel.ID) ([]*shipper.Profile, error)
}

// ShipperTaskRepository stores shipper reminder tasks, unique per (order, type).
type ShipperTaskRepository interface {
	Add(ctx context.Context, task *shipper.Task) error
	Update(ctx context.Context, task *shipper.Task) error

	// GetByOrderAndType returns errs.ObjectNotFoundError when the order has no such task.
	GetByOrderAndType(ctx context.Context, orderID kernel.ID, taskType shipper.TaskType) (*shipper.Task, error)
}
