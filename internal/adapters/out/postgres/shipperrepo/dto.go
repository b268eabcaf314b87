// Package shipperrepo persists the duty roster, shipper profiles and shipper tasks.
package shipperrepo

import (
	"time"

	"parcel/internal/core/domain/model/kernel"
	"parcel/internal/core/domain/model/shipper"
)

// AssignmentDTO is one roster entry: a shipper on duty in a zone for a time window.
type AssignmentDTO struct {
	ID        int64     `gorm:"primaryKey"`
	ShipperID int64     `gorm:"index;not null"`
	City      string    `gorm:"index:idx_shipper_assignments_zone;not null"`
	Ward      string    `gorm:"index:idx_shipper_assignments_zone;not null"`
	StartAt   time.Time `gorm:"not null"`
	EndAt     time.Time `gorm:"not null"`
	CreatedAt time.Time `gorm:"not null"`
}

func (AssignmentDTO) TableName() string {
	return "shipper_assignments"
}

// ProfileDTO links a shipper account to the office it works from.
type ProfileDTO struct {
	ID        int64 `gorm:"primaryKey"`
	AccountID int64 `gorm:"index;not null"`
	OfficeID  *int64
}

func (ProfileDTO) TableName() string {
	return "shipper_profiles"
}

// TaskDTO is a reminder task; one per (order, type).
type TaskDTO struct {
	ID        int64 `gorm:"primaryKey"`
	OrderID   int64 `gorm:"uniqueIndex:idx_shipper_tasks_order_type;not null"`
	ProfileID int64 `gorm:"index;not null"`
	Type      int   `gorm:"uniqueIndex:idx_shipper_tasks_order_type;not null"`
	Status    int   `gorm:"not null"`
	CreatedAt time.Time
}

func (TaskDTO) TableName() string {
	return "shipper_tasks"
}

func assignmentFromDomain(a *shipper.Assignment) AssignmentDTO {
	return AssignmentDTO{
		ID:        a.ID().Int64(),
		ShipperID: a.ShipperID().Int64(),
		City:      a.Zone().City(),
		Ward:      a.Zone().Ward(),
		StartAt:   a.StartAt(),
		EndAt:     a.EndAt(),
		CreatedAt: a.CreatedAt(),
	}
}

func assignmentToDomain(dto AssignmentDTO) (*shipper.Assignment, error) {
	zone, err := kernel.NewZone(dto.City, dto.Ward)
	if err != nil {
		return nil, err
	}
	return shipper.RestoreAssignment(kernel.ID(dto.ID), kernel.ID(dto.ShipperID), zone, dto.StartAt, dto.EndAt, dto.CreatedAt)
}

func profileFromDomain(p *shipper.Profile) ProfileDTO {
	return ProfileDTO{
		ID:        p.ID().Int64(),
		AccountID: p.AccountID().Int64(),
		OfficeID:  kernel.OptionalInt64(p.OfficeID()),
	}
}

func profileToDomain(dto ProfileDTO) (*shipper.Profile, error) {
	return shipper.RestoreProfile(kernel.ID(dto.ID), kernel.ID(dto.AccountID), kernel.OptionalID(dto.OfficeID))
}

func taskFromDomain(t *shipper.Task) TaskDTO {
	return TaskDTO{
		ID:        t.ID().Int64(),
		OrderID:   t.OrderID().Int64(),
		ProfileID: t.ProfileID().Int64(),
		Type:      int(t.Type()),
		Status:    int(t.Status()),
		CreatedAt: t.CreatedAt(),
	}
}

func taskToDomain(dto TaskDTO) (*shipper.Task, error) {
	return shipper.RestoreTask(
		kernel.ID(dto.ID),
		kernel.ID(dto.OrderID),
		kernel.ID(dto.ProfileID),
		shipper.TaskType(dto.Type),
		shipper.TaskStatus(dto.Status),
		dto.CreatedAt,
	)
}
