package shipperrepo

import (
	"context"
	"errors"
	"time"

	"parcel/internal/core/domain/model/kernel"
	"parcel/internal/core/domain/model/shipper"
	"parcel/internal/pkg/errs"

	"gorm.io/gorm"
)

type aggregateTracker interface {
	TrackAggregate(id kernel.ID, aggregate any)
}

// GormAssignmentRepository implements ports.ShipperAssignmentRepository using GORM.
type GormAssignmentRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

func NewGormAssignmentRepository(db *gorm.DB, tracker aggregateTracker) *GormAssignmentRepository {
	return &GormAssignmentRepository{db: db, tracker: tracker}
}

func (r *GormAssignmentRepository) Add(ctx context.Context, assignment *shipper.Assignment) error {
	if err := assignment.Validate(); err != nil {
		return err
	}

	dto := assignmentFromDomain(assignment)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	assignment.SetID(kernel.ID(dto.ID))
	r.tracker.TrackAggregate(assignment.ID(), assignment)
	return nil
}

func (r *GormAssignmentRepository) FindActiveInZone(
	ctx context.Context, zone kernel.Zone, at time.Time,
) ([]*shipper.Assignment, error) {
	if err := zone.Validate(); err != nil {
		return nil, err
	}
	return r.findActive(ctx, r.db.Where("city = ? AND ward = ?", zone.City(), zone.Ward()), at)
}

func (r *GormAssignmentRepository) FindActiveInCity(
	ctx context.Context, city string, at time.Time,
) ([]*shipper.Assignment, error) {
	if city == "" {
		return nil, errs.NewValueIsRequiredError("city")
	}
	return r.findActive(ctx, r.db.Where("city = ?", city), at)
}

// findActive keeps entries whose [start_at, end_at) window contains at.
func (r *GormAssignmentRepository) findActive(
	ctx context.Context, scope *gorm.DB, at time.Time,
) ([]*shipper.Assignment, error) {
	var dtos []AssignmentDTO
	err := scope.WithContext(ctx).
		Where("start_at <= ? AND end_at > ?", at, at).
		Order("created_at, id").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	assignments := make([]*shipper.Assignment, 0, len(dtos))
	for _, dto := range dtos {
		a, err := assignmentToDomain(dto)
		if err != nil {
			return nil, err
		}
		assignments = append(assignments, a)
	}

	return assignments, nil
}

// GormProfileRepository implements ports.ShipperProfileRepository using GORM.
type GormProfileRepository struct {
	db *gorm.DB
}

func NewGormProfileRepository(db *gorm.DB) *GormProfileRepository {
	return &GormProfileRepository{db: db}
}

func (r *GormProfileRepository) Add(ctx context.Context, profile *shipper.Profile) error {
	dto := profileFromDomain(profile)
	return r.db.WithContext(ctx).Create(&dto).Error
}

func (r *GormProfileRepository) FindByAccount(ctx context.Context, accountID kernel.ID) ([]*shipper.Profile, error) {
	if err := accountID.Validate(); err != nil {
		return nil, err
	}

	var dtos []ProfileDTO
	if err := r.db.WithContext(ctx).Where("account_id = ?", accountID.Int64()).Order("id").Find(&dtos).Error; err != nil {
		return nil, err
	}

	profiles := make([]*shipper.Profile, 0, len(dtos))
	for _, dto := range dtos {
		p, err := profileToDomain(dto)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}

	return profiles, nil
}

// GormTaskRepository implements ports.ShipperTaskRepository using GORM.
type GormTaskRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

func NewGormTaskRepository(db *gorm.DB, tracker aggregateTracker) *GormTaskRepository {
	return &GormTaskRepository{db: db, tracker: tracker}
}

func (r *GormTaskRepository) Add(ctx context.Context, task *shipper.Task) error {
	dto := taskFromDomain(task)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	task.SetID(kernel.ID(dto.ID))
	r.tracker.TrackAggregate(task.ID(), task)
	return nil
}

func (r *GormTaskRepository) Update(ctx context.Context, task *shipper.Task) error {
	if err := task.ID().Validate(); err != nil {
		return err
	}

	dto := taskFromDomain(task)
	result := r.db.WithContext(ctx).
		Model(&TaskDTO{}).
		Where("id = ?", dto.ID).
		Select("profile_id", "status").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(task.ID(), task)
	return nil
}

func (r *GormTaskRepository) GetByOrderAndType(
	ctx context.Context, orderID kernel.ID, taskType shipper.TaskType,
) (*shipper.Task, error) {
	var dto TaskDTO
	err := r.db.WithContext(ctx).First(&dto, "order_id = ? AND type = ?", orderID.Int64(), int(taskType)).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("shipperTask", orderID.Int64())
		}
		return nil, err
	}

	return taskToDomain(dto)
}
