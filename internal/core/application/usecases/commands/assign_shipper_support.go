package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"parcel/internal/core/domain/model/kernel"
	"parcel/internal/core/domain/model/notification"
	"parcel/internal/core/domain/model/order"
	"parcel/internal/core/domain/model/shipper"
	"parcel/internal/core/domain/services"
	"parcel/internal/core/ports"
	"parcel/internal/pkg/errs"
)

// findCandidates returns roster entries active at `at` in the exact zone, relaxing to the
// whole city when the ward has nobody on duty.
func findCandidates(
	ctx context.Context, repo ports.ShipperAssignmentRepository, zone kernel.Zone, at time.Time,
) ([]*shipper.Assignment, error) {
	candidates, err := repo.FindActiveInZone(ctx, zone, at)
	if err != nil {
		return nil, fmt.Errorf("find shippers in zone %s: %w", zone, err)
	}
	if len(candidates) > 0 {
		return candidates, nil
	}

	candidates, err = repo.FindActiveInCity(ctx, zone.City(), at)
	if err != nil {
		return nil, fmt.Errorf("find shippers in city %s: %w", zone.City(), err)
	}
	return candidates, nil
}

// pickShipper selects the roster entry and resolves it to a profile.
func pickShipper(
	ctx context.Context,
	repos ShipperRepoFactory,
	dispatcher services.ShipperDispatcher,
	zone kernel.Zone,
	preferredOffice *kernel.ID,
	at time.Time,
) (*shipper.Assignment, *shipper.Profile, error) {
	candidates, err := findCandidates(ctx, repos.ShipperAssignmentRepository(), zone, at)
	if err != nil {
		return nil, nil, err
	}

	picked, ok := dispatcher.Pick(candidates)
	if !ok {
		return nil, nil, nil
	}

	profiles, err := repos.ShipperProfileRepository().FindByAccount(ctx, picked.ShipperID())
	if err != nil {
		return nil, nil, err
	}

	profile, ok := dispatcher.ResolveProfile(profiles, preferredOffice)
	if !ok {
		return nil, nil, errs.NewObjectNotFoundError("shipperProfile", picked.ShipperID())
	}

	return picked, profile, nil
}

// ensureTask creates the reminder task for the order or reuses the existing one.
func ensureTask(
	ctx context.Context,
	repo ports.ShipperTaskRepository,
	orderID, profileID kernel.ID,
	taskType shipper.TaskType,
	at time.Time,
) (*shipper.Task, error) {
	task, err := repo.GetByOrderAndType(ctx, orderID, taskType)
	if err == nil {
		if err = task.Reassign(profileID); err != nil {
			return nil, err
		}
		if err = repo.Update(ctx, task); err != nil {
			return nil, err
		}
		return task, nil
	}
	if !errors.Is(err, errs.ErrObjectNotFound) {
		return nil, err
	}

	task, err = shipper.NewTask(orderID, profileID, taskType, at)
	if err != nil {
		return nil, err
	}
	if err = repo.Add(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

func officeID(o *order.Office) *kernel.ID {
	if o == nil {
		return nil
	}
	id := o.ID
	return &id
}

// notify hands a rendered notification to the sink. A template that fails to render is logged
// and skipped; notifications never fail the business operation.
func notify(ctx context.Context, notifier ports.Notifier, logger *slog.Logger, n notification.Notification, err error) {
	if err != nil {
		logger.WarnContext(ctx, "notification skipped", "error", err)
		return
	}
	notifier.Notify(ctx, n)
}
