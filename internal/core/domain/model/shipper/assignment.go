package shipper

import (
	"errors"
	"fmt"
	"time"

	"parcel/internal/core/domain/model/kernel"
	"parcel/internal/pkg/errs"
)

var ErrAssignmentIsNotConstructed = errors.New("Assignment must be created via NewAssignment or RestoreAssignment")

// Assignment is a duty-roster entry: the shipper covers a zone during [startAt, endAt).
// Several entries may exist for one shipper and they may overlap; an entry does not own orders.
type Assignment struct {
	id        kernel.ID
	shipperID kernel.ID
	zone      kernel.Zone
	startAt   time.Time
	endAt     time.Time
	createdAt time.Time

	isConstructed bool
}

// NewAssignment creates a roster entry that storage has not assigned an ID to yet.
func NewAssignment(shipperID kernel.ID, zone kernel.Zone, startAt, endAt, createdAt time.Time) (*Assignment, error) {
	a := &Assignment{
		shipperID:     shipperID,
		zone:          zone,
		startAt:       startAt,
		endAt:         endAt,
		createdAt:     createdAt,
		isConstructed: true,
	}
	if err := a.validateFields(); err != nil {
		return nil, err
	}
	return a, nil
}

func RestoreAssignment(
	id, shipperID kernel.ID, zone kernel.Zone, startAt, endAt, createdAt time.Time,
) (*Assignment, error) {
	a, err := NewAssignment(shipperID, zone, startAt, endAt, createdAt)
	if err != nil {
		return nil, err
	}
	if err = id.Validate(); err != nil {
		return nil, err
	}
	a.id = id
	return a, nil
}

func (a *Assignment) validateFields() error {
	var windowErr error
	if !a.endAt.After(a.startAt) {
		windowErr = errs.NewValueIsInvalidErrorWithCause(
			"window",
			fmt.Errorf("end %s is not after start %s", a.endAt.Format(time.RFC3339), a.startAt.Format(time.RFC3339)),
		)
	}
	return errors.Join(a.shipperID.Validate(), a.zone.Validate(), windowErr)
}

func (a *Assignment) Validate() error {
	if a == nil || !a.isConstructed {
		return ErrAssignmentIsNotConstructed
	}
	return nil
}

func (a *Assignment) ID() kernel.ID {
	return a.id
}

func (a *Assignment) SetID(id kernel.ID) {
	a.id = id
}

func (a *Assignment) ShipperID() kernel.ID {
	return a.shipperID
}

func (a *Assignment) Zone() kernel.Zone {
	return a.zone
}

func (a *Assignment) StartAt() time.Time {
	return a.startAt
}

func (a *Assignment) EndAt() time.Time {
	return a.endAt
}

func (a *Assignment) CreatedAt() time.Time {
	return a.createdAt
}

// IsActiveAt reports startAt <= t < endAt.
func (a *Assignment) IsActiveAt(t time.Time) bool {
	return !t.Before(a.startAt) && t.Before(a.endAt)
}
