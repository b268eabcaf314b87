package commands

import (
	"time"

	"parcel/internal/core/domain/model/kernel"
	"parcel/internal/pkg/errs"
)

// SystemActor identifies scheduler-initiated calls in audit fields and logs.
const SystemActor kernel.ID = 0

func validateActor(actorID kernel.ID) error {
	if actorID < 0 {
		return errs.NewValueIsOutOfRangeError("actorID", actorID.Int64(), 0, "max int64")
	}
	return nil
}

// ErrAtIsRequired is returned when a command carries no reference time.
var ErrAtIsRequired = errs.NewValueIsRequiredError("at")

func validateAt(at time.Time) error {
	if at.IsZero() {
		return ErrAtIsRequired
	}
	return nil
}
