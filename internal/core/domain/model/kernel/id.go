package kernel

import (
	"strconv"

	"parcel/internal/pkg/errs"
)

// ID is the opaque identifier of every aggregate and account in the system.
// Storage assigns it; zero means "not assigned yet".
type ID int64

func NewID(v int64) (ID, error) {
	id := ID(v)
	if err := id.Validate(); err != nil {
		return 0, err
	}
	return id, nil
}

// Validate rejects zero and negative identifiers.
func (id ID) Validate() error {
	if id <= 0 {
		return errs.NewValueIsOutOfRangeError("id", int64(id), 1, "max int64")
	}
	return nil
}

func (id ID) IsZero() bool {
	return id == 0
}

func (id ID) Int64() int64 {
	return int64(id)
}

func (id ID) String() string {
	return strconv.FormatInt(int64(id), 10)
}

// OptionalID converts a nullable column into a domain pointer.
func OptionalID(v *int64) *ID {
	if v == nil {
		return nil
	}
	id := ID(*v)
	return &id
}

// OptionalInt64 is the inverse of OptionalID.
func OptionalInt64(id *ID) *int64 {
	if id == nil {
		return nil
	}
	v := int64(*id)
	return &v
}
