// Package cod is the boundary model of cash-on-delivery collection records. The collection
// flow itself is owned by another service; settlement only reads the reconciliation status.
package cod

import (
	"errors"
	"fmt"
	"time"

	"parcel/internal/core/domain/model/kernel"
	"parcel/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// Status is the reconciliation state of a collection record.
type Status int

const (
	StatusUnknown Status = iota
	StatusPending
	StatusInBatch
	StatusMatched
	StatusMismatched
	StatusAdjusted
)

var statusNames = map[Status]string{
	StatusPending:    "PENDING",
	StatusInBatch:    "IN_BATCH",
	StatusMatched:    "MATCHED",
	StatusMismatched: "MISMATCHED",
	StatusAdjusted:   "ADJUSTED",
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "UNKNOWN"
}

func (s Status) Validate() error {
	if _, ok := statusNames[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("codRecordStatus", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// Record is the cash one shipper collected for one order.
type Record struct {
	id          kernel.ID
	orderID     kernel.ID
	profileID   kernel.ID
	amount      decimal.Decimal
	status      Status
	collectedAt time.Time
}

func NewRecord(orderID, profileID kernel.ID, amount decimal.Decimal, collectedAt time.Time) (*Record, error) {
	if err := errors.Join(orderID.Validate(), profileID.Validate()); err != nil {
		return nil, err
	}
	if amount.IsNegative() {
		return nil, errs.NewValueIsOutOfRangeError("amount", amount.String(), 0, "unbounded")
	}
	return &Record{
		orderID:     orderID,
		profileID:   profileID,
		amount:      amount,
		status:      StatusPending,
		collectedAt: collectedAt,
	}, nil
}

func RestoreRecord(
	id, orderID, profileID kernel.ID, amount decimal.Decimal, status Status, collectedAt time.Time,
) (*Record, error) {
	r, err := NewRecord(orderID, profileID, amount, collectedAt)
	if err != nil {
		return nil, err
	}
	if err = errors.Join(id.Validate(), status.Validate()); err != nil {
		return nil, err
	}
	r.id = id
	r.status = status
	return r, nil
}

func (r *Record) ID() kernel.ID {
	return r.id
}

func (r *Record) SetID(id kernel.ID) {
	r.id = id
}

func (r *Record) OrderID() kernel.ID {
	return r.orderID
}

func (r *Record) ProfileID() kernel.ID {
	return r.profileID
}

func (r *Record) Amount() decimal.Decimal {
	return r.amount
}

func (r *Record) Status() Status {
	return r.status
}

func (r *Record) CollectedAt() time.Time {
	return r.collectedAt
}

// IsSettleable reports whether reconciliation resolved the record (MATCHED or ADJUSTED).
func (r *Record) IsSettleable() bool {
	return r.status == StatusMatched || r.status == StatusAdjusted
}

// Resolve moves the record to a reconciliation outcome. Used by the external reconciliation
// flow and by fixtures.
func (r *Record) Resolve(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	r.status = status
	return nil
}
