package settlement

import (
	"fmt"

	"parcel/internal/pkg/errs"
)

// BatchStatus is the lifecycle of a settlement batch.
//
//	PENDING ──> COMPLETED   (positive balance paid out)
//	   │  └───> FAILED      (balance <= 0, nothing to pay)
//	   └─ PARTIAL           (set by manual reconciliation outside this core)
type BatchStatus int

const (
	BatchUnknown BatchStatus = iota
	BatchPending
	BatchPartial
	BatchCompleted
	BatchFailed
)

func getBatchStatusStrings() map[BatchStatus]string {
	return map[BatchStatus]string{
		BatchPending:   "PENDING",
		BatchPartial:   "PARTIAL",
		BatchCompleted: "COMPLETED",
		BatchFailed:    "FAILED",
	}
}

func (s BatchStatus) String() string {
	if str, ok := getBatchStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

func (s BatchStatus) Validate() error {
	if _, ok := getBatchStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("batchStatus", fmt.Errorf("%d is not a valid batch status", s))
	}
	return nil
}

// IsOpen reports whether the batch still accepts orders.
func (s BatchStatus) IsOpen() bool {
	return s == BatchPending || s == BatchPartial
}

// IsUnpaid reports whether the shop still owes or is owed money on this batch.
func (s BatchStatus) IsUnpaid() bool {
	return s == BatchPending || s == BatchPartial || s == BatchFailed
}

// UnpaidBatchStatuses lists the statuses the escalation scan looks at.
func UnpaidBatchStatuses() []BatchStatus {
	return []BatchStatus{BatchPending, BatchPartial, BatchFailed}
}

// TransactionStatus is the outcome of a money movement.
type TransactionStatus int

const (
	TransactionUnknown TransactionStatus = iota
	TransactionPending
	TransactionSuccess
	TransactionFailed
)

func (s TransactionStatus) String() string {
	switch s {
	case TransactionPending:
		return "PENDING"
	case TransactionSuccess:
		return "SUCCESS"
	case TransactionFailed:
		return "FAILED"
	default:
		return "UNKNOWN"
	}
}

func (s TransactionStatus) Validate() error {
	if s < TransactionPending || s > TransactionFailed {
		return errs.NewValueIsInvalidErrorWithCause("transactionStatus", fmt.Errorf("%d is not a valid transaction status", s))
	}
	return nil
}

// TransactionType is the direction of a money movement.
type TransactionType int

const (
	TransactionTypeUnknown TransactionType = iota
	// ShopPayout moves money from the platform to the shop's bank account.
	ShopPayout
)

func (t TransactionType) String() string {
	if t == ShopPayout {
		return "SHOP_PAYOUT"
	}
	return "UNKNOWN"
}

func (t TransactionType) Validate() error {
	if t != ShopPayout {
		return errs.NewValueIsInvalidErrorWithCause("transactionType", fmt.Errorf("%d is not a valid transaction type", t))
	}
	return nil
}
