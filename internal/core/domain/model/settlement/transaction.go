package settlement

import (
	"errors"
	"strings"
	"time"

	"parcel/internal/core/domain/model/kernel"
	"parcel/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// PayoutDestination is the bank account a payout is sent to, copied onto the transaction so
// later edits of the shop's bank details do not rewrite history.
type PayoutDestination struct {
	BankName      string
	AccountNumber string
	AccountHolder string
}

func (d PayoutDestination) Validate() error {
	var errList []error
	if strings.TrimSpace(d.BankName) == "" {
		errList = append(errList, errs.NewValueIsRequiredError("bankName"))
	}
	if strings.TrimSpace(d.AccountNumber) == "" {
		errList = append(errList, errs.NewValueIsRequiredError("accountNumber"))
	}
	return errors.Join(errList...)
}

// Transaction is a money movement produced by a settlement batch.
type Transaction struct {
	id          kernel.ID
	batchID     kernel.ID
	shopID      kernel.ID
	amount      decimal.Decimal
	txType      TransactionType
	status      TransactionStatus
	destination PayoutDestination
	paidAt      *time.Time
}

// NewPayout records a successful payout of a positive batch balance.
func NewPayout(batch *Batch, destination PayoutDestination, now time.Time) (*Transaction, error) {
	if err := batch.Validate(); err != nil {
		return nil, err
	}
	if err := errors.Join(batch.ID().Validate(), destination.Validate()); err != nil {
		return nil, err
	}
	if !batch.Balance().IsPositive() {
		return nil, errs.NewValueIsOutOfRangeError("amount", batch.Balance().String(), "> 0", "unbounded")
	}

	return &Transaction{
		batchID:     batch.ID(),
		shopID:      batch.ShopID(),
		amount:      batch.Balance(),
		txType:      ShopPayout,
		status:      TransactionSuccess,
		destination: destination,
		paidAt:      &now,
	}, nil
}

func RestoreTransaction(
	id, batchID, shopID kernel.ID,
	amount decimal.Decimal,
	txType TransactionType,
	status TransactionStatus,
	destination PayoutDestination,
	paidAt *time.Time,
) (*Transaction, error) {
	if err := errors.Join(
		id.Validate(), batchID.Validate(), shopID.Validate(), txType.Validate(), status.Validate(),
	); err != nil {
		return nil, err
	}
	return &Transaction{
		id:          id,
		batchID:     batchID,
		shopID:      shopID,
		amount:      amount,
		txType:      txType,
		status:      status,
		destination: destination,
		paidAt:      paidAt,
	}, nil
}

func (t *Transaction) ID() kernel.ID {
	return t.id
}

func (t *Transaction) SetID(id kernel.ID) {
	t.id = id
}

func (t *Transaction) BatchID() kernel.ID {
	return t.batchID
}

func (t *Transaction) ShopID() kernel.ID {
	return t.shopID
}

func (t *Transaction) Amount() decimal.Decimal {
	return t.amount
}

func (t *Transaction) Type() TransactionType {
	return t.txType
}

func (t *Transaction) Status() TransactionStatus {
	return t.status
}

func (t *Transaction) Destination() PayoutDestination {
	return t.destination
}

func (t *Transaction) PaidAt() *time.Time {
	return t.paidAt
}
