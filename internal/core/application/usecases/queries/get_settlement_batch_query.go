// Package queries contains read operations. Handlers read straight from the database and return
// flat read models instead of aggregates.
package queries

import (
	"errors"
	"time"

	"parcel/internal/core/domain/model/kernel"
	"parcel/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrGetSettlementBatchQueryIsNotConstructed = errors.New(
	"GetSettlementBatchQuery must be created via NewGetSettlementBatchQuery constructor",
)

// GetSettlementBatchQuery loads one batch with the orders it settled and its payout.
type GetSettlementBatchQuery struct {
	batchID kernel.ID
	guard   guard.ConstructorGuard
}

func NewGetSettlementBatchQuery(batchID kernel.ID) (GetSettlementBatchQuery, error) {
	if err := batchID.Validate(); err != nil {
		return GetSettlementBatchQuery{}, err
	}
	return GetSettlementBatchQuery{batchID: batchID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetSettlementBatchQuery) BatchID() kernel.ID {
	return q.batchID
}

func (q GetSettlementBatchQuery) Validate() error {
	return q.guard.Validate(ErrGetSettlementBatchQueryIsNotConstructed)
}

// GetSettlementBatchQueryResponse is the batch read model. Balance equals the sum of the
// order amounts.
type GetSettlementBatchQueryResponse struct {
	ID          kernel.ID
	Code        string
	ShopID      kernel.ID
	Balance     decimal.Decimal
	Status      string
	WarningSent bool
	LockedSent  bool
	CreatedAt   time.Time
	Orders      []SettledOrder
	Payout      *Payout
}

type SettledOrder struct {
	ID           kernel.ID
	TrackingCode string
	Status       string
	Amount       decimal.Decimal
}

type Payout struct {
	ID            kernel.ID
	Amount        decimal.Decimal
	BankName      string
	AccountNumber string
	PaidAt        *time.Time
}
