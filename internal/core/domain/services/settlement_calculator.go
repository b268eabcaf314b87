package services

import (
	"parcel/internal/core/domain/model/cod"
	"parcel/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
)

// ExclusionReason explains why an order stays out of a batch.
type ExclusionReason int

const (
	NotExcluded ExclusionReason = iota
	// ExcludedNoMoneyFlow: the shop pays the fee and there is no cod, nothing to settle.
	ExcludedNoMoneyFlow
	// ExcludedUnresolvedCOD: the collection record is not reconciled yet; retried next run.
	ExcludedUnresolvedCOD
)

func (r ExclusionReason) String() string {
	switch r {
	case ExcludedNoMoneyFlow:
		return "no_money_flow"
	case ExcludedUnresolvedCOD:
		return "unresolved_cod"
	default:
		return "included"
	}
}

// SettlementCalculator decides whether an order enters a batch and with what signed amount.
// Positive amounts are owed to the shop, negative amounts are owed by the shop.
type SettlementCalculator struct{}

func NewSettlementCalculator() SettlementCalculator {
	return SettlementCalculator{}
}

// Exclusion reports why o must be left out of the batch, if at all. record is nil when the
// order has no collection record.
func (c SettlementCalculator) Exclusion(o *order.Order, record *cod.Record) ExclusionReason {
	if record == nil {
		if o.COD().IsZero() && o.Payer() == order.PayerShop {
			return ExcludedNoMoneyFlow
		}
		return NotExcluded
	}
	if !record.IsSettleable() {
		return ExcludedUnresolvedCOD
	}
	return NotExcluded
}

// Contribution is the signed amount an included order adds to its batch balance.
//
//	RETURNED  & UNPAID              -> -totalFee (the shop refunds the uncollected fee)
//	RETURNED  & PAID   & CUSTOMER   ->  0
//	DELIVERED & PAID   & CUSTOMER   -> +cod
//	otherwise                       -> +(cod - totalFee)
func (c SettlementCalculator) Contribution(o *order.Order) decimal.Decimal {
	paid := o.PaymentStatus() == order.PaymentPaid
	customerPays := o.Payer() == order.PayerCustomer

	switch {
	case o.Status() == order.Returned && o.PaymentStatus() == order.PaymentUnpaid:
		return o.TotalFee().Neg()
	case o.Status() == order.Returned && paid && customerPays:
		return decimal.Zero
	case o.Status() == order.Delivered && paid && customerPays:
		return o.COD()
	default:
		return o.COD().Sub(o.TotalFee())
	}
}
