package commands_test

import (
	"testing"
	"time"

	"parcel/internal/core/domain/model/cod"
	"parcel/internal/core/domain/model/kernel"
	"parcel/internal/core/domain/model/order"
	"parcel/internal/core/domain/model/settlement"
	"parcel/internal/core/domain/model/shipper"
	"parcel/internal/core/domain/model/shop"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

var (
	now      = time.Date(2026, 5, 4, 10, 0, 0, 0, time.UTC)
	district = kernel.MustNewZone("Hanoi", "Ba Dinh")
)

func idPtr(v kernel.ID) *kernel.ID {
	return &v
}

func money(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

// orderSnapshot is a valid order waiting at its destination office.
func orderSnapshot() order.Snapshot {
	return order.Snapshot{
		ID:             1,
		TrackingCode:   "TRK-0001",
		ShopID:         10,
		OwnerAccountID: idPtr(100),
		Status:         order.AtDestOffice,
		PickupType:     order.PickupByCourier,
		COD:            decimal.Zero,
		TotalFee:       decimal.Zero,
		Payer:          order.PayerCustomer,
		PaymentStatus:  order.PaymentUnpaid,
		CODStatus:      order.CODNone,
		SenderZone:     district,
		RecipientZone:  district,
	}
}

func restoreOrder(t *testing.T, mutate func(s *order.Snapshot)) *order.Order {
	t.Helper()
	s := orderSnapshot()
	if mutate != nil {
		mutate(&s)
	}
	o, err := order.RestoreOrder(s)
	require.NoError(t, err)
	return o
}

func settledOrder(
	t *testing.T, id kernel.ID, status order.Status, codAmount, fee int64, payer order.Payer, payment order.PaymentStatus,
) *order.Order {
	t.Helper()
	return restoreOrder(t, func(s *order.Snapshot) {
		s.ID = id
		s.Status = status
		s.COD = money(codAmount)
		s.TotalFee = money(fee)
		s.Payer = payer
		s.PaymentStatus = payment
		s.CODStatus = order.CODReceived
	})
}

func assignment(t *testing.T, id, shipperID kernel.ID, createdAt time.Time) *shipper.Assignment {
	t.Helper()
	a, err := shipper.RestoreAssignment(id, shipperID, district, now.Add(-time.Hour), now.Add(time.Hour), createdAt)
	require.NoError(t, err)
	return a
}

func profile(t *testing.T, id, accountID kernel.ID, officeID *kernel.ID) *shipper.Profile {
	t.Helper()
	p, err := shipper.RestoreProfile(id, accountID, officeID)
	require.NoError(t, err)
	return p
}

func codRecord(t *testing.T, orderID kernel.ID, amount int64, status cod.Status) *cod.Record {
	t.Helper()
	r, err := cod.RestoreRecord(orderID+1000, orderID, 7, money(amount), status, now.Add(-24*time.Hour))
	require.NoError(t, err)
	return r
}

func restoreShop(t *testing.T, locked bool) *shop.Shop {
	t.Helper()
	s, err := shop.RestoreShop(10, 100, locked)
	require.NoError(t, err)
	return s
}

func bankAccount(t *testing.T) *shop.BankAccount {
	t.Helper()
	a, err := shop.RestoreBankAccount(3, 10, "VCB", "0011223344", "Shop Owner", true)
	require.NoError(t, err)
	return a
}

func unpaidBatch(t *testing.T, age time.Duration, warningSent, lockedSent bool) *settlement.Batch {
	t.Helper()
	b, err := settlement.RestoreBatch(settlement.BatchSnapshot{
		ID:          500,
		Code:        "SB-20260501-AAAA0000",
		ShopID:      10,
		Balance:     money(20000),
		Status:      settlement.BatchPending,
		WarningSent: warningSent,
		LockedSent:  lockedSent,
		CreatedAt:   now.Add(-age),
		UpdatedAt:   now.Add(-age),
	})
	require.NoError(t, err)
	return b
}
