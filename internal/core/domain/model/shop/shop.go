// Package shop holds the parts of a merchant account the settlement core touches: the lock
// flag consulted by order creation and the bank account payouts go to.
package shop

import (
	"errors"
	"strings"

	"parcel/internal/core/domain/model/kernel"
	"parcel/internal/pkg/errs"
)

// Shop is a merchant sending parcels. A locked shop cannot create new orders.
type Shop struct {
	id             kernel.ID
	ownerAccountID kernel.ID
	locked         bool
}

func RestoreShop(id, ownerAccountID kernel.ID, locked bool) (*Shop, error) {
	if err := errors.Join(id.Validate(), ownerAccountID.Validate()); err != nil {
		return nil, err
	}
	return &Shop{id: id, ownerAccountID: ownerAccountID, locked: locked}, nil
}

func (s *Shop) ID() kernel.ID {
	return s.id
}

func (s *Shop) OwnerAccountID() kernel.ID {
	return s.ownerAccountID
}

func (s *Shop) IsLocked() bool {
	return s.locked
}

// Lock blocks new-order creation. It reports whether the flag changed.
func (s *Shop) Lock() bool {
	if s.locked {
		return false
	}
	s.locked = true
	return true
}

// BankAccount is a shop's bank account; at most one is flagged as the payout default.
type BankAccount struct {
	id            kernel.ID
	shopID        kernel.ID
	bankName      string
	accountNumber string
	accountHolder string
	payoutDefault bool
}

func RestoreBankAccount(
	id, shopID kernel.ID, bankName, accountNumber, accountHolder string, payoutDefault bool,
) (*BankAccount, error) {
	var numberErr error
	if strings.TrimSpace(accountNumber) == "" {
		numberErr = errs.NewValueIsRequiredError("accountNumber")
	}
	if err := errors.Join(id.Validate(), shopID.Validate(), numberErr); err != nil {
		return nil, err
	}
	return &BankAccount{
		id:            id,
		shopID:        shopID,
		bankName:      bankName,
		accountNumber: accountNumber,
		accountHolder: accountHolder,
		payoutDefault: payoutDefault,
	}, nil
}

func (a *BankAccount) ID() kernel.ID {
	return a.id
}

func (a *BankAccount) ShopID() kernel.ID {
	return a.shopID
}

func (a *BankAccount) BankName() string {
	return a.bankName
}

func (a *BankAccount) AccountNumber() string {
	return a.accountNumber
}

func (a *BankAccount) AccountHolder() string {
	return a.accountHolder
}

func (a *BankAccount) IsPayoutDefault() bool {
	return a.payoutDefault
}
