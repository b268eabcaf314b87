// Package shoprepo persists shops and their bank accounts.
package shoprepo

import (
	"parcel/internal/core/domain/model/kernel"
	"parcel/internal/core/domain/model/shop"
)

type ShopDTO struct {
	ID             int64 `gorm:"primaryKey"`
	OwnerAccountID int64 `gorm:"index;not null"`
	Locked         bool  `gorm:"not null;default:false"`
}

func (ShopDTO) TableName() string {
	return "shops"
}

// BankAccountDTO maps shop_bank_accounts. The shop service keeps at most one payout default per shop.
type BankAccountDTO struct {
	ID            int64  `gorm:"primaryKey"`
	ShopID        int64  `gorm:"index;not null"`
	BankName      string `gorm:"not null"`
	AccountNumber string `gorm:"not null"`
	AccountHolder string
	PayoutDefault bool `gorm:"not null;default:false"`
}

func (BankAccountDTO) TableName() string {
	return "shop_bank_accounts"
}

func shopFromDomain(s *shop.Shop) ShopDTO {
	return ShopDTO{
		ID:             s.ID().Int64(),
		OwnerAccountID: s.OwnerAccountID().Int64(),
		Locked:         s.IsLocked(),
	}
}

func shopToDomain(dto ShopDTO) (*shop.Shop, error) {
	return shop.RestoreShop(kernel.ID(dto.ID), kernel.ID(dto.OwnerAccountID), dto.Locked)
}

func bankAccountFromDomain(a *shop.BankAccount) BankAccountDTO {
	return BankAccountDTO{
		ID:            a.ID().Int64(),
		ShopID:        a.ShopID().Int64(),
		BankName:      a.BankName(),
		AccountNumber: a.AccountNumber(),
		AccountHolder: a.AccountHolder(),
		PayoutDefault: a.IsPayoutDefault(),
	}
}

func bankAccountToDomain(dto BankAccountDTO) (*shop.BankAccount, error) {
	return shop.RestoreBankAccount(
		kernel.ID(dto.ID),
		kernel.ID(dto.ShopID),
		dto.BankName,
		dto.AccountNumber,
		dto.AccountHolder,
		dto.PayoutDefault,
	)
}
