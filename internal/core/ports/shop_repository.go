package ports

import (
	"context"

	"parcel/internal/core/domain/model/kernel"
	"parcel/internal/core/domain/model/shop"
)

// ShopRepository reads shops and persists the lock flag.
type ShopRepository interface {
	Add(ctx context.Context, s *shop.Shop) error
	Get(ctx context.Context, id kernel.ID) (*shop.Shop, error)

	// GetForUpdate locks the shop row until the surrounding transaction ends. Settlement runs
	// for the same shop queue here.
	GetForUpdate(ctx context.Context, id kernel.ID) (*shop.Shop, error)

	Update(ctx context.Context, s *shop.Shop) error
}

// BankAccountRepository is a read-only directory of shop bank accounts.
type BankAccountRepository interface {
	Add(ctx context.Context, account *shop.BankAccount) error

	// GetPayoutDefault returns errs.ObjectNotFoundError when the shop has no designated payout account.
	GetPayoutDefault(ctx context.Context, shopID kernel.ID) (*shop.BankAccount, error)
}
