// Package settlementrepo persists settlement batches, payout transactions and per-shop schedules.
package settlementrepo

import (
	"time"

	"parcel/internal/core/domain/model/kernel"
	"parcel/internal/core/domain/model/settlement"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

type BatchDTO struct {
	ID          int64           `gorm:"primaryKey"`
	Code        string          `gorm:"uniqueIndex;not null"`
	ShopID      int64           `gorm:"index;not null"`
	Balance     decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	Status      int             `gorm:"index;not null"`
	WarningSent bool            `gorm:"not null;default:false"`
	LockedSent  bool            `gorm:"not null;default:false"`
	CreatedAt   time.Time       `gorm:"index;autoCreateTime:false"`
	UpdatedAt   time.Time       `gorm:"autoUpdateTime:false"`
}

func (BatchDTO) TableName() string {
	return "settlement_batches"
}

type TransactionDTO struct {
	ID            int64           `gorm:"primaryKey"`
	BatchID       int64           `gorm:"index;not null"`
	ShopID        int64           `gorm:"index;not null"`
	Amount        decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Type          int             `gorm:"not null"`
	Status        int             `gorm:"not null"`
	BankName      string
	AccountNumber string
	AccountHolder string
	PaidAt        *time.Time
}

func (TransactionDTO) TableName() string {
	return "settlement_transactions"
}

// ScheduleDTO stores weekdays as a Postgres integer array (0 = Sunday).
type ScheduleDTO struct {
	ShopID   int64         `gorm:"primaryKey;autoIncrement:false"`
	Weekdays pq.Int64Array `gorm:"type:bigint[];not null"`
}

func (ScheduleDTO) TableName() string {
	return "settlement_schedules"
}

func batchFromDomain(b *settlement.Batch) BatchDTO {
	return BatchDTO{
		ID:          b.ID().Int64(),
		Code:        b.Code(),
		ShopID:      b.ShopID().Int64(),
		Balance:     b.Balance(),
		Status:      int(b.Status()),
		WarningSent: b.WarningSent(),
		LockedSent:  b.LockedSent(),
		CreatedAt:   b.CreatedAt(),
		UpdatedAt:   b.UpdatedAt(),
	}
}

func batchToDomain(dto BatchDTO) (*settlement.Batch, error) {
	return settlement.RestoreBatch(settlement.BatchSnapshot{
		ID:          kernel.ID(dto.ID),
		Code:        dto.Code,
		ShopID:      kernel.ID(dto.ShopID),
		Balance:     dto.Balance,
		Status:      settlement.BatchStatus(dto.Status),
		WarningSent: dto.WarningSent,
		LockedSent:  dto.LockedSent,
		CreatedAt:   dto.CreatedAt,
		UpdatedAt:   dto.UpdatedAt,
	})
}

func transactionFromDomain(t *settlement.Transaction) TransactionDTO {
	dest := t.Destination()
	return TransactionDTO{
		ID:            t.ID().Int64(),
		BatchID:       t.BatchID().Int64(),
		ShopID:        t.ShopID().Int64(),
		Amount:        t.Amount(),
		Type:          int(t.Type()),
		Status:        int(t.Status()),
		BankName:      dest.BankName,
		AccountNumber: dest.AccountNumber,
		AccountHolder: dest.AccountHolder,
		PaidAt:        t.PaidAt(),
	}
}

func transactionToDomain(dto TransactionDTO) (*settlement.Transaction, error) {
	return settlement.RestoreTransaction(
		kernel.ID(dto.ID),
		kernel.ID(dto.BatchID),
		kernel.ID(dto.ShopID),
		dto.Amount,
		settlement.TransactionType(dto.Type),
		settlement.TransactionStatus(dto.Status),
		settlement.PayoutDestination{
			BankName:      dto.BankName,
			AccountNumber: dto.AccountNumber,
			AccountHolder: dto.AccountHolder,
		},
		dto.PaidAt,
	)
}

func scheduleFromDomain(s *settlement.Schedule) ScheduleDTO {
	days := s.Weekdays()
	weekdays := make(pq.Int64Array, 0, len(days))
	for _, d := range days {
		weekdays = append(weekdays, int64(d))
	}
	return ScheduleDTO{ShopID: s.ShopID().Int64(), Weekdays: weekdays}
}
