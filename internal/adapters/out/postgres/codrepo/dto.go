// Package codrepo persists COD collection records.
package codrepo

import (
	"time"

	"parcel/internal/core/domain/model/cod"
	"parcel/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
)

type RecordDTO struct {
	ID          int64           `gorm:"primaryKey"`
	OrderID     int64           `gorm:"uniqueIndex;not null"`
	ProfileID   int64           `gorm:"index;not null"`
	Amount      decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Status      int             `gorm:"not null"`
	CollectedAt time.Time       `gorm:"not null"`
}

func (RecordDTO) TableName() string {
	return "cod_collections"
}

func fromDomain(r *cod.Record) RecordDTO {
	return RecordDTO{
		ID:          r.ID().Int64(),
		OrderID:     r.OrderID().Int64(),
		ProfileID:   r.ProfileID().Int64(),
		Amount:      r.Amount(),
		Status:      int(r.Status()),
		CollectedAt: r.CollectedAt(),
	}
}

func toDomain(dto RecordDTO) (*cod.Record, error) {
	return cod.RestoreRecord(
		kernel.ID(dto.ID),
		kernel.ID(dto.OrderID),
		kernel.ID(dto.ProfileID),
		dto.Amount,
		cod.Status(dto.Status),
		dto.CollectedAt,
	)
}
