// Package orderrepo persists the order aggregate and the offices it references.
package orderrepo

import (
	"time"

	"parcel/internal/core/domain/model/kernel"
	"parcel/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
)

// OrderDTO maps the orders table. Only a subset of the order service's columns is modelled:
// the ones dispatch and settlement read or write.
type OrderDTO struct {
	ID                  int64  `gorm:"primaryKey"`
	TrackingCode        string `gorm:"uniqueIndex;not null"`
	ShopID              int64  `gorm:"index;not null"`
	OwnerAccountID      *int64
	Status              int `gorm:"index"`
	PickupType          int
	COD                 decimal.Decimal `gorm:"column:cod;type:decimal(18,2);not null;default:0"`
	TotalFee            decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	Payer               int
	PaymentStatus       int
	PaidAt              *time.Time
	CODStatus           int             `gorm:"column:cod_status"`
	SettlementBatchID   *int64          `gorm:"index"`
	SettlementAmount    decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	ShipperProfileID    *int64
	SenderZone          ZoneDTO `gorm:"embedded;embeddedPrefix:sender_"`
	RecipientZone       ZoneDTO `gorm:"embedded;embeddedPrefix:recipient_"`
	OriginOfficeID      *int64
	OriginOffice        *OfficeDTO `gorm:"foreignKey:OriginOfficeID"`
	DestinationOfficeID *int64
	DestinationOffice   *OfficeDTO `gorm:"foreignKey:DestinationOfficeID"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

// ZoneDTO is the embedded city/ward pair. Empty strings mean no zone.
type ZoneDTO struct {
	City string
	Ward string
}

// OfficeDTO maps the offices table.
type OfficeDTO struct {
	ID   int64   `gorm:"primaryKey"`
	Zone ZoneDTO `gorm:"embedded"`
}

func (OfficeDTO) TableName() string {
	return "offices"
}

// updatedColumns are the columns Update writes; everything else belongs to the order service.
var updatedColumns = []string{
	"status",
	"shipper_profile_id",
	"settlement_batch_id",
	"settlement_amount",
	"cod_status",
	"payment_status",
	"paid_at",
}

func fromDomain(o *order.Order) OrderDTO {
	dto := OrderDTO{
		ID:                o.ID().Int64(),
		TrackingCode:      o.TrackingCode(),
		ShopID:            o.ShopID().Int64(),
		OwnerAccountID:    kernel.OptionalInt64(o.OwnerAccountID()),
		Status:            int(o.Status()),
		PickupType:        int(o.PickupType()),
		COD:               o.COD(),
		TotalFee:          o.TotalFee(),
		Payer:             int(o.Payer()),
		PaymentStatus:     int(o.PaymentStatus()),
		PaidAt:            o.PaidAt(),
		CODStatus:         int(o.CODStatus()),
		SettlementBatchID: kernel.OptionalInt64(o.SettlementBatchID()),
		SettlementAmount:  o.SettlementAmount(),
		ShipperProfileID:  kernel.OptionalInt64(o.ShipperProfileID()),
		SenderZone:        zoneFromDomain(o.SenderZone()),
		RecipientZone:     zoneFromDomain(o.RecipientZone()),
	}

	if office := o.OriginOffice(); office != nil {
		id := office.ID.Int64()
		dto.OriginOfficeID = &id
	}
	if office := o.DestinationOffice(); office != nil {
		id := office.ID.Int64()
		dto.DestinationOfficeID = &id
	}

	return dto
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	senderZone, err := zoneToDomain(dto.SenderZone)
	if err != nil {
		return nil, err
	}
	recipientZone, err := zoneToDomain(dto.RecipientZone)
	if err != nil {
		return nil, err
	}
	originOffice, err := officeToDomain(dto.OriginOffice)
	if err != nil {
		return nil, err
	}
	destinationOffice, err := officeToDomain(dto.DestinationOffice)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(order.Snapshot{
		ID:                kernel.ID(dto.ID),
		TrackingCode:      dto.TrackingCode,
		ShopID:            kernel.ID(dto.ShopID),
		OwnerAccountID:    kernel.OptionalID(dto.OwnerAccountID),
		Status:            order.Status(dto.Status),
		PickupType:        order.PickupType(dto.PickupType),
		COD:               dto.COD,
		TotalFee:          dto.TotalFee,
		Payer:             order.Payer(dto.Payer),
		PaymentStatus:     order.PaymentStatus(dto.PaymentStatus),
		PaidAt:            dto.PaidAt,
		CODStatus:         order.CODStatus(dto.CODStatus),
		SettlementBatchID: kernel.OptionalID(dto.SettlementBatchID),
		SettlementAmount:  dto.SettlementAmount,
		ShipperProfileID:  kernel.OptionalID(dto.ShipperProfileID),
		SenderZone:        senderZone,
		RecipientZone:     recipientZone,
		OriginOffice:      originOffice,
		DestinationOffice: destinationOffice,
	})
}

func zoneFromDomain(z kernel.Zone) ZoneDTO {
	return ZoneDTO{City: z.City(), Ward: z.Ward()}
}

func zoneToDomain(dto ZoneDTO) (kernel.Zone, error) {
	if dto.City == "" && dto.Ward == "" {
		return kernel.Zone{}, nil
	}
	return kernel.NewZone(dto.City, dto.Ward)
}

func officeToDomain(dto *OfficeDTO) (*order.Office, error) {
	if dto == nil {
		return nil, nil
	}
	zone, err := zoneToDomain(dto.Zone)
	if err != nil {
		return nil, err
	}
	return &order.Office{ID: kernel.ID(dto.ID), Zone: zone}, nil
}
