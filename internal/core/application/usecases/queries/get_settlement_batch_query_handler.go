package queries

import (
	"context"
	"time"

	"parcel/internal/core/domain/model/kernel"
	"parcel/internal/core/domain/model/order"
	"parcel/internal/core/domain/model/settlement"
	"parcel/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type GetSettlementBatchQueryHandler struct {
	db *gorm.DB
}

func NewGetSettlementBatchQueryHandler(db *gorm.DB) GetSettlementBatchQueryHandler {
	return GetSettlementBatchQueryHandler{db: db}
}

// Handle returns errs.ObjectNotFoundError for an unknown batch.
func (h GetSettlementBatchQueryHandler) Handle(
	ctx context.Context,
	query GetSettlementBatchQuery,
) (GetSettlementBatchQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetSettlementBatchQueryResponse{}, err
	}

	db := h.db.WithContext(ctx)

	var batch struct {
		ID          int64
		Code        string
		ShopID      int64
		Balance     decimal.Decimal
		Status      int
		WarningSent bool
		LockedSent  bool
		CreatedAt   time.Time
	}
	result := db.Raw(`
		SELECT id, code, shop_id, balance, status, warning_sent, locked_sent, created_at
		FROM settlement_batches
		WHERE id = ?
	`, query.BatchID().Int64()).Scan(&batch)
	if result.Error != nil {
		return GetSettlementBatchQueryResponse{}, result.Error
	}
	if result.RowsAffected == 0 {
		return GetSettlementBatchQueryResponse{}, errs.NewObjectNotFoundError("batchId", query.BatchID().Int64())
	}

	resp := GetSettlementBatchQueryResponse{
		ID:          kernel.ID(batch.ID),
		Code:        batch.Code,
		ShopID:      kernel.ID(batch.ShopID),
		Balance:     batch.Balance,
		Status:      settlement.BatchStatus(batch.Status).String(),
		WarningSent: batch.WarningSent,
		LockedSent:  batch.LockedSent,
		CreatedAt:   batch.CreatedAt,
		Orders:      make([]SettledOrder, 0),
	}

	rows, err := db.Raw(`
		SELECT id, tracking_code, status, settlement_amount
		FROM orders
		WHERE settlement_batch_id = ?
		ORDER BY id
	`, batch.ID).Rows()
	if err != nil {
		return GetSettlementBatchQueryResponse{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			line   SettledOrder
			id     int64
			status int
		)
		if err = rows.Scan(&id, &line.TrackingCode, &status, &line.Amount); err != nil {
			return GetSettlementBatchQueryResponse{}, err
		}
		line.ID = kernel.ID(id)
		line.Status = order.Status(status).String()
		resp.Orders = append(resp.Orders, line)
	}
	if err = rows.Err(); err != nil {
		return GetSettlementBatchQueryResponse{}, err
	}

	var payout struct {
		ID            int64
		Amount        decimal.Decimal
		BankName      string
		AccountNumber string
		PaidAt        *time.Time
	}
	result = db.Raw(`
		SELECT id, amount, bank_name, account_number, paid_at
		FROM settlement_transactions
		WHERE batch_id = ? AND type = ?
		ORDER BY id
		LIMIT 1
	`, batch.ID, int(settlement.ShopPayout)).Scan(&payout)
	if result.Error != nil {
		return GetSettlementBatchQueryResponse{}, result.Error
	}
	if result.RowsAffected > 0 {
		resp.Payout = &Payout{
			ID:            kernel.ID(payout.ID),
			Amount:        payout.Amount,
			BankName:      payout.BankName,
			AccountNumber: payout.AccountNumber,
			PaidAt:        payout.PaidAt,
		}
	}

	return resp, nil
}
