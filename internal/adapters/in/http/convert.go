package http

import (
	"parcel/internal/core/application/usecases/commands"
	"parcel/internal/core/application/usecases/queries"
	"parcel/internal/core/domain/model/kernel"
	"parcel/internal/generated/servers"
)

func toAssignmentResult(res commands.AssignShipperResult) servers.AssignmentResult {
	out := servers.AssignmentResult{Assigned: res.Assigned}
	if !res.Assigned {
		return out
	}
	out.ShipperAccountId = optionalID(res.ShipperAccountID)
	out.ShipperProfileId = optionalID(res.ShipperProfileID)
	out.TaskId = optionalID(res.TaskID)
	return out
}

func toSettlementRunResult(summary commands.SettlementRunSummary) servers.SettlementRunResult {
	failures := make([]servers.ShopFailure, len(summary.Failures))
	for i, f := range summary.Failures {
		failures[i] = servers.ShopFailure{ShopId: f.ShopID.Int64(), Message: f.Err.Error()}
	}

	return servers.SettlementRunResult{
		ShopsProcessed: summary.ShopsProcessed,
		BatchesCreated: summary.BatchesCreated,
		Completed:      summary.Completed,
		Failed:         summary.Failed,
		Skipped:        summary.Skipped,
		Failures:       failures,
	}
}

func toShopSettlementResult(res commands.ShopSettlementResult) servers.ShopSettlementResult {
	out := servers.ShopSettlementResult{
		Skipped:  res.Skipped,
		Included: res.Included,
		Excluded: res.Excluded,
	}
	if res.Skipped {
		return out
	}

	balance := res.Balance.String()
	code := res.Code
	status := servers.ShopSettlementResultStatus(res.Status.String())
	out.BatchId = optionalID(res.BatchID)
	out.Code = &code
	out.Balance = &balance
	out.Status = &status
	out.PayoutId = kernel.OptionalInt64(res.PayoutID)
	return out
}

func toSettlementBatch(b queries.GetSettlementBatchQueryResponse) servers.SettlementBatch {
	orders := make([]servers.SettledOrder, len(b.Orders))
	for i, o := range b.Orders {
		orders[i] = servers.SettledOrder{
			Id:           o.ID.Int64(),
			TrackingCode: o.TrackingCode,
			Status:       o.Status,
			Amount:       o.Amount.String(),
		}
	}

	out := servers.SettlementBatch{
		Id:          b.ID.Int64(),
		Code:        b.Code,
		ShopId:      b.ShopID.Int64(),
		Balance:     b.Balance.String(),
		Status:      b.Status,
		WarningSent: b.WarningSent,
		LockedSent:  b.LockedSent,
		CreatedAt:   b.CreatedAt,
		Orders:      orders,
	}
	if b.Payout != nil {
		out.Payout = &servers.Payout{
			Id:            b.Payout.ID.Int64(),
			Amount:        b.Payout.Amount.String(),
			BankName:      b.Payout.BankName,
			AccountNumber: b.Payout.AccountNumber,
			PaidAt:        b.Payout.PaidAt,
		}
	}
	return out
}

func optionalID(id kernel.ID) *int64 {
	if id.IsZero() {
		return nil
	}
	v := id.Int64()
	return &v
}
