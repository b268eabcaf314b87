package commands

import (
	"errors"
	"time"

	"parcel/internal/core/domain/model/kernel"
	"parcel/internal/pkg/guard"
)

var (
	ErrCreateShopSettlementBatchCommandIsNotConstructed = errors.New(
		"CreateShopSettlementBatchCommand must be created via NewCreateShopSettlementBatchCommand constructor",
	)
	ErrCreateSettlementBatchesCommandIsNotConstructed = errors.New(
		"CreateSettlementBatchesCommand must be created via NewCreateSettlementBatchesCommand constructor",
	)
	ErrEscalateOverdueBatchesCommandIsNotConstructed = errors.New(
		"EscalateOverdueBatchesCommand must be created via NewEscalateOverdueBatchesCommand constructor",
	)
)

// CreateShopSettlementBatchCommand closes out one shop's finished orders into a batch.
type CreateShopSettlementBatchCommand struct {
	shopID  kernel.ID
	actorID kernel.ID
	at      time.Time
	guard   guard.ConstructorGuard
}

func NewCreateShopSettlementBatchCommand(shopID, actorID kernel.ID, at time.Time) (CreateShopSettlementBatchCommand, error) {
	if err := errors.Join(shopID.Validate(), validateActor(actorID), validateAt(at)); err != nil {
		return CreateShopSettlementBatchCommand{}, err
	}
	return CreateShopSettlementBatchCommand{
		shopID:  shopID,
		actorID: actorID,
		at:      at,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c CreateShopSettlementBatchCommand) ShopID() kernel.ID {
	return c.shopID
}

func (c CreateShopSettlementBatchCommand) ActorID() kernel.ID {
	return c.actorID
}

func (c CreateShopSettlementBatchCommand) At() time.Time {
	return c.at
}

func (c CreateShopSettlementBatchCommand) Validate() error {
	return c.guard.Validate(ErrCreateShopSettlementBatchCommandIsNotConstructed)
}

// CreateSettlementBatchesCommand runs the batch cycle for every shop scheduled on the weekday of At.
type CreateSettlementBatchesCommand struct {
	actorID kernel.ID
	at      time.Time
	guard   guard.ConstructorGuard
}

func NewCreateSettlementBatchesCommand(actorID kernel.ID, at time.Time) (CreateSettlementBatchesCommand, error) {
	if err := errors.Join(validateActor(actorID), validateAt(at)); err != nil {
		return CreateSettlementBatchesCommand{}, err
	}
	return CreateSettlementBatchesCommand{actorID: actorID, at: at, guard: guard.NewConstructorGuard()}, nil
}

func (c CreateSettlementBatchesCommand) ActorID() kernel.ID {
	return c.actorID
}

func (c CreateSettlementBatchesCommand) At() time.Time {
	return c.at
}

func (c CreateSettlementBatchesCommand) Validate() error {
	return c.guard.Validate(ErrCreateSettlementBatchesCommandIsNotConstructed)
}

// EscalateOverdueBatchesCommand scans unpaid batches for overdue warnings and shop locks.
type EscalateOverdueBatchesCommand struct {
	actorID kernel.ID
	at      time.Time
	guard   guard.ConstructorGuard
}

func NewEscalateOverdueBatchesCommand(actorID kernel.ID, at time.Time) (EscalateOverdueBatchesCommand, error) {
	if err := errors.Join(validateActor(actorID), validateAt(at)); err != nil {
		return EscalateOverdueBatchesCommand{}, err
	}
	return EscalateOverdueBatchesCommand{actorID: actorID, at: at, guard: guard.NewConstructorGuard()}, nil
}

func (c EscalateOverdueBatchesCommand) ActorID() kernel.ID {
	return c.actorID
}

func (c EscalateOverdueBatchesCommand) At() time.Time {
	return c.at
}

func (c EscalateOverdueBatchesCommand) Validate() error {
	return c.guard.Validate(ErrEscalateOverdueBatchesCommandIsNotConstructed)
}
