// Package commands contains the business operations that modify system state: shipper
// assignment, settlement batch creation and overdue-batch escalation. Every handler validates
// its command, opens a unit of work, and publishes notifications only after commit.
package commands

import (
	"context"

	"parcel/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers. Each handler
// depends on the narrowest set of repositories it needs.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	ShipperRepoFactory interface {
		ShipperAssignmentRepository() ports.ShipperAssignmentRepository
		ShipperProfileRepository() ports.ShipperProfileRepository
		ShipperTaskRepository() ports.ShipperTaskRepository
	}

	SettlementRepoFactory interface {
		SettlementBatchRepository() ports.SettlementBatchRepository
		SettlementTransactionRepository() ports.SettlementTransactionRepository
	}

	ShopRepoFactory interface {
		ShopRepository() ports.ShopRepository
	}

	// AssignmentUoW covers orders and the shipper roster for the dispatch commands.
	AssignmentUoW interface {
		TxManager
		OrderRepoFactory
		ShipperRepoFactory
	}

	AssignmentUoWFactory interface {
		Create() AssignmentUoW
	}

	// SettlementUoW covers everything one shop's batch run reads and writes.
	SettlementUoW interface {
		TxManager
		OrderRepoFactory
		SettlementRepoFactory
		ShopRepoFactory
		CODCollectionRepository() ports.CODCollectionRepository
		BankAccountRepository() ports.BankAccountRepository
	}

	SettlementUoWFactory interface {
		Create() SettlementUoW
	}

	// ScheduleUoW reads which shops are due for a batch run.
	ScheduleUoW interface {
		TxManager
		SettlementScheduleRepository() ports.SettlementScheduleRepository
	}

	ScheduleUoWFactory interface {
		Create() ScheduleUoW
	}

	// EscalationUoW covers batches and the shop lock flag.
	EscalationUoW interface {
		TxManager
		SettlementRepoFactory
		ShopRepoFactory
	}

	EscalationUoWFactory interface {
		Create() EscalationUoW
	}
)
