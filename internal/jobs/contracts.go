package jobs

import (
	"context"
	"time"

	"parcel/internal/adapters/out/redislock"
	"parcel/internal/core/application/usecases/commands"
	"parcel/internal/core/application/usecases/queries"
)

type (
	SettlementBatchesHandler interface {
		Handle(ctx context.Context, command commands.CreateSettlementBatchesCommand) (commands.SettlementRunSummary, error)
	}

	EscalationHandler interface {
		Handle(ctx context.Context, command commands.EscalateOverdueBatchesCommand) (commands.EscalationSummary, error)
	}

	DeliveryAssigner interface {
		Handle(ctx context.Context, command commands.AssignShipperForDeliveryCommand) (commands.AssignShipperResult, error)
	}

	AwaitingOrdersReader interface {
		Handle(
			ctx context.Context, query queries.GetOrdersAwaitingDeliveryShipperQuery,
		) ([]queries.GetOrdersAwaitingDeliveryShipperQueryResponse, error)
	}
)

// Lock is a held run lock.
type Lock interface {
	Release(ctx context.Context) error
}

// Locker grants named run locks. TryAcquire returns a nil Lock when someone else holds it.
type Locker interface {
	TryAcquire(ctx context.Context, name string, ttl time.Duration) (Lock, error)
}

// LocalLocker grants every lock; used when Redis is not configured.
type LocalLocker struct{}

func (LocalLocker) TryAcquire(context.Context, string, time.Duration) (Lock, error) {
	return localLock{}, nil
}

type localLock struct{}

func (localLock) Release(context.Context) error {
	return nil
}

// RedisLocker shares run locks across replicas through Redis.
type RedisLocker struct {
	locker *redislock.Locker
}

func NewRedisLocker(locker *redislock.Locker) RedisLocker {
	return RedisLocker{locker: locker}
}

func (r RedisLocker) TryAcquire(ctx context.Context, name string, ttl time.Duration) (Lock, error) {
	l, err := r.locker.TryAcquire(ctx, name, ttl)
	if err != nil || l == nil {
		return nil, err
	}
	return l, nil
}
