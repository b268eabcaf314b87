package cmd

import (
	"errors"
	"fmt"
	"log/slog"

	httpin "parcel/internal/adapters/in/http"
	"parcel/internal/adapters/out/notifier"
	"parcel/internal/adapters/out/postgres"
	"parcel/internal/adapters/out/redislock"
	"parcel/internal/core/application/usecases/commands"
	"parcel/internal/core/application/usecases/queries"
	"parcel/internal/core/domain/services"
	"parcel/internal/core/ports"
	"parcel/internal/jobs"
	"parcel/internal/metrics"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"gorm.io/gorm"
)

const redisKeyPrefix = "parcel"

type CompositionRoot struct {
	cfg        Config
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	notifier   ports.Notifier
	locker     jobs.Locker
	metrics    *metrics.Metrics
	registry   *prometheus.Registry
	logger     *slog.Logger
	closers    []func() error
}

// NewCompositionRoot picks the Kafka notifier when KAFKA_HOST is set and the Redis job locker
// when REDIS_ADDR is set; otherwise the log notifier and in-process locks are used.
func NewCompositionRoot(cfg Config, gormDB *gorm.DB, logger *slog.Logger) (*CompositionRoot, error) {
	c := &CompositionRoot{
		cfg:        cfg,
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		metrics:    metrics.New(),
		registry:   prometheus.NewRegistry(),
		logger:     logger,
		locker:     jobs.LocalLocker{},
	}

	c.registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	if err := c.metrics.Register(c.registry); err != nil {
		return nil, fmt.Errorf("register metrics: %w", err)
	}

	if brokers := notifier.ParseBrokers(cfg.KafkaHost); len(brokers) > 0 {
		producer, err := notifier.NewSyncProducer(brokers)
		if err != nil {
			return nil, fmt.Errorf("connect kafka %v: %w", brokers, err)
		}
		kafka := notifier.NewKafkaNotifier(producer, cfg.KafkaNotificationTopic, logger)
		c.notifier = kafka
		c.closers = append(c.closers, kafka.Close)
	} else {
		c.notifier = notifier.NewLogNotifier(logger)
	}

	if cfg.RedisAddr != "" {
		client := redislock.NewClient(cfg.RedisAddr)
		c.locker = jobs.NewRedisLocker(redislock.NewLocker(client, redisKeyPrefix))
		c.closers = append(c.closers, client.Close)
	}

	return c, nil
}

// Close releases the broker and Redis connections.
func (c *CompositionRoot) Close() error {
	errList := make([]error, 0, len(c.closers))
	for _, closeFn := range c.closers {
		errList = append(errList, closeFn())
	}
	return errors.Join(errList...)
}

func (c *CompositionRoot) Registry() *prometheus.Registry {
	return c.registry
}

func (c *CompositionRoot) CreateAssignShipperForDeliveryCommandHandler() commands.AssignShipperForDeliveryCommandHandler {
	return commands.NewAssignShipperForDeliveryCommandHandler(
		c.assignmentUoWFactory(), c.notifier, c.cfg.OperationsAccountID, c.component("assign_delivery"))
}

func (c *CompositionRoot) CreateAssignShipperForPickupCommandHandler() commands.AssignShipperForPickupCommandHandler {
	return commands.NewAssignShipperForPickupCommandHandler(
		c.assignmentUoWFactory(), c.notifier, c.component("assign_pickup"))
}

func (c *CompositionRoot) CreateCreateShopSettlementBatchCommandHandler() commands.CreateShopSettlementBatchCommandHandler {
	var f commands.SettlementUoWFactory = FuncSettlementUoWFactory(func() commands.SettlementUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateShopSettlementBatchCommandHandler(f, c.notifier, c.component("shop_settlement"))
}

func (c *CompositionRoot) CreateCreateSettlementBatchesCommandHandler() commands.CreateSettlementBatchesCommandHandler {
	var f commands.ScheduleUoWFactory = FuncScheduleUoWFactory(func() commands.ScheduleUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateSettlementBatchesCommandHandler(
		f, c.CreateCreateShopSettlementBatchCommandHandler(), c.component("settlement_run"))
}

func (c *CompositionRoot) CreateEscalateOverdueBatchesCommandHandler() commands.EscalateOverdueBatchesCommandHandler {
	var f commands.EscalationUoWFactory = FuncEscalationUoWFactory(func() commands.EscalationUoW {
		return c.uowFactory.Create()
	})
	policy := services.NewEscalationPolicy(c.cfg.EscalationWarnAfter, c.cfg.EscalationLockAfter)
	return commands.NewEscalateOverdueBatchesCommandHandler(f, c.notifier, policy, c.component("escalation"))
}

func (c *CompositionRoot) CreateGetSettlementBatchQueryHandler() queries.GetSettlementBatchQueryHandler {
	return queries.NewGetSettlementBatchQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrdersAwaitingDeliveryShipperQueryHandler() queries.GetOrdersAwaitingDeliveryShipperQueryHandler {
	return queries.NewGetOrdersAwaitingDeliveryShipperQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateServer() *httpin.Server {
	return httpin.NewServer(
		c.CreateAssignShipperForDeliveryCommandHandler(),
		c.CreateAssignShipperForPickupCommandHandler(),
		c.CreateCreateSettlementBatchesCommandHandler(),
		c.CreateCreateShopSettlementBatchCommandHandler(),
		c.CreateEscalateOverdueBatchesCommandHandler(),
		c.CreateGetSettlementBatchQueryHandler(),
		c.metrics,
		c.logger,
	)
}

func (c *CompositionRoot) CreateRouter() (*echo.Echo, error) {
	return httpin.NewRouter(c.CreateServer(), c.metrics, c.registry, c.logger)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	schedule := c.cfg.Schedule
	return jobs.NewJobManager(
		jobs.NewSettlementBatchJob(
			c.CreateCreateSettlementBatchesCommandHandler(), schedule, c.locker, c.metrics, c.logger),
		jobs.NewBatchEscalationJob(
			c.CreateEscalateOverdueBatchesCommandHandler(), schedule, c.locker, c.metrics, c.logger),
		jobs.NewShipperAssignmentSweepJob(
			c.CreateGetOrdersAwaitingDeliveryShipperQueryHandler(),
			c.CreateAssignShipperForDeliveryCommandHandler(),
			schedule, c.locker, c.metrics, c.logger),
	)
}

func (c *CompositionRoot) assignmentUoWFactory() commands.AssignmentUoWFactory {
	return FuncAssignmentUoWFactory(func() commands.AssignmentUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) component(name string) *slog.Logger {
	return c.logger.With("component", name)
}

type FuncAssignmentUoWFactory func() commands.AssignmentUoW

func (f FuncAssignmentUoWFactory) Create() commands.AssignmentUoW {
	return f()
}

type FuncSettlementUoWFactory func() commands.SettlementUoW

func (f FuncSettlementUoWFactory) Create() commands.SettlementUoW {
	return f()
}

type FuncScheduleUoWFactory func() commands.ScheduleUoW

func (f FuncScheduleUoWFactory) Create() commands.ScheduleUoW {
	return f()
}

type FuncEscalationUoWFactory func() commands.EscalationUoW

func (f FuncEscalationUoWFactory) Create() commands.EscalationUoW {
	return f()
}
