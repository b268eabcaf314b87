package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"parcel/internal/core/application/usecases/commands"
	"parcel/internal/core/application/usecases/queries"
	"parcel/internal/core/domain/model/kernel"
	"parcel/internal/core/domain/model/order"
	"parcel/internal/core/domain/model/settlement"
	"parcel/internal/generated/servers"
	"parcel/internal/metrics"

	"github.com/labstack/echo/v4"
)

type (
	DeliveryAssigner interface {
		Handle(ctx context.Context, command commands.AssignShipperForDeliveryCommand) (commands.AssignShipperResult, error)
	}

	PickupAssigner interface {
		Handle(ctx context.Context, command commands.AssignShipperForPickupCommand) (commands.AssignShipperResult, error)
	}

	SettlementRunner interface {
		Handle(ctx context.Context, command commands.CreateSettlementBatchesCommand) (commands.SettlementRunSummary, error)
	}

	EscalationRunner interface {
		Handle(ctx context.Context, command commands.EscalateOverdueBatchesCommand) (commands.EscalationSummary, error)
	}

	SettlementBatchReader interface {
		Handle(ctx context.Context, query queries.GetSettlementBatchQuery) (queries.GetSettlementBatchQueryResponse, error)
	}
)

// Server implements the generated ServerInterface on top of the application handlers.
type Server struct {
	// Command handlers
	assignDelivery DeliveryAssigner
	assignPickup   PickupAssigner
	runSettlement  SettlementRunner
	settleShop     commands.ShopSettlementHandler
	escalate       EscalationRunner

	// Query handlers
	getBatch SettlementBatchReader

	metrics *metrics.Metrics
	logger  *slog.Logger
	now     func() time.Time
}

var _ servers.ServerInterface = (*Server)(nil)

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	assignDelivery DeliveryAssigner,
	assignPickup PickupAssigner,
	runSettlement SettlementRunner,
	settleShop commands.ShopSettlementHandler,
	escalate EscalationRunner,
	getBatch SettlementBatchReader,
	m *metrics.Metrics,
	logger *slog.Logger,
) *Server {
	return &Server{
		assignDelivery: assignDelivery,
		assignPickup:   assignPickup,
		runSettlement:  runSettlement,
		settleShop:     settleShop,
		escalate:       escalate,
		getBatch:       getBatch,
		metrics:        m,
		logger:         logger.With("component", "http_server"),
		now:            time.Now,
	}
}

// AssignDelivery handles POST /api/v1/orders/{orderId}/assign-delivery.
func (s *Server) AssignDelivery(ctx echo.Context, orderId servers.OrderId, params servers.AssignDeliveryParams) error {
	cmd, err := commands.NewAssignShipperForDeliveryCommand(kernel.ID(orderId), actor(params.XActorId), s.now())
	if err != nil {
		return s.fail(ctx, err)
	}

	res, err := s.assignDelivery.Handle(ctx.Request().Context(), cmd)
	s.metrics.ObserveAssignment("delivery", res.Assigned, err)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toAssignmentResult(res))
}

// AssignPickup handles POST /api/v1/orders/{orderId}/assign-pickup.
func (s *Server) AssignPickup(ctx echo.Context, orderId servers.OrderId, params servers.AssignPickupParams) error {
	cmd, err := commands.NewAssignShipperForPickupCommand(kernel.ID(orderId), actor(params.XActorId), s.now())
	if err != nil {
		return s.fail(ctx, err)
	}

	res, err := s.assignPickup.Handle(ctx.Request().Context(), cmd)
	s.metrics.ObserveAssignment("pickup", res.Assigned, err)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toAssignmentResult(res))
}

// RunSettlementBatches handles POST /api/v1/settlements/batches/run. Per-shop failures are
// part of the response body, not an error status.
func (s *Server) RunSettlementBatches(ctx echo.Context, params servers.RunSettlementBatchesParams) error {
	cmd, err := commands.NewCreateSettlementBatchesCommand(actor(params.XActorId), s.now())
	if err != nil {
		return s.fail(ctx, err)
	}

	summary, err := s.runSettlement.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}
	s.metrics.ObserveSettlement(summary.Completed, summary.Failed, summary.Skipped, len(summary.Failures))

	return ctx.JSON(http.StatusOK, toSettlementRunResult(summary))
}

// CreateShopSettlementBatch handles POST /api/v1/settlements/shops/{shopId}/batches.
func (s *Server) CreateShopSettlementBatch(
	ctx echo.Context, shopId int64, params servers.CreateShopSettlementBatchParams,
) error {
	cmd, err := commands.NewCreateShopSettlementBatchCommand(kernel.ID(shopId), actor(params.XActorId), s.now())
	if err != nil {
		return s.fail(ctx, err)
	}

	res, err := s.settleShop.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		if res.BatchID != 0 {
			s.metrics.ObserveSettlement(0, 0, 0, 1)
		}
		return s.fail(ctx, err)
	}

	switch {
	case res.Skipped:
		s.metrics.ObserveSettlement(0, 0, 1, 0)
	case res.Status == settlement.BatchCompleted:
		s.metrics.ObserveSettlement(1, 0, 0, 0)
	case res.Status == settlement.BatchFailed:
		s.metrics.ObserveSettlement(0, 1, 0, 0)
	}

	return ctx.JSON(http.StatusOK, toShopSettlementResult(res))
}

// RunEscalations handles POST /api/v1/settlements/escalations/run.
func (s *Server) RunEscalations(ctx echo.Context, params servers.RunEscalationsParams) error {
	cmd, err := commands.NewEscalateOverdueBatchesCommand(actor(params.XActorId), s.now())
	if err != nil {
		return s.fail(ctx, err)
	}

	summary, err := s.escalate.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}
	s.metrics.ObserveEscalation(summary.Warned, summary.Locked)

	return ctx.JSON(http.StatusOK, servers.EscalationRunResult{
		Scanned:  summary.Scanned,
		Warned:   summary.Warned,
		Locked:   summary.Locked,
		Failures: len(summary.Failures),
	})
}

// GetSettlementBatch handles GET /api/v1/settlements/batches/{batchId}.
func (s *Server) GetSettlementBatch(ctx echo.Context, batchId int64) error {
	query, err := queries.NewGetSettlementBatchQuery(kernel.ID(batchId))
	if err != nil {
		return s.fail(ctx, err)
	}

	batch, err := s.getBatch.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toSettlementBatch(batch))
}

func (s *Server) fail(ctx echo.Context, err error) error {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.logger.ErrorContext(ctx.Request().Context(), "request failed",
			"method", ctx.Request().Method, "path", ctx.Path(), "error", err)
	}

	message := err.Error()
	if status == http.StatusInternalServerError {
		message = http.StatusText(status)
	}
	return ctx.JSON(status, servers.Error{Code: int32(status), Message: message})
}

// statusFor maps application errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case isNotFound(err):
		return http.StatusNotFound
	case errors.Is(err, commands.ErrMissingPayoutDestination), errors.Is(err, order.ErrAlreadyInBatch):
		return http.StatusConflict
	case isInvalid(err):
		return http.StatusBadRequest
	case errors.Is(err, context.Canceled):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func actor(header *servers.ActorId) kernel.ID {
	if header == nil {
		return commands.SystemActor
	}
	return kernel.ID(*header)
}
