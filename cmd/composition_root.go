package cmd

import (
	"context"
	"errors"
	"fmt"

	httpadapter "dispatch/internal/adapters/in/http"
	"dispatch/internal/adapters/out/memory"
	"dispatch/internal/adapters/out/notify"
	"dispatch/internal/adapters/out/payment"
	"dispatch/internal/adapters/out/postgres/historyrepo"
	"dispatch/internal/core/application/dispatch"
	"dispatch/internal/core/application/intake"
	"dispatch/internal/core/application/tracking"
	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/ports"
	"dispatch/internal/jobs"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CompositionRoot owns the long-lived components and builds handlers on
// top of them.
type CompositionRoot struct {
	config      Config
	logger      *zap.Logger
	tracker     *tracking.OrderTracker
	history     ports.StatusHistoryRepository
	coordinator *dispatch.Coordinator
}

// NewCompositionRoot wires the dispatch core. gormDB is only used when the
// history store is "postgres".
func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *zap.Logger) (*CompositionRoot, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	history, err := newHistoryRepository(config, gormDB)
	if err != nil {
		return nil, err
	}

	// Order IDs are not persisted, so continue after the last one with
	// history to keep a restart from mixing old and new events.
	lastID, err := history.LastOrderID(context.Background())
	if err != nil {
		return nil, fmt.Errorf("failed to read last order id: %w", err)
	}

	queue, err := intake.NewOrderQueue(config.QueueCapacity, order.NewSequenceFrom(lastID))
	if err != nil {
		return nil, err
	}

	tracker := tracking.NewOrderTracker(logger, tracking.WithETAEstimator(tracking.DistanceAwareETA{
		Base:    config.DeliveryLeadTime,
		PerUnit: config.ETAPerUnit,
	}))

	notifier := notify.NewLogNotifier(logger)
	if err = errors.Join(
		tracker.Attach(tracking.NewHistoryRecorder(history, nil)),
		tracker.Attach(tracking.NewStatusNotifier(notifier)),
	); err != nil {
		return nil, err
	}

	payments, err := payment.NewSimulator(payment.DefaultLimits(), logger)
	if err != nil {
		return nil, err
	}

	coordinator, err := dispatch.NewCoordinator(queue, tracker, services.NewDriverMatcher(), payments, notifier, logger)
	if err != nil {
		return nil, err
	}

	return &CompositionRoot{
		config:      config,
		logger:      logger,
		tracker:     tracker,
		history:     history,
		coordinator: coordinator,
	}, nil
}

func newHistoryRepository(config Config, gormDB *gorm.DB) (ports.StatusHistoryRepository, error) {
	switch config.HistoryStore {
	case HistoryStorePostgres:
		return historyrepo.NewGormStatusHistoryRepository(gormDB)
	case HistoryStoreMemory, "":
		return memory.NewStatusHistoryRepository(), nil
	default:
		return nil, fmt.Errorf("unknown history store %q", config.HistoryStore)
	}
}

func (c *CompositionRoot) Coordinator() *dispatch.Coordinator {
	return c.coordinator
}

func (c *CompositionRoot) CreateSubmitOrderCommandHandler() commands.SubmitOrderCommandHandler {
	return commands.NewSubmitOrderCommandHandler(c.coordinator)
}

func (c *CompositionRoot) CreateRegisterDriverCommandHandler() commands.RegisterDriverCommandHandler {
	return commands.NewRegisterDriverCommandHandler(c.coordinator)
}

func (c *CompositionRoot) CreateAssignOrderCommandHandler() commands.AssignOrderCommandHandler {
	return commands.NewAssignOrderCommandHandler(c.coordinator)
}

func (c *CompositionRoot) CreateStartDeliveryCommandHandler() commands.StartDeliveryCommandHandler {
	return commands.NewStartDeliveryCommandHandler(c.coordinator)
}

func (c *CompositionRoot) CreateCompleteDeliveryCommandHandler() commands.CompleteDeliveryCommandHandler {
	return commands.NewCompleteDeliveryCommandHandler(c.coordinator)
}

func (c *CompositionRoot) CreateDispatchPendingCommandHandler() commands.DispatchPendingCommandHandler {
	return commands.NewDispatchPendingCommandHandler(c.coordinator)
}

func (c *CompositionRoot) CreateUpdateDriverLocationCommandHandler() commands.UpdateDriverLocationCommandHandler {
	return commands.NewUpdateDriverLocationCommandHandler(c.coordinator)
}

func (c *CompositionRoot) CreateRateDriverCommandHandler() commands.RateDriverCommandHandler {
	return commands.NewRateDriverCommandHandler(c.coordinator)
}

func (c *CompositionRoot) CreateGetOrderStatusQueryHandler() queries.GetOrderStatusQueryHandler {
	return queries.NewGetOrderStatusQueryHandler(c.coordinator)
}

func (c *CompositionRoot) CreateGetPendingOrdersQueryHandler() queries.GetPendingOrdersQueryHandler {
	return queries.NewGetPendingOrdersQueryHandler(c.coordinator)
}

func (c *CompositionRoot) CreateGetOrderHistoryQueryHandler() queries.GetOrderHistoryQueryHandler {
	return queries.NewGetOrderHistoryQueryHandler(c.coordinator, c.history)
}

func (c *CompositionRoot) CreateGetDriversQueryHandler() queries.GetDriversQueryHandler {
	return queries.NewGetDriversQueryHandler(c.coordinator)
}

// CreateHTTPServer builds the echo instance with every route mounted.
func (c *CompositionRoot) CreateHTTPServer() (*echo.Echo, error) {
	server := httpadapter.NewServer(httpadapter.Handlers{
		SubmitOrder:          c.CreateSubmitOrderCommandHandler(),
		RegisterDriver:       c.CreateRegisterDriverCommandHandler(),
		AssignOrder:          c.CreateAssignOrderCommandHandler(),
		StartDelivery:        c.CreateStartDeliveryCommandHandler(),
		CompleteDelivery:     c.CreateCompleteDeliveryCommandHandler(),
		DispatchPending:      c.CreateDispatchPendingCommandHandler(),
		UpdateDriverLocation: c.CreateUpdateDriverLocationCommandHandler(),
		RateDriver:           c.CreateRateDriverCommandHandler(),
		GetOrderStatus:       c.CreateGetOrderStatusQueryHandler(),
		GetPendingOrders:     c.CreateGetPendingOrdersQueryHandler(),
		GetOrderHistory:      c.CreateGetOrderHistoryQueryHandler(),
		GetDrivers:           c.CreateGetDriversQueryHandler(),
	})

	return httpadapter.NewRouter(server, httpadapter.RouterConfig{
		SubmitRatePerSecond: c.config.SubmitRateLimit,
		SubmitBurst:         c.config.SubmitRateBurst,
	}, c.logger)
}

// CreateJobManager builds the scheduled jobs; the caller starts them.
func (c *CompositionRoot) CreateJobManager() (*jobs.JobManager, error) {
	return jobs.NewJobManager(
		c.CreateDispatchPendingCommandHandler(),
		c.CreateGetPendingOrdersQueryHandler(),
		c.CreateGetDriversQueryHandler(),
		jobs.Schedules{Dispatch: c.config.DispatchSchedule, Report: c.config.ReportSchedule},
		c.logger,
	)
}
