package jobs

import (
	"context"

	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/pkg/errs"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// DefaultReportSchedule reports once a minute.
const DefaultReportSchedule = "0 * * * * *"

type (
	PendingOrdersReader interface {
		Handle(ctx context.Context, query queries.GetPendingOrdersQuery) ([]queries.GetOrderStatusQueryResponse, error)
	}

	DriversReader interface {
		Handle(ctx context.Context, query queries.GetDriversQuery) ([]queries.GetDriversQueryResponse, error)
	}
)

// FleetReport is one snapshot of the dispatch backlog.
type FleetReport struct {
	PendingOrders    int
	AvailableDrivers int
	BusyDrivers      int
}

// FleetReportJob logs the backlog and driver availability. A backlog with
// no available driver is logged as a warning.
type FleetReportJob struct {
	pending  PendingOrdersReader
	drivers  DriversReader
	schedule string
	cron     *cron.Cron
	logger   *zap.Logger
}

// NewFleetReportJob creates the job. An empty schedule falls back to
// DefaultReportSchedule.
func NewFleetReportJob(pending PendingOrdersReader, drivers DriversReader, schedule string, logger *zap.Logger) (*FleetReportJob, error) {
	if pending == nil {
		return nil, errs.NewValueIsRequiredError("pending orders reader")
	}
	if drivers == nil {
		return nil, errs.NewValueIsRequiredError("drivers reader")
	}
	if schedule == "" {
		schedule = DefaultReportSchedule
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FleetReportJob{
		pending:  pending,
		drivers:  drivers,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With(zap.String("component", "fleet_report_job")),
	}, nil
}

// Run builds and logs one report.
func (j *FleetReportJob) Run(ctx context.Context) (FleetReport, error) {
	orders, err := j.pending.Handle(ctx, queries.NewGetPendingOrdersQuery())
	if err != nil {
		j.logger.Error("fleet report failed", zap.Error(err))
		return FleetReport{}, err
	}
	drivers, err := j.drivers.Handle(ctx, queries.NewGetDriversQuery())
	if err != nil {
		j.logger.Error("fleet report failed", zap.Error(err))
		return FleetReport{}, err
	}

	report := FleetReport{PendingOrders: len(orders)}
	for _, d := range drivers {
		if d.Available {
			report.AvailableDrivers++
		} else {
			report.BusyDrivers++
		}
	}

	fields := []zap.Field{
		zap.Int("pending_orders", report.PendingOrders),
		zap.Int("available_drivers", report.AvailableDrivers),
		zap.Int("busy_drivers", report.BusyDrivers),
	}
	if report.PendingOrders > 0 && report.AvailableDrivers == 0 {
		j.logger.Warn("orders waiting with no available driver", fields...)
	} else {
		j.logger.Info("fleet report", fields...)
	}
	return report, nil
}

// Start schedules the report. It fails on an invalid cron spec.
func (j *FleetReportJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, func() { _, _ = j.Run(context.Background()) }); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("fleet report job started", zap.String("schedule", j.schedule))
	return nil
}

// Stop waits for a running report to finish.
func (j *FleetReportJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info("fleet report job stopped")
}
