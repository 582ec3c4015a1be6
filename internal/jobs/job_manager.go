package jobs

import (
	"fmt"

	"go.uber.org/zap"
)

// Schedules holds the cron specs of the managed jobs. Empty values fall
// back to the job defaults.
type Schedules struct {
	Dispatch string
	Report   string
}

// JobManager coordinates all scheduled jobs in the application.
type JobManager struct {
	pendingDispatchJob *PendingDispatchJob
	fleetReportJob     *FleetReportJob
}

// NewJobManager builds both jobs. The schedules are parsed on StartAll, so a
// bad cron spec surfaces there.
//
// Example:
//
//	manager, err := jobs.NewJobManager(dispatchHandler, pendingHandler, driversHandler,
//	    jobs.Schedules{Dispatch: "*/10 * * * * *"}, logger)
//	if err != nil {
//	    return err
//	}
//	if err := manager.StartAll(); err != nil {
//	    return err
//	}
//	defer manager.StopAll()
func NewJobManager(
	dispatcher PendingDispatcher,
	pending PendingOrdersReader,
	drivers DriversReader,
	schedules Schedules,
	logger *zap.Logger,
) (*JobManager, error) {
	dispatchJob, err := NewPendingDispatchJob(dispatcher, schedules.Dispatch, logger)
	if err != nil {
		return nil, err
	}
	reportJob, err := NewFleetReportJob(pending, drivers, schedules.Report, logger)
	if err != nil {
		return nil, err
	}
	return &JobManager{
		pendingDispatchJob: dispatchJob,
		fleetReportJob:     reportJob,
	}, nil
}

// StartAll starts all scheduled jobs.
func (jm *JobManager) StartAll() error {
	if err := jm.pendingDispatchJob.Start(); err != nil {
		return fmt.Errorf("failed to start pending dispatch job: %w", err)
	}

	if err := jm.fleetReportJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.pendingDispatchJob.Stop()
		return fmt.Errorf("failed to start fleet report job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.fleetReportJob.Stop()
	jm.pendingDispatchJob.Stop()
}
