package jobs

import (
	"context"
	"time"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/pkg/errs"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// DefaultDispatchSchedule runs a dispatch pass every five seconds.
const DefaultDispatchSchedule = "*/5 * * * * *"

// PendingDispatcher is the part of the dispatch-pending handler the job uses.
type PendingDispatcher interface {
	Handle(ctx context.Context, cmd commands.DispatchPendingCommand) (int, error)
}

// PendingDispatchJob periodically retries matching for pending orders, so
// an order that found no driver on submission is picked up once one
// becomes eligible through means the coordinator does not observe.
type PendingDispatchJob struct {
	handler  PendingDispatcher
	schedule string
	timeout  time.Duration
	cron     *cron.Cron
	logger   *zap.Logger
}

// NewPendingDispatchJob creates the job. An empty schedule falls back to
// DefaultDispatchSchedule; schedules use the six-field cron format with
// seconds.
func NewPendingDispatchJob(handler PendingDispatcher, schedule string, logger *zap.Logger) (*PendingDispatchJob, error) {
	if handler == nil {
		return nil, errs.NewValueIsRequiredError("handler")
	}
	if schedule == "" {
		schedule = DefaultDispatchSchedule
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PendingDispatchJob{
		handler:  handler,
		schedule: schedule,
		timeout:  10 * time.Second,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With(zap.String("component", "pending_dispatch_job")),
	}, nil
}

// Run performs one dispatch pass and returns how many orders were assigned.
func (j *PendingDispatchJob) Run(ctx context.Context) int {
	ctx, cancel := context.WithTimeout(ctx, j.timeout)
	defer cancel()

	assigned, err := j.handler.Handle(ctx, commands.NewDispatchPendingCommand())
	if err != nil {
		j.logger.Error("pending dispatch failed", zap.Error(err))
		return 0
	}
	if assigned > 0 {
		j.logger.Info("pending orders dispatched", zap.Int("assigned", assigned))
	}
	return assigned
}

// Start registers the job with its schedule and starts the scheduler.
func (j *PendingDispatchJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, func() { j.Run(context.Background()) }); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("pending dispatch job started", zap.String("schedule", j.schedule))
	return nil
}

// Stop stops the scheduler and waits for a running pass to finish.
func (j *PendingDispatchJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info("pending dispatch job stopped")
}
