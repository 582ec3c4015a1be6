// Package jobs provides scheduled background tasks for the dispatch service.
//
// Jobs use github.com/robfig/cron/v3 with a seconds field, so schedules take
// six fields ("*/5 * * * * *" runs every five seconds).
//
// # Available Jobs
//
// 1. PendingDispatchJob - retries matching for confirmed orders still waiting for a driver
// 2. FleetReportJob - logs queue depth and driver availability
//
// # Usage
//
//	jobManager, err := jobs.NewJobManager(dispatchHandler, pendingHandler, driversHandler, schedules, logger)
//	if err != nil {
//		return err
//	}
//	if err = jobManager.StartAll(); err != nil {
//		return err
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// A failing tick is logged and the schedule keeps running. A job that fails
// to start stops the jobs already started.
package jobs
