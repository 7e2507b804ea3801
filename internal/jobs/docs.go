// Package jobs provides scheduled background tasks for the procurement system.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
// Schedules use the standard five-field syntax and are evaluated in the
// configured time zone.
//
// # Available Jobs
//
// 1. OrderWindowJob - opens the ordering window on day 1 at 00:00 and closes it on day 8 at 08:00
// 2. SummaryAggregationJob - recomputes yesterday's per-department rollups (default 00:30 nightly)
//
// # Usage
//
//	jobManager := jobs.NewJobManager(
//		jobs.NewOrderWindowJob(setWindowHandler, loc, logger),
//		jobs.NewSummaryAggregationJob(aggregateHandler, cfg.SummaryCron, loc, logger),
//	)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// Jobs log failures and keep their schedule. A failed start stops any job
// already running.
package jobs
