package jobs

import (
	"fmt"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	orderWindowJob        *OrderWindowJob
	summaryAggregationJob *SummaryAggregationJob
}

func NewJobManager(orderWindowJob *OrderWindowJob, summaryAggregationJob *SummaryAggregationJob) *JobManager {
	return &JobManager{
		orderWindowJob:        orderWindowJob,
		summaryAggregationJob: summaryAggregationJob,
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.orderWindowJob.Start(); err != nil {
		return fmt.Errorf("failed to start order window job: %w", err)
	}

	if err := jm.summaryAggregationJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.orderWindowJob.Stop()
		return fmt.Errorf("failed to start summary aggregation job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.summaryAggregationJob.Stop()
	jm.orderWindowJob.Stop()
}
