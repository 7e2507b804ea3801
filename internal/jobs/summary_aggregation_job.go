package jobs

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"procurement/internal/core/application/usecases/commands"
	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/core/domain/model/summary"

	"github.com/robfig/cron/v3"
)

// DefaultSummarySchedule runs the nightly aggregation at 00:30.
const DefaultSummarySchedule = "30 0 * * *"

type summaryAggregator interface {
	Handle(ctx context.Context, cmd commands.AggregateSummariesCommand) (commands.AggregationReport, error)
}

// SummaryAggregationJob recomputes yesterday's per-department rollups.
// Rerunning a day overwrites its rows, so a failed night is fixed by the
// next manual or scheduled run.
type SummaryAggregationJob struct {
	handler  summaryAggregator
	schedule string
	location *time.Location
	now      func() time.Time
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewSummaryAggregationJob creates the job. An empty schedule means
// DefaultSummarySchedule; "yesterday" is taken in loc.
func NewSummaryAggregationJob(
	handler summaryAggregator,
	schedule string,
	loc *time.Location,
	logger *slog.Logger,
) *SummaryAggregationJob {
	if schedule == "" {
		schedule = DefaultSummarySchedule
	}
	if loc == nil {
		loc = time.UTC
	}
	return &SummaryAggregationJob{
		handler:  handler,
		schedule: schedule,
		location: loc,
		now:      time.Now,
		cron:     cron.New(cron.WithLocation(loc)),
		logger:   logger.With("component", "summary_aggregation_job"),
	}
}

// Start registers the trigger and starts the scheduler.
func (j *SummaryAggregationJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, j.OnTick); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Summary aggregation job started", "schedule", j.schedule)
	return nil
}

// Stop waits for a running aggregation to finish.
func (j *SummaryAggregationJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Summary aggregation job stopped")
}

// OnTick aggregates the day before now.
func (j *SummaryAggregationJob) OnTick() {
	ctx := context.Background()
	yesterday := kernel.DayOf(j.now(), j.location).Prev()

	cmd, err := commands.NewAggregateDayCommand(yesterday)
	if err != nil {
		j.logger.ErrorContext(ctx, "Summary aggregation job failed", "day", yesterday.String(), "error", err)
		return
	}

	report, err := j.handler.Handle(ctx, cmd)
	switch {
	case errors.Is(err, summary.ErrAggregationPartialFailure):
		j.logger.WarnContext(ctx, "Summary aggregation incomplete",
			"day", yesterday.String(),
			"rows", report.Rows,
			"failures", len(report.Failures),
		)
	case err != nil:
		j.logger.ErrorContext(ctx, "Summary aggregation job failed", "day", yesterday.String(), "error", err)
	}
}
