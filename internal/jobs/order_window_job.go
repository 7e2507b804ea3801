package jobs

import (
	"context"
	"log/slog"
	"time"

	"procurement/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

const (
	// OpenWindowSchedule opens the ordering window on day 1 of every month at 00:00.
	OpenWindowSchedule = "0 0 1 * *"

	// CloseWindowSchedule closes it on day 8 at 08:00.
	CloseWindowSchedule = "0 8 8 * *"
)

type windowSetter interface {
	Handle(ctx context.Context, cmd commands.SetOrderingWindowCommand) error
}

// OrderWindowJob opens and closes the monthly ordering window. A trigger
// missed while the process was down is not replayed.
type OrderWindowJob struct {
	handler windowSetter
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewOrderWindowJob creates the job. Schedules are evaluated in loc.
func NewOrderWindowJob(handler windowSetter, loc *time.Location, logger *slog.Logger) *OrderWindowJob {
	if loc == nil {
		loc = time.UTC
	}
	return &OrderWindowJob{
		handler: handler,
		cron:    cron.New(cron.WithLocation(loc)),
		logger:  logger.With("component", "order_window_job"),
	}
}

// Start registers both triggers and starts the scheduler.
func (j *OrderWindowJob) Start() error {
	if _, err := j.cron.AddFunc(OpenWindowSchedule, j.OnOpenTick); err != nil {
		return err
	}
	if _, err := j.cron.AddFunc(CloseWindowSchedule, j.OnCloseTick); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Order window job started",
		"open", OpenWindowSchedule,
		"close", CloseWindowSchedule,
	)
	return nil
}

// Stop stops the scheduler and waits for a running trigger to finish.
func (j *OrderWindowJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Order window job stopped")
}

// OnOpenTick and OnCloseTick are the cron callbacks. A failed write is logged
// and left for the next trigger or the admin toggle.
func (j *OrderWindowJob) OnOpenTick()  { j.set(true) }
func (j *OrderWindowJob) OnCloseTick() { j.set(false) }

func (j *OrderWindowJob) set(open bool) {
	ctx := context.Background()
	if err := j.handler.Handle(ctx, commands.NewSetOrderingWindowCommand(open)); err != nil {
		j.logger.ErrorContext(ctx, "Order window job failed", "open", open, "error", err)
	}
}
