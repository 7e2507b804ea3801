package commands

import (
	"context"
	"log/slog"
	"time"

	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/core/domain/model/summary"
	"procurement/internal/pkg/metrics"
)

// AggregationReport describes one aggregation run.
type AggregationReport struct {
	From     kernel.Day
	To       kernel.Day
	Days     int
	Rows     int
	Failures []summary.KeyFailure
}

// AggregateSummariesCommandHandler recomputes per-department daily rollups.
//
// Each day is loaded without locks and each (department, day) row is upserted on
// its own, so a failed key never undoes the keys already written and a rerun
// only has to fix what failed. Days with no orders write nothing.
type AggregateSummariesCommandHandler struct {
	uowFactory SummaryUoWFactory
	location   *time.Location
	metrics    *metrics.Metrics
	logger     *slog.Logger
}

// NewAggregateSummariesCommandHandler creates the handler. Day boundaries are
// taken in loc; a nil loc means UTC.
func NewAggregateSummariesCommandHandler(
	uowFactory SummaryUoWFactory,
	loc *time.Location,
	m *metrics.Metrics,
	logger *slog.Logger,
) AggregateSummariesCommandHandler {
	if loc == nil {
		loc = time.UTC
	}
	return AggregateSummariesCommandHandler{
		uowFactory: uowFactory,
		location:   loc,
		metrics:    m,
		logger:     logger.With("component", "summary-aggregator"),
	}
}

// Handle always returns the report. The error is a *summary.PartialFailureError
// when some keys failed, or the context error when the run was cancelled.
func (h AggregateSummariesCommandHandler) Handle(
	ctx context.Context,
	cmd AggregateSummariesCommand,
) (AggregationReport, error) {
	if err := cmd.Validate(); err != nil {
		return AggregationReport{}, err
	}

	report := AggregationReport{From: cmd.From(), To: cmd.To()}
	uow := h.uowFactory.Create()
	orderRepo := uow.OrderRepository()
	summaryRepo := uow.SummaryRepository()

	for _, day := range kernel.DaysInRange(cmd.From(), cmd.To()) {
		if err := ctx.Err(); err != nil {
			h.record(report)
			return report, err
		}
		report.Days++

		orders, err := orderRepo.GetCreatedBetween(ctx, day.Start(h.location), day.Next().Start(h.location))
		if err != nil {
			report.Failures = append(report.Failures, summary.KeyFailure{Key: summary.Key{Day: day}, Err: err})
			h.logger.ErrorContext(ctx, "Failed to load orders", "day", day.String(), "error", err)
			continue
		}

		snapshots := make([]summary.OrderSnapshot, 0, len(orders))
		for _, o := range orders {
			snapshots = append(snapshots, summary.SnapshotOf(o))
		}

		for _, s := range summary.Compute(day, h.location, snapshots) {
			if err = summaryRepo.Upsert(ctx, s); err != nil {
				report.Failures = append(report.Failures, summary.KeyFailure{Key: s.Key(), Err: err})
				h.logger.ErrorContext(ctx, "Failed to store summary", "key", s.Key().String(), "error", err)
				continue
			}
			report.Rows++
		}
	}

	h.record(report)
	if len(report.Failures) > 0 {
		return report, &summary.PartialFailureError{Failures: report.Failures}
	}
	return report, nil
}

func (h AggregateSummariesCommandHandler) record(report AggregationReport) {
	h.metrics.SummaryAggregated(report.Rows, len(report.Failures))
	h.logger.Info("Aggregation finished",
		"from", report.From.String(),
		"to", report.To.String(),
		"days", report.Days,
		"rows", report.Rows,
		"failures", len(report.Failures),
	)
}
