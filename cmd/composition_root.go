package cmd

import (
	"log/slog"
	"time"

	httpadapter "procurement/internal/adapters/in/http"
	"procurement/internal/adapters/out/postgres"
	"procurement/internal/adapters/out/pubsub"
	"procurement/internal/core/application/broadcast"
	"procurement/internal/core/application/notifications"
	"procurement/internal/core/application/usecases/commands"
	"procurement/internal/core/application/usecases/queries"
	"procurement/internal/core/ports"
	"procurement/internal/jobs"
	"procurement/internal/pkg/metrics"

	"gorm.io/gorm"
)

// Dependencies are the infrastructure pieces built in main.
type Dependencies struct {
	GormDB    *gorm.DB
	Window    ports.WindowStore
	Hub       *pubsub.Hub
	Publisher ports.Publisher
	Mailer    ports.Mailer
	Directory ports.RecipientDirectory
	Metrics   *metrics.Metrics
	Logger    *slog.Logger
}

type CompositionRoot struct {
	configs     Config
	deps        Dependencies
	location    *time.Location
	uowFactory  *postgres.GormUnitOfWorkFactory
	broadcaster *broadcast.Broadcaster
	notifier    *notifications.Notifier
}

// NewCompositionRoot wires the application layer over deps. loc sets day
// boundaries for aggregation, date-range queries and the window schedule.
func NewCompositionRoot(configs Config, loc *time.Location, deps Dependencies) CompositionRoot {
	broadcaster := broadcast.NewBroadcaster(deps.Publisher, deps.Logger, deps.Metrics)
	return CompositionRoot{
		configs:     configs,
		deps:        deps,
		location:    loc,
		uowFactory:  postgres.NewGormUnitOfWorkFactory(deps.GormDB),
		broadcaster: broadcaster,
		notifier:    notifications.NewNotifier(broadcaster, deps.Mailer, deps.Directory, deps.Logger),
	}
}

func (c *CompositionRoot) clock() time.Time {
	return time.Now().UTC()
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) orderProductUoWFactory() commands.OrderProductUoWFactory {
	return FuncOrderProductUoWFactory(func() commands.OrderProductUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) summaryUoWFactory() commands.SummaryUoWFactory {
	return FuncSummaryUoWFactory(func() commands.SummaryUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.orderProductUoWFactory(), c.notifier, c.deps.Metrics, c.clock, c.deps.Logger)
}

func (c *CompositionRoot) CreateExportOrderCommandHandler() commands.ExportOrderCommandHandler {
	return commands.NewExportOrderCommandHandler(c.orderUoWFactory(), c.deps.Metrics, c.clock, c.deps.Logger)
}

func (c *CompositionRoot) CreateSubmitOrderCommandHandler() commands.SubmitOrderCommandHandler {
	return commands.NewSubmitOrderCommandHandler(c.orderUoWFactory(), c.deps.Metrics, c.clock, c.deps.Logger)
}

func (c *CompositionRoot) CreateApproveOrderCommandHandler() commands.ApproveOrderCommandHandler {
	return commands.NewApproveOrderCommandHandler(c.orderProductUoWFactory(), c.notifier, c.deps.Metrics, c.clock, c.deps.Logger)
}

func (c *CompositionRoot) CreateRejectOrderCommandHandler() commands.RejectOrderCommandHandler {
	return commands.NewRejectOrderCommandHandler(c.orderUoWFactory(), c.notifier, c.deps.Metrics, c.clock, c.deps.Logger)
}

func (c *CompositionRoot) CreateAggregateSummariesCommandHandler() commands.AggregateSummariesCommandHandler {
	return commands.NewAggregateSummariesCommandHandler(c.summaryUoWFactory(), c.location, c.deps.Metrics, c.deps.Logger)
}

func (c *CompositionRoot) CreateSetOrderingWindowCommandHandler() commands.SetOrderingWindowCommandHandler {
	return commands.NewSetOrderingWindowCommandHandler(c.deps.Window, c.broadcaster, c.deps.Logger)
}

func (c *CompositionRoot) CreateToggleOrderingWindowCommandHandler() commands.ToggleOrderingWindowCommandHandler {
	return commands.NewToggleOrderingWindowCommandHandler(c.deps.Window, c.broadcaster, c.deps.Logger)
}

func (c *CompositionRoot) CreateGetOrdersByStatusQueryHandler() queries.GetOrdersByStatusQueryHandler {
	return queries.NewGetOrdersByStatusQueryHandler(c.deps.GormDB)
}

func (c *CompositionRoot) CreateGetOrdersByDateRangeQueryHandler() queries.GetOrdersByDateRangeQueryHandler {
	return queries.NewGetOrdersByDateRangeQueryHandler(c.deps.GormDB, c.location)
}

func (c *CompositionRoot) CreateGetSummariesQueryHandler() queries.GetSummariesQueryHandler {
	return queries.NewGetSummariesQueryHandler(c.deps.GormDB)
}

func (c *CompositionRoot) CreateGetWindowStateQueryHandler() queries.GetWindowStateQueryHandler {
	return queries.NewGetWindowStateQueryHandler(c.deps.Window)
}

// CreateServer builds the HTTP server with every handler attached.
func (c *CompositionRoot) CreateServer() *httpadapter.Server {
	return httpadapter.NewServer(httpadapter.Handlers{
		CreateOrder:        c.CreateCreateOrderCommandHandler(),
		ExportOrder:        c.CreateExportOrderCommandHandler(),
		SubmitOrder:        c.CreateSubmitOrderCommandHandler(),
		ApproveOrder:       c.CreateApproveOrderCommandHandler(),
		RejectOrder:        c.CreateRejectOrderCommandHandler(),
		AggregateSummaries: c.CreateAggregateSummariesCommandHandler(),
		SetWindow:          c.CreateSetOrderingWindowCommandHandler(),
		ToggleWindow:       c.CreateToggleOrderingWindowCommandHandler(),
		OrdersByStatus:     c.CreateGetOrdersByStatusQueryHandler(),
		OrdersByDateRange:  c.CreateGetOrdersByDateRangeQueryHandler(),
		Summaries:          c.CreateGetSummariesQueryHandler(),
		WindowState:        c.CreateGetWindowStateQueryHandler(),
	}, c.deps.Hub, c.deps.Metrics, c.deps.Logger)
}

// CreateJobManager builds the window and nightly aggregation jobs. They are not started.
func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		jobs.NewOrderWindowJob(c.CreateSetOrderingWindowCommandHandler(), c.location, c.deps.Logger),
		jobs.NewSummaryAggregationJob(c.CreateAggregateSummariesCommandHandler(), c.configs.SummaryCron, c.location, c.deps.Logger),
	)
}

// DrainNotifications waits for background order notifications to finish.
func (c *CompositionRoot) DrainNotifications() {
	c.notifier.Wait()
}

// FuncOrderUoWFactory adapts a closure to commands.OrderUoWFactory.
type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncOrderProductUoWFactory func() commands.OrderProductUoW

func (f FuncOrderProductUoWFactory) Create() commands.OrderProductUoW {
	return f()
}

type FuncSummaryUoWFactory func() commands.SummaryUoW

func (f FuncSummaryUoWFactory) Create() commands.SummaryUoW {
	return f()
}
