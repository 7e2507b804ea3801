// Package http exposes the procurement use cases over HTTP with echo, plus a
// websocket endpoint that streams dashboard notifications.
package http

import (
	"context"
	"log/slog"
	"net/http"

	"procurement/internal/adapters/out/pubsub"
	"procurement/internal/core/application/usecases/commands"
	"procurement/internal/core/application/usecases/queries"
	"procurement/internal/core/domain/model/order"
	"procurement/internal/pkg/metrics"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"
)

// Use case contracts of the server. The command and query handlers satisfy
// them directly.
type (
	OrderCreator interface {
		Handle(ctx context.Context, cmd commands.CreateOrderCommand) (commands.OrderView, error)
	}
	OrderExporter interface {
		Handle(ctx context.Context, cmd commands.ExportOrderCommand) (*order.Order, error)
	}
	OrderSubmitter interface {
		Handle(ctx context.Context, cmd commands.SubmitOrderCommand) (*order.Order, error)
	}
	OrderApprover interface {
		Handle(ctx context.Context, cmd commands.ApproveOrderCommand) (*order.Order, error)
	}
	OrderRejecter interface {
		Handle(ctx context.Context, cmd commands.RejectOrderCommand) (*order.Order, error)
	}
	SummaryAggregator interface {
		Handle(ctx context.Context, cmd commands.AggregateSummariesCommand) (commands.AggregationReport, error)
	}
	WindowSetter interface {
		Handle(ctx context.Context, cmd commands.SetOrderingWindowCommand) error
	}
	WindowToggler interface {
		Handle(ctx context.Context, cmd commands.ToggleOrderingWindowCommand) (bool, error)
	}
	OrdersByStatusReader interface {
		Handle(ctx context.Context, query queries.GetOrdersByStatusQuery) ([]queries.OrderResponse, error)
	}
	OrdersByDateRangeReader interface {
		Handle(ctx context.Context, query queries.GetOrdersByDateRangeQuery) ([]queries.OrderResponse, error)
	}
	SummariesReader interface {
		Handle(ctx context.Context, query queries.GetSummariesQuery) ([]queries.SummaryResponse, error)
	}
	WindowStateReader interface {
		Handle(ctx context.Context, query queries.GetWindowStateQuery) (bool, error)
	}
)

// Handlers groups the use cases served over HTTP.
type Handlers struct {
	CreateOrder        OrderCreator
	ExportOrder        OrderExporter
	SubmitOrder        OrderSubmitter
	ApproveOrder       OrderApprover
	RejectOrder        OrderRejecter
	AggregateSummaries SummaryAggregator
	SetWindow          WindowSetter
	ToggleWindow       WindowToggler

	OrdersByStatus    OrdersByStatusReader
	OrdersByDateRange OrdersByDateRangeReader
	Summaries         SummariesReader
	WindowState       WindowStateReader
}

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	handlers Handlers
	hub      *pubsub.Hub
	metrics  *metrics.Metrics
	logger   *slog.Logger
	upgrader websocket.Upgrader
}

// NewServer creates the server. hub backs the WebSocket stream; m may be nil.
func NewServer(handlers Handlers, hub *pubsub.Hub, m *metrics.Metrics, logger *slog.Logger) *Server {
	return &Server{
		handlers: handlers,
		hub:      hub,
		metrics:  m,
		logger:   logger.With("component", "http"),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
	}
}

// Register mounts every route on e. A positive requestsPerSecond enables a
// per-client rate limiter.
func (s *Server) Register(e *echo.Echo, requestsPerSecond float64) {
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(s.recordMetrics)
	if requestsPerSecond > 0 {
		e.Use(middleware.RateLimiter(middleware.NewRateLimiterMemoryStore(rate.Limit(requestsPerSecond))))
	}

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/metrics", echo.WrapHandler(s.metrics.Handler()))

	api := e.Group("/api/v1")

	api.POST("/orders", s.CreateOrder, s.requireOpenWindow)
	api.GET("/orders", s.ListOrders)
	api.GET("/orders/pending", s.ListPendingOrders)
	api.POST("/orders/:orderId/export", s.ExportOrder)
	api.POST("/orders/:orderId/submit", s.SubmitOrder)
	api.POST("/orders/:orderId/approve", s.ApproveOrder)
	api.POST("/orders/:orderId/reject", s.RejectOrder)

	api.POST("/summaries/aggregate", s.AggregateSummaries)
	api.GET("/summaries", s.GetSummaries)

	api.GET("/window", s.GetWindow)
	api.PUT("/window", s.SetWindow)
	api.POST("/window/toggle", s.ToggleWindow)

	api.GET("/ws", s.Subscribe)
}
