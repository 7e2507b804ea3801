package http

import (
	"net/http"
	"strings"

	"procurement/internal/core/application/usecases/commands"
	"procurement/internal/core/application/usecases/queries"
	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/core/domain/model/order"

	"github.com/labstack/echo/v4"
)

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(c echo.Context) error {
	var req CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	departmentID, err := parseID("departmentId", req.DepartmentID)
	if err != nil {
		return s.fail(c, err)
	}
	creatorID, err := parseID("creatorId", req.CreatorID)
	if err != nil {
		return s.fail(c, err)
	}

	lines := make([]commands.OrderLine, 0, len(req.Items))
	for _, item := range req.Items {
		productID, parseErr := parseID("productId", item.ProductID)
		if parseErr != nil {
			return s.fail(c, parseErr)
		}
		lines = append(lines, commands.OrderLine{ProductID: productID, Quantity: item.Quantity})
	}

	cmd, err := commands.NewCreateOrderCommand(kernel.NewUUID(), departmentID, creatorID, lines)
	if err != nil {
		return s.fail(c, err)
	}

	view, err := s.handlers.CreateOrder.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(http.StatusCreated, fromOrderView(view))
}

// ExportOrder handles POST /api/v1/orders/:orderId/export.
func (s *Server) ExportOrder(c echo.Context) error {
	orderID, err := parseID("orderId", c.Param("orderId"))
	if err != nil {
		return s.fail(c, err)
	}
	cmd, err := commands.NewExportOrderCommand(orderID)
	if err != nil {
		return s.fail(c, err)
	}
	return s.respondOrder(c, func() (*order.Order, error) {
		return s.handlers.ExportOrder.Handle(c.Request().Context(), cmd)
	})
}

// SubmitOrder handles POST /api/v1/orders/:orderId/submit.
func (s *Server) SubmitOrder(c echo.Context) error {
	orderID, err := parseID("orderId", c.Param("orderId"))
	if err != nil {
		return s.fail(c, err)
	}
	cmd, err := commands.NewSubmitOrderCommand(orderID)
	if err != nil {
		return s.fail(c, err)
	}
	return s.respondOrder(c, func() (*order.Order, error) {
		return s.handlers.SubmitOrder.Handle(c.Request().Context(), cmd)
	})
}

// ApproveOrder handles POST /api/v1/orders/:orderId/approve.
func (s *Server) ApproveOrder(c echo.Context) error {
	orderID, err := parseID("orderId", c.Param("orderId"))
	if err != nil {
		return s.fail(c, err)
	}

	var req ApproveOrderRequest
	if err = c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	approverID, err := parseID("approverId", req.ApproverID)
	if err != nil {
		return s.fail(c, err)
	}

	cmd, err := commands.NewApproveOrderCommand(orderID, approverID, req.Comment)
	if err != nil {
		return s.fail(c, err)
	}
	return s.respondOrder(c, func() (*order.Order, error) {
		return s.handlers.ApproveOrder.Handle(c.Request().Context(), cmd)
	})
}

// RejectOrder handles POST /api/v1/orders/:orderId/reject.
func (s *Server) RejectOrder(c echo.Context) error {
	orderID, err := parseID("orderId", c.Param("orderId"))
	if err != nil {
		return s.fail(c, err)
	}

	var req RejectOrderRequest
	if err = c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	approverID, err := parseID("approverId", req.ApproverID)
	if err != nil {
		return s.fail(c, err)
	}

	cmd, err := commands.NewRejectOrderCommand(orderID, approverID, req.Reason)
	if err != nil {
		return s.fail(c, err)
	}
	return s.respondOrder(c, func() (*order.Order, error) {
		return s.handlers.RejectOrder.Handle(c.Request().Context(), cmd)
	})
}

func (s *Server) respondOrder(c echo.Context, handle func() (*order.Order, error)) error {
	o, err := handle()
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, fromOrder(o))
}

// ListOrders handles GET /api/v1/orders. With from and to it lists orders
// created in that day range; otherwise it filters by the comma-separated
// status list and an optional departmentId.
func (s *Server) ListOrders(c echo.Context) error {
	ctx := c.Request().Context()

	if c.QueryParam("from") != "" || c.QueryParam("to") != "" {
		from, to, err := parseDayRange(c.QueryParam("from"), c.QueryParam("to"))
		if err != nil {
			return s.fail(c, err)
		}
		query, err := queries.NewGetOrdersByDateRangeQuery(from, to)
		if err != nil {
			return s.fail(c, err)
		}
		orders, err := s.handlers.OrdersByDateRange.Handle(ctx, query)
		if err != nil {
			return s.fail(c, err)
		}
		return c.JSON(http.StatusOK, fromOrderResponses(orders))
	}

	departmentID, err := parseOptionalID("departmentId", c.QueryParam("departmentId"))
	if err != nil {
		return s.fail(c, err)
	}

	var statuses []order.Status
	for _, name := range strings.Split(c.QueryParam("status"), ",") {
		if strings.TrimSpace(name) == "" {
			continue
		}
		status, parseErr := order.ParseStatus(name)
		if parseErr != nil {
			return s.fail(c, parseErr)
		}
		statuses = append(statuses, status)
	}

	query, err := queries.NewGetOrdersByStatusQuery(departmentID, statuses...)
	if err != nil {
		return s.fail(c, err)
	}
	orders, err := s.handlers.OrdersByStatus.Handle(ctx, query)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, fromOrderResponses(orders))
}

// ListPendingOrders handles GET /api/v1/orders/pending.
func (s *Server) ListPendingOrders(c echo.Context) error {
	orders, err := s.handlers.OrdersByStatus.Handle(c.Request().Context(), queries.NewGetPendingOrdersQuery())
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, fromOrderResponses(orders))
}

func parseDayRange(from, to string) (kernel.Day, kernel.Day, error) {
	fromDay, err := kernel.ParseDay(from)
	if err != nil {
		return kernel.Day{}, kernel.Day{}, err
	}
	toDay, err := kernel.ParseDay(to)
	if err != nil {
		return kernel.Day{}, kernel.Day{}, err
	}
	return fromDay, toDay, nil
}
