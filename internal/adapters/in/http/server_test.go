package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	httpadapter "procurement/internal/adapters/in/http"
	"procurement/internal/adapters/out/pubsub"
	"procurement/internal/core/application/broadcast"
	"procurement/internal/core/application/usecases/commands"
	"procurement/internal/core/application/usecases/queries"
	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/core/domain/model/order"
	"procurement/internal/core/domain/model/product"
	"procurement/internal/core/domain/model/summary"
	"procurement/internal/pkg/metrics"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// handlerFunc adapts a function to the Handle method of a use case.
type handlerFunc[C, R any] func(ctx context.Context, c C) (R, error)

func (f handlerFunc[C, R]) Handle(ctx context.Context, c C) (R, error) { return f(ctx, c) }

type setWindowFunc func(ctx context.Context, cmd commands.SetOrderingWindowCommand) error

func (f setWindowFunc) Handle(ctx context.Context, cmd commands.SetOrderingWindowCommand) error {
	return f(ctx, cmd)
}

var testNow = time.Date(2025, time.March, 3, 10, 0, 0, 0, time.UTC)

func windowState(open bool) handlerFunc[queries.GetWindowStateQuery, bool] {
	return func(context.Context, queries.GetWindowStateQuery) (bool, error) { return open, nil }
}

func failing[C, R any](err error) handlerFunc[C, R] {
	return func(context.Context, C) (R, error) {
		var zero R
		return zero, err
	}
}

type testServer struct {
	echo *echo.Echo
	hub  *pubsub.Hub
}

func newTestServer(t *testing.T, h httpadapter.Handlers) testServer {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	if h.WindowState == nil {
		h.WindowState = windowState(true)
	}
	hub := pubsub.NewHub(8, logger)
	e := echo.New()
	httpadapter.NewServer(h, hub, metrics.New(), logger).Register(e, 0)
	return testServer{echo: e, hub: hub}
}

func (s testServer) do(method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	s.echo.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}

func submittedOrder(t *testing.T) *order.Order {
	t.Helper()
	item, err := order.NewItem(kernel.NewUUID(), 2)
	require.NoError(t, err)
	o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), []order.Item{item}, testNow)
	require.NoError(t, err)
	require.NoError(t, o.Export(testNow))
	require.NoError(t, o.Submit(testNow))
	return o
}

func TestCreateOrder(t *testing.T) {
	dept, creator, paper := kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID()
	body := `{"departmentId":"` + dept.String() + `","creatorId":"` + creator.String() +
		`","items":[{"productId":"` + paper.String() + `","quantity":3}]}`

	t.Run("created with resolved items", func(t *testing.T) {
		var got commands.CreateOrderCommand
		srv := newTestServer(t, httpadapter.Handlers{
			CreateOrder: handlerFunc[commands.CreateOrderCommand, commands.OrderView](
				func(_ context.Context, cmd commands.CreateOrderCommand) (commands.OrderView, error) {
					got = cmd
					return commands.OrderView{
						ID: cmd.OrderID(), DepartmentID: dept, CreatorID: creator,
						Status: order.Pending, CreatedAt: testNow,
						Items: []commands.OrderItemView{{ProductID: paper, ProductCode: "PAPER-A4", ProductName: "Paper", Unit: "pack", Quantity: 3}},
					}, nil
				}),
		})

		rec := srv.do(http.MethodPost, "/api/v1/orders", body)

		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		resp := decode[httpadapter.OrderResponse](t, rec)
		assert.Equal(t, "pending", resp.Status)
		assert.Equal(t, dept.String(), resp.DepartmentID)
		require.Len(t, resp.Items, 1)
		assert.Equal(t, "PAPER-A4", resp.Items[0].ProductCode)
		assert.Equal(t, []commands.OrderLine{{ProductID: paper, Quantity: 3}}, got.Lines())
	})

	t.Run("closed window forbids creation", func(t *testing.T) {
		srv := newTestServer(t, httpadapter.Handlers{
			WindowState: windowState(false),
			CreateOrder: failing[commands.CreateOrderCommand, commands.OrderView](errors.New("must not be called")),
		})

		rec := srv.do(http.MethodPost, "/api/v1/orders", body)

		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Contains(t, rec.Body.String(), "ordering window is closed")
	})

	t.Run("non-positive quantity is a bad request", func(t *testing.T) {
		srv := newTestServer(t, httpadapter.Handlers{})

		rec := srv.do(http.MethodPost, "/api/v1/orders", strings.Replace(body, `"quantity":3`, `"quantity":0`, 1))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("advisory stock check failure", func(t *testing.T) {
		srv := newTestServer(t, httpadapter.Handlers{
			CreateOrder: failing[commands.CreateOrderCommand, commands.OrderView](
				product.NewInsufficientStockError(paper, 3, 1)),
		})

		rec := srv.do(http.MethodPost, "/api/v1/orders", body)

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})

	t.Run("malformed body", func(t *testing.T) {
		srv := newTestServer(t, httpadapter.Handlers{})

		rec := srv.do(http.MethodPost, "/api/v1/orders", `{`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestOrderTransitions(t *testing.T) {
	o := submittedOrder(t)
	path := "/api/v1/orders/" + o.ID().String()
	approver := kernel.NewUUID()

	t.Run("approve", func(t *testing.T) {
		srv := newTestServer(t, httpadapter.Handlers{
			ApproveOrder: handlerFunc[commands.ApproveOrderCommand, *order.Order](
				func(_ context.Context, cmd commands.ApproveOrderCommand) (*order.Order, error) {
					assert.True(t, cmd.OrderID().IsEqual(o.ID()))
					assert.Equal(t, "ok", *cmd.Comment())
					require.NoError(t, o.Approve(cmd.ApproverID(), cmd.Comment(), testNow))
					return o, nil
				}),
		})

		rec := srv.do(http.MethodPost, path+"/approve", `{"approverId":"`+approver.String()+`","comment":"ok"}`)

		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		resp := decode[httpadapter.OrderResponse](t, rec)
		assert.Equal(t, "approved", resp.Status)
		require.NotNil(t, resp.ApproverID)
		assert.Equal(t, approver.String(), *resp.ApproverID)
	})

	t.Run("insufficient stock names the product", func(t *testing.T) {
		productID := kernel.NewUUID()
		srv := newTestServer(t, httpadapter.Handlers{
			ApproveOrder: failing[commands.ApproveOrderCommand, *order.Order](
				product.NewInsufficientStockError(productID, 5, 2)),
		})

		rec := srv.do(http.MethodPost, path+"/approve", `{"approverId":"`+approver.String()+`"}`)

		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		resp := decode[struct {
			Details struct {
				ProductID string `json:"productId"`
				Requested int    `json:"requested"`
				Available *int   `json:"available"`
			} `json:"details"`
		}](t, rec)
		assert.Equal(t, productID.String(), resp.Details.ProductID)
		assert.Equal(t, 5, resp.Details.Requested)
		require.NotNil(t, resp.Details.Available)
		assert.Equal(t, 2, *resp.Details.Available)
	})

	t.Run("missing order", func(t *testing.T) {
		srv := newTestServer(t, httpadapter.Handlers{
			ExportOrder: failing[commands.ExportOrderCommand, *order.Order](commands.ErrOrderNotFound),
		})

		rec := srv.do(http.MethodPost, path+"/export", "")

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("illegal transition conflicts", func(t *testing.T) {
		srv := newTestServer(t, httpadapter.Handlers{
			SubmitOrder: failing[commands.SubmitOrderCommand, *order.Order](
				order.NewInvalidStateTransitionError(order.Pending, order.Submitted)),
		})

		rec := srv.do(http.MethodPost, path+"/submit", "")

		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Contains(t, rec.Body.String(), "cannot move order from pending to submitted")
	})

	t.Run("reject requires a reason", func(t *testing.T) {
		srv := newTestServer(t, httpadapter.Handlers{})

		rec := srv.do(http.MethodPost, path+"/reject", `{"approverId":"`+approver.String()+`","reason":"  "}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("malformed order id", func(t *testing.T) {
		srv := newTestServer(t, httpadapter.Handlers{})

		rec := srv.do(http.MethodPost, "/api/v1/orders/42/export", "")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unexpected errors are opaque", func(t *testing.T) {
		srv := newTestServer(t, httpadapter.Handlers{
			ExportOrder: failing[commands.ExportOrderCommand, *order.Order](errors.New("pq: connection refused")),
		})

		rec := srv.do(http.MethodPost, path+"/export", "")

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.NotContains(t, rec.Body.String(), "pq:")
		assert.Contains(t, rec.Body.String(), "internal error")
	})
}

func TestListOrders(t *testing.T) {
	dept := kernel.NewUUID()
	row := queries.OrderResponse{ID: kernel.NewUUID(), DepartmentID: dept, CreatorID: kernel.NewUUID(), Status: order.Submitted, CreatedAt: testNow, UpdatedAt: testNow}

	t.Run("by status and department", func(t *testing.T) {
		srv := newTestServer(t, httpadapter.Handlers{
			OrdersByStatus: handlerFunc[queries.GetOrdersByStatusQuery, []queries.OrderResponse](
				func(_ context.Context, q queries.GetOrdersByStatusQuery) ([]queries.OrderResponse, error) {
					assert.Equal(t, []order.Status{order.Exported, order.Submitted}, q.Statuses())
					assert.True(t, q.DepartmentID().IsEqual(dept))
					return []queries.OrderResponse{row}, nil
				}),
		})

		rec := srv.do(http.MethodGet, "/api/v1/orders?status=exported,submitted&departmentId="+dept.String(), "")

		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		resp := decode[[]httpadapter.OrderResponse](t, rec)
		require.Len(t, resp, 1)
		assert.Equal(t, "submitted", resp[0].Status)
	})

	t.Run("pending", func(t *testing.T) {
		srv := newTestServer(t, httpadapter.Handlers{
			OrdersByStatus: handlerFunc[queries.GetOrdersByStatusQuery, []queries.OrderResponse](
				func(_ context.Context, q queries.GetOrdersByStatusQuery) ([]queries.OrderResponse, error) {
					assert.Equal(t, []order.Status{order.Pending}, q.Statuses())
					return []queries.OrderResponse{}, nil
				}),
		})

		rec := srv.do(http.MethodGet, "/api/v1/orders/pending", "")

		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `[]`, rec.Body.String())
	})

	t.Run("by date range", func(t *testing.T) {
		srv := newTestServer(t, httpadapter.Handlers{
			OrdersByDateRange: handlerFunc[queries.GetOrdersByDateRangeQuery, []queries.OrderResponse](
				func(_ context.Context, q queries.GetOrdersByDateRangeQuery) ([]queries.OrderResponse, error) {
					assert.Equal(t, kernel.NewDay(2025, time.March, 1), q.From())
					assert.Equal(t, kernel.NewDay(2025, time.March, 7), q.To())
					return []queries.OrderResponse{row}, nil
				}),
		})

		rec := srv.do(http.MethodGet, "/api/v1/orders?from=2025-03-01&to=2025-03-07", "")

		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	})

	t.Run("unknown status", func(t *testing.T) {
		srv := newTestServer(t, httpadapter.Handlers{})

		rec := srv.do(http.MethodGet, "/api/v1/orders?status=cancelled", "")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("reversed range", func(t *testing.T) {
		srv := newTestServer(t, httpadapter.Handlers{})

		rec := srv.do(http.MethodGet, "/api/v1/orders?from=2025-03-07&to=2025-03-01", "")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestSummaries(t *testing.T) {
	dept := kernel.NewUUID()
	march1 := kernel.NewDay(2025, time.March, 1)

	t.Run("aggregate", func(t *testing.T) {
		srv := newTestServer(t, httpadapter.Handlers{
			AggregateSummaries: handlerFunc[commands.AggregateSummariesCommand, commands.AggregationReport](
				func(_ context.Context, cmd commands.AggregateSummariesCommand) (commands.AggregationReport, error) {
					return commands.AggregationReport{From: cmd.From(), To: cmd.To(), Days: 2, Rows: 3}, nil
				}),
		})

		rec := srv.do(http.MethodPost, "/api/v1/summaries/aggregate", `{"from":"2025-03-01","to":"2025-03-02"}`)

		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		assert.JSONEq(t, `{"from":"2025-03-01","to":"2025-03-02","days":2,"rows":3,"failures":[]}`, rec.Body.String())
	})

	t.Run("range wider than a year is rejected", func(t *testing.T) {
		srv := newTestServer(t, httpadapter.Handlers{})

		rec := srv.do(http.MethodPost, "/api/v1/summaries/aggregate", `{"from":"2024-01-01","to":"2025-01-01"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
	})

	t.Run("partial failure answers multi-status", func(t *testing.T) {
		failure := summary.KeyFailure{Key: summary.Key{DepartmentID: dept, Day: march1}, Err: errors.New("deadlock detected")}
		srv := newTestServer(t, httpadapter.Handlers{
			AggregateSummaries: handlerFunc[commands.AggregateSummariesCommand, commands.AggregationReport](
				func(_ context.Context, cmd commands.AggregateSummariesCommand) (commands.AggregationReport, error) {
					report := commands.AggregationReport{From: cmd.From(), To: cmd.To(), Days: 1, Rows: 4, Failures: []summary.KeyFailure{failure}}
					return report, &summary.PartialFailureError{Failures: report.Failures}
				}),
		})

		rec := srv.do(http.MethodPost, "/api/v1/summaries/aggregate", `{"from":"2025-03-01","to":"2025-03-01"}`)

		require.Equal(t, http.StatusMultiStatus, rec.Code)
		resp := decode[httpadapter.AggregationResponse](t, rec)
		assert.Equal(t, 4, resp.Rows)
		require.Len(t, resp.Failures, 1)
		assert.Equal(t, dept.String(), resp.Failures[0].DepartmentID)
		assert.Equal(t, "deadlock detected", resp.Failures[0].Error)
	})

	t.Run("read rollups", func(t *testing.T) {
		srv := newTestServer(t, httpadapter.Handlers{
			Summaries: handlerFunc[queries.GetSummariesQuery, []queries.SummaryResponse](
				func(_ context.Context, q queries.GetSummariesQuery) ([]queries.SummaryResponse, error) {
					assert.Nil(t, q.DepartmentID())
					return []queries.SummaryResponse{{DepartmentID: dept, Day: march1, TotalOrders: 5, ApprovedCount: 2, RejectedCount: 1, PendingCount: 2}}, nil
				}),
		})

		rec := srv.do(http.MethodGet, "/api/v1/summaries?from=2025-03-01&to=2025-03-31", "")

		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		assert.JSONEq(t, `[{"departmentId":"`+dept.String()+`","day":"2025-03-01","totalOrders":5,"approvedCount":2,"rejectedCount":1,"pendingCount":2}]`, rec.Body.String())
	})

	t.Run("missing bounds", func(t *testing.T) {
		srv := newTestServer(t, httpadapter.Handlers{})

		rec := srv.do(http.MethodGet, "/api/v1/summaries?from=2025-03-01", "")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestWindow(t *testing.T) {
	t.Run("get", func(t *testing.T) {
		srv := newTestServer(t, httpadapter.Handlers{WindowState: windowState(true)})

		rec := srv.do(http.MethodGet, "/api/v1/window", "")

		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"open":true}`, rec.Body.String())
	})

	t.Run("set", func(t *testing.T) {
		var got *bool
		srv := newTestServer(t, httpadapter.Handlers{
			SetWindow: setWindowFunc(func(_ context.Context, cmd commands.SetOrderingWindowCommand) error {
				open := cmd.Open()
				got = &open
				return nil
			}),
		})

		rec := srv.do(http.MethodPut, "/api/v1/window", `{"open":false}`)

		require.Equal(t, http.StatusOK, rec.Code)
		require.NotNil(t, got)
		assert.False(t, *got)
	})

	t.Run("set requires open", func(t *testing.T) {
		srv := newTestServer(t, httpadapter.Handlers{})

		rec := srv.do(http.MethodPut, "/api/v1/window", `{}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("toggle", func(t *testing.T) {
		srv := newTestServer(t, httpadapter.Handlers{
			ToggleWindow: handlerFunc[commands.ToggleOrderingWindowCommand, bool](
				func(context.Context, commands.ToggleOrderingWindowCommand) (bool, error) { return true, nil }),
		})

		rec := srv.do(http.MethodPost, "/api/v1/window/toggle", "")

		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"open":true}`, rec.Body.String())
	})
}

func TestHealthAndMetrics(t *testing.T) {
	srv := newTestServer(t, httpadapter.Handlers{})

	rec := srv.do(http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = srv.do(http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `procurement_http_requests_total{method="GET",path="/health",status="200"} 1`)
}

func TestSubscribe_StreamsDepartmentEvents(t *testing.T) {
	srv := newTestServer(t, httpadapter.Handlers{})
	ts := httptest.NewServer(srv.echo)
	defer ts.Close()

	dept := kernel.NewUUID()
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/api/v1/ws?departmentId=" + dept.String()

	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer resp.Body.Close()
	defer conn.Close()

	topic := broadcast.DepartmentTopic(dept)
	require.Eventually(t, func() bool { return srv.hub.Subscribers(topic) == 1 }, 2*time.Second, 10*time.Millisecond)

	ctx := context.Background()
	require.NoError(t, srv.hub.Publish(ctx, broadcast.TopicOrders, map[string]string{"type": "order.pending"}))
	require.NoError(t, srv.hub.Publish(ctx, topic, map[string]string{"type": "order.status"}))

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"order.status"}`, string(data))
}
