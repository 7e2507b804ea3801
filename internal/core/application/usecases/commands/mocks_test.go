package commands_test

import (
	"context"
	"io"
	"log/slog"
	"time"

	"procurement/internal/core/application/usecases/commands"
	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/core/domain/model/order"
	"procurement/internal/core/domain/model/product"
	"procurement/internal/core/domain/model/summary"
	"procurement/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

var testNow = time.Date(2025, time.March, 5, 9, 30, 0, 0, time.UTC)

func testClock() time.Time { return testNow }

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if o, ok := args.Get(0).(*order.Order); ok {
		return o, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockOrderRepository) GetCreatedBetween(ctx context.Context, from, to time.Time) ([]*order.Order, error) {
	args := m.Called(ctx, from, to)
	if orders, ok := args.Get(0).([]*order.Order); ok {
		return orders, args.Error(1)
	}
	return nil, args.Error(1)
}

type MockProductRepository struct{ mock.Mock }

func (m *MockProductRepository) GetMany(ctx context.Context, ids []kernel.UUID) (map[kernel.UUID]*product.Product, error) {
	args := m.Called(ctx, ids)
	if products, ok := args.Get(0).(map[kernel.UUID]*product.Product); ok {
		return products, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockProductRepository) DecrementStock(ctx context.Context, id kernel.UUID, qty int) error {
	args := m.Called(ctx, id, qty)
	return args.Error(0)
}

type MockSummaryRepository struct{ mock.Mock }

func (m *MockSummaryRepository) Upsert(ctx context.Context, s summary.Summary) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockSummaryRepository) GetRange(ctx context.Context, from, to kernel.Day) ([]summary.Summary, error) {
	args := m.Called(ctx, from, to)
	if rows, ok := args.Get(0).([]summary.Summary); ok {
		return rows, args.Error(1)
	}
	return nil, args.Error(1)
}

// MockUoW satisfies every unit of work shape used by the handlers.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) ProductRepository() ports.ProductRepository {
	args := m.Called()
	return args.Get(0).(ports.ProductRepository)
}

func (m *MockUoW) SummaryRepository() ports.SummaryRepository {
	args := m.Called()
	return args.Get(0).(ports.SummaryRepository)
}

type MockOrderUoWFactory struct{ uow *MockUoW }

func (f MockOrderUoWFactory) Create() commands.OrderUoW { return f.uow }

type MockOrderProductUoWFactory struct{ uow *MockUoW }

func (f MockOrderProductUoWFactory) Create() commands.OrderProductUoW { return f.uow }

type MockSummaryUoWFactory struct{ uow *MockUoW }

func (f MockSummaryUoWFactory) Create() commands.SummaryUoW { return f.uow }

type MockOrderNotifier struct{ mock.Mock }

func (m *MockOrderNotifier) OrderCreated(ctx context.Context, o *order.Order) {
	m.Called(ctx, o)
}

func (m *MockOrderNotifier) OrderDecided(ctx context.Context, o *order.Order) {
	m.Called(ctx, o)
}

type MockWindowNotifier struct{ mock.Mock }

func (m *MockWindowNotifier) PublishWindowState(ctx context.Context, open bool) {
	m.Called(ctx, open)
}

type MockWindowStore struct{ mock.Mock }

func (m *MockWindowStore) IsOpen(ctx context.Context) (bool, error) {
	args := m.Called(ctx)
	return args.Bool(0), args.Error(1)
}

func (m *MockWindowStore) SetOpen(ctx context.Context, open bool) error {
	args := m.Called(ctx, open)
	return args.Error(0)
}

func (m *MockWindowStore) Toggle(ctx context.Context) (bool, error) {
	args := m.Called(ctx)
	return args.Bool(0), args.Error(1)
}

func mustProduct(code string, stock int) *product.Product {
	p, err := product.NewProduct(kernel.NewUUID(), code, "Product "+code, "pcs", stock)
	if err != nil {
		panic(err)
	}
	return p
}

// orderIn builds an order with the given lines and walks it to status.
func orderIn(status order.Status, lines ...commands.OrderLine) *order.Order {
	items := make([]order.Item, 0, len(lines))
	for _, line := range lines {
		item, err := order.NewItem(line.ProductID, line.Quantity)
		if err != nil {
			panic(err)
		}
		items = append(items, item)
	}
	if len(items) == 0 {
		item, _ := order.NewItem(kernel.NewUUID(), 1)
		items = append(items, item)
	}

	o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), items, testNow.Add(-time.Hour))
	if err != nil {
		panic(err)
	}
	steps := map[order.Status][]func() error{
		order.Exported:  {func() error { return o.Export(testNow) }},
		order.Submitted: {func() error { return o.Export(testNow) }, func() error { return o.Submit(testNow) }},
	}
	for _, step := range steps[status] {
		if err = step(); err != nil {
			panic(err)
		}
	}
	return o
}
