package usecase_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// =====================
// TxManager / TxRepos mocks
// =====================

// TxManagerMock は WithinTx の中で渡す repos を固定して unit テストを回す
type TxManagerMock struct {
	mock.Mock
	Repos repo.TxRepos
}

func (m *TxManagerMock) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	// 呼ばれた事実だけ記録（ctxの具体値は問わない）
	m.Called(ctx)
	return fn(m.Repos)
}

type TxReposMock struct {
	orders     repo.OrderRepository
	orderItems repo.OrderItemRepository
	customers  repo.CustomerRepository
	products   repo.ProductRepository
	inventory  repo.InventoryRepository
	auditLogs  repo.AuditLogRepository
}

func (r *TxReposMock) Orders() repo.OrderRepository         { return r.orders }
func (r *TxReposMock) OrderItems() repo.OrderItemRepository { return r.orderItems }
func (r *TxReposMock) Customers() repo.CustomerRepository   { return r.customers }
func (r *TxReposMock) Products() repo.ProductRepository     { return r.products }
func (r *TxReposMock) Inventory() repo.InventoryRepository  { return r.inventory }
func (r *TxReposMock) AuditLogs() repo.AuditLogRepository   { return r.auditLogs }

// =====================
// Repository mocks
// =====================

type OrderRepoMock struct{ mock.Mock }

func (m *OrderRepoMock) FindByID(ctx context.Context, orderID int64) (model.Order, error) {
	args := m.Called(ctx, orderID)
	o, _ := args.Get(0).(model.Order)
	return o, args.Error(1)
}

func (m *OrderRepoMock) ListByCustomerID(ctx context.Context, customerID int64, page int, limit int) ([]model.Order, int64, error) {
	args := m.Called(ctx, customerID, page, limit)
	orders, _ := args.Get(0).([]model.Order)
	return orders, args.Get(1).(int64), args.Error(2)
}

func (m *OrderRepoMock) Create(ctx context.Context, order model.Order) (int64, error) {
	args := m.Called(ctx, order)
	return args.Get(0).(int64), args.Error(1)
}

func (m *OrderRepoMock) UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus, now time.Time) error {
	args := m.Called(ctx, orderID, status, now)
	return args.Error(0)
}

func (m *OrderRepoMock) FindByIdempotencyKey(ctx context.Context, customerID int64, key string) (model.Order, bool, error) {
	args := m.Called(ctx, customerID, key)
	o, _ := args.Get(0).(model.Order)
	return o, args.Bool(1), args.Error(2)
}

func (m *OrderRepoMock) ListAdmin(ctx context.Context, f repo.AdminOrderListFilter) ([]model.Order, int64, error) {
	args := m.Called(ctx, f)
	orders, _ := args.Get(0).([]model.Order)
	return orders, args.Get(1).(int64), args.Error(2)
}

type OrderItemRepoMock struct{ mock.Mock }

func (m *OrderItemRepoMock) CreateBulk(ctx context.Context, orderID int64, items []model.OrderItem) error {
	args := m.Called(ctx, orderID, items)
	return args.Error(0)
}

func (m *OrderItemRepoMock) ListByOrderID(ctx context.Context, orderID int64) ([]model.OrderItem, error) {
	args := m.Called(ctx, orderID)
	items, _ := args.Get(0).([]model.OrderItem)
	return items, args.Error(1)
}

type CustomerRepoMock struct{ mock.Mock }

func (m *CustomerRepoMock) Create(ctx context.Context, c model.Customer) (model.Customer, error) {
	args := m.Called(ctx, c)
	out, _ := args.Get(0).(model.Customer)
	return out, args.Error(1)
}

func (m *CustomerRepoMock) FindByID(ctx context.Context, customerID int64) (model.Customer, error) {
	args := m.Called(ctx, customerID)
	c, _ := args.Get(0).(model.Customer)
	return c, args.Error(1)
}

func (m *CustomerRepoMock) FindByEmail(ctx context.Context, email string) (model.Customer, error) {
	args := m.Called(ctx, email)
	c, _ := args.Get(0).(model.Customer)
	return c, args.Error(1)
}

func (m *CustomerRepoMock) Update(ctx context.Context, c model.Customer) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

type ProductRepoMock struct{ mock.Mock }

func (m *ProductRepoMock) List(ctx context.Context, q repo.ProductListQuery) ([]model.Product, int64, error) {
	args := m.Called(ctx, q)
	items, _ := args.Get(0).([]model.Product)
	return items, args.Get(1).(int64), args.Error(2)
}

func (m *ProductRepoMock) FindByID(ctx context.Context, id int64) (model.Product, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(model.Product)
	return p, args.Error(1)
}

func (m *ProductRepoMock) FindByIDs(ctx context.Context, ids []int64) ([]model.Product, error) {
	args := m.Called(ctx, ids)
	ps, _ := args.Get(0).([]model.Product)
	return ps, args.Error(1)
}

func (m *ProductRepoMock) Create(ctx context.Context, p model.Product) (model.Product, error) {
	args := m.Called(ctx, p)
	out, _ := args.Get(0).(model.Product)
	return out, args.Error(1)
}

func (m *ProductRepoMock) Update(ctx context.Context, p model.Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

type InventoryRepoMock struct{ mock.Mock }

func (m *InventoryRepoMock) SetStock(ctx context.Context, productID int64, newStock int64) error {
	args := m.Called(ctx, productID, newStock)
	return args.Error(0)
}

func (m *InventoryRepoMock) DecreaseStockIfEnough(ctx context.Context, productID int64, qty int64) (bool, error) {
	args := m.Called(ctx, productID, qty)
	return args.Bool(0), args.Error(1)
}

func (m *InventoryRepoMock) IncreaseStock(ctx context.Context, productID int64, qty int64) error {
	args := m.Called(ctx, productID, qty)
	return args.Error(0)
}

func (m *InventoryRepoMock) CreateAdjustment(ctx context.Context, adjustment model.InventoryAdjustment) error {
	args := m.Called(ctx, adjustment)
	return args.Error(0)
}

type AuditLogRepoMock struct{ mock.Mock }

func (m *AuditLogRepoMock) Create(ctx context.Context, log model.AuditLog) error {
	args := m.Called(ctx, log)
	return args.Error(0)
}

func (m *AuditLogRepoMock) List(ctx context.Context, f repo.AuditLogFilter) ([]model.AuditLog, error) {
	args := m.Called(ctx, f)
	logs, _ := args.Get(0).([]model.AuditLog)
	return logs, args.Error(1)
}

type CacheMock struct{ mock.Mock }

func (m *CacheMock) GetStatus(ctx context.Context, productID int64) (model.InventoryStatus, bool, error) {
	args := m.Called(ctx, productID)
	st, _ := args.Get(0).(model.InventoryStatus)
	return st, args.Bool(1), args.Error(2)
}

func (m *CacheMock) SetStatus(ctx context.Context, st model.InventoryStatus) error {
	args := m.Called(ctx, st)
	return args.Error(0)
}

func (m *CacheMock) Invalidate(ctx context.Context, productIDs ...int64) error {
	args := m.Called(ctx, productIDs)
	return args.Error(0)
}

// =====================
// Helper: error contains（HTTPErrorの実装詳細に依存しない）
// =====================

func assertErrContains(t *testing.T, err error, wantSubstr string) {
	t.Helper()
	if assert.Error(t, err) {
		assert.True(t, strings.Contains(err.Error(), wantSubstr), "err=%q want contains %q", err.Error(), wantSubstr)
	}
}
