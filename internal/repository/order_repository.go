package repository

import (
	"context"
	"time"

	"app/internal/domain/model"
)

type AdminOrderListFilter struct {
	Page       int
	Limit      int
	Status     string
	CustomerID *int64
	From       *time.Time
	To         *time.Time
}

type OrderRepository interface {
	FindByID(ctx context.Context, orderID int64) (model.Order, error)
	ListByCustomerID(ctx context.Context, customerID int64, page int, limit int) ([]model.Order, int64, error)
	Create(ctx context.Context, order model.Order) (int64, error)

	// statusとupdated_atを同一UPDATEで書く（DBトリガーは使わない）
	UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus, now time.Time) error

	//検索（同じキーなら同じ結果を返す）
	FindByIdempotencyKey(ctx context.Context, customerID int64, key string) (model.Order, bool, error)
	//管理者用の注文一覧
	ListAdmin(ctx context.Context, f AdminOrderListFilter) ([]model.Order, int64, error)
}
