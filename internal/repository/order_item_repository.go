package repository

import (
	"context"

	"app/internal/domain/model"
)

type OrderItemRepository interface {
	// 入力順のまま保存する（表示順に意味がある）
	CreateBulk(ctx context.Context, orderID int64, items []model.OrderItem) error
	ListByOrderID(ctx context.Context, orderID int64) ([]model.OrderItem, error)
}
