package repository

import (
	"app/internal/domain/model"
	"context"
)

// 在庫ステータス照会のread-throughキャッシュを約束。
// TTL切れ・未ヒットはDB読みにフォールバックする。
type InventoryStatusCache interface {
	GetStatus(ctx context.Context, productID int64) (model.InventoryStatus, bool, error)
	SetStatus(ctx context.Context, st model.InventoryStatus) error
	// 注文確定・補充後に対象商品を消す
	Invalidate(ctx context.Context, productIDs ...int64) error
}
