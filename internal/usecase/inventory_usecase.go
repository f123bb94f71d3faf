package usecase

import (
	"context"
	"net/http"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

// 在庫照会（read-only）。チャット層の「在庫ある？」に答えるための部品。
// 副作用なし。在庫の正しさ自体は注文トランザクション側が守る。
type InventoryUsecase struct {
	productRepo repo.ProductRepository
	cache       repo.InventoryStatusCache // nil可
}

func NewInventoryUsecase(productRepo repo.ProductRepository, cache repo.InventoryStatusCache) *InventoryUsecase {
	return &InventoryUsecase{productRepo: productRepo, cache: cache}
}

func (u *InventoryUsecase) Status(ctx context.Context, productID int64) (model.InventoryStatus, error) {
	if productID <= 0 {
		return model.InventoryStatus{}, NewHTTPError(http.StatusBadRequest, "invalid product id")
	}

	//キャッシュヒットならDBに行かない
	if u.cache != nil {
		if st, ok, err := u.cache.GetStatus(ctx, productID); err == nil && ok {
			return st, nil
		}
	}

	p, err := u.productRepo.FindByID(ctx, productID)
	if err == repo.ErrNotFound {
		return model.InventoryStatus{}, NewHTTPError(http.StatusNotFound, "product not found")
	}
	if err != nil {
		return model.InventoryStatus{}, &PersistenceError{Err: err}
	}

	st := model.InventoryStatus{
		ProductID:      p.ID,
		ProductName:    p.Name,
		InventoryCount: p.InventoryCount,
		MinStockLevel:  p.MinStockLevel,
		StockStatus:    model.StockStatusFor(p.InventoryCount, p.MinStockLevel),
	}

	if u.cache != nil {
		//書き込み失敗は無視（次回もDBから読めばいい）
		_ = u.cache.SetStatus(ctx, st)
	}

	return st, nil
}

// WouldGoLowは注文確定前の警告判断用。
// 指定数量を引いたあとLOW_STOCKに落ちるかどうかを返す。
func (u *InventoryUsecase) WouldGoLow(ctx context.Context, productID int64, quantity int64) (bool, error) {
	if quantity < 0 {
		return false, NewHTTPError(http.StatusBadRequest, "invalid quantity")
	}

	p, err := u.productRepo.FindByID(ctx, productID)
	if err == repo.ErrNotFound {
		return false, NewHTTPError(http.StatusNotFound, "product not found")
	}
	if err != nil {
		return false, &PersistenceError{Err: err}
	}

	remaining := p.InventoryCount - quantity
	if remaining < 0 {
		remaining = 0
	}
	return model.StockStatusFor(remaining, p.MinStockLevel) == model.StockStatusLow, nil
}
