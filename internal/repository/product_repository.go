package repository

import (
	"app/internal/domain/model"
	"context"
	"errors"
)

var ErrNotFound = errors.New("not found")

// 一覧検索
type ProductListQuery struct {
	Page  int
	Limit int
	Q     string
}

// 商品の永続化（保存・取得）だけを約束。
type ProductRepository interface {
	List(ctx context.Context, q ProductListQuery) ([]model.Product, int64, error)
	FindByID(ctx context.Context, id int64) (model.Product, error)

	// 複数IDをまとめて取得（存在しないIDは結果に含めない）
	FindByIDs(ctx context.Context, ids []int64) ([]model.Product, error)

	Create(ctx context.Context, p model.Product) (model.Product, error)
	Update(ctx context.Context, p model.Product) error
}
