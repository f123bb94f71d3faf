package repository

import (
	"app/internal/domain/model"
	"context"
)

// 顧客の保存・取得を約束
type CustomerRepository interface {
	//初回登録で作成
	Create(ctx context.Context, c model.Customer) (model.Customer, error)
	FindByID(ctx context.Context, customerID int64) (model.Customer, error)
	FindByEmail(ctx context.Context, email string) (model.Customer, error)
	// 連絡先フィールドの更新（identityは不変）
	Update(ctx context.Context, c model.Customer) error
}
