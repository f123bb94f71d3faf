package usecase

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"github.com/shopspring/decimal"
)

type ProductUsecase struct {
	productRepo repo.ProductRepository
	tx          repo.TransactionManager
	cache       repo.InventoryStatusCache // nil可
}

func NewProductUsecase(productRepo repo.ProductRepository, tx repo.TransactionManager, cache repo.InventoryStatusCache) *ProductUsecase {
	return &ProductUsecase{productRepo: productRepo, tx: tx, cache: cache}
}

type ListProductsInput struct {
	Page  int
	Limit int
	Q     string
}

type ProductListOutput struct {
	Items []model.Product `json:"items"`
	Total int64           `json:"total"`
}

func (u *ProductUsecase) List(ctx context.Context, in ListProductsInput) (ProductListOutput, error) {
	if in.Page < 0 || in.Limit < 0 {
		return ProductListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid paging")
	}

	items, total, err := u.productRepo.List(ctx, repo.ProductListQuery{
		Page:  in.Page,
		Limit: in.Limit,
		Q:     strings.TrimSpace(in.Q),
	})
	if err != nil {
		return ProductListOutput{}, &PersistenceError{Err: err}
	}
	return ProductListOutput{Items: items, Total: total}, nil
}

func (u *ProductUsecase) Get(ctx context.Context, productID int64) (model.Product, error) {
	if productID <= 0 {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	p, err := u.productRepo.FindByID(ctx, productID)
	if err == repo.ErrNotFound {
		return model.Product{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return model.Product{}, &PersistenceError{Err: err}
	}
	return p, nil
}

type AdminCreateProductInput struct {
	Name           string
	Description    string
	Price          decimal.Decimal
	InventoryCount int64
	MinStockLevel  int64
}

func (u *ProductUsecase) AdminCreateProduct(ctx context.Context, actor string, in AdminCreateProductInput) (model.Product, error) {
	if strings.TrimSpace(actor) == "" {
		return model.Product{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	name := strings.TrimSpace(in.Name)
	if name == "" || len(name) > 100 {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "invalid name")
	}
	if in.Price.IsNegative() {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "price must be >= 0")
	}
	if in.InventoryCount < 0 {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "inventory_count must be >= 0")
	}
	if in.MinStockLevel < 0 {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "min_stock_level must be >= 0")
	}

	var created model.Product
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		now := time.Now()
		p, err := r.Products().Create(ctx, model.Product{
			Name:           name,
			Description:    strings.TrimSpace(in.Description),
			Price:          in.Price,
			InventoryCount: in.InventoryCount,
			MinStockLevel:  in.MinStockLevel,
			CreatedAt:      now,
			UpdatedAt:      now,
		})
		if err != nil {
			return &PersistenceError{Err: err}
		}

		if err := r.AuditLogs().Create(ctx, model.AuditLog{
			Actor:      actor,
			Action:     "product.create",
			TargetType: "product",
			TargetID:   p.ID,
			Detail:     fmt.Sprintf("name=%s price=%s stock=%d", p.Name, p.Price.String(), p.InventoryCount),
			CreatedAt:  now,
		}); err != nil {
			return &PersistenceError{Err: err}
		}

		created = p
		return nil
	})
	if err != nil {
		return model.Product{}, err
	}
	return created, nil
}

type AdminUpdateProductInput struct {
	Name          *string
	Description   *string
	Price         *decimal.Decimal
	MinStockLevel *int64
}

// 価格変更は既存注文のunit_priceに影響しない（明細側にスナップショット済み）
func (u *ProductUsecase) AdminUpdateProduct(ctx context.Context, actor string, productID int64, in AdminUpdateProductInput) (model.Product, error) {
	if strings.TrimSpace(actor) == "" {
		return model.Product{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if productID <= 0 {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var updated model.Product
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		p, err := r.Products().FindByID(ctx, productID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if err != nil {
			return &PersistenceError{Err: err}
		}

		if in.Name != nil {
			name := strings.TrimSpace(*in.Name)
			if name == "" || len(name) > 100 {
				return NewHTTPError(http.StatusBadRequest, "invalid name")
			}
			p.Name = name
		}
		if in.Description != nil {
			p.Description = strings.TrimSpace(*in.Description)
		}
		if in.Price != nil {
			if in.Price.IsNegative() {
				return NewHTTPError(http.StatusBadRequest, "price must be >= 0")
			}
			p.Price = *in.Price
		}
		if in.MinStockLevel != nil {
			if *in.MinStockLevel < 0 {
				return NewHTTPError(http.StatusBadRequest, "min_stock_level must be >= 0")
			}
			p.MinStockLevel = *in.MinStockLevel
		}

		p.UpdatedAt = time.Now()
		if err := r.Products().Update(ctx, p); err != nil {
			return &PersistenceError{Err: err}
		}

		if err := r.AuditLogs().Create(ctx, model.AuditLog{
			Actor:      actor,
			Action:     "product.update",
			TargetType: "product",
			TargetID:   p.ID,
			Detail:     fmt.Sprintf("price=%s min_stock=%d", p.Price.String(), p.MinStockLevel),
			CreatedAt:  p.UpdatedAt,
		}); err != nil {
			return &PersistenceError{Err: err}
		}

		updated = p
		return nil
	})
	if err != nil {
		return model.Product{}, err
	}

	if u.cache != nil {
		_ = u.cache.Invalidate(ctx, productID)
	}
	return updated, nil
}

type AdminSetStockInput struct {
	NewStock int64
	Reason   string
}

// AdminSetStockは外部の補充プロセスの入口。
// 在庫設定と調整履歴と監査ログを同一トランザクションで書く
func (u *ProductUsecase) AdminSetStock(ctx context.Context, actor string, productID int64, in AdminSetStockInput) error {
	if strings.TrimSpace(actor) == "" {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if productID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if in.NewStock < 0 {
		return NewHTTPError(http.StatusBadRequest, "stock must be >= 0")
	}
	reason := strings.TrimSpace(in.Reason)
	if reason == "" {
		return NewHTTPError(http.StatusBadRequest, "reason is required")
	}

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		p, err := r.Products().FindByID(ctx, productID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if err != nil {
			return &PersistenceError{Err: err}
		}

		if err := r.Inventory().SetStock(ctx, productID, in.NewStock); err != nil {
			return &PersistenceError{Err: err}
		}

		now := time.Now()
		if err := r.Inventory().CreateAdjustment(ctx, model.InventoryAdjustment{
			ProductID: productID,
			Actor:     actor,
			Delta:     in.NewStock - p.InventoryCount,
			Reason:    reason,
			CreatedAt: now,
		}); err != nil {
			return &PersistenceError{Err: err}
		}

		if err := r.AuditLogs().Create(ctx, model.AuditLog{
			Actor:      actor,
			Action:     "inventory.set",
			TargetType: "product",
			TargetID:   productID,
			Detail:     fmt.Sprintf("stock %d -> %d (%s)", p.InventoryCount, in.NewStock, reason),
			CreatedAt:  now,
		}); err != nil {
			return &PersistenceError{Err: err}
		}

		return nil
	})
	if err != nil {
		return err
	}

	if u.cache != nil {
		_ = u.cache.Invalidate(ctx, productID)
	}
	return nil
}
