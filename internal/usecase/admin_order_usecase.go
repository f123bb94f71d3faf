package usecase

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

// 注文のその後（下流のフルフィルメント）を動かす管理側usecase。
// statusとupdated_at以外、注文は作成後に変更しない。
type AdminOrderUsecase struct {
	tx    repo.TransactionManager
	cache repo.InventoryStatusCache // nil可
}

func NewAdminOrderUsecase(tx repo.TransactionManager, cache repo.InventoryStatusCache) *AdminOrderUsecase {
	return &AdminOrderUsecase{tx: tx, cache: cache}
}

// 許可される遷移。delivered/cancelledは終端
var allowedTransitions = map[model.OrderStatus][]model.OrderStatus{
	model.OrderStatusPending:    {model.OrderStatusProcessing, model.OrderStatusConfirmed, model.OrderStatusCancelled},
	model.OrderStatusProcessing: {model.OrderStatusConfirmed, model.OrderStatusShipped, model.OrderStatusCancelled},
	model.OrderStatusConfirmed:  {model.OrderStatusShipped, model.OrderStatusCancelled},
	model.OrderStatusShipped:    {model.OrderStatusDelivered},
}

func canTransition(from, to model.OrderStatus) bool {
	for _, s := range allowedTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// 注文一覧
func (u *AdminOrderUsecase) List(ctx context.Context, f repo.AdminOrderListFilter) ([]OrderOutput, error) {
	// page/limitの最低限チェック
	if f.Page < 1 {
		return []OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid page")
	}
	if f.Limit < 1 || f.Limit > 100 {
		return []OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid limit")
	}
	if f.Status != "" && !model.IsValidOrderStatus(f.Status) {
		return []OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid status")
	}

	var outs []OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		orders, _, err := r.Orders().ListAdmin(ctx, f)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		outs = make([]OrderOutput, 0, len(orders))
		for _, o := range orders {
			items, err := r.OrderItems().ListByOrderID(ctx, o.ID)
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			outs = append(outs, toOrderOutput(o, items))
		}
		return nil
	})

	if err != nil {
		return []OrderOutput{}, err
	}
	return outs, nil
}

type AdminUpdateOrderStatusInput struct {
	Status string
}

// ステータス更新（cancelledなら在庫戻し）
func (u *AdminOrderUsecase) UpdateStatus(ctx context.Context, actor string, orderID int64, in AdminUpdateOrderStatusInput) error {
	if strings.TrimSpace(actor) == "" {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if orderID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	newStatus := model.OrderStatus(strings.TrimSpace(in.Status))
	if !model.IsValidOrderStatus(string(newStatus)) {
		return NewHTTPError(http.StatusBadRequest, "invalid status")
	}

	var restored []int64

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		// 注文取得
		o, err := r.Orders().FindByID(ctx, orderID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		// すでに同じなら何もしない（200）
		if o.Status == newStatus {
			return nil
		}
		if !canTransition(o.Status, newStatus) {
			return NewHTTPError(http.StatusBadRequest, fmt.Sprintf("cannot change %s order to %s", o.Status, newStatus))
		}

		// キャンセルは未出荷分の在庫を戻す（注文作成時の減算と対になる）
		if newStatus == model.OrderStatusCancelled {
			items, err := r.OrderItems().ListByOrderID(ctx, orderID)
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}

			for _, it := range items {
				if err := r.Inventory().IncreaseStock(ctx, it.ProductID, it.Quantity); err != nil {
					return NewHTTPError(http.StatusInternalServerError, "db error")
				}
				restored = append(restored, it.ProductID)
			}
		}

		// ステータス更新（updated_atも同一トランザクションで書く）
		now := time.Now()
		if err := r.Orders().UpdateStatus(ctx, orderID, newStatus, now); err != nil {
			if err == repo.ErrNotFound {
				return NewHTTPError(http.StatusNotFound, "not found")
			}
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		if err := r.AuditLogs().Create(ctx, model.AuditLog{
			Actor:      actor,
			Action:     "order.status",
			TargetType: "order",
			TargetID:   orderID,
			Detail:     fmt.Sprintf("%s -> %s", o.Status, newStatus),
			CreatedAt:  now,
		}); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		return nil
	})

	if err != nil {
		return err
	}

	if u.cache != nil && len(restored) > 0 {
		_ = u.cache.Invalidate(ctx, restored...)
	}
	return nil
}
