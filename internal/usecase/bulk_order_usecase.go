package usecase

import (
	"context"
	"fmt"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"github.com/shopspring/decimal"
)

// 大口注文の事前検証と分割提案。
// ここは読み取り専用：実際の確定は必ずOrderUsecase.PlaceOrderを通す。
// 入庫待ち分を注文行として書くことはしない（在庫簿記が狂うため）。
type BulkOrderUsecase struct {
	tx      repo.TransactionManager
	orderUC *OrderUsecase
}

func NewBulkOrderUsecase(tx repo.TransactionManager, orderUC *OrderUsecase) *BulkOrderUsecase {
	return &BulkOrderUsecase{tx: tx, orderUC: orderUC}
}

type BulkOrderItemInput struct {
	ProductID int64 `json:"product_id"`
	Quantity  int64 `json:"quantity"`
}

// 1エントリ分の検証結果
type BulkItemValidation struct {
	ProductID     int64           `json:"product_id"`
	ProductName   string          `json:"product_name"`
	Requested     int64           `json:"requested"`
	Available     int64           `json:"available"`
	MinStockLevel int64           `json:"min_stock_level"`
	CurrentPrice  decimal.Decimal `json:"current_price"`
	OK            bool            `json:"ok"`
	// min_stock_levelは発注目安。下回っても注文は拒否せず警告だけ出す
	LowStockWarning bool   `json:"low_stock_warning"`
	Message         string `json:"message"`
}

// Validateは複数商品の在庫をまとめて検証する
func (u *BulkOrderUsecase) Validate(ctx context.Context, items []BulkOrderItemInput) ([]BulkItemValidation, error) {
	if len(items) == 0 {
		return nil, &InvalidItemError{Index: 0, Reason: "empty item list"}
	}
	for i, it := range items {
		if it.ProductID <= 0 || it.Quantity <= 0 {
			return nil, &InvalidItemError{Index: i, Reason: "product_id and quantity must be positive"}
		}
	}

	var results []BulkItemValidation

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		//同一商品の重複行は合計で判定する
		required := make(map[int64]int64, len(items))
		for _, it := range items {
			required[it.ProductID] += it.Quantity
		}

		results = make([]BulkItemValidation, 0, len(items))
		for _, it := range items {
			p, err := r.Products().FindByID(ctx, it.ProductID)
			if err == repo.ErrNotFound {
				results = append(results, BulkItemValidation{
					ProductID: it.ProductID,
					Requested: it.Quantity,
					Message:   "product not found",
				})
				continue
			}
			if err != nil {
				return &PersistenceError{Err: err}
			}

			v := BulkItemValidation{
				ProductID:     p.ID,
				ProductName:   p.Name,
				Requested:     it.Quantity,
				Available:     p.InventoryCount,
				MinStockLevel: p.MinStockLevel,
				CurrentPrice:  p.Price,
			}

			need := required[p.ID]
			if p.InventoryCount < need {
				v.Message = fmt.Sprintf("only %d available", p.InventoryCount)
			} else {
				v.OK = true
				v.Message = "available"
				remaining := p.InventoryCount - need
				if model.StockStatusFor(remaining, p.MinStockLevel) == model.StockStatusLow {
					v.LowStockWarning = true
					v.Message = fmt.Sprintf("available, but stock would drop to %d (min %d)", remaining, p.MinStockLevel)
				}
			}
			results = append(results, v)
		}
		return nil
	})

	if err != nil {
		return nil, asPlacementError(err)
	}
	return results, nil
}

// 分割提案。確定はしない
type BulkSplitPlan struct {
	Available []BulkOrderItemInput `json:"available"`
	Backorder []BulkOrderItemInput `json:"backorder"`
}

// PlanSplitは現在庫で出せる分と入庫待ち分に分ける提案を返す。
// 提案時点のスナップショットなので、確定時に再び在庫チェックされる。
func (u *BulkOrderUsecase) PlanSplit(ctx context.Context, items []BulkOrderItemInput) (BulkSplitPlan, error) {
	validations, err := u.Validate(ctx, items)
	if err != nil {
		return BulkSplitPlan{}, err
	}

	plan := BulkSplitPlan{
		Available: []BulkOrderItemInput{},
		Backorder: []BulkOrderItemInput{},
	}

	//入力順を保ったまま割り振る。残量は消費しながら配る
	remaining := make(map[int64]int64, len(validations))
	seen := make(map[int64]bool, len(validations))
	for _, v := range validations {
		if !seen[v.ProductID] {
			remaining[v.ProductID] = v.Available
			seen[v.ProductID] = true
		}
	}

	for _, it := range items {
		avail := remaining[it.ProductID]
		switch {
		case avail >= it.Quantity:
			plan.Available = append(plan.Available, it)
			remaining[it.ProductID] = avail - it.Quantity
		case avail > 0:
			plan.Available = append(plan.Available, BulkOrderItemInput{ProductID: it.ProductID, Quantity: avail})
			plan.Backorder = append(plan.Backorder, BulkOrderItemInput{ProductID: it.ProductID, Quantity: it.Quantity - avail})
			remaining[it.ProductID] = 0
		default:
			plan.Backorder = append(plan.Backorder, it)
		}
	}

	return plan, nil
}

type PlaceSplitOutput struct {
	Order     *OrderOutput         `json:"order,omitempty"`
	Backorder []BulkOrderItemInput `json:"backorder"`
}

// PlaceAvailableは出せる分だけ通常の注文トランザクションで確定し、
// 入庫待ち分は提案として返す（呼び出し側が再注文を案内する）。
func (u *BulkOrderUsecase) PlaceAvailable(ctx context.Context, customerID int64, items []BulkOrderItemInput, shippingAddress string, instructions string, idempotencyKey string) (PlaceSplitOutput, error) {
	plan, err := u.PlanSplit(ctx, items)
	if err != nil {
		return PlaceSplitOutput{}, err
	}

	out := PlaceSplitOutput{Backorder: plan.Backorder}
	if len(plan.Available) == 0 {
		return out, nil
	}

	orderItems := make([]PlaceOrderItemInput, 0, len(plan.Available))
	for _, it := range plan.Available {
		orderItems = append(orderItems, PlaceOrderItemInput{ProductID: it.ProductID, Quantity: it.Quantity})
	}

	placed, err := u.orderUC.PlaceOrder(ctx, PlaceOrderInput{
		CustomerID:          customerID,
		Items:               orderItems,
		ShippingAddress:     shippingAddress,
		SpecialInstructions: instructions,
		IdempotencyKey:      idempotencyKey,
	})
	if err != nil {
		return PlaceSplitOutput{}, err
	}

	out.Order = &placed
	return out, nil
}
