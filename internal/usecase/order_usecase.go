package usecase

import (
	"context"
	"net/http"
	"strings"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"github.com/shopspring/decimal"
)

type OrderUsecase struct {
	tx    repo.TransactionManager
	cache repo.InventoryStatusCache // nil可（キャッシュなし運用）
}

func NewOrderUsecase(tx repo.TransactionManager, cache repo.InventoryStatusCache) *OrderUsecase {
	return &OrderUsecase{tx: tx, cache: cache}
}

// チャット層がLLMから抽出した構造化注文。
// このusecaseはLLMにも自然言語にも依存しない。
type PlaceOrderItemInput struct {
	ProductID int64
	Quantity  int64
}

type PlaceOrderInput struct {
	CustomerID          int64
	Items               []PlaceOrderItemInput
	ShippingAddress     string // 空なら顧客のdefault_shipping_addressを使う
	SpecialInstructions string
	IdempotencyKey      string // 空なら二重送信チェックなし
}

type OrderItemOutput struct {
	ProductID int64           `json:"product_id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int64           `json:"quantity"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

type OrderOutput struct {
	ID                  int64             `json:"id"`
	CustomerID          int64             `json:"customer_id"`
	Status              string            `json:"status"`
	ShippingAddress     string            `json:"shipping_address"`
	SpecialInstructions string            `json:"special_instructions,omitempty"`
	TotalAmount         decimal.Decimal   `json:"total_amount"`
	CreatedAt           time.Time         `json:"created_at"`
	Items               []OrderItemOutput `json:"items"`
}

// PlaceOrderは注文確定トランザクション。
// 検証→在庫減算→注文＋明細作成を1トランザクションで行い、
// 途中で失敗したら何も残さない（部分的な減算は観測されない）。
func (u *OrderUsecase) PlaceOrder(ctx context.Context, in PlaceOrderInput) (OrderOutput, error) {
	if in.CustomerID <= 0 {
		return OrderOutput{}, &UnknownCustomerError{CustomerID: in.CustomerID}
	}

	//明細の形チェック（空注文・非正数量はDBに触る前に弾く）
	if len(in.Items) == 0 {
		return OrderOutput{}, &InvalidItemError{Index: 0, Reason: "empty item list"}
	}
	for i, it := range in.Items {
		if it.ProductID <= 0 {
			return OrderOutput{}, &InvalidItemError{Index: i, Reason: "product_id must be positive"}
		}
		if it.Quantity <= 0 {
			return OrderOutput{}, &InvalidItemError{Index: i, Reason: "quantity must be positive"}
		}
	}

	key := strings.TrimSpace(in.IdempotencyKey)

	var out OrderOutput
	var touched []int64

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		//顧客解決
		customer, err := r.Customers().FindByID(ctx, in.CustomerID)
		if err == repo.ErrNotFound {
			return &UnknownCustomerError{CustomerID: in.CustomerID}
		}
		if err != nil {
			return &PersistenceError{Err: err}
		}

		//配送先：指定がなければ顧客のデフォルト。両方空なら失敗
		address := strings.TrimSpace(in.ShippingAddress)
		if address == "" {
			address = strings.TrimSpace(customer.DefaultShippingAddress)
		}
		if address == "" {
			return &MissingShippingAddressError{CustomerID: in.CustomerID}
		}

		// 同じキーなら同じ結果
		if key != "" {
			existing, found, err := r.Orders().FindByIdempotencyKey(ctx, in.CustomerID, key)
			if err != nil {
				return &PersistenceError{Err: err}
			}
			if found {
				items, err := r.OrderItems().ListByOrderID(ctx, existing.ID)
				if err != nil {
					return &PersistenceError{Err: err}
				}
				out = toOrderOutput(existing, items)
				return nil
			}
		}

		//商品を一括解決（1つでも未知なら全体を中止）
		distinctIDs := make([]int64, 0, len(in.Items))
		required := make(map[int64]int64, len(in.Items))
		for _, it := range in.Items {
			if _, ok := required[it.ProductID]; !ok {
				distinctIDs = append(distinctIDs, it.ProductID)
			}
			//同一商品の重複行は合計して在庫チェックする
			required[it.ProductID] += it.Quantity
		}

		products, err := r.Products().FindByIDs(ctx, distinctIDs)
		if err != nil {
			return &PersistenceError{Err: err}
		}
		byID := make(map[int64]model.Product, len(products))
		for _, p := range products {
			byID[p.ID] = p
		}
		for _, id := range distinctIDs {
			if _, ok := byID[id]; !ok {
				return &UnknownProductError{ProductID: id}
			}
		}

		//在庫チェック：不足は全部まとめて報告する（1件ずつではない）
		var shortfalls []StockShortfall
		for _, id := range distinctIDs {
			p := byID[id]
			if p.InventoryCount < required[id] {
				shortfalls = append(shortfalls, StockShortfall{
					ProductID:   p.ID,
					ProductName: p.Name,
					Requested:   required[id],
					Available:   p.InventoryCount,
				})
			}
		}
		if len(shortfalls) > 0 {
			return &InsufficientStockError{Shortfalls: shortfalls}
		}

		//在庫減算（条件付きUPDATE）。同時注文に負けたら不足として返してrollback
		for _, id := range distinctIDs {
			ok, err := r.Inventory().DecreaseStockIfEnough(ctx, id, required[id])
			if err != nil {
				return &PersistenceError{Err: err}
			}
			if !ok {
				fresh, err := r.Products().FindByID(ctx, id)
				available := int64(0)
				name := byID[id].Name
				if err == nil {
					available = fresh.InventoryCount
					name = fresh.Name
				}
				return &InsufficientStockError{Shortfalls: []StockShortfall{{
					ProductID:   id,
					ProductName: name,
					Requested:   required[id],
					Available:   available,
				}}}
			}
		}

		//明細作成（入力順を保つ）。単価はこの時点の商品価格で凍結
		now := time.Now()
		total := decimal.Zero
		orderItems := make([]model.OrderItem, 0, len(in.Items))
		for _, it := range in.Items {
			p := byID[it.ProductID]
			orderItems = append(orderItems, model.OrderItem{
				ProductID:           p.ID,
				ProductNameSnapshot: p.Name,
				Quantity:            it.Quantity,
				UnitPrice:           p.Price,
				CreatedAt:           now,
			})
			total = total.Add(p.Price.Mul(decimal.NewFromInt(it.Quantity)))
		}

		orderID, err := r.Orders().Create(ctx, model.Order{
			CustomerID:          in.CustomerID,
			ShippingAddress:     address,
			TotalAmount:         total,
			Status:              model.OrderStatusPending,
			SpecialInstructions: in.SpecialInstructions,
			IdempotencyKey:      key,
			CreatedAt:           now,
			UpdatedAt:           now,
		})
		if err != nil {
			//競合（同時に同じキーが入った等）はもう一回検索して同じ結果を返す
			if key != "" {
				ex2, found2, err2 := r.Orders().FindByIdempotencyKey(ctx, in.CustomerID, key)
				if err2 == nil && found2 {
					items2, err3 := r.OrderItems().ListByOrderID(ctx, ex2.ID)
					if err3 != nil {
						return &PersistenceError{Err: err3}
					}
					out = toOrderOutput(ex2, items2)
					return nil
				}
			}
			return &PersistenceError{Err: err}
		}

		if err := r.OrderItems().CreateBulk(ctx, orderID, orderItems); err != nil {
			return &PersistenceError{Err: err}
		}

		created := model.Order{
			ID:                  orderID,
			CustomerID:          in.CustomerID,
			ShippingAddress:     address,
			TotalAmount:         total,
			Status:              model.OrderStatusPending,
			SpecialInstructions: in.SpecialInstructions,
			CreatedAt:           now,
		}
		out = toOrderOutput(created, orderItems)
		touched = distinctIDs
		return nil
	})

	if err != nil {
		return OrderOutput{}, asPlacementError(err)
	}

	//コミット後にキャッシュを消す（失敗してもTTLで収束する）
	if u.cache != nil && len(touched) > 0 {
		_ = u.cache.Invalidate(ctx, touched...)
	}

	return out, nil
}

func (u *OrderUsecase) ListByCustomer(ctx context.Context, customerID int64) ([]OrderOutput, error) {
	if customerID <= 0 {
		return []OrderOutput{}, &UnknownCustomerError{CustomerID: customerID}
	}

	var outs []OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		if _, err := r.Customers().FindByID(ctx, customerID); err != nil {
			if err == repo.ErrNotFound {
				return &UnknownCustomerError{CustomerID: customerID}
			}
			return &PersistenceError{Err: err}
		}

		orders, _, err := r.Orders().ListByCustomerID(ctx, customerID, 1, 50)
		if err != nil {
			return &PersistenceError{Err: err}
		}

		outs = make([]OrderOutput, 0, len(orders))
		for _, o := range orders {
			items, err := r.OrderItems().ListByOrderID(ctx, o.ID)
			if err != nil {
				return &PersistenceError{Err: err}
			}
			outs = append(outs, toOrderOutput(o, items))
		}
		return nil
	})

	if err != nil {
		return []OrderOutput{}, asPlacementError(err)
	}
	return outs, nil
}

func (u *OrderUsecase) GetOrderDetail(ctx context.Context, orderID int64) (OrderOutput, error) {
	if orderID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var out OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if err != nil {
			return &PersistenceError{Err: err}
		}

		items, err := r.OrderItems().ListByOrderID(ctx, orderID)
		if err != nil {
			return &PersistenceError{Err: err}
		}

		out = toOrderOutput(o, items)
		return nil
	})

	if err != nil {
		return OrderOutput{}, err
	}
	return out, nil
}

// OrderSummaryOutputは注文＋顧客＋明細のread-sideビュー（レポート/チャット照会用）
type OrderSummaryOutput struct {
	OrderOutput
	CustomerName  string  `json:"customer_name"`
	CustomerEmail *string `json:"customer_email,omitempty"`
}

func (u *OrderUsecase) GetOrderSummary(ctx context.Context, orderID int64) (OrderSummaryOutput, error) {
	if orderID <= 0 {
		return OrderSummaryOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var out OrderSummaryOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if err != nil {
			return &PersistenceError{Err: err}
		}

		customer, err := r.Customers().FindByID(ctx, o.CustomerID)
		if err != nil && err != repo.ErrNotFound {
			return &PersistenceError{Err: err}
		}

		items, err := r.OrderItems().ListByOrderID(ctx, orderID)
		if err != nil {
			return &PersistenceError{Err: err}
		}

		out = OrderSummaryOutput{
			OrderOutput:   toOrderOutput(o, items),
			CustomerName:  customer.Name,
			CustomerEmail: customer.Email,
		}
		return nil
	})

	if err != nil {
		return OrderSummaryOutput{}, err
	}
	return out, nil
}

func toOrderOutput(o model.Order, items []model.OrderItem) OrderOutput {
	outItems := make([]OrderItemOutput, 0, len(items))
	for _, it := range items {
		outItems = append(outItems, OrderItemOutput{
			ProductID: it.ProductID,
			Name:      it.ProductNameSnapshot,
			UnitPrice: it.UnitPrice,
			Quantity:  it.Quantity,
			Subtotal:  it.UnitPrice.Mul(decimal.NewFromInt(it.Quantity)),
		})
	}

	return OrderOutput{
		ID:                  o.ID,
		CustomerID:          o.CustomerID,
		Status:              string(o.Status),
		ShippingAddress:     o.ShippingAddress,
		SpecialInstructions: o.SpecialInstructions,
		TotalAmount:         o.TotalAmount,
		CreatedAt:           o.CreatedAt,
		Items:               outItems,
	}
}
