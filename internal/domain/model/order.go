package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusConfirmed  OrderStatus = "confirmed"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// IsValidOrderStatusは6値のどれかを確認
func IsValidOrderStatus(s string) bool {
	switch OrderStatus(s) {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusConfirmed,
		OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

type Order struct {
	ID                  int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	CustomerID          int64           `gorm:"not null;index" json:"customer_id"`
	ShippingAddress     string          `gorm:"type:varchar(255);not null" json:"shipping_address"`
	TotalAmount         decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"total_amount"`
	Status              OrderStatus     `gorm:"type:varchar(20);not null;index" json:"status"`
	SpecialInstructions string          `gorm:"type:varchar(500)" json:"special_instructions"`
	// キーなし（空文字）の注文は重複チェック対象外
	IdempotencyKey      string          `gorm:"type:varchar(255);index:idx_orders_idempotency_key,unique,where:idempotency_key <> ''" json:"-"`
	CreatedAt           time.Time       `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt           time.Time       `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
