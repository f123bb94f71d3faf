package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// UnitPriceは注文確定時の商品価格スナップショット。
// 以後の価格変更の影響を受けない。
type OrderItem struct {
	ID                  int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID             int64           `gorm:"not null;index" json:"order_id"`
	ProductID           int64           `gorm:"not null;index" json:"product_id"`
	ProductNameSnapshot string          `gorm:"type:varchar(100);not null" json:"product_name_snapshot"`
	Quantity            int64           `gorm:"not null" json:"quantity"`
	UnitPrice           decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"unit_price"`
	CreatedAt           time.Time       `gorm:"not null;autoCreateTime" json:"created_at"`
}
