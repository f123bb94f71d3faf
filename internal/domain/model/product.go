package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID             int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	Name           string          `gorm:"type:varchar(100);not null" json:"name"`
	Description    string          `gorm:"type:varchar(500)" json:"description"`
	Price          decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"price"`
	InventoryCount int64           `gorm:"not null;default:0" json:"inventory_count"`
	MinStockLevel  int64           `gorm:"not null;default:5" json:"min_stock_level"`
	CreatedAt      time.Time       `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time       `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
