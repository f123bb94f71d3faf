package model

type StockStatus string

const (
	StockStatusLow      StockStatus = "LOW_STOCK"
	StockStatusModerate StockStatus = "MODERATE_STOCK"
	StockStatusGood     StockStatus = "GOOD_STOCK"
)

// InventoryStatusは在庫照会の読み取り専用ビュー
type InventoryStatus struct {
	ProductID      int64       `json:"product_id"`
	ProductName    string      `json:"product_name"`
	InventoryCount int64       `json:"inventory_count"`
	MinStockLevel  int64       `json:"min_stock_level"`
	StockStatus    StockStatus `json:"stock_status"`
}

// StockStatusForはmin_stock_levelに対する現在庫の区分。
// min_stock_levelは発注目安であって注文拒否の閾値ではない。
func StockStatusFor(inventoryCount, minStockLevel int64) StockStatus {
	switch {
	case inventoryCount <= minStockLevel:
		return StockStatusLow
	case inventoryCount <= 2*minStockLevel:
		return StockStatusModerate
	default:
		return StockStatusGood
	}
}
