package server

import (
	"app/internal/config"
	"app/internal/handler"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

// ルート登録に必要なhandler一式
type Handlers struct {
	Auth         *handler.AuthHandler
	Customer     *handler.CustomerHandler
	Product      *handler.ProductHandler
	Inventory    *handler.InventoryHandler
	Order        *handler.OrderHandler
	BulkOrder    *handler.BulkOrderHandler
	AdminOrder   *handler.AdminOrderHandler
	AdminProduct *handler.AdminProductHandler
}

// echoを組み立てて返す（起動はmain側）
func New(cfg config.Config, h Handlers) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	e.Use(echomw.Recover())
	e.Use(echomw.Logger())

	RegisterRoutes(e, cfg, h)
	return e
}

func Start(e *echo.Echo, addr string) error {
	return e.Start(addr)
}
