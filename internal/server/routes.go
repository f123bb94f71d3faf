package server

import (
	"app/internal/config"
	"app/internal/middleware"

	"github.com/labstack/echo/v4"
)

func RegisterRoutes(e *echo.Echo, cfg config.Config, h Handlers) {
	//公開ルート（チャット層のオーケストレータが叩く）
	h.Auth.RegisterRoutes(e)
	h.Customer.RegisterRoutes(e)
	h.Product.RegisterRoutes(e)
	h.Inventory.RegisterRoutes(e)
	h.Order.RegisterRoutes(e)
	h.BulkOrder.RegisterRoutes(e)

	//管理ルート（JWT + ADMINロール必須）
	admin := e.Group("/admin")
	admin.Use(middleware.AuthJWT(cfg))
	admin.Use(middleware.AdminRoleGuard())

	h.AdminOrder.RegisterRoutes(admin)
	h.AdminProduct.RegisterRoutes(admin)
}
