package handler

import (
	"net/http"
	"strconv"

	"app/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

type AdminProductHandler struct {
	uc *usecase.ProductUsecase
}

func NewAdminProductHandler(uc *usecase.ProductUsecase) *AdminProductHandler {
	return &AdminProductHandler{uc: uc}
}

type AdminProductCreateRequest struct {
	Name           string          `json:"name"`
	Description    string          `json:"description"`
	Price          decimal.Decimal `json:"price"`
	InventoryCount int64           `json:"inventory_count"`
	MinStockLevel  int64           `json:"min_stock_level"`
}

type AdminProductUpdateRequest struct {
	Name          *string          `json:"name"`
	Description   *string          `json:"description"`
	Price         *decimal.Decimal `json:"price"`
	MinStockLevel *int64           `json:"min_stock_level"`
}

type AdminSetStockRequest struct {
	NewStock int64  `json:"new_stock"`
	Reason   string `json:"reason"`
}

func (h *AdminProductHandler) RegisterRoutes(g *echo.Group) {
	g.POST("/products", h.create)
	g.PUT("/products/:id", h.update)
	g.PUT("/inventory/:product_id", h.setStock)
}

func (h *AdminProductHandler) create(c echo.Context) error {
	var req AdminProductCreateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.AdminCreateProduct(c.Request().Context(), getActorFromContext(c), usecase.AdminCreateProductInput{
		Name:           req.Name,
		Description:    req.Description,
		Price:          req.Price,
		InventoryCount: req.InventoryCount,
		MinStockLevel:  req.MinStockLevel,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *AdminProductHandler) update(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	var req AdminProductUpdateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.AdminUpdateProduct(c.Request().Context(), getActorFromContext(c), id, usecase.AdminUpdateProductInput{
		Name:          req.Name,
		Description:   req.Description,
		Price:         req.Price,
		MinStockLevel: req.MinStockLevel,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// 在庫の直接設定（補充・棚卸し）。注文経路の減算とは別の入口
func (h *AdminProductHandler) setStock(c echo.Context) error {
	productID, err := strconv.ParseInt(c.Param("product_id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid product id"})
	}

	var req AdminSetStockRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	if err := h.uc.AdminSetStock(c.Request().Context(), getActorFromContext(c), productID, usecase.AdminSetStockInput{
		NewStock: req.NewStock,
		Reason:   req.Reason,
	}); err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{Message: "stock updated"})
}
