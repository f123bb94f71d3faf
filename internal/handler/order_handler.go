package handler

import (
	"net/http"
	"strconv"

	"app/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type OrderHandler struct {
	uc *usecase.OrderUsecase
}

func NewOrderHandler(uc *usecase.OrderUsecase) *OrderHandler {
	return &OrderHandler{uc: uc}
}

// チャット層がLLMから抽出した構造化注文をそのまま受ける形
type OrderCreateRequest struct {
	CustomerID          int64                    `json:"customer_id"`
	Items               []OrderCreateItemRequest `json:"items"`
	ShippingAddress     string                   `json:"shipping_address"`
	SpecialInstructions string                   `json:"special_instructions"`
}

type OrderCreateItemRequest struct {
	ProductID int64 `json:"product_id"`
	Quantity  int64 `json:"quantity"`
}

func (h *OrderHandler) RegisterRoutes(e *echo.Echo) {
	e.POST("/orders", h.create)
	e.GET("/orders/:id", h.detail)
	e.GET("/orders/:id/summary", h.summary)
	e.GET("/customers/:id/orders", h.listByCustomer)
}

func (h *OrderHandler) create(c echo.Context) error {
	var req OrderCreateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	//二重送信防止キーはヘッダーから受け取る（なければ採番）
	idemKey := c.Request().Header.Get("X-Idempotency-Key")
	if idemKey == "" {
		idemKey = uuid.NewString()
	}

	items := make([]usecase.PlaceOrderItemInput, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, usecase.PlaceOrderItemInput{ProductID: it.ProductID, Quantity: it.Quantity})
	}

	out, err := h.uc.PlaceOrder(c.Request().Context(), usecase.PlaceOrderInput{
		CustomerID:          req.CustomerID,
		Items:               items,
		ShippingAddress:     req.ShippingAddress,
		SpecialInstructions: req.SpecialInstructions,
		IdempotencyKey:      idemKey,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, out)
}

func (h *OrderHandler) detail(c echo.Context) error {
	orderID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	out, err := h.uc.GetOrderDetail(c.Request().Context(), orderID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *OrderHandler) summary(c echo.Context) error {
	orderID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	out, err := h.uc.GetOrderSummary(c.Request().Context(), orderID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *OrderHandler) listByCustomer(c echo.Context) error {
	customerID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	out, err := h.uc.ListByCustomer(c.Request().Context(), customerID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
