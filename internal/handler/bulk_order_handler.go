package handler

import (
	"net/http"

	"app/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type BulkOrderHandler struct {
	uc *usecase.BulkOrderUsecase
}

func NewBulkOrderHandler(uc *usecase.BulkOrderUsecase) *BulkOrderHandler {
	return &BulkOrderHandler{uc: uc}
}

type BulkValidateRequest struct {
	Items []usecase.BulkOrderItemInput `json:"items"`
}

type BulkPlaceRequest struct {
	CustomerID          int64                        `json:"customer_id"`
	Items               []usecase.BulkOrderItemInput `json:"items"`
	ShippingAddress     string                       `json:"shipping_address"`
	SpecialInstructions string                       `json:"special_instructions"`
}

func (h *BulkOrderHandler) RegisterRoutes(e *echo.Echo) {
	e.POST("/orders/bulk/validate", h.validate)
	e.POST("/orders/bulk/split", h.split)
	e.POST("/orders/bulk", h.placeAvailable)
}

func (h *BulkOrderHandler) validate(c echo.Context) error {
	var req BulkValidateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.Validate(c.Request().Context(), req.Items)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *BulkOrderHandler) split(c echo.Context) error {
	var req BulkValidateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.PlanSplit(c.Request().Context(), req.Items)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *BulkOrderHandler) placeAvailable(c echo.Context) error {
	var req BulkPlaceRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	idemKey := c.Request().Header.Get("X-Idempotency-Key")
	if idemKey == "" {
		idemKey = uuid.NewString()
	}

	out, err := h.uc.PlaceAvailable(
		c.Request().Context(),
		req.CustomerID,
		req.Items,
		req.ShippingAddress,
		req.SpecialInstructions,
		idemKey,
	)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
