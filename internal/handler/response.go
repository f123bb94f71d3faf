package handler

import (
	"errors"
	"net/http"

	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
	// InsufficientStockのときだけ入る。呼び出し側が二往復せず減量提案を組むため
	Shortfalls []usecase.StockShortfall `json:"shortfalls,omitempty"`
}

type SuccessResponse struct {
	Message string `json:"message"`
}

// usecaseの型付きエラーをHTTPへ写す。
// ユーザー向けの自然言語文はここでは作らない（チャット層の仕事）。
func writeError(c echo.Context, err error) error {
	if err == nil {
		return nil
	}

	var (
		unknownCustomer *usecase.UnknownCustomerError
		unknownProduct  *usecase.UnknownProductError
		invalidItem     *usecase.InvalidItemError
		missingAddress  *usecase.MissingShippingAddressError
		insufficient    *usecase.InsufficientStockError
		persistence     *usecase.PersistenceError
	)

	switch {
	case errors.As(err, &unknownCustomer):
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: unknownCustomer.Error(), Code: "unknown_customer"})
	case errors.As(err, &unknownProduct):
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: unknownProduct.Error(), Code: "unknown_product"})
	case errors.As(err, &invalidItem):
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: invalidItem.Error(), Code: "invalid_item"})
	case errors.As(err, &missingAddress):
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: missingAddress.Error(), Code: "missing_shipping_address"})
	case errors.As(err, &insufficient):
		return c.JSON(http.StatusConflict, ErrorResponse{
			Error:      insufficient.Error(),
			Code:       "insufficient_stock",
			Shortfalls: insufficient.Shortfalls,
		})
	case errors.Is(err, usecase.ErrInvalidCredentials):
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "invalid credentials"})
	case errors.As(err, &persistence):
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error", Code: "persistence_failure"})
	}

	if he, ok := usecase.AsHTTPError(err); ok {
		return c.JSON(he.Status, ErrorResponse{Error: he.Message})
	}

	//500
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
}
