package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"app/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func callWriteError(t *testing.T, err error) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	assert.NoError(t, writeError(c, err))
	return rec
}

func TestWriteError_UnknownCustomer(t *testing.T) {
	rec := callWriteError(t, &usecase.UnknownCustomerError{CustomerID: 42})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	var body ErrorResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "unknown_customer", body.Code)
}

func TestWriteError_InvalidItem(t *testing.T) {
	rec := callWriteError(t, &usecase.InvalidItemError{Index: 1, Reason: "quantity must be positive"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestWriteError_MissingShippingAddress(t *testing.T) {
	rec := callWriteError(t, &usecase.MissingShippingAddressError{CustomerID: 1})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestWriteError_InsufficientStock_CarriesShortfalls(t *testing.T) {
	rec := callWriteError(t, &usecase.InsufficientStockError{Shortfalls: []usecase.StockShortfall{
		{ProductID: 7, ProductName: "Widget", Requested: 5, Available: 2},
		{ProductID: 8, ProductName: "Gadget", Requested: 1, Available: 0},
	}})
	assert.Equal(t, http.StatusConflict, rec.Code)

	var body ErrorResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "insufficient_stock", body.Code)
	if assert.Equal(t, 2, len(body.Shortfalls)) {
		assert.Equal(t, int64(7), body.Shortfalls[0].ProductID)
		assert.Equal(t, int64(2), body.Shortfalls[0].Available)
	}
}

func TestWriteError_InvalidCredentials(t *testing.T) {
	rec := callWriteError(t, usecase.ErrInvalidCredentials)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestWriteError_PersistenceFailure_HidesDetail(t *testing.T) {
	rec := callWriteError(t, &usecase.PersistenceError{Err: errors.New("connection reset")})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	var body ErrorResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	//DB起因の詳細はレスポンスに漏らさない
	assert.Equal(t, "internal error", body.Error)
}

func TestWriteError_HTTPErrorPassthrough(t *testing.T) {
	rec := callWriteError(t, usecase.NewHTTPError(http.StatusBadRequest, "invalid page"))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
