package handler

import (
	"net/http"
	"strconv"

	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

type CustomerHandler struct {
	uc *usecase.CustomerUsecase
}

func NewCustomerHandler(uc *usecase.CustomerUsecase) *CustomerHandler {
	return &CustomerHandler{uc: uc}
}

type CustomerCreateRequest struct {
	Name                   string `json:"name"`
	Email                  string `json:"email"`
	DefaultShippingAddress string `json:"default_shipping_address"`
	Phone                  string `json:"phone"`
}

type CustomerUpdateRequest struct {
	Name                   *string `json:"name"`
	Email                  *string `json:"email"`
	DefaultShippingAddress *string `json:"default_shipping_address"`
	Phone                  *string `json:"phone"`
}

func (h *CustomerHandler) RegisterRoutes(e *echo.Echo) {
	e.POST("/customers", h.create)
	e.GET("/customers/:id", h.detail)
	e.PUT("/customers/:id", h.update)
}

func (h *CustomerHandler) create(c echo.Context) error {
	var req CustomerCreateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.Register(c.Request().Context(), usecase.RegisterCustomerInput{
		Name:                   req.Name,
		Email:                  req.Email,
		DefaultShippingAddress: req.DefaultShippingAddress,
		Phone:                  req.Phone,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *CustomerHandler) detail(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	out, err := h.uc.Get(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *CustomerHandler) update(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	var req CustomerUpdateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.UpdateContact(c.Request().Context(), id, usecase.UpdateCustomerContactInput{
		Name:                   req.Name,
		Email:                  req.Email,
		DefaultShippingAddress: req.DefaultShippingAddress,
		Phone:                  req.Phone,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
