package handler

import (
	"net/http"
	"strconv"

	"app/internal/middleware"
	repo "app/internal/repository"
	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

type AdminOrderHandler struct {
	uc *usecase.AdminOrderUsecase
}

func NewAdminOrderHandler(uc *usecase.AdminOrderUsecase) *AdminOrderHandler {
	return &AdminOrderHandler{uc: uc}
}

type AdminUpdateOrderStatusRequest struct {
	Status string `json:"status"`
}

// 管理者グループ（JWT + roleガード済み）に登録する
func (h *AdminOrderHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/orders", h.list)
	g.PUT("/orders/:id/status", h.updateStatus)
}

// JWTミドルウェアが入れたactor（adminのemail）を取り出す
func getActorFromContext(c echo.Context) string {
	actor, _ := c.Get(middleware.CtxActorKey).(string)
	return actor
}

func (h *AdminOrderHandler) list(c echo.Context) error {
	page := 1
	if v := c.QueryParam("page"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid page"})
		}
		page = p
	}

	limit := 20
	if v := c.QueryParam("limit"); v != "" {
		l, err := strconv.Atoi(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid limit"})
		}
		limit = l
	}

	f := repo.AdminOrderListFilter{
		Page:   page,
		Limit:  limit,
		Status: c.QueryParam("status"),
	}
	if v := c.QueryParam("customer_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid customer_id"})
		}
		f.CustomerID = &id
	}

	out, err := h.uc.List(c.Request().Context(), f)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AdminOrderHandler) updateStatus(c echo.Context) error {
	orderID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	var req AdminUpdateOrderStatusRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	actor := getActorFromContext(c)
	if err := h.uc.UpdateStatus(c.Request().Context(), actor, orderID, usecase.AdminUpdateOrderStatusInput{
		Status: req.Status,
	}); err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{Message: "order status updated"})
}
