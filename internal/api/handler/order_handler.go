package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/pizzahub/pizza-service/internal/api/metrics"
	"github.com/pizzahub/pizza-service/internal/api/middleware"
	"github.com/pizzahub/pizza-service/internal/core/domain"
	"github.com/pizzahub/pizza-service/internal/core/ports"
)

type OrderHandler struct {
	orders ports.OrderService
}

func NewOrderHandler(orders ports.OrderService) *OrderHandler {
	return &OrderHandler{orders: orders}
}

type addMenuItemRequest struct {
	Title       string  `json:"title" validate:"required"`
	Description string  `json:"description" validate:"required"`
	Image       string  `json:"image"`
	Price       float64 `json:"price" validate:"gt=0"`
}

type createOrderRequest struct {
	FranchiseID int64              `json:"franchiseId" validate:"required"`
	StoreID     int64              `json:"storeId" validate:"required"`
	Items       []orderItemRequest `json:"items" validate:"required,min=1,dive"`
}

type orderItemRequest struct {
	MenuID      int64   `json:"menuId" validate:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
}

type createOrderResponse struct {
	Order     *domain.Order `json:"order"`
	JWT       string        `json:"jwt,omitempty"`
	ReportURL string        `json:"reportUrl,omitempty"`
}

type orderFailedResponse struct {
	Error     string `json:"error"`
	ReportURL string `json:"reportUrl,omitempty"`
}

// Menu returns the pizza menu.
//
// @Summary      Get the pizza menu
// @Tags         order
// @Produce      json
// @Success      200  {array}  domain.MenuItem
// @Router       /api/order/menu [get]
func (h *OrderHandler) Menu(c echo.Context) error {
	menu, err := h.orders.Menu(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, menu)
}

// AddMenuItem adds an item to the menu (admin only) and returns the full
// menu afterwards.
//
// @Summary      Add a menu item
// @Tags         order
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      addMenuItemRequest  true  "Menu item"
// @Success      200   {array}   domain.MenuItem
// @Failure      403   {object}  map[string]string
// @Router       /api/order/menu [put]
func (h *OrderHandler) AddMenuItem(c echo.Context) error {
	var req addMenuItemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	menu, err := h.orders.AddMenuItem(c.Request().Context(), middleware.AuthUser(c), domain.MenuItem{
		Title:       req.Title,
		Description: req.Description,
		Image:       req.Image,
		Price:       req.Price,
	})
	if err != nil {
		if errors.Is(err, domain.ErrForbidden) {
			return echo.NewHTTPError(http.StatusForbidden, "unable to add menu item")
		}
		return err
	}
	return c.JSON(http.StatusOK, menu)
}

// Orders returns one page of the caller's order history.
//
// @Summary      Get the orders for the authenticated user
// @Tags         order
// @Produce      json
// @Security     BearerAuth
// @Param        page  query     int  false  "1-based page number"
// @Success      200   {object}  domain.OrderHistory
// @Router       /api/order [get]
func (h *OrderHandler) Orders(c echo.Context) error {
	page := 1
	if raw := c.QueryParam("page"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			page = parsed
		}
	}

	history, err := h.orders.Orders(c.Request().Context(), middleware.AuthUser(c), page)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, history)
}

// CreateOrder stores an order and submits it to the factory.
//
// @Summary      Create an order for the authenticated user
// @Tags         order
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createOrderRequest  true  "Order"
// @Success      200   {object}  createOrderResponse
// @Failure      500   {object}  orderFailedResponse
// @Router       /api/order [post]
func (h *OrderHandler) CreateOrder(c echo.Context) error {
	var req createOrderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	order := domain.Order{FranchiseID: req.FranchiseID, StoreID: req.StoreID}
	for _, item := range req.Items {
		order.Items = append(order.Items, domain.OrderItem{
			MenuID:      item.MenuID,
			Description: item.Description,
			Price:       item.Price,
		})
	}

	start := time.Now()
	stored, fulfillment, err := h.orders.Create(c.Request().Context(), middleware.AuthUser(c), order)
	metrics.OrderDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		var fe *domain.FactoryError
		if errors.As(err, &fe) {
			metrics.OrderFailuresTotal.Inc()
			return c.JSON(http.StatusInternalServerError, orderFailedResponse{
				Error:     fe.Error(),
				ReportURL: fe.ReportURL,
			})
		}
		return err
	}

	metrics.PizzasSoldTotal.Add(float64(len(stored.Items)))
	for _, item := range stored.Items {
		metrics.RevenueTotal.Add(item.Price)
	}
	return c.JSON(http.StatusOK, createOrderResponse{
		Order:     stored,
		JWT:       fulfillment.JWT,
		ReportURL: fulfillment.ReportURL,
	})
}
