package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/pizzahub/pizza-service/internal/api/middleware"
	"github.com/pizzahub/pizza-service/internal/core/domain"
	"github.com/pizzahub/pizza-service/internal/core/ports"
)

type FranchiseHandler struct {
	franchises ports.FranchiseService
}

func NewFranchiseHandler(franchises ports.FranchiseService) *FranchiseHandler {
	return &FranchiseHandler{franchises: franchises}
}

type createFranchiseRequest struct {
	Name   string                  `json:"name" validate:"required"`
	Admins []franchiseAdminRequest `json:"admins" validate:"dive"`
}

type franchiseAdminRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type createStoreRequest struct {
	Name string `json:"name" validate:"required"`
}

// List returns all franchises. Admin callers additionally receive each
// franchise's admins and per-store revenue.
//
// @Summary      List all the franchises
// @Tags         franchise
// @Produce      json
// @Success      200  {array}  domain.Franchise
// @Router       /api/franchise [get]
func (h *FranchiseHandler) List(c echo.Context) error {
	franchises, err := h.franchises.List(c.Request().Context(), middleware.AuthUser(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, franchises)
}

// ListForUser returns the franchises a user administers.
//
// @Summary      List a user's franchises
// @Tags         franchise
// @Produce      json
// @Security     BearerAuth
// @Param        userId  path     int  true  "User id"
// @Success      200     {array}  domain.Franchise
// @Router       /api/franchise/{userId} [get]
func (h *FranchiseHandler) ListForUser(c echo.Context) error {
	userID, err := strconv.ParseInt(c.Param("userId"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid user id")
	}

	franchises, err := h.franchises.ListForUser(c.Request().Context(), middleware.AuthUser(c), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, franchises)
}

// Create creates a new franchise (admin only).
//
// @Summary      Create a new franchise
// @Tags         franchise
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createFranchiseRequest  true  "Franchise"
// @Success      200   {object}  domain.Franchise
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/franchise [post]
func (h *FranchiseHandler) Create(c echo.Context) error {
	if !middleware.AuthUser(c).IsRole(domain.RoleAdmin) {
		return echo.NewHTTPError(http.StatusForbidden, "unable to create a franchise")
	}

	var req createFranchiseRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	franchise := &domain.Franchise{Name: req.Name}
	for _, admin := range req.Admins {
		franchise.Admins = append(franchise.Admins, domain.FranchiseAdmin{Email: admin.Email})
	}

	created, err := h.franchises.Create(c.Request().Context(), franchise)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, created)
}

// Delete removes a franchise with its stores and role grants (admin only).
//
// @Summary      Delete a franchise
// @Tags         franchise
// @Produce      json
// @Security     BearerAuth
// @Param        franchiseId  path      int  true  "Franchise id"
// @Success      200          {object}  map[string]string
// @Failure      403          {object}  map[string]string
// @Failure      500          {object}  map[string]string
// @Router       /api/franchise/{franchiseId} [delete]
func (h *FranchiseHandler) Delete(c echo.Context) error {
	if !middleware.AuthUser(c).IsRole(domain.RoleAdmin) {
		return echo.NewHTTPError(http.StatusForbidden, "unable to delete a franchise")
	}

	franchiseID, err := strconv.ParseInt(c.Param("franchiseId"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid franchise id")
	}

	if err := h.franchises.Delete(c.Request().Context(), franchiseID); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "franchise deleted"})
}

// CreateStore adds a store to a franchise. Allowed for admins and the
// franchise's own admins.
//
// @Summary      Create a new franchise store
// @Tags         franchise
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        franchiseId  path      int                 true  "Franchise id"
// @Param        body         body      createStoreRequest  true  "Store"
// @Success      200          {object}  domain.Store
// @Failure      403          {object}  map[string]string
// @Router       /api/franchise/{franchiseId}/store [post]
func (h *FranchiseHandler) CreateStore(c echo.Context) error {
	franchiseID, err := strconv.ParseInt(c.Param("franchiseId"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid franchise id")
	}

	var req createStoreRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	store, err := h.franchises.CreateStore(c.Request().Context(), middleware.AuthUser(c), franchiseID, &domain.Store{Name: req.Name})
	if err != nil {
		if errors.Is(err, domain.ErrForbidden) || errors.Is(err, domain.ErrFranchiseNotFound) {
			return echo.NewHTTPError(http.StatusForbidden, "unable to create a store")
		}
		return err
	}
	return c.JSON(http.StatusOK, store)
}

// DeleteStore removes a store. Allowed for admins and the franchise's own
// admins.
//
// @Summary      Delete a store
// @Tags         franchise
// @Produce      json
// @Security     BearerAuth
// @Param        franchiseId  path      int  true  "Franchise id"
// @Param        storeId      path      int  true  "Store id"
// @Success      200          {object}  map[string]string
// @Failure      403          {object}  map[string]string
// @Router       /api/franchise/{franchiseId}/store/{storeId} [delete]
func (h *FranchiseHandler) DeleteStore(c echo.Context) error {
	franchiseID, err := strconv.ParseInt(c.Param("franchiseId"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid franchise id")
	}
	storeID, err := strconv.ParseInt(c.Param("storeId"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid store id")
	}

	if err := h.franchises.DeleteStore(c.Request().Context(), middleware.AuthUser(c), franchiseID, storeID); err != nil {
		if errors.Is(err, domain.ErrForbidden) || errors.Is(err, domain.ErrFranchiseNotFound) {
			return echo.NewHTTPError(http.StatusForbidden, "unable to delete a store")
		}
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "store deleted"})
}
