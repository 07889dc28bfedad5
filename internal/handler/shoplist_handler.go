package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "shoplist/internal/errors"
	"shoplist/internal/service"
)

// ShopListHandler handles shopping-list endpoints.
type ShopListHandler struct {
	listService service.ShopListService
}

// NewShopListHandler creates a new shopping-list handler.
func NewShopListHandler(listService service.ShopListService) *ShopListHandler {
	return &ShopListHandler{listService: listService}
}

// AddItemsRequest carries item specs for the additive membership endpoint.
type AddItemsRequest struct {
	Items []service.ItemSpec `json:"items" validate:"required,min=1"`
}

// List godoc
// @Summary List the requester's shopping lists
// @Description Active lists first, newest first within each group.
// @Tags lists
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.ShopList
// @Failure 401 {object} errors.ErrorResponse
// @Router /lists [get]
func (h *ShopListHandler) List(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	lists, err := h.listService.List(c.Request().Context(), userID)
	if err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, lists)
}

// Get godoc
// @Summary Get an owned shopping list with items and total
// @Tags lists
// @Produce json
// @Security BearerAuth
// @Param id path int true "List ID"
// @Success 200 {object} model.ShopList
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /lists/{id} [get]
func (h *ShopListHandler) Get(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}

	list, err := h.listService.Get(c.Request().Context(), id, userID)
	if err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, list)
}

// Create godoc
// @Summary Create a shopping list
// @Description Items are get-or-created by name under the requester; a blank title becomes a generated placeholder.
// @Tags lists
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body service.ListSpec true "List data"
// @Success 201 {object} model.ShopList
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /lists [post]
func (h *ShopListHandler) Create(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var spec service.ListSpec
	if err := c.Bind(&spec); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&spec); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	list, err := h.listService.Create(c.Request().Context(), userID, spec)
	if err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusCreated, list)
}

// Update godoc
// @Summary Partially update an owned shopping list
// @Description A supplied items array replaces the entire membership; omit it to keep membership untouched.
// @Tags lists
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "List ID"
// @Param request body service.ListPatch true "List patch"
// @Success 200 {object} model.ShopList
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /lists/{id} [patch]
func (h *ShopListHandler) Update(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var patch service.ListPatch
	if err := c.Bind(&patch); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&patch); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	list, err := h.listService.Update(c.Request().Context(), id, userID, patch)
	if err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, list)
}

// AddItems godoc
// @Summary Add items to an owned shopping list
// @Description Additive: existing members are preserved, resolved items are appended.
// @Tags lists
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "List ID"
// @Param request body AddItemsRequest true "Items to add"
// @Success 200 {object} model.ShopList
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /lists/{id}/items [post]
func (h *ShopListHandler) AddItems(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req AddItemsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	list, err := h.listService.AddItems(c.Request().Context(), id, userID, req.Items)
	if err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, list)
}

// Delete godoc
// @Summary Delete an owned shopping list
// @Description Member items are kept; only the list and its membership go away.
// @Tags lists
// @Security BearerAuth
// @Param id path int true "List ID"
// @Success 204
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /lists/{id} [delete]
func (h *ShopListHandler) Delete(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}

	if err := h.listService.Delete(c.Request().Context(), id, userID); err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.NoContent(http.StatusNoContent)
}
